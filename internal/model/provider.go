package model

// ProviderConfig 推理后端配置
// 每个会话各自持有一份，随会话状态保存；切换后端只影响本会话。
// Model 必须非空；缺少凭证不会导致崩溃，只会降级为回退文本
type ProviderConfig struct {
	Provider string `json:"provider"`
	BaseURL  string `json:"base_url,omitempty"`
	Model    string `json:"model"`
	APIKey   string `json:"api_key,omitempty"`
}

// IsZero 是否未设置
func (c ProviderConfig) IsZero() bool {
	return c == ProviderConfig{}
}
