package gateway

import (
	"fmt"

	"github.com/ashwinyue/monster-ai/internal/config"
	"github.com/ashwinyue/monster-ai/internal/model"
)

// Presets 三个命名预设
// 与配置文件一一对应，会话选择预设即完成一次本会话的后端切换
func Presets(cfg *config.Config) map[string]model.ProviderConfig {
	return map[string]model.ProviderConfig{
		ProviderOllama: {
			Provider: ProviderOllama,
			BaseURL:  cfg.AI.Ollama.BaseURL,
			Model:    cfg.AI.Ollama.Model,
			APIKey:   "ollama",
		},
		ProviderOpenAI: {
			Provider: ProviderOpenAI,
			BaseURL:  cfg.AI.OpenAI.BaseURL,
			Model:    cfg.AI.OpenAI.Model,
			APIKey:   cfg.AI.OpenAI.APIKey,
		},
		ProviderOpenAILocal: {
			Provider: ProviderOpenAILocal,
			BaseURL:  cfg.AI.OpenAILocal.BaseURL,
			Model:    cfg.AI.OpenAILocal.Model,
			APIKey:   cfg.AI.OpenAILocal.APIKey,
		},
	}
}

// Preset 按名称查找预设
func Preset(cfg *config.Config, name string) (model.ProviderConfig, error) {
	presets := Presets(cfg)
	pc, ok := presets[name]
	if !ok {
		return model.ProviderConfig{}, fmt.Errorf("unknown provider preset: %s", name)
	}
	return pc, nil
}

// FromConfig 根据配置选择新会话的默认后端
// 未知取值回落到 Ollama 预设
func FromConfig(cfg *config.Config) model.ProviderConfig {
	if pc, err := Preset(cfg, cfg.AI.Provider); err == nil {
		return pc
	}
	return Presets(cfg)[ProviderOllama]
}
