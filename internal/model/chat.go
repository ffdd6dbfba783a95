package model

import "time"

// 消息角色常量
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ChatMessage 聊天消息
// 只追加不修改；transcript 长度不设上限（见设计说明）
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"` // user, assistant, system
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatSession 聊天会话状态
// Provider 为本会话当前生效的推理后端，切换只作用于本会话
type ChatSession struct {
	ID          string         `json:"id"`
	CompanionID string         `json:"companion_id"`
	Messages    []ChatMessage  `json:"messages"`
	Guidance    string         `json:"guidance"`
	Provider    ProviderConfig `json:"provider"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
