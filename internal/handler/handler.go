package handler

import (
	"github.com/ashwinyue/monster-ai/internal/service"
)

// Handlers 处理器集合
type Handlers struct {
	Auth      *AuthHandler
	Companion *CompanionHandler
	Chat      *ChatHandler
	Battle    *BattleHandler
}

// NewHandlers 创建所有处理器
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Auth:      NewAuthHandler(svc),
		Companion: NewCompanionHandler(svc),
		Chat:      NewChatHandler(svc),
		Battle:    NewBattleHandler(svc),
	}
}
