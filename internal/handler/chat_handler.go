package handler

import (
	"github.com/ashwinyue/monster-ai/internal/model"
	"github.com/ashwinyue/monster-ai/internal/service"
	"github.com/ashwinyue/monster-ai/internal/service/chat"
	"github.com/ashwinyue/monster-ai/internal/service/gateway"
	"github.com/gin-gonic/gin"
)

// ChatHandler 聊天处理器
type ChatHandler struct {
	svc *service.Services
}

// NewChatHandler 创建聊天处理器
func NewChatHandler(svc *service.Services) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// GetSession 获取聊天会话
func (h *ChatHandler) GetSession(c *gin.Context) {
	companionID := c.Query("companion_id")
	if companionID == "" {
		badRequest(c, "companion_id is required")
		return
	}

	sess, err := h.svc.Chat.GetSession(c.Request.Context(), c.Param("id"), companionID)
	if err != nil {
		notFound(c, err.Error())
		return
	}

	success(c, sess)
}

// SendMessage 发送消息
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req chat.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	sess, err := h.svc.Chat.SendMessage(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, sess)
}

// SwitchProviderRequest 切换后端请求
type SwitchProviderRequest struct {
	Preset string `json:"preset" binding:"required"`
	APIKey string `json:"api_key"`
}

// SwitchProvider 切换推理后端
// 选择一个命名预设即完成切换，可附带覆盖 API Key
func (h *ChatHandler) SwitchProvider(c *gin.Context) {
	var req SwitchProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	cfg, err := gateway.Preset(h.svc.Config, req.Preset)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.APIKey != "" {
		cfg.APIKey = req.APIKey
	}

	sess := h.svc.Chat.SwitchProvider(c.Request.Context(), c.Param("id"), cfg)
	success(c, sess)
}

// ListProviders 列出可用的后端预设
// 当前生效的后端是会话级状态，随会话返回；这里只报默认值
func (h *ChatHandler) ListProviders(c *gin.Context) {
	presets := gateway.Presets(h.svc.Config)

	// 不回传凭证
	result := make(map[string]model.ProviderConfig, len(presets))
	for name, pc := range presets {
		pc.APIKey = ""
		result[name] = pc
	}

	success(c, gin.H{
		"default": gateway.FromConfig(h.svc.Config).Provider,
		"presets": result,
	})
}
