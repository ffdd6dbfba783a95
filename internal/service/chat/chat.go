// Package chat 提供聊天编排服务
// 串联 提示词构建 → 推理网关 → 会话状态；网关失败时回退文本原样进入记录，
// 对话永远不会因为 AI 不可用而中断
package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/ashwinyue/monster-ai/internal/model"
	"github.com/ashwinyue/monster-ai/internal/service/prompt"
	"github.com/ashwinyue/monster-ai/internal/service/session"
	"github.com/google/uuid"
)

// Gateway 推理网关接口（用于依赖注入）
type Gateway interface {
	Complete(ctx context.Context, cfg model.ProviderConfig, systemPrompt, userPrompt string) string
}

// CompanionStore 伙伴档案读取接口（用于依赖注入）
type CompanionStore interface {
	GetByID(id string) (*model.Companion, error)
}

// Service 聊天服务
// 每个会话各自持有生效的后端配置；defaultProvider 只用于初始化新会话
type Service struct {
	companions      CompanionStore
	gw              Gateway
	sessions        *session.Manager
	defaultProvider model.ProviderConfig
}

// NewService 创建聊天服务
func NewService(companions CompanionStore, gw Gateway, sessions *session.Manager, defaultProvider model.ProviderConfig) *Service {
	return &Service{
		companions:      companions,
		gw:              gw,
		sessions:        sessions,
		defaultProvider: defaultProvider,
	}
}

// SendMessageRequest 发送消息请求
type SendMessageRequest struct {
	CompanionID string `json:"companion_id" binding:"required"`
	Content     string `json:"content" binding:"required"`
	Guidance    string `json:"guidance"`
}

// GetSession 获取聊天会话
// 新会话会先收到一条以伙伴口吻的问候消息
func (s *Service) GetSession(ctx context.Context, sessionID, companionID string) (*model.ChatSession, error) {
	companion, err := s.companions.GetByID(companionID)
	if err != nil {
		return nil, fmt.Errorf("companion not found: %w", err)
	}

	sess := s.sessions.GetChat(ctx, sessionID)
	s.ensureProvider(sess)
	if s.ensureGreeting(sess, companion) {
		s.sessions.SaveChat(ctx, sess)
	}
	return sess, nil
}

// SendMessage 发送消息
// 追加用户消息，经本会话的后端取得回复后追加助手消息，返回更新后的会话
func (s *Service) SendMessage(ctx context.Context, sessionID string, req *SendMessageRequest) (*model.ChatSession, error) {
	companion, err := s.companions.GetByID(req.CompanionID)
	if err != nil {
		return nil, fmt.Errorf("companion not found: %w", err)
	}

	sess := s.sessions.GetChat(ctx, sessionID)
	sess.CompanionID = companion.ID
	sess.Guidance = req.Guidance
	s.ensureProvider(sess)
	s.ensureGreeting(sess, companion)

	s.appendMessage(sess, model.RoleUser, req.Content)

	systemPrompt, userPrompt := prompt.BuildChatPrompt(companion, req.Content, req.Guidance)
	reply := s.gw.Complete(ctx, sess.Provider, systemPrompt, userPrompt)

	// 网关保证返回非空文本：失败时为回退文本，本身就是有效的记录条目
	s.appendMessage(sess, model.RoleAssistant, reply)

	s.sessions.SaveChat(ctx, sess)
	return sess, nil
}

// SwitchProvider 切换本会话的推理后端
// 只改写本会话持有的配置并追加一条系统消息宣布切换；
// 其他会话与战斗者状态不受任何影响
func (s *Service) SwitchProvider(ctx context.Context, sessionID string, cfg model.ProviderConfig) *model.ChatSession {
	sess := s.sessions.GetChat(ctx, sessionID)
	sess.Provider = cfg

	s.appendMessage(sess, model.RoleSystem,
		fmt.Sprintf("Switched AI provider to %s (model: %s). Let's continue our conversation!", cfg.Provider, cfg.Model))
	s.sessions.SaveChat(ctx, sess)
	return sess
}

// ensureProvider 确保会话持有后端配置，新会话取默认值
func (s *Service) ensureProvider(sess *model.ChatSession) {
	if sess.Provider.IsZero() {
		sess.Provider = s.defaultProvider
	}
}

// ensureGreeting 确保新会话以问候消息开场
func (s *Service) ensureGreeting(sess *model.ChatSession, companion *model.Companion) bool {
	if len(sess.Messages) > 0 {
		return false
	}
	sess.CompanionID = companion.ID
	s.appendMessage(sess, model.RoleAssistant,
		fmt.Sprintf("Hello! I'm %s, your personal companion! %s I'm ready to chat, battle, or help you with anything you need!",
			companion.Name, companion.VisualDescription))
	return true
}

// appendMessage 追加消息
func (s *Service) appendMessage(sess *model.ChatSession, role, content string) {
	sess.Messages = append(sess.Messages, model.ChatMessage{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
}
