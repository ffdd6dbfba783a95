// Package gateway 提供推理网关服务
// 将伙伴的提示词发送到按会话指定的 OpenAI 兼容后端，并把所有失败归一化为可读文本
package gateway

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/ashwinyue/monster-ai/internal/model"
)

// 支持的推理后端
const (
	ProviderOllama      = "ollama"       // 本地 Ollama 服务
	ProviderOpenAI      = "openai"       // OpenAI 官方 API
	ProviderOpenAILocal = "openai-local" // OpenAI 兼容本地端点（LM Studio 等）
)

// 固定采样参数
const (
	maxTokens      = 500
	temperature    = float32(0.7)
	defaultTimeout = 30 * time.Second
)

// EmptyCompletionText 后端返回空补全时的固定致歉文本
const EmptyCompletionText = "I apologize, but I could not generate a response."

// Service 推理网关
// 配置逐调用传入（来自会话状态），网关自身不持有任何当前后端；
// 相同配置的客户端被缓存复用。Complete 永远返回文本，不会把错误抛给调用方
type Service struct {
	mu      sync.RWMutex
	clients map[model.ProviderConfig]einomodel.ChatModel
	timeout time.Duration
}

// NewService 创建推理网关
func NewService(timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Service{
		clients: make(map[model.ProviderConfig]einomodel.ChatModel),
		timeout: timeout,
	}
}

// Complete 发送单轮对话补全请求
// 成功返回首个补全文本；空补全返回致歉文本；任何失败返回按后端定制的回退文本
func (s *Service) Complete(ctx context.Context, cfg model.ProviderConfig, systemPrompt, userPrompt string) string {
	client := s.clientFor(cfg)
	if client == nil {
		return FallbackText(cfg)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	messages := []*schema.Message{
		{Role: schema.System, Content: systemPrompt},
		{Role: schema.User, Content: userPrompt},
	}

	resp, err := client.Generate(ctx, messages)
	if err != nil {
		log.Printf("gateway: completion failed (provider=%s): %v", cfg.Provider, err)
		return FallbackText(cfg)
	}

	content := strings.TrimSpace(resp.Content)
	if content == "" {
		return EmptyCompletionText
	}
	return content
}

// clientFor 获取配置对应的客户端，必要时构建并缓存
// 构建失败缓存 nil，后续调用直接走回退文本
func (s *Service) clientFor(cfg model.ProviderConfig) einomodel.ChatModel {
	s.mu.RLock()
	client, ok := s.clients[cfg]
	s.mu.RUnlock()
	if ok {
		return client
	}

	client, err := newChatModel(context.Background(), cfg)
	if err != nil {
		log.Printf("Warning: failed to create chat model for provider %s: %v", cfg.Provider, err)
		client = nil
	}

	s.mu.Lock()
	s.clients[cfg] = client
	s.mu.Unlock()
	return client
}

// FallbackText 后端不可用时的确定性回退文本
// 按后端给出可操作的修复提示，保证调用方总能拿到非空文本
func FallbackText(cfg model.ProviderConfig) string {
	switch cfg.Provider {
	case ProviderOllama:
		return fmt.Sprintf(`I'm having trouble connecting to Ollama. Please make sure:
1. Ollama is installed and running (ollama serve)
2. You have pulled a model (ollama pull %s)
3. The model %q is available

For now, I'm responding without AI capabilities.`, cfg.Model, cfg.Model)
	case ProviderOpenAI:
		return "I'm having trouble connecting to OpenAI. Please check that your API key is valid and has remaining quota, then try again."
	case ProviderOpenAILocal:
		return fmt.Sprintf("I'm having trouble connecting to the local OpenAI-compatible endpoint at %s. Please make sure your local model server (LM Studio or similar) is running and the model %q is loaded.", cfg.BaseURL, cfg.Model)
	default:
		return fmt.Sprintf("I'm having trouble connecting to the AI service (provider: %s). Please check the provider configuration.", cfg.Provider)
	}
}

// newChatModel 创建 eino ChatModel
// 三个后端都走 OpenAI 兼容协议，仅 BaseURL/APIKey/Model 不同
func newChatModel(ctx context.Context, cfg model.ProviderConfig) (einomodel.ChatModel, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required for provider: %s", cfg.Provider)
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		// Ollama 等本地端点要求字段存在但不校验取值
		apiKey = "not-needed"
	}

	mt := maxTokens
	temp := temperature

	return openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:      apiKey,
		BaseURL:     cfg.BaseURL,
		Model:       cfg.Model,
		MaxTokens:   &mt,
		Temperature: &temp,
	})
}
