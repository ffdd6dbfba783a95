package gateway

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/ashwinyue/monster-ai/internal/model"
	"github.com/ashwinyue/monster-ai/internal/testutil"
)

func TestCompleteReturnsCompletion(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	srv := testutil.NewMockCompletionServer(t, "A dazzling bolt of lightning!")
	svc := NewService(5 * time.Second)

	cfg := model.ProviderConfig{
		Provider: ProviderOllama,
		BaseURL:  srv.URL,
		Model:    "llama2",
	}

	got := svc.Complete(context.Background(), cfg, "You are a companion.", "Describe your attack.")
	assert.Equal("A dazzling bolt of lightning!", got)
	assert.Equal(int64(1), srv.RequestCount())
}

func TestCompleteTrimsWhitespace(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	srv := testutil.NewMockCompletionServer(t, "  spaced out reply \n")
	svc := NewService(5 * time.Second)

	cfg := model.ProviderConfig{
		Provider: ProviderOllama,
		BaseURL:  srv.URL,
		Model:    "llama2",
	}

	got := svc.Complete(context.Background(), cfg, "system", "user")
	assert.Equal("spaced out reply", got)
}

func TestCompleteEmptyCompletion(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	srv := testutil.NewMockCompletionServer(t, "   ")
	svc := NewService(5 * time.Second)

	cfg := model.ProviderConfig{
		Provider: ProviderOllama,
		BaseURL:  srv.URL,
		Model:    "llama2",
	}

	got := svc.Complete(context.Background(), cfg, "system", "user")
	assert.Equal(EmptyCompletionText, got)
}

func TestCompleteBackendFailure(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	srv := testutil.NewFailingCompletionServer(t, http.StatusInternalServerError)
	svc := NewService(5 * time.Second)

	cfg := model.ProviderConfig{
		Provider: ProviderOllama,
		BaseURL:  srv.URL,
		Model:    "llama2",
	}

	// 失败归一化为回退文本，不返回错误也不 panic
	got := svc.Complete(context.Background(), cfg, "system", "user")
	assert.Equal(FallbackText(cfg), got)
	assert.True(got != "", "fallback text is never empty")
}

func TestCompleteUnreachableEndpoint(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	svc := NewService(2 * time.Second)

	cfg := model.ProviderConfig{
		Provider: ProviderOpenAILocal,
		BaseURL:  "http://127.0.0.1:1/v1",
		Model:    "local-model",
	}

	got := svc.Complete(context.Background(), cfg, "system", "user")
	assert.Equal(FallbackText(cfg), got)
}

func TestCompleteMissingModel(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	svc := NewService(5 * time.Second)

	// 缺少模型名时客户端构建失败，调用走回退文本
	cfg := model.ProviderConfig{Provider: ProviderOllama}
	got := svc.Complete(context.Background(), cfg, "system", "user")
	assert.Equal(FallbackText(cfg), got)
}

func TestCompleteRoutesPerConfig(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	srvA := testutil.NewMockCompletionServer(t, "reply from A")
	srvB := testutil.NewMockCompletionServer(t, "reply from B")
	svc := NewService(5 * time.Second)
	ctx := context.Background()

	cfgA := model.ProviderConfig{Provider: ProviderOllama, BaseURL: srvA.URL, Model: "llama2"}
	cfgB := model.ProviderConfig{Provider: ProviderOpenAILocal, BaseURL: srvB.URL, Model: "local-model"}

	// 同一个网关按传入配置路由，互不干扰
	assert.Equal("reply from A", svc.Complete(ctx, cfgA, "system", "user"))
	assert.Equal("reply from B", svc.Complete(ctx, cfgB, "system", "user"))
	assert.Equal("reply from A", svc.Complete(ctx, cfgA, "system", "user"))

	assert.Equal(int64(2), srvA.RequestCount())
	assert.Equal(int64(1), srvB.RequestCount())
}

func TestCompleteBrokenConfigDoesNotAffectOthers(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	srv := testutil.NewMockCompletionServer(t, "healthy reply")
	svc := NewService(5 * time.Second)
	ctx := context.Background()

	healthy := model.ProviderConfig{Provider: ProviderOllama, BaseURL: srv.URL, Model: "llama2"}
	broken := model.ProviderConfig{Provider: ProviderOpenAI}

	assert.Equal("healthy reply", svc.Complete(ctx, healthy, "system", "user"))
	assert.Equal(FallbackText(broken), svc.Complete(ctx, broken, "system", "user"))
	// 坏配置不影响好配置的后续调用
	assert.Equal("healthy reply", svc.Complete(ctx, healthy, "system", "user"))
}

func TestFallbackTextPerProvider(t *testing.T) {
	assert := testutil.NewAssertHelper(t)

	ollama := FallbackText(model.ProviderConfig{Provider: ProviderOllama, Model: "llama2"})
	assert.True(strings.Contains(ollama, "ollama serve"), "ollama remediation steps")
	assert.True(strings.Contains(ollama, "ollama pull llama2"), "model name in pull hint")

	openaiText := FallbackText(model.ProviderConfig{Provider: ProviderOpenAI, Model: "gpt-3.5-turbo"})
	assert.True(strings.Contains(openaiText, "API key"), "openai mentions credentials")

	local := FallbackText(model.ProviderConfig{
		Provider: ProviderOpenAILocal,
		BaseURL:  "http://localhost:1234/v1",
		Model:    "local-model",
	})
	assert.True(strings.Contains(local, "http://localhost:1234/v1"), "endpoint in local fallback")
	assert.True(strings.Contains(local, "local-model"), "model in local fallback")

	unknown := FallbackText(model.ProviderConfig{Provider: "mystery"})
	assert.True(strings.Contains(unknown, "mystery"), "unknown provider named")
}
