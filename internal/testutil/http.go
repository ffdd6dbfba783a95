// Package testutil 提供测试辅助工具
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// MockCompletionServer 模拟的 OpenAI 兼容补全服务
// 用于在不依赖真实后端的情况下测试网关
type MockCompletionServer struct {
	*httptest.Server
	requests atomic.Int64
}

// completionResponse OpenAI chat completion 响应体
type completionResponse struct {
	ID      string             `json:"id"`
	Object  string             `json:"object"`
	Created int64              `json:"created"`
	Model   string             `json:"model"`
	Choices []completionChoice `json:"choices"`
}

type completionChoice struct {
	Index        int               `json:"index"`
	Message      completionMessage `json:"message"`
	FinishReason string            `json:"finish_reason"`
}

type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// NewMockCompletionServer 创建固定返回 content 的模拟补全服务
func NewMockCompletionServer(t *testing.T, content string) *MockCompletionServer {
	t.Helper()

	s := &MockCompletionServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)

		resp := completionResponse{
			ID:      "chatcmpl-test",
			Object:  "chat.completion",
			Created: 1700000000,
			Model:   "test-model",
			Choices: []completionChoice{
				{
					Index:        0,
					Message:      completionMessage{Role: "assistant", Content: content},
					FinishReason: "stop",
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(s.Close)
	return s
}

// NewFailingCompletionServer 创建总是返回指定状态码的模拟补全服务
func NewFailingCompletionServer(t *testing.T, status int) *MockCompletionServer {
	t.Helper()

	s := &MockCompletionServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		http.Error(w, `{"error": {"message": "backend unavailable"}}`, status)
	}))
	t.Cleanup(s.Close)
	return s
}

// RequestCount 返回收到的请求数
func (s *MockCompletionServer) RequestCount() int64 {
	return s.requests.Load()
}
