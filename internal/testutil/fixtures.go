// Package testutil 提供测试辅助工具
package testutil

import (
	"strings"
	"testing"

	"github.com/ashwinyue/monster-ai/internal/model"
)

// NewTestCompanion 创建测试用伙伴档案
func NewTestCompanion() *model.Companion {
	return &model.Companion{
		ID:                "companion-1",
		UserID:            "user-1",
		Name:              "Sparkles",
		SystemPrompt:      "You are Sparkles, a cheerful electric companion who loves wordplay.",
		Moves:             []string{"Thunder Bolt", "Static Shock", "Volt Tackle"},
		VisualDescription: "A small glowing creature crackling with sparks",
	}
}

// AssertHelper 提供断言相关的测试辅助
type AssertHelper struct {
	t *testing.T
}

// NewAssertHelper 创建断言辅助器
func NewAssertHelper(t *testing.T) *AssertHelper {
	return &AssertHelper{t: t}
}

// NoError 断言没有错误
func (h *AssertHelper) NoError(err error, msgAndArgs ...interface{}) {
	h.t.Helper()
	if err != nil {
		h.t.Fatalf("Unexpected error: %v %v", err, msgAndArgs)
	}
}

// Error 断言有错误
func (h *AssertHelper) Error(err error, msgAndArgs ...interface{}) {
	h.t.Helper()
	if err == nil {
		h.t.Fatal("Expected error, got nil")
	}
}

// ErrorContains 断言错误包含指定字符串
func (h *AssertHelper) ErrorContains(err error, substr string, msgAndArgs ...interface{}) {
	h.t.Helper()
	if err == nil {
		h.t.Fatal("Expected error, got nil")
	}
	if !strings.Contains(err.Error(), substr) {
		h.t.Fatalf("Error %q does not contain %q %v", err.Error(), substr, msgAndArgs)
	}
}

// Equal 断言相等
func (h *AssertHelper) Equal(expected, actual interface{}, msgAndArgs ...interface{}) {
	h.t.Helper()
	if expected != actual {
		h.t.Fatalf("Expected %v, got %v %v", expected, actual, msgAndArgs)
	}
}

// True 断言为真
func (h *AssertHelper) True(value bool, msgAndArgs ...interface{}) {
	h.t.Helper()
	if !value {
		h.t.Fatalf("Expected true, got false %v", msgAndArgs)
	}
}

// NotNil 断言非空
func (h *AssertHelper) NotNil(value interface{}, msgAndArgs ...interface{}) {
	h.t.Helper()
	if value == nil {
		h.t.Fatalf("Expected non-nil value %v", msgAndArgs)
	}
}
