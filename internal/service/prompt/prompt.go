// Package prompt 提供提示词构建
// 纯函数，无 I/O；相同输入产生相同的提示词文本
package prompt

import (
	"fmt"
	"strings"

	"github.com/ashwinyue/monster-ai/internal/model"
)

// BuildChatPrompt 构建聊天提示词
// system = 伙伴人设提示词（有引导语时追加）；user = 用户消息原文
func BuildChatPrompt(companion *model.Companion, userMessage, guidance string) (systemPrompt, userPrompt string) {
	systemPrompt = companion.SystemPrompt
	if guidance != "" {
		systemPrompt += "\n\nAdditional guidance: " + guidance
	}
	return systemPrompt, userMessage
}

// BuildBattlePrompt 构建战斗叙述提示词
// 要求模型以伙伴口吻用 1-2 句话描述招式效果，不参与任何数值判定
func BuildBattlePrompt(companion *model.Companion, move, guidance string) (systemPrompt, userPrompt string) {
	var b strings.Builder

	b.WriteString(companion.SystemPrompt)
	b.WriteString("\n\nYou are in battle! Describe your action dramatically and briefly (1-2 sentences).\n")
	fmt.Fprintf(&b, "Move chosen: %s\n", move)
	if guidance != "" {
		fmt.Fprintf(&b, "Trainer guidance: %s\n", guidance)
	}
	b.WriteString("\nRespond in character with an exciting battle description of using this move.")

	return companion.SystemPrompt, b.String()
}
