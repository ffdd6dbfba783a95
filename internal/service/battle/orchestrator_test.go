package battle

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ashwinyue/monster-ai/internal/model"
	"github.com/ashwinyue/monster-ai/internal/service/session"
	"github.com/ashwinyue/monster-ai/internal/testutil"
)

// mockGateway 模拟推理网关，记录每次补全实际使用的后端配置
type mockGateway struct {
	reply         string
	calls         int
	configs       []model.ProviderConfig
	systemPrompts []string
	userPrompts   []string
}

func (g *mockGateway) Complete(ctx context.Context, cfg model.ProviderConfig, systemPrompt, userPrompt string) string {
	g.calls++
	g.configs = append(g.configs, cfg)
	g.systemPrompts = append(g.systemPrompts, systemPrompt)
	g.userPrompts = append(g.userPrompts, userPrompt)
	return g.reply
}

// mockCompanionStore 模拟伙伴档案存储
type mockCompanionStore struct {
	companions map[string]*model.Companion
}

func newMockCompanionStore() *mockCompanionStore {
	c := testutil.NewTestCompanion()
	return &mockCompanionStore{companions: map[string]*model.Companion{c.ID: c}}
}

func (s *mockCompanionStore) GetByID(id string) (*model.Companion, error) {
	c, ok := s.companions[id]
	if !ok {
		return nil, errors.New("companion not found")
	}
	return c, nil
}

var defaultProvider = model.ProviderConfig{
	Provider: "ollama",
	BaseURL:  "http://localhost:11434/v1",
	Model:    "llama2",
}

func newTestOrchestrator(gw *mockGateway) (*Orchestrator, *session.Manager) {
	resolver := NewService(fixedDice{damage: 120, pick: 0})
	sessions := session.NewManager(nil)
	return NewOrchestrator(resolver, gw, newMockCompanionStore(), sessions, defaultProvider), sessions
}

func TestOrchestratorStart(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	gw := &mockGateway{reply: "roars!"}
	orch, _ := newTestOrchestrator(gw)
	ctx := context.Background()

	sess, err := orch.Start(ctx, "session-1", "companion-1")
	assert.NoError(err)
	assert.Equal(model.BattlePhaseActive, sess.Phase)
	assert.Equal("companion-1", sess.CompanionID)
	// 开战不产生叙述，不触网关
	assert.Equal(0, gw.calls)

	// 保存后可重新取回同一会话
	assert.Equal(sess, orch.Get(ctx, "session-1"))
}

func TestOrchestratorStartUnknownCompanion(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	orch, _ := newTestOrchestrator(&mockGateway{})

	_, err := orch.Start(context.Background(), "session-1", "no-such-companion")
	assert.ErrorContains(err, "companion not found")
}

func TestOrchestratorPlayMove(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	gw := &mockGateway{reply: "unleashes a crackling storm!"}
	orch, _ := newTestOrchestrator(gw)
	ctx := context.Background()

	_, err := orch.Start(ctx, "session-1", "companion-1")
	assert.NoError(err)

	sess, err := orch.PlayMove(ctx, "session-1", "Thunder Bolt", "go all out")
	assert.NoError(err)

	assert.Equal(1, gw.calls)
	assert.True(strings.Contains(gw.userPrompts[0], "Move chosen: Thunder Bolt"), "move in prompt")
	assert.True(strings.Contains(gw.userPrompts[0], "Trainer guidance: go all out"), "guidance in prompt")

	// 叙述进日志，数值照常结算
	assert.Equal(model.DefaultMaxHP-120, sess.Enemy.HP)
	assert.True(strings.Contains(sess.Log[1].Message, "unleashes a crackling storm!"), "narration in log")
	assert.True(strings.Contains(sess.Log[1].Message, "120 damage"), "damage in log")
}

func TestOrchestratorPlayMoveGatewayFallback(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	// 网关失败时 Complete 返回回退文本而不是错误，回合必须照常结算
	gw := &mockGateway{reply: "I'm having trouble connecting to Ollama."}
	orch, _ := newTestOrchestrator(gw)
	ctx := context.Background()

	_, err := orch.Start(ctx, "session-1", "companion-1")
	assert.NoError(err)

	sess, err := orch.PlayMove(ctx, "session-1", "Thunder Bolt", "")
	assert.NoError(err)
	assert.Equal(model.DefaultMaxHP-120, sess.Enemy.HP)
	assert.Equal(model.DefaultMaxHP-120, sess.Player.HP)
	assert.True(strings.Contains(sess.Log[1].Message, "I'm having trouble connecting to Ollama."),
		"fallback text used as narration")
}

func TestOrchestratorPlayMoveRejectedBeforeGateway(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	gw := &mockGateway{reply: "attacks!"}
	orch, _ := newTestOrchestrator(gw)
	ctx := context.Background()

	// 战斗未开始
	_, err := orch.PlayMove(ctx, "session-1", "Thunder Bolt", "")
	assert.True(errors.Is(err, ErrBattleNotActive), "not active error")

	_, err = orch.Start(ctx, "session-1", "companion-1")
	assert.NoError(err)

	// 未知招式
	_, err = orch.PlayMove(ctx, "session-1", "Hyper Beam", "")
	assert.True(errors.Is(err, ErrUnknownMove), "unknown move error")

	// 拒绝的操作不消耗网关调用
	assert.Equal(0, gw.calls)
}

func TestOrchestratorNarrationUsesDefaultProvider(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	gw := &mockGateway{reply: "attacks!"}
	orch, _ := newTestOrchestrator(gw)
	ctx := context.Background()

	_, err := orch.Start(ctx, "session-1", "companion-1")
	assert.NoError(err)
	_, err = orch.PlayMove(ctx, "session-1", "Thunder Bolt", "")
	assert.NoError(err)

	// 会话未切换过后端时，叙述走默认配置
	assert.Equal(defaultProvider, gw.configs[0])
}

func TestOrchestratorNarrationUsesSessionProvider(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	gw := &mockGateway{reply: "attacks!"}
	orch, sessions := newTestOrchestrator(gw)
	ctx := context.Background()

	// 本会话在聊天侧切过后端，战斗叙述跟随会话配置
	sessionCfg := model.ProviderConfig{
		Provider: "openai-local",
		BaseURL:  "http://localhost:1234/v1",
		Model:    "local-model",
	}
	chatSess := sessions.GetChat(ctx, "session-1")
	chatSess.Provider = sessionCfg
	sessions.SaveChat(ctx, chatSess)

	_, err := orch.Start(ctx, "session-1", "companion-1")
	assert.NoError(err)
	_, err = orch.PlayMove(ctx, "session-1", "Thunder Bolt", "")
	assert.NoError(err)

	assert.Equal(sessionCfg, gw.configs[0])
}

func TestOrchestratorReset(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	gw := &mockGateway{reply: "attacks!"}
	orch, _ := newTestOrchestrator(gw)
	ctx := context.Background()

	_, err := orch.Start(ctx, "session-1", "companion-1")
	assert.NoError(err)
	_, err = orch.PlayMove(ctx, "session-1", "Thunder Bolt", "")
	assert.NoError(err)

	sess := orch.Reset(ctx, "session-1")
	assert.Equal(model.BattlePhaseNotStarted, sess.Phase)
	assert.Equal(0, len(sess.Log))
	assert.True(sess.Enemy == nil, "enemy cleared")
	assert.Equal(sess.Player.MaxHP, sess.Player.HP)
}
