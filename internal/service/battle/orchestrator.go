package battle

import (
	"context"
	"fmt"

	"github.com/ashwinyue/monster-ai/internal/model"
	"github.com/ashwinyue/monster-ai/internal/service/prompt"
	"github.com/ashwinyue/monster-ai/internal/service/session"
)

// Gateway 推理网关接口（用于依赖注入）
type Gateway interface {
	Complete(ctx context.Context, cfg model.ProviderConfig, systemPrompt, userPrompt string) string
}

// CompanionStore 伙伴档案读取接口（用于依赖注入）
type CompanionStore interface {
	GetByID(id string) (*model.Companion, error)
}

// Orchestrator 战斗编排器
// 先从网关取得叙述文本，再交给结算服务计算数值结果；
// 两步分离保证结算可以在无网络环境下独立测试
type Orchestrator struct {
	resolver        *Service
	gw              Gateway
	companions      CompanionStore
	sessions        *session.Manager
	defaultProvider model.ProviderConfig
}

// NewOrchestrator 创建战斗编排器
func NewOrchestrator(resolver *Service, gw Gateway, companions CompanionStore, sessions *session.Manager, defaultProvider model.ProviderConfig) *Orchestrator {
	return &Orchestrator{
		resolver:        resolver,
		gw:              gw,
		companions:      companions,
		sessions:        sessions,
		defaultProvider: defaultProvider,
	}
}

// Get 获取战斗会话
func (o *Orchestrator) Get(ctx context.Context, sessionID string) *model.BattleSession {
	return o.sessions.GetBattle(ctx, sessionID)
}

// Start 开始战斗
func (o *Orchestrator) Start(ctx context.Context, sessionID, companionID string) (*model.BattleSession, error) {
	companion, err := o.companions.GetByID(companionID)
	if err != nil {
		return nil, fmt.Errorf("companion not found: %w", err)
	}

	sess := o.sessions.GetBattle(ctx, sessionID)
	if err := o.resolver.Start(sess, companion); err != nil {
		return nil, err
	}
	sess.CompanionID = companion.ID

	o.sessions.SaveBattle(ctx, sess)
	return sess, nil
}

// PlayMove 出招
// 叙述在数值结算之前取得：网关失败时叙述就是回退文本本身，回合照常结算
func (o *Orchestrator) PlayMove(ctx context.Context, sessionID, move, guidance string) (*model.BattleSession, error) {
	sess := o.sessions.GetBattle(ctx, sessionID)

	// 先做廉价校验，避免为注定被拒绝的操作消耗一次网关调用
	if sess.Phase != model.BattlePhaseActive {
		return nil, ErrBattleNotActive
	}
	if !sess.PlayerTurn {
		return nil, ErrNotPlayerTurn
	}
	if !sess.Player.HasMove(move) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMove, move)
	}

	companion, err := o.companions.GetByID(sess.CompanionID)
	if err != nil {
		return nil, fmt.Errorf("companion not found: %w", err)
	}

	systemPrompt, userPrompt := prompt.BuildBattlePrompt(companion, move, guidance)
	narration := o.gw.Complete(ctx, o.providerFor(ctx, sessionID), systemPrompt, userPrompt)

	if err := o.resolver.ResolveTurn(sess, move, narration); err != nil {
		return nil, err
	}

	o.sessions.SaveBattle(ctx, sess)
	return sess, nil
}

// providerFor 取同一会话在聊天侧持有的后端配置
// 战斗叙述与聊天共用会话级的后端选择；会话尚未设置时用默认值
func (o *Orchestrator) providerFor(ctx context.Context, sessionID string) model.ProviderConfig {
	if cfg := o.sessions.GetChat(ctx, sessionID).Provider; !cfg.IsZero() {
		return cfg
	}
	return o.defaultProvider
}

// Reset 重置战斗
func (o *Orchestrator) Reset(ctx context.Context, sessionID string) *model.BattleSession {
	sess := o.sessions.GetBattle(ctx, sessionID)
	o.resolver.Reset(sess)
	o.sessions.SaveBattle(ctx, sess)
	return sess
}
