// Package battle 提供战斗结算服务
// 状态机 not_started → active → ended；数值结算与叙述文本完全解耦，
// 叙述由调用方事先从网关取得，结算本身不做任何网络 I/O
package battle

import (
	"errors"
	"fmt"
	"time"

	"github.com/ashwinyue/monster-ai/internal/model"
	"github.com/google/uuid"
)

// 非法操作错误
// 调用方（UI 协作方）应通过禁用控件避免触发，这里仍然安全拒绝
var (
	ErrBattleNotActive = errors.New("battle is not active")
	ErrBattleActive    = errors.New("battle is already active")
	ErrNotPlayerTurn   = errors.New("not player's turn")
	ErrUnknownMove     = errors.New("move not in combatant's move set")
)

// Service 战斗结算服务
type Service struct {
	dice Dice
}

// NewService 创建战斗结算服务
// dice 为可注入随机源，测试中可替换为固定值实现
func NewService(dice Dice) *Service {
	return &Service{dice: dice}
}

// Start 开始战斗
// 玩家战斗者从伙伴档案复制（hp = maxHp = 1000），对手从固定花名册均匀抽取
func (s *Service) Start(sess *model.BattleSession, companion *model.Companion) error {
	if sess.Phase == model.BattlePhaseActive {
		return ErrBattleActive
	}

	sess.Player = &model.Combatant{
		ID:                companion.ID,
		Name:              companion.Name,
		HP:                model.DefaultMaxHP,
		MaxHP:             model.DefaultMaxHP,
		Moves:             append([]string(nil), companion.Moves...),
		VisualDescription: companion.VisualDescription,
	}

	archetype := enemyRoster[s.dice.Pick(len(enemyRoster))]
	sess.Enemy = &model.Combatant{
		ID:                "enemy-" + uuid.New().String(),
		Name:              archetype.Name,
		HP:                model.DefaultMaxHP,
		MaxHP:             model.DefaultMaxHP,
		Moves:             append([]string(nil), defaultEnemyMoves...),
		VisualDescription: archetype.Description,
	}

	sess.Log = nil
	sess.Phase = model.BattlePhaseActive
	sess.PlayerTurn = true
	sess.Result = ""
	s.appendLog(sess, model.LogKindSystem,
		fmt.Sprintf("A wild %s appears! The battle begins!", sess.Enemy.Name))

	return nil
}

// ResolveTurn 结算一个回合
// 先结算玩家招式伤害；战斗未结束时对手立即反击，反击折叠在同一次结算中。
// narration 为网关生成的叙述文本，只进日志，不影响数值
func (s *Service) ResolveTurn(sess *model.BattleSession, move, narration string) error {
	if sess.Phase != model.BattlePhaseActive {
		return ErrBattleNotActive
	}
	if !sess.PlayerTurn {
		return ErrNotPlayerTurn
	}
	if !sess.Player.HasMove(move) {
		return fmt.Errorf("%w: %s", ErrUnknownMove, move)
	}

	// 双方伤害独立同分布抽取
	playerDamage := s.dice.Damage()
	enemyDamage := s.dice.Damage()

	sess.Enemy.HP = floorZero(sess.Enemy.HP - playerDamage)
	s.appendLog(sess, model.LogKindAction,
		fmt.Sprintf("%s %s (%d damage!)", sess.Player.Name, narration, playerDamage))

	// 对手未被击倒才反击
	if sess.Enemy.HP > 0 {
		enemyMove := sess.Enemy.Moves[s.dice.Pick(len(sess.Enemy.Moves))]
		sess.Player.HP = floorZero(sess.Player.HP - enemyDamage)
		s.appendLog(sess, model.LogKindAction,
			fmt.Sprintf("%s uses %s and deals %d damage!", sess.Enemy.Name, enemyMove, enemyDamage))
	}

	if sess.Enemy.HP == 0 || sess.Player.HP == 0 {
		sess.Phase = model.BattlePhaseEnded
		// 平局判负（刻意的决胜规则，不是疏漏）
		if sess.Player.HP > sess.Enemy.HP {
			sess.Result = model.BattleResultWin
			s.appendLog(sess, model.LogKindSystem, "Battle ended! You win!")
		} else {
			sess.Result = model.BattleResultLose
			s.appendLog(sess, model.LogKindSystem, "Battle ended! You lose!")
		}
		sess.PlayerTurn = false
		return nil
	}

	// 没有独立的对手回合，玩家始终继续行动
	sess.PlayerTurn = true
	return nil
}

// Reset 重置战斗会话
// 清空日志与对手，玩家生命值恢复满值，回到 not_started
func (s *Service) Reset(sess *model.BattleSession) {
	sess.Enemy = nil
	sess.Log = nil
	sess.Phase = model.BattlePhaseNotStarted
	sess.PlayerTurn = true
	sess.Result = ""
	if sess.Player != nil {
		sess.Player.HP = sess.Player.MaxHP
	}
}

// appendLog 追加日志条目
func (s *Service) appendLog(sess *model.BattleSession, kind model.LogKind, message string) {
	sess.Log = append(sess.Log, model.BattleLogEntry{
		ID:        uuid.New().String(),
		Message:   message,
		Timestamp: time.Now(),
		Kind:      kind,
	})
	sess.UpdatedAt = time.Now()
}

func floorZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
