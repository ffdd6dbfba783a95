package model

import "time"

// 战斗常量
const (
	// DefaultMaxHP 战斗双方的初始生命值
	DefaultMaxHP = 1000
	// MinDamage 单次伤害下限（含）
	MinDamage = 50
	// MaxDamage 单次伤害上限（含）
	MaxDamage = 200
)

// BattlePhase 战斗阶段
type BattlePhase string

const (
	BattlePhaseNotStarted BattlePhase = "not_started"
	BattlePhaseActive     BattlePhase = "active"
	BattlePhaseEnded      BattlePhase = "ended"
)

// BattleResult 战斗结果
type BattleResult string

const (
	BattleResultWin  BattleResult = "win"
	BattleResultLose BattleResult = "lose"
)

// LogKind 战斗日志类型
type LogKind string

const (
	LogKindAction LogKind = "action"
	LogKindDamage LogKind = "damage"
	LogKindHeal   LogKind = "heal"
	LogKindSystem LogKind = "system"
)

// Combatant 战斗参与者（玩家伙伴或随机生成的对手）
// HP 只由战斗结算修改，0 <= HP <= MaxHP
type Combatant struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	HP                int      `json:"hp"`
	MaxHP             int      `json:"max_hp"`
	Moves             []string `json:"moves"`
	VisualDescription string   `json:"visual_description"`
}

// BattleLogEntry 战斗日志条目
// 只追加不修改，完整序列即战斗记录
type BattleLogEntry struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Kind      LogKind   `json:"kind"`
}

// BattleSession 战斗会话状态
// 不变式：Result 非空当且仅当 Phase == ended；Phase == active 时双方 HP > 0
type BattleSession struct {
	ID          string           `json:"id"`
	CompanionID string           `json:"companion_id"`
	Phase       BattlePhase      `json:"phase"`
	Player      *Combatant       `json:"player,omitempty"`
	Enemy       *Combatant       `json:"enemy,omitempty"`
	Log         []BattleLogEntry `json:"log"`
	PlayerTurn  bool             `json:"player_turn"`
	Result      BattleResult     `json:"result,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// HasMove 检查战斗者是否拥有指定招式
func (c *Combatant) HasMove(move string) bool {
	for _, m := range c.Moves {
		if m == move {
			return true
		}
	}
	return false
}
