package battle

import (
	"math/rand"

	"github.com/ashwinyue/monster-ai/internal/model"
)

// Dice 随机源
// 结算所需的全部随机性都经过该接口，便于测试注入固定值
type Dice interface {
	// Damage 返回 [MinDamage, MaxDamage] 范围内的伤害值
	Damage() int
	// Pick 返回 [0, n) 范围内的下标
	Pick(n int) int
}

// randDice 基于 math/rand 的默认实现
type randDice struct {
	rng *rand.Rand
}

// NewDice 创建带种子的随机源
// 相同种子产生相同的伤害与选取序列
func NewDice(seed int64) Dice {
	return &randDice{rng: rand.New(rand.NewSource(seed))}
}

func (d *randDice) Damage() int {
	return d.rng.Intn(model.MaxDamage-model.MinDamage+1) + model.MinDamage
}

func (d *randDice) Pick(n int) int {
	return d.rng.Intn(n)
}
