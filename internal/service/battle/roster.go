package battle

// enemyArchetype 对手原型
type enemyArchetype struct {
	Name        string
	Description string
}

// enemyRoster 固定对手花名册，开战时均匀抽取
var enemyRoster = []enemyArchetype{
	{Name: "Shadow Wolf", Description: "A mysterious wolf with dark powers"},
	{Name: "Fire Dragon", Description: "A fierce dragon breathing flames"},
	{Name: "Ice Phoenix", Description: "A majestic bird with ice abilities"},
	{Name: "Thunder Beast", Description: "An electric creature crackling with energy"},
	{Name: "Crystal Golem", Description: "A massive creature made of living crystal"},
}

// defaultEnemyMoves 对手的固定招式表，与玩家招式互不重合
var defaultEnemyMoves = []string{
	"Shadow Strike",
	"Power Blast",
	"Quick Attack",
	"Defend",
	"Heal",
}
