package components

// Archetype 敌人行为原型
type Archetype string

const (
	// ArchetypeLunger 近战弹跳型：朝玩家连续弹跳并造成接触伤害
	ArchetypeLunger Archetype = "lunger"
	// ArchetypeThrower 远程投掷型：定时朝玩家投掷弹体
	ArchetypeThrower Archetype = "thrower"
)

// Archetypes 所有敌人原型，按固定顺序排列（用于稳定的计时器注册顺序）
var Archetypes = []Archetype{ArchetypeLunger, ArchetypeThrower}

// EnemyComponent 敌人实例的通用数据
type EnemyComponent struct {
	Archetype      Archetype
	PointValue     int // 击杀得分
	DamageToPlayer int // 接触玩家时造成的伤害

	// Reported 死亡是否已上报回合控制器
	// 同一帧内多个伤害来源同时致死时，只有第一次过零会上报
	Reported bool
}
