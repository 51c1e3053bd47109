package components

// HealthComponent 存储战斗单位的生命值信息
// 玩家和所有敌人共用同一套生命值/伤害/死亡约定
//
// 不变式：0 <= CurrentHealth <= MaxHealth，IsDead 当且仅当 CurrentHealth == 0
type HealthComponent struct {
	CurrentHealth int  // 当前生命值
	MaxHealth     int  // 最大生命值
	IsDead        bool // 是否已死亡（敌人死亡即终态；玩家死亡记录保留到重开）
}
