package components

import "github.com/decker502/rentday/pkg/ecs"

// Faction 弹体所属阵营
type Faction int

const (
	FactionEnemy Faction = iota
	FactionPlayer
)

// ProjectileComponent 弹体数据
type ProjectileComponent struct {
	Owner  Faction
	Damage int
	Source ecs.EntityID // 发射者（命中判定时忽略自身）
	Spent  bool         // 已命中，防止同一帧重复结算
}
