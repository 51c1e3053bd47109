package entities

import (
	"fmt"

	"github.com/decker502/rentday/pkg/components"
	"github.com/decker502/rentday/pkg/config"
	"github.com/decker502/rentday/pkg/ecs"
	"github.com/decker502/rentday/pkg/utils"
)

// NewEnemy 按原型创建敌人实体
//
// 参数:
//   - em: 实体管理器
//   - cfg: 游戏配置（提供原型属性）
//   - archetype: 敌人原型
//   - pos: 生成位置（球心）
//
// 返回:
//   - ecs.EntityID: 敌人实体ID，失败返回 0
//   - error: 未知原型或参数为空
func NewEnemy(em *ecs.EntityManager, cfg *config.GameConfig, archetype components.Archetype, pos utils.Vec3) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return 0, fmt.Errorf("game config cannot be nil")
	}

	switch archetype {
	case components.ArchetypeLunger:
		return NewLunger(em, cfg, pos), nil
	case components.ArchetypeThrower:
		return NewThrower(em, cfg, pos), nil
	default:
		return 0, fmt.Errorf("unknown enemy archetype: %q", archetype)
	}
}

// NewLunger 创建弹跳型敌人
// 初始为 Seeking，落地后开始朝玩家弹跳
func NewLunger(em *ecs.EntityManager, cfg *config.GameConfig, pos utils.Vec3) ecs.EntityID {
	id := newEnemyBase(em, components.ArchetypeLunger, cfg.Lunger.EnemyStats, pos)
	ecs.AddComponent(em, id, &components.LungerComponent{State: components.LungerSeeking})
	return id
}

// NewThrower 创建投掷型敌人
// 初始延迟计时器由 ThrowerBehaviorSystem 在第一个模拟帧注册
func NewThrower(em *ecs.EntityManager, cfg *config.GameConfig, pos utils.Vec3) ecs.EntityID {
	id := newEnemyBase(em, components.ArchetypeThrower, cfg.Thrower.EnemyStats, pos)
	ecs.AddComponent(em, id, &components.ThrowerComponent{State: components.ThrowerIdle})
	return id
}

func newEnemyBase(em *ecs.EntityManager, archetype components.Archetype, stats config.EnemyStats, pos utils.Vec3) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.EnemyComponent{
		Archetype:      archetype,
		PointValue:     stats.PointValue,
		DamageToPlayer: stats.DamageToPlayer,
	})
	ecs.AddComponent(em, id, &components.HealthComponent{
		CurrentHealth: stats.Health,
		MaxHealth:     stats.Health,
	})
	ecs.AddComponent(em, id, &components.TransformComponent{Position: pos})
	ecs.AddComponent(em, id, &components.RigidBodyComponent{
		Radius:     stats.Radius,
		UseGravity: true,
		Solid:      true,
	})
	ecs.AddComponent(em, id, newContactComponent())
	return id
}
