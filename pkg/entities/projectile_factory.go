package entities

import (
	"fmt"

	"github.com/decker502/rentday/pkg/components"
	"github.com/decker502/rentday/pkg/config"
	"github.com/decker502/rentday/pkg/ecs"
	"github.com/decker502/rentday/pkg/utils"
)

// NewEnemyProjectile 创建投掷型敌人发射的弹体
//
// 弹体受重力影响，命中玩家或任意非敌人表面时销毁，
// 并且无论是否碰撞，到达生命周期上限后一定销毁。
//
// 参数:
//   - em: 实体管理器
//   - cfg: 游戏配置
//   - source: 发射者实体ID（命中判定时忽略自身）
//   - pos: 起始位置
//   - velocity: 初速度
func NewEnemyProjectile(em *ecs.EntityManager, cfg *config.GameConfig, source ecs.EntityID, pos, velocity utils.Vec3) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return 0, fmt.Errorf("game config cannot be nil")
	}
	pc := cfg.EnemyProjectile
	return newProjectile(em, components.FactionEnemy, pc.Damage, pc.Radius, pc.Lifetime, source, pos, velocity), nil
}

// NewSandwich 创建玩家投掷的三明治
// 命中敌人造成伤害并销毁，命中玩家以外的任何物体都会销毁
func NewSandwich(em *ecs.EntityManager, cfg *config.GameConfig, source ecs.EntityID, pos, velocity utils.Vec3) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return 0, fmt.Errorf("game config cannot be nil")
	}
	sc := cfg.Player.Sandwich
	return newProjectile(em, components.FactionPlayer, sc.Damage, sc.Radius, sc.Lifetime, source, pos, velocity), nil
}

func newProjectile(em *ecs.EntityManager, faction components.Faction, damage int, radius, lifetime float64,
	source ecs.EntityID, pos, velocity utils.Vec3) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.ProjectileComponent{
		Owner:  faction,
		Damage: damage,
		Source: source,
	})
	ecs.AddComponent(em, id, &components.TransformComponent{Position: pos})
	ecs.AddComponent(em, id, &components.RigidBodyComponent{
		Velocity:   velocity,
		Radius:     radius,
		UseGravity: true,
	})
	ecs.AddComponent(em, id, &components.LifetimeComponent{MaxLifetime: lifetime})
	ecs.AddComponent(em, id, newContactComponent())
	return id
}
