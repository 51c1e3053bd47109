package systems

import (
	"github.com/decker502/rentday/pkg/components"
	"github.com/decker502/rentday/pkg/ecs"
)

// ProjectileSystem 结算弹体的接触事件
//
// 敌方弹体：命中玩家造成伤害并销毁；命中敌人（包括其他敌方弹体）忽略；
// 命中其他任何表面或实体都会销毁。
// 三明治：命中敌人造成伤害并销毁；命中玩家忽略；命中其他任何物体都会销毁。
//
// 生命周期上限由 LifetimeSystem 负责。
type ProjectileSystem struct {
	entityManager *ecs.EntityManager
	combat        *CombatSystem
}

// NewProjectileSystem 创建弹体系统
func NewProjectileSystem(em *ecs.EntityManager, combat *CombatSystem) *ProjectileSystem {
	return &ProjectileSystem{
		entityManager: em,
		combat:        combat,
	}
}

// Update 处理本帧所有弹体的接触开始事件
func (s *ProjectileSystem) Update(deltaTime float64) {
	projectiles := ecs.GetEntitiesWith2[*components.ProjectileComponent, *components.ContactComponent](s.entityManager)
	for _, id := range projectiles {
		proj, _ := ecs.GetComponent[*components.ProjectileComponent](s.entityManager, id)
		contact, _ := ecs.GetComponent[*components.ContactComponent](s.entityManager, id)

		for _, ev := range contact.Events {
			if proj.Spent {
				break
			}
			if ev.Other != 0 && ev.Other == proj.Source {
				continue
			}
			switch proj.Owner {
			case components.FactionEnemy:
				s.resolveEnemyProjectile(id, proj, ev)
			case components.FactionPlayer:
				s.resolveSandwich(id, proj, ev)
			}
		}
	}
}

func (s *ProjectileSystem) resolveEnemyProjectile(id ecs.EntityID, proj *components.ProjectileComponent, ev components.Contact) {
	if ev.Other != 0 {
		if ecs.HasComponent[*components.PlayerComponent](s.entityManager, ev.Other) {
			s.spend(id, proj)
			s.combat.TakeDamage(ev.Other, proj.Damage)
			return
		}
		if ecs.HasComponent[*components.EnemyComponent](s.entityManager, ev.Other) {
			return
		}
		if other, ok := ecs.GetComponent[*components.ProjectileComponent](s.entityManager, ev.Other); ok && other.Owner == components.FactionEnemy {
			return
		}
	}
	s.spend(id, proj)
}

func (s *ProjectileSystem) resolveSandwich(id ecs.EntityID, proj *components.ProjectileComponent, ev components.Contact) {
	if ev.Other != 0 {
		if ecs.HasComponent[*components.PlayerComponent](s.entityManager, ev.Other) {
			return
		}
		if ecs.HasComponent[*components.EnemyComponent](s.entityManager, ev.Other) {
			s.spend(id, proj)
			s.combat.TakeDamage(ev.Other, proj.Damage)
			return
		}
	}
	s.spend(id, proj)
}

func (s *ProjectileSystem) spend(id ecs.EntityID, proj *components.ProjectileComponent) {
	proj.Spent = true
	s.combat.Despawn(id)
}
