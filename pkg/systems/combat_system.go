package systems

import (
	"log"

	"github.com/decker502/rentday/pkg/components"
	"github.com/decker502/rentday/pkg/ecs"
	"github.com/decker502/rentday/pkg/game"
	"github.com/decker502/rentday/pkg/scheduler"
)

// CombatSystem 战斗单位的生命值/伤害/死亡约定
//
// 玩家和所有敌人共用这一套规则：
//   - 伤害与治疗的负数参数按 0 处理
//   - 死亡只在第一次过零时触发一次
//   - 敌人死亡立即销毁，并取消其名下的全部定时器
//
// 遵循零耦合原则：通过回调通知回合控制器，不直接引用 RoundSystem。
type CombatSystem struct {
	entityManager *ecs.EntityManager
	scheduler     *scheduler.Scheduler
	presenter     game.Presenter
	feedback      game.Feedback

	onEnemyKilled func(pointValue int)
	onPlayerDeath func()
}

// NewCombatSystem 创建战斗系统
// presenter/feedback 可为 nil（无头模式）
func NewCombatSystem(em *ecs.EntityManager, sched *scheduler.Scheduler, presenter game.Presenter, feedback game.Feedback) *CombatSystem {
	return &CombatSystem{
		entityManager: em,
		scheduler:     sched,
		presenter:     game.OrNopPresenter(presenter),
		feedback:      game.OrNopFeedback(feedback),
	}
}

// SetOnEnemyKilled 设置敌人死亡回调（每个敌人至多调用一次）
func (s *CombatSystem) SetOnEnemyKilled(fn func(pointValue int)) {
	s.onEnemyKilled = fn
}

// SetOnPlayerDeath 设置玩家死亡回调
func (s *CombatSystem) SetOnPlayerDeath(fn func()) {
	s.onPlayerDeath = fn
}

// applyDamage 扣除生命值并夹在 0，返回本次是否由生到死
func applyDamage(h *components.HealthComponent, amount int) bool {
	if h.IsDead {
		return false
	}
	if amount < 0 {
		amount = 0
	}
	h.CurrentHealth -= amount
	if h.CurrentHealth < 0 {
		h.CurrentHealth = 0
	}
	if h.CurrentHealth == 0 {
		h.IsDead = true
		return true
	}
	return false
}

// applyHeal 增加生命值并夹在 MaxHealth，死亡后无效
func applyHeal(h *components.HealthComponent, amount int) bool {
	if h.IsDead {
		return false
	}
	if amount < 0 {
		amount = 0
	}
	h.CurrentHealth += amount
	if h.CurrentHealth > h.MaxHealth {
		h.CurrentHealth = h.MaxHealth
	}
	return true
}

// TakeDamage 对实体造成伤害
//
// 已死亡的实体调用无效。每次有效调用都会发出生命值变化通知（即使被夹在 0）。
//
// 返回：
//   - bool: 只有致死的那一次调用返回 true
func (s *CombatSystem) TakeDamage(id ecs.EntityID, amount int) bool {
	health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, id)
	if !ok {
		return false
	}
	if amount < 0 {
		log.Printf("[CombatSystem] 实体 %d 收到负伤害 %d，按 0 处理", id, amount)
		amount = 0
	}
	if health.IsDead {
		return false
	}

	killed := applyDamage(health, amount)
	s.notifyHealth(id, health, amount > 0)

	if killed {
		s.handleDeath(id)
	}
	return killed
}

// Heal 治疗实体（敌人不会被治疗，只有玩家调用）
func (s *CombatSystem) Heal(id ecs.EntityID, amount int) {
	health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, id)
	if !ok {
		return
	}
	if amount < 0 {
		log.Printf("[CombatSystem] 实体 %d 收到负治疗 %d，按 0 处理", id, amount)
		amount = 0
	}
	if !applyHeal(health, amount) {
		return
	}
	s.notifyHealth(id, health, false)
}

func (s *CombatSystem) notifyHealth(id ecs.EntityID, health *components.HealthComponent, hurt bool) {
	if ecs.HasComponent[*components.PlayerComponent](s.entityManager, id) {
		s.presenter.OnHealthChanged(health.CurrentHealth, health.MaxHealth)
		if hurt && !health.IsDead {
			s.feedback.Play(game.FeedbackPlayerHurt)
		}
		return
	}
	if ecs.HasComponent[*components.EnemyComponent](s.entityManager, id) && hurt {
		s.feedback.Play(game.FeedbackEnemyHit)
	}
}

func (s *CombatSystem) handleDeath(id ecs.EntityID) {
	if ecs.HasComponent[*components.PlayerComponent](s.entityManager, id) {
		log.Printf("[CombatSystem] 玩家 %d 死亡", id)
		s.feedback.Play(game.FeedbackPlayerDied)
		if s.onPlayerDeath != nil {
			s.onPlayerDeath()
		}
		return
	}

	enemy, ok := ecs.GetComponent[*components.EnemyComponent](s.entityManager, id)
	if !ok || enemy.Reported {
		return
	}
	enemy.Reported = true

	s.Despawn(id)
	s.feedback.Play(game.FeedbackEnemyKilled)
	if s.onEnemyKilled != nil {
		s.onEnemyKilled(enemy.PointValue)
	}
}

// Despawn 立即移除实体：标记删除并取消其名下全部定时器
// 被销毁的实体不会再执行任何行为
func (s *CombatSystem) Despawn(id ecs.EntityID) {
	s.entityManager.DestroyEntity(id)
	if s.scheduler != nil {
		s.scheduler.CancelOwner(scheduler.Owner(id))
	}
}

// Update 结算本帧敌人与玩家的接触伤害
//
// 每个接触开始事件造成一次 DamageToPlayer。同一帧内的多次伤害依次累加，
// 与处理顺序无关。
func (s *CombatSystem) Update(deltaTime float64) {
	playerID, ok := ecs.FirstWith[*components.PlayerComponent](s.entityManager)
	if !ok {
		return
	}

	enemies := ecs.GetEntitiesWith2[*components.EnemyComponent, *components.ContactComponent](s.entityManager)
	for _, id := range enemies {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.entityManager, id)
		contact, _ := ecs.GetComponent[*components.ContactComponent](s.entityManager, id)
		for _, ev := range contact.Events {
			if ev.Other == playerID {
				s.TakeDamage(playerID, enemy.DamageToPlayer)
			}
		}
	}
}
