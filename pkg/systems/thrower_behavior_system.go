package systems

import (
	"log"

	"github.com/decker502/rentday/pkg/components"
	"github.com/decker502/rentday/pkg/config"
	"github.com/decker502/rentday/pkg/ecs"
	"github.com/decker502/rentday/pkg/entities"
	"github.com/decker502/rentday/pkg/scheduler"
	"github.com/decker502/rentday/pkg/utils"
)

// ThrowerBehaviorSystem 投掷型敌人的状态机
//
// Idle(初始延迟) → Throwing(每 ThrowInterval 秒投掷一次)
//
// 两个定时器的所有者都是敌人实体ID，敌人死亡或被清场时 CancelOwner
// 会一并取消，因此已销毁的敌人不会再投掷。
type ThrowerBehaviorSystem struct {
	entityManager *ecs.EntityManager
	scheduler     *scheduler.Scheduler
	config        *config.GameConfig
}

// NewThrowerBehaviorSystem 创建投掷型敌人行为系统
func NewThrowerBehaviorSystem(em *ecs.EntityManager, sched *scheduler.Scheduler, cfg *config.GameConfig) *ThrowerBehaviorSystem {
	return &ThrowerBehaviorSystem{
		entityManager: em,
		scheduler:     sched,
		config:        cfg,
	}
}

// Update 为新生成的投掷者注册初始延迟定时器
func (s *ThrowerBehaviorSystem) Update(deltaTime float64) {
	throwers := ecs.GetEntitiesWith1[*components.ThrowerComponent](s.entityManager)
	for _, id := range throwers {
		thrower, _ := ecs.GetComponent[*components.ThrowerComponent](s.entityManager, id)
		if thrower.Scheduled {
			continue
		}
		thrower.Scheduled = true

		enemyID := id
		s.scheduler.After(scheduler.Owner(enemyID), s.config.Thrower.InitialDelay, func() {
			s.startThrowing(enemyID)
		})
	}
}

func (s *ThrowerBehaviorSystem) startThrowing(id ecs.EntityID) {
	if !s.entityManager.IsAlive(id) {
		return
	}
	thrower, ok := ecs.GetComponent[*components.ThrowerComponent](s.entityManager, id)
	if !ok {
		return
	}
	thrower.State = components.ThrowerThrowing
	log.Printf("[ThrowerBehaviorSystem] 敌人 %d 开始投掷 (间隔 %.1fs)", id, s.config.Thrower.ThrowInterval)

	s.scheduler.Every(scheduler.Owner(id), s.config.Thrower.ThrowInterval, func() {
		s.throw(id)
	})
}

// throw 面向玩家并发射一枚弹体
func (s *ThrowerBehaviorSystem) throw(id ecs.EntityID) {
	if !s.entityManager.IsAlive(id) {
		return
	}
	if health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, id); ok && health.IsDead {
		return
	}
	playerID, ok := ecs.FirstWith[*components.PlayerComponent](s.entityManager)
	if !ok {
		return
	}
	playerTr, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, playerID)
	if !ok {
		return
	}
	tr, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
	if !ok {
		return
	}
	thrower, _ := ecs.GetComponent[*components.ThrowerComponent](s.entityManager, id)

	tc := s.config.Thrower
	tr.Yaw = tr.Position.YawTo(playerTr.Position)
	forward := utils.Forward(tr.Yaw, 0)
	origin := tr.Position.Add(utils.Up.Scale(tc.ThrowHeight)).Add(forward.Scale(tc.ThrowForward))

	dir := playerTr.Position.Sub(origin).Normalize()
	velocity := dir.Scale(tc.ThrowForce).Add(utils.Up.Scale(tc.ThrowUpward))

	if _, err := entities.NewEnemyProjectile(s.entityManager, s.config, id, origin, velocity); err != nil {
		log.Printf("[ThrowerBehaviorSystem] 创建弹体失败: %v", err)
		return
	}
	if thrower != nil {
		thrower.Throws++
	}
}
