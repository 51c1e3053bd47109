package systems

import (
	"github.com/decker502/rentday/pkg/components"
	"github.com/decker502/rentday/pkg/ecs"
	"github.com/decker502/rentday/pkg/scheduler"
)

// LifetimeSystem 管理实体的生命周期上限
// 弹体无论是否发生碰撞，到期后一定销毁
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
	scheduler     *scheduler.Scheduler
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager, sched *scheduler.Scheduler) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
		scheduler:     sched,
	}
}

// Update 累加存在时间并销毁过期实体，返回本帧过期数量
func (s *LifetimeSystem) Update(deltaTime float64) int {
	expired := 0
	for _, id := range ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager) {
		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if !ok || lifetime.IsExpired {
			continue
		}

		lifetime.CurrentLifetime += deltaTime
		// 与调度器使用相同的浮点容差，5 秒的弹体恰好在第 300 帧过期
		if lifetime.CurrentLifetime+1e-9 < lifetime.MaxLifetime {
			continue
		}

		lifetime.IsExpired = true
		s.entityManager.DestroyEntity(id)
		if s.scheduler != nil {
			s.scheduler.CancelOwner(scheduler.Owner(id))
		}
		expired++
	}
	return expired
}
