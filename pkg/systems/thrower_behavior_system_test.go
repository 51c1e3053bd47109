package systems

import (
	"math"
	"testing"

	"github.com/decker502/rentday/pkg/components"
	"github.com/decker502/rentday/pkg/ecs"
	"github.com/decker502/rentday/pkg/entities"
	"github.com/decker502/rentday/pkg/utils"
)

func TestThrowerFirstThrowTiming(t *testing.T) {
	w := newTestWorld(t, nil)
	id := entities.NewThrower(w.em, w.cfg, utils.Vec3{X: 5, Y: 0.5})
	thrower, _ := ecs.GetComponent[*components.ThrowerComponent](w.em, id)

	w.thrower.Update(0)
	if !thrower.Scheduled || thrower.State != components.ThrowerIdle {
		t.Fatalf("thrower should be scheduled and idle, got %+v", thrower)
	}

	// 第一次投掷发生在 initialDelay + throwInterval
	firstThrow := w.cfg.Thrower.InitialDelay + w.cfg.Thrower.ThrowInterval
	w.sched.Advance(firstThrow - 0.1)
	if thrower.State != components.ThrowerThrowing {
		t.Errorf("thrower should be Throwing after the initial delay, got %s", thrower.State)
	}
	if thrower.Throws != 0 || len(w.enemyProjectiles()) != 0 {
		t.Fatalf("no throw expected before %.1fs", firstThrow)
	}

	w.sched.Advance(0.2)
	if thrower.Throws != 1 || len(w.enemyProjectiles()) != 1 {
		t.Fatalf("expected exactly one throw, got %d", thrower.Throws)
	}

	w.sched.Advance(w.cfg.Thrower.ThrowInterval)
	if thrower.Throws != 2 {
		t.Errorf("expected a second throw one interval later, got %d", thrower.Throws)
	}
}

func TestThrowerUpdateSchedulesOnce(t *testing.T) {
	w := newTestWorld(t, nil)
	id := entities.NewThrower(w.em, w.cfg, utils.Vec3{X: 5, Y: 0.5})

	w.thrower.Update(testDt)
	w.thrower.Update(testDt)
	if got := w.sched.PendingFor(ownerOf(id)); got != 1 {
		t.Errorf("pending timers = %d, want 1", got)
	}
}

func TestThrowerProjectileVelocity(t *testing.T) {
	w := newTestWorld(t, nil)
	id := entities.NewThrower(w.em, w.cfg, utils.Vec3{X: 5, Y: 0.5})
	w.thrower.Update(0)
	w.sched.Advance(w.cfg.Thrower.InitialDelay + w.cfg.Thrower.ThrowInterval)

	projs := w.enemyProjectiles()
	if len(projs) != 1 {
		t.Fatalf("expected one projectile, got %d", len(projs))
	}
	proj, _ := ecs.GetComponent[*components.ProjectileComponent](w.em, projs[0])
	rb, _ := ecs.GetComponent[*components.RigidBodyComponent](w.em, projs[0])
	tr, _ := ecs.GetComponent[*components.TransformComponent](w.em, projs[0])

	if proj.Source != id || proj.Damage != w.cfg.EnemyProjectile.Damage {
		t.Errorf("projectile = %+v", proj)
	}
	// 起点：身前 ThrowForward、高 ThrowHeight
	wantOrigin := utils.Vec3{X: 5 - w.cfg.Thrower.ThrowForward, Y: 0.5 + w.cfg.Thrower.ThrowHeight}
	if tr.Position.Sub(wantOrigin).Len() > 1e-9 {
		t.Errorf("origin = %+v, want %+v", tr.Position, wantOrigin)
	}
	// 速度 = 朝玩家方向 * force + up * upward
	aim := rb.Velocity.Sub(utils.Up.Scale(w.cfg.Thrower.ThrowUpward))
	if math.Abs(aim.Len()-w.cfg.Thrower.ThrowForce) > 1e-9 {
		t.Errorf("aim speed = %f, want %f", aim.Len(), w.cfg.Thrower.ThrowForce)
	}
	if aim.X >= 0 || math.Abs(aim.Z) > 1e-9 {
		t.Errorf("projectile should fly toward the player, aim=%+v", aim)
	}
}

func TestDespawnedThrowerNeverThrows(t *testing.T) {
	w := newTestWorld(t, nil)
	id := entities.NewThrower(w.em, w.cfg, utils.Vec3{X: 5, Y: 0.5})
	w.thrower.Update(0)
	w.sched.Advance(w.cfg.Thrower.InitialDelay + 0.5)

	w.combat.Despawn(id)
	w.em.RemoveMarkedEntities()
	w.sched.Advance(30)

	if len(w.enemyProjectiles()) != 0 {
		t.Error("a despawned thrower must not throw")
	}
	if w.sched.PendingFor(ownerOf(id)) != 0 {
		t.Error("despawned thrower still owns timers")
	}
}
