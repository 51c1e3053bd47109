package systems

import (
	"testing"

	"github.com/decker502/rentday/pkg/components"
	"github.com/decker502/rentday/pkg/config"
	"github.com/decker502/rentday/pkg/ecs"
	"github.com/decker502/rentday/pkg/entities"
	"github.com/decker502/rentday/pkg/utils"
)

func TestProjectileContactRules(t *testing.T) {
	tests := []struct {
		name       string
		sandwich   bool
		target     func(w *testWorld) (ecs.EntityID, components.SurfaceKind)
		wantSpent  bool
		wantPlayer int // 玩家剩余血量，-1 表示不检查
		wantKill   bool
	}{
		{
			name:       "敌方弹体命中玩家",
			target:     func(w *testWorld) (ecs.EntityID, components.SurfaceKind) { return w.playerID, components.SurfaceNone },
			wantSpent:  true,
			wantPlayer: 3,
		},
		{
			name: "敌方弹体穿过敌人",
			target: func(w *testWorld) (ecs.EntityID, components.SurfaceKind) {
				return entities.NewLunger(w.em, w.cfg, utils.Vec3{X: 3, Y: 0.5}), components.SurfaceNone
			},
			wantSpent:  false,
			wantPlayer: 5,
		},
		{
			name: "敌方弹体之间互不影响",
			target: func(w *testWorld) (ecs.EntityID, components.SurfaceKind) {
				id, _ := entities.NewEnemyProjectile(w.em, w.cfg, 0, utils.Vec3{X: 3, Y: 2}, utils.Vec3{})
				return id, components.SurfaceNone
			},
			wantSpent:  false,
			wantPlayer: 5,
		},
		{
			name:       "敌方弹体落地销毁",
			target:     func(w *testWorld) (ecs.EntityID, components.SurfaceKind) { return 0, components.SurfaceFloor },
			wantSpent:  true,
			wantPlayer: 5,
		},
		{
			name:       "敌方弹体撞交租台销毁",
			target:     func(w *testWorld) (ecs.EntityID, components.SurfaceKind) { return w.stationID, components.SurfaceNone },
			wantSpent:  true,
			wantPlayer: 5,
		},
		{
			name:     "三明治命中敌人",
			sandwich: true,
			target: func(w *testWorld) (ecs.EntityID, components.SurfaceKind) {
				return entities.NewLunger(w.em, w.cfg, utils.Vec3{X: 3, Y: 0.5}), components.SurfaceNone
			},
			wantSpent:  true,
			wantPlayer: -1,
			wantKill:   true,
		},
		{
			name:       "三明治穿过玩家",
			sandwich:   true,
			target:     func(w *testWorld) (ecs.EntityID, components.SurfaceKind) { return w.playerID, components.SurfaceNone },
			wantSpent:  false,
			wantPlayer: 5,
		},
		{
			name:       "三明治撞墙销毁",
			sandwich:   true,
			target:     func(w *testWorld) (ecs.EntityID, components.SurfaceKind) { return 0, components.SurfaceWall },
			wantSpent:  true,
			wantPlayer: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t, nil)
			w.activeRound()

			var proj ecs.EntityID
			if tt.sandwich {
				proj, _ = entities.NewSandwich(w.em, w.cfg, w.playerID, utils.Vec3{X: 1, Y: 1.6}, utils.Vec3{X: 15})
			} else {
				proj, _ = entities.NewEnemyProjectile(w.em, w.cfg, 0, utils.Vec3{X: 1, Y: 1}, utils.Vec3{X: -10})
			}
			other, surface := tt.target(w)
			w.addContact(proj, other, surface, utils.Vec3{X: 1})

			w.projectile.Update(testDt)

			if spent := !w.em.IsAlive(proj); spent != tt.wantSpent {
				t.Errorf("projectile spent = %v, want %v", spent, tt.wantSpent)
			}
			if tt.wantPlayer >= 0 {
				if got := w.playerHealth().CurrentHealth; got != tt.wantPlayer {
					t.Errorf("player health = %d, want %d", got, tt.wantPlayer)
				}
			}
			if tt.wantKill {
				if w.em.IsAlive(other) {
					t.Error("enemy should be killed")
				}
				if w.round.Score() != w.cfg.Lunger.PointValue {
					t.Errorf("score = %d, want %d", w.round.Score(), w.cfg.Lunger.PointValue)
				}
			}
		})
	}
}

func TestProjectileHitsOnlyOnce(t *testing.T) {
	w := newTestWorld(t, nil)
	proj, _ := entities.NewEnemyProjectile(w.em, w.cfg, 0, utils.Vec3{X: 1, Y: 1}, utils.Vec3{})

	// 同一帧内既碰到玩家又落地
	w.addContact(proj, w.playerID, components.SurfaceNone, utils.Vec3{X: 1})
	w.addContact(proj, w.playerID, components.SurfaceNone, utils.Vec3{X: 1})
	w.addContact(proj, 0, components.SurfaceFloor, utils.Up)
	w.projectile.Update(testDt)

	want := w.cfg.Player.MaxHealth - w.cfg.EnemyProjectile.Damage
	if got := w.playerHealth().CurrentHealth; got != want {
		t.Errorf("player health = %d, want %d", got, want)
	}
}

func TestProjectileIgnoresItsSource(t *testing.T) {
	w := newTestWorld(t, nil)
	proj, _ := entities.NewSandwich(w.em, w.cfg, w.playerID, utils.Vec3{X: 1, Y: 1.6}, utils.Vec3{X: 15})
	lunger := entities.NewLunger(w.em, w.cfg, utils.Vec3{X: 3, Y: 0.5})

	// 来源在前、敌人在后：跳过来源后仍能命中
	w.addContact(proj, w.playerID, components.SurfaceNone, utils.Vec3{X: 1})
	w.addContact(proj, lunger, components.SurfaceNone, utils.Vec3{X: -1})
	w.projectile.Update(testDt)

	if w.em.IsAlive(lunger) {
		t.Error("sandwich should still hit the enemy after skipping its source")
	}
}

// 端到端：弹体经由物理接触命中玩家
func TestEnemyProjectileHitsPlayerThroughPhysics(t *testing.T) {
	w := newTestWorld(t, nil)
	entities.NewEnemyProjectile(w.em, w.cfg, 0, utils.Vec3{X: 0.9, Y: 0.5}, utils.Vec3{X: -10})

	w.step()

	want := w.cfg.Player.MaxHealth - w.cfg.EnemyProjectile.Damage
	if got := w.playerHealth().CurrentHealth; got != want {
		t.Errorf("player health = %d, want %d", got, want)
	}
	if len(w.enemyProjectiles()) != 0 {
		t.Error("projectile should be removed after the hit")
	}
}

func TestProjectileExpiresWithoutContact(t *testing.T) {
	w := newTestWorld(t, func(cfg *config.GameConfig) { cfg.Arena.Gravity = 0 })
	entities.NewEnemyProjectile(w.em, w.cfg, 0, utils.Vec3{X: 10, Y: 5}, utils.Vec3{})

	w.run(w.cfg.EnemyProjectile.Lifetime - 0.1)
	if len(w.enemyProjectiles()) != 1 {
		t.Fatal("projectile should still be alive before its lifetime")
	}
	w.run(0.2)
	if len(w.enemyProjectiles()) != 0 {
		t.Error("projectile should expire at its lifetime cap")
	}
}
