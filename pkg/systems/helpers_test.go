package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/decker502/rentday/pkg/components"
	"github.com/decker502/rentday/pkg/config"
	"github.com/decker502/rentday/pkg/ecs"
	"github.com/decker502/rentday/pkg/entities"
	"github.com/decker502/rentday/pkg/game"
	"github.com/decker502/rentday/pkg/scheduler"
	"github.com/decker502/rentday/pkg/utils"
)

const testDt = 1.0 / 60.0

// recordingPresenter 记录所有展示事件
type recordingPresenter struct {
	health    [][2]int
	stats     []game.RoundStats
	started   []game.RoundStats
	ended     []game.RoundStats
	gameOvers []string
	messages  []string
	prompts   []string
}

func (p *recordingPresenter) OnHealthChanged(current, max int) {
	p.health = append(p.health, [2]int{current, max})
}
func (p *recordingPresenter) OnStatsChanged(stats game.RoundStats) { p.stats = append(p.stats, stats) }
func (p *recordingPresenter) OnRoundStarted(stats game.RoundStats) {
	p.started = append(p.started, stats)
}
func (p *recordingPresenter) OnRoundEnded(stats game.RoundStats) { p.ended = append(p.ended, stats) }
func (p *recordingPresenter) OnGameOver(stats game.RoundStats, reason, message string) {
	p.gameOvers = append(p.gameOvers, reason)
	p.messages = append(p.messages, message)
}
func (p *recordingPresenter) OnPrompt(text string) { p.prompts = append(p.prompts, text) }

// recordingFeedback 记录所有反馈事件
type recordingFeedback struct {
	events []game.FeedbackEvent
}

func (f *recordingFeedback) Play(event game.FeedbackEvent) { f.events = append(f.events, event) }

func (f *recordingFeedback) count(event game.FeedbackEvent) int {
	n := 0
	for _, e := range f.events {
		if e == event {
			n++
		}
	}
	return n
}

// testWorld 按会话相同的顺序组装全部系统
type testWorld struct {
	t         *testing.T
	cfg       *config.GameConfig
	em        *ecs.EntityManager
	sched     *scheduler.Scheduler
	presenter *recordingPresenter
	feedback  *recordingFeedback

	combat     *CombatSystem
	physics    *PhysicsSystem
	lunger     *LungerBehaviorSystem
	thrower    *ThrowerBehaviorSystem
	projectile *ProjectileSystem
	lifetime   *LifetimeSystem
	player     *PlayerSystem
	spawner    *WaveSpawnSystem
	round      *RoundSystem

	playerID  ecs.EntityID
	stationID ecs.EntityID
}

func newTestWorld(t *testing.T, mutate func(cfg *config.GameConfig)) *testWorld {
	t.Helper()
	cfg := config.DefaultGameConfig()
	if mutate != nil {
		mutate(cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}

	w := &testWorld{
		t:         t,
		cfg:       cfg,
		em:        ecs.NewEntityManager(),
		sched:     scheduler.New(),
		presenter: &recordingPresenter{},
		feedback:  &recordingFeedback{},
	}
	rng := rand.New(rand.NewSource(7))

	w.combat = NewCombatSystem(w.em, w.sched, w.presenter, w.feedback)
	w.physics = NewPhysicsSystem(w.em, cfg.Arena)
	w.lunger = NewLungerBehaviorSystem(w.em, w.physics, cfg.Lunger, rng)
	w.thrower = NewThrowerBehaviorSystem(w.em, w.sched, cfg)
	w.projectile = NewProjectileSystem(w.em, w.combat)
	w.lifetime = NewLifetimeSystem(w.em, w.sched)
	w.player = NewPlayerSystem(w.em, w.sched, cfg, w.feedback)
	w.spawner = NewWaveSpawnSystem(w.em, w.sched, cfg, rng, func(a components.Archetype, pos utils.Vec3) (ecs.EntityID, error) {
		return entities.NewEnemy(w.em, cfg, a, pos)
	})
	w.round = NewRoundSystem(w.em, w.sched, cfg, w.spawner, w.combat, w.presenter, w.feedback)

	w.combat.SetOnEnemyKilled(w.round.OnEnemyKilled)
	w.combat.SetOnPlayerDeath(w.round.OnPlayerDeath)
	w.player.SetOnInteract(w.round.Interact)

	var err error
	if w.playerID, err = entities.NewPlayer(w.em, cfg); err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	if w.stationID, err = entities.NewRentStation(w.em, cfg); err != nil {
		t.Fatalf("NewRentStation: %v", err)
	}
	return w
}

// step 执行一个固定模拟步
func (w *testWorld) step() {
	w.sched.Advance(testDt)
	w.player.Update(testDt)
	w.lunger.Update(testDt)
	w.thrower.Update(testDt)
	w.physics.Update(testDt)
	w.lunger.ResolveContacts()
	w.combat.Update(testDt)
	w.projectile.Update(testDt)
	w.lifetime.Update(testDt)
	w.round.Update(testDt)
	w.em.RemoveMarkedEntities()
	w.physics.ClearContacts()
}

// run 推进 seconds 秒模拟时间
func (w *testWorld) run(seconds float64) {
	steps := int(math.Round(seconds / testDt))
	for i := 0; i < steps; i++ {
		w.step()
	}
}

func (w *testWorld) enemies() []ecs.EntityID {
	return ecs.GetEntitiesWith1[*components.EnemyComponent](w.em)
}

func (w *testWorld) enemyProjectiles() []ecs.EntityID {
	var out []ecs.EntityID
	for _, id := range ecs.GetEntitiesWith1[*components.ProjectileComponent](w.em) {
		p, _ := ecs.GetComponent[*components.ProjectileComponent](w.em, id)
		if p.Owner == components.FactionEnemy {
			out = append(out, id)
		}
	}
	return out
}

func (w *testWorld) playerHealth() *components.HealthComponent {
	h, _ := ecs.GetComponent[*components.HealthComponent](w.em, w.playerID)
	return h
}

func (w *testWorld) setPlayerPos(pos utils.Vec3) {
	tr, _ := ecs.GetComponent[*components.TransformComponent](w.em, w.playerID)
	tr.Position = pos
}

// activeRound 跳过开场倒计时，直接进入第 1 回合
func (w *testWorld) activeRound() {
	w.round.StartRound()
	if w.round.Phase() != components.PhaseActive {
		w.t.Fatalf("expected Active, got %s", w.round.Phase())
	}
}

// addContact 手动注入一个接触开始事件
func (w *testWorld) addContact(self, other ecs.EntityID, surface components.SurfaceKind, normal utils.Vec3) {
	c, ok := ecs.GetComponent[*components.ContactComponent](w.em, self)
	if !ok {
		w.t.Fatalf("entity %d has no ContactComponent", self)
	}
	c.Events = append(c.Events, components.Contact{Other: other, Surface: surface, Normal: normal})
}

func ownerOf(id ecs.EntityID) scheduler.Owner {
	return scheduler.Owner(id)
}

func (w *testWorld) input() *components.PlayerInputComponent {
	input, _ := ecs.GetComponent[*components.PlayerInputComponent](w.em, w.playerID)
	return input
}
