// Package session 组装一局完整的生存循环
//
// Session 持有实体管理器、调度器和全部固定步长系统，负责两套时钟的换算：
// 前端按可变的展示帧调用 Update，Session 把累计时间切成固定的模拟步。
// 前端（ebiten 窗口、终端界面、测试）只通过 SetInput / Update / Snapshot 交互。
package session

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/decker502/rentday/pkg/components"
	"github.com/decker502/rentday/pkg/config"
	"github.com/decker502/rentday/pkg/ecs"
	"github.com/decker502/rentday/pkg/entities"
	"github.com/decker502/rentday/pkg/game"
	"github.com/decker502/rentday/pkg/scheduler"
	"github.com/decker502/rentday/pkg/systems"
	"github.com/decker502/rentday/pkg/utils"
)

// accumulatorEpsilon 吸收浮点累加误差，避免 1/60 的帧少跑一步
const accumulatorEpsilon = 1e-9

// Options 会话的可选协作者
type Options struct {
	// Seed 刷怪随机种子（0 表示使用固定默认种子 1）
	Seed int64
	// Presenter 展示层接收器，可为 nil
	Presenter game.Presenter
	// Feedback 反馈接收器，可为 nil
	Feedback game.Feedback
}

// Input 前端每帧提交的输入意图
type Input struct {
	MoveX, MoveZ float64
	Yaw, Pitch   float64

	MakeSandwich bool
	Throw        bool
	Interact     bool
}

// Session 一局游戏
type Session struct {
	config    *config.GameConfig
	presenter game.Presenter
	feedback  game.Feedback
	rng       *rand.Rand

	entityManager *ecs.EntityManager
	scheduler     *scheduler.Scheduler

	combat     *systems.CombatSystem
	physics    *systems.PhysicsSystem
	lunger     *systems.LungerBehaviorSystem
	thrower    *systems.ThrowerBehaviorSystem
	projectile *systems.ProjectileSystem
	lifetime   *systems.LifetimeSystem
	player     *systems.PlayerSystem
	spawner    *systems.WaveSpawnSystem
	round      *systems.RoundSystem

	playerID  ecs.EntityID
	stationID ecs.EntityID

	accumulator float64
	steps       uint64
	restarts    int
}

// New 创建会话并搭建第一局
//
// 参数：
//   - cfg: 游戏配置（必须已通过 Validate）
//   - opts: 可选协作者
//
// 返回：
//   - *Session: 处于 Intro 阶段、尚未开始倒计时的会话
//   - error: 配置无效或实体创建失败
func New(cfg *config.GameConfig, opts Options) (*Session, error) {
	if cfg == nil {
		return nil, fmt.Errorf("game config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = 1
	}
	s := &Session{
		config:    cfg,
		presenter: game.OrNopPresenter(opts.Presenter),
		feedback:  game.OrNopFeedback(opts.Feedback),
		rng:       rand.New(rand.NewSource(seed)),
	}
	if err := s.build(); err != nil {
		return nil, err
	}
	log.Printf("[Session] 会话已创建 (seed=%d, tickRate=%d)", seed, cfg.Simulation.TickRate)
	return s, nil
}

// build 重新创建全部实体与系统
func (s *Session) build() error {
	em := ecs.NewEntityManager()
	sched := scheduler.New()
	cfg := s.config

	combat := systems.NewCombatSystem(em, sched, s.presenter, s.feedback)
	physics := systems.NewPhysicsSystem(em, cfg.Arena)
	spawner := systems.NewWaveSpawnSystem(em, sched, cfg, s.rng, func(a components.Archetype, pos utils.Vec3) (ecs.EntityID, error) {
		return entities.NewEnemy(em, cfg, a, pos)
	})
	round := systems.NewRoundSystem(em, sched, cfg, spawner, combat, s.presenter, s.feedback)
	player := systems.NewPlayerSystem(em, sched, cfg, s.feedback)

	combat.SetOnEnemyKilled(round.OnEnemyKilled)
	combat.SetOnPlayerDeath(round.OnPlayerDeath)
	player.SetOnInteract(round.Interact)

	playerID, err := entities.NewPlayer(em, cfg)
	if err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}
	stationID, err := entities.NewRentStation(em, cfg)
	if err != nil {
		return fmt.Errorf("failed to create rent station: %w", err)
	}

	s.entityManager = em
	s.scheduler = sched
	s.combat = combat
	s.physics = physics
	s.lunger = systems.NewLungerBehaviorSystem(em, physics, cfg.Lunger, s.rng)
	s.thrower = systems.NewThrowerBehaviorSystem(em, sched, cfg)
	s.projectile = systems.NewProjectileSystem(em, combat)
	s.lifetime = systems.NewLifetimeSystem(em, sched)
	s.player = player
	s.spawner = spawner
	s.round = round
	s.playerID = playerID
	s.stationID = stationID
	s.accumulator = 0
	return nil
}

// Begin 开始开场倒计时，并把初始数值推给展示层
func (s *Session) Begin() {
	maxHealth := s.config.Player.MaxHealth
	s.presenter.OnHealthChanged(maxHealth, maxHealth)
	s.presenter.OnStatsChanged(s.round.Stats())
	s.presenter.OnPrompt("")
	s.round.Begin()
}

// Restart 以相同配置重开一局（回到 Intro，经济恢复初始值）并立即开始倒计时
func (s *Session) Restart() error {
	s.scheduler.Reset()
	if err := s.build(); err != nil {
		return err
	}
	s.restarts++
	log.Printf("[Session] 第 %d 次重开", s.restarts)
	s.Begin()
	return nil
}

// SetInput 写入本帧输入
//
// 连续量（移动、朝向）直接覆盖；边沿量与尚未消费的值取或，
// 一个展示帧内没有跑模拟步时按键也不会丢失。
func (s *Session) SetInput(in Input) {
	input, ok := ecs.GetComponent[*components.PlayerInputComponent](s.entityManager, s.playerID)
	if !ok {
		return
	}
	input.MoveX, input.MoveZ = in.MoveX, in.MoveZ
	input.Yaw, input.Pitch = in.Yaw, in.Pitch
	input.MakeSandwich = input.MakeSandwich || in.MakeSandwich
	input.Throw = input.Throw || in.Throw
	input.Interact = input.Interact || in.Interact
}

// Update 推进一个展示帧
//
// 累计 frameDt，按固定步长执行模拟步，每帧最多 MaxStepsPerFrame 步，
// 超出部分直接丢弃。冻结后不再推进。
//
// 返回：
//   - int: 本帧实际执行的模拟步数
func (s *Session) Update(frameDt float64) int {
	if s.round.Frozen() {
		s.accumulator = 0
		return 0
	}
	if frameDt > 0 {
		s.accumulator += frameDt
	}

	tick := s.config.TickDuration()
	steps := 0
	for s.accumulator+accumulatorEpsilon >= tick {
		if steps >= s.config.Simulation.MaxStepsPerFrame {
			log.Printf("[Session] 帧时间过长，丢弃 %.3fs 模拟时间", s.accumulator)
			s.accumulator = 0
			break
		}
		s.Step()
		s.accumulator -= tick
		steps++
		if s.round.Frozen() {
			s.accumulator = 0
			break
		}
	}
	if s.accumulator < 0 {
		s.accumulator = 0
	}
	return steps
}

// Step 执行一个固定模拟步
func (s *Session) Step() {
	if s.round.Frozen() {
		return
	}
	dt := s.config.TickDuration()

	s.scheduler.Advance(dt)
	s.player.Update(dt)
	s.lunger.Update(dt)
	s.thrower.Update(dt)
	s.physics.Update(dt)
	s.lunger.ResolveContacts()
	s.combat.Update(dt)
	s.projectile.Update(dt)
	s.lifetime.Update(dt)
	s.round.Update(dt)
	s.entityManager.RemoveMarkedEntities()
	s.physics.ClearContacts()

	s.steps++
}

// Frozen 模拟是否已冻结（游戏结束）
func (s *Session) Frozen() bool {
	return s.round.Frozen()
}

// Steps 累计执行的模拟步数（重开后继续累计）
func (s *Session) Steps() uint64 {
	return s.steps
}

// Config 会话使用的配置
func (s *Session) Config() *config.GameConfig {
	return s.config
}

// Round 回合控制器（前端读取提示、阶段）
func (s *Session) Round() *systems.RoundSystem {
	return s.round
}
