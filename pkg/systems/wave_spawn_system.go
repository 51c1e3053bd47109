package systems

import (
	"log"
	"math"
	"math/rand"

	"github.com/decker502/rentday/pkg/components"
	"github.com/decker502/rentday/pkg/config"
	"github.com/decker502/rentday/pkg/ecs"
	"github.com/decker502/rentday/pkg/scheduler"
	"github.com/decker502/rentday/pkg/utils"
)

// ringEdgeMargin 环形刷怪点与墙之间保留的距离
const ringEdgeMargin = 1.0

// SpawnFactory 按原型在指定位置创建敌人
type SpawnFactory func(archetype components.Archetype, pos utils.Vec3) (ecs.EntityID, error)

// WaveSpawnSystem 刷怪器
//
// 每个已解锁的敌人原型各有一个独立的周期定时器，所有定时器共享同一个
// 剩余预算。每次成功生成扣减一次预算，预算归零时立即取消全部定时器，
// 因此一回合的生成总数永远不会超过 TotalToSpawn。
//
// 所有定时器的所有者都是刷怪器的计划实体，Stop 通过 CancelOwner 一次取消。
type WaveSpawnSystem struct {
	entityManager *ecs.EntityManager
	scheduler     *scheduler.Scheduler
	config        config.SpawnerConfig
	spawnSurplus  int
	halfSize      float64
	rng           *rand.Rand
	factory       SpawnFactory

	// planEntity 刷怪计划实体ID（同时作为定时器所有者）
	planEntity   ecs.EntityID
	totalSpawned int
}

// NewWaveSpawnSystem 创建刷怪系统
//
// 参数：
//   - em: 实体管理器
//   - sched: 模拟时间调度器
//   - cfg: 游戏配置（刷怪器与竞技场参数）
//   - rng: 随机源（可复现），nil 时使用固定种子
//   - factory: 敌人工厂，nil 时刷怪器照常计时但不会生成（无头降级）
func NewWaveSpawnSystem(em *ecs.EntityManager, sched *scheduler.Scheduler, cfg *config.GameConfig, rng *rand.Rand, factory SpawnFactory) *WaveSpawnSystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	system := &WaveSpawnSystem{
		entityManager: em,
		scheduler:     sched,
		config:        cfg.Spawner,
		spawnSurplus:  cfg.Economy.SpawnSurplus,
		halfSize:      cfg.Arena.HalfSize,
		rng:           rng,
		factory:       factory,
	}

	system.planEntity = em.CreateEntity()
	ecs.AddComponent(em, system.planEntity, &components.WavePlanComponent{
		ArchetypeIntervals: make(map[components.Archetype]float64),
		Spawned:            make(map[components.Archetype]int),
	})
	return system
}

func (s *WaveSpawnSystem) plan() *components.WavePlanComponent {
	plan, _ := ecs.GetComponent[*components.WavePlanComponent](s.entityManager, s.planEntity)
	return plan
}

func (s *WaveSpawnSystem) owner() scheduler.Owner {
	return scheduler.Owner(s.planEntity)
}

// Start 为 round 回合开始刷怪
//
// 如果上一轮仍在运行，先完整停止（取消全部定时器），
// 避免两套计划同时消耗预算。
func (s *WaveSpawnSystem) Start(round, killTarget int) {
	plan := s.plan()
	if plan == nil {
		return
	}
	if plan.Running {
		log.Printf("[WaveSpawnSystem] 仍在运行，先停止上一轮")
		s.Stop()
	}

	total := killTarget + s.spawnSurplus
	*plan = components.WavePlanComponent{
		RoundNumber:        round,
		ArchetypeIntervals: make(map[components.Archetype]float64),
		TotalToSpawn:       total,
		RemainingBudget:    total,
		Spawned:            make(map[components.Archetype]int),
		Running:            true,
	}

	for _, archetype := range components.Archetypes {
		ac, ok := s.config.Archetypes[string(archetype)]
		if !ok || ac.StartRound > round {
			continue
		}
		plan.ArchetypeIntervals[archetype] = ac.Interval

		arch := archetype
		s.scheduler.Every(s.owner(), ac.Interval, func() {
			s.spawnTick(arch)
		})
	}

	log.Printf("[WaveSpawnSystem] 第 %d 回合开始刷怪: 总数=%d, 原型=%v", round, total, plan.ArchetypeIntervals)
	if total <= 0 {
		s.scheduler.CancelOwner(s.owner())
	}
}

// spawnTick 某个原型的定时器到期
func (s *WaveSpawnSystem) spawnTick(archetype components.Archetype) {
	plan := s.plan()
	if plan == nil || !plan.Running || plan.RemainingBudget <= 0 {
		return
	}
	if s.factory == nil {
		return
	}

	pos := s.samplePosition()
	if _, err := s.factory(archetype, pos); err != nil {
		log.Printf("[WaveSpawnSystem] 生成 %s 失败: %v", archetype, err)
		return
	}

	plan.RemainingBudget--
	plan.Spawned[archetype]++
	s.totalSpawned++

	if plan.RemainingBudget == 0 {
		// 预算耗尽：其余原型的定时器即使正处于间隔中也不再触发
		cancelled := s.scheduler.CancelOwner(s.owner())
		log.Printf("[WaveSpawnSystem] 第 %d 回合预算耗尽，取消 %d 个定时器", plan.RoundNumber, cancelled)
	}
}

// Stop 立即取消全部刷怪定时器
// 未运行时调用是无操作，重复调用安全
func (s *WaveSpawnSystem) Stop() {
	plan := s.plan()
	if plan == nil || !plan.Running {
		return
	}
	s.scheduler.CancelOwner(s.owner())
	plan.Running = false
	log.Printf("[WaveSpawnSystem] 停止刷怪: 本回合生成 %d/%d", plan.TotalToSpawn-plan.RemainingBudget, plan.TotalToSpawn)
}

// IsRunning 是否处于刷怪回合中
func (s *WaveSpawnSystem) IsRunning() bool {
	plan := s.plan()
	return plan != nil && plan.Running
}

// Plan 返回当前刷怪计划的副本
func (s *WaveSpawnSystem) Plan() components.WavePlanComponent {
	plan := s.plan()
	if plan == nil {
		return components.WavePlanComponent{}
	}
	out := *plan
	out.ArchetypeIntervals = make(map[components.Archetype]float64, len(plan.ArchetypeIntervals))
	for k, v := range plan.ArchetypeIntervals {
		out.ArchetypeIntervals[k] = v
	}
	out.Spawned = make(map[components.Archetype]int, len(plan.Spawned))
	for k, v := range plan.Spawned {
		out.Spawned[k] = v
	}
	return out
}

// TotalSpawned 整个会话累计生成的敌人数量
func (s *WaveSpawnSystem) TotalSpawned() int {
	return s.totalSpawned
}

// samplePosition 按配置的模式采样生成位置
func (s *WaveSpawnSystem) samplePosition() utils.Vec3 {
	if s.config.Mode == config.SpawnModeRing {
		if pos, ok := s.sampleRing(); ok {
			return pos
		}
	}
	return s.sampleArea()
}

func (s *WaveSpawnSystem) sampleArea() utils.Vec3 {
	a := s.config.Area
	return utils.Vec3{
		X: a.MinX + s.rng.Float64()*(a.MaxX-a.MinX),
		Y: s.config.GroundOffset,
		Z: a.MinZ + s.rng.Float64()*(a.MaxZ-a.MinZ),
	}
}

// sampleRing 以玩家为圆心的环上均匀采样角度，结果夹在竞技场内
// 找不到玩家时返回 false，由调用方回退到区域模式
func (s *WaveSpawnSystem) sampleRing() (utils.Vec3, bool) {
	playerID, ok := ecs.FirstWith[*components.PlayerComponent](s.entityManager)
	if !ok {
		return utils.Vec3{}, false
	}
	tr, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, playerID)
	if !ok {
		return utils.Vec3{}, false
	}

	angle := s.rng.Float64() * 2 * math.Pi
	limit := math.Max(s.halfSize-ringEdgeMargin, 0)
	return utils.Vec3{
		X: utils.Clamp(tr.Position.X+math.Cos(angle)*s.config.RingRadius, -limit, limit),
		Y: s.config.GroundOffset,
		Z: utils.Clamp(tr.Position.Z+math.Sin(angle)*s.config.RingRadius, -limit, limit),
	}, true
}
