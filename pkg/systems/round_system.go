package systems

import (
	"fmt"
	"log"

	"github.com/decker502/rentday/pkg/components"
	"github.com/decker502/rentday/pkg/config"
	"github.com/decker502/rentday/pkg/ecs"
	"github.com/decker502/rentday/pkg/game"
	"github.com/decker502/rentday/pkg/scheduler"
)

// 交租台提示文本
const (
	PromptRentNotDue = "Rent not due yet"
	promptNoMoney    = "Not Enough Money! (%d/%d)"
	promptPayRent    = "Press E to Pay Rent ($%d)"
)

// GameOverMessage 游戏结束原因的展示文本
func GameOverMessage(reason components.GameOverReason) string {
	switch reason {
	case components.ReasonCouldNotPay:
		return "Could not pay rent!"
	case components.ReasonHealthDepleted:
		return "Health reached 0!"
	default:
		return ""
	}
}

// RoundSystem 回合控制器
//
// 阶段：Intro → Active → AwaitingPayment → {Active(下一回合) | GameOver}，
// 玩家死亡时 Active 也可直接进入 GameOver。GameOver 是终态，只能由外部重开。
//
// 回合控制器是阶段转换的唯一权威：击杀、死亡等通知都是建议性事件，
// 处理前先校验当前阶段，不合法的调用静默忽略。
type RoundSystem struct {
	entityManager *ecs.EntityManager
	scheduler     *scheduler.Scheduler
	config        *config.GameConfig
	spawner       *WaveSpawnSystem
	combat        *CombatSystem
	presenter     game.Presenter
	feedback      game.Feedback

	// roundEntity 回合状态单例实体（同时作为回合定时器的所有者）
	roundEntity ecs.EntityID

	begun      bool
	frozen     bool
	lastPrompt string
}

// NewRoundSystem 创建回合控制器
//
// spawner、combat、presenter、feedback 都可以为 nil，核心经济逻辑照常运行。
func NewRoundSystem(em *ecs.EntityManager, sched *scheduler.Scheduler, cfg *config.GameConfig,
	spawner *WaveSpawnSystem, combat *CombatSystem, presenter game.Presenter, feedback game.Feedback) *RoundSystem {
	system := &RoundSystem{
		entityManager: em,
		scheduler:     sched,
		config:        cfg,
		spawner:       spawner,
		combat:        combat,
		presenter:     game.OrNopPresenter(presenter),
		feedback:      game.OrNopFeedback(feedback),
	}

	system.roundEntity = em.CreateEntity()
	ecs.AddComponent(em, system.roundEntity, &components.RoundStateComponent{
		RoundNumber: 1,
		KillTarget:  cfg.KillTarget(1),
		RentCost:    cfg.RentCost(1),
		Phase:       components.PhaseIntro,
	})
	return system
}

func (s *RoundSystem) state() *components.RoundStateComponent {
	st, _ := ecs.GetComponent[*components.RoundStateComponent](s.entityManager, s.roundEntity)
	return st
}

func (s *RoundSystem) owner() scheduler.Owner {
	return scheduler.Owner(s.roundEntity)
}

// Begin 进入开场倒计时，StartDelay 秒后开始第一回合
func (s *RoundSystem) Begin() {
	st := s.state()
	if s.begun || st.Phase != components.PhaseIntro {
		return
	}
	s.begun = true
	log.Printf("[RoundSystem] 开场倒计时 %.1fs", s.config.Economy.StartDelay)
	s.scheduler.After(s.owner(), s.config.Economy.StartDelay, s.StartRound)
}

// StartRound 开始当前回合
// 只允许从 Intro 或"已交租的 AwaitingPayment"进入
func (s *RoundSystem) StartRound() {
	st := s.state()
	allowed := st.Phase == components.PhaseIntro ||
		(st.Phase == components.PhaseAwaitingPayment && st.RentPaid)
	if !allowed {
		log.Printf("[RoundSystem] 忽略 StartRound: 当前阶段 %s", st.Phase)
		return
	}

	st.RentCost = s.config.RentCost(st.RoundNumber)
	st.KillTarget = s.config.KillTarget(st.RoundNumber)
	st.KillsThisRound = 0
	st.RentPaid = false
	st.Phase = components.PhaseActive

	if s.spawner != nil {
		s.spawner.Start(st.RoundNumber, st.KillTarget)
	}

	log.Printf("[RoundSystem] 第 %d 天开始: 击杀目标=%d, 租金=%d", st.RoundNumber, st.KillTarget, st.RentCost)
	stats := s.Stats()
	s.presenter.OnRoundStarted(stats)
	s.presenter.OnStatsChanged(stats)
	s.feedback.Play(game.FeedbackRoundStarted)
}

// OnEnemyKilled 敌人死亡通知
//
// 只在 Active 阶段计分。回合结束后才结算的弹体击杀、清场等迟到通知全部忽略。
func (s *RoundSystem) OnEnemyKilled(pointValue int) {
	st := s.state()
	if st.Phase != components.PhaseActive {
		return
	}
	if pointValue < 0 {
		pointValue = 0
	}
	st.Score += pointValue
	st.KillsThisRound++
	s.presenter.OnStatsChanged(s.Stats())

	if st.KillsThisRound >= st.KillTarget {
		s.EndRound()
	}
}

// EndRound 结束当前回合
//
// 停止刷怪器、清场（剩余敌人与飞行中的敌方弹体，连同其定时器）、
// 治疗玩家，然后等待交租。
func (s *RoundSystem) EndRound() {
	st := s.state()
	if st.Phase != components.PhaseActive {
		return
	}
	if s.spawner != nil {
		s.spawner.Stop()
	}
	cleared := s.forceDespawn()

	if s.combat != nil {
		if playerID, ok := ecs.FirstWith[*components.PlayerComponent](s.entityManager); ok {
			s.combat.Heal(playerID, s.config.Economy.HealPerRound)
		}
	}

	st.Phase = components.PhaseAwaitingPayment
	s.setRentDue(true)

	log.Printf("[RoundSystem] 第 %d 天结束: 分数=%d, 租金=%d, 清场 %d 个实体", st.RoundNumber, st.Score, st.RentCost, cleared)
	s.presenter.OnRoundEnded(s.Stats())
	s.feedback.Play(game.FeedbackRoundEnded)
}

// PayRent 交租
//
// 分数足够：扣除租金、回合数 +1，NextRoundDelay 秒后开始下一回合。
// 分数不足：游戏结束（原因 "could not pay"）。
// 非 AwaitingPayment 阶段或重复交租时忽略。
func (s *RoundSystem) PayRent() {
	st := s.state()
	if st.Phase != components.PhaseAwaitingPayment || st.RentPaid {
		return
	}

	if st.Score < st.RentCost {
		log.Printf("[RoundSystem] 无法交租: 分数 %d < 租金 %d", st.Score, st.RentCost)
		s.gameOver(components.ReasonCouldNotPay)
		s.frozen = true
		return
	}

	st.Score -= st.RentCost
	st.RoundNumber++
	st.RentPaid = true
	s.setRentDue(false)

	log.Printf("[RoundSystem] 交租 %d，剩余分数 %d，%.1fs 后开始第 %d 天",
		st.RentCost, st.Score, s.config.Economy.NextRoundDelay, st.RoundNumber)
	s.presenter.OnStatsChanged(s.Stats())
	s.feedback.Play(game.FeedbackRentPaid)
	s.scheduler.After(s.owner(), s.config.Economy.NextRoundDelay, s.StartRound)
}

// OnPlayerDeath 玩家死亡通知
// 任何非 GameOver 阶段都会立即进入 GameOver，重复调用安全
func (s *RoundSystem) OnPlayerDeath() {
	st := s.state()
	if st.Phase == components.PhaseGameOver {
		return
	}

	s.scheduler.CancelOwner(s.owner())
	s.gameOver(components.ReasonHealthDepleted)

	// 死亡淡出结束后冻结模拟
	s.scheduler.After(s.owner(), s.config.Economy.DeathFadeDelay, func() {
		s.frozen = true
	})
}

func (s *RoundSystem) gameOver(reason components.GameOverReason) {
	st := s.state()
	if s.spawner != nil {
		s.spawner.Stop()
	}
	s.forceDespawn()

	st.Phase = components.PhaseGameOver
	st.Reason = reason
	st.RentPaid = false
	s.setRentDue(false)

	log.Printf("[RoundSystem] 游戏结束: %s (第 %d 天, 分数 %d)", reason, st.RoundNumber, st.Score)
	s.presenter.OnGameOver(s.Stats(), string(reason), GameOverMessage(reason))
	s.feedback.Play(game.FeedbackGameOver)
}

// forceDespawn 清除所有存活敌人和敌方弹体，并取消它们名下的定时器
// 被清除的敌人不计分
func (s *RoundSystem) forceDespawn() int {
	despawn := func(id ecs.EntityID) {
		if s.combat != nil {
			s.combat.Despawn(id)
			return
		}
		s.entityManager.DestroyEntity(id)
		s.scheduler.CancelOwner(scheduler.Owner(id))
	}

	count := 0
	for _, id := range ecs.GetEntitiesWith1[*components.EnemyComponent](s.entityManager) {
		despawn(id)
		count++
	}
	for _, id := range ecs.GetEntitiesWith1[*components.ProjectileComponent](s.entityManager) {
		proj, _ := ecs.GetComponent[*components.ProjectileComponent](s.entityManager, id)
		if proj.Owner != components.FactionEnemy {
			continue
		}
		despawn(id)
		count++
	}
	return count
}

func (s *RoundSystem) setRentDue(due bool) {
	for _, id := range ecs.GetEntitiesWith1[*components.RentStationComponent](s.entityManager) {
		station, _ := ecs.GetComponent[*components.RentStationComponent](s.entityManager, id)
		station.RentDue = due
	}
}

// Update 刷新交租台提示（玩家进入交互范围时显示，变化时才推送）
func (s *RoundSystem) Update(deltaTime float64) {
	prompt := ""
	if _, ok := s.stationInRange(); ok {
		prompt = s.RentStationPrompt()
	}
	if prompt != s.lastPrompt {
		s.lastPrompt = prompt
		s.presenter.OnPrompt(prompt)
	}
}

// RentStationPrompt 交租台提示文本
func (s *RoundSystem) RentStationPrompt() string {
	st := s.state()
	due := false
	for _, id := range ecs.GetEntitiesWith1[*components.RentStationComponent](s.entityManager) {
		station, _ := ecs.GetComponent[*components.RentStationComponent](s.entityManager, id)
		due = due || station.RentDue
	}
	if !due {
		return PromptRentNotDue
	}
	if st.Score < st.RentCost {
		return fmt.Sprintf(promptNoMoney, st.Score, st.RentCost)
	}
	return fmt.Sprintf(promptPayRent, st.RentCost)
}

// Prompt 当前显示中的提示（玩家不在交租台附近时为空）
func (s *RoundSystem) Prompt() string {
	return s.lastPrompt
}

// Interact 玩家按下交互键：在交租台范围内且租金到期时尝试交租
func (s *RoundSystem) Interact() {
	station, ok := s.stationInRange()
	if !ok || !station.RentDue {
		return
	}
	s.PayRent()
}

func (s *RoundSystem) stationInRange() (*components.RentStationComponent, bool) {
	playerID, ok := ecs.FirstWith[*components.PlayerComponent](s.entityManager)
	if !ok {
		return nil, false
	}
	playerTr, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, playerID)
	if !ok {
		return nil, false
	}
	for _, id := range ecs.GetEntitiesWith2[*components.RentStationComponent, *components.TransformComponent](s.entityManager) {
		station, _ := ecs.GetComponent[*components.RentStationComponent](s.entityManager, id)
		tr, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		if playerTr.Position.HorizontalDistance(tr.Position) <= station.InteractRange {
			return station, true
		}
	}
	return nil, false
}

// Frozen 游戏结束后模拟是否已冻结
func (s *RoundSystem) Frozen() bool {
	return s.frozen
}

// Score 当前分数
func (s *RoundSystem) Score() int { return s.state().Score }

// Round 当前回合数
func (s *RoundSystem) Round() int { return s.state().RoundNumber }

// RentCost 当前回合租金
func (s *RoundSystem) RentCost() int { return s.state().RentCost }

// Phase 当前阶段
func (s *RoundSystem) Phase() components.RoundPhase { return s.state().Phase }

// Reason 游戏结束原因（未结束时为空）
func (s *RoundSystem) Reason() components.GameOverReason { return s.state().Reason }

// KillProgress 本回合击杀进度
func (s *RoundSystem) KillProgress() (kills, target int) {
	st := s.state()
	return st.KillsThisRound, st.KillTarget
}

// State 回合状态副本
func (s *RoundSystem) State() components.RoundStateComponent {
	return *s.state()
}

// Stats 展示层使用的数值快照
func (s *RoundSystem) Stats() game.RoundStats {
	st := s.state()
	return game.RoundStats{
		Round:      st.RoundNumber,
		Score:      st.Score,
		Kills:      st.KillsThisRound,
		KillTarget: st.KillTarget,
		RentCost:   st.RentCost,
	}
}
