package systems

import (
	"log"
	"math"

	"github.com/decker502/rentday/pkg/components"
	"github.com/decker502/rentday/pkg/config"
	"github.com/decker502/rentday/pkg/ecs"
	"github.com/decker502/rentday/pkg/entities"
	"github.com/decker502/rentday/pkg/game"
	"github.com/decker502/rentday/pkg/scheduler"
	"github.com/decker502/rentday/pkg/utils"
)

// PlayerSystem 把输入意图转换为玩家行为
//
// 移动（相对朝向）、做三明治（延迟 MakeTime 秒）、投掷三明治、与交租台交互。
// 玩家死亡后输入全部忽略。
type PlayerSystem struct {
	entityManager *ecs.EntityManager
	scheduler     *scheduler.Scheduler
	config        *config.GameConfig
	feedback      game.Feedback

	onInteract func()
}

// NewPlayerSystem 创建玩家系统
func NewPlayerSystem(em *ecs.EntityManager, sched *scheduler.Scheduler, cfg *config.GameConfig, feedback game.Feedback) *PlayerSystem {
	return &PlayerSystem{
		entityManager: em,
		scheduler:     sched,
		config:        cfg,
		feedback:      game.OrNopFeedback(feedback),
	}
}

// SetOnInteract 设置交互回调（交租台）
func (s *PlayerSystem) SetOnInteract(fn func()) {
	s.onInteract = fn
}

// Update 消费本帧输入
func (s *PlayerSystem) Update(deltaTime float64) {
	id, ok := ecs.FirstWith[*components.PlayerComponent](s.entityManager)
	if !ok {
		return
	}
	player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
	input, ok := ecs.GetComponent[*components.PlayerInputComponent](s.entityManager, id)
	if !ok {
		return
	}
	// 边沿触发的输入只消费一次
	defer func() {
		input.MakeSandwich = false
		input.Throw = false
		input.Interact = false
	}()

	tr, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
	rb, _ := ecs.GetComponent[*components.RigidBodyComponent](s.entityManager, id)
	if tr == nil || rb == nil {
		return
	}

	if health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, id); ok && health.IsDead {
		rb.Velocity.X, rb.Velocity.Z = 0, 0
		return
	}

	tr.Yaw = input.Yaw
	s.move(input, tr, rb)

	if input.MakeSandwich {
		s.makeSandwich(id, player)
	}
	if input.Throw {
		s.throwSandwich(id, player, input, tr)
	}
	if input.Interact && s.onInteract != nil {
		s.onInteract()
	}
}

func (s *PlayerSystem) move(input *components.PlayerInputComponent, tr *components.TransformComponent, rb *components.RigidBodyComponent) {
	forward := utils.Vec3{X: math.Sin(tr.Yaw), Z: math.Cos(tr.Yaw)}
	right := utils.Vec3{X: math.Cos(tr.Yaw), Z: -math.Sin(tr.Yaw)}

	dir := forward.Scale(utils.Clamp(input.MoveZ, -1, 1)).Add(right.Scale(utils.Clamp(input.MoveX, -1, 1)))
	if dir.Len() > 1 {
		dir = dir.Normalize()
	}
	move := dir.Scale(s.config.Player.MoveSpeed)
	rb.Velocity.X = move.X
	rb.Velocity.Z = move.Z
}

func (s *PlayerSystem) makeSandwich(id ecs.EntityID, player *components.PlayerComponent) {
	if player.HasSandwich || player.MakingSandwich {
		return
	}
	player.MakingSandwich = true
	s.scheduler.After(scheduler.Owner(id), s.config.Player.Sandwich.MakeTime, func() {
		player.MakingSandwich = false
		player.HasSandwich = true
		s.feedback.Play(game.FeedbackSandwichMade)
	})
}

func (s *PlayerSystem) throwSandwich(id ecs.EntityID, player *components.PlayerComponent,
	input *components.PlayerInputComponent, tr *components.TransformComponent) {
	if !player.HasSandwich {
		return
	}

	pc := s.config.Player
	dir := utils.Forward(input.Yaw, input.Pitch)
	eye := tr.Position.Add(utils.Up.Scale(pc.EyeHeight - pc.Radius))
	// 从玩家球体外侧发射，避免第一帧就与自身重叠
	origin := eye.Add(dir.Scale(pc.Radius + pc.Sandwich.Radius + 0.05))

	if _, err := entities.NewSandwich(s.entityManager, s.config, id, origin, dir.Scale(pc.Sandwich.ThrowSpeed)); err != nil {
		log.Printf("[PlayerSystem] 创建三明治失败: %v", err)
		return
	}
	player.HasSandwich = false
	player.ThrowCount++
	s.feedback.Play(game.FeedbackSandwichThrown)
}
