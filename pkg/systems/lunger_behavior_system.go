package systems

import (
	"log"
	"math"
	"math/rand"

	"github.com/decker502/rentday/pkg/components"
	"github.com/decker502/rentday/pkg/config"
	"github.com/decker502/rentday/pkg/ecs"
	"github.com/decker502/rentday/pkg/utils"
)

// GroundProber 向下探测能力（由物理层提供）
type GroundProber interface {
	ProbeGround(id ecs.EntityID, distance float64) bool
}

// LungerBehaviorSystem 弹跳型敌人的状态机
//
// 状态流转：Seeking →(着地) Grounded →(弹起) Airborne →(下落中着地) Grounded
//
// 着地时朝玩家方向弹起：水平速度 = 方向 * BounceSpeed，垂直速度固定为 BounceUp。
// 附带一个卡住检测器：每隔 StuckCheckInterval 秒比较一次位移，
// 低于阈值时注入随机水平冲量。
type LungerBehaviorSystem struct {
	entityManager *ecs.EntityManager
	prober        GroundProber
	config        config.LungerConfig
	rng           *rand.Rand
}

// NewLungerBehaviorSystem 创建弹跳型敌人行为系统
func NewLungerBehaviorSystem(em *ecs.EntityManager, prober GroundProber, cfg config.LungerConfig, rng *rand.Rand) *LungerBehaviorSystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &LungerBehaviorSystem{
		entityManager: em,
		prober:        prober,
		config:        cfg,
		rng:           rng,
	}
}

// Update 每个模拟帧轮询一次
func (s *LungerBehaviorSystem) Update(deltaTime float64) {
	playerPos, hasPlayer := s.playerPosition()

	lungers := ecs.GetEntitiesWith3[*components.LungerComponent, *components.TransformComponent, *components.RigidBodyComponent](s.entityManager)
	for _, id := range lungers {
		lunger, _ := ecs.GetComponent[*components.LungerComponent](s.entityManager, id)
		tr, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		rb, _ := ecs.GetComponent[*components.RigidBodyComponent](s.entityManager, id)

		grounded := s.prober != nil && s.prober.ProbeGround(id, s.config.GroundProbe)

		switch lunger.State {
		case components.LungerSeeking:
			if grounded {
				lunger.State = components.LungerGrounded
			}
		case components.LungerAirborne:
			if grounded && rb.Velocity.Y <= 0 {
				lunger.State = components.LungerGrounded
			}
		case components.LungerGrounded:
			if !grounded {
				lunger.State = components.LungerAirborne
			} else if hasPlayer {
				s.bounce(tr, rb, playerPos)
				lunger.State = components.LungerAirborne
			}
		}

		if hasPlayer {
			s.checkStuck(id, lunger, tr, rb, deltaTime)
		}
	}
}

// bounce 朝玩家弹起，方向只取水平分量
func (s *LungerBehaviorSystem) bounce(tr *components.TransformComponent, rb *components.RigidBodyComponent, target utils.Vec3) {
	dir := target.Sub(tr.Position).Horizontal().Normalize()
	rb.Velocity = dir.Scale(s.config.BounceSpeed)
	rb.Velocity.Y = s.config.BounceUp
	if dir.Len() > 0 {
		tr.Yaw = tr.Position.YawTo(target)
	}
}

// checkStuck 位移采样；净位移低于阈值时注入随机冲量
func (s *LungerBehaviorSystem) checkStuck(id ecs.EntityID, lunger *components.LungerComponent,
	tr *components.TransformComponent, rb *components.RigidBodyComponent, dt float64) {
	lunger.StuckTimer += dt
	if lunger.StuckTimer < s.config.StuckCheckInterval {
		return
	}
	lunger.StuckTimer -= s.config.StuckCheckInterval

	if lunger.Sampled && tr.Position.HorizontalDistance(lunger.LastSample) < s.config.StuckThreshold {
		angle := s.rng.Float64() * 2 * math.Pi
		rb.Velocity = utils.Vec3{
			X: math.Cos(angle) * s.config.UnstickSpeed,
			Y: s.config.BounceUp,
			Z: math.Sin(angle) * s.config.UnstickSpeed,
		}
		lunger.State = components.LungerAirborne
		log.Printf("[LungerBehaviorSystem] 敌人 %d 卡住，注入随机冲量", id)
	}
	lunger.LastSample = tr.Position
	lunger.Sampled = true
}

// ResolveContacts 物理积分后处理碰墙反弹
//
// 只对竖直表面（|normal.y| < 0.5）反射水平速度，垂直分量保持当前积分值。
func (s *LungerBehaviorSystem) ResolveContacts() {
	lungers := ecs.GetEntitiesWith3[*components.LungerComponent, *components.RigidBodyComponent, *components.ContactComponent](s.entityManager)
	for _, id := range lungers {
		rb, _ := ecs.GetComponent[*components.RigidBodyComponent](s.entityManager, id)
		contact, _ := ecs.GetComponent[*components.ContactComponent](s.entityManager, id)

		for _, ev := range contact.Events {
			if !s.isWallContact(ev) {
				continue
			}
			rb.Velocity = rb.Velocity.ReflectHorizontal(ev.Normal)
		}
	}
}

func (s *LungerBehaviorSystem) isWallContact(ev components.Contact) bool {
	if math.Abs(ev.Normal.Y) >= 0.5 {
		return false
	}
	if ev.Surface == components.SurfaceWall {
		return true
	}
	if ev.Other == 0 {
		return false
	}
	other, ok := ecs.GetComponent[*components.RigidBodyComponent](s.entityManager, ev.Other)
	return ok && other.Static
}

func (s *LungerBehaviorSystem) playerPosition() (utils.Vec3, bool) {
	playerID, ok := ecs.FirstWith[*components.PlayerComponent](s.entityManager)
	if !ok {
		return utils.Vec3{}, false
	}
	tr, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, playerID)
	if !ok {
		return utils.Vec3{}, false
	}
	return tr.Position, true
}
