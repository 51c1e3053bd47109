package systems

import (
	"math"

	"github.com/decker502/rentday/pkg/components"
	"github.com/decker502/rentday/pkg/config"
	"github.com/decker502/rentday/pkg/ecs"
	"github.com/decker502/rentday/pkg/utils"
)

// groundEpsilon 着地判定容差
const groundEpsilon = 1e-6

// PhysicsSystem 最小竞技场物理
//
// 只提供核心逻辑需要的能力，不是通用物理引擎：
//   - 重力与速度积分
//   - 地面 (y=0) 与四面墙的位置约束
//   - 球体之间的重叠检测，产生"开始接触"事件
//   - 实心球体之间的水平推开
//   - 向下探测（着地检查）
//
// 碰墙时不修改速度，反弹由行为系统根据接触事件自行决定。
type PhysicsSystem struct {
	em       *ecs.EntityManager
	halfSize float64
	gravity  float64
}

// NewPhysicsSystem 创建物理系统
//
// 参数:
//   - em: 实体管理器
//   - arena: 竞技场尺寸与重力
func NewPhysicsSystem(em *ecs.EntityManager, arena config.ArenaConfig) *PhysicsSystem {
	return &PhysicsSystem{
		em:       em,
		halfSize: arena.HalfSize,
		gravity:  arena.Gravity,
	}
}

// HalfSize 竞技场半边长
func (ps *PhysicsSystem) HalfSize() float64 {
	return ps.halfSize
}

// Update 积分并生成本帧接触事件
func (ps *PhysicsSystem) Update(deltaTime float64) {
	bodies := ecs.GetEntitiesWith2[*components.TransformComponent, *components.RigidBodyComponent](ps.em)

	for _, id := range bodies {
		tr, _ := ecs.GetComponent[*components.TransformComponent](ps.em, id)
		rb, _ := ecs.GetComponent[*components.RigidBodyComponent](ps.em, id)
		if rb.Static {
			continue
		}
		ps.integrate(tr, rb, deltaTime)
		ps.constrain(id, tr, rb)
	}

	ps.resolveOverlaps(bodies)
}

func (ps *PhysicsSystem) integrate(tr *components.TransformComponent, rb *components.RigidBodyComponent, dt float64) {
	if rb.UseGravity {
		rb.Velocity.Y -= ps.gravity * dt
	}
	tr.Position = tr.Position.Add(rb.Velocity.Scale(dt))
}

// constrain 地面与墙的约束，并在"开始接触"时记录事件
func (ps *PhysicsSystem) constrain(id ecs.EntityID, tr *components.TransformComponent, rb *components.RigidBodyComponent) {
	contact, hasContact := ecs.GetComponent[*components.ContactComponent](ps.em, id)

	// 地面
	onFloor := false
	if tr.Position.Y-rb.Radius <= groundEpsilon {
		tr.Position.Y = rb.Radius
		if rb.Velocity.Y < 0 {
			rb.Velocity.Y = 0
		}
		onFloor = true
	}
	rb.Grounded = onFloor

	// 墙
	var wallNormal utils.Vec3
	onWall := false
	limit := ps.halfSize - rb.Radius
	if tr.Position.X > limit {
		tr.Position.X = limit
		wallNormal, onWall = utils.Vec3{X: -1}, true
	} else if tr.Position.X < -limit {
		tr.Position.X = -limit
		wallNormal, onWall = utils.Vec3{X: 1}, true
	}
	if tr.Position.Z > limit {
		tr.Position.Z = limit
		wallNormal, onWall = wallNormal.Add(utils.Vec3{Z: -1}), true
	} else if tr.Position.Z < -limit {
		tr.Position.Z = -limit
		wallNormal, onWall = wallNormal.Add(utils.Vec3{Z: 1}), true
	}

	if !hasContact {
		return
	}
	if onFloor && !contact.OnFloor {
		contact.Events = append(contact.Events, components.Contact{
			Surface: components.SurfaceFloor,
			Normal:  utils.Up,
			Point:   utils.Vec3{X: tr.Position.X, Z: tr.Position.Z},
		})
	}
	if onWall && !contact.OnWall {
		n := wallNormal.Normalize()
		contact.Events = append(contact.Events, components.Contact{
			Surface: components.SurfaceWall,
			Normal:  n,
			Point:   tr.Position.Sub(n.Scale(rb.Radius)),
		})
	}
	contact.OnFloor = onFloor
	contact.OnWall = onWall
}

// resolveOverlaps 两两检测球体重叠
// 实体数量很小（一回合几十个），O(n²) 足够
func (ps *PhysicsSystem) resolveOverlaps(bodies []ecs.EntityID) {
	touching := make(map[ecs.EntityID]map[ecs.EntityID]bool, len(bodies))

	for i := 0; i < len(bodies); i++ {
		a := bodies[i]
		trA, _ := ecs.GetComponent[*components.TransformComponent](ps.em, a)
		rbA, _ := ecs.GetComponent[*components.RigidBodyComponent](ps.em, a)

		for j := i + 1; j < len(bodies); j++ {
			b := bodies[j]
			rbB, _ := ecs.GetComponent[*components.RigidBodyComponent](ps.em, b)
			if rbA.Static && rbB.Static {
				continue
			}
			trB, _ := ecs.GetComponent[*components.TransformComponent](ps.em, b)

			delta := trA.Position.Sub(trB.Position)
			dist := delta.Len()
			minDist := rbA.Radius + rbB.Radius
			if dist >= minDist {
				continue
			}

			// n 从 b 指向 a
			n := delta.Normalize()
			if n == (utils.Vec3{}) {
				n = utils.Vec3{X: 1}
			}
			markTouching(touching, a, b)
			ps.recordEntityContact(a, b, n, trB.Position.Add(n.Scale(rbB.Radius)))
			ps.recordEntityContact(b, a, n.Scale(-1), trA.Position.Sub(n.Scale(rbA.Radius)))

			if rbA.Solid && rbB.Solid {
				pushApart(trA, rbA, trB, rbB, n, minDist-dist)
			}
		}
	}

	// 刷新"仍在接触"集合，下一帧据此判断是否为新接触
	for _, id := range bodies {
		contact, ok := ecs.GetComponent[*components.ContactComponent](ps.em, id)
		if !ok {
			continue
		}
		if set, found := touching[id]; found {
			contact.Touching = set
		} else {
			contact.Touching = make(map[ecs.EntityID]bool)
		}
	}
}

func markTouching(touching map[ecs.EntityID]map[ecs.EntityID]bool, a, b ecs.EntityID) {
	if touching[a] == nil {
		touching[a] = make(map[ecs.EntityID]bool)
	}
	if touching[b] == nil {
		touching[b] = make(map[ecs.EntityID]bool)
	}
	touching[a][b] = true
	touching[b][a] = true
}

func (ps *PhysicsSystem) recordEntityContact(self, other ecs.EntityID, normal, point utils.Vec3) {
	contact, ok := ecs.GetComponent[*components.ContactComponent](ps.em, self)
	if !ok || contact.Touching[other] {
		return
	}
	contact.Events = append(contact.Events, components.Contact{
		Other:  other,
		Normal: normal,
		Point:  point,
	})
}

// pushApart 沿水平方向把两个实心球体分开，静态物体不动
func pushApart(trA *components.TransformComponent, rbA *components.RigidBodyComponent,
	trB *components.TransformComponent, rbB *components.RigidBodyComponent, n utils.Vec3, penetration float64) {
	h := n.Horizontal()
	if h.Len() < 1e-9 {
		return
	}
	h = h.Normalize()

	switch {
	case rbA.Static:
		trB.Position = trB.Position.Sub(h.Scale(penetration))
	case rbB.Static:
		trA.Position = trA.Position.Add(h.Scale(penetration))
	default:
		trA.Position = trA.Position.Add(h.Scale(penetration / 2))
		trB.Position = trB.Position.Sub(h.Scale(penetration / 2))
	}
}

// ProbeGround 从实体底部向下探测 distance 距离内是否有地面
func (ps *PhysicsSystem) ProbeGround(id ecs.EntityID, distance float64) bool {
	tr, ok := ecs.GetComponent[*components.TransformComponent](ps.em, id)
	if !ok {
		return false
	}
	rb, ok := ecs.GetComponent[*components.RigidBodyComponent](ps.em, id)
	if !ok {
		return false
	}
	return tr.Position.Y-rb.Radius <= math.Max(distance, 0)+groundEpsilon
}

// ClearContacts 清空本帧接触事件（模拟帧末尾调用）
func (ps *PhysicsSystem) ClearContacts() {
	for _, id := range ecs.GetEntitiesWith1[*components.ContactComponent](ps.em) {
		contact, _ := ecs.GetComponent[*components.ContactComponent](ps.em, id)
		contact.Events = contact.Events[:0]
	}
}
