package session

import (
	"github.com/decker502/rentday/pkg/components"
	"github.com/decker502/rentday/pkg/ecs"
	"github.com/decker502/rentday/pkg/utils"
)

// Body 渲染用的实体几何
type Body struct {
	ID       ecs.EntityID
	Position utils.Vec3
	Radius   float64
	Yaw      float64
}

// PlayerView 玩家只读视图
type PlayerView struct {
	Body
	Pitch          float64
	Health         int
	MaxHealth      int
	Dead           bool
	HasSandwich    bool
	MakingSandwich bool
}

// EnemyView 敌人只读视图
type EnemyView struct {
	Body
	Archetype components.Archetype
	Health    int
	Grounded  bool
}

// ProjectileView 弹体只读视图
type ProjectileView struct {
	Body
	Owner components.Faction
}

// StationView 交租台只读视图
type StationView struct {
	Body
	InteractRange float64
	RentDue       bool
}

// Snapshot 某一时刻的只读状态，渲染器只读它，不接触 ECS
type Snapshot struct {
	Time          float64
	ArenaHalfSize float64

	Player      PlayerView
	Station     StationView
	Enemies     []EnemyView
	Projectiles []ProjectileView

	Round  components.RoundStateComponent
	Prompt string
	Frozen bool
}

func (s *Session) body(id ecs.EntityID) Body {
	b := Body{ID: id}
	if tr, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, id); ok {
		b.Position = tr.Position
		b.Yaw = tr.Yaw
	}
	if rb, ok := ecs.GetComponent[*components.RigidBodyComponent](s.entityManager, id); ok {
		b.Radius = rb.Radius
	}
	return b
}

// Snapshot 生成当前状态快照（实体按ID排序，输出稳定）
func (s *Session) Snapshot() Snapshot {
	em := s.entityManager
	snap := Snapshot{
		Time:          s.scheduler.Now(),
		ArenaHalfSize: s.config.Arena.HalfSize,
		Round:         s.round.State(),
		Prompt:        s.round.Prompt(),
		Frozen:        s.round.Frozen(),
	}

	snap.Player.Body = s.body(s.playerID)
	if h, ok := ecs.GetComponent[*components.HealthComponent](em, s.playerID); ok {
		snap.Player.Health, snap.Player.MaxHealth, snap.Player.Dead = h.CurrentHealth, h.MaxHealth, h.IsDead
	}
	if p, ok := ecs.GetComponent[*components.PlayerComponent](em, s.playerID); ok {
		snap.Player.HasSandwich, snap.Player.MakingSandwich = p.HasSandwich, p.MakingSandwich
	}
	if in, ok := ecs.GetComponent[*components.PlayerInputComponent](em, s.playerID); ok {
		snap.Player.Pitch = in.Pitch
	}

	snap.Station.Body = s.body(s.stationID)
	if st, ok := ecs.GetComponent[*components.RentStationComponent](em, s.stationID); ok {
		snap.Station.InteractRange, snap.Station.RentDue = st.InteractRange, st.RentDue
	}

	enemies := ecs.GetEntitiesWith1[*components.EnemyComponent](em)
	for _, id := range enemies {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](em, id)
		view := EnemyView{Body: s.body(id), Archetype: enemy.Archetype}
		if h, ok := ecs.GetComponent[*components.HealthComponent](em, id); ok {
			view.Health = h.CurrentHealth
		}
		if rb, ok := ecs.GetComponent[*components.RigidBodyComponent](em, id); ok {
			view.Grounded = rb.Grounded
		}
		snap.Enemies = append(snap.Enemies, view)
	}

	projectiles := ecs.GetEntitiesWith1[*components.ProjectileComponent](em)
	for _, id := range projectiles {
		proj, _ := ecs.GetComponent[*components.ProjectileComponent](em, id)
		snap.Projectiles = append(snap.Projectiles, ProjectileView{Body: s.body(id), Owner: proj.Owner})
	}
	return snap
}
