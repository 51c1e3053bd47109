package entities

import (
	"fmt"
	"log"

	"github.com/decker502/rentday/pkg/components"
	"github.com/decker502/rentday/pkg/config"
	"github.com/decker502/rentday/pkg/ecs"
	"github.com/decker502/rentday/pkg/utils"
)

// NewPlayer 创建玩家实体
// 玩家站在出生点地面上，满血，手中没有三明治
func NewPlayer(em *ecs.EntityManager, cfg *config.GameConfig) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return 0, fmt.Errorf("game config cannot be nil")
	}

	pc := cfg.Player
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PlayerComponent{})
	ecs.AddComponent(em, id, &components.PlayerInputComponent{})
	ecs.AddComponent(em, id, &components.HealthComponent{
		CurrentHealth: pc.MaxHealth,
		MaxHealth:     pc.MaxHealth,
	})
	ecs.AddComponent(em, id, &components.TransformComponent{
		Position: utils.Vec3{X: pc.SpawnX, Y: pc.Radius, Z: pc.SpawnZ},
	})
	ecs.AddComponent(em, id, &components.RigidBodyComponent{
		Radius:     pc.Radius,
		UseGravity: true,
		Solid:      true,
	})
	ecs.AddComponent(em, id, newContactComponent())

	log.Printf("[PlayerFactory] 创建玩家 %d (HP=%d)", id, pc.MaxHealth)
	return id, nil
}

// NewRentStation 创建交租台实体
func NewRentStation(em *ecs.EntityManager, cfg *config.GameConfig) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return 0, fmt.Errorf("game config cannot be nil")
	}

	rc := cfg.RentStation
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.RentStationComponent{
		InteractRange: rc.InteractRange,
	})
	ecs.AddComponent(em, id, &components.TransformComponent{
		Position: utils.Vec3{X: rc.X, Y: rentStationRadius, Z: rc.Z},
	})
	ecs.AddComponent(em, id, &components.RigidBodyComponent{
		Radius: rentStationRadius,
		Solid:  true,
		Static: true,
	})
	return id, nil
}

const rentStationRadius = 0.6

func newContactComponent() *components.ContactComponent {
	return &components.ContactComponent{
		Touching: make(map[ecs.EntityID]bool),
	}
}
