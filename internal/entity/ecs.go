// internal/entity/ecs.go
package entity

import (
	"lane-defense/internal/component"
	"lane-defense/internal/config"
	"lane-defense/internal/types"
)

// ECS holds every entity's components in per-component maps. The
// orchestrator owns exclusive sequential access during a tick.
type ECS struct {
	GameTime    float64
	NextID      types.EntityID
	Positions   map[types.EntityID]*component.Position
	Velocities  map[types.EntityID]*component.Velocity
	Paths       map[types.EntityID]*component.Path
	Healths     map[types.EntityID]*component.Health
	Towers      map[types.EntityID]*component.Tower
	Enemies     map[types.EntityID]*component.Enemy
	Combats     map[types.EntityID]*component.Combat
	Projectiles map[types.EntityID]*component.Projectile
	Wave        *component.Wave
	GameState   *component.GameState
}

func NewECS() *ECS {
	return &ECS{
		NextID:      1,
		Positions:   make(map[types.EntityID]*component.Position),
		Velocities:  make(map[types.EntityID]*component.Velocity),
		Paths:       make(map[types.EntityID]*component.Path),
		Healths:     make(map[types.EntityID]*component.Health),
		Towers:      make(map[types.EntityID]*component.Tower),
		Enemies:     make(map[types.EntityID]*component.Enemy),
		Combats:     make(map[types.EntityID]*component.Combat),
		Projectiles: make(map[types.EntityID]*component.Projectile),
		Wave:        nil,
		GameState: &component.GameState{
			Phase:      component.PhaseRunning,
			CoreHealth: config.BaseCoreHealth,
		},
	}
}

func (ecs *ECS) NewEntity() types.EntityID {
	id := ecs.NextID
	ecs.NextID++
	return id
}
