// internal/system/movement.go
package system

import (
	"math"

	"lane-defense/internal/component"
	"lane-defense/internal/entity"
	"lane-defense/internal/event"
)

// MovementSystem advances enemies along their precomputed routes. An enemy
// holding a counter-attack volley does not move. Reaching the last cell of
// the route marks the enemy and dispatches EnemyReachedObjective; removal
// and the core-health decrement happen in the orchestrator.
type MovementSystem struct {
	ecs        *entity.ECS
	dispatcher *event.Dispatcher
}

func NewMovementSystem(ecs *entity.ECS, dispatcher *event.Dispatcher) *MovementSystem {
	return &MovementSystem{ecs: ecs, dispatcher: dispatcher}
}

func (s *MovementSystem) Update(deltaTime float64) {
	for id, path := range s.ecs.Paths {
		enemy, isEnemy := s.ecs.Enemies[id]
		if !isEnemy || enemy.ReachedEnd {
			continue
		}
		// An enemy killed earlier in this tick must not keep walking; it
		// would otherwise reach the objective while awaiting reaping.
		if health := s.ecs.Healths[id]; health == nil || health.Value <= 0 {
			continue
		}
		pos := s.ecs.Positions[id]
		vel := s.ecs.Velocities[id]
		if pos == nil || vel == nil {
			continue
		}
		if combat, attacking := s.ecs.Combats[id]; attacking && combat.Phase == component.PhaseFiring {
			continue // holding position for a volley
		}

		remaining := vel.Speed * deltaTime
		for remaining > 0 {
			if path.CurrentIndex >= len(path.Cells) {
				enemy.ReachedEnd = true
				s.dispatcher.Dispatch(event.Event{Type: event.EnemyReachedObjective, Data: id})
				break
			}
			tx, ty := path.Cells[path.CurrentIndex].ToPixel()
			dx := tx - pos.X
			dy := ty - pos.Y
			dist := math.Sqrt(dx*dx + dy*dy)
			if dist <= remaining {
				pos.X = tx
				pos.Y = ty
				path.CurrentIndex++
				remaining -= dist
				continue
			}
			pos.X += (dx / dist) * remaining
			pos.Y += (dy / dist) * remaining
			remaining = 0
		}
	}
}
