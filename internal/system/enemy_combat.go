// internal/system/enemy_combat.go
package system

import (
	"math"

	"lane-defense/internal/component"
	"lane-defense/internal/config"
	"lane-defense/internal/defs"
	"lane-defense/internal/entity"
	"lane-defense/internal/event"
	"lane-defense/internal/types"
)

// EnemyCombatSystem runs the counter-attack state machines of enemies
// whose archetype can damage towers. Such an enemy moves until a tower
// enters its range while its attack is off cooldown, then holds position
// and emits a timed volley of projectiles at that tower before resuming
// movement.
type EnemyCombatSystem struct {
	ecs        *entity.ECS
	dispatcher *event.Dispatcher
}

func NewEnemyCombatSystem(ecs *entity.ECS, dispatcher *event.Dispatcher) *EnemyCombatSystem {
	return &EnemyCombatSystem{ecs: ecs, dispatcher: dispatcher}
}

func (s *EnemyCombatSystem) Update(deltaTime float64) {
	for id, combat := range s.ecs.Combats {
		enemy, isEnemy := s.ecs.Enemies[id]
		if !isEnemy || enemy.ReachedEnd {
			continue
		}
		if health := s.ecs.Healths[id]; health == nil || health.Value <= 0 {
			continue // killed earlier this tick, awaiting reaping
		}
		def, ok := defs.EnemyLibrary[enemy.DefID]
		if !ok || def.Attack == nil {
			continue
		}
		cs := def.Attack

		switch combat.Phase {
		case component.PhaseIdle:
			if combat.Cooldown > 0 {
				combat.Cooldown -= deltaTime
				continue
			}
			targetID := s.nearestTowerInRange(id, cs)
			if targetID == 0 {
				continue
			}
			combat.Phase = component.PhaseFiring
			combat.TargetID = targetID
			combat.BurstShotsLeft = cs.BurstCount
			combat.BurstTimer = 0

		case component.PhaseFiring:
			if !s.towerAlive(combat.TargetID) {
				s.endVolley(combat, cs)
				continue
			}
			combat.BurstTimer -= deltaTime
			for combat.BurstTimer <= 0 && combat.BurstShotsLeft > 0 {
				s.fireAtTower(id, enemy, cs, combat.TargetID)
				combat.BurstShotsLeft--
				combat.BurstTimer += cs.BurstInterval
			}
			if combat.BurstShotsLeft <= 0 {
				s.endVolley(combat, cs)
			}
		}
	}
}

func (s *EnemyCombatSystem) endVolley(combat *component.Combat, cs *defs.CombatStats) {
	combat.Phase = component.PhaseIdle
	combat.TargetID = 0
	combat.Cooldown = cs.Cooldown()
}

func (s *EnemyCombatSystem) towerAlive(id types.EntityID) bool {
	if _, exists := s.ecs.Towers[id]; !exists {
		return false
	}
	health, hasHealth := s.ecs.Healths[id]
	return hasHealth && health.Value > 0
}

func (s *EnemyCombatSystem) nearestTowerInRange(id types.EntityID, cs *defs.CombatStats) types.EntityID {
	pos := s.ecs.Positions[id]
	if pos == nil {
		return 0
	}
	cell := enemyCell(pos)
	var nearest types.EntityID
	minDistance := math.MaxFloat64
	for towerID, tower := range s.ecs.Towers {
		if !s.towerAlive(towerID) {
			continue
		}
		if !InRange(cell, tower.Cell, cs) {
			continue
		}
		tx, ty := tower.Cell.ToPixel()
		dx := tx - pos.X
		dy := ty - pos.Y
		distance := dx*dx + dy*dy
		if distance < minDistance {
			minDistance = distance
			nearest = towerID
		}
	}
	return nearest
}

func (s *EnemyCombatSystem) fireAtTower(id types.EntityID, enemy *component.Enemy, cs *defs.CombatStats, targetID types.EntityID) {
	pos := s.ecs.Positions[id]
	if pos == nil {
		return
	}
	projID := s.ecs.NewEntity()
	s.ecs.Positions[projID] = &component.Position{X: pos.X, Y: pos.Y}
	s.ecs.Projectiles[projID] = &component.Projectile{
		SourceID:    id,
		TargetID:    targetID,
		TargetKind:  types.KindTower,
		Damage:      cs.Damage,
		DamageType:  cs.DamageType,
		PhysPen:     cs.PhysPen,
		MagicPen:    cs.MagicPen,
		Speed:       cs.ProjectileSpeed,
		MaxLifetime: config.ProjectileLifetime,
		HitRadius:   config.ProjectileHitRadius,
	}
	s.dispatcher.Dispatch(event.Event{
		Type: event.ProjectileFired,
		Data: event.FireData{
			SourceID:   id,
			Archetype:  enemy.DefID,
			Behavior:   cs.Behavior,
			DamageType: cs.DamageType,
			X:          pos.X,
			Y:          pos.Y,
		},
	})
}
