// internal/system/combat.go
package system

import (
	"math"

	"github.com/sirupsen/logrus"

	"lane-defense/internal/component"
	"lane-defense/internal/config"
	"lane-defense/internal/defs"
	"lane-defense/internal/entity"
	"lane-defense/internal/event"
	"lane-defense/internal/types"
	"lane-defense/internal/utils"
	"lane-defense/pkg/gridmap"
	"lane-defense/pkg/logger"
)

// CombatSystem runs the attack state machines of all placed towers. Every
// archetype shares the same Idle -> Charging -> Firing -> Cooldown cycle,
// parameterized by its behavior tag; instant and splash archetypes skip
// the charge phase entirely.
type CombatSystem struct {
	ecs        *entity.ECS
	grid       *gridmap.Grid
	dispatcher *event.Dispatcher
	rng        *utils.PRNGService
}

func NewCombatSystem(ecs *entity.ECS, grid *gridmap.Grid, dispatcher *event.Dispatcher, rng *utils.PRNGService) *CombatSystem {
	return &CombatSystem{
		ecs:        ecs,
		grid:       grid,
		dispatcher: dispatcher,
		rng:        rng,
	}
}

// target is one live enemy in a tower's range snapshot.
type target struct {
	id  types.EntityID
	pos *component.Position
}

func (s *CombatSystem) Update(deltaTime float64) {
	for id, combat := range s.ecs.Combats {
		tower, hasTower := s.ecs.Towers[id]
		if !hasTower {
			continue
		}
		def, ok := defs.TowerLibrary[tower.DefID]
		if !ok || def.Combat == nil {
			logger.Log.WithFields(logrus.Fields{
				"component": "combat_system",
				"tower_def": tower.DefID,
			}).Error("missing combat definition for tower")
			continue
		}
		cs := def.Combat

		switch cs.Behavior {
		case defs.BehaviorInstant:
			s.updateInstant(id, tower, cs, combat, deltaTime)
		case defs.BehaviorChargeBurst:
			s.updateChargeBurst(id, tower, cs, combat, deltaTime)
		case defs.BehaviorSplash:
			s.updateSplash(id, tower, cs, combat, deltaTime)
		}
	}
}

func (s *CombatSystem) updateInstant(id types.EntityID, tower *component.Tower, cs *defs.CombatStats, combat *component.Combat, deltaTime float64) {
	if combat.Cooldown > 0 {
		combat.Cooldown -= deltaTime
		return
	}
	targetID := s.nearestInRange(id, tower, cs)
	if targetID == 0 {
		return
	}
	s.fireHoming(id, tower, cs, targetID)
	combat.Cooldown = cs.Cooldown()
}

func (s *CombatSystem) updateChargeBurst(id types.EntityID, tower *component.Tower, cs *defs.CombatStats, combat *component.Combat, deltaTime float64) {
	switch combat.Phase {
	case component.PhaseIdle:
		if len(s.inRange(tower, cs)) == 0 {
			return
		}
		combat.Phase = component.PhaseCharging
		combat.ChargeTimer = 0

	case component.PhaseCharging:
		// Charging proceeds only while a target remains in range.
		if len(s.inRange(tower, cs)) == 0 {
			combat.Phase = component.PhaseIdle
			combat.ChargeTimer = 0
			return
		}
		combat.ChargeTimer += deltaTime
		if combat.ChargeTimer >= cs.ChargeTime {
			combat.Phase = component.PhaseFiring
			combat.BurstShotsLeft = cs.BurstCount
			combat.BurstTimer = 0 // first shot fires immediately
		}

	case component.PhaseFiring:
		combat.BurstTimer -= deltaTime
		for combat.BurstTimer <= 0 && combat.BurstShotsLeft > 0 {
			if !s.fireBurstShot(id, tower, cs) {
				// In-range set emptied mid-burst: cut the burst short.
				combat.BurstShotsLeft = 0
				break
			}
			combat.BurstShotsLeft--
			combat.BurstTimer += cs.BurstInterval
		}
		if combat.BurstShotsLeft <= 0 {
			combat.Phase = component.PhaseCooldown
			combat.Cooldown = cs.Cooldown()
		}

	case component.PhaseCooldown:
		combat.Cooldown -= deltaTime
		if combat.Cooldown <= 0 {
			combat.Cooldown = 0
			combat.Phase = component.PhaseIdle
		}
	}
}

// fireBurstShot emits one discrete shot of a charge-burst cycle according
// to the archetype's firing policy. Returns false when no target was in
// range.
func (s *CombatSystem) fireBurstShot(id types.EntityID, tower *component.Tower, cs *defs.CombatStats) bool {
	switch cs.Policy {
	case defs.FireBallistic:
		// Ballistic shells reselect a random in-range enemy per shot.
		candidates := s.inRange(tower, cs)
		if len(candidates) == 0 {
			return false
		}
		chosen := candidates[s.rng.Intn(len(candidates))]
		s.fireBallistic(id, tower, cs, chosen)
		return true
	case defs.FireBeam:
		targetID := s.nearestInRange(id, tower, cs)
		if targetID == 0 {
			return false
		}
		s.fireBeam(id, tower, cs, targetID)
		return true
	default: // FireBurst
		targetID := s.nearestInRange(id, tower, cs)
		if targetID == 0 {
			return false
		}
		s.fireHoming(id, tower, cs, targetID)
		return true
	}
}

func (s *CombatSystem) updateSplash(id types.EntityID, tower *component.Tower, cs *defs.CombatStats, combat *component.Combat, deltaTime float64) {
	if combat.Cooldown > 0 {
		combat.Cooldown -= deltaTime
		return
	}
	if len(s.inRange(tower, cs)) == 0 {
		return
	}
	// A scattered batch of short-range projectiles in random directions,
	// not aimed at any particular enemy.
	count := s.rng.IntnRange(cs.SplashMin, cs.SplashMax)
	tx, ty := tower.Cell.ToPixel()
	for i := 0; i < count; i++ {
		angle := s.rng.Float64() * 2 * math.Pi
		projID := s.ecs.NewEntity()
		s.ecs.Positions[projID] = &component.Position{X: tx, Y: ty}
		s.ecs.Projectiles[projID] = &component.Projectile{
			SourceID:    id,
			Damage:      cs.Damage,
			DamageType:  cs.DamageType,
			PhysPen:     cs.PhysPen,
			MagicPen:    cs.MagicPen,
			Speed:       config.SplashProjectileSpeed,
			Direction:   angle,
			MaxLifetime: config.SplashProjectileLifetime,
			HitRadius:   config.ProjectileHitRadius,
		}
	}
	s.dispatchFire(id, tower, cs)
	combat.Cooldown = cs.Cooldown()
}

// inRange snapshots the living enemies whose cells fall on the tower's
// range pattern.
func (s *CombatSystem) inRange(tower *component.Tower, cs *defs.CombatStats) []target {
	var found []target
	for enemyID, enemy := range s.ecs.Enemies {
		if enemy.ReachedEnd {
			continue
		}
		health, hasHealth := s.ecs.Healths[enemyID]
		if !hasHealth || health.Value <= 0 {
			continue
		}
		pos := s.ecs.Positions[enemyID]
		if pos == nil {
			continue
		}
		if InRange(tower.Cell, enemyCell(pos), cs) {
			found = append(found, target{id: enemyID, pos: pos})
		}
	}
	return found
}

// nearestInRange picks the in-range enemy closest to the tower by
// Euclidean distance on continuous positions.
func (s *CombatSystem) nearestInRange(id types.EntityID, tower *component.Tower, cs *defs.CombatStats) types.EntityID {
	tx, ty := tower.Cell.ToPixel()
	var nearest types.EntityID
	minDistance := math.MaxFloat64
	for _, t := range s.inRange(tower, cs) {
		dx := t.pos.X - tx
		dy := t.pos.Y - ty
		distance := dx*dx + dy*dy
		if distance < minDistance {
			minDistance = distance
			nearest = t.id
		}
	}
	return nearest
}

func (s *CombatSystem) fireHoming(id types.EntityID, tower *component.Tower, cs *defs.CombatStats, targetID types.EntityID) {
	tx, ty := tower.Cell.ToPixel()
	projID := s.ecs.NewEntity()
	s.ecs.Positions[projID] = &component.Position{X: tx, Y: ty}
	s.ecs.Projectiles[projID] = &component.Projectile{
		SourceID:    id,
		TargetID:    targetID,
		TargetKind:  types.KindEnemy,
		Damage:      cs.Damage,
		DamageType:  cs.DamageType,
		PhysPen:     cs.PhysPen,
		MagicPen:    cs.MagicPen,
		Speed:       cs.ProjectileSpeed,
		MaxLifetime: config.ProjectileLifetime,
		HitRadius:   config.ProjectileHitRadius,
	}
	s.dispatchFire(id, tower, cs)
}

// fireBeam resolves instantly against the chosen target; no projectile
// travels.
func (s *CombatSystem) fireBeam(id types.EntityID, tower *component.Tower, cs *defs.CombatStats, targetID types.EntityID) {
	enemy := s.ecs.Enemies[targetID]
	if enemy == nil {
		return
	}
	resolved := ResolveDamage(cs.Damage, cs.DamageType, enemy.PhysicalDefense, enemy.MagicResist, cs.PhysPen, cs.MagicPen)
	ApplyDamage(s.ecs, s.dispatcher, targetID, resolved)
	s.dispatchFire(id, tower, cs)
}

func (s *CombatSystem) fireBallistic(id types.EntityID, tower *component.Tower, cs *defs.CombatStats, chosen target) {
	tx, ty := tower.Cell.ToPixel()
	projID := s.ecs.NewEntity()
	s.ecs.Positions[projID] = &component.Position{X: tx, Y: ty}
	s.ecs.Projectiles[projID] = &component.Projectile{
		SourceID:   id,
		Damage:     cs.Damage,
		DamageType: cs.DamageType,
		PhysPen:    cs.PhysPen,
		MagicPen:   cs.MagicPen,
		TargetX:    chosen.pos.X,
		TargetY:    chosen.pos.Y,
		FlightTime: cs.FlightTime,
		Falloff:    cs.Falloff,
	}
	s.dispatchFire(id, tower, cs)
}

func (s *CombatSystem) dispatchFire(id types.EntityID, tower *component.Tower, cs *defs.CombatStats) {
	x, y := tower.Cell.ToPixel()
	s.dispatcher.Dispatch(event.Event{
		Type: event.ProjectileFired,
		Data: event.FireData{
			SourceID:   id,
			Archetype:  tower.DefID,
			Behavior:   cs.Behavior,
			DamageType: cs.DamageType,
			X:          x,
			Y:          y,
		},
	})
}
