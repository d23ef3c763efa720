// internal/system/projectile.go
package system

import (
	"math"

	"lane-defense/internal/component"
	"lane-defense/internal/defs"
	"lane-defense/internal/entity"
	"lane-defense/internal/event"
	"lane-defense/internal/types"
	"lane-defense/pkg/gridmap"
)

// ProjectileSystem advances every attack instance in flight, performs hit
// tests, resolves damage and removes spent projectiles. A projectile whose
// target despawned mid-flight expires without dealing damage.
type ProjectileSystem struct {
	ecs        *entity.ECS
	grid       *gridmap.Grid
	dispatcher *event.Dispatcher
}

func NewProjectileSystem(ecs *entity.ECS, grid *gridmap.Grid, dispatcher *event.Dispatcher) *ProjectileSystem {
	return &ProjectileSystem{ecs: ecs, grid: grid, dispatcher: dispatcher}
}

func (s *ProjectileSystem) Update(deltaTime float64) {
	for id, proj := range s.ecs.Projectiles {
		pos := s.ecs.Positions[id]
		if pos == nil {
			s.removeProjectile(id)
			continue
		}
		proj.Age += deltaTime
		if proj.MaxLifetime > 0 && proj.Age > proj.MaxLifetime {
			s.removeProjectile(id)
			continue
		}

		switch {
		case proj.FlightTime > 0:
			s.updateBallistic(id, proj, pos, deltaTime)
		case proj.TargetID != 0:
			s.updateHoming(id, proj, pos, deltaTime)
		default:
			s.updateAimless(id, proj, pos, deltaTime)
		}
	}
}

// updateBallistic flies the shell to its fixed impact point and detonates
// the layered falloff on arrival.
func (s *ProjectileSystem) updateBallistic(id types.EntityID, proj *component.Projectile, pos *component.Position, deltaTime float64) {
	if proj.Age >= proj.FlightTime {
		s.detonate(proj)
		s.removeProjectile(id)
		return
	}
	// Close the remaining distance over the remaining flight time.
	remainingTime := proj.FlightTime - proj.Age
	dx := proj.TargetX - pos.X
	dy := proj.TargetY - pos.Y
	fraction := deltaTime / (remainingTime + deltaTime)
	pos.X += dx * fraction
	pos.Y += dy * fraction
}

func (s *ProjectileSystem) updateHoming(id types.EntityID, proj *component.Projectile, pos *component.Position, deltaTime float64) {
	targetPos, targetAlive := s.targetPosition(proj)
	if !targetAlive {
		// Target despawned mid-flight: expire without damage.
		s.removeProjectile(id)
		return
	}
	dx := targetPos.X - pos.X
	dy := targetPos.Y - pos.Y
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist <= proj.Speed*deltaTime || dist < proj.HitRadius {
		s.hitTarget(proj)
		s.removeProjectile(id)
		return
	}
	pos.X += (dx / dist) * proj.Speed * deltaTime
	pos.Y += (dy / dist) * proj.Speed * deltaTime
}

// updateAimless flies a scattered splash particle along its direction and
// damages the first enemy that comes within the hit radius.
func (s *ProjectileSystem) updateAimless(id types.EntityID, proj *component.Projectile, pos *component.Position, deltaTime float64) {
	pos.X += math.Cos(proj.Direction) * proj.Speed * deltaTime
	pos.Y += math.Sin(proj.Direction) * proj.Speed * deltaTime
	for enemyID, enemy := range s.ecs.Enemies {
		if enemy.ReachedEnd {
			continue
		}
		health := s.ecs.Healths[enemyID]
		if health == nil || health.Value <= 0 {
			continue
		}
		enemyPos := s.ecs.Positions[enemyID]
		if enemyPos == nil {
			continue
		}
		dx := enemyPos.X - pos.X
		dy := enemyPos.Y - pos.Y
		if math.Sqrt(dx*dx+dy*dy) < proj.HitRadius {
			resolved := ResolveDamage(proj.Damage, proj.DamageType, enemy.PhysicalDefense, enemy.MagicResist, proj.PhysPen, proj.MagicPen)
			ApplyDamage(s.ecs, s.dispatcher, enemyID, resolved)
			s.removeProjectile(id)
			return
		}
	}
}

// targetPosition returns the live target's position, or false when the
// target is gone or already dead.
func (s *ProjectileSystem) targetPosition(proj *component.Projectile) (*component.Position, bool) {
	switch proj.TargetKind {
	case types.KindTower:
		if _, exists := s.ecs.Towers[proj.TargetID]; !exists {
			return nil, false
		}
	default:
		enemy, exists := s.ecs.Enemies[proj.TargetID]
		if !exists || enemy.ReachedEnd {
			return nil, false
		}
	}
	health := s.ecs.Healths[proj.TargetID]
	if health == nil || health.Value <= 0 {
		return nil, false
	}
	pos := s.ecs.Positions[proj.TargetID]
	if pos == nil {
		return nil, false
	}
	return pos, true
}

func (s *ProjectileSystem) hitTarget(proj *component.Projectile) {
	var resolved int
	switch proj.TargetKind {
	case types.KindTower:
		tower := s.ecs.Towers[proj.TargetID]
		def, ok := defs.TowerLibrary[tower.DefID]
		if !ok {
			return
		}
		defense, magicResist := TowerDefenses(s.grid, &def, tower.Cell)
		resolved = ResolveDamage(proj.Damage, proj.DamageType, defense, magicResist, proj.PhysPen, proj.MagicPen)
	default:
		enemy := s.ecs.Enemies[proj.TargetID]
		resolved = ResolveDamage(proj.Damage, proj.DamageType, enemy.PhysicalDefense, enemy.MagicResist, proj.PhysPen, proj.MagicPen)
	}
	ApplyDamage(s.ecs, s.dispatcher, proj.TargetID, resolved)
}

// detonate applies the layered area falloff around the impact point. Every
// living enemy within the outer radius takes baseDamage scaled by the
// nearest layer that contains it, independently of other targets.
func (s *ProjectileSystem) detonate(proj *component.Projectile) {
	for enemyID, enemy := range s.ecs.Enemies {
		if enemy.ReachedEnd {
			continue
		}
		health := s.ecs.Healths[enemyID]
		if health == nil || health.Value <= 0 {
			continue
		}
		pos := s.ecs.Positions[enemyID]
		if pos == nil {
			continue
		}
		dx := pos.X - proj.TargetX
		dy := pos.Y - proj.TargetY
		dist := math.Sqrt(dx*dx + dy*dy)
		scaled, hit := scaleByFalloff(proj.Damage, proj.Falloff, dist)
		if !hit {
			continue
		}
		resolved := ResolveDamage(scaled, proj.DamageType, enemy.PhysicalDefense, enemy.MagicResist, proj.PhysPen, proj.MagicPen)
		ApplyDamage(s.ecs, s.dispatcher, enemyID, resolved)
	}
}

// scaleByFalloff finds the nearest falloff layer containing dist and
// scales the base damage by its percentage.
func scaleByFalloff(base int, layers []defs.FalloffLayer, dist float64) (int, bool) {
	for _, layer := range layers {
		if dist <= layer.Radius {
			return int(math.Floor(float64(base) * layer.Percent)), true
		}
	}
	return 0, false
}

func (s *ProjectileSystem) removeProjectile(id types.EntityID) {
	delete(s.ecs.Positions, id)
	delete(s.ecs.Projectiles, id)
}
