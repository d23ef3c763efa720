// internal/system/damage.go
package system

import (
	"math"

	"lane-defense/internal/component"
	"lane-defense/internal/config"
	"lane-defense/internal/defs"
	"lane-defense/internal/entity"
	"lane-defense/internal/event"
	"lane-defense/internal/types"
	"lane-defense/pkg/gridmap"
)

// ResolveDamage applies the mitigation formula for the given damage kind.
// Physical damage is reduced subtractively by defense, magical damage
// multiplicatively by magic resist (capped at 100), true damage passes
// through. Penetration reduces the respective mitigation stat. Any hit
// with a positive base deals at least floor(max(1, base*0.05)) damage.
func ResolveDamage(baseDamage int, kind defs.DamageType, defense, magicResist, physPen, magicPen int) int {
	if baseDamage <= 0 {
		return 0
	}
	minDamage := int(math.Floor(math.Max(1, float64(baseDamage)*0.05)))
	switch kind {
	case defs.DamagePhysical:
		effDefense := defense - physPen
		if effDefense < 0 {
			effDefense = 0
		}
		dealt := baseDamage - effDefense
		if dealt < minDamage {
			dealt = minDamage
		}
		return dealt
	case defs.DamageMagical:
		reduction := magicResist - magicPen
		if reduction < 0 {
			reduction = 0
		} else if reduction > 100 {
			reduction = 100
		}
		dealt := int(math.Floor(float64(baseDamage) * (1.0 - float64(reduction)/100.0)))
		if dealt < minDamage {
			dealt = minDamage
		}
		return dealt
	default: // true damage
		return baseDamage
	}
}

// InRange reports whether the target cell falls on the attacker's range
// pattern.
func InRange(attacker, target gridmap.Cell, cs *defs.CombatStats) bool {
	return cs.InMask(target.X-attacker.X, target.Y-attacker.Y)
}

// TowerDefenses returns the tower's effective defense and magic resist,
// including the aura bonus when the tower's tile counter is above zero.
// The bonus is never baked into stored stats; it is read here, at
// resolution time, so stacking and unstacking auras cannot corrupt them.
func TowerDefenses(grid *gridmap.Grid, def *defs.TowerDefinition, cell gridmap.Cell) (defense, magicResist int) {
	defense = def.PhysicalDefense
	magicResist = def.MagicResist
	if grid.AuraCount(cell) > 0 {
		defense += config.AuraDefenseBonus
		magicResist += config.AuraMagicResistBonus
	}
	return defense, magicResist
}

// ApplyDamage subtracts already-resolved damage from an entity's health,
// clamping at zero. A killed enemy dispatches EnemyKilled exactly once;
// dead entities are reaped by the orchestrator at the end of the tick.
func ApplyDamage(ecs *entity.ECS, dispatcher *event.Dispatcher, targetID types.EntityID, damage int) {
	health, hasHealth := ecs.Healths[targetID]
	if !hasHealth || health.Value <= 0 {
		return
	}
	health.Value -= damage
	if health.Value > 0 {
		return
	}
	health.Value = 0
	if enemy, isEnemy := ecs.Enemies[targetID]; isEnemy {
		dispatcher.Dispatch(event.Event{
			Type: event.EnemyKilled,
			Data: event.KillData{ID: targetID, Bounty: enemy.Bounty},
		})
	}
}

// enemyCell returns the grid cell an enemy currently stands on.
func enemyCell(pos *component.Position) gridmap.Cell {
	return gridmap.PixelToCell(pos.X, pos.Y)
}
