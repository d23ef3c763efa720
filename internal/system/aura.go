// internal/system/aura.go
package system

import (
	"lane-defense/internal/defs"
	"lane-defense/internal/entity"
	"lane-defense/internal/types"
	"lane-defense/pkg/gridmap"
)

// AuraSystem keeps the per-tile aura counters paired with tower
// placement: Apply on placement, Release on removal or death. The tower
// component records exactly which cells it incremented, so Release is
// idempotent and the counters return to zero when the last aura tower is
// gone.
type AuraSystem struct {
	ecs  *entity.ECS
	grid *gridmap.Grid
}

func NewAuraSystem(ecs *entity.ECS, grid *gridmap.Grid) *AuraSystem {
	return &AuraSystem{ecs: ecs, grid: grid}
}

// Apply increments the aura counters of the tower's influence cells, if
// its archetype grants an aura.
func (s *AuraSystem) Apply(towerID types.EntityID) {
	tower, ok := s.ecs.Towers[towerID]
	if !ok || len(tower.AuraCells) > 0 {
		return
	}
	def, ok := defs.TowerLibrary[tower.DefID]
	if !ok || def.Aura == nil {
		return
	}
	for _, offset := range def.Aura.Offsets {
		cell := gridmap.Cell{X: tower.Cell.X + offset[0], Y: tower.Cell.Y + offset[1]}
		if !s.grid.Contains(cell) {
			continue
		}
		s.grid.AddAura(cell)
		tower.AuraCells = append(tower.AuraCells, cell)
	}
}

// Release decrements exactly the counters this tower incremented. Calling
// it again is a no-op.
func (s *AuraSystem) Release(towerID types.EntityID) {
	tower, ok := s.ecs.Towers[towerID]
	if !ok {
		return
	}
	for _, cell := range tower.AuraCells {
		s.grid.RemoveAura(cell)
	}
	tower.AuraCells = nil
}
