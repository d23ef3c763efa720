// internal/app/tower_management.go
package app

import (
	"github.com/sirupsen/logrus"

	"lane-defense/internal/component"
	"lane-defense/internal/defs"
	"lane-defense/internal/event"
	"lane-defense/internal/types"
	"lane-defense/pkg/gridmap"
	"lane-defense/pkg/logger"
)

// PlaceTower validates and performs a tower placement. Any validation
// failure (unknown archetype, illegal tile, occupied cell, insufficient
// gold) returns false with no state mutated.
func (g *Game) PlaceTower(defID string, cell gridmap.Cell) (types.EntityID, bool) {
	def, ok := defs.TowerLibrary[defID]
	if !ok {
		logger.Log.WithFields(logrus.Fields{
			"component": "game",
			"tower_def": defID,
		}).Error("unknown tower archetype")
		return 0, false
	}
	if !g.Grid.CanPlace(cell.X, cell.Y, def.PlaceOnGround) {
		return 0, false
	}
	if !g.services.Gold.Spend(def.Cost) {
		return 0, false
	}

	id := g.ECS.NewEntity()
	x, y := cell.ToPixel()
	g.ECS.Positions[id] = &component.Position{X: x, Y: y}
	g.ECS.Healths[id] = &component.Health{Value: def.Health, Max: def.Health}
	g.ECS.Towers[id] = &component.Tower{DefID: defID, Cell: cell}
	if def.Combat != nil {
		g.ECS.Combats[id] = &component.Combat{Phase: component.PhaseIdle}
	}
	g.Grid.SetOccupied(cell.X, cell.Y, true)
	g.AuraSystem.Apply(id)
	g.services.createVisual(id, types.KindTower, defID)
	g.services.playSound("tower_placed")
	g.EventDispatcher.Dispatch(event.Event{Type: event.TowerPlaced, Data: id})
	return id, true
}

// RemoveTower removes a placed tower with no refund, releasing its
// occupancy and aura contributions. Removing an already-removed tower is
// a no-op.
func (g *Game) RemoveTower(id types.EntityID) bool {
	tower, ok := g.ECS.Towers[id]
	if !ok {
		return false
	}
	g.AuraSystem.Release(id)
	g.Grid.SetOccupied(tower.Cell.X, tower.Cell.Y, false)
	delete(g.ECS.Positions, id)
	delete(g.ECS.Healths, id)
	delete(g.ECS.Towers, id)
	delete(g.ECS.Combats, id)
	g.EventDispatcher.Dispatch(event.Event{Type: event.TowerRemoved, Data: id})
	if cb := g.services.Callbacks.OnEntityDestroyed; cb != nil {
		cb(id, types.KindTower)
	}
	return true
}
