// component/movement.go
package component

import "lane-defense/pkg/gridmap"

// Position is the continuous pixel position of an entity.
type Position struct {
	X, Y float64
}

// Velocity is the movement speed in pixels per second.
type Velocity struct {
	Speed float64
}

// Path is the precomputed route an enemy follows, as grid cells.
type Path struct {
	Cells        []gridmap.Cell
	CurrentIndex int
}
