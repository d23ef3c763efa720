// pkg/gridmap/grid.go
package gridmap

import (
	"fmt"

	"lane-defense/internal/config"
)

// TileType classifies a single grid cell.
type TileType int

const (
	TileGround TileType = iota
	TilePlatform
	TileObstacle
	TileSpawnGate
	TileObjectiveGate
)

// Tile is one cell of the map. The grid itself is immutable after load;
// only the occupancy flag and the aura counter change at runtime.
type Tile struct {
	Type      TileType
	Occupied  bool
	AuraCount int
}

// Cell addresses a tile by grid coordinates.
type Cell struct {
	X, Y int
}

// ManhattanDistance is the 4-directional walking distance between two cells.
func (c Cell) ManhattanDistance(o Cell) int {
	dx := c.X - o.X
	if dx < 0 {
		dx = -dx
	}
	dy := c.Y - o.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Neighbors returns the four orthogonal neighbors in a fixed scan order.
func (c Cell) Neighbors() [4]Cell {
	return [4]Cell{
		{c.X + 1, c.Y},
		{c.X - 1, c.Y},
		{c.X, c.Y + 1},
		{c.X, c.Y - 1},
	}
}

// ToPixel returns the pixel center of the cell.
func (c Cell) ToPixel() (float64, float64) {
	return (float64(c.X) + 0.5) * config.TileSize, (float64(c.Y) + 0.5) * config.TileSize
}

// PixelToCell maps a continuous position back onto the grid.
func PixelToCell(x, y float64) Cell {
	return Cell{int(x / config.TileSize), int(y / config.TileSize)}
}

// Grid is the fixed game map.
type Grid struct {
	Width, Height  int
	Tiles          [][]Tile // indexed [y][x]
	SpawnGates     []Cell
	ObjectiveGates []Cell
}

// Layout legend for New.
const (
	legendGround    = '.'
	legendPlatform  = '='
	legendObstacle  = '#'
	legendSpawn     = 'S'
	legendObjective = 'O'
)

// New builds a grid from a row-of-runes layout. Rows must be non-empty and
// of equal length, and the layout must contain at least one spawn gate and
// one objective gate.
func New(rows []string) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("gridmap: empty layout")
	}
	width := len(rows[0])
	g := &Grid{
		Width:  width,
		Height: len(rows),
		Tiles:  make([][]Tile, len(rows)),
	}
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("gridmap: row %d has length %d, want %d", y, len(row), width)
		}
		g.Tiles[y] = make([]Tile, width)
		for x, r := range row {
			var tt TileType
			switch r {
			case legendGround:
				tt = TileGround
			case legendPlatform:
				tt = TilePlatform
			case legendObstacle:
				tt = TileObstacle
			case legendSpawn:
				tt = TileSpawnGate
				g.SpawnGates = append(g.SpawnGates, Cell{x, y})
			case legendObjective:
				tt = TileObjectiveGate
				g.ObjectiveGates = append(g.ObjectiveGates, Cell{x, y})
			default:
				return nil, fmt.Errorf("gridmap: unknown tile %q at %d,%d", r, x, y)
			}
			g.Tiles[y][x] = Tile{Type: tt}
		}
	}
	if len(g.SpawnGates) == 0 {
		return nil, fmt.Errorf("gridmap: layout has no spawn gate")
	}
	if len(g.ObjectiveGates) == 0 {
		return nil, fmt.Errorf("gridmap: layout has no objective gate")
	}
	return g, nil
}

// Contains reports whether the cell lies on the map.
func (g *Grid) Contains(c Cell) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

// TileAt returns the tile at x,y, or nil when out of bounds.
func (g *Grid) TileAt(x, y int) *Tile {
	if !g.Contains(Cell{x, y}) {
		return nil
	}
	return &g.Tiles[y][x]
}

// IsWalkable reports whether enemies may traverse the cell. Only ground and
// gate tiles are walkable; tower occupancy never blocks movement.
func (g *Grid) IsWalkable(x, y int) bool {
	t := g.TileAt(x, y)
	if t == nil {
		return false
	}
	switch t.Type {
	case TileGround, TileSpawnGate, TileObjectiveGate:
		return true
	}
	return false
}

// CanPlace reports whether a tower may be placed on the cell. Platform
// tiles accept any tower; ground tiles accept only archetypes flagged for
// ground placement. An occupied cell never accepts a tower.
func (g *Grid) CanPlace(x, y int, groundAllowed bool) bool {
	t := g.TileAt(x, y)
	if t == nil || t.Occupied {
		return false
	}
	switch t.Type {
	case TilePlatform:
		return true
	case TileGround:
		return groundAllowed
	}
	return false
}

// SetOccupied marks or clears tower occupancy on the cell.
func (g *Grid) SetOccupied(x, y int, occupied bool) {
	if t := g.TileAt(x, y); t != nil {
		t.Occupied = occupied
	}
}

// AddAura increments the aura counter of the cell.
func (g *Grid) AddAura(c Cell) {
	if t := g.TileAt(c.X, c.Y); t != nil {
		t.AuraCount++
	}
}

// RemoveAura decrements the aura counter of the cell. The counter never
// goes below zero; a mismatched decrement indicates a bookkeeping bug in
// the caller.
func (g *Grid) RemoveAura(c Cell) {
	if t := g.TileAt(c.X, c.Y); t != nil && t.AuraCount > 0 {
		t.AuraCount--
	}
}

// AuraCount returns the aura counter of the cell, zero when out of bounds.
func (g *Grid) AuraCount(c Cell) int {
	t := g.TileAt(c.X, c.Y)
	if t == nil {
		return 0
	}
	return t.AuraCount
}
