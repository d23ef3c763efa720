// component/tower.go
package component

import "lane-defense/pkg/gridmap"

// Tower marks an entity as a placed tower. Towers never move after
// placement. AuraCells records the exact cells whose counters this tower
// incremented, so removal decrements the same set once.
type Tower struct {
	DefID     string
	Cell      gridmap.Cell
	AuraCells []gridmap.Cell
}
