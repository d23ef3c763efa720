// internal/defs/maps.go
package defs

// MapDefinition is a row-of-runes map layout. Legend: '.' ground,
// '=' platform, '#' obstacle, 'S' spawn gate, 'O' objective gate.
type MapDefinition struct {
	Name string   `yaml:"name"`
	Rows []string `yaml:"rows"`
}

// DefaultMap is the built-in map: a single lane with platform banks and a
// choke point in the middle.
var DefaultMap = MapDefinition{
	Name: "lane",
	Rows: []string{
		"################",
		"#==============#",
		"S..............O",
		"#==============#",
		"#..............#",
		"#==============#",
		"################",
	},
}
