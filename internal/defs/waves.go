// internal/defs/waves.go
package defs

// SpawnEvent releases one enemy Delay seconds after the wave's prepare
// time has elapsed. Gate indexes into the map's spawn gate list.
type SpawnEvent struct {
	EnemyID string  `yaml:"enemy"`
	Delay   float64 `yaml:"delay"`
	Gate    int     `yaml:"gate,omitempty"`
}

// WaveDefinition describes one wave. Definitions are static configuration;
// runtime progress lives in the wave component.
type WaveDefinition struct {
	PrepareTime float64      `yaml:"prepare_time"`
	Spawns      []SpawnEvent `yaml:"spawns"`
}

// WavePatterns is the wave schedule, in play order.
var WavePatterns []WaveDefinition

var defaultWaveDefs = []WaveDefinition{
	{PrepareTime: 3.0, Spawns: trickle("ENEMY_SCOUT", 5, 0.8)},
	{PrepareTime: 2.0, Spawns: trickle("ENEMY_SCOUT", 8, 0.8)},
	{PrepareTime: 2.0, Spawns: trickle("ENEMY_RUNNER", 8, 0.5)},
	{PrepareTime: 2.0, Spawns: trickle("ENEMY_BRUTE", 6, 1.2)},
	{PrepareTime: 2.0, Spawns: append(trickle("ENEMY_SCOUT", 8, 0.6), trickle("ENEMY_WARLOCK", 4, 1.0)...)},
	{PrepareTime: 2.5, Spawns: trickle("ENEMY_SAPPER", 5, 1.5)},
	{PrepareTime: 2.0, Spawns: append(trickle("ENEMY_BRUTE", 8, 0.9), trickle("ENEMY_RUNNER", 10, 0.4)...)},
	{PrepareTime: 2.0, Spawns: append(trickle("ENEMY_WARLOCK", 8, 0.7), trickle("ENEMY_SAPPER", 4, 1.6)...)},
	{PrepareTime: 2.0, Spawns: trickle("ENEMY_RUNNER", 20, 0.3)},
	{PrepareTime: 4.0, Spawns: []SpawnEvent{{EnemyID: "ENEMY_COLOSSUS", Delay: 0}}},
}

// trickle builds a run of identical spawn events at a fixed interval.
func trickle(enemyID string, count int, interval float64) []SpawnEvent {
	events := make([]SpawnEvent, count)
	for i := range events {
		events[i] = SpawnEvent{EnemyID: enemyID, Delay: float64(i) * interval}
	}
	return events
}
