// component/wave.go
package component

// WavePhase is the lifecycle state of the active wave.
type WavePhase int

const (
	WaveSpawning WavePhase = iota
	WaveAwaitingClear
)

// Wave holds the runtime progress of the active wave. The wave
// configuration itself is never mutated.
type Wave struct {
	Number     int // 1-based
	Phase      WavePhase
	Elapsed    float64 // seconds since the wave started
	NextSpawn  int     // index of the next spawn event to release
	AllSpawned bool
}
