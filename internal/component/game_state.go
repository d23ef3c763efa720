package component

// GamePhase is the terminal-state machine of one simulation run.
type GamePhase int

const (
	PhaseRunning GamePhase = iota
	PhaseVictory
	PhaseDefeat
)

// GameState holds the defender-side outcome counters.
type GameState struct {
	Phase      GamePhase
	CoreHealth int
}
