// internal/event/types.go
package event

import (
	"lane-defense/internal/defs"
	"lane-defense/internal/types"
)

const (
	WaveStarted           EventType = "WaveStarted"
	WaveEnded             EventType = "WaveEnded"
	AllWavesComplete      EventType = "AllWavesComplete"
	EnemySpawned          EventType = "EnemySpawned"
	EnemyKilled           EventType = "EnemyKilled"
	EnemyReachedObjective EventType = "EnemyReachedObjective"
	TowerPlaced           EventType = "TowerPlaced"
	TowerRemoved          EventType = "TowerRemoved"
	TowerDestroyed        EventType = "TowerDestroyed"
	ProjectileFired       EventType = "ProjectileFired"
)

// SpawnData is the payload of EnemySpawned.
type SpawnData struct {
	ID        types.EntityID
	Archetype string
	Gate      int
}

// KillData is the payload of EnemyKilled.
type KillData struct {
	ID     types.EntityID
	Bounty int
}

// FireData describes one discrete fire event, the payload of
// ProjectileFired. The host uses it to spawn the matching visual and
// audio effect.
type FireData struct {
	SourceID   types.EntityID
	Archetype  string
	Behavior   defs.BehaviorType
	DamageType defs.DamageType
	X, Y       float64
}
