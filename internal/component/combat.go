// component/combat.go
package component

import "lane-defense/internal/types"

// AttackPhase is the state of the generic attack cycle.
type AttackPhase int

const (
	PhaseIdle AttackPhase = iota
	PhaseCharging
	PhaseFiring
	PhaseCooldown
)

// Combat is the runtime attack-cycle state of a tower or a
// counter-attacking enemy. The static parameters live in the archetype
// definition; this component holds only the timers and burst progress.
type Combat struct {
	Phase          AttackPhase
	Cooldown       float64
	ChargeTimer    float64
	BurstShotsLeft int
	BurstTimer     float64
	// TargetID is the tower a counter-attacking enemy locked onto for the
	// current volley. Zero when not attacking.
	TargetID types.EntityID
}
