// internal/component/projectile.go
package component

import (
	"lane-defense/internal/defs"
	"lane-defense/internal/types"
)

// Projectile is a transient attack instance in flight. Exactly one of the
// three flight modes applies:
//
//   - homing: TargetID is set; the projectile steers toward the target's
//     current position and expires if the target despawns;
//   - ballistic: FlightTime > 0; the projectile travels to TargetX,TargetY
//     and detonates its falloff layers on arrival;
//   - aimless: neither of the above; the projectile flies along Direction
//     and hits the first enemy that comes within HitRadius.
type Projectile struct {
	SourceID   types.EntityID
	TargetID   types.EntityID
	TargetKind types.EntityKind // kind of TargetID, for homing shots

	Damage     int
	DamageType defs.DamageType
	PhysPen    int
	MagicPen   int

	Speed      float64
	Direction  float64 // radians
	TargetX    float64
	TargetY    float64
	FlightTime float64
	Falloff    []defs.FalloffLayer

	Age         float64
	MaxLifetime float64
	HitRadius   float64
}
