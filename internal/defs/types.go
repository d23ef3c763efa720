// internal/defs/types.go
package defs

import (
	"fmt"
	"sort"
)

// DamageType defines the kind of damage dealt.
type DamageType string

const (
	DamagePhysical DamageType = "PHYSICAL"
	DamageMagical  DamageType = "MAGICAL"
	DamageTrue     DamageType = "TRUE"
)

// BehaviorType selects which attack state-machine driver runs an archetype.
type BehaviorType string

const (
	// BehaviorInstant fires a single aimed shot as soon as the cooldown
	// expires and a target is in range. No charge phase.
	BehaviorInstant BehaviorType = "INSTANT"
	// BehaviorChargeBurst charges for a fixed time while a target remains
	// in range, then emits a burst of discrete fire events.
	BehaviorChargeBurst BehaviorType = "CHARGE_BURST"
	// BehaviorSplash scatters a randomized batch of short-lived
	// projectiles in random directions whenever an enemy is in range.
	BehaviorSplash BehaviorType = "SPLASH"
	// BehaviorVolley is the counter-attacking enemy driver: hold position
	// and emit a timed burst of projectiles at a tower in range.
	BehaviorVolley BehaviorType = "VOLLEY"
)

// FiringPolicy refines how a CHARGE_BURST archetype emits its shots.
type FiringPolicy string

const (
	// FireBeam resolves the shot instantly against the chosen target.
	FireBeam FiringPolicy = "BEAM"
	// FireBurst launches an aimed projectile per shot at the nearest target.
	FireBurst FiringPolicy = "BURST"
	// FireBallistic lobs an area shell per shot at a random in-range
	// enemy's current position.
	FireBallistic FiringPolicy = "BALLISTIC"
)

// FalloffLayer is one ring of a layered area-damage falloff. Layers are
// evaluated nearest-first; a target within Radius of the impact takes
// baseDamage*Percent of the first layer that contains it.
type FalloffLayer struct {
	Radius  float64 `yaml:"radius"`
	Percent float64 `yaml:"percent"`
}

// CombatStats describes the attack of a tower or a counter-attacking enemy.
type CombatStats struct {
	Damage     int          `yaml:"damage"`
	DamageType DamageType   `yaml:"damage_type"`
	AttackRate float64      `yaml:"attack_rate"` // attack cycles per second
	Behavior   BehaviorType `yaml:"behavior"`
	PhysPen    int          `yaml:"phys_pen,omitempty"`
	MagicPen   int          `yaml:"magic_pen,omitempty"`

	// Pattern is the square bitmask of attackable relative cells, row by
	// row, '1' marking an attackable offset. It must be odd-sized and
	// square; the center row/column is the owner's cell.
	Pattern []string `yaml:"pattern"`
	// Mask is the parsed form of Pattern; filled by the library builder.
	Mask [][]bool `yaml:"-"`

	// CHARGE_BURST / VOLLEY parameters.
	Policy        FiringPolicy `yaml:"policy,omitempty"`
	ChargeTime    float64      `yaml:"charge_time,omitempty"`
	BurstCount    int          `yaml:"burst_count,omitempty"`
	BurstInterval float64      `yaml:"burst_interval,omitempty"`

	// Projectile flight parameters.
	ProjectileSpeed float64 `yaml:"projectile_speed,omitempty"`
	FlightTime      float64 `yaml:"flight_time,omitempty"` // ballistic shells

	// BALLISTIC area falloff, outermost layer last.
	Falloff []FalloffLayer `yaml:"falloff,omitempty"`

	// SPLASH batch size bounds.
	SplashMin int `yaml:"splash_min,omitempty"`
	SplashMax int `yaml:"splash_max,omitempty"`
}

// ParsePattern converts the textual range pattern into a boolean mask and
// validates the square odd-sized invariant.
func ParsePattern(rows []string) ([][]bool, error) {
	n := len(rows)
	if n == 0 || n%2 == 0 {
		return nil, fmt.Errorf("range pattern must be odd-sized, got %d rows", n)
	}
	mask := make([][]bool, n)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("range pattern row %d has length %d, want %d", i, len(row), n)
		}
		mask[i] = make([]bool, n)
		for j, r := range row {
			mask[i][j] = r == '1'
		}
	}
	return mask, nil
}

// Finalize parses the pattern, applies defaults and checks per-behavior
// parameter consistency.
func (cs *CombatStats) Finalize() error {
	mask, err := ParsePattern(cs.Pattern)
	if err != nil {
		return err
	}
	cs.Mask = mask
	if cs.AttackRate <= 0 {
		return fmt.Errorf("attack rate must be positive, got %v", cs.AttackRate)
	}
	switch cs.Behavior {
	case BehaviorInstant:
		if cs.ProjectileSpeed <= 0 {
			return fmt.Errorf("INSTANT attack needs a projectile speed")
		}
	case BehaviorChargeBurst:
		if cs.BurstCount <= 0 {
			cs.BurstCount = 1
		}
		switch cs.Policy {
		case FireBeam:
		case FireBurst:
			if cs.ProjectileSpeed <= 0 {
				return fmt.Errorf("BURST policy needs a projectile speed")
			}
		case FireBallistic:
			if cs.FlightTime <= 0 {
				return fmt.Errorf("BALLISTIC policy needs a flight time")
			}
			if len(cs.Falloff) == 0 {
				return fmt.Errorf("BALLISTIC policy needs falloff layers")
			}
			// Nearest layer first, so containment checks stop at the
			// innermost matching ring.
			sort.SliceStable(cs.Falloff, func(a, b int) bool {
				return cs.Falloff[a].Radius < cs.Falloff[b].Radius
			})
		default:
			return fmt.Errorf("unknown firing policy %q", cs.Policy)
		}
	case BehaviorSplash:
		if cs.SplashMin <= 0 || cs.SplashMax < cs.SplashMin {
			return fmt.Errorf("SPLASH needs splash_min <= splash_max, got %d..%d", cs.SplashMin, cs.SplashMax)
		}
	case BehaviorVolley:
		if cs.BurstCount <= 0 {
			cs.BurstCount = 1
		}
		if cs.ProjectileSpeed <= 0 {
			return fmt.Errorf("VOLLEY needs a projectile speed")
		}
	default:
		return fmt.Errorf("unknown behavior %q", cs.Behavior)
	}
	return nil
}

// Cooldown is the rest time between attack cycles.
func (cs *CombatStats) Cooldown() float64 {
	return 1.0 / cs.AttackRate
}

// InMask reports whether the relative offset dx,dy from the owner's cell
// falls on an attackable cell of the pattern.
func (cs *CombatStats) InMask(dx, dy int) bool {
	half := len(cs.Mask) / 2
	row := dy + half
	col := dx + half
	if row < 0 || row >= len(cs.Mask) || col < 0 || col >= len(cs.Mask) {
		return false
	}
	return cs.Mask[row][col]
}
