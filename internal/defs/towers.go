// internal/defs/towers.go
package defs

// AuraDef defines the influence of an aura-granting tower: the fixed set of
// relative cells whose aura counters it increments while placed.
type AuraDef struct {
	Offsets [][2]int `yaml:"offsets"`
}

// TowerDefinition holds all the static data for a specific type of tower.
type TowerDefinition struct {
	ID              string       `yaml:"id"`
	Name            string       `yaml:"name"`
	Cost            int          `yaml:"cost"`
	Health          int          `yaml:"health"`
	PhysicalDefense int          `yaml:"physical_defense"`
	MagicResist     int          `yaml:"magic_resist"`
	PlaceOnGround   bool         `yaml:"place_on_ground,omitempty"`
	Combat          *CombatStats `yaml:"combat,omitempty"`
	Aura            *AuraDef     `yaml:"aura,omitempty"`
}

// TowerLibrary holds all tower definitions, keyed by ID.
var TowerLibrary map[string]TowerDefinition

var orthogonalOffsets = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// defaultTowerDefs is the built-in tower set, used when no definition file
// is loaded.
var defaultTowerDefs = []TowerDefinition{
	{
		ID: "TOWER_ARROW", Name: "Arrow Tower",
		Cost: 20, Health: 60, PhysicalDefense: 2,
		Combat: &CombatStats{
			Damage: 12, DamageType: DamagePhysical, AttackRate: 1.2,
			Behavior: BehaviorInstant, ProjectileSpeed: 240,
			Pattern: []string{
				"11111",
				"11111",
				"11111",
				"11111",
				"11111",
			},
		},
	},
	{
		ID: "TOWER_BEAM", Name: "Beam Tower",
		Cost: 40, Health: 50, MagicResist: 20,
		Combat: &CombatStats{
			Damage: 30, DamageType: DamageMagical, AttackRate: 0.8,
			Behavior: BehaviorChargeBurst, Policy: FireBeam,
			ChargeTime: 1.2, BurstCount: 1,
			Pattern: []string{
				"00100",
				"01110",
				"11111",
				"01110",
				"00100",
			},
		},
	},
	{
		ID: "TOWER_REPEATER", Name: "Repeater Tower",
		Cost: 35, Health: 55, PhysicalDefense: 3,
		Combat: &CombatStats{
			Damage: 8, DamageType: DamagePhysical, AttackRate: 1.0,
			Behavior: BehaviorChargeBurst, Policy: FireBurst,
			ChargeTime: 0.6, BurstCount: 4, BurstInterval: 0.12,
			ProjectileSpeed: 260,
			Pattern: []string{
				"11111",
				"11111",
				"11111",
				"11111",
				"11111",
			},
		},
	},
	{
		ID: "TOWER_MORTAR", Name: "Mortar Tower",
		Cost: 50, Health: 70, PhysicalDefense: 5,
		Combat: &CombatStats{
			Damage: 25, DamageType: DamagePhysical, AttackRate: 0.5,
			Behavior: BehaviorChargeBurst, Policy: FireBallistic,
			ChargeTime: 1.5, BurstCount: 2, BurstInterval: 0.4,
			FlightTime: 0.9,
			Falloff: []FalloffLayer{
				{Radius: 24, Percent: 1.0},
				{Radius: 56, Percent: 0.5},
			},
			// Dead zone around the mortar itself.
			Pattern: []string{
				"1111111",
				"1111111",
				"1100011",
				"1100011",
				"1100011",
				"1111111",
				"1111111",
			},
		},
	},
	{
		ID: "TOWER_THORNS", Name: "Thorn Tower",
		Cost: 25, Health: 80, PhysicalDefense: 4, PlaceOnGround: true,
		Combat: &CombatStats{
			Damage: 6, DamageType: DamagePhysical, AttackRate: 0.7,
			Behavior: BehaviorSplash, SplashMin: 6, SplashMax: 8,
			Pattern: []string{
				"111",
				"111",
				"111",
			},
		},
	},
	{
		ID: "TOWER_BULWARK", Name: "Bulwark",
		Cost: 30, Health: 120, PhysicalDefense: 8, MagicResist: 10,
		Aura: &AuraDef{Offsets: orthogonalOffsets},
	},
}
