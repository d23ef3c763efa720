// internal/defs/enemies.go
package defs

// EnemyDefinition holds all the static data for a specific type of enemy.
// Attack is set only for counter-attacking archetypes and must use the
// VOLLEY behavior.
type EnemyDefinition struct {
	ID              string       `yaml:"id"`
	Name            string       `yaml:"name"`
	Health          int          `yaml:"health"`
	Speed           float64      `yaml:"speed"` // pixels per second
	PhysicalDefense int          `yaml:"physical_defense"`
	MagicResist     int          `yaml:"magic_resist"`
	Bounty          int          `yaml:"bounty"`
	Attack          *CombatStats `yaml:"attack,omitempty"`
}

// EnemyLibrary holds all enemy definitions, keyed by ID.
var EnemyLibrary map[string]EnemyDefinition

var defaultEnemyDefs = []EnemyDefinition{
	{ID: "ENEMY_SCOUT", Name: "Scout", Health: 30, Speed: 90, Bounty: 4},
	{ID: "ENEMY_RUNNER", Name: "Runner", Health: 20, Speed: 140, Bounty: 3},
	{ID: "ENEMY_BRUTE", Name: "Brute", Health: 90, Speed: 55, PhysicalDefense: 6, Bounty: 8},
	{ID: "ENEMY_WARLOCK", Name: "Warlock", Health: 50, Speed: 70, MagicResist: 40, Bounty: 6},
	{
		ID: "ENEMY_SAPPER", Name: "Sapper",
		Health: 60, Speed: 65, PhysicalDefense: 2, Bounty: 10,
		Attack: &CombatStats{
			Damage: 4, DamageType: DamagePhysical, AttackRate: 0.4,
			Behavior: BehaviorVolley, BurstCount: 3, BurstInterval: 0.25,
			ProjectileSpeed: 200,
			Pattern: []string{
				"111",
				"111",
				"111",
			},
		},
	},
	{
		ID: "ENEMY_COLOSSUS", Name: "Colossus",
		Health: 500, Speed: 40, PhysicalDefense: 10, MagicResist: 30, Bounty: 50,
	},
}
