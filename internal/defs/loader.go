// internal/defs/loader.go
package defs

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

func init() {
	// The built-in libraries must always be valid.
	if err := loadDefaults(); err != nil {
		panic(err)
	}
}

func loadDefaults() error {
	if err := buildTowerLibrary(defaultTowerDefs); err != nil {
		return fmt.Errorf("built-in tower definitions: %w", err)
	}
	if err := buildEnemyLibrary(defaultEnemyDefs); err != nil {
		return fmt.Errorf("built-in enemy definitions: %w", err)
	}
	if err := buildWavePatterns(defaultWaveDefs); err != nil {
		return fmt.Errorf("built-in wave definitions: %w", err)
	}
	return nil
}

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// LoadTowerDefinitions reads a tower definition file and replaces the
// TowerLibrary.
func LoadTowerDefinitions(path string) error {
	var towerDefs []TowerDefinition
	if err := loadYAML(path, &towerDefs); err != nil {
		return fmt.Errorf("failed to read tower definitions: %w", err)
	}
	if err := buildTowerLibrary(towerDefs); err != nil {
		return fmt.Errorf("invalid tower definitions in %s: %w", path, err)
	}
	return nil
}

// LoadEnemyDefinitions reads an enemy definition file and replaces the
// EnemyLibrary.
func LoadEnemyDefinitions(path string) error {
	var enemyDefs []EnemyDefinition
	if err := loadYAML(path, &enemyDefs); err != nil {
		return fmt.Errorf("failed to read enemy definitions: %w", err)
	}
	if err := buildEnemyLibrary(enemyDefs); err != nil {
		return fmt.Errorf("invalid enemy definitions in %s: %w", path, err)
	}
	return nil
}

// LoadWaveDefinitions reads a wave schedule file and replaces WavePatterns.
func LoadWaveDefinitions(path string) error {
	var waveDefs []WaveDefinition
	if err := loadYAML(path, &waveDefs); err != nil {
		return fmt.Errorf("failed to read wave definitions: %w", err)
	}
	if err := buildWavePatterns(waveDefs); err != nil {
		return fmt.Errorf("invalid wave definitions in %s: %w", path, err)
	}
	return nil
}

// LoadMapDefinition reads a map layout file.
func LoadMapDefinition(path string) (*MapDefinition, error) {
	var def MapDefinition
	if err := loadYAML(path, &def); err != nil {
		return nil, fmt.Errorf("failed to read map definition: %w", err)
	}
	if len(def.Rows) == 0 {
		return nil, fmt.Errorf("map definition %s has no rows", path)
	}
	return &def, nil
}

func buildTowerLibrary(towerDefs []TowerDefinition) error {
	lib := make(map[string]TowerDefinition, len(towerDefs))
	for i := range towerDefs {
		def := towerDefs[i]
		if def.ID == "" {
			return fmt.Errorf("tower definition %d has no id", i)
		}
		if def.Combat != nil {
			if def.Combat.Behavior == BehaviorVolley {
				return fmt.Errorf("tower %s uses the enemy-only VOLLEY behavior", def.ID)
			}
			if err := def.Combat.Finalize(); err != nil {
				return fmt.Errorf("tower %s: %w", def.ID, err)
			}
		}
		lib[def.ID] = def
	}
	TowerLibrary = lib
	return nil
}

func buildEnemyLibrary(enemyDefs []EnemyDefinition) error {
	lib := make(map[string]EnemyDefinition, len(enemyDefs))
	for i := range enemyDefs {
		def := enemyDefs[i]
		if def.ID == "" {
			return fmt.Errorf("enemy definition %d has no id", i)
		}
		if def.Attack != nil {
			if def.Attack.Behavior != BehaviorVolley {
				return fmt.Errorf("enemy %s attack must use VOLLEY, got %s", def.ID, def.Attack.Behavior)
			}
			if err := def.Attack.Finalize(); err != nil {
				return fmt.Errorf("enemy %s: %w", def.ID, err)
			}
		}
		lib[def.ID] = def
	}
	EnemyLibrary = lib
	return nil
}

func buildWavePatterns(waveDefs []WaveDefinition) error {
	patterns := make([]WaveDefinition, len(waveDefs))
	for i := range waveDefs {
		def := waveDefs[i]
		if len(def.Spawns) == 0 {
			return fmt.Errorf("wave %d has no spawn events", i+1)
		}
		spawns := make([]SpawnEvent, len(def.Spawns))
		copy(spawns, def.Spawns)
		sort.SliceStable(spawns, func(a, b int) bool { return spawns[a].Delay < spawns[b].Delay })
		for _, ev := range spawns {
			if ev.Delay < 0 {
				return fmt.Errorf("wave %d: negative spawn delay", i+1)
			}
			if ev.Gate < 0 {
				return fmt.Errorf("wave %d: negative gate index", i+1)
			}
		}
		def.Spawns = spawns
		patterns[i] = def
	}
	WavePatterns = patterns
	return nil
}
