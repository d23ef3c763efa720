// cmd/simulate/main.go
package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"lane-defense/internal/app"
	"lane-defense/internal/component"
	"lane-defense/internal/config"
	"lane-defense/internal/defs"
	"lane-defense/internal/utils"
	"lane-defense/pkg/gridmap"
	"lane-defense/pkg/logger"
)

const tickSeconds = 1.0 / 60.0

func main() {
	var defsDir, mapFile, towerID string
	var seed int64
	var maxTicks int
	flag.StringVar(&defsDir, "defs", "", "directory with towers.yaml, enemies.yaml, waves.yaml (optional)")
	flag.StringVar(&mapFile, "map", "", "map layout yaml (optional, built-in lane map by default)")
	flag.StringVar(&towerID, "tower", "TOWER_ARROW", "tower archetype to auto-place")
	flag.Int64Var(&seed, "seed", 1, "PRNG seed, 0 for time-based")
	flag.IntVar(&maxTicks, "ticks", 120000, "tick limit before giving up")
	flag.Parse()

	logger.Init()

	if defsDir != "" {
		loadDefs(defsDir)
	}

	mapDef := &defs.DefaultMap
	if mapFile != "" {
		var err error
		mapDef, err = defs.LoadMapDefinition(mapFile)
		if err != nil {
			logger.Log.WithError(err).Fatal("failed to load map")
		}
	}
	grid, err := gridmap.New(mapDef.Rows)
	if err != nil {
		logger.Log.WithError(err).Fatal("invalid map layout")
	}

	gold := app.NewMemoryGoldStore(config.StartingGold)
	game := app.NewGame(grid, defs.WavePatterns, app.Services{
		Gold: gold,
		Rng:  utils.NewPRNGService(seed),
	})

	placed := autoPlace(game, grid, towerID)
	logger.Log.WithFields(logrus.Fields{
		"map":    mapDef.Name,
		"towers": placed,
		"seed":   seed,
	}).Info("simulation starting")

	game.StartWaves()
	ticks := 0
	for game.Phase() == component.PhaseRunning && ticks < maxTicks {
		game.Update(tickSeconds)
		ticks++
	}

	result := logger.Log.WithFields(logrus.Fields{
		"ticks":       ticks,
		"core_health": game.CoreHealth(),
		"gold":        game.Gold(),
	})
	switch game.Phase() {
	case component.PhaseVictory:
		result.Info("defenders win")
	case component.PhaseDefeat:
		result.Info("defenders lose")
	default:
		result.Warn("tick limit reached before a result")
		os.Exit(1)
	}
}

func loadDefs(dir string) {
	if err := defs.LoadTowerDefinitions(filepath.Join(dir, "towers.yaml")); err != nil {
		logger.Log.WithError(err).Fatal("failed to load tower definitions")
	}
	if err := defs.LoadEnemyDefinitions(filepath.Join(dir, "enemies.yaml")); err != nil {
		logger.Log.WithError(err).Fatal("failed to load enemy definitions")
	}
	if err := defs.LoadWaveDefinitions(filepath.Join(dir, "waves.yaml")); err != nil {
		logger.Log.WithError(err).Fatal("failed to load wave definitions")
	}
}

// autoPlace fills placeable cells with the chosen tower, scanning the grid
// top-left to bottom-right, until gold runs out.
func autoPlace(game *app.Game, grid *gridmap.Grid, towerID string) int {
	def, ok := defs.TowerLibrary[towerID]
	if !ok {
		logger.Log.WithField("tower_def", towerID).Fatal("unknown tower archetype")
	}
	placed := 0
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			if game.Gold() < def.Cost {
				return placed
			}
			if _, ok := game.PlaceTower(towerID, gridmap.Cell{X: x, Y: y}); ok {
				placed++
			}
		}
	}
	return placed
}
