package app

import (
	"testing"

	"lane-defense/internal/component"
	"lane-defense/internal/config"
	"lane-defense/internal/defs"
	"lane-defense/internal/utils"
	"lane-defense/pkg/gridmap"
)

func laneGrid(t *testing.T) *gridmap.Grid {
	t.Helper()
	grid, err := gridmap.New([]string{
		"=======",
		"S.....O",
		"=======",
	})
	if err != nil {
		t.Fatal(err)
	}
	return grid
}

func scoutWave(prepare float64, delays ...float64) []defs.WaveDefinition {
	var spawns []defs.SpawnEvent
	for _, d := range delays {
		spawns = append(spawns, defs.SpawnEvent{EnemyID: "ENEMY_SCOUT", Delay: d})
	}
	return []defs.WaveDefinition{{PrepareTime: prepare, Spawns: spawns}}
}

// run ticks the game at 60Hz until it leaves the running phase or the
// tick limit is hit.
func run(g *Game, maxTicks int) {
	for i := 0; i < maxTicks && g.Phase() == component.PhaseRunning; i++ {
		g.Update(1.0 / 60.0)
	}
}

func TestPlaceTowerValidation(t *testing.T) {
	gold := NewMemoryGoldStore(30)
	g := NewGame(laneGrid(t), nil, Services{Gold: gold, Rng: utils.NewPRNGService(1)})

	if _, ok := g.PlaceTower("TOWER_NOPE", gridmap.Cell{X: 1, Y: 0}); ok {
		t.Error("unknown archetype must be rejected")
	}
	// Arrow towers require a platform tile.
	if _, ok := g.PlaceTower("TOWER_ARROW", gridmap.Cell{X: 2, Y: 1}); ok {
		t.Error("platform tower on the lane must be rejected")
	}
	if gold.Gold() != 30 {
		t.Fatalf("gold after rejected placements = %d, want 30", gold.Gold())
	}

	id, ok := g.PlaceTower("TOWER_ARROW", gridmap.Cell{X: 1, Y: 0})
	if !ok || id == 0 {
		t.Fatal("valid placement rejected")
	}
	if gold.Gold() != 10 {
		t.Fatalf("gold after placement = %d, want 10", gold.Gold())
	}
	if !g.Grid.TileAt(1, 0).Occupied {
		t.Error("placed cell should be marked occupied")
	}

	// Same cell is now occupied.
	if _, ok := g.PlaceTower("TOWER_ARROW", gridmap.Cell{X: 1, Y: 0}); ok {
		t.Error("occupied cell must be rejected")
	}
	// 10 gold cannot afford a 20-cost tower.
	if _, ok := g.PlaceTower("TOWER_ARROW", gridmap.Cell{X: 3, Y: 0}); ok {
		t.Error("unaffordable placement must be rejected")
	}
	if gold.Gold() != 10 {
		t.Errorf("gold after failed placements = %d, want 10", gold.Gold())
	}
	if len(g.ECS.Towers) != 1 {
		t.Errorf("towers placed = %d, want 1", len(g.ECS.Towers))
	}
}

func TestGroundTowerPlacement(t *testing.T) {
	g := NewGame(laneGrid(t), nil, Services{})

	// Thorn towers may sit on the lane itself; platform towers may not.
	if _, ok := g.PlaceTower("TOWER_THORNS", gridmap.Cell{X: 2, Y: 1}); !ok {
		t.Error("ground tower on the lane should be accepted")
	}
	if _, ok := g.PlaceTower("TOWER_ARROW", gridmap.Cell{X: 3, Y: 1}); ok {
		t.Error("platform tower on the lane must be rejected")
	}
	// Gates never take a tower.
	if _, ok := g.PlaceTower("TOWER_THORNS", gridmap.Cell{X: 0, Y: 1}); ok {
		t.Error("spawn gate must be rejected")
	}
}

func TestRemoveTowerIdempotent(t *testing.T) {
	gold := NewMemoryGoldStore(100)
	g := NewGame(laneGrid(t), nil, Services{Gold: gold})

	cell := gridmap.Cell{X: 2, Y: 0}
	id, ok := g.PlaceTower("TOWER_BULWARK", cell)
	if !ok {
		t.Fatal("bulwark placement failed")
	}
	neighbor := gridmap.Cell{X: 3, Y: 0}
	if g.Grid.AuraCount(neighbor) != 1 {
		t.Fatal("aura counter should be raised after placement")
	}

	if !g.RemoveTower(id) {
		t.Fatal("first removal should succeed")
	}
	if g.RemoveTower(id) {
		t.Error("second removal must be a no-op")
	}
	if g.Grid.AuraCount(neighbor) != 0 {
		t.Error("aura counter should return to zero after removal")
	}
	if g.Grid.TileAt(cell.X, cell.Y).Occupied {
		t.Error("occupancy should be cleared after removal")
	}
	// No refund.
	if gold.Gold() != 70 {
		t.Errorf("gold after removal = %d, want 70", gold.Gold())
	}
}

func TestUpdateClampsDelta(t *testing.T) {
	g := NewGame(laneGrid(t), nil, Services{})
	g.Update(10)
	if g.ECS.GameTime != config.MaxDeltaTime {
		t.Errorf("game time after huge delta = %v, want %v", g.ECS.GameTime, config.MaxDeltaTime)
	}
	g.Update(0)
	g.Update(-1)
	if g.ECS.GameTime != config.MaxDeltaTime {
		t.Errorf("non-positive deltas must not advance time, got %v", g.ECS.GameTime)
	}
}

func TestDefeatWhenCoreFalls(t *testing.T) {
	g := NewGame(laneGrid(t), scoutWave(0.2, 0), Services{})
	g.ECS.GameState.CoreHealth = 1

	reached := 0
	g.services.Callbacks.OnEnemyReachedObjective = func() { reached++ }

	if !g.StartWaves() {
		t.Fatal("StartWaves failed")
	}
	run(g, 600) // 10 simulated seconds, plenty for one scout to walk the lane

	if g.Phase() != component.PhaseDefeat {
		t.Fatalf("phase = %v, want defeat", g.Phase())
	}
	if g.CoreHealth() != 0 {
		t.Errorf("core health = %d, want 0", g.CoreHealth())
	}
	if reached != 1 {
		t.Errorf("objective callbacks = %d, want 1", reached)
	}
	if len(g.ECS.Enemies) != 0 {
		t.Error("arrived enemy should be reaped")
	}

	// A finished run no longer advances.
	before := g.ECS.GameTime
	g.Update(0.05)
	if g.ECS.GameTime != before {
		t.Error("update after defeat must be a no-op")
	}
}

func TestVictoryRunEconomy(t *testing.T) {
	gold := NewMemoryGoldStore(100)
	g := NewGame(laneGrid(t), scoutWave(0.5, 0, 1.5), Services{
		Gold: gold,
		Rng:  utils.NewPRNGService(7),
	})

	var started, ended, completed int
	g.services.Callbacks.OnWaveStart = func(int) { started++ }
	g.services.Callbacks.OnWaveEnd = func(int) { ended++ }
	g.services.Callbacks.OnAllWavesComplete = func() { completed++ }

	for _, x := range []int{1, 3, 5} {
		if _, ok := g.PlaceTower("TOWER_ARROW", gridmap.Cell{X: x, Y: 0}); !ok {
			t.Fatalf("placement at (%d,0) failed", x)
		}
	}
	if !g.StartWaves() {
		t.Fatal("StartWaves failed")
	}
	run(g, 2000)

	if g.Phase() != component.PhaseVictory {
		t.Fatalf("phase = %v, want victory", g.Phase())
	}
	if g.CoreHealth() != config.BaseCoreHealth {
		t.Errorf("core health = %d, want untouched %d", g.CoreHealth(), config.BaseCoreHealth)
	}
	// 100 starting, 3 towers at 20 each, 2 scout bounties at 4 each.
	if gold.Gold() != 48 {
		t.Errorf("gold = %d, want 48", gold.Gold())
	}
	if started != 1 || ended != 1 || completed != 1 {
		t.Errorf("wave callbacks start/end/complete = %d/%d/%d, want 1/1/1", started, ended, completed)
	}
	if len(g.ECS.Enemies) != 0 {
		t.Error("no enemies should remain after victory")
	}
}

func TestSpawnCallbackCarriesArchetype(t *testing.T) {
	g := NewGame(laneGrid(t), scoutWave(0.1, 0), Services{})

	var archetypes []string
	g.services.Callbacks.OnSpawnEnemy = func(archetype string, gate int) {
		archetypes = append(archetypes, archetype)
		if gate != 0 {
			t.Errorf("gate index = %d, want 0", gate)
		}
	}
	g.StartWaves()
	for i := 0; i < 30; i++ {
		g.Update(1.0 / 60.0)
	}
	if len(archetypes) != 1 || archetypes[0] != "ENEMY_SCOUT" {
		t.Errorf("spawn callbacks = %v, want one ENEMY_SCOUT", archetypes)
	}
}
