package system

import (
	"testing"

	"lane-defense/internal/component"
	"lane-defense/internal/entity"
	"lane-defense/internal/event"
	"lane-defense/internal/types"
	"lane-defense/internal/utils"
	"lane-defense/pkg/gridmap"
)

func combatFixture(t *testing.T) (*entity.ECS, *CombatSystem, *eventRecorder) {
	t.Helper()
	rows := []string{
		"=======",
		"=======",
		"=======",
		"=======",
		"=====SO",
	}
	grid, err := gridmap.New(rows)
	if err != nil {
		t.Fatal(err)
	}
	ecs := entity.NewECS()
	dispatcher := event.NewDispatcher()
	clock := new(float64)
	rec := &eventRecorder{clock: clock}
	dispatcher.Subscribe(event.ProjectileFired, rec)
	dispatcher.Subscribe(event.EnemyKilled, rec)
	cs := NewCombatSystem(ecs, grid, dispatcher, utils.NewPRNGService(1))
	return ecs, cs, rec
}

func addTower(ecs *entity.ECS, defID string, cell gridmap.Cell) types.EntityID {
	id := ecs.NewEntity()
	ecs.Towers[id] = &component.Tower{DefID: defID, Cell: cell}
	ecs.Combats[id] = &component.Combat{Phase: component.PhaseIdle}
	return id
}

func addTestEnemy(ecs *entity.ECS, cell gridmap.Cell, health int) types.EntityID {
	id := ecs.NewEntity()
	x, y := cell.ToPixel()
	ecs.Positions[id] = &component.Position{X: x, Y: y}
	ecs.Healths[id] = &component.Health{Value: health, Max: health}
	ecs.Enemies[id] = &component.Enemy{DefID: "ENEMY_SCOUT"}
	return id
}

func TestInstantTowerFiresAndCoolsDown(t *testing.T) {
	ecs, cs, rec := combatFixture(t)
	towerID := addTower(ecs, "TOWER_ARROW", gridmap.Cell{X: 2, Y: 2})
	near := addTestEnemy(ecs, gridmap.Cell{X: 3, Y: 2}, 30)
	addTestEnemy(ecs, gridmap.Cell{X: 4, Y: 2}, 30)

	cs.Update(0.1)
	if got := rec.count(event.ProjectileFired); got != 1 {
		t.Fatalf("fire events = %d, want 1", got)
	}
	var proj *component.Projectile
	for _, p := range ecs.Projectiles {
		proj = p
	}
	if proj == nil || proj.TargetID != near {
		t.Fatalf("projectile should home on the nearest enemy %d, got %+v", near, proj)
	}
	if proj.TargetKind != types.KindEnemy {
		t.Errorf("target kind = %q, want enemy", proj.TargetKind)
	}
	if ecs.Combats[towerID].Cooldown <= 0 {
		t.Error("cooldown should be armed after firing")
	}

	// Still cooling: no second shot.
	cs.Update(0.1)
	if got := rec.count(event.ProjectileFired); got != 1 {
		t.Errorf("fire events during cooldown = %d, want 1", got)
	}
}

func TestInstantTowerHoldsFireWhenRangeEmpty(t *testing.T) {
	ecs, cs, rec := combatFixture(t)
	addTower(ecs, "TOWER_ARROW", gridmap.Cell{X: 2, Y: 2})

	for i := 0; i < 20; i++ {
		cs.Update(0.1)
	}
	if got := rec.count(event.ProjectileFired); got != 0 {
		t.Errorf("fire events with no enemies = %d, want 0", got)
	}
}

func TestChargeBurstEmitsFullBurst(t *testing.T) {
	ecs, cs, rec := combatFixture(t)
	towerID := addTower(ecs, "TOWER_REPEATER", gridmap.Cell{X: 2, Y: 2})
	addTestEnemy(ecs, gridmap.Cell{X: 3, Y: 2}, 1000)

	// Idle -> Charging on the first tick; 0.6s of charge; then four shots
	// at 0.12s spacing.
	for i := 0; i < 12; i++ {
		cs.Update(0.1)
	}
	if got := rec.count(event.ProjectileFired); got != 4 {
		t.Fatalf("burst fire events = %d, want 4", got)
	}
	if got := len(ecs.Projectiles); got != 4 {
		t.Fatalf("projectiles spawned = %d, want 4", got)
	}
	combat := ecs.Combats[towerID]
	if combat.Phase != component.PhaseCooldown {
		t.Errorf("phase after burst = %v, want cooldown", combat.Phase)
	}
	if combat.Cooldown <= 0 {
		t.Error("cooldown should be armed after the burst")
	}
}

func TestChargeBurstSurvivesTargetSwap(t *testing.T) {
	ecs, cs, rec := combatFixture(t)
	addTower(ecs, "TOWER_REPEATER", gridmap.Cell{X: 2, Y: 2})
	first := addTestEnemy(ecs, gridmap.Cell{X: 3, Y: 2}, 1000)
	addTestEnemy(ecs, gridmap.Cell{X: 1, Y: 2}, 1000)

	// Charge and fire the first two shots.
	for i := 0; i < 9; i++ {
		cs.Update(0.1)
	}
	if got := rec.count(event.ProjectileFired); got != 2 {
		t.Fatalf("fire events before swap = %d, want 2", got)
	}
	// First target dies mid-burst; the second absorbs the rest.
	ecs.Healths[first].Value = 0
	for i := 0; i < 4; i++ {
		cs.Update(0.1)
	}
	if got := rec.count(event.ProjectileFired); got != 4 {
		t.Errorf("fire events after swap = %d, want 4", got)
	}
}

func TestChargeBurstCutShortWhenRangeEmpties(t *testing.T) {
	ecs, cs, rec := combatFixture(t)
	towerID := addTower(ecs, "TOWER_REPEATER", gridmap.Cell{X: 2, Y: 2})
	only := addTestEnemy(ecs, gridmap.Cell{X: 3, Y: 2}, 1000)

	// Charge and fire the first shot.
	for i := 0; i < 8; i++ {
		cs.Update(0.1)
	}
	if got := rec.count(event.ProjectileFired); got != 1 {
		t.Fatalf("fire events before loss = %d, want 1", got)
	}
	ecs.Healths[only].Value = 0
	for i := 0; i < 4; i++ {
		cs.Update(0.1)
	}
	if got := rec.count(event.ProjectileFired); got != 1 {
		t.Errorf("fire events after loss = %d, want 1 (burst cut short)", got)
	}
	if ecs.Combats[towerID].Phase != component.PhaseCooldown {
		t.Error("tower should enter cooldown after a cut-short burst")
	}
}

func TestChargeAbortsWhenRangeEmpties(t *testing.T) {
	ecs, cs, rec := combatFixture(t)
	towerID := addTower(ecs, "TOWER_REPEATER", gridmap.Cell{X: 2, Y: 2})
	only := addTestEnemy(ecs, gridmap.Cell{X: 3, Y: 2}, 1000)

	cs.Update(0.1) // Idle -> Charging
	if ecs.Combats[towerID].Phase != component.PhaseCharging {
		t.Fatalf("phase = %v, want charging", ecs.Combats[towerID].Phase)
	}
	ecs.Healths[only].Value = 0
	cs.Update(0.1)
	combat := ecs.Combats[towerID]
	if combat.Phase != component.PhaseIdle {
		t.Errorf("phase after losing all targets = %v, want idle", combat.Phase)
	}
	if combat.ChargeTimer != 0 {
		t.Errorf("charge timer = %v, want reset to 0", combat.ChargeTimer)
	}
	if got := rec.count(event.ProjectileFired); got != 0 {
		t.Errorf("fire events = %d, want 0", got)
	}
}

func TestBeamResolvesInstantly(t *testing.T) {
	ecs, cs, rec := combatFixture(t)
	addTower(ecs, "TOWER_BEAM", gridmap.Cell{X: 2, Y: 2})
	enemyID := addTestEnemy(ecs, gridmap.Cell{X: 3, Y: 2}, 100)

	// 1.2s charge, then a single beam pulse.
	for i := 0; i < 14; i++ {
		cs.Update(0.1)
	}
	if got := rec.count(event.ProjectileFired); got != 1 {
		t.Fatalf("fire events = %d, want 1", got)
	}
	if len(ecs.Projectiles) != 0 {
		t.Error("beam must not spawn a projectile entity")
	}
	// 30 magical vs 0 MR: full damage applied immediately.
	if got := ecs.Healths[enemyID].Value; got != 70 {
		t.Errorf("enemy health after beam = %d, want 70", got)
	}
}

func TestBallisticShotsTargetGroundPositions(t *testing.T) {
	ecs, cs, rec := combatFixture(t)
	addTower(ecs, "TOWER_MORTAR", gridmap.Cell{X: 2, Y: 2})
	addTestEnemy(ecs, gridmap.Cell{X: 5, Y: 2}, 1000)

	// 1.5s charge, then two shells 0.4s apart.
	for i := 0; i < 25; i++ {
		cs.Update(0.1)
	}
	if got := rec.count(event.ProjectileFired); got != 2 {
		t.Fatalf("shell fire events = %d, want 2", got)
	}
	ex, ey := gridmap.Cell{X: 5, Y: 2}.ToPixel()
	for _, p := range ecs.Projectiles {
		if p.TargetID != 0 {
			t.Error("ballistic shells must not home on an entity")
		}
		if p.FlightTime != 0.9 {
			t.Errorf("flight time = %v, want 0.9", p.FlightTime)
		}
		if p.TargetX != ex || p.TargetY != ey {
			t.Errorf("shell aimed at (%v,%v), want enemy position (%v,%v)", p.TargetX, p.TargetY, ex, ey)
		}
		if len(p.Falloff) != 2 {
			t.Errorf("falloff layers = %d, want 2", len(p.Falloff))
		}
	}
}

func TestMortarDeadZone(t *testing.T) {
	ecs, cs, rec := combatFixture(t)
	addTower(ecs, "TOWER_MORTAR", gridmap.Cell{X: 3, Y: 2})
	// Adjacent cell sits inside the mortar's dead zone.
	addTestEnemy(ecs, gridmap.Cell{X: 4, Y: 2}, 1000)

	for i := 0; i < 30; i++ {
		cs.Update(0.1)
	}
	if got := rec.count(event.ProjectileFired); got != 0 {
		t.Errorf("fire events at dead-zone enemy = %d, want 0", got)
	}
}

func TestSplashBatch(t *testing.T) {
	ecs, cs, rec := combatFixture(t)
	towerID := addTower(ecs, "TOWER_THORNS", gridmap.Cell{X: 2, Y: 2})
	addTestEnemy(ecs, gridmap.Cell{X: 3, Y: 2}, 1000)

	cs.Update(0.1)
	got := len(ecs.Projectiles)
	if got < 6 || got > 8 {
		t.Fatalf("splash batch size = %d, want 6..8", got)
	}
	for _, p := range ecs.Projectiles {
		if p.TargetID != 0 {
			t.Error("splash projectiles are aimless")
		}
		if p.MaxLifetime <= 0 {
			t.Error("splash projectiles must expire on their own")
		}
	}
	// The whole batch counts as one discrete release.
	if got := rec.count(event.ProjectileFired); got != 1 {
		t.Errorf("fire events per batch = %d, want 1", got)
	}
	if ecs.Combats[towerID].Cooldown <= 0 {
		t.Error("cooldown should be armed after the batch")
	}
}
