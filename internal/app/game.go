// internal/app/game.go
package app

import (
	"github.com/sirupsen/logrus"

	"lane-defense/internal/component"
	"lane-defense/internal/config"
	"lane-defense/internal/defs"
	"lane-defense/internal/entity"
	"lane-defense/internal/event"
	"lane-defense/internal/system"
	"lane-defense/internal/types"
	"lane-defense/pkg/gridmap"
	"lane-defense/pkg/logger"
)

// Game is the simulation orchestrator. One Update call advances the whole
// simulation by a clamped time step, running every system in a fixed
// order: scheduler, tower attacks, enemy counter-attacks, movement, attack
// instances, reaping, wave completion, terminal conditions.
type Game struct {
	Grid              *gridmap.Grid
	ECS               *entity.ECS
	EventDispatcher   *event.Dispatcher
	WaveSystem        *system.WaveSystem
	CombatSystem      *system.CombatSystem
	EnemyCombatSystem *system.EnemyCombatSystem
	MovementSystem    *system.MovementSystem
	ProjectileSystem  *system.ProjectileSystem
	AuraSystem        *system.AuraSystem

	services Services
}

// NewGame wires a simulation over the given grid and wave schedule. All
// external collaborators arrive through services; zero-value services get
// working in-process defaults.
func NewGame(grid *gridmap.Grid, waves []defs.WaveDefinition, services Services) *Game {
	if grid == nil {
		panic("grid cannot be nil")
	}
	services.applyDefaults()

	ecs := entity.NewECS()
	dispatcher := event.NewDispatcher()
	g := &Game{
		Grid:            grid,
		ECS:             ecs,
		EventDispatcher: dispatcher,
		services:        services,
	}
	g.WaveSystem = system.NewWaveSystem(ecs, grid, dispatcher, waves)
	g.CombatSystem = system.NewCombatSystem(ecs, grid, dispatcher, services.Rng)
	g.EnemyCombatSystem = system.NewEnemyCombatSystem(ecs, dispatcher)
	g.MovementSystem = system.NewMovementSystem(ecs, dispatcher)
	g.ProjectileSystem = system.NewProjectileSystem(ecs, grid, dispatcher)
	g.AuraSystem = system.NewAuraSystem(ecs, grid)

	for _, t := range []event.EventType{
		event.WaveStarted,
		event.WaveEnded,
		event.AllWavesComplete,
		event.EnemySpawned,
		event.EnemyKilled,
		event.EnemyReachedObjective,
		event.ProjectileFired,
	} {
		dispatcher.Subscribe(t, g)
	}
	return g
}

// StartWaves begins the first wave. Subsequent waves auto-start after the
// grace delay once the previous wave is cleared.
func (g *Game) StartWaves() bool {
	return g.WaveSystem.StartNextWave()
}

// Update advances the simulation by deltaTime seconds. Deltas above the
// configured maximum are clamped so a stalled frame cannot produce a
// catastrophic jump.
func (g *Game) Update(deltaTime float64) {
	if g.ECS.GameState.Phase != component.PhaseRunning || deltaTime <= 0 {
		return
	}
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	g.ECS.GameTime += deltaTime

	g.WaveSystem.Update(deltaTime)
	g.CombatSystem.Update(deltaTime)
	g.EnemyCombatSystem.Update(deltaTime)
	g.MovementSystem.Update(deltaTime)
	g.ProjectileSystem.Update(deltaTime)
	g.reapDead()
	g.WaveSystem.CheckCompletion()
	g.checkTerminal()
}

// Phase returns the terminal-state machine of the run.
func (g *Game) Phase() component.GamePhase {
	return g.ECS.GameState.Phase
}

// CoreHealth returns the defender's remaining core health.
func (g *Game) CoreHealth() int {
	return g.ECS.GameState.CoreHealth
}

// Gold returns the current balance of the injected gold store.
func (g *Game) Gold() int {
	return g.services.Gold.Gold()
}

// OnEvent bridges internal events to host callbacks and side effects. All
// invocations are synchronous and ordered within the tick.
func (g *Game) OnEvent(e event.Event) {
	cb := &g.services.Callbacks
	switch e.Type {
	case event.WaveStarted:
		g.services.playSound("wave_start")
		if cb.OnWaveStart != nil {
			cb.OnWaveStart(e.Data.(int))
		}
	case event.WaveEnded:
		if cb.OnWaveEnd != nil {
			cb.OnWaveEnd(e.Data.(int))
		}
	case event.AllWavesComplete:
		if cb.OnAllWavesComplete != nil {
			cb.OnAllWavesComplete()
		}
	case event.EnemySpawned:
		data := e.Data.(event.SpawnData)
		g.services.createVisual(data.ID, types.KindEnemy, data.Archetype)
		if cb.OnSpawnEnemy != nil {
			cb.OnSpawnEnemy(data.Archetype, data.Gate)
		}
	case event.EnemyKilled:
		data := e.Data.(event.KillData)
		g.services.Gold.Add(data.Bounty)
		g.services.playSound("enemy_down")
	case event.EnemyReachedObjective:
		g.ECS.GameState.CoreHealth--
		g.services.playSound("core_hit")
		if cb.OnEnemyReachedObjective != nil {
			cb.OnEnemyReachedObjective()
		}
	case event.ProjectileFired:
		data := e.Data.(event.FireData)
		g.services.playSound("fire")
		if cb.OnFire != nil {
			cb.OnFire(data)
		}
	}
}

// reapDead removes dead and arrived enemies and destroyed towers,
// releasing occupancy and aura contributions.
func (g *Game) reapDead() {
	for id, enemy := range g.ECS.Enemies {
		health := g.ECS.Healths[id]
		dead := health != nil && health.Value <= 0
		if !dead && !enemy.ReachedEnd {
			continue
		}
		g.removeEnemy(id)
	}
	for id := range g.ECS.Towers {
		health := g.ECS.Healths[id]
		if health == nil || health.Value > 0 {
			continue
		}
		g.destroyTower(id)
	}
}

func (g *Game) removeEnemy(id types.EntityID) {
	delete(g.ECS.Positions, id)
	delete(g.ECS.Velocities, id)
	delete(g.ECS.Paths, id)
	delete(g.ECS.Healths, id)
	delete(g.ECS.Enemies, id)
	delete(g.ECS.Combats, id)
	if cb := g.services.Callbacks.OnEntityDestroyed; cb != nil {
		cb(id, types.KindEnemy)
	}
}

func (g *Game) destroyTower(id types.EntityID) {
	tower := g.ECS.Towers[id]
	g.AuraSystem.Release(id)
	g.Grid.SetOccupied(tower.Cell.X, tower.Cell.Y, false)
	delete(g.ECS.Positions, id)
	delete(g.ECS.Healths, id)
	delete(g.ECS.Towers, id)
	delete(g.ECS.Combats, id)
	g.EventDispatcher.Dispatch(event.Event{Type: event.TowerDestroyed, Data: id})
	if cb := g.services.Callbacks.OnEntityDestroyed; cb != nil {
		cb(id, types.KindTower)
	}
}

func (g *Game) checkTerminal() {
	state := g.ECS.GameState
	if state.CoreHealth <= 0 {
		state.CoreHealth = 0
		state.Phase = component.PhaseDefeat
		g.services.playSound("defeat")
		logger.Log.WithFields(logrus.Fields{
			"component": "game",
			"game_time": g.ECS.GameTime,
		}).Info("core destroyed, defeat")
		return
	}
	if g.WaveSystem.Complete() {
		state.Phase = component.PhaseVictory
		g.services.playSound("victory")
		logger.Log.WithFields(logrus.Fields{
			"component": "game",
			"game_time": g.ECS.GameTime,
		}).Info("all waves cleared, victory")
	}
}
