// internal/system/wave.go
package system

import (
	"github.com/sirupsen/logrus"

	"lane-defense/internal/component"
	"lane-defense/internal/config"
	"lane-defense/internal/defs"
	"lane-defense/internal/entity"
	"lane-defense/internal/event"
	"lane-defense/pkg/gridmap"
	"lane-defense/pkg/logger"
)

// WaveSystem plays back the configured wave schedule: it releases spawn
// events when their prepare time plus delay has elapsed, tracks the number
// of living enemies, and starts the next wave after a grace delay once a
// wave is cleared.
type WaveSystem struct {
	ecs           *entity.ECS
	grid          *gridmap.Grid
	dispatcher    *event.Dispatcher
	waves         []defs.WaveDefinition
	nextWave      int // index into waves of the next wave to start
	activeEnemies int
	graceTimer    float64
	complete      bool
}

func NewWaveSystem(ecs *entity.ECS, grid *gridmap.Grid, dispatcher *event.Dispatcher, waves []defs.WaveDefinition) *WaveSystem {
	ws := &WaveSystem{
		ecs:        ecs,
		grid:       grid,
		dispatcher: dispatcher,
		waves:      waves,
		graceTimer: -1,
	}
	dispatcher.Subscribe(event.EnemyKilled, ws)
	dispatcher.Subscribe(event.EnemyReachedObjective, ws)
	return ws
}

// StartNextWave begins the next configured wave. It is a no-op while a
// wave is active or after the schedule is exhausted.
func (s *WaveSystem) StartNextWave() bool {
	if s.complete || s.ecs.Wave != nil || s.nextWave >= len(s.waves) {
		return false
	}
	s.ecs.Wave = &component.Wave{
		Number: s.nextWave + 1,
		Phase:  component.WaveSpawning,
	}
	s.nextWave++
	s.graceTimer = -1
	logger.Log.WithFields(logrus.Fields{
		"component": "wave_system",
		"wave":      s.ecs.Wave.Number,
	}).Info("wave started")
	s.dispatcher.Dispatch(event.Event{Type: event.WaveStarted, Data: s.ecs.Wave.Number})
	return true
}

// Update releases due spawn events and counts down the inter-wave grace
// delay.
func (s *WaveSystem) Update(deltaTime float64) {
	w := s.ecs.Wave
	if w == nil {
		if s.complete || s.graceTimer < 0 {
			return
		}
		s.graceTimer -= deltaTime
		if s.graceTimer <= 0 {
			s.StartNextWave()
		}
		return
	}
	if w.Phase != component.WaveSpawning {
		return
	}
	w.Elapsed += deltaTime
	def := s.waves[w.Number-1]
	for w.NextSpawn < len(def.Spawns) && w.Elapsed >= def.PrepareTime+def.Spawns[w.NextSpawn].Delay {
		s.spawnEnemy(def.Spawns[w.NextSpawn])
		w.NextSpawn++
	}
	if w.NextSpawn >= len(def.Spawns) {
		w.AllSpawned = true
		w.Phase = component.WaveAwaitingClear
	}
}

// CheckCompletion marks the active wave complete once every spawn event
// has been released and no enemy is left alive. The orchestrator calls it
// after reaping so that kills from the current tick count.
func (s *WaveSystem) CheckCompletion() {
	w := s.ecs.Wave
	if w == nil || !w.AllSpawned || s.activeEnemies > 0 {
		return
	}
	logger.Log.WithFields(logrus.Fields{
		"component": "wave_system",
		"wave":      w.Number,
	}).Info("wave cleared")
	s.dispatcher.Dispatch(event.Event{Type: event.WaveEnded, Data: w.Number})
	s.ecs.Wave = nil
	if s.nextWave >= len(s.waves) {
		s.complete = true
		s.dispatcher.Dispatch(event.Event{Type: event.AllWavesComplete})
		return
	}
	s.graceTimer = config.WaveGraceDelay
}

// Complete reports whether every wave has been spawned and cleared.
func (s *WaveSystem) Complete() bool {
	return s.complete
}

// ActiveEnemies returns the number of living enemies on the field.
func (s *WaveSystem) ActiveEnemies() int {
	return s.activeEnemies
}

func (s *WaveSystem) spawnEnemy(ev defs.SpawnEvent) {
	def, ok := defs.EnemyLibrary[ev.EnemyID]
	if !ok {
		logger.Log.WithFields(logrus.Fields{
			"component": "wave_system",
			"enemy":     ev.EnemyID,
		}).Error("enemy definition not found, spawn skipped")
		return
	}

	gateIndex := ev.Gate
	if gateIndex >= len(s.grid.SpawnGates) {
		logger.Log.WithFields(logrus.Fields{
			"component": "wave_system",
			"gate":      gateIndex,
		}).Warn("spawn gate index out of range, using gate 0")
		gateIndex = 0
	}
	gate := s.grid.SpawnGates[gateIndex]

	route := gridmap.RouteToObjective(gate, s.grid)
	if len(route) == 0 {
		// No reachable objective means the enemy cannot be deployed.
		logger.Log.WithFields(logrus.Fields{
			"component": "wave_system",
			"enemy":     ev.EnemyID,
			"gate":      gateIndex,
		}).Warn("no route to objective, enemy discarded")
		return
	}

	id := s.ecs.NewEntity()
	x, y := gate.ToPixel()
	s.ecs.Positions[id] = &component.Position{X: x, Y: y}
	s.ecs.Velocities[id] = &component.Velocity{Speed: def.Speed}
	s.ecs.Paths[id] = &component.Path{Cells: route, CurrentIndex: 0}
	s.ecs.Healths[id] = &component.Health{Value: def.Health, Max: def.Health}
	s.ecs.Enemies[id] = &component.Enemy{
		DefID:           def.ID,
		PhysicalDefense: def.PhysicalDefense,
		MagicResist:     def.MagicResist,
		Bounty:          def.Bounty,
	}
	if def.Attack != nil {
		s.ecs.Combats[id] = &component.Combat{Phase: component.PhaseIdle}
	}
	s.activeEnemies++
	s.dispatcher.Dispatch(event.Event{
		Type: event.EnemySpawned,
		Data: event.SpawnData{ID: id, Archetype: def.ID, Gate: gateIndex},
	})
}

func (s *WaveSystem) OnEvent(e event.Event) {
	switch e.Type {
	case event.EnemyKilled, event.EnemyReachedObjective:
		s.activeEnemies--
	}
}
