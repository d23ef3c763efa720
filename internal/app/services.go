// internal/app/services.go
package app

import (
	"lane-defense/internal/config"
	"lane-defense/internal/event"
	"lane-defense/internal/types"
	"lane-defense/internal/utils"
)

// GoldStore is the host-supplied currency counter. The core mutates it on
// kill rewards and placement costs and never persists it.
type GoldStore interface {
	Gold() int
	Add(amount int)
	// Spend debits the amount and reports success; an unaffordable spend
	// leaves the balance untouched.
	Spend(amount int) bool
}

// MemoryGoldStore is the default in-process gold counter.
type MemoryGoldStore struct {
	amount int
}

func NewMemoryGoldStore(initial int) *MemoryGoldStore {
	return &MemoryGoldStore{amount: initial}
}

func (s *MemoryGoldStore) Gold() int { return s.amount }

func (s *MemoryGoldStore) Add(amount int) { s.amount += amount }

func (s *MemoryGoldStore) Spend(amount int) bool {
	if amount > s.amount {
		return false
	}
	s.amount -= amount
	return true
}

// VisualFactory is invoked once per tower/enemy creation. The returned
// handle is opaque to the core and never read back.
type VisualFactory interface {
	CreateVisual(id types.EntityID, kind types.EntityKind, archetype string) interface{}
}

// AudioTrigger is a fire-and-forget sound hook keyed by event name.
type AudioTrigger interface {
	Play(event string)
}

// Callbacks is the host-facing event contract. Every field is optional;
// set callbacks are invoked synchronously, in tick order.
type Callbacks struct {
	OnSpawnEnemy            func(archetype string, gateIndex int)
	OnWaveStart             func(waveNumber int)
	OnWaveEnd               func(waveNumber int)
	OnAllWavesComplete      func()
	OnFire                  func(fire event.FireData)
	OnEnemyReachedObjective func()
	OnEntityDestroyed       func(id types.EntityID, kind types.EntityKind)
}

// Services bundles every external collaborator of the simulation core.
// All collaborators are injected at construction; the core holds no
// reachable globals beyond the shared logger.
type Services struct {
	Gold      GoldStore
	Visuals   VisualFactory
	Audio     AudioTrigger
	Rng       *utils.PRNGService
	Callbacks Callbacks
}

func (s *Services) applyDefaults() {
	if s.Gold == nil {
		s.Gold = NewMemoryGoldStore(config.StartingGold)
	}
	if s.Rng == nil {
		s.Rng = utils.NewPRNGService(0)
	}
}

func (s *Services) playSound(name string) {
	if s.Audio != nil {
		s.Audio.Play(name)
	}
}

func (s *Services) createVisual(id types.EntityID, kind types.EntityKind, archetype string) {
	if s.Visuals != nil {
		s.Visuals.CreateVisual(id, kind, archetype)
	}
}
