// internal/types/types.go
package types

// EntityID uniquely identifies an entity within one simulation run.
type EntityID uint64

// EntityKind classifies an entity for destruction callbacks.
type EntityKind string

const (
	KindTower      EntityKind = "tower"
	KindEnemy      EntityKind = "enemy"
	KindProjectile EntityKind = "projectile"
)
