// internal/config/config.go
package config

const (
	TileSize     = 32.0 // pixels per grid cell
	MaxDeltaTime = 0.1  // seconds; larger frame deltas are clamped

	BaseCoreHealth = 20
	StartingGold   = 100
	WaveGraceDelay = 2.0 // seconds between wave clear and next wave start

	ProjectileHitRadius = 15.0 // pixels
	ProjectileLifetime  = 6.0  // seconds; failsafe for projectiles that never connect

	SplashProjectileSpeed    = 160.0
	SplashProjectileLifetime = 0.35

	// Flat bonus applied at damage resolution while the defender's
	// tile aura counter is above zero.
	AuraDefenseBonus     = 5
	AuraMagicResistBonus = 10
)
