// Package session implements the per-step gameplay orchestration shared by
// the VS games: hit resolution, status effects, freeze windows, projectile
// lifecycle, weapon passives and deferred death. It drives a physics world
// it does not own; the hosting game sequences the phases of each step and
// owns the clock.
//
// All cross-references between tables are engine handles stored by value.
// Every lookup tolerates "not found": a handle going stale between event
// capture and processing degrades to a skipped event, never a crash.
package session

import (
	"github.com/kvistberg/arena2d/internal/core"
	"github.com/kvistberg/arena2d/internal/engine"
)

// Collision filter categories shared by the VS games.
const (
	CategoryWall       uint16 = 1 << 0
	CategoryCharacter  uint16 = 1 << 1
	CategoryWeapon     uint16 = 1 << 2
	CategoryProjectile uint16 = 1 << 3
	CategorySkin       uint16 = 1 << 4 // hit-detection sensor, not solid
	CategoryKillzone   uint16 = 1 << 5
	CategoryTurret     uint16 = 1 << 6
)

// SoundPlayer receives hit-feedback requests. Implementations may be nil;
// the session never requires audio to function.
type SoundPlayer interface {
	Melee()    // character or weapon body striking a character
	Impact()   // registered projectile striking a character
	Launch()   // projectile leaving its weapon
	Rebound()  // ricochet projectile bouncing off a wall
	Detonate() // area-effect projectile exploding
	Death()    // character purged
}

// Spawner lets weapon passives request game-level entity creation (clones,
// turret emplacements) without the session knowing how to build them.
type Spawner interface {
	SpawnAuxiliaries(owner engine.BodyID, kind WeaponKind, count int)
}

type pairKey struct {
	victim   engine.BodyID // character identity
	attacker engine.BodyID // attacking body identity
}

// Session aggregates every gameplay table for one running match. A new
// Session is built on reset; nothing persists across resets.
type Session struct {
	World  *engine.World
	Tuning Tuning

	// Optional collaborators, nil-safe.
	Sounds  SoundPlayer
	Spawner Spawner

	characters map[engine.BodyID]*Character
	weapons    map[engine.BodyID]*Weapon
	projs      map[engine.BodyID]*Projectile
	turrets    map[engine.BodyID]*Turret

	// shapeOwner resolves a skin sensor or weapon sub-shape back to the
	// owning character's body. Weapon sub-shapes self-register lazily.
	shapeOwner map[engine.ShapeID]engine.BodyID

	// colors caches the cosmetic base color per shape, written lazily the
	// first time a shape is observed without one.
	colors map[engine.ShapeID]core.Color

	// announced guards the one-shot launch sound per projectile.
	announced map[engine.BodyID]bool

	// overlaps counts live sensor overlaps per (victim, attacker) pair;
	// damage authorizes only on the 0 -> 1 transition. cooldowns is keyed
	// separately and survives overlap erasure, so re-touching inside the
	// window cannot re-deal damage.
	overlaps  map[pairKey]int
	cooldowns map[pairKey]float64

	Poison *Ledger
	Bleed  *Ledger
	Freeze *Freezer

	// pendingDestroy maps a projectile body to the earliest requested
	// destruction time. pendingDeaths holds characters that reached zero
	// health during event processing.
	pendingDestroy map[engine.BodyID]float64
	pendingDeaths  []engine.BodyID

	// reboundGate rate-limits rebound sounds per projectile body.
	reboundGate map[engine.BodyID]float64
}

// New creates an empty session bound to a world.
func New(world *engine.World, tuning Tuning) *Session {
	s := &Session{
		World:          world,
		Tuning:         tuning,
		characters:     make(map[engine.BodyID]*Character),
		weapons:        make(map[engine.BodyID]*Weapon),
		projs:          make(map[engine.BodyID]*Projectile),
		turrets:        make(map[engine.BodyID]*Turret),
		shapeOwner:     make(map[engine.ShapeID]engine.BodyID),
		colors:         make(map[engine.ShapeID]core.Color),
		announced:      make(map[engine.BodyID]bool),
		overlaps:       make(map[pairKey]int),
		cooldowns:      make(map[pairKey]float64),
		pendingDestroy: make(map[engine.BodyID]float64),
		reboundGate:    make(map[engine.BodyID]float64),
	}
	s.Poison = newLedger(tuning.PoisonInterval, tuning.PoisonTickDamage)
	s.Bleed = newLedger(tuning.BleedInterval, tuning.BleedTickDamage)
	s.Freeze = newFreezer(world, &s.Tuning)
	return s
}

// EndStep runs the deferred phases of one simulation step, in order:
// status-effect ticking, projectile destruction sweep, deferred deaths,
// and the freeze safety net.
func (s *Session) EndStep(now float64) {
	s.Poison.Tick(now, s)
	s.Bleed.Tick(now, s)
	s.SweepProjectiles(now)
	s.FlushDeaths(now)
	s.Freeze.Expire(now)
	s.Freeze.Enforce(now)
}
