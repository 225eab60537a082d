package session

import (
	"math"

	"github.com/kvistberg/arena2d/internal/core"
	"github.com/kvistberg/arena2d/internal/engine"
)

// Character is one combatant. Identity is its body handle.
type Character struct {
	Body   engine.BodyID
	Name   string
	Team   int
	Health int
	Color  core.Color

	// Weapon is zero for unarmed fighters.
	Weapon engine.BodyID

	// LastHit timestamps the most recent health decrease, for blink feedback.
	LastHit float64

	// MinSpeed is the unarmed speed floor; it only ratchets upward.
	// lastRatchetStep starts at -1 so a hit on physics step 0 still counts.
	MinSpeed        float64
	lastRatchetStep int64

	// UnarmedDamage is recomputed every frame from current speed.
	UnarmedDamage int

	Turrets []engine.BodyID

	// dying guards the one-death-sequence-per-character invariant.
	dying bool
}

// Weapon orbits its owner on a motorized revolute joint.
type Weapon struct {
	Body  engine.BodyID
	Owner engine.BodyID
	Kind  WeaponKind
	Joint engine.JointID

	// Damage is the current contact damage; passives escalate it.
	Damage int

	// HitCount counts confirmed hits landed; several passives key off it.
	HitCount int

	// Stacks handed to the status ledgers per hit (saw/venom).
	Stacks int

	// Reach is the orbit-radius parameter grown by the spear passive.
	Reach float64

	// Cooldown is the per-pair cooldown this weapon imposes; the dagger
	// shrinks its own copy geometrically.
	Cooldown float64

	// Lifesteal bookkeeping (scythe).
	HealCount int
	Healed    int

	// Spawned counts auxiliaries created by spawn-more passives.
	Spawned int

	// lastEscalationStep starts at -1 so a hit on physics step 0 escalates.
	lastEscalationStep int64
}

// Projectile is a transient fired body.
type Projectile struct {
	Body     engine.BodyID
	Kind     WeaponKind
	Owner    engine.BodyID // owning character's body
	Rebounds int           // remaining rebound budget (ricochet kinds)
	SpawnPos engine.Vec2
	Damage   int
}

// Turret is an autonomous emplacement owned by a character.
type Turret struct {
	Body     engine.BodyID
	Owner    engine.BodyID
	NextFire float64
}

// RegisterCharacter starts tracking a spawned body as a combatant with full
// health.
func (s *Session) RegisterCharacter(body engine.BodyID, name string, team int, color core.Color) *Character {
	c := &Character{
		Body:            body,
		Name:            name,
		Team:            team,
		Health:          s.Tuning.StartHealth,
		Color:           color,
		lastRatchetStep: -1,
	}
	s.characters[body] = c
	for _, shape := range s.World.BodyShapes(body) {
		s.shapeOwner[shape] = body
	}
	return c
}

// RegisterWeapon records a weapon body, its owner and kind, and seeds the
// kind's base damage and cooldown.
func (s *Session) RegisterWeapon(body engine.BodyID, owner *Character, kind WeaponKind, joint engine.JointID) *Weapon {
	w := &Weapon{
		Body:               body,
		Owner:              owner.Body,
		Kind:               kind,
		Joint:              joint,
		Damage:             s.Tuning.BaseDamage[kind],
		Stacks:             s.Tuning.StatusStacksPerHit,
		Reach:              1.0,
		Cooldown:           s.Tuning.BaseCooldown,
		lastEscalationStep: -1,
	}
	s.weapons[body] = w
	owner.Weapon = body
	for _, shape := range s.World.BodyShapes(body) {
		s.shapeOwner[shape] = owner.Body
	}
	return w
}

// RegisterProjectile inserts a fired body into the projectile set and
// announces its launch exactly once.
func (s *Session) RegisterProjectile(body engine.BodyID, kind WeaponKind, owner engine.BodyID, damage int, now float64) *Projectile {
	p := &Projectile{
		Body:     body,
		Kind:     kind,
		Owner:    owner,
		Rebounds: s.Tuning.ShurikenRebounds,
		SpawnPos: s.World.Position(body),
		Damage:   damage,
	}
	s.projs[body] = p
	if !s.announced[body] {
		s.announced[body] = true
		if s.Sounds != nil {
			s.Sounds.Launch()
		}
	}
	// Every projectile has a lifetime ceiling; impacts may move it earlier.
	s.ScheduleDestroy(body, now+s.Tuning.ProjectileLifetime)
	return p
}

// RegisterTurret records a turret emplacement. A nil owner makes the turret
// neutral: it targets every fighter and dies with nobody.
func (s *Session) RegisterTurret(body engine.BodyID, owner *Character) *Turret {
	t := &Turret{Body: body}
	if owner != nil {
		t.Owner = owner.Body
		owner.Turrets = append(owner.Turrets, body)
	}
	s.turrets[body] = t
	return t
}

// Character returns the combatant with the given body, or nil.
func (s *Session) Character(body engine.BodyID) *Character {
	return s.characters[body]
}

// Weapon returns the weapon with the given body, or nil.
func (s *Session) WeaponByBody(body engine.BodyID) *Weapon {
	return s.weapons[body]
}

// WeaponOf returns the weapon a character owns, or nil for unarmed.
func (s *Session) WeaponOf(c *Character) *Weapon {
	if c == nil || c.Weapon == 0 {
		return nil
	}
	return s.weapons[c.Weapon]
}

// Projectile returns the projectile with the given body, or nil.
func (s *Session) Projectile(body engine.BodyID) *Projectile {
	return s.projs[body]
}

// Turret returns the turret with the given body, or nil.
func (s *Session) Turret(body engine.BodyID) *Turret {
	return s.turrets[body]
}

// Characters returns all live combatants in unspecified order.
func (s *Session) Characters() []*Character {
	out := make([]*Character, 0, len(s.characters))
	for _, c := range s.characters {
		out = append(out, c)
	}
	return out
}

// Projectiles returns all live projectiles in unspecified order.
func (s *Session) Projectiles() []*Projectile {
	out := make([]*Projectile, 0, len(s.projs))
	for _, p := range s.projs {
		out = append(out, p)
	}
	return out
}

// Turrets returns all live turret emplacements in unspecified order.
func (s *Session) Turrets() []*Turret {
	out := make([]*Turret, 0, len(s.turrets))
	for _, t := range s.turrets {
		out = append(out, t)
	}
	return out
}

// LookupCharacterForShape resolves a shape back to its owning character's
// body. Weapon sub-shapes created after registration (weapon rebuilds)
// self-register lazily through ObserveShape before they can be hit through,
// so a miss here simply means "not applicable".
func (s *Session) LookupCharacterForShape(shape engine.ShapeID) (engine.BodyID, bool) {
	owner, ok := s.shapeOwner[shape]
	if !ok {
		return 0, false
	}
	if _, live := s.characters[owner]; !live {
		return 0, false
	}
	return owner, true
}

// ObserveShape lazily records ownership and base color for a shape the
// first time it is seen, tolerating shapes created by weapon rebuilds
// before their owner-link was known.
func (s *Session) ObserveShape(shape engine.ShapeID, color core.Color) {
	if _, ok := s.colors[shape]; !ok {
		s.colors[shape] = color
	}
	if _, ok := s.shapeOwner[shape]; ok {
		return
	}
	body := s.World.ShapeBody(shape)
	if body == 0 {
		return
	}
	if w, ok := s.weapons[body]; ok {
		s.shapeOwner[shape] = w.Owner
	} else if _, ok := s.characters[body]; ok {
		s.shapeOwner[shape] = body
	}
}

// ShapeColor returns the cached base color for a shape.
func (s *Session) ShapeColor(shape engine.ShapeID) (core.Color, bool) {
	c, ok := s.colors[shape]
	return c, ok
}

// UpdateUnarmedDamage recomputes speed-derived damage for every unarmed
// combatant. Called once per frame before event processing so the value is
// current when a hit lands.
func (s *Session) UpdateUnarmedDamage() {
	for _, c := range s.characters {
		if c.Weapon != 0 {
			continue
		}
		speed := s.World.LinearVelocity(c.Body).Length()
		if speed < c.MinSpeed {
			speed = c.MinSpeed
		}
		dmg := int(math.Floor(speed * s.Tuning.UnarmedSpeedScale))
		c.UnarmedDamage = core.Clamp(dmg, 1, s.Tuning.UnarmedDamageCap)
	}
}

// PurgeBody removes a body from every table that could reference it, then
// destroys the physics body. This must be total: a retained entry would
// later resolve against a freed handle.
func (s *Session) PurgeBody(body engine.BodyID) {
	// Color and ownership entries are keyed by shape; collect them while
	// the body is still valid.
	for _, shape := range s.World.BodyShapes(body) {
		delete(s.colors, shape)
		delete(s.shapeOwner, shape)
	}
	// Shapes registered for this body whose fixtures are already gone.
	for shape, owner := range s.shapeOwner {
		if owner == body || s.World.ShapeBody(shape) == body {
			delete(s.shapeOwner, shape)
		}
	}

	delete(s.characters, body)
	delete(s.weapons, body)
	delete(s.projs, body)
	delete(s.turrets, body)
	delete(s.announced, body)
	delete(s.pendingDestroy, body)
	delete(s.reboundGate, body)

	for key := range s.overlaps {
		if key.victim == body || key.attacker == body {
			delete(s.overlaps, key)
		}
	}
	for key := range s.cooldowns {
		if key.victim == body || key.attacker == body {
			delete(s.cooldowns, key)
		}
	}

	s.Poison.Remove(body)
	s.Bleed.Remove(body)
	s.Freeze.Drop(body)

	if s.World.IsValidBody(body) {
		s.World.DestroyBody(body)
	}
}
