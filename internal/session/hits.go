package session

import "github.com/kvistberg/arena2d/internal/engine"

// attacker describes the resolved attacking side of a sensor overlap.
type attacker struct {
	body       engine.BodyID // the physical body doing the touching
	owner      engine.BodyID // character responsible for the attack
	kind       WeaponKind
	weapon     *Weapon       // nil for unarmed and bare projectiles
	projectile *Projectile   // nil unless the body is a registered projectile
	victim     engine.BodyID // stamped by resolveHit before passive dispatch
}

// ProcessEvents consumes one step's worth of sensor begin/end events and
// applies their gameplay consequences. Multiple overlapping shapes between
// the same two logical bodies collapse into a single hit per cooldown
// window: damage authorizes only on a pair's 0 -> 1 overlap transition.
func (s *Session) ProcessEvents(ev *engine.StepEvents, now float64) {
	for _, e := range ev.SensorBegin {
		s.beginTouch(e, now)
	}
	for _, e := range ev.SensorEnd {
		s.endTouch(e)
	}
}

func (s *Session) beginTouch(e engine.SensorEvent, now float64) {
	if !s.World.IsValidShape(e.Sensor) || !s.World.IsValidShape(e.Visitor) {
		return
	}

	switch s.World.ShapeCategory(e.Sensor) {
	case CategoryKillzone:
		// Killzones swallow projectiles independently of the damage path.
		if body := s.World.ShapeBody(e.Visitor); s.projs[body] != nil {
			s.ScheduleDestroy(body, now)
		}
		return
	case CategorySkin:
		// fall through to hit resolution
	default:
		return
	}

	victim, ok := s.LookupCharacterForShape(e.Sensor)
	if !ok {
		return
	}
	atk, ok := s.resolveAttacker(e.Visitor)
	if !ok || atk.owner == victim {
		return
	}

	key := pairKey{victim: victim, attacker: atk.body}
	s.overlaps[key]++
	if s.overlaps[key] != 1 {
		return // additional shape of an already-touching attacker
	}
	if now < s.cooldowns[key] {
		return // first enter, but the pair is still cooling down
	}
	s.resolveHit(key, atk, now)
}

func (s *Session) endTouch(e engine.SensorEvent) {
	victim, ok := s.LookupCharacterForShape(e.Sensor)
	if !ok {
		return
	}
	body := s.World.ShapeBody(e.Visitor)
	if body == 0 {
		return
	}
	key := pairKey{victim: victim, attacker: body}
	n, ok := s.overlaps[key]
	if !ok {
		return
	}
	n--
	if n <= 0 {
		// Re-arm the pair: the next approach is a fresh first-enter. The
		// cooldown entry survives independently.
		delete(s.overlaps, key)
		return
	}
	s.overlaps[key] = n
}

// resolveAttacker maps a touching shape to the responsible character and
// the weapon-kind driving the damage formula.
func (s *Session) resolveAttacker(shape engine.ShapeID) (attacker, bool) {
	body := s.World.ShapeBody(shape)
	if body == 0 {
		return attacker{}, false
	}
	if p := s.projs[body]; p != nil {
		return attacker{body: body, owner: p.Owner, kind: p.Kind, projectile: p}, true
	}
	if w := s.weapons[body]; w != nil {
		return attacker{body: body, owner: w.Owner, kind: w.Kind, weapon: w}, true
	}
	if c := s.characters[body]; c != nil {
		return attacker{body: body, owner: body, kind: KindUnarmed}, true
	}
	return attacker{}, false
}

// resolveHit applies one authorized hit: damage, feedback, passives,
// freezes, deferred death, cooldown advance, projectile consumption.
func (s *Session) resolveHit(key pairKey, atk attacker, now float64) {
	victim := s.characters[key.victim]
	if victim == nil {
		return
	}
	atk.victim = victim.Body

	damage := s.hitDamage(atk)
	before := victim.Health
	if victim.Health > 0 && damage > 0 {
		victim.Health -= damage
		if victim.Health < 0 {
			victim.Health = 0
		}
	}

	if victim.Health < before {
		victim.LastHit = now
		if s.Sounds != nil {
			if atk.projectile != nil {
				s.Sounds.Impact()
			} else {
				s.Sounds.Melee()
			}
		}

		s.applyPassive(atk, now)
		s.applyFreezes(victim, atk, now)

		if victim.Health == 0 {
			s.EnqueueDeath(victim.Body)
		}
	}

	s.cooldowns[key] = now + s.cooldownFor(atk)
	s.consumeProjectile(atk, now)
}

// hitDamage computes contact damage via the attacking weapon's formula.
func (s *Session) hitDamage(atk attacker) int {
	if atk.projectile != nil {
		if atk.kind.AreaEffect() {
			return 0 // area kinds deal their damage on detonation
		}
		return atk.projectile.Damage
	}
	if atk.weapon != nil {
		if atk.kind == KindFibonacci {
			idx := atk.weapon.HitCount
			if idx > s.Tuning.FibonacciMaxIndex {
				idx = s.Tuning.FibonacciMaxIndex
			}
			return fibonacci(idx)
		}
		return atk.weapon.Damage
	}
	if c := s.characters[atk.owner]; c != nil {
		return c.UnarmedDamage
	}
	return 0
}

// cooldownFor returns the pair cooldown the attacking weapon imposes.
// The dagger carries its own separately-shrinking copy.
func (s *Session) cooldownFor(atk attacker) float64 {
	if atk.weapon != nil {
		return atk.weapon.Cooldown
	}
	return s.Tuning.BaseCooldown
}

// applyFreezes opens the freeze windows that follow a confirmed hit.
func (s *Session) applyFreezes(victim *Character, atk attacker, now float64) {
	victimWeapon := s.WeaponOf(victim)

	// Unarmed strikes do not stun a motorized weapon's motor: skip the
	// victim freeze when an unarmed attacker hits an armed victim.
	skipVictim := atk.kind == KindUnarmed && victimWeapon != nil && victimWeapon.Joint != 0
	if !skipVictim {
		var joint engine.JointID
		if victimWeapon != nil {
			joint = victimWeapon.Joint
		}
		s.freezeBody(victim.Body, joint, s.Tuning.VictimFreeze, now)
		if victimWeapon != nil {
			s.freezeBody(victimWeapon.Body, 0, s.Tuning.VictimFreeze, now)
		}
	}

	// Projectile attackers keep flying; only direct attackers recoil.
	if atk.projectile != nil {
		return
	}
	if owner := s.characters[atk.owner]; owner != nil {
		ownerWeapon := s.WeaponOf(owner)
		var joint engine.JointID
		if ownerWeapon != nil {
			joint = ownerWeapon.Joint
		}
		s.freezeBody(owner.Body, joint, s.Tuning.AttackerFreeze, now)
		if ownerWeapon != nil {
			s.freezeBody(ownerWeapon.Body, 0, s.Tuning.AttackerFreeze, now)
		}
	}
}

// freezeBody freezes a body unless it is a registered projectile; freezing
// a fast transient body would desync its flight.
func (s *Session) freezeBody(body engine.BodyID, joint engine.JointID, duration, now float64) {
	if s.projs[body] != nil {
		return
	}
	s.Freeze.Freeze(body, joint, duration, now)
}

// consumeProjectile applies weapon-kind-specific consumption after an
// authorized hit. Ricochet kinds spend a rebound; most others are spent
// outright. Area kinds survive until their fuse runs out.
func (s *Session) consumeProjectile(atk attacker, now float64) {
	p := atk.projectile
	if p == nil {
		return
	}
	switch {
	case p.Kind == KindShuriken:
		p.Rebounds--
		if p.Rebounds < 0 {
			s.ScheduleDestroy(p.Body, now)
		}
	case p.Kind.AreaEffect():
		// fuse-driven
	default:
		s.ScheduleDestroy(p.Body, now)
	}
}

// OverlapCount returns the live overlap counter for a (victim, attacker)
// pair. Zero means the pair's overlap entry is erased.
func (s *Session) OverlapCount(victim, attacker engine.BodyID) int {
	return s.overlaps[pairKey{victim: victim, attacker: attacker}]
}

// CooldownDeadline returns the next-allowed-damage time for a pair.
func (s *Session) CooldownDeadline(victim, attacker engine.BodyID) (float64, bool) {
	t, ok := s.cooldowns[pairKey{victim: victim, attacker: attacker}]
	return t, ok
}

func fibonacci(n int) int {
	a, b := 1, 1
	for i := 0; i < n; i++ {
		a, b = b, a+b
	}
	return a
}
