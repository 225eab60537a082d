package session

import (
	"math"

	"github.com/kvistberg/arena2d/internal/engine"
)

// applyPassive runs the attacking weapon kind's one-shot reaction to a
// confirmed hit. Escalations guarded "once per physics step" use the
// world's step counter, so any number of simultaneous hits in one step
// escalate at most once.
func (s *Session) applyPassive(atk attacker, now float64) {
	if atk.kind == KindUnarmed {
		s.ratchetUnarmed(atk.owner)
		return
	}

	// Projectile hits escalate the weapon that fired them.
	w := atk.weapon
	if w == nil {
		if owner := s.characters[atk.owner]; owner != nil {
			w = s.WeaponOf(owner)
		}
	}
	if w == nil || w.Kind != atk.kind {
		return
	}
	w.HitCount++

	if fn, ok := passives[w.Kind]; ok {
		fn(s, w, atk, now)
	}
}

// passiveFunc mutates weapon or session state after a confirmed hit.
type passiveFunc func(s *Session, w *Weapon, atk attacker, now float64)

// passives dispatches escalation rules by weapon kind. Kinds absent here
// (turret) have no per-hit escalation.
var passives = map[WeaponKind]passiveFunc{
	KindSword: func(s *Session, w *Weapon, atk attacker, now float64) {
		w.Damage++
	},
	KindShuriken: func(s *Session, w *Weapon, atk attacker, now float64) {
		w.Damage++
	},
	KindMace: func(s *Session, w *Weapon, atk attacker, now float64) {
		w.Damage = int(math.Ceil(float64(w.Damage) * s.Tuning.MaceFactor))
	},
	KindDagger: func(s *Session, w *Weapon, atk attacker, now float64) {
		w.Damage++
		// Cooldown shrinks geometrically toward the floor, at most once
		// per physics step no matter how many hits landed this step.
		step := s.World.StepCount()
		if w.lastEscalationStep == step {
			return
		}
		w.lastEscalationStep = step
		w.Cooldown *= s.Tuning.DaggerCooldownShrink
		if w.Cooldown < s.Tuning.DaggerCooldownFloor {
			w.Cooldown = s.Tuning.DaggerCooldownFloor
		}
	},
	KindFibonacci: func(s *Session, w *Weapon, atk attacker, now float64) {
		// The formula is indexed by HitCount; nothing else to escalate.
	},
	KindSaw: func(s *Session, w *Weapon, atk attacker, now float64) {
		victim := s.characters[victimOf(atk)]
		if victim != nil {
			s.Bleed.AddStacks(victim.Body, w.Stacks, now)
		}
		// More stacks queued per future hit, not more damage per tick.
		w.Stacks++
	},
	KindVenom: func(s *Session, w *Weapon, atk attacker, now float64) {
		victim := s.characters[victimOf(atk)]
		if victim != nil {
			s.Poison.AddStacks(victim.Body, w.Stacks, now)
		}
		w.Stacks++
	},
	KindSpear: func(s *Session, w *Weapon, atk attacker, now float64) {
		w.Reach *= s.Tuning.SpearReachGrowth
		if w.Reach > s.Tuning.SpearReachCap {
			w.Reach = s.Tuning.SpearReachCap
		}
		if s.Tuning.SpearBonusNth > 0 && w.HitCount%s.Tuning.SpearBonusNth == 0 {
			w.Damage += s.Tuning.SpearBonusDamage
		}
	},
	KindScythe: func(s *Session, w *Weapon, atk attacker, now float64) {
		owner := s.characters[w.Owner]
		if owner == nil {
			return
		}
		heal := w.Damage / (1 + w.HealCount)
		if heal < 1 {
			heal = 1
		}
		owner.Health += heal
		if owner.Health > s.Tuning.StartHealth {
			owner.Health = s.Tuning.StartHealth
		}
		w.HealCount++
		w.Healed += heal
		// Cumulative healing feeds back into base damage.
		w.Damage = s.Tuning.BaseDamage[KindScythe] + w.Healed/4
	},
	KindSummoner: func(s *Session, w *Weapon, atk attacker, now float64) {
		if s.Spawner == nil {
			return
		}
		n := 1 + w.HitCount/s.Tuning.SummonHitsPerExtra
		if w.Spawned+n > s.Tuning.SummonCap {
			n = s.Tuning.SummonCap - w.Spawned
		}
		if n <= 0 {
			return
		}
		w.Spawned += n
		s.Spawner.SpawnAuxiliaries(w.Owner, KindSummoner, n)
	},
	KindGrenadier: func(s *Session, w *Weapon, atk attacker, now float64) {
		w.Damage++ // raises detonation damage contribution
	},
}

// victimOf recovers the victim side for passives that need it; resolveHit
// stamps it on the attacker record before dispatch.
func victimOf(atk attacker) engine.BodyID {
	return atk.victim
}

// ratchetUnarmed raises an unarmed fighter's minimum-speed floor, at most
// once per distinct physics step.
func (s *Session) ratchetUnarmed(owner engine.BodyID) {
	c := s.characters[owner]
	if c == nil {
		return
	}
	step := s.World.StepCount()
	if c.lastRatchetStep == step {
		return
	}
	c.lastRatchetStep = step
	c.MinSpeed += s.Tuning.UnarmedRatchetStep
	if c.MinSpeed > s.Tuning.UnarmedMaxMinSpeed {
		c.MinSpeed = s.Tuning.UnarmedMaxMinSpeed
	}
}
