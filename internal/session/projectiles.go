package session

import "github.com/kvistberg/arena2d/internal/engine"

// ScheduleDestroy requests destruction of a projectile body no later than
// when. Only the earliest requested deadline is kept; a later request can
// never push an existing deadline back.
func (s *Session) ScheduleDestroy(body engine.BodyID, when float64) {
	if cur, ok := s.pendingDestroy[body]; ok && cur <= when {
		return
	}
	s.pendingDestroy[body] = when
}

// PendingDestroyAt returns the scheduled destruction time for a body.
func (s *Session) PendingDestroyAt(body engine.BodyID) (float64, bool) {
	t, ok := s.pendingDestroy[body]
	return t, ok
}

// SweepProjectiles destroys every projectile whose deadline has passed.
// Area-effect kinds detonate before the body goes away, while its position
// is still readable. Runs in the deferred phase, after event consumption.
func (s *Session) SweepProjectiles(now float64) {
	var due []engine.BodyID
	for body, when := range s.pendingDestroy {
		if now >= when {
			due = append(due, body)
		}
	}
	for _, body := range due {
		if p := s.projs[body]; p != nil && p.Kind.AreaEffect() {
			s.detonate(p, now)
		}
		s.PurgeBody(body)
	}
}

// detonate applies an area impulse and area damage around the projectile.
func (s *Session) detonate(p *Projectile, now float64) {
	center := p.SpawnPos
	if s.World.IsValidBody(p.Body) {
		center = s.World.Position(p.Body)
	}
	if s.Sounds != nil {
		s.Sounds.Detonate()
	}
	s.World.Explode(center, s.Tuning.BlastRadius, s.Tuning.BlastImpulse)

	damage := s.Tuning.BlastDamage + p.Damage
	for _, c := range s.characters {
		if c.Body == p.Owner || c.Health <= 0 {
			continue
		}
		dist := s.World.Position(c.Body).Sub(center).Length()
		if dist > s.Tuning.BlastRadius {
			continue
		}
		c.Health -= damage
		if c.Health < 0 {
			c.Health = 0
		}
		c.LastHit = now
		if c.Health == 0 {
			s.EnqueueDeath(c.Body)
		}
	}
}

// ProcessContacts consumes the solid-contact side channels of the step
// that just executed: projectile wall/weapon impacts and weapon-vs-weapon
// motor inversion.
func (s *Session) ProcessContacts(ev *engine.StepEvents, now float64) {
	for _, e := range ev.ContactBegin {
		catA := s.World.ShapeCategory(e.ShapeA)
		catB := s.World.ShapeCategory(e.ShapeB)
		bodyA := s.World.ShapeBody(e.ShapeA)
		bodyB := s.World.ShapeBody(e.ShapeB)

		// Weapon-on-weapon clashes invert both motors.
		if catA == CategoryWeapon && catB == CategoryWeapon {
			s.invertMotor(bodyA)
			s.invertMotor(bodyB)
			continue
		}

		s.projectileImpact(bodyA, catB, now)
		s.projectileImpact(bodyB, catA, now)
	}
}

// projectileImpact handles a projectile touching a wall, weapon or turret.
func (s *Session) projectileImpact(body engine.BodyID, otherCategory uint16, now float64) {
	p := s.projs[body]
	if p == nil {
		return
	}
	switch otherCategory {
	case CategoryWall, CategoryWeapon, CategoryTurret:
	default:
		return
	}

	switch {
	case p.Kind == KindShuriken:
		p.Rebounds--
		if p.Rebounds < 0 {
			s.ScheduleDestroy(body, now)
			return
		}
		// Anti-spam gate before the rebound sound may replay.
		if now >= s.reboundGate[body] {
			s.reboundGate[body] = now + s.Tuning.ReboundSoundGap
			if s.Sounds != nil {
				s.Sounds.Rebound()
			}
		}
	case p.Kind.AreaEffect():
		// Grenades bounce until their fuse expires.
		if now >= s.reboundGate[body] {
			s.reboundGate[body] = now + s.Tuning.ReboundSoundGap
			if s.Sounds != nil {
				s.Sounds.Rebound()
			}
		}
	default:
		s.ScheduleDestroy(body, now)
	}
}

// invertMotor flips the motor direction of a weapon's joint.
func (s *Session) invertMotor(weaponBody engine.BodyID) {
	w := s.weapons[weaponBody]
	if w == nil || w.Joint == 0 || !s.World.IsValidJoint(w.Joint) {
		return
	}
	motor := s.World.Motor(w.Joint)
	motor.Speed = -motor.Speed
	s.World.SetMotor(w.Joint, motor)
}
