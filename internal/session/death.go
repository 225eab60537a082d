package session

import "github.com/kvistberg/arena2d/internal/engine"

// EnqueueDeath marks a character for destruction at the end of the step.
// Health hitting zero never destroys anything inline: later consumers in
// the same event-processing phase may still read the victim's tables.
// Exactly one death sequence runs per character.
func (s *Session) EnqueueDeath(body engine.BodyID) {
	c := s.characters[body]
	if c == nil || c.dying {
		return
	}
	c.dying = true
	s.pendingDeaths = append(s.pendingDeaths, body)
}

// PendingDeaths returns the bodies queued for the deferred-death phase.
func (s *Session) PendingDeaths() []engine.BodyID {
	return s.pendingDeaths
}

// FlushDeaths runs the deferred-death phase: for every queued character,
// destroy its weapon synchronously, cascade to turrets and owned
// projectiles, then purge the character itself from every table.
func (s *Session) FlushDeaths(now float64) {
	if len(s.pendingDeaths) == 0 {
		return
	}
	queue := s.pendingDeaths
	s.pendingDeaths = nil

	for _, body := range queue {
		c := s.characters[body]
		if c == nil {
			continue // already purged by an earlier cascade this flush
		}
		if s.Sounds != nil {
			s.Sounds.Death()
		}

		// Weapon dies with its owner, synchronously, never deferred.
		if c.Weapon != 0 {
			if w := s.weapons[c.Weapon]; w != nil && w.Joint != 0 {
				s.World.DestroyJoint(w.Joint)
			}
			s.PurgeBody(c.Weapon)
		}
		for _, turret := range c.Turrets {
			s.PurgeBody(turret)
		}
		// Owned projectiles are cancelled; purging removes any pending
		// deferred destruction so nothing touches the freed handles later.
		for projBody, p := range s.projs {
			if p.Owner == body {
				s.PurgeBody(projBody)
			}
		}

		s.PurgeBody(body)
	}
}
