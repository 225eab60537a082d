package session

import "github.com/kvistberg/arena2d/internal/engine"

// statusEntry accumulates pending damage-over-time ticks for one victim.
type statusEntry struct {
	lastTick  float64
	remaining int
}

// Ledger is one damage-over-time table: fixed damage per tick at a fixed
// wall-clock cadence, decoupled from collision timing. The poison and bleed
// ledgers are two instances with different intervals and trigger weapons.
type Ledger struct {
	interval float64
	damage   int
	entries  map[engine.BodyID]*statusEntry
}

func newLedger(interval float64, damage int) *Ledger {
	return &Ledger{
		interval: interval,
		damage:   damage,
		entries:  make(map[engine.BodyID]*statusEntry),
	}
}

// AddStacks queues stacks future ticks for a victim. A cold victim (no
// pending ticks) also re-anchors the tick clock at now, so the first tick
// of a fresh application lands one full interval later, never instantly.
// Stacking on a warm victim adds ticks without touching the clock.
func (l *Ledger) AddStacks(victim engine.BodyID, stacks int, now float64) {
	if stacks <= 0 {
		return
	}
	e, ok := l.entries[victim]
	if !ok || e.remaining <= 0 {
		if !ok {
			e = &statusEntry{}
			l.entries[victim] = e
		}
		e.lastTick = now
	}
	e.remaining += stacks
}

// Pending returns the number of queued ticks for a victim.
func (l *Ledger) Pending(victim engine.BodyID) int {
	if e, ok := l.entries[victim]; ok {
		return e.remaining
	}
	return 0
}

// LastTick returns the tick-clock anchor for a victim.
func (l *Ledger) LastTick(victim engine.BodyID) (float64, bool) {
	if e, ok := l.entries[victim]; ok {
		return e.lastTick, true
	}
	return 0, false
}

// Remove drops a victim's entry entirely.
func (l *Ledger) Remove(victim engine.BodyID) {
	delete(l.entries, victim)
}

// Tick runs once per frame, independent of collision events. Every entry
// whose interval has elapsed deals one tick of damage; exhausted or
// orphaned entries are pruned on the same pass.
func (l *Ledger) Tick(now float64, s *Session) {
	for victim, e := range l.entries {
		if e.remaining <= 0 {
			delete(l.entries, victim)
			continue
		}
		c := s.Character(victim)
		if c == nil {
			delete(l.entries, victim)
			continue
		}
		if now-e.lastTick < l.interval {
			continue
		}
		e.lastTick = now
		e.remaining--
		s.applyStatusDamage(c, l.damage, now)
		if e.remaining <= 0 {
			delete(l.entries, victim)
		}
	}
}

// applyStatusDamage decreases health from a ticking effect. Status ticks
// set the blink timestamp but do not trigger freezes, passives or sounds.
func (s *Session) applyStatusDamage(c *Character, damage int, now float64) {
	if c.Health <= 0 || damage <= 0 {
		return
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
