package session

import (
	"fmt"
	"math"
)

// HUDEntry is the live per-character state the render layer shows.
type HUDEntry struct {
	Name    string
	Health  int
	Weapon  string
	Damage  int
	Preview string // weapon-specific "next escalation" description
	Blink   bool
}

// HUD returns one entry per live character. blinkWindow controls how long
// after a hit the blink flag stays raised.
func (s *Session) HUD(now, blinkWindow float64) []HUDEntry {
	out := make([]HUDEntry, 0, len(s.characters))
	for _, c := range s.characters {
		e := HUDEntry{
			Name:   c.Name,
			Health: c.Health,
			Blink:  c.LastHit > 0 && now-c.LastHit < blinkWindow,
		}
		if w := s.WeaponOf(c); w != nil {
			e.Weapon = w.Kind.String()
			e.Damage = w.Damage
			if w.Kind == KindFibonacci {
				idx := w.HitCount
				if idx > s.Tuning.FibonacciMaxIndex {
					idx = s.Tuning.FibonacciMaxIndex
				}
				e.Damage = fibonacci(idx)
			}
			e.Preview = s.escalationPreview(w)
		} else {
			e.Weapon = KindUnarmed.String()
			e.Damage = c.UnarmedDamage
			e.Preview = fmt.Sprintf("floor %.1f m/s", c.MinSpeed)
		}
		out = append(out, e)
	}
	return out
}

// escalationPreview describes what the weapon's next confirmed hit earns.
func (s *Session) escalationPreview(w *Weapon) string {
	switch w.Kind {
	case KindSword, KindShuriken, KindGrenadier:
		return fmt.Sprintf("next: %d dmg", w.Damage+1)
	case KindMace:
		return fmt.Sprintf("next: %d dmg", int(math.Ceil(float64(w.Damage)*s.Tuning.MaceFactor)))
	case KindDagger:
		next := w.Cooldown * s.Tuning.DaggerCooldownShrink
		if next < s.Tuning.DaggerCooldownFloor {
			next = s.Tuning.DaggerCooldownFloor
		}
		return fmt.Sprintf("next: %.2fs cd", next)
	case KindFibonacci:
		idx := w.HitCount + 1
		if idx > s.Tuning.FibonacciMaxIndex {
			idx = s.Tuning.FibonacciMaxIndex
		}
		return fmt.Sprintf("next: %d dmg", fibonacci(idx))
	case KindSaw:
		return fmt.Sprintf("next: %d bleed", w.Stacks)
	case KindVenom:
		return fmt.Sprintf("next: %d poison", w.Stacks)
	case KindSpear:
		reach := w.Reach * s.Tuning.SpearReachGrowth
		if reach > s.Tuning.SpearReachCap {
			reach = s.Tuning.SpearReachCap
		}
		return fmt.Sprintf("next: %.2fx reach", reach)
	case KindScythe:
		heal := w.Damage / (1 + w.HealCount)
		if heal < 1 {
			heal = 1
		}
		return fmt.Sprintf("next: +%d hp", heal)
	case KindSummoner:
		return fmt.Sprintf("next: %d clones", 1+w.HitCount/s.Tuning.SummonHitsPerExtra)
	}
	return ""
}
