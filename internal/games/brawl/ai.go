package brawl

import (
	"github.com/kvistberg/arena2d/internal/engine"
	"github.com/kvistberg/arena2d/internal/session"
)

// nearestEnemy returns the closest living fighter on a different team, or
// nil when none remains.
func (g *Game) nearestEnemy(c *session.Character) *session.Character {
	pos := g.world.Position(c.Body)
	var best *session.Character
	bestDist := 0.0
	for _, other := range g.sess.Characters() {
		if other.Team == c.Team || other.Health <= 0 {
			continue
		}
		d := g.world.Position(other.Body).Sub(pos).Length()
		if best == nil || d < bestDist {
			best, bestDist = other, d
		}
	}
	return best
}

// driveFighters applies seek steering toward each fighter's nearest enemy.
// Frozen fighters are left alone; the freeze scheduler owns their velocity.
func (g *Game) driveFighters(now float64) {
	for _, c := range g.sess.Characters() {
		if c.Health <= 0 || g.sess.Freeze.Frozen(c.Body) {
			continue
		}
		target := g.nearestEnemy(c)
		if target == nil {
			continue
		}

		pos := g.world.Position(c.Body)
		tpos := g.world.Position(target.Body)
		delta := tpos.Sub(pos)

		dirX := 1.0
		if delta.X < 0 {
			dirX = -1.0
		}
		vel := g.world.LinearVelocity(c.Body)
		mass := g.world.Mass(c.Body)

		// Correct a fraction of the horizontal velocity error per step.
		impulseX := (dirX*seekSpeed - vel.X) * mass * steerGain
		g.world.ApplyLinearImpulse(c.Body, engine.Vec2{X: impulseX})

		// Hop when the target is well above and we're not already rising.
		if delta.Y > 2.0 && vel.Y < 0.5 {
			g.world.ApplyLinearImpulse(c.Body, engine.Vec2{Y: hopImpulse * mass})
		}
	}
}

// fireWeapons lets projectile-firing weapons shoot at their owner's nearest
// enemy on a fixed cadence.
func (g *Game) fireWeapons(now float64) {
	for _, c := range g.sess.Characters() {
		w := g.sess.WeaponOf(c)
		if w == nil || !w.Kind.FiresProjectiles() || c.Health <= 0 {
			continue
		}
		if g.sess.Freeze.Frozen(c.Body) {
			continue
		}
		if now < g.nextFire[w.Body] {
			continue
		}
		target := g.nearestEnemy(c)
		if target == nil {
			continue
		}

		pos := g.world.Position(w.Body)
		tpos := g.world.Position(target.Body)
		dir := tpos.Sub(pos)
		dist := dir.Length()
		if dist < 1e-6 {
			continue
		}
		dir = dir.Scale(1 / dist)

		switch w.Kind {
		case session.KindShuriken:
			vel := dir.Scale(shurikenSpeed)
			muzzle := pos.Add(dir.Scale(weaponHalfLen + projRadius*2))
			g.launchProjectile(w.Kind, c.Body, muzzle, vel, w.Damage, now)
			g.nextFire[w.Body] = now + shurikenEvery
		case session.KindGrenadier:
			vel := dir.Scale(grenadeSpeed)
			vel.Y += grenadeLoft
			muzzle := pos.Add(dir.Scale(weaponHalfLen + projRadius*2))
			g.launchProjectile(w.Kind, c.Body, muzzle, vel, w.Damage, now)
			g.nextFire[w.Body] = now + grenadeEvery
		}
	}
}

// driveTurrets fires each turret at the first fighter it has line of sight
// to. Walls block the shot; the ray ignores weapons and projectiles.
func (g *Game) driveTurrets(now float64) {
	cfg := g.cfg.Turrets
	for _, t := range g.sess.Turrets() {
		if now < t.NextFire {
			continue
		}
		pos := g.world.Position(t.Body)

		for _, c := range g.sess.Characters() {
			if c.Health <= 0 || c.Body == t.Owner {
				continue
			}
			tpos := g.world.Position(c.Body)
			if tpos.Sub(pos).Length() > cfg.Range {
				continue
			}
			res := g.world.RayCastFiltered(pos, tpos, session.CategoryWall|session.CategoryCharacter)
			if !res.Hit || g.world.ShapeBody(res.Closest.Shape) != c.Body {
				continue // a wall or another body blocks the shot
			}

			dir := tpos.Sub(pos)
			dir = dir.Scale(1 / dir.Length())
			muzzle := pos.Add(dir.Scale(turretHalf + projRadius*2))
			damage := g.sess.Tuning.BaseDamage[session.KindTurret]
			g.launchProjectile(session.KindTurret, t.Body, muzzle, dir.Scale(cfg.ProjectileSpeed), damage, now)
			t.NextFire = now + cfg.FireInterval
			break
		}
	}
}
