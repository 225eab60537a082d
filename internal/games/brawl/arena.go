package brawl

import (
	"math"

	"github.com/kvistberg/arena2d/internal/core"
	"github.com/kvistberg/arena2d/internal/engine"
	"github.com/kvistberg/arena2d/internal/session"
)

// Body geometry, in meters.
const (
	fighterRadius = 0.6
	skinRadius    = 0.85 // hit sensor slightly larger than the body
	weaponHalfLen = 0.9  // half-length of a generic weapon blade
	weaponHalfTh  = 0.12
	projRadius    = 0.18
	cloneRadius   = 0.4
	turretHalf    = 0.5
)

// fighterColors assigns roster colors round-robin.
var fighterColors = []core.Color{
	core.ColorRed, core.ColorGreen, core.ColorYellow, core.ColorBlue,
	core.ColorMagenta, core.ColorCyan, core.ColorBrightRed, core.ColorBrightGreen,
}

// buildArena creates the static walls and the projectile killzone below the
// floor.
func (g *Game) buildArena() {
	a := g.cfg.Arena
	th := a.WallThickness

	mk := func(pos engine.Vec2, halfW, halfH float64) engine.BodyID {
		body := g.world.CreateBody(engine.BodyDef{Type: engine.StaticBody, Position: pos})
		g.world.CreateBoxShape(body, engine.ShapeDef{
			Friction: 0.4,
			Category: session.CategoryWall,
		}, halfW, halfH)
		g.walls = append(g.walls, body)
		return body
	}

	// Floor, ceiling, left and right walls enclose [0,W] x [0,H].
	mk(engine.Vec2{X: a.Width / 2, Y: -th}, a.Width/2+th, th)
	mk(engine.Vec2{X: a.Width / 2, Y: a.Height + th}, a.Width/2+th, th)
	mk(engine.Vec2{X: -th, Y: a.Height / 2}, th, a.Height/2)
	mk(engine.Vec2{X: a.Width + th, Y: a.Height / 2}, th, a.Height/2)

	// The killzone reaps anything that tunnels out of the arena.
	kz := g.world.CreateBody(engine.BodyDef{
		Type:     engine.StaticBody,
		Position: engine.Vec2{X: a.Width / 2, Y: -a.KillzoneDepth},
	})
	g.world.CreateBoxShape(kz, engine.ShapeDef{
		IsSensor: true,
		Category: session.CategoryKillzone,
		Mask:     session.CategoryProjectile,
	}, a.Width*2, 1)
	g.killzone = kz
}

// spawnRoster places the configured fighters evenly along the arena floor.
func (g *Game) spawnRoster() {
	n := len(g.cfg.Roster)
	if n == 0 {
		return
	}
	spacing := g.cfg.Arena.Width / float64(n+1)
	for i, f := range g.cfg.Roster {
		pos := engine.Vec2{
			X: spacing * float64(i+1),
			Y: 2 + float64(i%2), // staggered heights avoid spawn stacking
		}
		color := fighterColors[i%len(fighterColors)]
		g.spawnFighter(f.Name, f.Kind(), f.Team, pos, color, fighterRadius)
	}
}

// spawnFighter creates a fighter body with its skin sensor, registers it,
// and arms it when the kind calls for a weapon body.
func (g *Game) spawnFighter(name string, kind session.WeaponKind, team int, pos engine.Vec2, color core.Color, radius float64) *session.Character {
	body := g.world.CreateBody(engine.BodyDef{
		Type:          engine.DynamicBody,
		Position:      pos,
		FixedRotation: true,
		LinearDamping: 0.2,
		EnableSleep:   false,
	})
	g.world.CreateCircleShape(body, engine.ShapeDef{
		Density:  1,
		Friction: 0.3,
		Category: session.CategoryCharacter,
		Mask: session.CategoryWall | session.CategoryCharacter | session.CategoryWeapon |
			session.CategorySkin | session.CategoryTurret,
	}, engine.Vec2{}, radius)

	// The skin sensor is what the hit pipeline listens to. It overlaps
	// weapons and projectiles without deflecting them.
	g.world.CreateCircleShape(body, engine.ShapeDef{
		IsSensor: true,
		Category: session.CategorySkin,
		Mask:     session.CategoryWeapon | session.CategoryProjectile | session.CategoryCharacter,
	}, engine.Vec2{}, radius*skinRadius/fighterRadius)

	c := g.sess.RegisterCharacter(body, name, team, color)

	if kind != session.KindUnarmed {
		g.armFighter(c, kind, radius)
	}
	return c
}

// armFighter builds the weapon body and joins it to the fighter on a
// motorized revolute joint so it orbits continuously.
func (g *Game) armFighter(c *session.Character, kind session.WeaponKind, ownerRadius float64) {
	pos := g.world.Position(c.Body)
	offset := ownerRadius + weaponHalfLen

	wb := g.world.CreateBody(engine.BodyDef{
		Type:        engine.DynamicBody,
		Position:    engine.Vec2{X: pos.X + offset, Y: pos.Y},
		EnableSleep: false,
	})
	g.buildWeaponFixture(wb, kind, 1.0)

	joint := g.world.CreateRevoluteJoint(engine.RevoluteJointDef{
		BodyA:          c.Body,
		BodyB:          wb,
		Anchor:         pos,
		EnableMotor:    true,
		MotorSpeed:     weaponSpin,
		MaxMotorTorque: weaponTorque,
	})

	w := g.sess.RegisterWeapon(wb, c, kind, joint)
	g.appliedReach[wb] = w.Reach
}

// buildWeaponFixture attaches the kind's fixture geometry scaled by reach.
func (g *Game) buildWeaponFixture(body engine.BodyID, kind session.WeaponKind, reach float64) {
	def := engine.ShapeDef{
		Density:  0.8,
		Friction: 0.2,
		Category: session.CategoryWeapon,
		Mask: session.CategoryWall | session.CategoryCharacter | session.CategoryWeapon |
			session.CategorySkin | session.CategoryProjectile | session.CategoryTurret,
	}
	switch kind {
	case session.KindSaw:
		g.world.CreateCircleShape(body, def, engine.Vec2{}, weaponHalfLen*0.7*reach)
	case session.KindMace:
		g.world.CreateCircleShape(body, def, engine.Vec2{}, weaponHalfLen*0.55*reach)
	default:
		g.world.CreateBoxShape(body, def, weaponHalfLen*reach, weaponHalfTh)
	}
}

// applyReachGrowth rebuilds the fixtures of weapons whose reach escalated
// since they were last built. The spear is the only kind that grows, but the
// check is uniform.
func (g *Game) applyReachGrowth() {
	for _, c := range g.sess.Characters() {
		w := g.sess.WeaponOf(c)
		if w == nil {
			continue
		}
		applied := g.appliedReach[w.Body]
		if math.Abs(w.Reach-applied) < 1e-9 {
			continue
		}
		for _, shape := range g.world.BodyShapes(w.Body) {
			g.world.DestroyShape(shape)
		}
		g.buildWeaponFixture(w.Body, w.Kind, w.Reach)
		for _, shape := range g.world.BodyShapes(w.Body) {
			g.sess.ObserveShape(shape, c.Color)
		}
		g.appliedReach[w.Body] = w.Reach
	}
}

// mountTurrets attaches neutral turrets to the side walls, aimed inward.
func (g *Game) mountTurrets() {
	a := g.cfg.Arena
	for i := 0; i < g.cfg.Turrets.Count; i++ {
		x := turretHalf + 0.1
		if i%2 == 1 {
			x = a.Width - turretHalf - 0.1
		}
		y := a.Height * (0.55 + 0.25*float64(i/2))
		body := g.world.CreateBody(engine.BodyDef{
			Type:     engine.StaticBody,
			Position: engine.Vec2{X: x, Y: y},
		})
		g.world.CreateBoxShape(body, engine.ShapeDef{
			Category: session.CategoryTurret,
			Mask:     session.CategoryProjectile | session.CategoryCharacter | session.CategoryWeapon,
		}, turretHalf, turretHalf)
		t := g.sess.RegisterTurret(body, nil)
		// Stagger initial shots so mounted turrets don't volley in sync.
		t.NextFire = g.cfg.Turrets.FireInterval * float64(i+1) / float64(g.cfg.Turrets.Count+1)
	}
}

// launchProjectile spawns a projectile body at pos moving with vel, owned by
// owner for self-hit exclusion and passive attribution.
func (g *Game) launchProjectile(kind session.WeaponKind, owner engine.BodyID, pos, vel engine.Vec2, damage int, now float64) *session.Projectile {
	restitution := 0.2
	gravityScale := 1.0
	if kind == session.KindShuriken {
		restitution = 1.0
		gravityScale = 0.15 // shurikens fly nearly straight
	}
	body := g.world.CreateBody(engine.BodyDef{
		Type:           engine.DynamicBody,
		Position:       pos,
		LinearVelocity: vel,
		Bullet:         true,
		GravityScale:   gravityScale,
		EnableSleep:    false,
	})
	g.world.CreateCircleShape(body, engine.ShapeDef{
		Density:     0.4,
		Restitution: restitution,
		Category:    session.CategoryProjectile,
		Mask: session.CategoryWall | session.CategoryWeapon | session.CategorySkin |
			session.CategoryKillzone | session.CategoryTurret,
	}, engine.Vec2{}, projRadius)

	p := g.sess.RegisterProjectile(body, kind, owner, damage, now)
	if kind.AreaEffect() {
		// The fuse usually beats the lifetime ceiling.
		g.sess.ScheduleDestroy(body, now+g.sess.Tuning.GrenadeFuse)
	}
	return p
}

// SpawnAuxiliaries implements session.Spawner: summoner passives request
// clone fighters here. Clones are unarmed, share the owner's team, and fight
// with the same speed-scaling fists as any fighter.
func (g *Game) SpawnAuxiliaries(owner engine.BodyID, kind session.WeaponKind, count int) {
	oc := g.sess.Character(owner)
	if oc == nil || kind != session.KindSummoner {
		return
	}
	pos := g.world.Position(owner)
	for i := 0; i < count; i++ {
		side := 1.5 + float64(i)
		if i%2 == 1 {
			side = -side
		}
		spawn := engine.Vec2{X: pos.X + side, Y: pos.Y + 1.5}
		spawn.X = core.ClampF(spawn.X, 1, g.cfg.Arena.Width-1)
		clone := g.spawnFighter(oc.Name+" echo", session.KindUnarmed, oc.Team, spawn, oc.Color, cloneRadius)
		// Echoes are expendable: they start at a fraction of full health.
		clone.Health = g.sess.Tuning.StartHealth / 4
	}
}
