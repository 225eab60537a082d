package session

import (
	"testing"

	"github.com/kvistberg/arena2d/internal/core"
	"github.com/kvistberg/arena2d/internal/engine"
)

// arena is a minimal two-fighter setup for pipeline tests. Events are
// synthesized by hand, so most tests never need to step the solver.
type arena struct {
	world *engine.World
	s     *Session

	victim     *Character
	victimSkin engine.ShapeID

	attacker    *Character
	weapon      *Weapon
	weaponShape engine.ShapeID
}

func newArena(t *testing.T) *arena {
	t.Helper()
	world := engine.NewWorld(engine.Vec2{X: 0, Y: -10})
	s := New(world, DefaultTuning())

	a := &arena{world: world, s: s}

	victimBody := world.CreateBody(engine.BodyDef{Type: engine.DynamicBody, Position: engine.Vec2{X: 0, Y: 5}, EnableSleep: true})
	world.CreateCircleShape(victimBody, engine.ShapeDef{Density: 1, Category: CategoryCharacter}, engine.Vec2{}, 0.5)
	a.victimSkin = world.CreateCircleShape(victimBody, engine.ShapeDef{IsSensor: true, Category: CategorySkin}, engine.Vec2{}, 0.6)
	a.victim = s.RegisterCharacter(victimBody, "victim", 0, core.ColorRed)

	attackerBody := world.CreateBody(engine.BodyDef{Type: engine.DynamicBody, Position: engine.Vec2{X: 3, Y: 5}, EnableSleep: true})
	world.CreateCircleShape(attackerBody, engine.ShapeDef{Density: 1, Category: CategoryCharacter}, engine.Vec2{}, 0.5)
	a.attacker = s.RegisterCharacter(attackerBody, "attacker", 1, core.ColorBlue)

	weaponBody := world.CreateBody(engine.BodyDef{Type: engine.DynamicBody, Position: engine.Vec2{X: 3.8, Y: 5}, EnableSleep: true})
	a.weaponShape = world.CreateBoxShape(weaponBody, engine.ShapeDef{Density: 1, Category: CategoryWeapon}, 0.4, 0.1)
	joint := world.CreateRevoluteJoint(engine.RevoluteJointDef{
		BodyA: attackerBody, BodyB: weaponBody,
		Anchor:      engine.Vec2{X: 3, Y: 5},
		EnableMotor: true, MotorSpeed: 3, MaxMotorTorque: 50,
	})
	a.weapon = s.RegisterWeapon(weaponBody, a.attacker, KindSword, joint)

	return a
}

// beginEvents builds n simultaneous begin-touch events for the same pair.
func (a *arena) beginEvents(n int) *engine.StepEvents {
	ev := &engine.StepEvents{}
	for i := 0; i < n; i++ {
		ev.SensorBegin = append(ev.SensorBegin, engine.SensorEvent{Sensor: a.victimSkin, Visitor: a.weaponShape})
	}
	return ev
}

func (a *arena) endEvents(n int) *engine.StepEvents {
	ev := &engine.StepEvents{}
	for i := 0; i < n; i++ {
		ev.SensorEnd = append(ev.SensorEnd, engine.SensorEvent{Sensor: a.victimSkin, Visitor: a.weaponShape})
	}
	return ev
}

func TestOverlapCooldownIdempotence(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		a := newArena(t)
		a.weapon.Damage = 10
		start := a.victim.Health

		a.s.ProcessEvents(a.beginEvents(n), 1.0)

		if got := start - a.victim.Health; got != 10 {
			t.Errorf("n=%d: expected exactly one damage application (10), health dropped by %d", n, got)
		}
		if got := a.s.OverlapCount(a.victim.Body, a.weapon.Body); got != n {
			t.Errorf("n=%d: overlap counter = %d, want %d", n, got, n)
		}
	}
}

func TestRearmAfterFullSeparation(t *testing.T) {
	a := newArena(t)
	const n = 3

	a.s.ProcessEvents(a.beginEvents(n), 1.0)
	a.s.ProcessEvents(a.endEvents(n), 1.1)

	if got := a.s.OverlapCount(a.victim.Body, a.weapon.Body); got != 0 {
		t.Errorf("overlap counter after full separation = %d, want 0", got)
	}
	if _, ok := a.s.CooldownDeadline(a.victim.Body, a.weapon.Body); !ok {
		t.Error("cooldown entry must survive overlap erasure")
	}
}

func TestCooldownGate(t *testing.T) {
	a := newArena(t)
	a.weapon.Damage = 5
	start := a.victim.Health

	a.s.ProcessEvents(a.beginEvents(1), 1.0)
	a.s.ProcessEvents(a.endEvents(1), 1.05)
	if a.victim.Health != start-5 {
		t.Fatalf("first hit: health = %d, want %d", a.victim.Health, start-5)
	}

	// Re-approach strictly before the cooldown elapses: no damage.
	a.s.ProcessEvents(a.beginEvents(1), 1.2)
	a.s.ProcessEvents(a.endEvents(1), 1.25)
	if a.victim.Health != start-5 {
		t.Errorf("hit inside cooldown changed health to %d", a.victim.Health)
	}

	// At/after the deadline the same pair deals damage again.
	deadline, _ := a.s.CooldownDeadline(a.victim.Body, a.weapon.Body)
	dmg := a.weapon.Damage
	a.s.ProcessEvents(a.beginEvents(1), deadline)
	if a.victim.Health != start-5-dmg {
		t.Errorf("hit at deadline: health = %d, want %d", a.victim.Health, start-5-dmg)
	}
}

func TestStatusLedgerStacking(t *testing.T) {
	a := newArena(t)
	led := a.s.Bleed

	led.AddStacks(a.victim.Body, 3, 2.0)
	led.AddStacks(a.victim.Body, 2, 2.1)

	if got := led.Pending(a.victim.Body); got != 5 {
		t.Errorf("pending ticks = %d, want 5", got)
	}
	if anchor, _ := led.LastTick(a.victim.Body); anchor != 2.0 {
		t.Errorf("tick anchor = %v, want 2.0 (first application's timestamp)", anchor)
	}
}

func TestStatusLedgerCadence(t *testing.T) {
	a := newArena(t)
	led := a.s.Bleed
	interval := a.s.Tuning.BleedInterval
	start := a.victim.Health

	led.AddStacks(a.victim.Body, 2, 0)

	// Before the first interval elapses nothing ticks: a fresh application
	// is delayed by one full interval, never instant.
	led.Tick(interval/2, a.s)
	if a.victim.Health != start {
		t.Fatalf("tick fired early: health = %d", a.victim.Health)
	}

	led.Tick(interval, a.s)
	if a.victim.Health != start-a.s.Tuning.BleedTickDamage {
		t.Fatalf("first tick: health = %d, want %d", a.victim.Health, start-a.s.Tuning.BleedTickDamage)
	}
	led.Tick(2*interval, a.s)
	if got := led.Pending(a.victim.Body); got != 0 {
		t.Errorf("pending after both ticks = %d, want 0 (entry pruned)", got)
	}
}

func TestFreezeMonotonicity(t *testing.T) {
	a := newArena(t)
	const t0 = 10.0

	a.s.Freeze.Freeze(a.victim.Body, 0, 1.0, t0)
	a.s.Freeze.Freeze(a.victim.Body, 0, 0.5, t0+0.2)

	until, ok := a.s.Freeze.Until(a.victim.Body)
	if !ok {
		t.Fatal("no freeze record")
	}
	if until != t0+1.0 {
		t.Errorf("freeze end = %v, want %v (extend to the later deadline, never shorten)", until, t0+1.0)
	}
}

func TestFreezeRestoresSavedState(t *testing.T) {
	a := newArena(t)
	a.world.SetLinearVelocity(a.victim.Body, engine.Vec2{X: 4, Y: 0})

	a.s.Freeze.Freeze(a.victim.Body, 0, 0.5, 0)
	if v := a.world.LinearVelocity(a.victim.Body); v.Length() != 0 {
		t.Fatalf("frozen body still moving: %v", v)
	}

	a.s.Freeze.Expire(0.5)
	if v := a.world.LinearVelocity(a.victim.Body); v.X != 4 {
		t.Errorf("restored velocity = %v, want X=4", v)
	}
	if a.s.Freeze.Frozen(a.victim.Body) {
		t.Error("record should be gone after expiry")
	}
}

func TestFreezeRestoreClampsVelocity(t *testing.T) {
	a := newArena(t)
	max := a.s.Tuning.MaxRestoreSpeed
	a.world.SetLinearVelocity(a.victim.Body, engine.Vec2{X: max * 10, Y: 0})

	a.s.Freeze.Freeze(a.victim.Body, 0, 0.5, 0)
	a.s.Freeze.Expire(0.5)

	if v := a.world.LinearVelocity(a.victim.Body).Length(); v > max+1e-9 {
		t.Errorf("restored speed %v exceeds clamp %v", v, max)
	}
}

func TestFreezeRestoreHonorsLiveTuning(t *testing.T) {
	a := newArena(t)
	a.world.SetLinearVelocity(a.victim.Body, engine.Vec2{X: 25, Y: 0})
	a.s.Freeze.Freeze(a.victim.Body, 0, 0.5, 0)

	// Lower the cap mid-freeze, as the live tuning panel does. The restore
	// must honor the current value, not the one at session construction.
	a.s.Tuning.MaxRestoreSpeed = 5
	a.s.Freeze.Expire(0.5)

	if v := a.world.LinearVelocity(a.victim.Body).Length(); v > 5+1e-9 {
		t.Errorf("restored speed %v exceeds the tweaked cap 5", v)
	}
}

func TestPurgeTotality(t *testing.T) {
	a := newArena(t)

	// Seed every table with references to the victim.
	a.s.Bleed.AddStacks(a.victim.Body, 3, 0)
	a.s.Poison.AddStacks(a.victim.Body, 3, 0)
	a.s.Freeze.Freeze(a.victim.Body, 0, 10, 0)
	a.s.ProcessEvents(a.beginEvents(2), 1.0)
	skin := a.victimSkin
	body := a.victim.Body

	a.s.PurgeBody(body)

	if a.s.Character(body) != nil {
		t.Error("character table retains purged body")
	}
	if _, ok := a.s.LookupCharacterForShape(skin); ok {
		t.Error("shape->character table retains purged body")
	}
	if a.s.Bleed.Pending(body) != 0 || a.s.Poison.Pending(body) != 0 {
		t.Error("status ledgers retain purged body")
	}
	if a.s.Freeze.Frozen(body) {
		t.Error("freeze table retains purged body")
	}
	if got := a.s.OverlapCount(body, a.weapon.Body); got != 0 {
		t.Errorf("overlap table retains purged body (count %d)", got)
	}
	if _, ok := a.s.CooldownDeadline(body, a.weapon.Body); ok {
		t.Error("cooldown table retains purged body")
	}
	if a.world.IsValidBody(body) {
		t.Error("physics body survived purge")
	}
}

func TestDeferredDeathOrdering(t *testing.T) {
	a := newArena(t)
	a.weapon.Damage = a.victim.Health // lethal in one hit

	a.s.ProcessEvents(a.beginEvents(1), 1.0)

	if a.victim.Health != 0 {
		t.Fatalf("health = %d, want 0", a.victim.Health)
	}
	// Still alive in data until the deferred-death phase.
	if a.s.Character(a.victim.Body) == nil {
		t.Fatal("victim destroyed inline; must defer to end of step")
	}
	// A second lethal event in the same phase must be a no-op, not a crash.
	a.s.ProcessEvents(a.endEvents(1), 1.0)
	a.s.ProcessEvents(a.beginEvents(1), 1.0)

	a.s.FlushDeaths(1.0)
	if a.s.Character(a.victim.Body) != nil {
		t.Error("victim not purged by deferred-death phase")
	}
	if a.world.IsValidBody(a.victim.Body) {
		t.Error("victim body not destroyed")
	}
	if len(a.s.PendingDeaths()) != 0 {
		t.Error("pending-death queue not drained")
	}
}

func TestDeathCascadesToWeapon(t *testing.T) {
	a := newArena(t)
	// Kill the attacker; its weapon must be destroyed synchronously in
	// the same purge, and the joint with it.
	a.attacker.Health = 0
	a.s.EnqueueDeath(a.attacker.Body)
	weaponBody := a.weapon.Body
	joint := a.weapon.Joint

	a.s.FlushDeaths(1.0)

	if a.s.WeaponByBody(weaponBody) != nil {
		t.Error("weapon table retains dead owner's weapon")
	}
	if a.world.IsValidBody(weaponBody) {
		t.Error("weapon body survived owner death")
	}
	if a.world.IsValidJoint(joint) {
		t.Error("weapon joint survived owner death")
	}
}

func TestScenarioSingleStrike(t *testing.T) {
	a := newArena(t)
	a.weapon.Damage = 15

	a.s.ProcessEvents(a.beginEvents(1), 2.5)

	if a.victim.Health != 85 {
		t.Errorf("health = %d, want 85", a.victim.Health)
	}
	if a.victim.LastHit != 2.5 {
		t.Errorf("blink timestamp = %v, want 2.5", a.victim.LastHit)
	}
	if !a.s.Freeze.Frozen(a.victim.Body) {
		t.Error("victim not frozen after strike")
	}
}

func TestScenarioBleedStacks(t *testing.T) {
	a := newArena(t)
	// Swap the sword for a saw with stack-count 1.
	a.weapon.Kind = KindSaw
	a.weapon.Stacks = 1
	a.weapon.Damage = 1
	interval := a.s.Tuning.BleedInterval

	now := 1.0
	for i := 0; i < 3; i++ {
		a.s.ProcessEvents(a.beginEvents(1), now)
		a.s.ProcessEvents(a.endEvents(1), now+0.01)
		now += a.s.Tuning.BaseCooldown + 0.01
	}

	// Stacks grow by one per hit: 1 + 2 + 3.
	if got := a.s.Bleed.Pending(a.victim.Body); got != 6 {
		t.Fatalf("pending bleed ticks = %d, want 6", got)
	}

	healthBefore := a.victim.Health
	anchor, _ := a.s.Bleed.LastTick(a.victim.Body)
	for i := 1; i <= 3; i++ {
		a.s.Bleed.Tick(anchor+float64(i)*interval, a.s)
	}
	if got := healthBefore - a.victim.Health; got != 3*a.s.Tuning.BleedTickDamage {
		t.Errorf("3 intervals dealt %d, want %d", got, 3*a.s.Tuning.BleedTickDamage)
	}
}

func TestUnarmedSpeedRatchetOncePerStep(t *testing.T) {
	a := newArena(t)
	c := a.victim // use the victim as the unarmed fighter
	if c.Weapon != 0 {
		t.Fatal("fixture error: victim should be unarmed")
	}

	floor := c.MinSpeed
	s := a.s
	s.ratchetUnarmed(c.Body)
	s.ratchetUnarmed(c.Body) // same step: must not ratchet twice
	if c.MinSpeed != floor+s.Tuning.UnarmedRatchetStep {
		t.Errorf("min speed = %v, want single ratchet to %v", c.MinSpeed, floor+s.Tuning.UnarmedRatchetStep)
	}

	a.world.Step(1.0/60, 8, 3) // advance the step counter
	s.ratchetUnarmed(c.Body)
	if c.MinSpeed != floor+2*s.Tuning.UnarmedRatchetStep {
		t.Errorf("min speed after new step = %v, want %v", c.MinSpeed, floor+2*s.Tuning.UnarmedRatchetStep)
	}
}

func TestDaggerCooldownShrinksOnFirstHit(t *testing.T) {
	a := newArena(t)
	a.weapon.Kind = KindDagger
	base := a.weapon.Cooldown

	// The world has never stepped: a hit confirmed on step 0 must still
	// shrink the cooldown.
	a.s.ProcessEvents(a.beginEvents(1), 1.0)
	want := base * a.s.Tuning.DaggerCooldownShrink
	if a.weapon.Cooldown != want {
		t.Fatalf("cooldown after first hit = %v, want %v", a.weapon.Cooldown, want)
	}

	// A second hit in the same step raises damage but not the shrink.
	a.s.ProcessEvents(a.endEvents(1), 1.0)
	deadline, _ := a.s.CooldownDeadline(a.victim.Body, a.weapon.Body)
	a.s.ProcessEvents(a.beginEvents(1), deadline)
	if a.weapon.Cooldown != want {
		t.Errorf("cooldown shrank twice within one step: %v", a.weapon.Cooldown)
	}

	a.world.Step(1.0/60, 8, 3)
	a.s.ProcessEvents(a.endEvents(1), deadline+0.01)
	deadline2, _ := a.s.CooldownDeadline(a.victim.Body, a.weapon.Body)
	a.s.ProcessEvents(a.beginEvents(1), deadline2)
	if a.weapon.Cooldown != want*a.s.Tuning.DaggerCooldownShrink {
		t.Errorf("cooldown after a new step = %v, want %v", a.weapon.Cooldown, want*a.s.Tuning.DaggerCooldownShrink)
	}
}

func TestScheduleDestroyKeepsEarliest(t *testing.T) {
	a := newArena(t)
	body := a.world.CreateBody(engine.BodyDef{Type: engine.DynamicBody, Position: engine.Vec2{X: 9, Y: 9}})
	a.world.CreateCircleShape(body, engine.ShapeDef{Density: 1, Category: CategoryProjectile}, engine.Vec2{}, 0.1)
	a.s.RegisterProjectile(body, KindShuriken, a.attacker.Body, 3, 0)

	a.s.ScheduleDestroy(body, 2.0)
	a.s.ScheduleDestroy(body, 5.0) // later: ignored
	if when, _ := a.s.PendingDestroyAt(body); when != 2.0 {
		t.Errorf("deadline = %v, want 2.0", when)
	}
	a.s.ScheduleDestroy(body, 1.0) // earlier: wins
	if when, _ := a.s.PendingDestroyAt(body); when != 1.0 {
		t.Errorf("deadline = %v, want 1.0", when)
	}
}

func TestScenarioRicochetBudget(t *testing.T) {
	a := newArena(t)

	wallBody := a.world.CreateBody(engine.BodyDef{Type: engine.StaticBody, Position: engine.Vec2{X: -5, Y: 0}})
	wallShape := a.world.CreateBoxShape(wallBody, engine.ShapeDef{Category: CategoryWall}, 0.5, 10)

	projBody := a.world.CreateBody(engine.BodyDef{Type: engine.DynamicBody, Position: engine.Vec2{X: -4, Y: 5}, Bullet: true})
	projShape := a.world.CreateCircleShape(projBody, engine.ShapeDef{Density: 1, Category: CategoryProjectile}, engine.Vec2{}, 0.1)
	p := a.s.RegisterProjectile(projBody, KindShuriken, a.attacker.Body, 3, 0)
	p.Rebounds = 1

	// First impact: wall. Budget drops to 0, projectile survives.
	wallEv := &engine.StepEvents{ContactBegin: []engine.ContactEvent{{ShapeA: projShape, ShapeB: wallShape}}}
	a.s.ProcessContacts(wallEv, 1.0)
	a.s.SweepProjectiles(1.0)
	if a.s.Projectile(projBody) == nil {
		t.Fatal("projectile destroyed on first (non-exhausting) impact")
	}

	// Second impact: a character. Budget is exhausted, projectile dies.
	hitEv := &engine.StepEvents{SensorBegin: []engine.SensorEvent{{Sensor: a.victimSkin, Visitor: projShape}}}
	a.s.ProcessEvents(hitEv, 1.1)
	a.s.SweepProjectiles(1.1)
	if a.s.Projectile(projBody) != nil {
		t.Error("projectile survived budget-exhausting impact")
	}
	if a.world.IsValidBody(projBody) {
		t.Error("projectile body not destroyed")
	}
}

func TestSelfHitsSkipped(t *testing.T) {
	a := newArena(t)
	// The attacker's weapon overlapping the attacker's own skin is not a hit.
	attackerSkin := a.world.CreateCircleShape(a.attacker.Body, engine.ShapeDef{IsSensor: true, Category: CategorySkin}, engine.Vec2{}, 0.6)
	a.s.shapeOwner[attackerSkin] = a.attacker.Body
	start := a.attacker.Health

	ev := &engine.StepEvents{SensorBegin: []engine.SensorEvent{{Sensor: attackerSkin, Visitor: a.weaponShape}}}
	a.s.ProcessEvents(ev, 1.0)

	if a.attacker.Health != start {
		t.Errorf("self-hit changed health to %d", a.attacker.Health)
	}
	if got := a.s.OverlapCount(a.attacker.Body, a.weapon.Body); got != 0 {
		t.Errorf("self-hit created overlap entry (count %d)", got)
	}
}

func TestZeroHealthVictimTakesNoDamage(t *testing.T) {
	a := newArena(t)
	a.victim.Health = 0
	a.weapon.Damage = 10

	a.s.ProcessEvents(a.beginEvents(1), 1.0)

	if a.victim.Health != 0 {
		t.Errorf("health = %d, want 0", a.victim.Health)
	}
	// No side effects fire on an unchanged victim.
	if a.s.Freeze.Frozen(a.victim.Body) {
		t.Error("freeze applied to already-dead victim")
	}
}
