// Package brawl implements Weapon Brawl: an autonomous VS match between a
// roster of fighters, each carrying a weapon whose damage escalates as it
// lands hits. The player watches, tweaks the live tuning values, and the
// last team standing wins.
package brawl

import (
	"fmt"

	"github.com/kvistberg/arena2d/internal/config"
	"github.com/kvistberg/arena2d/internal/core"
	"github.com/kvistberg/arena2d/internal/engine"
	"github.com/kvistberg/arena2d/internal/registry"
	"github.com/kvistberg/arena2d/internal/session"
)

// Game state constants
const (
	StatePlaying  = "playing"
	StatePaused   = "paused"
	StateGameOver = "gameover"
)

// Physics iteration counts per step.
const (
	velocityIterations = 8
	positionIterations = 3
)

// Fighter drive constants. Movement is simple seek-the-nearest-enemy
// steering; the interesting behavior lives in the weapons.
const (
	seekSpeed     = 6.0  // target horizontal speed, m/s
	steerGain     = 0.3  // fraction of the velocity error corrected per step
	hopImpulse    = 5.0  // upward impulse when the target is above
	weaponSpin    = 6.0  // rad/s motor speed for orbiting weapons
	weaponTorque  = 60.0 // max motor torque
	shurikenSpeed = 16.0
	grenadeSpeed  = 11.0
	grenadeLoft   = 5.0 // extra upward velocity on grenade lobs
	shurikenEvery = 0.9 // seconds between shuriken throws
	grenadeEvery  = 1.8 // seconds between grenade lobs
)

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// Game implements the Weapon Brawl game.
type Game struct {
	world *engine.World
	sess  *session.Session

	// Sounds is handed to the session on reset; nil keeps the match silent.
	Sounds session.SoundPlayer

	state     string
	tick      int64
	dt        float64
	winner    string
	winHealth int

	// Per-weapon autonomous fire deadlines, keyed by weapon body.
	nextFire map[engine.BodyID]float64

	// appliedReach tracks the orbit radius last built into each weapon's
	// fixture, so spear growth rebuilds geometry only when it changed.
	appliedReach map[engine.BodyID]float64

	// Live tuning panel.
	panel     []tweak
	panelIdx  int
	panelOpen bool

	runtime core.RuntimeConfig
	cfg     config.BrawlConfig

	// Static arena geometry, kept for rendering.
	killzone engine.BodyID
	walls    []engine.BodyID
}

// New creates a new Weapon Brawl game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "brawl"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Weapon Brawl"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadBrawl(configPath)
	if err != nil {
		cfg = config.DefaultBrawlConfig()
	}
	g.cfg = cfg

	tickRate := runtime.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	g.dt = 1.0 / float64(tickRate)
	g.tick = 0
	g.state = StatePlaying
	g.winner = ""
	g.winHealth = 0
	g.nextFire = make(map[engine.BodyID]float64)
	g.appliedReach = make(map[engine.BodyID]float64)
	g.walls = nil

	g.world = engine.NewWorld(engine.Vec2{Y: cfg.Arena.Gravity})
	g.sess = session.New(g.world, cfg.Tuning)
	g.sess.Sounds = g.Sounds
	g.sess.Spawner = g

	g.buildArena()
	g.spawnRoster()
	if cfg.Turrets.Enabled {
		g.mountTurrets()
	}

	g.buildPanel()
}

// now returns the simulation clock in seconds.
func (g *Game) now() float64 {
	return float64(g.tick) * g.dt
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) && g.state == StateGameOver {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		if g.state == StatePaused {
			g.state = StatePlaying
		} else if g.state == StatePlaying {
			g.state = StatePaused
		}
	}

	if in.Has(core.ActionConfirm) {
		g.panelOpen = !g.panelOpen
	}
	if g.panelOpen {
		g.updatePanel(in)
	}

	if g.state != StatePlaying {
		return core.StepResult{State: g.State()}
	}

	now := g.now()

	// Resolve the sensor events the previous physics step produced, then
	// hold frozen bodies still before anything can re-accelerate them.
	g.sess.UpdateUnarmedDamage()
	g.sess.ProcessEvents(g.world.Events(), now)
	g.sess.Freeze.Enforce(now)

	g.driveFighters(now)
	g.fireWeapons(now)
	g.driveTurrets(now)
	g.applyReachGrowth()

	g.world.Step(g.dt, velocityIterations, positionIterations)

	g.sess.ProcessContacts(g.world.Events(), now)
	g.sess.EndStep(now)

	g.tick++
	g.checkWinner()

	return core.StepResult{State: g.State()}
}

// checkWinner ends the match when at most one team has a living fighter.
func (g *Game) checkWinner() {
	alive := make(map[int][]*session.Character)
	for _, c := range g.sess.Characters() {
		if c.Health > 0 {
			alive[c.Team] = append(alive[c.Team], c)
		}
	}
	if len(alive) > 1 {
		return
	}

	g.state = StateGameOver
	g.winner = "Nobody"
	for _, team := range alive {
		g.winner = team[0].Name
		for _, c := range team {
			g.winHealth += c.Health
		}
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.winHealth,
		GameOver: g.state == StateGameOver,
		Paused:   g.state == StatePaused,
		Winner:   g.winner,
	}
}

// tweak is one live-adjustable tuning value.
type tweak struct {
	name string
	step float64
	get  func() float64
	set  func(float64)
}

// buildPanel wires the tuning values that are safe to change mid-match.
func (g *Game) buildPanel() {
	t := &g.sess.Tuning
	g.panel = []tweak{
		{"victim freeze", 0.05,
			func() float64 { return t.VictimFreeze },
			func(v float64) { t.VictimFreeze = core.ClampF(v, 0, 2) }},
		{"attacker freeze", 0.05,
			func() float64 { return t.AttackerFreeze },
			func(v float64) { t.AttackerFreeze = core.ClampF(v, 0, 2) }},
		{"hit cooldown", 0.05,
			func() float64 { return t.BaseCooldown },
			func(v float64) { t.BaseCooldown = core.ClampF(v, 0.05, 3) }},
		{"mace factor", 0.1,
			func() float64 { return t.MaceFactor },
			func(v float64) { t.MaceFactor = core.ClampF(v, 1, 3) }},
		{"unarmed scale", 0.1,
			func() float64 { return t.UnarmedSpeedScale },
			func(v float64) { t.UnarmedSpeedScale = core.ClampF(v, 0.1, 3) }},
		{"blast radius", 0.25,
			func() float64 { return t.BlastRadius },
			func(v float64) { t.BlastRadius = core.ClampF(v, 0.5, 8) }},
		{"blast impulse", 0.5,
			func() float64 { return t.BlastImpulse },
			func(v float64) { t.BlastImpulse = core.ClampF(v, 0, 30) }},
		{"restore speed cap", 1,
			func() float64 { return t.MaxRestoreSpeed },
			func(v float64) { t.MaxRestoreSpeed = core.ClampF(v, 1, 100) }},
	}
	g.panelIdx = 0
}

// updatePanel handles panel navigation and value adjustment.
func (g *Game) updatePanel(in core.InputFrame) {
	if len(g.panel) == 0 {
		return
	}
	if in.Has(core.ActionUp) && g.panelIdx > 0 {
		g.panelIdx--
	}
	if in.Has(core.ActionDown) && g.panelIdx < len(g.panel)-1 {
		g.panelIdx++
	}
	cur := g.panel[g.panelIdx]
	if in.Has(core.ActionLeft) {
		cur.set(cur.get() - cur.step)
	}
	if in.Has(core.ActionRight) {
		cur.set(cur.get() + cur.step)
	}
}

// panelLine formats one panel row for rendering.
func (g *Game) panelLine(i int) string {
	t := g.panel[i]
	marker := "  "
	if i == g.panelIdx {
		marker = "> "
	}
	return fmt.Sprintf("%s%-18s %6.2f", marker, t.name, t.get())
}

// Register the game with the registry
func init() {
	registry.Register("brawl", func() registry.Game {
		return New()
	})
}
