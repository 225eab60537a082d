// Package blockbreak implements Blockbreak: a brick-breaking VS minigame
// built on the shared physics session. Bricks are combatants with health,
// the ball is a ricochet projectile owned by the paddle, and brick damage
// flows through the same hit pipeline the brawl uses.
package blockbreak

import (
	"github.com/kvistberg/arena2d/internal/config"
	"github.com/kvistberg/arena2d/internal/core"
	"github.com/kvistberg/arena2d/internal/engine"
	"github.com/kvistberg/arena2d/internal/registry"
	"github.com/kvistberg/arena2d/internal/session"
)

// Game state constants
const (
	StateServe    = "serve"
	StatePlaying  = "playing"
	StatePaused   = "paused"
	StateGameOver = "gameover"
	StateWin      = "win"
)

// Physics iteration counts per step.
const (
	velocityIterations = 8
	positionIterations = 3
)

const (
	arenaHeight  = 16.0 // meters; width derives from the brick layout
	ballRadius   = 0.25
	paddleY      = 1.2  // paddle center height above the floor
	brickTopGap  = 1.5  // space between ceiling and first brick row
	maxSteer     = 0.7  // horizontal velocity fraction imparted by paddle english
	serveDelayTk = 60   // ticks before the next serve is accepted
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	switch preset {
	case "easy":
		difficultyPreset = config.DifficultyEasy
	case "normal":
		difficultyPreset = config.DifficultyNormal
	case "hard":
		difficultyPreset = config.DifficultyHard
	case "fixed":
		difficultyPreset = config.DifficultyFixed
	default:
		difficultyPreset = ""
	}
}

// Game implements the Blockbreak game.
type Game struct {
	world *engine.World
	sess  *session.Session

	// Sounds is handed to the session on reset; nil keeps the game silent.
	Sounds session.SoundPlayer

	state      string
	score      int
	lives      int
	tick       int64
	dt         float64
	serveDelay int

	arenaW float64

	paddle      engine.BodyID
	paddleWidth float64
	ball        engine.BodyID
	ballStuck   bool

	bricksAlive int

	runtime    core.RuntimeConfig
	cfg        config.BlockbreakConfig
	difficulty *config.DifficultyManager
}

// New creates a new Blockbreak game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "blockbreak"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Blockbreak"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadBlockbreak(configPath)
	if err != nil {
		cfg = config.DefaultBlockbreakConfig()
	}
	if difficultyPreset != "" {
		config.ApplyBlockbreakPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	tickRate := runtime.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	g.dt = 1.0 / float64(tickRate)
	g.tick = 0
	g.score = 0
	g.lives = cfg.Gameplay.Lives
	g.serveDelay = 0
	g.arenaW = float64(cfg.Layout.Cols)*cfg.Layout.BrickW + 2

	// No gravity: the ball keeps whatever speed physics gives it and the
	// game renormalizes it every step.
	g.world = engine.NewWorld(engine.Vec2{})

	tuning := session.DefaultTuning()
	// The ball is a ricochet projectile that must outlive any fuse or
	// rebound budget a combat session would impose.
	tuning.ProjectileLifetime = 1e9
	tuning.ShurikenRebounds = 1 << 30
	// Bricks take one damage per touch; health is the brick's hit count.
	tuning.StartHealth = cfg.Gameplay.BrickHealth
	// Freezing a static brick is harmless but pointless.
	tuning.VictimFreeze = 0
	tuning.AttackerFreeze = 0
	g.sess = session.New(g.world, tuning)
	g.sess.Sounds = g.Sounds

	g.buildField()
	g.spawnBricks()
	g.spawnPaddle()
	g.placeBallOnPaddle()
	g.state = StateServe
}

// now returns the simulation clock in seconds.
func (g *Game) now() float64 {
	return float64(g.tick) * g.dt
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) && (g.state == StateGameOver || g.state == StateWin) {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		if g.state == StatePaused {
			g.state = StatePlaying
		} else if g.state == StatePlaying || g.state == StateServe {
			g.state = StatePaused
		}
	}

	if g.state == StatePaused || g.state == StateGameOver || g.state == StateWin {
		return core.StepResult{State: g.State()}
	}

	if g.serveDelay > 0 {
		g.serveDelay--
	}

	now := g.now()

	g.sess.ProcessEvents(g.world.Events(), now)

	g.movePaddle(in)

	if g.state == StateServe {
		if g.serveDelay <= 0 && (in.Has(core.ActionFire) || in.Has(core.ActionUp)) {
			g.launchBall()
		}
	} else {
		g.steerAndNormalizeBall()
	}

	g.world.Step(g.dt, velocityIterations, positionIterations)

	// Re-glue after the paddle's kinematic move so the ball tracks it
	// exactly.
	g.holdBallOnPaddle()

	g.sess.ProcessContacts(g.world.Events(), now)

	before := g.countBricks()
	g.sess.EndStep(now)
	after := g.countBricks()
	if after < before {
		g.score += (before - after) * g.cfg.Gameplay.BrickPoints
	}
	g.bricksAlive = after
	if after == 0 && g.state == StatePlaying {
		g.state = StateWin
	}

	// A purged ball means the killzone swallowed it.
	if g.state == StatePlaying && g.sess.Projectile(g.ball) == nil {
		g.handleMiss()
	}

	g.tick++
	return core.StepResult{State: g.State()}
}

// countBricks returns the number of living brick combatants. The paddle is
// registered too and never dies, so it is excluded.
func (g *Game) countBricks() int {
	n := 0
	for _, c := range g.sess.Characters() {
		if c.Body != g.paddle && c.Health > 0 {
			n++
		}
	}
	return n
}

// handleMiss loses a life and re-serves, or ends the game.
func (g *Game) handleMiss() {
	g.lives--
	if g.lives <= 0 {
		g.state = StateGameOver
		return
	}
	g.rebuildPaddle()
	g.placeBallOnPaddle()
	g.state = StateServe
	g.serveDelay = serveDelayTk
}

// ballSpeed is the difficulty-scaled target speed for the ball.
func (g *Game) ballSpeed() float64 {
	base := g.cfg.Physics.BallSpeed
	n := g.cfg.Gameplay.SpeedUpEveryN
	if n > 0 {
		broken := g.score / core.Max(g.cfg.Gameplay.BrickPoints, 1)
		base += float64(broken/n) * g.cfg.Gameplay.SpeedUpAmount
	}
	speed := g.difficulty.BallSpeed(base, g.score, int(g.tick))
	return core.ClampF(speed, 1, g.cfg.Physics.MaxBallSpeed)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.state == StateGameOver || g.state == StateWin,
		Paused:   g.state == StatePaused,
	}
}

// Register the game with the registry
func init() {
	registry.Register("blockbreak", func() registry.Game {
		return New()
	})
}
