package bench

import (
	"fmt"
	"time"

	"github.com/kvistberg/arena2d/internal/config"
	"github.com/kvistberg/arena2d/internal/core"
	"github.com/kvistberg/arena2d/internal/engine"
	"github.com/kvistberg/arena2d/internal/registry"
)

// Game state constants
const (
	StateRunning = "running"
	StatePaused  = "paused"
	StateDone    = "done"
)

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// Game runs the benchmark suite one physics step per tick so the scenes
// can be watched from the menu. The headless Run path in bench.go is what
// the CLI uses for timing.
type Game struct {
	world *engine.World
	st    *sceneState

	scenes  []scene
	idx     int
	step    int
	started time.Time
	results []Result
	state   string
	runtime core.RuntimeConfig
	cfg     config.BenchConfig
}

// New creates a new benchmark game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "bench"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Physics Bench"
}

// Reset initializes or restarts the suite.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadBench(configPath)
	if err != nil {
		cfg = config.DefaultBenchConfig()
	}
	g.cfg = cfg

	g.scenes = Scenes()
	g.idx = 0
	g.results = nil
	g.state = StateRunning
	g.startScene()
}

func (g *Game) startScene() {
	s := g.scenes[g.idx]
	g.world = engine.NewWorld(engine.Vec2{Y: -10})
	g.st = s.build(g.world, g.cfg)
	g.step = 0
	g.started = time.Now()
}

// Step advances the current scene by one physics step.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) {
		if g.state == StatePaused {
			g.state = StateRunning
		} else if g.state == StateRunning {
			g.state = StatePaused
		}
	}
	if g.state != StateRunning {
		return core.StepResult{State: g.State()}
	}

	s := g.scenes[g.idx]
	if s.tick != nil {
		s.tick(g.world, g.st, g.step)
	}
	g.world.Step(stepDT, velocityIterations, positionIterations)
	g.step++

	if g.step >= g.cfg.Steps {
		g.finishScene(s)
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) finishScene(s scene) {
	notes := ""
	if s.report != nil {
		notes = s.report(g.world, g.st)
	}
	g.results = append(g.results, Result{
		Scene:   s.name,
		Steps:   g.step,
		Bodies:  g.world.BodyCount(),
		Elapsed: time.Since(g.started),
		Notes:   notes,
	})
	g.idx++
	if g.idx >= len(g.scenes) {
		g.state = StateDone
		return
	}
	g.startScene()
}

// Results returns the completed scene results so far.
func (g *Game) Results() []Result {
	return g.results
}

// State returns the current game state. Score counts completed scenes.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    len(g.results),
		GameOver: g.state == StateDone,
		Paused:   g.state == StatePaused,
	}
}

// Render draws the live scene viewport and the results table.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.state == StateDone {
		g.renderResults(dst)
		return
	}

	s := g.scenes[g.idx]
	dst.DrawText(1, 0, fmt.Sprintf("bench %d/%d: %s", g.idx+1, len(g.scenes), s.name))
	bar := fmt.Sprintf("step %d/%d  bodies %d  contacts %d",
		g.step, g.cfg.Steps, g.world.BodyCount(), g.world.ContactCount())
	dst.DrawText(dst.Width()-len(bar)-1, 0, bar)
	dst.DrawHLine(0, 1, dst.Width(), '─')

	g.renderBodies(dst, 2)

	if g.state == StatePaused {
		dst.DrawTextCentered(dst.Height()/2, "PAUSED")
	}
}

// renderBodies projects every tracked body into the viewport below the HUD.
func (g *Game) renderBodies(dst *core.Screen, top int) {
	w := dst.Width()
	h := dst.Height() - top
	if w < 4 || h < 4 {
		return
	}
	// Fixed 100x60 meter window centered on the origin covers every scene.
	for _, b := range g.st.bodies {
		pos := g.world.Position(b)
		x := int((pos.X + 50) / 100 * float64(w))
		y := top + h - 1 - int((pos.Y+20)/60*float64(h))
		glyph := '•'
		color := core.ColorWhite
		if !g.world.IsAwake(b) {
			glyph = '·'
			color = core.ColorGray
		}
		dst.SetColored(x, y, glyph, color)
	}
}

// renderResults draws the final results table.
func (g *Game) renderResults(dst *core.Screen) {
	dst.DrawTextCentered(1, "BENCHMARK RESULTS")
	dst.DrawHLine(0, 2, dst.Width(), '─')
	row := 4
	for _, r := range g.results {
		line := fmt.Sprintf("%-14s %6d steps  %5d bodies  %8.0f steps/s  %s",
			r.Scene, r.Steps, r.Bodies, r.StepsPerSecond(), r.Notes)
		dst.DrawText(2, row, line)
		row += 2
	}
	dst.DrawTextCentered(row+1, "Press R to rerun")
}

// Register the game with the registry
func init() {
	registry.Register("bench", func() registry.Game {
		return New()
	})
}
