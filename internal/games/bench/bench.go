// Package bench implements the physics benchmark scenes: deterministic
// worlds that stress a particular engine subsystem and report throughput
// and query statistics. The scenes run headless from the CLI or as a
// watchable game from the menu.
package bench

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/kvistberg/arena2d/internal/config"
	"github.com/kvistberg/arena2d/internal/engine"
)

// stepDT is the fixed benchmark timestep.
const stepDT = 1.0 / 60

// Physics iteration counts per step.
const (
	velocityIterations = 8
	positionIterations = 3
)

// Result is one scene's outcome.
type Result struct {
	Scene   string
	Steps   int
	Bodies  int
	Elapsed time.Duration
	Notes   string
}

// StepsPerSecond reports simulation throughput.
func (r Result) StepsPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Steps) / r.Elapsed.Seconds()
}

// scene is one benchmark: build populates a fresh world, tick optionally
// runs per-step work (queries), and report summarizes scene-specific state.
type scene struct {
	name   string
	build  func(w *engine.World, cfg config.BenchConfig) *sceneState
	tick   func(w *engine.World, st *sceneState, step int)
	report func(w *engine.World, st *sceneState) string
}

// sceneState carries scene-local handles and accumulators between phases.
type sceneState struct {
	bodies  []engine.BodyID
	joints  []engine.JointID
	rng     *rand.Rand
	rays    int
	visited int
	hits    int
}

// Scenes returns the benchmark suite in run order.
func Scenes() []scene {
	return []scene{
		{name: "pyramid", build: buildPyramid, report: reportSleep},
		{name: "joint-grid", build: buildJointGrid, report: reportJoints},
		{name: "raycast-storm", build: buildRaycastField, tick: tickRaycasts, report: reportRays},
		{name: "sleep-stress", build: buildSleepStress, tick: tickSleepToggle, report: reportSleep},
	}
}

// SceneNames lists the suite for CLI help.
func SceneNames() []string {
	var names []string
	for _, s := range Scenes() {
		names = append(names, s.name)
	}
	return names
}

// Run executes every scene (or just the named one, if name is non-empty)
// and returns the results.
func Run(cfg config.BenchConfig, name string) []Result {
	var results []Result
	for _, s := range Scenes() {
		if name != "" && s.name != name {
			continue
		}
		results = append(results, runScene(s, cfg))
	}
	return results
}

func runScene(s scene, cfg config.BenchConfig) Result {
	w := engine.NewWorld(engine.Vec2{Y: -10})
	st := s.build(w, cfg)

	start := time.Now()
	for i := 0; i < cfg.Steps; i++ {
		if s.tick != nil {
			s.tick(w, st, i)
		}
		w.Step(stepDT, velocityIterations, positionIterations)
	}
	elapsed := time.Since(start)

	notes := ""
	if s.report != nil {
		notes = s.report(w, st)
	}
	return Result{
		Scene:   s.name,
		Steps:   cfg.Steps,
		Bodies:  w.BodyCount(),
		Elapsed: elapsed,
		Notes:   notes,
	}
}

// ground creates a wide static floor.
func ground(w *engine.World) {
	body := w.CreateBody(engine.BodyDef{Type: engine.StaticBody, Position: engine.Vec2{Y: -1}})
	w.CreateBoxShape(body, engine.ShapeDef{Friction: 0.6}, 200, 1)
}

// buildPyramid stacks boxes in a classic pyramid; the solver grinds on the
// persistent contact islands.
func buildPyramid(w *engine.World, cfg config.BenchConfig) *sceneState {
	ground(w)
	st := &sceneState{}

	const half = 0.5
	h := cfg.PyramidHeight
	for row := 0; row < h; row++ {
		count := h - row
		y := half + float64(row)*half*2
		x0 := -float64(count-1) * half
		for i := 0; i < count; i++ {
			body := w.CreateBody(engine.BodyDef{
				Type:        engine.DynamicBody,
				Position:    engine.Vec2{X: x0 + float64(i)*half*2, Y: y},
				EnableSleep: true,
			})
			w.CreateBoxShape(body, engine.ShapeDef{Density: 1, Friction: 0.6}, half*0.98, half*0.98)
			st.bodies = append(st.bodies, body)
		}
	}
	return st
}

// buildJointGrid hangs a grid of bodies from static anchors, connected by
// revolute joints; stresses the joint solver.
func buildJointGrid(w *engine.World, cfg config.BenchConfig) *sceneState {
	st := &sceneState{}
	n := cfg.GridSize
	spacing := 1.0

	grid := make([][]engine.BodyID, n)
	for row := 0; row < n; row++ {
		grid[row] = make([]engine.BodyID, n)
		for col := 0; col < n; col++ {
			typ := engine.DynamicBody
			if row == 0 {
				typ = engine.StaticBody // top row anchors the sheet
			}
			pos := engine.Vec2{X: float64(col) * spacing, Y: 20 - float64(row)*spacing}
			body := w.CreateBody(engine.BodyDef{Type: typ, Position: pos, EnableSleep: true})
			w.CreateCircleShape(body, engine.ShapeDef{Density: 1}, engine.Vec2{}, 0.15)
			grid[row][col] = body
			st.bodies = append(st.bodies, body)
		}
	}
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			if row > 0 {
				st.joints = append(st.joints, w.CreateRevoluteJoint(engine.RevoluteJointDef{
					BodyA:  grid[row-1][col],
					BodyB:  grid[row][col],
					Anchor: w.Position(grid[row][col]),
				}))
			}
			if col > 0 {
				st.joints = append(st.joints, w.CreateRevoluteJoint(engine.RevoluteJointDef{
					BodyA:  grid[row][col-1],
					BodyB:  grid[row][col],
					Anchor: w.Position(grid[row][col]),
				}))
			}
		}
	}
	return st
}

// buildRaycastField scatters static boxes for the ray storm to probe.
func buildRaycastField(w *engine.World, cfg config.BenchConfig) *sceneState {
	st := &sceneState{rng: rand.New(rand.NewSource(cfg.Seed)), rays: cfg.Rays}
	for i := 0; i < 200; i++ {
		pos := engine.Vec2{
			X: st.rng.Float64()*80 - 40,
			Y: st.rng.Float64()*80 - 40,
		}
		body := w.CreateBody(engine.BodyDef{Type: engine.StaticBody, Position: pos, Angle: st.rng.Float64() * math.Pi})
		w.CreateBoxShape(body, engine.ShapeDef{}, 0.5+st.rng.Float64(), 0.5+st.rng.Float64())
		st.bodies = append(st.bodies, body)
	}
	return st
}

// tickRaycasts fires a fan of rays from the origin every step.
func tickRaycasts(w *engine.World, st *sceneState, step int) {
	for i := 0; i < st.rays; i++ {
		angle := float64(i)/float64(st.rays)*2*math.Pi + float64(step)*0.01
		target := engine.Vec2{X: math.Cos(angle) * 60, Y: math.Sin(angle) * 60}
		res := w.RayCast(engine.Vec2{}, target)
		st.visited += res.Visited
		if res.Hit {
			st.hits++
		}
	}
}

// buildSleepStress drops loose boxes that should settle and sleep.
func buildSleepStress(w *engine.World, cfg config.BenchConfig) *sceneState {
	ground(w)
	st := &sceneState{rng: rand.New(rand.NewSource(cfg.Seed))}
	for i := 0; i < cfg.GridSize*cfg.GridSize; i++ {
		pos := engine.Vec2{
			X: st.rng.Float64()*30 - 15,
			Y: 2 + st.rng.Float64()*20,
		}
		body := w.CreateBody(engine.BodyDef{Type: engine.DynamicBody, Position: pos, EnableSleep: true})
		w.CreateBoxShape(body, engine.ShapeDef{Density: 1, Friction: 0.5}, 0.4, 0.4)
		st.bodies = append(st.bodies, body)
	}
	return st
}

// tickSleepToggle periodically kicks a settled body awake to churn the
// sleep islands.
func tickSleepToggle(w *engine.World, st *sceneState, step int) {
	if step == 0 || step%120 != 0 || len(st.bodies) == 0 {
		return
	}
	body := st.bodies[st.rng.Intn(len(st.bodies))]
	w.SetAwake(body, true)
	w.ApplyLinearImpulse(body, engine.Vec2{Y: 2})
}

func reportSleep(w *engine.World, st *sceneState) string {
	asleep := 0
	for _, b := range st.bodies {
		if !w.IsAwake(b) {
			asleep++
		}
	}
	return fmt.Sprintf("%d/%d asleep", asleep, len(st.bodies))
}

func reportJoints(w *engine.World, st *sceneState) string {
	live := 0
	for _, j := range st.joints {
		if w.IsValidJoint(j) {
			live++
		}
	}
	return fmt.Sprintf("%d joints", live)
}

func reportRays(w *engine.World, st *sceneState) string {
	return fmt.Sprintf("%d hits, %d fixtures visited", st.hits, st.visited)
}
