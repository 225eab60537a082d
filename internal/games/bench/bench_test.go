package bench

import (
	"testing"

	"github.com/kvistberg/arena2d/internal/config"
	"github.com/kvistberg/arena2d/internal/core"
	"github.com/kvistberg/arena2d/internal/engine"
)

func tinyConfig() config.BenchConfig {
	return config.BenchConfig{
		Steps:         30,
		PyramidHeight: 4,
		GridSize:      3,
		Rays:          16,
		Seed:          1,
	}
}

func TestRunCoversEveryScene(t *testing.T) {
	results := Run(tinyConfig(), "")

	if len(results) != len(Scenes()) {
		t.Fatalf("got %d results, want %d", len(results), len(Scenes()))
	}
	for i, r := range results {
		if r.Scene != Scenes()[i].name {
			t.Errorf("result %d scene = %q, want %q", i, r.Scene, Scenes()[i].name)
		}
		if r.Steps != 30 {
			t.Errorf("%s ran %d steps, want 30", r.Scene, r.Steps)
		}
		if r.Bodies == 0 {
			t.Errorf("%s reports zero bodies", r.Scene)
		}
		if r.StepsPerSecond() <= 0 {
			t.Errorf("%s reports %v steps/s", r.Scene, r.StepsPerSecond())
		}
	}
}

func TestRunSingleScene(t *testing.T) {
	results := Run(tinyConfig(), "pyramid")

	if len(results) != 1 || results[0].Scene != "pyramid" {
		t.Fatalf("got %+v, want single pyramid result", results)
	}
}

func TestPyramidBodyCount(t *testing.T) {
	cfg := tinyConfig()
	w := engine.NewWorld(engine.Vec2{Y: -10})
	st := buildPyramid(w, cfg)

	h := cfg.PyramidHeight
	want := h * (h + 1) / 2
	if len(st.bodies) != want {
		t.Errorf("pyramid has %d boxes, want %d", len(st.bodies), want)
	}
	// Plus the ground body.
	if w.BodyCount() != want+1 {
		t.Errorf("world has %d bodies, want %d", w.BodyCount(), want+1)
	}
}

func TestJointGridConnectivity(t *testing.T) {
	cfg := tinyConfig()
	w := engine.NewWorld(engine.Vec2{Y: -10})
	st := buildJointGrid(w, cfg)

	n := cfg.GridSize
	if len(st.bodies) != n*n {
		t.Fatalf("grid has %d bodies, want %d", len(st.bodies), n*n)
	}
	if want := 2 * n * (n - 1); len(st.joints) != want {
		t.Errorf("grid has %d joints, want %d", len(st.joints), want)
	}
	for _, j := range st.joints {
		if !w.IsValidJoint(j) {
			t.Fatal("grid produced an invalid joint")
		}
	}
}

func TestRaycastStormAccumulates(t *testing.T) {
	results := Run(tinyConfig(), "raycast-storm")

	if len(results) != 1 {
		t.Fatal("missing raycast-storm result")
	}
	if results[0].Notes == "" {
		t.Error("raycast-storm reported no query statistics")
	}
}

func TestGameRunsSuiteToCompletion(t *testing.T) {
	SetConfigPath("testdata/tiny.yaml")
	t.Cleanup(func() { SetConfigPath("") })

	g := New()
	g.Reset(core.DefaultConfig())

	in := core.NewInputFrame()
	budget := (tinyConfig().Steps + 2) * len(Scenes())
	for i := 0; i < budget && g.state != StateDone; i++ {
		g.Step(in)
	}

	if g.state != StateDone {
		t.Fatalf("suite not done after %d ticks, state=%q", budget, g.state)
	}
	if got := len(g.Results()); got != len(Scenes()) {
		t.Errorf("completed %d scenes, want %d", got, len(Scenes()))
	}
	if st := g.State(); !st.GameOver {
		t.Errorf("State() = %+v, want GameOver", st)
	}
}

func TestGamePauseAndRestart(t *testing.T) {
	SetConfigPath("testdata/tiny.yaml")
	t.Cleanup(func() { SetConfigPath("") })

	g := New()
	g.Reset(core.DefaultConfig())

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)
	step := g.step
	g.Step(core.NewInputFrame())
	if g.step != step {
		t.Error("scene advanced while paused")
	}

	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)
	g.Step(restart)
	if g.step != 0 || g.idx != 0 || g.state != StateRunning {
		t.Errorf("restart left step=%d idx=%d state=%q", g.step, g.idx, g.state)
	}
}

func TestRenderDoesNotPanic(t *testing.T) {
	SetConfigPath("testdata/tiny.yaml")
	t.Cleanup(func() { SetConfigPath("") })

	g := New()
	g.Reset(core.DefaultConfig())

	in := core.NewInputFrame()
	for i := 0; i < 200; i++ {
		g.Step(in)
		if i%50 == 0 {
			g.Render(core.NewScreen(80, 24))
		}
	}
	// Results table once the suite is done.
	for g.state != StateDone {
		g.Step(in)
	}
	g.Render(core.NewScreen(80, 24))
}
