package brawl

import (
	"testing"

	"github.com/kvistberg/arena2d/internal/core"
)

func newTestGame(t *testing.T, configFile string) *Game {
	t.Helper()
	SetConfigPath(configFile)
	t.Cleanup(func() { SetConfigPath("") })

	g := New()
	g.Reset(core.DefaultConfig())
	return g
}

func stepN(g *Game, n int) {
	in := core.NewInputFrame()
	for i := 0; i < n; i++ {
		g.Step(in)
	}
}

func TestResetSpawnsRoster(t *testing.T) {
	g := newTestGame(t, "")

	chars := g.sess.Characters()
	if len(chars) != len(g.cfg.Roster) {
		t.Fatalf("spawned %d fighters, config has %d", len(chars), len(g.cfg.Roster))
	}
	for _, c := range chars {
		if c.Health != g.sess.Tuning.StartHealth {
			t.Errorf("%s spawned with %d health", c.Name, c.Health)
		}
		if c.Weapon == 0 {
			t.Errorf("%s spawned unarmed; default roster is fully armed", c.Name)
		}
	}
	if g.cfg.Turrets.Enabled && len(g.sess.Turrets()) != g.cfg.Turrets.Count {
		t.Errorf("mounted %d turrets, want %d", len(g.sess.Turrets()), g.cfg.Turrets.Count)
	}
}

func TestDuelProducesDamage(t *testing.T) {
	g := newTestGame(t, "testdata/duel.yaml")

	if len(g.sess.Characters()) != 2 {
		t.Fatalf("duel config spawned %d fighters", len(g.sess.Characters()))
	}

	// A cramped arena forces contact quickly; 30 simulated seconds is far
	// more than two seeking fighters need to trade at least one hit.
	stepN(g, 1800)

	damaged := false
	for _, c := range g.sess.Characters() {
		if c.Health < g.sess.Tuning.StartHealth {
			damaged = true
		}
	}
	if !damaged && g.state != StateGameOver {
		t.Error("no fighter took damage in 30 simulated seconds of a duel")
	}
}

func TestWinnerDeclaredWhenOneTeamRemains(t *testing.T) {
	g := newTestGame(t, "testdata/duel.yaml")

	var survivor string
	for i, c := range g.sess.Characters() {
		if i == 0 {
			survivor = c.Name
		} else {
			c.Health = 0
		}
	}
	g.checkWinner()

	if g.state != StateGameOver {
		t.Fatalf("state = %q after last enemy died", g.state)
	}
	if g.winner != survivor {
		t.Errorf("winner = %q, want %q", g.winner, survivor)
	}
	if st := g.State(); !st.GameOver || st.Winner != survivor {
		t.Errorf("State() = %+v", st)
	}
}

func TestDrawWhenEveryoneDies(t *testing.T) {
	g := newTestGame(t, "testdata/duel.yaml")

	for _, c := range g.sess.Characters() {
		c.Health = 0
	}
	g.checkWinner()

	if g.winner != "Nobody" {
		t.Errorf("winner = %q, want Nobody", g.winner)
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	g := newTestGame(t, "testdata/duel.yaml")

	g.state = StateGameOver
	g.winner = "Ada"

	in := core.NewInputFrame()
	in.Set(core.ActionRestart)
	g.Step(in)

	if g.state != StatePlaying {
		t.Errorf("state = %q after restart", g.state)
	}
	if g.winner != "" {
		t.Errorf("winner %q survived restart", g.winner)
	}
	if len(g.sess.Characters()) != 2 {
		t.Errorf("restart respawned %d fighters", len(g.sess.Characters()))
	}
}

func TestPauseToggles(t *testing.T) {
	g := newTestGame(t, "testdata/duel.yaml")

	in := core.NewInputFrame()
	in.Set(core.ActionPause)

	g.Step(in)
	if g.state != StatePaused {
		t.Fatalf("state = %q after pause", g.state)
	}
	tickBefore := g.tick
	g.Step(core.NewInputFrame())
	if g.tick != tickBefore {
		t.Error("simulation advanced while paused")
	}
	g.Step(in)
	if g.state != StatePlaying {
		t.Errorf("state = %q after unpause", g.state)
	}
}

func TestTuningPanelAdjustsLiveValues(t *testing.T) {
	g := newTestGame(t, "testdata/duel.yaml")

	open := core.NewInputFrame()
	open.Set(core.ActionConfirm)
	g.Step(open)
	if !g.panelOpen {
		t.Fatal("panel did not open")
	}

	before := g.sess.Tuning.VictimFreeze
	right := core.NewInputFrame()
	right.Set(core.ActionRight)
	g.Step(right)

	if got := g.sess.Tuning.VictimFreeze; got <= before {
		t.Errorf("victim freeze = %v after increase, was %v", got, before)
	}
}

func TestRenderDoesNotPanic(t *testing.T) {
	g := newTestGame(t, "")
	stepN(g, 10)

	for _, dim := range [][2]int{{80, 24}, {120, 40}, {40, 12}} {
		screen := core.NewScreen(dim[0], dim[1])
		g.Render(screen)
	}
}

func TestProjectileWeaponsFire(t *testing.T) {
	g := newTestGame(t, "")

	// The default roster carries a grenadier and a shuriken thrower; within
	// a few seconds both should have launched something.
	stepN(g, 300)

	if len(g.sess.Projectiles()) == 0 && len(g.nextFire) == 0 {
		t.Error("no projectile activity after 5 simulated seconds")
	}
}
