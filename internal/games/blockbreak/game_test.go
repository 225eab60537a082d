package blockbreak

import (
	"testing"

	"github.com/kvistberg/arena2d/internal/core"
	"github.com/kvistberg/arena2d/internal/engine"
)

func newTestGame() *Game {
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

func serve(g *Game) {
	in := core.NewInputFrame()
	in.Set(core.ActionFire)
	g.Step(in)
}

func TestResetBuildsWall(t *testing.T) {
	g := newTestGame()

	want := g.cfg.Layout.Rows * g.cfg.Layout.Cols
	if got := g.countBricks(); got != want {
		t.Fatalf("built %d bricks, want %d", got, want)
	}
	if g.state != StateServe {
		t.Errorf("state = %q, want serve", g.state)
	}
	if g.lives != g.cfg.Gameplay.Lives {
		t.Errorf("lives = %d, want %d", g.lives, g.cfg.Gameplay.Lives)
	}
	if g.sess.Projectile(g.ball) == nil {
		t.Error("no ball registered after reset")
	}
}

func TestServeLaunchesBall(t *testing.T) {
	g := newTestGame()

	serve(g)

	if g.state != StatePlaying {
		t.Fatalf("state = %q after serve", g.state)
	}
	if v := g.world.LinearVelocity(g.ball); v.Y <= 0 {
		t.Errorf("ball velocity = %v, want upward", v)
	}
}

func TestStuckBallFollowsPaddle(t *testing.T) {
	g := newTestGame()

	in := core.NewInputFrame()
	in.Set(core.ActionRight)
	for i := 0; i < 30; i++ {
		g.Step(in)
	}

	bx := g.world.Position(g.ball).X
	px := g.world.Position(g.paddle).X
	if diff := bx - px; diff > 0.01 || diff < -0.01 {
		t.Errorf("stuck ball at x=%v, paddle at x=%v", bx, px)
	}
}

func TestBallBreaksBricks(t *testing.T) {
	g := newTestGame()
	serve(g)

	// Aim the ball straight up at the wall of bricks and give it time for
	// several round trips.
	g.world.SetTransform(g.ball, engine.Vec2{X: g.arenaW / 2, Y: 3}, 0)
	g.world.SetLinearVelocity(g.ball, engine.Vec2{Y: g.ballSpeed()})
	stepN(g, 1200)

	if g.score == 0 {
		damaged := false
		for _, c := range g.sess.Characters() {
			if c.Body != g.paddle && c.Health < g.cfg.Gameplay.BrickHealth {
				damaged = true
			}
		}
		if !damaged {
			t.Error("ball never damaged a brick in 20 simulated seconds")
		}
	}
}

func TestMissCostsLifeAndReserves(t *testing.T) {
	g := newTestGame()
	serve(g)

	livesBefore := g.lives
	g.sess.ScheduleDestroy(g.ball, 0)
	stepN(g, 1)

	if g.lives != livesBefore-1 {
		t.Fatalf("lives = %d after miss, want %d", g.lives, livesBefore-1)
	}
	if g.state != StateServe {
		t.Errorf("state = %q after miss, want serve", g.state)
	}
	if g.sess.Projectile(g.ball) == nil {
		t.Error("no fresh ball after re-serve")
	}
}

func TestGameOverOnLastMiss(t *testing.T) {
	g := newTestGame()
	g.lives = 1
	serve(g)

	g.sess.ScheduleDestroy(g.ball, 0)
	stepN(g, 1)

	if g.state != StateGameOver {
		t.Errorf("state = %q, want gameover", g.state)
	}
	if st := g.State(); !st.GameOver {
		t.Errorf("State() = %+v", st)
	}
}

func TestWinWhenWallCleared(t *testing.T) {
	g := newTestGame()
	serve(g)

	for _, c := range g.sess.Characters() {
		if c.Body != g.paddle {
			c.Health = 0
		}
	}
	stepN(g, 1)

	if g.state != StateWin {
		t.Errorf("state = %q, want win", g.state)
	}
}

func TestPaddleClampedToField(t *testing.T) {
	g := newTestGame()

	in := core.NewInputFrame()
	in.Set(core.ActionLeft)
	for i := 0; i < 600; i++ {
		g.Step(in)
	}

	pos := g.world.Position(g.paddle)
	if pos.X < g.paddleWidth/2-0.1 {
		t.Errorf("paddle escaped left wall: x=%v", pos.X)
	}
}

func TestRenderDoesNotPanic(t *testing.T) {
	g := newTestGame()
	serve(g)
	stepN(g, 10)

	for _, dim := range [][2]int{{80, 24}, {120, 40}, {40, 12}} {
		screen := core.NewScreen(dim[0], dim[1])
		g.Render(screen)
	}
}
