package blockbreak

import (
	"fmt"
	"math"

	"github.com/kvistberg/arena2d/internal/core"
	"github.com/kvistberg/arena2d/internal/engine"
	"github.com/kvistberg/arena2d/internal/session"
)

// brickColors cycles by row.
var brickColors = []core.Color{
	core.ColorRed, core.ColorYellow, core.ColorGreen, core.ColorCyan, core.ColorBlue,
}

// buildField creates the side and top walls plus the killzone below the
// open floor.
func (g *Game) buildField() {
	th := 0.5

	mk := func(pos engine.Vec2, halfW, halfH float64) {
		body := g.world.CreateBody(engine.BodyDef{Type: engine.StaticBody, Position: pos})
		g.world.CreateBoxShape(body, engine.ShapeDef{
			Category: session.CategoryWall,
		}, halfW, halfH)
	}

	mk(engine.Vec2{X: -th, Y: arenaHeight / 2}, th, arenaHeight/2+th)
	mk(engine.Vec2{X: g.arenaW + th, Y: arenaHeight / 2}, th, arenaHeight/2+th)
	mk(engine.Vec2{X: g.arenaW / 2, Y: arenaHeight + th}, g.arenaW/2+th, th)

	// No floor: a ball that drops past the paddle falls into the killzone.
	kz := g.world.CreateBody(engine.BodyDef{
		Type:     engine.StaticBody,
		Position: engine.Vec2{X: g.arenaW / 2, Y: -3},
	})
	g.world.CreateBoxShape(kz, engine.ShapeDef{
		IsSensor: true,
		Category: session.CategoryKillzone,
		Mask:     session.CategoryProjectile,
	}, g.arenaW*2, 1)
}

// spawnBricks registers each brick as a static combatant with a skin
// sensor, so ball touches resolve through the shared hit pipeline.
func (g *Game) spawnBricks() {
	lay := g.cfg.Layout
	topY := arenaHeight - brickTopGap

	for row := 0; row < lay.Rows; row++ {
		color := brickColors[row%len(brickColors)]
		for col := 0; col < lay.Cols; col++ {
			pos := engine.Vec2{
				X: 1 + lay.BrickW*(float64(col)+0.5),
				Y: topY - lay.BrickH*(float64(row)+0.5),
			}
			body := g.world.CreateBody(engine.BodyDef{Type: engine.StaticBody, Position: pos})
			g.world.CreateBoxShape(body, engine.ShapeDef{
				Category: session.CategoryCharacter,
				Mask:     session.CategoryProjectile | session.CategorySkin,
			}, lay.BrickW/2-0.05, lay.BrickH/2-0.05)
			g.world.CreateBoxShape(body, engine.ShapeDef{
				IsSensor: true,
				Category: session.CategorySkin,
				Mask:     session.CategoryProjectile,
			}, lay.BrickW/2+0.05, lay.BrickH/2+0.05)

			name := fmt.Sprintf("brick-%d-%d", row, col)
			g.sess.RegisterCharacter(body, name, 1, color)
		}
	}
	g.bricksAlive = g.cfg.Layout.Rows * g.cfg.Layout.Cols
}

// spawnPaddle creates the player's kinematic paddle and registers it as the
// ball's owning combatant.
func (g *Game) spawnPaddle() {
	g.paddleWidth = g.difficulty.PaddleWidth(g.cfg.Paddle.Width, g.score, int(g.tick))
	body := g.world.CreateBody(engine.BodyDef{
		Type:     engine.KinematicBody,
		Position: engine.Vec2{X: g.arenaW / 2, Y: paddleY},
	})
	g.attachPaddleFixture(body)
	g.paddle = body
	g.sess.RegisterCharacter(body, "Paddle", 0, core.ColorBrightWhite)
}

// attachPaddleFixture builds the paddle fixture at the current width.
func (g *Game) attachPaddleFixture(body engine.BodyID) {
	g.world.CreateBoxShape(body, engine.ShapeDef{
		Friction: 0.1,
		Category: session.CategoryWall, // the ball rebounds off it like a wall
	}, g.paddleWidth/2, g.cfg.Paddle.Height/2)
}

// rebuildPaddle reapplies the difficulty-scaled width before a re-serve.
func (g *Game) rebuildPaddle() {
	width := g.difficulty.PaddleWidth(g.cfg.Paddle.Width, g.score, int(g.tick))
	if math.Abs(width-g.paddleWidth) < 1e-9 {
		return
	}
	g.paddleWidth = width
	for _, shape := range g.world.BodyShapes(g.paddle) {
		g.world.DestroyShape(shape)
	}
	g.attachPaddleFixture(g.paddle)
}

// movePaddle applies input as kinematic velocity and clamps the paddle to
// the field.
func (g *Game) movePaddle(in core.InputFrame) {
	speed := 0.0
	if in.Has(core.ActionLeft) {
		speed -= g.cfg.Physics.PaddleSpeed
	}
	if in.Has(core.ActionRight) {
		speed += g.cfg.Physics.PaddleSpeed
	}
	// Predictive clamp: never let the kinematic step carry the paddle into
	// a wall.
	pos := g.world.Position(g.paddle)
	min := g.paddleWidth / 2
	max := g.arenaW - g.paddleWidth/2
	next := pos.X + speed*g.dt
	if next < min || next > max {
		speed = 0
		g.world.SetTransform(g.paddle, engine.Vec2{X: core.ClampF(pos.X, min, max), Y: paddleY}, 0)
	}
	g.world.SetLinearVelocity(g.paddle, engine.Vec2{X: speed})
}

// placeBallOnPaddle creates a fresh ball resting on the paddle.
func (g *Game) placeBallOnPaddle() {
	pos := g.world.Position(g.paddle)
	body := g.world.CreateBody(engine.BodyDef{
		Type:        engine.DynamicBody,
		Position:    engine.Vec2{X: pos.X, Y: paddleY + g.cfg.Paddle.Height/2 + ballRadius + 0.05},
		Bullet:      true,
		EnableSleep: false,
	})
	g.world.CreateCircleShape(body, engine.ShapeDef{
		Density:     1,
		Restitution: 1,
		Friction:    0,
		Category:    session.CategoryProjectile,
		Mask: session.CategoryWall | session.CategoryCharacter |
			session.CategorySkin | session.CategoryKillzone,
	}, engine.Vec2{}, ballRadius)

	g.sess.RegisterProjectile(body, session.KindShuriken, g.paddle, 1, g.now())
	g.ball = body
	g.ballStuck = true
}

// holdBallOnPaddle keeps a stuck ball glued above the paddle center.
func (g *Game) holdBallOnPaddle() {
	if !g.ballStuck {
		return
	}
	pos := g.world.Position(g.paddle)
	g.world.SetTransform(g.ball, engine.Vec2{
		X: pos.X,
		Y: paddleY + g.cfg.Paddle.Height/2 + ballRadius + 0.05,
	}, 0)
	g.world.SetLinearVelocity(g.ball, engine.Vec2{})
}

// launchBall serves the ball upward with a slight horizontal bias.
func (g *Game) launchBall() {
	speed := g.ballSpeed()
	g.world.SetLinearVelocity(g.ball, engine.Vec2{X: speed * 0.25, Y: speed})
	g.ballStuck = false
	g.state = StatePlaying
}

// steerAndNormalizeBall keeps the ball at its target speed and applies
// paddle english when the ball rises off the paddle.
func (g *Game) steerAndNormalizeBall() {
	vel := g.world.LinearVelocity(g.ball)
	mag := vel.Length()
	if mag < 1e-6 {
		return
	}

	pos := g.world.Position(g.ball)
	ppos := g.world.Position(g.paddle)

	// English: a ball leaving the paddle inherits horizontal direction from
	// where it struck, so the player can aim.
	nearPaddle := vel.Y > 0 &&
		pos.Y < paddleY+g.cfg.Paddle.Height/2+ballRadius*3 &&
		math.Abs(pos.X-ppos.X) < g.paddleWidth/2+ballRadius
	if nearPaddle {
		offset := (pos.X - ppos.X) / (g.paddleWidth / 2)
		vel.X = offset * maxSteer * mag
	}

	// Keep vertical motion alive: a near-horizontal ball never comes down.
	minY := mag * 0.25
	if math.Abs(vel.Y) < minY {
		if vel.Y < 0 {
			vel.Y = -minY
		} else {
			vel.Y = minY
		}
	}

	speed := g.ballSpeed()
	scale := speed / vel.Length()
	g.world.SetLinearVelocity(g.ball, vel.Scale(scale))
}
