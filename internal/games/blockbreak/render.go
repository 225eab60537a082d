package blockbreak

import (
	"fmt"
	"strings"

	"github.com/kvistberg/arena2d/internal/core"
	"github.com/kvistberg/arena2d/internal/engine"
)

// Visual characters for rendering
const (
	PaddleChar = '='
	BallChar   = '●'
	BrickChar  = '█'
	WornChar   = '▒' // brick at 1 health
)

// blinkWindow is how long a struck brick flashes, in seconds.
const blinkWindow = 0.12

// hudRows reserves screen rows above the field.
const hudRows = 2

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	playTop := hudRows
	playH := dst.Height() - hudRows
	playW := dst.Width()
	dst.DrawBox(core.NewRect(0, playTop, playW, playH))

	g.renderBricks(dst, playTop, playW, playH)
	g.renderPaddle(dst, playTop, playW, playH)
	g.renderBall(dst, playTop, playW, playH)
	g.renderOverlay(dst, playTop, playH)
}

// worldToScreen maps field coordinates into the viewport below the HUD.
func (g *Game) worldToScreen(v engine.Vec2, playTop, playW, playH int) (int, int) {
	x := 1 + int(v.X/g.arenaW*float64(playW-2))
	y := playTop + playH - 2 - int(v.Y/arenaHeight*float64(playH-2))
	return x, y
}

// renderHUD draws score and lives.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", g.score))
	dst.DrawTextCentered(0, fmt.Sprintf("Lives: %d", g.lives))
	bricks := fmt.Sprintf("Bricks: %d", g.countBricks())
	dst.DrawText(dst.Width()-len(bricks)-1, 0, bricks)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// renderBricks draws each living brick as a colored run of cells.
func (g *Game) renderBricks(dst *core.Screen, playTop, playW, playH int) {
	now := g.now()
	cellsPerBrick := core.Max(int(g.cfg.Layout.BrickW/g.arenaW*float64(playW-2)), 1)

	for _, c := range g.sess.Characters() {
		if c.Body == g.paddle || c.Health <= 0 {
			continue
		}
		pos := g.world.Position(c.Body)
		x, y := g.worldToScreen(pos, playTop, playW, playH)

		glyph := BrickChar
		if c.Health == 1 && g.cfg.Gameplay.BrickHealth > 1 {
			glyph = WornChar
		}
		color := c.Color
		if c.LastHit > 0 && now-c.LastHit < blinkWindow {
			color = core.ColorBrightWhite
		}
		for dx := -cellsPerBrick / 2; dx <= cellsPerBrick/2; dx++ {
			dst.SetColored(x+dx, y, glyph, color)
		}
	}
}

// renderPaddle draws the paddle at its physics position.
func (g *Game) renderPaddle(dst *core.Screen, playTop, playW, playH int) {
	pos := g.world.Position(g.paddle)
	x, y := g.worldToScreen(pos, playTop, playW, playH)
	half := int(g.paddleWidth / 2 / g.arenaW * float64(playW-2))
	for dx := -half; dx <= half; dx++ {
		dst.Set(x+dx, y, PaddleChar)
	}
}

// renderBall draws the ball.
func (g *Game) renderBall(dst *core.Screen, playTop, playW, playH int) {
	if g.sess.Projectile(g.ball) == nil {
		return
	}
	x, y := g.worldToScreen(g.world.Position(g.ball), playTop, playW, playH)
	dst.SetColored(x, y, BallChar, core.ColorBrightYellow)
}

// renderOverlay draws game state messages.
func (g *Game) renderOverlay(dst *core.Screen, playTop, playH int) {
	switch g.state {
	case StateServe:
		if g.serveDelay <= 0 {
			dst.DrawTextCentered(playTop+playH-2, "Press SPACE to serve")
		} else {
			dst.DrawTextCentered(playTop+playH-2, "Get ready...")
		}
	case StatePaused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
	case StateGameOver:
		g.drawCenteredBox(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.score))
	case StateWin:
		g.drawCenteredBox(dst, "WALL CLEARED!", fmt.Sprintf("Score: %d  |  Press R to restart", g.score))
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(strings.TrimSpace(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
