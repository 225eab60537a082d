package brawl

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kvistberg/arena2d/internal/core"
	"github.com/kvistberg/arena2d/internal/engine"
	"github.com/kvistberg/arena2d/internal/session"
)

// Visual characters for rendering
const (
	FighterChar    = '@'
	CloneChar      = 'o'
	ProjectileChar = '*'
	GrenadeChar    = '●'
	TurretChar     = '╬'
)

// blinkWindow is how long a struck fighter flashes, in seconds.
const blinkWindow = 0.15

// hudWidth is the right-hand fighter panel width in cells; screens narrower
// than minScreenForHUD render the arena only.
const (
	hudWidth        = 30
	minScreenForHUD = 70
)

// weaponGlyphs maps weapon kinds to their arena glyph.
var weaponGlyphs = map[session.WeaponKind]rune{
	session.KindSword:     '/',
	session.KindMace:      '●',
	session.KindDagger:    ',',
	session.KindFibonacci: 'φ',
	session.KindSaw:       '¤',
	session.KindVenom:     's',
	session.KindSpear:     '─',
	session.KindScythe:    '⌐',
	session.KindSummoner:  '¶',
	session.KindGrenadier: 'L',
	session.KindShuriken:  '+',
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	playW := dst.Width()
	if playW >= minScreenForHUD {
		playW -= hudWidth
	}
	playH := dst.Height()

	g.renderArena(dst, playW, playH)
	if playW < dst.Width() {
		g.renderFighterPanel(dst, playW)
	}
	if g.panelOpen {
		g.renderTuningPanel(dst, playW, playH)
	}
	g.renderOverlay(dst, playW, playH)
}

// worldToScreen maps physics coordinates into the arena viewport. Physics y
// grows upward; screen y grows downward.
func (g *Game) worldToScreen(v engine.Vec2, playW, playH int) (int, int) {
	a := g.cfg.Arena
	x := 1 + int(v.X/a.Width*float64(playW-2))
	y := playH - 2 - int(v.Y/a.Height*float64(playH-2))
	return x, y
}

// renderArena draws the walls and every live body.
func (g *Game) renderArena(dst *core.Screen, playW, playH int) {
	dst.DrawBox(core.NewRect(0, 0, playW, playH))

	now := g.now()

	for _, t := range g.sess.Turrets() {
		x, y := g.worldToScreen(g.world.Position(t.Body), playW, playH)
		dst.SetColored(x, y, TurretChar, core.ColorGray)
	}

	for _, c := range g.sess.Characters() {
		x, y := g.worldToScreen(g.world.Position(c.Body), playW, playH)
		glyph := FighterChar
		if strings.HasSuffix(c.Name, " echo") {
			glyph = CloneChar
		}
		color := c.Color
		if c.LastHit > 0 && now-c.LastHit < blinkWindow {
			color = core.ColorBrightWhite
		}
		dst.SetColored(x, y, glyph, color)

		w := g.sess.WeaponOf(c)
		if w == nil {
			continue
		}
		wx, wy := g.worldToScreen(g.world.Position(w.Body), playW, playH)
		wg, ok := weaponGlyphs[w.Kind]
		if !ok {
			wg = '?'
		}
		dst.SetColored(wx, wy, wg, c.Color)
	}

	for _, p := range g.sess.Projectiles() {
		x, y := g.worldToScreen(g.world.Position(p.Body), playW, playH)
		glyph := ProjectileChar
		if p.Kind.AreaEffect() {
			glyph = GrenadeChar
		}
		dst.SetColored(x, y, glyph, core.ColorBrightYellow)
	}
}

// renderFighterPanel draws the right-hand list of fighters: health, weapon,
// current damage and the next escalation step.
func (g *Game) renderFighterPanel(dst *core.Screen, panelX int) {
	entries := g.sess.HUD(g.now(), blinkWindow)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	dst.DrawText(panelX+1, 0, "FIGHTERS")
	row := 1
	for _, e := range entries {
		if row >= dst.Height()-1 {
			break
		}
		color := core.ColorDefault
		if e.Blink {
			color = core.ColorBrightWhite
		}
		line := fmt.Sprintf("%-8s %3dhp %s", e.Name, e.Health, healthBar(e.Health, g.sess.Tuning.StartHealth, 8))
		dst.DrawTextColored(panelX+1, row, line, color)
		row++
		if row >= dst.Height()-1 {
			break
		}
		detail := fmt.Sprintf(" %s %ddmg %s", e.Weapon, e.Damage, e.Preview)
		if len(detail) > hudWidth-1 {
			detail = detail[:hudWidth-1]
		}
		dst.DrawTextColored(panelX+1, row, detail, core.ColorGray)
		row++
	}
}

// healthBar renders health as a fixed-width bar.
func healthBar(health, max, width int) string {
	if max <= 0 {
		max = 1
	}
	filled := health * width / max
	filled = core.Clamp(filled, 0, width)
	bar := make([]rune, width)
	for i := range bar {
		if i < filled {
			bar[i] = '|'
		} else {
			bar[i] = '.'
		}
	}
	return string(bar)
}

// renderTuningPanel draws the live tuning tweak panel over the arena.
func (g *Game) renderTuningPanel(dst *core.Screen, playW, playH int) {
	boxW := 32
	boxH := len(g.panel) + 4
	boxX := (playW - boxW) / 2
	boxY := (playH - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))
	dst.DrawText(boxX+2, boxY+1, "TUNING  (enter to close)")
	for i := range g.panel {
		dst.DrawText(boxX+2, boxY+2+i, g.panelLine(i))
	}
}

// renderOverlay draws game state messages.
func (g *Game) renderOverlay(dst *core.Screen, playW, playH int) {
	switch g.state {
	case StatePaused:
		g.drawCenteredBox(dst, playW, playH, "PAUSED", "Press P to resume")
	case StateGameOver:
		title := fmt.Sprintf("%s WINS", g.winner)
		if g.winner == "Nobody" {
			title = "MUTUAL DESTRUCTION"
		}
		g.drawCenteredBox(dst, playW, playH, title, "Press R to restart")
	}
}

// drawCenteredBox draws a centered message box inside the arena viewport.
func (g *Game) drawCenteredBox(dst *core.Screen, playW, playH int, title, subtitle string) {
	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (playW - boxW) / 2
	boxY := (playH - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
