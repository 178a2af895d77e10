package jumprope

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/jumprope/internal/core"
)

// Approximate logical width of one text glyph, used for centering.
const glyphWidth = 8

// Render records the current frame into dst regardless of asset readiness.
func (g *Game) Render(dst *core.DrawList) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.frame == nil {
		return
	}
	g.render(dst, g.host.Clock.Now())
}

func (g *Game) render(dst *core.DrawList, now time.Time) {
	progress := g.backdropProgress()
	g.warnMissingTheme(progress)
	g.selector.Draw(dst, progress, g.host.Assets)

	g.drawGround(dst)

	camera := g.camera()
	for _, p := range g.platforms.Visible(camera) {
		b := p.Bounds()
		c := core.ColorBrown
		if p.Landed {
			c = core.ColorOrange
		}
		dst.FillRect(b.Left-camera, b.Top, b.Right-b.Left, b.Bottom-b.Top, c)
	}
	for _, c := range g.items.Visible(camera) {
		if c.Collected {
			continue
		}
		dst.FillCircle(c.X-camera, c.Y, c.Radius, c.Kind().Color())
		dst.DrawText(string(c.Kind().Glyph()), c.X-camera-glyphWidth/2, c.Y, core.ColorBrightWhite)
	}
	g.particles.Draw(dst, camera)

	g.drawRope(dst)
	g.drawPlayer(dst)
	g.drawHUD(dst, now)
	g.drawOverlay(dst)
}

// warnMissingTheme logs once per theme image that failed to load.
func (g *Game) warnMissingTheme(progress float64) {
	th := g.selector.CurrentLevel(progress)
	if th.Image == "" || g.warned[th.Image] {
		return
	}
	if st, ok := g.host.Assets.Status(th.Image); ok && st == core.AssetFailed {
		g.warned[th.Image] = true
		g.logger.Warn("theme image unavailable, using flat color", "theme", th.Name, "image", th.Image)
	}
}

func (g *Game) drawGround(dst *core.DrawList) {
	w, h := g.cfg.Screen.Width, g.cfg.Screen.Height
	gy := g.groundY()
	dst.FillRect(0, gy, w, h-gy, core.ColorBrown)

	// Stripes scroll with the backdrop offset
	const stripe = 40.0
	for x := -g.scroll; x < w; x += stripe {
		dst.FillRect(x, gy, stripe/2, 4, core.ColorGreen)
	}
}

// drawRope draws the rope passing overhead while grounded and under the
// feet at the top of a jump.
func (g *Game) drawRope(dst *core.DrawList) {
	p := g.player
	span := p.Height + 20
	sin := math.Sin(g.rope.Theta)
	ropeY := g.groundY() - 1 - span*(1-sin*sin)

	dst.FillRect(p.X-50, g.groundY()-span, 4, span, core.ColorGray)
	dst.FillRect(p.X+46, g.groundY()-span, 4, span, core.ColorGray)
	dst.FillRect(p.X-46, ropeY, 92, 2, core.ColorRed)
}

func (g *Game) drawPlayer(dst *core.DrawList) {
	b := g.player.box().Bounds()
	body := core.ColorBlue
	if g.boost > 1 {
		body = core.ColorBrightRed
	}
	dst.FillRect(b.Left, b.Top+10, b.Right-b.Left, b.Bottom-b.Top-10, body)
	dst.FillCircle(g.player.X, b.Top+6, 8, core.ColorYellow)
}

func (g *Game) drawHUD(dst *core.DrawList, now time.Time) {
	x := g.cfg.Screen.Width - 190
	lines := []string{
		fmt.Sprintf("Score: %d", g.score),
		fmt.Sprintf("Best:  %d", g.highScore),
		fmt.Sprintf("Level: %d", g.level),
		fmt.Sprintf("Time:  %d", g.timer.Seconds(now)),
	}
	if m := g.items.Multiplier(); m > 1 {
		lines = append(lines, fmt.Sprintf("x%d", m))
	}
	for _, e := range g.items.Effects() {
		lines = append(lines, fmt.Sprintf("%s %.1fs", e.Kind, e.Remaining(now).Seconds()))
	}

	for i, line := range lines {
		c := core.ColorBrightWhite
		if i == 3 && g.timer.Seconds(now) <= g.cfg.Timer.CountdownFrom {
			c = core.ColorBrightRed
		}
		dst.DrawText(line, x, 20+float64(i)*22, c)
	}
}

func (g *Game) drawOverlay(dst *core.DrawList) {
	mid := g.cfg.Screen.Height / 3
	switch g.state {
	case Idle:
		g.centerText(dst, "JUMP ROPE", mid, core.ColorBrightYellow)
		g.centerText(dst, "Tap to start", mid+30, core.ColorBrightWhite)
	case Paused:
		g.centerText(dst, "PAUSED", mid, core.ColorBrightYellow)
		g.centerText(dst, "Tap to resume", mid+30, core.ColorBrightWhite)
	case Ended:
		title := "TIME UP!"
		if g.lastWon {
			title = "LEVEL CLEARED!"
		}
		g.centerText(dst, title, mid, core.ColorBrightYellow)
		g.centerText(dst, fmt.Sprintf("Score: %d", g.score), mid+30, core.ColorBrightWhite)
		g.centerText(dst, "Tap to play again", mid+60, core.ColorBrightWhite)
	}
}

func (g *Game) centerText(dst *core.DrawList, text string, y float64, c core.Color) {
	x := (g.cfg.Screen.Width - float64(len(text))*glyphWidth) / 2
	dst.DrawText(text, x, y, c)
}
