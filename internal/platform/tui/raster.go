package tui

import (
	"math"

	"github.com/vovakirdan/jumprope/internal/core"
)

// Glyphs used when a logical primitive becomes character cells.
const (
	BackdropChar = '░'
	RectChar     = '█'
	CircleChar   = '▓'
	ImageChar    = '▒'
)

// Rasterize replays list onto dst, scaling the logical space to the screen.
// Later commands paint over earlier ones.
func Rasterize(dst *core.Screen, list *core.DrawList) {
	if list.Width <= 0 || list.Height <= 0 || dst.Width() == 0 || dst.Height() == 0 {
		return
	}
	sx := float64(dst.Width()) / list.Width
	sy := float64(dst.Height()) / list.Height

	for _, cmd := range list.Commands() {
		switch cmd.Kind {
		case core.DrawClear:
			dst.FillColored(BackdropChar, cmd.Color)
		case core.DrawRect:
			dst.DrawRectColored(cellRect(cmd.X, cmd.Y, cmd.W, cmd.H, sx, sy), RectChar, cmd.Color)
		case core.DrawImage:
			dst.DrawRectColored(cellRect(cmd.X, cmd.Y, cmd.W, cmd.H, sx, sy), ImageChar, core.ColorGray)
		case core.DrawCircle:
			fillCircle(dst, cmd.X, cmd.Y, cmd.R, sx, sy, cmd.Color)
		case core.DrawText:
			x := int(math.Round(cmd.X * sx))
			y := int(math.Round(cmd.Y * sy))
			dst.DrawTextColored(x, y, cmd.Text, cmd.Color)
		}
	}
}

// cellRect converts a logical rectangle to the cells it touches.
// A non-empty rectangle always covers at least one cell.
func cellRect(x, y, w, h, sx, sy float64) core.Rect {
	x0 := int(math.Floor(x * sx))
	y0 := int(math.Floor(y * sy))
	x1 := int(math.Ceil((x + w) * sx))
	y1 := int(math.Ceil((y + h) * sy))
	if w > 0 && x1 <= x0 {
		x1 = x0 + 1
	}
	if h > 0 && y1 <= y0 {
		y1 = y0 + 1
	}
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

// fillCircle marks every cell whose center lies inside the circle, measured
// in logical units so terminal cell aspect does not squash it.
func fillCircle(dst *core.Screen, cx, cy, r, sx, sy float64, c core.Color) {
	if r <= 0 {
		return
	}
	center := core.Circle{X: cx, Y: cy, Radius: r}
	x0, x1 := int(math.Floor((cx-r)*sx)), int(math.Ceil((cx+r)*sx))
	y0, y1 := int(math.Floor((cy-r)*sy)), int(math.Ceil((cy+r)*sy))

	hit := false
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			p := core.Vec2{X: (float64(x) + 0.5) / sx, Y: (float64(y) + 0.5) / sy}
			if center.ContainsPoint(p) {
				dst.SetColored(x, y, CircleChar, c)
				hit = true
			}
		}
	}
	if !hit {
		dst.SetColored(int(cx*sx), int(cy*sy), CircleChar, c)
	}
}
