package window

import (
	"image/color"

	"golang.org/x/image/colornames"

	"github.com/vovakirdan/jumprope/internal/core"
)

// canvas is what a draw list is replayed onto. The Ebiten screen adapter
// implements it; tests use a recorder.
type canvas interface {
	Fill(c color.Color)
	FillRect(x, y, w, h float32, c color.Color)
	FillCircle(x, y, r float32, c color.Color)
	DrawImage(name string, x, y, w, h float64)
	Text(s string, x, y int)
}

var palette = map[core.Color]color.RGBA{
	core.ColorDefault:       colornames.White,
	core.ColorRed:           colornames.Firebrick,
	core.ColorGreen:         colornames.Forestgreen,
	core.ColorYellow:        colornames.Gold,
	core.ColorBlue:          colornames.Royalblue,
	core.ColorMagenta:       colornames.Darkmagenta,
	core.ColorCyan:          colornames.Darkcyan,
	core.ColorWhite:         colornames.Whitesmoke,
	core.ColorBrightRed:     colornames.Red,
	core.ColorBrightGreen:   colornames.Lime,
	core.ColorBrightYellow:  colornames.Yellow,
	core.ColorBrightBlue:    colornames.Dodgerblue,
	core.ColorBrightMagenta: colornames.Magenta,
	core.ColorBrightCyan:    colornames.Cyan,
	core.ColorBrightWhite:   colornames.White,
	core.ColorOrange:        colornames.Darkorange,
	core.ColorGray:          colornames.Gray,
	core.ColorSky:           colornames.Skyblue,
	core.ColorBrown:         colornames.Saddlebrown,
	core.ColorCoral:         colornames.Coral,
}

// RGBA maps an engine color to a screen color. Unknown values render white.
func RGBA(c core.Color) color.RGBA {
	if v, ok := palette[c]; ok {
		return v
	}
	return colornames.White
}

// replay draws list onto dst in order. An image that is not loaded yet is
// skipped; the selector has already painted its flat color underneath.
func replay(dst canvas, list *core.DrawList) {
	for _, cmd := range list.Commands() {
		switch cmd.Kind {
		case core.DrawClear:
			dst.Fill(RGBA(cmd.Color))
		case core.DrawRect:
			dst.FillRect(float32(cmd.X), float32(cmd.Y), float32(cmd.W), float32(cmd.H), RGBA(cmd.Color))
		case core.DrawCircle:
			dst.FillCircle(float32(cmd.X), float32(cmd.Y), float32(cmd.R), RGBA(cmd.Color))
		case core.DrawImage:
			dst.DrawImage(cmd.Image, cmd.X, cmd.Y, cmd.W, cmd.H)
		case core.DrawText:
			dst.Text(cmd.Text, int(cmd.X), int(cmd.Y))
		}
	}
}
