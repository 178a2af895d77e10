package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/jumprope/internal/core"
)

// ansi maps engine colors to 256-color codes.
var ansi = map[core.Color]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
	core.ColorSky:           "117",
	core.ColorBrown:         "94",
	core.ColorCoral:         "203",
}

// runKey identifies cells that can share one styled run.
type runKey struct {
	color    core.Color
	backdrop bool
}

var styles = buildStyles()

// buildStyles precomputes a foreground and a backdrop style per color.
// Backdrop cells are painted as a solid background instead of a shade glyph.
func buildStyles() map[runKey]lipgloss.Style {
	out := make(map[runKey]lipgloss.Style, 2*len(ansi)+2)
	out[runKey{}] = lipgloss.NewStyle()
	out[runKey{backdrop: true}] = lipgloss.NewStyle()
	for c, code := range ansi {
		out[runKey{color: c}] = lipgloss.NewStyle().Foreground(lipgloss.Color(code))
		out[runKey{color: c, backdrop: true}] = lipgloss.NewStyle().Background(lipgloss.Color(code))
	}
	return out
}

func styleFor(k runKey) lipgloss.Style {
	if st, ok := styles[k]; ok {
		return st
	}
	return styles[runKey{}]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same style are emitted as one run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}

		x := 0
		for x < s.Width() {
			first := s.GetCell(x, y)
			k := runKey{color: first.Color, backdrop: first.Rune == BackdropChar}

			run.Reset()
			for ; x < s.Width(); x++ {
				c := s.GetCell(x, y)
				if c.Color != k.color || (c.Rune == BackdropChar) != k.backdrop {
					break
				}
				if k.backdrop {
					run.WriteByte(' ')
				} else {
					run.WriteRune(c.Rune)
				}
			}
			sb.WriteString(styleFor(k).Render(run.String()))
		}
	}
	return sb.String()
}
