// Package background selects the themed backdrop for the current run
// progress and records parallax decoration into a draw list.
package background

import (
	"sort"

	"github.com/vovakirdan/jumprope/internal/config"
	"github.com/vovakirdan/jumprope/internal/core"
)

// Theme is one background level.
type Theme struct {
	Name      string
	Threshold float64
	Color     core.Color
	Image     string // Optional asset name drawn instead of the flat color when ready
}

// Selector maps progress to themes. Themes are kept sorted by threshold.
type Selector struct {
	themes  []Theme
	width   float64
	height  float64
	damping float64

	clouds        int
	cloudSpacingX float64
	cloudSpacingY float64
}

// NewSelector builds a selector from config. Unknown colors fall back to the default color.
func NewSelector(cfg config.BackgroundConfig, width, height float64) *Selector {
	themes := make([]Theme, 0, len(cfg.Themes))
	for _, tc := range cfg.Themes {
		c, _ := core.ParseColor(tc.Color)
		themes = append(themes, Theme{Name: tc.Name, Threshold: tc.Threshold, Color: c, Image: tc.Image})
	}
	return NewSelectorFromThemes(themes, width, height, cfg)
}

// NewSelectorFromThemes builds a selector from explicit themes.
func NewSelectorFromThemes(themes []Theme, width, height float64, cfg config.BackgroundConfig) *Selector {
	sorted := append([]Theme(nil), themes...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Threshold < sorted[j].Threshold })
	return &Selector{
		themes:        sorted,
		width:         width,
		height:        height,
		damping:       cfg.Damping,
		clouds:        cfg.Clouds,
		cloudSpacingX: cfg.CloudSpacingX,
		cloudSpacingY: cfg.CloudSpacingY,
	}
}

// Themes returns the themes in threshold order.
func (s *Selector) Themes() []Theme {
	return s.themes
}

// CurrentLevel returns the theme with the greatest threshold <= progress.
// Progress below every threshold selects the lowest theme.
func (s *Selector) CurrentLevel(progress float64) Theme {
	if len(s.themes) == 0 {
		return Theme{}
	}
	for i := len(s.themes) - 1; i >= 0; i-- {
		if progress >= s.themes[i].Threshold {
			return s.themes[i]
		}
	}
	return s.themes[0]
}

// LevelIndex returns the position of the current theme, 0 for the lowest.
func (s *Selector) LevelIndex(progress float64) int {
	for i := len(s.themes) - 1; i >= 0; i-- {
		if progress >= s.themes[i].Threshold {
			return i
		}
	}
	return 0
}

// ParallaxOffset returns baseY shifted by damped progress, wrapped into [0, height).
func ParallaxOffset(baseY, progress, damping, height float64) float64 {
	return core.WrapF(baseY-progress*damping, height)
}

// Draw records the backdrop, parallax clouds and the level indicator.
// assets may be nil; a theme image is only used once it is ready.
func (s *Selector) Draw(dst *core.DrawList, progress float64, assets *core.Assets) {
	theme := s.CurrentLevel(progress)

	dst.Clear(theme.Color)
	if theme.Image != "" && assets != nil && assets.Ready(theme.Image) {
		dst.DrawImage(theme.Image, 0, 0, s.width, s.height)
	}

	s.drawClouds(dst, progress)

	// Level indicator
	dst.FillRect(10, 10, 150, 40, core.ColorGray)
	dst.DrawText(theme.Name, 20, 22, core.ColorBrightWhite)
}

func (s *Selector) drawClouds(dst *core.DrawList, progress float64) {
	for i := 0; i < s.clouds; i++ {
		y := ParallaxOffset(float64(i)*s.cloudSpacingY, progress, s.damping, s.height)
		x := core.WrapF(float64(i)*s.cloudSpacingX, s.width)

		dst.FillCircle(x, y, 30, core.ColorWhite)
		dst.FillCircle(x+20, y, 25, core.ColorWhite)
		dst.FillCircle(x+40, y, 30, core.ColorWhite)
	}
}
