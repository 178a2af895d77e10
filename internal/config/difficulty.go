package config

import (
	"math"

	"github.com/vovakirdan/jumprope/internal/core"
)

// Progress is the run position difficulty is measured against.
type Progress struct {
	Level    int // 1-based game level
	Score    int
	Ticks    int
	Distance float64 // Logical units travelled this run
}

// Progression types.
const (
	ProgressLevel    = "level"
	ProgressScore    = "score"
	ProgressTime     = "time"
	ProgressDistance = "distance"
	ProgressNone     = "none"
)

// DifficultyManager turns run progress into a 0..1 difficulty and scales
// speed and spawn spacing by it.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: core.ClampF(cfg.InitialLevel, 0, 1),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != ProgressNone
}

// Level returns the difficulty for p, interpolated from the initial level
// up to 1 as p approaches Progression.MaxAt.
func (d *DifficultyManager) Level(p Progress) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	var at float64
	switch d.cfg.Progression.Type {
	case ProgressLevel:
		at = float64(p.Level - 1)
	case ProgressScore:
		at = float64(p.Score)
	case ProgressTime:
		at = float64(p.Ticks)
	case ProgressDistance:
		at = p.Distance
	default:
		return d.initialLevel
	}

	frac := core.ClampF(at/float64(max(d.cfg.Progression.MaxAt, 1)), 0, 1)
	return d.initialLevel + frac*(1-d.initialLevel)
}

// Speed scales base from base up to base*(1+SpeedMultiplier).
func (d *DifficultyManager) Speed(base float64, p Progress) float64 {
	return base * (1 + d.Level(p)*d.cfg.Scaling.SpeedMultiplier)
}

// Spacing returns the spawn spacing reduced by difficulty, never below floor.
func (d *DifficultyManager) Spacing(base, floor float64, p Progress) float64 {
	return math.Max(base-d.Level(p)*d.cfg.Scaling.SpacingReduction, floor)
}
