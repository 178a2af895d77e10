package collectibles

import (
	"fmt"
	"time"

	"github.com/vovakirdan/jumprope/internal/core"
)

// Kind identifies a collectible and the effect it grants.
type Kind int

const (
	KindScoreBonus  Kind = iota // Flat points
	KindMultiplier              // Timed score multiplier
	KindSlowTime                // Timed slow motion
	KindHeightBoost             // One-shot taller jump
	KindCount                   // Sentinel for counting kinds
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindScoreBonus:
		return "Star"
	case KindMultiplier:
		return "Palm Nuts"
	case KindSlowTime:
		return "Drum Beat"
	case KindHeightBoost:
		return "Mini Flag"
	default:
		return "?"
	}
}

// Glyph returns the display character for a kind.
func (k Kind) Glyph() rune {
	switch k {
	case KindScoreBonus:
		return '*'
	case KindMultiplier:
		return 'x'
	case KindSlowTime:
		return '~'
	case KindHeightBoost:
		return '^'
	default:
		return '?'
	}
}

// Color returns the draw color for a kind.
func (k Kind) Color() core.Color {
	switch k {
	case KindScoreBonus:
		return core.ColorBrightYellow
	case KindMultiplier:
		return core.ColorBrown
	case KindSlowTime:
		return core.ColorBrightMagenta
	case KindHeightBoost:
		return core.ColorBrightRed
	default:
		return core.ColorDefault
	}
}

// Effect is what a collectible grants on pickup. The set of implementations
// is closed to this package.
type Effect interface {
	Kind() Kind
	effect()
}

// ScoreBonus adds points directly to the score.
type ScoreBonus struct {
	Points int
}

// Multiplier multiplies landing scores for a while.
type Multiplier struct {
	Factor   int
	Duration time.Duration
}

// SlowTime scales rope and travel speed for a while.
type SlowTime struct {
	Scale    float64
	Duration time.Duration
}

// HeightBoost multiplies the height of one jump.
type HeightBoost struct {
	Factor float64
}

func (ScoreBonus) Kind() Kind  { return KindScoreBonus }
func (Multiplier) Kind() Kind  { return KindMultiplier }
func (SlowTime) Kind() Kind    { return KindSlowTime }
func (HeightBoost) Kind() Kind { return KindHeightBoost }

func (ScoreBonus) effect()  {}
func (Multiplier) effect()  {}
func (SlowTime) effect()    {}
func (HeightBoost) effect() {}

// ActiveEffect is a timed effect currently in force.
type ActiveEffect struct {
	Kind   Kind
	Until  time.Time
	Factor int     // Multiplier factor
	Scale  float64 // Slow-time scale
}

// Remaining returns the time left before expiry.
func (e ActiveEffect) Remaining(now time.Time) time.Duration {
	if d := e.Until.Sub(now); d > 0 {
		return d
	}
	return 0
}

// UnknownEffectError reports an effect value the registry cannot dispatch.
type UnknownEffectError struct {
	Effect Effect
}

func (e *UnknownEffectError) Error() string {
	return fmt.Sprintf("collectibles: unknown effect %T", e.Effect)
}
