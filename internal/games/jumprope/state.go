package jumprope

import (
	"math"

	"github.com/vovakirdan/jumprope/internal/core"
)

// RunState is the phase of a run. Only the Game changes it.
type RunState int

const (
	Idle RunState = iota
	Running
	Paused
	Ended
)

func (s RunState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}

// Facing is the direction the runner looks.
type Facing int

const (
	FacingRight Facing = iota
	FacingLeft
)

// Player is the runner. X and Y are the screen-space center.
type Player struct {
	X, Y         float64
	VelocityY    float64 // Y minus previous Y, positive while falling
	Facing       Facing
	Travel       float64 // How far the runner has moved from StartX
	Alive        bool
	Jumping      bool
	Width        float64
	Height       float64
	PickupRadius float64
}

func (p Player) box() core.Box {
	return core.Box{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height}
}

// Oscillator drives the jump rhythm from the rope angle θ.
type Oscillator struct {
	Theta        float64
	BaseHeight   float64
	AirThreshold float64
}

// Advance turns the rope by rate radians.
func (o *Oscillator) Advance(rate float64) {
	o.Theta += rate
}

// Factor is |sin θ|, always in [0, 1].
func (o Oscillator) Factor() float64 {
	return math.Abs(math.Sin(o.Theta))
}

// Height is the current jump height, always in [0, BaseHeight].
func (o Oscillator) Height() float64 {
	return o.BaseHeight * o.Factor()
}

// InAir reports whether the jump factor is above the air threshold.
func (o Oscillator) InAir() bool {
	return o.Factor() > o.AirThreshold
}

// Rate returns the per-frame rope advance for a speed factor.
func Rate(baseRate, speedFactor, minFactor float64) float64 {
	return baseRate * math.Max(speedFactor, minFactor)
}

// JumpPoints converts the height of a jump into points.
// peak is the smallest y reached while airborne.
func JumpPoints(baseY, peak, divisor float64) int {
	if divisor <= 0 || peak >= baseY {
		return 0
	}
	return int(math.Floor((baseY - peak) / divisor))
}

// Snapshot is a read-only copy of the run for tests and debug overlays.
type Snapshot struct {
	State      RunState
	Theta      float64
	Score      int
	HighScore  int
	Level      int
	Multiplier int
	Peak       float64
	BaseY      float64
	Player     Player
	Airborne   bool
	Ending     bool
	Won        bool
	Distance   float64
	Scroll     float64
	Remaining  int // Whole seconds left on the countdown
}
