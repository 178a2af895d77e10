package jumprope

import (
	"sync/atomic"
	"time"

	"github.com/vovakirdan/jumprope/internal/config"
	"github.com/vovakirdan/jumprope/internal/core"
)

// Timer is the run countdown. The deadline callback runs on the clock's
// goroutine and must only touch atomic state.
type Timer struct {
	clock      core.Clock
	policy     string
	onDeadline func()

	limit     time.Duration
	remaining time.Duration // Left at armedAt
	armedAt   time.Time
	pending   core.Timer
	running   bool
	paused    bool

	gen atomic.Uint64 // Bumped on Start and Stop so stale callbacks are ignored
}

// NewTimer creates a stopped countdown.
func NewTimer(clock core.Clock, policy string, onDeadline func()) *Timer {
	if policy != config.PauseContinue {
		policy = config.PauseFreeze
	}
	return &Timer{clock: clock, policy: policy, onDeadline: onDeadline}
}

// Policy returns the pause policy in effect.
func (t *Timer) Policy() string { return t.policy }

// Limit returns the duration the countdown was started with.
func (t *Timer) Limit() time.Duration { return t.limit }

// Start (re)starts the countdown. It reports false for a non-positive limit.
func (t *Timer) Start(limit time.Duration) bool {
	t.Stop()
	if limit <= 0 {
		return false
	}
	t.limit = limit
	t.remaining = limit
	t.arm()
	return true
}

func (t *Timer) arm() {
	gen := t.gen.Load()
	t.armedAt = t.clock.Now()
	t.running = true
	t.paused = false
	t.pending = t.clock.AfterFunc(t.remaining, func() {
		if t.gen.Load() == gen {
			t.onDeadline()
		}
	})
}

// Stop cancels the countdown, keeping the time that was left.
func (t *Timer) Stop() {
	if t.running {
		t.remaining = t.left(t.clock.Now())
	}
	t.gen.Add(1)
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
	t.running = false
	t.paused = false
}

// Pause freezes the countdown under the freeze policy. Under the continue
// policy the deadline keeps running.
func (t *Timer) Pause() {
	if !t.running || t.policy != config.PauseFreeze {
		return
	}
	t.remaining = t.left(t.clock.Now())
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
	t.running = false
	t.paused = true
}

// Resume re-arms a frozen countdown with the time that was left.
func (t *Timer) Resume() {
	if !t.paused {
		return
	}
	t.arm()
}

func (t *Timer) left(now time.Time) time.Duration {
	if !t.running {
		return t.remaining
	}
	return max(t.remaining-now.Sub(t.armedAt), 0)
}

// Remaining returns the time left at now, never negative.
func (t *Timer) Remaining(now time.Time) time.Duration {
	return t.left(now)
}

// Seconds returns the whole seconds left, rounded up.
func (t *Timer) Seconds(now time.Time) int {
	left := t.left(now)
	return int((left + time.Second - 1) / time.Second)
}

// LevelLimit returns the time limit for a level:
// max(min, base - (level-1)*step).
func LevelLimit(cfg config.TimerConfig, level int) time.Duration {
	ms := cfg.BaseLimitMS - (level-1)*cfg.StepMS
	return time.Duration(max(cfg.MinLimitMS, ms)) * time.Millisecond
}
