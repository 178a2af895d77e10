// Package sound routes gameplay cues to an audio output and haptics.
// It never feeds back into gameplay state.
package sound

import (
	"sync"

	"github.com/vovakirdan/jumprope/internal/core"
)

// Dispatcher plays cues fire-and-forget. A disabled dispatcher drops every call.
type Dispatcher struct {
	mu      sync.Mutex
	enabled bool
	out     core.AudioOut
	haptics core.Haptics
	logger  core.Logger
	warned  map[core.Cue]bool
}

// NewDispatcher creates a dispatcher. out and haptics may be nil.
func NewDispatcher(out core.AudioOut, haptics core.Haptics, logger core.Logger, enabled bool) *Dispatcher {
	return &Dispatcher{
		enabled: enabled,
		out:     out,
		haptics: haptics,
		logger:  logger,
		warned:  make(map[core.Cue]bool),
	}
}

// PlayCue plays c if sound is enabled. Unknown cues and output failures
// are logged once per cue and otherwise ignored.
func (d *Dispatcher) PlayCue(c core.Cue) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.enabled || d.out == nil {
		return
	}
	if !c.Valid() {
		d.warnOnce(c, "unknown sound cue", nil)
		return
	}
	if err := d.out.PlayCue(c); err != nil {
		d.warnOnce(c, "sound cue unavailable", err)
	}
}

func (d *Dispatcher) warnOnce(c core.Cue, msg string, err error) {
	if d.warned[c] || d.logger == nil {
		return
	}
	d.warned[c] = true
	if err != nil {
		d.logger.Warn(msg, "cue", string(c), "error", err)
		return
	}
	d.logger.Warn(msg, "cue", string(c))
}

// Vibrate triggers a short vibration when haptics are available and sound is on.
func (d *Dispatcher) Vibrate() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.enabled || d.haptics == nil {
		return
	}
	d.haptics.Vibrate()
}

// Toggle flips the enabled flag and returns the new value.
func (d *Dispatcher) Toggle() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.enabled = !d.enabled
	return d.enabled
}

// SetEnabled sets the enabled flag.
func (d *Dispatcher) SetEnabled(on bool) {
	d.mu.Lock()
	d.enabled = on
	d.mu.Unlock()
}

// Enabled reports whether cues are played.
func (d *Dispatcher) Enabled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.enabled
}
