package core

import (
	"sync/atomic"
	"time"
)

// FlashDuration is how long a Flash stays lit after Vibrate.
const FlashDuration = 150 * time.Millisecond

// Flash stands in for a vibration motor on hosts without one: the host
// frames the screen in red while it is active.
type Flash struct {
	until atomic.Int64 // Unix nanoseconds
}

// Vibrate implements Haptics.
func (f *Flash) Vibrate() {
	f.until.Store(time.Now().Add(FlashDuration).UnixNano())
}

// Active reports whether the flash is still showing at now.
func (f *Flash) Active(now time.Time) bool {
	return now.UnixNano() < f.until.Load()
}
