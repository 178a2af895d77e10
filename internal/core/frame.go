package core

import (
	"sync"
	"time"
)

// FrameQueue is a single-slot frame scheduler.
// Hosts call Fire once per refresh; scheduling again before the slot fires
// replaces the pending callback, so at most one frame is ever outstanding.
type FrameQueue struct {
	mu      sync.Mutex
	pending FrameFunc
}

// ScheduleNextFrame implements FrameScheduler.
func (q *FrameQueue) ScheduleNextFrame(f FrameFunc) {
	q.mu.Lock()
	q.pending = f
	q.mu.Unlock()
}

// Pending reports whether a frame is waiting to fire.
func (q *FrameQueue) Pending() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pending != nil
}

// Cancel drops the pending frame, if any.
func (q *FrameQueue) Cancel() {
	q.mu.Lock()
	q.pending = nil
	q.mu.Unlock()
}

// Fire runs the pending frame with the given timestamp.
// The slot is cleared before the callback runs so it may reschedule itself.
func (q *FrameQueue) Fire(now time.Time) bool {
	q.mu.Lock()
	f := q.pending
	q.pending = nil
	q.mu.Unlock()

	if f == nil {
		return false
	}
	f(now)
	return true
}
