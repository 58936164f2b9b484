package flyout

import (
	"sync"
	"time"
)

// Stopper cancels a scheduled callback. *time.Timer satisfies it.
type Stopper interface {
	Stop() bool
}

// Clock schedules callbacks. Tests swap in a manual clock.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Stopper
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Stopper { return time.AfterFunc(d, f) }

// RealClock schedules on the runtime timer.
var RealClock Clock = realClock{}

// Timer is a cancellable delayed action. Scheduling again replaces the
// pending action; a callback superseded or cancelled after it was already
// dispatched by the clock does not run.
type Timer struct {
	clock Clock
	delay time.Duration

	mu      sync.Mutex
	pending Stopper
	gen     uint64
}

func NewTimer(clock Clock, delay time.Duration) *Timer {
	if clock == nil {
		clock = RealClock
	}
	return &Timer{clock: clock, delay: delay}
}

// Schedule runs f after the delay unless cancelled or superseded first.
func (t *Timer) Schedule(f func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
	t.gen++
	gen := t.gen
	t.pending = t.clock.AfterFunc(t.delay, func() {
		t.mu.Lock()
		if t.gen != gen {
			t.mu.Unlock()
			return
		}
		t.pending = nil
		t.mu.Unlock()
		f()
	})
}

// Cancel drops the pending action. Reports whether one was pending.
func (t *Timer) Cancel() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	had := t.pending != nil
	t.stopLocked()
	t.gen++
	return had
}

// Pending reports whether an action is scheduled and has not fired.
func (t *Timer) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending != nil
}

func (t *Timer) stopLocked() {
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
}
