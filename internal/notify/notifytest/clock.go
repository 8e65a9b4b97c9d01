// Package notifytest provides a manually driven clock for notify tests.
package notifytest

import (
	"sync"
	"time"

	"github.com/DukeRupert/savant/internal/notify"
)

// Clock records scheduled callbacks; nothing fires until the test says so.
type Clock struct {
	mu     sync.Mutex
	timers []*Timer
}

// Timer is a callback scheduled on Clock.
type Timer struct {
	clock   *Clock
	Delay   time.Duration
	f       func()
	stopped bool
	fired   bool
}

// NewClock creates an empty manual clock.
func NewClock() *Clock {
	return &Clock{}
}

// AfterFunc schedules f; it runs only when the test fires it.
func (c *Clock) AfterFunc(d time.Duration, f func()) notify.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &Timer{clock: c, Delay: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

// Stop cancels the timer. It reports whether the call stopped it.
func (t *Timer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Pending returns the timers that are neither stopped nor fired.
func (c *Clock) Pending() []*Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*Timer
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			out = append(out, t)
		}
	}
	return out
}

// All returns every timer ever scheduled, in order.
func (c *Clock) All() []*Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*Timer(nil), c.timers...)
}

// FirePending runs every pending timer.
func (c *Clock) FirePending() {
	for _, t := range c.Pending() {
		t.Fire()
	}
}

// Fire runs the callback even if the timer was stopped, which is what a
// real timer does when Stop loses the race against expiry.
func (t *Timer) Fire() {
	t.clock.mu.Lock()
	t.fired = true
	f := t.f
	t.clock.mu.Unlock()
	f()
}

var _ notify.Clock = (*Clock)(nil)
