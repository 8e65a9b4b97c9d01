// Package notify models the enquiry outcome notification: one visible
// outcome at a time, dismissed by the user or automatically after a delay.
package notify

import (
	"sync"
	"time"
)

// DismissAfter is how long a success or failure notification stays visible.
const DismissAfter = 4000 * time.Millisecond

// Status is the state of an enquiry submission.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Outcome is what the notification currently shows. Detail is the message
// displayed for success and failure.
type Outcome struct {
	Status Status `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func Idle() Outcome { return Outcome{Status: StatusIdle} }
func Pending() Outcome { return Outcome{Status: StatusPending} }
func Success(detail string) Outcome { return Outcome{Status: StatusSuccess, Detail: detail} }
func Failure(detail string) Outcome { return Outcome{Status: StatusFailure, Detail: detail} }

// Terminal reports whether o ends a submission (success or failure).
func (o Outcome) Terminal() bool {
	return o.Status == StatusSuccess || o.Status == StatusFailure
}

// =============================================================================
// Clock
// =============================================================================

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks. The default uses time.AfterFunc.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// =============================================================================
// Notifier
// =============================================================================

// Notifier holds the visible outcome and its pending auto-dismissal.
//
// Every Show and Dismiss bumps a generation counter; a dismissal only clears
// the outcome it was scheduled for. Stopping a time.Timer does not stop a
// callback that has already started, so the generation check is what keeps
// a stale timer from clearing a newer notification.
type Notifier struct {
	mu       sync.Mutex
	clock    Clock
	delay    time.Duration
	current  Outcome
	timer    Timer
	gen      uint64
	onChange func(Outcome)
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithClock replaces the scheduler, mainly for tests.
func WithClock(c Clock) Option {
	return func(n *Notifier) { n.clock = c }
}

// WithDelay overrides DismissAfter.
func WithDelay(d time.Duration) Option {
	return func(n *Notifier) { n.delay = d }
}

// WithOnChange registers a callback invoked after every change, outside the lock.
func WithOnChange(f func(Outcome)) Option {
	return func(n *Notifier) { n.onChange = f }
}

// New creates an idle notifier.
func New(opts ...Option) *Notifier {
	n := &Notifier{
		clock:   realClock{},
		delay:   DismissAfter,
		current: Idle(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Current returns the visible outcome.
func (n *Notifier) Current() Outcome {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Show replaces the visible outcome and cancels any scheduled dismissal.
// Success and failure outcomes are dismissed automatically after the delay.
func (n *Notifier) Show(o Outcome) {
	n.mu.Lock()
	n.stopLocked()
	n.gen++
	n.current = o
	if o.Terminal() {
		gen := n.gen
		n.timer = n.clock.AfterFunc(n.delay, func() { n.expire(gen) })
	}
	cb := n.onChange
	n.mu.Unlock()

	if cb != nil {
		cb(o)
	}
}

// Dismiss clears the outcome now and cancels the scheduled dismissal.
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	n.stopLocked()
	n.gen++
	n.current = Idle()
	cb := n.onChange
	n.mu.Unlock()

	if cb != nil {
		cb(Idle())
	}
}

// expire is the auto-dismiss callback for generation gen.
func (n *Notifier) expire(gen uint64) {
	n.mu.Lock()
	if gen != n.gen {
		n.mu.Unlock()
		return
	}
	n.timer = nil
	n.gen++
	n.current = Idle()
	cb := n.onChange
	n.mu.Unlock()

	if cb != nil {
		cb(Idle())
	}
}

func (n *Notifier) stopLocked() {
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}
