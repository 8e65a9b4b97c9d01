package notify_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DukeRupert/savant/internal/notify"
	"github.com/DukeRupert/savant/internal/notify/notifytest"
)

func TestNotifier_StartsIdle(t *testing.T) {
	n := notify.New()
	assert.Equal(t, notify.Idle(), n.Current())
}

func TestNotifier_AutoDismissAfterDelay(t *testing.T) {
	clock := notifytest.NewClock()
	n := notify.New(notify.WithClock(clock))

	n.Show(notify.Success("Thanks!"))
	assert.Equal(t, notify.Success("Thanks!"), n.Current())

	pending := clock.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, 4000*time.Millisecond, pending[0].Delay)

	clock.FirePending()
	assert.Equal(t, notify.Idle(), n.Current())
}

func TestNotifier_ManualDismissCancelsTimer(t *testing.T) {
	clock := notifytest.NewClock()
	n := notify.New(notify.WithClock(clock))

	n.Show(notify.Failure("Something went wrong"))
	n.Dismiss()

	assert.Equal(t, notify.Idle(), n.Current())
	assert.Empty(t, clock.Pending(), "dismissal timer should be stopped")
}

func TestNotifier_NewNotificationCancelsOldTimer(t *testing.T) {
	clock := notifytest.NewClock()
	n := notify.New(notify.WithClock(clock))

	n.Show(notify.Failure("first"))
	n.Show(notify.Success("second"))

	all := clock.All()
	require.Len(t, all, 2)
	assert.Len(t, clock.Pending(), 1)

	// The first timer loses the race against Stop and fires anyway.
	all[0].Fire()
	assert.Equal(t, notify.Success("second"), n.Current(), "stale timer must not clear newer notification")

	all[1].Fire()
	assert.Equal(t, notify.Idle(), n.Current())
}

func TestNotifier_StaleTimerAfterDismissAndShow(t *testing.T) {
	clock := notifytest.NewClock()
	n := notify.New(notify.WithClock(clock))

	n.Show(notify.Success("one"))
	n.Dismiss()
	n.Show(notify.Success("two"))

	clock.All()[0].Fire()
	assert.Equal(t, notify.Success("two"), n.Current())
}

func TestNotifier_PendingIsNotAutoDismissed(t *testing.T) {
	clock := notifytest.NewClock()
	n := notify.New(notify.WithClock(clock))

	n.Show(notify.Success("old"))
	n.Show(notify.Pending())

	assert.Equal(t, notify.StatusPending, n.Current().Status)
	assert.Empty(t, clock.Pending())
}

func TestNotifier_OnChange(t *testing.T) {
	clock := notifytest.NewClock()
	var seen []notify.Status
	n := notify.New(
		notify.WithClock(clock),
		notify.WithOnChange(func(o notify.Outcome) { seen = append(seen, o.Status) }),
	)

	n.Show(notify.Pending())
	n.Show(notify.Success("ok"))
	clock.FirePending()

	assert.Equal(t, []notify.Status{notify.StatusPending, notify.StatusSuccess, notify.StatusIdle}, seen)
}

func TestNotifier_RealClock(t *testing.T) {
	var mu sync.Mutex
	done := make(chan struct{})
	n := notify.New(
		notify.WithDelay(10*time.Millisecond),
		notify.WithOnChange(func(o notify.Outcome) {
			mu.Lock()
			defer mu.Unlock()
			if o.Status == notify.StatusIdle {
				close(done)
			}
		}),
	)

	n.Show(notify.Success("ok"))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not dismissed")
	}
	assert.Equal(t, notify.Idle(), n.Current())
}

func TestOutcome_Terminal(t *testing.T) {
	assert.False(t, notify.Idle().Terminal())
	assert.False(t, notify.Pending().Terminal())
	assert.True(t, notify.Success("x").Terminal())
	assert.True(t, notify.Failure("x").Terminal())
}
