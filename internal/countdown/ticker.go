package countdown

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultInterval is the cadence at which a countdown is re-sampled.
const DefaultInterval = time.Second

// Ticker re-samples a countdown on a fixed cadence. It holds no per-watch
// state; each Watch call owns its own timer and tears it down with the
// context, so an abandoned view never leaks a timer.
type Ticker struct {
	clock         clockwork.Clock
	interval      time.Duration
	closingWindow time.Duration
}

// NewTicker creates a Ticker driven by the given clock. A non-positive
// interval falls back to DefaultInterval.
func NewTicker(clock clockwork.Clock, interval, closingWindow time.Duration) *Ticker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Ticker{
		clock:         clock,
		interval:      interval,
		closingWindow: closingWindow,
	}
}

// Watch emits a snapshot immediately and then once per interval until the
// countdown expires or ctx is cancelled. The returned channel is closed on
// teardown; the final emitted snapshot of a completed watch is the expired
// one.
func (t *Ticker) Watch(ctx context.Context, target time.Time) <-chan Snapshot {
	out := make(chan Snapshot, 1)

	go func() {
		defer close(out)

		tick := t.clock.NewTicker(t.interval)
		defer tick.Stop()

		for {
			snap := Remaining(target, t.clock.Now(), t.closingWindow)

			select {
			case out <- snap:
			case <-ctx.Done():
				return
			}

			if snap.Expired {
				return
			}

			select {
			case <-ctx.Done():
				return
			case <-tick.Chan():
			}
		}
	}()

	return out
}
