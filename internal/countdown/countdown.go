package countdown

import (
	"fmt"
	"time"
)

// EndedLabel is the fixed sentinel shown once an auction has finished.
const EndedLabel = "Ended"

// Phase is the lifecycle position of an auction relative to its end time.
// Closing is a display hint only; bids are gated solely on Closed.
type Phase string

const (
	PhaseOpen    Phase = "open"
	PhaseClosing Phase = "closing"
	PhaseClosed  Phase = "closed"
)

// Snapshot is the result of sampling a countdown at one instant.
type Snapshot struct {
	Remaining time.Duration `json:"-"`
	Formatted string        `json:"formatted"`
	Expired   bool          `json:"expired"`
	Phase     Phase         `json:"phase"`
}

// Remaining samples the countdown to target at the given instant.
// closingWindow widens the PhaseClosing band; pass 0 to disable it.
// Output components are never negative: once now reaches target the
// snapshot reports EndedLabel and Expired regardless of how far past
// the end time the sample is taken.
func Remaining(target, now time.Time, closingWindow time.Duration) Snapshot {
	left := target.Sub(now)
	if left <= 0 {
		return Snapshot{Remaining: 0, Formatted: EndedLabel, Expired: true, Phase: PhaseClosed}
	}

	phase := PhaseOpen
	if left <= closingWindow {
		phase = PhaseClosing
	}

	return Snapshot{
		Remaining: left,
		Formatted: format(left),
		Expired:   false,
		Phase:     phase,
	}
}

// format renders a positive duration in the two coarsest non-zero units:
// "Xd Yh" above a day, "Xh Ym" above an hour, "Xm Ys" below that.
func format(d time.Duration) string {
	days := int(d / (24 * time.Hour))
	hours := int(d/time.Hour) % 24
	minutes := int(d/time.Minute) % 60
	seconds := int(d/time.Second) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
}
