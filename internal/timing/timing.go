// Package timing measures the phases of an operation for debug logging.
package timing

import (
	"fmt"
	"strings"
	"time"
)

// Timer records named phases of one operation. Each Mark closes the phase
// begun by the previous one, so phases are deltas, not running totals.
type Timer struct {
	start time.Time
	prev  time.Time
	marks []Phase
}

// Phase is one named span of a Timer.
type Phase struct {
	Label    string
	Duration time.Duration
}

// NewTimer starts timing.
func NewTimer() *Timer {
	now := time.Now()
	return &Timer{start: now, prev: now}
}

// Mark closes the current phase under label and starts the next one,
// returning the phase's duration.
func (t *Timer) Mark(label string) time.Duration {
	now := time.Now()
	d := now.Sub(t.prev)
	t.prev = now
	t.marks = append(t.marks, Phase{Label: label, Duration: d})
	return d
}

// Elapsed returns the total time since the timer started.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Get returns the duration of the named phase.
func (t *Timer) Get(label string) (time.Duration, bool) {
	for _, p := range t.marks {
		if p.Label == label {
			return p.Duration, true
		}
	}
	return 0, false
}

// Summary formats the total and every phase for a debug log line.
func (t *Timer) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "total=%.3fms", ms(t.Elapsed()))
	for _, p := range t.marks {
		fmt.Fprintf(&b, " %s=%.3fms", p.Label, ms(p.Duration))
	}
	return b.String()
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}
