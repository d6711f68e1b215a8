package game

import (
	"fmt"
	"time"
)

// Clock reports the time that passed since the previous tick.
type Clock interface {
	Elapsed() float64
}

// FrameClock is a Clock over a monotonic time source.
type FrameClock struct {
	now  func() time.Time
	last time.Time
}

// NewFrameClock starts a clock at the current instant of now. A nil now uses time.Now.
func NewFrameClock(now func() time.Time) *FrameClock {
	if now == nil {
		now = time.Now
	}
	return &FrameClock{now: now, last: now()}
}

// Elapsed returns the seconds since the previous call (or since creation) and restarts the measure.
func (c *FrameClock) Elapsed() float64 {
	t := c.now()
	dt := t.Sub(c.last).Seconds()
	c.last = t
	if dt < 0 {
		return 0
	}
	return dt
}

// FormatClock renders seconds as MM:SS.
func FormatClock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
