package core

import "time"

// Cadence paces discrete events, such as one alteration per interval, from a
// render loop that runs much faster than the events themselves.
type Cadence struct {
	interval time.Duration
	elapsed  time.Duration
	last     time.Time
	now      func() time.Time
}

// NewCadence constructs a Cadence that fires once per interval. The first
// call to Due fires immediately.
func NewCadence(interval time.Duration) *Cadence {
	c := &Cadence{now: time.Now}
	c.SetInterval(interval)
	c.elapsed = c.interval
	return c
}

// SetInterval changes the pacing. Non-positive values fall back to 500ms.
func (c *Cadence) SetInterval(interval time.Duration) {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	c.interval = interval
}

// Interval reports the current pacing.
func (c *Cadence) Interval() time.Duration { return c.interval }

// Due reports whether an event should fire now. At most one event fires per
// call; backlog beyond one interval is dropped.
func (c *Cadence) Due() bool {
	now := c.now()
	if c.last.IsZero() {
		c.last = now
	}
	c.elapsed += now.Sub(c.last)
	c.last = now
	if c.elapsed < c.interval {
		return false
	}
	c.elapsed -= c.interval
	if c.elapsed > c.interval {
		c.elapsed = c.interval
	}
	return true
}
