package gu

import "time"

// Clock measures the time between frames.
type Clock struct {
	now  func() time.Time
	last time.Time
}

// NewClock starts a clock on the wall time.
func NewClock() *Clock {
	return NewClockFunc(time.Now)
}

// NewClockFunc starts a clock on a custom time source.
func NewClockFunc(now func() time.Time) *Clock {
	return &Clock{now: now, last: now()}
}

// Delta returns the seconds elapsed since the previous call (or since the
// clock was created) and restarts the measurement.
func (c *Clock) Delta() float64 {
	t := c.now()
	dt := t.Sub(c.last).Seconds()
	c.last = t
	return dt
}
