// Package clock lets seed data and tests pin the current time.
package clock

import "time"

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System returns the wall clock.
func System() Clock {
	return systemClock{}
}

// FixedClock always reports the same instant.
type FixedClock struct {
	at time.Time
}

// Fixed returns a clock stopped at t.
func Fixed(t time.Time) *FixedClock {
	return &FixedClock{at: t}
}

// Now returns the pinned instant.
func (c *FixedClock) Now() time.Time {
	return c.at
}

// Advance moves the pinned instant by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.at = c.at.Add(d)
}
