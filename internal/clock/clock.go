// Package clock lets services read "now" through an injected dependency so
// the past/upcoming split can be tested against a fixed instant.
package clock

import "time"

// Clock allows injecting time in services.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// NewSystem returns a clock backed by time.Now. Listings compare naive local
// wall time, so the result stays in time.Local.
func NewSystem() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	// Round(0) strips the monotonic reading; comparisons against stored
	// start times must use the wall clock only.
	return time.Now().Round(0)
}

type fixedClock struct {
	now time.Time
}

// NewFixed returns a clock that always returns the same instant (useful for tests).
func NewFixed(t time.Time) Clock {
	return fixedClock{now: t}
}

func (f fixedClock) Now() time.Time {
	return f.now
}
