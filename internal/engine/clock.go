package engine

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// It decides what "today" is for the chart, the sidebar and the feed.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Today returns the clock's local calendar date.
func Today(c Clock) time.Time {
	return CivilDate(c.Now())
}
