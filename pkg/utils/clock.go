package utils

import "time"

// Clock shifts timestamps into the journal's display timezone.
// The offset is a configuration value; date and time-of-day comparisons
// in the analytics core all go through a Clock so no fixed zone is
// baked into the computations.
type Clock struct {
	Offset time.Duration
}

// NewClock builds a Clock from an offset in hours (fractional hours
// allowed, e.g. 5.5 for UTC+5:30).
func NewClock(offsetHours float64) Clock {
	return Clock{Offset: time.Duration(offsetHours * float64(time.Hour))}
}

// Wall returns the timestamp on the journal's wall clock.
func (c Clock) Wall(t time.Time) time.Time {
	return t.UTC().Add(c.Offset)
}

// Day truncates a timestamp to its calendar day on the journal's wall
// clock. The result is a UTC midnight, safe for day arithmetic.
func (c Clock) Day(t time.Time) time.Time {
	w := c.Wall(t)
	return time.Date(w.Year(), w.Month(), w.Day(), 0, 0, 0, 0, time.UTC)
}

// HHMM formats the wall-clock time of day as a zero-padded 24h string.
// Lexical comparison of these strings orders them chronologically.
func (c Clock) HHMM(t time.Time) string {
	return c.Wall(t).Format("15:04")
}
