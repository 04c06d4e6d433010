package domain

import "time"

// Clock abstracts the current time so date validation (e.g. rejecting future
// work-log dates) can be tested with fixed dates.
type Clock interface {
	Now() time.Time
	// Today returns the current date truncated to midnight UTC.
	Today() time.Time
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

func (SystemClock) Today() time.Time {
	return DateOnly(time.Now().UTC())
}

// DateOnly truncates t to midnight UTC. All work-log dates are stored and
// compared in this form.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
