package session

import "time"

// Timer is a pending single-shot callback
type Timer interface {
	// Stop prevents the callback from running; it reports whether the
	// timer was still pending
	Stop() bool
}

// Clock schedules callbacks. Tests replace it with a manual clock.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemClock is the wall clock
type SystemClock struct{}

// Now returns the current time
func (SystemClock) Now() time.Time {
	return time.Now()
}

// AfterFunc runs f in its own goroutine after d
func (SystemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
