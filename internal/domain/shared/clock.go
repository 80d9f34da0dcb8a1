package shared

import "time"

// Clock stamps plan builds and catalog imports
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to Clock
type ClockFunc func() time.Time

// Now calls f
func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock reads the wall clock in UTC
func SystemClock() Clock {
	return ClockFunc(func() time.Time { return time.Now().UTC() })
}

// ManualClock only moves when told to. Tests use it to get stable build and import times.
type ManualClock struct {
	current time.Time
}

// NewManualClock starts a ManualClock at start
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{current: start}
}

func (m *ManualClock) Now() time.Time {
	return m.current
}

// Advance moves the clock forward by d
func (m *ManualClock) Advance(d time.Duration) {
	m.current = m.current.Add(d)
}
