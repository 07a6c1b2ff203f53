package frameclock

import "time"

// TimeProvider supplies the current time to a Clock.
type TimeProvider interface {
	Now() time.Time
}

// SystemTime provides the real system time with monotonic clock readings.
type SystemTime struct{}

// NewSystemTime creates a system time provider.
func NewSystemTime() *SystemTime {
	return &SystemTime{}
}

// Now returns the current time.
func (SystemTime) Now() time.Time {
	return time.Now()
}

// ManualTime is a controllable time source for tests and headless runs.
// Not safe for concurrent use; the clock is single-threaded.
type ManualTime struct {
	current time.Time
}

// NewManualTime creates a manual time provider starting at start.
func NewManualTime(start time.Time) *ManualTime {
	return &ManualTime{current: start}
}

// Now returns the current manual time.
func (m *ManualTime) Now() time.Time {
	return m.current
}

// Set sets the current time.
func (m *ManualTime) Set(t time.Time) {
	m.current = t
}

// Advance moves the current time forward by d.
func (m *ManualTime) Advance(d time.Duration) {
	m.current = m.current.Add(d)
}
