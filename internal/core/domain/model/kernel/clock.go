package kernel

import "time"

// Clock abstracts the current time so that day-scoped delivery numbering and
// validation timestamps are deterministic under test. Production code uses
// SystemClock; tests supply a fixed implementation.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall-clock implementation of Clock.
type SystemClock struct{}

// NewSystemClock creates a Clock backed by time.Now.
func NewSystemClock() SystemClock {
	return SystemClock{}
}

// Now returns the current local time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
