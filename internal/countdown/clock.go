package countdown

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// Deadlines are resolved and remaining time is computed against it.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
