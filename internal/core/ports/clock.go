package ports

import "time"

// Clock supplies the current time to handlers so timestamps stay
// deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock reading the wall clock in UTC.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now().UTC() }
