// Package clock abstracts time so snapshot timestamps are deterministic
// in tests.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// NewSystemClock returns the wall clock, always in UTC.
func NewSystemClock() Clock {
	return systemClock{}
}
