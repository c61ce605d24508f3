package timer

import "time"

// NewWithClock exposes the clock-injected constructor to tests.
func NewWithClock(now func() time.Time) Timer {
	return newWithClock(now)
}
