package clock

import "time"

// Clock supplies timestamps for events and status snapshots
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current UTC time
func (c *RealClock) Now() time.Time {
	return time.Now().UTC()
}

// Since returns the time elapsed on clk since t
func Since(clk Clock, t time.Time) time.Duration {
	return clk.Now().Sub(t)
}
