// Package clock provides the single source of "now" for the application and
// the periodic driver that re-samples it for countdown displays.
package clock

import "time"

// Clock provides the current time
type Clock interface {
	Now() time.Time
}

// Real returns the system time
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

// Fixed always returns T
type Fixed struct {
	T time.Time
}

func (c Fixed) Now() time.Time { return c.T }

// Func adapts a function to the Clock interface
type Func func() time.Time

func (f Func) Now() time.Time { return f() }
