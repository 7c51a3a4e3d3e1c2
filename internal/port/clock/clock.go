// Package clock defines the injected time source. The decision engine never
// reads the wall clock directly so scoring, state transitions, and log
// ordering stay deterministic under test.
package clock

import "time"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock in UTC.
type System struct{}

func (System) Now() time.Time { return time.Now().UTC() }

// Fixed always returns the same instant. Test use only.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }
