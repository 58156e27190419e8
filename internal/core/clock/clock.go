// Package clock abstracts system time so bill timestamps and numbering
// dates can be fixed in tests.
package clock

import "time"

// Clock supplies the current time. Bill creation timestamps and the date
// component of bill numbers are always read from a Clock, never from the
// client.
type Clock interface {
	Now() time.Time
}

// System reads time.Now in the local timezone.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always returns the same instant. Test helper.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }
