package shared

import "time"

// Clock abstracts wall-clock time so due-date checks are deterministic in tests
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now
func SystemClock() Clock {
	return systemClock{}
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }

// FixedClock returns a Clock frozen at t
func FixedClock(t time.Time) Clock {
	return fixedClock{t: t}
}

// OnOrBeforeDay reports whether due falls on the same calendar day as now
// or earlier. Comparison is date-granular: crossing midnight flips the
// result, the time-of-day components never do.
func OnOrBeforeDay(due, now time.Time) bool {
	dy, dm, dd := due.Date()
	ny, nm, nd := now.Date()
	d := time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)
	n := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return !d.After(n)
}
