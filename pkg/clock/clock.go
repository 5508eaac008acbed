package clock

import (
	"sync"
	"time"
)

// Clock supplies the current time.  Anything that compares against "today"
// reads it through a Clock so tests can pin the date.
type Clock interface {
	Now() time.Time
}

type systemClock struct {
	loc *time.Location
}

// System returns a Clock backed by time.Now, reported in loc.
// A nil loc falls back to time.Local.
func System(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return systemClock{loc: loc}
}

func (c systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// FixedClock always reports the same instant until Set is called.
type FixedClock struct {
	mu sync.RWMutex
	t  time.Time
}

// Fixed returns a FixedClock pinned at t.
func Fixed(t time.Time) *FixedClock {
	return &FixedClock{t: t}
}

func (c *FixedClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.t
}

// Set moves the clock to t.
func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Today returns midnight of the current calendar day of c.
func Today(c Clock) time.Time {
	return StartOfDay(c.Now())
}

// DayAfter reports whether the calendar day of a is strictly later than the
// calendar day of b.  Each instant is read as a civil date in its own
// location, so wall-clock hours never matter.
func DayAfter(a, b time.Time) bool {
	return civilDate(a).After(civilDate(b))
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
