package clock

import "time"

type Clock interface {
	Now() time.Time
}

// RealClock reports wall time in the venue's location so calendar-day
// checks such as "date in the past" use local dates.
type RealClock struct {
	loc *time.Location
}

// NewRealClock falls back to time.Local when loc is nil.
func NewRealClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return &RealClock{loc: loc}
}

func (c *RealClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// FixedClock always reports the same instant.
type FixedClock struct {
	at time.Time
}

func NewFixedClock(at time.Time) *FixedClock {
	return &FixedClock{at: at}
}

func (c *FixedClock) Now() time.Time {
	return c.at
}
