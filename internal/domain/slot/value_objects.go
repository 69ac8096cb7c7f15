package slot

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MinCapacity = 1
	MaxCapacity = 1000
)

var clockTimeRegex = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

// ClockTime is a wall-clock "HH:MM" value.
type ClockTime struct {
	minutes int
}

func ParseClockTime(s string) (ClockTime, error) {
	s = strings.TrimSpace(s)
	if !clockTimeRegex.MatchString(s) {
		return ClockTime{}, ErrInvalidClockTime
	}
	parts := strings.SplitN(s, ":", 2)
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return ClockTime{minutes: h*60 + m}, nil
}

func (c ClockTime) Minutes() int { return c.minutes }

func (c ClockTime) Before(other ClockTime) bool { return c.minutes < other.minutes }

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.minutes/60, c.minutes%60)
}

type TimeRange struct {
	start ClockTime
	end   ClockTime
}

func NewTimeRange(start, end string) (TimeRange, error) {
	s, err := ParseClockTime(start)
	if err != nil {
		return TimeRange{}, err
	}
	e, err := ParseClockTime(end)
	if err != nil {
		return TimeRange{}, err
	}
	if !s.Before(e) {
		return TimeRange{}, ErrEndBeforeStart
	}
	return TimeRange{start: s, end: e}, nil
}

func (r TimeRange) Start() ClockTime { return r.start }
func (r TimeRange) End() ClockTime   { return r.end }

func (r TimeRange) Duration() time.Duration {
	return time.Duration(r.end.minutes-r.start.minutes) * time.Minute
}

type Capacity struct {
	value int
}

func NewCapacity(v int) (Capacity, error) {
	if v < MinCapacity || v > MaxCapacity {
		return Capacity{}, ErrInvalidCapacity
	}
	return Capacity{value: v}, nil
}

func (c Capacity) Value() int { return c.value }

// Date is a calendar day; the time part is always UTC midnight.
type Date struct {
	t time.Time
}

func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return NewDate(t), nil
}

func (d Date) Time() time.Time    { return d.t }
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) IsZero() bool       { return d.t.IsZero() }
func (d Date) String() string     { return d.t.Format(time.DateOnly) }

// Holder is the booking currently occupying a slot, mirrored onto it.
type Holder struct {
	BookingID        uuid.UUID
	UserID           uuid.UUID
	EventName        string
	EventDescription string
}
