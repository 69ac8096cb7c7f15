package slot

import (
	"time"

	"github.com/google/uuid"
)

type Slot struct {
	id               uuid.UUID
	date             Date
	timeRange        TimeRange
	venue            Venue
	capacity         Capacity
	status           Status
	holder           *Holder
	recurringPattern RecurringPattern
	recurringEnd     *Date
	createdBy        uuid.UUID
	createdAt        time.Time
	updatedAt        time.Time
}

// NewSlot creates an available slot. The date is compared against the
// calendar day of now.
func NewSlot(
	date Date,
	timeRange TimeRange,
	venue Venue,
	capacity Capacity,
	pattern RecurringPattern,
	recurringEnd *Date,
	createdBy uuid.UUID,
	now time.Time,
) (*Slot, error) {
	if date.Before(NewDate(now)) {
		return nil, ErrDateInPast
	}
	if !venue.IsValid() {
		return nil, ErrInvalidVenue
	}
	if pattern == "" {
		pattern = RecurringNone
	}
	if !pattern.IsValid() {
		return nil, ErrInvalidRecurring
	}
	if recurringEnd != nil && recurringEnd.Before(date) {
		return nil, ErrRecurringEndBeforeDate
	}
	return &Slot{
		id:               uuid.New(),
		date:             date,
		timeRange:        timeRange,
		venue:            venue,
		capacity:         capacity,
		status:           StatusAvailable,
		recurringPattern: pattern,
		recurringEnd:     recurringEnd,
		createdBy:        createdBy,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

func ReconstructSlot(
	id uuid.UUID,
	date Date,
	timeRange TimeRange,
	venue Venue,
	capacity Capacity,
	status Status,
	holder *Holder,
	pattern RecurringPattern,
	recurringEnd *Date,
	createdBy uuid.UUID,
	createdAt, updatedAt time.Time,
) *Slot {
	return &Slot{
		id:               id,
		date:             date,
		timeRange:        timeRange,
		venue:            venue,
		capacity:         capacity,
		status:           status,
		holder:           holder,
		recurringPattern: pattern,
		recurringEnd:     recurringEnd,
		createdBy:        createdBy,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// Reserve marks the slot booked by holder. Only an available slot can be reserved.
func (s *Slot) Reserve(holder Holder, now time.Time) error {
	if s.status != StatusAvailable {
		return ErrSlotUnavailable
	}
	h := holder
	s.holder = &h
	s.status = StatusBooked
	s.updatedAt = now
	return nil
}

// Release frees a booked slot and reports whether anything changed.
func (s *Slot) Release(now time.Time) bool {
	if s.status != StatusBooked {
		return false
	}
	s.status = StatusAvailable
	s.holder = nil
	s.updatedAt = now
	return true
}

// RefreshEvent rewrites the event mirror of the current holder.
func (s *Slot) RefreshEvent(name, description string, now time.Time) {
	if s.holder == nil {
		return
	}
	s.holder.EventName = name
	s.holder.EventDescription = description
	s.updatedAt = now
}

// SetStatus is the administrative status change. Booked is reached only via Reserve.
func (s *Slot) SetStatus(status Status, now time.Time) error {
	switch status {
	case StatusAvailable, StatusMaintenance, StatusCancelled:
	default:
		return ErrStatusNotSettable
	}
	if s.status == StatusBooked {
		return ErrSlotBooked
	}
	s.status = status
	s.updatedAt = now
	return nil
}

func (s *Slot) CheckCapacity(participants int) error {
	if participants > s.capacity.Value() {
		return ErrCapacityExceeded
	}
	return nil
}

// CheckNotPast rejects a slot whose calendar day is before now's.
func (s *Slot) CheckNotPast(now time.Time) error {
	if s.date.Before(NewDate(now)) {
		return ErrDateInPast
	}
	return nil
}

func (s *Slot) HeldBy(bookingID uuid.UUID) bool {
	return s.holder != nil && s.holder.BookingID == bookingID
}

func (s *Slot) IsAvailable() bool {
	return s.status == StatusAvailable
}

// Fits reports whether the slot lies inside the optional [startsFrom, endsBy] window.
func (s *Slot) Fits(startsFrom, endsBy *ClockTime) bool {
	if startsFrom != nil && s.timeRange.Start().Before(*startsFrom) {
		return false
	}
	if endsBy != nil && endsBy.Before(s.timeRange.End()) {
		return false
	}
	return true
}

func (s *Slot) ID() uuid.UUID                      { return s.id }
func (s *Slot) Date() Date                         { return s.date }
func (s *Slot) TimeRange() TimeRange               { return s.timeRange }
func (s *Slot) Venue() Venue                       { return s.venue }
func (s *Slot) Capacity() Capacity                 { return s.capacity }
func (s *Slot) Status() Status                     { return s.status }
func (s *Slot) Holder() *Holder                    { return s.holder }
func (s *Slot) RecurringPattern() RecurringPattern { return s.recurringPattern }
func (s *Slot) RecurringEnd() *Date                { return s.recurringEnd }
func (s *Slot) CreatedBy() uuid.UUID               { return s.createdBy }
func (s *Slot) CreatedAt() time.Time               { return s.createdAt }
func (s *Slot) UpdatedAt() time.Time               { return s.updatedAt }

// Clone returns a deep copy.
func (s *Slot) Clone() *Slot {
	c := *s
	if s.holder != nil {
		h := *s.holder
		c.holder = &h
	}
	if s.recurringEnd != nil {
		d := *s.recurringEnd
		c.recurringEnd = &d
	}
	return &c
}
