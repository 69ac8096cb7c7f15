//go:build unit || e2e

package builder

import (
	"time"

	"slot-booking/internal/domain/slot"
	reqdto "slot-booking/internal/handler/dto/request"
	"slot-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type SlotBuilder struct {
	Date         time.Time
	StartTime    string
	EndTime      string
	Venue        string
	Capacity     int
	Recurring    string
	RecurringEnd *time.Time
	CreatedBy    uuid.UUID
	Now          time.Time
}

func NewSlotBuilder() *SlotBuilder {
	now := time.Now()
	return &SlotBuilder{
		Date:      now.AddDate(0, 0, 7),
		StartTime: "10:00",
		EndTime:   "12:00",
		Venue:     slot.VenueAuditorium.String(),
		Capacity:  100,
		Recurring: string(slot.RecurringNone),
		CreatedBy: uuid.New(),
		Now:       now,
	}
}

func (s *SlotBuilder) With(mutate func(*SlotBuilder)) *SlotBuilder {
	mutate(s)
	return s
}

// Build methods
func (s *SlotBuilder) BuildDomain() (*slot.Slot, error) {
	tr, err := slot.NewTimeRange(s.StartTime, s.EndTime)
	if err != nil {
		return nil, err
	}
	venue, err := slot.NewVenue(s.Venue)
	if err != nil {
		return nil, err
	}
	capacity, err := slot.NewCapacity(s.Capacity)
	if err != nil {
		return nil, err
	}
	pattern, err := slot.NewRecurringPattern(s.Recurring)
	if err != nil {
		return nil, err
	}
	var recurringEnd *slot.Date
	if s.RecurringEnd != nil {
		d := slot.NewDate(*s.RecurringEnd)
		recurringEnd = &d
	}
	return slot.NewSlot(slot.NewDate(s.Date), tr, venue, capacity, pattern, recurringEnd, s.CreatedBy, s.Now)
}

// MustBuild panics on invalid builder state; for fixtures only.
func (s *SlotBuilder) MustBuild() *slot.Slot {
	sl, err := s.BuildDomain()
	if err != nil {
		panic(err)
	}
	return sl
}

func (s *SlotBuilder) BuildCreateRequestDTO() reqdto.CreateSlotRequest {
	req := reqdto.CreateSlotRequest{
		Date:             s.Date.Format(time.DateOnly),
		StartTime:        s.StartTime,
		EndTime:          s.EndTime,
		Venue:            s.Venue,
		Capacity:         s.Capacity,
		RecurringPattern: s.Recurring,
	}
	if s.RecurringEnd != nil {
		end := s.RecurringEnd.Format(time.DateOnly)
		req.RecurringEnd = &end
	}
	return req
}

func (s *SlotBuilder) BuildView(id uuid.UUID) *queries.SlotView {
	return &queries.SlotView{
		ID:               id,
		Date:             s.Date.Format(time.DateOnly),
		StartTime:        s.StartTime,
		EndTime:          s.EndTime,
		Venue:            s.Venue,
		Capacity:         s.Capacity,
		Status:           slot.StatusAvailable.String(),
		RecurringPattern: s.Recurring,
		CreatedBy:        s.CreatedBy,
		CreatedAt:        s.Now,
		UpdatedAt:        s.Now,
	}
}

// Fluent builder methods
func (s *SlotBuilder) WithDate(d time.Time) *SlotBuilder {
	s.Date = d
	return s
}

func (s *SlotBuilder) WithTimes(start, end string) *SlotBuilder {
	s.StartTime = start
	s.EndTime = end
	return s
}

func (s *SlotBuilder) WithVenue(venue string) *SlotBuilder {
	s.Venue = venue
	return s
}

func (s *SlotBuilder) WithCapacity(capacity int) *SlotBuilder {
	s.Capacity = capacity
	return s
}

func (s *SlotBuilder) WithRecurring(pattern string, end *time.Time) *SlotBuilder {
	s.Recurring = pattern
	s.RecurringEnd = end
	return s
}
