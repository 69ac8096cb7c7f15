package converter

import (
	"time"

	"slot-booking/internal/domain/slot"
	"slot-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// SlotColumns is the select list matching SlotRow.Targets.
const SlotColumns = `id, date, start_time, end_time, venue, capacity, status,
	booked_by, booking_id, event_name, event_description,
	recurring_pattern, recurring_end, created_by, created_at, updated_at`

type SlotRow struct {
	ID               uuid.UUID
	Date             pgtype.Date
	StartTime        string
	EndTime          string
	Venue            string
	Capacity         int32
	Status           string
	BookedBy         pgtype.UUID
	BookingID        pgtype.UUID
	EventName        pgtype.Text
	EventDescription pgtype.Text
	RecurringPattern string
	RecurringEnd     pgtype.Date
	CreatedBy        uuid.UUID
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (r *SlotRow) Targets() []any {
	return []any{
		&r.ID, &r.Date, &r.StartTime, &r.EndTime, &r.Venue, &r.Capacity, &r.Status,
		&r.BookedBy, &r.BookingID, &r.EventName, &r.EventDescription,
		&r.RecurringPattern, &r.RecurringEnd, &r.CreatedBy, &r.CreatedAt, &r.UpdatedAt,
	}
}

func SlotToDomain(r SlotRow) (*slot.Slot, error) {
	tr, err := slot.NewTimeRange(r.StartTime, r.EndTime)
	if err != nil {
		return nil, corrupt(err, "slot")
	}
	venue, err := slot.NewVenue(r.Venue)
	if err != nil {
		return nil, corrupt(err, "slot")
	}
	capacity, err := slot.NewCapacity(int(r.Capacity))
	if err != nil {
		return nil, corrupt(err, "slot")
	}
	status, err := slot.NewStatus(r.Status)
	if err != nil {
		return nil, corrupt(err, "slot")
	}
	pattern, err := slot.NewRecurringPattern(r.RecurringPattern)
	if err != nil {
		return nil, corrupt(err, "slot")
	}

	var holder *slot.Holder
	if r.BookingID.Valid && r.BookedBy.Valid {
		holder = &slot.Holder{
			BookingID:        uuid.UUID(r.BookingID.Bytes),
			UserID:           uuid.UUID(r.BookedBy.Bytes),
			EventName:        r.EventName.String,
			EventDescription: r.EventDescription.String,
		}
	}
	var recurringEnd *slot.Date
	if end := pgconv.DatePtrFromPgtype(r.RecurringEnd); end != nil {
		d := slot.NewDate(*end)
		recurringEnd = &d
	}

	return slot.ReconstructSlot(
		r.ID,
		slot.NewDate(r.Date.Time),
		tr,
		venue,
		capacity,
		status,
		holder,
		pattern,
		recurringEnd,
		r.CreatedBy,
		r.CreatedAt,
		r.UpdatedAt,
	), nil
}

// SlotInsertArgs orders values for the slots INSERT in SlotColumns order.
func SlotInsertArgs(s *slot.Slot) []any {
	var bookedBy, bookingID pgtype.UUID
	var eventName, eventDesc pgtype.Text
	if h := s.Holder(); h != nil {
		bookedBy = pgconv.UUIDPtrToPgtype(&h.UserID)
		bookingID = pgconv.UUIDPtrToPgtype(&h.BookingID)
		eventName = pgconv.StringPtrToPgtype(&h.EventName)
		eventDesc = pgconv.StringPtrToPgtype(&h.EventDescription)
	}
	var recurringEnd pgtype.Date
	if end := s.RecurringEnd(); end != nil {
		recurringEnd = pgconv.DateToPgtype(end.Time())
	}

	return []any{
		s.ID(),
		pgconv.DateToPgtype(s.Date().Time()),
		s.TimeRange().Start().String(),
		s.TimeRange().End().String(),
		s.Venue().String(),
		s.Capacity().Value(),
		s.Status().String(),
		bookedBy,
		bookingID,
		eventName,
		eventDesc,
		string(s.RecurringPattern()),
		recurringEnd,
		s.CreatedBy(),
		s.CreatedAt(),
		s.UpdatedAt(),
	}
}
