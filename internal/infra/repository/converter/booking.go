package converter

import (
	"time"

	"slot-booking/internal/domain/booking"
	"slot-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// BookingColumns is the select list matching BookingRow.Targets.
const BookingColumns = `id, slot_id, user_id, club, event_name, event_description,
	expected_participants, status, requirements, contact_name, contact_phone,
	contact_email, approved_by, approval_date, rejection_reason,
	special_instructions, created_at, updated_at`

type BookingRow struct {
	ID                   uuid.UUID
	SlotID               uuid.UUID
	UserID               uuid.UUID
	Club                 string
	EventName            string
	EventDescription     string
	ExpectedParticipants int32
	Status               string
	Requirements         []string
	ContactName          string
	ContactPhone         string
	ContactEmail         string
	ApprovedBy           pgtype.UUID
	ApprovalDate         pgtype.Timestamptz
	RejectionReason      pgtype.Text
	SpecialInstructions  pgtype.Text
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (r *BookingRow) Targets() []any {
	return []any{
		&r.ID, &r.SlotID, &r.UserID, &r.Club, &r.EventName, &r.EventDescription,
		&r.ExpectedParticipants, &r.Status, &r.Requirements, &r.ContactName, &r.ContactPhone,
		&r.ContactEmail, &r.ApprovedBy, &r.ApprovalDate, &r.RejectionReason,
		&r.SpecialInstructions, &r.CreatedAt, &r.UpdatedAt,
	}
}

func BookingToDomain(r BookingRow) (*booking.Booking, error) {
	details, err := booking.NewDetails(booking.Input{
		SlotID:               r.SlotID,
		Club:                 r.Club,
		EventName:            r.EventName,
		EventDescription:     r.EventDescription,
		ExpectedParticipants: int(r.ExpectedParticipants),
		Requirements:         r.Requirements,
		ContactName:          r.ContactName,
		ContactPhone:         r.ContactPhone,
		ContactEmail:         r.ContactEmail,
		SpecialInstructions:  pgconv.StringPtrFromPgtype(r.SpecialInstructions),
	})
	if err != nil {
		return nil, corrupt(err, "booking")
	}
	status, err := booking.NewStatus(r.Status)
	if err != nil {
		return nil, corrupt(err, "booking")
	}

	return booking.ReconstructBooking(
		r.ID,
		r.UserID,
		details,
		status,
		pgconv.UUIDPtrFromPgtype(r.ApprovedBy),
		pgconv.TimePtrFromPgtype(r.ApprovalDate),
		pgconv.StringPtrFromPgtype(r.RejectionReason),
		r.CreatedAt,
		r.UpdatedAt,
	), nil
}

// BookingArgs orders values in BookingColumns order.
func BookingArgs(b *booking.Booking) []any {
	mutable := BookingUpdateArgs(b)
	args := make([]any, 0, len(mutable)+2)
	args = append(args, mutable[0], mutable[1], b.UserID())
	args = append(args, mutable[2:len(mutable)-1]...)
	return append(args, b.CreatedAt(), b.UpdatedAt())
}

// BookingUpdateArgs is id followed by every mutable column and updated_at.
func BookingUpdateArgs(b *booking.Booking) []any {
	d := b.Details()
	requirements := d.Requirements
	if requirements == nil {
		requirements = []string{}
	}
	return []any{
		b.ID(),
		d.SlotID,
		d.Club.String(),
		d.EventName,
		d.EventDescription,
		d.ExpectedParticipants,
		b.Status().String(),
		requirements,
		d.ContactPerson.Name,
		d.ContactPerson.Phone,
		d.ContactPerson.Email,
		pgconv.UUIDPtrToPgtype(b.ApprovedBy()),
		pgconv.TimePtrToPgtype(b.ApprovalDate()),
		pgconv.StringPtrToPgtype(b.RejectionReason()),
		pgconv.StringPtrToPgtype(d.SpecialInstructions),
		b.UpdatedAt(),
	}
}
