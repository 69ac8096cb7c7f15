package booking

import (
	"slices"
	"time"

	"slot-booking/internal/domain/user"
	"slot-booking/internal/pkg/ptr"

	"github.com/google/uuid"
)

// Input is the unvalidated editable content of a booking.
type Input struct {
	SlotID               uuid.UUID
	Club                 string
	EventName            string
	EventDescription     string
	ExpectedParticipants int
	Requirements         []string
	ContactName          string
	ContactPhone         string
	ContactEmail         string
	SpecialInstructions  *string
}

// Details is the validated editable content of a booking.
type Details struct {
	SlotID               uuid.UUID
	Club                 user.Club
	EventName            string
	EventDescription     string
	ExpectedParticipants int
	Requirements         []string
	ContactPerson        ContactPerson
	SpecialInstructions  *string
}

func NewDetails(in Input) (Details, error) {
	if in.SlotID == uuid.Nil {
		return Details{}, ErrSlotRequired
	}
	club, err := user.NewClub(in.Club)
	if err != nil {
		return Details{}, err
	}
	name, err := newEventName(in.EventName)
	if err != nil {
		return Details{}, err
	}
	desc, err := newEventDescription(in.EventDescription)
	if err != nil {
		return Details{}, err
	}
	if in.ExpectedParticipants < 1 {
		return Details{}, ErrInvalidParticipants
	}
	reqs, err := newRequirements(in.Requirements)
	if err != nil {
		return Details{}, err
	}
	contact, err := NewContactPerson(in.ContactName, in.ContactPhone, in.ContactEmail)
	if err != nil {
		return Details{}, err
	}
	instructions, err := optionalText(in.SpecialInstructions, MaxSpecialInstructionsLength, ErrSpecialInstructionsTooLong)
	if err != nil {
		return Details{}, err
	}
	return Details{
		SlotID:               in.SlotID,
		Club:                 club,
		EventName:            name,
		EventDescription:     desc,
		ExpectedParticipants: in.ExpectedParticipants,
		Requirements:         reqs,
		ContactPerson:        contact,
		SpecialInstructions:  instructions,
	}, nil
}

// Input converts validated details back to raw form so a patch can be layered on top.
func (d Details) Input() Input {
	return Input{
		SlotID:               d.SlotID,
		Club:                 d.Club.String(),
		EventName:            d.EventName,
		EventDescription:     d.EventDescription,
		ExpectedParticipants: d.ExpectedParticipants,
		Requirements:         slices.Clone(d.Requirements),
		ContactName:          d.ContactPerson.Name,
		ContactPhone:         d.ContactPerson.Phone,
		ContactEmail:         d.ContactPerson.Email,
		SpecialInstructions:  d.SpecialInstructions,
	}
}

type Booking struct {
	id              uuid.UUID
	userID          uuid.UUID
	details         Details
	status          Status
	approvedBy      *uuid.UUID
	approvalDate    *time.Time
	rejectionReason *string
	createdAt       time.Time
	updatedAt       time.Time
}

func NewBooking(ownerID uuid.UUID, details Details, now time.Time) *Booking {
	return &Booking{
		id:        uuid.New(),
		userID:    ownerID,
		details:   details,
		status:    StatusPending,
		createdAt: now,
		updatedAt: now,
	}
}

func ReconstructBooking(
	id, userID uuid.UUID,
	details Details,
	status Status,
	approvedBy *uuid.UUID,
	approvalDate *time.Time,
	rejectionReason *string,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:              id,
		userID:          userID,
		details:         details,
		status:          status,
		approvedBy:      approvedBy,
		approvalDate:    approvalDate,
		rejectionReason: rejectionReason,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// Revise replaces the editable content. Only pending bookings are editable.
func (b *Booking) Revise(details Details, now time.Time) error {
	if b.status != StatusPending {
		return ErrNotPending
	}
	b.details = details
	b.updatedAt = now
	return nil
}

// EnsureEditable fails unless the booking is still pending.
func (b *Booking) EnsureEditable() error {
	if b.status != StatusPending {
		return ErrNotPending
	}
	return nil
}

// Transition moves the booking along the status workflow. actor is recorded
// as the approver; reason is kept only while the booking is rejected.
func (b *Booking) Transition(to Status, actor uuid.UUID, reason *string, now time.Time) error {
	if !to.IsValid() {
		return ErrInvalidStatus
	}
	if !CanTransition(b.status, to) {
		return ErrTransitionNotAllowed
	}
	switch to {
	case StatusApproved:
		b.approvedBy = ptr.Of(actor)
		b.approvalDate = ptr.Of(now)
		b.rejectionReason = nil
	case StatusRejected:
		r, err := NewRejectionReason(reason)
		if err != nil {
			return err
		}
		b.rejectionReason = r
	case StatusCancelled:
		b.rejectionReason = nil
	}
	b.status = to
	b.updatedAt = now
	return nil
}

func (b *Booking) IsOwnedBy(userID uuid.UUID) bool {
	return b.userID == userID
}

func (b *Booking) ID() uuid.UUID            { return b.id }
func (b *Booking) UserID() uuid.UUID        { return b.userID }
func (b *Booking) SlotID() uuid.UUID        { return b.details.SlotID }
func (b *Booking) Details() Details         { return b.details }
func (b *Booking) Status() Status           { return b.status }
func (b *Booking) ApprovedBy() *uuid.UUID   { return b.approvedBy }
func (b *Booking) ApprovalDate() *time.Time { return b.approvalDate }
func (b *Booking) RejectionReason() *string { return b.rejectionReason }
func (b *Booking) CreatedAt() time.Time     { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time     { return b.updatedAt }

// Clone returns a deep copy.
func (b *Booking) Clone() *Booking {
	c := *b
	c.details.Requirements = slices.Clone(b.details.Requirements)
	if b.details.SpecialInstructions != nil {
		v := *b.details.SpecialInstructions
		c.details.SpecialInstructions = &v
	}
	if b.approvedBy != nil {
		v := *b.approvedBy
		c.approvedBy = &v
	}
	if b.approvalDate != nil {
		v := *b.approvalDate
		c.approvalDate = &v
	}
	if b.rejectionReason != nil {
		v := *b.rejectionReason
		c.rejectionReason = &v
	}
	return &c
}
