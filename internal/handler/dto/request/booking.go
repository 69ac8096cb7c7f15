package request

import (
	"time"

	"slot-booking/internal/domain/booking"
	"slot-booking/internal/domain/user"
	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/usecase/commands"
	"slot-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

var ErrInvalidInstant = errs.NewKind("dates must be YYYY-MM-DD or RFC 3339", errs.ErrValidation)

type ContactPersonRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Phone string `json:"phone" binding:"required,phone10"`
	Email string `json:"email" binding:"required,email"`
}

type CreateBookingRequest struct {
	SlotID               uuid.UUID            `json:"slot" binding:"required"`
	Club                 string               `json:"club" binding:"required,club"`
	EventName            string               `json:"eventName" binding:"required,max=200"`
	EventDescription     string               `json:"eventDescription" binding:"required,max=1000"`
	ExpectedParticipants int                  `json:"expectedParticipants" binding:"required,min=1"`
	Requirements         []string             `json:"requirements" binding:"omitempty,max=10"`
	ContactPerson        ContactPersonRequest `json:"contactPerson"`
	SpecialInstructions  *string              `json:"specialInstructions" binding:"omitempty,max=500"`
}

func (r *CreateBookingRequest) ToInput() booking.Input {
	return booking.Input{
		SlotID:               r.SlotID,
		Club:                 r.Club,
		EventName:            r.EventName,
		EventDescription:     r.EventDescription,
		ExpectedParticipants: r.ExpectedParticipants,
		Requirements:         r.Requirements,
		ContactName:          r.ContactPerson.Name,
		ContactPhone:         r.ContactPerson.Phone,
		ContactEmail:         r.ContactPerson.Email,
		SpecialInstructions:  r.SpecialInstructions,
	}
}

type ContactPersonPatch struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=100"`
	Phone *string `json:"phone" binding:"omitempty,phone10"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// UpdateBookingRequest leaves omitted fields unchanged. Setting slot moves
// the booking to another slot.
type UpdateBookingRequest struct {
	SlotID               *uuid.UUID          `json:"slot"`
	Club                 *string             `json:"club" binding:"omitempty,club"`
	EventName            *string             `json:"eventName" binding:"omitempty,min=1,max=200"`
	EventDescription     *string             `json:"eventDescription" binding:"omitempty,min=1,max=1000"`
	ExpectedParticipants *int                `json:"expectedParticipants" binding:"omitempty,min=1"`
	Requirements         *[]string           `json:"requirements" binding:"omitempty,max=10"`
	ContactPerson        *ContactPersonPatch `json:"contactPerson"`
	SpecialInstructions  *string             `json:"specialInstructions" binding:"omitempty,max=500"`
}

func (r *UpdateBookingRequest) ToPatch() commands.BookingPatch {
	p := commands.BookingPatch{
		SlotID:               r.SlotID,
		Club:                 r.Club,
		EventName:            r.EventName,
		EventDescription:     r.EventDescription,
		ExpectedParticipants: r.ExpectedParticipants,
		Requirements:         r.Requirements,
		SpecialInstructions:  r.SpecialInstructions,
	}
	if r.ContactPerson != nil {
		p.ContactName = r.ContactPerson.Name
		p.ContactPhone = r.ContactPerson.Phone
		p.ContactEmail = r.ContactPerson.Email
	}
	return p
}

type UpdateBookingStatusRequest struct {
	Status          string  `json:"status" binding:"required,oneof=pending approved rejected cancelled"`
	RejectionReason *string `json:"rejectionReason" binding:"omitempty,max=500"`
}

type BookingListQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=pending approved rejected cancelled"`
	Club   string `form:"club" binding:"omitempty,club"`
	From   string `form:"from"`
	To     string `form:"to"`
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1"`
}

func (q *BookingListQuery) ToFilter() (queries.BookingFilter, error) {
	filter := queries.BookingFilter{
		Page: queries.PageRequest{Page: q.Page, Limit: q.Limit},
	}
	var err error
	if filter.Status, err = optionalStatus(q.Status); err != nil {
		return queries.BookingFilter{}, err
	}
	if q.Club != "" {
		club, err := user.NewClub(q.Club)
		if err != nil {
			return queries.BookingFilter{}, err
		}
		filter.Club = &club
	}
	if filter.From, err = parseInstant(q.From, false); err != nil {
		return queries.BookingFilter{}, err
	}
	if filter.To, err = parseInstant(q.To, true); err != nil {
		return queries.BookingFilter{}, err
	}
	return filter, nil
}

type MyBookingsQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=pending approved rejected cancelled"`
}

func (q *MyBookingsQuery) StatusFilter() (*booking.Status, error) {
	return optionalStatus(q.Status)
}

func optionalStatus(s string) (*booking.Status, error) {
	if s == "" {
		return nil, nil
	}
	st, err := booking.NewStatus(s)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// parseInstant accepts a calendar date or an RFC 3339 timestamp. A bare
// date used as an upper bound covers the whole day.
func parseInstant(s string, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, ErrInvalidInstant
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
