package queries

//go:generate mockgen -destination=../../../tests/mock/queries/queries.go -package=queriesmock slot-booking/internal/usecase/queries BookingQueries,SlotQueries,UserQueries

import (
	"time"

	"github.com/google/uuid"
)

type SlotView struct {
	ID               uuid.UUID  `json:"id"`
	Date             string     `json:"date"`
	StartTime        string     `json:"startTime"`
	EndTime          string     `json:"endTime"`
	Venue            string     `json:"venue"`
	Capacity         int        `json:"capacity"`
	Status           string     `json:"status"`
	BookedBy         *uuid.UUID `json:"bookedBy,omitempty"`
	BookingID        *uuid.UUID `json:"bookingId,omitempty"`
	EventName        *string    `json:"eventName,omitempty"`
	EventDescription *string    `json:"eventDescription,omitempty"`
	RecurringPattern string     `json:"recurringPattern"`
	RecurringEnd     *string    `json:"recurringEnd,omitempty"`
	CreatedBy        uuid.UUID  `json:"createdBy"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// SlotSummary is the slot as embedded in a booking.
type SlotSummary struct {
	ID        uuid.UUID `json:"id"`
	Date      string    `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Venue     string    `json:"venue"`
	Capacity  int       `json:"capacity"`
}

type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
	Club  *string   `json:"club,omitempty"`
}

type ContactPersonView struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type BookingView struct {
	ID                   uuid.UUID         `json:"id"`
	Slot                 SlotSummary       `json:"slot"`
	User                 UserSummary       `json:"user"`
	Club                 string            `json:"club"`
	EventName            string            `json:"eventName"`
	EventDescription     string            `json:"eventDescription"`
	ExpectedParticipants int               `json:"expectedParticipants"`
	Status               string            `json:"status"`
	Requirements         []string          `json:"requirements"`
	ContactPerson        ContactPersonView `json:"contactPerson"`
	ApprovedBy           *UserSummary      `json:"approvedBy,omitempty"`
	ApprovalDate         *time.Time        `json:"approvalDate,omitempty"`
	RejectionReason      *string           `json:"rejectionReason,omitempty"`
	SpecialInstructions  *string           `json:"specialInstructions,omitempty"`
	CreatedAt            time.Time         `json:"createdAt"`
	UpdatedAt            time.Time         `json:"updatedAt"`
}

type UserView struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Club      *string    `json:"club,omitempty"`
	IsActive  bool       `json:"isActive"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}
