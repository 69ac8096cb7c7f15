//go:build unit || e2e

package builder

import (
	"time"

	"slot-booking/internal/domain/booking"
	"slot-booking/internal/domain/user"
	reqdto "slot-booking/internal/handler/dto/request"
	"slot-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	SlotID               uuid.UUID
	OwnerID              uuid.UUID
	Club                 string
	EventName            string
	EventDescription     string
	ExpectedParticipants int
	Requirements         []string
	ContactName          string
	ContactPhone         string
	ContactEmail         string
	SpecialInstructions  *string
	Now                  time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		SlotID:               uuid.New(),
		OwnerID:              uuid.New(),
		Club:                 user.ClubTechnical.String(),
		EventName:            "Hackathon Kickoff",
		EventDescription:     "Opening session for the annual hackathon",
		ExpectedParticipants: 50,
		Requirements:         []string{"Projector", "Microphone"},
		ContactName:          "Asha Rao",
		ContactPhone:         "9876543210",
		ContactEmail:         "asha@example.com",
		Now:                  time.Now(),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildInput() booking.Input {
	return booking.Input{
		SlotID:               b.SlotID,
		Club:                 b.Club,
		EventName:            b.EventName,
		EventDescription:     b.EventDescription,
		ExpectedParticipants: b.ExpectedParticipants,
		Requirements:         b.Requirements,
		ContactName:          b.ContactName,
		ContactPhone:         b.ContactPhone,
		ContactEmail:         b.ContactEmail,
		SpecialInstructions:  b.SpecialInstructions,
	}
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	details, err := booking.NewDetails(b.BuildInput())
	if err != nil {
		return nil, err
	}
	return booking.NewBooking(b.OwnerID, details, b.Now), nil
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		SlotID:               b.SlotID,
		Club:                 b.Club,
		EventName:            b.EventName,
		EventDescription:     b.EventDescription,
		ExpectedParticipants: b.ExpectedParticipants,
		Requirements:         b.Requirements,
		ContactPerson: reqdto.ContactPersonRequest{
			Name:  b.ContactName,
			Phone: b.ContactPhone,
			Email: b.ContactEmail,
		},
		SpecialInstructions: b.SpecialInstructions,
	}
}

// BuildView returns a pending booking view as the read side would.
func (b *BookingBuilder) BuildView(id uuid.UUID) *queries.BookingView {
	return &queries.BookingView{
		ID: id,
		Slot: queries.SlotSummary{
			ID:        b.SlotID,
			Date:      b.Now.AddDate(0, 0, 7).Format(time.DateOnly),
			StartTime: "10:00",
			EndTime:   "12:00",
			Venue:     "Auditorium",
			Capacity:  100,
		},
		User: queries.UserSummary{
			ID:    b.OwnerID,
			Name:  "Test Admin",
			Email: "test@example.com",
			Role:  user.RoleClubAdmin.String(),
		},
		Club:                 b.Club,
		EventName:            b.EventName,
		EventDescription:     b.EventDescription,
		ExpectedParticipants: b.ExpectedParticipants,
		Status:               booking.StatusPending.String(),
		Requirements:         b.Requirements,
		ContactPerson: queries.ContactPersonView{
			Name:  b.ContactName,
			Phone: b.ContactPhone,
			Email: b.ContactEmail,
		},
		SpecialInstructions: b.SpecialInstructions,
		CreatedAt:           b.Now,
		UpdatedAt:           b.Now,
	}
}

// Fluent builder methods
func (b *BookingBuilder) ForSlot(id uuid.UUID) *BookingBuilder {
	b.SlotID = id
	return b
}

func (b *BookingBuilder) OwnedBy(id uuid.UUID) *BookingBuilder {
	b.OwnerID = id
	return b
}

func (b *BookingBuilder) WithParticipants(n int) *BookingBuilder {
	b.ExpectedParticipants = n
	return b
}

func (b *BookingBuilder) WithEvent(name, description string) *BookingBuilder {
	b.EventName = name
	b.EventDescription = description
	return b
}
