package response

import (
	"time"

	"slot-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingSlotResponse struct {
	ID        uuid.UUID `json:"id"`
	Date      string    `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Venue     string    `json:"venue"`
	Capacity  int       `json:"capacity"`
}

type BookingUserResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email,omitempty"`
	Role  string    `json:"role,omitempty"`
	Club  *string   `json:"club,omitempty"`
}

type ContactPersonResponse struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type BookingResponse struct {
	ID                   uuid.UUID             `json:"id"`
	Slot                 BookingSlotResponse   `json:"slot"`
	User                 BookingUserResponse   `json:"user"`
	Club                 string                `json:"club"`
	EventName            string                `json:"eventName"`
	EventDescription     string                `json:"eventDescription"`
	ExpectedParticipants int                   `json:"expectedParticipants"`
	Status               string                `json:"status"`
	Requirements         []string              `json:"requirements"`
	ContactPerson        ContactPersonResponse `json:"contactPerson"`
	ApprovedBy           *BookingUserResponse  `json:"approvedBy,omitempty"`
	ApprovalDate         *time.Time            `json:"approvalDate,omitempty"`
	RejectionReason      *string               `json:"rejectionReason,omitempty"`
	SpecialInstructions  *string               `json:"specialInstructions,omitempty"`
	CreatedAt            time.Time             `json:"createdAt"`
	UpdatedAt            time.Time             `json:"updatedAt"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	res := &BookingResponse{
		ID: v.ID,
		Slot: BookingSlotResponse{
			ID:        v.Slot.ID,
			Date:      v.Slot.Date,
			StartTime: v.Slot.StartTime,
			EndTime:   v.Slot.EndTime,
			Venue:     v.Slot.Venue,
			Capacity:  v.Slot.Capacity,
		},
		User:                 userSummary(v.User),
		Club:                 v.Club,
		EventName:            v.EventName,
		EventDescription:     v.EventDescription,
		ExpectedParticipants: v.ExpectedParticipants,
		Status:               v.Status,
		Requirements:         v.Requirements,
		ContactPerson: ContactPersonResponse{
			Name:  v.ContactPerson.Name,
			Phone: v.ContactPerson.Phone,
			Email: v.ContactPerson.Email,
		},
		ApprovalDate:        v.ApprovalDate,
		RejectionReason:     v.RejectionReason,
		SpecialInstructions: v.SpecialInstructions,
		CreatedAt:           v.CreatedAt,
		UpdatedAt:           v.UpdatedAt,
	}
	if res.Requirements == nil {
		res.Requirements = []string{}
	}
	if v.ApprovedBy != nil {
		// Only the approver's name is public.
		res.ApprovedBy = &BookingUserResponse{ID: v.ApprovedBy.ID, Name: v.ApprovedBy.Name}
	}
	return res
}

func userSummary(u queries.UserSummary) BookingUserResponse {
	return BookingUserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Club: u.Club}
}

func FromBookingViews(views []queries.BookingView) []*BookingResponse {
	res := make([]*BookingResponse, len(views))
	for i := range views {
		res[i] = FromBookingView(&views[i])
	}
	return res
}

type BookingListResponse struct {
	Bookings   []*BookingResponse `json:"bookings"`
	Pagination queries.Pagination `json:"pagination"`
}
