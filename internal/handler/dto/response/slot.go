package response

import (
	"time"

	"slot-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type SlotResponse struct {
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
	RecurringEnd     *string    `json:"recurringEndDate,omitempty"`
	CreatedBy        uuid.UUID  `json:"createdBy"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

func FromSlotView(v *queries.SlotView) (*SlotResponse, error) {
	var res SlotResponse
	if err := copier.Copy(&res, v); err != nil {
		return nil, err
	}
	return &res, nil
}

func FromSlotViews(views []queries.SlotView) ([]SlotResponse, error) {
	res := make([]SlotResponse, 0, len(views))
	if err := copier.Copy(&res, &views); err != nil {
		return nil, err
	}
	return res, nil
}

type SlotListResponse struct {
	Slots      []SlotResponse     `json:"slots"`
	Pagination queries.Pagination `json:"pagination"`
}
