package request

import (
	"slot-booking/internal/domain/slot"
	"slot-booking/internal/pkg/ptr"
	"slot-booking/internal/usecase/commands"
	"slot-booking/internal/usecase/queries"
)

type CreateSlotRequest struct {
	Date             string  `json:"date" binding:"required,ymd"`
	StartTime        string  `json:"startTime" binding:"required,hhmm"`
	EndTime          string  `json:"endTime" binding:"required,hhmm"`
	Venue            string  `json:"venue" binding:"required,venue"`
	Capacity         int     `json:"capacity" binding:"required,min=1,max=1000"`
	RecurringPattern string  `json:"recurringPattern" binding:"omitempty,oneof=none daily weekly monthly"`
	RecurringEnd     *string `json:"recurringEndDate" binding:"omitempty,ymd"`
}

func (r *CreateSlotRequest) ToInput() commands.CreateSlotInput {
	return commands.CreateSlotInput{
		Date:             r.Date,
		StartTime:        r.StartTime,
		EndTime:          r.EndTime,
		Venue:            r.Venue,
		Capacity:         r.Capacity,
		RecurringPattern: r.RecurringPattern,
		RecurringEnd:     r.RecurringEnd,
	}
}

type UpdateSlotStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=available maintenance cancelled"`
}

type SlotListQuery struct {
	Venue  string `form:"venue" binding:"omitempty,venue"`
	Status string `form:"status" binding:"omitempty,oneof=available booked cancelled maintenance"`
	From   string `form:"from" binding:"omitempty,ymd"`
	To     string `form:"to" binding:"omitempty,ymd"`
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1"`
}

func (q *SlotListQuery) ToFilter() (queries.SlotFilter, error) {
	from, to, err := dateRange(q.From, q.To)
	if err != nil {
		return queries.SlotFilter{}, err
	}
	filter := queries.SlotFilter{
		From: from,
		To:   to,
		Page: queries.PageRequest{Page: q.Page, Limit: q.Limit},
	}
	if q.Venue != "" {
		filter.Venue = ptr.Of(slot.Venue(q.Venue))
	}
	if q.Status != "" {
		st, err := slot.NewStatus(q.Status)
		if err != nil {
			return queries.SlotFilter{}, err
		}
		filter.Status = &st
	}
	return filter, nil
}

type AvailableSlotQuery struct {
	Venue      string `form:"venue" binding:"omitempty,venue"`
	From       string `form:"from" binding:"omitempty,ymd"`
	To         string `form:"to" binding:"omitempty,ymd"`
	StartsFrom string `form:"starts_from" binding:"omitempty,hhmm"`
	EndsBy     string `form:"ends_by" binding:"omitempty,hhmm"`
}

func (q *AvailableSlotQuery) ToFilter() (queries.AvailableSlotFilter, error) {
	from, to, err := dateRange(q.From, q.To)
	if err != nil {
		return queries.AvailableSlotFilter{}, err
	}
	filter := queries.AvailableSlotFilter{From: from, To: to}
	if q.Venue != "" {
		filter.Venue = ptr.Of(slot.Venue(q.Venue))
	}
	if filter.StartsFrom, err = clockTime(q.StartsFrom); err != nil {
		return queries.AvailableSlotFilter{}, err
	}
	if filter.EndsBy, err = clockTime(q.EndsBy); err != nil {
		return queries.AvailableSlotFilter{}, err
	}
	return filter, nil
}

func dateRange(from, to string) (*slot.Date, *slot.Date, error) {
	f, err := optionalDate(from)
	if err != nil {
		return nil, nil, err
	}
	t, err := optionalDate(to)
	if err != nil {
		return nil, nil, err
	}
	return f, t, nil
}

func optionalDate(s string) (*slot.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := slot.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func clockTime(s string) (*slot.ClockTime, error) {
	if s == "" {
		return nil, nil
	}
	c, err := slot.ParseClockTime(s)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
