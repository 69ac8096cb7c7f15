package queries

import (
	"context"

	"slot-booking/internal/domain/slot"
	"slot-booking/internal/domain/user"
	"slot-booking/internal/pkg/clock"
	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/usecase/authz"

	"github.com/google/uuid"
)

var ErrInvalidDateRange = errs.NewKind("from date must not be after to date", errs.ErrValidation)

type SlotFilter struct {
	Venue  *slot.Venue
	Status *slot.Status
	From   *slot.Date
	To     *slot.Date
	Page   PageRequest
}

type AvailableSlotFilter struct {
	Venue      *slot.Venue
	From       *slot.Date
	To         *slot.Date
	StartsFrom *slot.ClockTime
	EndsBy     *slot.ClockTime
}

type SlotPage struct {
	Slots      []SlotView `json:"slots"`
	Pagination Pagination `json:"pagination"`
}

type SlotReadStore interface {
	// FindByID returns slot.ErrSlotNotFound when the row is missing.
	FindByID(ctx context.Context, id uuid.UUID) (*SlotView, error)
	List(ctx context.Context, filter SlotFilter) ([]SlotView, int, error)
	ListAvailable(ctx context.Context, filter AvailableSlotFilter) ([]SlotView, error)
}

type SlotQueries interface {
	GetByID(ctx context.Context, identity user.Identity, id uuid.UUID) (*SlotView, error)
	List(ctx context.Context, identity user.Identity, filter SlotFilter) (*SlotPage, error)
	// ListAvailable has no side effects; results are ordered by date and start
	// time. Days before today are never listed.
	ListAvailable(ctx context.Context, identity user.Identity, filter AvailableSlotFilter) ([]SlotView, error)
}

type slotQueriesImpl struct {
	store    SlotReadStore
	clock    clock.Clock
	maxLimit int
}

func NewSlotQueries(store SlotReadStore, clk clock.Clock, maxLimit int) SlotQueries {
	return &slotQueriesImpl{store: store, clock: clk, maxLimit: maxLimit}
}

func (q *slotQueriesImpl) GetByID(ctx context.Context, identity user.Identity, id uuid.UUID) (*SlotView, error) {
	if err := authz.For(identity).Check(authz.ViewSlots, uuid.Nil); err != nil {
		return nil, err
	}
	return q.store.FindByID(ctx, id)
}

func (q *slotQueriesImpl) List(ctx context.Context, identity user.Identity, filter SlotFilter) (*SlotPage, error) {
	if err := authz.For(identity).Check(authz.ViewSlots, uuid.Nil); err != nil {
		return nil, err
	}
	if err := checkRange(filter.From, filter.To); err != nil {
		return nil, err
	}
	filter.Page = filter.Page.Normalize(q.maxLimit)

	slots, total, err := q.store.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &SlotPage{Slots: nonNil(slots), Pagination: NewPagination(filter.Page, total)}, nil
}

func (q *slotQueriesImpl) ListAvailable(ctx context.Context, identity user.Identity, filter AvailableSlotFilter) ([]SlotView, error) {
	if err := authz.For(identity).Check(authz.ViewSlots, uuid.Nil); err != nil {
		return nil, err
	}
	if err := checkRange(filter.From, filter.To); err != nil {
		return nil, err
	}
	today := slot.NewDate(q.clock.Now())
	if filter.From == nil || filter.From.Before(today) {
		filter.From = &today
	}
	slots, err := q.store.ListAvailable(ctx, filter)
	if err != nil {
		return nil, err
	}
	return nonNil(slots), nil
}

func checkRange(from, to *slot.Date) error {
	if from != nil && to != nil && to.Before(*from) {
		return ErrInvalidDateRange
	}
	return nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
