package queries

import (
	"context"
	"time"

	"slot-booking/internal/domain/booking"
	"slot-booking/internal/domain/user"
	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/pkg/ptr"
	"slot-booking/internal/usecase/authz"

	"github.com/google/uuid"
)

var ErrInvalidCreatedRange = errs.NewKind("from must not be after to", errs.ErrValidation)

type BookingFilter struct {
	Status *booking.Status
	// Club only applies to callers who see every booking.
	Club *user.Club
	// From and To bound created_at, inclusive.
	From *time.Time
	To   *time.Time
	// OwnerID is set by the query layer, never by callers.
	OwnerID *uuid.UUID
	Page    PageRequest
}

type BookingPage struct {
	Bookings   []BookingView `json:"bookings"`
	Pagination Pagination    `json:"pagination"`
}

type BookingReadStore interface {
	// FindByID returns booking.ErrBookingNotFound when the row is missing.
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	// List orders by created_at descending. A zero Page.Limit returns every row.
	List(ctx context.Context, filter BookingFilter) ([]BookingView, int, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, identity user.Identity, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, identity user.Identity, filter BookingFilter) (*BookingPage, error)
	ListMine(ctx context.Context, identity user.Identity, status *booking.Status) ([]BookingView, error)
}

type bookingQueriesImpl struct {
	store    BookingReadStore
	maxLimit int
}

func NewBookingQueries(store BookingReadStore, maxLimit int) BookingQueries {
	return &bookingQueriesImpl{store: store, maxLimit: maxLimit}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, identity user.Identity, id uuid.UUID) (*BookingView, error) {
	perms := authz.For(identity)
	if !perms.Allows(authz.ViewBooking) {
		return nil, authz.ErrActionForbidden
	}
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := perms.Check(authz.ViewBooking, view.User.ID); err != nil {
		return nil, err
	}
	return view, nil
}

func (q *bookingQueriesImpl) List(ctx context.Context, identity user.Identity, filter BookingFilter) (*BookingPage, error) {
	perms := authz.For(identity)
	if !perms.Allows(authz.ListBookings) {
		return nil, authz.ErrActionForbidden
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, ErrInvalidCreatedRange
	}

	filter.OwnerID = nil
	if !perms.SeesAll(authz.ListBookings) {
		filter.OwnerID = ptr.Of(identity.ID)
		filter.Club = nil
	}
	filter.Page = filter.Page.Normalize(q.maxLimit)

	bookings, total, err := q.store.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &BookingPage{Bookings: nonNil(bookings), Pagination: NewPagination(filter.Page, total)}, nil
}

func (q *bookingQueriesImpl) ListMine(ctx context.Context, identity user.Identity, status *booking.Status) ([]BookingView, error) {
	if !authz.For(identity).Allows(authz.ListBookings) {
		return nil, authz.ErrActionForbidden
	}
	bookings, _, err := q.store.List(ctx, BookingFilter{Status: status, OwnerID: ptr.Of(identity.ID)})
	if err != nil {
		return nil, err
	}
	return nonNil(bookings), nil
}
