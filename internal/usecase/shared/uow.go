package shared

import (
	"context"

	"slot-booking/internal/domain/booking"
	"slot-booking/internal/domain/slot"
	"slot-booking/internal/domain/user"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within runs fn in one write transaction, retrying on serialization
	// failures and deadlocks. fn may run more than once.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx gives access to repositories bound to one transaction.
type Tx interface {
	Slots() SlotRepository
	Bookings() BookingRepository
	Users() UserRepository
}

type SlotRepository interface {
	// FindByID returns slot.ErrSlotNotFound when the row is missing.
	FindByID(ctx context.Context, id uuid.UUID) (*slot.Slot, error)
	Create(ctx context.Context, s *slot.Slot) error
	// Reserve books an available slot for holder as a compare-and-swap.
	// It fails with slot.ErrSlotUnavailable when the slot is not available.
	Reserve(ctx context.Context, id uuid.UUID, holder slot.Holder) error
	// Release frees a booked slot. Releasing a free slot is a no-op.
	Release(ctx context.Context, id uuid.UUID) error
	// RefreshEvent rewrites the event mirror while bookingID holds the slot.
	RefreshEvent(ctx context.Context, id, bookingID uuid.UUID, name, description string) error
	// UpdateStatus sets an administrative status unless the slot is booked.
	UpdateStatus(ctx context.Context, id uuid.UUID, status slot.Status) error
}

type BookingRepository interface {
	// FindByID returns booking.ErrBookingNotFound when the row is missing.
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	Create(ctx context.Context, b *booking.Booking) error
	Update(ctx context.Context, b *booking.Booking) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserRepository interface {
	// FindByID and FindByEmail return ErrUserNotFound when no row matches.
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email user.Email) (*user.User, error)
	Create(ctx context.Context, u *user.User) error
	UpdateProfile(ctx context.Context, u *user.User) error
	TouchLastLogin(ctx context.Context, id uuid.UUID) error
}
