package shared

import (
	"context"

	"slot-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound   = errs.NewKind("user not found", errs.ErrNotFound)
	ErrEmailTaken     = errs.NewKind("user already exists with this email", errs.ErrConflict)
	ErrUserInactive   = errs.NewKind("account has been deactivated", errs.ErrUnauthorized)
	ErrRollbackFailed = errs.NewKind("transaction rollback failed", errs.ErrInternal)
)

type IdempotencyStatus string

const (
	IdempotencyProcessing IdempotencyStatus = "processing"
	IdempotencyCompleted  IdempotencyStatus = "completed"
)

type IdempotencyRecord struct {
	Key         string
	UserID      uuid.UUID
	Status      IdempotencyStatus
	RequestHash string
	BookingID   *uuid.UUID
}

// IdempotencyStore remembers booking creations keyed by client key and user.
type IdempotencyStore interface {
	// Claim records key as processing. When the key is already known it
	// returns the existing record and claims nothing.
	Claim(ctx context.Context, key string, userID uuid.UUID, requestHash string) (*IdempotencyRecord, error)
	// Complete stores the outcome under requestHash, overwriting any claim
	// even if it expired while the booking was being created.
	Complete(ctx context.Context, key string, userID uuid.UUID, requestHash string, bookingID uuid.UUID) error
	// Release forgets a processing claim so the client may retry.
	Release(ctx context.Context, key string, userID uuid.UUID) error
}
