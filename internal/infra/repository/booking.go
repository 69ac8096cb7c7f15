package repository

import (
	"context"

	"slot-booking/internal/domain/booking"
	"slot-booking/internal/domain/slot"
	"slot-booking/internal/infra"
	"slot-booking/internal/infra/db"
	"slot-booking/internal/infra/repository/converter"
	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

// activeSlotIndex is the partial unique index allowing one active booking per slot.
const activeSlotIndex = "bookings_active_slot_key"

const (
	findBookingForUpdateSQL = `SELECT ` + converter.BookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`

	insertBookingSQL = `INSERT INTO bookings (` + converter.BookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	updateBookingSQL = `UPDATE bookings SET
		slot_id = $2, club = $3, event_name = $4, event_description = $5,
		expected_participants = $6, status = $7, requirements = $8,
		contact_name = $9, contact_phone = $10, contact_email = $11,
		approved_by = $12, approval_date = $13, rejection_reason = $14,
		special_instructions = $15, updated_at = $16
		WHERE id = $1`

	deleteBookingSQL = `DELETE FROM bookings WHERE id = $1`
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	var row converter.BookingRow
	if err := r.db.QueryRow(ctx, findBookingForUpdateSQL, id).Scan(row.Targets()...); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, booking.ErrBookingNotFound
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return converter.BookingToDomain(row)
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	if _, err := r.db.Exec(ctx, insertBookingSQL, converter.BookingArgs(b)...); err != nil {
		return r.wrapWriteErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	tag, err := r.db.Exec(ctx, updateBookingSQL, converter.BookingUpdateArgs(b)...)
	if err != nil {
		return r.wrapWriteErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return booking.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteBookingSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete booking", err)
	}
	if tag.RowsAffected() == 0 {
		return booking.ErrBookingNotFound
	}
	return nil
}

// wrapWriteErr turns a hit on the active-booking index into the same
// conflict the slot reservation reports.
func (r *BookingRepository) wrapWriteErr(msg string, err error) error {
	wrapped := infra.WrapRepoErr(msg, err)
	if pgconv.PgErrorCode(err) == pgconv.CodeUniqueViolation && pgconv.ConstraintName(err) == activeSlotIndex {
		return errs.Wrap(slot.ErrSlotUnavailable, wrapped.Error())
	}
	return wrapped
}
