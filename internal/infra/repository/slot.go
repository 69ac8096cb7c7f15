package repository

import (
	"context"

	"slot-booking/internal/domain/slot"
	"slot-booking/internal/infra"
	"slot-booking/internal/infra/db"
	"slot-booking/internal/infra/repository/converter"
	"slot-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const (
	findSlotForUpdateSQL = `SELECT ` + converter.SlotColumns + ` FROM slots WHERE id = $1 FOR UPDATE`

	insertSlotSQL = `INSERT INTO slots (` + converter.SlotColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	// reserveSlotSQL only matches an available slot, so concurrent reservers
	// serialize on the row and exactly one sees a row affected.
	reserveSlotSQL = `UPDATE slots
		SET status = 'booked', booked_by = $2, booking_id = $3,
		    event_name = $4, event_description = $5, updated_at = NOW()
		WHERE id = $1 AND status = 'available'`

	releaseSlotSQL = `UPDATE slots
		SET status = 'available', booked_by = NULL, booking_id = NULL,
		    event_name = NULL, event_description = NULL, updated_at = NOW()
		WHERE id = $1 AND status = 'booked'`

	refreshSlotEventSQL = `UPDATE slots
		SET event_name = $3, event_description = $4, updated_at = NOW()
		WHERE id = $1 AND booking_id = $2`

	updateSlotStatusSQL = `UPDATE slots SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status <> 'booked'`

	slotExistsSQL = `SELECT EXISTS (SELECT 1 FROM slots WHERE id = $1)`
)

// SlotRepository writes slots inside the caller's transaction. FindByID
// takes a row lock, so it must only be used by write paths.
type SlotRepository struct {
	db db.DBTX
}

func NewSlotRepository(dbtx db.DBTX) *SlotRepository {
	return &SlotRepository{db: dbtx}
}

func (r *SlotRepository) FindByID(ctx context.Context, id uuid.UUID) (*slot.Slot, error) {
	var row converter.SlotRow
	if err := r.db.QueryRow(ctx, findSlotForUpdateSQL, id).Scan(row.Targets()...); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, slot.ErrSlotNotFound
		}
		return nil, infra.WrapRepoErr("failed to find slot", err)
	}
	return converter.SlotToDomain(row)
}

func (r *SlotRepository) Create(ctx context.Context, s *slot.Slot) error {
	if _, err := r.db.Exec(ctx, insertSlotSQL, converter.SlotInsertArgs(s)...); err != nil {
		return infra.WrapRepoErr("failed to create slot", err)
	}
	return nil
}

func (r *SlotRepository) Reserve(ctx context.Context, id uuid.UUID, holder slot.Holder) error {
	tag, err := r.db.Exec(ctx, reserveSlotSQL, id, holder.UserID, holder.BookingID, holder.EventName, holder.EventDescription)
	if err != nil {
		return infra.WrapRepoErr("failed to reserve slot", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	exists, err := r.exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return slot.ErrSlotNotFound
	}
	return slot.ErrSlotUnavailable
}

// Release is a no-op for a slot that is not booked.
func (r *SlotRepository) Release(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.Exec(ctx, releaseSlotSQL, id); err != nil {
		return infra.WrapRepoErr("failed to release slot", err)
	}
	return nil
}

// RefreshEvent only touches the slot while bookingID holds it.
func (r *SlotRepository) RefreshEvent(ctx context.Context, id, bookingID uuid.UUID, name, description string) error {
	if _, err := r.db.Exec(ctx, refreshSlotEventSQL, id, bookingID, name, description); err != nil {
		return infra.WrapRepoErr("failed to refresh slot event", err)
	}
	return nil
}

func (r *SlotRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status slot.Status) error {
	tag, err := r.db.Exec(ctx, updateSlotStatusSQL, id, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update slot status", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	exists, err := r.exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return slot.ErrSlotNotFound
	}
	return slot.ErrSlotBooked
}

func (r *SlotRepository) exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, slotExistsSQL, id).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check slot existence", err)
	}
	return exists, nil
}
