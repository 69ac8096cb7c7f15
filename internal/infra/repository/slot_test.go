//go:build unit

package repository

import (
	"context"
	"testing"

	"slot-booking/internal/domain/slot"
	"slot-booking/internal/infra"
	"slot-booking/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSlotRepository_Reserve(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	holder := slot.Holder{BookingID: uuid.New(), UserID: uuid.New(), EventName: "Demo", EventDescription: "Demo day"}

	tests := []struct {
		name      string
		affected  string
		exists    *bool
		execErr   error
		wantErr   error
		wantKind  error
		wantClean bool
	}{
		{name: "available slot is reserved", affected: "UPDATE 1", wantClean: true},
		{name: "lost the race", affected: "UPDATE 0", exists: ptrBool(true), wantErr: slot.ErrSlotUnavailable, wantKind: errs.ErrConflict},
		{name: "missing slot", affected: "UPDATE 0", exists: ptrBool(false), wantErr: slot.ErrSlotNotFound, wantKind: errs.ErrNotFound},
		{name: "driver failure", execErr: assert.AnError, wantKind: errs.ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := new(MockDB)
			db.On("Exec", ctx, reserveSlotSQL, []any{id, holder.UserID, holder.BookingID, holder.EventName, holder.EventDescription}).
				Return(tag(tt.affected), tt.execErr)
			if tt.exists != nil {
				db.On("QueryRow", ctx, slotExistsSQL, []any{id}).Return(boolRow(*tt.exists))
			}

			err := NewSlotRepository(db).Reserve(ctx, id, holder)

			if tt.wantClean {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				assert.True(t, errs.Is(err, tt.wantKind))
			}
			db.AssertExpectations(t)
		})
	}
}

func TestSlotRepository_FindByID_NotFound(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	db := new(MockDB)
	db.On("QueryRow", ctx, findSlotForUpdateSQL, []any{id}).Return(errRow(pgx.ErrNoRows))

	_, err := NewSlotRepository(db).FindByID(ctx, id)

	require.ErrorIs(t, err, slot.ErrSlotNotFound)
}

func TestSlotRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("booked slot is refused", func(t *testing.T) {
		db := new(MockDB)
		db.On("Exec", ctx, updateSlotStatusSQL, []any{id, "maintenance"}).Return(tag("UPDATE 0"), nil)
		db.On("QueryRow", ctx, slotExistsSQL, []any{id}).Return(boolRow(true))

		err := NewSlotRepository(db).UpdateStatus(ctx, id, slot.StatusMaintenance)
		require.ErrorIs(t, err, slot.ErrSlotBooked)
	})

	t.Run("check violation surfaces as validation", func(t *testing.T) {
		db := new(MockDB)
		db.On("Exec", ctx, updateSlotStatusSQL, mock.Anything).Return(tag(""), pgError("23514", "slots_status_check"))

		err := NewSlotRepository(db).UpdateStatus(ctx, id, slot.StatusCancelled)
		assert.True(t, errs.Is(err, errs.ErrValidation))
		assert.True(t, infra.IsKind(err, infra.KindCheckViolated))
	})
}

func TestSlotRepository_ReleaseIsIdempotent(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	db := new(MockDB)
	db.On("Exec", ctx, releaseSlotSQL, []any{id}).Return(tag("UPDATE 0"), nil)

	require.NoError(t, NewSlotRepository(db).Release(ctx, id))
}

func ptrBool(v bool) *bool { return &v }
