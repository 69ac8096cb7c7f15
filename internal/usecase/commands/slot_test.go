//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"slot-booking/internal/domain/slot"
	"slot-booking/internal/pkg/clock"
	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/pkg/ptr"
	"slot-booking/internal/usecase/authz"
	"slot-booking/internal/usecase/commands"
	"slot-booking/tests/common/builder"
	"slot-booking/tests/common/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotCommands_Create(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	superAdmin := builder.NewUserBuilder().AsSuperAdmin().BuildIdentity()
	clubAdmin := builder.NewUserBuilder().BuildIdentity()

	valid := func() commands.CreateSlotInput {
		return commands.CreateSlotInput{
			Date:      "2026-03-11",
			StartTime: "09:00",
			EndTime:   "11:30",
			Venue:     slot.VenueAuditorium.String(),
			Capacity:  100,
		}
	}

	tests := []struct {
		name    string
		input   func() commands.CreateSlotInput
		wantErr error
	}{
		{name: "valid slot", input: valid},
		{
			name: "recurring weekly slot",
			input: func() commands.CreateSlotInput {
				in := valid()
				in.RecurringPattern = string(slot.RecurringWeekly)
				in.RecurringEnd = ptr.Of("2026-06-01")
				return in
			},
		},
		{
			name: "end before start",
			input: func() commands.CreateSlotInput {
				in := valid()
				in.EndTime = "08:00"
				return in
			},
			wantErr: slot.ErrEndBeforeStart,
		},
		{
			name: "date in the past",
			input: func() commands.CreateSlotInput {
				in := valid()
				in.Date = "2026-03-09"
				return in
			},
			wantErr: slot.ErrDateInPast,
		},
		{
			name: "unknown venue",
			input: func() commands.CreateSlotInput {
				in := valid()
				in.Venue = "Rooftop"
				return in
			},
			wantErr: slot.ErrInvalidVenue,
		},
		{
			name: "capacity above limit",
			input: func() commands.CreateSlotInput {
				in := valid()
				in.Capacity = slot.MaxCapacity + 1
				return in
			},
			wantErr: slot.ErrInvalidCapacity,
		},
		{
			name: "malformed date",
			input: func() commands.CreateSlotInput {
				in := valid()
				in.Date = "11/03/2026"
				return in
			},
			wantErr: slot.ErrInvalidDate,
		},
		{
			name: "recurring end before date",
			input: func() commands.CreateSlotInput {
				in := valid()
				in.RecurringPattern = string(slot.RecurringDaily)
				in.RecurringEnd = ptr.Of("2026-03-10")
				return in
			},
			wantErr: slot.ErrRecurringEndBeforeDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memstore.New()
			uc := commands.NewSlotCommands(store, clock.NewFixedClock(now))

			id, err := uc.Create(context.Background(), superAdmin, tt.input())

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.True(t, errs.Is(err, errs.ErrValidation))
				assert.Equal(t, 0, store.Commits())
				return
			}
			require.NoError(t, err)
			created := store.Slot(id)
			require.NotNil(t, created)
			assert.Equal(t, slot.StatusAvailable, created.Status())
			assert.Equal(t, superAdmin.ID, created.CreatedBy())
			assert.Nil(t, created.Holder())
		})
	}

	t.Run("club admin cannot create slots", func(t *testing.T) {
		store := memstore.New()
		uc := commands.NewSlotCommands(store, clock.NewFixedClock(now))

		_, err := uc.Create(context.Background(), clubAdmin, valid())

		require.ErrorIs(t, err, authz.ErrActionForbidden)
		assert.Equal(t, 0, store.Commits())
	})
}

func TestSlotCommands_SetStatus(t *testing.T) {
	ctx := context.Background()
	superAdmin := builder.NewUserBuilder().AsSuperAdmin().BuildIdentity()

	setup := func(t *testing.T) (*memstore.Store, commands.SlotCommands, *slot.Slot) {
		t.Helper()
		store := memstore.New()
		sl := builder.NewSlotBuilder().MustBuild()
		store.PutSlot(sl)
		return store, commands.NewSlotCommands(store, clock.NewRealClock(time.UTC)), sl
	}

	t.Run("maintenance and back", func(t *testing.T) {
		store, uc, sl := setup(t)

		require.NoError(t, uc.SetStatus(ctx, superAdmin, sl.ID(), "maintenance"))
		assert.Equal(t, slot.StatusMaintenance, store.Slot(sl.ID()).Status())

		require.NoError(t, uc.SetStatus(ctx, superAdmin, sl.ID(), "available"))
		assert.Equal(t, slot.StatusAvailable, store.Slot(sl.ID()).Status())
	})

	t.Run("booked cannot be set directly", func(t *testing.T) {
		_, uc, sl := setup(t)
		err := uc.SetStatus(ctx, superAdmin, sl.ID(), "booked")
		require.ErrorIs(t, err, slot.ErrStatusNotSettable)
	})

	t.Run("held slot keeps its holder", func(t *testing.T) {
		store, uc, sl := setup(t)
		require.NoError(t, sl.Reserve(slot.Holder{BookingID: uuid.New(), UserID: uuid.New(), EventName: "Demo"}, time.Now()))
		store.PutSlot(sl)

		err := uc.SetStatus(ctx, superAdmin, sl.ID(), "maintenance")

		require.ErrorIs(t, err, slot.ErrSlotBooked)
		assert.True(t, errs.Is(err, errs.ErrConflict))
		assert.Equal(t, slot.StatusBooked, store.Slot(sl.ID()).Status())
	})

	t.Run("unknown status", func(t *testing.T) {
		_, uc, sl := setup(t)
		require.ErrorIs(t, uc.SetStatus(ctx, superAdmin, sl.ID(), "closed"), slot.ErrInvalidStatus)
	})

	t.Run("missing slot", func(t *testing.T) {
		_, uc, _ := setup(t)
		require.ErrorIs(t, uc.SetStatus(ctx, superAdmin, uuid.New(), "maintenance"), slot.ErrSlotNotFound)
	})

	t.Run("member is forbidden", func(t *testing.T) {
		_, uc, sl := setup(t)
		member := builder.NewUserBuilder().AsMember().BuildIdentity()
		err := uc.SetStatus(ctx, member, sl.ID(), "maintenance")
		assert.True(t, errs.Is(err, errs.ErrForbidden))
	})
}
