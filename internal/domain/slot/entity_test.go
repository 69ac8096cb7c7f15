//go:build unit

package slot_test

import (
	"testing"
	"time"

	"slot-booking/internal/domain/slot"
	"slot-booking/internal/pkg/errs"
	"slot-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.SlotBuilder)
	errIs  error
}

func TestSlot(t *testing.T) {
	t.Run("new slot is available", func(t *testing.T) {
		s, err := builder.NewSlotBuilder().BuildDomain()
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, s.ID())
		assert.Equal(t, slot.StatusAvailable, s.Status())
		assert.Nil(t, s.Holder())
		assert.Equal(t, slot.RecurringNone, s.RecurringPattern())
		assert.Equal(t, "10:00", s.TimeRange().Start().String())
		assert.Equal(t, 2*time.Hour, s.TimeRange().Duration())
	})

	t.Run("validation", func(t *testing.T) {
		yesterday := time.Now().AddDate(0, 0, -1)
		runCases(t, []testCase{
			{
				name:   "today is allowed",
				mutate: func(b *builder.SlotBuilder) { b.WithDate(b.Now) },
			},
			{
				name:   "single digit hour",
				mutate: func(b *builder.SlotBuilder) { b.WithTimes("9:30", "11:00") },
			},
			{
				name:   "date in the past",
				mutate: func(b *builder.SlotBuilder) { b.WithDate(yesterday) },
				errIs:  slot.ErrDateInPast,
			},
			{
				name:   "malformed time",
				mutate: func(b *builder.SlotBuilder) { b.WithTimes("24:00", "25:00") },
				errIs:  slot.ErrInvalidClockTime,
			},
			{
				name:   "end equals start",
				mutate: func(b *builder.SlotBuilder) { b.WithTimes("10:00", "10:00") },
				errIs:  slot.ErrEndBeforeStart,
			},
			{
				name:   "end before start",
				mutate: func(b *builder.SlotBuilder) { b.WithTimes("14:00", "09:00") },
				errIs:  slot.ErrEndBeforeStart,
			},
			{
				name:   "unknown venue",
				mutate: func(b *builder.SlotBuilder) { b.WithVenue("Rooftop") },
				errIs:  slot.ErrInvalidVenue,
			},
			{
				name:   "zero capacity",
				mutate: func(b *builder.SlotBuilder) { b.WithCapacity(0) },
				errIs:  slot.ErrInvalidCapacity,
			},
			{
				name:   "capacity above limit",
				mutate: func(b *builder.SlotBuilder) { b.WithCapacity(1001) },
				errIs:  slot.ErrInvalidCapacity,
			},
			{
				name:   "capacity at limit",
				mutate: func(b *builder.SlotBuilder) { b.WithCapacity(1000) },
			},
			{
				name: "recurring end before date",
				mutate: func(b *builder.SlotBuilder) {
					end := b.Date.AddDate(0, 0, -1)
					b.WithRecurring("weekly", &end)
				},
				errIs: slot.ErrRecurringEndBeforeDate,
			},
			{
				name:   "unknown recurring pattern",
				mutate: func(b *builder.SlotBuilder) { b.WithRecurring("yearly", nil) },
				errIs:  slot.ErrInvalidRecurring,
			},
		})
	})
}

func TestSlot_ReserveRelease(t *testing.T) {
	now := time.Now()
	s := builder.NewSlotBuilder().MustBuild()
	holder := slot.Holder{BookingID: uuid.New(), UserID: uuid.New(), EventName: "Talk", EventDescription: "A talk"}

	require.NoError(t, s.Reserve(holder, now))
	assert.Equal(t, slot.StatusBooked, s.Status())
	assert.True(t, s.HeldBy(holder.BookingID))
	assert.Equal(t, holder, *s.Holder())

	err := s.Reserve(slot.Holder{BookingID: uuid.New(), UserID: uuid.New()}, now)
	require.ErrorIs(t, err, slot.ErrSlotUnavailable)
	assert.True(t, errs.Is(err, errs.ErrConflict))
	assert.True(t, s.HeldBy(holder.BookingID))

	s.RefreshEvent("Renamed talk", "Updated", now)
	assert.Equal(t, "Renamed talk", s.Holder().EventName)

	assert.True(t, s.Release(now))
	assert.Equal(t, slot.StatusAvailable, s.Status())
	assert.Nil(t, s.Holder())

	assert.False(t, s.Release(now), "releasing a free slot is a no-op")
	assert.Equal(t, slot.StatusAvailable, s.Status())
}

func TestSlot_SetStatus(t *testing.T) {
	now := time.Now()

	t.Run("maintenance and back", func(t *testing.T) {
		s := builder.NewSlotBuilder().MustBuild()
		require.NoError(t, s.SetStatus(slot.StatusMaintenance, now))
		require.ErrorIs(t, s.Reserve(slot.Holder{BookingID: uuid.New()}, now), slot.ErrSlotUnavailable)
		require.NoError(t, s.SetStatus(slot.StatusAvailable, now))
		assert.True(t, s.IsAvailable())
	})

	t.Run("booked slot is locked", func(t *testing.T) {
		s := builder.NewSlotBuilder().MustBuild()
		require.NoError(t, s.Reserve(slot.Holder{BookingID: uuid.New()}, now))
		require.ErrorIs(t, s.SetStatus(slot.StatusCancelled, now), slot.ErrSlotBooked)
		assert.Equal(t, slot.StatusBooked, s.Status())
	})

	t.Run("booked is not settable", func(t *testing.T) {
		s := builder.NewSlotBuilder().MustBuild()
		require.ErrorIs(t, s.SetStatus(slot.StatusBooked, now), slot.ErrStatusNotSettable)
	})
}

func TestSlot_CapacityAndWindow(t *testing.T) {
	s := builder.NewSlotBuilder().WithCapacity(30).WithTimes("09:00", "11:30").MustBuild()

	assert.NoError(t, s.CheckCapacity(30))
	assert.ErrorIs(t, s.CheckCapacity(31), slot.ErrCapacityExceeded)

	at := func(v string) *slot.ClockTime {
		c, err := slot.ParseClockTime(v)
		require.NoError(t, err)
		return &c
	}
	assert.True(t, s.Fits(nil, nil))
	assert.True(t, s.Fits(at("09:00"), at("11:30")))
	assert.False(t, s.Fits(at("09:15"), nil))
	assert.False(t, s.Fits(nil, at("11:00")))
}

func TestSlot_CheckNotPast(t *testing.T) {
	day := time.Now().AddDate(0, 0, 1)
	s := builder.NewSlotBuilder().WithDate(day).MustBuild()

	assert.NoError(t, s.CheckNotPast(day))
	assert.NoError(t, s.CheckNotPast(day.AddDate(0, 0, -1)))
	err := s.CheckNotPast(day.AddDate(0, 0, 1))
	assert.ErrorIs(t, err, slot.ErrDateInPast)
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {

			actual, err := builder.NewSlotBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
