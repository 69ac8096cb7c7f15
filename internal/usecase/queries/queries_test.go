//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"slot-booking/internal/domain/booking"
	"slot-booking/internal/domain/slot"
	"slot-booking/internal/domain/user"
	"slot-booking/internal/pkg/clock"
	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/pkg/ptr"
	"slot-booking/internal/usecase/authz"
	"slot-booking/internal/usecase/queries"
	"slot-booking/internal/usecase/shared"
	"slot-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSlotReadStore struct {
	mock.Mock
}

func (m *MockSlotReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.SlotView, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*queries.SlotView)
	return v, args.Error(1)
}

func (m *MockSlotReadStore) List(ctx context.Context, filter queries.SlotFilter) ([]queries.SlotView, int, error) {
	args := m.Called(ctx, filter)
	v, _ := args.Get(0).([]queries.SlotView)
	return v, args.Int(1), args.Error(2)
}

func (m *MockSlotReadStore) ListAvailable(ctx context.Context, filter queries.AvailableSlotFilter) ([]queries.SlotView, error) {
	args := m.Called(ctx, filter)
	v, _ := args.Get(0).([]queries.SlotView)
	return v, args.Error(1)
}

type MockBookingReadStore struct {
	mock.Mock
}

func (m *MockBookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*queries.BookingView)
	return v, args.Error(1)
}

func (m *MockBookingReadStore) List(ctx context.Context, filter queries.BookingFilter) ([]queries.BookingView, int, error) {
	args := m.Called(ctx, filter)
	v, _ := args.Get(0).([]queries.BookingView)
	return v, args.Int(1), args.Error(2)
}

type MockUserReadStore struct {
	mock.Mock
}

func (m *MockUserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*queries.UserView)
	return v, args.Error(1)
}

func mustDate(t *testing.T, s string) *slot.Date {
	t.Helper()
	d, err := slot.ParseDate(s)
	require.NoError(t, err)
	return &d
}

func TestPageRequest_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   queries.PageRequest
		max  int
		want queries.PageRequest
	}{
		{name: "defaults", in: queries.PageRequest{}, max: 100, want: queries.PageRequest{Page: 1, Limit: 10}},
		{name: "clamped", in: queries.PageRequest{Page: 3, Limit: 500}, max: 50, want: queries.PageRequest{Page: 3, Limit: 50}},
		{name: "unset max falls back", in: queries.PageRequest{Page: 2, Limit: 500}, max: 0, want: queries.PageRequest{Page: 2, Limit: queries.MaxListLimit}},
		{name: "negative page", in: queries.PageRequest{Page: -1, Limit: 5}, max: 100, want: queries.PageRequest{Page: 1, Limit: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize(tt.max))
		})
	}

	assert.Equal(t, 20, queries.PageRequest{Page: 3, Limit: 10}.Offset())
	assert.Equal(t, queries.Pagination{Page: 2, Limit: 10, Total: 21, Pages: 3}, queries.NewPagination(queries.PageRequest{Page: 2, Limit: 10}, 21))
	assert.Equal(t, 0, queries.NewPagination(queries.PageRequest{Page: 1, Limit: 10}, 0).Pages)
}

func TestSlotQueries_List(t *testing.T) {
	ctx := context.Background()
	member := builder.NewUserBuilder().AsMember().BuildIdentity()

	t.Run("normalizes paging and wraps results", func(t *testing.T) {
		store := new(MockSlotReadStore)
		venue := slot.VenueGround
		want := queries.SlotFilter{Venue: &venue, Page: queries.PageRequest{Page: 1, Limit: 10}}
		store.On("List", ctx, want).Return([]queries.SlotView{{ID: uuid.New()}}, 11, nil)

		page, err := queries.NewSlotQueries(store, clock.NewFixedClock(time.Now()), 100).List(ctx, member, queries.SlotFilter{Venue: &venue})

		require.NoError(t, err)
		assert.Len(t, page.Slots, 1)
		assert.Equal(t, 2, page.Pagination.Pages)
		store.AssertExpectations(t)
	})

	t.Run("empty result is an empty slice", func(t *testing.T) {
		store := new(MockSlotReadStore)
		store.On("List", ctx, mock.Anything).Return(nil, 0, nil)

		page, err := queries.NewSlotQueries(store, clock.NewFixedClock(time.Now()), 100).List(ctx, member, queries.SlotFilter{})

		require.NoError(t, err)
		assert.NotNil(t, page.Slots)
		assert.Empty(t, page.Slots)
	})

	t.Run("inverted date range", func(t *testing.T) {
		store := new(MockSlotReadStore)
		_, err := queries.NewSlotQueries(store, clock.NewFixedClock(time.Now()), 100).List(ctx, member, queries.SlotFilter{
			From: mustDate(t, "2026-05-10"),
			To:   mustDate(t, "2026-05-01"),
		})
		require.ErrorIs(t, err, queries.ErrInvalidDateRange)
		store.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})
}

func TestSlotQueries_ListAvailable(t *testing.T) {
	ctx := context.Background()
	member := builder.NewUserBuilder().AsMember().BuildIdentity()
	now := time.Date(2026, 4, 20, 15, 0, 0, 0, time.UTC)
	today := slot.NewDate(now)
	views := []queries.SlotView{{ID: uuid.New(), Status: "available"}}

	t.Run("future from is kept", func(t *testing.T) {
		store := new(MockSlotReadStore)
		filter := queries.AvailableSlotFilter{From: mustDate(t, "2026-05-01")}
		store.On("ListAvailable", ctx, filter).Return(views, nil)

		got, err := queries.NewSlotQueries(store, clock.NewFixedClock(now), 100).ListAvailable(ctx, member, filter)

		require.NoError(t, err)
		assert.Equal(t, views, got)
		store.AssertExpectations(t)
	})

	t.Run("missing from starts today", func(t *testing.T) {
		store := new(MockSlotReadStore)
		store.On("ListAvailable", ctx, queries.AvailableSlotFilter{From: &today}).Return(views, nil)

		_, err := queries.NewSlotQueries(store, clock.NewFixedClock(now), 100).ListAvailable(ctx, member, queries.AvailableSlotFilter{})

		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("past from is moved to today", func(t *testing.T) {
		store := new(MockSlotReadStore)
		to := mustDate(t, "2026-04-30")
		store.On("ListAvailable", ctx, queries.AvailableSlotFilter{From: &today, To: to}).Return(views, nil)

		_, err := queries.NewSlotQueries(store, clock.NewFixedClock(now), 100).
			ListAvailable(ctx, member, queries.AvailableSlotFilter{From: mustDate(t, "2026-04-01"), To: to})

		require.NoError(t, err)
		store.AssertExpectations(t)
	})
}

func TestSlotQueries_GetByID(t *testing.T) {
	ctx := context.Background()
	member := builder.NewUserBuilder().AsMember().BuildIdentity()
	id := uuid.New()

	store := new(MockSlotReadStore)
	store.On("FindByID", ctx, id).Return(nil, slot.ErrSlotNotFound)

	_, err := queries.NewSlotQueries(store, clock.NewFixedClock(time.Now()), 100).GetByID(ctx, member, id)
	require.ErrorIs(t, err, slot.ErrSlotNotFound)
}

func TestBookingQueries_List(t *testing.T) {
	ctx := context.Background()
	clubAdmin := builder.NewUserBuilder().BuildIdentity()
	superAdmin := builder.NewUserBuilder().AsSuperAdmin().BuildIdentity()
	club := user.ClubSports

	t.Run("club admin is scoped to own bookings", func(t *testing.T) {
		store := new(MockBookingReadStore)
		store.On("List", ctx, mock.MatchedBy(func(f queries.BookingFilter) bool {
			return f.OwnerID != nil && *f.OwnerID == clubAdmin.ID && f.Club == nil && f.Page.Limit == 10
		})).Return([]queries.BookingView{{ID: uuid.New()}}, 1, nil)

		page, err := queries.NewBookingQueries(store, 100).List(ctx, clubAdmin, queries.BookingFilter{Club: &club})

		require.NoError(t, err)
		assert.Len(t, page.Bookings, 1)
		store.AssertExpectations(t)
	})

	t.Run("super admin sees all and keeps the club filter", func(t *testing.T) {
		store := new(MockBookingReadStore)
		spoofed := uuid.New()
		store.On("List", ctx, mock.MatchedBy(func(f queries.BookingFilter) bool {
			return f.OwnerID == nil && f.Club != nil && *f.Club == club
		})).Return(nil, 0, nil)

		page, err := queries.NewBookingQueries(store, 100).List(ctx, superAdmin, queries.BookingFilter{Club: &club, OwnerID: &spoofed})

		require.NoError(t, err)
		assert.Empty(t, page.Bookings)
		store.AssertExpectations(t)
	})

	t.Run("inverted created range", func(t *testing.T) {
		store := new(MockBookingReadStore)
		now := time.Now()
		_, err := queries.NewBookingQueries(store, 100).List(ctx, superAdmin, queries.BookingFilter{
			From: ptr.Of(now),
			To:   ptr.Of(now.Add(-time.Hour)),
		})
		require.ErrorIs(t, err, queries.ErrInvalidCreatedRange)
	})
}

func TestBookingQueries_GetByID(t *testing.T) {
	ctx := context.Background()
	owner := builder.NewUserBuilder().BuildIdentity()
	stranger := builder.NewUserBuilder().BuildIdentity()
	superAdmin := builder.NewUserBuilder().AsSuperAdmin().BuildIdentity()
	id := uuid.New()
	view := &queries.BookingView{ID: id, User: queries.UserSummary{ID: owner.ID}}

	tests := []struct {
		name     string
		identity user.Identity
		wantErr  error
	}{
		{name: "owner", identity: owner},
		{name: "super admin", identity: superAdmin},
		{name: "another club admin", identity: stranger, wantErr: authz.ErrNotOwner},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockBookingReadStore)
			store.On("FindByID", ctx, id).Return(view, nil)

			got, err := queries.NewBookingQueries(store, 100).GetByID(ctx, tt.identity, id)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.True(t, errs.Is(err, errs.ErrForbidden))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, id, got.ID)
		})
	}
}

func TestBookingQueries_ListMine(t *testing.T) {
	ctx := context.Background()
	superAdmin := builder.NewUserBuilder().AsSuperAdmin().BuildIdentity()
	status := booking.StatusPending

	store := new(MockBookingReadStore)
	store.On("List", ctx, mock.MatchedBy(func(f queries.BookingFilter) bool {
		return f.OwnerID != nil && *f.OwnerID == superAdmin.ID && f.Status != nil && *f.Status == status && f.Page.Limit == 0
	})).Return(nil, 0, nil)

	got, err := queries.NewBookingQueries(store, 100).ListMine(ctx, superAdmin, &status)

	require.NoError(t, err)
	assert.NotNil(t, got)
	store.AssertExpectations(t)
}

func TestUserQueries_GetCurrentUser(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	tests := []struct {
		name    string
		view    *queries.UserView
		err     error
		wantErr error
	}{
		{name: "active", view: &queries.UserView{ID: id, IsActive: true}},
		{name: "inactive", view: &queries.UserView{ID: id}, wantErr: shared.ErrUserInactive},
		{name: "missing", err: shared.ErrUserNotFound, wantErr: shared.ErrUserNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockUserReadStore)
			store.On("FindByID", ctx, id).Return(tt.view, tt.err)

			got, err := queries.NewUserQueries(store).GetCurrentUser(ctx, id)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, id, got.ID)
		})
	}
}
