//go:build unit

package authz_test

import (
	"testing"

	"slot-booking/internal/domain/user"
	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/usecase/authz"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissions_Check(t *testing.T) {
	self := uuid.New()
	other := uuid.New()

	type row struct {
		action authz.Action
		role   user.Role
		own    bool
		other  bool
	}
	table := []row{
		{authz.ListBookings, user.RoleUser, true, false},
		{authz.ListBookings, user.RoleClubAdmin, true, false},
		{authz.ListBookings, user.RoleSuperAdmin, true, true},
		{authz.ViewBooking, user.RoleUser, true, false},
		{authz.ViewBooking, user.RoleClubAdmin, true, false},
		{authz.ViewBooking, user.RoleSuperAdmin, true, true},
		{authz.CreateBooking, user.RoleUser, false, false},
		{authz.CreateBooking, user.RoleClubAdmin, true, true},
		{authz.CreateBooking, user.RoleSuperAdmin, true, true},
		{authz.UpdateBooking, user.RoleUser, false, false},
		{authz.UpdateBooking, user.RoleClubAdmin, true, false},
		{authz.UpdateBooking, user.RoleSuperAdmin, true, true},
		{authz.DeleteBooking, user.RoleUser, false, false},
		{authz.DeleteBooking, user.RoleClubAdmin, true, false},
		{authz.DeleteBooking, user.RoleSuperAdmin, true, true},
		{authz.SetBookingStatus, user.RoleUser, false, false},
		{authz.SetBookingStatus, user.RoleClubAdmin, false, false},
		{authz.SetBookingStatus, user.RoleSuperAdmin, true, true},
		{authz.ViewSlots, user.RoleUser, true, true},
		{authz.ViewSlots, user.RoleClubAdmin, true, true},
		{authz.ViewSlots, user.RoleSuperAdmin, true, true},
		{authz.ManageSlots, user.RoleUser, false, false},
		{authz.ManageSlots, user.RoleClubAdmin, false, false},
		{authz.ManageSlots, user.RoleSuperAdmin, true, true},
	}

	for _, r := range table {
		t.Run(string(r.role)+" "+string(r.action), func(t *testing.T) {
			perms := authz.For(user.Identity{ID: self, Role: r.role})

			assertAllowed(t, r.own, perms.Check(r.action, self))
			assertAllowed(t, r.other, perms.Check(r.action, other))
		})
	}
}

func TestPermissions_UnknownRole(t *testing.T) {
	perms := authz.For(user.Identity{ID: uuid.New(), Role: "guest"})

	err := perms.Check(authz.ViewSlots, uuid.Nil)
	require.ErrorIs(t, err, authz.ErrActionForbidden)
	assert.False(t, perms.Allows(authz.ViewSlots))
}

func TestPermissions_SeesAll(t *testing.T) {
	assert.True(t, authz.For(user.Identity{Role: user.RoleSuperAdmin}).SeesAll(authz.ListBookings))
	assert.False(t, authz.For(user.Identity{Role: user.RoleClubAdmin}).SeesAll(authz.ListBookings))
	assert.False(t, authz.For(user.Identity{Role: user.RoleUser}).SeesAll(authz.ListBookings))
}

func assertAllowed(t *testing.T, allowed bool, err error) {
	t.Helper()
	if allowed {
		assert.NoError(t, err)
		return
	}
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrForbidden))
}
