// Package authz maps a caller identity to the operations it may perform.
package authz

import (
	"slot-booking/internal/domain/user"
	"slot-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrActionForbidden = errs.NewKind("you do not have permission to perform this action", errs.ErrForbidden)
	ErrNotOwner        = errs.NewKind("access denied: resource belongs to another user", errs.ErrForbidden)
)

type Action string

const (
	ListBookings     Action = "bookings:list"
	ViewBooking      Action = "bookings:view"
	CreateBooking    Action = "bookings:create"
	UpdateBooking    Action = "bookings:update"
	DeleteBooking    Action = "bookings:delete"
	SetBookingStatus Action = "bookings:set_status"
	ViewSlots        Action = "slots:view"
	ManageSlots      Action = "slots:manage"
)

// Scope is how far a granted action reaches.
type Scope int

const (
	None Scope = iota
	Own
	Any
)

var capabilities = map[user.Role]map[Action]Scope{
	user.RoleUser: {
		ListBookings: Own,
		ViewBooking:  Own,
		ViewSlots:    Any,
	},
	user.RoleClubAdmin: {
		ListBookings:  Own,
		ViewBooking:   Own,
		CreateBooking: Any,
		UpdateBooking: Own,
		DeleteBooking: Own,
		ViewSlots:     Any,
	},
	user.RoleSuperAdmin: {
		ListBookings:     Any,
		ViewBooking:      Any,
		CreateBooking:    Any,
		UpdateBooking:    Any,
		DeleteBooking:    Any,
		SetBookingStatus: Any,
		ViewSlots:        Any,
		ManageSlots:      Any,
	},
}

// Permissions is the capability set of one identity, evaluated once per request.
type Permissions struct {
	identity user.Identity
	scopes   map[Action]Scope
}

func For(identity user.Identity) Permissions {
	return Permissions{identity: identity, scopes: capabilities[identity.Role]}
}

func (p Permissions) Identity() user.Identity {
	return p.identity
}

func (p Permissions) Scope(action Action) Scope {
	return p.scopes[action]
}

// Allows reports whether action is granted at any scope.
func (p Permissions) Allows(action Action) bool {
	return p.scopes[action] != None
}

// Check authorizes action against a resource owned by ownerID. Pass uuid.Nil
// for actions that do not target an owned resource.
func (p Permissions) Check(action Action, ownerID uuid.UUID) error {
	switch p.scopes[action] {
	case Any:
		return nil
	case Own:
		if ownerID == uuid.Nil || ownerID == p.identity.ID {
			return nil
		}
		return ErrNotOwner
	default:
		return ErrActionForbidden
	}
}

// SeesAll reports whether listings for action are unrestricted by owner.
func (p Permissions) SeesAll(action Action) bool {
	return p.scopes[action] == Any
}
