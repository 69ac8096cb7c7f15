package user

import (
	"time"

	"slot-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrClubRequired        = errs.NewKind("club is required for club_admin role", errs.ErrValidation)
	ErrClubNotAllowed      = errs.NewKind("club can only be set for club_admin role", errs.ErrValidation)
	ErrRoleNotRegisterable = errs.NewKind("role cannot be self-registered", errs.ErrForbidden)
)

// Identity is the authenticated caller threaded through every core operation.
type Identity struct {
	ID   uuid.UUID
	Role Role
	Club *Club
}

func (i Identity) IsSuperAdmin() bool {
	return i.Role == RoleSuperAdmin
}

type User struct {
	id           uuid.UUID
	name         Name
	email        Email
	passwordHash string
	role         Role
	club         *Club
	lastLogin    *time.Time
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(name Name, email Email, passwordHash string, role Role, club *Club, now time.Time) (*User, error) {
	if err := validateClub(role, club); err != nil {
		return nil, err
	}
	return &User{
		id:           uuid.New(),
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		club:         club,
		isActive:     true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// NewRegisteredUser applies the self-registration rules on top of NewUser.
// A club passed for a non club_admin role is dropped rather than rejected.
func NewRegisteredUser(name Name, email Email, passwordHash string, role Role, club *Club, now time.Time) (*User, error) {
	if role == RoleSuperAdmin {
		return nil, ErrRoleNotRegisterable
	}
	if role != RoleClubAdmin {
		club = nil
	}
	return NewUser(name, email, passwordHash, role, club, now)
}

func ReconstructUser(
	id uuid.UUID,
	name Name,
	email Email,
	passwordHash string,
	role Role,
	club *Club,
	lastLogin *time.Time,
	isActive bool,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:           id,
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		club:         club,
		lastLogin:    lastLogin,
		isActive:     isActive,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// UpdateProfile changes the editable profile fields. A club change is
// ignored unless the user is a club_admin.
func (u *User) UpdateProfile(name *Name, email *Email, club *Club, now time.Time) {
	if name != nil {
		u.name = *name
	}
	if email != nil {
		u.email = *email
	}
	if club != nil && u.role == RoleClubAdmin {
		c := *club
		u.club = &c
	}
	u.updatedAt = now
}

func (u *User) Identity() Identity {
	return Identity{ID: u.id, Role: u.role, Club: u.club}
}

func (u *User) ID() uuid.UUID         { return u.id }
func (u *User) Name() Name            { return u.name }
func (u *User) Email() Email          { return u.email }
func (u *User) PasswordHash() string  { return u.passwordHash }
func (u *User) Role() Role            { return u.role }
func (u *User) Club() *Club           { return u.club }
func (u *User) LastLogin() *time.Time { return u.lastLogin }
func (u *User) IsActive() bool        { return u.isActive }
func (u *User) CreatedAt() time.Time  { return u.createdAt }
func (u *User) UpdatedAt() time.Time  { return u.updatedAt }

func validateClub(role Role, club *Club) error {
	if role == RoleClubAdmin {
		if club == nil {
			return ErrClubRequired
		}
		if !club.IsValid() {
			return ErrInvalidClub
		}
		return nil
	}
	if club != nil {
		return ErrClubNotAllowed
	}
	return nil
}
