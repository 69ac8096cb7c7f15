//go:build unit || e2e

package builder

import (
	"time"

	"slot-booking/internal/domain/user"
	"slot-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserBuilder struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         string
	Club         *string
	IsActive     bool
	Now          time.Time
}

func NewUserBuilder() *UserBuilder {
	club := user.ClubTechnical.String()
	return &UserBuilder{
		ID:           uuid.New(),
		Name:         "Test Admin",
		Email:        "test@example.com",
		PasswordHash: "hashed_password",
		Role:         user.RoleClubAdmin.String(),
		Club:         &club,
		IsActive:     true,
		Now:          time.Now(),
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

// Build methods
func (u *UserBuilder) BuildDomain() (*user.User, error) {
	name, err := user.NewName(u.Name)
	if err != nil {
		return nil, err
	}
	email, err := user.NewEmail(u.Email)
	if err != nil {
		return nil, err
	}
	role, err := user.NewRole(u.Role)
	if err != nil {
		return nil, err
	}
	var club *user.Club
	if u.Club != nil {
		c := user.Club(*u.Club)
		club = &c
	}

	created, err := user.NewUser(name, email, u.PasswordHash, role, club, u.Now)
	if err != nil {
		return nil, err
	}
	if u.IsActive {
		return created, nil
	}
	return user.ReconstructUser(created.ID(), name, email, u.PasswordHash, role, club, nil, false, u.Now, u.Now), nil
}

// BuildIdentity returns the caller identity without validation.
func (u *UserBuilder) BuildIdentity() user.Identity {
	var club *user.Club
	if u.Club != nil {
		c := user.Club(*u.Club)
		club = &c
	}
	return user.Identity{ID: u.ID, Role: user.Role(u.Role), Club: club}
}

func (u *UserBuilder) BuildView() *queries.UserView {
	return &queries.UserView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Club:      u.Club,
		IsActive:  u.IsActive,
		CreatedAt: u.Now,
	}
}

// Fluent builder methods
func (u *UserBuilder) WithName(name string) *UserBuilder {
	u.Name = name
	return u
}

func (u *UserBuilder) WithEmail(email string) *UserBuilder {
	u.Email = email
	return u
}

func (u *UserBuilder) WithRole(role string) *UserBuilder {
	u.Role = role
	return u
}

func (u *UserBuilder) WithPasswordHash(hash string) *UserBuilder {
	u.PasswordHash = hash
	return u
}

func (u *UserBuilder) WithClub(club string) *UserBuilder {
	u.Club = &club
	return u
}

func (u *UserBuilder) WithoutClub() *UserBuilder {
	u.Club = nil
	return u
}

func (u *UserBuilder) AsSuperAdmin() *UserBuilder {
	u.Role = user.RoleSuperAdmin.String()
	u.Club = nil
	return u
}

func (u *UserBuilder) AsMember() *UserBuilder {
	u.Role = user.RoleUser.String()
	u.Club = nil
	return u
}

func (u *UserBuilder) AsInactive() *UserBuilder {
	u.IsActive = false
	return u
}
