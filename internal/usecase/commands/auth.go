package commands

//go:generate mockgen -destination=../../../tests/mock/commands/commands.go -package=commandsmock slot-booking/internal/usecase/commands AuthCommands,BookingCommands,SlotCommands

import (
	"context"
	"errors"
	"log/slog"

	"slot-booking/internal/domain/user"
	"slot-booking/internal/pkg/clock"
	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/pkg/jwt"
	"slot-booking/internal/pkg/password"
	"slot-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errs.NewKind("invalid email or password", errs.ErrUnauthorized)
	ErrTokenGeneration    = errs.NewKind("token generation failed", errs.ErrInternal)
)

type AuthResult struct {
	Identity user.Identity
	Token    string
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	Club     *string
}

type ProfileInput struct {
	Name  *string
	Email *string
	Club  *string
}

type AuthCommands interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, pass string) (*AuthResult, error)
	UpdateProfile(ctx context.Context, identity user.Identity, in ProfileInput) (*AuthResult, error)
	// EnsureSuperAdmin creates the bootstrap administrator unless the email is taken.
	EnsureSuperAdmin(ctx context.Context, name, email, pass string) error
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	jwtService *jwt.Service
	hasher     *password.Hasher
	clock      clock.Clock
}

func NewAuthCommands(uow shared.UnitOfWork, jwtService *jwt.Service, hasher *password.Hasher, clk clock.Clock) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		jwtService: jwtService,
		hasher:     hasher,
		clock:      clk,
	}
}

func (a *authCommandsImpl) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	name, err := user.NewName(in.Name)
	if err != nil {
		return nil, err
	}
	credentials, err := user.NewCredentials(in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	role := user.RoleUser
	if in.Role != "" {
		if role, err = user.NewRole(in.Role); err != nil {
			return nil, err
		}
	}
	var club *user.Club
	if in.Club != nil && *in.Club != "" {
		c, err := user.NewClub(*in.Club)
		if err != nil {
			return nil, err
		}
		club = &c
	}

	// Reject role and club problems before paying for bcrypt.
	if _, err := user.NewRegisteredUser(name, credentials.Email(), "", role, club, a.clock.Now()); err != nil {
		return nil, err
	}
	hash, err := a.hasher.Hash(credentials.Password().Value())
	if err != nil {
		return nil, err
	}
	u, err := user.NewRegisteredUser(name, credentials.Email(), hash, role, club, a.clock.Now())
	if err != nil {
		return nil, err
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := ensureEmailFree(ctx, tx, credentials.Email(), uuid.Nil); err != nil {
			return err
		}
		return tx.Users().Create(ctx, u)
	})
	if err != nil {
		return nil, err
	}
	return a.issue(u.Identity())
}

func (a *authCommandsImpl) Login(ctx context.Context, email, pass string) (*AuthResult, error) {
	credentials, err := user.NewCredentials(email, pass)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	var u *user.User
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, err := tx.Users().FindByEmail(ctx, credentials.Email())
		if err != nil {
			return err
		}
		u = found
		return nil
	})
	if err != nil {
		if errors.Is(err, shared.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := a.hasher.Compare(u.PasswordHash(), credentials.Password().Value()); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive() {
		return nil, shared.ErrUserInactive
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().TouchLastLogin(ctx, u.ID())
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to update last login", "user_id", u.ID(), "error", err.Error())
	}

	return a.issue(u.Identity())
}

func (a *authCommandsImpl) UpdateProfile(ctx context.Context, identity user.Identity, in ProfileInput) (*AuthResult, error) {
	var name *user.Name
	if in.Name != nil {
		n, err := user.NewName(*in.Name)
		if err != nil {
			return nil, err
		}
		name = &n
	}
	var email *user.Email
	if in.Email != nil {
		e, err := user.NewEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		email = &e
	}
	var club *user.Club
	if in.Club != nil {
		c, err := user.NewClub(*in.Club)
		if err != nil {
			return nil, err
		}
		club = &c
	}

	var updated *user.User
	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		u, err := tx.Users().FindByID(ctx, identity.ID)
		if err != nil {
			return err
		}
		if !u.IsActive() {
			return shared.ErrUserInactive
		}
		if email != nil && email.Value() != u.Email().Value() {
			if err := ensureEmailFree(ctx, tx, *email, u.ID()); err != nil {
				return err
			}
		}
		u.UpdateProfile(name, email, club, a.clock.Now())
		if err := tx.Users().UpdateProfile(ctx, u); err != nil {
			return err
		}
		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a.issue(updated.Identity())
}

func (a *authCommandsImpl) EnsureSuperAdmin(ctx context.Context, name, email, pass string) error {
	if email == "" || pass == "" {
		return nil
	}
	n, err := user.NewName(name)
	if err != nil {
		return err
	}
	credentials, err := user.NewCredentials(email, pass)
	if err != nil {
		return err
	}

	created := false
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Users().FindByEmail(ctx, credentials.Email())
		if err == nil {
			return nil
		}
		if !errors.Is(err, shared.ErrUserNotFound) {
			return err
		}
		hash, err := a.hasher.Hash(credentials.Password().Value())
		if err != nil {
			return err
		}
		u, err := user.NewUser(n, credentials.Email(), hash, user.RoleSuperAdmin, nil, a.clock.Now())
		if err != nil {
			return err
		}
		created = true
		return tx.Users().Create(ctx, u)
	})
	if err != nil {
		return err
	}
	if created {
		slog.InfoContext(ctx, "bootstrap super admin created", "email", credentials.Email().Value())
	}
	return nil
}

func (a *authCommandsImpl) issue(identity user.Identity) (*AuthResult, error) {
	token, err := a.jwtService.GenerateToken(identity)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	return &AuthResult{Identity: identity, Token: token}, nil
}

func ensureEmailFree(ctx context.Context, tx shared.Tx, email user.Email, self uuid.UUID) error {
	existing, err := tx.Users().FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrUserNotFound) {
			return nil
		}
		return err
	}
	if existing.ID() == self {
		return nil
	}
	return shared.ErrEmailTaken
}
