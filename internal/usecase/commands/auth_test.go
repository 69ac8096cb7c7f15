//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"slot-booking/internal/domain/user"
	"slot-booking/internal/pkg/clock"
	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/pkg/jwt"
	"slot-booking/internal/pkg/password"
	"slot-booking/internal/pkg/ptr"
	"slot-booking/internal/usecase/commands"
	"slot-booking/internal/usecase/shared"
	"slot-booking/tests/common/builder"
	"slot-booking/tests/common/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type authFixture struct {
	store  *memstore.Store
	jwt    *jwt.Service
	hasher *password.Hasher
	uc     commands.AuthCommands
}

func newAuthFixture() authFixture {
	store := memstore.New()
	jwtService := jwt.NewService("test-secret", time.Hour)
	hasher := password.NewHasher(bcrypt.MinCost)
	return authFixture{
		store:  store,
		jwt:    jwtService,
		hasher: hasher,
		uc:     commands.NewAuthCommands(store, jwtService, hasher, clock.NewRealClock(time.UTC)),
	}
}

func (f authFixture) putUser(t *testing.T, b *builder.UserBuilder, plain string) *user.User {
	t.Helper()
	hash, err := f.hasher.Hash(plain)
	require.NoError(t, err)
	u, err := b.WithPasswordHash(hash).BuildDomain()
	require.NoError(t, err)
	f.store.PutUser(u)
	return u
}

func TestAuthCommands_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("club admin with club", func(t *testing.T) {
		f := newAuthFixture()

		res, err := f.uc.Register(ctx, commands.RegisterInput{
			Name:     "Meera",
			Email:    "meera@example.com",
			Password: "password123",
			Role:     "club_admin",
			Club:     ptr.Of("Sports Club"),
		})
		require.NoError(t, err)

		assert.Equal(t, user.RoleClubAdmin, res.Identity.Role)
		require.NotNil(t, res.Identity.Club)
		assert.Equal(t, user.ClubSports, *res.Identity.Club)

		claims, err := f.jwt.ValidateToken(res.Token)
		require.NoError(t, err)
		assert.Equal(t, res.Identity.ID, claims.UserID)

		stored := f.store.User(res.Identity.ID)
		require.NotNil(t, stored)
		assert.NotEqual(t, "password123", stored.PasswordHash())
		assert.NoError(t, f.hasher.Compare(stored.PasswordHash(), "password123"))
	})

	t.Run("role defaults to user and drops the club", func(t *testing.T) {
		f := newAuthFixture()

		res, err := f.uc.Register(ctx, commands.RegisterInput{
			Name:     "Ravi",
			Email:    "ravi@example.com",
			Password: "password123",
			Club:     ptr.Of("Cultural Club"),
		})
		require.NoError(t, err)
		assert.Equal(t, user.RoleUser, res.Identity.Role)
		assert.Nil(t, res.Identity.Club)
	})

	t.Run("super admin cannot self register", func(t *testing.T) {
		f := newAuthFixture()
		_, err := f.uc.Register(ctx, commands.RegisterInput{
			Name: "Eve", Email: "eve@example.com", Password: "password123", Role: "super_admin",
		})
		require.ErrorIs(t, err, user.ErrRoleNotRegisterable)
		assert.Equal(t, 0, f.store.Commits())
	})

	t.Run("club admin without club", func(t *testing.T) {
		f := newAuthFixture()
		_, err := f.uc.Register(ctx, commands.RegisterInput{
			Name: "Kiran", Email: "kiran@example.com", Password: "password123", Role: "club_admin",
		})
		require.ErrorIs(t, err, user.ErrClubRequired)
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := newAuthFixture()
		f.putUser(t, builder.NewUserBuilder().WithEmail("taken@example.com"), "password123")

		_, err := f.uc.Register(ctx, commands.RegisterInput{
			Name: "Other", Email: "taken@example.com", Password: "password123",
		})
		require.ErrorIs(t, err, shared.ErrEmailTaken)
		assert.True(t, errs.Is(err, errs.ErrConflict))
	})

	t.Run("weak password", func(t *testing.T) {
		f := newAuthFixture()
		_, err := f.uc.Register(ctx, commands.RegisterInput{
			Name: "Short", Email: "short@example.com", Password: "short",
		})
		require.ErrorIs(t, err, user.ErrPasswordTooWeak)
	})
}

func TestAuthCommands_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f := newAuthFixture()
		u := f.putUser(t, builder.NewUserBuilder().WithEmail("login@example.com"), "password123")

		res, err := f.uc.Login(ctx, "login@example.com", "password123")

		require.NoError(t, err)
		assert.Equal(t, u.ID(), res.Identity.ID)
		assert.NotEmpty(t, res.Token)
		assert.NotNil(t, f.store.User(u.ID()).LastLogin())
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newAuthFixture()
		f.putUser(t, builder.NewUserBuilder().WithEmail("login@example.com"), "password123")

		_, err := f.uc.Login(ctx, "login@example.com", "wrongpassword")
		require.ErrorIs(t, err, commands.ErrInvalidCredentials)
	})

	t.Run("unknown email looks like a wrong password", func(t *testing.T) {
		f := newAuthFixture()
		_, err := f.uc.Login(ctx, "nobody@example.com", "password123")
		require.ErrorIs(t, err, commands.ErrInvalidCredentials)
		assert.True(t, errs.Is(err, errs.ErrUnauthorized))
	})

	t.Run("inactive account", func(t *testing.T) {
		f := newAuthFixture()
		f.putUser(t, builder.NewUserBuilder().WithEmail("gone@example.com").AsInactive(), "password123")

		_, err := f.uc.Login(ctx, "gone@example.com", "password123")
		require.ErrorIs(t, err, shared.ErrUserInactive)
	})

	t.Run("last login failure does not block login", func(t *testing.T) {
		f := newAuthFixture()
		f.putUser(t, builder.NewUserBuilder().WithEmail("login@example.com"), "password123")
		f.store.FailOn(memstore.OpUserTouchLogin, errs.New("write failed"))

		res, err := f.uc.Login(ctx, "login@example.com", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
	})
}

func TestAuthCommands_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("name and club change reissue the token", func(t *testing.T) {
		f := newAuthFixture()
		u := f.putUser(t, builder.NewUserBuilder().WithEmail("me@example.com"), "password123")

		res, err := f.uc.UpdateProfile(ctx, u.Identity(), commands.ProfileInput{
			Name: ptr.Of("New Name"),
			Club: ptr.Of("Literary Club"),
		})
		require.NoError(t, err)

		claims, err := f.jwt.ValidateToken(res.Token)
		require.NoError(t, err)
		assert.Equal(t, user.ClubLiterary.String(), claims.Club)
		assert.Equal(t, "New Name", f.store.User(u.ID()).Name().Value())
	})

	t.Run("email already used by someone else", func(t *testing.T) {
		f := newAuthFixture()
		f.putUser(t, builder.NewUserBuilder().WithEmail("other@example.com"), "password123")
		u := f.putUser(t, builder.NewUserBuilder().WithEmail("me@example.com"), "password123")

		_, err := f.uc.UpdateProfile(ctx, u.Identity(), commands.ProfileInput{Email: ptr.Of("other@example.com")})
		require.ErrorIs(t, err, shared.ErrEmailTaken)
		assert.Equal(t, "me@example.com", f.store.User(u.ID()).Email().Value())
	})

	t.Run("invalid club", func(t *testing.T) {
		f := newAuthFixture()
		u := f.putUser(t, builder.NewUserBuilder(), "password123")
		_, err := f.uc.UpdateProfile(ctx, u.Identity(), commands.ProfileInput{Club: ptr.Of("Chess Club")})
		require.ErrorIs(t, err, user.ErrInvalidClub)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newAuthFixture()
		_, err := f.uc.UpdateProfile(ctx, builder.NewUserBuilder().BuildIdentity(), commands.ProfileInput{Name: ptr.Of("X")})
		require.ErrorIs(t, err, shared.ErrUserNotFound)
	})
}

func TestAuthCommands_EnsureSuperAdmin(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()

	require.NoError(t, f.uc.EnsureSuperAdmin(ctx, "Root", "root@example.com", "password123"))
	require.NoError(t, f.uc.EnsureSuperAdmin(ctx, "Root", "root@example.com", "password123"))

	res, err := f.uc.Login(ctx, "root@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.RoleSuperAdmin, res.Identity.Role)
	assert.Nil(t, res.Identity.Club)

	t.Run("empty credentials are a no-op", func(t *testing.T) {
		g := newAuthFixture()
		require.NoError(t, g.uc.EnsureSuperAdmin(ctx, "Root", "", ""))
		assert.Equal(t, 0, g.store.Commits())
	})
}
