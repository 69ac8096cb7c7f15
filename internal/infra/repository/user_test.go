//go:build unit

package repository

import (
	"context"
	"testing"

	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/usecase/shared"
	"slot-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()
	u, err := builder.NewUserBuilder().BuildDomain()
	require.NoError(t, err)

	tests := []struct {
		name    string
		execErr error
		wantErr error
	}{
		{name: "success"},
		{name: "duplicate email", execErr: pgError("23505", "users_email_key"), wantErr: shared.ErrEmailTaken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := new(MockDB)
			db.On("Exec", ctx, insertUserSQL, mock.Anything).Return(tag("INSERT 0 1"), tt.execErr)

			err := NewUserRepository(db).Create(ctx, u)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			db.AssertExpectations(t)
		})
	}
}

func TestUserRepository_FindByEmail_NotFound(t *testing.T) {
	ctx := context.Background()
	u, err := builder.NewUserBuilder().BuildDomain()
	require.NoError(t, err)

	db := new(MockDB)
	db.On("QueryRow", ctx, findUserByEmailSQL, []any{u.Email().Value()}).Return(errRow(pgx.ErrNoRows))

	_, err = NewUserRepository(db).FindByEmail(ctx, u.Email())
	require.ErrorIs(t, err, shared.ErrUserNotFound)
}

func TestUserRepository_TouchLastLogin(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	tests := []struct {
		name     string
		affected string
		execErr  error
		check    func(t *testing.T, err error)
	}{
		{
			name:     "success",
			affected: "UPDATE 1",
			check:    func(t *testing.T, err error) { assert.NoError(t, err) },
		},
		{
			name:     "unknown user",
			affected: "UPDATE 0",
			check:    func(t *testing.T, err error) { assert.ErrorIs(t, err, shared.ErrUserNotFound) },
		},
		{
			name:    "database error",
			execErr: assert.AnError,
			check:   func(t *testing.T, err error) { assert.True(t, errs.Is(err, errs.ErrInternal)) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := new(MockDB)
			db.On("Exec", ctx, touchLastLoginSQL, []any{id}).Return(tag(tt.affected), tt.execErr)

			tt.check(t, NewUserRepository(db).TouchLastLogin(ctx, id))
			db.AssertExpectations(t)
		})
	}
}
