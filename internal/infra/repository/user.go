package repository

import (
	"context"

	"slot-booking/internal/domain/user"
	"slot-booking/internal/infra"
	"slot-booking/internal/infra/db"
	"slot-booking/internal/infra/repository/converter"
	"slot-booking/internal/pkg/pgconv"
	"slot-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	findUserByIDSQL    = `SELECT ` + converter.UserColumns + ` FROM users WHERE id = $1`
	findUserByEmailSQL = `SELECT ` + converter.UserColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`

	insertUserSQL = `INSERT INTO users (` + converter.UserColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	updateUserProfileSQL = `UPDATE users SET name = $2, email = $3, club = $4, updated_at = $5 WHERE id = $1`

	touchLastLoginSQL = `UPDATE users SET last_login = NOW(), updated_at = NOW() WHERE id = $1`
)

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(dbtx db.DBTX) *UserRepository {
	return &UserRepository{db: dbtx}
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.findOne(ctx, findUserByIDSQL, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email user.Email) (*user.User, error) {
	return r.findOne(ctx, findUserByEmailSQL, email.Value())
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.Exec(ctx, insertUserSQL,
		u.ID(),
		u.Name().Value(),
		u.Email().Value(),
		u.PasswordHash(),
		u.Role().String(),
		converter.ClubToPgtype(u.Club()),
		u.IsActive(),
		pgconv.TimePtrToPgtype(u.LastLogin()),
		u.CreatedAt(),
		u.UpdatedAt(),
	)
	if err != nil {
		return r.wrapWriteErr("failed to create user", err)
	}
	return nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, u *user.User) error {
	tag, err := r.db.Exec(ctx, updateUserProfileSQL,
		u.ID(),
		u.Name().Value(),
		u.Email().Value(),
		converter.ClubToPgtype(u.Club()),
		u.UpdatedAt(),
	)
	if err != nil {
		return r.wrapWriteErr("failed to update user profile", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, touchLastLoginSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to update user last login", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*user.User, error) {
	var row converter.UserRow
	if err := r.db.QueryRow(ctx, query, arg).Scan(row.Targets()...); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, shared.ErrUserNotFound
		}
		return nil, infra.WrapRepoErr("failed to find user", err)
	}
	return converter.UserToDomain(row)
}

func (r *UserRepository) wrapWriteErr(msg string, err error) error {
	if pgconv.PgErrorCode(err) == pgconv.CodeUniqueViolation {
		return shared.ErrEmailTaken
	}
	return infra.WrapRepoErr(msg, err)
}
