package readstore

import (
	"context"

	"slot-booking/internal/infra"
	"slot-booking/internal/infra/db"
	"slot-booking/internal/pkg/pgconv"
	"slot-booking/internal/usecase/queries"
	"slot-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const findUserViewSQL = `SELECT id, name, email, role, club, is_active, last_login, created_at
	FROM users WHERE id = $1`

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

var _ queries.UserReadStore = (*UserReadStore)(nil)

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	var (
		v         queries.UserView
		club      pgtype.Text
		lastLogin pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, findUserViewSQL, id).Scan(
		&v.ID, &v.Name, &v.Email, &v.Role, &club, &v.IsActive, &lastLogin, &v.CreatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, shared.ErrUserNotFound
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	v.Club = pgconv.StringPtrFromPgtype(club)
	v.LastLogin = pgconv.TimePtrFromPgtype(lastLogin)
	return &v, nil
}
