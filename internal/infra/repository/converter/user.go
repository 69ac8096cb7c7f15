package converter

import (
	"time"

	"slot-booking/internal/domain/user"
	"slot-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// UserColumns is the select list matching UserRow.Targets.
const UserColumns = `id, name, email, password_hash, role, club, is_active, last_login, created_at, updated_at`

type UserRow struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         string
	Club         pgtype.Text
	IsActive     bool
	LastLogin    pgtype.Timestamptz
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (r *UserRow) Targets() []any {
	return []any{
		&r.ID, &r.Name, &r.Email, &r.PasswordHash, &r.Role, &r.Club,
		&r.IsActive, &r.LastLogin, &r.CreatedAt, &r.UpdatedAt,
	}
}

func UserToDomain(r UserRow) (*user.User, error) {
	name, err := user.NewName(r.Name)
	if err != nil {
		return nil, corrupt(err, "user")
	}
	email, err := user.NewEmail(r.Email)
	if err != nil {
		return nil, corrupt(err, "user")
	}
	role, err := user.NewRole(r.Role)
	if err != nil {
		return nil, corrupt(err, "user")
	}
	var club *user.Club
	if r.Club.Valid {
		c, err := user.NewClub(r.Club.String)
		if err != nil {
			return nil, corrupt(err, "user")
		}
		club = &c
	}

	return user.ReconstructUser(
		r.ID,
		name,
		email,
		r.PasswordHash,
		role,
		club,
		pgconv.TimePtrFromPgtype(r.LastLogin),
		r.IsActive,
		r.CreatedAt,
		r.UpdatedAt,
	), nil
}

func ClubToPgtype(club *user.Club) pgtype.Text {
	if club == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: club.String(), Valid: true}
}
