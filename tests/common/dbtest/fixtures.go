//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"slot-booking/internal/pkg/password"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// DBLike is satisfied by a pool, a connection or a transaction.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DefaultPassword is the plain password of every fixture user.
const DefaultPassword = "password123"

var (
	hashOnce    sync.Once
	defaultHash string
)

func passwordHash(t *testing.T) string {
	t.Helper()
	hashOnce.Do(func() {
		h, err := password.NewHasher(bcrypt.MinCost).Hash(DefaultPassword)
		require.NoError(t, err)
		defaultHash = h
	})
	return defaultHash
}

// CreateTestUser inserts an active user; club must be set for club_admin.
// An existing user with the same email is reused.
func CreateTestUser(t *testing.T, db DBLike, email, role string, club *string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()
	name := strings.Split(email, "@")[0]

	tag, err := db.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, role, club, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, true)
		 ON CONFLICT (LOWER(email)) DO NOTHING`,
		userID, name, email, passwordHash(t), role, club)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		err = db.QueryRow(ctx, "SELECT id FROM users WHERE LOWER(email) = LOWER($1)", email).Scan(&userID)
		require.NoError(t, err)
	}
	return userID
}

func DeactivateUser(t *testing.T, db DBLike, email string) {
	t.Helper()
	_, err := db.Exec(context.Background(), "UPDATE users SET is_active = false WHERE LOWER(email) = LOWER($1)", email)
	require.NoError(t, err)
}

// CreateTestSlot inserts an available slot a week from now.
func CreateTestSlot(t *testing.T, db DBLike, createdBy uuid.UUID, venue, start, end string, capacity int) uuid.UUID {
	t.Helper()

	slotID := uuid.New()
	_, err := db.Exec(context.Background(),
		`INSERT INTO slots (id, date, start_time, end_time, venue, capacity, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		slotID, time.Now().AddDate(0, 0, 7).Format(time.DateOnly), start, end, venue, capacity, createdBy)
	require.NoError(t, err)
	return slotID
}

// SlotState returns the stored status and holder of a slot.
func SlotState(t *testing.T, db DBLike, slotID uuid.UUID) (status string, bookingID *uuid.UUID) {
	t.Helper()
	err := db.QueryRow(context.Background(), "SELECT status, booking_id FROM slots WHERE id = $1", slotID).
		Scan(&status, &bookingID)
	require.NoError(t, err)
	return status, bookingID
}

// CountActiveBookings counts pending and approved bookings on a slot.
func CountActiveBookings(t *testing.T, db DBLike, slotID uuid.UUID) int {
	t.Helper()
	var n int
	err := db.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM bookings WHERE slot_id = $1 AND status IN ('pending', 'approved')", slotID).Scan(&n)
	require.NoError(t, err)
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// ResetDB truncates every table in the public schema.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
