//go:build unit

package idempotency_test

import (
	"context"
	"testing"
	"time"

	"slot-booking/internal/infra/idempotency"
	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/usecase/shared"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*idempotency.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return idempotency.NewRedisStore(client, time.Hour), mr
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()

	t.Run("first claim wins", func(t *testing.T) {
		store, _ := newStore(t)
		userID := uuid.New()

		existing, err := store.Claim(ctx, "key-1", userID, "hash-a")
		require.NoError(t, err)
		assert.Nil(t, existing)

		existing, err = store.Claim(ctx, "key-1", userID, "hash-a")
		require.NoError(t, err)
		require.NotNil(t, existing)
		assert.Equal(t, shared.IdempotencyProcessing, existing.Status)
		assert.Equal(t, "hash-a", existing.RequestHash)
		assert.Nil(t, existing.BookingID)
	})

	t.Run("keys are scoped per user", func(t *testing.T) {
		store, _ := newStore(t)

		existing, err := store.Claim(ctx, "shared-key", uuid.New(), "hash")
		require.NoError(t, err)
		assert.Nil(t, existing)

		existing, err = store.Claim(ctx, "shared-key", uuid.New(), "hash")
		require.NoError(t, err)
		assert.Nil(t, existing)
	})

	t.Run("complete records booking id", func(t *testing.T) {
		store, _ := newStore(t)
		userID := uuid.New()
		bookingID := uuid.New()

		_, err := store.Claim(ctx, "key-2", userID, "hash-b")
		require.NoError(t, err)
		require.NoError(t, store.Complete(ctx, "key-2", userID, "hash-b", bookingID))

		existing, err := store.Claim(ctx, "key-2", userID, "hash-b")
		require.NoError(t, err)
		require.NotNil(t, existing)
		assert.Equal(t, shared.IdempotencyCompleted, existing.Status)
		assert.Equal(t, "hash-b", existing.RequestHash)
		require.NotNil(t, existing.BookingID)
		assert.Equal(t, bookingID, *existing.BookingID)
	})

	t.Run("complete after the claim expired keeps the request hash", func(t *testing.T) {
		store, mr := newStore(t)
		userID := uuid.New()
		bookingID := uuid.New()

		_, err := store.Claim(ctx, "key-6", userID, "hash-f")
		require.NoError(t, err)
		mr.FastForward(2 * time.Hour)
		require.NoError(t, store.Complete(ctx, "key-6", userID, "hash-f", bookingID))

		existing, err := store.Claim(ctx, "key-6", userID, "hash-f")
		require.NoError(t, err)
		require.NotNil(t, existing)
		assert.Equal(t, shared.IdempotencyCompleted, existing.Status)
		assert.Equal(t, "hash-f", existing.RequestHash)
		require.NotNil(t, existing.BookingID)
		assert.Equal(t, bookingID, *existing.BookingID)
	})

	t.Run("release allows a new claim", func(t *testing.T) {
		store, _ := newStore(t)
		userID := uuid.New()

		_, err := store.Claim(ctx, "key-3", userID, "hash-c")
		require.NoError(t, err)
		require.NoError(t, store.Release(ctx, "key-3", userID))

		existing, err := store.Claim(ctx, "key-3", userID, "hash-d")
		require.NoError(t, err)
		assert.Nil(t, existing)
	})

	t.Run("records expire", func(t *testing.T) {
		store, mr := newStore(t)
		userID := uuid.New()

		_, err := store.Claim(ctx, "key-4", userID, "hash-e")
		require.NoError(t, err)
		mr.FastForward(2 * time.Hour)

		existing, err := store.Claim(ctx, "key-4", userID, "hash-e")
		require.NoError(t, err)
		assert.Nil(t, existing)
	})

	t.Run("unreachable redis", func(t *testing.T) {
		store, mr := newStore(t)
		mr.Close()

		_, err := store.Claim(ctx, "key-5", uuid.New(), "hash")
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrInternal))
	})

	t.Run("ping follows server availability", func(t *testing.T) {
		store, mr := newStore(t)
		require.NoError(t, store.Ping(ctx))

		mr.Close()
		assert.Error(t, store.Ping(ctx))
	})
}
