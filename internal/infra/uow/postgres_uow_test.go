//go:build unit

package uow

import (
	"context"
	"errors"
	"testing"
	"time"

	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTx only implements the methods the unit of work calls.
type fakeTx struct {
	pgx.Tx
	commitErr   error
	rollbackErr error
	commits     int
	rollbacks   int
}

func (f *fakeTx) Commit(context.Context) error {
	f.commits++
	return f.commitErr
}

func (f *fakeTx) Rollback(context.Context) error {
	f.rollbacks++
	return f.rollbackErr
}

type fakeBeginner struct {
	beginErr error
	txs      []*fakeTx
	next     func() *fakeTx
}

func (b *fakeBeginner) BeginTx(context.Context, pgx.TxOptions) (pgx.Tx, error) {
	if b.beginErr != nil {
		return nil, b.beginErr
	}
	tx := &fakeTx{}
	if b.next != nil {
		tx = b.next()
	}
	b.txs = append(b.txs, tx)
	return tx, nil
}

func serializationFailure() error {
	return &pgconn.PgError{Code: pgErrCodeSerializationFailure, Message: "could not serialize access"}
}

func TestPostgresUoW_Within(t *testing.T) {
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		pool := &fakeBeginner{}
		err := NewPostgresUoW(pool).Within(ctx, func(_ context.Context, tx shared.Tx) error {
			assert.NotNil(t, tx.Slots())
			assert.Same(t, tx.Slots(), tx.Slots())
			return nil
		})

		require.NoError(t, err)
		require.Len(t, pool.txs, 1)
		assert.Equal(t, 1, pool.txs[0].commits)
	})

	t.Run("domain error rolls back without retry", func(t *testing.T) {
		pool := &fakeBeginner{}
		sentinel := errs.NewKind("slot taken", errs.ErrConflict)

		err := NewPostgresUoW(pool).Within(ctx, func(context.Context, shared.Tx) error { return sentinel })

		require.ErrorIs(t, err, sentinel)
		require.Len(t, pool.txs, 1)
		assert.Equal(t, 0, pool.txs[0].commits)
		assert.Equal(t, 1, pool.txs[0].rollbacks)
	})

	t.Run("serialization failure is retried", func(t *testing.T) {
		pool := &fakeBeginner{}
		calls := 0

		err := NewPostgresUoW(pool).Within(ctx, func(context.Context, shared.Tx) error {
			calls++
			if calls < 3 {
				return serializationFailure()
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
		assert.Len(t, pool.txs, 3)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		pool := &fakeBeginner{}
		calls := 0

		err := NewPostgresUoW(pool).Within(ctx, func(context.Context, shared.Tx) error {
			calls++
			return serializationFailure()
		})

		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrInternal))
		assert.Equal(t, maxRetries+1, calls)
	})

	t.Run("cancelled context stops retrying", func(t *testing.T) {
		pool := &fakeBeginner{}
		cctx, cancel := context.WithCancel(ctx)

		err := NewPostgresUoW(pool).Within(cctx, func(context.Context, shared.Tx) error {
			cancel()
			return serializationFailure()
		})

		require.ErrorIs(t, err, context.Canceled)
		assert.Len(t, pool.txs, 1)
	})

	t.Run("failed rollback is surfaced as internal", func(t *testing.T) {
		pool := &fakeBeginner{next: func() *fakeTx { return &fakeTx{rollbackErr: errors.New("connection lost")} }}

		err := NewPostgresUoW(pool).Within(ctx, func(context.Context, shared.Tx) error {
			return errs.NewKind("reserve failed", errs.ErrConflict)
		})

		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrInternal))
		assert.Contains(t, err.Error(), "connection lost")
	})

	t.Run("closed transaction on rollback is ignored", func(t *testing.T) {
		pool := &fakeBeginner{next: func() *fakeTx {
			return &fakeTx{commitErr: errors.New("commit refused"), rollbackErr: pgx.ErrTxClosed}
		}}

		err := NewPostgresUoW(pool).Within(ctx, func(context.Context, shared.Tx) error { return nil })

		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrInternal))
		assert.Contains(t, err.Error(), "commit refused")
	})

	t.Run("begin failure", func(t *testing.T) {
		pool := &fakeBeginner{beginErr: errors.New("pool exhausted")}
		err := NewPostgresUoW(pool).Within(ctx, func(context.Context, shared.Tx) error {
			t.Fatal("callback must not run")
			return nil
		})
		assert.True(t, errs.Is(err, errs.ErrInternal))
	})
}

func TestCalculateBackoff(t *testing.T) {
	for attempt := 0; attempt < maxRetries; attempt++ {
		base := time.Duration(1<<attempt) * baseBackoff
		got := calculateBackoff(attempt, baseBackoff)
		assert.GreaterOrEqual(t, got, base)
		assert.Less(t, got, base+base/5+time.Nanosecond)
	}
}
