package idempotency

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"slot-booking/internal/pkg/config"
	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "idempotency:bookings:"

var ErrStoreUnavailable = errs.NewKind("idempotency store unavailable", errs.ErrInternal)

type entry struct {
	Status      shared.IdempotencyStatus `json:"status"`
	RequestHash string                   `json:"request_hash"`
	BookingID   *uuid.UUID               `json:"booking_id,omitempty"`
}

// RedisStore keeps idempotency records as JSON values with a TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{client: client, ttl: ttl}
}

var _ shared.IdempotencyStore = (*RedisStore)(nil)

func (s *RedisStore) Claim(ctx context.Context, key string, userID uuid.UUID, requestHash string) (*shared.IdempotencyRecord, error) {
	data, err := json.Marshal(entry{Status: shared.IdempotencyProcessing, RequestHash: requestHash})
	if err != nil {
		return nil, errs.Wrap(err, "marshal idempotency entry")
	}

	rk := redisKey(key, userID)
	// One retry covers a record expiring between SETNX and GET.
	for attempt := 0; attempt < 2; attempt++ {
		claimed, err := s.client.SetNX(ctx, rk, data, s.ttl).Result()
		if err != nil {
			return nil, errs.Mark(errs.Wrap(err, "claim idempotency key"), ErrStoreUnavailable)
		}
		if claimed {
			return nil, nil
		}

		existing, err := s.get(ctx, rk)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			continue
		}
		return &shared.IdempotencyRecord{
			Key:         key,
			UserID:      userID,
			Status:      existing.Status,
			RequestHash: existing.RequestHash,
			BookingID:   existing.BookingID,
		}, nil
	}
	return nil, errs.Mark(errs.New("idempotency key kept expiring during claim"), ErrStoreUnavailable)
}

func (s *RedisStore) Complete(ctx context.Context, key string, userID uuid.UUID, requestHash string, bookingID uuid.UUID) error {
	data, err := json.Marshal(entry{Status: shared.IdempotencyCompleted, RequestHash: requestHash, BookingID: &bookingID})
	if err != nil {
		return errs.Wrap(err, "marshal idempotency entry")
	}
	if err := s.client.Set(ctx, redisKey(key, userID), data, s.ttl).Err(); err != nil {
		return errs.Mark(errs.Wrap(err, "complete idempotency key"), ErrStoreUnavailable)
	}
	return nil
}

func (s *RedisStore) Release(ctx context.Context, key string, userID uuid.UUID) error {
	if err := s.client.Del(ctx, redisKey(key, userID)).Err(); err != nil {
		return errs.Mark(errs.Wrap(err, "release idempotency key"), ErrStoreUnavailable)
	}
	return nil
}

func (s *RedisStore) get(ctx context.Context, rk string) (*entry, error) {
	raw, err := s.client.Get(ctx, rk).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "read idempotency key"), ErrStoreUnavailable)
	}
	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, errs.Wrap(err, "unmarshal idempotency entry")
	}
	return &e, nil
}

func redisKey(key string, userID uuid.UUID) string {
	return keyPrefix + userID.String() + ":" + key
}

func Ping(ctx context.Context, client *redis.Client) error {
	if err := client.Ping(ctx).Err(); err != nil {
		return errs.Wrap(err, "ping redis")
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return Ping(ctx, s.client)
}
