package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const idempotencyKeyPrefix = "idem:book:"

// IdempotencyStore remembers which event a booking key produced, so a
// retried /book request replays the original confirmation instead of
// inserting a second event.
type IdempotencyStore interface {
	// Get returns the event id recorded for the key, if any.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set records the event id produced for the key.
	Set(ctx context.Context, key, eventID string) error
}

// RedisIdempotencyStore keeps keys in redis with a TTL.
type RedisIdempotencyStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisIdempotencyStore(client *redis.Client, ttl time.Duration) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{Client: client, TTL: ttl}
}

func (s *RedisIdempotencyStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.Client.Get(ctx, idempotencyKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("idempotency get: %w", err)
	}
	return val, true, nil
}

func (s *RedisIdempotencyStore) Set(ctx context.Context, key, eventID string) error {
	if err := s.Client.Set(ctx, idempotencyKeyPrefix+key, eventID, s.TTL).Err(); err != nil {
		return fmt.Errorf("idempotency set: %w", err)
	}
	return nil
}
