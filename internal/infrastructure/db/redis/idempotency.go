package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = 24 * time.Hour

// IdempotencyStore maps client-supplied Idempotency-Key values to the shift
// created for them, backed by Redis.
// Key format: idem:shift:<key>
type IdempotencyStore struct {
	client *redis.Client
}

func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// Lookup returns the shift id recorded for key, if any.
func (s *IdempotencyStore) Lookup(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("idempotency lookup: %w", err)
	}
	return val, true, nil
}

// Remember records the shift created for key (expires after idempotencyTTL).
func (s *IdempotencyStore) Remember(ctx context.Context, key, shiftID string) error {
	return s.client.Set(ctx, s.key(key), shiftID, idempotencyTTL).Err()
}

func (s *IdempotencyStore) key(k string) string {
	return "idem:shift:" + k
}
