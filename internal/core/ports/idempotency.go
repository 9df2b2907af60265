package ports

import "context"

// IdempotencyStore remembers which idempotency keys were already used and
// which shift they produced.
type IdempotencyStore interface {
	Lookup(ctx context.Context, key string) (shiftID string, found bool, err error)
	Remember(ctx context.Context, key, shiftID string) error
}
