package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers client-supplied idempotency keys together with
// the id of the resource the first request produced.
type IdempotencyStore interface {
	// Reserve claims key for ttl. It returns true when the key was free.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Complete attaches the produced resource id to a reserved key.
	Complete(ctx context.Context, key, resourceID string, ttl time.Duration) error

	// Lookup returns the resource id recorded for key, or "" when the key is
	// unknown or still in flight.
	Lookup(ctx context.Context, key string) (string, error)

	// Release forgets a reserved key so the request can be retried.
	Release(ctx context.Context, key string) error

	Close() error
}

// IdempotencyConfig holds configuration for idempotency handling
type IdempotencyConfig struct {
	// TTL is how long a key is remembered. Default: 24 hours
	TTL time.Duration

	Enabled bool
}

// DefaultIdempotencyConfig returns the default idempotency configuration
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     24 * time.Hour,
		Enabled: true,
	}
}
