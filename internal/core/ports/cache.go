package ports

import (
	"context"
	"time"
)

// Cache defines the weather cache contract.
// Implementations fail open: store faults are absorbed and reported as a miss or a
// no-op, so callers never need an error path for the cache.
type Cache interface {
	// Get returns the raw bytes for key. ok=false if not found or the store is unavailable.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Set stores value for key with TTL (0 or negative means no expiration).
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	// Delete removes the key and reports whether anything was removed.
	Delete(ctx context.Context, key string) bool
	// IsConnected reflects current store liveness.
	IsConnected() bool
}
