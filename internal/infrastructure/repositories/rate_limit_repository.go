package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrStoreUnavailable is returned when the shared counter store cannot be used.
var ErrStoreUnavailable = errors.New("rate limit store unavailable")

// Liveness reports whether the backing store is reachable.
type Liveness interface {
	IsConnected() bool
}

// RateLimitRedisRepository implements rate limiting counter storage with Redis.
type RateLimitRedisRepository struct {
	r     redis.Cmdable
	state Liveness
}

func NewRateLimitRedisRepository(r redis.Cmdable, state Liveness) *RateLimitRedisRepository {
	return &RateLimitRedisRepository{r: r, state: state}
}

// IncrementWindow increments a per-subject counter for a fixed window.
func (repo *RateLimitRedisRepository) IncrementWindow(ctx context.Context, subject string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error) {
	windowStart := time.Now().Truncate(window)
	if repo.state != nil && !repo.state.IsConnected() {
		return 0, windowStart, ErrStoreUnavailable
	}
	key := windowKey(keyPrefix, subject, windowStart)
	pipe := repo.r.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, windowStart, err
	}
	return int(incr.Val()), windowStart, nil
}

func windowKey(prefix, subject string, windowStart time.Time) string {
	return fmt.Sprintf("%s:%s:%d", prefix, subject, windowStart.Unix())
}
