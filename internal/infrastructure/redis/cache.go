package redis

import (
	"context"
	"io"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const defaultOpTimeout = 500 * time.Millisecond

// RedisCache implements ports.Cache using a Redis client.
// Every method consults ConnectionState first and never returns store errors.
type RedisCache struct {
	r         redis.Cmdable
	state     *ConnectionState
	opTimeout time.Duration
	logger    *logrus.Logger
}

// NewRedisCache creates a new Redis-backed cache.
func NewRedisCache(r redis.Cmdable, state *ConnectionState, opTimeout time.Duration, logger *logrus.Logger) *RedisCache {
	if opTimeout <= 0 {
		opTimeout = defaultOpTimeout
	}
	return &RedisCache{r: r, state: state, opTimeout: opTimeout, logger: logger}
}

// Get implements Cache.Get.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if !c.state.IsConnected() {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()

	val, err := c.r.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.warn(err, key, "Error getting from cache")
		return nil, false
	}
	return val, true
}

// Set implements Cache.Set.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if !c.state.IsConnected() {
		return
	}
	if ttl < 0 {
		ttl = 0
	}
	ctx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()

	if err := c.r.Set(ctx, key, value, ttl).Err(); err != nil {
		c.warn(err, key, "Error setting cache")
	}
}

// Delete implements Cache.Delete.
func (c *RedisCache) Delete(ctx context.Context, key string) bool {
	if !c.state.IsConnected() {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()

	n, err := c.r.Del(ctx, key).Result()
	if err != nil {
		c.warn(err, key, "Error deleting from cache")
		return false
	}
	return n > 0
}

func (c *RedisCache) IsConnected() bool {
	return c.state.IsConnected()
}

// Close releases the client pool at shutdown. A failure is reported only while
// the store was connected; closing a dead pool is silent.
func (c *RedisCache) Close() error {
	closer, ok := c.r.(io.Closer)
	if !ok {
		return nil
	}
	connected := c.state.IsConnected()
	if err := closer.Close(); err != nil && connected {
		return err
	}
	return nil
}

func (c *RedisCache) warn(err error, key, msg string) {
	if c.logger != nil {
		c.logger.WithError(err).WithField("key", key).Warn(msg)
	}
}
