package health

import (
	"context"
	"errors"

	"github.com/avatarctic/weather-api-wrapper/internal/core/ports"
)

// ErrCacheDisconnected is reported while the cache store is not usable.
var ErrCacheDisconnected = errors.New("cache store not connected")

// Connectivity is satisfied by ports.Cache and redis.ConnectionState.
type Connectivity interface {
	IsConnected() bool
}

// redisHealthChecker reads the tracked connection state; it never issues a probe of its own.
type redisHealthChecker struct{ conn Connectivity }

func (r *redisHealthChecker) Name() string { return "redis" }
func (r *redisHealthChecker) Check(ctx context.Context) error {
	if r.conn == nil || !r.conn.IsConnected() {
		return ErrCacheDisconnected
	}
	return nil
}

// NewRedisHealthChecker creates a health checker for the Redis cache.
func NewRedisHealthChecker(conn Connectivity) ports.HealthChecker {
	return &redisHealthChecker{conn: conn}
}
