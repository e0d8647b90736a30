package redis

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	config "github.com/avatarctic/weather-api-wrapper/configs"
)

// NewRedisClient creates a new Redis client without contacting the server.
// Connections are dialed lazily; every successful dial marks state as up.
func NewRedisClient(cfg *config.RedisConfig, state *ConnectionState) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolTimeout:  cfg.PoolTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		OnConnect: func(ctx context.Context, cn *redis.Conn) error {
			state.MarkUp()
			return nil
		},
	})
}
