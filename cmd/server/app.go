package main

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	config "github.com/avatarctic/weather-api-wrapper/configs"
	"github.com/avatarctic/weather-api-wrapper/internal/application/services"
	"github.com/avatarctic/weather-api-wrapper/internal/core/ports"
	"github.com/avatarctic/weather-api-wrapper/internal/infrastructure/health"
	"github.com/avatarctic/weather-api-wrapper/internal/infrastructure/httpserver"
	"github.com/avatarctic/weather-api-wrapper/internal/infrastructure/redis"
	"github.com/avatarctic/weather-api-wrapper/internal/infrastructure/repositories"
	"github.com/avatarctic/weather-api-wrapper/internal/infrastructure/weatherapi"
)

// app is the fully wired process: HTTP server plus the Redis monitor it depends on.
type app struct {
	server  *httpserver.Server
	cache   *redis.RedisCache
	monitor *redis.Monitor
	state   *redis.ConnectionState
	logger  *logrus.Logger
}

// newApp wires every component from cfg. It never contacts Redis or the provider;
// httpClient may be nil to use the default transport.
func newApp(cfg *config.Config, logger *logrus.Logger, httpClient *http.Client) *app {
	// Redis is optional: the client dials lazily and the monitor tracks liveness in the background.
	state := redis.NewConnectionState(logger)
	redisClient := redis.NewRedisClient(&cfg.Redis, state)
	monitor := redis.NewMonitor(redisClient, state, redis.MonitorConfig{
		HealthInterval: cfg.Redis.HealthInterval,
		InitialBackoff: cfg.Redis.InitialBackoff,
		MaxBackoff:     cfg.Redis.MaxBackoff,
		PingTimeout:    cfg.Redis.DialTimeout,
	}, logger)

	cache := redis.NewRedisCache(redisClient, state, cfg.Redis.OpTimeout, logger)

	provider := weatherapi.NewClient(weatherapi.Config{
		BaseURL:            cfg.Weather.BaseURL,
		APIKey:             cfg.Weather.APIKey,
		Timeout:            cfg.Weather.Timeout,
		BreakerFailures:    cfg.Weather.BreakerFailures,
		BreakerOpenTimeout: cfg.Weather.BreakerOpenTimeout,
	}, httpClient, logger)

	weatherService := services.NewWeatherService(cache, provider, cfg.Weather.CacheTTL, logger)

	rateLimiterConfig := &services.RateLimiterConfig{
		KeyPrefix: cfg.RateLimit.KeyPrefix,
		Policies: map[string]services.RateLimitPolicy{
			ports.RateLimitTierGeneral: {Max: cfg.RateLimit.General.Max, Window: cfg.RateLimit.General.Window},
			ports.RateLimitTierWeather: {Max: cfg.RateLimit.Weather.Max, Window: cfg.RateLimit.Weather.Window},
			ports.RateLimitTierHealth:  {Max: cfg.RateLimit.Health.Max, Window: cfg.RateLimit.Health.Window},
		},
	}
	rateLimiterService := services.NewRateLimiterService(
		repositories.NewRateLimitRedisRepository(redisClient, state),
		repositories.NewRateLimitMemoryRepository(),
		rateLimiterConfig,
		logger,
	)

	serverConfig := &httpserver.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		TLSCertFile:    cfg.Server.TLSCertFile,
		TLSKeyFile:     cfg.Server.TLSKeyFile,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		StaticDir:      cfg.Server.StaticDir,
		Version:        cfg.Server.Version,
	}

	deps := httpserver.ServerDeps{
		WeatherService:     weatherService,
		RateLimiterService: rateLimiterService,
		HealthCheckers:     []ports.HealthChecker{health.NewRedisHealthChecker(cache)},
	}

	return &app{
		server:  httpserver.NewServer(serverConfig, logger, deps),
		cache:   cache,
		monitor: monitor,
		state:   state,
		logger:  logger,
	}
}

// shutdown stops the server within ctx and then closes the cache.
func (a *app) shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)
	if cerr := a.cache.Close(); cerr != nil {
		a.logger.WithError(cerr).Warn("closing redis cache")
	}
	return err
}

func newLogger(cfg config.LogConfig) *logrus.Logger {
	logger := logrus.New()
	if cfg.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(level)
	}
	return logger
}
