package httpserver

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4/middleware"

	"github.com/avatarctic/weather-api-wrapper/internal/core/ports"
)

func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))

	s.echo.Use(s.middleware.Metrics.CollectHTTPMetrics())
	s.echo.Use(s.middleware.Logging.RequestLogging())

	origins := s.config.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: origins}))

	s.echo.Use(s.middleware.RateLimit.Handler(ports.RateLimitTierGeneral))
}
