package httpserver

import (
	"os"

	"github.com/avatarctic/weather-api-wrapper/internal/core/ports"
)

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck, s.middleware.RateLimit.Handler(ports.RateLimitTierHealth))
	s.echo.GET("/metrics", s.metricsEndpoint)
	s.echo.GET("/weather", s.getWeather, s.middleware.RateLimit.Handler(ports.RateLimitTierWeather))
	s.echo.GET("/weather/", s.getWeather, s.middleware.RateLimit.Handler(ports.RateLimitTierWeather))

	if dir := s.config.StaticDir; dir != "" {
		if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
			s.echo.Static("/", dir)
		} else if s.logger != nil {
			s.logger.WithField("dir", dir).Debug("static directory not found; front-end not served")
		}
	}
}
