package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avatarctic/weather-api-wrapper/internal/infrastructure/httpserver/helpers"
)

// Health check handler. Always 200; each checker is reported as a boolean under its name.
func (s *Server) healthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	health := map[string]interface{}{
		"status":    "OK",
		"timestamp": helpers.Timestamp(time.Now()),
		"uptime":    time.Since(s.startedAt).Seconds(),
		"version":   s.config.Version,
	}
	for _, hc := range s.healthCheckers {
		if hc == nil {
			continue
		}
		health[hc.Name()] = hc.Check(ctx) == nil
	}
	return c.JSON(http.StatusOK, health)
}
