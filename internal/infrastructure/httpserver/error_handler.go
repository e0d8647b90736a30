package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/weather-api-wrapper/internal/core/domain/weather"
	"github.com/avatarctic/weather-api-wrapper/internal/infrastructure/httpserver/helpers"
)

// handleError renders every error that reaches echo as the failure envelope.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	apiErr := toAPIError(err)
	s.logError(err, apiErr, c)

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(apiErr.StatusCode)
	} else {
		err = c.JSON(apiErr.StatusCode, helpers.NewErrorResponse(apiErr))
	}
	if err != nil && s.logger != nil {
		s.logger.WithError(err).Error("failed to write error response")
	}
}

func toAPIError(err error) *helpers.APIError {
	var ae *helpers.APIError
	if errors.As(err, &ae) {
		return ae
	}
	var we *weather.Error
	if errors.As(err, &we) {
		status := helpers.StatusForKind(we.Kind)
		return helpers.NewAPIError(status, "", we.Message, "")
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok && m != "" {
			msg = m
		} else if he.Message != nil {
			msg = fmt.Sprint(he.Message)
		}
		if he.Code >= http.StatusInternalServerError {
			msg = "Internal server error"
		}
		return helpers.NewAPIError(he.Code, "", msg, "")
	}
	return helpers.NewAPIError(http.StatusInternalServerError, "", "Internal server error", "")
}

func (s *Server) logError(err error, apiErr *helpers.APIError, c echo.Context) {
	if s.logger == nil {
		return
	}
	entry := s.logger.WithError(err).WithFields(logrus.Fields{
		"method":     c.Request().Method,
		"url":        c.Request().URL.String(),
		"ip":         c.RealIP(),
		"request_id": helpers.RequestID(c),
		"status":     apiErr.StatusCode,
		"timestamp":  helpers.Timestamp(time.Now()),
	})
	if apiErr.StatusCode >= http.StatusInternalServerError {
		entry.Error("Error occurred")
		return
	}
	entry.Warn("Error occurred")
}
