package helpers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avatarctic/weather-api-wrapper/internal/core/domain/weather"
)

// StatusForKind maps a lookup failure to its HTTP status.
func StatusForKind(kind weather.ErrorKind) int {
	switch kind {
	case weather.KindInvalidCity:
		return http.StatusNotFound
	case weather.KindUnauthorized:
		return http.StatusUnauthorized
	case weather.KindTimeout:
		return http.StatusRequestTimeout
	case weather.KindUnreachable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// StatusForError is the status the error handler writes for err.
func StatusForError(err error) int {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.StatusCode
	}
	var we *weather.Error
	if errors.As(err, &we) {
		return StatusForKind(we.Kind)
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}
