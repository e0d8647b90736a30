package helpers_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/avatarctic/weather-api-wrapper/internal/core/domain/weather"
	"github.com/avatarctic/weather-api-wrapper/internal/infrastructure/httpserver/helpers"
)

func TestStatusForError(t *testing.T) {
	cases := map[string]struct {
		err  error
		want int
	}{
		"invalid city":   {weather.NewError(weather.KindInvalidCity, weather.MsgInvalidCity, nil), http.StatusNotFound},
		"unauthorized":   {weather.NewError(weather.KindUnauthorized, weather.MsgUnauthorized, nil), http.StatusUnauthorized},
		"timeout":        {weather.NewError(weather.KindTimeout, weather.MsgTimeout, nil), http.StatusRequestTimeout},
		"unreachable":    {weather.NewError(weather.KindUnreachable, weather.MsgUnreachable, nil), http.StatusServiceUnavailable},
		"forbidden":      {weather.NewError(weather.KindForbidden, weather.MsgForbidden, nil), http.StatusInternalServerError},
		"wrapped domain": {fmt.Errorf("lookup: %w", weather.NewError(weather.KindInvalidCity, "x", nil)), http.StatusNotFound},
		"api error":      {helpers.NewAPIError(http.StatusTooManyRequests, "", "slow down", ""), http.StatusTooManyRequests},
		"echo error":     {echo.NewHTTPError(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed},
		"plain":          {errors.New("boom"), http.StatusInternalServerError},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, helpers.StatusForError(tc.err))
		})
	}
}
