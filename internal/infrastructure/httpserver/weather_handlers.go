package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/avatarctic/weather-api-wrapper/internal/core/domain/weather"
	"github.com/avatarctic/weather-api-wrapper/internal/infrastructure/httpserver/helpers"
)

// weatherRequest is the trimmed city query; max counts runes.
type weatherRequest struct {
	City string `validate:"required,max=100"`
}

var (
	errMissingCity = helpers.NewAPIError(http.StatusBadRequest, "MISSING_CITY", "City parameter is required", "Usage: /weather?city=CityName")
	errInvalidCity = helpers.NewAPIError(http.StatusBadRequest, "INVALID_CITY", "Invalid city parameter", "City must be a non-empty string")
	errCityTooLong = helpers.NewAPIError(http.StatusBadRequest, "CITY_TOO_LONG", "City name too long", "City name must be less than 100 characters")
)

// bindCity pulls a single city value out of the query string.
func (s *Server) bindCity(c echo.Context) (string, error) {
	values := c.QueryParams()["city"]
	if len(values) == 0 || (len(values) == 1 && values[0] == "") {
		return "", errMissingCity
	}
	if len(values) > 1 {
		return "", errInvalidCity
	}

	req := weatherRequest{City: strings.TrimSpace(values[0])}
	if err := c.Validate(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "max" {
			return "", errCityTooLong
		}
		return "", errInvalidCity
	}
	return req.City, nil
}

// GET /weather?city=<name>
func (s *Server) getWeather(c echo.Context) error {
	city, err := s.bindCity(c)
	if err != nil {
		return err
	}

	result, err := s.weatherSvc.GetWeather(c.Request().Context(), city)
	if err != nil {
		recordLookupError(weather.KindOf(err))
		return err
	}
	recordLookup(result.Source)

	return c.JSON(http.StatusOK, helpers.NewSuccessResponse(
		result.Record,
		"Weather data retrieved successfully",
		map[string]interface{}{"cached": result.Source == weather.SourceCache},
	))
}
