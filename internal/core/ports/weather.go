package ports

import (
	"context"

	"github.com/avatarctic/weather-api-wrapper/internal/core/domain/weather"
)

// WeatherProvider fetches current conditions from the upstream API.
// Failures are *weather.Error values with a classified Kind.
type WeatherProvider interface {
	FetchCurrent(ctx context.Context, city string) (weather.Record, error)
}

// WeatherService is the cache-first lookup used by the HTTP layer.
type WeatherService interface {
	GetWeather(ctx context.Context, city string) (*weather.LookupResult, error)
}
