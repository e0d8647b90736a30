package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/avatarctic/weather-api-wrapper/internal/core/domain/weather"
	"github.com/avatarctic/weather-api-wrapper/internal/core/ports"
)

// WeatherService implements cache-aside lookups: cache first, provider on a miss,
// then write back with the configured TTL.
type WeatherService struct {
	cache    ports.Cache
	provider ports.WeatherProvider
	ttl      time.Duration
	logger   *logrus.Logger
	sf       singleflight.Group
}

// NewWeatherService builds the lookup service. A zero ttl caches without expiration.
func NewWeatherService(cache ports.Cache, provider ports.WeatherProvider, ttl time.Duration, logger *logrus.Logger) ports.WeatherService {
	return &WeatherService{
		cache:    cache,
		provider: provider,
		ttl:      ttl,
		logger:   logger,
	}
}

func (s *WeatherService) GetWeather(ctx context.Context, city string) (*weather.LookupResult, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, weather.NewError(weather.KindInvalidInput, weather.MsgInvalidInput, nil)
	}

	key := weather.CacheKey(city)
	if rec, ok := s.cached(ctx, key); ok {
		s.debug(key, "Cache")
		return &weather.LookupResult{Record: rec, Source: weather.SourceCache}, nil
	}

	// Identical concurrent misses share one upstream call. The flight outlives a
	// single caller's cancellation; the provider timeout still bounds it.
	flightCtx := context.WithoutCancel(ctx)
	res, err, _ := s.sf.Do(key, func() (interface{}, error) {
		if rec, ok := s.cached(flightCtx, key); ok {
			return &weather.LookupResult{Record: rec, Source: weather.SourceCache}, nil
		}
		rec, err := s.provider.FetchCurrent(flightCtx, city)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			s.cache.Set(flightCtx, key, rec, s.ttl)
		}
		s.debug(key, "API Call")
		return &weather.LookupResult{Record: rec, Source: weather.SourceProvider}, nil
	})
	if err != nil {
		return nil, err
	}

	result, ok := res.(*weather.LookupResult)
	if !ok {
		return nil, weather.NewError(weather.KindUnknown, weather.MsgUnknown, fmt.Errorf("unexpected type from singleflight result"))
	}
	// followers share the leader's record; hand each caller its own result value
	out := *result
	return &out, nil
}

// cached reads key and treats a corrupt entry as a miss, dropping it.
func (s *WeatherService) cached(ctx context.Context, key string) (weather.Record, bool) {
	if s.cache == nil {
		return nil, false
	}
	b, ok := s.cache.Get(ctx, key)
	if !ok || len(b) == 0 {
		return nil, false
	}
	if !json.Valid(b) {
		if s.logger != nil {
			s.logger.WithField("key", key).Warn("discarding malformed cached weather entry")
		}
		s.cache.Delete(ctx, key)
		return nil, false
	}
	return weather.Record(b), true
}

func (s *WeatherService) debug(key, source string) {
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"key": key, "source": source}).Debug("weather lookup served")
	}
}
