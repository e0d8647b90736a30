package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/avatarctic/weather-api-wrapper/internal/core/domain/weather"
)

// CacheMock is an in-memory ports.Cache that records writes.
type CacheMock struct {
	mu        sync.Mutex
	Data      map[string][]byte
	Connected bool
	Sets      []CacheSet
	Deletes   []string
	Gets      int
}

type CacheSet struct {
	Key   string
	Value []byte
	TTL   time.Duration
}

func NewCacheMock() *CacheMock {
	return &CacheMock{Data: make(map[string][]byte), Connected: true}
}

func (m *CacheMock) Get(ctx context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Gets++
	if !m.Connected {
		return nil, false
	}
	v, ok := m.Data[key]
	return v, ok
}

func (m *CacheMock) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.Connected {
		return
	}
	m.Sets = append(m.Sets, CacheSet{Key: key, Value: append([]byte(nil), value...), TTL: ttl})
	m.Data[key] = value
}

func (m *CacheMock) Delete(ctx context.Context, key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deletes = append(m.Deletes, key)
	if !m.Connected {
		return false
	}
	_, ok := m.Data[key]
	delete(m.Data, key)
	return ok
}

func (m *CacheMock) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Connected
}

func (m *CacheMock) SetCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sets)
}

// WeatherProviderMock counts calls and delegates to FetchCurrentFn.
type WeatherProviderMock struct {
	mu             sync.Mutex
	Calls          []string
	FetchCurrentFn func(ctx context.Context, city string) (weather.Record, error)
}

func (m *WeatherProviderMock) FetchCurrent(ctx context.Context, city string) (weather.Record, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, city)
	fn := m.FetchCurrentFn
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, city)
	}
	return weather.Record(`{}`), nil
}

func (m *WeatherProviderMock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// WeatherServiceMock is a lightweight mock implementing ports.WeatherService
type WeatherServiceMock struct {
	mu           sync.Mutex
	Calls        []string
	GetWeatherFn func(ctx context.Context, city string) (*weather.LookupResult, error)
}

func (m *WeatherServiceMock) GetWeather(ctx context.Context, city string) (*weather.LookupResult, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, city)
	m.mu.Unlock()
	if m.GetWeatherFn != nil {
		return m.GetWeatherFn(ctx, city)
	}
	return &weather.LookupResult{Record: weather.Record(`{}`), Source: weather.SourceProvider}, nil
}

func (m *WeatherServiceMock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// RateLimiterServiceMock allows everything unless AllowFn says otherwise.
type RateLimiterServiceMock struct {
	AllowFn func(ctx context.Context, tier, client string) (bool, int, int, time.Time, error)
}

func (m *RateLimiterServiceMock) Allow(ctx context.Context, tier, client string) (bool, int, int, time.Time, error) {
	if m.AllowFn != nil {
		return m.AllowFn(ctx, tier, client)
	}
	return true, 99, 100, time.Now().Add(time.Minute), nil
}

// RateLimitRepositoryMock delegates to IncrementWindowFn.
type RateLimitRepositoryMock struct {
	IncrementWindowFn func(ctx context.Context, subject string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error)
}

func (m *RateLimitRepositoryMock) IncrementWindow(ctx context.Context, subject string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error) {
	if m.IncrementWindowFn != nil {
		return m.IncrementWindowFn(ctx, subject, window, keyPrefix, ttl)
	}
	return 1, time.Now().Truncate(window), nil
}

// HealthCheckerMock reports CheckErr under CheckerName.
type HealthCheckerMock struct {
	CheckerName string
	CheckErr    error
}

func (m *HealthCheckerMock) Name() string                    { return m.CheckerName }
func (m *HealthCheckerMock) Check(ctx context.Context) error { return m.CheckErr }
