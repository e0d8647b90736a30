package configs_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	config "github.com/avatarctic/weather-api-wrapper/configs"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CACHE_EXPIRY", "")
	t.Setenv("WEATHER_API_URL", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, time.Duration(0), cfg.Weather.CacheTTL)
	require.Equal(t, 10*time.Second, cfg.Weather.Timeout)
	require.Equal(t, "https://api.weatherapi.com/v1", cfg.Weather.BaseURL)
	require.Equal(t, "3000", cfg.Server.Port)
	require.Equal(t, 100, cfg.RateLimit.General.Max)
	require.Equal(t, 15*time.Minute, cfg.RateLimit.General.Window)
	require.Equal(t, 30, cfg.RateLimit.Weather.Max)
	require.Equal(t, 60, cfg.RateLimit.Health.Max)
}

func TestLoad_CacheExpiryAndOverrides(t *testing.T) {
	t.Setenv("CACHE_EXPIRY", "3600")
	t.Setenv("WEATHER_API_URL", "http://example.test/v1/")
	t.Setenv("PORT", "9090")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("ALLOWED_ORIGINS", "https://a.test, https://b.test")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, time.Hour, cfg.Weather.CacheTTL)
	require.Equal(t, "http://example.test/v1", cfg.Weather.BaseURL)
	require.Equal(t, "9090", cfg.Server.Port)
	require.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.Server.AllowedOrigins)
}

func TestLoad_InvalidCacheExpiry(t *testing.T) {
	for _, v := range []string{"soon", "-5", "1.5"} {
		t.Setenv("CACHE_EXPIRY", v)
		_, err := config.Load()
		require.Error(t, err, v)
	}
}
