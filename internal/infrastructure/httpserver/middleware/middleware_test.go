package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avatarctic/weather-api-wrapper/internal/core/domain/weather"
	"github.com/avatarctic/weather-api-wrapper/internal/core/ports"
	"github.com/avatarctic/weather-api-wrapper/internal/infrastructure/httpserver/helpers"
	"github.com/avatarctic/weather-api-wrapper/internal/infrastructure/httpserver/middleware"
	"github.com/avatarctic/weather-api-wrapper/internal/mocks"
)

func okHandler(c echo.Context) error { return c.String(http.StatusOK, "ok") }

func TestRateLimit_SetsHeadersAndPasses(t *testing.T) {
	var gotTier, gotClient string
	limiter := &mocks.RateLimiterServiceMock{AllowFn: func(ctx context.Context, tier, client string) (bool, int, int, time.Time, error) {
		gotTier, gotClient = tier, client
		return true, 29, 30, time.Now().Add(30 * time.Second), nil
	}}
	mw := middleware.NewRateLimitMiddleware(limiter, logrus.New())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/weather?city=London", nil)
	req.RemoteAddr = "9.9.9.9:1234"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, mw.Handler(ports.RateLimitTierWeather)(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ports.RateLimitTierWeather, gotTier)
	assert.Equal(t, "9.9.9.9", gotClient)
	assert.Equal(t, "30", rec.Header().Get("RateLimit-Limit"))
	assert.Equal(t, "29", rec.Header().Get("RateLimit-Remaining"))
	assert.Equal(t, "30", rec.Header().Get("RateLimit-Reset"))
}

func TestRateLimit_RejectsWithTierEnvelope(t *testing.T) {
	limiter := &mocks.RateLimiterServiceMock{AllowFn: func(ctx context.Context, tier, client string) (bool, int, int, time.Time, error) {
		return false, 0, 30, time.Now().Add(10 * time.Second), nil
	}}
	mw := middleware.NewRateLimitMiddleware(limiter, logrus.New())

	cases := []struct {
		tier, code, message, details string
	}{
		{ports.RateLimitTierGeneral, "RATE_LIMITED", "Too many requests from this IP, please try again later", ""},
		{ports.RateLimitTierWeather, "WEATHER_RATE_LIMITED", "Too many weather requests, please wait before trying again", "Maximum 30 requests per minute allowed"},
		{ports.RateLimitTierHealth, "HEALTH_RATE_LIMITED", "Too many health check requests", ""},
	}
	for _, tc := range cases {
		t.Run(tc.tier, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			called := false
			err := mw.Handler(tc.tier)(func(c echo.Context) error { called = true; return nil })(c)
			require.Error(t, err)
			assert.False(t, called)

			var ae *helpers.APIError
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, http.StatusTooManyRequests, ae.StatusCode)
			assert.Equal(t, tc.code, ae.Code)
			assert.Equal(t, tc.message, ae.Message)
			assert.Equal(t, tc.details, ae.Details)
			assert.Equal(t, "0", rec.Header().Get("RateLimit-Remaining"))
			assert.Equal(t, "10", rec.Header().Get("Retry-After"))
		})
	}
}

func TestRateLimit_FailsOpenOnLimiterError(t *testing.T) {
	limiter := &mocks.RateLimiterServiceMock{AllowFn: func(ctx context.Context, tier, client string) (bool, int, int, time.Time, error) {
		return true, 100, 100, time.Now(), errors.New("store down")
	}}
	logger, hook := test.NewNullLogger()
	mw := middleware.NewRateLimitMiddleware(limiter, logger)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, mw.Handler(ports.RateLimitTierGeneral)(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestRequestLogging_WritesAccessLine(t *testing.T) {
	logger, hook := test.NewNullLogger()
	mw := middleware.NewLoggingMiddleware(logger)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/weather?city=x", nil), rec)
	err := mw.RequestLogging()(func(c echo.Context) error {
		return helpers.NewAPIError(http.StatusBadRequest, "MISSING_CITY", "City parameter is required", "")
	})(c)
	require.Error(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "request completed", entry.Message)
	assert.Equal(t, http.StatusBadRequest, entry.Data["status"])
	assert.Equal(t, "/weather", entry.Data["path"])
	assert.Equal(t, http.MethodGet, entry.Data["method"])
}

func TestRequestLogging_LookupFailureStatus(t *testing.T) {
	cases := []struct {
		kind weather.ErrorKind
		want int
	}{
		{weather.KindInvalidCity, http.StatusNotFound},
		{weather.KindUnauthorized, http.StatusUnauthorized},
		{weather.KindTimeout, http.StatusRequestTimeout},
		{weather.KindUnreachable, http.StatusServiceUnavailable},
		{weather.KindProviderError, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		logger, hook := test.NewNullLogger()
		mw := middleware.NewLoggingMiddleware(logger)

		e := echo.New()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/weather?city=Zzzzznotreal", nil), httptest.NewRecorder())
		err := mw.RequestLogging()(func(c echo.Context) error {
			return weather.NewError(tc.kind, "lookup failed", nil)
		})(c)
		require.Error(t, err)
		require.NotNil(t, hook.LastEntry())
		assert.Equal(t, tc.want, hook.LastEntry().Data["status"], tc.kind.String())
	}
}

func TestCollectHTTPMetrics_UsesRouteAndErrorStatus(t *testing.T) {
	total := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "t_requests_total"}, []string{"method", "endpoint", "status"})
	dur := prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: "t_duration_seconds"}, []string{"method", "endpoint"})
	mw := middleware.NewMetricsMiddleware(total, dur)

	e := echo.New()
	e.Use(mw.CollectHTTPMetrics())
	e.GET("/weather", func(c echo.Context) error {
		switch c.QueryParam("city") {
		case "":
			return helpers.NewAPIError(http.StatusBadRequest, "MISSING_CITY", "City parameter is required", "")
		case "slow":
			return weather.NewError(weather.KindTimeout, weather.MsgTimeout, nil)
		default:
			return weather.NewError(weather.KindInvalidCity, weather.MsgInvalidCity, nil)
		}
	})
	e.GET("/health", okHandler)

	for _, path := range []string{"/weather?city=Zzzzznotreal", "/weather?city=b", "/weather?city=slow", "/weather", "/health"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}
	assert.Equal(t, float64(2), testutil.ToFloat64(total.WithLabelValues("GET", "/weather", "404")))
	assert.Equal(t, float64(1), testutil.ToFloat64(total.WithLabelValues("GET", "/weather", "408")))
	assert.Equal(t, float64(1), testutil.ToFloat64(total.WithLabelValues("GET", "/weather", "400")))
	assert.Equal(t, float64(0), testutil.ToFloat64(total.WithLabelValues("GET", "/weather", "500")))
	assert.Equal(t, float64(1), testutil.ToFloat64(total.WithLabelValues("GET", "/health", "200")))
}
