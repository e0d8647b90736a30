package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/weather-api-wrapper/internal/core/ports"
	"github.com/avatarctic/weather-api-wrapper/internal/infrastructure/httpserver/helpers"
)

type rejection struct {
	code    string
	message string
	details string
}

var rejections = map[string]rejection{
	ports.RateLimitTierGeneral: {code: "RATE_LIMITED", message: "Too many requests from this IP, please try again later"},
	ports.RateLimitTierWeather: {code: "WEATHER_RATE_LIMITED", message: "Too many weather requests, please wait before trying again", details: "Maximum 30 requests per minute allowed"},
	ports.RateLimitTierHealth:  {code: "HEALTH_RATE_LIMITED", message: "Too many health check requests"},
}

type RateLimitMiddleware struct {
	rateLimiter ports.RateLimiterService
	logger      *logrus.Logger
}

func NewRateLimitMiddleware(rateLimiter ports.RateLimiterService, logger *logrus.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{rateLimiter: rateLimiter, logger: logger}
}

// Handler limits requests per client IP within tier.
func (r *RateLimitMiddleware) Handler(tier string) echo.MiddlewareFunc {
	rej, ok := rejections[tier]
	if !ok {
		rej = rejections[ports.RateLimitTierGeneral]
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if r.rateLimiter == nil {
				return next(c)
			}
			client := helpers.ClientKey(c)
			allowed, remaining, limit, reset, rlErr := r.rateLimiter.Allow(c.Request().Context(), tier, client)

			h := c.Response().Header()
			h.Set("RateLimit-Limit", strconv.Itoa(limit))
			h.Set("RateLimit-Remaining", strconv.Itoa(remaining))
			h.Set("RateLimit-Reset", strconv.Itoa(secondsUntil(reset)))

			if rlErr != nil {
				if r.logger != nil {
					r.logger.WithError(rlErr).WithFields(logrus.Fields{"tier": tier, "client": client}).Warn("rate limiter error; allowing request (fail-open)")
				}
				return next(c)
			}

			if !allowed {
				h.Set("Retry-After", strconv.Itoa(secondsUntil(reset)))
				return helpers.NewAPIError(http.StatusTooManyRequests, rej.code, rej.message, rej.details)
			}
			return next(c)
		}
	}
}

// secondsUntil rounds the delta up so clients never retry early.
func secondsUntil(t time.Time) int {
	d := time.Until(t)
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}
