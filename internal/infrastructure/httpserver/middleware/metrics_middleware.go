package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsMiddleware feeds the request counter and latency histogram.
// Lookup failures are counted under the status the client receives.
type MetricsMiddleware struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

func NewMetricsMiddleware(requests *prometheus.CounterVec, latency *prometheus.HistogramVec) *MetricsMiddleware {
	return &MetricsMiddleware{requests: requests, latency: latency}
}

// CollectHTTPMetrics labels each request by method, route template and final status.
func (m *MetricsMiddleware) CollectHTTPMetrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			began := time.Now()
			err := next(c)

			method, route := c.Request().Method, routeLabel(c)
			m.requests.WithLabelValues(method, route, strconv.Itoa(responseStatus(c, err))).Inc()
			m.latency.WithLabelValues(method, route).Observe(time.Since(began).Seconds())
			return err
		}
	}
}

// routeLabel is the matched route template, or the raw path when nothing matched.
func routeLabel(c echo.Context) string {
	if route := c.Path(); route != "" {
		return route
	}
	return c.Request().URL.Path
}
