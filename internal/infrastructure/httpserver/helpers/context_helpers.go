package helpers

import "github.com/labstack/echo/v4"

// RequestID returns the id assigned by the RequestID middleware, or "".
func RequestID(c echo.Context) string {
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// ClientKey identifies the caller for rate limiting.
func ClientKey(c echo.Context) string {
	if ip := c.RealIP(); ip != "" {
		return ip
	}
	return "unknown"
}
