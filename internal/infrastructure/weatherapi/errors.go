package weatherapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"

	"github.com/avatarctic/weather-api-wrapper/internal/core/domain/weather"
)

const defaultUpstreamMessage = "Weather data not found"

// upstreamError is the WeatherAPI.com error body: {"error":{"code":1006,"message":"..."}}.
type upstreamError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func upstreamMessage(body []byte) string {
	var ue upstreamError
	if err := json.Unmarshal(body, &ue); err == nil && ue.Error.Message != "" {
		return ue.Error.Message
	}
	return defaultUpstreamMessage
}

// classifyStatus maps a non-2xx upstream answer to a domain error.
func classifyStatus(status int, body []byte) error {
	msg := upstreamMessage(body)
	cause := fmt.Errorf("weatherapi responded %d: %s", status, msg)

	var e *weather.Error
	switch status {
	case http.StatusBadRequest:
		e = weather.NewError(weather.KindInvalidCity, weather.MsgInvalidCity+": "+msg, cause)
	case http.StatusUnauthorized:
		e = weather.NewError(weather.KindUnauthorized, weather.MsgUnauthorized, cause)
	case http.StatusForbidden:
		e = weather.NewError(weather.KindForbidden, weather.MsgForbidden, cause)
	default:
		e = weather.NewError(weather.KindProviderError, weather.MsgProviderError+": "+msg, cause)
	}
	e.StatusCode = status
	return e
}

// classifyTransportError maps a failure with no upstream response.
// Timeouts are checked before connectivity faults.
func classifyTransportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return weather.NewError(weather.KindTimeout, weather.MsgTimeout, err)
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) || errors.Is(err, syscall.ECONNREFUSED) {
		return weather.NewError(weather.KindUnreachable, weather.MsgUnreachable, err)
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return weather.NewError(weather.KindUnreachable, weather.MsgUnreachable, err)
	}

	return weather.NewError(weather.KindUnknown, weather.MsgUnknown, err)
}

// breakerSuccess decides which outcomes count against the circuit breaker.
// Client-side rejections (4xx) say nothing about upstream health.
func breakerSuccess(err error) bool {
	if err == nil {
		return true
	}
	var e *weather.Error
	if !errors.As(err, &e) {
		return false
	}
	switch e.Kind {
	case weather.KindTimeout, weather.KindUnreachable:
		return false
	case weather.KindProviderError:
		return e.StatusCode < 500
	default:
		return true
	}
}
