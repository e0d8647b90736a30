package helpers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avatarctic/weather-api-wrapper/internal/infrastructure/httpserver/helpers"
)

func TestErrorCodeFromStatus(t *testing.T) {
	cases := map[int]string{
		http.StatusBadRequest:          "BAD_REQUEST",
		http.StatusUnauthorized:        "UNAUTHORIZED",
		http.StatusForbidden:           "FORBIDDEN",
		http.StatusNotFound:            "NOT_FOUND",
		http.StatusRequestTimeout:      "TIMEOUT",
		http.StatusTooManyRequests:     "RATE_LIMITED",
		http.StatusInternalServerError: "INTERNAL_ERROR",
		http.StatusServiceUnavailable:  "SERVICE_UNAVAILABLE",
		http.StatusTeapot:              "UNKNOWN_ERROR",
		http.StatusBadGateway:          "UNKNOWN_ERROR",
	}
	for status, want := range cases {
		assert.Equal(t, want, helpers.ErrorCodeFromStatus(status), "status %d", status)
	}
}

func TestTimestampIsUTCMillis(t *testing.T) {
	loc := time.FixedZone("X", 3*3600)
	ts := time.Date(2024, 5, 6, 10, 11, 12, 345678901, loc)
	assert.Equal(t, "2024-05-06T07:11:12.345Z", helpers.Timestamp(ts))
	assert.Equal(t, "2024-05-06T07:11:12.000Z", helpers.Timestamp(ts.Truncate(time.Second)))
}

func TestErrorEnvelopeShape(t *testing.T) {
	b, err := json.Marshal(helpers.NewErrorResponse(helpers.NewAPIError(http.StatusNotFound, "", "Invalid city name", "")))
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &body))
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["timestamp"])
	e := body["error"].(map[string]interface{})
	assert.Equal(t, "Invalid city name", e["message"])
	assert.Equal(t, "NOT_FOUND", e["code"])
	assert.Equal(t, float64(404), e["statusCode"])
	_, hasDetails := e["details"]
	assert.False(t, hasDetails)

	b, err = json.Marshal(helpers.NewErrorResponse(helpers.NewAPIError(http.StatusBadRequest, "MISSING_CITY", "City parameter is required", "Usage: /weather?city=CityName")))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, &body))
	e = body["error"].(map[string]interface{})
	assert.Equal(t, "MISSING_CITY", e["code"])
	assert.Equal(t, "Usage: /weather?city=CityName", e["details"])
}

func TestSuccessEnvelopeShape(t *testing.T) {
	b, err := json.Marshal(helpers.NewSuccessResponse(json.RawMessage(`{"a":1}`), "ok", map[string]interface{}{"cached": true}))
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "ok", body["message"])
	assert.Equal(t, map[string]interface{}{"a": float64(1)}, body["data"])
	meta := body["meta"].(map[string]interface{})
	assert.Equal(t, "weather-api-wrapper", meta["source"])
	assert.Equal(t, true, meta["cached"])
	assert.NotEmpty(t, meta["timestamp"])
}
