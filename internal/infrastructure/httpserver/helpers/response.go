package helpers

import (
	"fmt"
	"net/http"
	"time"
)

// Source identifies this service in success envelopes.
const Source = "weather-api-wrapper"

// timestampLayout is ISO-8601 UTC with millisecond precision.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Timestamp formats t for response bodies.
func Timestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// APIError is an error that already knows how it should be rendered.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Details    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Code, e.Message)
}

// NewAPIError builds an APIError; an empty code is derived from the status.
func NewAPIError(status int, code, message, details string) *APIError {
	if code == "" {
		code = ErrorCodeFromStatus(status)
	}
	return &APIError{StatusCode: status, Code: code, Message: message, Details: details}
}

type ErrorBody struct {
	Message    string `json:"message"`
	Code       string `json:"code"`
	StatusCode int    `json:"statusCode"`
	Details    string `json:"details,omitempty"`
}

type ErrorResponse struct {
	Success   bool      `json:"success"`
	Error     ErrorBody `json:"error"`
	Timestamp string    `json:"timestamp"`
}

type SuccessResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    interface{}            `json:"data"`
	Meta    map[string]interface{} `json:"meta"`
}

// NewErrorResponse renders the failure envelope.
func NewErrorResponse(e *APIError) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error: ErrorBody{
			Message:    e.Message,
			Code:       e.Code,
			StatusCode: e.StatusCode,
			Details:    e.Details,
		},
		Timestamp: Timestamp(time.Now()),
	}
}

// NewSuccessResponse renders the success envelope; extra entries are merged into meta.
func NewSuccessResponse(data interface{}, message string, extra map[string]interface{}) SuccessResponse {
	if message == "" {
		message = "Success"
	}
	meta := map[string]interface{}{
		"timestamp": Timestamp(time.Now()),
		"source":    Source,
	}
	for k, v := range extra {
		meta[k] = v
	}
	return SuccessResponse{Success: true, Message: message, Data: data, Meta: meta}
}

var errorCodes = map[int]string{
	http.StatusBadRequest:          "BAD_REQUEST",
	http.StatusUnauthorized:        "UNAUTHORIZED",
	http.StatusForbidden:           "FORBIDDEN",
	http.StatusNotFound:            "NOT_FOUND",
	http.StatusRequestTimeout:      "TIMEOUT",
	http.StatusTooManyRequests:     "RATE_LIMITED",
	http.StatusInternalServerError: "INTERNAL_ERROR",
	http.StatusServiceUnavailable:  "SERVICE_UNAVAILABLE",
}

// ErrorCodeFromStatus maps an HTTP status to its envelope code.
func ErrorCodeFromStatus(status int) string {
	if code, ok := errorCodes[status]; ok {
		return code
	}
	return "UNKNOWN_ERROR"
}
