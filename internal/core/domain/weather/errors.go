package weather

import "errors"

// ErrorKind is the closed set of lookup failure classes.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindInvalidInput
	KindInvalidCity
	KindUnauthorized
	KindForbidden
	KindProviderError
	KindTimeout
	KindUnreachable
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindInvalidCity:
		return "invalid_city"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindProviderError:
		return "provider_error"
	case KindTimeout:
		return "timeout"
	case KindUnreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

const (
	MsgInvalidInput  = "City name is required and must be a valid string"
	MsgInvalidCity   = "Invalid city name"
	MsgUnauthorized  = "Invalid API key. Please check your configuration."
	MsgForbidden     = "API access forbidden. Please check your subscription."
	MsgProviderError = "Weather service error"
	MsgTimeout       = "Request timeout. Please try again."
	MsgUnreachable   = "Unable to connect to weather service. Please check your internet connection."
	MsgUnknown       = "An unexpected error occurred while fetching weather data."
)

// Error is a classified lookup failure. Message is safe to show to clients.
type Error struct {
	Kind    ErrorKind
	Message string
	// StatusCode is the upstream HTTP status, zero when no response was received.
	StatusCode int
	Err        error
}

func NewError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the kind carried by err; unclassified errors are KindUnknown.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
