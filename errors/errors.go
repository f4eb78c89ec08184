// Package errors defines the typed errors returned by the Chériki HTTP API.
//
// Every failure that reaches a client is a *CherikiError serialized as JSON:
//
//	{"type":"validation_error","message":"...","request_id":"...","details":{...}}
//
// Handlers build errors with the constructors in types.go and write them with
// WriteError. Errors that wrap an underlying cause keep it for logging but
// never expose it in the response body.
package errors

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// DefaultLogger is used by handlers that are not given a logger explicitly.
// It can be overridden with SetLogger.
var DefaultLogger *zap.Logger

func init() {
	var err error
	DefaultLogger, err = zap.NewProduction()
	if err != nil {
		DefaultLogger = zap.NewNop()
	}
}

// SetLogger replaces DefaultLogger. A nil logger is ignored.
func SetLogger(logger *zap.Logger) {
	if logger != nil {
		DefaultLogger = logger
	}
}

// ErrorType categorizes an error for API clients.
type ErrorType string

const (
	// ValidationError represents input validation failures
	ValidationError ErrorType = "validation_error"

	// BadRequestError represents a body that could not be decoded
	BadRequestError ErrorType = "bad_request"

	// InternalError represents unexpected internal server errors
	InternalError ErrorType = "internal_error"

	// ConfigError represents configuration-related errors
	ConfigError ErrorType = "config_error"

	// ProviderError represents errors from the LLM provider
	ProviderError ErrorType = "provider_error"

	// UnavailableError is returned while the provider circuit is open
	UnavailableError ErrorType = "unavailable"

	// TimeoutError represents requests that ran past their deadline
	TimeoutError ErrorType = "timeout"

	// RateLimitError represents rate limiting errors
	RateLimitError ErrorType = "rate_limit_error"

	// NotFoundError represents resource not found errors
	NotFoundError ErrorType = "not_found"
)

// CherikiError is the error type written to API responses. Code and the
// wrapped error stay server-side.
type CherikiError struct {
	Type      ErrorType              `json:"type"`
	Message   string                 `json:"message"`
	Code      int                    `json:"-"`
	RequestID string                 `json:"request_id"`
	Details   map[string]interface{} `json:"details,omitempty"`

	err error
}

func (e *CherikiError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause.
func (e *CherikiError) Unwrap() error {
	return e.err
}

// Is matches on Type only, so errors.Is(err, &CherikiError{Type: X}) works
// regardless of message or request.
func (e *CherikiError) Is(target error) bool {
	t, ok := target.(*CherikiError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// WriteError writes err as a JSON response with its status code.
func WriteError(w http.ResponseWriter, err *CherikiError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Code)
	if encErr := json.NewEncoder(w).Encode(err); encErr != nil {
		DefaultLogger.Warn("failed to encode error response", zap.Error(encErr))
	}
}

// Error is a drop-in replacement for http.Error that writes an InternalError
// carrying the response's request ID.
func Error(w http.ResponseWriter, message string, code int) {
	ErrorWithType(w, message, InternalError, code)
}

// ErrorWithType is like Error with an explicit error type.
func ErrorWithType(w http.ResponseWriter, message string, errType ErrorType, code int) {
	WriteError(w, &CherikiError{
		Type:      errType,
		Message:   message,
		Code:      code,
		RequestID: w.Header().Get("X-Request-ID"),
	})
}
