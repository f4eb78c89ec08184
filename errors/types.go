package errors

import (
	"net/http"
)

// NewError creates a CherikiError with every field set explicitly. Prefer the
// specialized constructors below.
func NewError(errType ErrorType, message string, code int, requestID string, details map[string]interface{}, err error) *CherikiError {
	return &CherikiError{
		Type:      errType,
		Message:   message,
		Code:      code,
		RequestID: requestID,
		Details:   details,
		err:       err,
	}
}

// NewValidationError reports a request that decoded but failed validation.
// validationDetails usually maps field names to the failed rule.
//
// Example:
//
//	err := NewValidationError("req_123", "Invalid request", map[string]interface{}{
//	    "message": "required",
//	})
func NewValidationError(requestID, message string, validationDetails map[string]interface{}) *CherikiError {
	return &CherikiError{
		Type:      ValidationError,
		Message:   message,
		Code:      http.StatusBadRequest,
		RequestID: requestID,
		Details:   validationDetails,
	}
}

// NewBadRequestError reports a body that is not valid JSON.
func NewBadRequestError(requestID, message string, err error) *CherikiError {
	return &CherikiError{
		Type:      BadRequestError,
		Message:   message,
		Code:      http.StatusBadRequest,
		RequestID: requestID,
		err:       err,
	}
}

// NewRateLimitError reports a client over its request budget. retryAfter is
// in seconds.
func NewRateLimitError(requestID string, retryAfter int) *CherikiError {
	return &CherikiError{
		Type:      RateLimitError,
		Message:   "Rate limit exceeded",
		Code:      http.StatusTooManyRequests,
		RequestID: requestID,
		Details: map[string]interface{}{
			"retry_after": retryAfter,
		},
	}
}

// NewProviderError reports a failure of the upstream LLM.
func NewProviderError(requestID string, message string, err error) *CherikiError {
	return &CherikiError{
		Type:      ProviderError,
		Message:   message,
		Code:      http.StatusBadGateway,
		RequestID: requestID,
		err:       err,
	}
}

// NewUnavailableError reports that the provider circuit is open.
func NewUnavailableError(requestID string, err error) *CherikiError {
	return &CherikiError{
		Type:      UnavailableError,
		Message:   "Service temporarily unavailable",
		Code:      http.StatusServiceUnavailable,
		RequestID: requestID,
		err:       err,
	}
}

// NewTimeoutError reports a request that exceeded its deadline.
func NewTimeoutError(requestID string, err error) *CherikiError {
	return &CherikiError{
		Type:      TimeoutError,
		Message:   "Request timed out",
		Code:      http.StatusGatewayTimeout,
		RequestID: requestID,
		err:       err,
	}
}

// NewInternalError reports anything not covered above.
func NewInternalError(requestID string, err error) *CherikiError {
	return &CherikiError{
		Type:      InternalError,
		Message:   "An internal error occurred",
		Code:      http.StatusInternalServerError,
		RequestID: requestID,
		err:       err,
	}
}
