// Package handlers provides the HTTP handlers of the chat gateway. Each
// handler decodes and validates its JSON body, delegates to the chat
// processor and writes either a JSON result or a CherikiError.
package handlers

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/cheriki-dz/cheriki/errors"
	"github.com/cheriki-dz/cheriki/server/middleware"
	"github.com/cheriki-dz/cheriki/server/processing"
	"github.com/cheriki-dz/cheriki/server/validation"
)

// HealthChecker reports whether the LLM backend can take requests.
type HealthChecker interface {
	Healthy() bool
	State() string
}

// Handlers groups the API handlers around one chat processor.
type Handlers struct {
	processor *processing.ChatProcessor
	health    HealthChecker
	logger    *zap.Logger
}

// New creates the handlers. health may be nil, in which case /health always
// reports ok.
func New(processor *processing.ChatProcessor, health HealthChecker, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		processor: processor,
		health:    health,
		logger:    logger,
	}
}

// decode reads the body into dst, writing the error response itself on
// failure.
func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	requestID := middleware.GetRequestID(r.Context())
	if cerr := validation.DecodeJSON(w, r, requestID, dst); cerr != nil {
		errors.LogError(h.logger, cerr, requestID)
		errors.WriteError(w, cerr)
		return false
	}
	return true
}

// fail maps a processing error to a response.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())

	var cerr *errors.CherikiError
	switch {
	case stderrors.Is(err, processing.ErrEmptyMessage):
		cerr = errors.NewValidationError(requestID, "Request validation failed", validation.Details([]validation.FieldError{{
			Field:   "message",
			Message: "message must contain visible text",
			Code:    "required_validation_failed",
		}}))
	case errors.As(err, &cerr):
	default:
		cerr = errors.NewInternalError(requestID, err)
	}

	errors.LogError(h.logger, cerr, requestID)
	errors.WriteError(w, cerr)
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("failed to encode response", zap.Error(err))
	}
}
