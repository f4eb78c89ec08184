package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/cheriki-dz/cheriki/server/formatting"
	"github.com/cheriki-dz/cheriki/server/location"
	"github.com/cheriki-dz/cheriki/server/middleware"
	"github.com/cheriki-dz/cheriki/server/processing"
)

// FormatRequest is the body of POST /v1/format. Options override the
// server's current formatting options field by field.
type FormatRequest struct {
	Text               string                `json:"text" validate:"max=20000"`
	Options            *formatting.Overrides `json:"options,omitempty" validate:"omitempty"`
	IncludeSuggestions *bool                 `json:"includeSuggestions,omitempty"`
}

// LocationRequest is the body of POST /v1/location.
type LocationRequest struct {
	Message      string                `json:"message" validate:"required,max=4000"`
	UserLocation *location.Coordinates `json:"userLocation,omitempty" validate:"omitempty"`
}

// TitleRequest is the body of POST /v1/title.
type TitleRequest struct {
	Message string `json:"message" validate:"required,max=4000"`
}

// TitleResponse is the result of POST /v1/title.
type TitleResponse struct {
	Title string `json:"title"`
}

// Chat handles POST /v1/chat.
func (h *Handlers) Chat(w http.ResponseWriter, r *http.Request) {
	var req processing.ChatRequest
	if !h.decode(w, r, &req) {
		return
	}

	logger := h.logger.With(zap.String("request_id", middleware.GetRequestID(r.Context())))
	logger.Debug("processing chat message",
		zap.Int("message_length", len(req.Message)),
		zap.Int("history", len(req.ConversationHistory)),
		zap.Bool("has_location", req.UserLocation != nil),
	)

	resp, err := h.processor.Process(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// Format handles POST /v1/format. Suggestions are included unless the
// request turns them off.
func (h *Handlers) Format(w http.ResponseWriter, r *http.Request) {
	var req FormatRequest
	if !h.decode(w, r, &req) {
		return
	}

	include := true
	if req.IncludeSuggestions != nil {
		include = *req.IncludeSuggestions
	}
	opts := h.processor.Options().Merge(req.Options)

	h.writeJSON(w, http.StatusOK, h.processor.Formatter().Format(req.Text, opts, include))
}

// Location handles POST /v1/location.
func (h *Handlers) Location(w http.ResponseWriter, r *http.Request) {
	var req LocationRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.writeJSON(w, http.StatusOK, h.processor.Locate(req.Message, req.UserLocation))
}

// Title handles POST /v1/title.
func (h *Handlers) Title(w http.ResponseWriter, r *http.Request) {
	var req TitleRequest
	if !h.decode(w, r, &req) {
		return
	}

	title, err := h.processor.Title(r.Context(), req.Message)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, TitleResponse{Title: title})
}
