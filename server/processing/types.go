package processing

import (
	"github.com/cheriki-dz/cheriki/server/formatting"
	"github.com/cheriki-dz/cheriki/server/location"
)

// HistoryMessage is one earlier turn of the conversation as the chat UI
// stores it.
type HistoryMessage struct {
	Text   string `json:"text"`
	IsUser bool   `json:"isUser"`
}

// ChatRequest is the body of POST /v1/chat.
type ChatRequest struct {
	Message             string                `json:"message" validate:"required,max=4000"`
	ConversationHistory []HistoryMessage      `json:"conversationHistory" validate:"max=100"`
	UserLocation        *location.Coordinates `json:"userLocation,omitempty" validate:"omitempty"`
}

// ChatResponse carries the raw completion, its formatted rendering and the
// map lookup derived from the user's message. MapsQuery and MapsURL are null
// when no lookup was requested.
type ChatResponse struct {
	Response  string                      `json:"response"`
	Formatted formatting.FormattedMessage `json:"formatted"`
	MapsQuery *string                     `json:"mapsQuery"`
	MapsURL   *string                     `json:"mapsUrl"`
}

// LocationResult is the map lookup for a single message.
type LocationResult struct {
	MapsQuery *string `json:"mapsQuery"`
	MapsURL   *string `json:"mapsUrl"`
}
