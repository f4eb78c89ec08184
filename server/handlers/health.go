package handlers

import "net/http"

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Provider string `json:"provider,omitempty"`
}

// Health reports ok, or degraded with 503 while the provider circuit is
// open.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if h.health == nil {
		h.writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
		return
	}

	resp := HealthResponse{Status: "ok", Provider: h.health.State()}
	status := http.StatusOK
	if !h.health.Healthy() {
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}
	h.writeJSON(w, status, resp)
}
