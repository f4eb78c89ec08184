package routing

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cheriki-dz/cheriki/server/metrics"
)

// RegisterMetricsRoutes adds the Prometheus scrape endpoint.
func RegisterMetricsRoutes(r chi.Router, m *metrics.Metrics) {
	r.Method(http.MethodGet, "/metrics", m.Handler())
}
