package routing

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cheriki-dz/cheriki/server/metrics"
)

func TestRegisterMetricsRoutes(t *testing.T) {
	m := metrics.NewMetrics()

	r := chi.NewRouter()
	RegisterMetricsRoutes(r, m)

	server := httptest.NewServer(r)
	defer server.Close()

	m.RequestsTotal.WithLabelValues("/v1/chat", "200").Inc()
	m.ErrorsTotal.WithLabelValues("server_error").Inc()
	m.RateLimitHits.WithLabelValues("10.0.0.1").Inc()
	m.ObserveReply(2, "trigger")
	m.ObserveMapsIntent(true)

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	for _, metric := range []string{
		"cheriki_http_requests_total",
		"cheriki_errors_total",
		"cheriki_rate_limit_hits_total",
		"cheriki_reply_chunks",
		"cheriki_suggestions_total",
		"cheriki_maps_intents_total",
	} {
		assert.Contains(t, string(body), metric, "response should contain metric '%s'", metric)
	}
}
