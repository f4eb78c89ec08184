// Package metrics holds the Prometheus collectors for the HTTP surface, the
// LLM provider and the reply pipelines. All collectors live in a private
// registry exposed through Handler.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics encapsulates Prometheus metrics for the server. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ActiveRequests  *prometheus.GaugeVec
	ErrorsTotal     *prometheus.CounterVec
	RateLimitHits   *prometheus.CounterVec

	// Provider
	LLMDuration          *prometheus.HistogramVec
	LLMErrors            *prometheus.CounterVec
	DeduplicatedRequests prometheus.Counter
	CircuitState         prometheus.Gauge
	CacheRequests        *prometheus.CounterVec

	// Pipelines
	ChunksPerReply    prometheus.Histogram
	SuggestionSources *prometheus.CounterVec
	MapsIntents       *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with a custom registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	m := &Metrics{
		registry: registry,
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cheriki_http_requests_total",
				Help: "Total number of HTTP requests by endpoint and status",
			},
			[]string{"endpoint", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cheriki_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		ActiveRequests: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "cheriki_http_active_requests",
				Help: "Number of currently active HTTP requests",
			},
			[]string{"endpoint"},
		),
		ErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cheriki_errors_total",
				Help: "Total number of errors by type",
			},
			[]string{"type"},
		),
		RateLimitHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cheriki_rate_limit_hits_total",
				Help: "Total number of rate limit hits by client",
			},
			[]string{"client"},
		),
		LLMDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cheriki_llm_request_duration_seconds",
				Help:    "Latency of LLM generations",
				Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
			},
			[]string{"provider"},
		),
		LLMErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cheriki_llm_errors_total",
				Help: "Failed LLM generations by reason",
			},
			[]string{"reason"},
		),
		DeduplicatedRequests: factory.NewCounter(prometheus.CounterOpts{
			Name: "cheriki_llm_deduplicated_requests_total",
			Help: "Generations answered by an identical in-flight request",
		}),
		CircuitState: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cheriki_llm_circuit_state",
			Help: "Provider circuit breaker state (0=closed, 1=half-open, 2=open)",
		}),
		CacheRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cheriki_cache_requests_total",
				Help: "Completion cache lookups by result",
			},
			[]string{"result"},
		),
		ChunksPerReply: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "cheriki_reply_chunks",
			Help:    "Number of chunks a formatted reply is split into",
			Buckets: []float64{1, 2, 3, 4, 6, 8, 12},
		}),
		SuggestionSources: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cheriki_suggestions_total",
				Help: "Formatted replies by where their suggestions came from",
			},
			[]string{"source"},
		),
		MapsIntents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cheriki_maps_intents_total",
				Help: "Chat messages by whether a map lookup was detected",
			},
			[]string{"detected"},
		),
	}

	// Register default Go metrics
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m.RequestsTotal.WithLabelValues("/health", "200").Add(0)
	m.RequestsTotal.WithLabelValues("/metrics", "200").Add(0)
	m.CacheRequests.WithLabelValues("hit").Add(0)
	m.CacheRequests.WithLabelValues("miss").Add(0)

	return m
}

// Registry exposes the private registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns a handler for the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: false,
	})
}

// ObserveLLM records one generation.
func (m *Metrics) ObserveLLM(provider string, d time.Duration, reason string) {
	if m == nil {
		return
	}
	m.LLMDuration.WithLabelValues(provider).Observe(d.Seconds())
	if reason != "" {
		m.LLMErrors.WithLabelValues(reason).Inc()
	}
}

// ObserveCache records a cache lookup.
func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheRequests.WithLabelValues("hit").Inc()
	} else {
		m.CacheRequests.WithLabelValues("miss").Inc()
	}
}

// ObserveDeduplicated counts a generation shared with another caller.
func (m *Metrics) ObserveDeduplicated() {
	if m == nil {
		return
	}
	m.DeduplicatedRequests.Inc()
}

// SetCircuitState publishes the breaker state.
func (m *Metrics) SetCircuitState(state float64) {
	if m == nil {
		return
	}
	m.CircuitState.Set(state)
}

// ObserveReply records the shape of a formatted reply.
func (m *Metrics) ObserveReply(chunks int, suggestionSource string) {
	if m == nil {
		return
	}
	m.ChunksPerReply.Observe(float64(chunks))
	if suggestionSource != "" {
		m.SuggestionSources.WithLabelValues(suggestionSource).Inc()
	}
}

// ObserveMapsIntent records whether a chat message asked for a map.
func (m *Metrics) ObserveMapsIntent(detected bool) {
	if m == nil {
		return
	}
	if detected {
		m.MapsIntents.WithLabelValues("true").Inc()
	} else {
		m.MapsIntents.WithLabelValues("false").Inc()
	}
}
