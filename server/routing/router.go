// Package routing assembles the chi router: the global middleware chain, the
// versioned API routes and the operational endpoints.
package routing

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/cheriki-dz/cheriki/config"
	"github.com/cheriki-dz/cheriki/errors"
	"github.com/cheriki-dz/cheriki/server/handlers"
	"github.com/cheriki-dz/cheriki/server/metrics"
	"github.com/cheriki-dz/cheriki/server/middleware"
)

// Router serves the gateway API.
//
//	POST /v1/chat      chat completion with formatting and map lookup
//	POST /v1/title     conversation title
//	POST /v1/format    formatting only
//	POST /v1/location  map lookup only
//	GET  /health
//	GET  /metrics
//
// The rate limiter covers every /v1 route; the request queue only the
// routes that call the LLM.
type Router struct {
	router chi.Router
	queue  *middleware.QueueMiddleware
}

// NewRouter builds the router. m may be nil to disable metrics.
func NewRouter(cfg *config.Config, h *handlers.Handlers, m *metrics.Metrics, logger *zap.Logger) *Router {
	r := &Router{
		router: chi.NewRouter(),
		queue: middleware.NewQueueMiddleware(middleware.QueueConfig{
			MaxInFlight: cfg.Server.MaxInFlight,
			MaxQueued:   cfg.Server.MaxQueued,
			Metrics:     m,
		}),
	}

	r.router.Use(chimw.RealIP)
	r.router.Use(middleware.RequestID)
	r.router.Use(middleware.RequestTimer)
	r.router.Use(middleware.Logging(logger))
	r.router.Use(errors.ErrorHandler(logger))
	r.router.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	if m != nil {
		r.router.Use(middleware.PrometheusMetrics(m))
	}

	r.router.NotFound(func(w http.ResponseWriter, req *http.Request) {
		errors.ErrorWithType(w, "route not found", errors.NotFoundError, http.StatusNotFound)
	})
	r.router.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		errors.ErrorWithType(w, "method not allowed", errors.BadRequestError, http.StatusMethodNotAllowed)
	})

	r.router.Route("/v1", func(v1 chi.Router) {
		if cfg.RateLimit.Enabled {
			v1.Use(middleware.NewRateLimiter(cfg.RateLimit, m).Handler)
		}

		v1.Post("/format", h.Format)
		v1.Post("/location", h.Location)

		v1.Group(func(llm chi.Router) {
			llm.Use(r.queue.Handler)
			llm.Post("/chat", h.Chat)
			llm.Post("/title", h.Title)
		})
	})

	r.router.Get("/health", h.Health)
	if m != nil {
		RegisterMetricsRoutes(r.router, m)
	}

	return r
}

// Queue exposes the LLM request queue.
func (r *Router) Queue() *middleware.QueueMiddleware {
	return r.queue
}

// ServeHTTP implements the http.Handler interface.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
