package middleware

import (
	"context"
	stderrors "errors"
	"net/http"
	"sync"

	"github.com/eapache/queue/v2"

	"github.com/cheriki-dz/cheriki/errors"
	"github.com/cheriki-dz/cheriki/server/metrics"
)

var errQueueFull = stderrors.New("request queue is full")

// waiter is a request parked in the FIFO until a slot frees up. granted and
// abandoned are guarded by QueueMiddleware.mu.
type waiter struct {
	ready     chan struct{}
	granted   bool
	abandoned bool
}

// QueueConfig sizes the queue middleware.
type QueueConfig struct {
	// MaxInFlight is the number of requests handled at once. 0 disables the
	// limiter.
	MaxInFlight int
	// MaxQueued is how many requests may wait for a slot before new ones
	// are rejected with 503.
	MaxQueued int
	Metrics   *metrics.Metrics
}

// QueueMiddleware bounds concurrent LLM-backed requests. Requests beyond
// MaxInFlight wait in FIFO order; a finishing request hands its slot
// directly to the oldest waiter.
type QueueMiddleware struct {
	maxInFlight int
	maxQueued   int
	metrics     *metrics.Metrics

	mu       sync.Mutex
	waiting  *queue.Queue[*waiter]
	inFlight int
	queued   int
}

// NewQueueMiddleware creates a queue middleware.
func NewQueueMiddleware(cfg QueueConfig) *QueueMiddleware {
	return &QueueMiddleware{
		maxInFlight: cfg.MaxInFlight,
		maxQueued:   cfg.MaxQueued,
		metrics:     cfg.Metrics,
		waiting:     queue.New[*waiter](),
	}
}

// Stats reports the requests being processed and waiting.
func (qm *QueueMiddleware) Stats() (inFlight, queued int) {
	qm.mu.Lock()
	defer qm.mu.Unlock()
	return qm.inFlight, qm.queued
}

func (qm *QueueMiddleware) acquire(ctx context.Context) error {
	qm.mu.Lock()
	if qm.inFlight < qm.maxInFlight {
		qm.inFlight++
		qm.publish()
		qm.mu.Unlock()
		return nil
	}
	if qm.queued >= qm.maxQueued {
		qm.mu.Unlock()
		return errQueueFull
	}
	w := &waiter{ready: make(chan struct{})}
	qm.waiting.Add(w)
	qm.queued++
	qm.publish()
	qm.mu.Unlock()

	select {
	case <-w.ready:
		return nil
	case <-ctx.Done():
		qm.mu.Lock()
		if w.granted {
			// The slot arrived as the caller gave up; pass it on.
			qm.mu.Unlock()
			qm.release()
			return ctx.Err()
		}
		w.abandoned = true
		qm.queued--
		qm.publish()
		qm.mu.Unlock()
		return ctx.Err()
	}
}

func (qm *QueueMiddleware) release() {
	qm.mu.Lock()
	defer qm.mu.Unlock()

	for qm.waiting.Length() > 0 {
		w := qm.waiting.Remove()
		if w.abandoned {
			continue
		}
		w.granted = true
		qm.queued--
		qm.publish()
		close(w.ready)
		return
	}
	qm.inFlight--
	qm.publish()
}

// publish must be called with mu held.
func (qm *QueueMiddleware) publish() {
	if qm.metrics == nil {
		return
	}
	qm.metrics.ActiveRequests.WithLabelValues("queued").Set(float64(qm.queued))
	qm.metrics.ActiveRequests.WithLabelValues("processing").Set(float64(qm.inFlight))
}

// Handler wraps next with the queue.
func (qm *QueueMiddleware) Handler(next http.Handler) http.Handler {
	if qm.maxInFlight <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := qm.acquire(r.Context()); err != nil {
			if err == errQueueFull && qm.metrics != nil {
				qm.metrics.ErrorsTotal.WithLabelValues("queue_full").Inc()
			}
			errors.WriteError(w, errors.NewUnavailableError(GetRequestID(r.Context()), err))
			return
		}
		defer qm.release()

		next.ServeHTTP(w, r)
	})
}
