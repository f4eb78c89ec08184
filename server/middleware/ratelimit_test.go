package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cheriki-dz/cheriki/config"
	"github.com/cheriki-dz/cheriki/server/metrics"
)

func newTestLimiter(rpm, burst int, m *metrics.Metrics) (*RateLimiter, *time.Time) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(config.RateLimitConfig{Enabled: true, RequestsPerMinute: rpm, Burst: burst}, m)
	rl.now = func() time.Time { return now }
	return rl, &now
}

func TestRateLimiterRejectsOverBudget(t *testing.T) {
	m := metrics.NewMetrics()
	rl, _ := newTestLimiter(60, 2, m)
	handler := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/chat", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:5000").Code)
	assert.Equal(t, http.StatusOK, send("10.0.0.1:5001").Code)

	rec := send("10.0.0.1:5002")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "rate_limit_error", body["type"])

	// Another client has its own bucket
	assert.Equal(t, http.StatusOK, send("10.0.0.2:5000").Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RateLimitHits.WithLabelValues("10.0.0.1")))
}

func TestRateLimiterRefills(t *testing.T) {
	rl, now := newTestLimiter(60, 1, nil)
	handler := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/v1/chat", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send())
	assert.Equal(t, http.StatusTooManyRequests, send())

	*now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, send())
}

func TestRateLimiterSweepsIdleVisitors(t *testing.T) {
	rl, now := newTestLimiter(60, 1, nil)

	rl.limiterFor("10.0.0.1")
	rl.limiterFor("10.0.0.2")
	assert.Len(t, rl.visitors, 2)

	*now = now.Add(visitorIdle + time.Minute)
	rl.limiterFor("10.0.0.3")

	assert.Len(t, rl.visitors, 1)
	assert.Contains(t, rl.visitors, "10.0.0.3")
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "[2001:db8::1]:443"
	assert.Equal(t, "2001:db8::1", clientIP(req))

	req.RemoteAddr = "unix"
	assert.Equal(t, "unix", clientIP(req))
}
