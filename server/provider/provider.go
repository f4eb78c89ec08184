// Package provider wraps the LLM client with the resilience layer every
// generation goes through: response cache, in-flight de-duplication, a
// per-call timeout and a circuit breaker.
package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"github.com/teilomillet/gollm"
	"github.com/teilomillet/gollm/llm"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/cheriki-dz/cheriki/config"
	"github.com/cheriki-dz/cheriki/server/cache"
	"github.com/cheriki-dz/cheriki/server/metrics"
)

var (
	// ErrCircuitOpen is returned without calling the LLM while the breaker
	// is open or its half-open probe budget is used up.
	ErrCircuitOpen = errors.New("llm circuit open")

	// ErrEmptyResponse is returned when the LLM answers with only whitespace.
	ErrEmptyResponse = errors.New("llm returned an empty response")
)

// Generator is the part of gollm.LLM the service relies on.
type Generator interface {
	Generate(ctx context.Context, prompt *gollm.Prompt, opts ...llm.GenerateOption) (string, error)
}

var _ Generator = gollm.LLM(nil)

// Provider is safe for concurrent use.
type Provider struct {
	name    string
	gen     Generator
	breaker *gobreaker.CircuitBreaker
	group   singleflight.Group
	cache   cache.Cache
	timeout time.Duration
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithCache stores successful completions in c.
func WithCache(c cache.Cache) Option {
	return func(p *Provider) { p.cache = c }
}

// WithMetrics records latency, errors, cache and breaker state.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Provider) { p.metrics = m }
}

// WithTimeout bounds each generation. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(p *Provider) { p.timeout = d }
}

// WithLogger sets the logger; the default discards.
func WithLogger(l *zap.Logger) Option {
	return func(p *Provider) { p.logger = l }
}

// New wraps gen. name labels logs and metrics, usually the configured
// provider ("ollama", "openai", ...).
func New(name string, gen Generator, cb config.CircuitBreakerConfig, opts ...Option) *Provider {
	p := &Provider{
		name:   name,
		gen:    gen,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}

	threshold := cb.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}
	p.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: cb.MaxRequests,
		Interval:    cb.Interval,
		Timeout:     cb.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			p.logger.Warn("llm circuit state changed",
				zap.String("provider", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			p.metrics.SetCircuitState(float64(to))
		},
	})
	return p
}

// Name returns the provider label.
func (p *Provider) Name() string {
	return p.name
}

// Healthy reports whether generations are currently attempted.
func (p *Provider) Healthy() bool {
	return p.breaker.State() != gobreaker.StateOpen
}

// State returns the breaker state as "closed", "half-open" or "open".
func (p *Provider) State() string {
	return p.breaker.State().String()
}

// Generate returns the completion for prompt. Identical prompts in flight
// at the same time share one LLM call; cached completions skip it entirely.
func (p *Provider) Generate(ctx context.Context, prompt *gollm.Prompt) (string, error) {
	key := PromptKey(prompt)

	if p.cache != nil {
		if text, err := p.cache.Get(ctx, key); err == nil {
			p.metrics.ObserveCache(true)
			return text, nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			p.logger.Warn("cache lookup failed", zap.Error(err))
		}
		p.metrics.ObserveCache(false)
	}

	// The shared call must outlive any single caller that gives up.
	v, err, shared := p.group.Do(key, func() (interface{}, error) {
		detached := context.WithoutCancel(ctx)
		text, err := p.execute(detached, prompt)
		if err != nil {
			return "", err
		}
		if p.cache != nil {
			if err := p.cache.Set(detached, key, text); err != nil {
				p.logger.Warn("cache store failed", zap.Error(err))
			}
		}
		return text, nil
	})
	if shared {
		p.metrics.ObserveDeduplicated()
	}
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (p *Provider) execute(ctx context.Context, prompt *gollm.Prompt) (string, error) {
	start := time.Now()

	v, err := p.breaker.Execute(func() (interface{}, error) {
		if p.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, p.timeout)
			defer cancel()
		}
		text, err := p.gen.Generate(ctx, prompt)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(text) == "" {
			return nil, ErrEmptyResponse
		}
		return text, nil
	})

	reason := failureReason(err)
	p.metrics.ObserveLLM(p.name, time.Since(start), reason)

	if err != nil {
		if reason == "circuit_open" {
			return "", fmt.Errorf("%w: %v", ErrCircuitOpen, err)
		}
		p.logger.Debug("generation failed",
			zap.String("provider", p.name),
			zap.Duration("duration", time.Since(start)),
			zap.Uint32("consecutive_failures", p.breaker.Counts().ConsecutiveFailures),
			zap.Error(err),
		)
		return "", fmt.Errorf("llm generation failed: %w", err)
	}
	return v.(string), nil
}

func failureReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "circuit_open"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, ErrEmptyResponse):
		return "empty"
	default:
		return "error"
	}
}

// PromptKey identifies a prompt by the role and content of every message.
func PromptKey(prompt *gollm.Prompt) string {
	if prompt == nil {
		return cache.Key()
	}
	parts := make([]string, 0, 2*len(prompt.Messages))
	for _, m := range prompt.Messages {
		parts = append(parts, m.Role, m.Content)
	}
	return cache.Key(parts...)
}
