// Package processing turns a chat request into a reply: it builds the
// prompt, calls the LLM, formats the completion for the chat bubbles and
// derives a map lookup from the user's message.
package processing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"text/template"

	"github.com/eapache/queue/v2"
	"github.com/teilomillet/gollm"
	"go.uber.org/zap"

	"github.com/cheriki-dz/cheriki/config"
	"github.com/cheriki-dz/cheriki/server/formatting"
	"github.com/cheriki-dz/cheriki/server/location"
	"github.com/cheriki-dz/cheriki/server/metrics"
)

// ApologyText is sent in place of a completion when the LLM cannot be
// reached.
const ApologyText = "Ma3lich khoya, andi mushkil fi connexion. Bs goulili wach t7ebb w ana nesta3lek."

// ErrEmptyMessage is returned for a message with no visible text.
var ErrEmptyMessage = errors.New("message is empty")

// Generator produces a completion for a prompt. *provider.Provider
// implements it.
type Generator interface {
	Generate(ctx context.Context, prompt *gollm.Prompt) (string, error)
}

// TokenCounter measures text in model tokens. *validation.TokenCounter
// implements it.
type TokenCounter interface {
	Count(text string) int
}

// ChatProcessor is safe for concurrent use. Formatting options and map
// anchoring follow configuration reloads.
type ChatProcessor struct {
	gen       Generator
	formatter *formatting.Formatter
	resolver  *location.Resolver
	tokens    TokenCounter
	metrics   *metrics.Metrics
	logger    *zap.Logger

	systemPrompt   string
	locationPrompt *template.Template
	titlePrompt    *template.Template

	maxHistory int
	maxTokens  int

	options   atomic.Pointer[formatting.Options]
	anchorMap atomic.Bool
}

// Option configures a ChatProcessor.
type Option func(*ChatProcessor)

// WithTokenCounter enables trimming history to llm.max_context_tokens.
func WithTokenCounter(tc TokenCounter) Option {
	return func(p *ChatProcessor) { p.tokens = tc }
}

// WithMetrics records reply shape and map intents.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *ChatProcessor) { p.metrics = m }
}

// WithLogger sets the logger; the default discards.
func WithLogger(l *zap.Logger) Option {
	return func(p *ChatProcessor) { p.logger = l }
}

// WithFormatter replaces the formatter built on the default lexicon.
func WithFormatter(f *formatting.Formatter) Option {
	return func(p *ChatProcessor) { p.formatter = f }
}

// WithResolver replaces the resolver built on the default lexicon.
func WithResolver(r *location.Resolver) Option {
	return func(p *ChatProcessor) { p.resolver = r }
}

// NewChatProcessor compiles the prompts in cfg and returns a processor that
// sends generations to gen.
func NewChatProcessor(cfg *config.Config, gen Generator, opts ...Option) (*ChatProcessor, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if gen == nil {
		return nil, fmt.Errorf("generator is required")
	}

	locationTmpl, err := template.New("location").Parse(cfg.Prompts.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to parse location prompt: %w", err)
	}
	titleTmpl, err := template.New("title").Parse(cfg.Prompts.Title)
	if err != nil {
		return nil, fmt.Errorf("failed to parse title prompt: %w", err)
	}

	p := &ChatProcessor{
		gen:            gen,
		logger:         zap.NewNop(),
		systemPrompt:   cfg.Prompts.System,
		locationPrompt: locationTmpl,
		titlePrompt:    titleTmpl,
		maxHistory:     cfg.LLM.MaxHistoryMessages,
		maxTokens:      cfg.LLM.MaxContextTokens,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.formatter == nil {
		p.formatter = formatting.Default()
	}
	if p.resolver == nil {
		p.resolver = location.Default()
	}
	p.UpdateConfig(cfg)
	return p, nil
}

// UpdateConfig applies the reloadable parts of cfg: formatting options and
// map anchoring.
func (p *ChatProcessor) UpdateConfig(cfg *config.Config) {
	opts := formatting.Options(cfg.Formatting)
	p.options.Store(&opts)
	p.anchorMap.Store(cfg.Location.AnchorMap)
}

// Watch applies every configuration published by w until ctx ends or w is
// closed.
func (p *ChatProcessor) Watch(ctx context.Context, w config.Watcher) {
	updates := w.Subscribe()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case cfg, ok := <-updates:
				if !ok {
					return
				}
				p.UpdateConfig(cfg)
				p.logger.Info("formatting options reloaded",
					zap.Int("max_chunk_length", cfg.Formatting.MaxChunkLength),
					zap.Bool("anchor_map", cfg.Location.AnchorMap),
				)
			}
		}
	}()
}

// Options returns the formatting options currently in effect.
func (p *ChatProcessor) Options() formatting.Options {
	return *p.options.Load()
}

// Formatter returns the formatter replies go through.
func (p *ChatProcessor) Formatter() *formatting.Formatter {
	return p.formatter
}

// Process answers one chat message. It fails only for invalid input: when
// the LLM is unavailable the reply is ApologyText and the map lookup is
// still computed.
func (p *ChatProcessor) Process(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	system, err := p.buildSystemPrompt(req.UserLocation)
	if err != nil {
		return nil, err
	}
	history := p.window(system, message, req.ConversationHistory)

	messages := make([]gollm.PromptMessage, 0, len(history)+2)
	messages = append(messages, gollm.PromptMessage{Role: "system", Content: system})
	for _, h := range history {
		role := "assistant"
		if h.IsUser {
			role = "user"
		}
		messages = append(messages, gollm.PromptMessage{Role: role, Content: h.Text})
	}
	messages = append(messages, gollm.PromptMessage{Role: "user", Content: message})

	loc := p.Locate(req.Message, req.UserLocation)
	p.metrics.ObserveMapsIntent(loc.MapsQuery != nil)

	resp := &ChatResponse{MapsQuery: loc.MapsQuery, MapsURL: loc.MapsURL}

	text, err := p.gen.Generate(ctx, &gollm.Prompt{Messages: messages})
	if err != nil {
		p.logger.Warn("llm generation failed, sending apology", zap.Error(err))
		resp.Response = ApologyText
		resp.Formatted = apology()
		return resp, nil
	}

	resp.Response = text
	resp.Formatted = p.formatter.Format(text, p.Options(), true)
	p.metrics.ObserveReply(len(resp.Formatted.Chunks), string(resp.Formatted.SuggestionSource))

	p.logger.Debug("chat processed",
		zap.Int("history_sent", len(history)),
		zap.Int("chunks", len(resp.Formatted.Chunks)),
		zap.Bool("maps_intent", resp.MapsQuery != nil),
	)
	return resp, nil
}

// Locate resolves the map lookup for message. The link is centered on at
// when it is known and anchoring is enabled.
func (p *ChatProcessor) Locate(message string, at *location.Coordinates) LocationResult {
	query := p.resolver.Resolve(message, at != nil)
	if query == nil {
		return LocationResult{}
	}

	var anchor *location.Coordinates
	if at != nil && p.anchorMap.Load() {
		anchor = at
	}
	url := location.SearchURL(*query, anchor)
	return LocationResult{MapsQuery: query, MapsURL: &url}
}

func apology() formatting.FormattedMessage {
	return formatting.FormattedMessage{
		Chunks:           []string{ApologyText},
		HasFormatting:    false,
		Suggestions:      []string{},
		Direction:        "ltr",
		SuggestionSource: formatting.SourceNone,
	}
}

func (p *ChatProcessor) buildSystemPrompt(at *location.Coordinates) (string, error) {
	var buf bytes.Buffer
	buf.WriteString(p.systemPrompt)
	if err := p.locationPrompt.Execute(&buf, struct{ Location *location.Coordinates }{at}); err != nil {
		return "", fmt.Errorf("location prompt: %w", err)
	}
	return buf.String(), nil
}

// window keeps the most recent maxHistory non-empty turns, then drops the
// oldest while the prompt exceeds the token budget.
func (p *ChatProcessor) window(system, message string, history []HistoryMessage) []HistoryMessage {
	if p.maxHistory <= 0 {
		return nil
	}

	q := queue.New[HistoryMessage]()
	for _, h := range history {
		if strings.TrimSpace(h.Text) == "" {
			continue
		}
		q.Add(h)
		if q.Length() > p.maxHistory {
			q.Remove()
		}
	}

	if p.tokens != nil && p.maxTokens > 0 {
		total := p.tokens.Count(system) + p.tokens.Count(message)
		for i := 0; i < q.Length(); i++ {
			total += p.tokens.Count(q.Get(i).Text)
		}
		for q.Length() > 0 && total > p.maxTokens {
			total -= p.tokens.Count(q.Remove().Text)
		}
	}

	out := make([]HistoryMessage, q.Length())
	for i := range out {
		out[i] = q.Get(i)
	}
	return out
}
