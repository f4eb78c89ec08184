package processing

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teilomillet/gollm"
	"go.uber.org/zap/zaptest"

	"github.com/cheriki-dz/cheriki/config"
	"github.com/cheriki-dz/cheriki/server/location"
	"github.com/cheriki-dz/cheriki/server/mocks"
	"github.com/cheriki-dz/cheriki/server/provider"
)

// generatorFunc adapts a function to Generator and keeps the last prompt.
type generatorFunc struct {
	fn   func(*gollm.Prompt) (string, error)
	last *gollm.Prompt
}

func (g *generatorFunc) Generate(_ context.Context, p *gollm.Prompt) (string, error) {
	g.last = p
	return g.fn(p)
}

func reply(text string) *generatorFunc {
	return &generatorFunc{fn: func(*gollm.Prompt) (string, error) { return text, nil }}
}

func failing(err error) *generatorFunc {
	return &generatorFunc{fn: func(*gollm.Prompt) (string, error) { return "", err }}
}

// wordCounter counts whitespace-separated words.
type wordCounter struct{}

func (wordCounter) Count(text string) int { return len(strings.Fields(text)) }

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.LLM.MaxHistoryMessages = 4
	cfg.LLM.MaxContextTokens = 0
	return cfg
}

func newProcessor(t *testing.T, cfg *config.Config, gen Generator, opts ...Option) *ChatProcessor {
	t.Helper()
	opts = append(opts, WithLogger(zaptest.NewLogger(t)))
	p, err := NewChatProcessor(cfg, gen, opts...)
	require.NoError(t, err)
	return p
}

func TestNewChatProcessor(t *testing.T) {
	badTitle := testConfig()
	badTitle.Prompts.Title = "{{.Message"

	badLocation := testConfig()
	badLocation.Prompts.Location = "{{if .Location}}"

	tests := []struct {
		name    string
		cfg     *config.Config
		gen     Generator
		wantErr bool
	}{
		{name: "valid", cfg: testConfig(), gen: reply("ok")},
		{name: "nil config", cfg: nil, gen: reply("ok"), wantErr: true},
		{name: "nil generator", cfg: testConfig(), gen: nil, wantErr: true},
		{name: "broken title prompt", cfg: badTitle, gen: reply("ok"), wantErr: true},
		{name: "broken location prompt", cfg: badLocation, gen: reply("ok"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewChatProcessor(tt.cfg, tt.gen)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, p)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, p)
		})
	}
}

func TestProcessFormatsReply(t *testing.T) {
	raw := "Ahlan khoya! Kayen bzaf restaurants mlah f Wahran. Wach t7ebb nwarik a7san couscous?"
	p := newProcessor(t, testConfig(), reply(raw))

	resp, err := p.Process(context.Background(), ChatRequest{Message: "salam, wach kayen makla mliha?"})
	require.NoError(t, err)

	assert.Equal(t, raw, resp.Response)
	require.NotEmpty(t, resp.Formatted.Chunks)
	assert.LessOrEqual(t, len(resp.Formatted.Suggestions), 3)
	for _, s := range resp.Formatted.Suggestions {
		assert.True(t, strings.HasSuffix(s, "?"), s)
	}
	assert.Nil(t, resp.MapsQuery)
	assert.Nil(t, resp.MapsURL)
}

func TestProcessBuildsPrompt(t *testing.T) {
	gen := reply("ok")
	p := newProcessor(t, testConfig(), gen)

	history := []HistoryMessage{
		{Text: "first", IsUser: true},
		{Text: "second", IsUser: false},
		{Text: "   ", IsUser: true},
		{Text: "third", IsUser: true},
		{Text: "fourth", IsUser: false},
		{Text: "fifth", IsUser: true},
	}
	_, err := p.Process(context.Background(), ChatRequest{Message: "  wach rak?  ", ConversationHistory: history})
	require.NoError(t, err)

	msgs := gen.last.Messages
	require.Len(t, msgs, 6, "system + 4 most recent turns + message")

	assert.Equal(t, "system", msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "Chériki-1")
	assert.Contains(t, msgs[0].Content, "User location not available")

	assert.Equal(t, gollm.PromptMessage{Role: "assistant", Content: "second"}, msgs[1])
	assert.Equal(t, gollm.PromptMessage{Role: "user", Content: "third"}, msgs[2])
	assert.Equal(t, gollm.PromptMessage{Role: "assistant", Content: "fourth"}, msgs[3])
	assert.Equal(t, gollm.PromptMessage{Role: "user", Content: "fifth"}, msgs[4])
	assert.Equal(t, gollm.PromptMessage{Role: "user", Content: "wach rak?"}, msgs[5])
}

func TestProcessLocationPrompt(t *testing.T) {
	gen := reply("ok")
	p := newProcessor(t, testConfig(), gen)

	_, err := p.Process(context.Background(), ChatRequest{
		Message:      "salam",
		UserLocation: &location.Coordinates{Latitude: 35.6971, Longitude: -0.6308},
	})
	require.NoError(t, err)

	system := gen.last.Messages[0].Content
	assert.Contains(t, system, "User's current location: 35.6971, -0.6308")
	assert.NotContains(t, system, "User location not available")
}

func TestProcessWithoutHistory(t *testing.T) {
	cfg := testConfig()
	cfg.LLM.MaxHistoryMessages = 0
	gen := reply("ok")
	p := newProcessor(t, cfg, gen)

	_, err := p.Process(context.Background(), ChatRequest{
		Message:             "salam",
		ConversationHistory: []HistoryMessage{{Text: "old", IsUser: true}},
	})
	require.NoError(t, err)
	assert.Len(t, gen.last.Messages, 2)
}

func TestProcessTrimsHistoryToTokenBudget(t *testing.T) {
	cfg := testConfig()
	cfg.Prompts.System = "persona"
	cfg.Prompts.Location = ""
	cfg.LLM.MaxContextTokens = 8
	gen := reply("ok")
	p := newProcessor(t, cfg, gen, WithTokenCounter(wordCounter{}))

	history := []HistoryMessage{
		{Text: "one two three", IsUser: true},
		{Text: "four five", IsUser: false},
		{Text: "six seven", IsUser: true},
	}
	// persona(1) + message(2) + 7 history words = 10 > 8: the oldest turn goes.
	_, err := p.Process(context.Background(), ChatRequest{Message: "wach rak", ConversationHistory: history})
	require.NoError(t, err)

	msgs := gen.last.Messages
	require.Len(t, msgs, 4)
	assert.Equal(t, "four five", msgs[1].Content)
	assert.Equal(t, "six seven", msgs[2].Content)
}

func TestProcessApologizesWhenLLMFails(t *testing.T) {
	p := newProcessor(t, testConfig(), failing(errors.New("connection refused")))

	resp, err := p.Process(context.Background(), ChatRequest{Message: "restaurants in Oran"})
	require.NoError(t, err)

	assert.Equal(t, ApologyText, resp.Response)
	assert.Equal(t, []string{ApologyText}, resp.Formatted.Chunks)
	assert.False(t, resp.Formatted.HasFormatting)
	assert.Empty(t, resp.Formatted.Suggestions)

	require.NotNil(t, resp.MapsQuery)
	assert.Equal(t, "restaurants in Oran, Algeria", *resp.MapsQuery)
	require.NotNil(t, resp.MapsURL)
	assert.Equal(t, "https://www.google.com/maps/search/restaurants%20in%20Oran%2C%20Algeria", *resp.MapsURL)
}

func TestProcessApologizesWhenCircuitOpen(t *testing.T) {
	cb := config.CircuitBreakerConfig{MaxRequests: 1, Interval: time.Minute, Timeout: time.Minute, FailureThreshold: 1}
	prov := provider.New("mock", mocks.Fail(errors.New("down")), cb)
	p := newProcessor(t, testConfig(), prov)

	for i := 0; i < 2; i++ {
		resp, err := p.Process(context.Background(), ChatRequest{Message: "salam"})
		require.NoError(t, err)
		assert.Equal(t, ApologyText, resp.Response)
	}
	assert.False(t, prov.Healthy())
}

func TestProcessRejectsEmptyMessage(t *testing.T) {
	p := newProcessor(t, testConfig(), reply("ok"))

	for _, msg := range []string{"", "   ", "\n\t"} {
		_, err := p.Process(context.Background(), ChatRequest{Message: msg})
		assert.ErrorIs(t, err, ErrEmptyMessage)
	}
}

func TestLocate(t *testing.T) {
	at := &location.Coordinates{Latitude: 36.7538, Longitude: 3.0588}

	tests := []struct {
		name      string
		message   string
		at        *location.Coordinates
		anchor    bool
		wantQuery string
		wantURL   string
	}{
		{
			name:    "no intent",
			message: "Kifach ndir couscous?",
			at:      at,
			anchor:  true,
		},
		{
			name:      "anchored on the user",
			message:   "Find me a pharmacy please",
			at:        at,
			anchor:    true,
			wantQuery: "pharmacy near me",
			wantURL:   "https://www.google.com/maps/search/pharmacy%20near%20me/@36.7538,3.0588,15z",
		},
		{
			name:      "anchoring disabled",
			message:   "Find me a pharmacy please",
			at:        at,
			anchor:    false,
			wantQuery: "pharmacy near me",
			wantURL:   "https://www.google.com/maps/search/pharmacy%20near%20me",
		},
		{
			name:      "unknown location",
			message:   "show me the map",
			anchor:    true,
			wantQuery: "Algeria map",
			wantURL:   "https://www.google.com/maps/search/Algeria%20map",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Location.AnchorMap = tt.anchor
			p := newProcessor(t, cfg, reply("ok"))

			got := p.Locate(tt.message, tt.at)
			if tt.wantQuery == "" {
				assert.Nil(t, got.MapsQuery)
				assert.Nil(t, got.MapsURL)
				return
			}
			require.NotNil(t, got.MapsQuery)
			require.NotNil(t, got.MapsURL)
			assert.Equal(t, tt.wantQuery, *got.MapsQuery)
			assert.Equal(t, tt.wantURL, *got.MapsURL)
		})
	}
}

func TestWatchAppliesReloads(t *testing.T) {
	cfg := testConfig()
	watcher := mocks.NewMockConfigWatcher(cfg)
	p := newProcessor(t, cfg, reply("ok"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Watch(ctx, watcher)

	next := testConfig()
	next.Formatting.MaxChunkLength = 120
	next.Formatting.EnableEmojis = false
	next.Location.AnchorMap = false
	watcher.UpdateConfig(next)

	assert.Eventually(t, func() bool {
		return p.Options().MaxChunkLength == 120
	}, time.Second, 10*time.Millisecond)
	assert.False(t, p.Options().EnableEmojis)

	got := p.Locate("pharmacy", &location.Coordinates{Latitude: 1, Longitude: 2})
	require.NotNil(t, got.MapsURL)
	assert.NotContains(t, *got.MapsURL, "@")
}
