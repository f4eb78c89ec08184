package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadValidConfig(t *testing.T) {
	yamlConfig := `
server:
  port: 9090
  read_timeout: 45s
  write_timeout: 45s
  max_header_bytes: 2097152
  shutdown_timeout: 45s
  allowed_origins: ["https://cheriki.dz"]

llm:
  provider: openai
  model: gpt-4o-mini
  endpoint: https://api.openai.com/v1
  max_history_messages: 10
  max_context_tokens: 4096
  options:
    temperature: 0.8

logging:
  level: debug
  format: text

formatting:
  enable_emojis: false
  max_chunk_length: 200

location:
  anchor_map: false

cache:
  enable: true
  type: redis
  ttl: 10m
  redis:
    address: localhost:6379
`

	config, err := Load(strings.NewReader(yamlConfig))
	if err != nil {
		t.Fatalf("Failed to load valid config: %v", err)
	}

	if config.Server.Port != 9090 {
		t.Errorf("unexpected port: got %d, want %d", config.Server.Port, 9090)
	}
	if config.Server.ReadTimeout != 45*time.Second {
		t.Errorf("unexpected read timeout: got %v, want %v", config.Server.ReadTimeout, 45*time.Second)
	}
	if len(config.Server.AllowedOrigins) != 1 || config.Server.AllowedOrigins[0] != "https://cheriki.dz" {
		t.Errorf("unexpected allowed origins: %v", config.Server.AllowedOrigins)
	}

	if config.LLM.Provider != "openai" {
		t.Errorf("unexpected provider: got %s, want %s", config.LLM.Provider, "openai")
	}
	if config.LLM.MaxHistoryMessages != 10 {
		t.Errorf("unexpected history size: got %d, want %d", config.LLM.MaxHistoryMessages, 10)
	}

	if config.Logging.Level != "debug" || config.Logging.Format != "text" {
		t.Errorf("unexpected logging config: %+v", config.Logging)
	}

	// Unset formatting keys keep their defaults
	if config.Formatting.EnableEmojis {
		t.Error("emojis should be disabled")
	}
	if !config.Formatting.EnableMarkdown {
		t.Error("markdown should keep its default")
	}
	if config.Formatting.MaxChunkLength != 200 {
		t.Errorf("unexpected chunk length: got %d, want %d", config.Formatting.MaxChunkLength, 200)
	}

	if config.Location.AnchorMap {
		t.Error("anchor_map should be disabled")
	}

	if !config.Cache.Enable || config.Cache.Type != "redis" || config.Cache.TTL != 10*time.Minute {
		t.Errorf("unexpected cache config: %+v", config.Cache)
	}
	if config.Cache.Redis.Address != "localhost:6379" {
		t.Errorf("unexpected redis address: %s", config.Cache.Redis.Address)
	}

	if config.Prompts.System == "" {
		t.Error("system prompt should keep its default")
	}
}

func TestLoadEmptyConfig(t *testing.T) {
	config, err := Load(strings.NewReader(""))
	if err != nil {
		t.Fatalf("empty config should fall back to defaults: %v", err)
	}
	if config.Server.Port != 8080 {
		t.Errorf("unexpected port: got %d", config.Server.Port)
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		config string
		want   string
	}{
		{
			name: "invalid port",
			config: `
server:
  port: -1
`,
			want: "invalid port",
		},
		{
			name: "invalid log level",
			config: `
logging:
  level: invalid
`,
			want: "invalid log level",
		},
		{
			name: "empty provider",
			config: `
llm:
  provider: ""
`,
			want: "empty LLM provider",
		},
		{
			name: "negative history",
			config: `
llm:
  max_history_messages: -1
`,
			want: "negative max history messages",
		},
		{
			name: "zero chunk length",
			config: `
formatting:
  max_chunk_length: 0
`,
			want: "max chunk length must be positive",
		},
		{
			name: "redis without address",
			config: `
cache:
  enable: true
  type: redis
`,
			want: "no address configured",
		},
		{
			name: "unknown cache type",
			config: `
cache:
  enable: true
  type: file
`,
			want: "invalid cache type",
		},
		{
			name: "broken prompt template",
			config: `
prompts:
  title: "{{.Message"
`,
			want: "invalid title prompt template",
		},
		{
			name: "negative queue",
			config: `
server:
  max_queued: -1
`,
			want: "negative request queue limits",
		},
		{
			name: "rate limit without budget",
			config: `
rate_limit:
  enabled: true
  requests_per_minute: 0
`,
			want: "rate limit needs positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.config))
			if err == nil {
				t.Error("expected error, got nil")
			} else if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("unexpected error: got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if err := config.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}

	if config.Server.Port != 8080 {
		t.Errorf("unexpected default port: got %d, want %d", config.Server.Port, 8080)
	}
	if config.Server.MaxInFlight != 16 || config.Server.MaxQueued != 64 {
		t.Errorf("unexpected default queue limits: %d/%d", config.Server.MaxInFlight, config.Server.MaxQueued)
	}
	if config.LLM.Provider != "ollama" {
		t.Errorf("unexpected default provider: got %s, want %s", config.LLM.Provider, "ollama")
	}
	if config.LLM.MaxHistoryMessages != 20 {
		t.Errorf("unexpected default history size: got %d, want %d", config.LLM.MaxHistoryMessages, 20)
	}

	f := config.Formatting
	if !f.EnableMarkdown || !f.EnableEmojis || !f.AddLineBreaks || !f.CleanSymbols || f.MaxChunkLength != 300 {
		t.Errorf("unexpected default formatting: %+v", f)
	}
	if !config.Location.AnchorMap {
		t.Error("map links should be anchored by default")
	}
	if config.Cache.Enable {
		t.Error("cache should be off by default")
	}
}
