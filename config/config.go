// Package config provides configuration management for the Cheriki chat
// gateway. It covers the HTTP server, the LLM provider, response formatting,
// map links, caching, rate limiting and runtime behavior.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete server configuration.
type Config struct {
	Server         ServerConfig         `yaml:"server"`
	LLM            LLMConfig            `yaml:"llm"`
	Prompts        PromptConfig         `yaml:"prompts"`
	Logging        LoggingConfig        `yaml:"logging"`
	Formatting     FormattingConfig     `yaml:"formatting"`
	Location       LocationConfig       `yaml:"location"`
	Cache          CacheConfig          `yaml:"cache"`
	RateLimit      RateLimitConfig      `yaml:"rate_limit"`
	CircuitBreaker CircuitBreakerConfig `yaml:"circuit_breaker"`
}

// ServerConfig holds server-specific configuration for the HTTP server.
type ServerConfig struct {
	// Port specifies the HTTP server port (default: 8080)
	Port int `yaml:"port"`

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body (default: 30s)
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the response
	// (default: 45s, LLM replies can be slow)
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// MaxHeaderBytes controls the maximum number of bytes the server will
	// read parsing the request header's keys and values (default: 1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`

	// ShutdownTimeout specifies how long to wait for the server to shutdown
	// gracefully before forcing termination (default: 30s)
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// AllowedOrigins lists CORS origins; "*" allows any (default: ["*"])
	AllowedOrigins []string `yaml:"allowed_origins"`

	// MaxInFlight caps concurrent LLM-bound requests (default: 16, 0 = no cap)
	MaxInFlight int `yaml:"max_in_flight"`

	// MaxQueued is how many LLM-bound requests may wait for a slot before
	// new ones are turned away with 503 (default: 64)
	MaxQueued int `yaml:"max_queued"`
}

// LLMConfig holds LLM-specific configuration.
type LLMConfig struct {
	// Provider specifies the LLM provider (e.g., "openai", "anthropic", "ollama")
	Provider string `yaml:"provider"`

	// Model is the name of the model to use
	Model string `yaml:"model"`

	// APIKey is the authentication key for the provider's API.
	// Use environment variables (e.g., ${OPENAI_API_KEY}) for secure configuration
	APIKey string `yaml:"api_key"`

	// Endpoint is the API endpoint URL, only needed for self-hosted models
	Endpoint string `yaml:"endpoint"`

	// Timeout bounds a single generation call (default: 30s)
	Timeout time.Duration `yaml:"timeout"`

	// MaxHistoryMessages caps how many earlier turns are sent with each
	// chat message (default: 20)
	MaxHistoryMessages int `yaml:"max_history_messages"`

	// MaxContextTokens is the token budget for the system prompt plus
	// history plus the new message. 0 disables token trimming.
	MaxContextTokens int `yaml:"max_context_tokens"`

	// Options contains provider-specific generation parameters
	Options map[string]interface{} `yaml:"options"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	// Level sets logging verbosity: debug, info, warn, error
	Level string `yaml:"level"`

	// Format specifies log output format: json or text
	Format string `yaml:"format"`
}

// FormattingConfig mirrors the reply formatting switches. Its field set
// matches formatting.Options so one converts directly into the other.
type FormattingConfig struct {
	EnableMarkdown bool `yaml:"enable_markdown"`
	EnableEmojis   bool `yaml:"enable_emojis"`
	MaxChunkLength int  `yaml:"max_chunk_length"`
	AddLineBreaks  bool `yaml:"add_line_breaks"`
	CleanSymbols   bool `yaml:"clean_symbols"`
}

// LocationConfig controls map link generation.
type LocationConfig struct {
	// AnchorMap centers generated map links on the user's reported position
	AnchorMap bool `yaml:"anchor_map"`
}

// CacheConfig defines caching behavior for LLM responses.
type CacheConfig struct {
	// Enable turns caching on/off (default: false)
	Enable bool `yaml:"enable"`

	// Type specifies the caching strategy:
	// - "memory": In-memory cache (cleared on restart)
	// - "redis": Redis-based persistent cache
	Type string `yaml:"type"`

	// TTL specifies how long to keep cached responses (default: 1h)
	TTL time.Duration `yaml:"ttl"`

	// MaxSize is the maximum number of entries kept by the memory cache
	MaxSize int `yaml:"max_size"`

	// Redis configuration (only used if Type is "redis")
	Redis *RedisCacheConfig `yaml:"redis,omitempty"`
}

// RedisCacheConfig holds Redis-specific cache configuration.
type RedisCacheConfig struct {
	// Address is the Redis server address (e.g., "localhost:6379")
	Address string `yaml:"address"`

	// Password for Redis authentication (optional)
	Password string `yaml:"password"`

	// DB is the Redis database number to use
	DB int `yaml:"db"`

	// KeyPrefix namespaces cache keys (default: "cheriki:")
	KeyPrefix string `yaml:"key_prefix"`
}

// RateLimitConfig bounds per-client request rates.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requests_per_minute"`
	Burst             int  `yaml:"burst"`
}

type CircuitBreakerConfig struct {
	// MaxRequests is maximum number of requests allowed to pass through when in half-open state
	MaxRequests uint32 `yaml:"max_requests"`

	// Interval is the cyclic period of the closed state for the circuit breaker
	Interval time.Duration `yaml:"interval"`

	// Timeout is the period of the open state until it becomes half-open
	Timeout time.Duration `yaml:"timeout"`

	// FailureThreshold is the number of consecutive failures needed to trip the circuit
	FailureThreshold uint32 `yaml:"failure_threshold"`
}

// DefaultConfig returns a configuration that runs against a local Ollama
// model with every formatting stage enabled and caching off.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    45 * time.Second,
			MaxHeaderBytes:  1 << 20,
			ShutdownTimeout: 30 * time.Second,
			AllowedOrigins:  []string{"*"},
			MaxInFlight:     16,
			MaxQueued:       64,
		},

		LLM: LLMConfig{
			Provider:           "ollama",
			Model:              "llama3",
			Timeout:            30 * time.Second,
			MaxHistoryMessages: 20,
			MaxContextTokens:   8192,
			Options: map[string]interface{}{
				"temperature": 0.7,
			},
		},

		Prompts: DefaultPrompts(),

		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},

		Formatting: FormattingConfig{
			EnableMarkdown: true,
			EnableEmojis:   true,
			MaxChunkLength: 300,
			AddLineBreaks:  true,
			CleanSymbols:   true,
		},

		Location: LocationConfig{
			AnchorMap: true,
		},

		Cache: CacheConfig{
			Enable:  false,
			Type:    "memory",
			TTL:     time.Hour,
			MaxSize: 1000,
		},

		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerMinute: 30,
			Burst:             10,
		},

		CircuitBreaker: CircuitBreakerConfig{
			MaxRequests:      1,
			Interval:         30 * time.Second,
			Timeout:          10 * time.Second,
			FailureThreshold: 5,
		},
	}
}

// LoadFile loads configuration from a YAML file
func LoadFile(filename string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// expandEnvVars resolves ${VAR} and ${VAR:-default} references. A variable
// that is unset or empty takes its default. Expansion repeats until the
// string stops changing, so a value may itself reference another variable.
func expandEnvVars(s string) string {
	expand := func(key string) string {
		if i := strings.Index(key, ":-"); i >= 0 {
			if val := os.Getenv(key[:i]); val != "" {
				return val
			}
			return key[i+2:]
		}
		return os.Getenv(key)
	}

	result := os.Expand(s, expand)
	for i := 0; i < 8 && strings.Contains(result, "${"); i++ {
		next := os.Expand(result, expand)
		if next == result {
			break
		}
		result = next
	}
	return result
}

// Load loads configuration from an io.Reader
func Load(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Start with defaults
	config := DefaultConfig()

	// Decode YAML on top of defaults
	dec := yaml.NewDecoder(strings.NewReader(expandEnvVars(string(data))))
	if err := dec.Decode(config); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Server.ReadTimeout < 0 {
		return fmt.Errorf("negative read timeout: %v", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout < 0 {
		return fmt.Errorf("negative write timeout: %v", c.Server.WriteTimeout)
	}
	if c.Server.MaxInFlight < 0 || c.Server.MaxQueued < 0 {
		return fmt.Errorf("negative request queue limits: in_flight=%d queued=%d", c.Server.MaxInFlight, c.Server.MaxQueued)
	}
	if c.Server.MaxHeaderBytes < 0 {
		return fmt.Errorf("negative max header bytes: %d", c.Server.MaxHeaderBytes)
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("negative shutdown timeout: %v", c.Server.ShutdownTimeout)
	}

	// LLM validation
	if c.LLM.Provider == "" {
		return fmt.Errorf("empty LLM provider")
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("empty LLM model")
	}
	if c.LLM.Timeout < 0 {
		return fmt.Errorf("negative LLM timeout: %v", c.LLM.Timeout)
	}
	if c.LLM.MaxHistoryMessages < 0 {
		return fmt.Errorf("negative max history messages: %d", c.LLM.MaxHistoryMessages)
	}
	if c.LLM.MaxContextTokens < 0 {
		return fmt.Errorf("negative max context tokens: %d", c.LLM.MaxContextTokens)
	}

	if err := c.Prompts.Validate(); err != nil {
		return err
	}

	// Logging validation
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		// Valid levels
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "text":
		// Valid formats
	default:
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	if c.Formatting.MaxChunkLength <= 0 {
		return fmt.Errorf("max chunk length must be positive: %d", c.Formatting.MaxChunkLength)
	}

	// Cache validation
	if c.Cache.Enable {
		switch c.Cache.Type {
		case "memory":
			if c.Cache.MaxSize <= 0 {
				return fmt.Errorf("memory cache needs a positive max size: %d", c.Cache.MaxSize)
			}
		case "redis":
			if c.Cache.Redis == nil || c.Cache.Redis.Address == "" {
				return fmt.Errorf("redis cache enabled but no address configured")
			}
		default:
			return fmt.Errorf("invalid cache type: %s", c.Cache.Type)
		}
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache TTL must be positive: %v", c.Cache.TTL)
		}
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerMinute <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate limit needs positive requests per minute and burst")
	}

	if c.CircuitBreaker.FailureThreshold == 0 {
		return fmt.Errorf("circuit breaker failure threshold must be positive")
	}

	return nil
}
