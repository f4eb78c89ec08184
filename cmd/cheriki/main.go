package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/teilomillet/gollm"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cheriki-dz/cheriki/config"
	cherikierrors "github.com/cheriki-dz/cheriki/errors"
	"github.com/cheriki-dz/cheriki/server"
	"github.com/cheriki-dz/cheriki/server/cache"
	"github.com/cheriki-dz/cheriki/server/handlers"
	"github.com/cheriki-dz/cheriki/server/metrics"
	"github.com/cheriki-dz/cheriki/server/processing"
	"github.com/cheriki-dz/cheriki/server/provider"
	"github.com/cheriki-dz/cheriki/server/routing"
	"github.com/cheriki-dz/cheriki/server/validation"
)

var (
	configFile = flag.String("config", "cheriki.yaml", "Path to configuration file")
	envFile    = flag.String("env", ".env", "Optional dotenv file loaded before the configuration")
	validate   = flag.Bool("validate", false, "Validate configuration and exit")
	version    = flag.Bool("version", false, "Print version and exit")
)

const Version = "v0.1.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("cheriki %s\n", Version)
		os.Exit(0)
	}

	// Values from the environment win over the dotenv file.
	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Failed to load %s: %v\n", *envFile, err)
		os.Exit(1)
	}

	cfg, err := config.LoadFile(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *validate {
		fmt.Println("Configuration is valid")
		os.Exit(0)
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Critical error: Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		// Sync fails on stderr consoles; nothing useful to do about it.
		_ = logger.Sync()
	}()
	cherikierrors.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configFile, logger); err != nil {
		logger.Fatal("Server startup or runtime error", zap.Error(err))
	}
}

// run wires the gateway and serves until ctx is done.
func run(ctx context.Context, configPath string, logger *zap.Logger) error {
	watcher, err := config.NewConfigWatcher(configPath, logger)
	if err != nil {
		return err
	}
	defer watcher.Close()
	cfg := watcher.GetCurrentConfig()

	m := metrics.NewMetrics()

	responses, err := cache.New(cfg.Cache)
	if err != nil {
		return fmt.Errorf("create cache: %w", err)
	}
	if responses != nil {
		defer responses.Close()
	}

	llm, err := newLLM(cfg.LLM)
	if err != nil {
		return err
	}

	prov := provider.New(cfg.LLM.Provider, llm, cfg.CircuitBreaker,
		provider.WithCache(responses),
		provider.WithMetrics(m),
		provider.WithTimeout(cfg.LLM.Timeout),
		provider.WithLogger(logger.Named("provider")),
	)

	proc, err := processing.NewChatProcessor(cfg, prov,
		processing.WithTokenCounter(newTokenCounter(cfg.LLM.Model, logger)),
		processing.WithMetrics(m),
		processing.WithLogger(logger.Named("processing")),
	)
	if err != nil {
		return fmt.Errorf("create chat processor: %w", err)
	}
	proc.Watch(ctx, watcher)

	router := routing.NewRouter(cfg, handlers.New(proc, prov, logger.Named("handlers")), m, logger.Named("http"))
	srv := server.NewServer(cfg.Server, router, logger)

	logger.Info("Starting cheriki",
		zap.String("version", Version),
		zap.Int("port", cfg.Server.Port),
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model),
		zap.Bool("cache", responses != nil),
	)
	return srv.Start(ctx)
}

// newLogger builds a production logger for json output and a development
// logger for text.
func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var zc zap.Config
	switch cfg.Format {
	case "text":
		zc = zap.NewDevelopmentConfig()
	case "json", "":
		zc = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.Format)
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

func newLLM(cfg config.LLMConfig) (gollm.LLM, error) {
	llm, err := gollm.NewLLM(
		gollm.SetProvider(cfg.Provider),
		gollm.SetModel(cfg.Model),
		gollm.SetAPIKey(cfg.APIKey),
	)
	if err != nil {
		return nil, fmt.Errorf("create LLM: %w", err)
	}

	if cfg.Endpoint != "" {
		if cfg.Provider == "ollama" {
			if err := llm.SetOllamaEndpoint(cfg.Endpoint); err != nil {
				return nil, fmt.Errorf("set ollama endpoint: %w", err)
			}
		} else {
			llm.SetEndpoint(cfg.Endpoint)
		}
	}
	for key, value := range cfg.Options {
		llm.SetOption(key, value)
	}
	return llm, nil
}

// newTokenCounter prefers the model's tiktoken encoding. The encodings are
// downloaded on first use, so offline hosts fall back to an estimate.
func newTokenCounter(model string, logger *zap.Logger) *validation.TokenCounter {
	tc, err := validation.NewTokenCounter(model)
	if err != nil {
		logger.Warn("tiktoken unavailable, estimating token counts", zap.Error(err))
		return validation.NewTokenCounterWith(validation.ApproxTokenizer{})
	}
	return tc
}
