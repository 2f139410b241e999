package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/amishk599/aijobradar/internal/ai"
	"github.com/amishk599/aijobradar/internal/config"
	"github.com/amishk599/aijobradar/internal/filter"
	"github.com/amishk599/aijobradar/internal/firecrawl"
	"github.com/amishk599/aijobradar/internal/gateway"
	"github.com/amishk599/aijobradar/internal/pipeline"
	"github.com/amishk599/aijobradar/internal/ratelimit"
	"github.com/amishk599/aijobradar/internal/retry"
	"github.com/amishk599/aijobradar/internal/store"
)

var (
	cfgPath string
	debug   bool
	logFile string
)

var rootCmd = &cobra.Command{
	Use:   "aijobradar",
	Short: "Search European job platforms for AI/ML roles",
	Long: "aijobradar searches job platforms through Firecrawl, keeps AI/ML roles, " +
		"enriches them with skills, focus areas and visa hints, and prints a report.",
	// Without a subcommand the interactive shell starts.
	RunE:          runShell,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: AIJOBRADAR_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > AIJOBRADAR_CONFIG env var > "./config.yaml".
// Only the implicit default may be missing.
func loadConfig(path string) (*config.Config, error) {
	// A missing .env is normal; real environment variables still apply.
	_ = godotenv.Load()

	optional := false
	if path == "" {
		if env := os.Getenv("AIJOBRADAR_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
			optional = true
		}
	}
	return config.Load(path, optional)
}

func setupLogger(dbg bool, w io.Writer) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel}))
}

// logOutput picks where logs go. quiet is set when the terminal is owned by
// a spinner; logs are then dropped unless --log-file is given.
func logOutput(quiet bool) (io.Writer, func() error, error) {
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return f, f.Close, nil
	}
	if quiet {
		return io.Discard, func() error { return nil }, nil
	}
	return os.Stderr, func() error { return nil }, nil
}

// reportedError marks an error that has already been logged, so main only
// sets the exit code.
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error { return &reportedError{err: err} }

// app holds the wired pipeline and whatever must be closed after it.
type app struct {
	pipeline *pipeline.Pipeline
	closers  []func() error
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
}

// buildApp wires the search gateway, inference adapter and pipeline. Every
// outbound call is rate limited per service and retried on transient errors.
// logger goes into the wired components; startup receives the one-off notices
// about how the app was assembled.
func buildApp(ctx context.Context, cfg *config.Config, observer func(pipeline.StageEvent), logger, startup *slog.Logger) (*app, error) {
	a := &app{}
	limiter := ratelimit.NewServiceLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	policy := retry.Policy{MaxRetries: cfg.Retry.MaxRetries, BaseDelay: cfg.Retry.BaseDelay, Logger: logger}

	var api firecrawl.API = firecrawl.NewClient(cfg.Firecrawl.BaseURL, cfg.Firecrawl.APIKey, &http.Client{Timeout: cfg.Firecrawl.Timeout})
	api = ratelimit.NewSearchClient(api, limiter)
	api = retry.NewSearchClient(api, policy)

	var pages store.PageCache
	sqlCache, err := store.NewSQLitePageCache()
	if err != nil {
		startup.Warn("page cache unavailable, scraping without it", "error", err)
		pages = store.NewNopPageCache()
	} else {
		pages = sqlCache
		a.closers = append(a.closers, sqlCache.Close)
	}

	gw := gateway.New(api, pages, gateway.Options{
		ResultsPerPlatform: cfg.Firecrawl.ResultsPerPlatform,
		Workers:            cfg.Pipeline.Workers,
		SampleFallback:     cfg.Search.Fallback == config.FallbackSamples,
	}, logger)

	provider, closeProvider, err := setupProvider(ctx, cfg, startup)
	if err != nil {
		a.Close()
		return nil, err
	}
	if closeProvider != nil {
		a.closers = append(a.closers, closeProvider)
	}
	provider = ratelimit.NewProvider(provider, limiter)
	provider = retry.NewProvider(provider, policy)

	a.pipeline = pipeline.New(
		gw,
		gw,
		ai.NewAnalyzer(provider, ai.Prompts, logger),
		filter.NewAITitleFilter(),
		pipeline.Options{Workers: cfg.Pipeline.Workers, Observer: observer},
		logger,
	)
	return a, nil
}

// setupProvider returns the configured inference backend, or the no-op
// provider when no key is set.
func setupProvider(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ai.LLMProvider, func() error, error) {
	if !cfg.AI.Enabled() {
		logger.Warn("no AI api key configured, inference disabled; stages use their fallbacks", "provider", cfg.AI.Provider)
		return ai.NewNopProvider(), nil, nil
	}

	switch cfg.AI.Provider {
	case "gemini":
		p, err := ai.NewGeminiProvider(ctx, cfg.AI.APIKey, cfg.AI.Model, cfg.AI.Temperature)
		if err != nil {
			return nil, nil, fmt.Errorf("create gemini provider: %w", err)
		}
		logger.Info("using gemini provider", "model", cfg.AI.Model)
		return p, p.Close, nil
	default:
		logger.Info("using openai provider", "model", cfg.AI.Model, "base_url", cfg.AI.BaseURL)
		httpClient := &http.Client{Timeout: cfg.AI.Timeout}
		return ai.NewOpenAIProvider(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model, cfg.AI.Temperature, httpClient), nil, nil
	}
}
