package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/amishk599/aijobradar/internal/model"
)

// Config is the root configuration for aijobradar.
type Config struct {
	Firecrawl FirecrawlConfig
	AI        AIConfig
	Search    SearchConfig
	Pipeline  PipelineConfig
	RateLimit RateLimitConfig
	Retry     RetryConfig
}

// FirecrawlConfig holds the search/scrape service settings. APIKey is the only
// required value in the whole config.
type FirecrawlConfig struct {
	APIKey             string `validate:"required"`
	BaseURL            string `validate:"required,url"`
	Timeout            time.Duration
	ResultsPerPlatform int `validate:"gte=1,lte=50"`
}

// AIConfig selects and configures the inference backend. An empty APIKey
// leaves inference disabled; stages then use their documented fallbacks.
type AIConfig struct {
	Provider    string `validate:"oneof=openai gemini"`
	BaseURL     string // OpenAI-compatible endpoint; ignored for gemini
	Model       string `validate:"required"`
	APIKey      string
	Timeout     time.Duration
	Temperature float32 `validate:"gte=0,lte=2"`
}

// Enabled reports whether an inference backend can be constructed.
func (a AIConfig) Enabled() bool {
	return a.APIKey != ""
}

// Fallback policies for an empty aggregate search result.
const (
	FallbackSamples = "samples" // substitute the fixed sample postings
	FallbackNone    = "none"    // return nothing and log
)

// SearchConfig controls which platforms are searched and what happens when
// every platform comes back empty.
type SearchConfig struct {
	Fallback  string   `validate:"oneof=samples none"`
	Platforms []string // overrides model defaults when non-empty
}

// PipelineConfig bounds parallel work inside a stage.
type PipelineConfig struct {
	Workers int `validate:"gte=1,lte=32"`
}

// RateLimitConfig is shared by all outbound calls to one service.
type RateLimitConfig struct {
	RequestsPerSecond float64 `validate:"gt=0"`
	Burst             int     `validate:"gte=1"`
}

// RetryConfig controls retries of transient HTTP failures per external call.
type RetryConfig struct {
	MaxRetries int `validate:"gte=0,lte=5"`
	BaseDelay  time.Duration
}

const (
	defaultFirecrawlBaseURL = "https://api.firecrawl.dev"
	defaultOpenAIBaseURL    = "https://api.openai.com/v1"
	defaultOpenAIModel      = "gpt-4o"
	defaultGeminiModel      = "gemini-1.5-flash"
)

// rawConfig is used for YAML unmarshaling (snake_case fields and duration as string).
type rawConfig struct {
	Firecrawl rawFirecrawlConfig `yaml:"firecrawl"`
	AI        rawAIConfig        `yaml:"ai"`
	Search    rawSearchConfig    `yaml:"search"`
	Pipeline  rawPipelineConfig  `yaml:"pipeline"`
	RateLimit rawRateLimitConfig `yaml:"rate_limit"`
	Retry     rawRetryConfig     `yaml:"retry"`
}

type rawFirecrawlConfig struct {
	APIKey             string `yaml:"api_key"`
	BaseURL            string `yaml:"base_url"`
	Timeout            string `yaml:"timeout"`
	ResultsPerPlatform int    `yaml:"results_per_platform"`
}

type rawAIConfig struct {
	Provider    string   `yaml:"provider"`
	BaseURL     string   `yaml:"base_url"`
	Model       string   `yaml:"model"`
	APIKey      string   `yaml:"api_key"`
	Timeout     string   `yaml:"timeout"`
	Temperature *float32 `yaml:"temperature"`
}

type rawSearchConfig struct {
	Fallback  string   `yaml:"fallback"`
	Platforms []string `yaml:"platforms"`
}

type rawPipelineConfig struct {
	Workers int `yaml:"workers"`
}

type rawRateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

type rawRetryConfig struct {
	MaxRetries *int   `yaml:"max_retries"`
	BaseDelay  string `yaml:"base_delay"`
}

// Load reads the YAML config at path, applies defaults and environment
// overrides, validates it, and returns Config. When optional is true a missing
// file is not an error and configuration comes from the environment alone.
func Load(path string, optional bool) (*Config, error) {
	var raw rawConfig

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		// Expand environment variables
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case optional && errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	applyEnv(&raw)

	cfg, err := build(raw)
	if err != nil {
		return nil, err
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv lets well-known credential variables fill in values the file left empty.
func applyEnv(raw *rawConfig) {
	if raw.Firecrawl.APIKey == "" {
		raw.Firecrawl.APIKey = os.Getenv("FIRECRAWL_API_KEY")
	}
	if raw.AI.APIKey == "" {
		switch raw.AI.Provider {
		case "gemini":
			raw.AI.APIKey = os.Getenv("GEMINI_API_KEY")
		default:
			raw.AI.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}
}

func build(raw rawConfig) (*Config, error) {
	fcTimeout, err := parseDuration("firecrawl.timeout", raw.Firecrawl.Timeout, 60*time.Second)
	if err != nil {
		return nil, err
	}
	aiTimeout, err := parseDuration("ai.timeout", raw.AI.Timeout, 30*time.Second)
	if err != nil {
		return nil, err
	}
	baseDelay, err := parseDuration("retry.base_delay", raw.Retry.BaseDelay, 2*time.Second)
	if err != nil {
		return nil, err
	}

	fcBaseURL := raw.Firecrawl.BaseURL
	if fcBaseURL == "" {
		fcBaseURL = defaultFirecrawlBaseURL
	}
	perPlatform := raw.Firecrawl.ResultsPerPlatform
	if perPlatform == 0 {
		perPlatform = 5
	}

	provider := raw.AI.Provider
	if provider == "" {
		provider = "openai"
	}
	aiModel := raw.AI.Model
	if aiModel == "" {
		aiModel = defaultOpenAIModel
		if provider == "gemini" {
			aiModel = defaultGeminiModel
		}
	}
	aiBaseURL := raw.AI.BaseURL
	if aiBaseURL == "" {
		aiBaseURL = defaultOpenAIBaseURL
	}
	temperature := float32(0.1)
	if raw.AI.Temperature != nil {
		temperature = *raw.AI.Temperature
	}

	fallback := raw.Search.Fallback
	if fallback == "" {
		fallback = FallbackSamples
	}

	workers := raw.Pipeline.Workers
	if workers == 0 {
		workers = 4
	}

	rps := raw.RateLimit.RequestsPerSecond
	if rps == 0 {
		rps = 2
	}
	burst := raw.RateLimit.Burst
	if burst == 0 {
		burst = 2
	}

	maxRetries := 2
	if raw.Retry.MaxRetries != nil {
		maxRetries = *raw.Retry.MaxRetries
	}

	return &Config{
		Firecrawl: FirecrawlConfig{
			APIKey:             raw.Firecrawl.APIKey,
			BaseURL:            fcBaseURL,
			Timeout:            fcTimeout,
			ResultsPerPlatform: perPlatform,
		},
		AI: AIConfig{
			Provider:    provider,
			BaseURL:     aiBaseURL,
			Model:       aiModel,
			APIKey:      raw.AI.APIKey,
			Timeout:     aiTimeout,
			Temperature: temperature,
		},
		Search: SearchConfig{
			Fallback:  fallback,
			Platforms: raw.Search.Platforms,
		},
		Pipeline:  PipelineConfig{Workers: workers},
		RateLimit: RateLimitConfig{RequestsPerSecond: rps, Burst: burst},
		Retry:     RetryConfig{MaxRetries: maxRetries, BaseDelay: baseDelay},
	}, nil
}

func parseDuration(field, value string, def time.Duration) (time.Duration, error) {
	if value == "" {
		return def, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", field, value, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %v", field, d)
	}
	return d, nil
}

var structValidator = validator.New()

func validate(cfg *Config) error {
	if cfg.Firecrawl.APIKey == "" {
		return fmt.Errorf("config: %w", model.ErrMissingCredential)
	}
	if err := structValidator.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config: %s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// ApplyPlatforms returns params with the configured platform list applied.
func (c *Config) ApplyPlatforms(params model.SearchParameters) model.SearchParameters {
	if len(c.Search.Platforms) > 0 {
		params.Platforms = append([]string(nil), c.Search.Platforms...)
	}
	return params
}
