package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/amishk599/aijobradar/internal/model"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	t.Setenv("FIRECRAWL_API_KEY", "")
	path := writeConfig(t, `
firecrawl:
  api_key: fc-test
  timeout: 20s
ai:
  provider: openai
  model: gpt-4o-mini
  api_key: sk-test
search:
  fallback: none
  platforms: [LinkedIn, Xing]
pipeline:
  workers: 2
retry:
  max_retries: 0
`)

	cfg, err := Load(path, false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Firecrawl.APIKey != "fc-test" {
		t.Errorf("Firecrawl.APIKey = %q", cfg.Firecrawl.APIKey)
	}
	if cfg.Firecrawl.Timeout != 20*time.Second {
		t.Errorf("Firecrawl.Timeout = %v, want 20s", cfg.Firecrawl.Timeout)
	}
	if cfg.Firecrawl.ResultsPerPlatform != 5 {
		t.Errorf("ResultsPerPlatform = %d, want default 5", cfg.Firecrawl.ResultsPerPlatform)
	}
	if cfg.AI.Model != "gpt-4o-mini" || !cfg.AI.Enabled() {
		t.Errorf("AI = %+v", cfg.AI)
	}
	if cfg.Search.Fallback != FallbackNone {
		t.Errorf("Search.Fallback = %q, want none", cfg.Search.Fallback)
	}
	if cfg.Pipeline.Workers != 2 {
		t.Errorf("Pipeline.Workers = %d, want 2", cfg.Pipeline.Workers)
	}
	if cfg.Retry.MaxRetries != 0 {
		t.Errorf("Retry.MaxRetries = %d, want explicit 0", cfg.Retry.MaxRetries)
	}

	params := cfg.ApplyPlatforms(model.DefaultSearchParameters())
	if len(params.Platforms) != 2 || params.Platforms[1] != "Xing" {
		t.Errorf("Platforms = %v", params.Platforms)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	path := writeConfig(t, "firecrawl:\n  api_key: fc-test\n")

	cfg, err := Load(path, false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Firecrawl.BaseURL != defaultFirecrawlBaseURL {
		t.Errorf("BaseURL = %q", cfg.Firecrawl.BaseURL)
	}
	if cfg.AI.Provider != "openai" || cfg.AI.Model != defaultOpenAIModel {
		t.Errorf("AI = %+v", cfg.AI)
	}
	if cfg.AI.Enabled() {
		t.Error("AI should be disabled without a key")
	}
	if cfg.Search.Fallback != FallbackSamples {
		t.Errorf("Fallback = %q, want samples", cfg.Search.Fallback)
	}
	if cfg.Pipeline.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Pipeline.Workers)
	}
	if cfg.Retry.MaxRetries != 2 || cfg.Retry.BaseDelay != 2*time.Second {
		t.Errorf("Retry = %+v", cfg.Retry)
	}

	params := cfg.ApplyPlatforms(model.DefaultSearchParameters())
	if len(params.Platforms) != 2 || params.Platforms[0] != "LinkedIn" {
		t.Errorf("Platforms = %v, want model defaults", params.Platforms)
	}
}

func TestLoad_MissingCredential(t *testing.T) {
	t.Setenv("FIRECRAWL_API_KEY", "")
	path := writeConfig(t, "ai:\n  provider: openai\n")

	_, err := Load(path, false)
	if !errors.Is(err, model.ErrMissingCredential) {
		t.Fatalf("Load: err = %v, want ErrMissingCredential", err)
	}
}

func TestLoad_CredentialFromEnv(t *testing.T) {
	t.Setenv("FIRECRAWL_API_KEY", "fc-env")
	t.Setenv("GEMINI_API_KEY", "gm-env")
	path := writeConfig(t, "ai:\n  provider: gemini\n")

	cfg, err := Load(path, false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Firecrawl.APIKey != "fc-env" {
		t.Errorf("Firecrawl.APIKey = %q, want fc-env", cfg.Firecrawl.APIKey)
	}
	if cfg.AI.APIKey != "gm-env" || cfg.AI.Model != defaultGeminiModel {
		t.Errorf("AI = %+v", cfg.AI)
	}
}

func TestLoad_ExpandsEnvInFile(t *testing.T) {
	t.Setenv("MY_FC_KEY", "fc-expanded")
	path := writeConfig(t, "firecrawl:\n  api_key: ${MY_FC_KEY}\n")

	cfg, err := Load(path, false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Firecrawl.APIKey != "fc-expanded" {
		t.Errorf("APIKey = %q", cfg.Firecrawl.APIKey)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"), false)
	if err == nil {
		t.Fatal("Load: expected error for missing file")
	}
}

func TestLoad_MissingOptionalFileUsesEnv(t *testing.T) {
	t.Setenv("FIRECRAWL_API_KEY", "fc-env")

	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"), true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Firecrawl.APIKey != "fc-env" {
		t.Errorf("APIKey = %q", cfg.Firecrawl.APIKey)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "firecrawl: [broken")

	_, err := Load(path, false)
	if err == nil {
		t.Fatal("Load: expected error for invalid YAML")
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	path := writeConfig(t, "firecrawl:\n  api_key: k\n  timeout: soon\n")

	_, err := Load(path, false)
	if err == nil {
		t.Fatal("Load: expected error for invalid duration")
	}
}

func TestLoad_RejectsUnknownFallback(t *testing.T) {
	path := writeConfig(t, "firecrawl:\n  api_key: k\nsearch:\n  fallback: sometimes\n")

	_, err := Load(path, false)
	if err == nil {
		t.Fatal("Load: expected validation error for unknown fallback")
	}
}

func TestLoad_RejectsUnknownProvider(t *testing.T) {
	path := writeConfig(t, "firecrawl:\n  api_key: k\nai:\n  provider: llama\n")

	_, err := Load(path, false)
	if err == nil {
		t.Fatal("Load: expected validation error for unknown provider")
	}
}
