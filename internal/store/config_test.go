package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("{}"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Universe.Preset != "NIFTY100" {
		t.Errorf("expected NIFTY100 preset, got %s", cfg.Universe.Preset)
	}
	if cfg.Movers.DefaultDays != 7 || cfg.Movers.MinDays != 1 || cfg.Movers.MaxDays != 30 {
		t.Errorf("unexpected day range %d/%d/%d", cfg.Movers.DefaultDays, cfg.Movers.MinDays, cfg.Movers.MaxDays)
	}
	if cfg.Movers.TopN != 5 {
		t.Errorf("expected top_n 5, got %d", cfg.Movers.TopN)
	}
	if cfg.News.MaxHeadlines != 6 || cfg.News.DisplayHeadlines != 3 {
		t.Errorf("unexpected headline counts %d/%d", cfg.News.MaxHeadlines, cfg.News.DisplayHeadlines)
	}
	if cfg.LLM.Provider != "GEMINI" || cfg.LLM.Model != "gemini-2.5-pro" {
		t.Errorf("unexpected llm defaults %s/%s", cfg.LLM.Provider, cfg.LLM.Model)
	}
	if cfg.LLM.APIKeyEnv != "GEMINI_API_KEY" {
		t.Errorf("expected GEMINI_API_KEY, got %s", cfg.LLM.APIKeyEnv)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected :8080, got %s", cfg.Server.Addr)
	}
}

func TestParseConfigStaticUniverse(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
universe:
  static: [TCS.NS, INFY.NS]
llm:
  provider: openai
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Universe.Preset != "STATIC" {
		t.Errorf("expected STATIC preset, got %s", cfg.Universe.Preset)
	}
	if cfg.LLM.Provider != "OPENAI" || cfg.LLM.Model != "gpt-4o-mini" {
		t.Errorf("unexpected llm config %s/%s", cfg.LLM.Provider, cfg.LLM.Model)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]string{
		"market provider": "market:\n  provider: BLOOMBERG\n",
		"default days":    "movers:\n  default_days: 45\n",
		"llm provider":    "llm:\n  provider: CLAUDE\n",
		"redis addr":      "cache:\n  backend: REDIS\n",
		"headline counts": "news:\n  max_headlines: 2\n  display_headlines: 3\n",
		"empty static":    "universe:\n  preset: STATIC\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseConfig([]byte(doc)); err == nil {
				t.Errorf("expected validation error for %q", doc)
			} else if !strings.Contains(err.Error(), "config validation failed") {
				t.Errorf("expected wrapped validation error, got %v", err)
			}
		})
	}
}

func TestClampDays(t *testing.T) {
	cfg := Default()
	if got := cfg.ClampDays(0); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
	if got := cfg.ClampDays(99); got != 30 {
		t.Errorf("expected 30, got %d", got)
	}
	if got := cfg.ClampDays(12); got != 12 {
		t.Errorf("expected 12, got %d", got)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("movers:\n  top_n: 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Movers.TopN != 10 {
		t.Errorf("expected top_n 10, got %d", cfg.Movers.TopN)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
