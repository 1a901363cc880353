package store

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Universe struct {
		Preset string   `yaml:"preset"`
		Static []string `yaml:"static"`
		Suffix string   `yaml:"suffix"`
	} `yaml:"universe"`
	Market struct {
		Provider       string `yaml:"provider"`
		Exchange       string `yaml:"exchange"`
		Concurrency    int    `yaml:"concurrency"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		BaseURL        string `yaml:"base_url"`
		MinIntervalMs  int    `yaml:"min_interval_ms"`
	} `yaml:"market"`
	Movers struct {
		DefaultDays       int     `yaml:"default_days"`
		MinDays           int     `yaml:"min_days"`
		MaxDays           int     `yaml:"max_days"`
		TopN              int     `yaml:"top_n"`
		SpikeThresholdPct float64 `yaml:"spike_threshold_pct"`
	} `yaml:"movers"`
	News struct {
		MaxHeadlines     int  `yaml:"max_headlines"`
		DisplayHeadlines int  `yaml:"display_headlines"`
		MinTitleLength   int  `yaml:"min_title_length"`
		RecentDays       int  `yaml:"recent_days"`
		CacheMinutes     int  `yaml:"cache_minutes"`
		ScraperFallback  bool `yaml:"scraper_fallback"`
		RequestDelayMs   int  `yaml:"request_delay_ms"`
		TimeoutSeconds   int  `yaml:"timeout_seconds"`
	} `yaml:"news"`
	LLM struct {
		Provider    string  `yaml:"provider"`
		Model       string  `yaml:"model"`
		APIKeyEnv   string  `yaml:"api_key_env"`
		BaseURL     string  `yaml:"base_url"`
		MaxTokens   int     `yaml:"max_tokens"`
		Temperature float32 `yaml:"temperature"`
	} `yaml:"llm"`
	Cache struct {
		Backend       string `yaml:"backend"`
		RedisAddr     string `yaml:"redis_addr"`
		RedisPassword string `yaml:"redis_password"`
		RedisDB       int    `yaml:"redis_db"`
		TTLMinutes    int    `yaml:"ttl_minutes"`
	} `yaml:"cache"`
	History struct {
		Enabled bool   `yaml:"enabled"`
		DSNEnv  string `yaml:"dsn_env"`
	} `yaml:"history"`
	Notify struct {
		Telegram struct {
			Enabled   bool   `yaml:"enabled"`
			TokenEnv  string `yaml:"token_env"`
			ChatIDEnv string `yaml:"chat_id_env"`
		} `yaml:"telegram"`
	} `yaml:"notify"`
	Schedule struct {
		Enabled     bool   `yaml:"enabled"`
		RefreshCron string `yaml:"refresh_cron"`
		EODCron     string `yaml:"eod_cron"`
		Timezone    string `yaml:"timezone"`
	} `yaml:"schedule"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
}

func (c *Config) Validate() error {
	if c.Universe.Preset != "NIFTY100" && c.Universe.Preset != "STATIC" {
		return fmt.Errorf("invalid universe.preset '%s': must be 'NIFTY100' or 'STATIC'", c.Universe.Preset)
	}
	if c.Universe.Preset == "STATIC" && len(c.Universe.Static) == 0 {
		return errors.New("universe.static cannot be empty when preset is STATIC")
	}
	if c.Market.Provider != "YAHOO" && c.Market.Provider != "KITE" {
		return fmt.Errorf("invalid market.provider '%s': must be 'YAHOO' or 'KITE'", c.Market.Provider)
	}
	if c.Movers.MinDays < 1 || c.Movers.MaxDays < c.Movers.MinDays {
		return fmt.Errorf("movers day range invalid: min %d, max %d", c.Movers.MinDays, c.Movers.MaxDays)
	}
	if c.Movers.DefaultDays < c.Movers.MinDays || c.Movers.DefaultDays > c.Movers.MaxDays {
		return fmt.Errorf("movers.default_days must be between %d-%d, got %d", c.Movers.MinDays, c.Movers.MaxDays, c.Movers.DefaultDays)
	}
	if c.Movers.TopN <= 0 {
		return fmt.Errorf("movers.top_n must be positive, got %d", c.Movers.TopN)
	}
	if c.Movers.SpikeThresholdPct < 0 {
		return fmt.Errorf("movers.spike_threshold_pct cannot be negative, got %.2f", c.Movers.SpikeThresholdPct)
	}
	if c.News.DisplayHeadlines > c.News.MaxHeadlines {
		return fmt.Errorf("news.display_headlines (%d) cannot exceed news.max_headlines (%d)", c.News.DisplayHeadlines, c.News.MaxHeadlines)
	}
	switch c.LLM.Provider {
	case "GEMINI", "OPENAI", "NONE":
	default:
		return fmt.Errorf("llm.provider must be 'GEMINI', 'OPENAI', or 'NONE', got '%s'", c.LLM.Provider)
	}
	if c.Cache.Backend != "MEMORY" && c.Cache.Backend != "REDIS" {
		return fmt.Errorf("cache.backend must be 'MEMORY' or 'REDIS', got '%s'", c.Cache.Backend)
	}
	if c.Cache.Backend == "REDIS" && c.Cache.RedisAddr == "" {
		return errors.New("cache.redis_addr is required for the REDIS backend")
	}
	return nil
}

// ApplyDefaults fills zero values with the dashboard defaults.
func (c *Config) ApplyDefaults() {
	if c.Universe.Preset == "" {
		c.Universe.Preset = "NIFTY100"
		if len(c.Universe.Static) > 0 {
			c.Universe.Preset = "STATIC"
		}
	}
	c.Universe.Preset = strings.ToUpper(c.Universe.Preset)
	if c.Universe.Suffix == "" {
		c.Universe.Suffix = ".NS"
	}

	if c.Market.Provider == "" {
		c.Market.Provider = "YAHOO"
	}
	c.Market.Provider = strings.ToUpper(c.Market.Provider)
	if c.Market.Exchange == "" {
		c.Market.Exchange = "NSE"
	}
	if c.Market.Concurrency == 0 {
		c.Market.Concurrency = 8
	}
	if c.Market.TimeoutSeconds == 0 {
		c.Market.TimeoutSeconds = 15
	}
	if c.Market.MinIntervalMs == 0 {
		c.Market.MinIntervalMs = 100
	}

	if c.Movers.MinDays == 0 {
		c.Movers.MinDays = 1
	}
	if c.Movers.MaxDays == 0 {
		c.Movers.MaxDays = 30
	}
	if c.Movers.DefaultDays == 0 {
		c.Movers.DefaultDays = 7
	}
	if c.Movers.TopN == 0 {
		c.Movers.TopN = 5
	}
	if c.Movers.SpikeThresholdPct == 0 {
		c.Movers.SpikeThresholdPct = 5
	}

	if c.News.MaxHeadlines == 0 {
		c.News.MaxHeadlines = 6
	}
	if c.News.DisplayHeadlines == 0 {
		c.News.DisplayHeadlines = 3
	}
	if c.News.MinTitleLength == 0 {
		c.News.MinTitleLength = 10
	}
	if c.News.RecentDays == 0 {
		c.News.RecentDays = 3
	}
	if c.News.CacheMinutes == 0 {
		c.News.CacheMinutes = 30
	}
	if c.News.RequestDelayMs == 0 {
		c.News.RequestDelayMs = 500
	}
	if c.News.TimeoutSeconds == 0 {
		c.News.TimeoutSeconds = 10
	}

	if c.LLM.Provider == "" {
		c.LLM.Provider = "GEMINI"
	}
	c.LLM.Provider = strings.ToUpper(c.LLM.Provider)
	if c.LLM.Model == "" {
		switch c.LLM.Provider {
		case "OPENAI":
			c.LLM.Model = "gpt-4o-mini"
		default:
			c.LLM.Model = "gemini-2.5-pro"
		}
	}
	if c.LLM.APIKeyEnv == "" {
		c.LLM.APIKeyEnv = c.LLM.Provider + "_API_KEY"
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 512
	}

	if c.Cache.Backend == "" {
		c.Cache.Backend = "MEMORY"
	}
	c.Cache.Backend = strings.ToUpper(c.Cache.Backend)
	if c.Cache.TTLMinutes == 0 {
		c.Cache.TTLMinutes = 15
	}

	if c.History.DSNEnv == "" {
		c.History.DSNEnv = "DATABASE_URL"
	}
	if c.Notify.Telegram.TokenEnv == "" {
		c.Notify.Telegram.TokenEnv = "TELEGRAM_BOT_TOKEN"
	}
	if c.Notify.Telegram.ChatIDEnv == "" {
		c.Notify.Telegram.ChatIDEnv = "TELEGRAM_CHAT_ID"
	}

	if c.Schedule.RefreshCron == "" {
		c.Schedule.RefreshCron = "*/15 9-15 * * 1-5"
	}
	if c.Schedule.EODCron == "" {
		c.Schedule.EODCron = "45 15 * * 1-5"
	}
	if c.Schedule.Timezone == "" {
		c.Schedule.Timezone = "Asia/Kolkata"
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
}

// ClampDays bounds a lookback window to the configured range.
func (c *Config) ClampDays(days int) int {
	if days < c.Movers.MinDays {
		return c.Movers.MinDays
	}
	if days > c.Movers.MaxDays {
		return c.Movers.MaxDays
	}
	return days
}

// Default returns a validated configuration with every default applied.
func Default() *Config {
	var c Config
	c.ApplyDefaults()
	return &c
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(b)
}

func ParseConfig(b []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	c.ApplyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}
