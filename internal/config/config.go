package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LocaleProfile is one region/language pair the feed URL can target.
type LocaleProfile struct {
	Region string `yaml:"region" json:"region"`
	Lang   string `yaml:"lang" json:"lang"`
}

// LocalesFile is the YAML config structure
// locales:
//   - region: US
//     lang: en
type LocalesFile struct {
	Locales []LocaleProfile `yaml:"locales"`
}

type Config struct {
	// Server settings
	ListenAddr string
	Debug      bool

	// Feed query defaults
	DefaultQuery    string
	DefaultDaysBack int
	DefaultMaxItems int
	Region          string
	Lang            string

	// Fetcher settings
	RequestTimeout time.Duration
	RetryAttempts  int
	RetryDelay     time.Duration

	// Outbound budget (requests per window, 0 = unlimited)
	FeedRequestBudget int
	FeedBudgetWindow  time.Duration

	// Cache settings
	CacheTTL time.Duration

	// Optional locale profiles
	LocalesPath string
	Locales     []LocaleProfile
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		ListenAddr:        ":8080",
		DefaultQuery:      "AI",
		DefaultDaysBack:   7,
		DefaultMaxItems:   15,
		Region:            "US",
		Lang:              "en",
		RequestTimeout:    10 * time.Second,
		RetryAttempts:     3,
		RetryDelay:        500 * time.Millisecond,
		FeedRequestBudget: 0,
		FeedBudgetWindow:  time.Minute,
		CacheTTL:          5 * time.Minute,
	}

	cfg.ListenAddr = getEnvOrDefault("LISTEN_ADDR", cfg.ListenAddr)
	cfg.DefaultQuery = getEnvOrDefault("DEFAULT_QUERY", cfg.DefaultQuery)
	cfg.Region = getEnvOrDefault("FEED_REGION", cfg.Region)
	cfg.Lang = getEnvOrDefault("FEED_LANG", cfg.Lang)
	cfg.DefaultDaysBack = getEnvIntOrDefault("DEFAULT_DAYS_BACK", cfg.DefaultDaysBack)
	cfg.DefaultMaxItems = getEnvIntOrDefault("DEFAULT_MAX_ITEMS", cfg.DefaultMaxItems)
	cfg.RetryAttempts = getEnvIntOrDefault("RETRY_ATTEMPTS", cfg.RetryAttempts)
	cfg.FeedRequestBudget = getEnvIntOrDefault("FEED_REQUEST_BUDGET", cfg.FeedRequestBudget)

	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RequestTimeout = time.Duration(val) * time.Second
		}
	}
	if v := os.Getenv("RETRY_DELAY_MS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RetryDelay = time.Duration(val) * time.Millisecond
		}
	}
	if v := os.Getenv("CACHE_TTL_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.CacheTTL = time.Duration(val) * time.Second
		}
	}

	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	cfg.LocalesPath = os.Getenv("LOCALES_CONFIG_PATH")
	if cfg.LocalesPath != "" {
		locales, err := LoadLocales(cfg.LocalesPath)
		if err != nil {
			return nil, fmt.Errorf("loading locales config: %w", err)
		}
		cfg.Locales = locales
	}

	return cfg, cfg.Validate()
}

// LoadLocales reads the region/language profile list from a YAML file.
func LoadLocales(path string) ([]LocaleProfile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var file LocalesFile
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&file); err != nil {
		return nil, err
	}
	return file.Locales, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.DefaultDaysBack < 1 {
		return fmt.Errorf("DEFAULT_DAYS_BACK must be at least 1")
	}
	if c.DefaultMaxItems < 1 {
		return fmt.Errorf("DEFAULT_MAX_ITEMS must be at least 1")
	}
	if c.RetryAttempts < 1 {
		return fmt.Errorf("RETRY_ATTEMPTS must be at least 1")
	}
	if c.Region == "" || c.Lang == "" {
		return fmt.Errorf("FEED_REGION and FEED_LANG must not be empty")
	}
	return nil
}
