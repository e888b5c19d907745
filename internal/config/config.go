package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds everything the app reads from the environment (or a .env file).
type Config struct {
	ListingsAPIURL      string        `mapstructure:"LISTINGS_API_URL"`
	RequestTimeout      time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	ImageBasePath       string        `mapstructure:"IMAGE_BASE_PATH"`
	PlaceholderImageURL string        `mapstructure:"PLACEHOLDER_IMAGE_URL"`
	Theme               string        `mapstructure:"THEME"`
	LogLevel            string        `mapstructure:"LOG_LEVEL"`
	LogFormat           string        `mapstructure:"LOG_FORMAT"`
	LogOutputFile       string        `mapstructure:"LOG_OUTPUT_FILE"`
}

var defaults = map[string]any{
	"LISTINGS_API_URL":      "http://127.0.0.1:8000",
	"REQUEST_TIMEOUT":       "10s",
	"IMAGE_BASE_PATH":       "/path/to/image/",
	"PLACEHOLDER_IMAGE_URL": "/path/to/image/placeholder.png",
	"THEME":                 "classic",
	"LOG_LEVEL":             "info",
	"LOG_FORMAT":            "json",
	"LOG_OUTPUT_FILE":       "reservas.log",
}

// Load reads an optional .env file from the working directory, then the
// process environment, on top of the defaults above.
func Load() (*Config, error) {
	// A missing .env is fine; real env vars still apply.
	_ = godotenv.Load()
	return FromViper(viper.New())
}

// FromViper unmarshals a Config out of v after registering the defaults.
func FromViper(v *viper.Viper) (*Config, error) {
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ListingsAPIURL = strings.TrimRight(strings.TrimSpace(cfg.ListingsAPIURL), "/")
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the client cannot work with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ListingsAPIURL)
	if err != nil {
		return fmt.Errorf("LISTINGS_API_URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("LISTINGS_API_URL: want an absolute http(s) url, got %q", c.ListingsAPIURL)
	}
	if c.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT must be positive")
	}
	return nil
}
