package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

const (
	FetcherHTTP    = "http"
	FetcherBrowser = "browser"
)

// KnownFormats are the export formats the crawler can produce.
var KnownFormats = []string{"json", "csv", "xlsx"}

type Config struct {
	// BaseURL maps to BASE_URL. Every page path is resolved against it.
	BaseURL string `envconfig:"BASE_URL" default:"https://quotes.toscrape.com"`

	// StartPath maps to START_PATH.
	StartPath string `envconfig:"START_PATH" default:"/"`

	OutputDir string   `envconfig:"OUTPUT_DIR" default:"."`
	Formats   []string `envconfig:"FORMATS" default:"json,csv,xlsx"`

	UserAgent    string        `envconfig:"USER_AGENT" default:"quote-crawler/1.0"`
	FetchTimeout time.Duration `envconfig:"FETCH_TIMEOUT" default:"10s"`
	Fetcher      string        `envconfig:"FETCHER" default:"http"`

	// MaxPages caps the traversal. Zero means follow every next link.
	MaxPages int `envconfig:"MAX_PAGES" default:"0"`

	// RateLimit is the minimum gap between requests to one host. Zero disables it.
	RateLimit     time.Duration `envconfig:"RATE_LIMIT" default:"0"`
	RespectRobots bool          `envconfig:"RESPECT_ROBOTS" default:"false"`

	// DatabaseURL maps to DB_URL. The Postgres sink is skipped when empty.
	DatabaseURL string `envconfig:"DB_URL"`
	BatchSize   int    `envconfig:"BATCH_SIZE" default:"20"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load processes environment variables and populates the Config struct.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil {
		if _, statErr := os.Stat(".env"); statErr == nil {
			logrus.WithError(err).Warn(".env file found but could not be loaded")
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("BASE_URL must be an absolute URL, got %q", c.BaseURL)
	}

	if len(c.Formats) == 0 {
		return fmt.Errorf("at least one export format is required")
	}
	for i, f := range c.Formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if !isKnownFormat(f) {
			return fmt.Errorf("unknown export format %q (want one of %s)", f, strings.Join(KnownFormats, ", "))
		}
		c.Formats[i] = f
	}

	switch c.Fetcher {
	case FetcherHTTP, FetcherBrowser:
	default:
		return fmt.Errorf("unknown fetcher %q", c.Fetcher)
	}

	if c.BatchSize <= 0 {
		return fmt.Errorf("BATCH_SIZE must be positive, got %d", c.BatchSize)
	}
	if c.MaxPages < 0 {
		return fmt.Errorf("MAX_PAGES must not be negative, got %d", c.MaxPages)
	}
	return nil
}

func isKnownFormat(f string) bool {
	for _, known := range KnownFormats {
		if f == known {
			return true
		}
	}
	return false
}
