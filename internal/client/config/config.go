package config

import (
	"strings"
	"time"
)

// Config holds runtime settings for the journal CLI.
//
// Fields:
//   - BaseURL: root of the REST API, always ending in exactly one slash.
//   - Store: where the session is kept: sqlite, redis or memory.
//   - DatabasePath: SQLite file used when Store is sqlite.
//   - RedisURL: redis:// URL used when Store is redis.
//   - RequestTimeout: upper bound for a single HTTP exchange.
//   - LogLevel, LogFormat, LogBackend: see logging.Options.
type Config struct {
	BaseURL        string
	Store          string
	DatabasePath   string
	RedisURL       string
	RequestTimeout time.Duration
	LogLevel       string
	LogFormat      string
	LogBackend     string
}

const DefaultBaseURL = "http://localhost:8000/api/"

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = DefaultBaseURL
	c.Store = "sqlite"
	c.DatabasePath = "bujo.db"
	c.RedisURL = "redis://localhost:6379/0"
	c.RequestTimeout = 15 * time.Second
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.LogBackend = "slog"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	cfg.BaseURL = NormalizeBaseURL(cfg.BaseURL)
	return cfg
}

// NormalizeBaseURL trims surrounding space and makes u end with exactly one
// slash. An empty value yields DefaultBaseURL.
func NormalizeBaseURL(u string) string {
	u = strings.TrimRight(strings.TrimSpace(u), "/")
	if u == "" {
		return DefaultBaseURL
	}
	return u + "/"
}
