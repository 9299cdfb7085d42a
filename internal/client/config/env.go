package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/dmitrijs2005/bujo/internal/flagx"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// EnvFile is loaded into the process environment, when present, before
// BUJO_* variables are read. -e or -env-file names another file. Variables
// already set are not overridden.
var EnvFile = ".env"

type envConfig struct {
	BaseURL        string        `env:"BUJO_BASE_URL" env-description:"root of the REST API"`
	Store          string        `env:"BUJO_STORE" env-description:"session store: sqlite, redis or memory"`
	DatabasePath   string        `env:"BUJO_DATABASE_PATH" env-description:"SQLite file for the session store"`
	RedisURL       string        `env:"BUJO_REDIS_URL" env-description:"redis:// URL for the session store"`
	RequestTimeout time.Duration `env:"BUJO_REQUEST_TIMEOUT" env-description:"HTTP request timeout"`
	LogLevel       string        `env:"BUJO_LOG_LEVEL" env-description:"debug, info, warn or error"`
	LogFormat      string        `env:"BUJO_LOG_FORMAT" env-description:"text or json"`
	LogBackend     string        `env:"BUJO_LOG_BACKEND" env-description:"slog or logrus"`
}

// parseEnv overlays cfg with BUJO_* environment variables. Malformed values
// panic, as with the other sources.
func parseEnv(cfg *Config) {
	file := EnvFile
	if p := flagx.EnvFilePath(os.Args[1:]); p != "" {
		file = p
	}
	if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	var ec envConfig
	if err := cleanenv.ReadEnv(&ec); err != nil {
		panic(err)
	}

	setString(&cfg.BaseURL, ec.BaseURL)
	setString(&cfg.Store, ec.Store)
	setString(&cfg.DatabasePath, ec.DatabasePath)
	setString(&cfg.RedisURL, ec.RedisURL)
	setString(&cfg.LogLevel, ec.LogLevel)
	setString(&cfg.LogFormat, ec.LogFormat)
	setString(&cfg.LogBackend, ec.LogBackend)
	if ec.RequestTimeout > 0 {
		cfg.RequestTimeout = ec.RequestTimeout
	}
}

// EnvUsage describes the supported environment variables.
func EnvUsage() string {
	desc, err := cleanenv.GetDescription(&envConfig{}, nil)
	if err != nil {
		return ""
	}
	return desc
}
