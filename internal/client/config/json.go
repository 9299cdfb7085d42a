package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/bujo/internal/flagx"
	"github.com/dmitrijs2005/bujo/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// RequestTimeout is a timex.Duration so the file may hold "10s" or an
// integer number of nanoseconds.
type JsonConfig struct {
	BaseURL        string         `json:"base_url"`
	Store          string         `json:"store"`
	DatabasePath   string         `json:"database_path"`
	RedisURL       string         `json:"redis_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	LogLevel       string         `json:"log_level"`
	LogFormat      string         `json:"log_format"`
	LogBackend     string         `json:"log_backend"`
}

// parseJson overlays cfg with the file named by -c or -config. Keys missing
// from the file keep their current value. Read and decode errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.BaseURL, jc.BaseURL)
	setString(&cfg.Store, jc.Store)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.RedisURL, jc.RedisURL)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.LogBackend, jc.LogBackend)
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
