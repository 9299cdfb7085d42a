// Package config loads runtime configuration for the journal CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment: BUJO_* variables, optionally from a .env file.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
//	{
//	  "base_url": "http://localhost:8000/api/",
//	  "store": "sqlite",
//	  "database_path": "bujo.db",
//	  "redis_url": "redis://localhost:6379/0",
//	  "request_timeout": "15s",
//	  "log_level": "info",
//	  "log_format": "text",
//	  "log_backend": "slog"
//	}
//
// The base URL is normalised to end with exactly one slash.
package config
