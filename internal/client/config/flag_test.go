package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name:        "all flags",
			args:        []string{"cmd", "-a", "http://api:8000/api", "-s", "redis", "-d", "x.db", "-r", "redis://r:6379/1", "-t", "5s", "-l", "debug"},
			expectPanic: false,
			expected: &Config{
				BaseURL:        "http://api:8000/api",
				Store:          "redis",
				DatabasePath:   "x.db",
				RedisURL:       "redis://r:6379/1",
				RequestTimeout: 5 * time.Second,
				LogLevel:       "debug",
			},
		},
		{
			name:        "foreign flags are ignored",
			args:        []string{"cmd", "-c", "conf.json", "-a", "http://h/", "-x", "1"},
			expectPanic: false,
			expected:    &Config{BaseURL: "http://h/"},
		},
		{name: "incorrect timeout", args: []string{"cmd", "-t", "abc"}, expectPanic: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
