package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withEnvFile(t *testing.T, path string) {
	t.Helper()
	orig := EnvFile
	EnvFile = path
	t.Cleanup(func() { EnvFile = orig })
}

func TestParseEnv_Variables(t *testing.T) {
	withEnvFile(t, filepath.Join(t.TempDir(), "absent.env"))
	t.Setenv("BUJO_BASE_URL", "http://env-host/api")
	t.Setenv("BUJO_STORE", "redis")
	t.Setenv("BUJO_REQUEST_TIMEOUT", "3s")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "http://env-host/api", cfg.BaseURL)
	assert.Equal(t, "redis", cfg.Store)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "bujo.db", cfg.DatabasePath)
}

func TestParseEnv_DotEnvFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(p, []byte("BUJO_LOG_LEVEL=debug\nBUJO_LOG_FORMAT=json\n"), 0o600))
	withEnvFile(t, p)
	// registered so t.Setenv restores them after godotenv sets them
	t.Setenv("BUJO_LOG_LEVEL", "")
	t.Setenv("BUJO_LOG_FORMAT", "")
	require.NoError(t, os.Unsetenv("BUJO_LOG_LEVEL"))
	require.NoError(t, os.Unsetenv("BUJO_LOG_FORMAT"))

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestParseEnv_BadDuration(t *testing.T) {
	withEnvFile(t, filepath.Join(t.TempDir(), "absent.env"))
	t.Setenv("BUJO_REQUEST_TIMEOUT", "soon")

	require.Panics(t, func() { parseEnv(&Config{}) })
}

func TestEnvUsage(t *testing.T) {
	u := EnvUsage()
	assert.Contains(t, u, "BUJO_BASE_URL")
	assert.Contains(t, u, "BUJO_REDIS_URL")
}

func TestParseEnv_EnvFileFlag(t *testing.T) {
	withEnvFile(t, filepath.Join(t.TempDir(), "absent.env"))
	p := filepath.Join(t.TempDir(), "prod.env")
	require.NoError(t, os.WriteFile(p, []byte("BUJO_STORE=memory\n"), 0o600))
	t.Setenv("BUJO_STORE", "")
	require.NoError(t, os.Unsetenv("BUJO_STORE"))

	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"bujo", "-e", p}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "memory", cfg.Store)
}
