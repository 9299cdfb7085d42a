package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-c", "bujo.json", "-a", "http://localhost:8000/api/"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-c", "bujo.json"},
		},
		{
			name:    "equals form",
			args:    []string{"-config=alt.json", "-s", "redis"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-config=alt.json"},
		},
		{
			name:    "double dash matches single dash name",
			args:    []string{"--env-file", "prod.env", "--c=x.json"},
			allowed: []string{"-e", "-env-file", "-c"},
			want:    []string{"--env-file", "prod.env", "--c=x.json"},
		},
		{
			name:    "unknown flags and positionals dropped",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "trailing flag without value",
			args:    []string{"-t"},
			allowed: []string{"-t"},
			want:    []string{"-t"},
		},
		{
			name:    "next flag is not taken as value",
			args:    []string{"-s", "-d", "/tmp/bujo.db"},
			allowed: []string{"-s", "-d"},
			want:    []string{"-s", "-d", "/tmp/bujo.db"},
		},
		{
			name:    "value with leading dashes after equals",
			args:    []string{"-config=--odd.json"},
			allowed: []string{"-config"},
			want:    []string{"-config=--odd.json"},
		},
		{
			name:    "repeats keep their order",
			args:    []string{"-l", "info", "-a", "u", "-l", "debug"},
			allowed: []string{"-l"},
			want:    []string{"-l", "info", "-l", "debug"},
		},
		{
			name:    "empty",
			args:    nil,
			allowed: []string{"-c"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, "/etc/bujo.json", ConfigPath([]string{"-c", "/etc/bujo.json"}))
	assert.Equal(t, "/etc/long.json", ConfigPath([]string{"-a", "x", "-config", "/etc/long.json"}))
	assert.Equal(t, "2.json", ConfigPath([]string{"-c", "1.json", "-config=2.json"}))
	assert.Empty(t, ConfigPath([]string{"-x", "1"}))
	assert.Empty(t, ConfigPath([]string{"-c"}))
}

func TestEnvFilePath(t *testing.T) {
	assert.Equal(t, "prod.env", EnvFilePath([]string{"-e", "prod.env", "-c", "bujo.json"}))
	assert.Equal(t, "x.env", EnvFilePath([]string{"--env-file=x.env"}))
	assert.Empty(t, EnvFilePath([]string{"-c", "bujo.json"}))
}
