package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "data/exports", cfg.Paths.ExportsDir)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "zero port rejected",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "invalid server port",
		},
		{
			name:    "port out of range rejected",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "invalid server port",
		},
		{
			name:    "zero read timeout rejected",
			mutate:  func(c *Config) { c.Server.ReadTimeout = 0 },
			wantErr: "read timeout",
		},
		{
			name:    "enabled rate limit needs positive rps",
			mutate:  func(c *Config) { c.RateLimit.RPS = 0 },
			wantErr: "rate limit rps",
		},
		{
			name:   "disabled rate limit allows zero rps",
			mutate: func(c *Config) { c.RateLimit.Enabled = false; c.RateLimit.RPS = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidate_NormalizesFormat(t *testing.T) {
	cfg := Default()
	cfg.Logging.Format = "text"

	require.NoError(t, cfg.validate())
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/config.yaml"
	content := []byte("server:\n  port: 9090\nrate_limit:\n  enabled: false\n")
	require.NoError(t, os.WriteFile(path, content, 0644))

	cfg, err := loadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestMergeConfigs_EnvWins(t *testing.T) {
	fileCfg := Config{}
	fileCfg.Server.Port = 9090
	envCfg := Config{}
	envCfg.Server.Port = 7070

	merged := mergeConfigs(fileCfg, envCfg)
	assert.Equal(t, 7070, merged.Server.Port)
}

func TestMergeConfigs_FileFillsGaps(t *testing.T) {
	fileCfg := Config{}
	fileCfg.Server.Port = 9090
	fileCfg.Logging.Level = "debug"

	merged := mergeConfigs(fileCfg, Config{})
	assert.Equal(t, 9090, merged.Server.Port)
	assert.Equal(t, "debug", merged.Logging.Level)
}
