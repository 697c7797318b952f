package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	dataDir := t.TempDir()

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), dataDir)
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig().API, cfg.API)
	assert.Equal(t, 3*time.Second, cfg.Scan.Duration)
	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, filepath.Join(dataDir, "redguard.log"), cfg.LogFile(""))
}

func TestLoad_FileOverridesAndDefaultsFillGaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
api:
  base_url: https://contracts.example.com
  retry_count: 5
scan:
  duration: 1500ms
tui:
  theme: gruvbox
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "https://contracts.example.com", cfg.API.BaseURL)
	assert.Equal(t, 5, cfg.API.RetryCount)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, 1500*time.Millisecond, cfg.Scan.Duration)
	assert.Equal(t, 30, cfg.Scan.FPS)
	assert.Equal(t, "gruvbox", cfg.TUI.Theme)
	assert.Equal(t, 44, cfg.TUI.DetailWidth)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [unclosed"), 0o644))

	_, err := Load(path, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults are valid", func(c *Config) {}, ""},
		{"empty data dir", func(c *Config) { c.DataDir = "" }, "data directory cannot be empty"},
		{"empty base url", func(c *Config) { c.API.BaseURL = "" }, "api.base_url: cannot be empty"},
		{"bad scheme", func(c *Config) { c.API.BaseURL = "ftp://host" }, "scheme must be http or https"},
		{"missing host", func(c *Config) { c.API.BaseURL = "http://" }, "missing host"},
		{"negative retries", func(c *Config) { c.API.RetryCount = -1 }, "api.retry_count"},
		{"negative duration", func(c *Config) { c.Scan.Duration = -time.Second }, "scan.duration"},
		{"fps too high", func(c *Config) { c.Scan.FPS = 500 }, "scan.fps"},
		{"unknown theme", func(c *Config) { c.TUI.Theme = "neon" }, "available: gruvbox, redguard, tokyo-night"},
		{"narrow detail panel", func(c *Config) { c.TUI.DetailWidth = 5 }, "tui.detail_width"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.DataDir = t.TempDir()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestScanConfig_FrameInterval(t *testing.T) {
	assert.Equal(t, time.Second/30, ScanConfig{}.FrameInterval())
	assert.Equal(t, time.Second/60, ScanConfig{FPS: 60}.FrameInterval())
}

func TestResolveLogFile(t *testing.T) {
	assert.Equal(t, filepath.Join("/data", "redguard.log"), ResolveLogFile("", "/data"))
	assert.Equal(t, "/tmp/custom.log", ResolveLogFile("/tmp/custom.log", "/data"))

	cfg := DefaultConfig()
	cfg.DataDir = "/data"
	assert.Equal(t, "/tmp/custom.log", cfg.LogFile("/tmp/custom.log"))
}
