// Package config handles configuration loading and validation for redguard.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/redguard/internal/core/styles"
)

// Config holds the application configuration.
type Config struct {
	API     APIConfig  `yaml:"api"`
	Scan    ScanConfig `yaml:"scan"`
	TUI     TUIConfig  `yaml:"tui"`
	DataDir string     `yaml:"-"` // set by caller, not from config file
}

// APIConfig configures the analysis backend client.
type APIConfig struct {
	BaseURL    string        `yaml:"base_url"`
	Timeout    time.Duration `yaml:"timeout"`
	RetryCount int           `yaml:"retry_count"`
	Debug      bool          `yaml:"debug"` // log request/response dumps at debug level
}

// ScanConfig configures the scan animation.
type ScanConfig struct {
	Duration time.Duration `yaml:"duration"`
	FPS      int           `yaml:"fps"`
}

// FrameInterval returns the delay between scan frames.
func (s ScanConfig) FrameInterval() time.Duration {
	if s.FPS <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(s.FPS)
}

// TUIConfig holds interactive viewer settings.
type TUIConfig struct {
	Theme       string `yaml:"theme"`
	DetailWidth int    `yaml:"detail_width"` // width of the risk detail panel
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL:    "http://localhost:8080",
			Timeout:    10 * time.Second,
			RetryCount: 2,
		},
		Scan: ScanConfig{
			Duration: 3 * time.Second,
			FPS:      30,
		},
		TUI: TUIConfig{
			Theme:       styles.DefaultTheme,
			DetailWidth: 44,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.API.BaseURL == "" {
		c.API.BaseURL = defaults.API.BaseURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = defaults.API.Timeout
	}
	if c.Scan.Duration == 0 {
		c.Scan.Duration = defaults.Scan.Duration
	}
	if c.Scan.FPS == 0 {
		c.Scan.FPS = defaults.Scan.FPS
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.TUI.DetailWidth == 0 {
		c.TUI.DetailWidth = defaults.TUI.DetailWidth
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if err := validBaseURL(c.API.BaseURL); err != nil {
		return fmt.Errorf("api.base_url: %w", err)
	}

	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout cannot be negative")
	}

	if c.API.RetryCount < 0 {
		return fmt.Errorf("api.retry_count cannot be negative")
	}

	if c.Scan.Duration < 0 {
		return fmt.Errorf("scan.duration cannot be negative")
	}

	if c.Scan.FPS < 1 || c.Scan.FPS > 120 {
		return fmt.Errorf("scan.fps must be between 1 and 120")
	}

	if _, ok := styles.GetPalette(c.TUI.Theme); !ok {
		return fmt.Errorf("tui.theme %q is not a known theme (available: %s)", c.TUI.Theme, strings.Join(styles.ThemeNames(), ", "))
	}

	if c.TUI.DetailWidth < 20 {
		return fmt.Errorf("tui.detail_width must be at least 20")
	}

	return nil
}

func validBaseURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("cannot be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

// LogFile returns override when set, otherwise the default log file inside the
// data directory.
func (c *Config) LogFile(override string) string {
	return ResolveLogFile(override, c.DataDir)
}

// ResolveLogFile returns the log file path for an optional --log-file value.
func ResolveLogFile(override, dataDir string) string {
	if override != "" {
		return override
	}
	return filepath.Join(dataDir, "redguard.log")
}
