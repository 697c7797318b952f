package commands

import (
	"os"
	"path/filepath"

	"github.com/colonyops/redguard/internal/core/config"
	"github.com/colonyops/redguard/internal/core/logging"
	"github.com/colonyops/redguard/internal/data/api"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string
	BaseURL    string // overrides api.base_url when set

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "redguard", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "redguard")
}

// Client returns a backend client for the loaded configuration.
func (f *Flags) Client() *api.Client {
	return api.New(f.Config.API, logging.Component("api"))
}
