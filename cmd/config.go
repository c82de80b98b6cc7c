package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nholm/acctsync"
	"gopkg.in/yaml.v3"
)

// Config holds the user-level settings of the application.
type Config struct {
	// StorePath is the folder holding the ledger documents.
	StorePath string `yaml:"storePath"`
	// DefaultCurrency tags imported amounts for display.
	DefaultCurrency string `yaml:"defaultCurrency"`
	// AccuracyMaxAgeHours is the staleness window for accuracy checks.
	AccuracyMaxAgeHours int `yaml:"accuracyMaxAgeHours"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		StorePath:           filepath.Join(home, ".acctsync"),
		DefaultCurrency:     acctsync.DefaultCurrency,
		AccuracyMaxAgeHours: acctsync.DefaultAccuracyMaxAgeHours,
	}
}

// defaultConfigPath is where LoadConfig looks when no path is given.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".acctsync.yaml"
	}
	return filepath.Join(home, ".acctsync.yaml")
}

// LoadConfig reads the config file at path, filling missing fields with the
// defaults. A missing file is not an error: it loads the defaults.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		path = defaultConfigPath()
	}

	cfg := DefaultConfig()

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("could not read config %q: %w", path, err)
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("could not parse config %q: %w", path, err)
	}

	// A file that clears a field falls back to the default rather than
	// leaving the application without a store.
	defaults := DefaultConfig()
	if cfg.StorePath == "" {
		cfg.StorePath = defaults.StorePath
	}
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = defaults.DefaultCurrency
	}
	if cfg.AccuracyMaxAgeHours <= 0 {
		cfg.AccuracyMaxAgeHours = defaults.AccuracyMaxAgeHours
	}
	return cfg, nil
}
