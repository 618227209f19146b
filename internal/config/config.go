// Package config loads the Mudra daemon configuration from a YAML file.
// Fields omitted from the file keep their defaults, so partial configs
// are safe.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the daemon configuration.
type Config struct {
	// ListenAddr is the HTTP server listen address.
	ListenAddr string `yaml:"listen_addr"`
	// DataDir holds the database and discovered plugins. Defaults to
	// ~/.mudra.
	DataDir string `yaml:"data_dir"`
	// StaticDir serves the web UI when set.
	StaticDir string `yaml:"static_dir"`
	// TrackerScript overrides discovery of the tracking service script.
	TrackerScript string `yaml:"tracker_script"`
	// MaxHands is the maximum number of hands the tracking service reports.
	MaxHands int `yaml:"max_hands"`
	// MinConfidence is the tracking confidence floor, 0 to 1.
	MinConfidence float64 `yaml:"min_confidence"`
	// MovementThreshold is the wrist displacement in meters that switches
	// the pipeline to the active poll rate.
	MovementThreshold float64 `yaml:"movement_threshold"`
	// Tray enables the system tray icon.
	Tray bool `yaml:"tray"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		ListenAddr:        ":8080",
		DataDir:           filepath.Join(home, ".mudra"),
		MaxHands:          2,
		MinConfidence:     0.5,
		MovementThreshold: 0.005,
		Tray:              true,
	}
}

// DefaultPath returns the default config file location, ~/.mudra/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".mudra", "config.yaml")
}

// Load reads a YAML config file. A missing file is not an error: the
// defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for values the daemon cannot run with.
func (c Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen_addr must not be empty")
	}
	if c.MaxHands < 1 {
		return fmt.Errorf("max_hands must be at least 1, got %d", c.MaxHands)
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return fmt.Errorf("min_confidence must be between 0 and 1, got %v", c.MinConfidence)
	}
	if c.MovementThreshold <= 0 {
		return fmt.Errorf("movement_threshold must be positive, got %v", c.MovementThreshold)
	}
	return nil
}

// DBPath returns the SQLite database location inside the data directory.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, "mudra.db")
}

// PluginDir returns the plugin directory inside the data directory.
func (c Config) PluginDir() string {
	return filepath.Join(c.DataDir, "plugins")
}
