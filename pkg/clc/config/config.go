// Package config loads clc's YAML configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the user-tunable settings.
type Config struct {
	History HistoryConfig `yaml:"history"`
	Output  OutputConfig  `yaml:"output"`
}

// HistoryConfig controls the persistent result history.
type HistoryConfig struct {
	Path string `yaml:"path"` // history database location
	Size int    `yaml:"size"` // ring buffer capacity
}

// OutputConfig controls default rendering.
type OutputConfig struct {
	Mode string `yaml:"mode"` // plain, hex, oct, bin, all
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		History: HistoryConfig{
			Path: "~/.clc_history.db",
			Size: 100,
		},
		Output: OutputConfig{
			Mode: "plain",
		},
	}
}

// DefaultPath returns the default config file location:
// $XDG_CONFIG_HOME/clc/config.yaml, falling back to ~/.config/clc/config.yaml.
func DefaultPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "clc", "config.yaml")
}

// Load reads configuration from path, or from the default location when
// path is empty. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.History.Size < 1 {
		cfg.History.Size = Defaults().History.Size
	}
	return cfg, nil
}

// ExpandPath resolves a leading ~ in a configured path.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
