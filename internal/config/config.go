// Package config locates and loads the taglattice.yaml settings file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the settings file looked for in the working directory and
// its ancestors.
const FileName = "taglattice.yaml"

// EnvVar overrides discovery with an explicit settings file path.
const EnvVar = "TAGLATTICE_CONFIG"

// Config holds the user-tunable settings. Zero fields fall back to the
// defaults at load time.
type Config struct {
	// Database is the SQLite file holding the lattice.
	Database string `yaml:"database"`
	// Source is a doublestar glob matching the CSV import sources.
	Source string `yaml:"source"`
	// SearchLimit caps how many hits a search returns by default.
	SearchLimit int `yaml:"search_limit"`
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		Database:    "taglattice.db",
		Source:      "tags/**/*.csv",
		SearchLimit: 20,
	}
}

// Load reads a settings file and fills unset fields from the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Database == "" {
		cfg.Database = Default().Database
	}
	if cfg.Source == "" {
		cfg.Source = Default().Source
	}
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = Default().SearchLimit
	}
	return cfg, nil
}

// Discover finds the settings file: the env override first, then
// taglattice.yaml in the working directory or any ancestor. Returns the
// defaults when nothing is found.
func Discover() (*Config, error) {
	if path := os.Getenv(EnvVar); path != "" {
		return Load(path)
	}

	dir, err := os.Getwd()
	if err != nil {
		return Default(), nil
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return Load(candidate)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}
