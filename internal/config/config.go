// Package config handles dataset repository configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matsen/coauthnet/internal/graph"
)

// Config represents dataset configuration stored in .conet/config.json.
type Config struct {
	TopN                int    `json:"top_n"`                     // Countries given their own legend entry
	MaxRecords          int    `json:"max_records"`               // Input cap; 0 disables
	MaxAuthorsPerRecord int    `json:"max_authors_per_record"`    // Per-record roster cap; 0 disables
	CountryAliases      string `json:"country_aliases,omitempty"` // Path to a YAML alias map, relative to the repo root
}

const (
	ConetDir   = ".conet"
	ConfigFile = "config.json"
	DBFile     = "graph.db"
)

// Default returns the configuration a fresh dataset starts with.
func Default() *Config {
	limits := graph.DefaultLimits()
	return &Config{
		TopN:                10,
		MaxRecords:          limits.MaxRecords,
		MaxAuthorsPerRecord: limits.MaxAuthorsPerRecord,
	}
}

// Limits converts the configured caps into builder limits.
func (c *Config) Limits() graph.Limits {
	return graph.Limits{
		MaxRecords:          c.MaxRecords,
		MaxAuthorsPerRecord: c.MaxAuthorsPerRecord,
	}
}

// ConetPath returns the path to the .conet directory from a root path.
func ConetPath(root string) string {
	return filepath.Join(root, ConetDir)
}

// ConfigPath returns the path to config.json from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, ConetDir, ConfigFile)
}

// DBPath returns the path to the graph cache database from a root path.
func DBPath(root string) string {
	return filepath.Join(root, ConetDir, DBFile)
}

// AliasPath resolves the configured alias file against the repo root.
// Returns "" when no alias file is configured.
func (c *Config) AliasPath(root string) string {
	if c.CountryAliases == "" {
		return ""
	}
	if filepath.IsAbs(c.CountryAliases) {
		return c.CountryAliases
	}
	return filepath.Join(root, c.CountryAliases)
}

// IsRepository checks if the given path contains a conet dataset.
func IsRepository(root string) bool {
	info, err := os.Stat(ConetPath(root))
	return err == nil && info.IsDir()
}

// FindRepository walks up from the given path to find a conet dataset.
// Returns the dataset root path or an error if not found.
func FindRepository(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsRepository(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a conet dataset (no .conet directory found)")
		}
		abs = parent
	}
}

// Load reads configuration from the dataset at the given root.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Save writes configuration to the dataset at the given root.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}
