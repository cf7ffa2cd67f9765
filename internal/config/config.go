// Package config provides configuration loading and structs for the catalogrank server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hyperjump/catalogrank/internal/ranking"
)

// Config holds all configuration for the application.
type Config struct {
	Debug   bool                  `yaml:"debug"`
	Server  ServerConfig          `yaml:"server"`
	Catalog CatalogConfig         `yaml:"catalog"`
	Search  SearchConfig          `yaml:"search"`
	Ranking ranking.ScoringConfig `yaml:"ranking"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// CatalogConfig describes where catalog items are loaded from.
type CatalogConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"` // json, yaml, xlsx or sqlite; empty infers it from the extension
	Table  string `yaml:"table"`  // SQLite table holding items
	Sheet  string `yaml:"sheet"`  // spreadsheet sheet; empty uses the first sheet
	Watch  *bool  `yaml:"watch"`
}

// WatchOrDefault returns whether to reload the catalog on file changes; defaults to true when unset.
func (c *CatalogConfig) WatchOrDefault() bool {
	if c.Watch != nil {
		return *c.Watch
	}
	return true
}

// SearchConfig holds search request and candidate selection settings.
type SearchConfig struct {
	DefaultLimit int `yaml:"default_limit"`
	MaxLimit     int `yaml:"max_limit"`

	// Catalogs larger than PrefilterThreshold are narrowed with the keyword index before ranking.
	PrefilterThreshold  int     `yaml:"prefilter_threshold"`
	PrefilterCandidates int     `yaml:"prefilter_candidates"`
	Fuzziness           int     `yaml:"fuzziness"`
	SuggestionsEnabled  *bool   `yaml:"suggestions_enabled"`
	SuggestionThreshold float64 `yaml:"suggestion_threshold"` // fuzzy score a vocabulary word must beat
}

// SuggestionsOrDefault returns whether responses carry did-you-mean suggestions; defaults to true when unset.
func (s *SearchConfig) SuggestionsOrDefault() bool {
	if s.SuggestionsEnabled != nil {
		return *s.SuggestionsEnabled
	}
	return true
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	cfg.Catalog.Path = expandPath(cfg.Catalog.Path, filepath.Dir(path))

	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
