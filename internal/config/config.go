// Package config loads and validates the launchindex configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete launchindex configuration.
type Config struct {
	Version int           `yaml:"version" json:"version"`
	DataDir string        `yaml:"data_dir" json:"data_dir"`
	Indexer IndexerConfig `yaml:"indexer" json:"indexer"`
	Browser BrowserConfig `yaml:"browser" json:"browser"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// IndexerConfig configures the file indexer.
type IndexerConfig struct {
	// Paths are the root directories to index and watch.
	Paths []string `yaml:"paths" json:"paths"`

	// ExcludedDirs are directory names skipped during scans and watching.
	// Matching is by name on each path segment, not by glob.
	ExcludedDirs []string `yaml:"excluded_dirs" json:"excluded_dirs"`

	// MaxFiles is a soft cap on indexed files. Scans are not hard-stopped
	// when it is exceeded; it bounds the in-memory seen-path cache.
	MaxFiles int `yaml:"max_files" json:"max_files"`

	// Debounce is the minimum time between consecutive full rescans
	// (e.g. "5s", "2m").
	Debounce string `yaml:"debounce" json:"debounce"`
}

// BrowserConfig configures the browser data reader.
type BrowserConfig struct {
	// CacheExpiryMinutes is the TTL for cached browser records.
	CacheExpiryMinutes int `yaml:"cache_expiry_minutes" json:"cache_expiry_minutes"`

	// Enabled lists the browser sources to read
	// (chrome, firefox, safari, edge, brave).
	Enabled []string `yaml:"enabled" json:"enabled"`

	// HistoryLimit is the number of most-recent history rows read per browser.
	HistoryLimit int `yaml:"history_limit" json:"history_limit"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
}

// defaultExcludedDirs are skipped during scans unless overridden.
var defaultExcludedDirs = []string{
	"node_modules",
	".git",
	"target",
	"dist",
	"build",
	".cache",
}

// NewConfig creates a new Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		DataDir: defaultDataDir(),
		Indexer: IndexerConfig{
			Paths:        []string{},
			ExcludedDirs: append([]string(nil), defaultExcludedDirs...),
			MaxFiles:     100_000,
			Debounce:     "5s",
		},
		Browser: BrowserConfig{
			CacheExpiryMinutes: 5,
			Enabled:            []string{"chrome", "firefox", "safari", "edge", "brave"},
			HistoryLimit:       1000,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// defaultDataDir returns the data directory, honoring LAUNCHINDEX_DATA_DIR.
func defaultDataDir() string {
	if dir := os.Getenv("LAUNCHINDEX_DATA_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".launchindex")
	}
	return filepath.Join(home, ".launchindex")
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return filepath.Join(defaultDataDir(), "config.yaml")
}

// Load reads and validates a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads the config at path, falling back to defaults when the
// file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return NewConfig(), nil
	}
	return Load(path)
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate checks the config for invalid values.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	if c.Indexer.MaxFiles <= 0 {
		return fmt.Errorf("indexer.max_files must be positive, got %d", c.Indexer.MaxFiles)
	}
	if _, err := time.ParseDuration(c.Indexer.Debounce); err != nil {
		return fmt.Errorf("indexer.debounce invalid: %w", err)
	}
	if c.Browser.CacheExpiryMinutes <= 0 {
		return fmt.Errorf("browser.cache_expiry_minutes must be positive, got %d", c.Browser.CacheExpiryMinutes)
	}
	if c.Browser.HistoryLimit <= 0 {
		return fmt.Errorf("browser.history_limit must be positive, got %d", c.Browser.HistoryLimit)
	}
	return nil
}

// DebounceInterval returns the parsed rescan interval.
// Validate must have been called first; falls back to 5s on parse failure.
func (c *IndexerConfig) DebounceInterval() time.Duration {
	d, err := time.ParseDuration(c.Debounce)
	if err != nil || d <= 0 {
		return 5 * time.Second
	}
	return d
}

// CacheExpiry returns the browser cache TTL as a duration.
func (c *BrowserConfig) CacheExpiry() time.Duration {
	return time.Duration(c.CacheExpiryMinutes) * time.Minute
}

// EnsureDataDir creates the data directory if needed and returns it.
func (c *Config) EnsureDataDir() (string, error) {
	if err := os.MkdirAll(c.DataDir, 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	return c.DataDir, nil
}

// FilesDBPath returns the path of the file index database.
func (c *Config) FilesDBPath() string {
	return filepath.Join(c.DataDir, "files_index.db")
}

// BrowserDBPath returns the path of the browser cache database.
func (c *Config) BrowserDBPath() string {
	return filepath.Join(c.DataDir, "browser_cache.db")
}

// LockPath returns the path of the indexer instance lock file.
func (c *Config) LockPath() string {
	return filepath.Join(c.DataDir, "indexer.lock")
}
