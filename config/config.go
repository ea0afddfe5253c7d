// Package config provides configuration loading and management for reflinks.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete reflinks configuration
type Config struct {
	Files   []string      `yaml:"files"`
	Dedupe  DedupeConfig  `yaml:"dedupe"`
	Watch   WatchConfig   `yaml:"watch"`
	Metrics MetricsConfig `yaml:"metrics"`
	Log     LogConfig     `yaml:"log"`
}

// DedupeConfig configures duplicate citation merging
type DedupeConfig struct {
	// NamePrefix is prepended to generated citation names (default: auto)
	NamePrefix string `yaml:"name_prefix"`
	// DryRun reports merges without writing files
	DryRun bool `yaml:"dry_run"`
}

// WatchConfig configures directory watching
type WatchConfig struct {
	// DebounceDelay is how long to collect changes before processing them
	DebounceDelay time.Duration `yaml:"debounce_delay"`
	// FileExtensions lists the wikitext file extensions to watch
	FileExtensions []string `yaml:"file_extensions"`
	// ExcludeDirs lists directory names to skip
	ExcludeDirs []string `yaml:"exclude_dirs"`
}

// MetricsConfig configures the Prometheus endpoint
type MetricsConfig struct {
	// ListenAddr is the address serving /metrics in watch mode (empty = disabled)
	ListenAddr string `yaml:"listen_addr"`
}

// LogConfig configures logging
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`
	// Format is text or json
	Format string `yaml:"format"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Files: []string{"**/*.wiki"},
		Dedupe: DedupeConfig{
			NamePrefix: "auto",
		},
		Watch: WatchConfig{
			DebounceDelay:  500 * time.Millisecond,
			FileExtensions: []string{".wiki", ".txt"},
			ExcludeDirs:    []string{".git", "node_modules"},
		},
		Metrics: MetricsConfig{
			ListenAddr: "", // Disabled
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if strings.ContainsAny(c.Dedupe.NamePrefix, "\"'<>/= ") {
		return fmt.Errorf("dedupe.name_prefix contains characters not allowed in a citation name: %q", c.Dedupe.NamePrefix)
	}
	if c.Watch.DebounceDelay < 0 {
		return fmt.Errorf("watch.debounce_delay must not be negative")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// ParseLevel converts a log level name to a slog.Level
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if len(other.Files) > 0 {
		c.Files = other.Files
	}

	// Dedupe
	if other.Dedupe.NamePrefix != "" {
		c.Dedupe.NamePrefix = other.Dedupe.NamePrefix
	}
	if other.Dedupe.DryRun {
		c.Dedupe.DryRun = true
	}

	// Watch
	if other.Watch.DebounceDelay != 0 {
		c.Watch.DebounceDelay = other.Watch.DebounceDelay
	}
	if len(other.Watch.FileExtensions) > 0 {
		c.Watch.FileExtensions = other.Watch.FileExtensions
	}
	if len(other.Watch.ExcludeDirs) > 0 {
		c.Watch.ExcludeDirs = other.Watch.ExcludeDirs
	}

	// Metrics
	if other.Metrics.ListenAddr != "" {
		c.Metrics.ListenAddr = other.Metrics.ListenAddr
	}

	// Log
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
	if other.Log.Format != "" {
		c.Log.Format = other.Log.Format
	}
}
