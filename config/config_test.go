package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Dedupe.NamePrefix != "auto" {
		t.Errorf("expected default name prefix auto, got %s", cfg.Dedupe.NamePrefix)
	}
	if cfg.Watch.DebounceDelay != 500*time.Millisecond {
		t.Errorf("expected default debounce 500ms, got %v", cfg.Watch.DebounceDelay)
	}
	if len(cfg.Files) != 1 || cfg.Files[0] != "**/*.wiki" {
		t.Errorf("unexpected default files: %v", cfg.Files)
	}
	if cfg.Dedupe.DryRun {
		t.Error("expected dry run disabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "quote in name prefix",
			modify:  func(c *Config) { c.Dedupe.NamePrefix = `a"b` },
			wantErr: true,
		},
		{
			name:    "space in name prefix",
			modify:  func(c *Config) { c.Dedupe.NamePrefix = "a b" },
			wantErr: true,
		},
		{
			name:    "negative debounce",
			modify:  func(c *Config) { c.Watch.DebounceDelay = -time.Second },
			wantErr: true,
		},
		{
			name:    "unknown log level",
			modify:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "unknown log format",
			modify:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"", slog.LevelInfo},
		{"info", slog.LevelInfo},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.level)
		if err != nil {
			t.Errorf("ParseLevel(%q) error = %v", tt.level, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temp file with config
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
files:
  - "articles/**/*.wiki"
dedupe:
  name_prefix: "src"
  dry_run: true
watch:
  debounce_delay: 2s
  file_extensions: [".mw"]
metrics:
  listen_addr: ":9090"
log:
  level: debug
  format: json
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if len(cfg.Files) != 1 || cfg.Files[0] != "articles/**/*.wiki" {
		t.Errorf("unexpected files: %v", cfg.Files)
	}
	if cfg.Dedupe.NamePrefix != "src" {
		t.Errorf("expected name prefix src, got %s", cfg.Dedupe.NamePrefix)
	}
	if !cfg.Dedupe.DryRun {
		t.Error("expected dry run enabled")
	}
	if cfg.Watch.DebounceDelay != 2*time.Second {
		t.Errorf("expected debounce 2s, got %v", cfg.Watch.DebounceDelay)
	}
	if len(cfg.Watch.FileExtensions) != 1 || cfg.Watch.FileExtensions[0] != ".mw" {
		t.Errorf("unexpected extensions: %v", cfg.Watch.FileExtensions)
	}
	// Not set in the file, so the default survives
	if len(cfg.Watch.ExcludeDirs) != 2 {
		t.Errorf("expected default exclude dirs, got %v", cfg.Watch.ExcludeDirs)
	}
	if cfg.Metrics.ListenAddr != ":9090" {
		t.Errorf("expected listen addr :9090, got %s", cfg.Metrics.ListenAddr)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("unexpected log config: %+v", cfg.Log)
	}
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("dedupe: [unclosed"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := LoadFromFile(configPath); err == nil {
		t.Error("expected parse error")
	}
	if _, err := LoadFromFile(filepath.Join(tmpDir, "missing.yaml")); err == nil {
		t.Error("expected read error")
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	override := &Config{
		Dedupe: DedupeConfig{
			NamePrefix: "override",
		},
		Log: LogConfig{
			Level: "debug",
		},
	}

	base.Merge(override)

	if base.Dedupe.NamePrefix != "override" {
		t.Errorf("expected name prefix override, got %s", base.Dedupe.NamePrefix)
	}
	// Format should remain from base since override didn't set it
	if base.Log.Format != "text" {
		t.Errorf("expected log format to remain default, got %s", base.Log.Format)
	}
	if base.Log.Level != "debug" {
		t.Errorf("expected log level debug, got %s", base.Log.Level)
	}
	if base.Watch.DebounceDelay != 500*time.Millisecond {
		t.Errorf("expected debounce to remain default, got %v", base.Watch.DebounceDelay)
	}

	base.Merge(nil)
}

func TestConfigSaveToFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "config.yaml")

	cfg := DefaultConfig()
	cfg.Dedupe.NamePrefix = "saved"
	cfg.Watch.DebounceDelay = 3 * time.Second

	if err := cfg.SaveToFile(configPath); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	// Verify file was created
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("config file was not created")
	}

	// Load and verify
	loaded, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.Dedupe.NamePrefix != "saved" {
		t.Errorf("expected name prefix saved, got %s", loaded.Dedupe.NamePrefix)
	}
	if loaded.Watch.DebounceDelay != 3*time.Second {
		t.Errorf("expected debounce 3s, got %v", loaded.Watch.DebounceDelay)
	}
}
