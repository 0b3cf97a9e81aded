package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.DataRoot == "" {
		t.Error("DataRoot should not be empty")
	}
	if cfg.Embedding.Model == "" {
		t.Error("Embedding model should not be empty")
	}
	if cfg.Fusion.ResultCap <= 0 {
		t.Errorf("invalid ResultCap: %v", cfg.Fusion.ResultCap)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		expectErr bool
	}{
		{name: "Valid config", modify: func(c *Config) {}, expectErr: false},
		{name: "Empty data root", modify: func(c *Config) { c.DataRoot = "" }, expectErr: true},
		{name: "Negative debounce", modify: func(c *Config) { c.Watcher.DebounceMs = -100 }, expectErr: true},
		{name: "Zero cache size", modify: func(c *Config) { c.Embedding.CacheSize = 0 }, expectErr: true},
		{
			name:      "Fusion weights don't sum to one",
			modify:    func(c *Config) { c.Fusion.RecencyWeight = 0.9 },
			expectErr: true,
		},
		{name: "Zero result cap", modify: func(c *Config) { c.Fusion.ResultCap = 0 }, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()

			if tt.expectErr && err == nil {
				t.Error("expected error but got none")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfigSaveLoad(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "config-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	configPath := filepath.Join(tmpDir, "config.yaml")

	cfg := DefaultConfig()
	cfg.Embedding.CacheSize = 500
	cfg.Watcher.DebounceMs = 500

	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.Embedding.CacheSize != 500 {
		t.Errorf("CacheSize mismatch: %v", loaded.Embedding.CacheSize)
	}
	if loaded.Watcher.DebounceMs != 500 {
		t.Errorf("DebounceMs mismatch: %v", loaded.Watcher.DebounceMs)
	}
}

func TestExpandPath(t *testing.T) {
	os.Setenv("TEST_VAR", "/test/path")
	defer os.Unsetenv("TEST_VAR")

	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"/absolute/path", "/absolute/path"},
		{"$TEST_VAR/file", "/test/path/file"},
	}

	for _, tt := range tests {
		got := expandPath(tt.input)
		if got != tt.expected && !filepath.IsAbs(got) {
			t.Errorf("expandPath(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
