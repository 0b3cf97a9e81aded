// Package config loads and validates the YAML configuration that governs
// where the indexes live and how fusion, chunking and the watcher behave.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	DataRoot   string         `yaml:"data_root"`
	WatchPaths []string       `yaml:"watch_paths"`
	Embedding  EmbeddingConfig `yaml:"embedding"`
	Fusion     FusionConfig   `yaml:"fusion"`
	Watcher    WatcherConfig  `yaml:"watcher"`
	Security   SecurityConfig `yaml:"security"`
}

// EmbeddingConfig holds embedding-related settings.
type EmbeddingConfig struct {
	Model     string `yaml:"model"`
	Device    string `yaml:"device"`
	CacheSize int    `yaml:"cache_size"`
}

// FusionConfig holds hybrid-search fusion ranking settings. DefaultConfig
// fills in the same values as orchestrator.DefaultFusionWeights, and the
// CLI passes whatever the config file sets through to the orchestrator.
// Validate only requires recency_weight and rrf_weight to sum to 1.0 and
// result_cap to be positive; the other weights are not checked.
type FusionConfig struct {
	RRFConstant   float64 `yaml:"rrf_constant"`
	KeywordBoost  float64 `yaml:"keyword_boost"`
	TitleBoost    float64 `yaml:"title_boost"`
	SummaryBoost  float64 `yaml:"summary_boost"`
	ChunkBoost    float64 `yaml:"chunk_boost"`
	RecencyWeight float64 `yaml:"recency_weight"`
	RRFWeight     float64 `yaml:"rrf_weight"`
	ResultCap     int     `yaml:"result_cap"`
}

// WatcherConfig holds file watcher settings.
type WatcherConfig struct {
	DebounceMs int      `yaml:"debounce_ms"`
	IgnoreGlobs []string `yaml:"ignore_globs"`
}

// SecurityConfig holds security settings.
type SecurityConfig struct {
	EncryptIndex bool   `yaml:"encrypt_index"`
	KeyPath      string `yaml:"key_path"`
}

// DefaultConfig returns a default configuration rooted at the user's cache
// directory.
func DefaultConfig() *Config {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir, _ = os.UserHomeDir()
	}
	homeDir, _ := os.UserHomeDir()

	return &Config{
		DataRoot:   filepath.Join(cacheDir, "multi-search"),
		WatchPaths: []string{filepath.Join(homeDir, "Documents")},
		Embedding: EmbeddingConfig{
			Model:     "sentence-transformers/all-MiniLM-L6-v2",
			Device:    "cpu",
			CacheSize: 10000,
		},
		Fusion: FusionConfig{
			RRFConstant:   60.0,
			KeywordBoost:  1.2,
			TitleBoost:    1.1,
			SummaryBoost:  1.0,
			ChunkBoost:    1.0,
			RecencyWeight: 0.3,
			RRFWeight:     0.7,
			ResultCap:     20,
		},
		Watcher: WatcherConfig{
			DebounceMs:  250,
			IgnoreGlobs: []string{".git", "node_modules", ".cache", "*.tmp"},
		},
		Security: SecurityConfig{
			EncryptIndex: false,
			KeyPath:      filepath.Join(homeDir, ".config", "multi-search", "keyfile"),
		},
	}
}

// Load reads configuration from path, or from the first standard location
// found when path is empty. When path is empty and no standard location
// holds a file, Load returns DefaultConfig; an explicit path that cannot be
// read is an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = findConfigFile()
	}

	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.expandPaths()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// findConfigFile looks for a config file in standard locations.
func findConfigFile() string {
	homeDir, _ := os.UserHomeDir()

	locations := []string{
		"multi-search.yaml",
		".multi-search.yaml",
		filepath.Join(homeDir, ".config", "multi-search", "config.yaml"),
		filepath.Join(homeDir, ".multi-search", "config.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}
	return ""
}

// expandPaths expands ~ and environment variables in paths.
func (c *Config) expandPaths() {
	c.DataRoot = expandPath(c.DataRoot)
	c.Security.KeyPath = expandPath(c.Security.KeyPath)
	for i, p := range c.WatchPaths {
		c.WatchPaths[i] = expandPath(p)
	}
}

// expandPath expands ~ and environment variables.
func expandPath(path string) string {
	if path == "" {
		return path
	}
	if path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		path = filepath.Join(homeDir, path[1:])
	}
	return os.ExpandEnv(path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.DataRoot == "" {
		return fmt.Errorf("data_root cannot be empty")
	}
	if c.Watcher.DebounceMs < 0 {
		return fmt.Errorf("debounce_ms must be non-negative")
	}
	if c.Embedding.CacheSize <= 0 {
		return fmt.Errorf("cache_size must be positive")
	}
	if c.Fusion.RecencyWeight+c.Fusion.RRFWeight != 1.0 {
		return fmt.Errorf("recency_weight and rrf_weight must sum to 1.0")
	}
	if c.Fusion.ResultCap <= 0 {
		return fmt.Errorf("result_cap must be positive")
	}
	return nil
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
