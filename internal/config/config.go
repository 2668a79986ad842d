// Package config loads fiximports settings from YAML with environment
// overrides. A missing file means defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"fiximports/internal/mapping"
	"fiximports/internal/rewrite"
)

// DefaultPath is where the CLI looks for a config file.
const DefaultPath = ".fiximports.yaml"

// Config holds all fiximports configuration.
type Config struct {
	// Root is the directory to scan, relative to the working directory.
	Root string `yaml:"root"`

	// Extensions are the filename suffixes that get rewritten.
	Extensions []string `yaml:"extensions"`

	// SkipDirs are directory names pruned from the walk.
	SkipDirs []string `yaml:"skip_dirs"`

	// Match is "literal" or "specifier".
	Match string `yaml:"match"`

	// KeepGoing continues past per-file errors.
	KeepGoing bool `yaml:"keep_going"`

	// ExtraMappings are appended to the compiled-in table.
	ExtraMappings []mapping.Pair `yaml:"extra_mappings"`

	Watch   WatchConfig   `yaml:"watch"`
	Logging LoggingConfig `yaml:"logging"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	Debounce string `yaml:"debounce"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Root:       "src",
		Extensions: []string{".tsx", ".ts"},
		Match:      string(rewrite.ModeLiteral),
		Watch: WatchConfig{
			Debounce: "300ms",
		},
		Logging: DefaultLoggingConfig(),
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if root := os.Getenv("FIXIMPORTS_ROOT"); root != "" {
		c.Root = root
	}
	if match := os.Getenv("FIXIMPORTS_MATCH"); match != "" {
		c.Match = match
	}
	if level := os.Getenv("FIXIMPORTS_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// MatchMode parses Match.
func (c *Config) MatchMode() (rewrite.Mode, error) {
	return rewrite.ParseMode(c.Match)
}

// Table returns the compiled-in table extended with ExtraMappings, validated.
func (c *Config) Table() (mapping.Table, error) {
	table := mapping.Default().With(c.ExtraMappings...)
	if err := mapping.Validate(table); err != nil {
		return mapping.Table{}, fmt.Errorf("mapping table: %w", err)
	}
	return table, nil
}

// GetDebounce returns the watch debounce as a duration.
func (c *Config) GetDebounce() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil || d <= 0 {
		return 300 * time.Millisecond
	}
	return d
}
