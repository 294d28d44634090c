// Package config loads converter settings from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/jpl-au/gck"
)

// Output formats.
const (
	FormatGenBank = "genbank"
	FormatJSON    = "json"
)

// Config holds every converter setting. Zero values are not meaningful;
// start from DefaultConfig.
type Config struct {
	// Pruning
	Level          gck.Level `yaml:"level"`
	IncludeUnnamed bool      `yaml:"include_unnamed"`
	IncludePrimers bool      `yaml:"include_primers"`

	// Rule library file
	Library string `yaml:"library"`

	// Output
	OutputDir string `yaml:"output_dir"`
	Format    string `yaml:"format"` // genbank, json
	ApE       bool   `yaml:"ape"`

	// Execution
	Workers int    `yaml:"workers"`
	Digest  string `yaml:"digest"` // xxh3, fnv1a, blake2b

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level    string `yaml:"level"`    // debug, info, warn, error
	Encoding string `yaml:"encoding"` // console, json
}

// DefaultConfig returns the settings used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Level:   gck.LevelMedium,
		Library: gck.DefaultLibrary,
		Format:  FormatGenBank,
		Workers: runtime.NumCPU(),
		Digest:  "xxh3",
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "console",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating the directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
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

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("GCK_LEVEL"); v != "" {
		l, err := gck.ParseLevel(v)
		if err != nil {
			return fmt.Errorf("GCK_LEVEL: %w", err)
		}
		c.Level = l
	}
	if v := os.Getenv("GCK_LIBRARY"); v != "" {
		c.Library = v
	}
	if v := os.Getenv("GCK_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	return nil
}

// Validate rejects settings the converter cannot act on.
func (c *Config) Validate() error {
	if c.Level > gck.LevelHighest {
		return fmt.Errorf("%w: %d", gck.ErrInvalidLevel, c.Level)
	}
	switch c.Format {
	case FormatGenBank, FormatJSON:
	default:
		return fmt.Errorf("unknown output format %q", c.Format)
	}
	if _, err := gck.ParseDigest(c.Digest); err != nil {
		return err
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	switch c.Logging.Encoding {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log encoding %q", c.Logging.Encoding)
	}
	return nil
}

// Extension returns the output file extension for format. Anything other
// than FormatJSON is written as GenBank.
func Extension(format string) string {
	if format == FormatJSON {
		return ".json"
	}
	return ".gb"
}
