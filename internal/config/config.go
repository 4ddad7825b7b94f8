// Package config loads tool-level configuration for thermogen.
//
// Configuration is resolved in three layers: built-in defaults, the
// user config file, and CLI flags applied by the caller. The user file
// lives at $THERMOGEN_CONFIG or ~/.config/thermogen/config.yaml and
// every key in it is optional.
package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/bldgsim/thermogen/internal/logging"
)

// EnvConfigPath overrides the default config file location.
const EnvConfigPath = "THERMOGEN_CONFIG"

// defaultConfigRelPath is the config file path relative to the user
// config directory.
const defaultConfigRelPath = "thermogen/config.yaml"

// LoggingConfig is the logging section of the config file.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ExportConfig is the export section of the config file. These are
// tool-level defaults; project files and CLI flags take precedence.
type ExportConfig struct {
	// Output is the default output directory for generated models.
	Output string `yaml:"output"`

	// Workers is the default zone-level concurrency.
	Workers int `yaml:"workers"`

	// ReferenceDir holds reference parameter files for comparison.
	ReferenceDir string `yaml:"reference_dir"`

	// Tolerance is the reference comparison tolerance. Zero keeps the
	// built-in default.
	Tolerance float64 `yaml:"tolerance"`
}

// Config is the full tool configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Export  ExportConfig  `yaml:"export"`
}

// New returns a Config populated with built-in defaults.
func New() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Export: ExportConfig{
			Output:  "out",
			Workers: 1,
		},
	}
}

// Load builds the configuration from defaults plus the user config
// file. A missing file is not an error. An unreadable or malformed
// file is logged and the defaults are returned.
func Load(ctx context.Context, path string) *Config {
	cfg := New()

	if path == "" {
		path = defaultPath()
	}
	if path == "" {
		return cfg
	}
	if _, err := os.Stat(path); err != nil {
		return cfg
	}

	if err := ShallowMergeYAML(cfg, path); err != nil {
		log := logging.FromContext(ctx)
		log.Warn().
			Str("component", "config").
			Str("path", path).
			Err(err).
			Msg("could not merge config file, using defaults")
		return New()
	}
	return cfg
}

// defaultPath resolves the user config file location. Returns empty
// when no user config directory can be determined.
func defaultPath() string {
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, defaultConfigRelPath)
}

// ToLoggingConfig bridges the config file's logging section to the
// logging package.
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
	}
}
