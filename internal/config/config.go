// Package config reads the environment-driven settings of the CLI.
package config

import (
	"os"
	"path/filepath"
)

// DefaultFont is used for generated documents unless BIZPLAN_FONT is set.
const DefaultFont = "맑은 고딕"

// Config holds application configuration.
type Config struct {
	// OutputDir is where generated documents are written when no explicit
	// output path is given.
	OutputDir string
	// Font is the document font family.
	Font string
}

// Load reads configuration from environment variables. Call it after
// logging.SetupEnvironment so values from .env are visible.
func Load() *Config {
	cfg := &Config{
		OutputDir: os.Getenv("BIZPLAN_OUTPUT_DIR"),
		Font:      os.Getenv("BIZPLAN_FONT"),
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	if cfg.Font == "" {
		cfg.Font = DefaultFont
	}
	return cfg
}

// OutputPath places name inside OutputDir unless name already has a
// directory component.
func (c *Config) OutputPath(name string) string {
	if filepath.Dir(name) != "." || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.OutputDir, name)
}
