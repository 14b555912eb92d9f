package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Prefix of every environment variable read by Load.
const Prefix = "DRAFT"

type Config struct {
	StyleFile     string `envconfig:"STYLE_FILE"`
	DefaultStyle  string `envconfig:"DEFAULT_STYLE" default:"Standard"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	PreviewWidth  int    `envconfig:"PREVIEW_WIDTH" default:"1200"`
	PreviewHeight int    `envconfig:"PREVIEW_HEIGHT" default:"900"`
	Layer         string `envconfig:"LAYER" default:"DIMENSIONS"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values that cannot be checked by type alone.
func (c *Config) Validate() error {
	if c.PreviewWidth <= 0 || c.PreviewHeight <= 0 {
		return fmt.Errorf("config: preview size %dx%d must be positive", c.PreviewWidth, c.PreviewHeight)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the slog level named by LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("config: log level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}
