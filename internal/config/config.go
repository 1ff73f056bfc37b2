// Package config loads the site configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config defines the settings shared by every portfolio command.
type Config struct {
	Host    string `env:"HOST" envDefault:"127.0.0.1"`
	Port    int    `env:"PORT" envDefault:"8080"`
	GinMode string `env:"GIN_MODE" envDefault:"release"`

	Log     LogConfig
	Catalog CatalogConfig
	Site    SiteConfig
	Admin   AdminConfig
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level       string `env:"LOG_LEVEL" envDefault:"info"`
	Development bool   `env:"LOG_DEVELOPMENT" envDefault:"false"`
}

// CatalogConfig selects where the project catalog is read from. With neither
// path set the catalog compiled into the binary is used.
type CatalogConfig struct {
	Path          string        `env:"CATALOG_PATH"`
	DB            string        `env:"CATALOG_DB"`
	Watch         bool          `env:"WATCH_CATALOG" envDefault:"true"`
	WatchDebounce time.Duration `env:"WATCH_DEBOUNCE" envDefault:"300ms"`
}

// SiteConfig holds the rendering and build locations.
type SiteConfig struct {
	MediaDir  string `env:"MEDIA_DIR" envDefault:"Media"`
	OutputDir string `env:"OUTPUT_DIR" envDefault:"dist"`
	Title     string `env:"SITE_TITLE" envDefault:"Portfolio"`
}

// AdminConfig enables the local catalog maintenance endpoints.
type AdminConfig struct {
	Enabled bool `env:"ADMIN_ENABLED" envDefault:"false"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports configuration values that cannot work together.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if c.Catalog.Path != "" && c.Catalog.DB != "" {
		return fmt.Errorf("CATALOG_PATH and CATALOG_DB are mutually exclusive")
	}
	if c.Catalog.WatchDebounce < 0 {
		return fmt.Errorf("invalid WATCH_DEBOUNCE %s", c.Catalog.WatchDebounce)
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("invalid GIN_MODE %q", c.GinMode)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid LOG_LEVEL %q", c.Log.Level)
	}
	return nil
}

// Addr returns the listen address of the preview server.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
