// Package config loads server settings from the environment and flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds server configuration.
type Config struct {
	Addr            string        `env:"ISOCITY_ADDR" envDefault:":3001"`
	DefaultGridSize int           `env:"ISOCITY_DEFAULT_GRID_SIZE" envDefault:"50"`
	MinGridSize     int           `env:"ISOCITY_MIN_GRID_SIZE" envDefault:"8"`
	MaxGridSize     int           `env:"ISOCITY_MAX_GRID_SIZE" envDefault:"256"`
	MessageRate     float64       `env:"ISOCITY_MESSAGE_RATE" envDefault:"30"`
	MessageBurst    int           `env:"ISOCITY_MESSAGE_BURST" envDefault:"60"`
	AllowedOrigins  []string      `env:"ISOCITY_ALLOWED_ORIGINS" envSeparator:","`
	LogDev          bool          `env:"ISOCITY_LOG_DEV" envDefault:"false"`
	ShutdownTimeout time.Duration `env:"ISOCITY_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Default returns the configuration used when no environment is set.
func Default() Config {
	return Config{
		Addr:            ":3001",
		DefaultGridSize: 50,
		MinGridSize:     8,
		MaxGridSize:     256,
		MessageRate:     30,
		MessageBurst:    60,
		ShutdownTimeout: 5 * time.Second,
	}
}

// Parse reads the environment, then applies flag overrides from args.
func Parse(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	fs.IntVar(&cfg.DefaultGridSize, "grid", cfg.DefaultGridSize, "Grid size used when a client omits one")
	fs.BoolVar(&cfg.LogDev, "dev", cfg.LogDev, "Human-readable development logging")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Addr == "":
		return errors.New("config: addr is required")
	case c.MinGridSize <= 0:
		return fmt.Errorf("config: min grid size must be positive, got %d", c.MinGridSize)
	case c.MaxGridSize < c.MinGridSize:
		return fmt.Errorf("config: max grid size %d is below min %d", c.MaxGridSize, c.MinGridSize)
	case c.DefaultGridSize < c.MinGridSize || c.DefaultGridSize > c.MaxGridSize:
		return fmt.Errorf("config: default grid size %d outside [%d, %d]", c.DefaultGridSize, c.MinGridSize, c.MaxGridSize)
	case c.MessageRate <= 0 || c.MessageBurst <= 0:
		return errors.New("config: message rate and burst must be positive")
	}
	return nil
}

// OriginAllowed reports whether a websocket handshake from origin is
// accepted. An empty allow-list accepts every origin.
func (c Config) OriginAllowed(origin string) bool {
	if len(c.AllowedOrigins) == 0 {
		return true
	}
	for _, o := range c.AllowedOrigins {
		if o == origin {
			return true
		}
	}
	return false
}
