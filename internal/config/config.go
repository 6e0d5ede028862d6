// Package config loads runtime configuration from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the daemon's runtime settings.
type Config struct {
	DBPath   string `env:"THRONEWORLD_DB" envDefault:"data/throneworld.db"`
	APIPort  int    `env:"THRONEWORLD_PORT" envDefault:"8080"`
	Seed     int64  `env:"THRONEWORLD_SEED" envDefault:"0"` // 0 = random
	Kingdoms int    `env:"THRONEWORLD_KINGDOMS" envDefault:"12"`
	LogLevel string `env:"THRONEWORLD_LOG_LEVEL" envDefault:"info"`
}

// Load parses configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
