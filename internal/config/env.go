package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvOverrides are settings read from the environment. Zero values leave
// the file configuration alone.
type EnvOverrides struct {
	Rows     int    `env:"TILECRUSH_ROWS"`
	Cols     int    `env:"TILECRUSH_COLS"`
	Kinds    int    `env:"TILECRUSH_KINDS"`
	Duration int    `env:"TILECRUSH_DURATION"`
	DBPath   string `env:"TILECRUSH_DB_PATH"`
	LogLevel string `env:"TILECRUSH_LOG_LEVEL" envDefault:"info"`
}

// ParseEnv loads overrides from environment variables.
func ParseEnv() (EnvOverrides, error) {
	var e EnvOverrides
	if err := env.Parse(&e); err != nil {
		return EnvOverrides{}, fmt.Errorf("config: parse env: %w", err)
	}
	return e, nil
}

// Apply writes the non-zero board and session overrides into cfg.
func (e EnvOverrides) Apply(cfg *TileMatchConfig) {
	if e.Rows > 0 {
		cfg.Board.Rows = e.Rows
	}
	if e.Cols > 0 {
		cfg.Board.Cols = e.Cols
	}
	if e.Kinds > 0 {
		cfg.Board.Kinds = e.Kinds
	}
	if e.Duration > 0 {
		cfg.Session.DurationSeconds = e.Duration
	}
}
