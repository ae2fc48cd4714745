// Package config loads tile-matching configuration from YAML and the
// environment, and applies difficulty presets.
package config

import (
	"fmt"
	"sort"
	"time"

	"github.com/vovakirdan/tilecrush/internal/match3"
)

// TileMatchConfig is the full configuration file.
type TileMatchConfig struct {
	Board    BoardConfig              `yaml:"board"`
	Session  SessionConfig            `yaml:"session"`
	Pacing   PacingConfig             `yaml:"pacing"`
	Variants map[string]VariantConfig `yaml:"variants"`
}

// BoardConfig sizes the grid.
type BoardConfig struct {
	Rows  int `yaml:"rows"`
	Cols  int `yaml:"cols"`
	Kinds int `yaml:"kinds"`
}

// SessionConfig controls the countdown and cascade cap.
type SessionConfig struct {
	DurationSeconds  int `yaml:"duration_seconds"`
	MaxCascadeRounds int `yaml:"max_cascade_rounds"`
}

// PacingConfig holds the presentation delay before each staged step, in
// milliseconds.
type PacingConfig struct {
	SwapMS    int `yaml:"swap_ms"`
	RemoveMS  int `yaml:"remove_ms"`
	GravityMS int `yaml:"gravity_ms"`
	RefillMS  int `yaml:"refill_ms"`
	RescanMS  int `yaml:"rescan_ms"`
}

// VariantConfig overrides the base board and session for one game variant.
// Zero fields inherit the base value.
type VariantConfig struct {
	Title           string `yaml:"title"`
	Description     string `yaml:"description"`
	Rows            int    `yaml:"rows"`
	Cols            int    `yaml:"cols"`
	Kinds           int    `yaml:"kinds"`
	DurationSeconds int    `yaml:"duration_seconds"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	case "":
		return DifficultyNormal, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q", s)
	}
}

// VariantIDs returns the configured variant IDs, sorted.
func (c TileMatchConfig) VariantIDs() []string {
	ids := make([]string, 0, len(c.Variants))
	for id := range c.Variants {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ForVariant returns a copy of c with the named variant's overrides merged
// into Board and Session. An unknown variant returns c unchanged.
func (c TileMatchConfig) ForVariant(id string) TileMatchConfig {
	v, ok := c.Variants[id]
	if !ok {
		return c
	}
	out := c
	if v.Rows > 0 {
		out.Board.Rows = v.Rows
	}
	if v.Cols > 0 {
		out.Board.Cols = v.Cols
	}
	if v.Kinds > 0 {
		out.Board.Kinds = v.Kinds
	}
	if v.DurationSeconds > 0 {
		out.Session.DurationSeconds = v.DurationSeconds
	}
	return out
}

// Engine converts the board and session sections into an engine config.
func (c TileMatchConfig) Engine() match3.Config {
	return match3.Config{
		Rows:             c.Board.Rows,
		Cols:             c.Board.Cols,
		Kinds:            c.Board.Kinds,
		Duration:         c.Session.DurationSeconds,
		MaxCascadeRounds: c.Session.MaxCascadeRounds,
	}
}

// Validate checks the engine settings and the pacing delays.
func (c TileMatchConfig) Validate() error {
	if err := c.Engine().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	p := c.Pacing
	for name, ms := range map[string]int{
		"swap_ms":    p.SwapMS,
		"remove_ms":  p.RemoveMS,
		"gravity_ms": p.GravityMS,
		"refill_ms":  p.RefillMS,
		"rescan_ms":  p.RescanMS,
	} {
		if ms <= 0 {
			return fmt.Errorf("config: pacing %s must be positive, got %d", name, ms)
		}
	}
	return nil
}

// Delay returns the pause shown before stage runs.
func (p PacingConfig) Delay(stage match3.Stage) time.Duration {
	var ms int
	switch stage {
	case match3.StageSettleSwap:
		ms = p.SwapMS
	case match3.StageRemove:
		ms = p.RemoveMS
	case match3.StageGravity:
		ms = p.GravityMS
	case match3.StageRefill:
		ms = p.RefillMS
	case match3.StageRescan:
		ms = p.RescanMS
	}
	return time.Duration(ms) * time.Millisecond
}

// Ticks converts the delay before stage into simulation ticks at tickRate,
// rounding up so that every stage is visible for at least one tick.
func (p PacingConfig) Ticks(stage match3.Stage, tickRate int) int {
	ms := int(p.Delay(stage) / time.Millisecond)
	if ms <= 0 || tickRate <= 0 {
		return 0
	}
	return (ms*tickRate + 999) / 1000
}
