package config

import (
	_ "embed"
)

//go:embed defaults/tilematch.yaml
var defaultTileMatchYAML []byte

// Variant IDs shipped in the default configuration.
const (
	VariantClassic = "tilematch"
	VariantBlitz   = "tilematch_blitz"
	VariantZen     = "tilematch_zen"
)

// DefaultTileMatchConfig returns the hardcoded configuration, used when no
// file can be read.
func DefaultTileMatchConfig() TileMatchConfig {
	return TileMatchConfig{
		Board: BoardConfig{
			Rows:  15,
			Cols:  15,
			Kinds: 6,
		},
		Session: SessionConfig{
			DurationSeconds:  300,
			MaxCascadeRounds: 100,
		},
		Pacing: PacingConfig{
			SwapMS:    300,
			RemoveMS:  500,
			GravityMS: 300,
			RefillMS:  300,
			RescanMS:  300,
		},
		Variants: map[string]VariantConfig{
			VariantClassic: {
				Title:       "Tile Match",
				Description: "15x15 board, six kinds, five minutes",
			},
			VariantBlitz: {
				Title:           "Tile Match Blitz",
				Description:     "8x8 board, one minute on the clock",
				Rows:            8,
				Cols:            8,
				DurationSeconds: 60,
			},
			VariantZen: {
				Title:           "Tile Match Zen",
				Description:     "10x10 board, five kinds, fifteen minutes",
				Rows:            10,
				Cols:            10,
				Kinds:           5,
				DurationSeconds: 900,
			},
		},
	}
}
