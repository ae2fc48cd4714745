package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const tileMatchFile = "tilematch.yaml"

// LoadTileMatch loads the tile-matching configuration.
// Search order: customPath -> ~/.tilecrush/configs/tilematch.yaml ->
// ./configs/tilematch.yaml -> embedded default -> hardcoded default.
// Only a customPath that cannot be read or parsed is an error; the other
// locations are skipped when missing or malformed.
func LoadTileMatch(customPath string) (TileMatchConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return TileMatchConfig{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := parseTileMatch(data)
		if err != nil {
			return TileMatchConfig{}, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{
		userConfigPath(tileMatchFile),
		filepath.Join("configs", tileMatchFile),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parseTileMatch(data); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := parseTileMatch(defaultTileMatchYAML); err == nil {
		return cfg, nil
	}
	return DefaultTileMatchConfig(), nil
}

// parseTileMatch decodes data on top of the hardcoded defaults, so a file
// only needs the keys it changes.
func parseTileMatch(data []byte) (TileMatchConfig, error) {
	cfg := DefaultTileMatchConfig()
	cfg.Variants = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return TileMatchConfig{}, err
	}
	if cfg.Variants == nil {
		cfg.Variants = DefaultTileMatchConfig().Variants
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tilecrush", "configs", filename)
}

// ApplyTileMatchPreset adjusts the clock and tile variety for a preset.
// Fewer kinds make matches easier to find; more kinds make them rarer.
func ApplyTileMatchPreset(cfg *TileMatchConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Session.DurationSeconds += cfg.Session.DurationSeconds / 2
		cfg.Board.Kinds = max(cfg.Board.Kinds-1, 3)
	case DifficultyHard:
		cfg.Session.DurationSeconds = max(cfg.Session.DurationSeconds*2/3, 1)
		cfg.Board.Kinds = min(cfg.Board.Kinds+1, 8)
	}
}

// Resolve produces the effective configuration for one variant: the loaded
// file, the variant's overrides, environment overrides and the preset, in
// that order. The result is validated.
func Resolve(customPath, variant string, preset DifficultyPreset) (TileMatchConfig, error) {
	base, err := LoadTileMatch(customPath)
	if err != nil {
		return TileMatchConfig{}, err
	}
	cfg := base.ForVariant(variant)

	overrides, err := ParseEnv()
	if err != nil {
		return TileMatchConfig{}, err
	}
	overrides.Apply(&cfg)

	if preset != "" {
		ApplyTileMatchPreset(&cfg, preset)
	}
	if err := cfg.Validate(); err != nil {
		return TileMatchConfig{}, err
	}
	return cfg, nil
}
