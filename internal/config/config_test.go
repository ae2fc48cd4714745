package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tilecrush/internal/match3"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg, err := parseTileMatch(defaultTileMatchYAML)
	if err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}

	want := DefaultTileMatchConfig()
	if cfg.Board != want.Board || cfg.Session != want.Session || cfg.Pacing != want.Pacing {
		t.Errorf("embedded default %+v differs from hardcoded %+v", cfg, want)
	}
	for _, id := range want.VariantIDs() {
		if cfg.Variants[id] != want.Variants[id] {
			t.Errorf("variant %s: embedded %+v, hardcoded %+v", id, cfg.Variants[id], want.Variants[id])
		}
	}
}

func TestLoadTileMatchCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("board:\n  rows: 9\nsession:\n  duration_seconds: 45\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTileMatch(path)
	if err != nil {
		t.Fatalf("LoadTileMatch failed: %v", err)
	}

	if cfg.Board.Rows != 9 {
		t.Errorf("Rows = %d, expected 9", cfg.Board.Rows)
	}
	if cfg.Board.Cols != 15 {
		t.Errorf("Cols = %d, expected default 15 to survive", cfg.Board.Cols)
	}
	if cfg.Session.DurationSeconds != 45 {
		t.Errorf("DurationSeconds = %d, expected 45", cfg.Session.DurationSeconds)
	}
	if len(cfg.Variants) != 3 {
		t.Errorf("missing variants section should fall back to defaults, got %d", len(cfg.Variants))
	}
}

func TestLoadTileMatchErrors(t *testing.T) {
	if _, err := LoadTileMatch(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom path should fail")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("board: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTileMatch(bad); err == nil {
		t.Error("malformed custom file should fail")
	}
}

func TestForVariant(t *testing.T) {
	base := DefaultTileMatchConfig()

	tests := []struct {
		id       string
		rows     int
		kinds    int
		duration int
	}{
		{VariantClassic, 15, 6, 300},
		{VariantBlitz, 8, 6, 60},
		{VariantZen, 10, 5, 900},
		{"unknown", 15, 6, 300},
	}

	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			cfg := base.ForVariant(tc.id)
			if cfg.Board.Rows != tc.rows || cfg.Board.Kinds != tc.kinds || cfg.Session.DurationSeconds != tc.duration {
				t.Errorf("ForVariant(%s) = board %+v session %+v", tc.id, cfg.Board, cfg.Session)
			}
		})
	}

	if base.Board.Rows != 15 {
		t.Error("ForVariant must not modify the receiver")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*TileMatchConfig)
		ok   bool
	}{
		{"default", func(*TileMatchConfig) {}, true},
		{"tiny board", func(c *TileMatchConfig) { c.Board.Rows = 2 }, false},
		{"two kinds", func(c *TileMatchConfig) { c.Board.Kinds = 2 }, false},
		{"no clock", func(c *TileMatchConfig) { c.Session.DurationSeconds = 0 }, false},
		{"zero remove delay", func(c *TileMatchConfig) { c.Pacing.RemoveMS = 0 }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultTileMatchConfig()
			tc.mod(&cfg)
			err := cfg.Validate()
			if tc.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Error("expected an error")
			}
		})
	}

	cfg := DefaultTileMatchConfig()
	cfg.Board.Kinds = 1
	if err := cfg.Validate(); !errors.Is(err, match3.ErrInvalidConfig) {
		t.Errorf("engine errors should wrap ErrInvalidConfig, got %v", err)
	}
}

func TestPacingTicks(t *testing.T) {
	p := DefaultTileMatchConfig().Pacing

	tests := []struct {
		stage    match3.Stage
		tickRate int
		want     int
	}{
		{match3.StageSettleSwap, 60, 18},
		{match3.StageRemove, 60, 30},
		{match3.StageGravity, 30, 9},
		{match3.StageRemove, 7, 4},
		{match3.StageIdle, 60, 0},
	}

	for _, tc := range tests {
		if got := p.Ticks(tc.stage, tc.tickRate); got != tc.want {
			t.Errorf("Ticks(%v, %d) = %d, expected %d", tc.stage, tc.tickRate, got, tc.want)
		}
	}

	if p.Delay(match3.StageRemove) != 500*time.Millisecond {
		t.Errorf("remove delay = %v", p.Delay(match3.StageRemove))
	}
}

func TestApplyTileMatchPreset(t *testing.T) {
	tests := []struct {
		preset   DifficultyPreset
		duration int
		kinds    int
	}{
		{DifficultyEasy, 450, 5},
		{DifficultyNormal, 300, 6},
		{DifficultyHard, 200, 7},
		{DifficultyFixed, 300, 6},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultTileMatchConfig()
			ApplyTileMatchPreset(&cfg, tc.preset)
			if cfg.Session.DurationSeconds != tc.duration || cfg.Board.Kinds != tc.kinds {
				t.Errorf("got duration %d kinds %d, expected %d and %d",
					cfg.Session.DurationSeconds, cfg.Board.Kinds, tc.duration, tc.kinds)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	for _, s := range []string{"easy", "normal", "hard", "fixed"} {
		if p, err := ParsePreset(s); err != nil || string(p) != s {
			t.Errorf("ParsePreset(%q) = %q, %v", s, p, err)
		}
	}
	if p, _ := ParsePreset(""); p != DifficultyNormal {
		t.Errorf("empty preset should mean normal, got %q", p)
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("unknown preset should fail")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TILECRUSH_ROWS", "7")
	t.Setenv("TILECRUSH_KINDS", "4")
	t.Setenv("TILECRUSH_DB_PATH", "/tmp/x.db")

	e, err := ParseEnv()
	if err != nil {
		t.Fatalf("ParseEnv failed: %v", err)
	}
	if e.DBPath != "/tmp/x.db" || e.LogLevel != "info" {
		t.Errorf("ParseEnv() = %+v", e)
	}

	cfg := DefaultTileMatchConfig()
	e.Apply(&cfg)
	if cfg.Board.Rows != 7 || cfg.Board.Kinds != 4 || cfg.Board.Cols != 15 {
		t.Errorf("Apply gave board %+v", cfg.Board)
	}
}

func TestEnvOverridesInvalid(t *testing.T) {
	t.Setenv("TILECRUSH_ROWS", "many")
	if _, err := ParseEnv(); err == nil {
		t.Error("non-numeric TILECRUSH_ROWS should fail")
	}
}

func TestResolve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tilematch.yaml")
	if err := os.WriteFile(path, defaultTileMatchYAML, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TILECRUSH_DURATION", "30")

	cfg, err := Resolve(path, VariantBlitz, DifficultyFixed)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cfg.Board.Rows != 8 || cfg.Session.DurationSeconds != 30 {
		t.Errorf("Resolve gave board %+v session %+v", cfg.Board, cfg.Session)
	}

	t.Setenv("TILECRUSH_KINDS", "2")
	if _, err := Resolve(path, VariantBlitz, DifficultyFixed); err == nil {
		t.Error("Resolve should validate the result")
	}
}
