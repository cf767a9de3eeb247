package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg BlocksConfig
	if err := yaml.Unmarshal(defaultBlocksYAML, &cfg); err != nil {
		t.Fatalf("embedded yaml does not parse: %v", err)
	}
	if cfg != DefaultBlocksConfig() {
		t.Errorf("embedded = %+v, want %+v", cfg, DefaultBlocksConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadBlocksCustomPathPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocks.yaml")
	data := []byte("board:\n  width: 12\ntiming:\n  gravity_ms: 500\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBlocks(path)
	if err != nil {
		t.Fatalf("LoadBlocks: %v", err)
	}
	if cfg.Board.Width != 12 || cfg.Board.Height != 20 {
		t.Errorf("board = %+v, want 12x20", cfg.Board)
	}
	if cfg.Timing.GravityMS != 500 || cfg.Timing.ClearDelayMS != 300 {
		t.Errorf("timing = %+v, want gravity 500 clear 300", cfg.Timing)
	}
	if cfg.Palette.I != "cyan" {
		t.Errorf("palette.I = %q, want default cyan", cfg.Palette.I)
	}
}

func TestLoadBlocksErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadBlocks(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom path")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("board: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBlocks(bad); err == nil {
		t.Error("expected parse error")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("board:\n  width: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadBlocks(invalid)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("got %v, want ErrInvalidConfig", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BlocksConfig)
		ok     bool
	}{
		{"defaults", func(*BlocksConfig) {}, true},
		{"minimum board", func(c *BlocksConfig) { c.Board = BoardConfig{Width: 4, Height: 4} }, true},
		{"narrow board", func(c *BlocksConfig) { c.Board.Width = 3 }, false},
		{"short board", func(c *BlocksConfig) { c.Board.Height = 3 }, false},
		{"huge wide board", func(c *BlocksConfig) { c.WideBoard.Width = 65 }, false},
		{"zero gravity", func(c *BlocksConfig) { c.Timing.GravityMS = 0 }, false},
		{"zero clear delay", func(c *BlocksConfig) { c.Timing.ClearDelayMS = 0 }, true},
		{"negative clear delay", func(c *BlocksConfig) { c.Timing.ClearDelayMS = -1 }, false},
		{"unknown color", func(c *BlocksConfig) { c.Palette.T = "purple-ish" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultBlocksConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestPaletteColors(t *testing.T) {
	colors, err := DefaultBlocksConfig().Palette.Colors()
	if err != nil {
		t.Fatal(err)
	}
	want := [9]core.Color{
		core.ColorDefault, core.ColorCyan, core.ColorBlue, core.ColorOrange, core.ColorYellow,
		core.ColorGreen, core.ColorMagenta, core.ColorRed, core.ColorBrightWhite,
	}
	if colors != want {
		t.Errorf("Colors() = %v, want %v", colors, want)
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"easy", 1000},
		{"normal", 700},
		{"HARD", 400},
		{"fixed", 1234},
		{"", 1234},
	}
	for _, tt := range tests {
		p, err := ParsePreset(tt.in)
		if err != nil {
			t.Fatalf("ParsePreset(%q): %v", tt.in, err)
		}
		cfg := DefaultBlocksConfig()
		cfg.Timing.GravityMS = 1234
		ApplyBlocksPreset(&cfg, p)
		if cfg.Timing.GravityMS != tt.want {
			t.Errorf("preset %q: gravity = %d, want %d", tt.in, cfg.Timing.GravityMS, tt.want)
		}
	}

	if _, err := ParsePreset("insane"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("ParsePreset(insane) = %v, want ErrInvalidConfig", err)
	}
}
