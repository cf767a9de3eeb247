// Package config provides YAML-based game configuration loading and
// difficulty presets for the blocks platform.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Board size limits accepted by Validate.
const (
	MinBoardSide = 4
	MaxBoardSide = 64
)

// BlocksConfig contains all configuration for the falling-block game.
type BlocksConfig struct {
	Board     BoardConfig   `yaml:"board"`
	WideBoard BoardConfig   `yaml:"wide_board"`
	Timing    TimingConfig  `yaml:"timing"`
	Palette   PaletteConfig `yaml:"palette"`
}

// BoardConfig defines the playfield dimensions in cells.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TimingConfig defines the host timers driving the engine.
type TimingConfig struct {
	GravityMS    int `yaml:"gravity_ms"`
	ClearDelayMS int `yaml:"clear_delay_ms"`
}

// PaletteConfig maps piece kinds and the highlight to color names.
type PaletteConfig struct {
	I         string `yaml:"I"`
	J         string `yaml:"J"`
	L         string `yaml:"L"`
	O         string `yaml:"O"`
	S         string `yaml:"S"`
	T         string `yaml:"T"`
	Z         string `yaml:"Z"`
	Highlight string `yaml:"highlight"`
}

// names returns the palette entries in cell-value order (1..8).
func (p PaletteConfig) names() [8]string {
	return [8]string{p.I, p.J, p.L, p.O, p.S, p.T, p.Z, p.Highlight}
}

// Colors resolves the palette into a lookup indexed by cell value.
// Index 0 (empty) is always the default color.
func (p PaletteConfig) Colors() ([9]core.Color, error) {
	var out [9]core.Color
	for i, name := range p.names() {
		c, ok := core.ParseColor(name)
		if !ok {
			return out, fmt.Errorf("config: palette entry %d: unknown color %q: %w", i+1, name, ErrInvalidConfig)
		}
		out[i+1] = c
	}
	return out, nil
}

// Validate checks the configuration for values the game cannot run with.
func (c BlocksConfig) Validate() error {
	if err := c.Board.validate("board"); err != nil {
		return err
	}
	if err := c.WideBoard.validate("wide_board"); err != nil {
		return err
	}
	if c.Timing.GravityMS <= 0 {
		return fmt.Errorf("config: timing.gravity_ms must be positive, got %d: %w", c.Timing.GravityMS, ErrInvalidConfig)
	}
	if c.Timing.ClearDelayMS < 0 {
		return fmt.Errorf("config: timing.clear_delay_ms must not be negative, got %d: %w", c.Timing.ClearDelayMS, ErrInvalidConfig)
	}
	if _, err := c.Palette.Colors(); err != nil {
		return err
	}
	return nil
}

func (b BoardConfig) validate(name string) error {
	if b.Width < MinBoardSide || b.Width > MaxBoardSide {
		return fmt.Errorf("config: %s.width %d out of range [%d, %d]: %w", name, b.Width, MinBoardSide, MaxBoardSide, ErrInvalidConfig)
	}
	if b.Height < MinBoardSide || b.Height > MaxBoardSide {
		return fmt.Errorf("config: %s.height %d out of range [%d, %d]: %w", name, b.Height, MinBoardSide, MaxBoardSide, ErrInvalidConfig)
	}
	return nil
}
