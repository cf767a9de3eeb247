package config

import (
	_ "embed"
)

//go:embed defaults/blocks.yaml
var defaultBlocksYAML []byte

// DefaultBlocksConfig returns the default configuration.
// It mirrors defaults/blocks.yaml and is used when the embedded file cannot be parsed.
func DefaultBlocksConfig() BlocksConfig {
	return BlocksConfig{
		Board:     BoardConfig{Width: 10, Height: 20},
		WideBoard: BoardConfig{Width: 14, Height: 20},
		Timing: TimingConfig{
			GravityMS:    1000,
			ClearDelayMS: 300,
		},
		Palette: PaletteConfig{
			I:         "cyan",
			J:         "blue",
			L:         "orange",
			O:         "yellow",
			S:         "green",
			T:         "magenta",
			Z:         "red",
			Highlight: "bright_white",
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "blocks", "blocks_wide":
		return defaultBlocksYAML
	default:
		return nil
	}
}
