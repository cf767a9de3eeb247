package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
// Presets pick a constant gravity interval; there is no speed curve.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists every accepted preset name.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset converts a flag value into a preset. Empty means fixed.
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyFixed, nil
	}
	p := DifficultyPreset(strings.ToLower(s))
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (use easy, normal, hard or fixed): %w", s, ErrInvalidConfig)
}

// GravityForPreset returns the gravity interval for a preset, or 0 for fixed.
func GravityForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 1000
	case DifficultyNormal:
		return 700
	case DifficultyHard:
		return 400
	default:
		return 0
	}
}

// ApplyBlocksPreset modifies the config based on a difficulty preset.
// The fixed preset keeps the interval loaded from the file.
func ApplyBlocksPreset(cfg *BlocksConfig, preset DifficultyPreset) {
	if ms := GravityForPreset(preset); ms > 0 {
		cfg.Timing.GravityMS = ms
	}
}
