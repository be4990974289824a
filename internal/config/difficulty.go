package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset.
// An empty string means no preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("%w: unknown difficulty %q (want easy, normal, hard or fixed)", ErrInvalid, s)
}

// StartLevelForPreset returns the start level a preset selects.
// Zero means the preset keeps the configured level.
func StartLevelForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 1
	case DifficultyNormal:
		return 5
	case DifficultyHard:
		return 10
	default:
		return 0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyTetrisPreset modifies the config based on a difficulty preset.
func ApplyTetrisPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if IsFixedPreset(preset) {
		cfg.Difficulty.Progression = ProgressionNone
		return
	}
	cfg.Difficulty.Progression = ProgressionLines
	if lvl := StartLevelForPreset(preset); lvl > 0 {
		cfg.StartLevel = min(lvl, cfg.MaxLevel)
	}
}

// FallInterval returns the seconds between gravity steps on a level.
// The interval shrinks by 1/divisor per level, never below zero, and is
// divided by the soft-drop multiplier while soft drop is held.
func (t TimingConfig) FallInterval(level int, softDrop bool) float64 {
	interval := t.GravityBase - float64(level)/t.GravityLevelDivisor
	if interval < 0 {
		interval = 0
	}
	if softDrop && t.SoftDropMultiplier > 0 {
		interval /= t.SoftDropMultiplier
	}
	return interval
}
