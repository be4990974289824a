// Package config provides YAML-based game configuration loading and
// difficulty presets.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// TetrisConfig contains all configuration for the falling-block game.
type TetrisConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Timing     TimingConfig     `yaml:"timing"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	StartLevel int              `yaml:"start_level"`
	MaxLevel   int              `yaml:"max_level"` // Highest level selectable in the menu
}

// BoardConfig defines the playfield dimensions.
type BoardConfig struct {
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`
}

// TimingConfig defines gravity and auto-shift pacing.
type TimingConfig struct {
	GravityBase         float64 `yaml:"gravity_base"`          // Seconds per row at level 0
	GravityLevelDivisor float64 `yaml:"gravity_level_divisor"` // Each level removes 1/divisor seconds
	SoftDropMultiplier  float64 `yaml:"soft_drop_multiplier"`  // Gravity speed-up while soft drop is held
	DASDelayTicks       int     `yaml:"das_delay_ticks"`       // Ticks a direction must be held before repeating
	RepeatRate          float64 `yaml:"repeat_rate"`           // Repeat timer units per second; a move fires at 1
	HoldReleaseMS       int     `yaml:"hold_release_ms"`       // Quiet time after which a terminal key counts as released
}

// HoldRelease returns HoldReleaseMS as a duration.
func (t TimingConfig) HoldRelease() time.Duration {
	return time.Duration(t.HoldReleaseMS) * time.Millisecond
}

// ScoringConfig defines high-score table parameters.
type ScoringConfig struct {
	TopN int `yaml:"top_n"`
}

// DifficultyConfig controls level progression.
type DifficultyConfig struct {
	Progression string `yaml:"progression"` // "lines" or "none"
}

// Progresses reports whether the level rises as lines are cleared.
func (d DifficultyConfig) Progresses() bool {
	return d.Progression != ProgressionNone
}

// Progression modes.
const (
	ProgressionLines = "lines"
	ProgressionNone  = "none"
)

// Validate checks that every field is usable by the game.
func (c TetrisConfig) Validate() error {
	switch {
	case c.Board.Cols < 4:
		return fmt.Errorf("%w: board.cols must be at least 4, got %d", ErrInvalid, c.Board.Cols)
	case c.Board.Rows < 4:
		return fmt.Errorf("%w: board.rows must be at least 4, got %d", ErrInvalid, c.Board.Rows)
	case c.Timing.GravityBase <= 0:
		return fmt.Errorf("%w: timing.gravity_base must be positive", ErrInvalid)
	case c.Timing.GravityLevelDivisor <= 0:
		return fmt.Errorf("%w: timing.gravity_level_divisor must be positive", ErrInvalid)
	case c.Timing.SoftDropMultiplier < 1:
		return fmt.Errorf("%w: timing.soft_drop_multiplier must be at least 1", ErrInvalid)
	case c.Timing.DASDelayTicks < 0:
		return fmt.Errorf("%w: timing.das_delay_ticks must not be negative", ErrInvalid)
	case c.Timing.RepeatRate <= 0:
		return fmt.Errorf("%w: timing.repeat_rate must be positive", ErrInvalid)
	case c.Timing.HoldReleaseMS <= 0:
		return fmt.Errorf("%w: timing.hold_release_ms must be positive", ErrInvalid)
	case c.Scoring.TopN < 1:
		return fmt.Errorf("%w: scoring.top_n must be at least 1", ErrInvalid)
	case c.MaxLevel < 1:
		return fmt.Errorf("%w: max_level must be at least 1", ErrInvalid)
	case c.StartLevel < 1 || c.StartLevel > c.MaxLevel:
		return fmt.Errorf("%w: start_level must be within 1..%d, got %d", ErrInvalid, c.MaxLevel, c.StartLevel)
	}

	switch c.Difficulty.Progression {
	case "", ProgressionLines, ProgressionNone:
	default:
		return fmt.Errorf("%w: difficulty.progression %q", ErrInvalid, c.Difficulty.Progression)
	}
	return nil
}
