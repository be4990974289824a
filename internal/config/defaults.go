package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the built-in configuration.
// A 10×20 board at 30 fps with the classic gravity curve.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: BoardConfig{
			Cols: 10,
			Rows: 20,
		},
		Timing: TimingConfig{
			GravityBase:         1.6,
			GravityLevelDivisor: 8,
			SoftDropMultiplier:  8,
			DASDelayTicks:       10,
			RepeatRate:          5.1,
			HoldReleaseMS:       120,
		},
		Scoring: ScoringConfig{
			TopN: 10,
		},
		Difficulty: DifficultyConfig{
			Progression: ProgressionLines,
		},
		StartLevel: 5,
		MaxLevel:   19,
	}
}
