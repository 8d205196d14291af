package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the default tetris configuration.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: BoardConfig{
			Rows:    20,
			Columns: 10,
		},
		Timing: TimingConfig{
			DropIntervalMs: 1000,
			TickIntervalMs: 1000,
		},
		Scoring: ScoringConfig{
			ScorePerLine: 100,
		},
		Preview: PreviewConfig{
			Size: 3,
		},
	}
}
