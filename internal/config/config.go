// Package config provides YAML-based game configuration loading with
// environment overrides and speed presets.
package config

import (
	"errors"
	"fmt"
	"time"
)

// TetrisConfig contains all configuration for the tetris game.
type TetrisConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Timing  TimingConfig  `yaml:"timing"`
	Scoring ScoringConfig `yaml:"scoring"`
	Preview PreviewConfig `yaml:"preview"`
}

// BoardConfig defines the playfield dimensions.
type BoardConfig struct {
	Rows    int `yaml:"rows" env:"TETRIS_ROWS"`
	Columns int `yaml:"columns" env:"TETRIS_COLUMNS"`
}

// TimingConfig defines how often the piece falls and the clock advances.
type TimingConfig struct {
	DropIntervalMs int `yaml:"drop_interval_ms" env:"TETRIS_DROP_INTERVAL_MS"`
	TickIntervalMs int `yaml:"tick_interval_ms" env:"TETRIS_TICK_INTERVAL_MS"`
}

// DropInterval returns the gravity period.
func (t TimingConfig) DropInterval() time.Duration {
	return time.Duration(t.DropIntervalMs) * time.Millisecond
}

// TickInterval returns the elapsed-clock period.
func (t TimingConfig) TickInterval() time.Duration {
	return time.Duration(t.TickIntervalMs) * time.Millisecond
}

// ScoringConfig defines points awarded per cleared row.
type ScoringConfig struct {
	ScorePerLine int `yaml:"score_per_line" env:"TETRIS_SCORE_PER_LINE"`
}

// PreviewConfig defines the lookahead queue length.
type PreviewConfig struct {
	Size int `yaml:"size" env:"TETRIS_PREVIEW_SIZE"`
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid")

// Validate rejects values the engine cannot run with.
func (c TetrisConfig) Validate() error {
	var errs []error
	check := func(name string, v, min int) {
		if v < min {
			errs = append(errs, fmt.Errorf("%w: %s must be at least %d, got %d", ErrInvalidConfig, name, min, v))
		}
	}
	// Four rows fit an upright I piece.
	check("board.rows", c.Board.Rows, 4)
	check("board.columns", c.Board.Columns, 4)
	check("timing.drop_interval_ms", c.Timing.DropIntervalMs, 1)
	check("timing.tick_interval_ms", c.Timing.TickIntervalMs, 1)
	check("scoring.score_per_line", c.Scoring.ScorePerLine, 0)
	check("preview.size", c.Preview.Size, 1)
	return errors.Join(errs...)
}
