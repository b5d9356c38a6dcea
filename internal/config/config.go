// Package config provides YAML-based game configuration loading and
// difficulty presets for the snake game.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/gridsnake/internal/games/snake"
)

// SnakeConfig contains all configuration for a snake session.
type SnakeConfig struct {
	Board  SnakeBoard  `yaml:"board"`
	Snake  SnakeBody   `yaml:"snake"`
	Timing SnakeTiming `yaml:"timing"`

	// Seed fixes the food RNG. Zero lets the engine pick one.
	Seed int64 `yaml:"seed"`
}

// SnakeBoard defines the playfield.
type SnakeBoard struct {
	GridCount    int    `yaml:"grid_count"`
	BoundaryMode string `yaml:"boundary_mode"` // "walled" or "wraparound"
	BoxWidth     int    `yaml:"box_width"`     // terminal columns per cell
}

// SnakeBody defines the starting snake.
type SnakeBody struct {
	InitialLength int `yaml:"initial_length"`
}

// SnakeTiming defines the scheduler cadence.
type SnakeTiming struct {
	TickIntervalMs int `yaml:"tick_interval_ms"`
}

// TickInterval returns the configured interval as a duration.
func (c SnakeConfig) TickInterval() time.Duration {
	return time.Duration(c.Timing.TickIntervalMs) * time.Millisecond
}

// ToEngineConfig converts the file representation into an engine config.
// The result is validated so callers fail before a session starts.
func (c SnakeConfig) ToEngineConfig() (snake.Config, error) {
	mode, err := snake.ParseBoundaryMode(c.Board.BoundaryMode)
	if err != nil {
		return snake.Config{}, fmt.Errorf("config: %w", err)
	}
	cfg := snake.Config{
		GridCount:     c.Board.GridCount,
		TickInterval:  c.TickInterval(),
		Boundary:      mode,
		InitialLength: c.Snake.InitialLength,
		Seed:          c.Seed,
	}
	if err := cfg.Validate(); err != nil {
		return snake.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty maps a preset name to a DifficultyPreset.
// The empty string means no preset.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// IntervalForPreset returns the tick interval in milliseconds for a preset.
// Returns 0 for an unknown or empty preset.
func IntervalForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 250
	case DifficultyNormal:
		return 150
	case DifficultyHard:
		return 80
	default:
		return 0
	}
}
