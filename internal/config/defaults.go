package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Board: SnakeBoard{
			GridCount:    20,
			BoundaryMode: "walled",
			BoxWidth:     2,
		},
		Snake: SnakeBody{
			InitialLength: 5,
		},
		Timing: SnakeTiming{
			TickIntervalMs: 150,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
