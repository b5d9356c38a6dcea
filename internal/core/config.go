package core

// RuntimeConfig contains terminal parameters passed to the platform layer.
type RuntimeConfig struct {
	ScreenW int // Screen width in characters
	ScreenH int // Screen height in characters
	CellW   int // Characters per grid cell horizontally (1 or 2)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		CellW:   2,
	}
}

// BoardSize returns the screen footprint of a gridCount×gridCount board,
// including its one-character frame.
func (c RuntimeConfig) BoardSize(gridCount int) (w, h int) {
	cellW := Max(1, c.CellW)
	return gridCount*cellW + 2, gridCount + 2
}
