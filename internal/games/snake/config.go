package snake

import (
	"fmt"
	"time"
)

const (
	// MinGridCount is the smallest supported grid side.
	MinGridCount = 5
	// DefaultInitialLength is used when Config.InitialLength is zero.
	DefaultInitialLength = 5
)

// Config describes one session. It is fixed from Start until Reset.
type Config struct {
	GridCount     int           // Cells per side of the square grid
	TickInterval  time.Duration // Time between ticks, used by the scheduler
	Boundary      BoundaryMode  // Walled or Wraparound
	InitialLength int           // Starting body length (0 means DefaultInitialLength)
	Seed          int64         // Food RNG seed (0 means pick one at Start)
}

// withDefaults fills in zero-valued optional fields.
func (c Config) withDefaults() Config {
	if c.InitialLength == 0 {
		c.InitialLength = DefaultInitialLength
	}
	return c
}

// Validate checks the config for a session start. The initial body is laid
// out from the grid center toward the right edge, so it must fit there.
func (c Config) Validate() error {
	c = c.withDefaults()

	if c.GridCount < MinGridCount {
		return fmt.Errorf("%w: grid count %d, need at least %d", ErrGridTooSmall, c.GridCount, MinGridCount)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidInterval, c.TickInterval)
	}
	if c.Boundary != Walled && c.Boundary != Wraparound {
		return fmt.Errorf("%w: %d", ErrInvalidBoundary, c.Boundary)
	}
	if c.InitialLength < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidLength, c.InitialLength)
	}
	if room := c.GridCount - c.GridCount/2; c.InitialLength > room {
		return fmt.Errorf("%w: length %d does not fit a %d-cell grid (max %d)",
			ErrInvalidLength, c.InitialLength, c.GridCount, room)
	}
	return nil
}
