package snake

import "errors"

var (
	// ErrOutOfBounds is returned by NextAddress when a Walled step leaves the grid.
	ErrOutOfBounds = errors.New("snake: address out of bounds")

	// ErrBoardFull is returned by Spawn when no free cell remains.
	ErrBoardFull = errors.New("snake: board full")

	// ErrLastSegment is returned by Body.DropTail on a single-segment body.
	ErrLastSegment = errors.New("snake: cannot drop last segment")

	// ErrNotIdle is returned by Start when a session is already running or ended.
	ErrNotIdle = errors.New("snake: engine is not idle")

	// Configuration errors reported by Config.Validate and Start.
	ErrGridTooSmall    = errors.New("snake: grid too small")
	ErrInvalidLength   = errors.New("snake: invalid initial length")
	ErrInvalidInterval = errors.New("snake: tick interval must be positive")
	ErrInvalidBoundary = errors.New("snake: invalid boundary mode")
)
