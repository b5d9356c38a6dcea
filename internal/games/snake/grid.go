// Package snake implements the single-player snake game engine: a body of
// grid cells advancing one cell per tick on a square grid, growing on food
// and ending on collision. It has no terminal dependencies; the platform
// layer drives ticks, feeds directions and renders TickResult values.
package snake

import (
	"fmt"
	"strings"
)

// Address is a (column, row) cell on the grid.
type Address struct {
	Col, Row int
}

func (a Address) String() string {
	return fmt.Sprintf("(%d,%d)", a.Col, a.Row)
}

// InGrid reports whether the address lies on a gridCount×gridCount grid.
func (a Address) InGrid(gridCount int) bool {
	return a.Col >= 0 && a.Col < gridCount && a.Row >= 0 && a.Row < gridCount
}

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= DirRight && d <= DirUp
}

// delta returns the column and row step for one move.
func (d Direction) delta() (int, int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	}
	return 0, 0
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection converts "up", "down", "left" or "right" to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return DirUp, nil
	case "down":
		return DirDown, nil
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	}
	return 0, fmt.Errorf("snake: unknown direction %q", s)
}

// BoundaryMode selects what happens when the head steps past a grid edge.
type BoundaryMode int

const (
	// Walled ends the session when the head leaves the grid.
	Walled BoundaryMode = iota
	// Wraparound moves the head to the opposite edge.
	Wraparound
)

func (m BoundaryMode) String() string {
	switch m {
	case Walled:
		return "walled"
	case Wraparound:
		return "wraparound"
	default:
		return "unknown"
	}
}

// ParseBoundaryMode accepts "walled" (or "wall") and "wraparound" (or "wrap").
func ParseBoundaryMode(s string) (BoundaryMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "walled", "wall":
		return Walled, nil
	case "wraparound", "wrap":
		return Wraparound, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidBoundary, s)
}

// NextAddress returns the cell one step from cur in direction d.
// In Walled mode a step off the grid returns ErrOutOfBounds; in Wraparound
// mode it lands on the opposite edge with the other axis unchanged.
func NextAddress(cur Address, d Direction, gridCount int, mode BoundaryMode) (Address, error) {
	dc, dr := d.delta()
	next := Address{Col: cur.Col + dc, Row: cur.Row + dr}
	if next.InGrid(gridCount) {
		return next, nil
	}

	if mode != Wraparound {
		return cur, ErrOutOfBounds
	}
	next.Col = wrap(next.Col, gridCount)
	next.Row = wrap(next.Row, gridCount)
	return next, nil
}

func wrap(v, n int) int {
	return ((v % n) + n) % n
}
