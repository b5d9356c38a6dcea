package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/games/snake"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:     lipgloss.NewStyle(),
	core.ColorRed:         lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBrightRed:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightWhite: lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorGray:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// Rows above and below the board frame, and the narrowest screen that
// still fits the HUD.
const (
	hudRows     = 1
	statusRows  = 1
	minHUDWidth = 40
)

// Glyphs for board cells.
const (
	glyphHead = '█'
	glyphBody = '▓'
	glyphFood = '●'
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// ScreenSize returns the buffer size needed to draw a gridCount board
// with its HUD and status rows.
func ScreenSize(cfg core.RuntimeConfig, gridCount int) (w, h int) {
	bw, bh := cfg.BoardSize(gridCount)
	return core.Max(bw, minHUDWidth), bh + hudRows + statusRows
}

// BoardView holds what DrawBoard needs beyond the engine's result.
type BoardView struct {
	Title  string
	Paused bool
}

// DrawBoard draws the HUD, the framed grid with snake and food, the status
// line and any end-of-session overlay.
func DrawBoard(dst *core.Screen, cfg core.RuntimeConfig, r snake.TickResult, v BoardView) {
	dst.Clear()
	cellW := core.Max(1, cfg.CellW)

	hud := fmt.Sprintf("%s  Score: %d  Length: %d", v.Title, r.Score, r.Len())
	dst.DrawTextColored(0, 0, hud, core.ColorBrightWhite)

	bw, bh := cfg.BoardSize(r.GridCount)
	frame := core.NewRect(0, hudRows, bw, bh)
	frameColor := core.ColorGray
	if r.Boundary == snake.Walled {
		frameColor = core.ColorYellow
	}
	dst.DrawBox(frame, frameColor)

	plot := func(a snake.Address, glyph rune, c core.Color) {
		x := frame.X + 1 + a.Col*cellW
		y := frame.Y + 1 + a.Row
		for i := range cellW {
			dst.SetColored(x+i, y, glyph, c)
		}
	}

	if r.HasFood {
		plot(r.Food, glyphFood, core.ColorBrightRed)
	}
	// Body first so the head stays visible.
	for i := len(r.Cells) - 1; i >= 0; i-- {
		cell := r.Cells[i]
		switch cell.Role {
		case snake.RoleHead:
			color := core.ColorBrightGreen
			if r.Crashed() {
				color = core.ColorRed
			}
			plot(cell.Addr, glyphHead, color)
		default:
			plot(cell.Addr, glyphBody, core.ColorGreen)
		}
	}

	status := statusLine(r, v)
	dst.DrawTextColored(0, frame.Bottom(), status, core.ColorGray)

	switch {
	case r.Won():
		drawOverlay(dst, frame, "You Win!", fmt.Sprintf("Board full. Score: %d", r.Score))
	case r.Crashed():
		drawOverlay(dst, frame, "Game Over", fmt.Sprintf("Score: %d  Press R", r.Score))
	case v.Paused:
		drawOverlay(dst, frame, "Paused", "Press P to continue")
	}
}

func statusLine(r snake.TickResult, v BoardView) string {
	switch r.State {
	case snake.StateRunning:
		if v.Paused {
			return "paused"
		}
		return fmt.Sprintf("heading %s  tick %d", r.Direction, r.Tick)
	case snake.StateEnded:
		return fmt.Sprintf("ended: %s after %d ticks", r.Reason, r.Tick)
	}
	return "idle"
}

// drawOverlay draws a framed two-line message centered on the board.
func drawOverlay(dst *core.Screen, board core.Rect, line1, line2 string) {
	maxLen := core.Max(len([]rune(line1)), len([]rune(line2)))
	box := board.Centered(maxLen+4, 5)

	for y := box.Y; y < box.Bottom(); y++ {
		for x := box.X; x < box.Right(); x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(box, core.ColorBrightWhite)

	center := func(text string, y int) {
		x := box.X + (box.W-len([]rune(text)))/2
		dst.DrawTextColored(x, y, text, core.ColorBrightWhite)
	}
	center(line1, box.Y+1)
	center(line2, box.Y+3)
}
