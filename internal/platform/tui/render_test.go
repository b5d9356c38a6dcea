package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/games/snake"
)

func startedResult(t *testing.T, mode snake.BoundaryMode) snake.TickResult {
	t.Helper()
	e := snake.NewEngine()
	r, err := e.Start(snake.Config{
		GridCount:    12,
		TickInterval: 200 * time.Millisecond,
		Boundary:     mode,
		Seed:         12345,
	})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	return r
}

func TestScreenSize(t *testing.T) {
	cfg := core.DefaultConfig()
	w, h := ScreenSize(cfg, 20)
	if w != 42 || h != 24 {
		t.Errorf("ScreenSize(20) = %dx%d, expected 42x24", w, h)
	}
	// Narrow boards still leave room for the HUD.
	w, _ = ScreenSize(cfg, 5)
	if w != minHUDWidth {
		t.Errorf("ScreenSize(5) width = %d, expected %d", w, minHUDWidth)
	}
}

func TestDrawBoardPlacesSnake(t *testing.T) {
	cfg := core.DefaultConfig()
	r := startedResult(t, snake.Walled)
	w, h := ScreenSize(cfg, r.GridCount)
	s := core.NewScreen(w, h)

	DrawBoard(s, cfg, r, BoardView{Title: "Snake"})

	// Cell (c, r) starts at column 1+2c on row hudRows+1+r.
	col := func(c int) int { return 1 + c*cfg.CellW }
	row := func(r int) int { return hudRows + 1 + r }

	head := s.GetCell(col(6), row(6))
	if head.Rune != glyphHead || head.Color != core.ColorBrightGreen {
		t.Errorf("head cell = %+v", head)
	}
	if s.Get(col(6)+1, row(6)) != glyphHead {
		t.Error("head should fill both columns of its cell")
	}
	for c := 7; c <= 10; c++ {
		if got := s.GetCell(col(c), row(6)); got.Rune != glyphBody || got.Color != core.ColorGreen {
			t.Errorf("body cell (%d,6) = %+v", c, got)
		}
	}
	if s.Get(col(r.Food.Col), row(r.Food.Row)) != glyphFood {
		t.Errorf("food not drawn at %v", r.Food)
	}

	if !strings.Contains(s.Row(0), "Score: 0") || !strings.Contains(s.Row(0), "Length: 5") {
		t.Errorf("HUD = %q", s.Row(0))
	}
	if s.Get(0, hudRows) != '┌' {
		t.Errorf("frame corner = %q", s.Get(0, hudRows))
	}
	if s.GetCell(0, hudRows).Color != core.ColorYellow {
		t.Error("walled boards should use the wall frame color")
	}
}

func TestDrawBoardWrapFrame(t *testing.T) {
	cfg := core.DefaultConfig()
	r := startedResult(t, snake.Wraparound)
	w, h := ScreenSize(cfg, r.GridCount)
	s := core.NewScreen(w, h)

	DrawBoard(s, cfg, r, BoardView{Title: "Snake"})
	if s.GetCell(0, hudRows).Color != core.ColorGray {
		t.Error("wraparound boards should use the open frame color")
	}
}

func TestDrawBoardOverlays(t *testing.T) {
	cfg := core.DefaultConfig()
	base := startedResult(t, snake.Walled)

	tests := []struct {
		name   string
		mutate func(*snake.TickResult, *BoardView)
		want   string
	}{
		{"paused", func(_ *snake.TickResult, v *BoardView) { v.Paused = true }, "Paused"},
		{"crash", func(r *snake.TickResult, _ *BoardView) {
			r.State, r.Reason = snake.StateEnded, snake.ReasonSelf
		}, "Game Over"},
		{"win", func(r *snake.TickResult, _ *BoardView) {
			r.State, r.Reason = snake.StateEnded, snake.ReasonBoardFull
		}, "You Win!"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := base
			v := BoardView{Title: "Snake"}
			tc.mutate(&r, &v)

			w, h := ScreenSize(cfg, r.GridCount)
			s := core.NewScreen(w, h)
			DrawBoard(s, cfg, r, v)
			if !strings.Contains(s.String(), tc.want) {
				t.Errorf("board missing %q:\n%s", tc.want, s.String())
			}
		})
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawTextColored(0, 0, "Hi", core.ColorGreen)
	s.DrawText(0, 1, "there")

	out := RenderScreen(s)
	if !strings.Contains(out, "Hi") || !strings.Contains(out, "there") {
		t.Errorf("RenderScreen() = %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("RenderScreen() should join rows with newlines, got %q", out)
	}
}
