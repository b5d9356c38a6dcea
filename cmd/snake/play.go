package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gridsnake/internal/config"
	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/games/snake"
	"github.com/vovakirdan/gridsnake/internal/platform/tui"
	"github.com/vovakirdan/gridsnake/internal/registry"
	"github.com/vovakirdan/gridsnake/internal/storage"
)

var (
	flagDifficulty string
	flagGrid       int
	flagLength     int
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play snake",
	Long: `Start a snake session in the given mode, or pick a mode from a menu.

Controls:
  Arrows/WASD/HJKL - Steer
  P/Space          - Pause
  R                - Restart
  ?                - Toggle help
  Q/Ctrl+C         - Quit

Difficulty options (tick interval only):
  easy   - 250ms per step
  normal - 150ms per step
  hard   - 80ms per step

Examples:
  snake play
  snake play classic
  snake play wrap --difficulty hard
  snake play classic --grid 30 --seed 42
  snake play classic --config ./my-snake.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().IntVar(&flagGrid, "grid", 0, "Grid cells per side (overrides config)")
	playCmd.Flags().IntVar(&flagLength, "length", 0, "Initial snake length (overrides config)")
}

func runPlay(cmd *cobra.Command, args []string) {
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	fileCfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}
	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		fail("%v", err)
	}
	config.ApplySnakePreset(&fileCfg, preset)
	if flagGrid > 0 {
		fileCfg.Board.GridCount = flagGrid
	}
	if flagLength > 0 {
		fileCfg.Snake.InitialLength = flagLength
	}

	// Get terminal size early for the menu and the fit check
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	var mode registry.Mode
	if len(args) == 1 {
		mode, err = registry.Get(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", args[0])
			fmt.Fprintln(os.Stderr, "Run 'snake modes' to see available modes.")
			os.Exit(1)
		}
	} else {
		selected, menuErr := tui.RunMenu(width, height)
		if menuErr != nil {
			fail("%v", menuErr)
		}
		// User quit the menu
		if selected == nil {
			return
		}
		mode = *selected
	}
	fileCfg.Board.BoundaryMode = mode.Boundary

	gameCfg, err := fileCfg.ToEngineConfig()
	if err != nil {
		fail("%v", err)
	}

	rt := core.RuntimeConfig{ScreenW: width, ScreenH: height, CellW: fileCfg.Board.BoxWidth}
	if err := checkFits(rt, gameCfg); err != nil {
		fail("%v", err)
	}

	opts := tui.Options{
		Mode:    mode.ID,
		Title:   "Snake: " + mode.Title,
		Config:  gameCfg,
		Runtime: rt,
		Player:  os.Getenv("USER"),
		Logger:  logger,
	}

	// Open session journal
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open session journal: %v\n", err)
		// Continue without storage - game still works
	} else {
		opts.Store = store
	}

	runErr := tui.Run(opts)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running game: %v", runErr)
	}
}

// checkFits refuses boards the terminal cannot show, help line included.
func checkFits(rt core.RuntimeConfig, cfg snake.Config) error {
	w, h := tui.ScreenSize(rt, cfg.GridCount)
	if w > rt.ScreenW || h+1 > rt.ScreenH {
		return fmt.Errorf("a %d-cell grid needs a %dx%d terminal, this one is %dx%d",
			cfg.GridCount, w, h+1, rt.ScreenW, rt.ScreenH)
	}
	return nil
}
