package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridsnake/internal/platform/tui"
	"github.com/vovakirdan/gridsnake/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-run a recorded session",
	Long: `Replay a journaled session headless from its seed and inputs and check
that it ends with the stored score and end reason. Exits 1 on mismatch.

Examples:
  snake replay 12`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func runReplay(cmd *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fail("invalid session id %q", args[0])
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening session journal: %v", err)
	}
	defer store.Close()

	verdict, ok := tui.VerifySession(store, id)
	fmt.Println(verdict)
	if !ok {
		store.Close()
		os.Exit(1)
	}
}
