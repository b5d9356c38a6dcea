package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gridsnake/internal/platform/tui"
	"github.com/vovakirdan/gridsnake/internal/storage"
)

var (
	flagLimit  int
	flagBrowse bool
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recorded sessions",
	Long: `Display the most recent sessions from the journal, newest first.

With --browse, opens an interactive table where Enter replays the
highlighted session and reports whether it reproduces the stored outcome.

Examples:
  snake sessions
  snake sessions --limit 50
  snake sessions --browse`,
	Args: cobra.NoArgs,
	Run:  runSessions,
}

func init() {
	sessionsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of sessions to show")
	sessionsCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Open the interactive journal browser")
}

func runSessions(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening session journal: %v", err)
	}
	defer store.Close()

	if flagBrowse {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunJournal(store, width, height); err != nil {
			fail("%v", err)
		}
		return
	}

	sessions, err := store.RecentSessions(flagLimit)
	if err != nil {
		fail("retrieving sessions: %v", err)
	}

	fmt.Println("Recent Sessions")
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Play 'snake play classic' to record the first one!")
		return
	}

	fmt.Printf("  %-6s  %-8s  %-10s  %-5s  %-10s  %-6s  %s\n", "ID", "Mode", "Player", "Score", "Ended", "Ticks", "Date")
	fmt.Printf("  %-6s  %-8s  %-10s  %-5s  %-10s  %-6s  %s\n", "--", "----", "------", "-----", "-----", "-----", "----")

	for _, s := range sessions {
		fmt.Printf("  %-6d  %-8s  %-10s  %-5d  %-10s  %-6d  %s\n",
			s.ID, s.Mode, s.Player, s.Score, s.Reason, s.Recording.Ticks,
			s.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Println("Run 'snake replay <id>' to verify a session.")
}
