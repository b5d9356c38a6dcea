package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridsnake/internal/registry"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List all play modes",
	Long:  `Shows a list of all play modes and their boundary rules.`,
	Run:   runModes,
}

func runModes(cmd *cobra.Command, args []string) {
	modes := registry.List()

	if len(modes) == 0 {
		fmt.Println("No modes available.")
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, m := range modes {
		if len(m.ID) > maxIDLen {
			maxIDLen = len(m.ID)
		}
	}

	fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, "ID", "Boundary", "Description")
	fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, "--", "--------", "-----------")

	for _, m := range modes {
		fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, m.ID, m.Boundary, m.Description)
	}

	fmt.Println()
	fmt.Println("Run 'snake play <id>' to play a mode.")
}
