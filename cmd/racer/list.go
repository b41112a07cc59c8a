package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-racer/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available races",
	Long:  `Shows a list of all race modes registered in the game.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No races available.")
		return
	}

	fmt.Println("Available races:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Players")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-------")

	for _, g := range games {
		players := 1
		if game, err := registry.Create(g.ID); err == nil {
			players = registry.Players(game)
		}
		fmt.Printf("  %-*s  %-*s  %d\n", maxIDLen, g.ID, maxTitleLen, g.Title, players)
	}

	fmt.Println()
	fmt.Println("Run 'racer play <id>' to start a race.")
}
