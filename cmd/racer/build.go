package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-racer/internal/publish"
)

var buildCmd = &cobra.Command{
	Use:   "build <src> <dst>",
	Short: "Publish a collection of game directories",
	Long: `Copy every directory of <src> that contains a game.json descriptor
into <dst>, copy <src>/index.html when present, and write <dst>/games.js
listing the descriptors. <dst> is removed and recreated first.

Examples:
  racer build . dist
  racer build ./games ./public`,
	Args: cobra.ExactArgs(2),
	RunE: runBuild,
}

func runBuild(_ *cobra.Command, args []string) error {
	logger := newLogger(os.Stderr)

	games, err := publish.Build(args[0], args[1], logger)
	if err != nil {
		return err
	}

	fmt.Printf("Published %d games to %s\n", len(games), args[1])
	return nil
}
