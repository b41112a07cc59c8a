package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-racer/internal/leaderboard"
	"github.com/vovakirdan/tui-racer/internal/registry"
	"github.com/vovakirdan/tui-racer/internal/storage"
)

var flagClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show scores for a race mode",
	Long: `Display the top 10 game totals, recent level results and, for the
time trial, the leaderboard of every level.

Examples:
  racer scores racer
  racer scores racer_duel
  racer scores racer_trial
  racer scores racer --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores and results of the game")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	logger := newLogger(os.Stderr)

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("%w, run 'racer list' to see available races", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		logger.Info("scores cleared", "game", gameID)
		return nil
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return err
	}

	fmt.Printf("Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No completed games recorded yet.")
	} else {
		fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
		fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
		for i, entry := range scores {
			fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
		}
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Games: %d  Best: %d  Average: %.1f  Levels won: %d\n",
		stats.GamesCount, stats.HighScore, stats.AvgScore, stats.LevelsWon)

	if wins, err := store.WinsByPlayer(gameID); err == nil && len(wins) > 0 {
		fmt.Print("Wins by seat:")
		for seat := 1; seat <= 2; seat++ {
			fmt.Printf("  P%d %d", seat, wins[seat])
		}
		fmt.Println()
	}

	results, err := store.RecentRaceResults(gameID, 5)
	if err != nil {
		return err
	}
	if len(results) > 0 {
		fmt.Println()
		fmt.Println("Recent results:")
		for _, r := range results {
			fmt.Printf("  %-16s  %-8s  P%d  %4d  %s\n",
				r.LevelID, r.Kind, r.Player, r.Score, r.CreatedAt.Format("2006-01-02 15:04"))
		}
	}

	if gameID == "racer_trial" {
		return printLeaderboard(store)
	}
	return nil
}

// printLeaderboard prints the time-trial leaderboard of every level.
func printLeaderboard(store *storage.Store) error {
	board, err := leaderboard.Load(store, leaderboard.DefaultKey, leaderboard.DefaultSize)
	if err != nil {
		return err
	}

	fmt.Println()
	levels := board.Levels()
	if len(levels) == 0 {
		fmt.Println("No time-trial high scores yet.")
		return nil
	}

	for _, level := range levels {
		fmt.Printf("Leaderboard - %s\n", level)
		for i, e := range board.Top(level) {
			fmt.Printf("  %d. %-12s %3ds left\n", i+1, e.Name, e.Score)
		}
	}
	return nil
}
