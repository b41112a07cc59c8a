package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-racer/internal/core"
	"github.com/vovakirdan/tui-racer/internal/games/racer"
	"github.com/vovakirdan/tui-racer/internal/platform/tui"
	"github.com/vovakirdan/tui-racer/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a race",
	Long: `Start the specified race.

Controls (racer, racer_trial):
  Arrows/WASD  - Accelerate, brake/reverse, steer

Controls (racer_duel):
  WASD         - Player 1
  Arrows       - Player 2

Common:
  P/Esc        - Pause
  R            - Restart from the first level
  Ctrl+S       - Save a screenshot to ~/.racer/screenshots
  Q/Ctrl+C     - Quit

Difficulty options (CPU top speed by level):
  easy   - Start slow, speed up each level
  normal - Start at 30% of the range
  hard   - Start at 70% of the range
  fixed  - No progression, CPU always at its base speed

Examples:
  racer play racer
  racer play racer --difficulty hard
  racer play racer_duel
  racer play racer_trial --name ANA
  racer play racer --levels ./my-levels --config ./my-racer.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

// terminalConfig builds the runtime config from the terminal size.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'racer list' to see available races", gameID)
	}

	logger, closeLog := openGameLog()
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}
	configureGames(logger, store)

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	logger.Info("starting race", "game", gameID, "fps", flagFPS, "seed", flagSeed)
	if err := tui.Run(game, store, terminalConfig(), logger); err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	// Surface a failed start once the alt screen is gone.
	if g, ok := game.(*racer.Game); ok && g.Err() != nil {
		return fmt.Errorf("race could not start: %w", g.Err())
	}
	return nil
}
