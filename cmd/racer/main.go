// racer is a top-down car racing game for the terminal.
//
// Usage:
//
//	racer list              - List available races
//	racer play <game>       - Play a race
//	racer menu              - Start menu to pick races interactively
//	racer scores <game>     - Show scores and time-trial leaderboards
//	racer build <src> <dst> - Publish a collection of game directories
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.racer/scores.db)
//	--config <path>       - Custom racer config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--name <name>         - Name recorded on the time-trial leaderboard
//	--levels <dir>        - Load levels from a directory
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Log destination while the game screen is up
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-racer/internal/games/racer"
	"github.com/vovakirdan/tui-racer/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagName       string
	flagLevels     string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "racer",
	Short: "Racer - top-down car racing in your terminal",
	Long: `Racer is a top-down car racing game for the terminal.

Race the CPU, challenge a friend on the same keyboard, or chase the clock
in time trials that keep a leaderboard per level.

Available commands:
  list     - Show all available races
  play     - Play a specific race directly
  menu     - Interactive race picker menu
  scores   - View scores and leaderboards
  build    - Publish a collection of game directories

Examples:
  racer list
  racer play racer
  racer play racer_duel --difficulty hard
  racer play racer_trial --name ANA
  racer menu
  racer scores racer_trial`,
	SilenceUsage:      true,
	PersistentPreRunE: validateFlags,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.racer/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom racer config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagName, "name", "", "Name recorded on the time-trial leaderboard")
	pf.StringVar(&flagLevels, "levels", "", "Directory of level YAML files (default: built-in levels)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "~/.racer/racer.log", "Log file used while a game is on screen (empty = discard)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(buildCmd)
}

func validateFlags(_ *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	switch flagDifficulty {
	case "", "easy", "normal", "hard", "fixed":
	default:
		return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	if _, err := log.ParseLevel(flagLogLevel); err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	return nil
}

// newLogger builds the command logger writing to w.
func newLogger(w io.Writer) *log.Logger {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          "racer",
		ReportTimestamp: true,
		Level:           level,
	})
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[1:]), nil
}

// openGameLog opens the log destination used while the alt screen is up.
// The returned closer must be called when the game exits.
func openGameLog() (*log.Logger, func()) {
	if flagLogFile == "" {
		return newLogger(io.Discard), func() {}
	}

	path, err := expandHome(flagLogFile)
	if err == nil {
		err = os.MkdirAll(filepath.Dir(path), 0o755)
	}
	var f *os.File
	if err == nil {
		f, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	}
	if err != nil {
		newLogger(os.Stderr).Warn("logging disabled", "path", flagLogFile, "err", err)
		return newLogger(io.Discard), func() {}
	}

	return newLogger(f), func() { f.Close() }
}

// openStore opens the scores database. Games still run without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// configureGames hands the CLI settings to the racer games before they
// are created.
func configureGames(logger *log.Logger, store *storage.Store) {
	racer.SetConfigPath(flagConfig)
	racer.SetDifficultyPreset(flagDifficulty)
	racer.SetLevelsDir(flagLevels)
	racer.SetPlayerName(flagName)
	racer.SetLogger(logger)
	if store != nil {
		racer.SetLeaderboardStore(store)
	}
}
