// tilecrush is a timed tile-matching game for the terminal.
//
// Usage:
//
//	tilecrush list              - List game variants
//	tilecrush play <variant>    - Play a variant
//	tilecrush menu              - Pick variants and difficulty interactively
//	tilecrush serve             - Start SSH server for remote play
//	tilecrush scores <variant>  - Show high scores for a variant
//	tilecrush sim <variant>     - Play many games with a bot and report scores
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible boards
//	--db <path>           - Set database path (default: ~/.tilecrush/scores.db)
//	--config <path>       - Custom game config YAML
//	--difficulty <name>   - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilecrush/internal/config"
	"github.com/vovakirdan/tilecrush/internal/games/tilematch"
	"github.com/vovakirdan/tilecrush/internal/storage"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

// logger is the CLI logger, configured before any command runs.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "tilecrush",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tilecrush",
	Short: "TileCrush - a timed tile-matching game for your terminal",
	Long: `TileCrush is a match-three puzzle played against the clock.
Swap neighbouring tiles to line up three or more of a kind; matched tiles
vanish, the column above falls and new tiles drop in, sometimes starting a
chain reaction.

Available commands:
  list     - Show all game variants
  play     - Play a variant directly
  menu     - Interactive variant and difficulty picker
  serve    - Start SSH server for remote play
  scores   - View high scores
  sim      - Benchmark a variant with a bot

Examples:
  tilecrush list
  tilecrush play tilematch
  tilecrush play tilematch_blitz --difficulty hard
  tilecrush menu
  tilecrush serve --ssh :2222
  tilecrush sim tilematch --games 500`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database (env TILECRUSH_DB_PATH)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error (env TILECRUSH_LOG_LEVEL)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

// setup applies environment defaults to flags the user did not set, then
// configures logging and the game package.
func setup(cmd *cobra.Command, _ []string) error {
	envCfg, err := config.ParseEnv()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if !flags.Changed("db") && envCfg.DBPath != "" {
		flagDBPath = envCfg.DBPath
	}
	if !flags.Changed("log-level") && envCfg.LogLevel != "" {
		flagLogLevel = envCfg.LogLevel
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger.SetLevel(level)

	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	tilematch.SetConfigPath(flagConfig)
	tilematch.SetDifficultyPreset(flagDifficulty)
	return nil
}

// openStore opens the scores database. Games still run without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// gameLogger returns a logger for interactive play. The terminal belongs
// to the game, so records go to ~/.tilecrush/tilecrush.log.
func gameLogger() (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	dir := filepath.Join(home, ".tilecrush")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "tilecrush.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	l := log.NewWithOptions(f, log.Options{ReportTimestamp: true, Prefix: "tilecrush"})
	l.SetLevel(logger.GetLevel())
	return l, func() { f.Close() }
}
