package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tilecrush/internal/core"
	"github.com/vovakirdan/tilecrush/internal/platform/tui"
	"github.com/vovakirdan/tilecrush/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <variant>",
	Short: "Play a variant",
	Long: `Start playing the given variant.

Controls:
  Arrows/WASD/hjkl  - Move the cursor
  Enter/Space       - Select a tile, or swap with the selected one
  Direction         - With a tile selected, swap it that way
  Esc               - Cancel the selection
  ?                 - Show a hint
  P                 - Pause
  R                 - Restart (after time is up)
  Ctrl+S            - Save a text screenshot
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - 50% more time, one tile kind fewer
  normal - the configured board and clock
  hard   - a third less time, one tile kind more
  fixed  - config values exactly as written

Examples:
  tilecrush play tilematch
  tilecrush play tilematch_blitz --difficulty easy
  tilecrush play tilematch --seed 42
  tilecrush play tilematch --config ./my-board.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tilecrush list' to see available variants.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	gameLog, closeLog := gameLogger()

	_, runErr := tui.Run(game, store, terminalConfig(), tui.GameOptions{
		Player: currentUser(),
		Logger: gameLog,
	})

	closeLog()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// terminalConfig sizes the runtime config to the current terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// currentUser names the local player for the leaderboard.
func currentUser() string {
	for _, key := range []string{"USER", "USERNAME"} {
		if u := os.Getenv(key); u != "" {
			return u
		}
	}
	return "local"
}
