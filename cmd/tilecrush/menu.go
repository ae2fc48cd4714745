package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilecrush/internal/platform/tui"
	"github.com/vovakirdan/tilecrush/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a variant and difficulty from a menu",
	Long: `Start TileCrush in interactive menu mode.

Choose a variant, then a difficulty. When the clock runs out press M to
return to the menu, R to play again or Q to quit. Tab opens the scoreboard.

Controls:
  Up/Down/j/k  - Navigate
  Enter/Space  - Select
  Esc          - Back
  Tab          - Scoreboard
  Q            - Quit

Examples:
  tilecrush menu
  tilecrush menu --fps 30
  tilecrush menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStore()
	defer func() {
		if store != nil {
			store.Close()
		}
	}()
	gameLog, closeLog := gameLogger()
	defer closeLog()

	cfg := terminalConfig()
	for {
		result, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = result.Config

		switch {
		case result.Quit:
			return

		case result.WantsScoreboard:
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
				return
			}
			if !goBack {
				return
			}
			continue
		}

		game, err := registry.Create(result.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		backToMenu, err := tui.Run(game, store, cfg, tui.GameOptions{
			Player: currentUser(),
			Preset: result.Preset,
			Logger: gameLog,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			return
		}
		if !backToMenu {
			return
		}
	}
}
