package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilecrush/internal/config"
	"github.com/vovakirdan/tilecrush/internal/registry"
	"github.com/vovakirdan/tilecrush/internal/sim"
)

var (
	flagSimGames   int
	flagSimMoves   int
	flagSimWorkers int
	flagSimQuiet   bool
)

var simCmd = &cobra.Command{
	Use:   "sim <variant>",
	Short: "Play many games with a bot and report score statistics",
	Long: `Play a variant headlessly with a greedy bot that always takes the swap
with the best immediate score. Each game gets a fixed move budget instead of
a clock. Games run in parallel; game i uses seed --seed + i, so a run with
a fixed seed is reproducible.

Examples:
  tilecrush sim tilematch
  tilecrush sim tilematch_blitz --games 1000 --moves 40
  tilecrush sim tilematch --difficulty hard --seed 7 --workers 4`,
	Args: cobra.ExactArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimGames, "games", 200, "Number of games to play")
	simCmd.Flags().IntVar(&flagSimMoves, "moves", 60, "Move budget per game")
	simCmd.Flags().IntVar(&flagSimWorkers, "workers", 0, "Parallel workers (0 = one per CPU)")
	simCmd.Flags().BoolVar(&flagSimQuiet, "quiet", false, "Hide the progress bar")
}

func runSim(_ *cobra.Command, args []string) error {
	variant := args[0]
	if !registry.Exists(variant) {
		return fmt.Errorf("unknown variant %q", variant)
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	cfg, err := config.Resolve(flagConfig, variant, preset)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	simCfg := sim.Config{
		Engine:  cfg.Engine(),
		Games:   flagSimGames,
		Moves:   flagSimMoves,
		Workers: flagSimWorkers,
		Seed:    seed,
	}
	if !flagSimQuiet {
		simCfg.Progress = os.Stderr
	}

	logger.Info("simulation started",
		"variant", variant,
		"board", fmt.Sprintf("%dx%d", simCfg.Engine.Rows, simCfg.Engine.Cols),
		"kinds", simCfg.Engine.Kinds,
		"games", simCfg.Games,
		"moves", simCfg.Moves,
		"seed", seed,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := sim.Run(ctx, simCfg)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("simulation interrupted: %w", context.Cause(ctx))
		}
		return err
	}

	logger.Debug("simulation finished", "elapsed", report.Elapsed)
	fmt.Println()
	report.Write(os.Stdout)
	return nil
}
