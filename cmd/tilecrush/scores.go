package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/tilecrush/internal/registry"
	"github.com/vovakirdan/tilecrush/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresPlayer string
)

var scoresCmd = &cobra.Command{
	Use:   "scores <variant>",
	Short: "Show high scores for a variant",
	Long: `Display the best finished games for the given variant.

Examples:
  tilecrush scores tilematch
  tilecrush scores tilematch_blitz --limit 20
  tilecrush scores tilematch --player ann`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Only show this player's scores")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := args[0]

	info, ok := registry.Info(gameID)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tilecrush list' to see available variants.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	var scores []storage.ScoreEntry
	if flagScoresPlayer != "" {
		scores, err = store.PlayerScores(gameID, flagScoresPlayer, flagScoresLimit)
	} else {
		scores, err = store.TopScores(gameID, flagScoresLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	p := message.NewPrinter(language.English)
	p.Printf("High Scores - %s\n\n", info.Title)

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'tilecrush play %s' to set the first high score!\n", gameID)
		return
	}

	playerW := runewidth.StringWidth("Player")
	for _, e := range scores {
		playerW = max(playerW, runewidth.StringWidth(e.Player))
	}

	fmt.Printf("  %-4s  %s  %10s  %6s  %5s  %s\n", "Rank", runewidth.FillRight("Player", playerW), "Score", "Moves", "Chain", "Date")
	fmt.Printf("  %-4s  %s  %10s  %6s  %5s  %s\n", "----", runewidth.FillRight("------", playerW), "-----", "-----", "-----", "----")
	for i, e := range scores {
		p.Printf("  %-4d  %s  %10d  %6d  %5s  %s\n",
			i+1,
			runewidth.FillRight(e.Player, playerW),
			e.Score,
			e.Moves,
			fmt.Sprintf("x%d", e.MaxChain),
			e.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		logger.Warn("could not load game stats", "error", err)
		return
	}
	fmt.Println()
	p.Printf("Games played: %d   Best: %d   Average: %.0f   Total: %d\n",
		stats.GamesCount, stats.HighScore, stats.AvgScore, stats.TotalScore)
}
