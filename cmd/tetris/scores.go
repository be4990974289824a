package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the high score table",
	Long: `Display the saved high scores, best first.

Examples:
  tetris scores
  tetris scores --store csv --db ./scores.csv
  tetris scores --store redis --redis-url redis://localhost:6379/1`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func runScores(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := openStore(cmd, cfg.Scoring.TopN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	scores, err := store.Load(cmd.Context())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Println("High Scores - Tetris")
	fmt.Println()
	fmt.Println(tui.FormatScoreTable(scores))

	if len(scores) == 0 {
		fmt.Println()
		fmt.Println("Play 'tetris play' to set the first high score!")
		return
	}

	stats, err := store.Stats(cmd.Context())
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %d (%d entries kept)\n", stats.Best, stats.Count)
	}
}
