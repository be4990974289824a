package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
)

var flagLevel int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play one game",
	Long: `Start a game immediately. When it ends you can save your score,
then restart with R or leave with Q.

Controls:
  Left/Right, A/D  - Move (hold to auto-shift)
  Down, S          - Soft drop
  Space            - Hard drop
  J/Up/X           - Rotate clockwise
  K/Z              - Rotate counter-clockwise
  P/Esc            - Pause
  R                - Restart (after game over)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Start at level 1
  normal - Start at level 5
  hard   - Start at level 10
  fixed  - Keep the configured level for the whole game

Examples:
  tetris play
  tetris play --level 12
  tetris play --difficulty fixed --level 8
  tetris play --config ./my-tetris.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Start level (overrides config and difficulty)")
}

func runPlay(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagLevel != 0 && (flagLevel < 1 || flagLevel > cfg.MaxLevel) {
		fmt.Fprintf(os.Stderr, "Error: --level must be within 1..%d\n", cfg.MaxLevel)
		os.Exit(1)
	}

	game, err := gameFactory(cfg)(flagLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := newLogger(true)
	defer closeLog()

	// Open score storage
	store, err := openStore(cmd, cfg.Scoring.TopN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, runtimeConfig(), tui.GameOptions{
		Store:       store,
		Logger:      logger,
		HoldRelease: cfg.Timing.HoldRelease(),
		TopN:        cfg.Scoring.TopN,
		Player:      os.Getenv("USER"),
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
