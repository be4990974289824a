package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the title menu",
	Long: `Start in interactive menu mode.

Pick a start level, check the high scores, and play as many games as
you like. After each game you return to the menu.

Controls:
  Up/Down/j/k     - Navigate menu
  Left/Right/h/l  - Change start level
  Enter/Space     - Select
  Q               - Quit

Examples:
  tetris menu
  tetris menu --difficulty hard
  tetris menu --store csv`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := newLogger(true)
	defer closeLog()

	store, err := openStore(cmd, cfg.Scoring.TopN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores: %v\n", err)
		store = nil
	}

	runErr := tui.RunSession(tui.SessionConfig{
		NewGame:    gameFactory(cfg),
		StartLevel: cfg.StartLevel,
		MaxLevel:   cfg.MaxLevel,
		Game: tui.GameOptions{
			Store:       store,
			Logger:      logger,
			HoldRelease: cfg.Timing.HoldRelease(),
			TopN:        cfg.Scoring.TopN,
			Player:      os.Getenv("USER"),
		},
	}, runtimeConfig())

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
