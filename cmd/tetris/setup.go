package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

const (
	defaultDBPath  = "~/.tetris/scores.db"
	defaultCSVPath = "~/.tetris/scores.csv"
	defaultLogPath = "~/.tetris/tetris.log"
)

// loadConfig reads the game config and applies --difficulty.
func loadConfig() (config.TetrisConfig, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.TetrisConfig{}, err
	}

	cfg, err := config.LoadTetris(flagConfig)
	if err != nil {
		return cfg, err
	}
	config.ApplyTetrisPreset(&cfg, preset)
	return cfg, nil
}

// storeOptions builds storage options from the global flags. The CSV
// backend gets its own default file so it never opens the SQLite one.
func storeOptions(cmd *cobra.Command, topN int) storage.Options {
	path := flagDBPath
	backend := storage.Backend(strings.ToLower(flagStore))
	if backend == storage.BackendCSV && !cmd.Flags().Changed("db") {
		path = defaultCSVPath
	}
	return storage.Options{
		Backend:  backend,
		Path:     path,
		RedisURL: flagRedisURL,
		TopN:     topN,
	}
}

func openStore(cmd *cobra.Command, topN int) (storage.ScoreStore, error) {
	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()
	return storage.Open(ctx, storeOptions(cmd, topN))
}

// newLogger opens the --log file. Interactive commands own the terminal,
// so when the file cannot be opened they log nowhere; other commands
// fall back to stderr.
func newLogger(interactive bool) (*log.Logger, func()) {
	var w io.Writer = os.Stderr
	if interactive {
		w = io.Discard
	}
	closeFn := func() {}

	if f, err := openLogFile(flagLogPath); err == nil {
		w = f
		closeFn = func() { f.Close() }
	} else if !interactive {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "tetris",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closeFn
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, fmt.Errorf("no log path")
	}
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, path[1:])
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
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

// gameFactory creates games from the registry with cfg.
func gameFactory(cfg config.TetrisConfig) tui.GameFactory {
	return func(startLevel int) (registry.Game, error) {
		return registry.Create(tetris.GameID, tetris.Options{
			Config:     cfg,
			StartLevel: startLevel,
		})
	}
}
