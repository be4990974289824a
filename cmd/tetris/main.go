// tetris is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	tetris play              - Play one game
//	tetris menu              - Title menu with level picker and high scores
//	tetris scores            - Show the high score table
//	tetris serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible piece order
//	--store <backend>     - Score backend: sqlite, csv or redis
//	--db <path>           - Scores file (default: ~/.tetris/scores.db)
//	--redis-url <url>     - Redis URL for the redis backend
//	--config <path>       - Custom game config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log <path>          - Log file (default: ~/.tetris/tetris.log)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagStore      string
	flagDBPath     string
	flagRedisURL   string
	flagConfig     string
	flagDifficulty string
	flagLogPath    string
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris - falling blocks in your terminal",
	Long: `A terminal Tetris with a 10x20 well, wall kicks, classic scoring
and a persistent high score table.

Available commands:
  play     - Play one game directly
  menu     - Title menu with level picker and high scores
  scores   - Show the high score table
  serve    - Start SSH server for remote play

Examples:
  tetris play
  tetris play --level 10
  tetris menu --difficulty easy
  tetris scores --store csv --db ./scores.csv
  tetris serve --ssh :2222 --store redis`,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagStore, "store", "sqlite", "Score backend: sqlite, csv, redis")
	pf.StringVar(&flagDBPath, "db", defaultDBPath, "Path to scores database (or CSV file)")
	pf.StringVar(&flagRedisURL, "redis-url", "", "Redis URL (default redis://localhost:6379/0)")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogPath, "log", defaultLogPath, "Path to log file")
	pf.BoolVar(&flagDebug, "debug", false, "Log at debug level")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
