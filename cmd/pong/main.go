// pong is a two-player paddle-ball game for a shared terminal keyboard.
//
// Usage:
//
//	pong play                     - Play a match on this terminal
//	pong serve                    - Start SSH server for remote play
//	pong history                  - Show recent matches
//	pong player <name>            - Show a player's record
//	pong tournament create ...    - Create a single-elimination bracket
//	pong tournament show <id>     - Show a bracket
//
// Global flags:
//
//	--fps <rate>        - Set screen refresh rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible serves
//	--db <path>         - Set database path (default: ~/.pong/pong.db)
//	--log-level <lvl>   - Set log level (debug, info, warn, error)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pong",
	Short: "Terminal Pong - two players, one keyboard",
	Long: `Terminal Pong is a two-player paddle-ball game played on one keyboard.
Matches, player records and tournament brackets are stored locally.

Available commands:
  play        - Play a match on this terminal
  serve       - Start SSH server for remote play
  history     - Show recent matches
  player      - Show a player's record
  tournament  - Create and inspect tournament brackets

Examples:
  pong play
  pong play --p1 ann --p2 bob --difficulty hard
  pong serve --ssh :2222
  pong history --limit 5
  pong tournament create cup ann bob cid dan`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Screen refresh rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pong/pong.db", "Path to match database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(tournamentCmd)
}
