package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/storage"
)

var playerCmd = &cobra.Command{
	Use:   "player <name>",
	Short: "Show a player's record",
	Long: `Display the aggregated record of a player across all stored matches.
Names are matched case-insensitively.

Examples:
  pong player ann`,
	Args: cobra.ExactArgs(1),
	Run:  runPlayer,
}

func runPlayer(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening match database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	sum, err := store.PlayerSummary(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving player: %v\n", err)
		os.Exit(1)
	}
	if sum == nil {
		fmt.Printf("No matches recorded for %q.\n", args[0])
		return
	}

	fmt.Printf("Player - %s\n", sum.Name)
	fmt.Println()
	fmt.Printf("  %-20s %d\n", "Matches", sum.Matches)
	fmt.Printf("  %-20s %d\n", "Wins", sum.Wins)
	fmt.Printf("  %-20s %d\n", "Losses", sum.Losses)
	fmt.Printf("  %-20s %d\n", "Best win streak", sum.BestStreak)
	fmt.Printf("  %-20s %s\n", "Fastest won rally", formatSeconds(sum.FastestWonRally))
	fmt.Printf("  %-20s %.0f u/s\n", "Top ball speed", sum.MaxSpeed)
	fmt.Printf("  %-20s %d\n", "Spin shots", sum.Effects)
	fmt.Printf("  %-20s %d\n", "Paddle hits", sum.PaddleHits)
}

// formatSeconds prints a duration as seconds, "-" when unset.
func formatSeconds(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
