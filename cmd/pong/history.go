package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/storage"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent matches",
	Long: `Display the most recent finished matches, newest first.

Examples:
  pong history
  pong history --limit 5`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of matches to show")
}

func runHistory(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening match database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	matches, err := store.RecentMatches(flagHistoryLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving matches: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Recent Matches")
	fmt.Println()

	if len(matches) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Println("Play 'pong play' to record the first one!")
		return
	}

	fmt.Printf("  %-16s  %-12s  %-5s  %-12s  %-7s  %s\n", "Date", "Left", "Score", "Right", "Rallies", "Time")
	fmt.Printf("  %-16s  %-12s  %-5s  %-12s  %-7s  %s\n", "----", "----", "-----", "-----", "-------", "----")

	for _, m := range matches {
		fmt.Printf("  %-16s  %-12s  %-5s  %-12s  %-7d  %s\n",
			m.CreatedAt.Format("2006-01-02 15:04"),
			m.Player1,
			fmt.Sprintf("%d-%d", m.Score1, m.Score2),
			m.Player2,
			m.TotalRallies,
			formatSeconds(m.Duration),
		)
	}
}
