package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/storage"
)

var tournamentCmd = &cobra.Command{
	Use:   "tournament",
	Short: "Create and inspect tournament brackets",
	Long: `Tournaments are single-elimination brackets. Players are paired in the
order given; winners advance automatically when a match result is saved.
Tournament matches cannot be restarted.

Examples:
  pong tournament create cup ann bob cid dan
  pong tournament show <id>
  pong play --tournament <id>`,
}

var tournamentCreateCmd = &cobra.Command{
	Use:   "create <name> <player>...",
	Short: "Create a bracket",
	Args:  cobra.MinimumNArgs(3),
	Run:   runTournamentCreate,
}

var tournamentShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a bracket",
	Args:  cobra.ExactArgs(1),
	Run:   runTournamentShow,
}

func init() {
	tournamentCmd.AddCommand(tournamentCreateCmd)
	tournamentCmd.AddCommand(tournamentShowCmd)
}

func runTournamentCreate(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening match database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	t, err := store.CreateTournament(args[0], args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating tournament: %v\n", err)
		if errors.Is(err, storage.ErrBracketSize) {
			fmt.Fprintln(os.Stderr, "Use 2, 4, 8, 16... players.")
		}
		os.Exit(1)
	}

	fmt.Printf("Created tournament %q\n", t.Name)
	fmt.Printf("ID: %s\n", t.ID)
	fmt.Println()
	printBracket(t)
	fmt.Println()
	fmt.Printf("Play it with: pong play --tournament %s\n", t.ID)
}

func runTournamentShow(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening match database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	t, err := store.Tournament(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving tournament: %v\n", err)
		os.Exit(1)
	}
	if t == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown tournament %q\n", args[0])
		os.Exit(1)
	}

	fmt.Printf("Tournament - %s (%s)\n", t.Name, t.Status)
	if t.Champion != "" {
		fmt.Printf("Champion: %s\n", t.Champion)
	}
	fmt.Println()
	printBracket(t)
}

func printBracket(t *storage.Tournament) {
	round := 0
	for _, m := range t.Matches {
		if m.Round != round {
			round = m.Round
			fmt.Printf("Round %d of %d\n", round, t.Rounds())
		}
		fmt.Printf("  %d. %-12s vs %-12s  %s\n", m.Slot+1, orTBD(m.Player1), orTBD(m.Player2), bracketStatus(m))
	}
}

func bracketStatus(m storage.BracketMatch) string {
	switch {
	case m.Winner != "":
		return "winner: " + m.Winner
	case m.Ready():
		return "ready"
	default:
		return "waiting"
	}
}

func orTBD(name string) string {
	if name == "" {
		return "TBD"
	}
	return name
}
