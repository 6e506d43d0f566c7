package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/platform/tui"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagP1         string
	flagP2         string
	flagTournament string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a match",
	Long: `Start a two-player match on this terminal.

Controls (defaults, see the match config):
  W/S        - Left paddle
  Up/Down    - Right paddle
  P          - Pause/resume
  Esc        - Restart while paused
  R/N/H      - Rematch, new match, history (after game over)
  Q/Ctrl+C   - Quit

Both players press their "up" key to get ready. Moving a paddle into the
ball's direction as it hits adds spin.

Difficulty options:
  easy   - Slower serves, no speed-up during rallies
  normal - Config as is
  hard   - Faster serves, rallies accelerate twice as fast
  fixed  - Ball keeps its serve speed

Examples:
  pong play
  pong play --p1 ann --p2 bob
  pong play --difficulty hard
  pong play --config ./my-match.yaml
  pong play --tournament <id>`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom match config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagP1, "p1", "", "Left player name")
	playCmd.Flags().StringVar(&flagP2, "p2", "", "Right player name")
	playCmd.Flags().StringVar(&flagTournament, "tournament", "", "Play the next match of this tournament")
}

// loadMatchConfig loads the config file and applies the difficulty preset.
func loadMatchConfig(path, difficulty string) (config.MatchConfig, error) {
	preset, err := config.ParsePreset(difficulty)
	if err != nil {
		return config.MatchConfig{}, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.MatchConfig{}, err
	}
	config.ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return config.MatchConfig{}, err
	}
	return cfg, nil
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadMatchConfig(flagConfig, flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closer, err := tui.NewFileLogger(tui.DefaultLogPath, flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		if flagTournament != "" {
			fmt.Fprintf(os.Stderr, "Error opening match database: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Warning: could not open match database: %v\n", err)
		// Continue without storage - matches still work
		store = nil
	}

	runErr := tui.Run(tui.Options{
		Config:       cfg,
		Store:        store,
		Logger:       logger,
		Seed:         flagSeed,
		FPS:          flagFPS,
		Width:        width,
		Height:       height,
		Players:      [2]string{flagP1, flagP2},
		TournamentID: flagTournament,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running match: %v\n", runErr)
		os.Exit(1)
	}
}
