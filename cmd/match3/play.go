package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mubatu/match3-game/internal/config"
	"github.com/mubatu/match3-game/internal/core"
	"github.com/mubatu/match3-game/internal/platform/tui"
	"github.com/mubatu/match3-game/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play match-3 in the terminal",
	Long: `Start a match-3 session in the current terminal.

Controls:
  Arrows/WASD  - Move cursor
  Enter/Space  - Select tile, select an adjacent tile to swap
               - Select a rocket or snitch twice to activate it
  Esc          - Cancel selection
  R            - Restart with a fresh board
  Q/Ctrl+C     - Quit (saves the session score)

Difficulty options:
  easy   - 4 tile colors, frequent matches
  normal - 5 tile colors
  hard   - 6 tile colors, sparse matches

Examples:
  match3 play
  match3 play --difficulty easy
  match3 play --config ./my-match3.yaml
  match3 play --seed 42`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runPlay(cmd *cobra.Command, args []string) {
	game, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagDifficulty != "" {
		config.ApplyPreset(&game, config.DifficultyPreset(flagDifficulty))
		if err := game.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	cfg := core.DefaultRuntimeConfig()
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, cfg)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
