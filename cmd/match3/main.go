// match3 is a terminal match-3 puzzle game.
//
// Usage:
//
//	match3 play          - Play in the current terminal
//	match3 serve         - Start SSH server for remote play
//	match3 scores        - Show the high score table
//	match3 sim           - Run a headless simulation
//
// Global flags:
//
//	--fps <rate>    - Set animation tick rate (default: 30)
//	--seed <value>  - Set RNG seed for reproducible sessions
//	--db <path>     - Set database path (default: ~/.match3/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mubatu/match3-game/internal/storage"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "match3",
	Short: "Match-3 - A terminal puzzle game",
	Long: `Match-3 is a terminal puzzle game: swap adjacent tiles to line up
three or more of a color, trigger power-ups and chase deep cascades.

Available commands:
  play     - Play in the current terminal
  serve    - Start SSH server for remote play
  scores   - View the high score table
  sim      - Run a headless simulation

Examples:
  match3 play
  match3 play --difficulty hard
  match3 serve --ssh :2222
  match3 scores
  match3 sim --moves 200 --seed 42`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Animation tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}
