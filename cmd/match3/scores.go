package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mubatu/match3-game/internal/platform/tui"
	"github.com/mubatu/match3-game/internal/storage"
)

var (
	flagScoresPlain bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Browse the high score table",
	Long: `Browse the recorded sessions. In a terminal this opens the
interactive scoreboard; --plain prints the top 10 as text instead,
and is also used automatically when output is piped.

Examples:
  match3 scores
  match3 scores --plain
  match3 scores --clear
  match3 scores --db ./scores.db`,
	Run: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresPlain, "plain", false, "Print the top 10 as plain text")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded scores")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("All scores cleared.")
		return
	}

	fd := int(os.Stdout.Fd())
	if flagScoresPlain || !term.IsTerminal(fd) {
		printScores(store)
		return
	}

	width, height := 80, 24
	if w, h, sizeErr := term.GetSize(fd); sizeErr == nil {
		width, height = w, h
	}

	if _, err := tui.RunScoreboard(store, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error showing scoreboard: %v\n", err)
		os.Exit(1)
	}
}

// printScores writes the top 10 as a plain-text table, for --plain and
// non-terminal output.
func printScores(store *storage.Store) {
	scores, err := store.TopScores(10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("High Scores - Match-3")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'match3 play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-10s  %-6s  %-8s  %s\n", "Rank", "Score", "Moves", "Cascades", "Date")
	fmt.Printf("  %-4s  %-10s  %-6s  %-8s  %s\n", "----", "-----", "-----", "--------", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-6d  %-8d  %s\n", i+1, entry.Score, entry.Moves, entry.Cascades, dateStr)
	}

	fmt.Println()
	if stats, err := store.GetSessionStats(); err == nil {
		fmt.Printf("Best: %d over %d sessions\n", stats.HighScore, stats.Sessions)
	}
}
