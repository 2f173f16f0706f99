package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores <mode>",
	Short: "Show high scores for a mode",
	Long: `Display the top 10 high scores for the specified game mode.

Examples:
  blockfall scores blockfall
  blockfall scores blockfall_sprint`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'blockfall list' to see available modes.")
		os.Exit(1)
	}

	// Get mode title
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'blockfall play' to set the first high score!\n")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %-6s  %-5s  %s\n", "Rank", "Score", "Lines", "Level", "Date")
	fmt.Printf("  %-4s  %-10s  %-6s  %-5s  %s\n", "----", "-----", "-----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-6d  %-5d  %s\n", i+1, entry.Score, entry.Lines, entry.Level, dateStr)
	}

	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Best: %d   Games: %d   Total lines: %d\n",
			stats.HighScore, stats.GamesCount, stats.TotalLines)
	}
}
