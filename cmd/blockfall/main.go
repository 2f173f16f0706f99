// blockfall is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	blockfall play [mode]    - Play (mode: marathon or sprint, default marathon)
//	blockfall menu           - Start with an interactive mode picker
//	blockfall list           - List available game modes
//	blockfall scores <mode>  - Show high scores for a mode
//	blockfall serve          - Start SSH server for remote play
//	blockfall web            - Start the companion HTTP server
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.blockfall/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import game modes to register them
	_ "github.com/vovakirdan/blockfall/internal/games/blockfall"
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
	Use:   "blockfall",
	Short: "Blockfall - A falling-block puzzle game for your terminal",
	Long: `Blockfall is a terminal falling-block puzzle game: stack the seven
tetrominoes, clear lines, climb levels as gravity speeds up.

Available commands:
  play     - Play directly (marathon or sprint)
  menu     - Interactive mode picker
  list     - Show all available game modes
  scores   - View high scores
  serve    - Start SSH server for remote play
  web      - Start the companion HTTP server

Examples:
  blockfall play
  blockfall play sprint
  blockfall menu
  blockfall serve --ssh :2222
  blockfall web --port 8080
  blockfall scores blockfall`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.blockfall/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
}
