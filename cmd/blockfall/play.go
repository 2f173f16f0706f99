package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blockfall"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevel      int
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play the game",
	Long: `Start playing. The optional mode argument selects marathon (endless,
the default) or sprint (race to 40 lines).

Controls:
  Left/Right or A/D  - Move piece
  Up/W               - Rotate clockwise
  Down/S             - Soft drop
  Space              - Hard drop
  Enter              - Start
  P                  - Pause
  R                  - Restart (after game over)
  Q/Ctrl+C           - Quit

Difficulty options:
  easy   - Start at level 1
  normal - Start at level 3
  hard   - Start at level 5
  fixed  - Gravity stays at the starting speed

Examples:
  blockfall play
  blockfall play sprint
  blockfall play --difficulty hard
  blockfall play --level 8
  blockfall play --config ./my-blockfall.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Starting level (overrides the difficulty preset)")
}

// resolveGameID maps a mode argument to a registered game ID.
func resolveGameID(mode string) (string, bool) {
	switch mode {
	case "", "marathon", "blockfall":
		return "blockfall", true
	case "sprint", "blockfall_sprint":
		return "blockfall_sprint", true
	}
	return "", false
}

// terminalSize returns the terminal dimensions, with fallbacks.
func terminalSize() (int, int) {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

func runPlay(cmd *cobra.Command, args []string) {
	mode := ""
	if len(args) > 0 {
		mode = args[0]
	}

	gameID, ok := resolveGameID(mode)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", mode)
		fmt.Fprintln(os.Stderr, "Run 'blockfall list' to see available modes.")
		os.Exit(1)
	}

	width, height := terminalSize()
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Apply tuning before the game is created
	blockfall.SetConfigPath(flagConfig)
	blockfall.SetDifficultyPreset(flagDifficulty)
	blockfall.SetStartLevel(flagLevel)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
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
