package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/mazechase/internal/core"
	"github.com/vovakirdan/mazechase/internal/games/mazechase"
	"github.com/vovakirdan/mazechase/internal/platform/tui"
	"github.com/vovakirdan/mazechase/internal/registry"
	"github.com/vovakirdan/mazechase/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [maze]",
	Short: "Play a maze",
	Long: `Start playing the given maze (default: classic). The maze may be
named by maze ID ("twin") or game ID ("mazechase_twin").

Controls:
  Arrows/WASD/HJKL  - Steer
  P/Space           - Pause
  R                 - Restart (after game over)
  Esc/B             - Leave (when paused or after game over)
  Ctrl+S            - Save a screenshot
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - 5 lives, slow adversaries
  normal - 3 lives
  hard   - 2 lives, fast adversaries

Examples:
  mazechase play
  mazechase play twin --difficulty easy
  mazechase play --maze ./mazes tiny
  mazechase play --config ./my-tuning.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

// resolveGameID accepts a maze ID or a game ID.
func resolveGameID(name string) string {
	if name == "" {
		return mazechase.GameIDPrefix
	}
	if registry.Exists(name) {
		return name
	}
	return mazechase.GameID(name)
}

// terminalConfig builds the runtime config from the terminal size and flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func runPlay(_ *cobra.Command, args []string) {
	var name string
	if len(args) > 0 {
		name = args[0]
	}
	gameID := resolveGameID(name)

	// Check if maze exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown maze %q\n", name)
		fmt.Fprintln(os.Stderr, "Run 'mazechase list' to see available mazes.")
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		exitf("%v", err)
	}
	defer closeLog()

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		exitf("creating game: %v", err)
	}

	// Open replay storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open replay database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	_, runErr := tui.Run(game, store, terminalConfig(), playerName(), logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		exitf("running game: %v", runErr)
	}
}
