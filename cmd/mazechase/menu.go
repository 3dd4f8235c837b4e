package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mazechase/internal/platform/tui"
	"github.com/vovakirdan/mazechase/internal/registry"
	"github.com/vovakirdan/mazechase/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a maze picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to pick a maze and left/right to pick a difficulty.
After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k     - Navigate mazes
  Left/Right/h/l  - Change difficulty
  Enter/Space     - Play
  Tab             - Browse replays
  Q               - Quit

Examples:
  mazechase menu
  mazechase menu --fps 30
  mazechase menu --db ./replays.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		exitf("%v", err)
	}
	defer closeLog()

	// Open replay storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open replay database: %v\n", err)
		store = nil
	}

	cfg := terminalConfig()
	preset := difficulty

	// Menu loop
	for {
		// Show menu and get selection
		menuResult, err := tui.RunMenu(store, cfg, preset)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config
		preset = menuResult.Difficulty

		// Check if user quit
		if menuResult.Quit {
			break
		}

		// Check if user wants the replay browser
		if menuResult.WantsReplays {
			goBack, rErr := tui.RunReplays(store, cfg.ScreenW, cfg.ScreenH)
			if rErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", rErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from replays
		}

		// Create game instance
		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}
		if t, ok := game.(registry.Tunable); ok {
			if err := t.SetDifficulty(string(preset)); err != nil {
				logger.Warn("ignoring difficulty", "difficulty", preset, "error", err)
			}
		}

		// Run the game; each one gets its own seed unless --seed pins it
		gameCfg := cfg
		gameCfg.Seed = flagSeed
		backToMenu, err := tui.Run(game, store, gameCfg, playerName(), logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		if !backToMenu {
			break
		}

		// Loop back to menu
	}

	// Cleanup
	if store != nil {
		store.Close()
	}
}
