package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mazechase/internal/platform/tui"
	"github.com/vovakirdan/mazechase/internal/replay"
	"github.com/vovakirdan/mazechase/internal/storage"
)

var (
	flagReplayGame  string
	flagReplayLimit int
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "List recorded replays",
	Long: `Display the most recent recorded games, newest first.

Examples:
  mazechase replays
  mazechase replays --game mazechase_twin --limit 5
  mazechase replays browse
  mazechase replays rm 3f2a9c1e-...`,
	Args: cobra.NoArgs,
	Run:  runReplays,
}

var replaysBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse replays interactively",
	Args:  cobra.NoArgs,
	Run:   runReplaysBrowse,
}

var replaysRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a replay",
	Args:  cobra.ExactArgs(1),
	Run:   runReplaysRm,
}

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-simulate a replay",
	Long: `Re-run a recorded game headlessly from its seed and inputs and check
the outcome against the recorded score.

Examples:
  mazechase replay 3f2a9c1e-...`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replaysCmd.Flags().StringVar(&flagReplayGame, "game", "", "Only list replays of this game ID")
	replaysCmd.Flags().IntVar(&flagReplayLimit, "limit", 20, "Maximum number of replays to list")

	replaysCmd.AddCommand(replaysBrowseCmd)
	replaysCmd.AddCommand(replaysRmCmd)
}

// openStore opens the replay database or exits.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitf("opening replay database: %v", err)
	}
	return store
}

func runReplays(_ *cobra.Command, _ []string) {
	store := openStore()
	defer store.Close()

	replays, err := store.ListReplays(flagReplayGame, flagReplayLimit)
	if err != nil {
		store.Close()
		exitf("retrieving replays: %v", err)
	}

	if len(replays) == 0 {
		fmt.Println("No replays recorded yet.")
		fmt.Println()
		fmt.Println("Finish a game with 'mazechase play' to record one!")
		return
	}

	// Print header
	fmt.Printf("  %-36s  %-16s  %-16s  %-10s  %-10s  %6s  %s\n", "ID", "Date", "Game", "Difficulty", "Player", "Score", "Ticks")
	fmt.Printf("  %-36s  %-16s  %-16s  %-10s  %-10s  %6s  %s\n", "--", "----", "----", "----------", "------", "-----", "-----")

	// Print replays
	for _, r := range replays {
		fmt.Printf("  %-36s  %-16s  %-16s  %-10s  %-10s  %6d  %d\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.GameID, r.Difficulty, r.Player, r.Score, r.Ticks)
	}
}

func runReplaysBrowse(_ *cobra.Command, _ []string) {
	store := openStore()
	defer store.Close()

	cfg := terminalConfig()
	if _, err := tui.RunReplays(store, cfg.ScreenW, cfg.ScreenH); err != nil {
		store.Close()
		exitf("%v", err)
	}
}

func runReplaysRm(_ *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	if err := store.DeleteReplay(args[0]); err != nil {
		store.Close()
		exitf("%v", err)
	}
	fmt.Printf("Deleted replay %s\n", args[0])
}

func runReplay(_ *cobra.Command, args []string) {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		exitf("%v", err)
	}
	defer closeLog()

	store := openStore()
	defer store.Close()

	r, err := store.LoadReplay(args[0])
	if err != nil {
		store.Close()
		exitf("%v", err)
	}

	logger.Debug("re-simulating replay", "id", r.ID, "game", r.GameID, "ticks", r.Ticks, "inputs", len(r.Inputs))
	state, err := replay.Verify(r)

	fmt.Printf("Replay %s\n", r.ID)
	fmt.Printf("  Game:       %s\n", r.GameID)
	fmt.Printf("  Difficulty: %s\n", r.Difficulty)
	fmt.Printf("  Player:     %s\n", r.Player)
	fmt.Printf("  Seed:       %d\n", r.Seed)
	fmt.Printf("  Ticks:      %d (%d with input)\n", r.Ticks, len(r.Inputs))
	fmt.Printf("  Recorded:   score %d\n", r.Score)

	switch {
	case errors.Is(err, replay.ErrMismatch):
		fmt.Printf("  Simulated:  score %d, lives %d\n", state.Score, state.Lives)
		store.Close()
		exitf("%v", err)
	case err != nil:
		store.Close()
		exitf("%v", err)
	}

	fmt.Printf("  Simulated:  score %d, lives %d, game over %t\n", state.Score, state.Lives, state.GameOver)
	fmt.Println("Replay verified.")
}
