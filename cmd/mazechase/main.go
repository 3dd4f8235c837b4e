// mazechase is a terminal maze-chase game: steer through a maze, collect
// every dot and avoid the adversaries.
//
// Usage:
//
//	mazechase list              - List available mazes
//	mazechase play [maze]       - Play a maze (default: classic)
//	mazechase menu              - Start menu to pick mazes interactively
//	mazechase serve             - Start SSH server for remote play
//	mazechase replays           - List recorded replays
//	mazechase replay <id>       - Re-simulate a replay and check its score
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.mazechase/replays.db)
//	--config <path>      - Custom tuning YAML
//	--maze <path>        - Extra maze file or directory
//	--difficulty <name>  - easy, normal or hard
//	--log-file <path>    - Write logs to a file
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/mazechase/internal/config"
	"github.com/vovakirdan/mazechase/internal/games/mazechase"
	"github.com/vovakirdan/mazechase/internal/games/mazechase/levels"
	"github.com/vovakirdan/mazechase/internal/registry"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagMaze       string
	flagDifficulty string
	flagLogFile    string
	flagLogLevel   string

	// difficulty is the parsed --difficulty preset.
	difficulty = config.DifficultyNormal
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mazechase",
	Short: "Maze Chase - a maze chase game for your terminal",
	Long: `Maze Chase is a terminal maze game: collect every dot on the board
while the adversaries roam the corridors. Each hit costs a life.

Available commands:
  list     - Show all available mazes
  play     - Play a maze directly
  menu     - Interactive maze picker menu
  serve    - Start SSH server for remote play
  replays  - List, browse and delete recorded games
  replay   - Re-simulate a recorded game

Examples:
  mazechase list
  mazechase play
  mazechase play twin --difficulty hard
  mazechase menu
  mazechase serve --ssh :2222
  mazechase replay 3f2a9c1e-...`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	defaultDB := filepath.Join(config.DefaultDataDir(), "replays.db")

	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second), env "+config.EnvFPS)
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", defaultDB, "Path to replay database, env "+config.EnvDB)
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML, env "+config.EnvConfig)
	rootCmd.PersistentFlags().StringVar(&flagMaze, "maze", "", "Extra maze YAML file or directory")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
}

// setup loads .env, applies environment defaults to flags that were not
// set on the command line and registers extra mazes.
func setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadEnv(); err != nil {
		return fmt.Errorf("cannot load .env: %w", err)
	}

	flags := cmd.Flags()
	if !flags.Changed("db") {
		flagDBPath = config.EnvOr(config.EnvDB, flagDBPath)
	}
	if !flags.Changed("fps") {
		flagFPS = config.EnvIntOr(config.EnvFPS, flagFPS)
	}
	if !flags.Changed("config") {
		flagConfig = config.EnvOr(config.EnvConfig, flagConfig)
	}

	preset, err := config.ParseDifficultyPreset(flagDifficulty)
	if err != nil {
		return err
	}
	difficulty = preset

	mazechase.SetConfigPath(flagConfig)
	mazechase.SetDifficultyPreset(difficulty)

	if flagMaze != "" {
		if err := registerMazes(flagMaze); err != nil {
			return err
		}
	}
	return nil
}

// registerMazes loads maze files from a file or directory and registers
// each one as a game next to the built-in mazes.
func registerMazes(path string) error {
	mazes, err := levels.NewLoader(path).LoadAll()
	if err != nil {
		return fmt.Errorf("cannot load mazes from %s: %w", path, err)
	}
	if len(mazes) == 0 {
		return fmt.Errorf("no valid mazes in %s", path)
	}

	for _, lvl := range mazes {
		id := mazechase.GameID(lvl.ID)
		if registry.Exists(id) {
			return fmt.Errorf("maze %q in %s clashes with a registered maze", lvl.ID, lvl.FilePath)
		}
		registry.Register(id, func() registry.Game {
			return mazechase.New(lvl)
		})
	}
	return nil
}

// newLogger builds the command logger. Interactive commands own the
// terminal, so they log nowhere unless --log-file is given. The returned
// function closes the log file.
func newLogger(interactive bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case interactive:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "mazechase",
		Level:           level,
	})
	return logger, closeFn, nil
}

// playerName names the local player in recorded replays.
func playerName() string {
	return config.EnvOr("USER", "local")
}

// exitf prints an error and exits with status 1.
func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
