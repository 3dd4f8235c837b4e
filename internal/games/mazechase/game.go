// Package mazechase adapts the maze-chase engine to the terminal platform:
// it maps platform actions to headings, owns pause state and renders the
// round into a screen buffer.
package mazechase

import (
	"math/rand"

	"github.com/vovakirdan/mazechase/internal/config"
	"github.com/vovakirdan/mazechase/internal/core"
	"github.com/vovakirdan/mazechase/internal/games/mazechase/engine"
	"github.com/vovakirdan/mazechase/internal/games/mazechase/levels"
	"github.com/vovakirdan/mazechase/internal/registry"
)

// GameIDPrefix prefixes the registry ID of every maze but the default one.
const GameIDPrefix = "mazechase"

// bannerTicks is how long the caught / board cleared banner stays up.
const bannerTicks = 90

// Package-level settings applied on Reset (like the breakout pattern).
var (
	configPath       string
	difficultyPreset = config.DifficultyNormal
)

// SetConfigPath sets a custom config file path. Empty uses the search order.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the preset new games start with.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// Game implements registry.Game for one maze.
type Game struct {
	level      levels.Level
	cfg        config.MazeChaseConfig
	difficulty config.DifficultyPreset
	round      *engine.Round
	seed       int64

	paused    bool
	banner    string
	bannerFor int
	err       error // Set when the round could not be built
}

// New creates a game for the given maze. The round is built by Reset.
func New(level levels.Level) *Game {
	return &Game{
		level:      level,
		cfg:        config.DefaultMazeChaseConfig(),
		difficulty: difficultyPreset,
	}
}

// GameID returns the registry ID for a maze.
func GameID(mazeID string) string {
	if mazeID == levels.DefaultID {
		return GameIDPrefix
	}
	return GameIDPrefix + "_" + mazeID
}

func init() {
	builtin, err := levels.Builtin()
	if err != nil {
		return
	}
	for _, lvl := range builtin {
		registry.Register(GameID(lvl.ID), func() registry.Game {
			return New(lvl)
		})
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID(g.level.ID)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.level.ID == levels.DefaultID {
		return "Maze Chase"
	}
	return "Maze Chase: " + g.level.Name
}

// Level returns the maze being played.
func (g *Game) Level() levels.Level {
	return g.level
}

// Difficulty returns the preset applied on Reset.
func (g *Game) Difficulty() string {
	return string(g.difficulty)
}

// SetDifficulty changes the preset used from the next Reset on.
func (g *Game) SetDifficulty(name string) error {
	preset, err := config.ParseDifficultyPreset(name)
	if err != nil {
		return err
	}
	g.difficulty = preset
	return nil
}

// Reset loads configuration and starts a fresh round seeded from cfg.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.seed = cfg.Seed
	g.paused = false
	g.banner = ""
	g.bannerFor = 0
	g.err = nil

	g.cfg = loadConfig(g.difficulty)
	ecfg, err := engineConfig(g.cfg)
	if err != nil {
		g.err = err
		g.round = nil
		return
	}

	g.round, g.err = engine.NewRound(g.level.Layout(), ecfg, rand.New(rand.NewSource(cfg.Seed)))
}

// loadConfig returns the configured tuning, falling back to defaults when
// the file or preset yields an unusable config.
func loadConfig(preset config.DifficultyPreset) config.MazeChaseConfig {
	cfg, err := config.LoadMazeChase(configPath)
	if err != nil {
		cfg = config.DefaultMazeChaseConfig()
	}
	config.ApplyMazeChasePreset(&cfg, preset)
	if cfg.Validate() != nil {
		return config.DefaultMazeChaseConfig()
	}
	return cfg
}

// engineConfig converts the YAML tuning into engine settings.
func engineConfig(cfg config.MazeChaseConfig) (engine.Config, error) {
	policy, err := engine.ParseDeadEndPolicy(cfg.Gameplay.DeadEnd)
	if err != nil {
		return engine.Config{}, err
	}
	return engine.Config{
		CellSize:          cfg.Physics.CellSize,
		PlayerSpeed:       cfg.Physics.PlayerSpeed,
		AdversarySpeed:    cfg.Physics.AdversarySpeed,
		Lives:             cfg.Gameplay.Lives,
		CollectiblePoints: cfg.Gameplay.CollectiblePoints,
		DeadEnd:           policy,
	}, nil
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.round == nil {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) && g.round.State() == engine.Playing {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	out := g.round.Tick(engine.Input{
		Heading: headingFor(in),
		Restart: in.Has(core.ActionRestart),
	})

	switch {
	case out.Hit && out.State == engine.Playing:
		g.showBanner("Caught!")
	case out.Cleared:
		g.showBanner("Board cleared!")
	case out.Restarted:
		g.bannerFor = 0
	case g.bannerFor > 0:
		g.bannerFor--
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) showBanner(text string) {
	g.banner = text
	g.bannerFor = bannerTicks
}

// headingFor maps the directional actions of a frame to a heading. When
// several are held the first of Up, Down, Left, Right wins.
func headingFor(in core.InputFrame) engine.Heading {
	switch {
	case in.Has(core.ActionUp):
		return engine.Up
	case in.Has(core.ActionDown):
		return engine.Down
	case in.Has(core.ActionLeft):
		return engine.Left
	case in.Has(core.ActionRight):
		return engine.Right
	}
	return engine.None
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.round == nil {
		return core.GameState{GameOver: true}
	}
	p := g.round.Player()
	return core.GameState{
		Score:    p.Score,
		Lives:    p.Lives,
		GameOver: g.round.State() == engine.GameOver,
		Paused:   g.paused,
	}
}

// Snapshot returns the engine state for tests and replays.
func (g *Game) Snapshot() engine.Snapshot {
	if g.round == nil {
		return engine.Snapshot{}
	}
	return g.round.Snapshot()
}

// Err returns the error that prevented the last Reset from building a round.
func (g *Game) Err() error {
	return g.err
}

// MinSize returns the smallest screen that fits the maze and HUD.
func (g *Game) MinSize() (w, h int) {
	return g.level.Width() * g.cfg.Render.CellWidth, g.level.Height() + hudHeight + footerHeight
}
