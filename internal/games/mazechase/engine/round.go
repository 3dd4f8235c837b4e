package engine

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/mazechase/internal/core"
)

// RoundState is the state of the round controller.
type RoundState int

const (
	Playing RoundState = iota
	GameOver
)

func (s RoundState) String() string {
	if s == GameOver {
		return "game_over"
	}
	return "playing"
}

// ErrInvalidSpawn is returned when an agent would start inside a wall.
var ErrInvalidSpawn = errors.New("engine: invalid spawn")

// Config holds the fixed tuning of a round.
type Config struct {
	CellSize          int
	PlayerSpeed       int
	AdversarySpeed    int
	Lives             int
	CollectiblePoints int
	DeadEnd           DeadEndPolicy
}

// DefaultConfig returns the classic tuning: 40px cells, speeds 5 and 4,
// three lives, ten points per collectible.
func DefaultConfig() Config {
	return Config{
		CellSize:          40,
		PlayerSpeed:       5,
		AdversarySpeed:    4,
		Lives:             3,
		CollectiblePoints: 10,
		DeadEnd:           DeadEndReverse,
	}
}

// AdversarySpawn describes where an adversary starts and which way it faces.
type AdversarySpawn struct {
	Cell    Point
	Heading Heading
	Name    string
}

// Layout is everything needed to build a round: the maze codes, the tunnel
// rows and the spawn points.
type Layout struct {
	Codes       [][]int
	TunnelRows  []int
	Player      Point
	Adversaries []AdversarySpawn
}

// Input is the external request consumed by one tick.
type Input struct {
	Heading Heading // None leaves the queued heading unchanged
	Restart bool    // Honored only in GameOver
}

// Outcome reports what happened during one tick.
type Outcome struct {
	State     RoundState
	Consumed  bool // The player picked up a collectible
	Hit       bool // The player was caught
	Cleared   bool // The last collectible was taken and the board was refilled
	Restarted bool
}

// Round owns the grid and every agent and advances them in a fixed order.
type Round struct {
	cfg         Config
	layout      Layout
	rng         Rand
	grid        *Grid
	player      *Player
	adversaries []*Adversary
	state       RoundState
	tick        uint64
	boards      int
}

// NewRound builds a round from a layout. rng drives adversary decisions.
func NewRound(layout Layout, cfg Config, rng Rand) (*Round, error) {
	if cfg.CellSize <= 0 {
		return nil, fmt.Errorf("engine: cell size must be positive, got %d", cfg.CellSize)
	}

	grid, err := NewGrid(layout.Codes, layout.TunnelRows)
	if err != nil {
		return nil, err
	}

	r := &Round{
		cfg:    cfg,
		layout: layout,
		rng:    rng,
		grid:   grid,
	}
	r.spawnAgents()

	if !r.player.Fits(grid) {
		return nil, fmt.Errorf("%w: player at (%d, %d)", ErrInvalidSpawn, layout.Player.X, layout.Player.Y)
	}
	for _, a := range r.adversaries {
		if !a.Fits(grid) {
			return nil, fmt.Errorf("%w: %s at (%d, %d)", ErrInvalidSpawn, a.Name, a.Spawn.X, a.Spawn.Y)
		}
	}
	return r, nil
}

// spawnAgents creates fresh agents at their spawn points.
func (r *Round) spawnAgents() {
	r.player = NewPlayer(r.layout.Player, r.cfg.CellSize, r.cfg.PlayerSpeed, r.cfg.Lives)
	r.adversaries = make([]*Adversary, len(r.layout.Adversaries))
	for i, s := range r.layout.Adversaries {
		r.adversaries[i] = NewAdversary(s.Cell, s.Heading, s.Name, r.cfg.CellSize, r.cfg.AdversarySpeed, r.cfg.DeadEnd)
	}
}

// respawn puts every agent back at its spawn point and refills the board.
func (r *Round) respawn() {
	r.player.Respawn()
	for _, a := range r.adversaries {
		a.Respawn()
	}
	r.grid.ResetCollectibles()
}

// Restart begins a new game after a game over: agents are recreated and the
// collectibles restored. It reports false, doing nothing, while Playing.
func (r *Round) Restart() bool {
	if r.state != GameOver {
		return false
	}
	r.spawnAgents()
	r.grid.ResetCollectibles()
	r.state = Playing
	r.boards = 0
	return true
}

// Tick advances the round by one step.
func (r *Round) Tick(in Input) Outcome {
	r.tick++

	if r.state == GameOver {
		if in.Restart && r.Restart() {
			return Outcome{State: r.state, Restarted: true}
		}
		return Outcome{State: r.state}
	}

	if in.Heading != None {
		r.player.Queue(in.Heading)
	}

	out := Outcome{}
	out.Consumed = r.player.Step(r.grid, r.cfg.CollectiblePoints)
	for _, a := range r.adversaries {
		a.Step(r.grid, r.rng)
	}

	if r.caught() {
		out.Hit = true
		r.player.Lives--
		if r.player.Lives > 0 {
			r.respawn()
		} else {
			r.player.Lives = 0
			r.state = GameOver
		}
	} else if out.Consumed && r.grid.Remaining() == 0 {
		out.Cleared = true
		r.boards++
		r.respawn()
	}

	out.State = r.state
	return out
}

// caught reports whether any adversary is within half a cell of the player
// on both axes.
func (r *Round) caught() bool {
	half := r.cfg.CellSize / 2
	for _, a := range r.adversaries {
		if core.Abs(r.player.X-a.X) < half && core.Abs(r.player.Y-a.Y) < half {
			return true
		}
	}
	return false
}

// State returns the current round state.
func (r *Round) State() RoundState {
	return r.state
}

// Grid returns the maze. Callers must not mutate it between ticks.
func (r *Round) Grid() *Grid {
	return r.grid
}

// Player returns the player agent.
func (r *Round) Player() *Player {
	return r.player
}

// Adversaries returns the adversaries in update order.
func (r *Round) Adversaries() []*Adversary {
	return r.adversaries
}

// Config returns the tuning the round was built with.
func (r *Round) Config() Config {
	return r.cfg
}

// Ticks returns the number of ticks processed.
func (r *Round) Ticks() uint64 {
	return r.tick
}

// Boards returns how many times the board was cleared in the current game.
func (r *Round) Boards() int {
	return r.boards
}
