// Package replay records the input frames of a game and re-simulates them
// headlessly. Games are deterministic for a given seed and input sequence,
// so a replay is just the runtime config plus the non-empty frames.
package replay

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/mazechase/internal/core"
	"github.com/vovakirdan/mazechase/internal/registry"
	"github.com/vovakirdan/mazechase/internal/storage"
)

// ErrMismatch is returned by Verify when re-simulation disagrees with the
// recorded outcome.
var ErrMismatch = errors.New("replay: outcome mismatch")

// Recorder captures the frames fed to a game, one call per tick.
type Recorder struct {
	gameID     string
	difficulty string
	player     string
	cfg        core.RuntimeConfig
	tick       uint64
	inputs     []storage.ReplayInput
}

// NewRecorder starts a recording for a game reset with cfg.
func NewRecorder(game registry.Game, player string, cfg core.RuntimeConfig) *Recorder {
	r := &Recorder{
		gameID: game.ID(),
		player: player,
		cfg:    cfg,
	}
	if t, ok := game.(registry.Tunable); ok {
		r.difficulty = t.Difficulty()
	}
	return r
}

// Record notes the frame passed to Step for the next tick.
func (r *Recorder) Record(frame core.InputFrame) {
	r.tick++
	if frame.Empty() {
		return
	}
	r.inputs = append(r.inputs, storage.ReplayInput{
		Tick:    r.tick,
		Actions: EncodeActions(frame),
	})
}

// Ticks returns the number of recorded ticks.
func (r *Recorder) Ticks() uint64 {
	return r.tick
}

// Finish builds the replay record with the final state of the game.
func (r *Recorder) Finish(state core.GameState) storage.Replay {
	inputs := make([]storage.ReplayInput, len(r.inputs))
	copy(inputs, r.inputs)

	return storage.Replay{
		GameID:     r.gameID,
		Difficulty: r.difficulty,
		Player:     r.player,
		Seed:       r.cfg.Seed,
		ScreenW:    r.cfg.ScreenW,
		ScreenH:    r.cfg.ScreenH,
		TickRate:   r.cfg.TickRate,
		Ticks:      r.tick,
		Score:      state.Score,
		Inputs:     inputs,
	}
}

// EncodeActions serializes a frame as comma-separated action names.
func EncodeActions(frame core.InputFrame) string {
	actions := frame.List()
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = a.String()
	}
	return strings.Join(names, ",")
}

// DecodeActions parses a string produced by EncodeActions.
func DecodeActions(s string) (core.InputFrame, error) {
	frame := core.NewInputFrame()
	if s == "" {
		return frame, nil
	}
	for _, name := range strings.Split(s, ",") {
		a, ok := core.ParseAction(name)
		if !ok {
			return frame, fmt.Errorf("replay: unknown action %q", name)
		}
		frame.Set(a)
	}
	return frame, nil
}

// Run resets the game with the recorded config and difficulty and feeds it
// every recorded tick. It returns the final state.
func Run(game registry.Game, r *storage.Replay) (core.GameState, error) {
	frames := make(map[uint64]core.InputFrame, len(r.Inputs))
	for _, in := range r.Inputs {
		if in.Tick == 0 || in.Tick > r.Ticks {
			return core.GameState{}, fmt.Errorf("replay: input tick %d outside [1,%d]", in.Tick, r.Ticks)
		}
		frame, err := DecodeActions(in.Actions)
		if err != nil {
			return core.GameState{}, err
		}
		frames[in.Tick] = frame
	}

	if r.Difficulty != "" {
		t, ok := game.(registry.Tunable)
		if !ok {
			return core.GameState{}, fmt.Errorf("replay: game %s has no difficulty presets", game.ID())
		}
		if err := t.SetDifficulty(r.Difficulty); err != nil {
			return core.GameState{}, fmt.Errorf("replay: %w", err)
		}
	}

	game.Reset(core.RuntimeConfig{
		ScreenW:  r.ScreenW,
		ScreenH:  r.ScreenH,
		TickRate: r.TickRate,
		Seed:     r.Seed,
	})

	empty := core.NewInputFrame()
	state := game.State()
	for tick := uint64(1); tick <= r.Ticks; tick++ {
		frame, ok := frames[tick]
		if !ok {
			frame = empty
		}
		state = game.Step(frame).State
	}
	return state, nil
}

// Verify re-simulates a stored replay through the registry and checks the
// final score against the recorded one.
func Verify(r *storage.Replay) (core.GameState, error) {
	game, err := registry.Create(r.GameID)
	if err != nil {
		return core.GameState{}, err
	}

	state, err := Run(game, r)
	if err != nil {
		return state, err
	}
	if state.Score != r.Score {
		return state, fmt.Errorf("%w: recorded score %d, simulated %d", ErrMismatch, r.Score, state.Score)
	}
	return state, nil
}
