package replay

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vovakirdan/mazechase/internal/core"
	"github.com/vovakirdan/mazechase/internal/games/mazechase"
	"github.com/vovakirdan/mazechase/internal/registry"
	"github.com/vovakirdan/mazechase/internal/storage"
)

// playScripted drives a game for n ticks with a fixed steering script and
// records every frame.
func playScripted(t *testing.T, game registry.Game, cfg core.RuntimeConfig, n int) *Recorder {
	t.Helper()
	script := map[int][]core.Action{
		0:   {core.ActionLeft},
		45:  {core.ActionUp},
		90:  {core.ActionPause},
		100: {core.ActionPause, core.ActionRight},
		160: {core.ActionDown},
		230: {core.ActionLeft},
	}

	game.Reset(cfg)
	rec := NewRecorder(game, "tester", cfg)
	for i := range n {
		frame := core.NewInputFrame()
		for _, a := range script[i] {
			frame.Set(a)
		}
		rec.Record(frame)
		game.Step(frame)
	}
	return rec
}

func newGame(t *testing.T) registry.Game {
	t.Helper()
	game, err := registry.Create("mazechase")
	if err != nil {
		t.Fatal(err)
	}
	return game
}

func TestEncodeDecodeActions(t *testing.T) {
	frame := core.NewInputFrame()
	frame.Set(core.ActionRight)
	frame.Set(core.ActionPause)

	s := EncodeActions(frame)
	if s != "Right,Pause" {
		t.Errorf("EncodeActions() = %q", s)
	}

	back, err := DecodeActions(s)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back.List(), frame.List()) {
		t.Errorf("Decoded %v, expected %v", back.List(), frame.List())
	}

	if empty, err := DecodeActions(""); err != nil || !empty.Empty() {
		t.Errorf("Empty string should decode to an empty frame")
	}
	if _, err := DecodeActions("Right,Jump"); err == nil {
		t.Error("Unknown action should fail")
	}
}

func TestRecorderSkipsEmptyFrames(t *testing.T) {
	rec := NewRecorder(newGame(t), "", core.RuntimeConfig{Seed: 7, ScreenW: 80, ScreenH: 24, TickRate: 60})
	rec.Record(core.NewInputFrame())
	up := core.NewInputFrame()
	up.Set(core.ActionUp)
	rec.Record(up)
	rec.Record(core.NewInputFrame())

	r := rec.Finish(core.GameState{Score: 30})
	if r.Ticks != 3 || rec.Ticks() != 3 {
		t.Errorf("Ticks = %d, expected 3", r.Ticks)
	}
	if len(r.Inputs) != 1 || r.Inputs[0].Tick != 2 || r.Inputs[0].Actions != "Up" {
		t.Errorf("Unexpected inputs: %+v", r.Inputs)
	}
	if r.Seed != 7 || r.Score != 30 || r.GameID != "mazechase" || r.Difficulty != "normal" {
		t.Errorf("Unexpected header: %+v", r)
	}
}

func TestRunReproducesGame(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 2024}

	live := newGame(t)
	rec := playScripted(t, live, cfg, 600)
	r := rec.Finish(live.State())

	replayed := newGame(t)
	state, err := Run(replayed, &r)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if state != live.State() {
		t.Errorf("Replayed state %+v, live %+v", state, live.State())
	}

	a := live.(*mazechase.Game).Snapshot()
	b := replayed.(*mazechase.Game).Snapshot()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Snapshots diverged:\n%+v\n%+v", a, b)
	}
}

func TestVerifyThroughStore(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	store, err := storage.Open(filepath.Join(t.TempDir(), "replays.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	live := newGame(t)
	rec := playScripted(t, live, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 99}, 400)
	id, err := store.SaveReplay(rec.Finish(live.State()))
	if err != nil {
		t.Fatal(err)
	}

	loaded, err := store.LoadReplay(id)
	if err != nil {
		t.Fatal(err)
	}
	state, err := Verify(loaded)
	if err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
	if state.Score != live.State().Score {
		t.Errorf("Verified score %d, live %d", state.Score, live.State().Score)
	}

	loaded.Score += 10
	if _, err := Verify(loaded); !errors.Is(err, ErrMismatch) {
		t.Errorf("Tampered replay: expected ErrMismatch, got %v", err)
	}

	loaded.GameID = "pacman"
	if _, err := Verify(loaded); err == nil {
		t.Error("Unknown game should fail")
	}
}

func TestRunRejectsBadInputs(t *testing.T) {
	r := &storage.Replay{
		GameID: "mazechase",
		Ticks:  5,
		Inputs: []storage.ReplayInput{{Tick: 9, Actions: "Up"}},
	}
	if _, err := Run(newGame(t), r); err == nil {
		t.Error("Input past the last tick should fail")
	}

	r.Inputs = []storage.ReplayInput{{Tick: 2, Actions: "Fly"}}
	if _, err := Run(newGame(t), r); err == nil {
		t.Error("Unknown action should fail")
	}
}

func TestRunAppliesRecordedDifficulty(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 5}

	live := newGame(t)
	if err := live.(registry.Tunable).SetDifficulty("hard"); err != nil {
		t.Fatal(err)
	}
	rec := playScripted(t, live, cfg, 900)
	r := rec.Finish(live.State())
	if r.Difficulty != "hard" {
		t.Fatalf("Recorded difficulty %q, expected hard", r.Difficulty)
	}

	// A fresh game starts on normal; Run must switch it to hard
	replayed := newGame(t)
	state, err := Run(replayed, &r)
	if err != nil {
		t.Fatal(err)
	}
	if state != live.State() {
		t.Errorf("Replayed state %+v, live %+v", state, live.State())
	}
	if state.Lives > 2 {
		t.Errorf("Hard preset should start with 2 lives, got %d", state.Lives)
	}

	r.Difficulty = "nightmare"
	if _, err := Run(newGame(t), &r); err == nil {
		t.Error("Unknown difficulty should fail")
	}
}
