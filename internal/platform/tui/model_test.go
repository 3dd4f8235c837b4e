package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/mazechase/internal/core"
	"github.com/vovakirdan/mazechase/internal/storage"
)

// stubGame counts steps and ends after a fixed number of them. It freezes
// once over, like the real games.
type stubGame struct {
	minW, minH int
	endAfter   int
	steps      int
	resets     int
	seed       int64
	frames     []core.InputFrame
	state      core.GameState
}

func (g *stubGame) ID() string { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(cfg core.RuntimeConfig) {
	g.resets++
	g.seed = cfg.Seed
	g.steps = 0
	g.frames = nil
	g.state = core.GameState{Lives: 1}
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	if g.state.GameOver {
		return core.StepResult{State: g.state}
	}
	g.steps++
	g.frames = append(g.frames, in.Clone())
	g.state.Score += 10
	if g.endAfter > 0 && g.steps >= g.endAfter {
		g.state.GameOver = true
		g.state.Lives = 0
	}
	return core.StepResult{State: g.state}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "STUB")
}

func (g *stubGame) State() core.GameState { return g.state }

func (g *stubGame) MinSize() (w, h int) { return g.minW, g.minH }

func newTestModel(t *testing.T, game *stubGame, store *storage.Store) Model {
	t.Helper()
	m := NewModel(game, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 3}, "tester", nil)
	m.Start()
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func TestModelStepsAndRecords(t *testing.T) {
	game := &stubGame{}
	m := newTestModel(t, game, nil)

	m = update(t, m, runeKey('l'))
	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})

	if game.steps != 2 {
		t.Fatalf("Expected 2 steps, got %d", game.steps)
	}
	if !game.frames[0].Has(core.ActionRight) {
		t.Error("First tick should carry Right")
	}
	if !game.frames[1].Empty() {
		t.Error("Input should be cleared after a tick")
	}
	if m.recorder.Ticks() != 2 {
		t.Errorf("Recorder ticks = %d, expected 2", m.recorder.Ticks())
	}
}

func TestModelHoldsWhenTooSmall(t *testing.T) {
	game := &stubGame{minW: 60, minH: 20}
	m := newTestModel(t, game, nil)

	m = update(t, m, runeKey('w'))
	m = update(t, m, TickMsg{})
	if game.steps != 0 || m.recorder.Ticks() != 0 {
		t.Fatalf("Too small screen should not step (steps %d, ticks %d)", game.steps, m.recorder.Ticks())
	}

	m = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	m = update(t, m, TickMsg{})
	if game.steps != 1 || m.recorder.Ticks() != 1 {
		t.Errorf("Resized screen should step (steps %d, ticks %d)", game.steps, m.recorder.Ticks())
	}
	if game.frames[0].Has(core.ActionUp) {
		t.Error("Input pressed while held should be dropped")
	}
}

func TestModelSavesReplayOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "replays.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	game := &stubGame{endAfter: 3}
	m := newTestModel(t, game, store)
	for range 5 {
		m = update(t, m, TickMsg{})
	}

	replays, err := store.ListReplays("stub", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(replays) != 1 {
		t.Fatalf("Expected 1 replay, got %d", len(replays))
	}
	r := replays[0]
	if r.ID != m.LastReplay() || r.Player != "tester" || r.Seed != 3 {
		t.Errorf("Unexpected replay header: %+v", r)
	}
	if r.Score != game.state.Score {
		t.Errorf("Replay score %d, game score %d", r.Score, game.state.Score)
	}
}

func TestModelRestartUsesNewSeed(t *testing.T) {
	game := &stubGame{endAfter: 1}
	m := newTestModel(t, game, nil)
	m = update(t, m, TickMsg{})
	if !m.gameState.GameOver {
		t.Fatal("Expected game over")
	}

	m = update(t, m, runeKey('r'))
	m = update(t, m, TickMsg{})

	if game.resets != 2 {
		t.Errorf("Expected a second Reset, got %d", game.resets)
	}
	if game.seed == 3 {
		t.Error("Restart should pick a new seed")
	}
	if m.recorder.Ticks() != 0 || m.saved {
		t.Error("Restart should begin a new recording")
	}
}

func TestModelBackOnlyWhenStopped(t *testing.T) {
	game := &stubGame{endAfter: 2}
	m := newTestModel(t, game, nil)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("Back should be ignored while playing")
	}

	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("Back should work after game over")
	}
	if m.View() != "" {
		t.Error("View should be empty after leaving")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, &stubGame{}, nil)
	next, cmd := m.Update(runeKey('q'))
	if !next.(Model).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawTextColored(1, 0, "HELLO", core.ColorYellow)
	s.Set(0, 1, 'x')

	out := RenderScreen(s)
	if lines := strings.Split(out, "\n"); len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(out, "HELLO") {
		t.Errorf("Output missing colored run: %q", out)
	}

	m := newTestModel(t, &stubGame{}, nil)
	if !strings.HasPrefix(m.View(), "STUB") {
		t.Errorf("View should render the game, got %q", m.View())
	}
}
