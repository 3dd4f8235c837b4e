package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/mazechase/internal/config"
	"github.com/vovakirdan/mazechase/internal/core"
	"github.com/vovakirdan/mazechase/internal/registry"
)

func init() {
	registry.Register("stub", func() registry.Game {
		return &stubGame{endAfter: 1}
	})
}

func updateSession(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm
}

func TestSessionMenuGameMenu(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
	m := NewSessionModel(nil, cfg, "alice", config.DifficultyNormal, nil)

	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.view != viewGame || m.game == nil {
		t.Fatalf("Enter should start the selected game, view %d", m.view)
	}
	if m.game.player != "alice" {
		t.Errorf("Game player = %q, expected alice", m.game.player)
	}

	m = updateSession(t, m, TickMsg{})
	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.view != viewMenu || m.game != nil {
		t.Fatalf("Esc after game over should return to the menu, view %d", m.view)
	}
	if m.quitting {
		t.Error("Returning to the menu should not quit")
	}
}

func TestSessionReplaysAndQuit(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
	m := NewSessionModel(nil, cfg, "bob", config.DifficultyHard, nil)

	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.view != viewReplays {
		t.Fatalf("Tab should open replays, view %d", m.view)
	}
	if m.View() == "" {
		t.Error("Replay view should render")
	}

	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.view != viewMenu {
		t.Fatalf("Esc should return to the menu, view %d", m.view)
	}
	if m.menu.Difficulty() != config.DifficultyHard {
		t.Errorf("Menu difficulty %q, expected hard", m.menu.Difficulty())
	}

	next, cmd := m.Update(runeKey('q'))
	if !next.(SessionModel).quitting || cmd == nil {
		t.Error("q should end the session")
	}
}
