package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/mazechase/internal/storage"
)

func TestReplaysBrowserFilterAndDelete(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "replays.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	for _, r := range []storage.Replay{
		{GameID: "stub", Player: "ann", Seed: 1, TickRate: 60, Ticks: 120, Score: 40},
		{GameID: "other", Player: "ben", Seed: 2, TickRate: 60, Ticks: 60, Score: 10},
	} {
		if _, err := store.SaveReplay(r); err != nil {
			t.Fatal(err)
		}
	}

	m := NewReplaysModel(store, 100, 30)
	if len(m.replays) != 2 {
		t.Fatalf("All filter: expected 2 replays, got %d", len(m.replays))
	}

	// Next filter is the first registered game
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ReplaysModel)
	if m.filters[m.filter].ID != "stub" || len(m.replays) != 1 {
		t.Fatalf("Filter %q shows %d replays", m.filters[m.filter].ID, len(m.replays))
	}
	if !strings.Contains(m.View(), "ann") {
		t.Error("Table should list the stub replay")
	}

	next, _ = m.Update(runeKey('x'))
	m = next.(ReplaysModel)
	if len(m.replays) != 0 || !strings.Contains(m.status, "Deleted") {
		t.Errorf("Delete left %d replays, status %q", len(m.replays), m.status)
	}
	if all, _ := store.ListReplays("", 10); len(all) != 1 {
		t.Errorf("Store has %d replays, expected 1", len(all))
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ReplaysModel).IsGoingBack() {
		t.Error("Esc should go back")
	}
}

func TestFormatTicks(t *testing.T) {
	if got := formatTicks(3660, 60); got != "1:01" {
		t.Errorf("formatTicks(3660, 60) = %q", got)
	}
	if got := formatTicks(90, 0); got != "0:01" {
		t.Errorf("formatTicks(90, 0) = %q", got)
	}
}
