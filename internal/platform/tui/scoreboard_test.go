package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-racer/internal/leaderboard"
	"github.com/vovakirdan/tui-racer/internal/storage"
)

func TestScoreboardShowsTrialLeaderboard(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	board := leaderboard.New(leaderboard.DefaultSize)
	board.Insert("trial-1", leaderboard.Entry{Name: "ANA", Score: 30})
	board.Insert("trial-1", leaderboard.Entry{Name: "BOB", Score: 12})
	if err := board.Save(store, leaderboard.DefaultKey); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	m := NewScoreboardModel(store, 100, 30)
	found := false
	for range m.Pages() {
		if m.page().Level == "trial-1" {
			found = true
			break
		}
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = next.(ScoreboardModel)
	}
	if !found {
		t.Fatal("trial level page not found")
	}

	rows := m.Rows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][1] != "ANA" || rows[0][2] != "30" {
		t.Errorf("unexpected first row: %v", rows[0])
	}
	if !strings.Contains(m.View(), "Trial trial-1") {
		t.Error("view should name the selected page")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	if len(m.Rows()) != 0 {
		t.Errorf("expected no rows, got %d", len(m.Rows()))
	}
	if !strings.Contains(m.View(), "No results recorded yet.") {
		t.Error("expected empty message")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil || !next.(ScoreboardModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}
