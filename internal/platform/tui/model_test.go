package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-racer/internal/core"
	"github.com/vovakirdan/tui-racer/internal/storage"
)

// stubGame records what the model feeds it.
type stubGame struct {
	players int
	resets  int
	inputs  []core.MultiInputFrame
	dts     []time.Duration
	pending [][]core.Event // events returned by successive steps
}

func (g *stubGame) ID() string { return "stub" }
func (g *stubGame) Title() string { return "Stub" }
func (g *stubGame) Players() int { return g.players }
func (g *stubGame) Reset(cfg core.RuntimeConfig) { g.resets++ }
func (g *stubGame) Render(dst *core.Screen) { dst.Clear(); dst.DrawText(0, 0, "stub") }
func (g *stubGame) State() core.GameState { return core.GameState{} }

func (g *stubGame) Step(in core.MultiInputFrame, dt time.Duration) core.StepResult {
	g.inputs = append(g.inputs, in)
	g.dts = append(g.dts, dt)
	var events []core.Event
	if len(g.pending) > 0 {
		events, g.pending = g.pending[0], g.pending[1:]
	}
	return core.StepResult{State: g.State(), Events: events}
}

func newTestModel(g *stubGame, store *storage.Store) Model {
	return NewModel(g, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60, Seed: 1}, nil)
}

func press(t *testing.T, m Model, msg tea.KeyMsg, now time.Time) Model {
	t.Helper()
	next, _ := m.handleKey(msg, now)
	return next.(Model)
}

func tick(t *testing.T, m Model, now time.Time) Model {
	t.Helper()
	next, cmd := m.Update(TickMsg(now))
	if cmd == nil {
		t.Fatal("tick should schedule the next tick")
	}
	return next.(Model)
}

func TestModelTickMeasuresElapsedTime(t *testing.T) {
	g := &stubGame{players: 1}
	m := newTestModel(g, nil)
	t0 := time.Unix(1000, 0)

	m = tick(t, m, t0)
	m = tick(t, m, t0.Add(30*time.Millisecond))
	m = tick(t, m, t0.Add(2*time.Second))
	tick(t, m, t0.Add(time.Second))

	want := []time.Duration{core.FrameDuration(60), 30 * time.Millisecond, MaxStep, 0}
	if len(g.dts) != len(want) {
		t.Fatalf("expected %d steps, got %d", len(want), len(g.dts))
	}
	for i := range want {
		if g.dts[i] != want[i] {
			t.Errorf("step %d: dt = %v, want %v", i, g.dts[i], want[i])
		}
	}
}

func TestModelHeldAndPulseInput(t *testing.T) {
	g := &stubGame{players: 2}
	m := newTestModel(g, nil)
	t0 := time.Unix(1000, 0)

	m = press(t, m, runeKey('w'), t0)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft}, t0)
	m = press(t, m, runeKey('p'), t0)
	m = tick(t, m, t0.Add(10*time.Millisecond))
	m = tick(t, m, t0.Add(20*time.Millisecond))
	tick(t, m, t0.Add(time.Second))

	first := g.inputs[0]
	if !first.Player(core.Player1).Has(core.ActionUp) {
		t.Error("player 1 should accelerate")
	}
	if !first.Player(core.Player2).Has(core.ActionLeft) {
		t.Error("player 2 should steer left")
	}
	if !first.Any(core.ActionPause) {
		t.Error("pause should reach the first tick")
	}

	if g.inputs[1].Any(core.ActionPause) {
		t.Error("pause should fire only once")
	}
	if !g.inputs[1].Player(core.Player1).Has(core.ActionUp) {
		t.Error("held key should persist across ticks")
	}

	if g.inputs[2].Any(core.ActionUp) || g.inputs[2].Any(core.ActionLeft) {
		t.Error("keys should be released once repeats stop")
	}
}

func TestModelRestartReleasesKeys(t *testing.T) {
	g := &stubGame{players: 1}
	m := newTestModel(g, nil)
	t0 := time.Unix(1000, 0)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp}, t0)
	m = press(t, m, runeKey('r'), t0)
	tick(t, m, t0.Add(10*time.Millisecond))

	in := g.inputs[0]
	if !in.Any(core.ActionRestart) {
		t.Error("restart should reach the game")
	}
	if in.Any(core.ActionUp) {
		t.Error("restart should release held keys")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(&stubGame{players: 1}, nil)

	next, cmd := m.handleKey(runeKey('q'), time.Now())
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit should return tea.Quit")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	g := &stubGame{players: 1}
	m := newTestModel(g, nil)
	m.Init()

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)

	if g.resets != 1 {
		t.Errorf("resize should not reset the game, resets = %d", g.resets)
	}
	if !strings.Contains(m.View(), "stub") {
		t.Error("view should show the game")
	}
}

func TestModelRecordsEvents(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	g := &stubGame{players: 1, pending: [][]core.Event{
		{{Kind: core.EventLevelWon, Player: core.Player1, Level: "race-1", Score: 1}},
		{{Kind: core.EventTimeExpired, Player: core.Player1, Level: "race-2"}},
		{
			{Kind: core.EventLevelWon, Player: core.Player2, Level: "race-3", Score: 1},
			{Kind: core.EventGameComplete, Scores: []int{2, 1}},
		},
		{{Kind: core.EventGameComplete, Scores: []int{0, 3}}},
	}}
	m := newTestModel(g, store)
	t0 := time.Unix(1000, 0)
	for i := range 4 {
		m = tick(t, m, t0.Add(time.Duration(i)*10*time.Millisecond))
	}

	results, err := store.RecentRaceResults("stub", 10)
	if err != nil {
		t.Fatalf("RecentRaceResults failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	kinds := make(map[storage.ResultKind]int)
	for _, r := range results {
		kinds[r.Kind]++
	}
	if kinds[storage.ResultWin] != 2 || kinds[storage.ResultTimeout] != 1 {
		t.Errorf("unexpected result kinds: %v", kinds)
	}

	scores, err := store.TopScores("stub", 10)
	if err != nil {
		t.Fatalf("TopScores failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 2 {
		t.Errorf("expected one saved score of 2, got %+v", scores)
	}
}
