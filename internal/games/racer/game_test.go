package racer

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-racer/internal/core"
	"github.com/vovakirdan/tui-racer/internal/leaderboard"
	"github.com/vovakirdan/tui-racer/internal/race"
	"github.com/vovakirdan/tui-racer/internal/registry"
	"github.com/vovakirdan/tui-racer/internal/track"
)

var testRuntime = core.RuntimeConfig{
	ScreenW:  80,
	ScreenH:  24,
	TickRate: 60,
	Seed:     12345,
}

func TestRegistered(t *testing.T) {
	tests := []struct {
		id      string
		title   string
		players int
	}{
		{"racer", "Racer", 1},
		{"racer_duel", "Racer (Duel)", 2},
		{"racer_trial", "Racer (Time Trial)", 1},
	}
	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			g, err := registry.Create(tc.id)
			if err != nil {
				t.Fatalf("Create(%q) error = %v", tc.id, err)
			}
			if g.ID() != tc.id || g.Title() != tc.title {
				t.Errorf("got %s / %s", g.ID(), g.Title())
			}
			if registry.Players(g) != tc.players {
				t.Errorf("players = %d, expected %d", registry.Players(g), tc.players)
			}
		})
	}
}

func TestModesUseMatchingLevels(t *testing.T) {
	solo := New()
	solo.Reset(testRuntime)
	if solo.Err() != nil {
		t.Fatalf("Reset() error = %v", solo.Err())
	}
	entrants := solo.Session().Entrants()
	if len(entrants) != 2 || entrants[0].AI || !entrants[1].AI || entrants[1].Name != "CPU" {
		t.Errorf("solo entrants = %+v %+v", *entrants[0], *entrants[1])
	}
	if solo.Session().Level().Kind != track.KindRace {
		t.Error("solo should race on race levels")
	}

	trial := NewTrial()
	trial.Reset(testRuntime)
	if trial.Err() != nil {
		t.Fatalf("Reset() error = %v", trial.Err())
	}
	if n := len(trial.Session().Entrants()); n != 1 {
		t.Errorf("trial entrants = %d", n)
	}
	if trial.Session().Level().Kind != track.KindTrial || trial.Session().TimeLeft() <= 0 {
		t.Error("trial should start a timed trial level")
	}
}

func TestGameDeterminism(t *testing.T) {
	// Same seed and inputs must produce the same race
	inputs := make([]core.MultiInputFrame, 600)
	for i := range inputs {
		inputs[i] = core.NewMultiInputFrame()
		inputs[i].Press(core.Player1, core.ActionUp)
		if i%40 < 15 {
			inputs[i].Press(core.Player1, core.ActionRight)
		}
		if i%3 == 0 {
			inputs[i].Press(core.Player2, core.ActionUp)
		}
	}

	run := func() Snapshot {
		g := NewDuel()
		g.Reset(testRuntime)
		for _, in := range inputs {
			g.Step(in, core.NominalFrame)
		}
		return g.Snapshot()
	}

	snap1 := run()
	snap2 := run()
	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.Tick != 600 {
		t.Errorf("tick = %d, expected 600", snap1.Tick)
	}
}

func TestStepPauseAndRestart(t *testing.T) {
	g := NewDuel()
	g.Reset(testRuntime)

	pause := core.NewMultiInputFrame()
	pause.Press(core.Player1, core.ActionPause)
	res := g.Step(pause, core.NominalFrame)
	if !res.State.Paused {
		t.Fatal("pause action should pause")
	}
	now := g.Session().Now()
	g.Step(core.NewMultiInputFrame(), time.Second)
	if g.Session().Now() != now {
		t.Error("clock moved while paused")
	}

	g.Step(pause, core.NominalFrame)
	if g.State().Paused {
		t.Error("second pause action should resume")
	}

	for i := 0; i < 4; i++ {
		g.Step(core.NewMultiInputFrame(), time.Second)
	}
	if g.Session().Phase() != race.PhaseRacing {
		t.Fatalf("phase = %v, expected racing", g.Session().Phase())
	}

	restart := core.NewMultiInputFrame()
	restart.Press(core.Player2, core.ActionRestart)
	g.Step(restart, core.NominalFrame)
	if g.Session().Phase() != race.PhaseCountdown || g.Session().LevelIndex() != 0 {
		t.Errorf("restart: phase %v level %d", g.Session().Phase(), g.Session().LevelIndex())
	}
}

func TestRender(t *testing.T) {
	g := New()
	g.Reset(testRuntime)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Level 1/3", "Ring Road", "Player 1: 0", "CPU: 0", "Get ready!"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
	if !strings.ContainsRune(out, WallChar) || !strings.ContainsRune(out, FinishChar) {
		t.Error("render should draw walls and the finish line")
	}
	if !strings.ContainsRune(out, '↑') {
		t.Error("render should draw cars facing up at the start")
	}
	if screen.GetCell(0, 1).Color != core.ColorGray {
		t.Errorf("top-left track cell color = %v, expected wall gray", screen.GetCell(0, 1).Color)
	}
}

func TestRenderTrialHUD(t *testing.T) {
	g := NewTrial()
	g.Reset(testRuntime)
	for i := 0; i < 3; i++ {
		g.Step(core.NewMultiInputFrame(), time.Second)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()
	if !strings.Contains(out, "Time 45") || !strings.Contains(out, "Collected 0/6") {
		t.Errorf("trial HUD missing:\n%s", screen.Row(0))
	}
	if !strings.ContainsRune(out, CollectibleChar) {
		t.Error("render should draw collectibles")
	}
}

func TestRenderSmallScreen(t *testing.T) {
	g := New()
	g.Reset(testRuntime)
	screen := core.NewScreen(30, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Screen too small") {
		t.Error("expected a too-small message")
	}
}

func TestHeadingGlyph(t *testing.T) {
	tests := []struct {
		angle float64
		want  rune
	}{
		{0, '↑'},
		{0.8, '↗'},
		{1.6, '→'},
		{3.1, '↓'},
		{-1.6, '←'},
		{-0.8, '↖'},
		{6.3, '↑'},
	}
	for _, tc := range tests {
		if got := headingGlyph(tc.angle); got != tc.want {
			t.Errorf("headingGlyph(%v) = %c, expected %c", tc.angle, got, tc.want)
		}
	}
}

type memStore struct {
	blobs map[string][]byte
}

func (m *memStore) LoadBlob(key string) ([]byte, bool, error) {
	data, ok := m.blobs[key]
	return data, ok, nil
}

func (m *memStore) SaveBlob(key string, data []byte) error {
	m.blobs[key] = data
	return nil
}

func TestTrialLoadsStoredLeaderboard(t *testing.T) {
	store := &memStore{blobs: map[string][]byte{
		leaderboard.DefaultKey: []byte("trial-01:\n  - name: ACE\n    score: 30\n"),
	}}
	SetLeaderboardStore(store)
	t.Cleanup(func() { SetLeaderboardStore(nil) })

	g := NewTrial()
	g.Reset(testRuntime)
	top := g.Session().Board().Top("trial-01")
	if len(top) != 1 || top[0].Name != "ACE" || top[0].Score != 30 {
		t.Errorf("board = %+v", top)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.Row(0), "Best 30") {
		t.Errorf("HUD should show the best score: %q", screen.Row(0))
	}
}

func TestEmptyLevelsDir(t *testing.T) {
	SetLevelsDir(t.TempDir())
	t.Cleanup(func() { SetLevelsDir("") })

	g := New()
	g.Reset(testRuntime)
	if !errors.Is(g.Err(), track.ErrNoLevels) {
		t.Fatalf("Err() = %v, expected ErrNoLevels", g.Err())
	}
	if g.Session() != nil || !g.State().GameOver {
		t.Error("a game without levels should report game over")
	}
	g.Step(core.NewMultiInputFrame(), core.NominalFrame)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Cannot start race") {
		t.Error("render should explain the failure")
	}
}

func TestSetDifficultyPreset(t *testing.T) {
	t.Cleanup(func() { SetDifficultyPreset("") })

	SetDifficultyPreset("hard")
	hard := New()
	hard.Reset(testRuntime)
	SetDifficultyPreset("easy")
	easy := New()
	easy.Reset(testRuntime)

	hardCPU := hard.Session().Entrants()[1].Vehicle.MaxSpeed
	easyCPU := easy.Session().Entrants()[1].Vehicle.MaxSpeed
	if hardCPU <= easyCPU {
		t.Errorf("hard CPU speed %v should exceed easy %v", hardCPU, easyCPU)
	}
}
