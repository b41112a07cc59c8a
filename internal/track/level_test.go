package track

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sampleRace = `
id: sample
kind: race
tile_size: 50
map:
  - "1111"
  - "1001"
  - "1111"
starts:
  - {x: 60, y: 60}
finish: {x: 200, y: 60, w: 400, h: 10}
waypoints:
  - {x: 70, y: 70}
`

func TestParseYAML(t *testing.T) {
	lvl, err := ParseYAML([]byte(sampleRace))
	if err != nil {
		t.Fatalf("ParseYAML() error = %v", err)
	}

	if lvl.Kind != KindRace {
		t.Errorf("Kind = %q, expected race", lvl.Kind)
	}
	if lvl.Name != "sample" {
		t.Errorf("Name should default to ID, got %q", lvl.Name)
	}
	if lvl.Map.TileSize() != 50 {
		t.Errorf("TileSize = %v, expected 50", lvl.Map.TileSize())
	}
	if lvl.Finish.W != 400 || lvl.Finish.H != 10 {
		t.Errorf("Finish = %+v", lvl.Finish)
	}
	if got := lvl.Start(3); got != lvl.Starts[0] {
		t.Errorf("Start(3) should fall back to the first start, got %v", got)
	}
}

func TestParseYAMLValidation(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"no starts", "id: a\nkind: race\nmap: [\"#.#\"]\nfinish: {x: 0, y: 0, w: 1, h: 1}\n"},
		{"race without finish", "id: a\nkind: race\nmap: [\"#.#\"]\nstarts: [{x: 1, y: 1}]\n"},
		{"trial without limit", "id: a\nkind: trial\nmap: [\"#.#\"]\nstarts: [{x: 1, y: 1}]\ncollectibles: [{x: 1, y: 1}]\n"},
		{"unknown kind", "id: a\nkind: drift\nmap: [\"#.#\"]\nstarts: [{x: 1, y: 1}]\n"},
		{"ragged map", "id: a\nkind: race\nmap: [\"#.#\", \"#\"]\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseYAML([]byte(tc.doc)); err == nil {
				t.Error("ParseYAML() should fail")
			}
		})
	}
}

func TestBuiltinLevels(t *testing.T) {
	levels, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin() error = %v", err)
	}

	races := Filter(levels, KindRace)
	trials := Filter(levels, KindTrial)
	if len(races) != 3 || len(trials) != 3 {
		t.Fatalf("got %d race and %d trial levels, expected 3 each", len(races), len(trials))
	}
	for i := 1; i < len(levels); i++ {
		if levels[i-1].ID >= levels[i].ID {
			t.Errorf("levels not sorted: %s before %s", levels[i-1].ID, levels[i].ID)
		}
	}

	// Every start box (30x50) and collectible (20x20) must sit on open track.
	for _, lvl := range levels {
		for _, s := range lvl.Starts {
			if !boxOpen(lvl.Map, s.X, s.Y, 30, 50) {
				t.Errorf("%s: start %v overlaps a wall", lvl.ID, s)
			}
		}
		for _, c := range lvl.Collectibles {
			if !boxOpen(lvl.Map, c.X, c.Y, 20, 20) {
				t.Errorf("%s: collectible %v overlaps a wall", lvl.ID, c)
			}
		}
		if lvl.Kind == KindTrial && lvl.TimeLimit != 45 {
			t.Errorf("%s: time limit = %d, expected 45", lvl.ID, lvl.TimeLimit)
		}
	}
}

func boxOpen(tm *Tilemap, x, y, w, h float64) bool {
	for _, p := range [][2]float64{{x, y}, {x + w, y}, {x, y + h}, {x + w, y + h}} {
		if tm.IsWallAt(p[0], p[1]) {
			return false
		}
	}
	return true
}

func TestLoaderLoadAll(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "b.yaml"), []byte(sampleRace), 0o600); err != nil {
		t.Fatal(err)
	}
	other := "id: another\n" + sampleRace[len("\nid: sample\n"):]
	if err := os.WriteFile(filepath.Join(dir, "a.yml"), []byte(other), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600); err != nil {
		t.Fatal(err)
	}

	levels, err := NewLoader(dir).LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(levels) != 2 {
		t.Fatalf("got %d levels, expected 2", len(levels))
	}
	if levels[0].ID != "another" || levels[1].ID != "sample" {
		t.Errorf("levels = [%s %s], expected sorted by ID", levels[0].ID, levels[1].ID)
	}
	if levels[1].FilePath != filepath.Join(dir, "b.yaml") {
		t.Errorf("FilePath = %q", levels[1].FilePath)
	}
}

func TestLoaderRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("id: [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewLoader(dir).LoadAll(context.Background()); err == nil {
		t.Error("LoadAll() should fail on an invalid level file")
	}
}

func TestLoadFiltersKind(t *testing.T) {
	trials, err := Load(context.Background(), "", KindTrial)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	for _, l := range trials {
		if l.Kind != KindTrial {
			t.Errorf("Load(trial) returned %s of kind %s", l.ID, l.Kind)
		}
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "only-race.yaml"), []byte(sampleRace), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(context.Background(), dir, KindTrial); !errors.Is(err, ErrNoLevels) {
		t.Errorf("Load() error = %v, expected ErrNoLevels", err)
	}
}
