package track

import (
	"errors"
	"testing"
)

func testMap(t *testing.T) *Tilemap {
	t.Helper()
	tm, err := ParseTilemap([]string{
		"####",
		"#..#",
		"####",
	}, 50)
	if err != nil {
		t.Fatalf("ParseTilemap() error = %v", err)
	}
	return tm
}

func TestTilemapDimensions(t *testing.T) {
	tm := testMap(t)

	if tm.Rows() != 3 || tm.Cols() != 4 {
		t.Errorf("grid = %dx%d, expected 4x3", tm.Cols(), tm.Rows())
	}
	if tm.Width() != 200 || tm.Height() != 150 {
		t.Errorf("world size = %vx%v, expected 200x150", tm.Width(), tm.Height())
	}
}

func TestTilemapCellAt(t *testing.T) {
	tm := testMap(t)

	tests := []struct {
		x, y     float64
		col, row int
	}{
		{0, 0, 0, 0},
		{49.9, 49.9, 0, 0},
		{50, 50, 1, 1},
		{-0.1, 10, -1, 0},
		{199, 149, 3, 2},
	}
	for _, tc := range tests {
		col, row := tm.CellAt(tc.x, tc.y)
		if col != tc.col || row != tc.row {
			t.Errorf("CellAt(%v, %v) = (%d, %d), expected (%d, %d)", tc.x, tc.y, col, row, tc.col, tc.row)
		}
	}
}

func TestTilemapWallQueries(t *testing.T) {
	tm := testMap(t)

	tests := []struct {
		name     string
		x, y     float64
		wall     bool
		open     bool
	}{
		{"border wall", 10, 10, true, false},
		{"open interior", 75, 75, false, true},
		{"out of bounds left", -10, 75, false, false},
		{"out of bounds below", 75, 500, false, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tm.IsWallAt(tc.x, tc.y); got != tc.wall {
				t.Errorf("IsWallAt() = %v, expected %v", got, tc.wall)
			}
			if got := tm.IsOpenAt(tc.x, tc.y); got != tc.open {
				t.Errorf("IsOpenAt() = %v, expected %v", got, tc.open)
			}
		})
	}
}

func TestParseTilemapErrors(t *testing.T) {
	tests := []struct {
		name    string
		rows    []string
		size    float64
		wantErr error
	}{
		{"ragged rows", []string{"###", "##"}, 10, ErrRaggedMap},
		{"empty", nil, 10, ErrEmptyMap},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseTilemap(tc.rows, tc.size)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("ParseTilemap() error = %v, expected %v", err, tc.wantErr)
			}
		})
	}

	if _, err := ParseTilemap([]string{"#x#"}, 10); err == nil {
		t.Error("unknown tile rune should fail")
	}
	if _, err := ParseTilemap([]string{"###"}, 0); err == nil {
		t.Error("zero tile size should fail")
	}
}

func TestParseTilemapDigits(t *testing.T) {
	tm, err := ParseTilemap([]string{"101"}, 50)
	if err != nil {
		t.Fatalf("ParseTilemap() error = %v", err)
	}
	if !tm.IsWallAt(10, 10) || tm.IsWallAt(60, 10) || !tm.IsWallAt(110, 10) {
		t.Error("digit rows should map 1 to wall and 0 to open")
	}
}
