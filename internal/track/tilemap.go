// Package track holds level geometry: the tile grid a race is driven on and
// the level records that place starts, finish lines, waypoints and
// collectibles on it.
package track

import (
	"errors"
	"fmt"
	"math"
)

// Tile is the content of one grid cell.
type Tile uint8

const (
	Open Tile = iota
	Wall
)

var (
	// ErrEmptyMap is returned when a map has no rows or no columns.
	ErrEmptyMap = errors.New("track: empty map")
	// ErrRaggedMap is returned when map rows differ in length.
	ErrRaggedMap = errors.New("track: map rows differ in length")
)

// Tilemap is an immutable rectangular grid of wall and open cells.
type Tilemap struct {
	cells    [][]Tile
	tileSize float64
}

// NewTilemap validates and wraps a grid. cells is indexed [row][col].
func NewTilemap(cells [][]Tile, tileSize float64) (*Tilemap, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, ErrEmptyMap
	}
	if tileSize <= 0 {
		return nil, fmt.Errorf("track: tile size must be positive, got %v", tileSize)
	}
	cols := len(cells[0])
	grid := make([][]Tile, len(cells))
	for r, row := range cells {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrRaggedMap, r, len(row), cols)
		}
		grid[r] = append([]Tile(nil), row...)
	}
	return &Tilemap{cells: grid, tileSize: tileSize}, nil
}

// ParseTilemap builds a tilemap from ASCII rows.
// '#' and '1' are walls; '.', '0' and ' ' are open.
func ParseTilemap(rows []string, tileSize float64) (*Tilemap, error) {
	cells := make([][]Tile, len(rows))
	for r, line := range rows {
		row := make([]Tile, 0, len(line))
		for c, ch := range line {
			switch ch {
			case '#', '1':
				row = append(row, Wall)
			case '.', '0', ' ':
				row = append(row, Open)
			default:
				return nil, fmt.Errorf("track: row %d col %d: unknown tile %q", r, c, ch)
			}
		}
		cells[r] = row
	}
	return NewTilemap(cells, tileSize)
}

// Rows returns the number of grid rows.
func (m *Tilemap) Rows() int { return len(m.cells) }

// Cols returns the number of grid columns.
func (m *Tilemap) Cols() int { return len(m.cells[0]) }

// TileSize returns the edge length of one cell in world units.
func (m *Tilemap) TileSize() float64 { return m.tileSize }

// Width returns the map width in world units.
func (m *Tilemap) Width() float64 { return float64(m.Cols()) * m.tileSize }

// Height returns the map height in world units.
func (m *Tilemap) Height() float64 { return float64(m.Rows()) * m.tileSize }

// CellAt maps a world point to its cell indices using floor(coord / tileSize).
// The result may be out of bounds.
func (m *Tilemap) CellAt(x, y float64) (col, row int) {
	return int(math.Floor(x / m.tileSize)), int(math.Floor(y / m.tileSize))
}

// Tile returns the tile at (col, row) and whether the cell is in bounds.
func (m *Tilemap) Tile(col, row int) (Tile, bool) {
	if row < 0 || row >= len(m.cells) || col < 0 || col >= len(m.cells[row]) {
		return Open, false
	}
	return m.cells[row][col], true
}

// IsWallAt reports whether the world point lies on an in-bounds wall cell.
// Points outside the grid are not walls.
func (m *Tilemap) IsWallAt(x, y float64) bool {
	t, ok := m.Tile(m.CellAt(x, y))
	return ok && t == Wall
}

// IsOpenAt reports whether the world point lies on an in-bounds open cell.
// Points outside the grid are not open.
func (m *Tilemap) IsOpenAt(x, y float64) bool {
	t, ok := m.Tile(m.CellAt(x, y))
	return ok && t == Open
}
