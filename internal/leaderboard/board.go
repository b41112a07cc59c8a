// Package leaderboard keeps the per-level top scores of time-trial runs.
//
// The whole board is stored as one blob under a single key: it is loaded
// once at startup and rewritten in full after every new high score.
package leaderboard

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultKey is the store key holding the board.
	DefaultKey = "racer.highscores"
	// DefaultSize is the number of entries kept per level.
	DefaultSize = 5
)

// Entry is one leaderboard line.
type Entry struct {
	Name  string `yaml:"name"`
	Score int    `yaml:"score"`
}

// Store persists opaque blobs by key. storage.Store implements it.
type Store interface {
	LoadBlob(key string) ([]byte, bool, error)
	SaveBlob(key string, data []byte) error
}

// Board maps level IDs to their entries, best first.
type Board struct {
	size   int
	levels map[string][]Entry
}

// New creates an empty board keeping size entries per level.
func New(size int) *Board {
	if size <= 0 {
		size = DefaultSize
	}
	return &Board{size: size, levels: make(map[string][]Entry)}
}

// Size returns the number of entries kept per level.
func (b *Board) Size() int {
	return b.size
}

// Top returns a copy of a level's entries, best first.
func (b *Board) Top(level string) []Entry {
	return append([]Entry(nil), b.levels[level]...)
}

// Levels returns the level IDs that have entries, sorted.
func (b *Board) Levels() []string {
	ids := make([]string, 0, len(b.levels))
	for id, entries := range b.levels {
		if len(entries) > 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Qualifies reports whether score would enter a level's board: the board
// has a free slot or score beats the last entry.
func (b *Board) Qualifies(level string, score int) bool {
	entries := b.levels[level]
	if len(entries) < b.size {
		return true
	}
	return score > entries[len(entries)-1].Score
}

// Insert adds an entry if it qualifies and returns its 1-based rank.
// Ties rank below existing entries with the same score.
func (b *Board) Insert(level string, e Entry) (int, bool) {
	if !b.Qualifies(level, e.Score) {
		return 0, false
	}
	entries := b.levels[level]
	pos := sort.Search(len(entries), func(i int) bool {
		return entries[i].Score < e.Score
	})
	entries = append(entries, Entry{})
	copy(entries[pos+1:], entries[pos:])
	entries[pos] = e
	if len(entries) > b.size {
		entries = entries[:b.size]
	}
	b.levels[level] = entries
	return pos + 1, true
}

// MarshalYAML encodes the board as a level-to-entries mapping.
func (b *Board) MarshalYAML() (any, error) {
	return b.levels, nil
}

// Load reads the board stored under key. A missing key yields an empty board.
func Load(store Store, key string, size int) (*Board, error) {
	b := New(size)
	data, ok, err := store.LoadBlob(key)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: load %s: %w", key, err)
	}
	if !ok || len(data) == 0 {
		return b, nil
	}

	var levels map[string][]Entry
	if err := yaml.Unmarshal(data, &levels); err != nil {
		return nil, fmt.Errorf("leaderboard: decode %s: %w", key, err)
	}
	for id, entries := range levels {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Score > entries[j].Score
		})
		if len(entries) > b.size {
			entries = entries[:b.size]
		}
		b.levels[id] = entries
	}
	return b, nil
}

// Save rewrites the whole board under key.
func (b *Board) Save(store Store, key string) error {
	data, err := yaml.Marshal(b)
	if err != nil {
		return fmt.Errorf("leaderboard: encode: %w", err)
	}
	if err := store.SaveBlob(key, data); err != nil {
		return fmt.Errorf("leaderboard: save %s: %w", key, err)
	}
	return nil
}
