// Package publish assembles a distributable game collection: every
// subdirectory carrying a game.json descriptor is copied into the output
// directory, and a games.js file listing the descriptors is written next
// to them for the collection's landing page.
package publish

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	// DescriptorFile marks a directory as a game.
	DescriptorFile = "game.json"
	// ListingFile is the generated game list.
	ListingFile = "games.js"
	// IndexFile is copied from the source root when present.
	IndexFile = "index.html"
)

// Game is a game descriptor. Link is filled in from the directory name.
type Game struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Image       string   `json:"image,omitempty"`
	Creator     string   `json:"creator,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Link        string   `json:"link"`
}

// Build recreates dst from the game directories found in src and returns
// the games it listed. A directory whose descriptor cannot be read is
// logged and skipped.
func Build(src, dst string, logger *log.Logger) ([]Game, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	srcAbs, err := filepath.Abs(src)
	if err != nil {
		return nil, fmt.Errorf("publish: %w", err)
	}
	dstAbs, err := filepath.Abs(dst)
	if err != nil {
		return nil, fmt.Errorf("publish: %w", err)
	}
	if rel, err := filepath.Rel(dstAbs, srcAbs); err != nil || !outside(rel) {
		return nil, errors.New("publish: output directory must not contain the source")
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return nil, fmt.Errorf("publish: cannot read %s: %w", src, err)
	}

	if err := os.RemoveAll(dst); err != nil {
		return nil, fmt.Errorf("publish: cannot clean %s: %w", dst, err)
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return nil, fmt.Errorf("publish: cannot create %s: %w", dst, err)
	}

	games := make([]Game, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(src, entry.Name())
		if abs, err := filepath.Abs(dir); err == nil && abs == dstAbs {
			continue
		}

		game, ok, err := readDescriptor(dir)
		if !ok {
			continue
		}
		if err != nil {
			logger.Error("skipping game directory", "dir", entry.Name(), "err", err)
			continue
		}

		if err := os.CopyFS(filepath.Join(dst, entry.Name()), os.DirFS(dir)); err != nil {
			logger.Error("skipping game directory", "dir", entry.Name(), "err", err)
			continue
		}
		logger.Info("copied game directory", "dir", entry.Name())

		game.Link = entry.Name() + "/"
		games = append(games, game)
		logger.Info("found game", "title", game.Title)
	}

	if err := copyIndex(src, dst); err != nil {
		return nil, err
	}
	if err := writeListing(filepath.Join(dst, ListingFile), games); err != nil {
		return nil, err
	}

	logger.Info("game list generated", "path", filepath.Join(dst, ListingFile), "games", len(games))
	return games, nil
}

// outside reports whether a path relative to the output directory leaves it.
func outside(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// readDescriptor parses dir's descriptor. ok is false when there is none.
func readDescriptor(dir string) (Game, bool, error) {
	data, err := os.ReadFile(filepath.Join(dir, DescriptorFile))
	if errors.Is(err, os.ErrNotExist) {
		return Game{}, false, nil
	}
	if err != nil {
		return Game{}, true, err
	}

	var g Game
	if err := json.Unmarshal(data, &g); err != nil {
		return Game{}, true, fmt.Errorf("invalid %s: %w", DescriptorFile, err)
	}
	return g, true, nil
}

func copyIndex(src, dst string) error {
	data, err := os.ReadFile(filepath.Join(src, IndexFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("publish: cannot read %s: %w", IndexFile, err)
	}
	if err := os.WriteFile(filepath.Join(dst, IndexFile), data, 0o644); err != nil {
		return fmt.Errorf("publish: cannot write %s: %w", IndexFile, err)
	}
	return nil
}

// writeListing writes the games as a JavaScript array assignment.
func writeListing(path string, games []Game) error {
	data, err := json.MarshalIndent(games, "", "  ")
	if err != nil {
		return fmt.Errorf("publish: cannot encode game list: %w", err)
	}

	content := "const games = " + string(data) + ";"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("publish: cannot write %s: %w", ListingFile, err)
	}
	return nil
}
