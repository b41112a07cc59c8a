package track

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-racer/internal/assets"
)

//go:embed levels/*.yaml
var builtinFS embed.FS

// ErrNoLevels is returned when a source yields no level of the wanted kind.
var ErrNoLevels = errors.New("track: no levels found")

// Builtin returns the levels shipped with the binary, sorted by ID.
func Builtin() ([]*Level, error) {
	return loadFS(context.Background(), builtinFS, "levels")
}

// Loader loads level files from a directory on disk.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll parses every .yaml/.yml file under Root concurrently and returns
// the levels sorted by ID. Any invalid file fails the whole load.
func (l *Loader) LoadAll(ctx context.Context) ([]*Level, error) {
	levels, err := loadFS(ctx, os.DirFS(l.Root), ".")
	if err != nil {
		return nil, fmt.Errorf("loading levels from %s: %w", l.Root, err)
	}
	for _, lvl := range levels {
		lvl.FilePath = filepath.Join(l.Root, lvl.FilePath)
	}
	return levels, nil
}

// Load returns the levels of one kind from dir, or the built-in levels when
// dir is empty.
func Load(ctx context.Context, dir string, kind Kind) ([]*Level, error) {
	var (
		all []*Level
		err error
	)
	if dir == "" {
		all, err = Builtin()
	} else {
		all, err = NewLoader(dir).LoadAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	levels := Filter(all, kind)
	if len(levels) == 0 {
		return nil, fmt.Errorf("%w: kind %s", ErrNoLevels, kind)
	}
	return levels, nil
}

func loadFS(ctx context.Context, fsys fs.FS, root string) ([]*Level, error) {
	var paths []string
	err := fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	parsed := make([]*Level, len(paths))
	loaders := make([]assets.Loader, len(paths))
	for i, path := range paths {
		loaders[i] = func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := fs.ReadFile(fsys, path)
			if err != nil {
				return fmt.Errorf("reading file %s: %w", path, err)
			}
			lvl, err := ParseYAML(data)
			if err != nil {
				return fmt.Errorf("parsing file %s: %w", path, err)
			}
			lvl.FilePath = path
			parsed[i] = lvl
			return nil
		}
	}

	var levels []*Level
	err = assets.LoadAll(ctx, loaders, func() {
		levels = append(levels, parsed...)
		sort.Slice(levels, func(i, j int) bool {
			return levels[i].ID < levels[j].ID
		})
	})
	if err != nil {
		return nil, err
	}
	return levels, nil
}
