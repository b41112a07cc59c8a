package track

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-racer/internal/core"
)

// DefaultTileSize is used when a level file omits tile_size.
const DefaultTileSize = 40

// YAMLLevel is the on-disk level format.
type YAMLLevel struct {
	ID           string      `yaml:"id"`
	Name         string      `yaml:"name"`
	Kind         string      `yaml:"kind"`
	TileSize     float64     `yaml:"tile_size,omitempty"`
	Map          []string    `yaml:"map"`
	Starts       []YAMLPoint `yaml:"starts"`
	Finish       *YAMLBox    `yaml:"finish,omitempty"`
	Waypoints    []YAMLPoint `yaml:"waypoints,omitempty"`
	Collectibles []YAMLPoint `yaml:"collectibles,omitempty"`
	TimeLimit    int         `yaml:"time_limit,omitempty"`
}

// YAMLPoint is a world-space position.
type YAMLPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// YAMLBox is a world-space rectangle.
type YAMLBox struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// ParseYAML parses and validates a level file.
func ParseYAML(data []byte) (*Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}

	tileSize := yl.TileSize
	if tileSize == 0 {
		tileSize = DefaultTileSize
	}
	tm, err := ParseTilemap(yl.Map, tileSize)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", yl.ID, err)
	}

	lvl := &Level{
		ID:           yl.ID,
		Name:         yl.Name,
		Kind:         Kind(yl.Kind),
		Map:          tm,
		Starts:       points(yl.Starts),
		Waypoints:    points(yl.Waypoints),
		Collectibles: points(yl.Collectibles),
		TimeLimit:    yl.TimeLimit,
	}
	if yl.Finish != nil {
		lvl.Finish = core.Box{X: yl.Finish.X, Y: yl.Finish.Y, W: yl.Finish.W, H: yl.Finish.H}
	}
	if lvl.Name == "" {
		lvl.Name = lvl.ID
	}

	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return lvl, nil
}

func points(in []YAMLPoint) []core.Vec2 {
	if len(in) == 0 {
		return nil
	}
	out := make([]core.Vec2, len(in))
	for i, p := range in {
		out[i] = core.Vec2{X: p.X, Y: p.Y}
	}
	return out
}
