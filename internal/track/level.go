package track

import (
	"fmt"

	"github.com/vovakirdan/tui-racer/internal/core"
)

// Kind selects how a level is won.
type Kind string

const (
	// KindRace levels are won by the first vehicle to touch the finish line.
	KindRace Kind = "race"
	// KindTrial levels are won by gathering every collectible before time runs out.
	KindTrial Kind = "trial"
)

// Level is a static level record. Levels are never mutated after loading;
// per-run state such as collected flags lives in the race session.
type Level struct {
	ID           string
	Name         string
	Kind         Kind
	Map          *Tilemap
	Starts       []core.Vec2 // top-left vehicle positions, one per seat
	Finish       core.Box    // race levels only
	Waypoints    []core.Vec2 // cyclic AI route, optional
	Collectibles []core.Vec2 // trial levels only, top-left positions
	TimeLimit    int         // seconds, trial levels only
	FilePath     string
}

// Start returns the start position for seat i, falling back to the first.
func (l *Level) Start(i int) core.Vec2 {
	if i >= 0 && i < len(l.Starts) {
		return l.Starts[i]
	}
	return l.Starts[0]
}

// Validate checks the fields the level's kind depends on.
func (l *Level) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("track: level has no id")
	}
	if l.Map == nil {
		return fmt.Errorf("track: level %s has no map", l.ID)
	}
	if len(l.Starts) == 0 {
		return fmt.Errorf("track: level %s has no start position", l.ID)
	}
	switch l.Kind {
	case KindRace:
		if l.Finish.W <= 0 || l.Finish.H <= 0 {
			return fmt.Errorf("track: race level %s has no finish line", l.ID)
		}
	case KindTrial:
		if len(l.Collectibles) == 0 {
			return fmt.Errorf("track: trial level %s has no collectibles", l.ID)
		}
		if l.TimeLimit <= 0 {
			return fmt.Errorf("track: trial level %s needs a positive time limit", l.ID)
		}
	default:
		return fmt.Errorf("track: level %s has unknown kind %q", l.ID, l.Kind)
	}
	return nil
}

// Filter returns the levels of the given kind, keeping their order.
func Filter(levels []*Level, kind Kind) []*Level {
	out := make([]*Level, 0, len(levels))
	for _, l := range levels {
		if l.Kind == kind {
			out = append(out, l)
		}
	}
	return out
}
