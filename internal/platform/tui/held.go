package tui

import (
	"time"

	"github.com/vovakirdan/tui-racer/internal/core"
)

// Terminals report presses and auto-repeats but never releases. A key
// counts as held until no repeat has arrived within its window: the first
// press waits out the typical repeat delay, later repeats only the rate.
const (
	DefaultInitialHold = 550 * time.Millisecond
	DefaultRepeatHold  = 150 * time.Millisecond
)

type heldKey struct {
	player core.PlayerID
	action core.Action
}

// HeldKeys tracks which driving actions are currently held.
type HeldKeys struct {
	initial time.Duration
	repeat  time.Duration
	until   map[heldKey]time.Time
}

// NewHeldKeys creates a tracker with the given hold windows.
func NewHeldKeys(initial, repeat time.Duration) *HeldKeys {
	return &HeldKeys{
		initial: initial,
		repeat:  repeat,
		until:   make(map[heldKey]time.Time),
	}
}

// opposite returns the action that cannot be held together with a.
func opposite(a core.Action) core.Action {
	switch a {
	case core.ActionUp:
		return core.ActionDown
	case core.ActionDown:
		return core.ActionUp
	case core.ActionLeft:
		return core.ActionRight
	case core.ActionRight:
		return core.ActionLeft
	}
	return core.ActionNone
}

// Press records a press or auto-repeat of an action at now.
// Pressing a direction releases its opposite for the same player.
func (h *HeldKeys) Press(p core.PlayerID, a core.Action, now time.Time) {
	k := heldKey{player: p, action: a}
	window := h.initial
	if until, ok := h.until[k]; ok && now.Before(until) {
		window = h.repeat
	}
	h.until[k] = now.Add(window)

	if o := opposite(a); o != core.ActionNone {
		delete(h.until, heldKey{player: p, action: o})
	}
}

// Frame returns the actions held at now and forgets expired ones.
func (h *HeldKeys) Frame(now time.Time) core.MultiInputFrame {
	frame := core.NewMultiInputFrame()
	for k, until := range h.until {
		if !now.Before(until) {
			delete(h.until, k)
			continue
		}
		frame.Press(k.player, k.action)
	}
	return frame
}

// Clear releases every key.
func (h *HeldKeys) Clear() {
	clear(h.until)
}
