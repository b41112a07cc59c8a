package tui

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-racer/internal/core"
)

func TestHeldKeysWindows(t *testing.T) {
	h := NewHeldKeys(500*time.Millisecond, 100*time.Millisecond)
	t0 := time.Unix(1000, 0)

	h.Press(core.Player1, core.ActionUp, t0)
	if !h.Frame(t0.Add(400 * time.Millisecond)).Player(core.Player1).Has(core.ActionUp) {
		t.Error("key should be held within the initial window")
	}

	// An auto-repeat shortens the window to the repeat rate.
	h.Press(core.Player1, core.ActionUp, t0.Add(450*time.Millisecond))
	if !h.Frame(t0.Add(520 * time.Millisecond)).Player(core.Player1).Has(core.ActionUp) {
		t.Error("key should be held after a repeat")
	}
	if h.Frame(t0.Add(560 * time.Millisecond)).Player(core.Player1).Has(core.ActionUp) {
		t.Error("key should be released once repeats stop")
	}
}

func TestHeldKeysExpiredPressStartsOver(t *testing.T) {
	h := NewHeldKeys(500*time.Millisecond, 100*time.Millisecond)
	t0 := time.Unix(1000, 0)

	h.Press(core.Player1, core.ActionLeft, t0)
	h.Frame(t0.Add(time.Second))
	h.Press(core.Player1, core.ActionLeft, t0.Add(2*time.Second))

	if !h.Frame(t0.Add(2*time.Second + 300*time.Millisecond)).Player(core.Player1).Has(core.ActionLeft) {
		t.Error("a fresh press should get the initial window")
	}
}

func TestHeldKeysOppositeReleased(t *testing.T) {
	h := NewHeldKeys(500*time.Millisecond, 100*time.Millisecond)
	t0 := time.Unix(1000, 0)

	h.Press(core.Player1, core.ActionLeft, t0)
	h.Press(core.Player1, core.ActionUp, t0)
	h.Press(core.Player1, core.ActionRight, t0.Add(10*time.Millisecond))

	p1 := h.Frame(t0.Add(20 * time.Millisecond)).Player(core.Player1)
	if p1.Has(core.ActionLeft) {
		t.Error("left should be released by right")
	}
	if !p1.Has(core.ActionRight) || !p1.Has(core.ActionUp) {
		t.Error("right and up should be held")
	}
}

func TestHeldKeysPlayersIndependent(t *testing.T) {
	h := NewHeldKeys(500*time.Millisecond, 100*time.Millisecond)
	t0 := time.Unix(1000, 0)

	h.Press(core.Player1, core.ActionLeft, t0)
	h.Press(core.Player2, core.ActionRight, t0)

	frame := h.Frame(t0.Add(10 * time.Millisecond))
	if !frame.Player(core.Player1).Has(core.ActionLeft) {
		t.Error("player 1 left should stay held")
	}
	if !frame.Player(core.Player2).Has(core.ActionRight) {
		t.Error("player 2 right should be held")
	}

	h.Clear()
	if frame := h.Frame(t0.Add(20 * time.Millisecond)); frame.Any(core.ActionLeft) || frame.Any(core.ActionRight) {
		t.Error("Clear should release every key")
	}
}
