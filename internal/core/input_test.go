package core

import "testing"

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionUp) {
		t.Error("zero frame should hold nothing")
	}

	f.Set(ActionUp)
	f.Set(ActionLeft)
	if !f.Has(ActionUp) || !f.Has(ActionLeft) {
		t.Error("Set actions should be held")
	}

	f.Clear()
	if f.Has(ActionUp) {
		t.Error("Clear should release all actions")
	}
}

func TestMultiInputFrame(t *testing.T) {
	var m MultiInputFrame
	m.Press(Player2, ActionRight)
	m.Press(Player2, ActionUp)

	if m.Player(Player1).Has(ActionRight) {
		t.Error("Player1 should not see Player2 input")
	}
	p2 := m.Player(Player2)
	if !p2.Has(ActionRight) || !p2.Has(ActionUp) {
		t.Errorf("Player2 frame = %v, expected Right and Up", p2.Actions)
	}
	if !m.Any(ActionUp) || m.Any(ActionPause) {
		t.Error("Any() mismatch")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		a    Action
		want string
	}{
		{ActionUp, "Up"},
		{ActionLeft, "Left"},
		{ActionPause, "Pause"},
		{Action(99), "Unknown"},
	}
	for _, tc := range tests {
		if got := tc.a.String(); got != tc.want {
			t.Errorf("%d.String() = %q, expected %q", tc.a, got, tc.want)
		}
	}
}
