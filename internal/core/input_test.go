package core

import "testing"

func TestInputFrame(t *testing.T) {
	var f InputFrame // zero value is usable
	if f.Has(ActionPress) {
		t.Error("zero frame should have no actions")
	}

	f.Set(ActionPress)
	f.Set(ActionRelease)
	if !f.Has(ActionPress) || !f.Has(ActionRelease) || f.Has(ActionPause) {
		t.Errorf("unexpected actions %v", f.Actions)
	}

	f.Clear()
	if f.Has(ActionPress) || len(f.Actions) != 0 {
		t.Error("Clear() should drop every action")
	}
}

func TestActionString(t *testing.T) {
	tests := map[Action]string{
		ActionNone:    "None",
		ActionPress:   "Press",
		ActionRelease: "Release",
		ActionPause:   "Pause",
		Action(99):    "Unknown",
	}
	for a, want := range tests {
		if got := a.String(); got != want {
			t.Errorf("Action(%d).String() = %q, expected %q", int(a), got, want)
		}
	}
}
