package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionFlag)
	f.SetClick(4, 7, ButtonRight)

	if !f.Has(ActionFlag) || f.Has(ActionReveal) {
		t.Errorf("Has() mismatch: %v", f.Actions)
	}
	if !f.HasClick() || f.Click.X != 4 || f.Click.Y != 7 {
		t.Errorf("Click = %+v, expected right click at (4, 7)", f.Click)
	}

	clone := f.Clone()
	f.Clear()

	if f.Has(ActionFlag) || f.HasClick() {
		t.Error("Clear should reset actions and click")
	}
	if !clone.Has(ActionFlag) || clone.Click.Button != ButtonRight {
		t.Error("Clone should be independent of the original")
	}
}

func TestZeroInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionReveal) {
		t.Error("zero frame should have no actions")
	}
	f.Set(ActionReveal)
	if !f.Has(ActionReveal) {
		t.Error("Set on a zero frame should allocate")
	}
}

func TestActionString(t *testing.T) {
	if ActionChord.String() != "Chord" {
		t.Errorf("ActionChord.String() = %q, expected Chord", ActionChord.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("Action(99).String() = %q, expected Unknown", Action(99).String())
	}
}
