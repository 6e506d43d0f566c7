package core

import "testing"

func TestControlsPressRelease(t *testing.T) {
	c := DefaultControls()

	a, changed := c.Press("w")
	if a != ActionP1Up || !changed {
		t.Fatalf("Press(w) = (%s, %v), expected (P1 Up, true)", a, changed)
	}
	if !c.Held(ActionP1Up) {
		t.Error("P1 Up should be held after press")
	}

	// Key repeat does not count as a new press
	if _, changed := c.Press("w"); changed {
		t.Error("repeated Press should not report a transition")
	}

	if _, ok := c.Release("w"); !ok {
		t.Error("Release(w) should find the binding")
	}
	if c.Held(ActionP1Up) {
		t.Error("P1 Up should be released")
	}
}

func TestControlsUnknownCode(t *testing.T) {
	c := DefaultControls()

	if a, changed := c.Press("x"); a != ActionNone || changed {
		t.Errorf("Press(x) = (%s, %v), expected (None, false)", a, changed)
	}
	if _, ok := c.Release("x"); ok {
		t.Error("Release of unbound code should report false")
	}
}

func TestControlsReleaseAll(t *testing.T) {
	c := DefaultControls()
	c.Press("w")
	c.Press("down")
	c.Press("p")

	c.ReleaseAll()

	for _, a := range Actions {
		if c.Held(a) {
			t.Errorf("%s still held after ReleaseAll", a)
		}
	}
}

func TestControlsSnapshotIsCopy(t *testing.T) {
	c := DefaultControls()
	c.Press("s")

	frame := c.Snapshot()
	c.Release("s")
	c.Press("up")

	if !frame.Has(ActionP1Down) {
		t.Error("snapshot should keep P1 Down held")
	}
	if frame.Has(ActionP2Up) {
		t.Error("snapshot should not see presses made after it was taken")
	}
}

func TestControlsCustomCodes(t *testing.T) {
	c := NewControls(map[Action]string{
		ActionP1Up:  "k",
		ActionPause: "",
	})

	if c.Code(ActionP1Up) != "k" {
		t.Errorf("Code(P1 Up) = %q, expected k", c.Code(ActionP1Up))
	}
	if _, ok := c.Lookup(""); ok {
		t.Error("empty codes should stay unbound")
	}
}

func TestDirectionalActions(t *testing.T) {
	if UpAction(Player1) != ActionP1Up || DownAction(Player1) != ActionP1Down {
		t.Error("Player1 actions mismatch")
	}
	if UpAction(Player2) != ActionP2Up || DownAction(Player2) != ActionP2Down {
		t.Error("Player2 actions mismatch")
	}
}

func TestControlsCloneIsIndependent(t *testing.T) {
	c := DefaultControls()
	c.Press("w")

	cp := c.Clone()
	if !cp.Held(ActionP1Up) {
		t.Error("clone should keep held state")
	}
	cp.Release("w")
	cp.Press("up")
	if !c.Held(ActionP1Up) {
		t.Error("releasing on the clone released the original")
	}
	if c.Held(ActionP2Up) {
		t.Error("pressing on the clone pressed the original")
	}
	if cp.Code(ActionPause) != "p" {
		t.Errorf("clone Code(Pause) = %q, expected p", cp.Code(ActionPause))
	}
}
