package lantern

import (
	"image"
	"testing"
)

func TestInjectClick(t *testing.T) {
	h := &recordingHandler{}
	app, _ := newTestApp(h)
	app.InjectClick(20, 30)
	if app.InjectPending() != 2 {
		t.Fatalf("pending = %d, want 2", app.InjectPending())
	}
	_ = app.Update()
	_ = app.Update()
	if app.InjectPending() != 0 {
		t.Errorf("pending = %d, want 0", app.InjectPending())
	}
	if len(h.presses) != 1 || h.presses[0].Position != image.Pt(20, 30) {
		t.Errorf("presses = %+v", h.presses)
	}
	if len(h.releases) != 1 {
		t.Errorf("releases = %d, want 1", len(h.releases))
	}
}

func TestInjectDrag_FrameCount(t *testing.T) {
	app, _ := newTestApp(&drawOnly{})
	app.InjectDrag(image.Pt(0, 0), image.Pt(100, 50), 6)
	if app.InjectPending() != 6 {
		t.Errorf("pending = %d, want 6", app.InjectPending())
	}
}

func TestInjectDrag_MinimumFrames(t *testing.T) {
	app, _ := newTestApp(&drawOnly{})
	app.InjectDrag(image.Pt(0, 0), image.Pt(10, 10), 0)
	if app.InjectPending() != 2 {
		t.Errorf("pending = %d, want 2", app.InjectPending())
	}
}

func TestInjectDrag_MovesWithButtonHeld(t *testing.T) {
	h := &recordingHandler{}
	app, _ := newTestApp(h)
	app.InjectDrag(image.Pt(0, 0), image.Pt(90, 30), 5)
	for app.InjectPending() > 0 {
		_ = app.Update()
	}

	if len(h.moves) != 3 {
		t.Fatalf("moves = %d, want 3", len(h.moves))
	}
	for i, mv := range h.moves {
		if !mv.Buttons.Has(ButtonLeft) {
			t.Errorf("move %d without left button", i)
		}
	}
	if last := h.moves[2].Position; last != image.Pt(90, 30) {
		t.Errorf("last move = %v, want (90,30)", last)
	}
	if h.moves[0].Position != image.Pt(30, 10) {
		t.Errorf("first move = %v, want (30,10)", h.moves[0].Position)
	}
	if len(h.releases) != 1 || h.releases[0].Position != image.Pt(90, 30) {
		t.Errorf("releases = %+v", h.releases)
	}
}

func TestInjectScroll(t *testing.T) {
	h := &recordingHandler{}
	app, _ := newTestApp(h)
	app.InjectScroll(5, 6, 0, 3)
	app.InjectMove(5, 7)
	_ = app.Update()
	_ = app.Update()
	if len(h.scrolls) != 1 || h.scrolls[0].Offset.Y != 3 {
		t.Errorf("scrolls = %+v, want one with y=3", h.scrolls)
	}
}

func TestInjectOverridesPolledInput(t *testing.T) {
	h := &recordingHandler{}
	app, in := newTestApp(h)
	in.last = inputState{position: image.Pt(500, 500)}
	app.InjectPress(1, 1)
	_ = app.Update()
	if len(h.presses) != 1 || h.presses[0].Position != image.Pt(1, 1) {
		t.Errorf("presses = %+v", h.presses)
	}
}
