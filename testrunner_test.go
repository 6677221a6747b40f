package lantern

import (
	"image"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestLoadTestScript(t *testing.T) {
	r, err := LoadTestScript([]byte(`{"steps": [
		{"action": "wait", "frames": 2},
		{"action": "click", "x": 10, "y": 20},
		{"action": "drag", "fromX": 0, "fromY": 0, "toX": 50, "toY": 0, "frames": 4},
		{"action": "scroll", "x": 1, "y": 1, "dy": 1},
		{"action": "screenshot", "label": "after"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(r.steps) != 5 {
		t.Errorf("steps = %d, want 5", len(r.steps))
	}
	if r.Done() {
		t.Error("new runner should not be done")
	}
}

func TestLoadTestScript_Errors(t *testing.T) {
	cases := []struct {
		name, json, want string
	}{
		{"invalid json", `{`, "parse test script"},
		{"no steps", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "jump"}]}`, `unknown action "jump"`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := LoadTestScript([]byte(c.json))
			if err == nil || !strings.Contains(err.Error(), c.want) {
				t.Errorf("err = %v, want containing %q", err, c.want)
			}
		})
	}
}

func TestTestRunner_ClickThenDone(t *testing.T) {
	h := &recordingHandler{}
	app, _ := newTestApp(h)
	r, err := LoadTestScript([]byte(`{"steps": [{"action": "click", "x": 4, "y": 5}]}`))
	if err != nil {
		t.Fatal(err)
	}
	r.ExitWhenDone = true
	app.SetTestRunner(r)

	var exited bool
	for i := 0; i < 10; i++ {
		if err := app.Update(); err != nil {
			exited = true
			break
		}
	}
	if !r.Done() || !exited {
		t.Errorf("done = %v, exited = %v, want both", r.Done(), exited)
	}
	if len(h.presses) != 1 || len(h.releases) != 1 {
		t.Errorf("presses = %d, releases = %d, want 1 and 1", len(h.presses), len(h.releases))
	}
}

func TestTestRunner_Wait(t *testing.T) {
	app, _ := newTestApp(&drawOnly{})
	r, err := LoadTestScript([]byte(`{"steps": [{"action": "wait", "frames": 3}]}`))
	if err != nil {
		t.Fatal(err)
	}
	app.SetTestRunner(r)

	frames := 0
	for !r.Done() && frames < 10 {
		_ = app.Update()
		frames++
	}
	if frames != 4 {
		t.Errorf("frames = %d, want 4", frames)
	}
}

func TestTestRunner_Screenshot(t *testing.T) {
	app, _ := newTestApp(&drawOnly{})
	r, err := LoadTestScript([]byte(`{"steps": [{"action": "screenshot", "label": "x"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	app.SetTestRunner(r)
	_ = app.Update()
	if len(app.screenshotQueue) != 1 || app.screenshotQueue[0] != "x" {
		t.Errorf("queue = %v, want [x]", app.screenshotQueue)
	}
	if !r.Done() {
		t.Error("runner should be done after its only step")
	}
}

func TestTestRunner_ExitAfterFinalScreenshot(t *testing.T) {
	app, _ := newTestApp(&drawOnly{})
	app.config.ScreenshotDir = t.TempDir()
	captureFramebuffer = func(img *ebiten.Image) *image.NRGBA {
		return image.NewNRGBA(img.Bounds())
	}
	t.Cleanup(func() { captureFramebuffer = readNRGBA })
	app.Layout(8, 8)
	r, err := LoadTestScript([]byte(`{"steps": [{"action": "screenshot", "label": "last"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	r.ExitWhenDone = true
	app.SetTestRunner(r)

	if err := app.Update(); err != nil {
		t.Fatalf("Update = %v before the screenshot was drawn, want nil", err)
	}
	if err := app.Update(); err != nil {
		t.Fatalf("second Update = %v with the screenshot still queued, want nil", err)
	}

	app.Draw(ebiten.NewImage(8, 8))
	if len(app.screenshotQueue) != 0 {
		t.Fatalf("queue = %v after Draw, want empty", app.screenshotQueue)
	}
	shots, err := filepath.Glob(filepath.Join(app.config.ScreenshotDir, "*_last.png"))
	if err != nil || len(shots) != 1 {
		t.Errorf("screenshots = %v (%v), want one", shots, err)
	}
	if err := app.Update(); err != ebiten.Termination {
		t.Errorf("Update = %v after Draw, want ebiten.Termination", err)
	}
}
