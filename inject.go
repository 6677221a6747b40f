package lantern

import "image"

// Synthetic input replaces real input for the frame that consumes it. Each
// Inject* call queues one frame; the synthetic button state carries over
// between queued frames.

// InjectMove queues a pointer move to (x, y) in window coordinates. Buttons
// pressed by earlier injections stay held.
func (a *Application) InjectMove(x, y int) {
	a.synthetic.position = image.Pt(x, y)
	a.queueSynthetic()
}

// InjectPress queues a left button press at (x, y).
func (a *Application) InjectPress(x, y int) {
	a.synthetic.position = image.Pt(x, y)
	a.synthetic.buttons |= ButtonLeft
	a.queueSynthetic()
}

// InjectRelease queues a left button release at (x, y).
func (a *Application) InjectRelease(x, y int) {
	a.synthetic.position = image.Pt(x, y)
	a.synthetic.buttons &^= ButtonLeft
	a.queueSynthetic()
}

// InjectClick is a convenience that queues a press followed by a release
// at the same coordinates. Consumes two frames.
func (a *Application) InjectClick(x, y int) {
	a.InjectPress(x, y)
	a.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at from, linearly
// interpolated moves over frames-2 intermediate frames, a move to to and
// the release there. Minimum frames is 2 (press + release).
func (a *Application) InjectDrag(from, to image.Point, frames int) {
	if frames < 2 {
		frames = 2
	}
	a.InjectPress(from.X, from.Y)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := float64(from.X) + float64(to.X-from.X)*t
		y := float64(from.Y) + float64(to.Y-from.Y)*t
		a.InjectMove(int(x+0.5), int(y+0.5))
	}
	a.InjectRelease(to.X, to.Y)
}

// InjectScroll queues a scroll of (dx, dy) wheel steps with the pointer at
// (x, y).
func (a *Application) InjectScroll(x, y int, dx, dy float64) {
	a.synthetic.position = image.Pt(x, y)
	a.synthetic.wheelX, a.synthetic.wheelY = dx, dy
	a.queueSynthetic()
	a.synthetic.wheelX, a.synthetic.wheelY = 0, 0
}

// InjectPending reports how many synthetic frames are queued.
func (a *Application) InjectPending() int { return len(a.injectQueue) }

func (a *Application) queueSynthetic() {
	a.injectQueue = append(a.injectQueue, a.synthetic)
}

// popInjected removes the oldest synthetic frame from the queue.
func (a *Application) popInjected() (inputState, bool) {
	if len(a.injectQueue) == 0 {
		return inputState{}, false
	}
	s := a.injectQueue[0]
	copy(a.injectQueue, a.injectQueue[1:])
	a.injectQueue = a.injectQueue[:len(a.injectQueue)-1]
	return s, true
}
