package lantern

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/lantern/geom"
)

// inputState is a snapshot of the pointer and modifiers for one frame.
type inputState struct {
	position       image.Point
	buttons        MouseButtons
	wheelX, wheelY float64
	mods           KeyModifiers
}

// inputSource provides one inputState per Update. The application polls the
// real source unless synthetic input is queued.
type inputSource interface {
	poll() inputState
}

// ebitenInput reads mouse, touch and keyboard state from Ebitengine.
type ebitenInput struct {
	touchIDs []ebiten.TouchID
}

func (in *ebitenInput) poll() inputState {
	var s inputState
	s.position.X, s.position.Y = ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		s.buttons |= ButtonLeft
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		s.buttons |= ButtonRight
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		s.buttons |= ButtonMiddle
	}
	// The first touch acts as a left-button mouse.
	in.touchIDs = ebiten.AppendTouchIDs(in.touchIDs[:0])
	if s.buttons == 0 && len(in.touchIDs) > 0 {
		s.position.X, s.position.Y = ebiten.TouchPosition(in.touchIDs[0])
		s.buttons = ButtonLeft
	}
	s.wheelX, s.wheelY = ebiten.Wheel()
	s.mods = readModifiers()
	return s
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}

// --- Events ---

// eventBase carries the accepted flag shared by all events.
type eventBase struct {
	accepted bool
}

// SetAccepted marks the event as handled.
func (e *eventBase) SetAccepted() { e.accepted = true }

// IsAccepted reports whether a handler accepted the event.
func (e *eventBase) IsAccepted() bool { return e.accepted }

// ViewportEvent is delivered when the window or framebuffer size changes.
// WindowSize is in the units mouse events use. FramebufferSize is in device
// pixels and is larger on HiDPI displays.
type ViewportEvent struct {
	eventBase
	WindowSize      image.Point
	FramebufferSize image.Point
}

// MouseMoveEvent is delivered when the pointer moves. Buttons holds every
// button that was down at some point during the motion.
type MouseMoveEvent struct {
	eventBase
	Position         image.Point
	RelativePosition image.Point
	Buttons          MouseButtons
	Modifiers        KeyModifiers
}

// MouseScrollEvent is delivered for wheel or trackpad scrolling. Positive Y
// scrolls up.
type MouseScrollEvent struct {
	eventBase
	Offset    geom.Vec2
	Position  image.Point
	Modifiers KeyModifiers
}

// MouseEvent is delivered when a button is pressed or released.
type MouseEvent struct {
	eventBase
	Button    MouseButton
	Position  image.Point
	Modifiers KeyModifiers
}

var allMouseButtons = [...]MouseButton{MouseButtonLeft, MouseButtonRight, MouseButtonMiddle}

// processInput derives events from the difference between the previous and
// current input state: presses first, then motion, then releases, then
// scrolling.
func (a *Application) processInput(cur inputState) {
	prev := a.prevInput
	a.prevInput = cur

	if h, ok := a.handler.(MousePressEventHandler); ok {
		for _, b := range allMouseButtons {
			if cur.buttons.Has(b.mask()) && !prev.buttons.Has(b.mask()) {
				h.MousePressEvent(&MouseEvent{Button: b, Position: cur.position, Modifiers: cur.mods})
			}
		}
	}

	if a.inputSeen && cur.position != prev.position {
		if h, ok := a.handler.(MouseMoveEventHandler); ok {
			h.MouseMoveEvent(&MouseMoveEvent{
				Position:         cur.position,
				RelativePosition: cur.position.Sub(prev.position),
				Buttons:          cur.buttons | prev.buttons,
				Modifiers:        cur.mods,
			})
		}
	}
	a.inputSeen = true

	if h, ok := a.handler.(MouseReleaseEventHandler); ok {
		for _, b := range allMouseButtons {
			if prev.buttons.Has(b.mask()) && !cur.buttons.Has(b.mask()) {
				h.MouseReleaseEvent(&MouseEvent{Button: b, Position: cur.position, Modifiers: cur.mods})
			}
		}
	}

	if cur.wheelX != 0 || cur.wheelY != 0 {
		if h, ok := a.handler.(MouseScrollEventHandler); ok {
			h.MouseScrollEvent(&MouseScrollEvent{
				Offset:    geom.Vec2{X: float32(cur.wheelX), Y: float32(cur.wheelY)},
				Position:  cur.position,
				Modifiers: cur.mods,
			})
		}
	}
}
