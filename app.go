package lantern

import (
	"fmt"
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Configuration describes the application window.
type Configuration struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	// ShowFPS draws an FPS/TPS overlay in the top-left corner.
	ShowFPS bool
	// ClearColor fills a newly created framebuffer.
	ClearColor Color
	// Debug enables debug mode (see SetDebugMode).
	Debug bool
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string
}

// DefaultConfiguration returns an 800x600 resizable window.
func DefaultConfiguration() Configuration {
	return Configuration{
		Title:         "lantern",
		Width:         800,
		Height:        600,
		Resizable:     true,
		ClearColor:    ColorBlack,
		ScreenshotDir: "screenshots",
	}
}

// EventHandler is implemented by every application. DrawEvent is called when
// a redraw was requested.
type EventHandler interface {
	DrawEvent(fb *Framebuffer)
}

// ViewportEventHandler receives window size changes.
type ViewportEventHandler interface {
	ViewportEvent(e *ViewportEvent)
}

// MouseMoveEventHandler receives pointer motion.
type MouseMoveEventHandler interface {
	MouseMoveEvent(e *MouseMoveEvent)
}

// MouseScrollEventHandler receives scrolling.
type MouseScrollEventHandler interface {
	MouseScrollEvent(e *MouseScrollEvent)
}

// MousePressEventHandler receives button presses.
type MousePressEventHandler interface {
	MousePressEvent(e *MouseEvent)
}

// MouseReleaseEventHandler receives button releases.
type MouseReleaseEventHandler interface {
	MouseReleaseEvent(e *MouseEvent)
}

// TickEventHandler is called once per update with the tick length in seconds.
type TickEventHandler interface {
	TickEvent(dt float32)
}

// Framebuffer is the persistent render target handed to DrawEvent. Its
// contents survive between frames until the application clears it.
type Framebuffer struct {
	img *ebiten.Image
}

// Clear fills the framebuffer with c.
func (f *Framebuffer) Clear(c Color) {
	f.img.Fill(c.toRGBA())
}

// Viewport returns the framebuffer size.
func (f *Framebuffer) Viewport() image.Point {
	return f.img.Bounds().Size()
}

// Image returns the underlying image.
func (f *Framebuffer) Image() *ebiten.Image { return f.img }

// Application adapts an EventHandler to ebiten.Game.
type Application struct {
	config  Configuration
	handler EventHandler

	input     inputSource
	prevInput inputState
	inputSeen bool

	framebuffer *Framebuffer
	windowSize  image.Point
	// deviceScale reports framebuffer pixels per window unit. scale holds
	// the value used by the last layout.
	deviceScale func() float64
	scale       float64
	redraw      bool
	exit        bool

	injectQueue []inputState
	synthetic   inputState

	testRunner      *TestRunner
	screenshotQueue []string
	fps             *fpsOverlay
	screenOp        ebiten.DrawImageOptions
}

// NewApplication creates an application. Call Run to open the window.
func NewApplication(cfg Configuration, handler EventHandler) *Application {
	a := newApplication(cfg, handler, &ebitenInput{})
	a.deviceScale = monitorScale
	return a
}

// monitorScale returns the device scale factor of the window's monitor.
func monitorScale() float64 {
	m := ebiten.Monitor()
	if m == nil {
		return 1
	}
	if s := m.DeviceScaleFactor(); s > 0 {
		return s
	}
	return 1
}

func newApplication(cfg Configuration, handler EventHandler, input inputSource) *Application {
	if handler == nil {
		panic("lantern: application needs an event handler")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		def := DefaultConfiguration()
		cfg.Width, cfg.Height = def.Width, def.Height
	}
	a := &Application{
		config:  cfg,
		handler: handler,
		input:   input,
		redraw:  true,

		deviceScale: func() float64 { return 1 },
		scale:       1,
	}
	if cfg.ShowFPS {
		a.fps = newFPSOverlay()
	}
	a.SetDebugMode(cfg.Debug)
	return a
}

// Configuration returns the configuration the application was created with.
func (a *Application) Configuration() Configuration { return a.config }

// SetDebugMode enables or disables debug mode for the whole package.
func (a *Application) SetDebugMode(enabled bool) {
	a.config.Debug = enabled
	globalDebug = enabled
}

// Framebuffer returns the current framebuffer, or nil before the first
// layout.
func (a *Application) Framebuffer() *Framebuffer { return a.framebuffer }

// Redraw schedules a DrawEvent for the next frame.
func (a *Application) Redraw() { a.redraw = true }

// Exit makes the main loop stop after the current update. Queued
// screenshots are written by one more Draw first.
func (a *Application) Exit() { a.exit = true }

func (a *Application) exiting() bool {
	return a.exit && (len(a.screenshotQueue) == 0 || a.framebuffer == nil)
}

// Run opens the window and blocks until it is closed or Exit is called.
func (a *Application) Run() error {
	ebiten.SetWindowTitle(a.config.Title)
	ebiten.SetWindowSize(a.config.Width, a.config.Height)
	if a.config.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetScreenClearedEveryFrame(false)
	if err := ebiten.RunGame(a); err != nil {
		return fmt.Errorf("lantern: run: %w", err)
	}
	return nil
}

// Update implements ebiten.Game.
func (a *Application) Update() error {
	if a.exiting() {
		return ebiten.Termination
	}
	if a.testRunner != nil {
		a.testRunner.step(a)
	}

	cur, ok := a.popInjected()
	if !ok {
		cur = a.input.poll()
		cur.position = a.toWindow(cur.position)
	}
	a.processInput(cur)

	dt := float32(1) / float32(ebiten.TPS())
	if h, ok := a.handler.(TickEventHandler); ok {
		h.TickEvent(dt)
	}
	if a.fps != nil {
		a.fps.update(dt)
	}
	if a.exiting() {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game. The handler draws into the persistent
// framebuffer only when a redraw is pending; the framebuffer is copied to
// the screen every frame.
func (a *Application) Draw(screen *ebiten.Image) {
	if a.framebuffer == nil {
		return
	}
	if a.redraw {
		a.redraw = false
		a.handler.DrawEvent(a.framebuffer)
	}
	a.flushScreenshots(a.framebuffer.img)

	a.screenOp.Blend = BlendNone.EbitenBlend()
	screen.DrawImage(a.framebuffer.img, &a.screenOp)
	if a.fps != nil {
		a.fps.draw(screen)
	}
}

// Layout implements ebiten.Game. The framebuffer is sized in device
// pixels, WindowSize times the monitor's scale factor. A size change
// recreates the framebuffer, delivers a ViewportEvent and requests a redraw.
func (a *Application) Layout(outsideWidth, outsideHeight int) (int, int) {
	window := image.Pt(max(outsideWidth, 1), max(outsideHeight, 1))
	scale := a.deviceScale()
	if scale <= 0 {
		scale = 1
	}
	fb := image.Pt(int(math.Ceil(float64(window.X)*scale)), int(math.Ceil(float64(window.Y)*scale)))
	if a.framebuffer == nil || window != a.windowSize || fb != a.framebuffer.Viewport() {
		a.windowSize = window
		a.scale = scale
		a.resizeFramebuffer(fb)
		if h, ok := a.handler.(ViewportEventHandler); ok {
			h.ViewportEvent(&ViewportEvent{WindowSize: window, FramebufferSize: fb})
		}
		a.redraw = true
	}
	return fb.X, fb.Y
}

// toWindow converts a position polled in framebuffer pixels to window
// coordinates, which is what events carry.
func (a *Application) toWindow(p image.Point) image.Point {
	if a.scale == 1 {
		return p
	}
	return image.Pt(int(float64(p.X)/a.scale), int(float64(p.Y)/a.scale))
}

func (a *Application) resizeFramebuffer(size image.Point) {
	if a.framebuffer != nil {
		a.framebuffer.img.Deallocate()
	}
	img := ebiten.NewImage(size.X, size.Y)
	img.Fill(a.config.ClearColor.toRGBA())
	a.framebuffer = &Framebuffer{img: img}
}
