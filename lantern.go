package lantern

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/lantern/geom"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at draw submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// ColorBlack is opaque black.
var ColorBlack = Color{0, 0, 0, 1}

// Gray returns an opaque gray with all channels set to v.
func Gray(v float64) Color {
	return Color{v, v, v, 1}
}

// ColorFromHSV converts a hue in degrees and saturation/value in [0, 1] to an
// opaque Color.
func ColorFromHSV(hue geom.Deg, saturation, value float64) Color {
	h := math.Mod(float64(hue), 360)
	if h < 0 {
		h += 360
	}
	h /= 60
	sector := math.Floor(h)
	f := h - sector
	p := value * (1 - saturation)
	q := value * (1 - saturation*f)
	t := value * (1 - saturation*(1-f))
	switch int(sector) {
	case 0:
		return Color{value, t, p, 1}
	case 1:
		return Color{q, value, p, 1}
	case 2:
		return Color{p, value, t, 1}
	case 3:
		return Color{p, q, value, 1}
	case 4:
		return Color{t, p, value, 1}
	default:
		return Color{value, p, q, 1}
	}
}

// premultiplied returns the color's components multiplied by alpha.
func (c Color) premultiplied() [4]float32 {
	return [4]float32{
		float32(c.R * c.A),
		float32(c.G * c.A),
		float32(c.B * c.A),
		float32(c.A),
	}
}

// toRGBA converts to a premultiplied 8-bit color.
func (c Color) toRGBA() color.RGBA {
	p := c.premultiplied()
	return color.RGBA{
		R: uint8(clamp01(p[0])*255 + 0.5),
		G: uint8(clamp01(p[1])*255 + 0.5),
		B: uint8(clamp01(p[2])*255 + 0.5),
		A: uint8(clamp01(p[3])*255 + 0.5),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Rect is an axis-aligned rectangle in Y-up text/world units: (X, Y) is the
// bottom-left corner.
type Rect struct {
	X, Y, Width, Height float32
}

// Min returns the bottom-left corner.
func (r Rect) Min() geom.Vec2 { return geom.Vec2{X: r.X, Y: r.Y} }

// Max returns the top-right corner.
func (r Rect) Max() geom.Vec2 { return geom.Vec2{X: r.X + r.Width, Y: r.Y + r.Height} }

// Center returns the rectangle center.
func (r Rect) Center() geom.Vec2 {
	return geom.Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool { return r.Width <= 0 || r.Height <= 0 }

// Union returns the smallest rectangle containing r and o. Empty rectangles
// are ignored.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	minX := min(r.X, o.X)
	minY := min(r.Y, o.Y)
	maxX := max(r.X+r.Width, o.X+o.Width)
	maxY := max(r.Y+r.Height, o.Y+o.Height)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Translate returns r moved by d.
func (r Rect) Translate(d geom.Vec2) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// BlendMode selects a compositing operation. Each maps to a specific ebiten.Blend value.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota // source-over (premultiplied SourceAlpha / OneMinusSourceAlpha)
	BlendNone                    // opaque copy (skip blending)
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendNone:
		return ebiten.BlendCopy
	default:
		return ebiten.BlendSourceOver
	}
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// MouseButtons is a bitmask of currently held mouse buttons.
type MouseButtons uint8

const (
	ButtonLeft   MouseButtons = 1 << iota // left button held
	ButtonRight                           // right button held
	ButtonMiddle                          // middle button held
)

// Has reports whether every button in o is held.
func (b MouseButtons) Has(o MouseButtons) bool { return b&o == o && o != 0 }

// mask returns the MouseButtons bit for a single button.
func (b MouseButton) mask() MouseButtons { return 1 << b }

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)
