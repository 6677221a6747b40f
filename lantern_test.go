package lantern

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/lantern/geom"
)

func approxColor(a, b Color) bool {
	const eps = 1e-6
	return math.Abs(a.R-b.R) < eps && math.Abs(a.G-b.G) < eps &&
		math.Abs(a.B-b.B) < eps && math.Abs(a.A-b.A) < eps
}

func TestColorFromHSV(t *testing.T) {
	cases := []struct {
		h    geom.Deg
		s, v float64
		want Color
	}{
		{0, 1, 1, Color{1, 0, 0, 1}},
		{120, 1, 1, Color{0, 1, 0, 1}},
		{240, 1, 1, Color{0, 0, 1, 1}},
		{360, 1, 1, Color{1, 0, 0, 1}},
		{-120, 1, 1, Color{0, 0, 1, 1}},
		{60, 0, 0.5, Color{0.5, 0.5, 0.5, 1}},
		{216, 0.85, 1, Color{0.15, 0.49, 1, 1}},
	}
	for _, c := range cases {
		if got := ColorFromHSV(c.h, c.s, c.v); !approxColor(got, c.want) {
			t.Errorf("ColorFromHSV(%v, %v, %v) = %v, want %v", c.h, c.s, c.v, got, c.want)
		}
	}
}

func TestColorToRGBA(t *testing.T) {
	got := Color{1, 0.5, 0, 0.5}.toRGBA()
	if got.R != 128 || got.G != 64 || got.B != 0 || got.A != 128 {
		t.Errorf("toRGBA = %v, want premultiplied {128 64 0 128}", got)
	}
}

func TestGray(t *testing.T) {
	if Gray(0.95) != (Color{0.95, 0.95, 0.95, 1}) {
		t.Errorf("Gray(0.95) = %v", Gray(0.95))
	}
}

func TestRectUnion(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 2, Height: 2}
	b := Rect{X: 3, Y: -1, Width: 1, Height: 1}
	want := Rect{X: 0, Y: -1, Width: 4, Height: 3}
	if got := a.Union(b); got != want {
		t.Errorf("Union = %+v, want %+v", got, want)
	}
	if got := (Rect{}).Union(b); got != b {
		t.Errorf("empty.Union(b) = %+v, want b", got)
	}
	if got := a.Union(Rect{}); got != a {
		t.Errorf("a.Union(empty) = %+v, want a", got)
	}
}

func TestRectAccessors(t *testing.T) {
	r := Rect{X: -1, Y: 2, Width: 4, Height: 6}
	if r.Min() != geom.V2(-1, 2) || r.Max() != geom.V2(3, 8) || r.Center() != geom.V2(1, 5) {
		t.Errorf("Min/Max/Center = %v %v %v", r.Min(), r.Max(), r.Center())
	}
	if r.Translate(geom.V2(1, -2)) != (Rect{X: 0, Y: 0, Width: 4, Height: 6}) {
		t.Error("Translate moved the wrong way")
	}
}

func TestBlendModeEbitenBlend(t *testing.T) {
	if BlendNormal.EbitenBlend() != ebiten.BlendSourceOver {
		t.Error("BlendNormal should be source-over")
	}
	if BlendNone.EbitenBlend() != ebiten.BlendCopy {
		t.Error("BlendNone should be copy")
	}
}

func TestMouseButtonsHas(t *testing.T) {
	b := ButtonLeft | ButtonMiddle
	if !b.Has(ButtonLeft) || !b.Has(MouseButtonMiddle.mask()) {
		t.Error("left and middle should be held")
	}
	if b.Has(ButtonRight) || b.Has(0) {
		t.Error("right and empty should not be held")
	}
}
