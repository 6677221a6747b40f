package lantern

import (
	"errors"
	"image"
	"testing"

	"github.com/phanxgames/lantern/geom"
)

// fakeFont is a monospaced font: size 10, line height 12, advance 5, glyph
// ids equal to runes, and kerning of -1 between A and V.
type fakeFont struct {
	opened bool
}

func (f *fakeFont) OpenData([]byte, float32) error { f.opened = true; return nil }
func (f *fakeFont) IsOpened() bool                 { return f.opened }
func (f *fakeFont) Close() error                   { f.opened = false; return nil }
func (f *fakeFont) Size() float32                  { return 10 }
func (f *fakeFont) LineHeight() float32            { return 12 }
func (f *fakeFont) Ascent() float32                { return 8 }
func (f *fakeFont) Descent() float32               { return -2 }
func (f *fakeFont) GlyphID(r rune) GlyphID         { return GlyphID(r) }
func (f *fakeFont) GlyphAdvance(GlyphID) float32   { return 5 }

func (f *fakeFont) Kerning(a, b GlyphID) float32 {
	if a == 'A' && b == 'V' {
		return -1
	}
	return 0
}

// FillGlyphCache stores a 4x6 box for every character except space.
func (f *fakeFont) FillGlyphCache(cache *GlyphCache, characters string) error {
	if err := cache.Insert(0, nil, geom.Vec2{}, 5); err != nil {
		return err
	}
	for _, r := range characters {
		var cov *image.Alpha
		if r != ' ' {
			cov = solidCoverage(4, 6)
		}
		if err := cache.Insert(GlyphID(r), cov, geom.Vec2{}, 5); err != nil {
			return err
		}
	}
	return nil
}

func newFakeText(t *testing.T) (*fakeFont, *GlyphCache) {
	t.Helper()
	f := &fakeFont{opened: true}
	c := NewGlyphCache(image.Pt(64, 64), 0)
	if err := f.FillGlyphCache(c, "ABV "); err != nil {
		t.Fatal(err)
	}
	return f, c
}

func quadX(m *Mesh, quad int) float32 { return m.Vertices[quad*4].Position.X }
func quadY(m *Mesh, quad int) float32 { return m.Vertices[quad*4].Position.Y }

func TestRenderText_LineLeft(t *testing.T) {
	f, c := newFakeText(t)
	m, rect, err := RenderText(f, c, 10, "AB", LineLeft)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Vertices) != 8 || len(m.Indices) != 12 {
		t.Fatalf("vertices = %d, indices = %d, want 8, 12", len(m.Vertices), len(m.Indices))
	}
	if quadX(m, 0) != 0 || quadX(m, 1) != 5 {
		t.Errorf("quad x = %f, %f, want 0, 5", quadX(m, 0), quadX(m, 1))
	}
	if rect != (Rect{X: 0, Y: 0, Width: 9, Height: 6}) {
		t.Errorf("rect = %+v, want {0 0 9 6}", rect)
	}
}

func TestRenderText_QuadLayout(t *testing.T) {
	f, c := newFakeText(t)
	m, _, err := RenderText(f, c, 10, "A", LineLeft)
	if err != nil {
		t.Fatal(err)
	}
	lo, hi := c.TexCoords(c.Glyph('A').Region)
	want := []Vertex{
		{Position: geom.V3(0, 0, 0), TexCoord: geom.V2(lo.X, hi.Y)},
		{Position: geom.V3(4, 0, 0), TexCoord: geom.V2(hi.X, hi.Y)},
		{Position: geom.V3(4, 6, 0), TexCoord: geom.V2(hi.X, lo.Y)},
		{Position: geom.V3(0, 6, 0), TexCoord: geom.V2(lo.X, lo.Y)},
	}
	for i, w := range want {
		v := m.Vertices[i]
		if v.Position != w.Position || v.TexCoord != w.TexCoord {
			t.Errorf("vertex %d = %v %v, want %v %v", i, v.Position, v.TexCoord, w.Position, w.TexCoord)
		}
	}
	wantIdx := []uint16{0, 1, 2, 0, 2, 3}
	for i, w := range wantIdx {
		if m.Indices[i] != w {
			t.Errorf("index %d = %d, want %d", i, m.Indices[i], w)
		}
	}
}

func TestRenderText_Scale(t *testing.T) {
	f, c := newFakeText(t)
	_, rect, err := RenderText(f, c, 20, "A", LineLeft)
	if err != nil {
		t.Fatal(err)
	}
	if rect.Width != 8 || rect.Height != 12 {
		t.Errorf("rect = %+v, want 8x12", rect)
	}
}

func TestRenderText_Kerning(t *testing.T) {
	f, c := newFakeText(t)
	m, _, err := RenderText(f, c, 10, "AV", LineLeft)
	if err != nil {
		t.Fatal(err)
	}
	if quadX(m, 1) != 4 {
		t.Errorf("V x = %f, want 4", quadX(m, 1))
	}
}

func TestRenderText_SpaceHasNoQuad(t *testing.T) {
	f, c := newFakeText(t)
	m, _, err := RenderText(f, c, 10, "A B", LineLeft)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Vertices) != 8 {
		t.Fatalf("vertices = %d, want 8", len(m.Vertices))
	}
	if quadX(m, 1) != 10 {
		t.Errorf("B x = %f, want 10", quadX(m, 1))
	}
}

func TestRenderText_MissingGlyphUsesGlyphZero(t *testing.T) {
	f, c := newFakeText(t)
	m, _, err := RenderText(f, c, 10, "AZB", LineLeft)
	if err != nil {
		t.Fatal(err)
	}
	// Glyph 0 has no region but still advances the pen.
	if len(m.Vertices) != 8 || quadX(m, 1) != 10 {
		t.Errorf("vertices = %d, B x = %f, want 8, 10", len(m.Vertices), quadX(m, 1))
	}
}

func TestRenderText_HorizontalAlignment(t *testing.T) {
	f, c := newFakeText(t)
	cases := []struct {
		align Alignment
		want  float32
	}{
		{LineLeft, 0},
		{LineCenter, -5},
		{LineRight, -10},
	}
	for _, tc := range cases {
		m, _, err := RenderText(f, c, 10, "AB", tc.align)
		if err != nil {
			t.Fatal(err)
		}
		if got := quadX(m, 0); got != tc.want {
			t.Errorf("align %d: first x = %f, want %f", tc.align, got, tc.want)
		}
	}
}

func TestRenderText_MultiLine(t *testing.T) {
	f, c := newFakeText(t)
	m, rect, err := RenderText(f, c, 10, "AB\nA", LineRight)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Vertices) != 12 {
		t.Fatalf("vertices = %d, want 12", len(m.Vertices))
	}
	// Each line is aligned on its own.
	if quadX(m, 2) != -5 {
		t.Errorf("second line x = %f, want -5", quadX(m, 2))
	}
	if quadY(m, 2) != -12 {
		t.Errorf("second line y = %f, want -12", quadY(m, 2))
	}
	if rect != (Rect{X: -10, Y: -12, Width: 9, Height: 18}) {
		t.Errorf("rect = %+v, want {-10 -12 9 18}", rect)
	}
}

func TestRenderText_VerticalAlignment(t *testing.T) {
	f, c := newFakeText(t)
	cases := []struct {
		align Alignment
		wantY float32
	}{
		{LineLeft, 0},
		{MiddleLeft, 3},
		{TopLeft, -6},
	}
	for _, tc := range cases {
		m, rect, err := RenderText(f, c, 10, "A\nA", tc.align)
		if err != nil {
			t.Fatal(err)
		}
		if got := quadY(m, 0); got != tc.wantY {
			t.Errorf("align %d: first y = %f, want %f", tc.align, got, tc.wantY)
		}
		if rect.Y != tc.wantY-12 {
			t.Errorf("align %d: rect.Y = %f, want %f", tc.align, rect.Y, tc.wantY-12)
		}
	}
}

func TestRenderText_MiddleCenterIsCentered(t *testing.T) {
	f, c := newFakeText(t)
	_, rect, err := RenderText(f, c, 10, "AB\nBA", MiddleCenter)
	if err != nil {
		t.Fatal(err)
	}
	if got := rect.Center().Y; got != 0 {
		t.Errorf("center y = %f, want 0", got)
	}
}

func TestRenderText_Empty(t *testing.T) {
	f, c := newFakeText(t)
	m, rect, err := RenderText(f, c, 10, "", MiddleCenter)
	if err != nil {
		t.Fatal(err)
	}
	if !m.IsEmpty() || !rect.IsEmpty() {
		t.Errorf("empty text: mesh count %d, rect %+v", m.Count(), rect)
	}
}

func TestRenderText_Errors(t *testing.T) {
	f, c := newFakeText(t)
	if _, _, err := RenderText(nil, c, 10, "A", LineLeft); err == nil {
		t.Error("nil font should fail")
	}
	if _, _, err := RenderText(f, nil, 10, "A", LineLeft); err == nil {
		t.Error("nil cache should fail")
	}
	f.opened = false
	if _, _, err := RenderText(f, c, 10, "A", LineLeft); !errors.Is(err, ErrFontNotOpened) {
		t.Errorf("err = %v, want ErrFontNotOpened", err)
	}
}

func TestAlignmentParts(t *testing.T) {
	if TopRight.horizontal() != 2 || TopRight.vertical() != 2 {
		t.Error("TopRight should be right and top")
	}
	if MiddleCenter.horizontal() != 1 || MiddleCenter.vertical() != 1 {
		t.Error("MiddleCenter should be center and middle")
	}
	if LineLeft.horizontal() != 0 || LineLeft.vertical() != 0 {
		t.Error("LineLeft should be left and line")
	}
}

func TestGlyphCount(t *testing.T) {
	if n := glyphCount("Hello, world!\nHej"); n != 16 {
		t.Errorf("glyphCount = %d, want 16", n)
	}
}

// --- TextRenderer ---

func TestTextRenderer_Reserve(t *testing.T) {
	f, c := newFakeText(t)
	r := NewTextRenderer(f, c, 10, TopRight)
	r.Reserve(4)
	if r.Capacity() != 4 {
		t.Errorf("Capacity = %d, want 4", r.Capacity())
	}
	if len(r.indices) != 24 {
		t.Errorf("indices = %d, want 24", len(r.indices))
	}
	r.Reserve(2)
	if r.Capacity() != 4 {
		t.Error("Reserve should never shrink")
	}
}

func TestTextRenderer_Render(t *testing.T) {
	f, c := newFakeText(t)
	r := NewTextRenderer(f, c, 10, LineLeft)
	r.Reserve(4)

	if err := r.Render("AB"); err != nil {
		t.Fatal(err)
	}
	if r.Mesh().Count() != 12 {
		t.Errorf("Count = %d, want 12", r.Mesh().Count())
	}
	if r.Text() != "AB" {
		t.Errorf("Text = %q, want %q", r.Text(), "AB")
	}
	if r.Rectangle().Width != 9 {
		t.Errorf("rect width = %f, want 9", r.Rectangle().Width)
	}

	if err := r.Render("A"); err != nil {
		t.Fatal(err)
	}
	if r.Mesh().Count() != 6 {
		t.Errorf("Count = %d, want 6", r.Mesh().Count())
	}
	if r.Capacity() != 4 {
		t.Errorf("Capacity = %d, want 4", r.Capacity())
	}
}

func TestTextRenderer_Grows(t *testing.T) {
	f, c := newFakeText(t)
	r := NewTextRenderer(f, c, 10, TopRight)
	r.Reserve(2)
	if err := r.Render("ABBA\nVA"); err != nil {
		t.Fatal(err)
	}
	if r.Capacity() != 6 {
		t.Errorf("Capacity = %d, want 6", r.Capacity())
	}
	if r.Mesh().Count() != 36 {
		t.Errorf("Count = %d, want 36", r.Mesh().Count())
	}
	// Indices of the grown part continue the quad numbering.
	if got := r.indices[30]; got != 20 {
		t.Errorf("index 30 = %d, want 20", got)
	}
}

func TestTextRenderer_TopRightAnchor(t *testing.T) {
	f, c := newFakeText(t)
	r := NewTextRenderer(f, c, 10, TopRight)
	if err := r.Render("AB"); err != nil {
		t.Fatal(err)
	}
	rect := r.Rectangle()
	if top := rect.Y + rect.Height; top != 0 {
		t.Errorf("top = %f, want 0", top)
	}
	if right := rect.X + rect.Width; right != -1 {
		t.Errorf("right = %f, want -1", right)
	}
}

func TestTextRenderer_Errors(t *testing.T) {
	r := NewTextRenderer(&fakeFont{}, NewGlyphCache(image.Pt(8, 8), 0), 10, LineLeft)
	if err := r.Render("A"); !errors.Is(err, ErrFontNotOpened) {
		t.Errorf("err = %v, want ErrFontNotOpened", err)
	}
}
