package lantern

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/phanxgames/lantern/geom"
)

// Alignment positions a text block relative to its origin. The vertical part
// picks the reference line (Line is the first baseline), the horizontal part
// is applied to each line.
type Alignment uint8

const (
	LineLeft Alignment = iota
	LineCenter
	LineRight
	MiddleLeft
	MiddleCenter
	MiddleRight
	TopLeft
	TopCenter
	TopRight
)

// horizontal returns 0 for left, 1 for center and 2 for right alignment.
func (a Alignment) horizontal() int { return int(a) % 3 }

// vertical returns 0 for line, 1 for middle and 2 for top alignment.
func (a Alignment) vertical() int { return int(a) / 3 }

// maxTextGlyphs is the most quads addressable with 16-bit indices.
const maxTextGlyphs = 0x10000 / 4

// glyphCount returns the number of glyph quads text can produce.
func glyphCount(text string) int {
	return utf8.RuneCountInString(text) - strings.Count(text, "\n")
}

func checkTextInputs(font Font, cache *GlyphCache) error {
	if font == nil {
		return errors.New("lantern: text font is nil")
	}
	if cache == nil {
		return errors.New("lantern: text glyph cache is nil")
	}
	if !font.IsOpened() {
		return ErrFontNotOpened
	}
	return nil
}

// layoutText appends four vertices per visible glyph of text to dst and
// returns them with the bounding rectangle of the quads. size is the height
// of one font em in output units.
func layoutText(dst []Vertex, font Font, cache *GlyphCache, size float32, text string, align Alignment) ([]Vertex, Rect) {
	scale := size / font.Size()
	lineAdvance := font.LineHeight() * scale
	start := len(dst)
	var rect Rect

	for lineIndex, line := range strings.Split(text, "\n") {
		lineStart := len(dst)
		var pen geom.Vec2
		pen.Y = -float32(lineIndex) * lineAdvance
		prev, hasPrev := GlyphID(0), false

		for _, r := range line {
			id := font.GlyphID(r)
			if hasPrev {
				pen.X += font.Kerning(prev, id) * scale
			}
			prev, hasPrev = id, true

			g := cache.Glyph(id)
			if !g.Region.IsEmpty() {
				lo, hi := cache.TexCoords(g.Region)
				p0 := pen.Add(g.Offset.MulScalar(scale))
				p1 := p0.Add(geom.Vec2{X: float32(g.Region.Width), Y: float32(g.Region.Height)}.MulScalar(scale))
				dst = append(dst,
					Vertex{Position: geom.Vec3{X: p0.X, Y: p0.Y}, TexCoord: geom.Vec2{X: lo.X, Y: hi.Y}, Color: ColorWhite},
					Vertex{Position: geom.Vec3{X: p1.X, Y: p0.Y}, TexCoord: geom.Vec2{X: hi.X, Y: hi.Y}, Color: ColorWhite},
					Vertex{Position: geom.Vec3{X: p1.X, Y: p1.Y}, TexCoord: geom.Vec2{X: hi.X, Y: lo.Y}, Color: ColorWhite},
					Vertex{Position: geom.Vec3{X: p0.X, Y: p1.Y}, TexCoord: geom.Vec2{X: lo.X, Y: lo.Y}, Color: ColorWhite},
				)
			}
			pen.X += font.GlyphAdvance(id) * scale
		}

		var shift float32
		switch align.horizontal() {
		case 1:
			shift = -pen.X / 2
		case 2:
			shift = -pen.X
		}
		for i := lineStart; i < len(dst); i++ {
			dst[i].Position.X += shift
		}
		for i := lineStart; i < len(dst); i += 4 {
			rect = rect.Union(quadRect(dst[i : i+4]))
		}
	}

	var dy float32
	switch align.vertical() {
	case 1:
		dy = -(rect.Y + rect.Height/2)
	case 2:
		dy = -(rect.Y + rect.Height)
	}
	if dy != 0 {
		for i := start; i < len(dst); i++ {
			dst[i].Position.Y += dy
		}
		rect = rect.Translate(geom.Vec2{Y: dy})
	}
	return dst, rect
}

// quadRect returns the rectangle spanned by a glyph quad laid out by
// layoutText.
func quadRect(q []Vertex) Rect {
	return Rect{
		X:      q[0].Position.X,
		Y:      q[0].Position.Y,
		Width:  q[2].Position.X - q[0].Position.X,
		Height: q[2].Position.Y - q[0].Position.Y,
	}
}

// appendQuadIndices appends two triangles for each of quads quads starting
// at quad index first.
func appendQuadIndices(dst []uint16, first, quads int) []uint16 {
	for i := first; i < first+quads; i++ {
		b := uint16(i * 4)
		dst = append(dst, b, b+1, b+2, b, b+2, b+3)
	}
	return dst
}

// RenderText lays out text once and returns a static mesh together with its
// bounding rectangle.
func RenderText(font Font, cache *GlyphCache, size float32, text string, align Alignment) (*Mesh, Rect, error) {
	if err := checkTextInputs(font, cache); err != nil {
		return nil, Rect{}, err
	}
	if n := glyphCount(text); n > maxTextGlyphs {
		return nil, Rect{}, fmt.Errorf("lantern: text has %d glyphs, at most %d supported", n, maxTextGlyphs)
	}
	verts, rect := layoutText(make([]Vertex, 0, glyphCount(text)*4), font, cache, size, text, align)
	quads := len(verts) / 4
	inds := appendQuadIndices(make([]uint16, 0, quads*6), 0, quads)
	return NewMesh(verts, inds), rect, nil
}

// --- TextRenderer ---

// TextRenderer keeps a mesh that is re-laid out whenever the text changes.
// Capacity is reserved up front and grows when a longer text is rendered.
type TextRenderer struct {
	font  Font
	cache *GlyphCache
	size  float32
	align Alignment

	mesh     *Mesh
	vertices []Vertex
	indices  []uint16
	capacity int

	text string
	rect Rect
}

// NewTextRenderer creates a renderer with no reserved capacity.
func NewTextRenderer(font Font, cache *GlyphCache, size float32, align Alignment) *TextRenderer {
	return &TextRenderer{
		font:  font,
		cache: cache,
		size:  size,
		align: align,
		mesh:  NewMesh(nil, nil),
	}
}

// Reserve makes room for at least glyphs glyphs.
func (t *TextRenderer) Reserve(glyphs int) {
	glyphs = min(glyphs, maxTextGlyphs)
	if glyphs <= t.capacity {
		return
	}
	verts := make([]Vertex, len(t.vertices), glyphs*4)
	copy(verts, t.vertices)
	t.vertices = verts
	t.indices = appendQuadIndices(t.indices, t.capacity, glyphs-t.capacity)
	t.capacity = glyphs
}

// Render lays out text into the mesh.
func (t *TextRenderer) Render(text string) error {
	if err := checkTextInputs(t.font, t.cache); err != nil {
		return err
	}
	n := glyphCount(text)
	if n > maxTextGlyphs {
		return fmt.Errorf("lantern: text has %d glyphs, at most %d supported", n, maxTextGlyphs)
	}
	t.Reserve(n)
	t.vertices, t.rect = layoutText(t.vertices[:0], t.font, t.cache, t.size, text, t.align)
	t.text = text
	t.mesh.Vertices = t.vertices
	t.mesh.Indices = t.indices
	t.mesh.SetCount(len(t.vertices) / 4 * 6)
	return nil
}

// Mesh returns the renderer's mesh.
func (t *TextRenderer) Mesh() *Mesh { return t.mesh }

// Rectangle returns the bounding rectangle of the last rendered text.
func (t *TextRenderer) Rectangle() Rect { return t.rect }

// Capacity returns the number of glyphs that fit without reallocating.
func (t *TextRenderer) Capacity() int { return t.capacity }

// Text returns the last rendered text.
func (t *TextRenderer) Text() string { return t.text }
