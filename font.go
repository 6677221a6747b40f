package lantern

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"math"
	"sort"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
	"golang.org/x/text/unicode/norm"

	"github.com/phanxgames/lantern/geom"
)

var (
	// ErrFontNotFound is returned by FontManager.LoadAndInstantiate for
	// unregistered font plugin names.
	ErrFontNotFound = errors.New("lantern: font plugin not found")
	// ErrFontNotOpened is returned when a font is used before OpenData.
	ErrFontNotOpened = errors.New("lantern: font is not opened")
)

// GlyphID is a glyph index within a font. Glyph 0 is the font's .notdef
// glyph.
type GlyphID uint16

// Font provides metrics and glyph rasterization. All metrics are in font
// pixels at the size passed to OpenData.
type Font interface {
	OpenData(data []byte, size float32) error
	IsOpened() bool
	Close() error

	Size() float32
	LineHeight() float32
	Ascent() float32
	// Descent is negative for fonts reaching below the baseline.
	Descent() float32

	GlyphID(r rune) GlyphID
	GlyphAdvance(id GlyphID) float32
	Kerning(a, b GlyphID) float32

	// FillGlyphCache rasterizes the glyphs of characters (and glyph 0) into
	// cache.
	FillGlyphCache(cache *GlyphCache, characters string) error
}

// --- OpenTypeFont ---

// OpenTypeFont reads TrueType and OpenType fonts with sfnt and rasterizes
// their outlines on the CPU.
type OpenTypeFont struct {
	font *sfnt.Font
	buf  sfnt.Buffer
	size float32
	ppem fixed.Int26_6

	lineHeight, ascent, descent float32
}

// NewOpenTypeFont returns an unopened font.
func NewOpenTypeFont() *OpenTypeFont {
	return &OpenTypeFont{}
}

// OpenData parses font data at the given pixel size.
func (f *OpenTypeFont) OpenData(data []byte, size float32) error {
	if size <= 0 {
		return fmt.Errorf("lantern: invalid font size %g", size)
	}
	parsed, err := sfnt.Parse(data)
	if err != nil {
		return fmt.Errorf("lantern: failed to parse font data: %w", err)
	}
	ppem := fixed.Int26_6(math.Round(float64(size) * 64))
	m, err := parsed.Metrics(&f.buf, ppem, font.HintingNone)
	if err != nil {
		return fmt.Errorf("lantern: failed to read font metrics: %w", err)
	}
	f.font = parsed
	f.size = size
	f.ppem = ppem
	f.lineHeight = fixedToFloat(m.Height)
	f.ascent = fixedToFloat(m.Ascent)
	f.descent = -fixedToFloat(m.Descent)
	return nil
}

// IsOpened reports whether font data has been loaded.
func (f *OpenTypeFont) IsOpened() bool { return f.font != nil }

// Close releases the font data.
func (f *OpenTypeFont) Close() error {
	f.font = nil
	f.size, f.ppem = 0, 0
	f.lineHeight, f.ascent, f.descent = 0, 0, 0
	return nil
}

// Size returns the font size in pixels.
func (f *OpenTypeFont) Size() float32 { return f.size }

// LineHeight returns the distance between consecutive baselines.
func (f *OpenTypeFont) LineHeight() float32 { return f.lineHeight }

// Ascent returns the distance from the baseline to the top of the font.
func (f *OpenTypeFont) Ascent() float32 { return f.ascent }

// Descent returns the (negative) distance from the baseline to the bottom.
func (f *OpenTypeFont) Descent() float32 { return f.descent }

// GlyphID returns the glyph for r, or 0 when the font has none.
func (f *OpenTypeFont) GlyphID(r rune) GlyphID {
	if f.font == nil {
		return 0
	}
	idx, err := f.font.GlyphIndex(&f.buf, r)
	if err != nil {
		return 0
	}
	return GlyphID(idx)
}

// GlyphAdvance returns the horizontal advance of id.
func (f *OpenTypeFont) GlyphAdvance(id GlyphID) float32 {
	if f.font == nil {
		return 0
	}
	adv, err := f.font.GlyphAdvance(&f.buf, sfnt.GlyphIndex(id), f.ppem, font.HintingNone)
	if err != nil {
		return 0
	}
	return fixedToFloat(adv)
}

// Kerning returns the horizontal adjustment between a and b. Fonts without
// a kern table return 0.
func (f *OpenTypeFont) Kerning(a, b GlyphID) float32 {
	if f.font == nil {
		return 0
	}
	k, err := f.font.Kern(&f.buf, sfnt.GlyphIndex(a), sfnt.GlyphIndex(b), f.ppem, font.HintingNone)
	if err != nil {
		return 0
	}
	return fixedToFloat(k)
}

// FillGlyphCache rasterizes glyph 0 and every glyph of characters into
// cache, padded by the cache padding. Characters are NFC-normalized first
// and duplicates are skipped.
func (f *OpenTypeFont) FillGlyphCache(cache *GlyphCache, characters string) error {
	if f.font == nil {
		return ErrFontNotOpened
	}
	if cache == nil {
		return errors.New("lantern: glyph cache is nil")
	}
	ids := []GlyphID{0}
	seen := map[GlyphID]bool{0: true}
	for _, r := range norm.NFC.String(characters) {
		id := f.GlyphID(r)
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	for _, id := range ids {
		if cache.Has(id) {
			continue
		}
		coverage, offset, err := f.rasterize(id, cache.Padding())
		if err != nil {
			return err
		}
		if err := cache.Insert(id, coverage, offset, f.GlyphAdvance(id)); err != nil {
			return err
		}
	}
	return nil
}

// rasterize renders the outline of id into a coverage image padded by pad
// pixels on each side. offset is the bottom-left corner of the image
// relative to the pen, y up. Empty outlines return a nil image.
func (f *OpenTypeFont) rasterize(id GlyphID, pad int) (*image.Alpha, geom.Vec2, error) {
	bounds, _, err := f.font.GlyphBounds(&f.buf, sfnt.GlyphIndex(id), f.ppem, font.HintingNone)
	if err != nil {
		return nil, geom.Vec2{}, fmt.Errorf("lantern: glyph %d bounds: %w", id, err)
	}
	if bounds.Empty() {
		return nil, geom.Vec2{}, nil
	}
	// Bounds are y-down relative to the pen on the baseline.
	minX := bounds.Min.X.Floor() - pad
	minY := bounds.Min.Y.Floor() - pad
	maxX := bounds.Max.X.Ceil() + pad
	maxY := bounds.Max.Y.Ceil() + pad
	w, h := maxX-minX, maxY-minY

	segments, err := f.font.LoadGlyph(&f.buf, sfnt.GlyphIndex(id), f.ppem, nil)
	if err != nil {
		return nil, geom.Vec2{}, fmt.Errorf("lantern: glyph %d outline: %w", id, err)
	}
	ox, oy := float32(minX), float32(minY)
	pt := func(p fixed.Point26_6) (float32, float32) {
		return fixedToFloat(p.X) - ox, fixedToFloat(p.Y) - oy
	}
	r := vector.NewRasterizer(w, h)
	r.DrawOp = draw.Src
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			x, y := pt(seg.Args[0])
			r.MoveTo(x, y)
		case sfnt.SegmentOpLineTo:
			x, y := pt(seg.Args[0])
			r.LineTo(x, y)
		case sfnt.SegmentOpQuadTo:
			x1, y1 := pt(seg.Args[0])
			x, y := pt(seg.Args[1])
			r.QuadTo(x1, y1, x, y)
		case sfnt.SegmentOpCubeTo:
			x1, y1 := pt(seg.Args[0])
			x2, y2 := pt(seg.Args[1])
			x, y := pt(seg.Args[2])
			r.CubeTo(x1, y1, x2, y2, x, y)
		}
	}
	r.ClosePath()
	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	r.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst, geom.Vec2{X: ox, Y: -float32(maxY)}, nil
}

func fixedToFloat(v fixed.Int26_6) float32 { return float32(v) / 64 }

// --- FontManager ---

// FontLoader creates an unopened font instance.
type FontLoader func() Font

// FontManager is a registry of font implementations by plugin name.
type FontManager struct {
	loaders map[string]FontLoader
}

// NewFontManager creates an empty manager.
func NewFontManager() *FontManager {
	return &FontManager{loaders: make(map[string]FontLoader)}
}

// DefaultFontManager returns a manager with OpenTypeFont registered under
// "OpenTypeFont" and "TrueTypeFont".
func DefaultFontManager() *FontManager {
	m := NewFontManager()
	load := func() Font { return NewOpenTypeFont() }
	m.Register("OpenTypeFont", load)
	m.Register("TrueTypeFont", load)
	return m
}

// Register adds or replaces the loader for name.
func (m *FontManager) Register(name string, loader FontLoader) {
	if loader == nil {
		panic("lantern: font loader is nil")
	}
	m.loaders[name] = loader
}

// LoadAndInstantiate creates a font from the loader registered as name.
func (m *FontManager) LoadAndInstantiate(name string) (Font, error) {
	loader, ok := m.loaders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFontNotFound, name)
	}
	return loader(), nil
}

// Names returns the registered plugin names in sorted order.
func (m *FontManager) Names() []string {
	names := make([]string, 0, len(m.loaders))
	for name := range m.loaders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
