package lantern

import (
	"errors"
	"image"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func openGoRegular(t *testing.T, size float32) *OpenTypeFont {
	t.Helper()
	f := NewOpenTypeFont()
	if err := f.OpenData(goregular.TTF, size); err != nil {
		t.Fatalf("OpenData: %v", err)
	}
	return f
}

func TestOpenTypeFont_Metrics(t *testing.T) {
	f := openGoRegular(t, 32)
	if !f.IsOpened() {
		t.Fatal("IsOpened = false after OpenData")
	}
	if f.Size() != 32 {
		t.Errorf("Size = %f, want 32", f.Size())
	}
	if f.Ascent() <= 0 {
		t.Errorf("Ascent = %f, want > 0", f.Ascent())
	}
	if f.Descent() >= 0 {
		t.Errorf("Descent = %f, want < 0", f.Descent())
	}
	if f.LineHeight() < f.Ascent()-f.Descent()-1 {
		t.Errorf("LineHeight = %f, want about ascent - descent", f.LineHeight())
	}
}

func TestOpenTypeFont_OpenDataErrors(t *testing.T) {
	f := NewOpenTypeFont()
	if err := f.OpenData([]byte("not a font"), 12); err == nil {
		t.Error("garbage data should fail")
	}
	if err := f.OpenData(goregular.TTF, 0); err == nil {
		t.Error("zero size should fail")
	}
	if f.IsOpened() {
		t.Error("failed OpenData should leave the font closed")
	}
}

func TestOpenTypeFont_Close(t *testing.T) {
	f := openGoRegular(t, 16)
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	if f.IsOpened() {
		t.Error("IsOpened = true after Close")
	}
	if f.GlyphID('A') != 0 {
		t.Error("closed font should map everything to glyph 0")
	}
}

func TestOpenTypeFont_Glyphs(t *testing.T) {
	f := openGoRegular(t, 32)
	a := f.GlyphID('A')
	if a == 0 {
		t.Fatal("GlyphID('A') = 0")
	}
	if f.GlyphID('B') == a {
		t.Error("A and B share a glyph")
	}
	if f.GlyphAdvance(a) <= 0 {
		t.Errorf("advance(A) = %f, want > 0", f.GlyphAdvance(a))
	}
	// Go Regular has no emoji.
	if id := f.GlyphID('\U0001F600'); id != 0 {
		t.Errorf("GlyphID(emoji) = %d, want 0", id)
	}
}

func TestOpenTypeFont_FillGlyphCache(t *testing.T) {
	f := openGoRegular(t, 32)
	c := NewGlyphCache(image.Pt(256, 256), 1)

	if err := f.FillGlyphCache(c, "AAb "); err != nil {
		t.Fatal(err)
	}
	// Glyph 0, A, b and space.
	if c.Len() != 4 {
		t.Errorf("Len = %d, want 4", c.Len())
	}
	if !c.Has(0) {
		t.Error("glyph 0 should always be cached")
	}
	a := c.Glyph(f.GlyphID('A'))
	if a.Region.IsEmpty() {
		t.Error("A should have a region")
	}
	if a.Advance != f.GlyphAdvance(f.GlyphID('A')) {
		t.Errorf("cached advance = %f, want %f", a.Advance, f.GlyphAdvance(f.GlyphID('A')))
	}
	// The bottom of A's padded quad sits one pixel below the baseline.
	if a.Offset.Y != -1 {
		t.Errorf("A offset y = %f, want -1", a.Offset.Y)
	}
	if sp := c.Glyph(f.GlyphID(' ')); !sp.Region.IsEmpty() {
		t.Errorf("space region = %+v, want empty", sp.Region)
	}

	// Filling again with overlapping characters only adds new glyphs.
	if err := f.FillGlyphCache(c, "Abc"); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 5 {
		t.Errorf("Len = %d, want 5", c.Len())
	}
}

func TestOpenTypeFont_FillGlyphCacheNormalizes(t *testing.T) {
	f := openGoRegular(t, 16)
	c := NewGlyphCache(image.Pt(128, 128), 0)
	// "e" followed by a combining caron composes to U+011B.
	if err := f.FillGlyphCache(c, "e\u030c"); err != nil {
		t.Fatal(err)
	}
	if !c.Has(f.GlyphID('\u011b')) {
		t.Error("composed glyph should be cached")
	}
}

func TestOpenTypeFont_FillDistanceFieldCache(t *testing.T) {
	f := openGoRegular(t, 64)
	c, err := NewDistanceFieldGlyphCache(image.Pt(512, 512), image.Pt(128, 128), 8)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.FillGlyphCache(c, "Hi"); err != nil {
		t.Fatal(err)
	}
	r := c.Glyph(f.GlyphID('H')).Region
	if r.Width%4 != 0 || r.Height%4 != 0 {
		t.Errorf("region %+v should be aligned to the ratio", r)
	}
}

func TestOpenTypeFont_FillGlyphCacheErrors(t *testing.T) {
	f := NewOpenTypeFont()
	c := NewGlyphCache(image.Pt(8, 8), 0)
	if err := f.FillGlyphCache(c, "A"); !errors.Is(err, ErrFontNotOpened) {
		t.Errorf("err = %v, want ErrFontNotOpened", err)
	}
	f = openGoRegular(t, 64)
	if err := f.FillGlyphCache(nil, "A"); err == nil {
		t.Error("nil cache should fail")
	}
	if err := f.FillGlyphCache(c, "W"); !errors.Is(err, ErrGlyphCacheFull) {
		t.Errorf("err = %v, want ErrGlyphCacheFull", err)
	}
}

// --- FontManager ---

func TestDefaultFontManager(t *testing.T) {
	m := DefaultFontManager()
	names := m.Names()
	if len(names) != 2 || names[0] != "OpenTypeFont" || names[1] != "TrueTypeFont" {
		t.Errorf("Names = %v, want [OpenTypeFont TrueTypeFont]", names)
	}
	f, err := m.LoadAndInstantiate("TrueTypeFont")
	if err != nil {
		t.Fatal(err)
	}
	if f.IsOpened() {
		t.Error("new font should not be opened")
	}
}

func TestFontManager_NotFound(t *testing.T) {
	_, err := NewFontManager().LoadAndInstantiate("FreeTypeFont")
	if !errors.Is(err, ErrFontNotFound) {
		t.Errorf("err = %v, want ErrFontNotFound", err)
	}
}

func TestFontManager_RegisterNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil loader")
		}
	}()
	NewFontManager().Register("x", nil)
}
