package lantern

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/lantern/geom"
)

var (
	// ErrGlyphCacheFull is returned by GlyphCache.Insert when the glyph does
	// not fit in the remaining space.
	ErrGlyphCacheFull = errors.New("lantern: glyph cache is full")
	// ErrInvalidCacheSize is returned for unusable glyph cache dimensions.
	ErrInvalidCacheSize = errors.New("lantern: invalid glyph cache size")
)

// Glyph is a cached glyph. Offset is the bottom-left corner of the glyph
// quad relative to the pen position, y up, in font pixels. Region is in
// original (unscaled) cache coordinates.
type Glyph struct {
	Offset  geom.Vec2
	Region  TextureRegion
	Advance float32
}

// GlyphCache stores rasterized glyphs in a single image. A distance-field
// cache rasterizes at OriginalSize and stores the distance field at Size.
type GlyphCache struct {
	originalSize image.Point
	size         image.Point
	ratio        int
	padding      int
	radius       int // 0 for a plain coverage cache

	glyphs map[GlyphID]Glyph
	packer *atlasPacker

	img     *image.Gray
	texture *ebiten.Image
	dirty   bool
	pixels  []byte // RGBA upload buffer
}

// NewGlyphCache creates a coverage glyph cache of the given size. padding is
// the number of pixels kept free around each glyph.
func NewGlyphCache(size image.Point, padding int) *GlyphCache {
	if size.X <= 0 || size.Y <= 0 {
		panic("lantern: glyph cache size must be positive")
	}
	return newGlyphCache(size, size, 1, max(padding, 0), 0)
}

// NewDistanceFieldGlyphCache creates a cache that rasterizes glyphs at
// originalSize and stores their distance field at size. originalSize must be
// the same integer multiple of size on both axes. radius is the distance
// field range in original pixels and also the glyph padding.
func NewDistanceFieldGlyphCache(originalSize, size image.Point, radius int) (*GlyphCache, error) {
	if size.X <= 0 || size.Y <= 0 || originalSize.X <= 0 || originalSize.Y <= 0 {
		return nil, fmt.Errorf("%w: %v from %v", ErrInvalidCacheSize, size, originalSize)
	}
	if originalSize.X%size.X != 0 || originalSize.Y%size.Y != 0 ||
		originalSize.X/size.X != originalSize.Y/size.Y {
		return nil, fmt.Errorf("%w: %v is not a uniform multiple of %v", ErrInvalidCacheSize, originalSize, size)
	}
	if radius <= 0 {
		return nil, fmt.Errorf("%w: radius %d", ErrInvalidCacheSize, radius)
	}
	return newGlyphCache(originalSize, size, originalSize.X/size.X, radius, radius), nil
}

func newGlyphCache(originalSize, size image.Point, ratio, padding, radius int) *GlyphCache {
	return &GlyphCache{
		originalSize: originalSize,
		size:         size,
		ratio:        ratio,
		padding:      padding,
		radius:       radius,
		glyphs:       make(map[GlyphID]Glyph),
		packer:       newAtlasPacker(size.X, size.Y),
		img:          image.NewGray(image.Rectangle{Max: size}),
	}
}

// Size returns the size of the stored image.
func (c *GlyphCache) Size() image.Point { return c.size }

// OriginalSize returns the rasterization size.
func (c *GlyphCache) OriginalSize() image.Point { return c.originalSize }

// Padding returns the padding around each glyph in original pixels.
func (c *GlyphCache) Padding() int { return c.padding }

// Ratio returns OriginalSize / Size.
func (c *GlyphCache) Ratio() int { return c.ratio }

// IsDistanceField reports whether the cache stores distance fields.
func (c *GlyphCache) IsDistanceField() bool { return c.radius > 0 }

// Len returns the number of cached glyphs.
func (c *GlyphCache) Len() int { return len(c.glyphs) }

// Has reports whether id is cached.
func (c *GlyphCache) Has(id GlyphID) bool {
	_, ok := c.glyphs[id]
	return ok
}

// Glyph returns the cached glyph for id, or glyph 0 when id is not cached.
func (c *GlyphCache) Glyph(id GlyphID) Glyph {
	if g, ok := c.glyphs[id]; ok {
		return g
	}
	return c.glyphs[0]
}

// Insert adds a glyph. coverage is the glyph image in original pixels,
// already padded; nil or empty coverage stores a glyph without a region.
// Inserting an id that is already cached is a no-op.
func (c *GlyphCache) Insert(id GlyphID, coverage *image.Alpha, offset geom.Vec2, advance float32) error {
	if c.Has(id) {
		return nil
	}
	if coverage == nil || coverage.Rect.Empty() {
		c.glyphs[id] = Glyph{Offset: offset, Advance: advance}
		return nil
	}

	// Pack in stored pixels so that regions stay aligned to the ratio.
	w, h := coverage.Rect.Dx(), coverage.Rect.Dy()
	sw := (w + c.ratio - 1) / c.ratio
	sh := (h + c.ratio - 1) / c.ratio
	packed, ok := c.packer.Pack(sw, sh)
	if !ok {
		return fmt.Errorf("%w: glyph %d (%dx%d)", ErrGlyphCacheFull, id, w, h)
	}

	// Grow the coverage to whole blocks. Extra rows are added at the bottom,
	// which moves the quad's bottom edge down.
	src := coverage
	if sw*c.ratio != w || sh*c.ratio != h {
		src = image.NewAlpha(image.Rect(0, 0, sw*c.ratio, sh*c.ratio))
		draw.Draw(src, coverage.Rect.Sub(coverage.Rect.Min), coverage, coverage.Rect.Min, draw.Src)
		offset.Y -= float32(sh*c.ratio - h)
	}

	at := image.Pt(int(packed.X), int(packed.Y))
	if c.radius > 0 {
		df, err := DistanceField(src, c.radius, c.ratio)
		if err != nil {
			return fmt.Errorf("lantern: glyph %d: %w", id, err)
		}
		draw.Draw(c.img, image.Rectangle{Min: at, Max: at.Add(df.Rect.Size())}, df, image.Point{}, draw.Src)
	} else {
		for y := 0; y < src.Rect.Dy(); y++ {
			srow := src.Pix[y*src.Stride : y*src.Stride+src.Rect.Dx()]
			copy(c.img.Pix[(at.Y+y)*c.img.Stride+at.X:], srow)
		}
	}

	c.glyphs[id] = Glyph{
		Offset: offset,
		Region: TextureRegion{
			X:      packed.X * uint16(c.ratio),
			Y:      packed.Y * uint16(c.ratio),
			Width:  packed.Width * uint16(c.ratio),
			Height: packed.Height * uint16(c.ratio),
		},
		Advance: advance,
	}
	c.dirty = true
	return nil
}

// Image returns the processed CPU-side cache image.
func (c *GlyphCache) Image() *image.Gray { return c.img }

// TexCoords converts a region in original coordinates to texture pixel
// coordinates of the stored image.
func (c *GlyphCache) TexCoords(r TextureRegion) (lo, hi geom.Vec2) {
	s := 1 / float32(c.ratio)
	lo = geom.Vec2{X: float32(r.X) * s, Y: float32(r.Y) * s}
	hi = geom.Vec2{X: float32(r.X+r.Width) * s, Y: float32(r.Y+r.Height) * s}
	return lo, hi
}

// Texture returns the GPU texture of the cache, uploading pending changes.
func (c *GlyphCache) Texture() *ebiten.Image {
	if c.texture == nil {
		c.texture = ebiten.NewImage(c.size.X, c.size.Y)
		c.dirty = true
	}
	if c.dirty {
		n := c.size.X * c.size.Y
		if cap(c.pixels) < n*4 {
			c.pixels = make([]byte, n*4)
		}
		c.pixels = c.pixels[:n*4]
		for i, v := range c.img.Pix[:n] {
			c.pixels[i*4] = v
			c.pixels[i*4+1] = v
			c.pixels[i*4+2] = v
			c.pixels[i*4+3] = 0xff
		}
		c.texture.WritePixels(c.pixels)
		c.dirty = false
	}
	return c.texture
}
