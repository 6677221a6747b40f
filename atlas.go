package lantern

// TextureRegion describes a sub-rectangle within a glyph cache image.
// Value type, stored directly in Glyph.
type TextureRegion struct {
	X, Y   uint16 // top-left corner within the cache image
	Width  uint16
	Height uint16
}

// IsEmpty reports whether the region covers no pixels.
func (r TextureRegion) IsEmpty() bool { return r.Width == 0 || r.Height == 0 }

// atlasPacker places rectangles left to right on horizontal shelves. A new
// shelf starts below the tallest rectangle of the current one.
type atlasPacker struct {
	width, height int

	shelfX, shelfY int // pen position on the current shelf
	shelfHeight    int
}

func newAtlasPacker(width, height int) *atlasPacker {
	return &atlasPacker{width: width, height: height}
}

// Pack reserves a w×h rectangle. It returns false when the rectangle does
// not fit in the remaining space.
func (p *atlasPacker) Pack(w, h int) (TextureRegion, bool) {
	if w < 0 || h < 0 || w > p.width || h > p.height {
		return TextureRegion{}, false
	}
	if w == 0 || h == 0 {
		return TextureRegion{}, true
	}
	if p.shelfX+w > p.width {
		p.shelfY += p.shelfHeight
		p.shelfX = 0
		p.shelfHeight = 0
	}
	if p.shelfY+h > p.height {
		return TextureRegion{}, false
	}
	r := TextureRegion{X: uint16(p.shelfX), Y: uint16(p.shelfY), Width: uint16(w), Height: uint16(h)}
	p.shelfX += w
	p.shelfHeight = max(p.shelfHeight, h)
	return r, true
}

// Reset empties the packer.
func (p *atlasPacker) Reset() {
	p.shelfX, p.shelfY, p.shelfHeight = 0, 0, 0
}
