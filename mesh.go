package lantern

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/lantern/geom"
)

// minClipW is the smallest clip-space w accepted before a vertex counts as
// behind the camera.
const minClipW = 1e-6

// Vertex is a mesh vertex. TexCoord is in source texture pixels.
type Vertex struct {
	Position geom.Vec3
	TexCoord geom.Vec2
	Color    Color
}

// Mesh is a triangle list, optionally indexed. Count limits how many indices
// (or vertices, for non-indexed meshes) are drawn.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint16
	count    int

	// Projection scratch (high-water mark, never shrinks).
	projected   []ebiten.Vertex
	projIndices []uint16
	behind      []bool
}

// NewMesh creates a mesh drawing all given indices, or all vertices when
// indices is empty.
func NewMesh(vertices []Vertex, indices []uint16) *Mesh {
	m := &Mesh{Vertices: vertices, Indices: indices}
	m.resetCount()
	return m
}

func (m *Mesh) resetCount() {
	if len(m.Indices) > 0 {
		m.count = len(m.Indices)
	} else {
		m.count = len(m.Vertices)
	}
}

// SetVertices replaces the vertex data. The draw count is reset.
func (m *Mesh) SetVertices(vertices []Vertex) *Mesh {
	m.Vertices = vertices
	m.resetCount()
	return m
}

// SetIndices replaces the index data. The draw count is reset.
func (m *Mesh) SetIndices(indices []uint16) *Mesh {
	m.Indices = indices
	m.resetCount()
	return m
}

// SetCount sets how many indices (or vertices) are drawn. It is clamped to
// the available data.
func (m *Mesh) SetCount(n int) *Mesh {
	limit := len(m.Vertices)
	if len(m.Indices) > 0 {
		limit = len(m.Indices)
	}
	m.count = max(0, min(n, limit))
	return m
}

// Count returns the number of indices (or vertices) drawn.
func (m *Mesh) Count() int { return m.count }

// IsEmpty reports whether drawing the mesh would produce nothing.
func (m *Mesh) IsEmpty() bool { return m.count < 3 || len(m.Vertices) == 0 }

// Draw draws the mesh into dst with shader. Empty meshes are skipped.
func (m *Mesh) Draw(dst *ebiten.Image, shader Shader) {
	if dst == nil || shader == nil || m.IsEmpty() {
		return
	}
	shader.DrawMesh(dst, m)
}

// project transforms the mesh into dst pixel coordinates with the given
// transformation-projection. Triangles touching a vertex behind the camera
// are dropped. The returned slices are owned by the mesh and valid until the
// next call.
func (m *Mesh) project(tp geom.Mat4, bounds image.Rectangle) ([]ebiten.Vertex, []uint16) {
	n := len(m.Vertices)
	if cap(m.projected) < n {
		m.projected = make([]ebiten.Vertex, n)
		m.behind = make([]bool, n)
	}
	m.projected = m.projected[:n]
	m.behind = m.behind[:n]

	for i := range m.Vertices {
		v := &m.Vertices[i]
		clip := tp.MulVec4(v.Position.Point())
		if clip.W <= minClipW {
			m.behind[i] = true
			m.projected[i] = ebiten.Vertex{}
			continue
		}
		m.behind[i] = false
		p := ndcToPixels(clip.PerspectiveDivide(), bounds)
		c := v.Color.premultiplied()
		m.projected[i] = ebiten.Vertex{
			DstX:   p.X,
			DstY:   p.Y,
			SrcX:   v.TexCoord.X,
			SrcY:   v.TexCoord.Y,
			ColorR: c[0],
			ColorG: c[1],
			ColorB: c[2],
			ColorA: c[3],
		}
	}

	m.projIndices = m.projIndices[:0]
	triangles := m.count / 3
	for t := 0; t < triangles; t++ {
		var a, b, c uint16
		if len(m.Indices) > 0 {
			a, b, c = m.Indices[t*3], m.Indices[t*3+1], m.Indices[t*3+2]
		} else {
			a, b, c = uint16(t*3), uint16(t*3+1), uint16(t*3+2)
		}
		if int(a) >= n || int(b) >= n || int(c) >= n {
			continue
		}
		if m.behind[a] || m.behind[b] || m.behind[c] {
			continue
		}
		m.projIndices = append(m.projIndices, a, b, c)
	}
	return m.projected, m.projIndices
}

// ndcToPixels maps normalized device coordinates (y up) to pixels of bounds
// (y down).
func ndcToPixels(ndc geom.Vec3, bounds image.Rectangle) geom.Vec2 {
	w := float32(bounds.Dx())
	h := float32(bounds.Dy())
	return geom.Vec2{
		X: (ndc.X+1)/2*w + float32(bounds.Min.X),
		Y: (1-ndc.Y)/2*h + float32(bounds.Min.Y),
	}
}

// --- White pixel singleton (no sync.Once, lantern is single-threaded) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
// Used as the source of untextured meshes.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}
