package lantern

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/lantern/geom"
)

// Shader draws a mesh into a destination image.
type Shader interface {
	DrawMesh(dst *ebiten.Image, m *Mesh)
}

// --- VertexColorShader ---

// VertexColorShader draws untextured triangles with interpolated vertex
// colors.
type VertexColorShader struct {
	TransformationProjection geom.Mat4
	op                       ebiten.DrawTrianglesOptions
}

// SetTransformationProjection sets the combined transformation-projection.
func (s *VertexColorShader) SetTransformationProjection(m geom.Mat4) {
	s.TransformationProjection = m
}

// DrawMesh draws m with its vertex colors.
func (s *VertexColorShader) DrawMesh(dst *ebiten.Image, m *Mesh) {
	verts, inds := m.project(s.TransformationProjection, dst.Bounds())
	if len(inds) == 0 {
		return
	}
	for i := range verts {
		verts[i].SrcX, verts[i].SrcY = 0.5, 0.5
	}
	s.op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	s.op.Blend = BlendNormal.EbitenBlend()
	dst.DrawTriangles(verts, inds, ensureWhitePixel(), &s.op)
}

// --- DistanceFieldVectorShader ---

// distanceFieldVectorShaderSrc samples the distance field bilinearly and
// turns it into a smoothed fill plus an optional outline band. Color
// uniforms are premultiplied.
const distanceFieldVectorShaderSrc = `//kage:unit pixels
package main

var Color vec4
var OutlineColor vec4
var OutlineRange vec2
var Smoothness float

func sampleDistance(p vec2) float {
	p -= 0.5
	f := fract(p)
	b := floor(p) + 0.5
	d00 := imageSrc0At(b).r
	d10 := imageSrc0At(b + vec2(1, 0)).r
	d01 := imageSrc0At(b + vec2(0, 1)).r
	d11 := imageSrc0At(b + vec2(1, 1)).r
	return mix(mix(d00, d10, f.x), mix(d01, d11, f.x), f.y)
}

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	d := sampleDistance(src)
	start := OutlineRange.x
	end := OutlineRange.y
	result := smoothstep(start-Smoothness, start+Smoothness, d) * Color
	if start > end {
		mid := (start + end) / 2
		halfRange := (start - end) / 2
		result += (1 - smoothstep(halfRange-Smoothness, halfRange+Smoothness, abs(mid-d))) * OutlineColor
	}
	return result
}
`

// --- Lazy shader compilation (no sync.Once, lantern is single-threaded) ---

var distanceFieldVectorShader *ebiten.Shader

func ensureDistanceFieldVectorShader() *ebiten.Shader {
	if distanceFieldVectorShader == nil {
		s, err := ebiten.NewShader([]byte(distanceFieldVectorShaderSrc))
		if err != nil {
			panic("lantern: failed to compile distance field vector shader: " + err.Error())
		}
		distanceFieldVectorShader = s
	}
	return distanceFieldVectorShader
}

// DistanceFieldVectorShader renders text meshes from a distance-field glyph
// cache. OutlineStart is the fill edge; when it is greater than OutlineEnd
// the band between them is filled with OutlineColor.
type DistanceFieldVectorShader struct {
	TransformationProjection geom.Mat4
	Color                    Color
	OutlineColor             Color
	OutlineStart             float32
	OutlineEnd               float32
	Smoothness               float32

	cache *GlyphCache

	uniforms     map[string]any
	color        [4]float32 // persistent buffers pre-stored in uniforms
	outlineColor [4]float32
	outlineRange [2]float32
	op           ebiten.DrawTrianglesShaderOptions
}

// NewDistanceFieldVectorShader creates a shader with a white fill, no
// outline and a smoothness of 0.04.
func NewDistanceFieldVectorShader() *DistanceFieldVectorShader {
	s := &DistanceFieldVectorShader{
		TransformationProjection: geom.Identity4(),
		Color:                    ColorWhite,
		OutlineColor:             Color{},
		OutlineStart:             0.5,
		OutlineEnd:               1.0,
		Smoothness:               0.04,
		uniforms:                 make(map[string]any, 4),
	}
	s.uniforms["Color"] = s.color[:]
	s.uniforms["OutlineColor"] = s.outlineColor[:]
	s.uniforms["OutlineRange"] = s.outlineRange[:]
	return s
}

// BindVectorTexture selects the glyph cache whose texture is sampled.
func (s *DistanceFieldVectorShader) BindVectorTexture(cache *GlyphCache) *DistanceFieldVectorShader {
	s.cache = cache
	return s
}

// SetTransformationProjection sets the combined transformation-projection.
func (s *DistanceFieldVectorShader) SetTransformationProjection(m geom.Mat4) {
	s.TransformationProjection = m
}

// SetTransformationProjection2D sets a 2D transformation-projection.
func (s *DistanceFieldVectorShader) SetTransformationProjection2D(m geom.Mat3) *DistanceFieldVectorShader {
	s.TransformationProjection = m.To4()
	return s
}

// SetOutlineRange sets OutlineStart and OutlineEnd.
func (s *DistanceFieldVectorShader) SetOutlineRange(start, end float32) *DistanceFieldVectorShader {
	s.OutlineStart, s.OutlineEnd = start, end
	return s
}

// DrawMesh draws a text mesh sampling the bound glyph cache. Nothing is
// drawn without a bound cache.
func (s *DistanceFieldVectorShader) DrawMesh(dst *ebiten.Image, m *Mesh) {
	if s.cache == nil {
		return
	}
	tex := s.cache.Texture()
	verts, inds := m.project(s.TransformationProjection, dst.Bounds())
	if len(inds) == 0 {
		return
	}
	if s.uniforms == nil {
		s.uniforms = make(map[string]any, 4)
		s.uniforms["Color"] = s.color[:]
		s.uniforms["OutlineColor"] = s.outlineColor[:]
		s.uniforms["OutlineRange"] = s.outlineRange[:]
	}
	s.color = s.Color.premultiplied()
	s.outlineColor = s.OutlineColor.premultiplied()
	s.outlineRange = [2]float32{s.OutlineStart, s.OutlineEnd}
	s.uniforms["Smoothness"] = s.Smoothness

	s.op.Images[0] = tex
	s.op.Uniforms = s.uniforms
	s.op.Blend = BlendNormal.EbitenBlend()
	dst.DrawTrianglesShader(verts, inds, ensureDistanceFieldVectorShader(), &s.op)
}
