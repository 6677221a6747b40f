package lantern

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/lantern/geom"
)

// Drawable is something a Camera can draw. Draw receives the object's
// transformation relative to the camera.
type Drawable interface {
	Object() *Object
	Draw(dst *ebiten.Image, transformation geom.Mat4, cam *Camera)
}

// DrawableGroup is an ordered set of drawables rendered together by a camera.
type DrawableGroup struct {
	drawables []Drawable
}

// NewDrawableGroup creates an empty group.
func NewDrawableGroup() *DrawableGroup {
	return &DrawableGroup{}
}

// Add appends d to the group. Adding a drawable twice is a no-op.
func (g *DrawableGroup) Add(d Drawable) {
	if d == nil {
		panic("lantern: cannot add nil drawable")
	}
	for _, e := range g.drawables {
		if e == d {
			return
		}
	}
	g.drawables = append(g.drawables, d)
}

// Remove removes d from the group and reports whether it was present.
func (g *DrawableGroup) Remove(d Drawable) bool {
	for i, e := range g.drawables {
		if e == d {
			copy(g.drawables[i:], g.drawables[i+1:])
			g.drawables[len(g.drawables)-1] = nil
			g.drawables = g.drawables[:len(g.drawables)-1]
			return true
		}
	}
	return false
}

// Len returns the number of drawables.
func (g *DrawableGroup) Len() int { return len(g.drawables) }

// At returns the i-th drawable.
func (g *DrawableGroup) At(i int) Drawable { return g.drawables[i] }

// transformationProjectionSetter is implemented by shaders that take a
// combined transformation-projection matrix.
type transformationProjectionSetter interface {
	SetTransformationProjection(m geom.Mat4)
}

// MeshDrawable draws a mesh with a shader at its object's position.
type MeshDrawable struct {
	object *Object
	Mesh   *Mesh
	Shader Shader
}

// NewMeshDrawable attaches mesh to obj. If group is non-nil the drawable is
// added to it.
func NewMeshDrawable(obj *Object, group *DrawableGroup, mesh *Mesh, shader Shader) *MeshDrawable {
	if obj == nil {
		panic("lantern: drawable needs an object")
	}
	d := &MeshDrawable{object: obj, Mesh: mesh, Shader: shader}
	if group != nil {
		group.Add(d)
	}
	return d
}

// NewVertexColorDrawable attaches a vertex-colored mesh to obj.
func NewVertexColorDrawable(obj *Object, group *DrawableGroup, mesh *Mesh) *MeshDrawable {
	return NewMeshDrawable(obj, group, mesh, &VertexColorShader{})
}

// NewTextDrawable attaches a text mesh rendered with the given distance
// field shader to obj.
func NewTextDrawable(obj *Object, group *DrawableGroup, mesh *Mesh, shader *DistanceFieldVectorShader) *MeshDrawable {
	return NewMeshDrawable(obj, group, mesh, shader)
}

// Object returns the object the drawable is attached to.
func (d *MeshDrawable) Object() *Object { return d.object }

// Draw sets the shader's transformation-projection and draws the mesh.
func (d *MeshDrawable) Draw(dst *ebiten.Image, transformation geom.Mat4, cam *Camera) {
	if d.Mesh == nil || d.Shader == nil {
		return
	}
	if s, ok := d.Shader.(transformationProjectionSetter); ok {
		s.SetTransformationProjection(cam.ProjectionMatrix().Mul(transformation))
	}
	d.Mesh.Draw(dst, d.Shader)
}
