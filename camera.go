package lantern

import (
	"image"

	"github.com/chewxy/math32"

	"github.com/phanxgames/lantern/geom"
)

// AspectRatioPolicy decides how a camera reacts when the viewport aspect
// ratio differs from the projection's.
type AspectRatioPolicy uint8

const (
	// AspectRatioNotPreserved stretches the projection to the viewport.
	AspectRatioNotPreserved AspectRatioPolicy = iota
	// AspectRatioExtend keeps the smaller side and extends the larger one.
	AspectRatioExtend
	// AspectRatioClip keeps the larger side and clips the smaller one.
	AspectRatioClip
)

// Camera renders drawable groups as seen from the object it is attached to.
type Camera struct {
	object *Object
	policy AspectRatioPolicy

	rawProjection geom.Mat4
	projection    geom.Mat4
	viewport      image.Point

	// Render scratch, reused between draws.
	commands []renderCommand
	sortBuf  []renderCommand
}

// NewCamera creates a camera attached to obj with an identity projection and
// AspectRatioNotPreserved.
func NewCamera(obj *Object) *Camera {
	if obj == nil {
		panic("lantern: camera needs an object")
	}
	return &Camera{
		object:        obj,
		rawProjection: geom.Identity4(),
		projection:    geom.Identity4(),
	}
}

// Object returns the object the camera is attached to.
func (c *Camera) Object() *Object { return c.object }

// AspectRatioPolicy returns the current aspect ratio policy.
func (c *Camera) AspectRatioPolicy() AspectRatioPolicy { return c.policy }

// SetAspectRatioPolicy changes the aspect ratio policy and recomputes the
// projection.
func (c *Camera) SetAspectRatioPolicy(p AspectRatioPolicy) *Camera {
	c.policy = p
	c.fixAspectRatio()
	return c
}

// SetProjectionMatrix sets the projection before aspect ratio correction.
func (c *Camera) SetProjectionMatrix(m geom.Mat4) *Camera {
	c.rawProjection = m
	c.fixAspectRatio()
	return c
}

// ProjectionMatrix returns the aspect-corrected projection.
func (c *Camera) ProjectionMatrix() geom.Mat4 { return c.projection }

// SetViewport sets the viewport size in pixels and recomputes the projection.
func (c *Camera) SetViewport(size image.Point) *Camera {
	c.viewport = size
	c.fixAspectRatio()
	return c
}

// Viewport returns the viewport size.
func (c *Camera) Viewport() image.Point { return c.viewport }

// CameraMatrix returns the inverse of the camera object's absolute
// transformation.
func (c *Camera) CameraMatrix() geom.Mat4 {
	return c.object.AbsoluteTransformation().Inverted()
}

func (c *Camera) fixAspectRatio() {
	c.projection = aspectRatioFix(c.policy, c.rawProjection, c.viewport).Mul(c.rawProjection)
}

// aspectRatioFix returns the scaling applied on top of the raw projection so
// that the policy holds for the given viewport.
func aspectRatioFix(policy AspectRatioPolicy, projection geom.Mat4, viewport image.Point) geom.Mat4 {
	sx, sy := projection.At(0, 0), projection.At(1, 1)
	if policy == AspectRatioNotPreserved || sx == 0 || sy == 0 || viewport.X == 0 || viewport.Y == 0 {
		return geom.Identity4()
	}
	relative := geom.Vec2{X: float32(viewport.X) * math32.Abs(sx), Y: float32(viewport.Y) * math32.Abs(sy)}
	if (relative.X > relative.Y) == (policy == AspectRatioExtend) {
		return geom.Scaling4(geom.Vec3{X: relative.Y / relative.X, Y: 1, Z: 1})
	}
	return geom.Scaling4(geom.Vec3{X: 1, Y: relative.X / relative.Y, Z: 1})
}

// Project maps a world-space point into pixel coordinates of a target of the
// given size. ok is false when the point is behind the camera.
func (c *Camera) Project(world geom.Vec3, target image.Point) (screen geom.Vec2, ok bool) {
	clip := c.projection.Mul(c.CameraMatrix()).MulVec4(world.Point())
	if clip.W <= minClipW {
		return geom.Vec2{}, false
	}
	return ndcToPixels(clip.PerspectiveDivide(), image.Rectangle{Max: target}), true
}
