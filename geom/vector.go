package geom

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float32
}

// V2 returns a new Vec2.
func V2(x, y float32) Vec2 { return Vec2{X: x, Y: y} }

// YScale returns a vector that scales only the Y axis: {1, y}.
func YScale(y float32) Vec2 { return Vec2{X: 1, Y: y} }

// XScale returns a vector that scales only the X axis: {x, 1}.
func XScale(x float32) Vec2 { return Vec2{X: x, Y: 1} }

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Mul returns the component-wise product of v and o.
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }

// Div returns the component-wise quotient of v and o.
func (v Vec2) Div(o Vec2) Vec2 { return Vec2{v.X / o.X, v.Y / o.Y} }

// MulScalar returns v scaled by s.
func (v Vec2) MulScalar(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float32 { return v.X*o.X + v.Y*o.Y }

// Length returns the Euclidean length of v.
func (v Vec2) Length() float32 { return math32.Sqrt(v.Dot(v)) }

// AspectRatio returns X / Y.
func (v Vec2) AspectRatio() float32 { return v.X / v.Y }

// String implements fmt.Stringer.
func (v Vec2) String() string { return fmt.Sprintf("{%g, %g}", v.X, v.Y) }

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// V3 returns a new Vec3.
func V3(x, y, z float32) Vec3 { return Vec3{X: x, Y: y, Z: z} }

// Vec3Scalar returns a Vec3 with all components set to s.
func Vec3Scalar(s float32) Vec3 { return Vec3{s, s, s} }

// XAxis returns the X axis scaled by s.
func XAxis(s float32) Vec3 { return Vec3{X: s} }

// YAxis returns the Y axis scaled by s.
func YAxis(s float32) Vec3 { return Vec3{Y: s} }

// ZAxis returns the Z axis scaled by s.
func ZAxis(s float32) Vec3 { return Vec3{Z: s} }

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Mul returns the component-wise product of v and o.
func (v Vec3) Mul(o Vec3) Vec3 { return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }

// MulScalar returns v scaled by s.
func (v Vec3) MulScalar(s float32) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Negate returns -v.
func (v Vec3) Negate() Vec3 { return Vec3{-v.X, -v.Y, -v.Z} }

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float32 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the cross product v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float32 { return math32.Sqrt(v.Dot(v)) }

// Normalized returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.MulScalar(1 / l)
}

// XY returns the X and Y components.
func (v Vec3) XY() Vec2 { return Vec2{v.X, v.Y} }

// String implements fmt.Stringer.
func (v Vec3) String() string { return fmt.Sprintf("{%g, %g, %g}", v.X, v.Y, v.Z) }

// Vec4 is a vector in homogeneous coordinates.
type Vec4 struct {
	X, Y, Z, W float32
}

// V4 returns a new Vec4.
func V4(x, y, z, w float32) Vec4 { return Vec4{X: x, Y: y, Z: z, W: w} }

// Point returns v extended to a homogeneous point (w = 1).
func (v Vec3) Point() Vec4 { return Vec4{v.X, v.Y, v.Z, 1} }

// XYZ returns the first three components.
func (v Vec4) XYZ() Vec3 { return Vec3{v.X, v.Y, v.Z} }

// PerspectiveDivide returns XYZ / W.
func (v Vec4) PerspectiveDivide() Vec3 {
	return Vec3{v.X / v.W, v.Y / v.W, v.Z / v.W}
}
