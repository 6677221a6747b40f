package geom

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Mat4 is a 4x4 column-major matrix. Element (col, row) is at index col*4+row.
type Mat4 [16]float32

// Identity4 returns the 4x4 identity matrix.
func Identity4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translation4 returns a translation matrix.
func Translation4(t Vec3) Mat4 {
	m := Identity4()
	m[12], m[13], m[14] = t.X, t.Y, t.Z
	return m
}

// Scaling4 returns a scaling matrix.
func Scaling4(s Vec3) Mat4 {
	return Mat4{
		s.X, 0, 0, 0,
		0, s.Y, 0, 0,
		0, 0, s.Z, 0,
		0, 0, 0, 1,
	}
}

// RotationX returns a rotation around the X axis.
func RotationX(angle Rad) Mat4 {
	sin, cos := sincos(angle)
	return Mat4{
		1, 0, 0, 0,
		0, cos, sin, 0,
		0, -sin, cos, 0,
		0, 0, 0, 1,
	}
}

// RotationY returns a rotation around the Y axis.
func RotationY(angle Rad) Mat4 {
	sin, cos := sincos(angle)
	return Mat4{
		cos, 0, -sin, 0,
		0, 1, 0, 0,
		sin, 0, cos, 0,
		0, 0, 0, 1,
	}
}

// RotationZ returns a rotation around the Z axis.
func RotationZ(angle Rad) Mat4 {
	sin, cos := sincos(angle)
	return Mat4{
		cos, sin, 0, 0,
		-sin, cos, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Rotation4 returns a rotation of angle around the given normalized axis.
func Rotation4(angle Rad, axis Vec3) Mat4 {
	sin, cos := sincos(angle)
	omc := 1 - cos
	x, y, z := axis.X, axis.Y, axis.Z
	return Mat4{
		cos + x*x*omc, y*x*omc + z*sin, z*x*omc - y*sin, 0,
		x*y*omc - z*sin, cos + y*y*omc, z*y*omc + x*sin, 0,
		x*z*omc + y*sin, y*z*omc - x*sin, cos + z*z*omc, 0,
		0, 0, 0, 1,
	}
}

// Perspective returns a perspective projection. fov is the horizontal field
// of view, aspect is width / height.
func Perspective(fov Rad, aspect, near, far float32) Mat4 {
	xyScale := 2 * math32.Tan(float32(fov)/2) * near
	size := Vec2{xyScale, xyScale / aspect}
	return PerspectiveSize(size, near, far)
}

// PerspectiveSize returns a perspective projection with the given size of
// the near clipping plane.
func PerspectiveSize(size Vec2, near, far float32) Mat4 {
	var m Mat4
	m[0] = 2 * near / size.X
	m[5] = 2 * near / size.Y
	m[10] = (far + near) / (near - far)
	m[11] = -1
	m[14] = 2 * far * near / (near - far)
	return m
}

// Orthographic returns an orthographic projection of the given size.
func Orthographic(size Vec2, near, far float32) Mat4 {
	m := Identity4()
	m[0] = 2 / size.X
	m[5] = 2 / size.Y
	m[10] = 2 / (near - far)
	m[14] = (near + far) / (near - far)
	return m
}

// At returns the element at the given column and row.
func (m Mat4) At(col, row int) float32 { return m[col*4+row] }

// Col returns the given column.
func (m Mat4) Col(i int) Vec4 {
	return Vec4{m[i*4], m[i*4+1], m[i*4+2], m[i*4+3]}
}

// Right returns the X axis of the transformation.
func (m Mat4) Right() Vec3 { return Vec3{m[0], m[1], m[2]} }

// Up returns the Y axis of the transformation.
func (m Mat4) Up() Vec3 { return Vec3{m[4], m[5], m[6]} }

// Backward returns the Z axis of the transformation.
func (m Mat4) Backward() Vec3 { return Vec3{m[8], m[9], m[10]} }

// Translation returns the translation part of the transformation.
func (m Mat4) Translation() Vec3 { return Vec3{m[12], m[13], m[14]} }

// Mul returns m · o.
func (m Mat4) Mul(o Mat4) Mat4 {
	var r Mat4
	for c := 0; c < 4; c++ {
		for row := 0; row < 4; row++ {
			r[c*4+row] = m[row]*o[c*4] +
				m[4+row]*o[c*4+1] +
				m[8+row]*o[c*4+2] +
				m[12+row]*o[c*4+3]
		}
	}
	return r
}

// MulVec4 returns m · v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// TransformPoint applies m to the point p (w = 1) without perspective
// division.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	return m.MulVec4(p.Point()).XYZ()
}

// TransformVector applies the rotation/scaling part of m to v.
func (m Mat4) TransformVector(v Vec3) Vec3 {
	return m.MulVec4(Vec4{v.X, v.Y, v.Z, 0}).XYZ()
}

// Inverted returns the inverse of m, or the identity if m is singular.
func (m Mat4) Inverted() Mat4 {
	var inv Mat4
	inv[0] = m[5]*m[10]*m[15] - m[5]*m[11]*m[14] - m[9]*m[6]*m[15] +
		m[9]*m[7]*m[14] + m[13]*m[6]*m[11] - m[13]*m[7]*m[10]
	inv[4] = -m[4]*m[10]*m[15] + m[4]*m[11]*m[14] + m[8]*m[6]*m[15] -
		m[8]*m[7]*m[14] - m[12]*m[6]*m[11] + m[12]*m[7]*m[10]
	inv[8] = m[4]*m[9]*m[15] - m[4]*m[11]*m[13] - m[8]*m[5]*m[15] +
		m[8]*m[7]*m[13] + m[12]*m[5]*m[11] - m[12]*m[7]*m[9]
	inv[12] = -m[4]*m[9]*m[14] + m[4]*m[10]*m[13] + m[8]*m[5]*m[14] -
		m[8]*m[6]*m[13] - m[12]*m[5]*m[10] + m[12]*m[6]*m[9]
	inv[1] = -m[1]*m[10]*m[15] + m[1]*m[11]*m[14] + m[9]*m[2]*m[15] -
		m[9]*m[3]*m[14] - m[13]*m[2]*m[11] + m[13]*m[3]*m[10]
	inv[5] = m[0]*m[10]*m[15] - m[0]*m[11]*m[14] - m[8]*m[2]*m[15] +
		m[8]*m[3]*m[14] + m[12]*m[2]*m[11] - m[12]*m[3]*m[10]
	inv[9] = -m[0]*m[9]*m[15] + m[0]*m[11]*m[13] + m[8]*m[1]*m[15] -
		m[8]*m[3]*m[13] - m[12]*m[1]*m[11] + m[12]*m[3]*m[9]
	inv[13] = m[0]*m[9]*m[14] - m[0]*m[10]*m[13] - m[8]*m[1]*m[14] +
		m[8]*m[2]*m[13] + m[12]*m[1]*m[10] - m[12]*m[2]*m[9]
	inv[2] = m[1]*m[6]*m[15] - m[1]*m[7]*m[14] - m[5]*m[2]*m[15] +
		m[5]*m[3]*m[14] + m[13]*m[2]*m[7] - m[13]*m[3]*m[6]
	inv[6] = -m[0]*m[6]*m[15] + m[0]*m[7]*m[14] + m[4]*m[2]*m[15] -
		m[4]*m[3]*m[14] - m[12]*m[2]*m[7] + m[12]*m[3]*m[6]
	inv[10] = m[0]*m[5]*m[15] - m[0]*m[7]*m[13] - m[4]*m[1]*m[15] +
		m[4]*m[3]*m[13] + m[12]*m[1]*m[7] - m[12]*m[3]*m[5]
	inv[14] = -m[0]*m[5]*m[14] + m[0]*m[6]*m[13] + m[4]*m[1]*m[14] -
		m[4]*m[2]*m[13] - m[12]*m[1]*m[6] + m[12]*m[2]*m[5]
	inv[3] = -m[1]*m[6]*m[11] + m[1]*m[7]*m[10] + m[5]*m[2]*m[11] -
		m[5]*m[3]*m[10] - m[9]*m[2]*m[7] + m[9]*m[3]*m[6]
	inv[7] = m[0]*m[6]*m[11] - m[0]*m[7]*m[10] - m[4]*m[2]*m[11] +
		m[4]*m[3]*m[10] + m[8]*m[2]*m[7] - m[8]*m[3]*m[6]
	inv[11] = -m[0]*m[5]*m[11] + m[0]*m[7]*m[9] + m[4]*m[1]*m[11] -
		m[4]*m[3]*m[9] - m[8]*m[1]*m[7] + m[8]*m[3]*m[5]
	inv[15] = m[0]*m[5]*m[10] - m[0]*m[6]*m[9] - m[4]*m[1]*m[10] +
		m[4]*m[2]*m[9] + m[8]*m[1]*m[6] - m[8]*m[2]*m[5]

	det := m[0]*inv[0] + m[1]*inv[4] + m[2]*inv[8] + m[3]*inv[12]
	if det > -1e-12 && det < 1e-12 {
		return Identity4()
	}
	det = 1 / det
	for i := range inv {
		inv[i] *= det
	}
	return inv
}

// String formats the matrix row by row.
func (m Mat4) String() string {
	return fmt.Sprintf("Matrix(%g, %g, %g, %g,\n       %g, %g, %g, %g,\n       %g, %g, %g, %g,\n       %g, %g, %g, %g)",
		m[0], m[4], m[8], m[12],
		m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14],
		m[3], m[7], m[11], m[15])
}
