package geom

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Mat3 is a 3x3 column-major matrix used for 2D homogeneous transformations.
// Element (col, row) is at index col*3+row.
type Mat3 [9]float32

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Scaling3 returns a 2D scaling matrix.
func Scaling3(s Vec2) Mat3 {
	return Mat3{
		s.X, 0, 0,
		0, s.Y, 0,
		0, 0, 1,
	}
}

// Rotation3 returns a counter-clockwise 2D rotation matrix.
func Rotation3(angle Rad) Mat3 {
	sin, cos := sincos(angle)
	return Mat3{
		cos, sin, 0,
		-sin, cos, 0,
		0, 0, 1,
	}
}

// Translation3 returns a 2D translation matrix.
func Translation3(t Vec2) Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		t.X, t.Y, 1,
	}
}

// At returns the element at the given column and row.
func (m Mat3) At(col, row int) float32 { return m[col*3+row] }

// Mul returns m · o.
func (m Mat3) Mul(o Mat3) Mat3 {
	var r Mat3
	for c := 0; c < 3; c++ {
		for row := 0; row < 3; row++ {
			var sum float32
			for k := 0; k < 3; k++ {
				sum += m[k*3+row] * o[c*3+k]
			}
			r[c*3+row] = sum
		}
	}
	return r
}

// TransformPoint applies m to the point p (w = 1).
func (m Mat3) TransformPoint(p Vec2) Vec2 {
	return Vec2{
		m[0]*p.X + m[3]*p.Y + m[6],
		m[1]*p.X + m[4]*p.Y + m[7],
	}
}

// TransformVector applies the rotation/scaling part of m to v.
func (m Mat3) TransformVector(v Vec2) Vec2 {
	return Vec2{
		m[0]*v.X + m[3]*v.Y,
		m[1]*v.X + m[4]*v.Y,
	}
}

// ScalingDiagonal returns the scale factors along the X and Y axes.
func (m Mat3) ScalingDiagonal() Vec2 {
	return Vec2{
		math32.Sqrt(m[0]*m[0] + m[1]*m[1]),
		math32.Sqrt(m[3]*m[3] + m[4]*m[4]),
	}
}

// UniformScaling returns the scale factor of a matrix whose rotation/scaling
// part is a uniformly scaled rotation. For non-uniform matrices the X axis
// scale is returned.
func (m Mat3) UniformScaling() float32 {
	return math32.Sqrt(m[0]*m[0] + m[1]*m[1])
}

// Determinant returns the determinant of m.
func (m Mat3) Determinant() float32 {
	return m[0]*(m[4]*m[8]-m[7]*m[5]) -
		m[3]*(m[1]*m[8]-m[7]*m[2]) +
		m[6]*(m[1]*m[5]-m[4]*m[2])
}

// Inverted returns the inverse of m, or the identity if m is singular.
func (m Mat3) Inverted() Mat3 {
	det := m.Determinant()
	if det > -1e-12 && det < 1e-12 {
		return Identity3()
	}
	inv := 1 / det
	return Mat3{
		(m[4]*m[8] - m[7]*m[5]) * inv,
		(m[7]*m[2] - m[1]*m[8]) * inv,
		(m[1]*m[5] - m[4]*m[2]) * inv,
		(m[6]*m[5] - m[3]*m[8]) * inv,
		(m[0]*m[8] - m[6]*m[2]) * inv,
		(m[3]*m[2] - m[0]*m[5]) * inv,
		(m[3]*m[7] - m[6]*m[4]) * inv,
		(m[6]*m[1] - m[0]*m[7]) * inv,
		(m[0]*m[4] - m[3]*m[1]) * inv,
	}
}

// To4 embeds the 2D transformation in the XY plane of a 4x4 matrix, leaving
// Z untouched.
func (m Mat3) To4() Mat4 {
	return Mat4{
		m[0], m[1], 0, m[2],
		m[3], m[4], 0, m[5],
		0, 0, 1, 0,
		m[6], m[7], 0, m[8],
	}
}

// String formats the matrix row by row.
func (m Mat3) String() string {
	return fmt.Sprintf("Matrix(%g, %g, %g,\n       %g, %g, %g,\n       %g, %g, %g)",
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8])
}
