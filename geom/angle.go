// Package geom is a small float32 vector and matrix package for the 2D and
// 3D transformations used by lantern's scene graph, cameras and text meshes.
//
// Matrices are column-major, matching the layout GPU shaders expect: element
// (col, row) of a Mat4 lives at index col*4+row.
package geom

import (
	"math"

	"github.com/chewxy/math32"
)

// Deg is an angle in degrees.
type Deg float32

// Rad is an angle in radians.
type Rad float32

const (
	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
)

// Rad converts degrees to radians.
func (d Deg) Rad() Rad { return Rad(float32(d) * degToRad) }

// Deg converts radians to degrees.
func (r Rad) Deg() Deg { return Deg(float32(r) * radToDeg) }

// sincos returns the sine and cosine of r.
func sincos(r Rad) (sin, cos float32) {
	return math32.Sin(float32(r)), math32.Cos(float32(r))
}
