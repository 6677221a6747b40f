package lantern

import (
	"errors"
	"image"
	"math"
)

// edtInf stands in for "no feature pixel" in the distance transform.
const edtInf = 1e20

// DistanceField converts a coverage image into a signed distance field
// downsampled by ratio. Pixels with coverage of at least 50% are inside.
// Distances are measured in source pixels and mapped so that the edge is
// 0.5, points radius or more inside are 1 and points radius or more outside
// are 0.
func DistanceField(src *image.Alpha, radius, ratio int) (*image.Gray, error) {
	if src == nil {
		return nil, errors.New("lantern: distance field source is nil")
	}
	if radius <= 0 {
		return nil, errors.New("lantern: distance field radius must be positive")
	}
	if ratio <= 0 {
		return nil, errors.New("lantern: distance field ratio must be positive")
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewGray(image.Rect(0, 0, w/ratio, h/ratio))
	if dst.Rect.Empty() {
		return dst, nil
	}

	// Squared distance to the nearest inside pixel and to the nearest
	// outside pixel.
	toInside := make([]float64, w*h)
	toOutside := make([]float64, w*h)
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w]
		for x, a := range row {
			if a >= 128 {
				toInside[y*w+x] = 0
				toOutside[y*w+x] = edtInf
			} else {
				toInside[y*w+x] = edtInf
				toOutside[y*w+x] = 0
			}
		}
	}
	var scratch edtScratch
	scratch.transform2D(toInside, w, h)
	scratch.transform2D(toOutside, w, h)

	scale := 0.5 / float64(radius)
	// The centre of an even block falls between pixels, so the two central
	// rows and columns are averaged. Odd blocks have a single centre pixel.
	lo, hi := (ratio-1)/2, ratio/2
	for by := 0; by < dst.Rect.Dy(); by++ {
		y0, y1 := by*ratio+lo, by*ratio+hi
		for bx := 0; bx < dst.Rect.Dx(); bx++ {
			x0, x1 := bx*ratio+lo, bx*ratio+hi
			d := (signedDistance(toInside, toOutside, y0*w+x0) +
				signedDistance(toInside, toOutside, y0*w+x1) +
				signedDistance(toInside, toOutside, y1*w+x0) +
				signedDistance(toInside, toOutside, y1*w+x1)) / 4
			v := 0.5 + math.Max(-0.5, math.Min(0.5, d*scale))
			dst.Pix[by*dst.Stride+bx] = uint8(v*255 + 0.5)
		}
	}
	return dst, nil
}

// signedDistance returns the distance of pixel i to the edge, positive
// inside.
func signedDistance(toInside, toOutside []float64, i int) float64 {
	if toInside[i] == 0 {
		return math.Sqrt(toOutside[i]) - 0.5
	}
	return -(math.Sqrt(toInside[i]) - 0.5)
}

// edtScratch holds the buffers of the 1D distance transform, sized to the
// longest row or column seen so far.
type edtScratch struct {
	f, d []float64
	z    []float64
	v    []int
}

func (s *edtScratch) ensure(n int) {
	if cap(s.f) < n {
		s.f = make([]float64, n)
		s.d = make([]float64, n)
		s.z = make([]float64, n+1)
		s.v = make([]int, n)
	}
	s.f, s.d, s.z, s.v = s.f[:n], s.d[:n], s.z[:n+1], s.v[:n]
}

// transform2D replaces grid (0 at features, edtInf elsewhere) with squared
// Euclidean distances, columns first, then rows.
func (s *edtScratch) transform2D(grid []float64, w, h int) {
	s.ensure(h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			s.f[y] = grid[y*w+x]
		}
		s.transform1D(h)
		for y := 0; y < h; y++ {
			grid[y*w+x] = s.d[y]
		}
	}
	s.ensure(w)
	for y := 0; y < h; y++ {
		copy(s.f, grid[y*w:y*w+w])
		s.transform1D(w)
		copy(grid[y*w:y*w+w], s.d)
	}
}

// transform1D is the lower envelope of parabolas algorithm of Felzenszwalb
// and Huttenlocher over s.f[:n], writing into s.d[:n].
func (s *edtScratch) transform1D(n int) {
	f, d, z, v := s.f, s.d, s.z, s.v
	k := 0
	v[0] = 0
	z[0] = math.Inf(-1)
	z[1] = math.Inf(1)
	for q := 1; q < n; q++ {
		fq := f[q] + float64(q*q)
		p := v[k]
		sx := (fq - (f[p] + float64(p*p))) / float64(2*q-2*p)
		for sx <= z[k] {
			k--
			p = v[k]
			sx = (fq - (f[p] + float64(p*p))) / float64(2*q-2*p)
		}
		k++
		v[k] = q
		z[k] = sx
		z[k+1] = math.Inf(1)
	}
	k = 0
	for q := 0; q < n; q++ {
		for z[k+1] < float64(q) {
			k++
		}
		dq := q - v[k]
		d[q] = float64(dq*dq) + f[v[k]]
	}
}
