package lantern

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/lantern/geom"
)

// renderCommand is a single draw instruction emitted by Camera.Draw.
type renderCommand struct {
	drawable       Drawable
	transformation geom.Mat4 // camera-relative
	depth          float32   // view-space z of the object origin
	order          int       // position in the group, for stable sort
}

// Draw renders every drawable of group whose object is alive into dst,
// farthest first. Without a depth buffer this is the painter's algorithm.
func (c *Camera) Draw(dst *ebiten.Image, group *DrawableGroup) {
	if dst == nil || group == nil {
		return
	}
	var stats debugStats
	var t0 time.Time
	if globalDebug {
		t0 = time.Now()
	}

	c.emitCommands(group)

	if globalDebug {
		t1 := time.Now()
		stats.traverseTime = t1.Sub(t0)
		t0 = t1
	}

	c.mergeSort()

	if globalDebug {
		t1 := time.Now()
		stats.sortTime = t1.Sub(t0)
		t0 = t1
	}

	for i := range c.commands {
		cmd := &c.commands[i]
		cmd.drawable.Draw(dst, cmd.transformation, c)
	}

	if globalDebug {
		stats.submitTime = time.Since(t0)
		stats.commandCount = len(c.commands)
		stats.drawableCount = group.Len()
		debugLog(stats)
	}

	// Drop drawable references so a removed drawable can be collected.
	for i := range c.commands {
		c.commands[i].drawable = nil
	}
	c.commands = c.commands[:0]
}

// emitCommands fills c.commands with one command per live drawable.
func (c *Camera) emitCommands(group *DrawableGroup) {
	c.commands = c.commands[:0]
	cameraMatrix := c.CameraMatrix()
	for i, d := range group.drawables {
		obj := d.Object()
		if obj == nil || obj.IsDisposed() {
			continue
		}
		t := cameraMatrix.Mul(obj.AbsoluteTransformation())
		c.commands = append(c.commands, renderCommand{
			drawable:       d,
			transformation: t,
			depth:          t.Translation().Z,
			order:          i,
		})
	}
}

// --- Merge sort ---

// commandLessOrEqual returns true if a should be drawn before or together with
// b. Farther objects (more negative view z) come first; using <= for order
// keeps the sort stable.
func commandLessOrEqual(a, b *renderCommand) bool {
	if a.depth != b.depth {
		return a.depth < b.depth
	}
	return a.order <= b.order
}

// mergeSort sorts c.commands in-place using c.sortBuf as scratch space.
// Bottom-up merge sort: zero allocations after the sort buffer reaches high-water mark.
func (c *Camera) mergeSort() {
	n := len(c.commands)
	if n <= 1 {
		return
	}
	if cap(c.sortBuf) < n {
		c.sortBuf = make([]renderCommand, n)
	}
	c.sortBuf = c.sortBuf[:n]

	a := c.commands
	b := c.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}

	if swapped {
		copy(c.commands, c.sortBuf)
	}
	clear(c.sortBuf)
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []renderCommand, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if commandLessOrEqual(&src[i], &src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	for i < mid {
		dst[k] = src[i]
		i++
		k++
	}
	for j < hi {
		dst[k] = src[j]
		j++
		k++
	}
}
