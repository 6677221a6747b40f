package lantern

import (
	"image"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/lantern/geom"
)

// nopDrawable is attached to an object and draws nothing.
type nopDrawable struct{ object *Object }

func (d *nopDrawable) Object() *Object                        { return d.object }
func (d *nopDrawable) Draw(*ebiten.Image, geom.Mat4, *Camera) {}

// setupBenchScene creates a scene with n drawables spread along z.
func setupBenchScene(n int) (*Camera, *DrawableGroup) {
	s := NewScene()
	cam := NewCamera(NewObject("cam", s.Root()))
	group := NewDrawableGroup()
	for i := 0; i < n; i++ {
		obj := NewObject("obj", s.Root())
		obj.Translate(geom.V3(float32(i%100), 0, -float32((i*7919)%1000)))
		group.Add(&nopDrawable{object: obj})
	}
	return cam, group
}

// --- Camera ---

func BenchmarkCameraDraw_10000(b *testing.B) {
	cam, group := setupBenchScene(10000)
	screen := ebiten.NewImage(64, 64)

	// Warm up: first draw grows the command and sort buffers.
	cam.Draw(screen, group)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		cam.Draw(screen, group)
	}
}

func BenchmarkCameraDraw_10000_Orbiting(b *testing.B) {
	cam, group := setupBenchScene(10000)
	screen := ebiten.NewImage(64, 64)
	cam.Draw(screen, group)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		cam.Object().RotateY(0.01)
		cam.Draw(screen, group)
	}
}

// --- Text ---

func BenchmarkTextRenderer_Render(b *testing.B) {
	f := &fakeFont{opened: true}
	c := NewGlyphCache(image.Pt(256, 256), 0)
	if err := f.FillGlyphCache(c, "Rotation: 0123456789.°\nScale"); err != nil {
		b.Fatal(err)
	}
	r := NewTextRenderer(f, c, 10, TopRight)
	r.Reserve(40)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = r.Render("Rotation: 12.34°\nScale: 1.10")
	}
}

func BenchmarkDistanceField_128(b *testing.B) {
	src := filledSquare(128, 32, 96)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = DistanceField(src, 22, 4)
	}
}
