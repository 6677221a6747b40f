package lantern

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled screenshot of the framebuffer, captured at the
// end of the next Draw. The resulting PNG is written to
// Configuration.ScreenshotDir with a timestamped filename.
func (a *Application) Screenshot(label string) {
	a.screenshotQueue = append(a.screenshotQueue, label)
}

// flushScreenshots captures img for every queued label and writes each as a
// PNG file.
func (a *Application) flushScreenshots(img *ebiten.Image) {
	if len(a.screenshotQueue) == 0 {
		return
	}
	dir := a.config.ScreenshotDir
	if dir == "" {
		dir = "screenshots"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[lantern] screenshot: mkdir %s: %v\n", dir, err)
		a.screenshotQueue = a.screenshotQueue[:0]
		return
	}

	shot := captureFramebuffer(img)
	stamp := time.Now().Format("20060102_150405")
	for _, label := range a.screenshotQueue {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
		if err := writePNG(path, shot); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[lantern] screenshot: %v\n", err)
		}
	}
	a.screenshotQueue = a.screenshotQueue[:0]
}

// captureFramebuffer reads the framebuffer back for screenshots. Tests
// replace it because pixel readback needs a running game loop.
var captureFramebuffer = readNRGBA

// readNRGBA reads img back and converts premultiplied RGBA to straight
// alpha.
func readNRGBA(img *ebiten.Image) *image.NRGBA {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	img.ReadPixels(pixels)
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	unpremultiply(out.Pix, pixels)
	return out
}

// unpremultiply converts premultiplied RGBA bytes in src to straight alpha
// in dst.
func unpremultiply(dst, src []byte) {
	for i := 0; i+3 < len(src); i += 4 {
		r, g, b, a := src[i], src[i+1], src[i+2], src[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		dst[i] = r
		dst[i+1] = g
		dst[i+2] = b
		dst[i+3] = a
	}
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
