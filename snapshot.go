package vista

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/hajimehoshi/ebiten/v2"
)

// Snapshot queues a labeled capture of the rendered view at the end of the
// current frame's Draw call. The result is written to Options.SnapshotDir as
// a WebP file with a timestamped name. Safe to call from Update or Draw.
func (e *Engine) Snapshot(label string) {
	if e.disposed {
		return
	}
	e.snapshotQueue = append(e.snapshotQueue, label)
}

// flushSnapshots captures the rendered frame for every queued label.
// Called at the end of Engine.Draw.
func (e *Engine) flushSnapshots(screen *ebiten.Image) {
	if len(e.snapshotQueue) == 0 {
		return
	}

	if err := os.MkdirAll(e.opts.SnapshotDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "[vista] snapshot: mkdir %s: %v\n", e.opts.SnapshotDir, err)
		e.snapshotQueue = e.snapshotQueue[:0]
		return
	}

	b := screen.Bounds()
	w, h := b.Dx(), b.Dy()
	pixels := make([]byte, 4*w*h)
	screen.ReadPixels(pixels)

	// Convert premultiplied RGBA to straight-alpha NRGBA.
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(pixels); i += 4 {
		r, g, bl, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			bl = uint8(min(int(bl)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = bl
		img.Pix[i+3] = a
	}

	stamp := time.Now().Format("20060102_150405")

	for _, label := range e.snapshotQueue {
		name := fmt.Sprintf("%s_%s.webp", stamp, sanitizeLabel(label))
		if err := writeWebP(filepath.Join(e.opts.SnapshotDir, name), img); err != nil {
			fmt.Fprintf(os.Stderr, "[vista] snapshot: %v\n", err)
		}
	}

	e.snapshotQueue = e.snapshotQueue[:0]
}

// writeWebP encodes an image to a lossless WebP file at the given path.
func writeWebP(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := nativewebp.Encode(f, img, nil); err != nil {
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
