package vista

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/draw"
)

// Thumbnail strip layout. Sizes are in pixels.
const (
	thumbWidth   = 96
	thumbHeight  = 54 // 16:9 crop of the equirectangular source
	thumbGap     = 10
	thumbMarginB = 16  // distance from the bottom edge
	thumbIdleDim = 0.7 // alpha for non-current thumbnails
)

// thumb is one selectable thumbnail.
type thumb struct {
	id   string
	rect Rect
	img  *ebiten.Image // nil until the panorama's texture is resident
}

// ThumbStrip lays out one thumbnail per configured panorama along the bottom
// edge, in display order, and turns clicks into selections. Thumbnail images
// are downscaled from the cached panorama pixels as they become resident, so
// the strip never triggers loads of its own.
type ThumbStrip struct {
	cache  *Cache
	thumbs []thumb
	width  int
	height int

	// onSelect receives the clicked panorama id. Wired to Engine.ShowByID.
	onSelect func(id string)
}

// NewThumbStrip creates a strip for the given ordered panorama list.
func NewThumbStrip(list []Descriptor, cache *Cache, onSelect func(id string)) *ThumbStrip {
	thumbs := make([]thumb, len(list))
	for i, d := range list {
		thumbs[i] = thumb{id: d.ID}
	}
	return &ThumbStrip{
		cache:    cache,
		thumbs:   thumbs,
		onSelect: onSelect,
	}
}

// Resize recomputes the layout for a new viewport size. The row is centered
// horizontally.
func (s *ThumbStrip) Resize(width, height int) {
	s.width = width
	s.height = height
	total := len(s.thumbs)*thumbWidth + (len(s.thumbs)-1)*thumbGap
	x := (float64(width) - float64(total)) / 2
	y := float64(height) - thumbMarginB - thumbHeight
	for i := range s.thumbs {
		s.thumbs[i].rect = Rect{X: x, Y: y, Width: thumbWidth, Height: thumbHeight}
		x += thumbWidth + thumbGap
	}
}

// Click reports whether (x, y) hit a thumbnail, selecting it if so.
func (s *ThumbStrip) Click(x, y float64) bool {
	for i := range s.thumbs {
		if s.thumbs[i].rect.Contains(x, y) {
			if s.onSelect != nil {
				s.onSelect(s.thumbs[i].id)
			}
			return true
		}
	}
	return false
}

// Bounds returns the hit rectangle for the thumbnail with the given id.
// The zero Rect means the id is not in the strip.
func (s *ThumbStrip) Bounds(id string) Rect {
	for i := range s.thumbs {
		if s.thumbs[i].id == id {
			return s.thumbs[i].rect
		}
	}
	return Rect{}
}

// draw renders the strip, materializing thumbnail images for any panorama
// that has become resident since the last frame. The current panorama draws
// at full opacity, the rest dimmed.
func (s *ThumbStrip) draw(dst *ebiten.Image, currentID string) {
	for i := range s.thumbs {
		t := &s.thumbs[i]
		if t.img == nil {
			if e := s.cache.Entry(t.id); e != nil {
				t.img = ebiten.NewImageFromImage(makeThumbnail(e.pix))
			}
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(t.rect.X, t.rect.Y)
		if t.id != currentID {
			op.ColorScale.ScaleAlpha(thumbIdleDim)
		}
		if t.img != nil {
			dst.DrawImage(t.img, op)
		} else {
			// Placeholder until the texture arrives.
			placeholder := ensureDimPixel()
			op.GeoM.Reset()
			op.GeoM.Scale(thumbWidth, thumbHeight)
			op.GeoM.Translate(t.rect.X, t.rect.Y)
			op.ColorScale.ScaleAlpha(0.5)
			dst.DrawImage(placeholder, op)
		}
	}
}

// dispose releases the strip's GPU images.
func (s *ThumbStrip) dispose() {
	for i := range s.thumbs {
		if s.thumbs[i].img != nil {
			s.thumbs[i].img.Deallocate()
			s.thumbs[i].img = nil
		}
	}
}

// makeThumbnail crops the equirectangular source to the thumbnail aspect
// around its center and downscales with CatmullRom filtering.
func makeThumbnail(src *image.NRGBA) *image.NRGBA {
	b := src.Bounds()
	cropH := b.Dx() * thumbHeight / thumbWidth
	if cropH > b.Dy() {
		cropH = b.Dy()
	}
	top := b.Min.Y + (b.Dy()-cropH)/2
	crop := image.Rect(b.Min.X, top, b.Max.X, top+cropH)

	dst := image.NewNRGBA(image.Rect(0, 0, thumbWidth, thumbHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, draw.Src, nil)
	return dst
}
