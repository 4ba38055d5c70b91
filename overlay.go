package vista

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	overlayDim     = 0.35 // screen dim strength while loading
	spinnerDots    = 8
	spinnerRadius  = 22.0
	spinnerDotSize = 4.0
	spinnerSpeed   = 4.0 // radians per second
)

// dimPixel is a 1x1 black image stretched over the screen for the dim layer.
// No sync.Once — vista is single-threaded.
var dimPixel *ebiten.Image

func ensureDimPixel() *ebiten.Image {
	if dimPixel == nil {
		dimPixel = ebiten.NewImage(1, 1)
		dimPixel.Fill(color.RGBA{A: 255})
	}
	return dimPixel
}

// overlay renders the loading state: a dimmed screen with a dot spinner.
// Visibility is owned by the transition engine; the overlay only animates
// and draws.
type overlay struct {
	angle float64
}

// update advances the spinner. Called once per tick regardless of
// visibility so the spinner doesn't restart mid-turn on quick reloads.
func (o *overlay) update(dt float64) {
	o.angle = math.Mod(o.angle+spinnerSpeed*dt, 2*math.Pi)
}

func (o *overlay) draw(dst *ebiten.Image) {
	b := dst.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.ColorScale.ScaleAlpha(overlayDim)
	dst.DrawImage(ensureDimPixel(), op)

	cx, cy := float32(w/2), float32(h/2)
	for i := 0; i < spinnerDots; i++ {
		a := o.angle + float64(i)/spinnerDots*2*math.Pi
		x := cx + float32(math.Cos(a))*spinnerRadius
		y := cy + float32(math.Sin(a))*spinnerRadius
		fade := uint8(255 * (float64(i) + 1) / spinnerDots)
		vector.DrawFilledCircle(dst, x, y, spinnerDotSize, color.RGBA{fade, fade, fade, fade}, true)
	}
}
