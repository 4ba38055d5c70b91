package vista

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Grid resolution for the sphere projection. 48x32 cells keeps the
// equirectangular warp under half a pixel of error at typical viewport
// sizes while staying cheap to rebuild every frame.
const (
	gridCols = 48
	gridRows = 32
)

// projector maps the view frustum onto the inside of the panorama sphere.
// Each frame it rebuilds a screen-space vertex grid: every grid vertex is a
// view ray (from yaw, pitch, and FOV) converted to an equirectangular UV.
// The vertex and index buffers are allocated once and reused.
type projector struct {
	verts []ebiten.Vertex
	inds  []uint16
	us    []float64 // scratch: per-vertex longitude U before seam unwrapping
}

func newProjector() *projector {
	vcount := (gridCols + 1) * (gridRows + 1)
	p := &projector{
		verts: make([]ebiten.Vertex, vcount),
		inds:  make([]uint16, 0, gridCols*gridRows*6),
		us:    make([]float64, vcount),
	}
	// Index topology never changes; build it once.
	for j := 0; j < gridRows; j++ {
		for i := 0; i < gridCols; i++ {
			tl := uint16(j*(gridCols+1) + i)
			tr := tl + 1
			bl := tl + uint16(gridCols+1)
			br := bl + 1
			p.inds = append(p.inds, tl, tr, bl, tr, br, bl)
		}
	}
	return p
}

// project fills the vertex grid for a viewport of w x h pixels looking along
// (yaw, pitch) with the given vertical FOV in degrees, sampling a texture of
// texW x texH pixels at the given opacity.
//
// Horizontal wrapping is handled by unwrapping U across neighbors (a quad
// never spans the seam numerically; AddressRepeat resolves U outside [0, 1]).
// Vertical sampling is clamped half a texel short of the poles so repeat
// addressing can never bleed one pole into the other.
func (p *projector) project(w, h float64, yaw, pitch, fovDeg float64, texW, texH int, alpha float64) {
	tanV := math.Tan(fovDeg * math.Pi / 180 / 2)
	tanH := tanV * (w / h)

	sinYaw, cosYaw := math.Sincos(yaw)
	sinPitch, cosPitch := math.Sincos(pitch)

	vMin := 0.5 / float64(texH)
	vMax := 1 - vMin

	a := float32(alpha)
	idx := 0
	for j := 0; j <= gridRows; j++ {
		sy := float64(j) / gridRows * h
		ndcY := 1 - float64(j)/gridRows*2
		for i := 0; i <= gridCols; i++ {
			sx := float64(i) / gridCols * w
			ndcX := float64(i)/gridCols*2 - 1

			// View ray in camera space: +Z forward, +Y up.
			rx := ndcX * tanH
			ry := ndcY * tanV
			rz := 1.0

			// Pitch (around X), then yaw (around Y).
			dy := ry*cosPitch + rz*sinPitch
			dz := rz*cosPitch - ry*sinPitch
			dx := rx*cosYaw + dz*sinYaw
			dz = dz*cosYaw - rx*sinYaw

			// Rotations preserve length, so normalize with the camera-space ray.
			n := math.Sqrt(rx*rx + ry*ry + rz*rz)
			lon := math.Atan2(dx, dz)
			lat := math.Asin(dy / n)

			u := lon/(2*math.Pi) + 0.5
			v := clamp(0.5-lat/math.Pi, vMin, vMax)

			// Unwrap U against the left neighbor (or, for the first column,
			// the vertex above) so adjacent vertices never differ by a full
			// revolution at the seam.
			var ref float64
			switch {
			case i > 0:
				ref = p.us[idx-1]
			case j > 0:
				ref = p.us[idx-(gridCols+1)]
			default:
				ref = u
			}
			for u-ref > 0.5 {
				u--
			}
			for u-ref < -0.5 {
				u++
			}
			p.us[idx] = u

			p.verts[idx] = ebiten.Vertex{
				DstX:   float32(sx),
				DstY:   float32(sy),
				SrcX:   float32(u * float64(texW)),
				SrcY:   float32(v * float64(texH)),
				ColorR: a,
				ColorG: a,
				ColorB: a,
				ColorA: a,
			}
			idx++
		}
	}
}

// draw renders one panorama layer. Linear filtering stands in for the
// anisotropic sampling of the original surface; mipmaps are disabled since
// the sphere is always viewed from a fixed radius.
func (p *projector) draw(dst *ebiten.Image, entry *TextureEntry, yaw, pitch, fovDeg float64, alpha float64) {
	if entry == nil || alpha <= 0 {
		return
	}
	b := dst.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	if w <= 0 || h <= 0 {
		return
	}
	texW, texH := entry.Size()
	p.project(w, h, yaw, pitch, fovDeg, texW, texH, alpha)

	op := &ebiten.DrawTrianglesOptions{
		ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
		Filter:         ebiten.FilterLinear,
		Address:        ebiten.AddressRepeat,
		DisableMipmaps: true,
	}
	dst.DrawTriangles(p.verts, p.inds, entry.GPU(), op)
}
