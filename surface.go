package rezeos

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Surface is the drawing port the particle engine renders into. It must be
// transparent after Clear so whatever sits underneath stays visible.
type Surface interface {
	// Clear resets every pixel to fully transparent.
	Clear()
	// Resize replaces the pixel dimensions. Contents are discarded.
	Resize(width, height int)
	// Size returns the current pixel dimensions.
	Size() (width, height int)
	// FillCircle draws a filled disc. glow > 0 adds a soft halo of that
	// radius in the same color.
	FillCircle(x, y, r float64, c Color, glow float64)
	// StrokeCircle draws a circle outline of the given stroke width.
	StrokeCircle(x, y, r, width float64, c Color)
}

// glowLayers is the number of halo rings used to fake a blurred glow.
const glowLayers = 3

// ImageSurface renders onto an offscreen ebiten image that the host
// composites over its background each frame.
type ImageSurface struct {
	img  *ebiten.Image
	w, h int
}

// NewImageSurface allocates an ImageSurface of the given size. Zero or
// negative dimensions produce an empty surface that ignores draws.
func NewImageSurface(width, height int) *ImageSurface {
	s := &ImageSurface{}
	s.Resize(width, height)
	return s
}

// Image returns the backing image, or nil while the surface is empty.
func (s *ImageSurface) Image() *ebiten.Image {
	return s.img
}

// Size returns the current pixel dimensions.
func (s *ImageSurface) Size() (int, int) {
	return s.w, s.h
}

// Resize reallocates the backing image when the dimensions change.
func (s *ImageSurface) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == s.w && height == s.h {
		return
	}
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
	s.w, s.h = width, height
	if width > 0 && height > 0 {
		s.img = ebiten.NewImage(width, height)
	}
}

// Clear resets the surface to transparent.
func (s *ImageSurface) Clear() {
	if s.img != nil {
		s.img.Clear()
	}
}

// FillCircle draws an anti-aliased disc, with halo rings when glow > 0.
func (s *ImageSurface) FillCircle(x, y, r float64, c Color, glow float64) {
	if s.img == nil || r <= 0 || c.A <= 0 {
		return
	}
	if glow > 0 {
		for i := glowLayers; i >= 1; i-- {
			gr := r + glow*float64(i)/glowLayers
			gc := c.WithAlpha(0.12 * float64(glowLayers-i+1))
			vector.DrawFilledCircle(s.img, float32(x), float32(y), float32(gr), gc.toRGBA(), true)
		}
	}
	vector.DrawFilledCircle(s.img, float32(x), float32(y), float32(r), c.toRGBA(), true)
}

// StrokeCircle draws an anti-aliased ring.
func (s *ImageSurface) StrokeCircle(x, y, r, width float64, c Color) {
	if s.img == nil || r <= 0 || c.A <= 0 {
		return
	}
	vector.StrokeCircle(s.img, float32(x), float32(y), float32(r), float32(width), c.toRGBA(), true)
}
