package rezeos

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
)

// CanvasSurface is a software-rasterised Surface backed by a gg context.
// It needs no GPU or window, which makes it the surface of choice for
// headless runs, golden images and tests.
type CanvasSurface struct {
	dc   *gg.Context
	w, h int
}

// NewCanvasSurface allocates a transparent canvas of the given size.
func NewCanvasSurface(width, height int) *CanvasSurface {
	s := &CanvasSurface{}
	s.Resize(width, height)
	return s
}

// Size returns the current pixel dimensions.
func (s *CanvasSurface) Size() (int, int) {
	return s.w, s.h
}

// Resize replaces the canvas. Negative dimensions are clamped to zero.
func (s *CanvasSurface) Resize(width, height int) {
	s.w, s.h = max(width, 0), max(height, 0)
	if s.w == 0 || s.h == 0 {
		s.dc = nil
		return
	}
	s.dc = gg.NewContext(s.w, s.h)
}

// Clear resets every pixel to transparent.
func (s *CanvasSurface) Clear() {
	if s.dc == nil {
		return
	}
	s.dc.SetRGBA(0, 0, 0, 0)
	s.dc.Clear()
}

// FillCircle draws a filled disc; glow is approximated with translucent
// concentric discs.
func (s *CanvasSurface) FillCircle(x, y, r float64, c Color, glow float64) {
	if s.dc == nil || r <= 0 || c.A <= 0 {
		return
	}
	if glow > 0 {
		for i := glowLayers; i >= 1; i-- {
			gc := c.WithAlpha(0.12 * float64(glowLayers-i+1))
			s.dc.DrawCircle(x, y, r+glow*float64(i)/glowLayers)
			s.dc.SetRGBA(gc.R, gc.G, gc.B, gc.A)
			s.dc.Fill()
		}
	}
	s.dc.DrawCircle(x, y, r)
	s.dc.SetRGBA(c.R, c.G, c.B, c.A)
	s.dc.Fill()
}

// StrokeCircle draws a ring of the given width.
func (s *CanvasSurface) StrokeCircle(x, y, r, width float64, c Color) {
	if s.dc == nil || r <= 0 || c.A <= 0 {
		return
	}
	s.dc.DrawCircle(x, y, r)
	s.dc.SetLineWidth(width)
	s.dc.SetRGBA(c.R, c.G, c.B, c.A)
	s.dc.Stroke()
}

// Image returns the rendered pixels, or nil for an empty canvas.
func (s *CanvasSurface) Image() image.Image {
	if s.dc == nil {
		return nil
	}
	return s.dc.Image()
}

// SavePNG writes the canvas to path.
func (s *CanvasSurface) SavePNG(path string) error {
	if s.dc == nil {
		return fmt.Errorf("save %s: empty canvas", path)
	}
	if err := s.dc.SavePNG(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
