package rezeos

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func alphaAt(t *testing.T, s *CanvasSurface, x, y int) uint32 {
	t.Helper()
	img := s.Image()
	if img == nil {
		t.Fatal("canvas has no image")
	}
	_, _, _, a := img.At(x, y).RGBA()
	return a
}

func TestCanvasSurfaceClearIsTransparent(t *testing.T) {
	s := NewCanvasSurface(64, 64)
	s.FillCircle(32, 32, 10, ColorWhite, 0)
	if alphaAt(t, s, 32, 32) == 0 {
		t.Fatal("disc not drawn")
	}
	s.Clear()
	for _, p := range [][2]int{{32, 32}, {0, 0}, {63, 63}} {
		if a := alphaAt(t, s, p[0], p[1]); a != 0 {
			t.Errorf("pixel %v alpha = %d after Clear, want 0", p, a)
		}
	}
}

func TestCanvasSurfaceGlowAndStroke(t *testing.T) {
	s := NewCanvasSurface(100, 100)
	s.FillCircle(50, 50, 2, ColorWhite, 15)
	if alphaAt(t, s, 60, 50) == 0 {
		t.Error("glow halo not drawn around the disc")
	}

	s.Clear()
	s.StrokeCircle(50, 50, 30, 5, ColorWhite)
	if alphaAt(t, s, 80, 50) == 0 {
		t.Error("ring not drawn at its radius")
	}
	if alphaAt(t, s, 50, 50) != 0 {
		t.Error("ring should leave its centre transparent")
	}
}

func TestCanvasSurfaceResize(t *testing.T) {
	s := NewCanvasSurface(10, 10)
	s.Resize(-3, 20)
	if w, h := s.Size(); w != 0 || h != 20 {
		t.Errorf("Size = %dx%d, want 0x20", w, h)
	}
	if s.Image() != nil {
		t.Error("empty canvas should have no image")
	}
	// Draws on an empty canvas are ignored.
	s.Clear()
	s.FillCircle(1, 1, 1, ColorWhite, 1)
	s.StrokeCircle(1, 1, 1, 1, ColorWhite)
	if err := s.SavePNG(filepath.Join(t.TempDir(), "x.png")); err == nil {
		t.Error("SavePNG on an empty canvas succeeded")
	}
}

func TestEngineOnCanvasSurface(t *testing.T) {
	s := NewCanvasSurface(200, 200)
	e := NewEngine(DefaultParticleConfig(), s, WithRand(testRand()))
	e.SpawnBurst(100, 100)
	e.Tick()
	if alphaAt(t, s, 100, 100) == 0 {
		t.Error("burst centre is transparent after one tick")
	}

	path := filepath.Join(t.TempDir(), "burst.png")
	if err := s.SavePNG(path); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 200 {
		t.Errorf("png bounds = %v, want 200x200", b)
	}

	for range 250 {
		e.Tick()
	}
	if a := alphaAt(t, s, 100, 100); a != 0 {
		t.Errorf("centre alpha = %d once every particle expired, want 0", a)
	}
}
