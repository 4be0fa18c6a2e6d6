package rezeos

import (
	"testing"
	"time"
)

func TestOverlayFlash(t *testing.T) {
	tl := NewTimeline()
	o := NewOverlay(tl, DefaultOverlayConfig())
	assertNear(t, "idle", o.FlashOpacity(), 0)

	o.Flash()
	assertNear(t, "peak", o.FlashOpacity(), 0.6)
	tl.Advance(149 * time.Millisecond)
	assertNear(t, "held", o.FlashOpacity(), 0.6)

	tl.Advance(1 * time.Millisecond)
	tl.Advance(50 * time.Millisecond)
	if v := o.FlashOpacity(); v <= 0 || v >= 0.6 {
		t.Errorf("mid-fade opacity = %v, want in (0, 0.6)", v)
	}
	tl.Advance(60 * time.Millisecond)
	assertNear(t, "faded", o.FlashOpacity(), 0)
	if o.Flashes() != 1 {
		t.Errorf("Flashes = %d, want 1", o.Flashes())
	}
}

func TestOverlayFlashRestarts(t *testing.T) {
	tl := NewTimeline()
	o := NewOverlay(tl, DefaultOverlayConfig())
	o.Flash()
	tl.Advance(100 * time.Millisecond)
	o.Flash()
	tl.Advance(100 * time.Millisecond)
	assertNear(t, "still held", o.FlashOpacity(), 0.6)
	tl.Advance(time.Second)
	assertNear(t, "faded", o.FlashOpacity(), 0)
	if tl.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", tl.Pending())
	}
}

func TestOverlayFlashWithoutFade(t *testing.T) {
	cfg := DefaultOverlayConfig()
	cfg.FlashFade = 0
	tl := NewTimeline()
	o := NewOverlay(tl, cfg)
	o.Flash()
	tl.Advance(150 * time.Millisecond)
	assertNear(t, "snapped", o.FlashOpacity(), 0)
}

func TestOverlayAlertAndShake(t *testing.T) {
	tl := NewTimeline()
	o := NewOverlay(tl, DefaultOverlayConfig())
	rng := testRand()

	if dx, dy := o.ShakeOffset(rng); dx != 0 || dy != 0 {
		t.Error("shake outside an alert")
	}
	o.Alert()
	if !o.Alerting() {
		t.Fatal("not alerting after Alert")
	}
	for range 100 {
		dx, dy := o.ShakeOffset(rng)
		if dx < -8 || dx > 8 || dy < -8 || dy > 8 {
			t.Fatalf("shake (%v, %v) exceeds magnitude 8", dx, dy)
		}
	}
	tl.Advance(599 * time.Millisecond)
	if !o.Alerting() {
		t.Error("alert ended early")
	}
	tl.Advance(1 * time.Millisecond)
	if o.Alerting() {
		t.Error("alert still active after 600ms")
	}
}
