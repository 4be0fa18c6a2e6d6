package rezeos

import (
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween/ease"
)

// OverlayConfig tunes the full-screen flash and the red alert.
type OverlayConfig struct {
	// FlashPeak is the opacity the flash jumps to.
	FlashPeak float64 `yaml:"flash_peak"`
	// FlashHold is how long the flash stays at its peak before reverting.
	FlashHold time.Duration `yaml:"flash_hold"`
	// FlashFade is the revert duration; zero snaps back to transparent.
	FlashFade  time.Duration `yaml:"flash_fade"`
	FlashColor Color         `yaml:"flash_color"`

	// AlertDuration is how long the red tint and shake last after a
	// switch into combat mode.
	AlertDuration time.Duration `yaml:"alert_duration"`
	// ShakeMagnitude is the maximum per-axis screen offset in pixels.
	ShakeMagnitude float64 `yaml:"shake_magnitude"`
	AlertColor     Color   `yaml:"alert_color"`
}

// DefaultOverlayConfig returns the stock overlay tuning.
func DefaultOverlayConfig() OverlayConfig {
	return OverlayConfig{
		FlashPeak:      0.6,
		FlashHold:      150 * time.Millisecond,
		FlashFade:      100 * time.Millisecond,
		FlashColor:     ColorWhite,
		AlertDuration:  600 * time.Millisecond,
		ShakeMagnitude: 8,
		AlertColor:     MustParseColor("#ff333340"),
	}
}

// Overlay is the full-screen layer above the particles. It implements
// Flasher.
type Overlay struct {
	tl  *Timeline
	cfg OverlayConfig

	flash    float64
	hold     *Timer
	fade     *Timer
	alert    bool
	alertEnd *Timer
	flashes  int
}

// NewOverlay creates a transparent overlay driven by tl.
func NewOverlay(tl *Timeline, cfg OverlayConfig) *Overlay {
	return &Overlay{tl: tl, cfg: cfg}
}

// Flash pulses the overlay to FlashPeak and schedules the revert. A flash
// arriving mid-pulse restarts it.
func (o *Overlay) Flash() {
	o.hold.Stop()
	o.fade.Stop()
	o.flashes++
	o.flash = o.cfg.FlashPeak
	o.hold = o.tl.After(o.cfg.FlashHold, func() {
		o.fade = o.tl.Tween(float32(o.cfg.FlashPeak), 0, o.cfg.FlashFade, ease.OutQuad, func(v float32) {
			o.flash = max(float64(v), 0)
		})
	})
}

// FlashOpacity returns the current flash opacity.
func (o *Overlay) FlashOpacity() float64 {
	return o.flash
}

// Flashes returns how many flashes have been triggered.
func (o *Overlay) Flashes() int {
	return o.flashes
}

// Alert raises the red tint and screen shake for AlertDuration.
func (o *Overlay) Alert() {
	o.alertEnd.Stop()
	o.alert = true
	o.alertEnd = o.tl.After(o.cfg.AlertDuration, func() { o.alert = false })
}

// Alerting reports whether the red alert is active.
func (o *Overlay) Alerting() bool {
	return o.alert
}

// ShakeOffset returns this frame's screen offset; zero outside an alert.
func (o *Overlay) ShakeOffset(rng *rand.Rand) (dx, dy float64) {
	if !o.alert || o.cfg.ShakeMagnitude <= 0 {
		return 0, 0
	}
	m := o.cfg.ShakeMagnitude
	return (rng.Float64()*2 - 1) * m, (rng.Float64()*2 - 1) * m
}

// Draw blends the alert tint and the flash over dst.
func (o *Overlay) Draw(dst *ebiten.Image) {
	b := dst.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())
	if o.alert {
		vector.DrawFilledRect(dst, 0, 0, w, h, o.cfg.AlertColor.toRGBA(), false)
	}
	if o.flash > 0 {
		vector.DrawFilledRect(dst, 0, 0, w, h, o.cfg.FlashColor.WithAlpha(o.flash).toRGBA(), false)
	}
}
