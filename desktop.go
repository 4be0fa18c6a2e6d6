package rezeos

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/rezeos/sfx"
	"golang.org/x/image/font/gofont/goregular"
)

// Sounder plays interface sound cues. sfx.Speaker and sfx.Nop implement it.
type Sounder interface {
	Play(sfx.Cue)
}

const (
	// quoteBandY is the vertical centre of the quote band as a fraction of
	// the screen height.
	quoteBandY = 0.8
	pinMargin  = 40.0
	pinRadius  = 14.0

	statusNormal = "SAFETY PIN: SECURE"
	statusCombat = "COMBAT READY"
)

// Desktop is the ebiten.Game that hosts the particle engine, the decode-text
// presenter and the quote rotator. It turns window input into engine calls
// and composites every layer each frame.
type Desktop struct {
	cfg   *Config
	log   *slog.Logger
	rng   *rand.Rand
	clock func() time.Time
	sound Sounder

	tl        *Timeline
	surface   Surface
	engine    *Engine
	overlay   *Overlay
	presenter *Presenter
	rotator   *Rotator
	face      *text.GoTextFace
	small     *text.GoTextFace

	mode          Mode
	width, height int
	ptr           pointerState
	closed        bool
	live          bool

	injectQueue     []syntheticEvent
	runner          *TestRunner
	exitAfterScript bool
	screenshotQueue []string

	debug   bool
	frame   int64
	samples []float64
	stats   *StatsWriter
}

// DesktopOption configures a Desktop.
type DesktopOption func(*Desktop)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) DesktopOption {
	return func(d *Desktop) { d.log = l }
}

// WithSounder sets the sound output. The default is silent.
func WithSounder(s Sounder) DesktopOption {
	return func(d *Desktop) { d.sound = s }
}

// WithSurface replaces the offscreen particle layer. Only an *ImageSurface
// is composited on screen; other surfaces are useful headless.
func WithSurface(s Surface) DesktopOption {
	return func(d *Desktop) { d.surface = s }
}

// WithClock sets the wall clock used for time-of-day quote filtering.
func WithClock(clock func() time.Time) DesktopOption {
	return func(d *Desktop) { d.clock = clock }
}

// WithSeed makes particle spawns and quote choice reproducible.
func WithSeed(seed uint64) DesktopOption {
	return func(d *Desktop) { d.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// NewDesktop wires every component from cfg. A nil cfg uses the embedded
// defaults. The rotator is started and the first quote is selected
// immediately.
func NewDesktop(cfg *Config, opts ...DesktopOption) (*Desktop, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	d := &Desktop{
		cfg:    cfg,
		width:  cfg.Screen.Width,
		height: cfg.Screen.Height,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.log == nil {
		d.log = slog.Default()
	}
	if d.rng == nil {
		seed := uint64(time.Now().UnixNano())
		d.rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	if d.clock == nil {
		d.clock = time.Now
	}
	if d.sound == nil {
		d.sound = sfx.Nop{}
	}
	if d.surface == nil {
		d.surface = NewImageSurface(d.width, d.height)
	} else {
		d.surface.Resize(d.width, d.height)
	}

	quotes := DefaultQuotes()
	if cfg.Quotes != "" {
		q, err := LoadQuotes(cfg.Quotes)
		if err != nil {
			return nil, err
		}
		quotes = q
	}

	face, err := loadFace(cfg.Font)
	if err != nil {
		return nil, err
	}
	d.face = face
	d.small = &text.GoTextFace{Source: face.Source, Size: face.Size * 0.6}

	if cfg.StatsPath != "" {
		sw, err := CreateStatsFile(cfg.StatsPath)
		if err != nil {
			return nil, err
		}
		d.stats = sw
	}

	d.tl = NewTimeline()
	d.overlay = NewOverlay(d.tl, cfg.Overlay)
	d.engine = NewEngine(cfg.Particles, d.surface, WithRand(d.rng), WithFlasher(d.overlay))
	d.presenter = NewPresenter(d.tl, cfg.Decode, nil)
	d.rotator = NewRotator(d.tl, d.presenter, quotes, d, cfg.Rotator)
	d.rotator.Clock = d.clock
	d.rotator.Rand = d.rng
	d.rotator.Logger = d.log

	d.SetDebugMode(cfg.Debug)
	d.rotator.Start()
	d.rotator.Fire()

	d.log.Info("desktop ready",
		"width", d.width,
		"height", d.height,
		"quotes", len(quotes),
		"audio", cfg.Audio.Enabled,
	)
	return d, nil
}

// loadFace reads the configured TTF/OTF font, falling back to Go Regular.
func loadFace(fc FontConfig) (*text.GoTextFace, error) {
	data := goregular.TTF
	if fc.Path != "" {
		b, err := os.ReadFile(fc.Path)
		if err != nil {
			return nil, fmt.Errorf("reading font: %w", err)
		}
		data = b
	}
	source, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	return &text.GoTextFace{Source: source, Size: fc.Size}, nil
}

// Mode returns the current application mode.
func (d *Desktop) Mode() Mode { return d.mode }

// Engine returns the particle engine.
func (d *Desktop) Engine() *Engine { return d.engine }

// Presenter returns the decode-text presenter.
func (d *Desktop) Presenter() *Presenter { return d.presenter }

// Rotator returns the quote rotator.
func (d *Desktop) Rotator() *Rotator { return d.rotator }

// Overlay returns the flash and alert overlay.
func (d *Desktop) Overlay() *Overlay { return d.overlay }

// Timeline returns the virtual clock driving all deferred work.
func (d *Desktop) Timeline() *Timeline { return d.tl }

// Size returns the current screen size in pixels.
func (d *Desktop) Size() (width, height int) { return d.width, d.height }

// ToggleMode flips between normal and combat mode. Entering combat plays the
// boom cue, raises the red alert and detonates a burst at the screen centre;
// leaving it plays the click cue. Either way a fresh quote is selected.
func (d *Desktop) ToggleMode() {
	if d.closed {
		return
	}
	d.mode = d.mode.Toggle()
	d.log.Info("mode changed", "mode", d.mode)
	if d.mode == ModeCombat {
		d.sound.Play(sfx.CueBoom)
		d.overlay.Alert()
		d.engine.SpawnBurst(float64(d.width)/2, float64(d.height)/2)
	} else {
		d.sound.Play(sfx.CueClick)
	}
	d.rotator.Fire()
}

// Update advances one frame: scripted steps, input, the virtual clock and
// the particle simulation.
func (d *Desktop) Update() error {
	if d.closed {
		return ebiten.Termination
	}
	start := time.Now()

	if d.runner != nil {
		if d.exitAfterScript && d.runner.Done() {
			return ebiten.Termination
		}
		d.runner.step(d)
	}
	d.processInput()
	d.tl.Advance(frameDuration())
	d.engine.Tick()

	d.recordFrame(time.Since(start))
	return nil
}

// Draw composites the background, particle layer, quote text, mode pin,
// overlay and debug info.
func (d *Desktop) Draw(screen *ebiten.Image) {
	screen.Fill(d.cfg.Background.toRGBA())

	dx, dy := d.overlay.ShakeOffset(d.rng)
	if s, ok := d.surface.(*ImageSurface); ok && s.Image() != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(dx, dy)
		screen.DrawImage(s.Image(), op)
	}
	d.drawQuote(screen, dx, dy)
	d.drawPin(screen, dx, dy)
	d.overlay.Draw(screen)

	if d.debug {
		d.drawDebug(screen)
	}
	d.flushScreenshots(screen)
}

// Layout keeps the logical screen equal to the window and resizes the
// particle layer when the window changes.
func (d *Desktop) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != d.width || outsideHeight != d.height {
		d.resize(outsideWidth, outsideHeight)
	}
	return max(outsideWidth, 1), max(outsideHeight, 1)
}

func (d *Desktop) resize(width, height int) {
	d.width, d.height = max(width, 0), max(height, 0)
	d.engine.Resize(d.width, d.height)
	d.log.Debug("resized", "width", d.width, "height", d.height)
}

func (d *Desktop) drawQuote(screen *ebiten.Image, dx, dy float64) {
	snap := d.presenter.Snapshot()
	if snap.Text == "" {
		return
	}
	band := d.quoteBand()
	op := &text.DrawOptions{}
	op.GeoM.Translate(band.X+band.Width/2+dx, band.Y+band.Height/2+dy)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	a := snap.Color.A * snap.Opacity
	op.ColorScale.Scale(float32(snap.Color.R*a), float32(snap.Color.G*a), float32(snap.Color.B*a), float32(a))
	text.Draw(screen, snap.Text, d.face, op)
}

func (d *Desktop) drawPin(screen *ebiten.Image, dx, dy float64) {
	x, y := d.pinCenter()
	accent := d.rotator.Accent(d.mode)
	fill := accent.WithAlpha(0.35)
	if d.ptr.hover {
		fill = accent.WithAlpha(0.6)
	}
	px, py := float32(x+dx), float32(y+dy)
	vector.DrawFilledCircle(screen, px, py, pinRadius, fill.toRGBA(), true)
	vector.StrokeCircle(screen, px, py, pinRadius, 2, accent.toRGBA(), true)

	status := statusNormal
	if d.mode == ModeCombat {
		status = statusCombat
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x-pinRadius-12+dx, y+dy)
	op.PrimaryAlign = text.AlignEnd
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(accent.toRGBA())
	text.Draw(screen, status, d.small, op)
}

// Close stops the engine and the rotator, flushes pending stats and releases
// audio. The next Update ends the game loop.
func (d *Desktop) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	d.rotator.Stop()
	d.presenter.Stop()
	d.engine.Stop()
	if c, ok := d.sound.(interface{ Close() }); ok {
		c.Close()
	}

	var errs []error
	if len(d.samples) > 0 {
		errs = append(errs, d.flushStats())
	}
	errs = append(errs, d.stats.Close())
	d.log.Info("desktop closed", "frames", d.frame)
	return errors.Join(errs...)
}

func frameDuration() time.Duration {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return time.Second / time.Duration(tps)
}

// RunConfig holds options for Run.
type RunConfig struct {
	// Config is the desktop configuration; nil uses the embedded defaults.
	Config *Config
	// Title, Width and Height override the configured window settings when
	// non-zero.
	Title         string
	Width, Height int
	// ShowFPS enables debug mode: the stats overlay and frame logging.
	ShowFPS bool
	// Script is the path of a JSON test script to replay.
	Script string
	// ExitAfterScript ends the loop once the script has finished.
	ExitAfterScript bool
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Run builds a Desktop, opens the window and blocks until it is closed.
// Audio falls back to silence when the output device cannot be opened.
func Run(rc RunConfig) error {
	cfg := rc.Config
	if cfg == nil {
		cfg = DefaultConfig()
	}
	log := rc.Logger
	if log == nil {
		log = slog.Default()
	}

	var sound Sounder = sfx.Nop{}
	if cfg.Audio.Enabled {
		sp, err := sfx.NewSpeaker(cfg.Audio)
		if err != nil {
			log.Warn("audio disabled", "err", err)
		} else {
			sound = sp
		}
	}

	d, err := NewDesktop(cfg, WithLogger(log), WithSounder(sound))
	if err != nil {
		return err
	}
	defer d.Close()

	if rc.ShowFPS {
		d.SetDebugMode(true)
	}
	if rc.Script != "" {
		data, err := os.ReadFile(rc.Script)
		if err != nil {
			return fmt.Errorf("reading test script: %w", err)
		}
		runner, err := LoadTestScript(data)
		if err != nil {
			return err
		}
		d.SetTestRunner(runner)
		d.exitAfterScript = rc.ExitAfterScript
	}

	ebiten.SetWindowTitle(cmp.Or(rc.Title, cfg.Screen.Title))
	ebiten.SetWindowSize(cmp.Or(rc.Width, cfg.Screen.Width), cmp.Or(rc.Height, cfg.Screen.Height))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	d.live = true

	if err := ebiten.RunGame(d); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("running desktop: %w", err)
	}
	return nil
}
