package rezeos

import (
	"math"
	"math/rand/v2"
	"time"
)

// TrailConfig controls pointer trail dots.
type TrailConfig struct {
	// Speed is the range of each velocity component, drawn independently.
	Speed Range `yaml:"speed"`
	// Radius is the fixed-at-birth dot radius.
	Radius Range `yaml:"radius"`
	// Decay is the life lost per tick.
	Decay float64 `yaml:"decay"`
	// Normal and Combat are the dot colors for each mode.
	Normal Color `yaml:"normal"`
	Combat Color `yaml:"combat"`
}

// ExplosionConfig controls firework sparks.
type ExplosionConfig struct {
	// Palette is sampled uniformly per spark.
	Palette []Color `yaml:"palette"`
	// Speed is the range of initial speeds in pixels per tick.
	Speed Range `yaml:"speed"`
	// Radius is the fixed-at-birth spark radius.
	Radius Range `yaml:"radius"`
	// Decay is the range of life lost per tick.
	Decay Range `yaml:"decay"`
	// Friction multiplies both velocity components every tick.
	Friction float64 `yaml:"friction"`
	// Gravity is added to vy every tick, after friction.
	Gravity float64 `yaml:"gravity"`
	// Glow is the halo radius drawn around each spark.
	Glow float64 `yaml:"glow"`
}

// ShockwaveConfig controls the ring emitted with every burst.
type ShockwaveConfig struct {
	StartRadius float64 `yaml:"start_radius"`
	// Growth is added to the radius every tick.
	Growth float64 `yaml:"growth"`
	// Cap is the range the expiry radius is drawn from at birth.
	Cap         Range   `yaml:"cap"`
	Decay       float64 `yaml:"decay"`
	StrokeWidth float64 `yaml:"stroke_width"`
	Color       Color   `yaml:"color"`
}

// ParticleConfig controls how particles are spawned and behave.
type ParticleConfig struct {
	// BurstCount is the number of sparks per SpawnBurst.
	BurstCount int `yaml:"burst_count"`
	// TrailChance is the probability that PointerMoved spawns a trail dot.
	TrailChance float64 `yaml:"trail_chance"`
	// MaxParticles caps the live set. New particles are silently dropped
	// when full. Zero means unbounded.
	MaxParticles int `yaml:"max_particles"`

	Trail     TrailConfig     `yaml:"trail"`
	Explosion ExplosionConfig `yaml:"explosion"`
	Shockwave ShockwaveConfig `yaml:"shockwave"`
}

// FireworkPalette is the default five-color spark palette.
var FireworkPalette = []Color{
	MustParseColor("#ff4d4d"),
	MustParseColor("#a64dff"),
	MustParseColor("#4dffdb"),
	MustParseColor("#ffff66"),
	MustParseColor("#ffffff"),
}

// DefaultParticleConfig returns the stock fireworks tuning.
func DefaultParticleConfig() ParticleConfig {
	return ParticleConfig{
		BurstCount:  150,
		TrailChance: 0.2,
		Trail: TrailConfig{
			Speed:  Range{-1, 1},
			Radius: Range{1, 4},
			Decay:  0.02,
			Normal: MustParseColor("#d4a3ff80"),
			Combat: MustParseColor("#ff323280"),
		},
		Explosion: ExplosionConfig{
			Palette:  append([]Color(nil), FireworkPalette...),
			Speed:    Range{2, 14},
			Radius:   Range{2, 6},
			Decay:    Range{0.005, 0.010},
			Friction: 0.96,
			Gravity:  0.05,
			Glow:     15,
		},
		Shockwave: ShockwaveConfig{
			StartRadius: 1,
			Growth:      15,
			Cap:         Range{200, 300},
			Decay:       0.05,
			StrokeWidth: 5,
			Color:       ColorWhite,
		},
	}
}

// Flasher is the full-screen flash collaborator triggered by every burst.
type Flasher interface {
	Flash()
}

// ParticleView is the read-only render state of one live particle.
type ParticleView struct {
	Kind    Kind
	X, Y    float64
	Radius  float64
	Color   Color // base color, alpha not yet scaled by Opacity
	Opacity float64
	Life    float64
}

// particle is one live simulated shape. step advances one tick and reports
// whether the particle is still alive.
type particle interface {
	step() bool
	draw(s Surface)
	view() ParticleView
}

type trail struct {
	x, y, vx, vy float64
	life, decay  float64
	radius       float64
	color        Color
}

func (p *trail) step() bool {
	p.x += p.vx
	p.y += p.vy
	p.life -= p.decay
	return p.life > 0
}

func (p *trail) draw(s Surface) {
	s.FillCircle(p.x, p.y, p.radius, p.color.WithAlpha(p.life), 0)
}

func (p *trail) view() ParticleView {
	return ParticleView{KindTrail, p.x, p.y, p.radius, p.color, p.life, p.life}
}

type explosion struct {
	x, y, vx, vy      float64
	life, decay       float64
	radius            float64
	friction, gravity float64
	glow              float64
	color             Color
}

func (p *explosion) step() bool {
	p.x += p.vx
	p.y += p.vy
	p.life -= p.decay
	p.vx *= p.friction
	p.vy *= p.friction
	p.vy += p.gravity
	return p.life > 0
}

func (p *explosion) draw(s Surface) {
	s.FillCircle(p.x, p.y, p.radius, p.color.WithAlpha(p.life), p.glow)
}

func (p *explosion) view() ParticleView {
	return ParticleView{KindExplosion, p.x, p.y, p.radius, p.color, p.life, p.life}
}

type shockwave struct {
	x, y        float64
	life, decay float64
	radius      float64
	growth, cap float64
	width       float64
	color       Color
}

func (p *shockwave) step() bool {
	p.life -= p.decay
	p.radius += p.growth
	if p.radius > p.cap {
		p.life = 0
	}
	return p.life > 0
}

func (p *shockwave) draw(s Surface) {
	s.StrokeCircle(p.x, p.y, p.radius, p.width, p.color.WithAlpha(p.life))
}

func (p *shockwave) view() ParticleView {
	return ParticleView{KindShockwave, p.x, p.y, p.radius, p.color, p.life, p.life}
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithRand sets the random source used for every spawn.
func WithRand(rng *rand.Rand) EngineOption {
	return func(e *Engine) { e.rng = rng }
}

// WithFlasher sets the collaborator flashed by SpawnBurst.
func WithFlasher(f Flasher) EngineOption {
	return func(e *Engine) { e.flash = f }
}

// Engine owns the live particle set and renders it to a transparent Surface
// once per Tick. Particles are kept and drawn in spawn order.
//
// An Engine created with a nil Surface never spawns or draws anything; all
// methods remain safe to call.
type Engine struct {
	cfg     ParticleConfig
	surface Surface
	flash   Flasher
	rng     *rand.Rand
	live    []particle
	stopped bool
}

// NewEngine creates an engine drawing onto surface.
func NewEngine(cfg ParticleConfig, surface Surface, opts ...EngineOption) *Engine {
	e := &Engine{
		cfg:     cfg,
		surface: surface,
		live:    make([]particle, 0, max(cfg.BurstCount+1, 64)),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		seed := uint64(time.Now().UnixNano())
		e.rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return e
}

// Config returns a pointer to the engine's config for live tuning.
func (e *Engine) Config() *ParticleConfig {
	return &e.cfg
}

// Surface returns the drawing surface, which may be nil.
func (e *Engine) Surface() Surface {
	return e.surface
}

// Len returns the number of live particles.
func (e *Engine) Len() int {
	return len(e.live)
}

// Count returns the number of live particles of kind k.
func (e *Engine) Count(k Kind) int {
	n := 0
	for _, p := range e.live {
		if p.view().Kind == k {
			n++
		}
	}
	return n
}

// AppendViews appends the render state of every live particle to dst in
// draw order and returns the extended slice.
func (e *Engine) AppendViews(dst []ParticleView) []ParticleView {
	for _, p := range e.live {
		dst = append(dst, p.view())
	}
	return dst
}

// Running reports whether the frame loop is still live.
func (e *Engine) Running() bool {
	return !e.stopped
}

// Stop ends the frame loop: all particles are dropped and every later call
// to Tick or a spawn method is a no-op.
func (e *Engine) Stop() {
	e.stopped = true
	e.Reset()
}

// Reset kills all live particles without stopping the engine.
func (e *Engine) Reset() {
	clear(e.live)
	e.live = e.live[:0]
}

func (e *Engine) canSpawn() bool {
	return e.surface != nil && !e.stopped
}

func (e *Engine) add(p particle) {
	if e.cfg.MaxParticles > 0 && len(e.live) >= e.cfg.MaxParticles {
		return
	}
	e.live = append(e.live, p)
}

// PointerMoved is the throttled pointer feed: it spawns a trail dot with
// probability TrailChance.
func (e *Engine) PointerMoved(x, y float64, mode Mode) {
	if !e.canSpawn() {
		return
	}
	if e.rng.Float64() < e.cfg.TrailChance {
		e.SpawnTrail(x, y, mode)
	}
}

// SpawnTrail appends one trail dot at (x, y). Its color is fixed by mode.
func (e *Engine) SpawnTrail(x, y float64, mode Mode) {
	if !e.canSpawn() {
		return
	}
	c := &e.cfg.Trail
	col := c.Normal
	if mode == ModeCombat {
		col = c.Combat
	}
	e.add(&trail{
		x: x, y: y,
		vx:     c.Speed.Rand(e.rng),
		vy:     c.Speed.Rand(e.rng),
		life:   1,
		decay:  c.Decay,
		radius: c.Radius.Rand(e.rng),
		color:  col,
	})
}

// SpawnBurst detonates at (x, y): BurstCount sparks plus one shockwave,
// then flashes the overlay. The flash fires even without a surface.
func (e *Engine) SpawnBurst(x, y float64) {
	if e.stopped {
		return
	}
	if e.surface != nil {
		ec := &e.cfg.Explosion
		for range e.cfg.BurstCount {
			angle := e.rng.Float64() * 2 * math.Pi
			speed := ec.Speed.Rand(e.rng)
			col := ColorWhite
			if len(ec.Palette) > 0 {
				col = ec.Palette[e.rng.IntN(len(ec.Palette))]
			}
			e.add(&explosion{
				x: x, y: y,
				vx:       math.Cos(angle) * speed,
				vy:       math.Sin(angle) * speed,
				life:     1,
				decay:    ec.Decay.Rand(e.rng),
				radius:   ec.Radius.Rand(e.rng),
				friction: ec.Friction,
				gravity:  ec.Gravity,
				glow:     ec.Glow,
				color:    col,
			})
		}
		sc := &e.cfg.Shockwave
		e.add(&shockwave{
			x: x, y: y,
			life:   1,
			decay:  sc.Decay,
			radius: sc.StartRadius,
			growth: sc.Growth,
			cap:    sc.Cap.Rand(e.rng),
			width:  sc.StrokeWidth,
			color:  sc.Color,
		})
	}
	if e.flash != nil {
		e.flash.Flash()
	}
}

// Resize resets the surface's pixel dimensions. Negative values are clamped
// to zero.
func (e *Engine) Resize(width, height int) {
	if e.surface == nil {
		return
	}
	e.surface.Resize(max(width, 0), max(height, 0))
}

// Tick advances every particle by one step, culls the expired ones and
// repaints the surface. Work is proportional to the live count; it never
// blocks.
func (e *Engine) Tick() {
	if e.surface == nil || e.stopped {
		return
	}
	e.surface.Clear()

	n := 0
	for _, p := range e.live {
		if !p.step() {
			continue
		}
		p.draw(e.surface)
		e.live[n] = p
		n++
	}
	clear(e.live[n:])
	e.live = e.live[:n]
}
