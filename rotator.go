package rezeos

import (
	"log/slog"
	"math/rand/v2"
	"time"
)

// RotatorConfig tunes the periodic quote selection.
type RotatorConfig struct {
	// Interval is the base period between selections.
	Interval time.Duration `yaml:"interval"`
	// Jitter is added to each period, drawn uniformly from [0, Jitter).
	Jitter time.Duration `yaml:"jitter"`
	// NormalAccent and CombatAccent color the cipher while it is typed.
	NormalAccent Color `yaml:"normal_accent"`
	CombatAccent Color `yaml:"combat_accent"`
	// TouchReactions are shown when the quote is clicked.
	TouchReactions []string `yaml:"touch_reactions"`
}

// DefaultRotatorConfig returns the stock rotator tuning.
func DefaultRotatorConfig() RotatorConfig {
	return RotatorConfig{
		Interval:       6 * time.Second,
		Jitter:         time.Second,
		NormalAccent:   MustParseColor("#d4a3ff"),
		CombatAccent:   MustParseColor("#ff3333"),
		TouchReactions: []string{"...何？", "くすぐったい。", "触らないで。", "Hey!"},
	}
}

// ModeSource reports the current application mode.
type ModeSource interface {
	Mode() Mode
}

// Rotator periodically picks a quote for the current mode and hour and
// hands it to a Presenter.
type Rotator struct {
	// Clock supplies the wall time used for the time-of-day filter.
	Clock func() time.Time
	// Rand drives quote choice and interval jitter.
	Rand *rand.Rand
	// Logger receives selection events at debug level.
	Logger *slog.Logger

	tl     *Timeline
	p      *Presenter
	quotes []Quote
	modes  ModeSource
	cfg    RotatorConfig
	timer  *Timer
}

// NewRotator creates a stopped rotator.
func NewRotator(tl *Timeline, p *Presenter, quotes []Quote, modes ModeSource, cfg RotatorConfig) *Rotator {
	return &Rotator{
		Clock:  time.Now,
		Rand:   rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed)),
		Logger: slog.Default(),
		tl:     tl,
		p:      p,
		quotes: quotes,
		modes:  modes,
		cfg:    cfg,
	}
}

// Start schedules Fire every Interval plus jitter. Calling Start on a
// running rotator restarts its period.
func (r *Rotator) Start() {
	r.timer.Stop()
	r.timer = r.tl.EveryFunc(r.period, func() { r.Fire() })
}

// Stop cancels the periodic selection.
func (r *Rotator) Stop() {
	r.timer.Stop()
	r.timer = nil
}

// Running reports whether the periodic selection is scheduled.
func (r *Rotator) Running() bool {
	return r.timer.Active()
}

// Accent returns the cipher color for mode.
func (r *Rotator) Accent(mode Mode) Color {
	if mode == ModeCombat {
		return r.cfg.CombatAccent
	}
	return r.cfg.NormalAccent
}

// Fire selects and triggers one quote now. It reports whether the presenter
// accepted it; an empty selection or a busy presenter yields false.
func (r *Rotator) Fire() bool {
	mode := r.modes.Mode()
	hour := r.Clock().Hour()
	q, ok := Pick(r.quotes, mode, hour, r.Rand)
	if !ok {
		r.Logger.Debug("no eligible quote", "mode", mode, "hour", hour)
		return false
	}
	accepted := r.p.Trigger(q.Cipher, q.Plaintext, r.Accent(mode))
	r.Logger.Debug("quote selected",
		"mode", mode,
		"hour", hour,
		"plaintext", q.Plaintext,
		"accepted", accepted,
	)
	return accepted
}

// Touch shows a random touch reaction if the presenter is idle.
func (r *Rotator) Touch() bool {
	if len(r.cfg.TouchReactions) == 0 {
		return false
	}
	text := r.cfg.TouchReactions[r.Rand.IntN(len(r.cfg.TouchReactions))]
	return r.p.Say(text, r.Accent(r.modes.Mode()))
}

func (r *Rotator) period() time.Duration {
	d := r.cfg.Interval
	if r.cfg.Jitter > 0 {
		d += time.Duration(r.Rand.Int64N(int64(r.cfg.Jitter)))
	}
	return d
}
