package rezeos

import (
	"time"

	"github.com/tanema/gween/ease"
)

// DecodeState is a state of the decode-text presenter.
type DecodeState uint8

const (
	DecodeIdle      DecodeState = iota // waiting for Trigger
	DecodeTyping                       // appending cipher runes one by one
	DecodeHolding                      // pause after the cipher is complete
	DecodeRevealing                    // plaintext shown, opacity dipping back in
)

func (s DecodeState) String() string {
	switch s {
	case DecodeIdle:
		return "idle"
	case DecodeTyping:
		return "typing"
	case DecodeHolding:
		return "holding"
	case DecodeRevealing:
		return "revealing"
	}
	return "unknown"
}

// DecodeConfig holds the presenter's timings and neutral color.
type DecodeConfig struct {
	// CharInterval separates consecutive cipher runes.
	CharInterval time.Duration `yaml:"char_interval"`
	// Hold is the pause between the last cipher rune and the reveal.
	Hold time.Duration `yaml:"hold"`
	// Dip is how long the opacity takes to climb back to 1 after the swap.
	Dip time.Duration `yaml:"dip"`
	// Settle is measured from the reveal to the return to idle.
	Settle time.Duration `yaml:"settle"`
	// Neutral is the text color once the plaintext is shown.
	Neutral Color `yaml:"neutral"`
}

// DefaultDecodeConfig returns the stock decode timings.
func DefaultDecodeConfig() DecodeConfig {
	return DecodeConfig{
		CharInterval: 50 * time.Millisecond,
		Hold:         800 * time.Millisecond,
		Dip:          100 * time.Millisecond,
		Settle:       200 * time.Millisecond,
		Neutral:      MustParseColor("#ffffffb3"),
	}
}

// DecodeSnapshot is the observable presenter state.
type DecodeSnapshot struct {
	State   DecodeState
	Text    string
	Color   Color
	Opacity float64
}

// Busy reports whether a reveal is in progress.
func (s DecodeSnapshot) Busy() bool {
	return s.State != DecodeIdle
}

// TextSink receives every change to the displayed text.
type TextSink interface {
	ShowText(DecodeSnapshot)
}

// Presenter types out a cipher string, holds, then swaps to the plaintext
// with an opacity dip. It is driven entirely by its Timeline.
//
// Trigger is only accepted while idle. A call that arrives mid-reveal is
// dropped without touching the in-flight timers or the displayed text.
type Presenter struct {
	tl   *Timeline
	cfg  DecodeConfig
	sink TextSink

	state     DecodeState
	cipher    []rune
	typed     int
	plaintext string

	text    string
	color   Color
	opacity float64

	step *Timer
	fade *Timer
}

// NewPresenter creates an idle presenter. sink may be nil.
func NewPresenter(tl *Timeline, cfg DecodeConfig, sink TextSink) *Presenter {
	return &Presenter{
		tl:      tl,
		cfg:     cfg,
		sink:    sink,
		color:   cfg.Neutral,
		opacity: 1,
	}
}

// State returns the current state.
func (p *Presenter) State() DecodeState { return p.state }

// Busy reports whether a reveal is in progress.
func (p *Presenter) Busy() bool { return p.state != DecodeIdle }

// Text returns the displayed text.
func (p *Presenter) Text() string { return p.text }

// Color returns the displayed text color.
func (p *Presenter) Color() Color { return p.color }

// Opacity returns the displayed text opacity in [0, 1].
func (p *Presenter) Opacity() float64 { return p.opacity }

// Snapshot returns the full observable state.
func (p *Presenter) Snapshot() DecodeSnapshot {
	return DecodeSnapshot{State: p.state, Text: p.text, Color: p.color, Opacity: p.opacity}
}

// Trigger starts a decode of cipher into plaintext, typed in accent. It
// returns false, changing nothing, when a reveal is already in progress.
func (p *Presenter) Trigger(cipher, plaintext string, accent Color) bool {
	if p.state != DecodeIdle {
		return false
	}
	p.fade.Stop()
	p.cipher = []rune(cipher)
	p.typed = 0
	p.plaintext = plaintext
	p.text = ""
	p.color = accent
	p.opacity = 1
	p.state = DecodeTyping
	p.notify()
	p.advance()
	return true
}

// Say shows text immediately with the reveal dip, skipping the cipher
// phase. Like Trigger it is ignored while busy.
func (p *Presenter) Say(text string, c Color) bool {
	if p.state != DecodeIdle {
		return false
	}
	p.fade.Stop()
	p.cipher = nil
	p.typed = 0
	p.reveal(text, c)
	return true
}

// Stop cancels any in-flight reveal and returns to idle, leaving the text
// as it is.
func (p *Presenter) Stop() {
	p.step.Stop()
	p.fade.Stop()
	p.step, p.fade = nil, nil
	p.opacity = 1
	p.state = DecodeIdle
	p.notify()
}

// advance is the transition function. Every deferred step lands here.
func (p *Presenter) advance() {
	switch p.state {
	case DecodeTyping:
		if p.typed < len(p.cipher) {
			p.typed++
			p.text = string(p.cipher[:p.typed])
			p.notify()
		}
		if p.typed < len(p.cipher) {
			p.step = p.tl.After(p.cfg.CharInterval, p.advance)
			return
		}
		p.state = DecodeHolding
		p.step = p.tl.After(p.cfg.Hold, p.advance)

	case DecodeHolding:
		p.reveal(p.plaintext, p.cfg.Neutral)

	case DecodeRevealing:
		p.step = nil
		p.state = DecodeIdle
		p.notify()
	}
}

func (p *Presenter) reveal(text string, c Color) {
	p.state = DecodeRevealing
	p.text = text
	p.color = c
	p.fade = p.tl.Tween(0, 1, p.cfg.Dip, ease.OutQuad, func(v float32) {
		p.opacity = float64(v)
		p.notify()
	})
	p.step = p.tl.After(p.cfg.Settle, p.advance)
}

func (p *Presenter) notify() {
	if p.sink != nil {
		p.sink.ShowText(p.Snapshot())
	}
}
