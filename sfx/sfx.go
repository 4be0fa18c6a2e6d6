// Package sfx synthesises and plays the short interface sound cues: a soft
// blip on hover, a mechanical tick on click and a detonation boom.
//
// Cues are generated from oscillators at play time, so the package ships no
// audio assets. Playback goes through beep's speaker, which must be
// initialised once per process with NewSpeaker.
package sfx

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Cue identifies a sound effect.
type Cue uint8

const (
	CueHover Cue = iota // pointer enters an interactive element
	CueClick            // button press / confirm
	CueBoom             // switch into combat mode
)

func (c Cue) String() string {
	switch c {
	case CueHover:
		return "hover"
	case CueClick:
		return "click"
	case CueBoom:
		return "boom"
	}
	return "unknown"
}

// Config controls synthesis and mixing.
type Config struct {
	Enabled      bool    `yaml:"enabled"`
	SampleRate   int     `yaml:"sample_rate"`
	MasterVolume float64 `yaml:"master_volume"`
	Hover        float64 `yaml:"hover"`
	Click        float64 `yaml:"click"`
	Boom         float64 `yaml:"boom"`
}

// DefaultConfig returns quiet hover, clear click and loud boom levels.
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		SampleRate:   44100,
		MasterVolume: 1,
		Hover:        0.2,
		Click:        0.4,
		Boom:         0.6,
	}
}

func (c Config) volume(cue Cue) float64 {
	var v float64
	switch cue {
	case CueHover:
		v = c.Hover
	case CueClick:
		v = c.Click
	case CueBoom:
		v = c.Boom
	}
	return v * c.MasterVolume
}

// Cue timings.
const (
	hoverDuration = 40 * time.Millisecond
	hoverAttack   = 4 * time.Millisecond
	hoverRelease  = 30 * time.Millisecond

	clickDuration = 30 * time.Millisecond
	clickAttack   = time.Millisecond
	clickRelease  = 20 * time.Millisecond

	boomDuration = 600 * time.Millisecond
	boomAttack   = 5 * time.Millisecond
	boomRelease  = 550 * time.Millisecond
)

// Bank builds streamers for each cue.
type Bank struct {
	cfg  Config
	rate beep.SampleRate
}

// NewBank creates a bank for cfg.
func NewBank(cfg Config) *Bank {
	rate := cfg.SampleRate
	if rate <= 0 {
		rate = 44100
	}
	return &Bank{cfg: cfg, rate: beep.SampleRate(rate)}
}

// SampleRate returns the rate every streamer is generated at.
func (b *Bank) SampleRate() beep.SampleRate {
	return b.rate
}

// Streamer returns a fresh streamer for cue, or nil for an unknown cue.
func (b *Bank) Streamer(cue Cue) beep.Streamer {
	var s beep.Streamer
	switch cue {
	case CueHover:
		osc := NewOscillator(880, hoverDuration, WaveSine, b.rate)
		s = NewEnvelope(osc, hoverDuration, hoverAttack, hoverRelease, b.rate)
	case CueClick:
		osc := NewOscillator(1200, clickDuration, WaveSquare, b.rate)
		s = NewEnvelope(osc, clickDuration, clickAttack, clickRelease, b.rate)
	case CueBoom:
		noise := NewOscillator(0, boomDuration, WaveNoise, b.rate)
		rumble := NewOscillator(55, boomDuration, WaveSine, b.rate)
		s = beep.Mix(
			newVolume(NewEnvelope(noise, boomDuration, boomAttack, boomRelease, b.rate), 0.6),
			newVolume(NewEnvelope(rumble, boomDuration, boomAttack, boomRelease, b.rate), 0.4),
		)
	default:
		return nil
	}
	return newVolume(s, b.cfg.volume(cue))
}

// Nop discards every cue.
type Nop struct{}

// Play does nothing.
func (Nop) Play(Cue) {}

// Speaker plays cues on the system audio device. Each Play restarts the cue
// from the beginning, overlapping any copy still sounding.
type Speaker struct {
	bank  *Bank
	mixer *beep.Mixer
}

var speakerOnce sync.Once

// NewSpeaker initialises the audio device and starts the mixer.
func NewSpeaker(cfg Config) (*Speaker, error) {
	bank := NewBank(cfg)
	s := &Speaker{bank: bank, mixer: &beep.Mixer{}}

	var err error
	speakerOnce.Do(func() {
		err = speaker.Init(bank.rate, bank.rate.N(50*time.Millisecond))
	})
	if err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(s.mixer)
	return s, nil
}

// Play mixes a new instance of cue into the output.
func (s *Speaker) Play(cue Cue) {
	st := s.bank.Streamer(cue)
	if st == nil {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Close stops everything still sounding.
func (s *Speaker) Close() {
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
}
