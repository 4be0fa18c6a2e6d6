package rezeos

import (
	"io"
	"log/slog"
	"slices"
	"testing"
	"time"
)

type fixedMode Mode

func (m *fixedMode) Mode() Mode { return Mode(*m) }

// typingStarts counts how many reveals the sink saw begin.
func typingStarts(s *recordingSink) int {
	n := 0
	prev := DecodeIdle
	for _, snap := range s.snaps {
		if snap.State == DecodeTyping && prev != DecodeTyping {
			n++
		}
		prev = snap.State
	}
	return n
}

func newTestRotator(quotes []Quote, mode Mode) (*Rotator, *Presenter, *Timeline, *recordingSink) {
	tl := NewTimeline()
	sink := &recordingSink{}
	p := NewPresenter(tl, DefaultDecodeConfig(), sink)
	m := fixedMode(mode)
	r := NewRotator(tl, p, quotes, &m, DefaultRotatorConfig())
	r.Clock = func() time.Time { return time.Date(2024, 5, 1, 23, 0, 0, 0, time.UTC) }
	r.Rand = testRand()
	r.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return r, p, tl, sink
}

func TestRotatorFireEmptySet(t *testing.T) {
	r, p, _, sink := newTestRotator(nil, ModeCombat)
	if r.Fire() {
		t.Error("Fire reported success with no quotes")
	}
	if p.State() != DecodeIdle || len(sink.snaps) != 0 {
		t.Error("presenter touched with no eligible quote")
	}

	// Only daytime quotes, but the clock says 23:00.
	r, p, _, _ = newTestRotator([]Quote{{Cipher: "x", Plaintext: "y", Mode: ModeCombat, Time: TimeDay}}, ModeCombat)
	if r.Fire() || p.Busy() {
		t.Error("Fire triggered an ineligible quote")
	}
}

func TestRotatorFireUsesModeAndHour(t *testing.T) {
	quotes := DefaultQuotes()
	r, p, tl, _ := newTestRotator(quotes, ModeCombat)
	if !r.Fire() {
		t.Fatal("Fire rejected")
	}
	if p.Color() != DefaultRotatorConfig().CombatAccent {
		t.Errorf("cipher color = %v, want combat accent", p.Color())
	}
	if r.Fire() {
		t.Error("Fire accepted while the presenter is busy")
	}

	tl.Advance(10 * time.Second)
	eligible := Eligible(quotes, ModeCombat, 23)
	if !slices.ContainsFunc(eligible, func(q Quote) bool { return q.Plaintext == p.Text() }) {
		t.Errorf("revealed %q, not an eligible combat quote", p.Text())
	}
}

func TestRotatorPeriodic(t *testing.T) {
	r, _, tl, sink := newTestRotator(DefaultQuotes(), ModeNormal)
	r.Start()
	if !r.Running() {
		t.Fatal("not running after Start")
	}

	tl.Advance(5999 * time.Millisecond)
	if n := typingStarts(sink); n != 0 {
		t.Fatalf("fired %d times before the first interval", n)
	}
	tl.Advance(1001 * time.Millisecond)
	if n := typingStarts(sink); n != 1 {
		t.Fatalf("fired %d times by 7s, want 1", n)
	}

	// Periods are 6-7s, so 60s more holds 8 or 9 further selections.
	tl.Advance(60 * time.Second)
	if n := typingStarts(sink); n < 9 || n > 11 {
		t.Errorf("fired %d times by 67s, want 9..11", n)
	}

	r.Stop()
	before := typingStarts(sink)
	tl.Advance(time.Minute)
	if typingStarts(sink) != before {
		t.Error("fired after Stop")
	}
	if r.Running() {
		t.Error("Running after Stop")
	}
}

func TestRotatorTouch(t *testing.T) {
	r, p, tl, _ := newTestRotator(DefaultQuotes(), ModeNormal)
	if !r.Touch() {
		t.Fatal("Touch rejected while idle")
	}
	if !slices.Contains(DefaultRotatorConfig().TouchReactions, p.Text()) {
		t.Errorf("touch text %q is not a reaction", p.Text())
	}
	if r.Touch() {
		t.Error("Touch accepted while busy")
	}
	tl.Advance(time.Second)

	r.cfg.TouchReactions = nil
	if r.Touch() {
		t.Error("Touch succeeded with no reactions")
	}
}

func TestRotatorAccent(t *testing.T) {
	r, _, _, _ := newTestRotator(nil, ModeNormal)
	cfg := DefaultRotatorConfig()
	if r.Accent(ModeNormal) != cfg.NormalAccent || r.Accent(ModeCombat) != cfg.CombatAccent {
		t.Error("Accent does not follow the mode")
	}
}
