package rezeos

import (
	"testing"
	"time"
)

type recordingSink struct {
	snaps []DecodeSnapshot
}

func (s *recordingSink) ShowText(snap DecodeSnapshot) {
	s.snaps = append(s.snaps, snap)
}

var testAccent = MustParseColor("#ff3333")

func newTestPresenter() (*Presenter, *Timeline, *recordingSink) {
	tl := NewTimeline()
	sink := &recordingSink{}
	return NewPresenter(tl, DefaultDecodeConfig(), sink), tl, sink
}

func assertPresenter(t *testing.T, at string, p *Presenter, state DecodeState, text string) {
	t.Helper()
	if p.State() != state || p.Text() != text {
		t.Errorf("%s: state=%v text=%q, want state=%v text=%q", at, p.State(), p.Text(), state, text)
	}
}

func TestDecodeFullCycle(t *testing.T) {
	p, tl, sink := newTestPresenter()
	neutral := DefaultDecodeConfig().Neutral

	if !p.Trigger("AB", "X", testAccent) {
		t.Fatal("Trigger rejected while idle")
	}
	assertPresenter(t, "0ms", p, DecodeTyping, "A")
	if p.Color() != testAccent {
		t.Errorf("typing color = %v, want accent", p.Color())
	}

	tl.Advance(49 * time.Millisecond)
	assertPresenter(t, "49ms", p, DecodeTyping, "A")
	tl.Advance(1 * time.Millisecond)
	assertPresenter(t, "50ms", p, DecodeHolding, "AB")

	tl.Advance(50 * time.Millisecond)
	assertPresenter(t, "100ms", p, DecodeHolding, "AB")

	tl.Advance(749 * time.Millisecond)
	assertPresenter(t, "849ms", p, DecodeHolding, "AB")
	tl.Advance(1 * time.Millisecond)
	assertPresenter(t, "850ms", p, DecodeRevealing, "X")
	if p.Color() != neutral {
		t.Errorf("reveal color = %v, want neutral %v", p.Color(), neutral)
	}
	assertNear(t, "opacity at reveal", p.Opacity(), 0)

	tl.Advance(100 * time.Millisecond)
	assertNear(t, "opacity after dip", p.Opacity(), 1)

	tl.Advance(99 * time.Millisecond)
	assertPresenter(t, "1049ms", p, DecodeRevealing, "X")
	tl.Advance(1 * time.Millisecond)
	assertPresenter(t, "1050ms", p, DecodeIdle, "X")
	if p.Busy() {
		t.Error("Busy after returning to idle")
	}

	last := sink.snaps[len(sink.snaps)-1]
	if last.State != DecodeIdle || last.Text != "X" {
		t.Errorf("last sink snapshot = %+v", last)
	}
	seen := map[string]bool{}
	for _, s := range sink.snaps {
		seen[s.Text] = true
	}
	for _, want := range []string{"A", "AB", "X"} {
		if !seen[want] {
			t.Errorf("sink never saw %q", want)
		}
	}
}

func TestDecodeTypesRunes(t *testing.T) {
	p, tl, _ := newTestPresenter()
	p.Trigger("君の心臓", "heart", testAccent)
	assertPresenter(t, "0ms", p, DecodeTyping, "君")
	tl.Advance(100 * time.Millisecond)
	assertPresenter(t, "100ms", p, DecodeTyping, "君の心")
	tl.Advance(50 * time.Millisecond)
	assertPresenter(t, "150ms", p, DecodeHolding, "君の心臓")
}

func TestDecodeTriggerWhileBusyIsDropped(t *testing.T) {
	p, tl, sink := newTestPresenter()
	p.Trigger("ABC", "first", testAccent)
	tl.Advance(60 * time.Millisecond)

	for _, at := range []time.Duration{0, 900 * time.Millisecond, 100 * time.Millisecond} {
		tl.Advance(at)
		before := p.Snapshot()
		pending := tl.Pending()
		notified := len(sink.snaps)
		if p.Trigger("ZZZ", "second", ColorWhite) {
			t.Fatalf("Trigger accepted in state %v", before.State)
		}
		if p.Snapshot() != before {
			t.Errorf("snapshot changed by rejected Trigger: %+v -> %+v", before, p.Snapshot())
		}
		if tl.Pending() != pending || len(sink.snaps) != notified {
			t.Error("rejected Trigger touched timers or notified the sink")
		}
	}

	tl.Advance(time.Second)
	assertPresenter(t, "end", p, DecodeIdle, "first")
	if !p.Trigger("Q", "again", testAccent) {
		t.Error("Trigger rejected after returning to idle")
	}
}

func TestDecodeEmptyCipher(t *testing.T) {
	p, tl, _ := newTestPresenter()
	p.Trigger("", "plain", testAccent)
	assertPresenter(t, "0ms", p, DecodeHolding, "")

	tl.Advance(800 * time.Millisecond)
	assertPresenter(t, "800ms", p, DecodeRevealing, "plain")
	tl.Advance(200 * time.Millisecond)
	assertPresenter(t, "1000ms", p, DecodeIdle, "plain")
}

func TestDecodeSay(t *testing.T) {
	p, tl, _ := newTestPresenter()
	if !p.Say("Hey!", testAccent) {
		t.Fatal("Say rejected while idle")
	}
	assertPresenter(t, "0ms", p, DecodeRevealing, "Hey!")
	if p.Color() != testAccent {
		t.Errorf("Say color = %v, want accent", p.Color())
	}
	if p.Say("again", testAccent) || p.Trigger("A", "B", testAccent) {
		t.Error("Say or Trigger accepted while busy")
	}
	tl.Advance(200 * time.Millisecond)
	assertPresenter(t, "200ms", p, DecodeIdle, "Hey!")
}

func TestDecodeStop(t *testing.T) {
	p, tl, _ := newTestPresenter()
	p.Trigger("ABCD", "plain", testAccent)
	tl.Advance(50 * time.Millisecond)
	p.Stop()

	assertPresenter(t, "stopped", p, DecodeIdle, "AB")
	tl.Advance(5 * time.Second)
	assertPresenter(t, "later", p, DecodeIdle, "AB")
	if tl.Pending() != 0 {
		t.Errorf("Pending = %d after Stop, want 0", tl.Pending())
	}
}

func TestDecodeStateString(t *testing.T) {
	names := map[DecodeState]string{
		DecodeIdle:      "idle",
		DecodeTyping:    "typing",
		DecodeHolding:   "holding",
		DecodeRevealing: "revealing",
	}
	for s, want := range names {
		if s.String() != want {
			t.Errorf("%d.String() = %q, want %q", s, s.String(), want)
		}
	}
}
