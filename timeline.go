package rezeos

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Timeline is a virtual clock that runs deferred callbacks and tweens. It
// never reads wall time: the host advances it once per frame, tests advance
// it by exact amounts.
//
// A Timeline is not safe for concurrent use. All callbacks run on the
// goroutine that calls Advance, one at a time, in the order they fall due.
type Timeline struct {
	now    time.Duration
	seq    uint64
	timers []*Timer
	tweens []*Timer
}

// Timer is a handle to a scheduled callback or running tween.
type Timer struct {
	tl      *Timeline
	due     time.Duration
	seq     uint64
	next    func() time.Duration // non-nil for repeating timers
	fn      func()
	tween   *gween.Tween
	apply   func(float32)
	stopped bool
}

// NewTimeline creates a timeline positioned at zero.
func NewTimeline() *Timeline {
	return &Timeline{}
}

// Now returns the virtual time elapsed since the timeline was created.
func (t *Timeline) Now() time.Duration {
	return t.now
}

// Pending returns the number of scheduled callbacks and running tweens.
func (t *Timeline) Pending() int {
	return len(t.timers) + len(t.tweens)
}

// After schedules fn to run once, d after the current virtual time.
// Negative delays are treated as zero.
func (t *Timeline) After(d time.Duration, fn func()) *Timer {
	if d < 0 {
		d = 0
	}
	tm := &Timer{tl: t, due: t.now + d, seq: t.nextSeq(), fn: fn}
	t.timers = append(t.timers, tm)
	return tm
}

// Every schedules fn to run every d until the returned Timer is stopped.
func (t *Timeline) Every(d time.Duration, fn func()) *Timer {
	return t.EveryFunc(func() time.Duration { return d }, fn)
}

// EveryFunc is like Every but asks next for each period, which allows
// jittered intervals. Periods shorter than a millisecond are raised to one
// so a misconfigured timer cannot stall Advance.
func (t *Timeline) EveryFunc(next func() time.Duration, fn func()) *Timer {
	tm := &Timer{tl: t, seq: t.nextSeq(), next: next, fn: fn}
	tm.due = t.now + tm.period()
	t.timers = append(t.timers, tm)
	return tm
}

// Tween animates a value from `from` to `to` over d using the easing
// function, calling apply with every new value. apply receives `from`
// immediately.
func (t *Timeline) Tween(from, to float32, d time.Duration, fn ease.TweenFunc, apply func(float32)) *Timer {
	if fn == nil {
		fn = ease.Linear
	}
	tm := &Timer{
		tl:    t,
		seq:   t.nextSeq(),
		tween: gween.New(from, to, float32(d.Seconds()), fn),
		apply: apply,
	}
	apply(from)
	if d <= 0 {
		apply(to)
		tm.stopped = true
		return tm
	}
	t.tweens = append(t.tweens, tm)
	return tm
}

// Advance moves the clock forward by d. Callbacks whose due time falls in
// the span run in due-time order; ties run in scheduling order. Running
// tweens are stepped up to each callback's due time before it runs, so a
// callback always observes tween values consistent with its own time.
func (t *Timeline) Advance(d time.Duration) {
	if d < 0 {
		d = 0
	}
	end := t.now + d
	for {
		i := t.earliest(end)
		if i < 0 {
			t.stepTweens(end - t.now)
			t.now = end
			return
		}
		tm := t.timers[i]
		t.stepTweens(tm.due - t.now)
		t.now = tm.due

		if tm.next != nil {
			tm.due = t.now + tm.period()
			tm.seq = t.nextSeq()
		} else {
			t.timers = removeTimer(t.timers, i)
			tm.stopped = true
		}
		tm.fn()
	}
}

// Stop cancels the timer. Stopping an already fired or stopped timer is a
// no-op. A tween stopped mid-flight keeps its last applied value.
func (tm *Timer) Stop() {
	if tm == nil || tm.stopped {
		return
	}
	tm.stopped = true
	t := tm.tl
	for i, x := range t.timers {
		if x == tm {
			t.timers = removeTimer(t.timers, i)
			return
		}
	}
	for i, x := range t.tweens {
		if x == tm {
			t.tweens = removeTimer(t.tweens, i)
			return
		}
	}
}

// Active reports whether the timer is still scheduled.
func (tm *Timer) Active() bool {
	return tm != nil && !tm.stopped
}

func (tm *Timer) period() time.Duration {
	p := tm.next()
	if p < time.Millisecond {
		p = time.Millisecond
	}
	return p
}

// earliest returns the index of the first timer due at or before end, or -1.
func (t *Timeline) earliest(end time.Duration) int {
	best := -1
	for i, tm := range t.timers {
		if tm.due > end {
			continue
		}
		if best < 0 || tm.due < t.timers[best].due ||
			(tm.due == t.timers[best].due && tm.seq < t.timers[best].seq) {
			best = i
		}
	}
	return best
}

func (t *Timeline) stepTweens(d time.Duration) {
	if d <= 0 || len(t.tweens) == 0 {
		return
	}
	dt := float32(d.Seconds())
	i := 0
	for i < len(t.tweens) {
		tm := t.tweens[i]
		v, done := tm.tween.Update(dt)
		tm.apply(v)
		if done {
			tm.stopped = true
			t.tweens = removeTimer(t.tweens, i)
			continue
		}
		i++
	}
}

func (t *Timeline) nextSeq() uint64 {
	t.seq++
	return t.seq
}

// removeTimer deletes index i preserving order.
func removeTimer(s []*Timer, i int) []*Timer {
	copy(s[i:], s[i+1:])
	s[len(s)-1] = nil
	return s[:len(s)-1]
}
