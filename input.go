package rezeos

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/rezeos/sfx"
)

// clickDeadZone is how far the pointer may travel between press and release
// and still count as a click.
const clickDeadZone = 4.0

// HitRect is an axis-aligned rectangular hit area in screen coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in screen coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

type pointerState struct {
	seen        bool
	down        bool
	startX      float64
	startY      float64
	lastX       float64
	lastY       float64
	hover       bool
	touch       ebiten.TouchID
	touchActive bool
	touchIDs    []ebiten.TouchID
}

// pinHit returns the hit area of the mode pin in the top-right corner.
func (d *Desktop) pinHit() HitCircle {
	x, y := d.pinCenter()
	return HitCircle{CenterX: x, CenterY: y, Radius: pinRadius + 6}
}

func (d *Desktop) pinCenter() (float64, float64) {
	return float64(d.width) - pinMargin, pinMargin
}

// quoteBand returns the full-width strip the quote text is centred in.
func (d *Desktop) quoteBand() HitRect {
	h := d.face.Size * 2
	return HitRect{
		X:      0,
		Y:      float64(d.height)*quoteBandY - h/2,
		Width:  float64(d.width),
		Height: h,
	}
}

// processInput consumes one injected event if any are queued, otherwise
// polls the real mouse, touch and keyboard.
func (d *Desktop) processInput() {
	if d.processInjectedInput() {
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		d.ToggleMode()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		d.SetDebugMode(!d.debug)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		d.Screenshot("manual")
	}

	if d.processTouchPointer() {
		return
	}
	mx, my := ebiten.CursorPosition()
	d.processPointer(float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

// processTouchPointer follows the first active touch as if it were the mouse.
// Returns true while a touch is being tracked.
func (d *Desktop) processTouchPointer() bool {
	p := &d.ptr
	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])

	if p.touchActive {
		for _, id := range p.touchIDs {
			if id == p.touch {
				tx, ty := ebiten.TouchPosition(id)
				d.processPointer(float64(tx), float64(ty), true)
				return true
			}
		}
		p.touchActive = false
		d.processPointer(p.lastX, p.lastY, false)
		return true
	}
	if len(p.touchIDs) == 0 {
		return false
	}
	p.touch = p.touchIDs[0]
	p.touchActive = true
	tx, ty := ebiten.TouchPosition(p.touch)
	d.processPointer(float64(tx), float64(ty), true)
	return true
}

// processPointer runs the pointer state machine: moves feed the trail,
// entering a hit area plays the hover cue and a press/release pair within
// clickDeadZone is a click.
func (d *Desktop) processPointer(x, y float64, pressed bool) {
	p := &d.ptr
	if !p.seen || x != p.lastX || y != p.lastY {
		if p.seen {
			d.engine.PointerMoved(x, y, d.mode)
		}
		over := d.pinHit().Contains(x, y) || d.quoteBand().Contains(x, y)
		if over && !p.hover {
			d.sound.Play(sfx.CueHover)
		}
		p.hover = over
	}
	p.seen = true
	p.lastX, p.lastY = x, y

	switch {
	case pressed && !p.down:
		p.down = true
		p.startX, p.startY = x, y
	case !pressed && p.down:
		p.down = false
		dx, dy := x-p.startX, y-p.startY
		if dx*dx+dy*dy <= clickDeadZone*clickDeadZone {
			d.click(x, y)
		}
	}
}

// click routes a click: the pin toggles the mode, the quote band asks for a
// touch reaction, anywhere else in combat mode detonates a burst.
func (d *Desktop) click(x, y float64) {
	switch {
	case d.pinHit().Contains(x, y):
		d.ToggleMode()
	case d.quoteBand().Contains(x, y):
		if d.rotator.Touch() {
			d.sound.Play(sfx.CueClick)
		}
	case d.mode == ModeCombat:
		d.sound.Play(sfx.CueBoom)
		d.engine.SpawnBurst(x, y)
	}
}
