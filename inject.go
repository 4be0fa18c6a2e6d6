package rezeos

import "github.com/hajimehoshi/ebiten/v2"

type syntheticKind uint8

const (
	synthPointer syntheticKind = iota
	synthToggle
	synthResize
)

// syntheticEvent is a single injected input event. Pointer events use
// screen coordinates, identical to real mouse input.
type syntheticEvent struct {
	kind          syntheticKind
	x, y          float64
	pressed       bool
	width, height int
}

// InjectMove queues a pointer move to the given screen coordinates with the
// button released. The event is consumed on the next frame's Update.
func (d *Desktop) InjectMove(x, y float64) {
	d.injectQueue = append(d.injectQueue, syntheticEvent{kind: synthPointer, x: x, y: y})
}

// InjectPress queues a pointer press at the given screen coordinates.
func (d *Desktop) InjectPress(x, y float64) {
	d.injectQueue = append(d.injectQueue, syntheticEvent{kind: synthPointer, x: x, y: y, pressed: true})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (d *Desktop) InjectRelease(x, y float64) {
	d.InjectMove(x, y)
}

// InjectClick is a convenience that queues a press followed by a release
// at the same screen coordinates. Consumes two frames.
func (d *Desktop) InjectClick(x, y float64) {
	d.InjectPress(x, y)
	d.InjectRelease(x, y)
}

// InjectToggle queues a mode toggle, as if the space key were pressed.
func (d *Desktop) InjectToggle() {
	d.injectQueue = append(d.injectQueue, syntheticEvent{kind: synthToggle})
}

// InjectResize queues a screen resize. In a live window the window itself
// is resized too.
func (d *Desktop) InjectResize(width, height int) {
	d.injectQueue = append(d.injectQueue, syntheticEvent{kind: synthResize, width: width, height: height})
}

// processInjectedInput pops one event from the inject queue and applies it.
// Returns true if an event was consumed (real input should be skipped).
func (d *Desktop) processInjectedInput() bool {
	if len(d.injectQueue) == 0 {
		return false
	}
	evt := d.injectQueue[0]
	copy(d.injectQueue, d.injectQueue[1:])
	d.injectQueue = d.injectQueue[:len(d.injectQueue)-1]

	switch evt.kind {
	case synthPointer:
		d.processPointer(evt.x, evt.y, evt.pressed)
	case synthToggle:
		d.ToggleMode()
	case synthResize:
		d.resize(evt.width, evt.height)
		if d.live {
			ebiten.SetWindowSize(evt.width, evt.height)
		}
	}
	return true
}
