package pointer

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

type injectKind uint8

const (
	injectMotion injectKind = iota
	injectButton
	injectWheel
	injectPenMotion
	injectPenTouch
	injectPenAxis
)

// syntheticInput is one queued input sample. Positions are window
// coordinates of the injection target.
type syntheticInput struct {
	kind   injectKind
	x, y   float32
	button MouseButton
	down   bool
	pen    PenID
	axis   PenAxis
	value  float32
}

type injectState struct {
	queue  []syntheticInput
	runner *ScriptRunner
	window *Window
	mouse  MouseID
	pen    PenID
}

// SetInjectTarget sets the window and device that injected input is
// reported for. The default device is GlobalMouseID.
func (c *Context) SetInjectTarget(win *Window, id MouseID) {
	c.inject.window = win
	c.inject.mouse = id
}

func (c *Context) enqueue(in syntheticInput) {
	c.inject.queue = append(c.inject.queue, in)
}

// InjectMove queues a pointer move to (x, y).
func (c *Context) InjectMove(x, y float32) {
	c.enqueue(syntheticInput{kind: injectMotion, x: x, y: y})
}

// InjectPress queues a move to (x, y) followed by a press of button.
func (c *Context) InjectPress(x, y float32, button MouseButton) {
	c.enqueue(syntheticInput{kind: injectButton, x: x, y: y, button: button, down: true})
}

// InjectRelease queues a move to (x, y) followed by a release of button.
func (c *Context) InjectRelease(x, y float32, button MouseButton) {
	c.enqueue(syntheticInput{kind: injectButton, x: x, y: y, button: button})
}

// InjectClick queues a left press and release at (x, y). Consumes two
// pumps.
func (c *Context) InjectClick(x, y float32) {
	c.InjectPress(x, y, ButtonLeft)
	c.InjectRelease(x, y, ButtonLeft)
}

// InjectWheel queues a wheel sample.
func (c *Context) InjectWheel(dx, dy float32) {
	c.enqueue(syntheticInput{kind: injectWheel, x: dx, y: dy})
}

// InjectDrag queues a left-button drag from (fromX, fromY) to (toX, toY)
// over frames pumps: a press, frames-2 moves along the path and a release.
// fn shapes the progress along the path; nil moves linearly. Minimum
// frames is 2.
func (c *Context) InjectDrag(fromX, fromY, toX, toY float32, frames int, fn ease.TweenFunc) {
	if frames < 2 {
		frames = 2
	}
	if fn == nil {
		fn = ease.Linear
	}
	c.InjectPress(fromX, fromY, ButtonLeft)
	steps := frames - 2
	tw := gween.New(0, 1, float32(steps+1), fn)
	for i := 1; i <= steps; i++ {
		t, _ := tw.Update(1)
		c.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	c.InjectRelease(toX, toY, ButtonLeft)
}

// InjectPenMove queues a pen move.
func (c *Context) InjectPenMove(id PenID, x, y float32) {
	c.enqueue(syntheticInput{kind: injectPenMotion, pen: id, x: x, y: y})
}

// InjectPenTouch queues the pen tip touching or leaving the surface at
// (x, y).
func (c *Context) InjectPenTouch(id PenID, x, y float32, down bool) {
	c.enqueue(syntheticInput{kind: injectPenTouch, pen: id, x: x, y: y, down: down})
}

// InjectPenAxis queues a pen axis change.
func (c *Context) InjectPenAxis(id PenID, axis PenAxis, value float32) {
	c.enqueue(syntheticInput{kind: injectPenAxis, pen: id, axis: axis, value: value})
}

// PendingInjected returns the number of queued injected samples.
func (c *Context) PendingInjected() int {
	return len(c.inject.queue)
}

// PumpInjected advances an attached ScriptRunner by one frame and feeds one
// injected sample. Backends call it once per frame and skip real pointer
// input when it returns true. Pen mouse samples queued so far are fed too.
func (c *Context) PumpInjected() bool {
	c.PumpPenMouse()
	if r := c.inject.runner; r != nil {
		r.step(c)
	}
	fed := c.processInjected()
	c.PumpPenMouse()
	return fed
}

// processInjected pops one sample and feeds it through the Send* entry
// points. It reports whether a sample was consumed.
func (c *Context) processInjected() bool {
	st := &c.inject
	if len(st.queue) == 0 {
		return false
	}
	in := st.queue[0]
	copy(st.queue, st.queue[1:])
	st.queue = st.queue[:len(st.queue)-1]

	win := st.window
	if win == nil {
		win = c.mouse.focus
	}
	switch in.kind {
	case injectMotion:
		c.SendMouseMotion(0, win, st.mouse, false, in.x, in.y)
	case injectButton:
		c.SendMouseMotion(0, win, st.mouse, false, in.x, in.y)
		c.SendMouseButton(0, win, st.mouse, in.button, in.down)
	case injectWheel:
		c.SendMouseWheel(0, win, st.mouse, in.x, in.y, WheelNormal)
	case injectPenMotion:
		c.SendPenMotion(0, in.pen, win, in.x, in.y)
	case injectPenTouch:
		c.SendPenMotion(0, in.pen, win, in.x, in.y)
		c.SendPenTouch(0, in.pen, win, false, in.down)
	case injectPenAxis:
		c.SendPenAxis(0, in.pen, win, in.axis, in.value)
	}
	return true
}
