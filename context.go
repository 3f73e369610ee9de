package pointer

import (
	"log/slog"
	"sync"
	"time"
)

// Config configures a Context. Zero fields take defaults.
type Config struct {
	// Sink receives every event. Defaults to a new Queue.
	Sink EventSink
	// Backend is the platform layer. Defaults to UnsupportedBackend.
	Backend Backend
	// Hints defaults to DefaultHints().
	Hints *Hints
	// Logger receives diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
	// Clock returns a monotonic timestamp in nanoseconds. Used whenever an
	// operation is given a zero timestamp.
	Clock func() uint64
}

// mouseState is the single global pointer record.
type mouseState struct {
	focus *Window

	x, y         float32
	lastX, lastY float32 // last position reported by a device, before relative clamping
	hasPosition  bool

	xDelta, yDelta             float32 // accumulated since the last RelativeMouseState
	clickMotionX, clickMotionY float32 // accumulated since the last warp, for click radius
	residualX, residualY       float32 // fractional motion carried in integer mode
	wheelAccX, wheelAccY       float32 // fractional wheel ticks

	relativeMode            bool
	relativeModeWarp        bool // relative mode implemented by re-centering
	warpEmulationActive     bool
	warpEmulationProhibited bool
	lastCenterWarp          uint64

	cursorShown    bool
	captureDesired bool
	captureWindow  *Window
	trackMouseDown bool // left button held, for mouse-to-touch events
}

// Context owns all pointer state: the device registry, button sources, the
// global pointer record, cursors and pens. Mouse operations must be called
// from one goroutine; pen operations may be called from any goroutine.
type Context struct {
	sink    EventSink
	backend Backend
	hints   Hints
	log     *slog.Logger
	debug   bool
	clock   func() uint64

	errMu   sync.Mutex // pen operations may fail on device goroutines
	lastErr error

	mouse   mouseState
	mice    []mouseDevice
	sources []*inputSource
	scale   systemScale

	keyboardFocus *Window
	messageBoxes  int

	cursors   []*Cursor
	curCursor *Cursor
	defCursor *Cursor

	pens penRegistry

	penMouseMu sync.Mutex // guards penMouse; pens feed it from any goroutine
	penMouse   []penMouseSample
	pumping    bool

	stage  eventStage
	inject injectState
}

// NewContext creates a pointer context. A placeholder default cursor is
// installed so SetCursor always has something to show.
func NewContext(cfg Config) *Context {
	c := &Context{
		sink:    cfg.Sink,
		backend: cfg.Backend,
		log:     cfg.Logger,
		clock:   cfg.Clock,
	}
	if c.sink == nil {
		c.sink = NewQueue()
	}
	if c.backend == nil {
		c.backend = UnsupportedBackend{}
	}
	if cfg.Hints != nil {
		c.hints = *cfg.Hints
		c.hints.normalize()
	} else {
		c.hints = DefaultHints()
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	if c.clock == nil {
		start := time.Now()
		c.clock = func() uint64 { return uint64(time.Since(start).Nanoseconds()) + 1 }
	}
	c.mouse.cursorShown = true
	c.initDefaultCursor()
	return c
}

// Sink returns the event sink.
func (c *Context) Sink() EventSink {
	return c.sink
}

// SetDebugMode enables or disables debug diagnostics. In debug mode
// suppressed events are logged and invalid device IDs panic.
func (c *Context) SetDebugMode(enabled bool) {
	c.debug = enabled
}

func (c *Context) now(ts uint64) uint64 {
	if ts != 0 {
		return ts
	}
	return c.clock()
}

// Quit releases capture, leaves relative mode and shows the cursor. It frees
// every cursor, source and pen, drops keyboard focus and open message boxes,
// and discards queued pen mouse samples. The Context can be reused afterwards.
func (c *Context) Quit() {
	if c.supports(FeatureCaptureMouse) {
		c.mouse.captureDesired = false
		_ = c.UpdateMouseCapture(true)
	}
	_ = c.SetRelativeMouseMode(false)
	c.ShowCursor()
	c.destroyAllCursors()

	c.removeAllPens()
	c.penMouseMu.Lock()
	c.penMouse = nil
	c.penMouseMu.Unlock()
	if c.keyboardFocus != nil {
		c.keyboardFocus.Flags &^= WindowInputFocus
		c.keyboardFocus = nil
	}
	c.messageBoxes = 0
	c.sources = nil
	c.mice = nil
	c.scale = systemScale{}
	c.inject = injectState{}
	c.mouse = mouseState{cursorShown: true}
	c.initDefaultCursor()
}

// SetKeyboardFocus records which window has keyboard focus. Capture and
// relative mode follow keyboard focus.
func (c *Context) SetKeyboardFocus(win *Window) {
	if c.keyboardFocus == win {
		return
	}
	if c.keyboardFocus != nil {
		c.keyboardFocus.Flags &^= WindowInputFocus
	}
	c.keyboardFocus = win
	if win != nil {
		win.Flags |= WindowInputFocus
		if c.mouse.relativeMode {
			c.setMouseFocus(win)
			if c.mouse.relativeModeWarp {
				cx, cy := win.center()
				c.performWarp(win, cx, cy, true)
			}
		}
	}
	_ = c.UpdateMouseCapture(false)
}

// KeyboardFocus returns the window with keyboard focus.
func (c *Context) KeyboardFocus() *Window {
	return c.keyboardFocus
}

// focusTarget is the window capture and relative mode apply to.
func (c *Context) focusTarget() *Window {
	if c.keyboardFocus != nil {
		return c.keyboardFocus
	}
	return c.mouse.focus
}

// SetMessageBoxActive notes that a modal message box opened (true) or
// closed (false). Capture is released while any message box is open; calls
// nest.
func (c *Context) SetMessageBoxActive(active bool) {
	switch {
	case active:
		c.messageBoxes++
	case c.messageBoxes > 0:
		c.messageBoxes--
	}
	_ = c.UpdateMouseCapture(false)
}

// PointerState is a snapshot of the global pointer record.
type PointerState struct {
	Focus               *Window
	X, Y                float32
	HasPosition         bool
	Buttons             ButtonMask
	RelativeMode        bool
	WarpEmulationActive bool
	CursorShown         bool
	CaptureWindow       *Window
}

// PointerState returns a snapshot of the global pointer.
func (c *Context) PointerState() PointerState {
	m := &c.mouse
	return PointerState{
		Focus:               m.focus,
		X:                   m.x,
		Y:                   m.y,
		HasPosition:         m.hasPosition,
		Buttons:             c.buttonState(true),
		RelativeMode:        m.relativeMode,
		WarpEmulationActive: m.warpEmulationActive,
		CursorShown:         m.cursorShown,
		CaptureWindow:       m.captureWindow,
	}
}

// MouseFocus returns the window under the pointer.
func (c *Context) MouseFocus() *Window {
	return c.mouse.focus
}

// MouseState returns the pointer position in the focused window and the
// aggregated button mask.
func (c *Context) MouseState() (x, y float32, buttons ButtonMask) {
	return c.mouse.x, c.mouse.y, c.buttonState(true)
}

// RelativeMouseState returns the motion accumulated since the previous call
// and resets it.
func (c *Context) RelativeMouseState() (dx, dy float32, buttons ButtonMask) {
	m := &c.mouse
	dx, dy = m.xDelta, m.yDelta
	m.xDelta, m.yDelta = 0, 0
	return dx, dy, c.buttonState(true)
}

// GlobalMouseState returns the pointer position in desktop coordinates. It
// asks the backend when supported and otherwise offsets the tracked position
// by the focused window's origin.
func (c *Context) GlobalMouseState() (x, y float32, buttons ButtonMask, err error) {
	if c.supports(FeatureGlobalMouseState) {
		x, y, buttons, err = c.backend.GlobalMouseState()
		if err == nil {
			return x, y, buttons, nil
		}
		c.warnf("global mouse state failed", "err", err)
	}
	x, y, buttons = c.MouseState()
	if f := c.mouse.focus; f != nil {
		x += float32(f.X)
		y += float32(f.Y)
	}
	return x, y, buttons, nil
}
