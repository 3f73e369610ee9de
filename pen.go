package pointer

import (
	"fmt"
	"reflect"
	"sync"
)

// PenInputFlags is a pen's input state: tip contact, barrel buttons and
// which end is in use.
type PenInputFlags uint32

const (
	PenInputDown      PenInputFlags = 1 << 0  // a tip is touching the surface
	PenInputButton1   PenInputFlags = 1 << 1  // barrel button 1
	PenInputButton2   PenInputFlags = 1 << 2  // barrel button 2
	PenInputButton3   PenInputFlags = 1 << 3  // barrel button 3
	PenInputButton4   PenInputFlags = 1 << 4  // barrel button 4
	PenInputButton5   PenInputFlags = 1 << 5  // barrel button 5
	PenInputEraserTip PenInputFlags = 1 << 30 // the eraser end is in use
)

// maxPenButton is the highest barrel button number.
const maxPenButton = 5

// PenAxis identifies a continuous pen measurement.
type PenAxis uint8

const (
	PenAxisPressure           PenAxis = iota // 0..1
	PenAxisXTilt                             // degrees, -90..90
	PenAxisYTilt                             // degrees, -90..90
	PenAxisDistance                          // 0..1 above the surface
	PenAxisRotation                          // degrees, -180..180
	PenAxisSlider                            // 0..1
	PenAxisTangentialPressure                // 0..1
	PenAxisCount
)

// PenCapability is a bitmask of what a pen can report.
type PenCapability uint32

const (
	PenCapPressure PenCapability = 1 << iota
	PenCapXTilt
	PenCapYTilt
	PenCapDistance
	PenCapRotation
	PenCapSlider
	PenCapTangentialPressure
	PenCapEraser
)

// PenDeviceType tells whether the pen draws on the display itself.
type PenDeviceType uint8

const (
	PenDeviceUnknown  PenDeviceType = iota
	PenDeviceDirect                 // drawing tablet built into the screen
	PenDeviceIndirect               // separate tablet
)

// PenInfo describes a pen's hardware.
type PenInfo struct {
	Capabilities PenCapability
	MaxTilt      float32 // degrees; zero when unknown
	WacomID      uint32
	NumButtons   int
	DeviceType   PenDeviceType
}

// PenStatus is a snapshot of a pen's last reported state.
type PenStatus struct {
	X, Y  float32
	Axes  [PenAxisCount]float32
	Input PenInputFlags
}

type penState struct {
	mu     sync.Mutex
	id     PenID
	name   string
	info   PenInfo
	handle any
	status PenStatus
}

// penRegistry holds every connected pen. mu guards the arena and index; a
// pen's own fields are guarded by its mu, taken while mu is read-locked.
type penRegistry struct {
	mu     sync.RWMutex
	arena  penArena
	byID   map[PenID]penHandle
	order  []PenID
	nextID PenID
}

// AddPenDevice registers a pen and emits EventPenProximityIn. handle is an
// opaque backend value used by FindPenByHandle; it must be comparable. It
// returns zero if the pen could not be added.
func (c *Context) AddPenDevice(ts uint64, name string, info PenInfo, handle any) PenID {
	if err := c.initialized(); err != nil {
		c.setError(err)
		return 0
	}
	if handle != nil && !reflect.TypeOf(handle).Comparable() {
		c.setError(fmt.Errorf("%w: pen handle of type %T is not comparable", ErrInvalidParam, handle))
		return 0
	}

	r := &c.pens
	r.mu.Lock()
	if r.byID == nil {
		r.byID = make(map[PenID]penHandle)
	}
	r.nextID++
	id := r.nextID
	if name == "" {
		name = fmt.Sprintf("Pen %d", id)
		c.warnf("pen added without a name", "pen", id)
	}
	h, p := r.arena.alloc()
	p.id = id
	p.name = name
	p.info = info
	p.handle = handle
	r.byID[id] = h
	r.order = append(r.order, id)
	r.mu.Unlock()

	c.pushPenEvent(Event{Type: EventPenProximityIn, Timestamp: ts, Which: uint32(id)})
	return id
}

// RemovePenDevice unregisters a pen and emits EventPenProximityOut.
// Unknown IDs are ignored.
func (c *Context) RemovePenDevice(ts uint64, id PenID) {
	r := &c.pens
	r.mu.Lock()
	h, ok := r.byID[id]
	if !ok {
		r.mu.Unlock()
		return
	}
	r.arena.release(h)
	delete(r.byID, id)
	for i, o := range r.order {
		if o == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.mu.Unlock()

	c.pushPenEvent(Event{Type: EventPenProximityOut, Timestamp: ts, Which: uint32(id)})
}

func (c *Context) removeAllPens() {
	r := &c.pens
	r.mu.Lock()
	r.arena.reset()
	r.byID = nil
	r.order = nil
	r.mu.Unlock()
}

// updatePen runs fn on the pen with the registry read-locked and the pen
// locked. It returns a lookup error for unknown pens.
func (c *Context) updatePen(id PenID, fn func(p *penState)) error {
	r := &c.pens
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, err := r.lookup(id)
	if err != nil {
		return err
	}
	p.mu.Lock()
	fn(p)
	p.mu.Unlock()
	return nil
}

// lookup must be called with mu held.
func (r *penRegistry) lookup(id PenID) (*penState, error) {
	if id == 0 {
		return nil, fmt.Errorf("%w: 0", ErrInvalidPenID)
	}
	h, ok := r.byID[id]
	if !ok {
		if id <= r.nextID {
			return nil, fmt.Errorf("%w: %d", ErrStalePenID, id)
		}
		return nil, fmt.Errorf("%w: %d", ErrInvalidPenID, id)
	}
	return r.arena.get(h), nil
}

func (c *Context) penError(id PenID, err error) {
	if id == 0 && c.debug {
		panic("pointer debug: pen operation with pen ID 0")
	}
	c.setError(err)
}

// pushPenEvent delivers a pen event straight to the sink. Pen events may
// come from a device goroutine, so they bypass the sample staging buffer.
func (c *Context) pushPenEvent(ev Event) bool {
	if f, ok := c.sink.(EventFilter); ok && !f.EventEnabled(ev.Type) {
		return false
	}
	ev.Timestamp = c.now(ev.Timestamp)
	return c.sink.PushEvent(ev)
}

// SendPenTouch reports the pen tip touching (down) or leaving the surface.
// eraser names which end is in contact. It reports whether an event was
// posted; a call that does not change the tip state posts nothing.
//
// Like every SendPen call it may run on any goroutine. With
// Hints.PenMouseEvents the emulated mouse sample is queued for
// PumpPenMouse instead of being fed here.
func (c *Context) SendPenTouch(ts uint64, id PenID, win *Window, eraser, down bool) bool {
	var (
		changed bool
		st      PenStatus
	)
	err := c.updatePen(id, func(p *penState) {
		in := p.status.Input
		if down {
			in |= PenInputDown
		} else {
			in &^= PenInputDown
		}
		if eraser {
			in |= PenInputEraserTip
		} else {
			in &^= PenInputEraserTip
		}
		changed = in != p.status.Input
		p.status.Input = in
		st = p.status
	})
	if err != nil {
		c.penError(id, err)
		return false
	}
	if !changed {
		return false
	}

	ts = c.now(ts)
	t := EventPenUp
	if down {
		t = EventPenDown
	}
	posted := c.pushPenEvent(Event{
		Type:      t,
		Timestamp: ts,
		WindowID:  windowID(win),
		Which:     uint32(id),
		State:     uint32(st.Input),
		X:         st.X,
		Y:         st.Y,
		Eraser:    eraser,
		Down:      down,
	})
	if !posted {
		return false
	}

	if c.hints.PenMouseEvents && win != nil {
		c.queuePenMouse(penMouseSample{ts: ts, win: win, button: ButtonLeft, down: down})
	}
	if c.hints.PenTouchEvents && win != nil {
		ft := EventFingerUp
		pressure := float32(0)
		if down {
			ft = EventFingerDown
			pressure = st.Axes[PenAxisPressure]
		}
		c.sendPenFinger(ts, win, ft, st, pressure)
	}
	return posted
}

// SendPenMotion reports a new pen position in win. Repeated positions post
// nothing. Emulated mouse motion is queued for PumpPenMouse.
func (c *Context) SendPenMotion(ts uint64, id PenID, win *Window, x, y float32) bool {
	var (
		changed bool
		st      PenStatus
	)
	err := c.updatePen(id, func(p *penState) {
		changed = p.status.X != x || p.status.Y != y
		p.status.X, p.status.Y = x, y
		st = p.status
	})
	if err != nil {
		c.penError(id, err)
		return false
	}
	if !changed {
		return false
	}

	ts = c.now(ts)
	posted := c.pushPenEvent(Event{
		Type:      EventPenMotion,
		Timestamp: ts,
		WindowID:  windowID(win),
		Which:     uint32(id),
		State:     uint32(st.Input),
		X:         x,
		Y:         y,
	})
	if !posted {
		return false
	}

	if c.hints.PenMouseEvents && win != nil {
		c.queuePenMouse(penMouseSample{ts: ts, win: win, motion: true, x: x, y: y})
	}
	if c.hints.PenTouchEvents && win != nil && st.Input&PenInputDown != 0 {
		c.sendPenFinger(ts, win, EventFingerMotion, st, st.Axes[PenAxisPressure])
	}
	return posted
}

// SendPenAxis reports a new value for one axis. A value equal to the stored
// one posts nothing.
func (c *Context) SendPenAxis(ts uint64, id PenID, win *Window, axis PenAxis, value float32) bool {
	if axis >= PenAxisCount {
		c.setError(fmt.Errorf("%w: pen axis %d", ErrInvalidParam, axis))
		return false
	}
	var (
		changed bool
		st      PenStatus
	)
	err := c.updatePen(id, func(p *penState) {
		changed = p.status.Axes[axis] != value
		p.status.Axes[axis] = value
		st = p.status
	})
	if err != nil {
		c.penError(id, err)
		return false
	}
	if !changed {
		return false
	}

	ts = c.now(ts)
	posted := c.pushPenEvent(Event{
		Type:      EventPenAxis,
		Timestamp: ts,
		WindowID:  windowID(win),
		Which:     uint32(id),
		State:     uint32(st.Input),
		X:         st.X,
		Y:         st.Y,
		Axis:      axis,
		Value:     value,
	})
	if !posted {
		return false
	}

	// pressure changes move the emulated finger so touch consumers see it
	if axis == PenAxisPressure && c.hints.PenTouchEvents && win != nil && st.Input&PenInputDown != 0 {
		c.sendPenFinger(ts, win, EventFingerMotion, st, value)
	}
	return posted
}

// penMouseButtons maps barrel buttons to the mouse buttons they emulate.
// The tip is the left button.
var penMouseButtons = [maxPenButton + 1]MouseButton{
	1: ButtonRight,
	2: ButtonMiddle,
	3: ButtonX1,
	4: ButtonX2,
}

// SendPenButton reports a barrel button change. Buttons are numbered from
// 1. A call that does not change the button posts nothing. Emulated mouse
// buttons are queued for PumpPenMouse.
func (c *Context) SendPenButton(ts uint64, id PenID, win *Window, button uint8, down bool) bool {
	if button == 0 || button > maxPenButton {
		c.setError(fmt.Errorf("%w: pen button %d", ErrInvalidParam, button))
		return false
	}
	bit := PenInputButton1 << (button - 1)
	var (
		changed bool
		st      PenStatus
	)
	err := c.updatePen(id, func(p *penState) {
		in := p.status.Input
		if down {
			in |= bit
		} else {
			in &^= bit
		}
		changed = in != p.status.Input
		p.status.Input = in
		st = p.status
	})
	if err != nil {
		c.penError(id, err)
		return false
	}
	if !changed {
		return false
	}

	ts = c.now(ts)
	t := EventPenButtonUp
	if down {
		t = EventPenButtonDown
	}
	posted := c.pushPenEvent(Event{
		Type:      t,
		Timestamp: ts,
		WindowID:  windowID(win),
		Which:     uint32(id),
		State:     uint32(st.Input),
		X:         st.X,
		Y:         st.Y,
		Button:    button,
		Down:      down,
	})
	if !posted {
		return false
	}

	if mb := penMouseButtons[button]; mb != 0 && c.hints.PenMouseEvents && win != nil {
		c.queuePenMouse(penMouseSample{ts: ts, win: win, button: mb, down: down})
	}
	return posted
}

func (c *Context) sendPenFinger(ts uint64, win *Window, t EventType, st PenStatus, pressure float32) {
	if win.W <= 0 || win.H <= 0 {
		return
	}
	c.pushPenEvent(Event{
		Type:      t,
		Timestamp: ts,
		WindowID:  win.ID,
		TouchID:   PenTouchID,
		X:         clamp01(st.X / float32(win.W)),
		Y:         clamp01(st.Y / float32(win.H)),
		Pressure:  pressure,
	})
}

// Pens returns the connected pen IDs in the order they were added.
func (c *Context) Pens() []PenID {
	r := &c.pens
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]PenID, len(r.order))
	copy(out, r.order)
	return out
}

// PenConnected reports whether id is a connected pen.
func (c *Context) PenConnected(id PenID) bool {
	r := &c.pens
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byID[id]
	return ok
}

// PenName returns the name a pen was added with.
func (c *Context) PenName(id PenID) (string, error) {
	var name string
	err := c.updatePen(id, func(p *penState) { name = p.name })
	if err != nil {
		c.penError(id, err)
		return "", err
	}
	return name, nil
}

// PenInfo returns a pen's hardware description.
func (c *Context) PenInfo(id PenID) (PenInfo, error) {
	var info PenInfo
	err := c.updatePen(id, func(p *penState) { info = p.info })
	if err != nil {
		c.penError(id, err)
		return PenInfo{}, err
	}
	return info, nil
}

// PenStatus returns a pen's last reported position, axes and input flags.
func (c *Context) PenStatus(id PenID) (PenStatus, error) {
	var st PenStatus
	err := c.updatePen(id, func(p *penState) { st = p.status })
	if err != nil {
		c.penError(id, err)
		return PenStatus{}, err
	}
	return st, nil
}

// FindPenByHandle returns the pen added with handle, or zero.
func (c *Context) FindPenByHandle(handle any) PenID {
	if handle == nil || !reflect.TypeOf(handle).Comparable() {
		return 0
	}
	r := &c.pens
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.order {
		if p := r.arena.get(r.byID[id]); p != nil && p.handle == handle {
			return id
		}
	}
	return 0
}
