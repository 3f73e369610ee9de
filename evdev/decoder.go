package evdev

import (
	"math"

	"github.com/phanxgames/pointer"
)

// AbsInfo mirrors struct input_absinfo.
type AbsInfo struct {
	Value      int32
	Min        int32
	Max        int32
	Fuzz       int32
	Flat       int32
	Resolution int32
}

func (a AbsInfo) valid() bool { return a.Max > a.Min }

// unit maps v into [0, 1] over the axis range.
func (a AbsInfo) unit(v int32) float32 {
	if !a.valid() {
		return 0
	}
	f := float32(v-a.Min) / float32(a.Max-a.Min)
	return min(max(f, 0), 1)
}

// degrees converts a tilt value. Resolution is units per degree when the
// driver reports it; otherwise the range is taken as -90..90.
func (a AbsInfo) degrees(v int32) float32 {
	if a.Resolution > 0 {
		return float32(v) / float32(a.Resolution)
	}
	return a.unit(v)*180 - 90
}

// Ranges are the absolute axis ranges of a tablet.
type Ranges struct {
	X, Y     AbsInfo
	Pressure AbsInfo
	Distance AbsInfo
	TiltX    AbsInfo
	TiltY    AbsInfo
}

// Kind selects how a Decoder interprets a device.
type Kind uint8

const (
	KindMouse Kind = iota // relative motion, buttons, wheels
	KindPen               // absolute tablet with stylus tools
)

// mouseButtons maps evdev button codes to pointer buttons.
var mouseButtons = map[uint16]pointer.MouseButton{
	BtnLeft:   pointer.ButtonLeft,
	BtnRight:  pointer.ButtonRight,
	BtnMiddle: pointer.ButtonMiddle,
	BtnSide:   pointer.ButtonX1,
	BtnExtra:  pointer.ButtonX2,
}

// stylusButtons maps evdev stylus buttons to pen barrel buttons.
var stylusButtons = map[uint16]uint8{
	BtnStylus:  1,
	BtnStylus2: 2,
	BtnStylus3: 3,
}

type buttonChange struct {
	code uint16
	down bool
}

type tool uint8

const (
	toolNone tool = iota
	toolPen
	toolRubber
)

// DecoderConfig configures a Decoder.
type DecoderConfig struct {
	Kind   Kind
	Window *pointer.Window
	// MouseID is the device ID for KindMouse. Zero picks 1.
	MouseID pointer.MouseID
	// Name is reported with AddMouse or AddPenDevice.
	Name string
	// Handle identifies the device for pointer.Context.FindPenByHandle,
	// typically its path.
	Handle string
	// Ranges are required for KindPen.
	Ranges Ranges
	// EventTime passes kernel timestamps to the context instead of its
	// own clock.
	EventTime bool
}

// Decoder turns evdev frames into pointer samples. It must be used on the
// goroutine that owns the Context: a pen decoder feeds the queued pen
// mouse samples after every frame.
type Decoder struct {
	ctx *pointer.Context
	cfg DecoderConfig

	dropping bool
	ts       uint64

	// mouse frame
	dx, dy         int32
	wheelX, wheelY float32
	hiResX, hiResY bool
	buttons        []buttonChange

	// pen frame and state
	absX, absY int32
	moved      bool
	axes       [pointer.PenAxisCount]float32
	axisDirty  [pointer.PenAxisCount]bool
	curTool    tool
	nextTool   tool
	touch      bool
	touchDirty bool
	pen        pointer.PenID
}

// NewDecoder creates a decoder feeding ctx. A mouse decoder registers its
// device immediately; a pen is added when a tool comes into range and
// removed when it leaves.
func NewDecoder(ctx *pointer.Context, cfg DecoderConfig) *Decoder {
	if cfg.MouseID == 0 {
		cfg.MouseID = 1
	}
	d := &Decoder{ctx: ctx, cfg: cfg}
	if cfg.Kind == KindMouse {
		ctx.AddMouse(cfg.MouseID, cfg.Name, true)
	}
	return d
}

// Pen returns the pen currently in range, or zero.
func (d *Decoder) Pen() pointer.PenID { return d.pen }

// Frame handles every event of a frame.
func (d *Decoder) Frame(evs []Event) {
	for _, ev := range evs {
		d.Handle(ev)
	}
}

// Handle processes one event. Samples are sent to the context on
// SYN_REPORT. After SYN_DROPPED the partial frame is discarded.
func (d *Decoder) Handle(ev Event) {
	if d.cfg.EventTime && ev.Time > 0 {
		d.ts = uint64(ev.Time)
	}
	if ev.Type == EvSyn {
		switch ev.Code {
		case SynDropped:
			d.dropping = true
		case SynReport:
			if d.dropping {
				d.dropping = false
				d.reset()
				return
			}
			d.flush()
		}
		return
	}
	if d.dropping {
		return
	}
	if d.cfg.Kind == KindMouse {
		d.handleMouse(ev)
	} else {
		d.handlePen(ev)
	}
}

func (d *Decoder) handleMouse(ev Event) {
	switch ev.Type {
	case EvRel:
		switch ev.Code {
		case RelX:
			d.dx += ev.Value
		case RelY:
			d.dy += ev.Value
		case RelWheelHiRes:
			d.hiResY = true
			d.wheelY += float32(ev.Value) / hiResPerDetent
		case RelHWheelHiRes:
			d.hiResX = true
			d.wheelX += float32(ev.Value) / hiResPerDetent
		case RelWheel:
			if !d.hiResY {
				d.wheelY += float32(ev.Value)
			}
		case RelHWheel:
			if !d.hiResX {
				d.wheelX += float32(ev.Value)
			}
		}
	case EvKey:
		if _, ok := mouseButtons[ev.Code]; ok && ev.Value != 2 {
			d.buttons = append(d.buttons, buttonChange{ev.Code, ev.Value != 0})
		}
	}
}

func (d *Decoder) handlePen(ev Event) {
	r := &d.cfg.Ranges
	switch ev.Type {
	case EvAbs:
		switch ev.Code {
		case AbsX:
			d.absX, d.moved = ev.Value, true
		case AbsY:
			d.absY, d.moved = ev.Value, true
		case AbsPressure:
			d.setAxis(pointer.PenAxisPressure, r.Pressure.unit(ev.Value))
		case AbsDistance:
			d.setAxis(pointer.PenAxisDistance, r.Distance.unit(ev.Value))
		case AbsTiltX:
			d.setAxis(pointer.PenAxisXTilt, r.TiltX.degrees(ev.Value))
		case AbsTiltY:
			d.setAxis(pointer.PenAxisYTilt, r.TiltY.degrees(ev.Value))
		}
	case EvKey:
		switch ev.Code {
		case BtnToolPen, BtnToolRubber:
			t := toolPen
			if ev.Code == BtnToolRubber {
				t = toolRubber
			}
			switch {
			case ev.Value != 0:
				d.nextTool = t
			case d.nextTool == t:
				d.nextTool = toolNone
			}
		case BtnTouch:
			d.touch, d.touchDirty = ev.Value != 0, true
		default:
			if _, ok := stylusButtons[ev.Code]; ok && ev.Value != 2 {
				d.buttons = append(d.buttons, buttonChange{ev.Code, ev.Value != 0})
			}
		}
	}
}

func (d *Decoder) setAxis(a pointer.PenAxis, v float32) {
	d.axes[a] = v
	d.axisDirty[a] = true
}

func (d *Decoder) flush() {
	if d.cfg.Kind == KindMouse {
		d.flushMouse()
	} else {
		d.flushPen()
		d.ctx.PumpPenMouse()
	}
	d.reset()
}

func (d *Decoder) reset() {
	d.dx, d.dy = 0, 0
	d.wheelX, d.wheelY = 0, 0
	d.buttons = d.buttons[:0]
	d.moved = false
	d.axisDirty = [pointer.PenAxisCount]bool{}
	d.touchDirty = false
}

func (d *Decoder) flushMouse() {
	win, id := d.cfg.Window, d.cfg.MouseID
	if d.dx != 0 || d.dy != 0 {
		d.ctx.SendMouseMotion(d.ts, win, id, true, float32(d.dx), float32(d.dy))
	}
	for _, b := range d.buttons {
		d.ctx.SendMouseButton(d.ts, win, id, mouseButtons[b.code], b.down)
	}
	if d.wheelX != 0 || d.wheelY != 0 {
		d.ctx.SendMouseWheel(d.ts, win, id, d.wheelX, d.wheelY, pointer.WheelNormal)
	}
}

func (d *Decoder) flushPen() {
	win := d.cfg.Window
	if d.nextTool != toolNone && d.pen == 0 {
		d.pen = d.ctx.FindPenByHandle(d.cfg.Handle)
		if d.pen == 0 {
			d.pen = d.ctx.AddPenDevice(d.ts, d.cfg.Name, d.penInfo(), d.cfg.Handle)
		}
	}
	if d.pen == 0 {
		return
	}
	leaving := d.nextTool == toolNone
	if !leaving {
		d.curTool = d.nextTool
	}

	if d.moved && win != nil {
		r := &d.cfg.Ranges
		x := r.X.unit(d.absX) * float32(win.W)
		y := r.Y.unit(d.absY) * float32(win.H)
		d.ctx.SendPenMotion(d.ts, d.pen, win, x, y)
	}
	for a, dirty := range d.axisDirty {
		if dirty {
			d.ctx.SendPenAxis(d.ts, d.pen, win, pointer.PenAxis(a), d.axes[a])
		}
	}
	if d.touchDirty || (leaving && d.touch) {
		down := d.touch && !leaving
		d.ctx.SendPenTouch(d.ts, d.pen, win, d.curTool == toolRubber, down)
	}
	for _, b := range d.buttons {
		d.ctx.SendPenButton(d.ts, d.pen, win, stylusButtons[b.code], b.down)
	}

	if leaving {
		d.ctx.RemovePenDevice(d.ts, d.pen)
		d.pen = 0
		d.curTool = toolNone
		d.touch = false
	}
}

// penInfo derives capabilities from the axes the tablet reports.
func (d *Decoder) penInfo() pointer.PenInfo {
	r := &d.cfg.Ranges
	info := pointer.PenInfo{
		Capabilities: pointer.PenCapEraser,
		NumButtons:   len(stylusButtons),
		DeviceType:   pointer.PenDeviceIndirect,
	}
	if r.Pressure.valid() {
		info.Capabilities |= pointer.PenCapPressure
	}
	if r.Distance.valid() {
		info.Capabilities |= pointer.PenCapDistance
	}
	if r.TiltX.valid() {
		info.Capabilities |= pointer.PenCapXTilt
		info.MaxTilt = float32(math.Abs(float64(r.TiltX.degrees(r.TiltX.Max))))
	}
	if r.TiltY.valid() {
		info.Capabilities |= pointer.PenCapYTilt
	}
	return info
}
