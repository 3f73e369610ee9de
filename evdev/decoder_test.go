package evdev

import (
	"testing"

	"github.com/phanxgames/pointer"
)

func newDecoderContext(t *testing.T) (*pointer.Context, *pointer.Queue, *pointer.Window) {
	t.Helper()
	q := pointer.NewQueue()
	h := pointer.DefaultHints()
	h.PenMouseEvents = false
	h.PenTouchEvents = false
	now := uint64(1e9)
	c := pointer.NewContext(pointer.Config{Sink: q, Hints: &h, Clock: func() uint64 { return now }})
	return c, q, pointer.NewWindow(1, 200, 100)
}

func filter(evs []pointer.Event, t pointer.EventType) []pointer.Event {
	var out []pointer.Event
	for _, ev := range evs {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

func syn() Event { return Event{Type: EvSyn, Code: SynReport} }

func TestDecoderMouseFrame(t *testing.T) {
	c, q, win := newDecoderContext(t)
	d := NewDecoder(c, DecoderConfig{Kind: KindMouse, Window: win, Name: "usb mouse"})
	if added := filter(q.Drain(), pointer.EventMouseAdded); len(added) != 1 {
		t.Fatalf("expected 1 mouse added event, got %d", len(added))
	}

	d.Frame([]Event{
		{Type: EvRel, Code: RelX, Value: 3},
		{Type: EvRel, Code: RelY, Value: -2},
		{Type: EvRel, Code: RelX, Value: 1},
		{Type: EvKey, Code: BtnRight, Value: 1},
		{Type: EvRel, Code: RelWheel, Value: -1},
		syn(),
	})
	evs := q.Drain()
	motion := filter(evs, pointer.EventMouseMotion)
	if len(motion) != 1 {
		t.Fatalf("expected 1 motion event, got %d", len(motion))
	}
	if motion[0].XRel != 4 || motion[0].YRel != -2 {
		t.Errorf("rel = (%v, %v), want (4, -2)", motion[0].XRel, motion[0].YRel)
	}
	down := filter(evs, pointer.EventMouseButtonDown)
	if len(down) != 1 || down[0].Button != uint8(pointer.ButtonRight) {
		t.Errorf("button down = %+v, want right", down)
	}
	wheel := filter(evs, pointer.EventMouseWheel)
	if len(wheel) != 1 || wheel[0].WheelY != -1 {
		t.Errorf("wheel = %+v, want y=-1", wheel)
	}
}

func TestDecoderPrefersHiResWheel(t *testing.T) {
	c, q, win := newDecoderContext(t)
	d := NewDecoder(c, DecoderConfig{Kind: KindMouse, Window: win})
	q.Drain()

	d.Frame([]Event{
		{Type: EvRel, Code: RelWheelHiRes, Value: 60},
		{Type: EvRel, Code: RelWheel, Value: 1},
		syn(),
	})
	wheel := filter(q.Drain(), pointer.EventMouseWheel)
	if len(wheel) != 1 || wheel[0].WheelY != 0.5 {
		t.Errorf("wheel = %+v, want y=0.5", wheel)
	}
}

func TestDecoderAutoRepeatIgnored(t *testing.T) {
	c, q, win := newDecoderContext(t)
	d := NewDecoder(c, DecoderConfig{Kind: KindMouse, Window: win})
	q.Drain()

	d.Frame([]Event{{Type: EvKey, Code: BtnLeft, Value: 2}, syn()})
	if evs := q.Drain(); len(evs) != 0 {
		t.Errorf("expected no events for key repeat, got %d", len(evs))
	}
}

func TestDecoderDropsAfterSynDropped(t *testing.T) {
	c, q, win := newDecoderContext(t)
	d := NewDecoder(c, DecoderConfig{Kind: KindMouse, Window: win})
	q.Drain()

	d.Handle(Event{Type: EvRel, Code: RelX, Value: 5})
	d.Handle(Event{Type: EvSyn, Code: SynDropped})
	d.Handle(Event{Type: EvRel, Code: RelX, Value: 7})
	d.Handle(syn())
	if evs := q.Drain(); len(evs) != 0 {
		t.Fatalf("expected dropped frame to be discarded, got %d events", len(evs))
	}

	d.Frame([]Event{{Type: EvRel, Code: RelX, Value: 2}, syn()})
	motion := filter(q.Drain(), pointer.EventMouseMotion)
	if len(motion) != 1 || motion[0].XRel != 2 {
		t.Errorf("motion after resync = %+v, want xrel 2", motion)
	}
}

func tabletRanges() Ranges {
	return Ranges{
		X:        AbsInfo{Max: 2000},
		Y:        AbsInfo{Max: 1000},
		Pressure: AbsInfo{Max: 4095},
		TiltX:    AbsInfo{Min: -90, Max: 90},
		TiltY:    AbsInfo{Min: -90, Max: 90},
	}
}

func TestDecoderPenStroke(t *testing.T) {
	c, q, win := newDecoderContext(t)
	d := NewDecoder(c, DecoderConfig{Kind: KindPen, Window: win, Name: "tablet", Handle: "/dev/input/event7", Ranges: tabletRanges()})

	d.Frame([]Event{
		{Type: EvKey, Code: BtnToolPen, Value: 1},
		{Type: EvAbs, Code: AbsX, Value: 1000},
		{Type: EvAbs, Code: AbsY, Value: 250},
		syn(),
	})
	id := d.Pen()
	if id == 0 {
		t.Fatalf("expected a pen in range, last error %v", c.LastError())
	}
	evs := q.Drain()
	if len(filter(evs, pointer.EventPenProximityIn)) != 1 {
		t.Errorf("expected proximity in, got %v", evs)
	}
	motion := filter(evs, pointer.EventPenMotion)
	if len(motion) != 1 || motion[0].X != 100 || motion[0].Y != 25 {
		t.Errorf("motion = %+v, want (100, 25)", motion)
	}

	d.Frame([]Event{
		{Type: EvKey, Code: BtnTouch, Value: 1},
		{Type: EvAbs, Code: AbsPressure, Value: 4095},
		{Type: EvKey, Code: BtnStylus, Value: 1},
		syn(),
	})
	evs = q.Drain()
	axis := filter(evs, pointer.EventPenAxis)
	if len(axis) != 1 || axis[0].Axis != pointer.PenAxisPressure || axis[0].Value != 1 {
		t.Errorf("axis = %+v, want pressure 1", axis)
	}
	if downs := filter(evs, pointer.EventPenDown); len(downs) != 1 || downs[0].Eraser {
		t.Errorf("pen down = %+v, want one tip down", downs)
	}
	if btn := filter(evs, pointer.EventPenButtonDown); len(btn) != 1 || btn[0].Button != 1 {
		t.Errorf("button = %+v, want barrel button 1", btn)
	}

	// Tool leaves while still touching: the tip is lifted first.
	d.Frame([]Event{{Type: EvKey, Code: BtnToolPen, Value: 0}, syn()})
	evs = q.Drain()
	if len(filter(evs, pointer.EventPenUp)) != 1 {
		t.Errorf("expected pen up before leaving, got %v", evs)
	}
	if len(filter(evs, pointer.EventPenProximityOut)) != 1 {
		t.Errorf("expected proximity out, got %v", evs)
	}
	if d.Pen() != 0 || c.PenConnected(id) {
		t.Error("pen still registered after the tool left")
	}
}

func TestDecoderEraser(t *testing.T) {
	c, q, win := newDecoderContext(t)
	d := NewDecoder(c, DecoderConfig{Kind: KindPen, Window: win, Handle: "tablet", Ranges: tabletRanges()})

	d.Frame([]Event{
		{Type: EvKey, Code: BtnToolRubber, Value: 1},
		{Type: EvKey, Code: BtnTouch, Value: 1},
		syn(),
	})
	downs := filter(q.Drain(), pointer.EventPenDown)
	if len(downs) != 1 || !downs[0].Eraser {
		t.Errorf("pen down = %+v, want eraser", downs)
	}
}

func TestDecoderPenInfo(t *testing.T) {
	c, _, win := newDecoderContext(t)
	d := NewDecoder(c, DecoderConfig{Kind: KindPen, Window: win, Handle: "tablet", Ranges: tabletRanges()})
	d.Frame([]Event{{Type: EvKey, Code: BtnToolPen, Value: 1}, syn()})

	info, err := c.PenInfo(d.Pen())
	if err != nil {
		t.Fatalf("PenInfo: %v", err)
	}
	want := pointer.PenCapPressure | pointer.PenCapXTilt | pointer.PenCapYTilt | pointer.PenCapEraser
	if info.Capabilities != want {
		t.Errorf("capabilities = %b, want %b", info.Capabilities, want)
	}
	if info.MaxTilt != 90 {
		t.Errorf("MaxTilt = %v, want 90", info.MaxTilt)
	}
}

func TestAbsInfo(t *testing.T) {
	a := AbsInfo{Min: 100, Max: 300}
	tests := []struct {
		v    int32
		want float32
	}{
		{100, 0},
		{200, 0.5},
		{300, 1},
		{50, 0},
		{400, 1},
	}
	for _, tt := range tests {
		if got := a.unit(tt.v); got != tt.want {
			t.Errorf("unit(%d) = %v, want %v", tt.v, got, tt.want)
		}
	}
	if got := (AbsInfo{}).unit(5); got != 0 {
		t.Errorf("unit on empty range = %v, want 0", got)
	}
	if got := (AbsInfo{Resolution: 10}).degrees(-450); got != -45 {
		t.Errorf("degrees with resolution = %v, want -45", got)
	}
}

func TestDecoderFeedsPenMouse(t *testing.T) {
	q := pointer.NewQueue()
	h := pointer.DefaultHints()
	h.PenMouseEvents = true
	h.PenTouchEvents = false
	c := pointer.NewContext(pointer.Config{Sink: q, Hints: &h})
	win := pointer.NewWindow(1, 200, 100)
	d := NewDecoder(c, DecoderConfig{Kind: KindPen, Window: win, Handle: "tablet", Ranges: tabletRanges()})

	d.Frame([]Event{
		{Type: EvKey, Code: BtnToolPen, Value: 1},
		{Type: EvAbs, Code: AbsX, Value: 500},
		{Type: EvAbs, Code: AbsY, Value: 500},
		{Type: EvKey, Code: BtnTouch, Value: 1},
		syn(),
	})
	if n := c.PendingPenMouse(); n != 0 {
		t.Errorf("pen mouse samples left queued = %d, want 0", n)
	}
	evs := q.Drain()
	down := filter(evs, pointer.EventMouseButtonDown)
	if len(down) != 1 || down[0].Which != uint32(pointer.PenMouseID) {
		t.Errorf("emulated button down = %+v, want one from the pen mouse", down)
	}
	if motion := filter(evs, pointer.EventMouseMotion); len(motion) != 1 || motion[0].X != 50 {
		t.Errorf("emulated motion = %+v, want x 50", motion)
	}
}
