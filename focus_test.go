package pointer

import (
	"errors"
	"testing"
)

func TestFocusEnterLeaveOrder(t *testing.T) {
	c, q, _ := newTestContext(t, nil)
	a := NewWindow(1, 100, 100)
	b := NewWindow(2, 100, 100)

	c.SendMouseMotion(0, a, 1, false, 10, 10)
	got := drainTypes(q)
	want := []EventType{EventMouseMotion, EventWindowMouseEnter}
	if !equalTypes(got, want) {
		t.Errorf("entering a: events = %v, want %v", got, want)
	}

	c.SendMouseMotion(0, b, 1, false, 20, 20)
	got = drainTypes(q)
	want = []EventType{EventWindowMouseLeave, EventMouseMotion, EventWindowMouseEnter}
	if !equalTypes(got, want) {
		t.Errorf("moving to b: events = %v, want %v", got, want)
	}
	if c.MouseFocus() != b {
		t.Error("focus did not move to b")
	}
}

func TestLeavingWindowDropsFocus(t *testing.T) {
	c, q, _ := newTestContext(t, nil)
	win := NewWindow(1, 100, 100)
	c.SendMouseMotion(0, win, 1, false, 90, 50)
	q.Drain()

	if c.SendMouseMotion(0, win, 1, false, 120, 50) {
		t.Error("out-of-window sample posted as the caller's motion")
	}
	evs := q.Drain()
	if c.MouseFocus() != nil {
		t.Error("focus kept after leaving the window")
	}
	types := make([]EventType, len(evs))
	for i, ev := range evs {
		types[i] = ev.Type
	}
	want := []EventType{EventWindowMouseLeave, EventMouseMotion}
	if !equalTypes(types, want) {
		t.Errorf("events = %v, want %v", types, want)
	}
	if evs[1].X != 99 {
		t.Errorf("edge motion x = %v, want 99", evs[1].X)
	}
}

func TestSetMouseFocusForgetsPosition(t *testing.T) {
	c, _, _ := newTestContext(t, nil)
	a := NewWindow(1, 100, 100)
	c.SendMouseMotion(0, a, 1, false, 10, 10)
	c.SetMouseFocus(nil)
	if c.PointerState().HasPosition {
		t.Error("HasPosition still set after focus change")
	}
}

func TestAutoCapture(t *testing.T) {
	b := &fakeBackend{features: FeatureCaptureMouse}
	c, _, _ := newTestContext(t, b)
	win := NewWindow(1, 100, 100)
	c.SetKeyboardFocus(win)
	c.SendMouseMotion(0, win, 1, false, 10, 10)

	c.SendMouseButton(0, win, 1, ButtonLeft, true)
	if c.CaptureWindow() != win || win.Flags&WindowMouseCapture == 0 {
		t.Fatal("button press did not capture the window")
	}
	c.SendMouseButton(0, win, 1, ButtonLeft, false)
	if c.CaptureWindow() != nil || win.Flags&WindowMouseCapture != 0 {
		t.Error("release did not drop capture")
	}
	if len(b.captures) != 2 || b.captures[0] != win || b.captures[1] != nil {
		t.Errorf("backend captures = %v, want [win nil]", b.captures)
	}
}

func TestAutoCaptureIgnoresTouch(t *testing.T) {
	b := &fakeBackend{features: FeatureCaptureMouse}
	c, _, _ := newTestContext(t, b)
	win := NewWindow(1, 100, 100)
	c.SetKeyboardFocus(win)
	c.SendMouseMotion(0, win, TouchMouseID, false, 10, 10)
	c.SendMouseButton(0, win, TouchMouseID, ButtonLeft, true)
	if c.CaptureWindow() != nil {
		t.Error("touch press captured the mouse")
	}
}

func TestCaptureRollback(t *testing.T) {
	b := &fakeBackend{features: FeatureCaptureMouse}
	c, _, _ := newTestContext(t, b)
	a := NewWindow(1, 100, 100)
	other := NewWindow(2, 100, 100)
	c.SetKeyboardFocus(a)
	if err := c.CaptureMouse(true); err != nil {
		t.Fatal(err)
	}

	b.captureErr = errBackend
	c.SetKeyboardFocus(other)
	if c.CaptureWindow() != a {
		t.Errorf("capture window = %v, want rolled back to a", c.CaptureWindow())
	}
	if a.Flags&WindowMouseCapture == 0 {
		t.Error("a lost its capture flag")
	}
	if other.Flags&WindowMouseCapture != 0 {
		t.Error("other kept a capture flag after the failed grab")
	}
	if !errors.Is(c.LastError(), errBackend) {
		t.Errorf("LastError = %v, want backend error", c.LastError())
	}
}

func TestCaptureMouseErrors(t *testing.T) {
	c, _, _ := newTestContext(t, nil)
	if err := c.CaptureMouse(true); !errors.Is(err, ErrUnsupported) {
		t.Errorf("CaptureMouse without backend support = %v, want ErrUnsupported", err)
	}

	c, _, _ = newTestContext(t, &fakeBackend{features: FeatureCaptureMouse})
	if err := c.CaptureMouse(true); !errors.Is(err, ErrNoFocus) {
		t.Errorf("CaptureMouse without focus = %v, want ErrNoFocus", err)
	}
}

func TestMessageBoxSuspendsCapture(t *testing.T) {
	b := &fakeBackend{features: FeatureCaptureMouse}
	c, _, _ := newTestContext(t, b)
	win := NewWindow(1, 100, 100)
	c.SetKeyboardFocus(win)
	c.CaptureMouse(true)

	c.SetMessageBoxActive(true)
	if c.CaptureWindow() != nil {
		t.Error("capture held while a message box is open")
	}
	c.SetMessageBoxActive(false)
	if c.CaptureWindow() != win {
		t.Error("capture not restored after the message box closed")
	}
}

func TestEventOrderInvariant(t *testing.T) {
	// every leave precedes the sample's own events; every enter follows them
	c, q, _ := newTestContext(t, nil)
	wins := []*Window{NewWindow(1, 50, 50), NewWindow(2, 50, 50), NewWindow(3, 50, 50)}
	for i := 0; i < 9; i++ {
		win := wins[i%3]
		c.SendMouseButton(0, win, 1, ButtonLeft, i%2 == 0)
		checkSampleOrder(t, i, q.Drain())
		c.SendMouseMotion(0, win, 1, false, float32(5+i), 5)
		checkSampleOrder(t, i, q.Drain())
	}
}

func checkSampleOrder(t *testing.T, sample int, evs []Event) {
	t.Helper()
	sawMain, sawEnter := false, false
	for _, ev := range evs {
		switch ev.Type {
		case EventWindowMouseLeave:
			if sawMain || sawEnter {
				t.Fatalf("sample %d: leave after other events: %v", sample, evs)
			}
		case EventWindowMouseEnter:
			sawEnter = true
		default:
			if sawEnter {
				t.Fatalf("sample %d: event %v after enter", sample, ev.Type)
			}
			sawMain = true
		}
	}
}
