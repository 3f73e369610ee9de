package pointer

import (
	"errors"
	"testing"
)

// hiddenPointer returns a context whose pointer sits in a 100x100 window
// with the cursor hidden, the precondition for warp emulation.
func hiddenPointer(t *testing.T, b *fakeBackend) (*Context, *Queue, *fakeClock, *Window) {
	t.Helper()
	c, q, clk := newTestContext(t, b)
	win := NewWindow(1, 100, 100)
	c.SendMouseMotion(0, win, 1, false, 10, 10)
	c.HideCursor()
	q.Drain()
	return c, q, clk, win
}

func TestWarpEmulation(t *testing.T) {
	tests := []struct {
		name    string
		gapMS   int
		prevent func(c *Context)
		want    bool
	}{
		{name: "two center warps within threshold", gapMS: 10, want: true},
		{name: "gap too long", gapMS: 40, want: false},
		{name: "disabled by application", gapMS: 10, prevent: func(c *Context) { c.DisableWarpEmulation() }, want: false},
		{name: "hint off", gapMS: 10, prevent: func(c *Context) {
			c.SetHint("mouse_emulate_warp_with_relative", "0")
		}, want: false},
		{name: "cursor shown", gapMS: 10, prevent: func(c *Context) { c.ShowCursor() }, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, clk, win := hiddenPointer(t, &fakeBackend{features: FeatureWarpMouse})
			if tt.prevent != nil {
				tt.prevent(c)
			}
			c.WarpMouseInWindow(win, 50, 50)
			clk.advanceMS(tt.gapMS)
			c.WarpMouseInWindow(win, 50, 50)

			st := c.PointerState()
			if st.WarpEmulationActive != tt.want {
				t.Errorf("WarpEmulationActive = %v, want %v", st.WarpEmulationActive, tt.want)
			}
			if c.RelativeMouseMode() != tt.want {
				t.Errorf("RelativeMouseMode = %v, want %v", c.RelativeMouseMode(), tt.want)
			}
		})
	}
}

func TestWarpEmulationNeedsCenter(t *testing.T) {
	c, _, clk, win := hiddenPointer(t, &fakeBackend{features: FeatureWarpMouse})
	c.WarpMouseInWindow(win, 10, 10)
	clk.advanceMS(5)
	c.WarpMouseInWindow(win, 10, 10)
	if c.RelativeMouseMode() {
		t.Error("off-center warps enabled relative mode")
	}
}

func TestShowCursorEndsWarpEmulation(t *testing.T) {
	c, q, clk, win := hiddenPointer(t, &fakeBackend{features: FeatureWarpMouse})
	c.WarpMouseInWindow(win, 50, 50)
	clk.advanceMS(5)
	c.WarpMouseInWindow(win, 50, 50)
	if !c.PointerState().WarpEmulationActive {
		t.Fatal("warp emulation did not engage")
	}

	// deltas under warp emulation are still reported as the global mouse
	q.Drain()
	c.SendMouseMotion(0, win, 7, true, 3, 0)
	for _, ev := range only(q.Drain(), EventMouseMotion) {
		if ev.Which != uint32(GlobalMouseID) {
			t.Errorf("Which = %d under warp emulation, want %d", ev.Which, GlobalMouseID)
		}
	}

	c.ShowCursor()
	if c.RelativeMouseMode() || c.PointerState().WarpEmulationActive {
		t.Error("ShowCursor left warp emulation running")
	}
}

func TestWarpEmulationHintOffLeavesRelativeMode(t *testing.T) {
	c, _, clk, win := hiddenPointer(t, &fakeBackend{features: FeatureWarpMouse})
	c.WarpMouseInWindow(win, 50, 50)
	clk.advanceMS(5)
	c.WarpMouseInWindow(win, 50, 50)

	h := c.Hints()
	h.WarpEmulation = false
	c.SetHints(h)
	if c.RelativeMouseMode() {
		t.Error("relative mode kept after warp emulation hint was turned off")
	}
}

func TestWarpResetsPreviousPosition(t *testing.T) {
	c, q, _, win := hiddenPointer(t, &fakeBackend{})
	c.ShowCursor()
	q.Drain()

	// without backend warp support the warp is synthesized as motion
	c.WarpMouseInWindow(win, 80, 80)
	evs := only(q.Drain(), EventMouseMotion)
	if len(evs) != 1 {
		t.Fatalf("got %d motion events, want 1", len(evs))
	}
	if evs[0].X != 80 || evs[0].XRel != 0 || evs[0].YRel != 0 {
		t.Errorf("warp motion = (%v, %v) rel (%v, %v), want (80, 80) rel (0, 0)",
			evs[0].X, evs[0].Y, evs[0].XRel, evs[0].YRel)
	}
}

func TestWarpMouseGlobalUnsupported(t *testing.T) {
	c, _, _ := newTestContext(t, nil)
	if err := c.WarpMouseGlobal(1, 1); !errors.Is(err, ErrUnsupported) {
		t.Errorf("WarpMouseGlobal = %v, want ErrUnsupported", err)
	}
}

func TestRelativeModeNative(t *testing.T) {
	b := &fakeBackend{features: FeatureRelativeMode | FeatureWarpMouse}
	c, q, _ := newTestContext(t, b)
	win := NewWindow(1, 100, 100)
	c.SetKeyboardFocus(win)
	c.SendMouseMotion(0, win, 1, false, 10, 10)

	if err := c.SetRelativeMouseMode(true); err != nil {
		t.Fatal(err)
	}
	if len(b.relative) != 1 || !b.relative[0] {
		t.Fatalf("backend relative calls = %v, want [true]", b.relative)
	}
	// pending motion is discarded when the mode changes
	if n := len(only(q.Drain(), EventMouseMotion)); n != 0 {
		t.Errorf("%d motion events survived the mode change", n)
	}

	c.SendMouseMotion(0, win, 3, true, 4, -2)
	evs := only(q.Drain(), EventMouseMotion)
	if len(evs) != 1 {
		t.Fatalf("got %d motion events, want 1", len(evs))
	}
	if evs[0].Which != 3 {
		t.Errorf("Which = %d, want 3", evs[0].Which)
	}
	if evs[0].XRel != 4 || evs[0].YRel != -2 {
		t.Errorf("rel = (%v, %v), want (4, -2)", evs[0].XRel, evs[0].YRel)
	}

	c.SetRelativeMouseMode(false)
	if c.RelativeMouseMode() {
		t.Error("relative mode still on")
	}
	if len(b.relative) != 2 || b.relative[1] {
		t.Errorf("backend relative calls = %v, want [true false]", b.relative)
	}
}

func TestRelativeModeUnavailable(t *testing.T) {
	c, _, _ := newTestContext(t, nil)
	err := c.SetRelativeMouseMode(true)
	if !errors.Is(err, ErrNoRelativeMode) {
		t.Errorf("SetRelativeMouseMode = %v, want ErrNoRelativeMode", err)
	}
	if c.RelativeMouseMode() {
		t.Error("relative mode reported on after failure")
	}
}

func TestRelativeModeFallsBackToWarping(t *testing.T) {
	b := &fakeBackend{features: FeatureRelativeMode | FeatureWarpMouse, relErr: errBackend}
	c, _, _ := newTestContext(t, b)
	win := NewWindow(1, 100, 100)
	c.SetKeyboardFocus(win)
	if err := c.SetRelativeMouseMode(true); err != nil {
		t.Fatalf("SetRelativeMouseMode = %v, want warp fallback", err)
	}
	if len(b.warps) == 0 || b.warps[len(b.warps)-1] != (Vec2{50, 50}) {
		t.Errorf("warps = %v, want a warp to the center", b.warps)
	}
}

func TestRelativeModeWarp(t *testing.T) {
	b := &fakeBackend{features: FeatureRelativeMode | FeatureWarpMouse}
	c, q, _ := newTestContext(t, b)
	c.SetHint("mouse_relative_mode_warp", "1")
	win := NewWindow(1, 100, 100)
	c.SetKeyboardFocus(win)
	c.SetRelativeMouseMode(true)
	if len(b.relative) != 0 {
		t.Errorf("native relative mode used: %v", b.relative)
	}
	q.Drain()

	c.SendMouseMotion(0, win, 1, false, 60, 50)
	warps := len(b.warps)
	// the warp arriving back at the center is not motion
	if c.SendMouseMotion(0, win, 1, false, 50, 50) {
		t.Error("recenter arrival posted motion")
	}
	c.SendMouseMotion(0, win, 1, false, 57, 50)
	if len(b.warps) != warps+1 {
		t.Errorf("warps = %d, want %d", len(b.warps), warps+1)
	}

	evs := only(q.Drain(), EventMouseMotion)
	if len(evs) == 0 {
		t.Fatal("no motion events")
	}
	last := evs[len(evs)-1]
	if last.XRel != 7 {
		t.Errorf("XRel = %v, want 7", last.XRel)
	}
	if last.Which != 1 {
		t.Errorf("Which = %d, want 1", last.Which)
	}
}

func TestRelativeWarpMotionHint(t *testing.T) {
	tests := []struct {
		name   string
		motion bool
		want   int
	}{
		{"silent", false, 0},
		{"reported", true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, q, _ := newTestContext(t, &fakeBackend{features: FeatureRelativeMode})
			h := c.Hints()
			h.RelativeWarpMotion = tt.motion
			h.RelativeModeCenter = false
			c.SetHints(h)
			win := NewWindow(1, 100, 100)
			c.SetKeyboardFocus(win)
			c.SetRelativeMouseMode(true)
			q.Drain()

			c.WarpMouseInWindow(win, 20, 30)
			if got := len(only(q.Drain(), EventMouseMotion)); got != tt.want {
				t.Errorf("motion events = %d, want %d", got, tt.want)
			}
			if x, y, _ := c.MouseState(); x != 20 || y != 30 {
				t.Errorf("position = (%v, %v), want (20, 30)", x, y)
			}
		})
	}
}
