package pointer

// penMouseSample is a mouse sample emulated from a pen. Pens may be driven
// from device goroutines while the mouse state belongs to the event
// goroutine, so these samples wait in a queue until PumpPenMouse.
type penMouseSample struct {
	ts     uint64
	win    *Window
	motion bool
	x, y   float32
	button MouseButton
	down   bool
}

func (c *Context) queuePenMouse(s penMouseSample) {
	c.penMouseMu.Lock()
	c.penMouse = append(c.penMouse, s)
	c.penMouseMu.Unlock()
}

// PumpPenMouse feeds the mouse samples emulated from pens since the last
// call and returns how many it fed. It must be called on the event
// goroutine. The mouse Send calls and PumpInjected call it first, so a
// backend only needs it when pens are its sole input.
func (c *Context) PumpPenMouse() int {
	if c.pumping {
		return 0
	}
	c.penMouseMu.Lock()
	pending := c.penMouse
	c.penMouse = nil
	c.penMouseMu.Unlock()
	if len(pending) == 0 {
		return 0
	}

	c.pumping = true
	defer func() { c.pumping = false }()
	for _, s := range pending {
		if s.motion {
			c.SendMouseMotion(s.ts, s.win, PenMouseID, false, s.x, s.y)
		} else {
			c.SendMouseButton(s.ts, s.win, PenMouseID, s.button, s.down)
		}
	}
	return len(pending)
}

// PendingPenMouse returns the number of queued pen mouse samples.
func (c *Context) PendingPenMouse() int {
	c.penMouseMu.Lock()
	defer c.penMouseMu.Unlock()
	return len(c.penMouse)
}
