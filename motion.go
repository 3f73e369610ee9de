package pointer

import "math"

// SendMouseMotion feeds one motion sample from a backend. With relative set,
// x and y are a delta; otherwise they are a window position. A zero ts uses
// the context clock. It reports whether a motion event was posted.
func (c *Context) SendMouseMotion(ts uint64, win *Window, id MouseID, relative bool, x, y float32) bool {
	c.PumpPenMouse()
	ts = c.now(ts)
	c.beginSample()
	defer c.endSample()

	if win != nil && !relative {
		if !c.updateMouseFocus(ts, win, x, y, !id.isSynthetic()) {
			return false
		}
	}
	return c.sendMouseMotion(ts, win, id, relative, x, y)
}

// sendMouseMotion normalizes a sample into the global pointer and posts it.
func (c *Context) sendMouseMotion(ts uint64, win *Window, id MouseID, relative bool, x, y float32) bool {
	m := &c.mouse

	if !c.hints.TouchMouseEvents && id == TouchMouseID {
		return false
	}

	if !id.isSynthetic() && !relative && m.relativeModeWarp && win != nil {
		cx, cy := win.center()
		if x >= floor32(cx) && x <= ceil32(cx) && y >= floor32(cy) && y <= ceil32(cy) {
			m.lastX, m.lastY = cx, cy
			if !c.hints.RelativeWarpMotion {
				return false
			}
		} else if win.Flags&WindowInputFocus != 0 {
			c.recenter(ts, win, id, cx, cy)
		}
	}

	var xrel, yrel float32
	if relative {
		x, y = c.scaleDeltas(x, y)
		if c.hints.IntegerMode&IntegerMotion != 0 {
			x, m.residualX = carryResidual(m.residualX + x)
			y, m.residualY = carryResidual(m.residualY + y)
		}
		xrel, yrel = x, y
		x, y = c.confine(win, m.lastX+xrel, m.lastY+yrel)
	} else {
		if c.hints.IntegerMode&IntegerMotion != 0 {
			x, y = trunc32(x), trunc32(y)
		}
		x, y = c.confine(win, x, y)
		if m.hasPosition {
			xrel, yrel = x-m.lastX, y-m.lastY
		}
	}

	if m.hasPosition && xrel == 0 && yrel == 0 {
		c.debugf("mouse motion dropped, no change", "which", id, "x", x, "y", y)
		return false
	}

	if c.hints.MouseTouchEvents && !id.isSynthetic() && !relative && m.trackMouseDown {
		c.sendMouseTouch(ts, win, EventFingerMotion, x, y)
	}

	// touch motion with nothing pressed is only positioning the pointer
	if id == TouchMouseID && c.buttonState(true) == 0 {
		xrel, yrel = 0, 0
	}

	switch {
	case !m.hasPosition:
		m.x, m.y = x, y
		m.hasPosition = true
	case m.relativeMode:
		m.x, m.y = c.confine(win, m.x+xrel, m.y+yrel)
	default:
		m.x, m.y = x, y
	}
	m.xDelta += xrel
	m.yDelta += yrel
	m.clickMotionX += xrel
	m.clickMotionY += yrel

	if m.cursorShown && !m.relativeMode && c.curCursor != nil && c.supports(FeatureMoveCursor) {
		if err := c.backend.MoveCursor(c.curCursor); err != nil {
			c.warnf("move cursor failed", "err", err)
		}
	}

	posted := c.emit(Event{
		Type:      EventMouseMotion,
		Timestamp: ts,
		WindowID:  windowID(m.focus),
		Which:     c.reportedWhich(id),
		State:     uint32(c.buttonState(true)),
		X:         m.x,
		Y:         m.y,
		XRel:      xrel,
		YRel:      yrel,
	})

	if relative {
		m.lastX, m.lastY = m.x, m.y
	} else {
		m.lastX, m.lastY = x, y
	}
	return posted
}

// recenter pulls the pointer back to the window center while relative mode
// is implemented by warping.
func (c *Context) recenter(ts uint64, win *Window, id MouseID, cx, cy float32) {
	if c.supports(FeatureWarpMouse) {
		if err := c.backend.WarpMouse(win, cx, cy); err == nil {
			return
		}
	}
	c.sendMouseMotion(ts, win, id, false, cx, cy)
}

// confine clamps a position to the window, or to the window's mouse rect
// when one is set. A captured window is not confined. Past the right or
// bottom edge the last device position wins if it is further out, so
// positions reported just outside a growing window are not pulled back.
func (c *Context) confine(win *Window, x, y float32) (float32, float32) {
	if win == nil || win.Flags&WindowMouseCapture != 0 {
		return x, y
	}
	xMin, xMax := 0, win.W-1
	yMin, yMax := 0, win.H-1
	if win.MouseRect != nil {
		if r, ok := win.MouseRect.Intersect(Rect{W: win.W, H: win.H}); ok {
			xMin, yMin = r.X, r.Y
			xMax, yMax = r.X+r.W-1, r.Y+r.H-1
		}
	}
	if x >= float32(xMax+1) {
		x = max(float32(xMax), c.mouse.lastX)
	}
	if x < float32(xMin) {
		x = float32(xMin)
	}
	if y >= float32(yMax+1) {
		y = max(float32(yMax), c.mouse.lastY)
	}
	if y < float32(yMin) {
		y = float32(yMin)
	}
	return x, y
}

// carryResidual splits v into its whole part and the fraction to carry into
// the next sample.
func carryResidual(v float32) (whole, residual float32) {
	w := trunc32(v)
	return w, v - w
}

func floor32(v float32) float32 { return float32(math.Floor(float64(v))) }
func ceil32(v float32) float32  { return float32(math.Ceil(float64(v))) }
func trunc32(v float32) float32 { return float32(math.Trunc(float64(v))) }
