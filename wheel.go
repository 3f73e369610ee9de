package pointer

import "math"

// SendMouseWheel feeds a wheel sample. x and y are fractional scroll
// amounts. Whole ticks are carried out of per-axis accumulators and
// reported alongside the raw values. A (0, 0) sample is ignored.
func (c *Context) SendMouseWheel(ts uint64, win *Window, id MouseID, x, y float32, dir WheelDirection) bool {
	c.PumpPenMouse()
	if x == 0 && y == 0 {
		return false
	}
	ts = c.now(ts)
	c.beginSample()
	defer c.endSample()

	m := &c.mouse
	ix := accumulateWheel(&m.wheelAccX, x)
	iy := accumulateWheel(&m.wheelAccY, y)

	ev := Event{
		Type:      EventMouseWheel,
		Timestamp: ts,
		Which:     c.reportedWhich(id),
		Direction: dir,
		WheelX:    x,
		WheelY:    y,
		IntegerX:  ix,
		IntegerY:  iy,
	}
	if c.hints.IntegerMode&IntegerWheel != 0 {
		if ix == 0 && iy == 0 {
			c.debugf("mouse wheel held, below one tick", "which", id)
			return false
		}
		// legacy consumers read whole ticks from the float fields
		ev.WheelX, ev.WheelY = float32(ix), float32(iy)
	}

	if win != nil {
		c.setMouseFocus(win)
	}
	ev.WindowID = windowID(m.focus)
	ev.X, ev.Y = m.x, m.y
	return c.emit(ev)
}

// accumulateWheel adds v to *acc and removes the whole ticks it yields. A
// change of direction discards the fraction left from the other direction.
func accumulateWheel(acc *float32, v float32) int32 {
	switch {
	case v > 0 && *acc < 0:
		*acc = 0
	case v < 0 && *acc > 0:
		*acc = 0
	}
	*acc += v
	var ticks float64
	if *acc > 0 {
		ticks = math.Floor(float64(*acc))
	} else {
		ticks = math.Ceil(float64(*acc))
	}
	*acc -= float32(ticks)
	return int32(ticks)
}
