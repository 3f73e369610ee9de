package pointer

import (
	"fmt"
	"math"
)

// SendMouseButton feeds a button transition from a backend. The click count
// is computed by the context. It reports whether an event was posted; a
// transition that does not change the source's mask is suppressed.
func (c *Context) SendMouseButton(ts uint64, win *Window, id MouseID, button MouseButton, down bool) bool {
	return c.sendMouseButton(ts, win, id, button, down, -1)
}

// SendMouseButtonClicks is SendMouseButton for platforms that report their
// own click count. Negative counts are treated as zero.
func (c *Context) SendMouseButtonClicks(ts uint64, win *Window, id MouseID, button MouseButton, down bool, clicks int) bool {
	return c.sendMouseButton(ts, win, id, button, down, max(clicks, 0))
}

func (c *Context) sendMouseButton(ts uint64, win *Window, id MouseID, button MouseButton, down bool, clicks int) bool {
	c.PumpPenMouse()
	if button == 0 || button > maxButton {
		c.setError(fmt.Errorf("%w: mouse button %d", ErrInvalidParam, button))
		return false
	}
	ts = c.now(ts)
	c.beginSample()
	defer c.endSample()

	m := &c.mouse
	if !c.hints.TouchMouseEvents && id == TouchMouseID {
		return false
	}

	var src *inputSource
	if down {
		src = c.source(id, true)
	} else {
		src = c.releaseSource(id, button)
	}
	if src == nil {
		c.debugf("mouse button release dropped, no source", "which", id, "button", button)
		return false
	}

	bit := button.Mask()
	buttons := src.buttons
	if down {
		buttons |= bit
	} else {
		buttons &^= bit
	}

	reported := uint8(min(clicks, math.MaxUint8))
	if clicks < 0 {
		reported = c.classifyClick(src, button, down, ts)
	}

	if buttons == src.buttons {
		c.debugf("mouse button dropped, no change", "which", src.id, "button", button, "down", down)
		return false
	}

	// presses focus the window before the state change is published
	if win != nil && down {
		c.updateMouseFocus(ts, win, m.x, m.y, true)
	}
	src.buttons = buttons

	t := EventMouseButtonUp
	if down {
		t = EventMouseButtonDown
	}
	posted := c.emit(Event{
		Type:      t,
		Timestamp: ts,
		WindowID:  windowID(m.focus),
		Which:     c.reportedWhich(src.id),
		Button:    uint8(button),
		Down:      down,
		Clicks:    reported,
		X:         m.x,
		Y:         m.y,
	})

	if win != nil && !down {
		c.updateMouseFocus(ts, win, m.x, m.y, true)
	}
	_ = c.UpdateMouseCapture(false)

	if c.hints.MouseTouchEvents && !id.isSynthetic() && button == ButtonLeft {
		m.trackMouseDown = down
		ft := EventFingerUp
		if down {
			ft = EventFingerDown
		}
		c.sendMouseTouch(ts, win, ft, m.x, m.y)
	}
	return posted
}
