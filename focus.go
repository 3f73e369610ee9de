package pointer

import "fmt"

// SetMouseFocus makes win the window under the pointer, emitting leave and
// enter events. The pointer forgets its position so the next motion sample
// reports a zero delta.
func (c *Context) SetMouseFocus(win *Window) {
	c.beginSample()
	defer c.endSample()
	c.setMouseFocus(win)
}

func (c *Context) setMouseFocus(win *Window) {
	m := &c.mouse
	if m.focus == win {
		return
	}
	if m.focus != nil {
		c.emit(Event{Type: EventWindowMouseLeave, WindowID: m.focus.ID})
	}
	m.focus = win
	m.hasPosition = false
	if win != nil {
		c.emit(Event{Type: EventWindowMouseEnter, WindowID: win.ID})
	}
	// re-evaluate cursor visibility for the new window
	c.SetCursor(nil)
}

// updateMouseFocus moves focus to or from win based on whether (x, y) is
// inside it. It returns false when the position is outside win, in which
// case the caller should not process the sample further.
func (c *Context) updateMouseFocus(ts uint64, win *Window, x, y float32, sendMotion bool) bool {
	m := &c.mouse
	inWindow := win.Flags&WindowMouseCapture != 0 || win.contains(x, y)
	if !inWindow {
		if win == m.focus {
			c.debugf("mouse left window", "window", win.ID)
			if sendMotion {
				c.sendMouseMotion(ts, win, GlobalMouseID, false, x, y)
			}
			c.setMouseFocus(nil)
		}
		return false
	}
	if win != m.focus {
		c.debugf("mouse entered window", "window", win.ID)
		c.setMouseFocus(win)
		if sendMotion {
			c.sendMouseMotion(ts, win, GlobalMouseID, false, x, y)
		}
	}
	return true
}

// CaptureMouse requests capture for the window with keyboard focus. The
// request persists across focus changes until it is withdrawn.
func (c *Context) CaptureMouse(enabled bool) error {
	if err := c.initialized(); err != nil {
		return err
	}
	if !c.supports(FeatureCaptureMouse) {
		return c.setError(fmt.Errorf("capture mouse: %w", ErrUnsupported))
	}
	if enabled && c.focusTarget() == nil {
		return c.setError(ErrNoFocus)
	}
	c.mouse.captureDesired = enabled
	return c.UpdateMouseCapture(false)
}

// UpdateMouseCapture recomputes which window, if any, holds capture. A
// window is captured when it has focus, no message box is showing, relative
// mode is off, and capture was requested or auto-capture is on with a
// button held. forceRelease drops capture unconditionally. If the backend
// rejects the change the previous capture state is restored.
func (c *Context) UpdateMouseCapture(forceRelease bool) error {
	if !c.supports(FeatureCaptureMouse) {
		return nil
	}
	m := &c.mouse
	var target *Window
	if !forceRelease && c.messageBoxes == 0 && !m.relativeMode &&
		(m.captureDesired || (c.hints.AutoCapture && c.buttonState(false) != 0)) {
		target = c.focusTarget()
	}
	if target == m.captureWindow {
		return nil
	}

	prev := m.captureWindow
	if prev != nil {
		prev.Flags &^= WindowMouseCapture
	}
	if target != nil {
		target.Flags |= WindowMouseCapture
	}
	m.captureWindow = target

	if err := c.backend.CaptureMouse(target); err != nil {
		if target != nil {
			target.Flags &^= WindowMouseCapture
		}
		if prev != nil {
			prev.Flags |= WindowMouseCapture
		}
		m.captureWindow = prev
		return c.setError(fmt.Errorf("capture mouse: %w", err))
	}
	c.debugf("mouse capture changed", "window", windowID(target))
	return nil
}

// CaptureWindow returns the window holding capture.
func (c *Context) CaptureWindow() *Window {
	return c.mouse.captureWindow
}
