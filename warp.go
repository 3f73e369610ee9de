package pointer

import (
	"fmt"
	"time"
)

// warpEmulationThreshold is the longest gap between two center warps that
// still switches warp emulation on.
const warpEmulationThreshold = 30 * time.Millisecond

// WarpMouseInWindow moves the pointer to (x, y) in win, or in the focused
// window when win is nil. Applications that keep warping to the window
// center while the cursor is hidden are switched to relative mode instead
// (see Hints.WarpEmulation).
func (c *Context) WarpMouseInWindow(win *Window, x, y float32) {
	c.maybeEnableWarpEmulation(win, x, y)
	c.performWarp(win, x, y, c.mouse.warpEmulationActive)
}

// WarpMouseGlobal moves the pointer in desktop coordinates.
func (c *Context) WarpMouseGlobal(x, y float32) error {
	if err := c.initialized(); err != nil {
		return err
	}
	if !c.supports(FeatureWarpMouseGlobal) {
		return c.setError(fmt.Errorf("warp mouse global: %w", ErrUnsupported))
	}
	if err := c.backend.WarpMouseGlobal(x, y); err != nil {
		return c.setError(fmt.Errorf("warp mouse global: %w", err))
	}
	return nil
}

// performWarp moves the pointer. A warp always resets the previous
// position, so the motion it causes reports a zero delta. In relative mode
// the warp only updates the tracked position unless ignoreRelative is set
// or Hints.RelativeWarpMotion asks for motion.
func (c *Context) performWarp(win *Window, x, y float32, ignoreRelative bool) {
	m := &c.mouse
	if win == nil {
		win = m.focus
	}
	if win == nil || win.Flags&WindowMinimized != 0 {
		return
	}

	m.lastX, m.lastY = x, y
	m.hasPosition = false
	m.clickMotionX, m.clickMotionY = 0, 0

	if m.relativeMode && !ignoreRelative && !c.hints.RelativeWarpMotion {
		m.x, m.y = x, y
		m.hasPosition = true
		return
	}

	if c.supports(FeatureWarpMouse) && (!m.relativeMode || m.relativeModeWarp) {
		err := c.backend.WarpMouse(win, x, y)
		if err == nil {
			return
		}
		c.warnf("warp mouse failed, synthesizing motion", "window", win.ID, "err", err)
	}
	c.beginSample()
	c.sendMouseMotion(c.now(0), win, GlobalMouseID, false, x, y)
	c.endSample()
}

// maybeEnableWarpEmulation watches for the warp-to-center polling pattern.
// The first center warp arms the detector; a second one within
// warpEmulationThreshold enters relative mode.
func (c *Context) maybeEnableWarpEmulation(win *Window, x, y float32) {
	m := &c.mouse
	if m.warpEmulationProhibited || !c.hints.WarpEmulation || m.cursorShown || m.warpEmulationActive {
		return
	}
	if win == nil {
		win = m.focus
	}
	if win == nil {
		return
	}
	cx, cy := win.center()
	if x < floor32(cx) || x > ceil32(cx) || y < floor32(cy) || y > ceil32(cy) {
		return
	}
	now := c.now(0)
	if m.lastCenterWarp != 0 && now-m.lastCenterWarp < uint64(warpEmulationThreshold) {
		m.warpEmulationActive = true
		if err := c.setRelativeMouseMode(true); err != nil {
			m.warpEmulationActive = false
		} else {
			c.debugf("warp emulation enabled", "window", win.ID)
		}
	}
	m.lastCenterWarp = now
}

// SetRelativeMouseMode turns relative mode on or off. In relative mode the
// cursor is hidden, motion is reported as deltas from each device, and the
// pointer is confined to the focused window. Calling it also stops warp
// emulation from ever engaging.
func (c *Context) SetRelativeMouseMode(enabled bool) error {
	if err := c.initialized(); err != nil {
		return err
	}
	c.mouse.warpEmulationActive = false
	c.DisableWarpEmulation()
	return c.setRelativeMouseMode(enabled)
}

// DisableWarpEmulation leaves warp emulation if it is active and keeps it
// from engaging again. Applications that manage relative mode themselves
// call it implicitly through SetRelativeMouseMode.
func (c *Context) DisableWarpEmulation() {
	m := &c.mouse
	if m.warpEmulationActive {
		_ = c.setRelativeMouseMode(false)
	}
	m.warpEmulationProhibited = true
}

// RelativeMouseMode reports whether relative mode is on.
func (c *Context) RelativeMouseMode() bool {
	return c.mouse.relativeMode
}

func (c *Context) setRelativeMouseMode(enabled bool) error {
	m := &c.mouse
	if enabled == m.relativeMode {
		return nil
	}
	focus := c.focusTarget()

	switch {
	case !enabled && m.relativeModeWarp:
		m.relativeModeWarp = false
	case enabled && c.hints.RelativeModeWarp && c.supports(FeatureWarpMouse):
		m.relativeModeWarp = true
	default:
		err := fmt.Errorf("relative mouse mode: %w", ErrUnsupported)
		if c.supports(FeatureRelativeMode) {
			err = c.backend.SetRelativeMouseMode(enabled)
		}
		if err != nil && enabled {
			if !c.supports(FeatureWarpMouse) {
				return c.setError(fmt.Errorf("%w: %v", ErrNoRelativeMode, err))
			}
			m.relativeModeWarp = true
		}
	}
	m.relativeMode = enabled

	c.beginSample()
	if enabled {
		// update cursor visibility before the pointer may be warped
		c.SetCursor(nil)
		if focus != nil {
			c.setMouseFocus(focus)
			if m.relativeModeWarp || c.hints.RelativeModeCenter {
				cx, cy := focus.center()
				c.performWarp(focus, cx, cy, true)
			}
		}
	}
	if focus != nil {
		if !enabled {
			// put the cursor back where the application expects it
			c.performWarp(focus, m.x, m.y, true)
		}
		_ = c.UpdateMouseCapture(false)
	}
	if !enabled {
		m.warpEmulationActive = false
		c.SetCursor(nil)
	}
	c.flushEvents(EventMouseMotion)
	c.endSample()
	return nil
}
