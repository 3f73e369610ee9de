package pointer

import (
	"math"
	"time"
)

// classifyClick updates multi-click bookkeeping for a button transition and
// returns the click count to report. A press restarts the count when the
// previous press is older than the double-click interval or the pointer has
// moved beyond the double-click radius since then. Counts saturate at 255.
func (c *Context) classifyClick(src *inputSource, button MouseButton, down bool, ts uint64) uint8 {
	cs := src.clickFor(button)
	m := &c.mouse
	if down {
		interval := uint64(time.Duration(c.hints.DoubleClickTime) * time.Millisecond)
		radius := float64(c.hints.DoubleClickRadius)
		if ts >= cs.lastTimestamp+interval ||
			math.Abs(float64(m.clickMotionX-cs.lastX)) > radius ||
			math.Abs(float64(m.clickMotionY-cs.lastY)) > radius {
			cs.count = 0
		}
		cs.lastTimestamp = ts
		cs.lastX, cs.lastY = m.clickMotionX, m.clickMotionY
		if cs.count < math.MaxUint8 {
			cs.count++
		}
	}
	if cs.count == 0 {
		return 1
	}
	return cs.count
}
