package pointer

// eventStage buffers the events derived from one raw input sample so they
// reach the sink as focus-leave, then the sample's own events, then
// focus-enter, no matter which order the core produced them in.
type eventStage struct {
	depth int
	leave []Event
	main  []Event
	enter []Event
}

// beginSample opens a staging scope. Scopes nest; only the outermost
// endSample delivers.
func (c *Context) beginSample() {
	c.stage.depth++
}

func (c *Context) endSample() {
	if c.stage.depth == 0 {
		return
	}
	c.stage.depth--
	if c.stage.depth > 0 {
		return
	}
	st := &c.stage
	pending := make([]Event, 0, len(st.leave)+len(st.main)+len(st.enter))
	pending = append(pending, st.leave...)
	pending = append(pending, st.main...)
	pending = append(pending, st.enter...)
	st.leave, st.main, st.enter = st.leave[:0], st.main[:0], st.enter[:0]
	for _, ev := range pending {
		c.sink.PushEvent(ev)
	}
}

// emit sends ev to the sink, or stages it while a sample is open. It
// reports whether the event was posted; a type disabled in the sink is
// never posted.
func (c *Context) emit(ev Event) bool {
	if f, ok := c.sink.(EventFilter); ok && !f.EventEnabled(ev.Type) {
		c.debugf("event type disabled", "type", ev.Type)
		return false
	}
	ev.Timestamp = c.now(ev.Timestamp)
	if c.stage.depth == 0 {
		return c.sink.PushEvent(ev)
	}
	switch ev.Type {
	case EventWindowMouseLeave:
		c.stage.leave = append(c.stage.leave, ev)
	case EventWindowMouseEnter:
		c.stage.enter = append(c.stage.enter, ev)
	default:
		c.stage.main = append(c.stage.main, ev)
	}
	return true
}

// flushEvents drops pending events of type t, both staged and queued in the
// sink.
func (c *Context) flushEvents(t EventType) {
	drop := func(evs []Event) []Event {
		kept := evs[:0]
		for _, ev := range evs {
			if ev.Type != t {
				kept = append(kept, ev)
			}
		}
		return kept
	}
	c.stage.main = drop(c.stage.main)
	if f, ok := c.sink.(EventFlusher); ok {
		f.FlushEvents(t)
	}
}

// reportedWhich maps a source ID to the ID carried by mouse events.
// Outside true relative mode every physical mouse reports as GlobalMouseID;
// emulated touch and pen streams keep their sentinels.
func (c *Context) reportedWhich(id MouseID) uint32 {
	if id.isSynthetic() {
		return uint32(id)
	}
	if c.mouse.relativeMode && !c.mouse.warpEmulationActive {
		return uint32(id)
	}
	return uint32(GlobalMouseID)
}

// sendMouseTouch emits a finger event for the mouse-to-touch bridge. The
// position is normalized to the window size.
func (c *Context) sendMouseTouch(ts uint64, win *Window, t EventType, x, y float32) {
	if win == nil || win.W <= 0 || win.H <= 0 {
		return
	}
	var pressure float32
	if t != EventFingerUp {
		pressure = 1
	}
	c.emit(Event{
		Type:      t,
		Timestamp: ts,
		WindowID:  win.ID,
		TouchID:   MouseTouchID,
		FingerID:  0,
		X:         clamp01(x / float32(win.W)),
		Y:         clamp01(y / float32(win.H)),
		Pressure:  pressure,
	})
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
