package pointer

// clickState tracks multi-click detection for one button of one source.
type clickState struct {
	lastTimestamp uint64
	lastX, lastY  float32 // click motion at the last press
	count         uint8
}

// inputSource is the per-device button record. Sources are created lazily
// on the first press and live until their device is removed.
type inputSource struct {
	id      MouseID
	buttons ButtonMask
	clicks  []clickState // indexed by button-1, grown on demand
}

func (c *Context) findSource(id MouseID) *inputSource {
	for _, s := range c.sources {
		if s.id == id {
			return s
		}
	}
	return nil
}

// source returns the record for id, creating it on a press. A release for
// an unknown device returns nil.
func (c *Context) source(id MouseID, down bool) *inputSource {
	if s := c.findSource(id); s != nil {
		return s
	}
	if !down {
		return nil
	}
	s := &inputSource{id: id}
	c.sources = append(c.sources, s)
	return s
}

// releaseSource picks the source a release of button should be applied to.
// Some platforms report the press on one device and the release on another;
// when the named device does not hold the button but another source does,
// the release goes to that source instead.
func (c *Context) releaseSource(id MouseID, button MouseButton) *inputSource {
	named := c.findSource(id)
	if named != nil && named.buttons.Has(button) {
		return named
	}
	for _, s := range c.sources {
		if s.buttons.Has(button) {
			return s
		}
	}
	return named
}

func (c *Context) removeSource(id MouseID) {
	for i, s := range c.sources {
		if s.id == id {
			c.sources = append(c.sources[:i], c.sources[i+1:]...)
			return
		}
	}
}

// buttonState ORs every source's mask. Touch-synthesized buttons are
// excluded unless includeTouch is set.
func (c *Context) buttonState(includeTouch bool) ButtonMask {
	var m ButtonMask
	for _, s := range c.sources {
		if !includeTouch && s.id == TouchMouseID {
			continue
		}
		m |= s.buttons
	}
	return m
}

// clickFor returns the click record for button, growing the table.
func (s *inputSource) clickFor(button MouseButton) *clickState {
	i := int(button) - 1
	if i >= len(s.clicks) {
		grown := make([]clickState, i+1)
		copy(grown, s.clicks)
		s.clicks = grown
	}
	return &s.clicks[i]
}
