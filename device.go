package pointer

import "fmt"

type mouseDevice struct {
	id   MouseID
	name string
}

// AddMouse registers a physical mouse. Adding a known ID is a no-op. With
// notify set an EventMouseAdded is emitted.
func (c *Context) AddMouse(id MouseID, name string, notify bool) error {
	if err := c.initialized(); err != nil {
		return err
	}
	if err := c.checkMouseID(id, "AddMouse"); err != nil {
		return err
	}
	if c.mouseIndex(id) >= 0 {
		return nil
	}
	c.mice = append(c.mice, mouseDevice{id: id, name: name})
	if notify {
		c.emit(Event{Type: EventMouseAdded, Which: uint32(id)})
	}
	return nil
}

// RemoveMouse unregisters a mouse and discards its button source. Unknown
// IDs are ignored.
func (c *Context) RemoveMouse(id MouseID, notify bool) {
	i := c.mouseIndex(id)
	if i < 0 {
		return
	}
	c.mice = append(c.mice[:i], c.mice[i+1:]...)
	c.removeSource(id)
	if notify {
		c.emit(Event{Type: EventMouseRemoved, Which: uint32(id)})
	}
}

// HasMouse reports whether any mouse is registered.
func (c *Context) HasMouse() bool {
	return len(c.mice) > 0
}

// Mice returns the registered mouse IDs in the order they were added.
func (c *Context) Mice() []MouseID {
	out := make([]MouseID, len(c.mice))
	for i, m := range c.mice {
		out[i] = m.id
	}
	return out
}

// MouseName returns the name a mouse was registered with.
func (c *Context) MouseName(id MouseID) (string, error) {
	if err := c.checkMouseID(id, "MouseName"); err != nil {
		return "", err
	}
	i := c.mouseIndex(id)
	if i < 0 {
		return "", c.setError(fmt.Errorf("%w: %d not registered", ErrInvalidMouseID, id))
	}
	return c.mice[i].name, nil
}

func (c *Context) mouseIndex(id MouseID) int {
	for i, m := range c.mice {
		if m.id == id {
			return i
		}
	}
	return -1
}
