package pointer

import (
	"errors"
	"testing"
)

func TestAddMouseIdempotent(t *testing.T) {
	c, q, _ := newTestContext(t, nil)
	for i := 0; i < 2; i++ {
		if err := c.AddMouse(5, "mouse", true); err != nil {
			t.Fatal(err)
		}
	}
	if got := c.Mice(); len(got) != 1 || got[0] != 5 {
		t.Errorf("Mice() = %v, want [5]", got)
	}
	if got := drainTypes(q); !equalTypes(got, []EventType{EventMouseAdded}) {
		t.Errorf("events = %v, want one added event", got)
	}
}

func TestRemoveMouse(t *testing.T) {
	c, q, _ := newTestContext(t, nil)
	c.AddMouse(5, "a", false)
	c.AddMouse(6, "b", false)
	c.RemoveMouse(5, true)
	c.RemoveMouse(99, true)

	if got := c.Mice(); len(got) != 1 || got[0] != 6 {
		t.Errorf("Mice() = %v, want [6]", got)
	}
	evs := q.Drain()
	if len(evs) != 1 || evs[0].Type != EventMouseRemoved || evs[0].Which != 5 {
		t.Errorf("events = %+v, want one removed event for 5", evs)
	}
	if !c.HasMouse() {
		t.Error("HasMouse() = false, want true")
	}
}

func TestMouseName(t *testing.T) {
	c, _, _ := newTestContext(t, nil)
	c.AddMouse(3, "trackball", false)
	name, err := c.MouseName(3)
	if err != nil || name != "trackball" {
		t.Errorf("MouseName(3) = %q, %v, want trackball", name, err)
	}
	if _, err := c.MouseName(4); !errors.Is(err, ErrInvalidMouseID) {
		t.Errorf("MouseName(4) err = %v, want ErrInvalidMouseID", err)
	}
}

func TestReservedMouseIDs(t *testing.T) {
	tests := []struct {
		name string
		id   MouseID
	}{
		{"zero", GlobalMouseID},
		{"touch", TouchMouseID},
		{"pen", PenMouseID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _ := newTestContext(t, nil)
			err := c.AddMouse(tt.id, "bad", false)
			if !errors.Is(err, ErrInvalidMouseID) {
				t.Errorf("AddMouse(%#x) = %v, want ErrInvalidMouseID", uint32(tt.id), err)
			}
			if !errors.Is(c.LastError(), ErrInvalidMouseID) {
				t.Errorf("LastError = %v, want ErrInvalidMouseID", c.LastError())
			}
			if c.HasMouse() {
				t.Error("reserved ID was registered")
			}
		})
	}
}

func TestReservedMouseIDPanicsInDebug(t *testing.T) {
	c, _, _ := newTestContext(t, nil)
	c.SetDebugMode(true)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for mouse ID 0 in debug mode")
		}
	}()
	c.AddMouse(0, "bad", false)
}

func TestZeroContextNotInitialized(t *testing.T) {
	var c Context
	if err := c.AddMouse(1, "a", false); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("AddMouse on zero Context = %v, want ErrNotInitialized", err)
	}
	if err := c.SetRelativeMouseMode(true); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("SetRelativeMouseMode on zero Context = %v, want ErrNotInitialized", err)
	}
}
