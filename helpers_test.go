package pointer

import (
	"errors"
	"image"
	"testing"
)

// fakeBackend records every call the context makes into it.
type fakeBackend struct {
	UnsupportedBackend
	features Feature

	warps      []Vec2
	captures   []*Window
	captureErr error
	relative   []bool
	relErr     error
	shown      []*Cursor
	moved      int
	freed      int
	created    int
}

func (b *fakeBackend) Features() Feature { return b.features }

func (b *fakeBackend) CreateCursor(img *image.NRGBA, hotX, hotY int) (any, error) {
	b.created++
	return b.created, nil
}

func (b *fakeBackend) CreateSystemCursor(id SystemCursor) (any, error) {
	b.created++
	return b.created, nil
}

func (b *fakeBackend) ShowCursor(cur *Cursor) error {
	b.shown = append(b.shown, cur)
	return nil
}

func (b *fakeBackend) MoveCursor(*Cursor) error {
	b.moved++
	return nil
}

func (b *fakeBackend) FreeCursor(*Cursor) { b.freed++ }

func (b *fakeBackend) WarpMouse(win *Window, x, y float32) error {
	b.warps = append(b.warps, Vec2{x, y})
	return nil
}

func (b *fakeBackend) SetRelativeMouseMode(enabled bool) error {
	if b.relErr != nil {
		return b.relErr
	}
	b.relative = append(b.relative, enabled)
	return nil
}

func (b *fakeBackend) CaptureMouse(win *Window) error {
	if b.captureErr != nil {
		return b.captureErr
	}
	b.captures = append(b.captures, win)
	return nil
}

var errBackend = errors.New("backend refused")

// fakeClock is a manually advanced nanosecond clock.
type fakeClock struct {
	now uint64
}

func (c *fakeClock) read() uint64 { return c.now }

func (c *fakeClock) advanceMS(ms int) { c.now += uint64(ms) * 1e6 }

// newTestContext builds a context over a fresh Queue with a fake clock
// starting at one second.
func newTestContext(t *testing.T, b Backend) (*Context, *Queue, *fakeClock) {
	t.Helper()
	q := NewQueue()
	clk := &fakeClock{now: 1e9}
	if b == nil {
		b = UnsupportedBackend{}
	}
	c := NewContext(Config{Sink: q, Backend: b, Clock: clk.read})
	return c, q, clk
}

// drainTypes returns the types of every queued event and empties the queue.
func drainTypes(q *Queue) []EventType {
	evs := q.Drain()
	out := make([]EventType, len(evs))
	for i, ev := range evs {
		out[i] = ev.Type
	}
	return out
}

// only returns the events of type t.
func only(evs []Event, t EventType) []Event {
	var out []Event
	for _, ev := range evs {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

func equalTypes(a, b []EventType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
