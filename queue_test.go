package pointer

import "testing"

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()
	for i := 1; i <= 3; i++ {
		q.PushEvent(Event{Type: EventMouseMotion, Timestamp: uint64(i)})
	}
	for i := 1; i <= 3; i++ {
		ev, ok := q.Poll()
		if !ok || ev.Timestamp != uint64(i) {
			t.Errorf("Poll %d = %v, %v", i, ev.Timestamp, ok)
		}
	}
	if _, ok := q.Poll(); ok {
		t.Error("Poll on empty queue returned an event")
	}
}

func TestQueueWatchers(t *testing.T) {
	q := NewQueue()
	var seen []EventType
	h := q.Watch(func(ev Event) { seen = append(seen, ev.Type) })
	q.PushEvent(Event{Type: EventMouseButtonDown})
	h.Remove()
	q.PushEvent(Event{Type: EventMouseButtonUp})

	if len(seen) != 1 || seen[0] != EventMouseButtonDown {
		t.Errorf("watcher saw %v, want [MouseButtonDown]", seen)
	}
	if q.Len() != 2 {
		t.Errorf("Len = %d, want 2", q.Len())
	}
	CallbackHandle{}.Remove()
}

func TestQueueDisableFlushes(t *testing.T) {
	q := NewQueue()
	q.PushEvent(Event{Type: EventMouseMotion})
	q.PushEvent(Event{Type: EventMouseWheel})
	q.SetEventEnabled(EventMouseMotion, false)

	if q.PushEvent(Event{Type: EventMouseMotion}) {
		t.Error("disabled type accepted")
	}
	want := []EventType{EventMouseWheel}
	if got := drainTypes(q); !equalTypes(got, want) {
		t.Errorf("queued = %v, want %v", got, want)
	}
	q.SetEventEnabled(EventMouseMotion, true)
	if !q.EventEnabled(EventMouseMotion) {
		t.Error("type not re-enabled")
	}
}

func TestDisabledTypeNotPosted(t *testing.T) {
	c, q, _ := newTestContext(t, nil)
	q.SetEventEnabled(EventMouseMotion, false)
	win := NewWindow(1, 100, 100)
	if c.SendMouseMotion(0, win, 1, false, 10, 10) {
		t.Error("SendMouseMotion reported a disabled event as posted")
	}
	// the state still moved
	if x, y, _ := c.MouseState(); x != 10 || y != 10 {
		t.Errorf("position = (%v, %v), want (10, 10)", x, y)
	}
	want := []EventType{EventWindowMouseEnter}
	if got := drainTypes(q); !equalTypes(got, want) {
		t.Errorf("queued = %v, want %v", got, want)
	}
}

func TestSinkFunc(t *testing.T) {
	var got []Event
	sink := SinkFunc(func(ev Event) bool {
		got = append(got, ev)
		return true
	})
	c := NewContext(Config{Sink: sink, Backend: UnsupportedBackend{}})
	c.SendMouseWheel(0, nil, 1, 0, 1, WheelFlipped)
	if len(got) != 1 || got[0].Direction != WheelFlipped {
		t.Errorf("sink got %v", got)
	}
	if got[0].Timestamp == 0 {
		t.Error("event not timestamped")
	}
}
