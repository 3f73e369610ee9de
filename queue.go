package pointer

import "sync"

// Queue is the default EventSink: a FIFO of events with per-type enable
// switches and synchronous watchers. It is safe for concurrent use, since
// pen events may be pushed from a device goroutine.
type Queue struct {
	mu       sync.Mutex
	events   []Event
	disabled map[EventType]bool
	watchers []watcher
	nextID   uint32
}

type watcher struct {
	id uint32
	fn func(Event)
}

// NewQueue creates an empty queue with every event type enabled.
func NewQueue() *Queue {
	return &Queue{disabled: make(map[EventType]bool)}
}

// CallbackHandle allows removing a registered watcher.
type CallbackHandle struct {
	id uint32
	q  *Queue
}

// Remove unregisters the watcher so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.q == nil {
		return
	}
	h.q.mu.Lock()
	defer h.q.mu.Unlock()
	for i, w := range h.q.watchers {
		if w.id == h.id {
			h.q.watchers = append(h.q.watchers[:i], h.q.watchers[i+1:]...)
			return
		}
	}
}

// Watch registers fn to be called for every accepted event, in push order,
// right after the event is queued.
func (q *Queue) Watch(fn func(Event)) CallbackHandle {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.nextID++
	q.watchers = append(q.watchers, watcher{id: q.nextID, fn: fn})
	return CallbackHandle{id: q.nextID, q: q}
}

// SetEventEnabled turns delivery of one event type on or off. Disabling a
// type also drops any queued events of that type.
func (q *Queue) SetEventEnabled(t EventType, enabled bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if enabled {
		delete(q.disabled, t)
		return
	}
	q.disabled[t] = true
	q.flushLocked(t)
}

// EventEnabled reports whether events of type t are accepted.
func (q *Queue) EventEnabled(t EventType) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return !q.disabled[t]
}

// PushEvent appends ev unless its type is disabled.
func (q *Queue) PushEvent(ev Event) bool {
	q.mu.Lock()
	if q.disabled[ev.Type] {
		q.mu.Unlock()
		return false
	}
	ws := make([]watcher, len(q.watchers))
	copy(ws, q.watchers)
	q.events = append(q.events, ev)
	q.mu.Unlock()

	for _, w := range ws {
		w.fn(ev)
	}
	return true
}

// Poll removes and returns the oldest event.
func (q *Queue) Poll() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return Event{}, false
	}
	ev := q.events[0]
	q.events = q.events[1:]
	return ev, true
}

// Drain removes and returns every queued event.
func (q *Queue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.events
	q.events = nil
	return out
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// FlushEvents drops queued events of type t.
func (q *Queue) FlushEvents(t EventType) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.flushLocked(t)
}

func (q *Queue) flushLocked(t EventType) {
	kept := q.events[:0]
	for _, ev := range q.events {
		if ev.Type != t {
			kept = append(kept, ev)
		}
	}
	q.events = kept
}
