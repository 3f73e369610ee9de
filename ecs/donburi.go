package ecs

import (
	"sync"

	"github.com/phanxgames/pointer"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// PointerEventType is the Donburi event type for pointer events.
var PointerEventType = events.NewEventType[pointer.Event]()

// DonburiSink publishes pointer events into a Donburi world.
type DonburiSink struct {
	world donburi.World

	mu       sync.Mutex // pen events may arrive from device goroutines
	disabled map[pointer.EventType]bool
}

var (
	_ pointer.EventSink   = (*DonburiSink)(nil)
	_ pointer.EventFilter = (*DonburiSink)(nil)
)

// NewDonburiSink creates a sink publishing to PointerEventType in world.
// Events are queued by Donburi and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) *DonburiSink {
	return &DonburiSink{world: world}
}

// PushEvent publishes ev unless its type is disabled.
func (s *DonburiSink) PushEvent(ev pointer.Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disabled[ev.Type] {
		return false
	}
	PointerEventType.Publish(s.world, ev)
	return true
}

// SetEventEnabled turns publishing of one event type on or off. The
// Context skips disabled types before building them.
func (s *DonburiSink) SetEventEnabled(t pointer.EventType, enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if enabled {
		delete(s.disabled, t)
		return
	}
	if s.disabled == nil {
		s.disabled = make(map[pointer.EventType]bool)
	}
	s.disabled[t] = true
}

// EventEnabled reports whether events of type t are published.
func (s *DonburiSink) EventEnabled(t pointer.EventType) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.disabled[t]
}
