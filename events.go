package pointer

// EventType identifies the kind of event in an Event.
type EventType uint16

const (
	EventMouseAdded       EventType = iota + 1 // a mouse was attached
	EventMouseRemoved                          // a mouse was detached
	EventMouseMotion                           // the pointer moved
	EventMouseButtonDown                       // a button was pressed
	EventMouseButtonUp                         // a button was released
	EventMouseWheel                            // the wheel scrolled
	EventWindowMouseEnter                      // the pointer entered a window
	EventWindowMouseLeave                      // the pointer left a window
	EventPenProximityIn                        // a pen came into range
	EventPenProximityOut                       // a pen left range
	EventPenDown                               // a pen tip touched the surface
	EventPenUp                                 // a pen tip left the surface
	EventPenMotion                             // a pen moved
	EventPenAxis                               // a pen axis changed
	EventPenButtonDown                         // a pen barrel button was pressed
	EventPenButtonUp                           // a pen barrel button was released
	EventFingerDown                            // a finger touched
	EventFingerUp                              // a finger lifted
	EventFingerMotion                          // a finger moved
)

var eventTypeNames = map[EventType]string{
	EventMouseAdded:       "mouse_added",
	EventMouseRemoved:     "mouse_removed",
	EventMouseMotion:      "mouse_motion",
	EventMouseButtonDown:  "mouse_button_down",
	EventMouseButtonUp:    "mouse_button_up",
	EventMouseWheel:       "mouse_wheel",
	EventWindowMouseEnter: "window_mouse_enter",
	EventWindowMouseLeave: "window_mouse_leave",
	EventPenProximityIn:   "pen_proximity_in",
	EventPenProximityOut:  "pen_proximity_out",
	EventPenDown:          "pen_down",
	EventPenUp:            "pen_up",
	EventPenMotion:        "pen_motion",
	EventPenAxis:          "pen_axis",
	EventPenButtonDown:    "pen_button_down",
	EventPenButtonUp:      "pen_button_up",
	EventFingerDown:       "finger_down",
	EventFingerUp:         "finger_up",
	EventFingerMotion:     "finger_motion",
}

func (t EventType) String() string {
	if s, ok := eventTypeNames[t]; ok {
		return s
	}
	return "unknown"
}

// Event carries data for every kind of pointer event. Fields that do not
// apply to Type are zero. All coordinates are window-relative floats except
// finger events, whose X and Y are normalized to [0, 1].
type Event struct {
	Type      EventType `json:"type"`
	Timestamp uint64    `json:"timestamp"` // nanoseconds, monotonic
	WindowID  WindowID  `json:"window_id,omitempty"`

	// Which is the reporting device. For mouse events it is a MouseID,
	// rewritten to GlobalMouseID outside relative mode; for pen events
	// it is a PenID.
	Which uint32 `json:"which"`

	// State is the aggregated ButtonMask for motion events, or the pen's
	// PenInputFlags for pen events.
	State uint32 `json:"state,omitempty"`

	X    float32 `json:"x"`
	Y    float32 `json:"y"`
	XRel float32 `json:"xrel,omitempty"`
	YRel float32 `json:"yrel,omitempty"`

	Button uint8 `json:"button,omitempty"` // mouse or pen button number
	Down   bool  `json:"down,omitempty"`
	Clicks uint8 `json:"clicks,omitempty"` // 1 single, 2 double, ...

	// Wheel values. WheelX/Y are the fractional amounts; IntegerX/Y are
	// the whole ticks carried out of the wheel accumulators.
	Direction WheelDirection `json:"direction,omitempty"`
	WheelX    float32        `json:"wheel_x,omitempty"`
	WheelY    float32        `json:"wheel_y,omitempty"`
	IntegerX  int32          `json:"integer_x,omitempty"`
	IntegerY  int32          `json:"integer_y,omitempty"`

	// Pen fields.
	Eraser bool    `json:"eraser,omitempty"`
	Axis   PenAxis `json:"axis,omitempty"`
	Value  float32 `json:"value,omitempty"`

	// Touch fields.
	TouchID  TouchID `json:"touch_id,omitempty"`
	FingerID uint64  `json:"finger_id,omitempty"`
	Pressure float32 `json:"pressure,omitempty"`
}

// MouseID returns Which as a MouseID.
func (e Event) MouseID() MouseID { return MouseID(e.Which) }

// PenID returns Which as a PenID.
func (e Event) PenID() PenID { return PenID(e.Which) }

// EventSink receives events produced by a Context. PushEvent reports whether
// the event was accepted.
type EventSink interface {
	PushEvent(ev Event) bool
}

// EventFilter is implemented by sinks that can reject whole event types.
// The Context consults it before building an event, so a disabled type
// reports "not posted" from the Send* call.
type EventFilter interface {
	EventEnabled(t EventType) bool
}

// EventFlusher is implemented by sinks that can drop queued events of one
// type. The Context flushes pending motion when relative mode toggles.
type EventFlusher interface {
	FlushEvents(t EventType)
}

// SinkFunc adapts a function to the EventSink interface.
type SinkFunc func(ev Event) bool

// PushEvent calls f(ev).
func (f SinkFunc) PushEvent(ev Event) bool { return f(ev) }
