// Package evdev reads Linux input devices (/dev/input/event*) and feeds
// their events to a pointer.Context.
//
// A [Parser] splits the raw input_event stream into [Event] values, a
// [Decoder] turns SYN_REPORT frames into mouse or pen samples, and [Device]
// handles opening, grabbing and reading a device node.
package evdev

// Event types.
const (
	EvSyn uint16 = 0x00
	EvKey uint16 = 0x01
	EvRel uint16 = 0x02
	EvAbs uint16 = 0x03
)

// Synchronization codes.
const (
	SynReport  uint16 = 0x00
	SynDropped uint16 = 0x03
)

// Mouse buttons.
const (
	BtnLeft   uint16 = 0x110
	BtnRight  uint16 = 0x111
	BtnMiddle uint16 = 0x112
	BtnSide   uint16 = 0x113
	BtnExtra  uint16 = 0x114
)

// Stylus tools and buttons.
const (
	BtnToolPen    uint16 = 0x140
	BtnToolRubber uint16 = 0x141
	BtnStylus3    uint16 = 0x149
	BtnTouch      uint16 = 0x14a
	BtnStylus     uint16 = 0x14b
	BtnStylus2    uint16 = 0x14c
)

// Relative axes.
const (
	RelX           uint16 = 0x00
	RelY           uint16 = 0x01
	RelHWheel      uint16 = 0x06
	RelWheel       uint16 = 0x08
	RelWheelHiRes  uint16 = 0x0b
	RelHWheelHiRes uint16 = 0x0c
)

// Absolute axes.
const (
	AbsX        uint16 = 0x00
	AbsY        uint16 = 0x01
	AbsPressure uint16 = 0x18
	AbsDistance uint16 = 0x19
	AbsTiltX    uint16 = 0x1a
	AbsTiltY    uint16 = 0x1b
)

// hiResPerDetent is the REL_WHEEL_HI_RES value of one wheel notch.
const hiResPerDetent = 120
