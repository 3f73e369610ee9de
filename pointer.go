package pointer

// MouseID identifies a physical mouse, or one of the reserved sentinels.
// Zero is never a valid device ID.
type MouseID uint32

// PenID identifies a pen device. Zero is never a valid pen ID.
type PenID uint32

// WindowID identifies a window known to the backend.
type WindowID uint32

// TouchID identifies a touch device.
type TouchID uint64

const (
	// GlobalMouseID is reported as the event source whenever the pointer is
	// not in relative mode, so every physical mouse appears as one pointer.
	GlobalMouseID MouseID = 0
	// TouchMouseID marks mouse events synthesized from touch input.
	TouchMouseID MouseID = 0xFFFFFFFF
	// PenMouseID marks mouse events synthesized from pen input.
	PenMouseID MouseID = 0xFFFFFFFE
)

const (
	// MouseTouchID marks touch events synthesized from the mouse.
	MouseTouchID TouchID = 0xFFFFFFFFFFFFFFFF
	// PenTouchID marks touch events synthesized from a pen.
	PenTouchID TouchID = 0xFFFFFFFFFFFFFFFE
)

// isSynthetic reports whether id is one of the emulated mouse streams.
func (id MouseID) isSynthetic() bool {
	return id == TouchMouseID || id == PenMouseID
}

// MouseButton identifies a mouse button. Button numbers start at 1.
type MouseButton uint8

const (
	ButtonLeft   MouseButton = 1 // primary button
	ButtonMiddle MouseButton = 2 // wheel click
	ButtonRight  MouseButton = 3 // secondary button
	ButtonX1     MouseButton = 4 // first extra button (back)
	ButtonX2     MouseButton = 5 // second extra button (forward)
)

// maxButton is the highest button number a ButtonMask can represent.
const maxButton = 32

// ButtonMask is a bitmask of pressed mouse buttons. Bit (b-1) is set when
// button b is down.
type ButtonMask uint32

// Mask returns the mask bit for b.
func (b MouseButton) Mask() ButtonMask {
	if b == 0 || b > maxButton {
		return 0
	}
	return 1 << (b - 1)
}

// Has reports whether button b is set in m.
func (m ButtonMask) Has(b MouseButton) bool {
	return m&b.Mask() != 0
}

// WheelDirection tells consumers whether wheel values are already flipped
// by the platform ("natural scrolling").
type WheelDirection uint8

const (
	WheelNormal  WheelDirection = iota // values are as reported by the device
	WheelFlipped                       // values are inverted; multiply by -1 to restore
)

// Vec2 is a 2D float position or delta.
type Vec2 struct {
	X, Y float32
}

// Rect is an integer rectangle in window coordinates. The origin is the
// top-left, with Y increasing downward.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersect returns the overlap of r and other. ok is false when they do
// not overlap.
func (r Rect) Intersect(other Rect) (out Rect, ok bool) {
	if r.Empty() || other.Empty() {
		return Rect{}, false
	}
	x0 := max(r.X, other.X)
	y0 := max(r.Y, other.Y)
	x1 := min(r.X+r.W, other.X+other.W)
	y1 := min(r.Y+r.H, other.Y+other.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}, false
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}, true
}
