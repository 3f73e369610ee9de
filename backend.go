package pointer

import "image"

// Feature is a bitmask of optional backend capabilities. The core checks
// Features before calling the matching Backend method and falls back to an
// emulation or an ErrUnsupported error otherwise.
type Feature uint32

const (
	FeatureCreateCursor       Feature = 1 << iota // CreateCursor from an image
	FeatureCreateSystemCursor                     // CreateSystemCursor
	FeatureShowCursor                             // ShowCursor
	FeatureMoveCursor                             // MoveCursor after motion
	FeatureFreeCursor                             // FreeCursor
	FeatureWarpMouse                              // WarpMouse within a window
	FeatureWarpMouseGlobal                        // WarpMouseGlobal in desktop coordinates
	FeatureRelativeMode                           // native relative mouse mode
	FeatureCaptureMouse                           // CaptureMouse
	FeatureGlobalMouseState                       // GlobalMouseState
)

// Backend is the platform layer the Context drives. Implementations only
// need to honor the methods whose Feature bit they advertise; the rest may
// return ErrUnsupported.
type Backend interface {
	Features() Feature

	// CreateCursor converts img into a platform cursor and returns an
	// opaque handle for it.
	CreateCursor(img *image.NRGBA, hotX, hotY int) (any, error)
	CreateSystemCursor(id SystemCursor) (any, error)
	// ShowCursor displays cur, or hides the cursor when cur is nil.
	ShowCursor(cur *Cursor) error
	MoveCursor(cur *Cursor) error
	FreeCursor(cur *Cursor)

	WarpMouse(win *Window, x, y float32) error
	WarpMouseGlobal(x, y float32) error
	SetRelativeMouseMode(enabled bool) error
	// CaptureMouse routes mouse input to win even outside its bounds, or
	// releases capture when win is nil.
	CaptureMouse(win *Window) error
	// GlobalMouseState returns the pointer position in desktop coordinates
	// and the physical button state.
	GlobalMouseState() (x, y float32, buttons ButtonMask, err error)
}

// UnsupportedBackend is a Backend with no capabilities. Embed it to
// implement only the methods a platform supports.
type UnsupportedBackend struct{}

func (UnsupportedBackend) Features() Feature { return 0 }

func (UnsupportedBackend) CreateCursor(*image.NRGBA, int, int) (any, error) {
	return nil, ErrUnsupported
}

func (UnsupportedBackend) CreateSystemCursor(SystemCursor) (any, error) {
	return nil, ErrUnsupported
}

func (UnsupportedBackend) ShowCursor(*Cursor) error { return ErrUnsupported }
func (UnsupportedBackend) MoveCursor(*Cursor) error { return ErrUnsupported }
func (UnsupportedBackend) FreeCursor(*Cursor) {}
func (UnsupportedBackend) WarpMouse(*Window, float32, float32) error { return ErrUnsupported }
func (UnsupportedBackend) WarpMouseGlobal(float32, float32) error { return ErrUnsupported }
func (UnsupportedBackend) SetRelativeMouseMode(bool) error { return ErrUnsupported }
func (UnsupportedBackend) CaptureMouse(*Window) error { return ErrUnsupported }

func (UnsupportedBackend) GlobalMouseState() (float32, float32, ButtonMask, error) {
	return 0, 0, 0, ErrUnsupported
}

func (c *Context) supports(f Feature) bool {
	return c.backend.Features()&f == f
}
