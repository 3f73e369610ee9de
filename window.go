package pointer

// WindowFlags holds window state bits the pointer core reads and writes.
type WindowFlags uint32

const (
	WindowMouseCapture WindowFlags = 1 << iota // the window holds mouse capture
	WindowInputFocus                           // the window has keyboard focus
	WindowMinimized                            // the window is minimized; warps are ignored
)

// Window is the pointer core's view of a platform window. The backend owns
// window lifetime and keeps W and H current; the core only toggles
// WindowMouseCapture.
type Window struct {
	ID WindowID

	// X, Y are the window's position on the desktop.
	X, Y int
	// W, H are the client-area size in window coordinates.
	W, H int

	Flags WindowFlags

	// MouseRect, when non-nil, further confines the pointer to a
	// sub-rectangle of the window.
	MouseRect *Rect
}

// NewWindow returns a window with the given ID and client size.
func NewWindow(id WindowID, w, h int) *Window {
	return &Window{ID: id, W: w, H: h}
}

// center returns the midpoint of the client area.
func (w *Window) center() (float32, float32) {
	return float32(w.W) / 2, float32(w.H) / 2
}

// contains reports whether (x, y) lies inside the client area.
func (w *Window) contains(x, y float32) bool {
	return x >= 0 && y >= 0 && x < float32(w.W) && y < float32(w.H)
}

func windowID(w *Window) WindowID {
	if w == nil {
		return 0
	}
	return w.ID
}
