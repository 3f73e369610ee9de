package pointer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// SystemCursor names a platform-provided cursor shape.
type SystemCursor uint8

const (
	CursorDefault    SystemCursor = iota // arrow
	CursorText                           // I-beam
	CursorWait                           // busy
	CursorCrosshair                      // crosshair
	CursorProgress                       // busy, still interactive
	CursorNWSEResize                     // diagonal resize, top-left to bottom-right
	CursorNESWResize                     // diagonal resize, top-right to bottom-left
	CursorEWResize                       // horizontal resize
	CursorNSResize                       // vertical resize
	CursorMove                           // four-way move
	CursorNotAllowed                     // slashed circle
	CursorPointer                        // pointing hand
)

// Cursor is a cursor image owned by a Context.
type Cursor struct {
	handle     any
	system     SystemCursor
	isSystem   bool
	hotX, hotY int
	img        *image.NRGBA
}

// Handle returns the backend's value for the cursor, nil for placeholder
// cursors created without backend support.
func (cur *Cursor) Handle() any { return cur.handle }

// System returns the system shape and true for cursors made by
// CreateSystemCursor.
func (cur *Cursor) System() (SystemCursor, bool) { return cur.system, cur.isSystem }

// HotSpot returns the cursor's hot spot.
func (cur *Cursor) HotSpot() (x, y int) { return cur.hotX, cur.hotY }

// Image returns the cursor image, nil for system cursors.
func (cur *Cursor) Image() *image.NRGBA { return cur.img }

// initDefaultCursor installs the default cursor: the system arrow when the
// backend can make one, otherwise a placeholder.
func (c *Context) initDefaultCursor() {
	cur := &Cursor{system: CursorDefault, isSystem: true}
	if c.supports(FeatureCreateSystemCursor) {
		h, err := c.backend.CreateSystemCursor(CursorDefault)
		if err != nil {
			c.warnf("default cursor unavailable", "err", err)
		} else {
			cur.handle = h
		}
	}
	c.SetDefaultCursor(cur)
}

// CreateCursor builds a color cursor from img. The hot spot must lie inside
// the image. Without backend support the cursor is a placeholder that can
// still be set and destroyed.
func (c *Context) CreateCursor(img image.Image, hotX, hotY int) (*Cursor, error) {
	if err := c.initialized(); err != nil {
		return nil, err
	}
	if img == nil {
		return nil, c.setError(fmt.Errorf("%w: nil cursor image", ErrInvalidParam))
	}
	b := img.Bounds()
	if hotX < 0 || hotY < 0 || hotX >= b.Dx() || hotY >= b.Dy() {
		return nil, c.setError(fmt.Errorf("%w: cursor hot spot (%d, %d) outside %dx%d image",
			ErrInvalidParam, hotX, hotY, b.Dx(), b.Dy()))
	}
	rgba, ok := img.(*image.NRGBA)
	if !ok || b.Min != (image.Point{}) {
		rgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	cur := &Cursor{hotX: hotX, hotY: hotY, img: rgba}
	if c.supports(FeatureCreateCursor) {
		h, err := c.backend.CreateCursor(rgba, hotX, hotY)
		if err != nil {
			return nil, c.setError(fmt.Errorf("create cursor: %w", err))
		}
		cur.handle = h
	}
	c.cursors = append(c.cursors, cur)
	return cur, nil
}

// CreateMonochromeCursor builds a cursor from 1-bit data and mask planes,
// most significant bit first, each row padded to a whole byte. Data and mask
// both set is black; mask only is white; data only is black; neither is
// transparent.
func (c *Context) CreateMonochromeCursor(data, mask []byte, w, h, hotX, hotY int) (*Cursor, error) {
	if w <= 0 || h <= 0 {
		return nil, c.setError(fmt.Errorf("%w: cursor size %dx%d", ErrInvalidParam, w, h))
	}
	w = (w + 7) &^ 7
	stride := w / 8
	if len(data) < stride*h || len(mask) < stride*h {
		return nil, c.setError(fmt.Errorf("%w: cursor planes need %d bytes", ErrInvalidParam, stride*h))
	}
	black := color.NRGBA{A: 0xFF}
	white := color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*stride + x/8
			bit := byte(0x80) >> (x % 8)
			d, m := data[i]&bit != 0, mask[i]&bit != 0
			switch {
			case d:
				img.SetNRGBA(x, y, black)
			case m:
				img.SetNRGBA(x, y, white)
			}
		}
	}
	return c.CreateCursor(img, hotX, hotY)
}

// CreateSystemCursor asks the backend for a platform cursor shape.
func (c *Context) CreateSystemCursor(id SystemCursor) (*Cursor, error) {
	if err := c.initialized(); err != nil {
		return nil, err
	}
	if !c.supports(FeatureCreateSystemCursor) {
		return nil, c.setError(fmt.Errorf("create system cursor: %w", ErrUnsupported))
	}
	h, err := c.backend.CreateSystemCursor(id)
	if err != nil {
		return nil, c.setError(fmt.Errorf("create system cursor %d: %w", id, err))
	}
	cur := &Cursor{handle: h, system: id, isSystem: true}
	c.cursors = append(c.cursors, cur)
	return cur, nil
}

// SetCursor makes cur the active cursor. Passing nil re-applies the current
// cursor, which refreshes visibility after focus, relative mode or
// show/hide changes. The cursor must belong to this context.
func (c *Context) SetCursor(cur *Cursor) error {
	if cur != nil && cur == c.curCursor {
		return nil
	}
	if cur != nil {
		if cur != c.defCursor && c.cursorIndex(cur) < 0 {
			return c.setError(ErrCursorNotFound)
		}
		c.curCursor = cur
	} else if c.mouse.focus != nil {
		cur = c.curCursor
	} else {
		cur = c.defCursor
	}

	if !c.supports(FeatureShowCursor) {
		return nil
	}
	show := cur
	if !c.mouse.cursorShown || c.mouse.relativeMode {
		show = nil
	}
	if err := c.backend.ShowCursor(show); err != nil {
		c.warnf("show cursor failed", "err", err)
	}
	return nil
}

// Cursor returns the active cursor.
func (c *Context) Cursor() *Cursor {
	return c.curCursor
}

// DefaultCursor returns the default cursor.
func (c *Context) DefaultCursor() *Cursor {
	return c.defCursor
}

// SetDefaultCursor replaces the default cursor, freeing the previous one.
// If nothing else was active, cur becomes the active cursor.
func (c *Context) SetDefaultCursor(cur *Cursor) {
	if cur == c.defCursor {
		return
	}
	prev := c.defCursor
	c.defCursor = cur
	if c.curCursor == nil || c.curCursor == prev {
		c.curCursor = cur
		c.SetCursor(nil)
	}
	if prev != nil {
		if i := c.cursorIndex(prev); i >= 0 {
			c.cursors = append(c.cursors[:i], c.cursors[i+1:]...)
		}
		c.freeCursor(prev)
	}
}

// DestroyCursor frees cur. The default cursor cannot be destroyed; if cur
// is active the default cursor takes its place.
func (c *Context) DestroyCursor(cur *Cursor) {
	if cur == nil || cur == c.defCursor {
		return
	}
	if cur == c.curCursor {
		c.SetCursor(c.defCursor)
	}
	i := c.cursorIndex(cur)
	if i < 0 {
		return
	}
	c.cursors = append(c.cursors[:i], c.cursors[i+1:]...)
	c.freeCursor(cur)
}

func (c *Context) freeCursor(cur *Cursor) {
	if cur.handle != nil && c.supports(FeatureFreeCursor) {
		c.backend.FreeCursor(cur)
	}
	cur.handle = nil
}

func (c *Context) destroyAllCursors() {
	if c.curCursor != c.defCursor {
		c.SetCursor(c.defCursor)
	}
	for _, cur := range c.cursors {
		c.freeCursor(cur)
	}
	c.cursors = nil
	if c.defCursor != nil {
		c.freeCursor(c.defCursor)
	}
	c.defCursor, c.curCursor = nil, nil
}

func (c *Context) cursorIndex(cur *Cursor) int {
	for i, k := range c.cursors {
		if k == cur {
			return i
		}
	}
	return -1
}

// ShowCursor makes the cursor visible. Warp emulation ends, since an
// application showing the cursor is no longer polling warps.
func (c *Context) ShowCursor() {
	m := &c.mouse
	if m.warpEmulationActive {
		_ = c.setRelativeMouseMode(false)
		m.warpEmulationActive = false
	}
	if !m.cursorShown {
		m.cursorShown = true
		c.SetCursor(nil)
	}
}

// HideCursor hides the cursor.
func (c *Context) HideCursor() {
	if c.mouse.cursorShown {
		c.mouse.cursorShown = false
		c.SetCursor(nil)
	}
}

// CursorVisible reports whether the cursor is shown.
func (c *Context) CursorVisible() bool {
	return c.mouse.cursorShown
}
