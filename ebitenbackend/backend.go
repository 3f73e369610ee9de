// Package ebitenbackend drives a pointer.Context from Ebitengine.
//
// A [Poller] reads Ebitengine's mouse, wheel and touch state once per tick
// and feeds the changes to the context. [Backend] implements the cursor and
// relative-mode hooks with ebiten.SetCursorMode and ebiten.SetCursorShape.
//
//	b := ebitenbackend.NewBackend()
//	ctx := pointer.NewContext(pointer.Config{Sink: q, Backend: b})
//	p := ebitenbackend.NewPoller(ctx, pointer.NewWindow(1, 640, 480))
//
//	func (g *Game) Update() error { g.poller.Update(); return nil }
package ebitenbackend

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/pointer"
)

// Backend is a pointer.Backend over Ebitengine's cursor API. Ebitengine has
// no custom cursor images, warping or capture, so those hooks stay
// unsupported and the core falls back to its emulations.
type Backend struct {
	pointer.UnsupportedBackend

	setMode  func(ebiten.CursorModeType)
	setShape func(ebiten.CursorShapeType)

	relative bool
}

// NewBackend returns a Backend that drives the running game's cursor.
func NewBackend() *Backend {
	return &Backend{setMode: ebiten.SetCursorMode, setShape: ebiten.SetCursorShape}
}

// Features implements pointer.Backend.
func (b *Backend) Features() pointer.Feature {
	return pointer.FeatureCreateSystemCursor | pointer.FeatureShowCursor | pointer.FeatureRelativeMode
}

// cursorShapes maps system cursors to Ebitengine shapes. Busy cursors have
// no Ebitengine equivalent.
var cursorShapes = map[pointer.SystemCursor]ebiten.CursorShapeType{
	pointer.CursorDefault:    ebiten.CursorShapeDefault,
	pointer.CursorText:       ebiten.CursorShapeText,
	pointer.CursorCrosshair:  ebiten.CursorShapeCrosshair,
	pointer.CursorPointer:    ebiten.CursorShapePointer,
	pointer.CursorEWResize:   ebiten.CursorShapeEWResize,
	pointer.CursorNSResize:   ebiten.CursorShapeNSResize,
	pointer.CursorNESWResize: ebiten.CursorShapeNESWResize,
	pointer.CursorNWSEResize: ebiten.CursorShapeNWSEResize,
	pointer.CursorMove:       ebiten.CursorShapeMove,
	pointer.CursorNotAllowed: ebiten.CursorShapeNotAllowed,
}

// CreateSystemCursor implements pointer.Backend. The handle is the
// ebiten.CursorShapeType.
func (b *Backend) CreateSystemCursor(id pointer.SystemCursor) (any, error) {
	shape, ok := cursorShapes[id]
	if !ok {
		return nil, fmt.Errorf("system cursor %d: %w", id, pointer.ErrUnsupported)
	}
	return shape, nil
}

// ShowCursor implements pointer.Backend. While relative mode holds the
// cursor captured the mode is left alone.
func (b *Backend) ShowCursor(cur *pointer.Cursor) error {
	if b.relative {
		return nil
	}
	if cur == nil {
		b.setMode(ebiten.CursorModeHidden)
		return nil
	}
	b.setMode(ebiten.CursorModeVisible)
	if shape, ok := cur.Handle().(ebiten.CursorShapeType); ok {
		b.setShape(shape)
	}
	return nil
}

// SetRelativeMouseMode implements pointer.Backend with
// ebiten.CursorModeCaptured.
func (b *Backend) SetRelativeMouseMode(enabled bool) error {
	b.relative = enabled
	if enabled {
		b.setMode(ebiten.CursorModeCaptured)
	} else {
		b.setMode(ebiten.CursorModeVisible)
	}
	return nil
}
