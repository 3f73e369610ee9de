package ebitenbackend

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/pointer"
)

// Input is the subset of Ebitengine's input API the Poller reads. Tests
// substitute a fake.
type Input interface {
	CursorPosition() (x, y int)
	IsMouseButtonPressed(b ebiten.MouseButton) bool
	Wheel() (x, y float64)
	AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID
	TouchPosition(id ebiten.TouchID) (x, y int)
	IsFocused() bool
}

type ebitenInput struct{}

func (ebitenInput) CursorPosition() (int, int) { return ebiten.CursorPosition() }

func (ebitenInput) IsMouseButtonPressed(b ebiten.MouseButton) bool {
	return ebiten.IsMouseButtonPressed(b)
}

func (ebitenInput) Wheel() (float64, float64) { return ebiten.Wheel() }

func (ebitenInput) AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID {
	return ebiten.AppendTouchIDs(ids)
}

func (ebitenInput) TouchPosition(id ebiten.TouchID) (int, int) { return ebiten.TouchPosition(id) }

func (ebitenInput) IsFocused() bool { return ebiten.IsFocused() }

// buttonMap pairs Ebitengine buttons with pointer buttons.
var buttonMap = [...]struct {
	eb ebiten.MouseButton
	pb pointer.MouseButton
}{
	{ebiten.MouseButtonLeft, pointer.ButtonLeft},
	{ebiten.MouseButtonRight, pointer.ButtonRight},
	{ebiten.MouseButtonMiddle, pointer.ButtonMiddle},
	{ebiten.MouseButton3, pointer.ButtonX1},
	{ebiten.MouseButton4, pointer.ButtonX2},
}

// Poller turns Ebitengine's per-tick input state into pointer samples.
// Ebitengine reports a single mouse, so every sample carries the same
// device ID. The first touch drives the pointer as pointer.TouchMouseID.
type Poller struct {
	ctx   *pointer.Context
	win   *pointer.Window
	in    Input
	mouse pointer.MouseID

	started  bool
	lastX    int
	lastY    int
	buttons  [len(buttonMap)]bool
	focused  bool
	touchIDs []ebiten.TouchID
	touch    ebiten.TouchID
	touching bool
	touchX   int
	touchY   int
}

// DefaultMouseID is the device ID the Poller registers for the Ebitengine
// mouse.
const DefaultMouseID pointer.MouseID = 1

// NewPoller creates a Poller feeding ctx for win and registers the mouse.
func NewPoller(ctx *pointer.Context, win *pointer.Window) *Poller {
	return newPoller(ctx, win, ebitenInput{})
}

func newPoller(ctx *pointer.Context, win *pointer.Window, in Input) *Poller {
	p := &Poller{ctx: ctx, win: win, in: in, mouse: DefaultMouseID}
	ctx.AddMouse(p.mouse, "ebiten mouse", true)
	return p
}

// Window returns the window the Poller reports for.
func (p *Poller) Window() *pointer.Window { return p.win }

// Layout resizes the window to the game's logical screen. Call it from
// ebiten.Game.Layout.
func (p *Poller) Layout(w, h int) {
	p.win.W, p.win.H = w, h
}

// Update polls input once. Call it from ebiten.Game.Update. While scripted
// or injected input is pending, real input is ignored for the tick.
func (p *Poller) Update() {
	p.updateFocus()
	if p.ctx.PumpInjected() {
		return
	}
	p.updateMouse()
	p.updateWheel()
	p.updateTouch()
}

func (p *Poller) updateFocus() {
	f := p.in.IsFocused()
	if f == p.focused {
		return
	}
	p.focused = f
	if f {
		p.ctx.SetKeyboardFocus(p.win)
	} else {
		p.ctx.SetKeyboardFocus(nil)
	}
}

func (p *Poller) updateMouse() {
	x, y := p.in.CursorPosition()
	switch {
	case !p.started:
		p.started = true
		p.ctx.SendMouseMotion(0, p.win, p.mouse, false, float32(x), float32(y))
	case x == p.lastX && y == p.lastY:
	case p.ctx.RelativeMouseMode():
		// a captured cursor keeps moving a virtual position; report its deltas
		p.ctx.SendMouseMotion(0, p.win, p.mouse, true, float32(x-p.lastX), float32(y-p.lastY))
	default:
		p.ctx.SendMouseMotion(0, p.win, p.mouse, false, float32(x), float32(y))
	}
	p.lastX, p.lastY = x, y

	for i, m := range buttonMap {
		down := p.in.IsMouseButtonPressed(m.eb)
		if down != p.buttons[i] {
			p.buttons[i] = down
			p.ctx.SendMouseButton(0, p.win, p.mouse, m.pb, down)
		}
	}
}

func (p *Poller) updateWheel() {
	x, y := p.in.Wheel()
	if x != 0 || y != 0 {
		p.ctx.SendMouseWheel(0, p.win, p.mouse, float32(x), float32(y), pointer.WheelNormal)
	}
}

// updateTouch follows the first touch only; later touches are ignored until
// it lifts.
func (p *Poller) updateTouch() {
	p.touchIDs = p.in.AppendTouchIDs(p.touchIDs[:0])

	if p.touching {
		for _, id := range p.touchIDs {
			if id == p.touch {
				x, y := p.in.TouchPosition(id)
				if x != p.touchX || y != p.touchY {
					p.touchX, p.touchY = x, y
					p.ctx.SendMouseMotion(0, p.win, pointer.TouchMouseID, false, float32(x), float32(y))
				}
				return
			}
		}
		p.touching = false
		p.ctx.SendMouseButton(0, p.win, pointer.TouchMouseID, pointer.ButtonLeft, false)
		return
	}

	if len(p.touchIDs) == 0 {
		return
	}
	p.touch = p.touchIDs[0]
	p.touching = true
	p.touchX, p.touchY = p.in.TouchPosition(p.touch)
	p.ctx.SendMouseMotion(0, p.win, pointer.TouchMouseID, false, float32(p.touchX), float32(p.touchY))
	p.ctx.SendMouseButton(0, p.win, pointer.TouchMouseID, pointer.ButtonLeft, true)
}
