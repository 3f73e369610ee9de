// Package pointer is the platform-independent core of a mouse and pen input
// layer. Platform backends feed it raw samples; it normalizes them into a
// single consistent stream of pointer events.
//
// # Quick start
//
// Create a [Context] over an event sink and a backend, register devices and
// feed samples from the backend's input loop:
//
//	q := pointer.NewQueue()
//	ctx := pointer.NewContext(pointer.Config{Sink: q, Backend: backend})
//	win := pointer.NewWindow(1, 640, 480)
//
//	ctx.AddMouse(7, "USB mouse", true)
//	ctx.SendMouseMotion(0, win, 7, false, 50, 60)
//	ctx.SendMouseButton(0, win, 7, pointer.ButtonLeft, true)
//
//	for _, ev := range q.Drain() {
//		// ...
//	}
//
// Everything except the pen calls must run on one goroutine, the one that
// pumps the backend.
//
// # Normalization
//
// Absolute samples are confined to the focused window (or its
// [Window.MouseRect]) unless the window holds capture. The first sample after
// a focus change or warp reports a zero delta, and a sample that does not
// move the pointer posts nothing. Relative samples are scaled by
// [Hints.NormalSpeedScale] or, in relative mode, by
// [Hints.RelativeSpeedScale] or the system curve set with
// [Context.SetMouseSystemScale]. With [IntegerMotion] set, fractional motion
// is carried between samples.
//
// Buttons are tracked per device. The reported mask ORs every device, so two
// mice holding different buttons both show. Click counts are computed per
// device and button from [Hints.DoubleClickTime] and
// [Hints.DoubleClickRadius].
//
// # Event order
//
// Events derived from one sample reach the sink as window-leave, then the
// sample's own events, then window-enter, before the Send call returns.
//
// # Relative mode and warp emulation
//
// [Context.SetRelativeMouseMode] hides the cursor and reports deltas. When
// the backend has no native relative mode the pointer is kept in the window
// by warping it back to the center. Applications that implement mouse-look
// by warping to the center every frame are detected and switched to
// relative mode automatically; see [Hints.WarpEmulation].
//
// # Pens
//
// Pens are registered with [Context.AddPenDevice] and are safe to drive from
// a device goroutine. Pen events and the touch events of
// [Hints.PenTouchEvents] go to the sink directly. With
// [Hints.PenMouseEvents] the emulated mouse samples are queued and fed on
// the event goroutine by [Context.PumpPenMouse], which every mouse Send call
// and [Context.PumpInjected] run first.
//
// # Configuration
//
// Behavior is tuned by [Hints], set in code, by name with [Context.SetHint],
// or from a YAML or TOML file with [LoadHints].
//
// # Scripted input
//
// [LoadInputScript] reads a JSON script of moves, clicks, drags and pen
// strokes that [Context.PumpInjected] replays one step per frame.
//
// Sub-packages adapt the core to Ebitengine (ebitenbackend), Linux evdev
// devices (evdev), websocket consumers (wsforward) and Donburi worlds (ecs).
package pointer
