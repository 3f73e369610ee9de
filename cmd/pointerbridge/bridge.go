package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync/atomic"
	"time"

	"github.com/phanxgames/pointer"
	"github.com/phanxgames/pointer/evdev"
	"github.com/phanxgames/pointer/wsforward"
)

// Config holds the bridge settings.
type Config struct {
	WSURL       string
	Input       string
	Kind        string
	Grab        bool
	HintsPath   string
	Width       int
	Height      int
	LogEvents   bool
	EventTime   bool
	Debug       bool
	ListDevices bool
	PingEvery   time.Duration
	PongWait    time.Duration
}

const (
	minReconnectDelay = 500 * time.Millisecond
	maxReconnectDelay = 5 * time.Second
)

func run(ctx context.Context, cfg Config, log *slog.Logger) error {
	if cfg.ListDevices {
		devs, err := evdev.ListDevices()
		if err != nil {
			return err
		}
		for _, d := range devs {
			fmt.Printf("name=%q handlers=%v path=%s\n", d.Name, d.Handlers, d.EventPath)
		}
		return nil
	}

	hints := pointer.DefaultHints()
	if cfg.HintsPath != "" {
		h, err := pointer.LoadHints(cfg.HintsPath)
		if err != nil {
			return err
		}
		hints = h
	}

	kind, err := parseKind(cfg.Kind)
	if err != nil {
		return err
	}
	path := cfg.Input
	if path == "" {
		devs, _ := evdev.ListDevices()
		if path, err = evdev.PickDevice(devs, kindOr(kind, evdev.KindPen)); err != nil {
			return err
		}
	}

	dev, err := evdev.Open(path)
	if err != nil {
		return err
	}
	defer dev.Close()
	if cfg.Grab {
		if err := dev.Grab(); err != nil {
			log.Warn("grab failed, continuing shared", "path", path, "err", err)
		} else {
			defer dev.Release()
		}
	}
	if kind == kindAuto {
		kind = guessKind(dev.Ranges())
	}
	log.Info("using input device", "path", path, "name", dev.Name(), "kind", kindName(kind))

	q := pointer.NewQueue()
	var fwd atomic.Pointer[wsforward.Forwarder]
	q.Watch(func(ev pointer.Event) {
		if cfg.LogEvents {
			log.Info(ev.Type.String(), eventAttrs(ev)...)
		}
		if f := fwd.Load(); f != nil {
			f.PushEvent(ev)
		}
	})

	pc, win := newBridgeContext(cfg, q, hints, log)
	defer pc.Quit()
	dec := evdev.NewDecoder(pc, evdev.DecoderConfig{
		Kind:      kind,
		Window:    win,
		Name:      dev.Name(),
		Handle:    dev.Path(),
		Ranges:    dev.Ranges(),
		EventTime: cfg.EventTime,
	})

	if cfg.WSURL != "" {
		go connectLoop(ctx, cfg, &fwd, log)
	}

	frames := make(chan []evdev.Event, 64)
	readErr := make(chan error, 1)
	go func() {
		readErr <- dev.ReadFrames(ctx, func(f []evdev.Event) {
			select {
			case frames <- f:
			case <-ctx.Done():
			}
		})
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info("shutting down")
			return nil
		case err := <-readErr:
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			return nil
		case f := <-frames:
			dec.Frame(f)
			// watchers already saw every event
			q.Drain()
		}
	}
}

// connectLoop keeps one forwarder connected, reconnecting with jittered
// backoff until ctx is done.
func connectLoop(ctx context.Context, cfg Config, cur *atomic.Pointer[wsforward.Forwarder], log *slog.Logger) {
	delay := minReconnectDelay
	opts := wsforward.Options{PingEvery: cfg.PingEvery, PongWait: cfg.PongWait, Logger: log}
	for ctx.Err() == nil {
		f, err := wsforward.Dial(ctx, cfg.WSURL, opts)
		if err != nil {
			wait := delay + rand.N(250*time.Millisecond)
			log.Warn("websocket connect failed", "url", cfg.WSURL, "err", err, "retry_in", wait)
			if !sleepCtx(ctx, wait) {
				return
			}
			delay = min(maxReconnectDelay, delay*17/10)
			continue
		}
		delay = minReconnectDelay
		cur.Store(f)

		select {
		case err = <-f.Err():
		case <-ctx.Done():
		}
		cur.Store(nil)
		f.Close()
		if ctx.Err() != nil {
			return
		}
		log.Warn("websocket disconnected", "err", err, "dropped", f.Dropped(), "retry_in", delay)
		if !sleepCtx(ctx, delay) {
			return
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

const kindAuto evdev.Kind = 255

// newBridgeContext builds the pointer context and the virtual window that
// device coordinates map into. The window holds keyboard focus so capture
// and relative mode have a target.
func newBridgeContext(cfg Config, sink pointer.EventSink, hints pointer.Hints, log *slog.Logger) (*pointer.Context, *pointer.Window) {
	pc := pointer.NewContext(pointer.Config{Sink: sink, Hints: &hints, Logger: log})
	pc.SetDebugMode(cfg.Debug)
	win := pointer.NewWindow(1, cfg.Width, cfg.Height)
	pc.SetKeyboardFocus(win)
	return pc, win
}

func parseKind(s string) (evdev.Kind, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return kindAuto, nil
	case "mouse":
		return evdev.KindMouse, nil
	case "pen", "tablet":
		return evdev.KindPen, nil
	}
	return 0, fmt.Errorf("unknown device kind %q", s)
}

func kindOr(k, def evdev.Kind) evdev.Kind {
	if k == kindAuto {
		return def
	}
	return k
}

func kindName(k evdev.Kind) string {
	if k == evdev.KindPen {
		return "pen"
	}
	return "mouse"
}

// guessKind treats a device with absolute X and Y axes as a tablet.
func guessKind(r evdev.Ranges) evdev.Kind {
	if r.X.Max > r.X.Min && r.Y.Max > r.Y.Min {
		return evdev.KindPen
	}
	return evdev.KindMouse
}

// eventAttrs returns the fields of ev that matter for its type.
func eventAttrs(ev pointer.Event) []any {
	attrs := []any{"ts", ev.Timestamp, "which", ev.Which}
	switch ev.Type {
	case pointer.EventMouseMotion:
		attrs = append(attrs, "x", ev.X, "y", ev.Y, "xrel", ev.XRel, "yrel", ev.YRel, "state", ev.State)
	case pointer.EventMouseButtonDown, pointer.EventMouseButtonUp:
		attrs = append(attrs, "button", ev.Button, "clicks", ev.Clicks, "x", ev.X, "y", ev.Y)
	case pointer.EventMouseWheel:
		attrs = append(attrs, "x", ev.WheelX, "y", ev.WheelY, "ix", ev.IntegerX, "iy", ev.IntegerY)
	case pointer.EventPenMotion, pointer.EventPenDown, pointer.EventPenUp:
		attrs = append(attrs, "x", ev.X, "y", ev.Y, "eraser", ev.Eraser)
	case pointer.EventPenAxis:
		attrs = append(attrs, "axis", ev.Axis, "value", ev.Value)
	case pointer.EventPenButtonDown, pointer.EventPenButtonUp:
		attrs = append(attrs, "button", ev.Button)
	}
	return attrs
}
