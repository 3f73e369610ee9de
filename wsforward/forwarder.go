// Package wsforward streams normalized pointer events to a websocket
// server as JSON text messages.
//
// A Forwarder is a pointer.EventSink. PushEvent never blocks the event
// goroutine: events are buffered and written by a background writer, and
// are dropped when the buffer is full. The connection is kept alive with
// pings; a missing pong or any read or write failure is reported on Err.
package wsforward

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/phanxgames/pointer"
)

// ErrClosed is returned by Close on a forwarder that is already closed.
var ErrClosed = errors.New("wsforward: closed")

// Message is the JSON envelope of one forwarded event.
type Message struct {
	Kind  string        `json:"kind"`
	Event pointer.Event `json:"event"`
}

// Options configures Dial. Zero fields take defaults.
type Options struct {
	PingEvery    time.Duration // default 5s
	PongWait     time.Duration // default 15s
	WriteTimeout time.Duration // default 5s
	Buffer       int           // queued events before dropping, default 1024
	Header       http.Header
	Logger       *slog.Logger
}

func (o *Options) defaults() {
	if o.PingEvery <= 0 {
		o.PingEvery = 5 * time.Second
	}
	if o.PongWait <= 0 {
		o.PongWait = 15 * time.Second
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = 5 * time.Second
	}
	if o.Buffer <= 0 {
		o.Buffer = 1024
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

// Forwarder writes events to one websocket connection.
type Forwarder struct {
	conn *websocket.Conn
	opts Options
	log  *slog.Logger

	mu         sync.Mutex // serializes writes
	out        chan pointer.Event
	done       chan struct{}
	writerDone chan struct{}
	errC       chan error

	closed  atomic.Bool
	dropped atomic.Uint64
	wg      sync.WaitGroup
}

var _ pointer.EventSink = (*Forwarder)(nil)

// Dial connects to url and starts the reader, writer and ping loops.
func Dial(ctx context.Context, url string, opts Options) (*Forwarder, error) {
	opts.defaults()
	d := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
		NetDialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 15 * time.Second,
		}).DialContext,
	}
	conn, _, err := d.DialContext(ctx, url, opts.Header)
	if err != nil {
		return nil, err
	}

	f := &Forwarder{
		conn: conn,
		opts: opts,
		log:  opts.Logger.With("remote", conn.RemoteAddr().String()),
		out:  make(chan pointer.Event, opts.Buffer),
		done: make(chan struct{}),
		errC: make(chan error, 1),

		writerDone: make(chan struct{}),
	}

	// pongs and close frames are only processed while reading
	conn.SetReadLimit(1 << 20)
	_ = conn.SetReadDeadline(time.Now().Add(opts.PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(opts.PongWait))
	})

	f.wg.Add(3)
	go f.readLoop()
	go f.writeLoop()
	go f.pingLoop()
	f.log.Info("websocket forwarder connected")
	return f, nil
}

// PushEvent queues ev for sending. It reports false when the forwarder is
// closed or its buffer is full.
func (f *Forwarder) PushEvent(ev pointer.Event) bool {
	if f.closed.Load() {
		return false
	}
	select {
	case f.out <- ev:
		return true
	default:
		if n := f.dropped.Add(1); n&(n-1) == 0 {
			f.log.Warn("forward buffer full, dropping events", "dropped", n)
		}
		return false
	}
}

// Dropped returns how many events were dropped on a full buffer.
func (f *Forwarder) Dropped() uint64 { return f.dropped.Load() }

// Err delivers the first connection failure.
func (f *Forwarder) Err() <-chan error { return f.errC }

// Close flushes queued events, sends a close frame and shuts the
// connection down.
func (f *Forwarder) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}
	close(f.done)
	<-f.writerDone

	f.mu.Lock()
	deadline := time.Now().Add(f.opts.WriteTimeout)
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = f.conn.WriteControl(websocket.CloseMessage, msg, deadline)
	f.mu.Unlock()

	err := f.conn.Close()
	f.wg.Wait()
	return err
}

func (f *Forwarder) sendErr(err error) {
	select {
	case f.errC <- err:
	default:
	}
}

func (f *Forwarder) readLoop() {
	defer f.wg.Done()
	for {
		if _, _, err := f.conn.ReadMessage(); err != nil {
			if !f.closed.Load() {
				f.log.Warn("websocket read failed", "err", err)
				f.sendErr(err)
			}
			return
		}
	}
}

func (f *Forwarder) writeLoop() {
	defer f.wg.Done()
	defer close(f.writerDone)
	for {
		select {
		case ev := <-f.out:
			if err := f.write(ev); err != nil {
				f.sendErr(err)
				return
			}
		case <-f.done:
			// best effort flush of what is already queued
			for {
				select {
				case ev := <-f.out:
					if f.write(ev) != nil {
						return
					}
				default:
					return
				}
			}
		}
	}
}

func (f *Forwarder) write(ev pointer.Event) error {
	b, err := json.Marshal(Message{Kind: ev.Type.String(), Event: ev})
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	_ = f.conn.SetWriteDeadline(time.Now().Add(f.opts.WriteTimeout))
	return f.conn.WriteMessage(websocket.TextMessage, b)
}

func (f *Forwarder) pingLoop() {
	defer f.wg.Done()
	t := time.NewTicker(f.opts.PingEvery)
	defer t.Stop()
	for {
		select {
		case <-f.done:
			return
		case <-t.C:
			f.mu.Lock()
			err := f.conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(f.opts.WriteTimeout))
			f.mu.Unlock()
			if err != nil {
				f.sendErr(err)
				return
			}
		}
	}
}
