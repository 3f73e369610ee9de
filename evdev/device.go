package evdev

import (
	"context"
	"errors"
	"io"
)

// ErrNotNode is returned by Grab and Release on a replayed stream.
var ErrNotNode = errors.New("evdev: not a device node")

// source reads raw bytes from a device node or a captured stream. read
// returns 0, nil when nothing arrived before its poll timeout.
type source interface {
	read(ctx context.Context, buf []byte) (int, error)
	Close() error
}

// Device is an open evdev node.
type Device struct {
	src    source
	path   string
	name   string
	ranges Ranges
	parser *Parser
	frames FrameSplitter
}

// Path returns the node path, such as /dev/input/event3.
func (d *Device) Path() string { return d.path }

// Name returns the name the driver reports.
func (d *Device) Name() string { return d.name }

// Ranges returns the absolute axis ranges read when the device was opened.
func (d *Device) Ranges() Ranges { return d.ranges }

// Close closes the device.
func (d *Device) Close() error { return d.src.Close() }

// ReadFrames reads until ctx is done or the device fails, calling fn with
// each complete frame. It returns nil when ctx is canceled and io.EOF when
// a replayed stream ends.
func (d *Device) ReadFrames(ctx context.Context, fn func([]Event)) error {
	buf := make([]byte, 4096)
	for {
		if ctx.Err() != nil {
			return nil
		}
		n, err := d.src.read(ctx, buf)
		if n > 0 {
			d.parser.Feed(buf[:n], func(ev Event) {
				if frame := d.frames.Add(ev); frame != nil {
					fn(frame)
				}
			})
		}
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
	}
}

// NewStreamDevice wraps a captured input_event stream, for example a file
// recorded from a device node. recordSize is 16, 24 or 0 to guess.
func NewStreamDevice(r io.Reader, name string, ranges Ranges, recordSize int) *Device {
	return &Device{
		src:    &streamSource{r: r},
		path:   name,
		name:   name,
		ranges: ranges,
		parser: NewParser(recordSize),
	}
}

type streamSource struct {
	r io.Reader
}

func (s *streamSource) read(ctx context.Context, buf []byte) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.r.Read(buf)
}

func (s *streamSource) Close() error {
	if c, ok := s.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
