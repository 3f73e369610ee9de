//go:build linux

package evdev

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unsafe"

	"golang.org/x/sys/unix"
)

const pollTimeoutMs = 100

// _IOC encoding.
const (
	iocNRShift   = 0
	iocTypeShift = 8
	iocSizeShift = 16
	iocDirShift  = 30

	iocWrite = 1
	iocRead  = 2
)

func ioc(dir, typ, nr, size uint32) uintptr {
	return uintptr(dir<<iocDirShift | typ<<iocTypeShift | nr<<iocNRShift | size<<iocSizeShift)
}

func eviocgname(size int) uintptr {
	return ioc(iocRead, 'E', 0x06, uint32(size))
}

func eviocgabs(code uint16) uintptr {
	return ioc(iocRead, 'E', 0x40+uint32(code), uint32(unsafe.Sizeof(AbsInfo{})))
}

func eviocgrab() uintptr {
	return ioc(iocWrite, 'E', 0x90, uint32(unsafe.Sizeof(int32(0))))
}

func ioctl(fd int, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

// Open opens an evdev node and reads its name and axis ranges. Axes the
// device lacks are left zero.
func Open(path string) (*Device, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	fd := int(f.Fd())
	if err := unix.SetNonblock(fd, true); err != nil {
		f.Close()
		return nil, fmt.Errorf("evdev: %s: %w", path, err)
	}

	name := make([]byte, 256)
	if err := ioctl(fd, eviocgname(len(name)), unsafe.Pointer(&name[0])); err != nil {
		f.Close()
		return nil, fmt.Errorf("evdev: %s: not an input device: %w", path, err)
	}

	var r Ranges
	for code, dst := range map[uint16]*AbsInfo{
		AbsX:        &r.X,
		AbsY:        &r.Y,
		AbsPressure: &r.Pressure,
		AbsDistance: &r.Distance,
		AbsTiltX:    &r.TiltX,
		AbsTiltY:    &r.TiltY,
	} {
		var info AbsInfo
		if ioctl(fd, eviocgabs(code), unsafe.Pointer(&info)) == nil {
			*dst = info
		}
	}

	return &Device{
		src:    &nodeSource{f: f, fd: fd},
		path:   path,
		name:   strings.TrimRight(string(name), "\x00"),
		ranges: r,
		parser: NewParser(int(unsafe.Sizeof(unix.Timeval{})) + 8),
	}, nil
}

// Grab takes exclusive access so the events stop reaching other clients
// such as the display server.
func (d *Device) Grab() error { return d.grab(1) }

// Release undoes Grab.
func (d *Device) Release() error { return d.grab(0) }

func (d *Device) grab(on int) error {
	n, ok := d.src.(*nodeSource)
	if !ok {
		return ErrNotNode
	}
	return unix.IoctlSetInt(n.fd, uint(eviocgrab()), int(on))
}

type nodeSource struct {
	f  *os.File
	fd int
}

func (s *nodeSource) read(ctx context.Context, buf []byte) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	pfd := []unix.PollFd{{Fd: int32(s.fd), Events: unix.POLLIN}}
	n, err := unix.Poll(pfd, pollTimeoutMs)
	if err == unix.EINTR || n == 0 {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if pfd[0].Revents&(unix.POLLERR|unix.POLLHUP) != 0 {
		return 0, fmt.Errorf("evdev: device gone")
	}
	m, err := unix.Read(s.fd, buf)
	if err == unix.EAGAIN {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return m, nil
}

func (s *nodeSource) Close() error { return s.f.Close() }
