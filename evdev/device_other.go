//go:build !linux

package evdev

import "github.com/phanxgames/pointer"

// Open is only available on Linux.
func Open(path string) (*Device, error) {
	return nil, pointer.ErrUnsupported
}

// Grab is only available on Linux.
func (d *Device) Grab() error { return ErrNotNode }

// Release is only available on Linux.
func (d *Device) Release() error { return ErrNotNode }
