package evdev

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DeviceInfo is one block of /proc/bus/input/devices.
type DeviceInfo struct {
	Name      string
	Handlers  []string
	EventPath string // /dev/input/eventN, empty when there is no event handler
}

// ParseProcDevices parses the /proc/bus/input/devices format.
func ParseProcDevices(r io.Reader) ([]DeviceInfo, error) {
	var out []DeviceInfo
	var cur DeviceInfo
	flush := func() {
		if cur.Name != "" || len(cur.Handlers) > 0 {
			out = append(out, cur)
		}
		cur = DeviceInfo{}
	}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "N: Name="):
			cur.Name = strings.Trim(strings.TrimPrefix(line, "N: Name="), " \"")
		case strings.HasPrefix(line, "H: Handlers="):
			cur.Handlers = strings.Fields(strings.TrimPrefix(line, "H: Handlers="))
			for _, h := range cur.Handlers {
				if strings.HasPrefix(h, "event") {
					cur.EventPath = "/dev/input/" + h
					break
				}
			}
		}
	}
	flush()
	return out, sc.Err()
}

// ListDevices reads /proc/bus/input/devices.
func ListDevices() ([]DeviceInfo, error) {
	f, err := os.Open("/proc/bus/input/devices")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseProcDevices(f)
}

// score rates how likely a device is to be of the given kind by its name.
func (d DeviceInfo) score(kind Kind) int {
	n := strings.ToLower(d.Name)
	s := 0
	switch kind {
	case KindPen:
		for _, w := range []string{"stylus", "wacom", "pen", "marker", "tablet"} {
			if strings.Contains(n, w) {
				s += 10
			}
		}
		if strings.Contains(n, "touch") {
			s += 2
		}
	case KindMouse:
		if strings.Contains(n, "mouse") {
			s += 10
		}
		if strings.Contains(n, "trackpoint") || strings.Contains(n, "touchpad") {
			s += 4
		}
		for _, h := range d.Handlers {
			if strings.HasPrefix(h, "mouse") {
				s += 5
			}
		}
	}
	return s
}

// PickDevice returns the event node whose name best matches kind. With no
// match it falls back to the first /dev/input/event* node.
func PickDevice(devs []DeviceInfo, kind Kind) (string, error) {
	best, bestScore := "", -1
	for _, d := range devs {
		if d.EventPath == "" {
			continue
		}
		if s := d.score(kind); s > bestScore {
			best, bestScore = d.EventPath, s
		}
	}
	if best != "" {
		return best, nil
	}
	matches, _ := filepath.Glob("/dev/input/event*")
	if len(matches) == 0 {
		return "", errors.New("evdev: no /dev/input/event* devices found")
	}
	sort.Strings(matches)
	return matches[0], nil
}
