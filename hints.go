package pointer

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Integer mode bits for Hints.IntegerMode.
const (
	IntegerMotion uint8 = 1 << 0 // motion is snapped to whole pixels with residual carry
	IntegerWheel  uint8 = 1 << 1 // wheel values are reported as whole ticks only
)

// Hints are the tunables that shape pointer behavior. The zero value is not
// useful; start from DefaultHints. Field tags name the keys accepted by
// LoadHints and SetHint.
type Hints struct {
	// DoubleClickTime is the multi-click interval in milliseconds.
	DoubleClickTime int `yaml:"mouse_double_click_time" toml:"mouse_double_click_time"`
	// DoubleClickRadius is the multi-click radius in pixels.
	DoubleClickRadius int `yaml:"mouse_double_click_radius" toml:"mouse_double_click_radius"`

	// NormalSpeedScale multiplies relative deltas outside relative mode.
	// Zero disables scaling.
	NormalSpeedScale float32 `yaml:"mouse_normal_speed_scale" toml:"mouse_normal_speed_scale"`
	// RelativeSpeedScale multiplies relative deltas in relative mode.
	// Zero disables scaling.
	RelativeSpeedScale float32 `yaml:"mouse_relative_speed_scale" toml:"mouse_relative_speed_scale"`
	// RelativeSystemScale applies the system acceleration curve to
	// relative-mode deltas instead of RelativeSpeedScale.
	RelativeSystemScale bool `yaml:"mouse_relative_system_scale" toml:"mouse_relative_system_scale"`

	// RelativeModeCenter warps the pointer to the window center when
	// relative mode is enabled.
	RelativeModeCenter bool `yaml:"mouse_relative_mode_center" toml:"mouse_relative_mode_center"`
	// RelativeModeWarp implements relative mode by re-centering the
	// pointer instead of using native relative mode.
	RelativeModeWarp bool `yaml:"mouse_relative_mode_warp" toml:"mouse_relative_mode_warp"`
	// RelativeWarpMotion emits motion for warps performed in relative mode.
	RelativeWarpMotion bool `yaml:"mouse_relative_warp_motion" toml:"mouse_relative_warp_motion"`
	// WarpEmulation enables switching to relative mode when the application
	// keeps warping to the window center.
	WarpEmulation bool `yaml:"mouse_emulate_warp_with_relative" toml:"mouse_emulate_warp_with_relative"`

	TouchMouseEvents bool `yaml:"touch_mouse_events" toml:"touch_mouse_events"` // touch drives the mouse
	MouseTouchEvents bool `yaml:"mouse_touch_events" toml:"mouse_touch_events"` // mouse drives touch
	PenMouseEvents   bool `yaml:"pen_mouse_events" toml:"pen_mouse_events"`     // pens drive the mouse
	PenTouchEvents   bool `yaml:"pen_touch_events" toml:"pen_touch_events"`     // pens drive touch

	// AutoCapture captures the mouse while any button is held.
	AutoCapture bool `yaml:"mouse_auto_capture" toml:"mouse_auto_capture"`

	// IntegerMode is a combination of IntegerMotion and IntegerWheel.
	IntegerMode uint8 `yaml:"mouse_integer_mode" toml:"mouse_integer_mode"`
}

// DefaultHints returns the built-in hint values.
func DefaultHints() Hints {
	return Hints{
		DoubleClickTime:    500,
		DoubleClickRadius:  32,
		RelativeModeCenter: true,
		WarpEmulation:      true,
		TouchMouseEvents:   true,
		PenMouseEvents:     true,
		PenTouchEvents:     true,
		AutoCapture:        true,
	}
}

// normalize replaces out-of-range values with defaults.
func (h *Hints) normalize() {
	def := DefaultHints()
	if h.DoubleClickTime < 0 {
		h.DoubleClickTime = def.DoubleClickTime
	}
	if h.DoubleClickRadius < 0 {
		h.DoubleClickRadius = def.DoubleClickRadius
	}
	if h.NormalSpeedScale < 0 {
		h.NormalSpeedScale = 0
	}
	if h.RelativeSpeedScale < 0 {
		h.RelativeSpeedScale = 0
	}
	h.IntegerMode &= IntegerMotion | IntegerWheel
}

// LoadHints reads hints from a YAML (.yaml, .yml) or TOML (.toml) file.
// Keys missing from the file keep their DefaultHints value.
func LoadHints(path string) (Hints, error) {
	h := DefaultHints()
	data, err := os.ReadFile(path)
	if err != nil {
		return h, fmt.Errorf("load hints: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &h)
	case ".toml":
		_, err = toml.Decode(string(data), &h)
	default:
		return h, fmt.Errorf("load hints %s: unsupported file type", path)
	}
	if err != nil {
		return h, fmt.Errorf("parse hints %s: %w", path, err)
	}
	h.normalize()
	return h, nil
}

// hintSetters maps hint names to parsers that write into a Hints value.
var hintSetters = map[string]func(h *Hints, v string) error{
	"mouse_double_click_time":          intHint(func(h *Hints) *int { return &h.DoubleClickTime }),
	"mouse_double_click_radius":        intHint(func(h *Hints) *int { return &h.DoubleClickRadius }),
	"mouse_normal_speed_scale":         floatHint(func(h *Hints) *float32 { return &h.NormalSpeedScale }),
	"mouse_relative_speed_scale":       floatHint(func(h *Hints) *float32 { return &h.RelativeSpeedScale }),
	"mouse_relative_system_scale":      boolHint(func(h *Hints) *bool { return &h.RelativeSystemScale }),
	"mouse_relative_mode_center":       boolHint(func(h *Hints) *bool { return &h.RelativeModeCenter }),
	"mouse_relative_mode_warp":         boolHint(func(h *Hints) *bool { return &h.RelativeModeWarp }),
	"mouse_relative_warp_motion":       boolHint(func(h *Hints) *bool { return &h.RelativeWarpMotion }),
	"mouse_emulate_warp_with_relative": boolHint(func(h *Hints) *bool { return &h.WarpEmulation }),
	"touch_mouse_events":               boolHint(func(h *Hints) *bool { return &h.TouchMouseEvents }),
	"mouse_touch_events":               boolHint(func(h *Hints) *bool { return &h.MouseTouchEvents }),
	"pen_mouse_events":                 boolHint(func(h *Hints) *bool { return &h.PenMouseEvents }),
	"pen_touch_events":                 boolHint(func(h *Hints) *bool { return &h.PenTouchEvents }),
	"mouse_auto_capture":               boolHint(func(h *Hints) *bool { return &h.AutoCapture }),
	"mouse_integer_mode": func(h *Hints, v string) error {
		n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 8)
		if err != nil {
			return err
		}
		h.IntegerMode = uint8(n)
		return nil
	},
}

func intHint(field func(*Hints) *int) func(*Hints, string) error {
	return func(h *Hints, v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return err
		}
		*field(h) = n
		return nil
	}
}

// floatHint parses a scale. An empty value disables scaling.
func floatHint(field func(*Hints) *float32) func(*Hints, string) error {
	return func(h *Hints, v string) error {
		v = strings.TrimSpace(v)
		if v == "" {
			*field(h) = 0
			return nil
		}
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return err
		}
		*field(h) = float32(f)
		return nil
	}
}

func boolHint(field func(*Hints) *bool) func(*Hints, string) error {
	return func(h *Hints, v string) error {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return err
		}
		*field(h) = b
		return nil
	}
}

// Hints returns the hints currently in effect.
func (c *Context) Hints() Hints {
	return c.hints
}

// SetHints replaces every hint at once. Out-of-range values fall back to
// their defaults.
func (c *Context) SetHints(h Hints) {
	h.normalize()
	prev := c.hints
	c.hints = h
	c.hintsChanged(prev)
}

// SetHint sets one hint by name from its string form, as found in
// environment variables or command lines.
func (c *Context) SetHint(name, value string) error {
	set, ok := hintSetters[name]
	if !ok {
		return c.setError(fmt.Errorf("%w: %q", ErrUnknownHint, name))
	}
	h := c.hints
	if err := set(&h, value); err != nil {
		return c.setError(fmt.Errorf("%w: hint %s=%q: %v", ErrInvalidParam, name, value, err))
	}
	c.SetHints(h)
	return nil
}

// hintsChanged applies side effects of hint transitions.
func (c *Context) hintsChanged(prev Hints) {
	if prev.WarpEmulation && !c.hints.WarpEmulation && c.mouse.warpEmulationActive {
		_ = c.setRelativeMouseMode(false)
	}
	if prev.MouseTouchEvents && !c.hints.MouseTouchEvents {
		c.mouse.trackMouseDown = false
	}
	if prev.IntegerMode&IntegerMotion != 0 && c.hints.IntegerMode&IntegerMotion == 0 {
		c.mouse.residualX, c.mouse.residualY = 0, 0
	}
}
