package pointer

import (
	"fmt"
	"math"
	"slices"

	"github.com/tanema/gween/ease"
)

// systemScale is the platform acceleration curve applied to relative-mode
// deltas when Hints.RelativeSystemScale is set.
type systemScale struct {
	values []float32
	interp ease.TweenFunc
}

// SetMouseSystemScale installs the acceleration curve. A single value is a
// constant multiplier. Otherwise values are (speed, scale) pairs in strictly
// increasing speed order; scales between two points are interpolated and
// speeds beyond either end use that end's scale. Passing no values removes
// the curve.
func (c *Context) SetMouseSystemScale(values ...float32) error {
	if len(values) == 0 {
		c.scale.values = nil
		return nil
	}
	if len(values) > 1 {
		if len(values)%2 != 0 {
			return c.setError(fmt.Errorf("%w: system scale needs (speed, scale) pairs", ErrInvalidParam))
		}
		for i := 0; i < len(values)-2; i += 2 {
			if values[i] >= values[i+2] {
				return c.setError(fmt.Errorf("%w: system scale speeds must increase", ErrInvalidParam))
			}
		}
	}
	if slices.Equal(values, c.scale.values) {
		return nil
	}
	c.scale.values = slices.Clone(values)
	return nil
}

// SetMouseSystemScaleEasing sets the function used to interpolate between
// curve points. nil restores linear interpolation.
func (c *Context) SetMouseSystemScaleEasing(fn ease.TweenFunc) {
	c.scale.interp = fn
}

// factor returns the multiplier for a delta of (dx, dy).
func (s *systemScale) factor(dx, dy float32) float32 {
	v := s.values
	n := len(v)
	if n == 1 {
		return v[0]
	}
	speed := float32(math.Hypot(float64(dx), float64(dy)))
	i := 0
	for ; i < n-2; i += 2 {
		if speed < v[i+2] {
			break
		}
	}
	switch {
	case i == n-2:
		return v[n-1]
	case speed <= v[i]:
		return v[i+1]
	}
	fn := s.interp
	if fn == nil {
		fn = ease.Linear
	}
	return fn(speed-v[i], v[i+1], v[i+3]-v[i+1], v[i+2]-v[i])
}

// scaleDeltas applies the configured speed scale to a relative delta.
func (c *Context) scaleDeltas(dx, dy float32) (float32, float32) {
	h := &c.hints
	if c.mouse.relativeMode {
		switch {
		case h.RelativeSpeedScale > 0:
			return dx * h.RelativeSpeedScale, dy * h.RelativeSpeedScale
		case h.RelativeSystemScale && len(c.scale.values) > 0:
			f := c.scale.factor(dx, dy)
			return dx * f, dy * f
		}
		return dx, dy
	}
	if h.NormalSpeedScale > 0 {
		return dx * h.NormalSpeedScale, dy * h.NormalSpeedScale
	}
	return dx, dy
}
