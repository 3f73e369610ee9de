package pointer

import (
	"errors"
	"testing"

	"github.com/tanema/gween/ease"
)

// relativeContext returns a context in native relative mode with the system
// scale hint on.
func relativeContext(t *testing.T) (*Context, *Queue) {
	t.Helper()
	c, q, _ := newTestContext(t, &fakeBackend{features: FeatureRelativeMode})
	h := c.Hints()
	h.RelativeSystemScale = true
	c.SetHints(h)
	if err := c.SetRelativeMouseMode(true); err != nil {
		t.Fatal(err)
	}
	q.Drain()
	return c, q
}

func lastRel(t *testing.T, q *Queue) (float32, float32) {
	t.Helper()
	evs := only(q.Drain(), EventMouseMotion)
	if len(evs) == 0 {
		t.Fatal("no motion posted")
	}
	ev := evs[len(evs)-1]
	return ev.XRel, ev.YRel
}

func TestSystemScaleCurve(t *testing.T) {
	tests := []struct {
		name   string
		values []float32
		fn     ease.TweenFunc
		dx, dy float32
		wantX  float32
	}{
		{"constant", []float32{2}, nil, 3, 4, 6},
		{"interpolated", []float32{0, 1, 10, 3}, nil, 3, 4, 6},
		{"eased", []float32{0, 1, 10, 3}, ease.InQuad, 3, 4, 4.5},
		{"past last point", []float32{0, 1, 2, 4}, nil, 3, 4, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, q := relativeContext(t)
			if err := c.SetMouseSystemScale(tt.values...); err != nil {
				t.Fatal(err)
			}
			c.SetMouseSystemScaleEasing(tt.fn)
			c.SendMouseMotion(0, nil, 1, true, tt.dx, tt.dy)
			if x, _ := lastRel(t, q); x != tt.wantX {
				t.Errorf("XRel = %v, want %v", x, tt.wantX)
			}
		})
	}
}

func TestRelativeSpeedScaleWins(t *testing.T) {
	c, q := relativeContext(t)
	c.SetMouseSystemScale(5)
	c.SetHint("mouse_relative_speed_scale", "0.5")
	c.SendMouseMotion(0, nil, 1, true, 4, 2)
	if x, y := lastRel(t, q); x != 2 || y != 1 {
		t.Errorf("rel = (%v, %v), want (2, 1)", x, y)
	}
}

func TestSystemScaleOnlyInRelativeMode(t *testing.T) {
	c, q, _ := newTestContext(t, nil)
	h := c.Hints()
	h.RelativeSystemScale = true
	c.SetHints(h)
	c.SetMouseSystemScale(3)
	c.SendMouseMotion(0, nil, 1, true, 2, 0)
	if x, _ := lastRel(t, q); x != 2 {
		t.Errorf("XRel = %v, want unscaled 2", x)
	}
}

func TestSetMouseSystemScaleValidation(t *testing.T) {
	c, _, _ := newTestContext(t, nil)
	tests := []struct {
		name   string
		values []float32
		ok     bool
	}{
		{"none", nil, true},
		{"single", []float32{1.5}, true},
		{"pairs", []float32{0, 1, 4, 2, 8, 3}, true},
		{"odd length", []float32{0, 1, 4}, false},
		{"speeds not increasing", []float32{0, 1, 0, 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.SetMouseSystemScale(tt.values...)
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidParam) {
				t.Errorf("err = %v, want ErrInvalidParam", err)
			}
		})
	}
}
