package misc

import (
	"image/color"
	"testing"
)

func TestLerpFloat64(t *testing.T) {
	if LerpFloat64(2, 10, 0) != 2 {
		t.Errorf("expected the start value at fraction 0, got %g", LerpFloat64(2, 10, 0))
	}
	if LerpFloat64(2, 10, 1) != 10 {
		t.Errorf("expected the end value at fraction 1, got %g", LerpFloat64(2, 10, 1))
	}
	if LerpFloat64(2, 10, 0.5) != 6 {
		t.Errorf("expected the midpoint at fraction 0.5, got %g", LerpFloat64(2, 10, 0.5))
	}
}

func TestLerpUint8(t *testing.T) {
	if LerpUint8(0, 200, 0.5) != 100 {
		t.Errorf("expected 100 halfway from 0 to 200, got %d", LerpUint8(0, 200, 0.5))
	}
	if LerpUint8(200, 0, 1) != 0 {
		t.Errorf("expected 0 at fraction 1, got %d", LerpUint8(200, 0, 1))
	}
}

func TestLinearInterpolationRGB(t *testing.T) {
	c1 := color.RGBA{R: 0, G: 100, B: 200, A: 0}
	c2 := color.RGBA{R: 200, G: 0, B: 200, A: 0}

	mid := LinearInterpolationRGB(c1, c2, 0.5)
	if mid != (color.RGBA{R: 100, G: 50, B: 200, A: 255}) {
		t.Errorf("unexpected midpoint color %v", mid)
	}
	if LinearInterpolationRGB(c1, c2, 0).A != 255 {
		t.Error("expected an opaque result regardless of the input alphas")
	}
}

func TestEaseOutExpo(t *testing.T) {
	if EaseOutExpo(1) != 1 || EaseOutExpo(2) != 1 {
		t.Error("expected the curve clamped to 1 at and past the end")
	}
	if EaseOutExpo(0) != 0 {
		t.Errorf("expected the curve to start at 0, got %g", EaseOutExpo(0))
	}
	if EaseOutExpo(0.5) <= 0.9 {
		t.Errorf("expected a fast start, got %g at the midpoint", EaseOutExpo(0.5))
	}
}

func TestEaseInExpo(t *testing.T) {
	if EaseInExpo(0) != 0 || EaseInExpo(-1) != 0 {
		t.Error("expected the curve clamped to 0 at and before the start")
	}
	if EaseInExpo(1) != 1 {
		t.Errorf("expected the curve to end at 1, got %g", EaseInExpo(1))
	}
	if EaseInExpo(0.5) >= 0.1 {
		t.Errorf("expected a slow start, got %g at the midpoint", EaseInExpo(0.5))
	}
}
