package interp

import (
	"math"
	"testing"
)

func TestHermite4IdentityOnLinearRamp(t *testing.T) {
	xm1, x0, x1, x2 := -1.0, 0.0, 1.0, 2.0
	for _, tc := range []struct {
		t float64
		w float64
	}{
		{t: 0.0, w: 0.0},
		{t: 0.25, w: 0.25},
		{t: 0.5, w: 0.5},
		{t: 1.0, w: 1.0},
	} {
		got := Hermite4(tc.t, xm1, x0, x1, x2)
		if diff := got - tc.w; diff < -1e-12 || diff > 1e-12 {
			t.Fatalf("t=%v: got %v want %v", tc.t, got, tc.w)
		}
	}
}

func TestHermite4PassesThroughEndpoints(t *testing.T) {
	if got := Hermite4(0, 3, -2, 5, 1); got != -2 {
		t.Fatalf("t=0: got %v want -2", got)
	}
	if got := Hermite4(1, 3, -2, 5, 1); math.Abs(got-5) > 1e-12 {
		t.Fatalf("t=1: got %v want 5", got)
	}
}

func TestHermite4BeatsLinearOnSine(t *testing.T) {
	const step = 0.3
	errLin, errHerm := 0.0, 0.0
	for i := 1; i < 20; i++ {
		x := float64(i) * step
		for _, frac := range []float64{0.25, 0.5, 0.75} {
			want := math.Sin(x + frac*step)
			lin := Linear2(frac, math.Sin(x), math.Sin(x+step))
			herm := Hermite4(frac, math.Sin(x-step), math.Sin(x), math.Sin(x+step), math.Sin(x+2*step))
			errLin = math.Max(errLin, math.Abs(lin-want))
			errHerm = math.Max(errHerm, math.Abs(herm-want))
		}
	}
	if errHerm >= errLin {
		t.Fatalf("hermite error %v not below linear error %v", errHerm, errLin)
	}
}

func TestLinear2(t *testing.T) {
	if got := Linear2(0.25, 2, 4); got != 2.5 {
		t.Fatalf("got %v want 2.5", got)
	}
}
