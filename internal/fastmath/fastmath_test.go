package fastmath

import (
	"math"
	"testing"
)

func TestFunctionsTrackStdlib(t *testing.T) {
	// Loose enough for the fastmath build, tight enough to catch wiring bugs.
	const tol = 1e-3

	for _, x := range []float64{-4, -1.5, -0.2, 0, 0.3, 1, 2.5} {
		if got, want := Tanh(x), math.Tanh(x); math.Abs(got-want) > tol {
			t.Fatalf("Tanh(%v) = %v, want %v", x, got, want)
		}
		if got, want := Exp(x), math.Exp(x); math.Abs(got-want) > tol*want {
			t.Fatalf("Exp(%v) = %v, want %v", x, got, want)
		}
		if got, want := Exp2(x), math.Exp2(x); math.Abs(got-want) > tol*want {
			t.Fatalf("Exp2(%v) = %v, want %v", x, got, want)
		}
	}

	for _, x := range []float64{0.01, 0.5, 1, 20, 20000} {
		if got, want := Log2(x), math.Log2(x); math.Abs(got-want) > tol*math.Max(1, math.Abs(want)) {
			t.Fatalf("Log2(%v) = %v, want %v", x, got, want)
		}
		if got, want := Sqrt(x), math.Sqrt(x); math.Abs(got-want) > tol*want {
			t.Fatalf("Sqrt(%v) = %v, want %v", x, got, want)
		}
	}
}

func TestSoftTanh(t *testing.T) {
	if SoftTanh(0) != 0 {
		t.Fatal("SoftTanh(0) must be 0")
	}
	if SoftTanh(10) != 1 || SoftTanh(-10) != -1 {
		t.Fatal("SoftTanh must saturate")
	}
	prev := -1.0
	for x := -3.0; x <= 3; x += 0.01 {
		y := SoftTanh(x)
		if y < prev {
			t.Fatalf("SoftTanh not monotonic at %v", x)
		}
		prev = y
	}
}

func TestSoftRail(t *testing.T) {
	tests := []struct {
		x, want float64
	}{
		{x: 2, want: 2},
		{x: 7, want: 5.4},
		{x: -7, want: -5.4},
	}

	for _, tt := range tests {
		if got := SoftRail(tt.x, 5, 0.2); math.Abs(got-tt.want) > 1e-12 {
			t.Fatalf("SoftRail(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}
