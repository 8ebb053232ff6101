package testutil

import (
	"math"
	"testing"
)

func TestDistances(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		max      float64
		mean     float64
		mismatch bool
	}{
		{name: "identical", a: []float64{1, 2, 3}, b: []float64{1, 2, 3}},
		{name: "one off", a: []float64{1, 2, 3}, b: []float64{1, 2.1, 3}, max: 0.1, mean: 0.1 / 3},
		{name: "mixed", a: []float64{1, 2, 3, 4}, b: []float64{1, 3, 3, 2}, max: 2, mean: 0.75},
		{name: "empty"},
		{name: "mismatch", a: []float64{1}, b: []float64{1, 2}, mismatch: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mx, err := MaxAbsDiff(tt.a, tt.b)
			mean, errMean := MeanAbsDiff(tt.a, tt.b)
			if tt.mismatch {
				if err == nil || errMean == nil {
					t.Fatal("expected length mismatch errors")
				}
				return
			}
			if err != nil || errMean != nil {
				t.Fatalf("errors = %v, %v", err, errMean)
			}
			if math.Abs(mx-tt.max) > 1e-15 {
				t.Fatalf("MaxAbsDiff = %v, want %v", mx, tt.max)
			}
			if math.Abs(mean-tt.mean) > 1e-15 {
				t.Fatalf("MeanAbsDiff = %v, want %v", mean, tt.mean)
			}
		})
	}
}

func TestRMS(t *testing.T) {
	if got := RMS(DC(-0.5, 16)); math.Abs(got-0.5) > 1e-15 {
		t.Fatalf("RMS(DC) = %v, want 0.5", got)
	}
	if got := RMS(nil); got != 0 {
		t.Fatalf("RMS(nil) = %v, want 0", got)
	}
	sine := DeterministicSine(1000, 48000, 1, 4800)
	if got := RMS(sine); math.Abs(got-1/math.Sqrt2) > 1e-9 {
		t.Fatalf("RMS(sine) = %v, want %v", got, 1/math.Sqrt2)
	}
}
