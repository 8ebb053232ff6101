package circuit

import (
	"fmt"
	"math"
)

func validateSampleRate(stage string, sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%s: sample rate must be > 0 and finite: %f", stage, sampleRate)
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if !(v >= lo) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// wrap01 wraps a phase back into [0, 1) by subtraction.
func wrap01(phase float64) float64 {
	for phase >= 1 {
		phase--
	}
	for phase < 0 {
		phase++
	}
	return phase
}
