package testutil

import (
	"math"

	"github.com/cwbudde/algo-juno/dsp/signal"
)

// DeterministicSine returns length samples of a sine starting at phase 0.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise returns bipolar white noise in [-amplitude, amplitude)
// from the engine's xorshift generator, so a seed gives the same samples on
// every platform and Go release.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	// Small seeds start xorshift in a low-entropy state; spread them first.
	rng := signal.NewXorShift32(uint32(seed)*0x9E3779B9 + 0x6D2B79F5)
	for i := range out {
		out[i] = rng.Bipolar() * amplitude
	}
	return out
}

// Impulse returns a unit impulse at pos. An out-of-range pos gives silence.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC returns a constant signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}
