package onepole

import (
	"fmt"
	"math"
)

// Lowpass is a first-order smoothing low-pass:
//
//	alpha = 1 - exp(-2*pi*fc/fs)
//	y[n]  = y[n-1] + alpha*(x[n] - y[n-1])
type Lowpass struct {
	alpha float64
	z     float64
}

// NewLowpass returns a low-pass at cutoffHz for sampleRate.
func NewLowpass(sampleRate, cutoffHz float64) (*Lowpass, error) {
	lp := &Lowpass{}
	if err := lp.SetCutoff(sampleRate, cutoffHz); err != nil {
		return nil, err
	}
	return lp, nil
}

// Coefficient returns the smoothing coefficient for cutoffHz at sampleRate.
// The cutoff is clamped to (0, sampleRate/2].
func Coefficient(sampleRate, cutoffHz float64) float64 {
	if cutoffHz <= 0 {
		return 0
	}
	if nyq := 0.5 * sampleRate; cutoffHz > nyq {
		cutoffHz = nyq
	}
	return 1 - math.Exp(-2*math.Pi*cutoffHz/sampleRate)
}

// SetCutoff updates the cutoff without clearing state.
func (l *Lowpass) SetCutoff(sampleRate, cutoffHz float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("onepole: sample rate must be > 0: %f", sampleRate)
	}
	if cutoffHz < 0 || math.IsNaN(cutoffHz) || math.IsInf(cutoffHz, 0) {
		return fmt.Errorf("onepole: cutoff must be >= 0 and finite: %f", cutoffHz)
	}
	l.alpha = Coefficient(sampleRate, cutoffHz)
	return nil
}

// SetCoefficient sets alpha directly; it is clamped to [0, 1].
func (l *Lowpass) SetCoefficient(alpha float64) {
	l.alpha = math.Max(0, math.Min(1, alpha))
}

// Alpha returns the current smoothing coefficient.
func (l *Lowpass) Alpha() float64 { return l.alpha }

// ProcessSample filters one sample.
func (l *Lowpass) ProcessSample(x float64) float64 {
	l.z += l.alpha * (x - l.z)
	return l.z
}

// ProcessInPlace filters buf in place.
func (l *Lowpass) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = l.ProcessSample(buf[i])
	}
}

// Last returns the most recent output.
func (l *Lowpass) Last() float64 { return l.z }

// Reset clears the filter memory.
func (l *Lowpass) Reset() { l.z = 0 }

// Highpass is the complement of Lowpass: y = x - lowpass(x).
// A zero cutoff passes the input unchanged.
type Highpass struct {
	lp Lowpass
}

// NewHighpass returns a high-pass at cutoffHz for sampleRate.
func NewHighpass(sampleRate, cutoffHz float64) (*Highpass, error) {
	hp := &Highpass{}
	if err := hp.SetCutoff(sampleRate, cutoffHz); err != nil {
		return nil, err
	}
	return hp, nil
}

// SetCutoff updates the cutoff without clearing state.
func (h *Highpass) SetCutoff(sampleRate, cutoffHz float64) error {
	return h.lp.SetCutoff(sampleRate, cutoffHz)
}

// SetCoefficient sets the complementary low-pass coefficient directly.
func (h *Highpass) SetCoefficient(alpha float64) { h.lp.SetCoefficient(alpha) }

// Alpha returns the complementary low-pass coefficient.
func (h *Highpass) Alpha() float64 { return h.lp.alpha }

// ProcessSample filters one sample.
func (h *Highpass) ProcessSample(x float64) float64 {
	if h.lp.alpha == 0 {
		return x
	}
	return x - h.lp.ProcessSample(x)
}

// ProcessInPlace filters buf in place.
func (h *Highpass) ProcessInPlace(buf []float64) {
	if h.lp.alpha == 0 {
		return
	}
	for i := range buf {
		buf[i] -= h.lp.ProcessSample(buf[i])
	}
}

// Reset clears the filter memory.
func (h *Highpass) Reset() { h.lp.Reset() }
