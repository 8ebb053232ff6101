package delay

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-juno/dsp/interp"
)

// Mode selects fractional-read interpolation.
type Mode int

const (
	// Linear interpolates between the two neighbouring samples.
	Linear Mode = iota
	// Hermite uses 4-point cubic Hermite interpolation.
	Hermite
)

func (m Mode) String() string {
	switch m {
	case Linear:
		return "linear"
	case Hermite:
		return "hermite"
	default:
		return "unknown"
	}
}

// guardSamples returns the read-ahead each mode needs past the integer delay.
func (m Mode) guardSamples() int {
	if m == Hermite {
		return 3
	}
	return 2
}

// Option configures a Line.
type Option func(*Line)

// WithMode selects the interpolation used by ReadFractional.
func WithMode(mode Mode) Option {
	return func(d *Line) {
		if mode == Linear || mode == Hermite {
			d.mode = mode
		}
	}
}

// Line is a circular delay line. Read(1) is the most recently written sample.
type Line struct {
	buffer   []float64
	writePos int
	mode     Mode
}

// New returns a delay line of fixed size. The default mode is Linear.
func New(size int, opts ...Option) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("delay: size must be > 0: %d", size)
	}
	d := &Line{buffer: make([]float64, size), mode: Linear}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d, nil
}

// NewForDuration returns a line that can hold maxSeconds of delay at
// sampleRate plus the guard samples the interpolation mode needs.
func NewForDuration(sampleRate, maxSeconds float64, opts ...Option) (*Line, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("delay: sample rate must be > 0: %f", sampleRate)
	}
	if maxSeconds < 0 || math.IsNaN(maxSeconds) || math.IsInf(maxSeconds, 0) {
		return nil, fmt.Errorf("delay: duration must be >= 0: %f", maxSeconds)
	}
	d, err := New(1, opts...)
	if err != nil {
		return nil, err
	}
	size := int(math.Ceil(maxSeconds*sampleRate-1e-9)) + d.mode.guardSamples()
	d.buffer = make([]float64, size)
	return d, nil
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Mode returns the interpolation mode.
func (d *Line) Mode() Mode {
	return d.mode
}

// MaxDelay returns the largest fractional delay ReadFractional honours.
func (d *Line) MaxDelay() float64 {
	return float64(max(0, len(d.buffer)-d.mode.guardSamples()))
}

// Write writes one sample.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read reads an integer delay in samples.
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	delay %= size
	if delay < 0 {
		delay += size
	}
	readPos := d.writePos - delay
	if readPos < 0 {
		readPos += size
	}
	return d.buffer[readPos]
}

// ReadFractional reads a fractional delay in samples, clamped to
// [1, MaxDelay()].
func (d *Line) ReadFractional(delay float64) float64 {
	if !(delay > 1) {
		delay = 1
	}
	if maxDelay := d.MaxDelay(); delay > maxDelay {
		delay = maxDelay
	}

	p := int(delay)
	t := delay - float64(p)

	x0 := d.Read(p)
	x1 := d.Read(p + 1)
	if d.mode == Linear {
		return interp.Linear2(t, x0, x1)
	}

	xm1 := d.Read(max(0, p-1))
	x2 := d.Read(p + 2)
	return interp.Hermite4(t, xm1, x0, x1, x2)
}

// Reset clears line state.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
}
