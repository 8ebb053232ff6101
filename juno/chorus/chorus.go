package chorus

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-juno/dsp/core"
	"github.com/cwbudde/algo-juno/dsp/delay"
	"github.com/cwbudde/algo-juno/dsp/signal"
)

// Mode selects the chorus setting.
type Mode int

const (
	Off Mode = iota
	I
	II
)

func (m Mode) String() string {
	switch m {
	case Off:
		return "off"
	case I:
		return "I"
	case II:
		return "II"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Valid reports whether m is a defined mode.
func (m Mode) Valid() bool { return m >= Off && m <= II }

const (
	maxDelaySeconds = 0.040

	baseDelayI  = 0.012
	depthI      = 0.004
	baseDelayII = 0.020
	depthII     = 0.008

	lfoRateLeftHz  = 0.6
	lfoRateRightHz = 1.2
	lfoPhaseRight  = 0.5

	bbdNoise = 0.003
	dryMix   = 0.7
	wetMix   = 0.6
)

// Chorus is the stereo BBD chorus. It is not safe for concurrent use.
type Chorus struct {
	sampleRate float64
	mode       Mode

	line *delay.Line

	phaseL float64
	phaseR float64
	noise  signal.XorShift32
}

// New returns a chorus in mode I.
func New(sampleRate float64) (*Chorus, error) {
	c := &Chorus{mode: I}
	if err := c.SetSampleRate(sampleRate); err != nil {
		return nil, err
	}
	return c, nil
}

// SetSampleRate reallocates the delay line and restarts the LFOs.
func (c *Chorus) SetSampleRate(sampleRate float64) error {
	line, err := delay.NewForDuration(sampleRate, maxDelaySeconds, delay.WithMode(delay.Linear))
	if err != nil {
		return fmt.Errorf("chorus: %w", err)
	}
	c.sampleRate = sampleRate
	c.line = line
	c.Reset()
	return nil
}

// SetMode selects the mode. Undefined modes are ignored.
func (c *Chorus) SetMode(m Mode) {
	if m.Valid() {
		c.mode = m
	}
}

// Mode returns the current mode.
func (c *Chorus) Mode() Mode { return c.mode }

// Reset clears the delay line and restarts both LFOs and the noise source.
func (c *Chorus) Reset() {
	c.line.Reset()
	c.phaseL = 0
	c.phaseR = lfoPhaseRight
	c.noise.Seed(signal.DefaultWhiteSeed)
}

func (c *Chorus) sweep() (base, depth float64) {
	if c.mode == II {
		return baseDelayII, depthII
	}
	return baseDelayI, depthI
}

// ProcessSample returns the left and right outputs for one mono input.
func (c *Chorus) ProcessSample(in float64) (left, right float64) {
	if c.mode == Off {
		return in, in
	}

	base, depth := c.sweep()
	dl := (base + depth*math.Sin(2*math.Pi*c.phaseL)) * c.sampleRate
	dr := (base + depth*math.Sin(2*math.Pi*c.phaseR)) * c.sampleRate

	wetL := c.line.ReadFractional(dl)
	wetR := c.line.ReadFractional(dr)
	c.line.Write(in + bbdNoise*c.noise.Bipolar())

	inc := 1 / c.sampleRate
	c.phaseL += lfoRateLeftHz * inc
	if c.phaseL >= 1 {
		c.phaseL--
	}
	c.phaseR += lfoRateRightHz * inc
	if c.phaseR >= 1 {
		c.phaseR--
	}

	return dryMix*in + wetMix*wetL, dryMix*in + wetMix*wetR
}

// ProcessBlock renders in into left and right. The three slices must have
// equal length; left and right may not alias in unless the mode is Off.
func (c *Chorus) ProcessBlock(in, left, right []float64) {
	n := min(len(in), len(left), len(right))
	if c.mode == Off {
		core.CopyInto(left[:n], in)
		core.CopyInto(right[:n], in)
		return
	}
	for i := range n {
		left[i], right[i] = c.ProcessSample(in[i])
	}
}
