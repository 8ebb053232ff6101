package artifact

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-juno/dsp/filter/onepole"
	"github.com/cwbudde/algo-juno/dsp/signal"
)

const (
	DefaultClockRateHz = 15000.0

	clockJitterDepth  = 0.0002
	clockEdgeFilterHz = 15000.0
	clockEdgeGain     = 0.01
	clockFeedFilterHz = 8000.0
	clockFeedGain     = 0.005
	clockPumpGain     = 0.003
)

// ClockNoise generates the faint clock leakage of the BBD driver: a
// jittered square edge, clock feedthrough and a sub-harmonic pump.
type ClockNoise struct {
	sampleRate float64
	rateHz     float64
	jitter     float64

	phase float64
	high  bool

	edgeLP *onepole.Lowpass
	feedLP *onepole.Lowpass
	rng    signal.XorShift32
}

// NewClockNoise returns a generator at the default clock rate with full
// jitter.
func NewClockNoise(sampleRate float64) (*ClockNoise, error) {
	c := &ClockNoise{
		rateHz: DefaultClockRateHz,
		jitter: 1,
		edgeLP: &onepole.Lowpass{},
		feedLP: &onepole.Lowpass{},
		rng:    signal.NewXorShift32(signal.DefaultWhiteSeed),
	}
	if err := c.SetSampleRate(sampleRate); err != nil {
		return nil, err
	}
	return c, nil
}

// SetSampleRate updates the sample rate and the edge filters.
func (c *ClockNoise) SetSampleRate(sampleRate float64) error {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("clock noise: sample rate must be > 0 and finite: %v", sampleRate)
	}
	c.sampleRate = sampleRate
	if err := c.edgeLP.SetCutoff(sampleRate, clockEdgeFilterHz); err != nil {
		return err
	}
	return c.feedLP.SetCutoff(sampleRate, clockFeedFilterHz)
}

// SetRate sets the clock rate in Hz. Non-positive rates are ignored.
func (c *ClockNoise) SetRate(rateHz float64) {
	if rateHz > 0 && !math.IsInf(rateHz, 0) {
		c.rateHz = rateHz
	}
}

// Rate returns the clock rate in Hz.
func (c *ClockNoise) Rate() float64 { return c.rateHz }

// SetJitter scales timing jitter, clamped to [0, 1].
func (c *ClockNoise) SetJitter(amount float64) {
	switch {
	case !(amount > 0):
		c.jitter = 0
	case amount > 1:
		c.jitter = 1
	default:
		c.jitter = amount
	}
}

// Reset restarts the clock phase, filters and jitter sequence.
func (c *ClockNoise) Reset() {
	c.phase = 0
	c.high = false
	c.edgeLP.Reset()
	c.feedLP.Reset()
	c.rng.Seed(signal.DefaultWhiteSeed)
}

// ProcessSample advances the clock by one sample and returns the leakage.
func (c *ClockNoise) ProcessSample() float64 {
	jitter := (c.rng.Uniform() - 0.5) * clockJitterDepth * c.jitter
	c.phase += c.rateHz/c.sampleRate + jitter
	if c.phase >= 1 {
		c.phase -= math.Floor(c.phase)
		c.high = !c.high
	} else if c.phase < 0 {
		c.phase = 0
	}

	edge := -1.0
	if c.high {
		edge = 1
	}
	out := c.edgeLP.ProcessSample(edge) * clockEdgeGain

	feed := math.Sin(2 * math.Pi * c.phase)
	out += c.feedLP.ProcessSample(feed) * clockFeedGain

	pump := math.Sin(2 * math.Pi * math.Mod(c.phase*0.5, 1))
	return out + pump*clockPumpGain
}

// ProcessBlock adds scale times the leakage to every sample of dst.
func (c *ClockNoise) ProcessBlock(dst []float64, scale float64) {
	for i := range dst {
		dst[i] += c.ProcessSample() * scale
	}
}
