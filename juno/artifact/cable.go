package artifact

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-juno/dsp/filter/onepole"
)

const (
	DefaultCableMeters = 3.0

	cableSourceOhms      = 1000.0
	cableFaradsPerMeter  = 80e-12
	cableSkinPerMeter    = 0.01
	cableSkinCornerHz    = 10000.0
	cableSkinCornerScale = 10.0
)

// Cable is the low-pass formed by the source impedance and cable
// capacitance, plus a skin-effect pole for long runs. A zero-length cable
// is transparent.
type Cable struct {
	sampleRate float64
	meters     float64

	rc   onepole.Lowpass
	skin onepole.Lowpass

	useSkin bool
}

// NewCable returns a cable of the given length in meters.
func NewCable(sampleRate, meters float64) (*Cable, error) {
	c := &Cable{}
	if err := c.SetSampleRate(sampleRate); err != nil {
		return nil, err
	}
	c.SetLength(meters)
	return c, nil
}

// SetSampleRate updates the sample rate and recomputes both poles.
func (c *Cable) SetSampleRate(sampleRate float64) error {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("cable: sample rate must be > 0 and finite: %v", sampleRate)
	}
	c.sampleRate = sampleRate
	c.update()
	return nil
}

// SetLength sets the cable length. Negative and NaN lengths mean no cable.
func (c *Cable) SetLength(meters float64) {
	if !(meters > 0) || math.IsInf(meters, 0) {
		meters = 0
	}
	c.meters = meters
	c.update()
}

// Length returns the cable length in meters.
func (c *Cable) Length() float64 { return c.meters }

// CutoffHz returns the RC corner frequency, or +Inf without a cable.
func (c *Cable) CutoffHz() float64 {
	if c.meters == 0 {
		return math.Inf(1)
	}
	return 1 / (2 * math.Pi * cableSourceOhms * c.meters * cableFaradsPerMeter)
}

func (c *Cable) update() {
	if c.sampleRate == 0 {
		return
	}
	if c.meters == 0 {
		c.useSkin = false
		c.Reset()
		return
	}
	// Alpha saturates at 1 when the corner is far above the band.
	alpha := 1 - math.Exp(-2*math.Pi*c.CutoffHz()/c.sampleRate)
	c.rc.SetCoefficient(alpha)

	skin := c.meters * cableSkinPerMeter
	c.useSkin = skin > 0
	c.skin.SetCoefficient(onepole.Coefficient(c.sampleRate, cableSkinCornerHz/(1+skin*cableSkinCornerScale)))
}

// Reset clears the filter state.
func (c *Cable) Reset() {
	c.rc.Reset()
	c.skin.Reset()
}

// ProcessSample filters one sample. Without a cable x is returned as is.
func (c *Cable) ProcessSample(x float64) float64 {
	if c.meters == 0 {
		return x
	}
	y := c.rc.ProcessSample(x)
	if c.useSkin {
		y = c.skin.ProcessSample(y)
	}
	return y
}

// ProcessInPlace filters buf in place.
func (c *Cable) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = c.ProcessSample(x)
	}
}
