package circuit

import (
	"math"

	"github.com/cwbudde/algo-juno/dsp/filter/onepole"
)

// Retrigger click shaping. These are tuned by ear against hardware
// recordings.
const (
	ClickReleaseScale     = 0.5    // amplitude per unit of pre-retrigger level
	ClickQuietLevel       = 0.01   // below this the click is attenuated
	ClickQuietScale       = 0.3    // attenuation for quiet retriggers
	ClickReferenceAttack  = 0.01   // attack time giving unity amplitude scaling
	ClickMaxAmplitude     = 1.0    // ceiling after attack scaling
	ClickMaxDuration      = 0.0005 // seconds
	ClickDurationFraction = 0.1    // of the attack time
	ClickDecayRate        = 10000  // 1/s
	ClickOvershootPoint   = 0.3    // fraction of duration
	ClickOvershootGain    = -0.2
	ClickFilterHz         = 12000
	ClickFloor            = 0.0001
	maxClickAmount        = 2.0
)

// Click renders the short transient heard when an envelope is retriggered
// before it has fully released.
type Click struct {
	sampleRate float64
	amount     float64

	amp      float64
	duration float64
	t        float64
	active   bool

	lp onepole.Lowpass
}

// NewClick returns an idle click generator with amount 1.
func NewClick(sampleRate float64) (*Click, error) {
	c := &Click{amount: 1}
	if err := c.SetSampleRate(sampleRate); err != nil {
		return nil, err
	}
	return c, nil
}

// SetSampleRate updates the sample rate and the shaping filter.
func (c *Click) SetSampleRate(sampleRate float64) error {
	if err := validateSampleRate("click", sampleRate); err != nil {
		return err
	}
	c.sampleRate = sampleRate
	return c.lp.SetCutoff(sampleRate, ClickFilterHz)
}

// SetAmount scales the click output, clamped to [0, 2].
func (c *Click) SetAmount(amount float64) {
	c.amount = clamp(amount, 0, maxClickAmount)
}

// Trigger arms a click. Only retriggers produce one; its amplitude follows
// the envelope level at the moment of retrigger and grows for short
// attacks.
func (c *Click) Trigger(retrigger bool, releaseLevel, attackSeconds float64) {
	if !retrigger {
		c.amp = 0
		c.active = false
		return
	}

	attackSeconds = math.Max(attackSeconds, MinEnvelopeTime)
	amp := clamp(releaseLevel, 0, 1) * ClickReleaseScale
	if releaseLevel < ClickQuietLevel {
		amp *= ClickQuietScale
	}
	amp *= ClickReferenceAttack / attackSeconds

	c.amp = math.Min(amp, ClickMaxAmplitude)
	c.duration = math.Min(ClickMaxDuration, attackSeconds*ClickDurationFraction)
	c.t = 0
	c.active = c.amp > ClickFloor
}

// Active reports whether a click is still sounding.
func (c *Click) Active() bool { return c.active }

// Reset silences the click and clears the filter.
func (c *Click) Reset() {
	c.amp = 0
	c.active = false
	c.t = 0
	c.lp.Reset()
}

// ProcessSample returns the next click sample.
func (c *Click) ProcessSample() float64 {
	if !c.active {
		if c.lp.Last() == 0 {
			return 0
		}
		out := c.lp.ProcessSample(0)
		if math.Abs(out) < 1e-12 {
			c.lp.Reset()
		}
		return out
	}

	var v float64
	switch {
	case c.t == 0:
		v = c.amp
	case c.t < c.duration:
		v = c.amp * math.Exp(-c.t*ClickDecayRate)
		if c.t > c.duration*ClickOvershootPoint {
			v *= ClickOvershootGain
		}
	default:
		c.active = false
	}
	c.t += 1 / c.sampleRate

	return c.lp.ProcessSample(v * c.amount)
}
