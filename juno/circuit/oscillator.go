package circuit

const (
	minDuty = 0.05
	maxDuty = 0.95

	// pwmSwing is the duty excursion at full depth and full modulation.
	pwmSwing = 0.49

	sawWeight    = 0.6
	pulseWeight  = 0.4
	subWeight    = 0.5
	dcoMixGain   = 0.7
	maxDCOFreqHz = 0.45 // fraction of the sample rate
)

// Waves holds one sample of every oscillator output.
type Waves struct {
	Saw   float64
	Pulse float64
	Sub   float64 // square one octave below
	Duty  float64
}

// Oscillator is a band-naive DCO producing saw, variable-width pulse and a
// sub-octave square from one phase accumulator.
type Oscillator struct {
	sampleRate float64
	phase      float64
	subHigh    bool
}

// NewOscillator returns an oscillator at phase 0.
func NewOscillator(sampleRate float64) (*Oscillator, error) {
	o := &Oscillator{subHigh: true}
	if err := o.SetSampleRate(sampleRate); err != nil {
		return nil, err
	}
	return o, nil
}

// SetSampleRate updates the sample rate without touching phase.
func (o *Oscillator) SetSampleRate(sampleRate float64) error {
	if err := validateSampleRate("oscillator", sampleRate); err != nil {
		return err
	}
	o.sampleRate = sampleRate
	return nil
}

// Reset returns the phase to 0.
func (o *Oscillator) Reset() {
	o.phase = 0
	o.subHigh = true
}

// Phase returns the main phase in [0, 1).
func (o *Oscillator) Phase() float64 { return o.phase }

// Duty returns the pulse duty cycle for a PWM depth and modulation value.
func Duty(pwmDepth, mod float64, usePWM bool) float64 {
	if !usePWM {
		return 0.5
	}
	return clamp(0.5+pwmDepth*pwmSwing*mod, minDuty, maxDuty)
}

// Next advances the phase by one sample at freqHz and returns every
// waveform at the new phase.
func (o *Oscillator) Next(freqHz, mod, pwmDepth float64, usePWM bool) Waves {
	inc := clamp(freqHz/o.sampleRate, 0, maxDCOFreqHz)
	o.phase += inc
	if o.phase >= 1 {
		o.phase--
		o.subHigh = !o.subHigh
	}
	if !isFinite(o.phase) {
		o.phase = 0
	}

	duty := Duty(pwmDepth, mod, usePWM)
	w := Waves{
		Saw:   2*o.phase - 1,
		Pulse: -1,
		Sub:   -1,
		Duty:  duty,
	}
	if o.phase < duty {
		w.Pulse = 1
	}
	if o.subHigh {
		w.Sub = 1
	}
	return w
}

// Blend mixes the enabled waveforms the way the voice mixer does. With
// both saw and pulse enabled and no sub it equals ProcessSample.
func (w Waves) Blend(saw, pulse bool, subLevel float64) float64 {
	out := 0.0
	if saw {
		out += w.Saw * sawWeight
	}
	if pulse {
		out += w.Pulse * pulseWeight
	}
	return (out + w.Sub*subLevel*subWeight) * dcoMixGain
}

// ProcessSample returns the classic saw plus pulse blend.
func (o *Oscillator) ProcessSample(freqHz, mod, pwmDepth float64, usePWM bool) float64 {
	w := o.Next(freqHz, mod, pwmDepth, usePWM)
	return (w.Saw*sawWeight + w.Pulse*pulseWeight) * dcoMixGain
}
