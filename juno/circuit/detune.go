package circuit

import "math"

// Per-voice tuning constants. The offsets come from measured unit spread
// and cycle for pools larger than six.
var voiceDetuneOffsets = [...]float64{0.9975, 1.0000, 1.0025, 0.9985, 1.0015, 0.9995}

const (
	warmupSeconds     = 900.0 // 15 minutes
	warmupStartFactor = 0.998

	trackingKneeHz   = 220.0
	trackingErrorMin = 0.999
	trackingErrorMax = 0.002

	driftLFOBaseHz      = 0.02
	driftLFOPerVoiceHz  = 0.005
	driftLFOPhaseStride = 0.3
	driftLFODepth       = 0.0003

	minDetuneRatio   = 0.98
	maxDetuneRatio   = 1.02
	maxCharacterGain = 2.0
)

// Detune produces the slowly varying pitch ratio of one voice: a static
// unit offset scaled by the beating amount, a warm-up drift over the first
// fifteen minutes, low-note tracking error and a very slow drift LFO.
type Detune struct {
	sampleRate float64
	baseHz     float64
	index      int

	staticOffset float64
	character    float64

	warmupTime  float64
	warmupDrift float64

	driftHz    float64
	driftPhase float64

	ratio float64
}

// NewDetune returns the detune source for voice index.
func NewDetune(sampleRate float64, index int) (*Detune, error) {
	d := &Detune{character: 1, warmupDrift: warmupStartFactor, ratio: 1}
	if err := d.SetSampleRate(sampleRate); err != nil {
		return nil, err
	}
	d.SetVoice(index)
	return d, nil
}

// SetSampleRate updates the sample rate.
func (d *Detune) SetSampleRate(sampleRate float64) error {
	if err := validateSampleRate("detune", sampleRate); err != nil {
		return err
	}
	d.sampleRate = sampleRate
	return nil
}

// SetVoice selects the voice slot, which fixes the static offset and the
// drift LFO rate and start phase.
func (d *Detune) SetVoice(index int) {
	if index < 0 {
		index = 0
	}
	d.index = index
	d.staticOffset = voiceDetuneOffsets[index%len(voiceDetuneOffsets)]
	d.driftHz = driftLFOBaseHz + float64(index)*driftLFOPerVoiceHz
	d.driftPhase = wrap01(float64(index) * driftLFOPhaseStride)
}

// SetBase sets the nominal note frequency, which drives tracking error.
func (d *Detune) SetBase(baseHz float64) {
	d.baseHz = baseHz
}

// SetCharacter scales the static offset and drift depth, clamped to [0, 2].
func (d *Detune) SetCharacter(amount float64) {
	d.character = clamp(amount, 0, maxCharacterGain)
}

// Ratio returns the last computed pitch ratio.
func (d *Detune) Ratio() float64 { return d.ratio }

// Reset restarts warm-up and the drift LFO.
func (d *Detune) Reset() {
	d.warmupTime = 0
	d.warmupDrift = warmupStartFactor
	d.SetVoice(d.index)
	d.ratio = 1
}

// ProcessSample advances one sample and returns the pitch ratio.
func (d *Detune) ProcessSample() float64 {
	dt := 1 / d.sampleRate
	if d.warmupTime < warmupSeconds {
		d.warmupTime += dt
		progress := math.Min(1, d.warmupTime/warmupSeconds)
		d.warmupDrift = warmupStartFactor + (1-warmupStartFactor)*progress
	}

	d.driftPhase = wrap01(d.driftPhase + d.driftHz*dt)
	drift := math.Sin(2 * math.Pi * d.driftPhase)

	tracking := 1.0
	if d.baseHz > 0 && d.baseHz < trackingKneeHz {
		tracking = trackingErrorMin + trackingErrorMax*(trackingKneeHz-d.baseHz)/trackingKneeHz
	}

	static := 1 + (d.staticOffset-1)*d.character
	r := static * d.warmupDrift * tracking * (1 + drift*driftLFODepth*d.character)
	d.ratio = clamp(r, minDetuneRatio, maxDetuneRatio)
	return d.ratio
}
