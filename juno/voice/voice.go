package voice

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-juno/dsp/core"
	"github.com/cwbudde/algo-juno/dsp/signal"
	"github.com/cwbudde/algo-juno/internal/fastmath"
	"github.com/cwbudde/algo-juno/juno/circuit"
	"github.com/cwbudde/algo-juno/juno/param"
)

// NoNote is the note number of a voice that holds no key.
const NoNote = -1

const (
	noiseGain = 0.5
	clickMix  = 0.7

	// Cutoff modulation happens in a normalized decade space spanning
	// 20 Hz to 20 kHz.
	cutoffFloorHz  = 20.0
	cutoffDecades  = 3.0
	aftertouchMod  = 0.5
	keyFollowPivot = 60
)

// octaveNorm is one octave expressed in normalized cutoff units.
var octaveNorm = math.Log10(2) / cutoffDecades

// State is a read-only snapshot of one voice, used for metering and
// visualization.
type State struct {
	Index          int
	Note           int
	Active         bool
	Gate           bool
	FrequencyHz    float64
	Velocity       float64
	Aftertouch     float64
	EnvelopeLevel  float64
	EnvelopePhase  circuit.Phase
	OscPhase       float64
	PulseWidth     float64
	CutoffHz       float64
	SecondsSounded float64
}

// Voice is one analog-modeled voice: DCO, noise, VCF, envelope, LFO and
// VCA, plus the per-voice imperfection generators.
type Voice struct {
	index      int
	sampleRate float64
	params     param.VoiceParameters

	note       int
	gate       bool
	active     bool
	velocity   float64
	aftertouch float64
	baseHz     float64
	age        float64

	lastDuty   float64
	lastCutoff float64

	osc    *circuit.Oscillator
	lfo    *circuit.LFO
	env    *circuit.Envelope
	detune *circuit.Detune
	click  *circuit.Click
	drift  *circuit.FilterDrift
	filter *circuit.Filter
	vca    *circuit.Amplifier
	noise  signal.XorShift32
}

// New returns an idle voice for slot index.
func New(index int, sampleRate float64, p param.VoiceParameters) (*Voice, error) {
	if index < 0 {
		return nil, fmt.Errorf("voice: index must be >= 0: %d", index)
	}
	v := &Voice{
		index: index,
		note:  NoNote,
		vca:   circuit.NewAmplifier(),
		noise: signal.NewXorShift32(signal.DefaultWhiteSeed + uint32(index)),
	}

	var err error
	if v.osc, err = circuit.NewOscillator(sampleRate); err != nil {
		return nil, err
	}
	if v.lfo, err = circuit.NewLFO(sampleRate, p.LFORateHz); err != nil {
		return nil, err
	}
	if v.env, err = circuit.NewEnvelope(sampleRate, p.Attack, p.Decay, p.Sustain, p.Release); err != nil {
		return nil, err
	}
	if v.detune, err = circuit.NewDetune(sampleRate, index); err != nil {
		return nil, err
	}
	if v.click, err = circuit.NewClick(sampleRate); err != nil {
		return nil, err
	}
	if v.drift, err = circuit.NewFilterDrift(sampleRate); err != nil {
		return nil, err
	}
	if v.filter, err = circuit.NewFilter(sampleRate); err != nil {
		return nil, err
	}
	v.sampleRate = sampleRate
	v.SetParameters(p)
	return v, nil
}

// SetSampleRate retunes every stage. Voice state is kept.
func (v *Voice) SetSampleRate(sampleRate float64) error {
	stages := []func(float64) error{
		v.osc.SetSampleRate,
		v.lfo.SetSampleRate,
		v.env.SetSampleRate,
		v.detune.SetSampleRate,
		v.click.SetSampleRate,
		v.drift.SetSampleRate,
		v.filter.SetSampleRate,
	}
	for _, set := range stages {
		if err := set(sampleRate); err != nil {
			return fmt.Errorf("voice %d: %w", v.index, err)
		}
	}
	v.sampleRate = sampleRate
	v.configure()
	return nil
}

// SetParameters replaces the whole parameter set. Values are clamped.
func (v *Voice) SetParameters(p param.VoiceParameters) {
	v.params = p.Clamped()
	v.configure()
}

// SetParameter updates one voice parameter and reports whether id is a
// voice parameter.
func (v *Voice) SetParameter(id param.ID, value float64) bool {
	if !v.params.Set(id, value) {
		return false
	}
	v.configure()
	return true
}

// Parameters returns the current parameter set.
func (v *Voice) Parameters() param.VoiceParameters { return v.params }

func (v *Voice) configure() {
	p := &v.params
	v.env.SetTimes(p.Attack, p.Decay, p.Sustain, p.Release)
	v.lfo.SetRate(p.LFORateHz)
	v.lfo.SetDelay(p.LFODelay * param.MaxLFODelaySeconds)
	v.detune.SetCharacter(p.Beating)
	v.drift.SetAmount(p.Drift)
	v.click.SetAmount(p.Click)
}

// NoteOn starts note with velocity in [0, 1]. A voice that is still
// sounding retriggers from its current envelope level and emits a click.
func (v *Voice) NoteOn(note int, velocity float64) {
	retrigger := v.env.IsActive()
	if !retrigger {
		v.osc.Reset()
		v.drift.Reset()
	}

	v.note = note
	v.velocity = core.Clamp01(velocity)
	v.baseHz = core.MIDINoteToHz(float64(note))
	v.detune.SetBase(v.baseHz)

	v.click.Trigger(retrigger, v.env.Level(), v.params.Attack)
	v.env.NoteOn()
	v.lfo.Trigger()

	v.gate = true
	v.active = true
	v.age = 0
}

// NoteOff releases the voice. The envelope runs its release stage.
func (v *Voice) NoteOff() {
	v.gate = false
	v.env.NoteOff()
}

// SetAftertouch sets polyphonic pressure in [0, 1].
func (v *Voice) SetAftertouch(pressure float64) {
	v.aftertouch = core.Clamp01(pressure)
}

// Index returns the voice slot.
func (v *Voice) Index() int { return v.index }

// Note returns the held note or NoNote.
func (v *Voice) Note() int { return v.note }

// Gate reports whether the key is still held.
func (v *Voice) Gate() bool { return v.gate }

// IsActive reports whether the voice is producing sound.
func (v *Voice) IsActive() bool { return v.active }

// EnvelopeLevel returns the current envelope output.
func (v *Voice) EnvelopeLevel() float64 { return v.env.Level() }

// Resonance returns the resonance setting used for supply loading.
func (v *Voice) Resonance() float64 { return v.params.Resonance }

// Reset silences the voice and clears every stage.
func (v *Voice) Reset() {
	v.note = NoNote
	v.gate = false
	v.active = false
	v.velocity = 0
	v.aftertouch = 0
	v.baseHz = 0
	v.age = 0
	v.osc.Reset()
	v.lfo.Reset()
	v.env.Reset()
	v.detune.Reset()
	v.click.Reset()
	v.drift.Reset()
	v.filter.Reset()
	v.noise.Seed(signal.DefaultWhiteSeed + uint32(v.index))
}

// State returns a snapshot of the voice.
func (v *Voice) State() State {
	return State{
		Index:          v.index,
		Note:           v.note,
		Active:         v.active,
		Gate:           v.gate,
		FrequencyHz:    v.baseHz * v.detune.Ratio() * rangeRatio(v.params.Range),
		Velocity:       v.velocity,
		Aftertouch:     v.aftertouch,
		EnvelopeLevel:  v.env.Level(),
		EnvelopePhase:  v.env.Phase(),
		OscPhase:       v.osc.Phase(),
		PulseWidth:     v.lastDuty,
		CutoffHz:       v.lastCutoff,
		SecondsSounded: v.age,
	}
}

func rangeRatio(r int) float64 {
	switch r {
	case 0:
		return 0.5
	case 2:
		return 2
	default:
		return 1
	}
}

// cutoffNorm maps Hz to the normalized decade space.
func cutoffNorm(hz float64) float64 {
	return core.Clamp01(math.Log10(math.Max(cutoffFloorHz, hz)/cutoffFloorHz) / cutoffDecades)
}

// cutoffFromNorm is the inverse of cutoffNorm.
func cutoffFromNorm(n float64) float64 {
	return cutoffFloorHz * fastmath.Exp2(core.Clamp01(n)*cutoffDecades*math.Log2(10))
}

func (v *Voice) modulatedCutoff(env, lfo float64) float64 {
	p := &v.params
	n := cutoffNorm(p.CutoffHz) +
		env*p.EnvToFilter +
		lfo*p.LFOToFilter +
		v.aftertouch*aftertouchMod +
		p.KeyFollow*float64(v.note-keyFollowPivot)/12*octaveNorm
	return cutoffFromNorm(n)
}

// ProcessSample renders one sample. resonanceComp scales resonance for
// supply sag and is 1 on a stiff supply.
func (v *Voice) ProcessSample(resonanceComp float64) float64 {
	if !v.active {
		return 0
	}
	p := &v.params
	v.age += 1 / v.sampleRate

	env := v.env.ProcessSample()
	lfo := v.lfo.ProcessSample()
	click := v.click.ProcessSample()
	ratio := v.detune.ProcessSample()

	mod := 1.0
	if p.PWMFromLFO {
		mod = lfo
	}
	w := v.osc.Next(v.baseHz*ratio*rangeRatio(p.Range), mod, p.PWMDepth, true)
	v.lastDuty = w.Duty

	x := w.Blend(p.SawOn, p.PulseOn, p.SubLevel)
	if p.NoiseLevel > 0 {
		x += v.noise.Bipolar() * p.NoiseLevel * noiseGain
	}
	x += click * clickMix

	target := v.modulatedCutoff(env, lfo)
	cutoff := v.drift.ProcessSample(target, p.Resonance, p.Temperature, p.Age)
	v.lastCutoff = cutoff

	res := core.Clamp01(p.Resonance * resonanceComp)
	y := v.filter.ProcessSample(x, circuit.CutoffCV(cutoff), res, p.Temperature)

	cv := env
	if p.VCAGate {
		cv = 0
		if v.gate {
			cv = 1
		}
	}
	out := v.vca.ProcessSample(y, cv) * p.VCALevel * v.velocity

	if !v.env.IsActive() && !v.click.Active() {
		v.active = false
		v.note = NoNote
	}
	return core.Sanitize(out)
}

// ProcessBlock overwrites dst with rendered samples and reports whether
// the voice was active at the start of the block. Inactive voices leave
// dst untouched.
func (v *Voice) ProcessBlock(dst []float64, resonanceComp float64) bool {
	if !v.active {
		return false
	}
	for i := range dst {
		dst[i] = v.ProcessSample(resonanceComp)
	}
	return true
}
