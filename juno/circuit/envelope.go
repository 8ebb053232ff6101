package circuit

import "fmt"

// Phase is the envelope state-machine tag.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseAttack
	PhaseDecay
	PhaseSustain
	PhaseRelease
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAttack:
		return "attack"
	case PhaseDecay:
		return "decay"
	case PhaseSustain:
		return "sustain"
	case PhaseRelease:
		return "release"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// Envelope time-scaling and transition thresholds.
const (
	AttackTimeScale  = 0.5
	DecayTimeScale   = 2.0
	ReleaseTimeScale = 3.0

	AttackDoneLevel = 0.999
	SustainBand     = 0.001
	IdleLevel       = 0.001

	MinEnvelopeTime = 0.001
)

// Envelope is a four-phase exponential ADSR follower.
type Envelope struct {
	sampleRate float64
	dt         float64

	attack  float64
	decay   float64
	sustain float64
	release float64

	phase Phase
	level float64
}

// NewEnvelope returns an idle envelope with the given times.
func NewEnvelope(sampleRate, attack, decay, sustain, release float64) (*Envelope, error) {
	e := &Envelope{}
	if err := e.SetSampleRate(sampleRate); err != nil {
		return nil, err
	}
	e.SetTimes(attack, decay, sustain, release)
	return e, nil
}

// SetSampleRate updates the sample rate.
func (e *Envelope) SetSampleRate(sampleRate float64) error {
	if err := validateSampleRate("envelope", sampleRate); err != nil {
		return err
	}
	e.sampleRate = sampleRate
	e.dt = 1 / sampleRate
	return nil
}

// SetTimes sets attack, decay and release in seconds (at least 1 ms) and
// the sustain level in [0, 1]. Changes apply from the next sample.
func (e *Envelope) SetTimes(attack, decay, sustain, release float64) {
	e.attack = clamp(attack, MinEnvelopeTime, 1e6)
	e.decay = clamp(decay, MinEnvelopeTime, 1e6)
	e.sustain = clamp(sustain, 0, 1)
	e.release = clamp(release, MinEnvelopeTime, 1e6)
}

// NoteOn enters Attack from the current level.
func (e *Envelope) NoteOn() { e.phase = PhaseAttack }

// NoteOff enters Release unless idle.
func (e *Envelope) NoteOff() {
	if e.phase != PhaseIdle {
		e.phase = PhaseRelease
	}
}

// Reset forces Idle at level 0.
func (e *Envelope) Reset() {
	e.phase = PhaseIdle
	e.level = 0
}

// Level returns the current level in [0, 1].
func (e *Envelope) Level() float64 { return e.level }

// Phase returns the current phase.
func (e *Envelope) Phase() Phase { return e.phase }

// IsActive reports whether the envelope is not idle.
func (e *Envelope) IsActive() bool { return e.phase != PhaseIdle }

// ProcessSample advances one sample and returns the level.
func (e *Envelope) ProcessSample() float64 {
	switch e.phase {
	case PhaseAttack:
		e.level += coeff(e.dt, e.attack*AttackTimeScale) * (1 - e.level)
		if e.level >= AttackDoneLevel {
			e.level = 1
			e.phase = PhaseDecay
		}
	case PhaseDecay:
		e.level -= coeff(e.dt, e.decay*DecayTimeScale) * (e.level - e.sustain)
		if e.level <= e.sustain+SustainBand {
			e.level = e.sustain
			e.phase = PhaseSustain
		}
	case PhaseSustain:
		e.level = e.sustain
	case PhaseRelease:
		e.level -= coeff(e.dt, e.release*ReleaseTimeScale) * e.level
		if e.level < IdleLevel {
			e.level = 0
			e.phase = PhaseIdle
		}
	default:
		e.level = 0
	}
	return e.level
}

func coeff(dt, tau float64) float64 {
	k := dt / tau
	if k > 1 {
		return 1
	}
	return k
}
