package param

import (
	"math"

	"github.com/cwbudde/algo-juno/dsp/core"
)

// ID identifies one engine parameter. The set is closed: every ID has a
// fixed owner (each voice or the output bus) and a fixed value range.
type ID uint8

// Voice parameters. Values are in natural units (Hz, seconds) or
// normalized [0, 1] unless noted.
const (
	CutoffHz    ID = iota // filter cutoff in Hz
	Resonance             // filter resonance
	EnvToFilter           // envelope to cutoff depth, [-1, 1]
	LFOToFilter           // LFO to cutoff depth
	LFORateHz             // LFO rate in Hz
	PWMDepth              // pulse-width modulation depth
	Attack                // envelope attack in seconds
	Decay                 // envelope decay in seconds
	Sustain               // envelope sustain level
	Release               // envelope release in seconds
	Beating               // oscillator beating (per-voice detune) amount
	Drift                 // filter drift amount
	Click                 // envelope retrigger click amount
	Temperature           // filter temperature
	Age                   // filter component age
	SubLevel              // sub-oscillator level
	NoiseLevel            // noise generator level
	VCALevel              // amplifier level
	KeyFollow             // filter keyboard tracking
	LFODelay              // LFO fade-in time, normalized
	SawOn                 // saw waveform enable, switch
	PulseOn               // pulse waveform enable, switch
	PWMFromLFO            // PWM source: LFO (on) or manual (off), switch
	VCAGate               // amplifier follows gate instead of envelope, switch
	Range                 // oscillator footage: 0 = 16', 1 = 8', 2 = 4'

	// Bus parameters.
	ChorusMode  // 0 = off, 1 = I, 2 = II
	CableLength // output cable length in meters
	HPFStep     // bus high-pass step 0..3

	// NumIDs is the number of defined IDs.
	NumIDs
)

// firstBusID is the first parameter not owned by voices.
const firstBusID = ChorusMode

var idNames = [NumIDs]string{
	CutoffHz:    "cutoff_hz",
	Resonance:   "resonance",
	EnvToFilter: "env_to_filter",
	LFOToFilter: "lfo_to_filter",
	LFORateHz:   "lfo_rate_hz",
	PWMDepth:    "pwm_depth",
	Attack:      "attack",
	Decay:       "decay",
	Sustain:     "sustain",
	Release:     "release",
	Beating:     "beating",
	Drift:       "drift",
	Click:       "click",
	Temperature: "temperature",
	Age:         "age",
	SubLevel:    "sub_level",
	NoiseLevel:  "noise_level",
	VCALevel:    "vca_level",
	KeyFollow:   "key_follow",
	LFODelay:    "lfo_delay",
	SawOn:       "saw_on",
	PulseOn:     "pulse_on",
	PWMFromLFO:  "pwm_from_lfo",
	VCAGate:     "vca_gate",
	Range:       "range",
	ChorusMode:  "chorus_mode",
	CableLength: "cable_length",
	HPFStep:     "hpf_step",
}

func (id ID) String() string {
	if id < NumIDs {
		return idNames[id]
	}
	return "unknown"
}

// Valid reports whether id is a defined parameter.
func (id ID) Valid() bool { return id < NumIDs }

// IsVoice reports whether id is applied to every voice.
func (id ID) IsVoice() bool { return id < firstBusID }

// IsBus reports whether id is applied to the shared output bus.
func (id ID) IsBus() bool { return id >= firstBusID && id < NumIDs }

// Limits returns the inclusive value range for id.
func (id ID) Limits() (lo, hi float64) {
	switch id {
	case CutoffHz:
		return MinCutoffHz, MaxCutoffHz
	case EnvToFilter:
		return -1, 1
	case LFORateHz:
		return MinLFORateHz, MaxLFORateHz
	case Attack, Decay, Release:
		return MinEnvelopeSeconds, MaxEnvelopeSeconds
	case Range:
		return 0, 2
	case ChorusMode:
		return 0, 2
	case CableLength:
		return 0, MaxCableMeters
	case HPFStep:
		return 0, 3
	default:
		return 0, 1
	}
}

// Clamp limits v to the range of id. Switch and step parameters are
// rounded to their nearest legal value. NaN maps to the lower bound.
func (id ID) Clamp(v float64) float64 {
	lo, hi := id.Limits()
	if v = core.Clamp(v, lo, hi); math.IsNaN(v) {
		v = lo
	}
	switch id {
	case SawOn, PulseOn, PWMFromLFO, VCAGate:
		if v >= 0.5 {
			return 1
		}
		return 0
	case Range, ChorusMode, HPFStep:
		return float64(int(v + 0.5))
	}
	return v
}

// Lookup returns the ID with the given name.
func Lookup(name string) (ID, bool) {
	for i, n := range idNames {
		if n == name {
			return ID(i), true
		}
	}
	return 0, false
}
