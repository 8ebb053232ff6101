package param

const (
	MinCutoffHz        = 20.0
	MaxCutoffHz        = 20000.0
	MinLFORateHz       = 0.01
	MaxLFORateHz       = 50.0
	MinEnvelopeSeconds = 0.001
	MaxEnvelopeSeconds = 30.0
	MaxCableMeters     = 100.0

	// MaxLFODelaySeconds is the fade-in time at LFODelay = 1.
	MaxLFODelaySeconds = 2.5
)

// VoiceParameters is the value set copied into every voice.
type VoiceParameters struct {
	CutoffHz    float64
	Resonance   float64
	EnvToFilter float64
	LFOToFilter float64
	LFORateHz   float64
	PWMDepth    float64

	Attack  float64
	Decay   float64
	Sustain float64
	Release float64

	Beating     float64
	Drift       float64
	Click       float64
	Temperature float64
	Age         float64

	SubLevel   float64
	NoiseLevel float64
	VCALevel   float64
	KeyFollow  float64
	LFODelay   float64
	SawOn      bool
	PulseOn    bool
	PWMFromLFO bool
	VCAGate    bool
	Range      int
}

// DefaultVoiceParameters returns the power-on voice set.
func DefaultVoiceParameters() VoiceParameters {
	return VoiceParameters{
		CutoffHz:    1000,
		Resonance:   0.2,
		EnvToFilter: 0.5,
		LFOToFilter: 0.2,
		LFORateHz:   4,
		PWMDepth:    0.5,
		Attack:      0.01,
		Decay:       0.2,
		Sustain:     0.7,
		Release:     0.4,
		Beating:     0.7,
		Drift:       0.8,
		Click:       0.6,
		Temperature: 0.5,
		Age:         0.3,
		VCALevel:    1,
		SawOn:       true,
		PulseOn:     true,
		PWMFromLFO:  true,
		Range:       1,
	}
}

// Get returns the value of a voice parameter. Bus IDs return 0.
func (p *VoiceParameters) Get(id ID) float64 {
	switch id {
	case CutoffHz:
		return p.CutoffHz
	case Resonance:
		return p.Resonance
	case EnvToFilter:
		return p.EnvToFilter
	case LFOToFilter:
		return p.LFOToFilter
	case LFORateHz:
		return p.LFORateHz
	case PWMDepth:
		return p.PWMDepth
	case Attack:
		return p.Attack
	case Decay:
		return p.Decay
	case Sustain:
		return p.Sustain
	case Release:
		return p.Release
	case Beating:
		return p.Beating
	case Drift:
		return p.Drift
	case Click:
		return p.Click
	case Temperature:
		return p.Temperature
	case Age:
		return p.Age
	case SubLevel:
		return p.SubLevel
	case NoiseLevel:
		return p.NoiseLevel
	case VCALevel:
		return p.VCALevel
	case KeyFollow:
		return p.KeyFollow
	case LFODelay:
		return p.LFODelay
	case SawOn:
		return boolValue(p.SawOn)
	case PulseOn:
		return boolValue(p.PulseOn)
	case PWMFromLFO:
		return boolValue(p.PWMFromLFO)
	case VCAGate:
		return boolValue(p.VCAGate)
	case Range:
		return float64(p.Range)
	default:
		return 0
	}
}

// Set stores a clamped voice parameter and reports whether id belongs to
// voices.
func (p *VoiceParameters) Set(id ID, v float64) bool {
	if !id.IsVoice() {
		return false
	}
	v = id.Clamp(v)
	switch id {
	case CutoffHz:
		p.CutoffHz = v
	case Resonance:
		p.Resonance = v
	case EnvToFilter:
		p.EnvToFilter = v
	case LFOToFilter:
		p.LFOToFilter = v
	case LFORateHz:
		p.LFORateHz = v
	case PWMDepth:
		p.PWMDepth = v
	case Attack:
		p.Attack = v
	case Decay:
		p.Decay = v
	case Sustain:
		p.Sustain = v
	case Release:
		p.Release = v
	case Beating:
		p.Beating = v
	case Drift:
		p.Drift = v
	case Click:
		p.Click = v
	case Temperature:
		p.Temperature = v
	case Age:
		p.Age = v
	case SubLevel:
		p.SubLevel = v
	case NoiseLevel:
		p.NoiseLevel = v
	case VCALevel:
		p.VCALevel = v
	case KeyFollow:
		p.KeyFollow = v
	case LFODelay:
		p.LFODelay = v
	case SawOn:
		p.SawOn = v != 0
	case PulseOn:
		p.PulseOn = v != 0
	case PWMFromLFO:
		p.PWMFromLFO = v != 0
	case VCAGate:
		p.VCAGate = v != 0
	case Range:
		p.Range = int(v)
	}
	return true
}

// Clamped returns p with every field forced into its legal range.
func (p VoiceParameters) Clamped() VoiceParameters {
	var out VoiceParameters
	for id := ID(0); id < firstBusID; id++ {
		out.Set(id, p.Get(id))
	}
	return out
}

// AppendUpdates appends one Update per voice parameter to dst.
func (p VoiceParameters) AppendUpdates(dst []Update) []Update {
	for id := ID(0); id < firstBusID; id++ {
		dst = append(dst, Update{ID: id, Value: p.Get(id)})
	}
	return dst
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
