package patch

import (
	"github.com/cwbudde/algo-juno/juno/chorus"
	"github.com/cwbudde/algo-juno/juno/param"
)

// Fixed analog character applied by every patch.
const (
	baseBeating      = 0.5
	beatingFromDCO   = 0.5
	patchDrift       = 0.5
	patchClick       = 0.5
	patchTemperature = 0.5
	patchAge         = 0.3
)

// Settings is everything a patch sets on the engine.
type Settings struct {
	Voice   param.VoiceParameters
	Chorus  chorus.Mode
	HPFStep int
}

// Settings overlays the patch onto base. Voice parameters the patch does
// not carry keep their base values.
func (p Patch) Settings(base param.VoiceParameters) Settings {
	vp := base
	sw := p.Switches

	vp.CutoffHz = CutoffHz(p.Slider(VCFCutoff))
	vp.Resonance = Normalized(p.Slider(VCFResonance))
	vp.EnvToFilter = Normalized(p.Slider(VCFEnvMod))
	if !sw.EnvPositive {
		vp.EnvToFilter = -vp.EnvToFilter
	}
	vp.LFOToFilter = Normalized(p.Slider(VCFLFO))
	vp.LFORateHz = LFORateHz(p.Slider(LFORate))
	vp.LFODelay = Normalized(p.Slider(LFODelay))
	vp.PWMDepth = Normalized(p.Slider(DCOPWM))
	vp.KeyFollow = Normalized(p.Slider(VCFKeyFollow))

	vp.Attack = AttackSeconds(p.Slider(EnvAttack))
	vp.Decay = DecaySeconds(p.Slider(EnvDecay))
	vp.Sustain = Normalized(p.Slider(EnvSustain))
	vp.Release = DecaySeconds(p.Slider(EnvRelease))

	vp.SubLevel = Normalized(p.Slider(DCOSub))
	vp.NoiseLevel = Normalized(p.Slider(DCONoise))
	vp.VCALevel = Normalized(p.Slider(VCALevel))

	vp.SawOn = sw.Saw
	vp.PulseOn = sw.Pulse
	vp.PWMFromLFO = sw.PWMFromLFO
	vp.VCAGate = !sw.VCAEnv
	vp.Range = sw.rangeIndex()

	vp.Beating = baseBeating + beatingFromDCO*Normalized(p.Slider(DCOLFO))
	vp.Drift = patchDrift
	vp.Click = patchClick
	vp.Temperature = patchTemperature
	vp.Age = patchAge

	return Settings{
		Voice:   vp.Clamped(),
		Chorus:  sw.chorusMode(),
		HPFStep: int(sw.HPF),
	}
}

// rangeIndex picks the footage. 8' wins when several bits are set and is
// the fallback when none are.
func (s Switches) rangeIndex() int {
	switch {
	case s.Range8:
		return 1
	case s.Range16:
		return 0
	case s.Range4:
		return 2
	default:
		return 1
	}
}

func (s Switches) chorusMode() chorus.Mode {
	switch {
	case !s.ChorusOn:
		return chorus.Off
	case s.ChorusII:
		return chorus.II
	default:
		return chorus.I
	}
}

// AppendUpdates appends the full set as parameter updates: every voice
// parameter followed by the chorus and HPF bus parameters.
func (s Settings) AppendUpdates(dst []param.Update) []param.Update {
	dst = s.Voice.AppendUpdates(dst)
	return append(dst,
		param.Update{ID: param.ChorusMode, Value: float64(s.Chorus)},
		param.Update{ID: param.HPFStep, Value: float64(s.HPFStep)},
	)
}
