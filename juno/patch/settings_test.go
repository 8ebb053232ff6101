package patch

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cwbudde/algo-juno/juno/chorus"
	"github.com/cwbudde/algo-juno/juno/param"
)

func TestScaleEndpoints(t *testing.T) {
	assert.InDelta(t, MinCutoffHz, CutoffHz(0), 1e-9)
	assert.InDelta(t, MaxCutoffHz, CutoffHz(127), 1e-6)
	assert.InDelta(t, MinEnvelopeSeconds, AttackSeconds(0), 1e-12)
	assert.InDelta(t, MaxAttackSeconds, AttackSeconds(127), 1e-9)
	assert.InDelta(t, MaxDecaySeconds, DecaySeconds(127), 1e-9)
	assert.InDelta(t, MinLFORateHz, LFORateHz(0), 1e-12)
	assert.InDelta(t, MaxLFORateHz, LFORateHz(127), 1e-9)
	assert.Equal(t, 1.0, Normalized(200))
}

func TestScaleIsLogarithmic(t *testing.T) {
	// The midpoint of a log curve is the geometric mean of its endpoints.
	mid := CutoffHz(127) / CutoffHz(64)
	low := CutoffHz(63) / CutoffHz(0)
	assert.InDelta(t, mid, low, 0.2)
	assert.Greater(t, CutoffHz(65), CutoffHz(64))
}

func TestSettingsMapping(t *testing.T) {
	p := testPatch()
	p.Sliders[VCFCutoff] = 127
	p.Sliders[VCFResonance] = 127
	p.Sliders[VCFEnvMod] = 127
	p.Sliders[DCOLFO] = 0
	p.Sliders[EnvAttack] = 0
	p.Sliders[VCALevel] = 127
	s := p.Settings(param.DefaultVoiceParameters())

	assert.InDelta(t, MaxCutoffHz, s.Voice.CutoffHz, 1e-6)
	assert.Equal(t, 1.0, s.Voice.Resonance)
	assert.Equal(t, 1.0, s.Voice.EnvToFilter)
	assert.InDelta(t, MinEnvelopeSeconds, s.Voice.Attack, 1e-12)
	assert.Equal(t, baseBeating, s.Voice.Beating)
	assert.Equal(t, patchAge, s.Voice.Age)
	assert.Equal(t, 1.0, s.Voice.VCALevel)
	assert.Equal(t, 1, s.Voice.Range)
	assert.True(t, s.Voice.SawOn)
	assert.True(t, s.Voice.PWMFromLFO)
	assert.False(t, s.Voice.VCAGate)
	assert.Equal(t, chorus.I, s.Chorus)
	assert.Equal(t, 1, s.HPFStep)

	p.Switches.EnvPositive = false
	p.Switches.VCAEnv = false
	p.Switches.ChorusII = true
	p.Switches.Range8 = false
	p.Switches.Range4 = true
	p.Sliders[DCOLFO] = 127
	s = p.Settings(param.DefaultVoiceParameters())
	assert.Equal(t, -1.0, s.Voice.EnvToFilter)
	assert.True(t, s.Voice.VCAGate)
	assert.Equal(t, chorus.II, s.Chorus)
	assert.Equal(t, 2, s.Voice.Range)
	assert.Equal(t, 1.0, s.Voice.Beating)

	p.Switches.ChorusOn = false
	assert.Equal(t, chorus.Off, p.Settings(param.DefaultVoiceParameters()).Chorus)
}

func TestSettingsOverlaysBase(t *testing.T) {
	p := testPatch()
	base := param.DefaultVoiceParameters()
	base.CutoffHz = 123
	base.NoiseLevel = 0.9
	base.Range = 2
	orig := base

	s := p.Settings(base)
	assert.Equal(t, orig, base)
	// The record carries every voice parameter, so the base never leaks
	// through.
	assert.Equal(t, p.Settings(param.DefaultVoiceParameters()).Voice, s.Voice)
	assert.Equal(t, Normalized(p.Slider(DCONoise)), s.Voice.NoiseLevel)
}

func TestScaleRangesFitParameterLimits(t *testing.T) {
	assert.GreaterOrEqual(t, MinCutoffHz, param.MinCutoffHz)
	assert.LessOrEqual(t, MaxCutoffHz, param.MaxCutoffHz)
	assert.GreaterOrEqual(t, MinEnvelopeSeconds, param.MinEnvelopeSeconds)
	assert.LessOrEqual(t, MaxDecaySeconds, param.MaxEnvelopeSeconds)
	assert.GreaterOrEqual(t, MinLFORateHz, param.MinLFORateHz)
	assert.LessOrEqual(t, MaxLFORateHz, param.MaxLFORateHz)
}

func TestSettingsAppendUpdates(t *testing.T) {
	s := testPatch().Settings(param.DefaultVoiceParameters())
	ups := s.AppendUpdates(nil)
	assert.Len(t, ups, int(param.ChorusMode)+2)

	var vp param.VoiceParameters
	for _, u := range ups {
		vp.Set(u.ID, u.Value)
	}
	assert.Equal(t, s.Voice, vp)

	last := ups[len(ups)-2:]
	assert.Equal(t, param.Update{ID: param.ChorusMode, Value: float64(chorus.I)}, last[0])
	assert.Equal(t, param.Update{ID: param.HPFStep, Value: 1}, last[1])
}
