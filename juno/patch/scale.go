package patch

import "github.com/cwbudde/algo-juno/dsp/core"

// Slider scaling ranges. Log curves interpolate exponentially between the
// endpoints.
const (
	MinCutoffHz = 50.0
	MaxCutoffHz = 15000.0

	MinEnvelopeSeconds = 0.0015
	MaxAttackSeconds   = 3.0
	MaxDecaySeconds    = 12.0

	MinLFORateHz = 0.5
	MaxLFORateHz = 30.0

	sliderMax = 127.0
)

// Normalized maps a raw slider value to [0, 1].
func Normalized(v uint8) float64 {
	return core.Clamp01(float64(v) / sliderMax)
}

// CutoffHz maps the VCF cutoff slider.
func CutoffHz(v uint8) float64 {
	return core.LogScale(Normalized(v), MinCutoffHz, MaxCutoffHz)
}

// AttackSeconds maps the envelope attack slider.
func AttackSeconds(v uint8) float64 {
	return core.LogScale(Normalized(v), MinEnvelopeSeconds, MaxAttackSeconds)
}

// DecaySeconds maps the decay and release sliders.
func DecaySeconds(v uint8) float64 {
	return core.LogScale(Normalized(v), MinEnvelopeSeconds, MaxDecaySeconds)
}

// LFORateHz maps the LFO rate slider.
func LFORateHz(v uint8) float64 {
	return core.LogScale(Normalized(v), MinLFORateHz, MaxLFORateHz)
}
