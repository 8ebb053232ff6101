package circuit

import (
	"math"

	"github.com/cwbudde/algo-juno/dsp/signal"
	"github.com/cwbudde/algo-juno/internal/fastmath"
)

const (
	filterStages = 4

	thermalVoltage   = 26e-3
	temperatureCoeff = 0.1

	// cvPerOctave is the cutoff control voltage per octave of frequency.
	cvPerOctave = 0.1

	resonanceGain   = 4.0 // loop gain at full resonance
	qCompensation   = 0.5 // passband makeup at full resonance
	stateRail       = 5.0
	stateRailSlope  = 0.2
	filterNoise     = 1e-6
	maxFilterRatio  = 0.45 // fraction of the sample rate
	stateResetLimit = 1e6
)

// CutoffCV converts a cutoff in Hz to the filter control voltage.
func CutoffCV(cutoffHz float64) float64 {
	return fastmath.Log2(math.Max(minFilterHz, cutoffHz)) * cvPerOctave
}

// CutoffFromCV converts a control voltage back to Hz.
func CutoffFromCV(cv float64) float64 {
	return fastmath.Exp2(cv / cvPerOctave)
}

// Filter is a four-stage OTA one-pole ladder with saturating stages and
// soft-saturating resonance feedback from the last stage.
type Filter struct {
	sampleRate float64
	stage      [filterStages]float64
	noise      signal.LCG
}

// NewFilter returns a ladder with cleared state.
func NewFilter(sampleRate float64) (*Filter, error) {
	f := &Filter{noise: signal.NewLCG(signal.DefaultLCGSeed)}
	if err := f.SetSampleRate(sampleRate); err != nil {
		return nil, err
	}
	return f, nil
}

// SetSampleRate updates the sample rate.
func (f *Filter) SetSampleRate(sampleRate float64) error {
	if err := validateSampleRate("filter", sampleRate); err != nil {
		return err
	}
	f.sampleRate = sampleRate
	return nil
}

// Reset clears the stage states and reseeds the thermal noise.
func (f *Filter) Reset() {
	f.stage = [filterStages]float64{}
	f.noise.Seed(signal.DefaultLCGSeed)
}

// State returns a copy of the stage states.
func (f *Filter) State() [filterStages]float64 { return f.stage }

// ProcessSample filters one sample.
//
// cutoffCV follows CutoffCV, resonanceCV is in [0, 1] and temperature in
// [0, 1] raises the thermal voltage, softening the stage saturation.
func (f *Filter) ProcessSample(input, cutoffCV, resonanceCV, temperature float64) float64 {
	fc := clamp(CutoffFromCV(cutoffCV), minFilterHz, maxFilterRatio*f.sampleRate)
	g := 1 - fastmath.Exp(-2*math.Pi*fc/f.sampleRate)

	vt := thermalVoltage * (1 + temperatureCoeff*clamp(temperature, 0, 1))
	drive := thermalVoltage / vt
	res := clamp(resonanceCV, 0, 1)

	feedback := res * resonanceGain * fastmath.Tanh(f.stage[filterStages-1]*drive) / drive
	x := input*(1+res*qCompensation) - feedback + f.noise.Next()*filterNoise

	for i := range f.stage {
		s := f.stage[i]
		s += g * (fastmath.Tanh(x*drive) - fastmath.Tanh(s*drive)) / drive
		s = fastmath.SoftRail(s, stateRail, stateRailSlope)
		if !isFinite(s) || math.Abs(s) > stateResetLimit {
			s = 0
		}
		f.stage[i] = s
		x = s
	}

	return fastmath.SoftTanh(x)
}
