package circuit

import "math"

const (
	driftThermalHz        = 0.1
	driftThermalDepth     = 0.005
	driftResonanceKnee    = 0.7
	driftResonanceDepth   = -0.08
	driftAgeDepth         = 0.02
	driftSmoothingSeconds = 0.05
	driftLowTrackingHz    = 500.0
	driftLowTracking      = 0.995
	maxDriftAmount        = 2.0

	minFilterHz = 20.0
	maxFilterHz = 20000.0
)

// FilterDrift perturbs a target cutoff with thermal, resonance and ageing
// drift and smooths the result before it reaches the filter.
type FilterDrift struct {
	sampleRate float64
	amount     float64
	alpha      float64

	phase   float64
	state   float64
	primed  bool
	lastOut float64
}

// NewFilterDrift returns a drift stage with amount 1.
func NewFilterDrift(sampleRate float64) (*FilterDrift, error) {
	f := &FilterDrift{amount: 1}
	if err := f.SetSampleRate(sampleRate); err != nil {
		return nil, err
	}
	return f, nil
}

// SetSampleRate updates the sample rate and smoothing coefficient.
func (f *FilterDrift) SetSampleRate(sampleRate float64) error {
	if err := validateSampleRate("filter drift", sampleRate); err != nil {
		return err
	}
	f.sampleRate = sampleRate
	f.alpha = 1 - math.Exp(-1/(driftSmoothingSeconds*sampleRate))
	return nil
}

// SetAmount scales every drift term, clamped to [0, 2].
func (f *FilterDrift) SetAmount(amount float64) {
	f.amount = clamp(amount, 0, maxDriftAmount)
}

// Reset clears the smoother. The next call snaps to its target.
func (f *FilterDrift) Reset() {
	f.phase = 0
	f.state = 0
	f.primed = false
	f.lastOut = 0
}

// Last returns the most recent output in Hz.
func (f *FilterDrift) Last() float64 { return f.lastOut }

// ProcessSample returns the drifted cutoff in Hz, clamped to [20, 20000].
func (f *FilterDrift) ProcessSample(cutoffHz, resonance, temperature, age float64) float64 {
	f.phase = wrap01(f.phase + driftThermalHz/f.sampleRate)
	thermal := math.Sin(2*math.Pi*f.phase) * driftThermalDepth * clamp(temperature, 0, 1) * f.amount

	resDrift := 0.0
	if resonance > driftResonanceKnee {
		q := (math.Min(resonance, 1) - driftResonanceKnee) / (1 - driftResonanceKnee)
		resDrift = driftResonanceDepth * q * f.amount
	}

	target := cutoffHz * (1 + resDrift + thermal) * (1 + clamp(age, 0, 1)*driftAgeDepth*f.amount)
	if !isFinite(target) {
		target = minFilterHz
	}

	if !f.primed {
		f.state = target
		f.primed = true
	}
	f.state += (target - f.state) * f.alpha

	tracking := 1.0
	if f.state < driftLowTrackingHz {
		tracking = driftLowTracking
	}
	f.lastOut = clamp(f.state*tracking, minFilterHz, maxFilterHz)
	return f.lastOut
}
