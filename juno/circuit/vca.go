package circuit

import "github.com/cwbudde/algo-juno/internal/fastmath"

type jfet struct {
	idss float64 // saturation drain current, A
	vp   float64 // pinch-off voltage, V
	rs   float64 // source degeneration, ohms
}

// The two devices of the differential pair are deliberately mismatched.
var (
	vcaJFET1 = jfet{idss: 5.1e-3, vp: -2.05, rs: 100}
	vcaJFET2 = jfet{idss: 4.9e-3, vp: -1.95, rs: 100}
)

const jfetIterations = 3

// drainCurrent solves the degenerated square law Id = Idss*(1-Vgs/Vp)^2
// with Vgs = Vg - Id*Rs by damped fixed-point iteration.
func (j jfet) drainCurrent(vg float64) float64 {
	vgs := vg
	id := 0.0
	for range jfetIterations {
		if vgs > j.vp {
			r := 1 - vgs/j.vp
			id = j.idss * r * r
		} else {
			id = 0
		}
		vgs = 0.5 * (vgs + vg - id*j.rs)
	}
	return id
}

// gateVoltage maps a control level in [0, 1] to a gate bias between
// pinch-off and 0 V.
func (j jfet) gateVoltage(cv float64) float64 {
	return j.vp * (1 - cv)
}

// Amplifier is a JFET VCA: gain follows the degenerated square law of a
// mismatched pair, normalized to unity at full control, which compresses
// softly towards full level.
type Amplifier struct {
	norm float64
}

// NewAmplifier returns a VCA.
func NewAmplifier() *Amplifier {
	full := vcaJFET1.drainCurrent(vcaJFET1.gateVoltage(1)) + vcaJFET2.drainCurrent(vcaJFET2.gateVoltage(1))
	return &Amplifier{norm: 1 / full}
}

// Gain returns the gain for control level cv.
func (a *Amplifier) Gain(cv float64) float64 {
	cv = clamp(cv, 0, 1)
	if cv == 0 {
		return 0
	}
	id := vcaJFET1.drainCurrent(vcaJFET1.gateVoltage(cv)) + vcaJFET2.drainCurrent(vcaJFET2.gateVoltage(cv))
	return id * a.norm
}

// ProcessSample amplifies signal by control level cv.
func (a *Amplifier) ProcessSample(signal, cv float64) float64 {
	return fastmath.SoftTanh(signal * a.Gain(cv))
}
