package artifact

import (
	"fmt"
	"math"
)

// Supply model constants: a 15 V rail behind an RC of 10 Ω and 10 mF.
const (
	NominalVoltage = 15.0
	MinVoltage     = 12.0
	MaxVoltage     = 15.5

	supplyResistance  = 10.0
	supplyCapacitance = 0.01

	loadPerVoice     = 0.015
	loadPerResonance = 0.01

	outputCompFloor = 0.1
)

// SupplySag integrates the rail voltage under the current voice load and
// derives the level compensation applied to the bus and to resonance.
type SupplySag struct {
	sampleRate float64
	voltage    float64
}

// NewSupplySag returns a supply at nominal voltage.
func NewSupplySag(sampleRate float64) (*SupplySag, error) {
	s := &SupplySag{voltage: NominalVoltage}
	if err := s.SetSampleRate(sampleRate); err != nil {
		return nil, err
	}
	return s, nil
}

// SetSampleRate updates the integration step.
func (s *SupplySag) SetSampleRate(sampleRate float64) error {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("supply sag: sample rate must be > 0 and finite: %v", sampleRate)
	}
	s.sampleRate = sampleRate
	return nil
}

// Reset returns the rail to nominal voltage.
func (s *SupplySag) Reset() { s.voltage = NominalVoltage }

// Voltage returns the current rail voltage.
func (s *SupplySag) Voltage() float64 { return s.voltage }

// Advance integrates the rail over n samples with activeVoices sounding
// and a summed resonance of totalResonance.
func (s *SupplySag) Advance(activeVoices int, totalResonance float64, n int) {
	if n <= 0 {
		return
	}
	if activeVoices < 0 {
		activeVoices = 0
	}
	if !(totalResonance > 0) {
		totalResonance = 0
	}
	load := float64(activeVoices)*loadPerVoice + totalResonance*loadPerResonance
	dt := 1 / s.sampleRate
	rc := supplyResistance * supplyCapacitance
	v := s.voltage
	for range n {
		v += (NominalVoltage-v)*dt/rc - load*dt/supplyCapacitance
		v = math.Max(MinVoltage, math.Min(MaxVoltage, v))
	}
	s.voltage = v
}

// OutputCompensation is the bus gain implied by the rail voltage.
func (s *SupplySag) OutputCompensation() float64 {
	return (1-outputCompFloor)*s.voltage/NominalVoltage + outputCompFloor
}

// ResonanceCompensation scales resonance as the rail drops.
func (s *SupplySag) ResonanceCompensation() float64 {
	return math.Sqrt(s.voltage / NominalVoltage)
}

// FilterCompensation is the normalized rail voltage.
func (s *SupplySag) FilterCompensation() float64 {
	return s.voltage / NominalVoltage
}
