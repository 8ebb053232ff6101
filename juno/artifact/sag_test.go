package artifact

import (
	"math"
	"testing"
)

func TestSupplySagIdleStaysNominal(t *testing.T) {
	s, err := NewSupplySag(44100)
	if err != nil {
		t.Fatalf("NewSupplySag() error = %v", err)
	}
	s.Advance(0, 0, 44100)
	if s.Voltage() != NominalVoltage {
		t.Fatalf("Voltage() = %v, want %v", s.Voltage(), NominalVoltage)
	}
	if s.OutputCompensation() != 1 || s.ResonanceCompensation() != 1 || s.FilterCompensation() != 1 {
		t.Fatalf("compensation at nominal = %v/%v/%v, want 1",
			s.OutputCompensation(), s.ResonanceCompensation(), s.FilterCompensation())
	}
}

func TestSupplySagDropsUnderLoad(t *testing.T) {
	s, _ := NewSupplySag(44100)
	prev := s.Voltage()
	for range 20 {
		s.Advance(6, 3, 2205)
		v := s.Voltage()
		if v > prev {
			t.Fatalf("voltage rose under constant load: %v -> %v", prev, v)
		}
		prev = v
	}
	// Steady state sits 10*load below nominal: load = 6*0.015 + 3*0.01.
	want := NominalVoltage - 10*(6*loadPerVoice+3*loadPerResonance)
	if math.Abs(s.Voltage()-want) > 0.01 {
		t.Fatalf("steady voltage = %v, want ~%v", s.Voltage(), want)
	}
	if c := s.OutputCompensation(); !(c < 1 && c > outputCompFloor) {
		t.Fatalf("OutputCompensation() = %v, want in (%v, 1)", c, outputCompFloor)
	}
}

func TestSupplySagClamped(t *testing.T) {
	s, _ := NewSupplySag(44100)
	s.Advance(1000, 1000, 44100)
	if s.Voltage() != MinVoltage {
		t.Fatalf("Voltage() = %v under extreme load, want %v", s.Voltage(), MinVoltage)
	}
	s.Advance(0, 0, 10*44100)
	if math.Abs(s.Voltage()-NominalVoltage) > 1e-6 {
		t.Fatalf("Voltage() = %v after recovery, want %v", s.Voltage(), NominalVoltage)
	}
}

func TestSupplySagIgnoresBadInputs(t *testing.T) {
	s, _ := NewSupplySag(44100)
	s.Advance(-3, math.NaN(), 1000)
	s.Advance(2, 1, 0)
	if s.Voltage() != NominalVoltage {
		t.Fatalf("Voltage() = %v, want %v", s.Voltage(), NominalVoltage)
	}
	if _, err := NewSupplySag(-1); err == nil {
		t.Fatal("expected error for negative sample rate")
	}
}
