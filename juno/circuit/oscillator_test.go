package circuit

import (
	"math"
	"testing"
)

func TestNewOscillatorValidation(t *testing.T) {
	if _, err := NewOscillator(0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
	if _, err := NewOscillator(math.Inf(1)); err == nil {
		t.Fatal("expected error for infinite sample rate")
	}
}

func TestOscillatorPhaseWrapsBySubtraction(t *testing.T) {
	o, err := NewOscillator(48000)
	if err != nil {
		t.Fatalf("NewOscillator() error = %v", err)
	}

	want := []float64{0.25, 0.5, 0.75, 0, 0.25}
	for i, w := range want {
		o.Next(12000, 0, 0, false)
		if got := o.Phase(); got != w {
			t.Fatalf("step %d: phase = %v, want %v", i, got, w)
		}
	}
}

func TestDutyClamped(t *testing.T) {
	tests := []struct {
		depth, mod float64
		pwm        bool
		want       float64
	}{
		{depth: 1, mod: 1, pwm: true, want: maxDuty},
		{depth: 1, mod: -1, pwm: true, want: minDuty},
		{depth: 0.5, mod: 0.5, pwm: true, want: 0.5 + 0.5*0.49*0.5},
		{depth: 1, mod: 1, pwm: false, want: 0.5},
	}

	for _, tt := range tests {
		if got := Duty(tt.depth, tt.mod, tt.pwm); math.Abs(got-tt.want) > 1e-15 {
			t.Fatalf("Duty(%v, %v, %v) = %v, want %v", tt.depth, tt.mod, tt.pwm, got, tt.want)
		}
	}
}

func TestOscillatorBlend(t *testing.T) {
	o, _ := NewOscillator(48000)

	// Phase 0.25: saw = -0.5, pulse = +1.
	got := o.ProcessSample(12000, 0, 0, true)
	want := (-0.5*sawWeight + 1*pulseWeight) * dcoMixGain
	if math.Abs(got-want) > 1e-15 {
		t.Fatalf("ProcessSample() = %v, want %v", got, want)
	}
}

func TestOscillatorSubOctave(t *testing.T) {
	o, _ := NewOscillator(48000)

	// 4 samples per main cycle: the sub square flips every 4 samples.
	var subs []float64
	for range 16 {
		subs = append(subs, o.Next(12000, 0, 0, false).Sub)
	}

	flips := 0
	for i := 1; i < len(subs); i++ {
		if subs[i] != subs[i-1] {
			flips++
		}
	}
	if flips != 4 {
		t.Fatalf("sub flips = %d over 4 main cycles, want 4 (subs %v)", flips, subs)
	}
}

func TestOscillatorPulseWidthFollowsDuty(t *testing.T) {
	o, _ := NewOscillator(48000)

	high := 0
	const n = 48000
	for range n {
		if o.Next(100, 1, 1, true).Pulse > 0 {
			high++
		}
	}

	if ratio := float64(high) / n; math.Abs(ratio-maxDuty) > 0.01 {
		t.Fatalf("high ratio = %v, want ~%v", ratio, maxDuty)
	}
}

func TestOscillatorOutputBounded(t *testing.T) {
	o, _ := NewOscillator(44100)
	for i := range 10000 {
		y := o.ProcessSample(float64(50+i), math.Sin(float64(i)), 1, true)
		if math.Abs(y) > dcoMixGain {
			t.Fatalf("sample %d = %v exceeds %v", i, y, dcoMixGain)
		}
	}
	// Absurd frequencies are clamped rather than propagated.
	if y := o.ProcessSample(math.NaN(), 0, 0, false); math.IsNaN(y) {
		t.Fatal("NaN frequency produced NaN output")
	}
}

func TestWavesBlend(t *testing.T) {
	w := Waves{Saw: 0.5, Pulse: -1, Sub: 1}

	if got, want := w.Blend(true, true, 0), (0.5*sawWeight-pulseWeight)*dcoMixGain; math.Abs(got-want) > 1e-15 {
		t.Fatalf("Blend(saw+pulse) = %v, want %v", got, want)
	}
	if got := w.Blend(false, false, 0); got != 0 {
		t.Fatalf("Blend(nothing) = %v, want 0", got)
	}
	if got, want := w.Blend(false, false, 1), subWeight*dcoMixGain; math.Abs(got-want) > 1e-15 {
		t.Fatalf("Blend(sub) = %v, want %v", got, want)
	}

	a, _ := NewOscillator(44100)
	b, _ := NewOscillator(44100)
	for range 100 {
		x := a.ProcessSample(440, 0.3, 0.5, true)
		y := b.Next(440, 0.3, 0.5, true).Blend(true, true, 0)
		if x != y {
			t.Fatalf("ProcessSample %v != Blend %v", x, y)
		}
	}
}
