package circuit

import (
	"math"
	"testing"
)

func TestDetuneBounded(t *testing.T) {
	for idx := range 8 {
		d, err := NewDetune(1000, idx)
		if err != nil {
			t.Fatalf("NewDetune() error = %v", err)
		}
		d.SetCharacter(2)
		d.SetBase(30)
		for range 20000 {
			r := d.ProcessSample()
			if r < minDetuneRatio || r > maxDetuneRatio {
				t.Fatalf("voice %d ratio %v outside [%v, %v]", idx, r, minDetuneRatio, maxDetuneRatio)
			}
		}
	}
}

func TestDetuneVoicesDiffer(t *testing.T) {
	a, _ := NewDetune(44100, 0)
	b, _ := NewDetune(44100, 2)
	a.SetBase(440)
	b.SetBase(440)

	ra := a.ProcessSample()
	rb := b.ProcessSample()
	if math.Abs(ra-rb) < 0.004 {
		t.Fatalf("voices 0 and 2 too close: %v vs %v", ra, rb)
	}
}

func TestDetuneCharacterZeroRemovesBeating(t *testing.T) {
	a, _ := NewDetune(44100, 0)
	b, _ := NewDetune(44100, 2)
	for _, d := range []*Detune{a, b} {
		d.SetCharacter(0)
		d.SetBase(440)
	}

	if ra, rb := a.ProcessSample(), b.ProcessSample(); ra != rb {
		t.Fatalf("character 0: ratios differ %v vs %v", ra, rb)
	}
}

func TestDetuneLowNotesTrackSharp(t *testing.T) {
	hi, _ := NewDetune(44100, 1)
	lo, _ := NewDetune(44100, 1)
	hi.SetCharacter(0)
	lo.SetCharacter(0)
	hi.SetBase(440)
	lo.SetBase(55)

	if rh, rl := hi.ProcessSample(), lo.ProcessSample(); rl <= rh {
		t.Fatalf("low note ratio %v should exceed high note ratio %v", rl, rh)
	}
}

func TestDetuneWarmup(t *testing.T) {
	d, _ := NewDetune(10, 1)
	d.SetCharacter(0)
	d.SetBase(440)

	first := d.ProcessSample()
	for range int(warmupSeconds * 10) {
		d.ProcessSample()
	}
	warm := d.ProcessSample()

	if math.Abs(first-warmupStartFactor) > 1e-5 {
		t.Fatalf("cold ratio = %v, want ~%v", first, warmupStartFactor)
	}
	if math.Abs(warm-1) > 1e-12 {
		t.Fatalf("warm ratio = %v, want 1", warm)
	}

	d.Reset()
	if r := d.ProcessSample(); math.Abs(r-first) > 1e-12 {
		t.Fatalf("after Reset ratio = %v, want %v", r, first)
	}
}
