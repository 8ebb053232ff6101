package delay

import (
	"math"
	"testing"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// --- construction and validation ---

func TestNewValidation(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Fatal("expected error for size=0")
	}

	if _, err := New(-1); err == nil {
		t.Fatal("expected error for size=-1")
	}

	if _, err := NewForDuration(0, 0.01); err == nil {
		t.Fatal("expected error for zero sample rate")
	}

	if _, err := NewForDuration(44100, -1); err == nil {
		t.Fatal("expected error for negative duration")
	}
}

func TestNewDefaults(t *testing.T) {
	d, err := New(16)
	if err != nil {
		t.Fatal(err)
	}

	if d.Len() != 16 {
		t.Fatalf("Len: got %d want 16", d.Len())
	}

	if d.Mode() != Linear {
		t.Fatalf("default mode: got %v want linear", d.Mode())
	}
}

func TestNewWithOptions(t *testing.T) {
	d, err := New(16, WithMode(Hermite))
	if err != nil {
		t.Fatal(err)
	}

	if d.Mode() != Hermite {
		t.Fatalf("mode: got %v want hermite", d.Mode())
	}

	d, err = New(16, WithMode(Mode(42)))
	if err != nil {
		t.Fatal(err)
	}

	if d.Mode() != Linear {
		t.Fatalf("invalid mode must be ignored, got %v", d.Mode())
	}
}

func TestNewForDurationSizing(t *testing.T) {
	d, err := NewForDuration(44100, 0.04)
	if err != nil {
		t.Fatal(err)
	}

	// 0.04 s at 44.1 kHz = 1764 samples, plus two guard samples.
	if d.Len() != 1766 {
		t.Fatalf("Len: got %d want 1766", d.Len())
	}

	if d.MaxDelay() != 1764 {
		t.Fatalf("MaxDelay: got %v want 1764", d.MaxDelay())
	}
}

// --- integer Read/Write ---

func TestReadWrite(t *testing.T) {
	d, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	for i := range 8 {
		d.Write(float64(i))
	}
	// delay=1 => most recently written (7)
	if got := d.Read(1); got != 7 {
		t.Fatalf("got %v want 7", got)
	}
	// delay=3 => 3 samples back from write head
	if got := d.Read(3); got != 5 {
		t.Fatalf("got %v want 5", got)
	}
}

func TestReadWraparound(t *testing.T) {
	d, err := New(4)
	if err != nil {
		t.Fatal(err)
	}

	for i := range 10 {
		d.Write(float64(i))
	}
	// buffer should contain [8, 9, 6, 7], writePos=2
	// Read(1) = most recent = 9
	if got := d.Read(1); got != 9 {
		t.Fatalf("got %v want 9", got)
	}
	// Delays beyond the buffer wrap.
	if got := d.Read(5); got != 9 {
		t.Fatalf("got %v want 9", got)
	}
}

func TestReset(t *testing.T) {
	d, err := New(4)
	if err != nil {
		t.Fatal(err)
	}

	d.Write(1)
	d.Write(2)
	d.Reset()

	for i := range 4 {
		if got := d.Read(i); got != 0 {
			t.Fatalf("after reset Read(%d): got %v want 0", i, got)
		}
	}
}

// --- fractional reads ---

// fillRamp fills a delay line with a linear ramp [0, 1, 2, ..., size-1].
func fillRamp(d *Line) {
	for i := range d.Len() {
		d.Write(float64(i))
	}
}

func TestReadFractionalLinear(t *testing.T) {
	d, err := New(32)
	if err != nil {
		t.Fatal(err)
	}

	fillRamp(d)
	// With a linear ramp, linear interpolation is exact.
	got := d.ReadFractional(5.5)

	want := float64(d.Len()) - 5.5 // 26.5
	if !approxEqual(got, want, 1e-10) {
		t.Fatalf("Linear: got %v want %v", got, want)
	}
}

func TestReadFractionalHermite(t *testing.T) {
	d, err := New(32, WithMode(Hermite))
	if err != nil {
		t.Fatal(err)
	}

	fillRamp(d)
	got := d.ReadFractional(5.5)

	want := float64(d.Len()) - 5.5
	if !approxEqual(got, want, 1e-10) {
		t.Fatalf("Hermite: got %v want %v", got, want)
	}
}

func TestReadFractionalClamped(t *testing.T) {
	d, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	for i := range 8 {
		d.Write(float64(i + 1))
	}

	if got := d.ReadFractional(-1.0); got != d.Read(1) {
		t.Fatalf("negative delay: got %v want %v", got, d.Read(1))
	}

	if got := d.ReadFractional(math.NaN()); math.IsNaN(got) {
		t.Fatal("NaN delay produced NaN")
	}

	if got, want := d.ReadFractional(100), d.ReadFractional(d.MaxDelay()); got != want {
		t.Fatalf("large delay: got %v want %v", got, want)
	}
}

func TestModesDCPreservation(t *testing.T) {
	for _, mode := range []Mode{Linear, Hermite} {
		d, err := New(32, WithMode(mode))
		if err != nil {
			t.Fatal(err)
		}

		for range d.Len() {
			d.Write(42.0)
		}

		if got := d.ReadFractional(5.3); !approxEqual(got, 42.0, 1e-9) {
			t.Fatalf("%s DC: got %v want 42", mode, got)
		}
	}
}

func TestModesSineQuality(t *testing.T) {
	freq := 0.02
	size := 256

	modes := []struct {
		mode Mode
		tol  float64
	}{
		{Linear, 0.01},
		{Hermite, 1e-4},
	}

	for _, tc := range modes {
		d, err := New(size, WithMode(tc.mode))
		if err != nil {
			t.Fatal(err)
		}

		for i := range size {
			d.Write(math.Sin(2 * math.Pi * freq * float64(i)))
		}

		delay := 20.37
		exactSample := float64(size) - delay
		want := math.Sin(2 * math.Pi * freq * exactSample)
		got := d.ReadFractional(delay)

		if e := math.Abs(got - want); e > tc.tol {
			t.Fatalf("%s sine: got %v want %v (err=%e, tol=%e)", tc.mode, got, want, e, tc.tol)
		}
	}
}

// --- benchmarks ---

func BenchmarkReadFractionalLinear(b *testing.B) {
	d, _ := New(1024)
	fillRamp(d)
	b.ResetTimer()

	for range b.N {
		d.ReadFractional(100.37)
	}
}

func BenchmarkReadFractionalHermite(b *testing.B) {
	d, _ := New(1024, WithMode(Hermite))
	fillRamp(d)
	b.ResetTimer()

	for range b.N {
		d.ReadFractional(100.37)
	}
}
