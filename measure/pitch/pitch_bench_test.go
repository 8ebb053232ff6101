package pitch

import (
	"testing"

	"github.com/cwbudde/algo-juno/internal/testutil"
)

func BenchmarkEstimate8192(b *testing.B) {
	x := testutil.DeterministicSine(440, 48000, 0.5, 8192)
	e, err := NewEstimator(Config{SampleRate: 48000})
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	for b.Loop() {
		if _, err := e.Estimate(x); err != nil {
			b.Fatal(err)
		}
	}
}
