package time_test

import (
	"fmt"

	timestats "github.com/cwbudde/algo-juno/stats/time"
)

func ExampleCalculate() {
	s := timestats.Calculate([]float64{1, -1, 1, -1})
	fmt.Printf("rms=%.1f zc=%d crest=%.1f\n", s.RMS, s.ZeroCrossings, s.CrestFactor)

	// Output:
	// rms=1.0 zc=3 crest=1.0
}
