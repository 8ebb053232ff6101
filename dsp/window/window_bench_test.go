package window

import (
	"strconv"
	"testing"
)

func BenchmarkFill(b *testing.B) {
	for _, n := range []int{1024, 8192} {
		for _, typ := range []Type{TypeHann, TypeBlackmanHarris4Term} {
			b.Run(typ.String()+"/"+strconv.Itoa(n), func(b *testing.B) {
				dst := make([]float64, n)
				b.ReportAllocs()
				for b.Loop() {
					Fill(typ, dst)
				}
			})
		}
	}
}
