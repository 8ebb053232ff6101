//go:build fastmath

package fastmath

import (
	"github.com/meko-christian/algo-approx"
)

// ln2 is the natural logarithm of 2, used for log base conversions.
const ln2 = 0.693147180559945309417232121458

// Exp computes e^x using fast approximation.
func Exp(x float64) float64 {
	return approx.FastExp(x)
}

// Exp2 computes 2^x using the identity 2^x = e^(x * ln(2)).
func Exp2(x float64) float64 {
	return approx.FastExp(x * ln2)
}

// Log2 computes log2(x) using the identity log2(x) = ln(x) / ln(2).
func Log2(x float64) float64 {
	return approx.FastLog(x) / ln2
}

// Sqrt computes sqrt(x) using fast approximation.
func Sqrt(x float64) float64 {
	return approx.FastSqrt(x)
}

// Tanh computes tanh(x) = 1 - 2/(e^(2x) + 1), saturating beyond |x| > 9.
func Tanh(x float64) float64 {
	if x > 9 {
		return 1
	}
	if x < -9 {
		return -1
	}
	return 1 - 2/(approx.FastExp(2*x)+1)
}
