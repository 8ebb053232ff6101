package fastmath

// SoftTanh is a rational tanh approximation, exact at 0 and saturating
// to ±1 beyond |x| = 3.
func SoftTanh(x float64) float64 {
	if x > 3 {
		return 1
	}

	if x < -3 {
		return -1
	}

	x2 := x * x

	y := x * (27 + x2) / (27 + 9*x2)
	if y > 1 {
		return 1
	}
	if y < -1 {
		return -1
	}
	return y
}

// SoftRail passes x unchanged inside ±limit and compresses the excess by
// slope outside it.
func SoftRail(x, limit, slope float64) float64 {
	if x > limit {
		return limit + slope*(x-limit)
	}
	if x < -limit {
		return -limit + slope*(x+limit)
	}
	return x
}
