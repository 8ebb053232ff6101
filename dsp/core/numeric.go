package core

import "math"

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// Clamp01 limits value to [0, 1]. NaN maps to 0.
func Clamp01(value float64) float64 {
	if !(value > 0) {
		return 0
	}

	if value > 1 {
		return 1
	}

	return value
}

// IsFinite reports whether x is neither NaN nor ±Inf.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Sanitize returns x, or 0 when x is NaN or ±Inf.
func Sanitize(x float64) float64 {
	if IsFinite(x) {
		return x
	}

	return 0
}

// FlushDenormals returns 0 for values with magnitude below 1e-30.
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// MIDINoteToHz converts a MIDI note number to frequency in equal temperament
// with A4 (note 69) at 440 Hz.
func MIDINoteToHz(note float64) float64 {
	return 440 * math.Exp2((note-69)/12)
}

// LogScale maps norm in [0, 1] exponentially onto [min, max].
// Both bounds must be positive. norm is clamped.
func LogScale(norm, min, max float64) float64 {
	norm = Clamp01(norm)
	return min * math.Pow(max/min, norm)
}
