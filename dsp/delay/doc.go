// Package delay provides a fixed-size circular delay line with integer and
// fractional (linear or cubic Hermite) reads.
//
// Lines are sized once, typically from a maximum delay time and sample
// rate, and never resize while processing.
package delay
