// Package pitch estimates the fundamental frequency and level of rendered
// audio.
//
// The estimator windows the signal with a Hann window, takes one forward FFT
// and interpolates the strongest bin inside the search range on a log-power
// parabola. It is meant for diagnostics and tests of the synthesizer output,
// not for tracking pitch in real time.
package pitch
