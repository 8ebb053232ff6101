// Package onepole provides first-order low-pass and high-pass filters with
// the exponential-decay coefficient alpha = 1 - exp(-2*pi*fc/fs).
//
// They are used as smoothing and tone-shaping stages where a biquad would
// be overkill: click shaping, clock-noise coloring, cable loading and the
// bus high-pass.
package onepole
