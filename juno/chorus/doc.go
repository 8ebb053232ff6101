// Package chorus implements the two-mode bucket-brigade stereo chorus.
//
// A single mono delay line is read by two taps whose delay times are swept
// by sine LFOs of different rates, giving the characteristic wide stereo
// image. Mode Off is an exact bypass that copies the input to both sides.
package chorus
