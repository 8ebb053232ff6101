// Package circuit models the per-voice analog signal path: the
// digitally-controlled oscillator with its detune and LFO, the four-stage
// OTA ladder filter and its drift, the exponential envelope with its
// retrigger click, and the JFET amplifier.
//
// Every stage is a pure numeric transform. Out-of-range inputs are
// clamped and non-finite state is reset, so nothing here can fail once
// constructed.
package circuit
