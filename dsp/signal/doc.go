// Package signal provides small deterministic noise sources for
// sample-rate DSP loops.
//
// The generators are value types with a single word of state. Copying a
// generator forks the sequence, which keeps engine instances independent and
// reproducible.
package signal
