// Package artifact models the bus-level imperfections of the instrument:
// clock bleed from the chorus BBD driver, power-supply sag under voice
// load and the low-pass formed by the output cable.
//
// Every generator is deterministic for a given sample rate and call
// sequence and allocates nothing while processing.
package artifact
