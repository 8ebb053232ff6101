// Package voice assembles the circuit stages into one synthesizer voice
// and manages a fixed pool of voices with deterministic allocation and
// stealing.
//
// Voices are owned by the render goroutine. None of the types here are
// safe for concurrent use.
package voice
