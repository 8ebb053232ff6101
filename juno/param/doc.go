// Package param defines the engine's closed parameter set and the
// lock-free channel that moves parameter changes from a control goroutine
// into the render goroutine.
//
// Every parameter has an enumerated ID with a fixed owner (voices or the
// output bus) and value range, so dispatch is an exhaustive switch instead
// of a name lookup.
package param
