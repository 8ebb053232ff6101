// Package engine is the polyphonic synthesizer engine and its only
// mutation surface.
//
// Two goroutines use an Engine. The control goroutine calls Initialize,
// the parameter setters, LoadPatch and the note methods. The render
// goroutine calls RenderBlock or RenderBlock32 from the audio callback.
// Control calls queue work on two lock-free rings and return at once; the
// render goroutine drains both at the start of every block, so a block
// always sees a whole batch of updates or none of it. Initialize builds a
// new render core and publishes it with an atomic pointer swap.
//
// The render path never blocks, locks, allocates or logs. Control calls
// are single-producer: callers that issue them from several goroutines
// must serialize them.
package engine
