package engine

import (
	"math"

	"github.com/cwbudde/algo-juno/internal/spsc"
)

type eventKind uint8

const (
	evNoteOn eventKind = iota + 1
	evNoteOff
	evAftertouch
	evAllNotesOff
)

// event is a note-level message for the render goroutine. arg is the MIDI
// note or voice index; value is velocity or pressure.
type event struct {
	kind  eventKind
	arg   int32
	value float64
}

func (e event) encode() spsc.Message {
	return spsc.Message{
		A: uint64(e.kind)<<32 | uint64(uint32(e.arg)),
		B: math.Float64bits(e.value),
	}
}

func decodeEvent(m spsc.Message) event {
	return event{
		kind:  eventKind(m.A >> 32),
		arg:   int32(uint32(m.A)),
		value: math.Float64frombits(m.B),
	}
}
