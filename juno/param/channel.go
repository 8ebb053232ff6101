package param

import (
	"math"

	"github.com/cwbudde/algo-juno/internal/spsc"
)

// DefaultChannelCapacity is the update capacity used when none is given.
const DefaultChannelCapacity = 128

// Update is one parameter change.
type Update struct {
	ID    ID
	Value float64
}

// Channel carries Updates from one control goroutine to the render
// goroutine without locks. On overflow the oldest pending update is
// dropped.
type Channel struct {
	ring    *spsc.Ring
	scratch []spsc.Message
}

// NewChannel returns a channel with room for capacity pending updates,
// rounded up to a power of two.
func NewChannel(capacity int) (*Channel, error) {
	if capacity <= 0 {
		capacity = DefaultChannelCapacity
	}
	size := 1
	for size < capacity {
		size <<= 1
	}
	ring, err := spsc.New(size)
	if err != nil {
		return nil, err
	}
	return &Channel{ring: ring, scratch: make([]spsc.Message, 0, size)}, nil
}

// Push enqueues one update. Invalid IDs are ignored.
func (c *Channel) Push(u Update) {
	if !u.ID.Valid() {
		return
	}
	c.ring.Push(encode(u))
}

// PushBatch enqueues updates so that the consumer sees all of them in the
// same Drain call. Invalid IDs are skipped.
func (c *Channel) PushBatch(updates []Update) {
	c.scratch = c.scratch[:0]
	for _, u := range updates {
		if u.ID.Valid() {
			c.scratch = append(c.scratch, encode(u))
		}
	}
	c.ring.PushBatch(c.scratch)
}

// Drain delivers every pending update to fn in FIFO order and returns the
// count. It never blocks or allocates.
func (c *Channel) Drain(fn func(Update)) int {
	return c.ring.Drain(func(m spsc.Message) {
		fn(decode(m))
	})
}

// Pending returns the number of queued updates.
func (c *Channel) Pending() int { return c.ring.Len() }

// Dropped returns the number of updates lost to overflow.
func (c *Channel) Dropped() uint64 { return c.ring.Dropped() }

// Cap returns the channel capacity.
func (c *Channel) Cap() int { return c.ring.Cap() }

func encode(u Update) spsc.Message {
	return spsc.Message{A: uint64(u.ID), B: math.Float64bits(u.Value)}
}

func decode(m spsc.Message) Update {
	return Update{ID: ID(m.A), Value: math.Float64frombits(m.B)}
}
