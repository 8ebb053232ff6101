// Package spsc implements a bounded, lock-free single-producer /
// single-consumer ring of two-word messages.
//
// The producer never blocks: when the ring is full the oldest unconsumed
// message is discarded. A batch of messages is published with a single
// store of the head index, so the consumer observes either the whole batch
// or none of it.
//
// The consumer claims a slot by advancing tail with compare-and-swap after
// reading it. The producer, before overwriting a slot that may still be
// unread, advances tail past it with the same compare-and-swap. Whichever
// side wins owns the slot; a consumer that loses discards what it read.
package spsc

import (
	"fmt"
	"sync/atomic"
)

// Message is one ring entry.
type Message struct {
	A uint64
	B uint64
}

type slot struct {
	a atomic.Uint64
	b atomic.Uint64
}

// Ring is a fixed-capacity SPSC queue. Push and PushBatch may be called
// from one producer goroutine, Pop and Drain from one consumer goroutine.
type Ring struct {
	slots []slot
	mask  uint64

	head    atomic.Uint64 // next write sequence, published by the producer
	tail    atomic.Uint64 // next read sequence
	dropped atomic.Uint64

	// producer-private write cursor; equals head outside PushBatch
	cursor uint64
}

// New returns a ring holding capacity messages. capacity must be a power
// of two.
func New(capacity int) (*Ring, error) {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		return nil, fmt.Errorf("spsc: capacity must be a positive power of two: %d", capacity)
	}
	return &Ring{
		slots: make([]slot, capacity),
		mask:  uint64(capacity - 1),
	}, nil
}

// Cap returns the ring capacity.
func (r *Ring) Cap() int { return len(r.slots) }

// Len returns the number of published, unconsumed messages.
func (r *Ring) Len() int {
	h := r.head.Load()
	t := r.tail.Load()
	if t >= h {
		return 0
	}
	return int(h - t)
}

// Dropped returns the number of messages discarded by overflow.
func (r *Ring) Dropped() uint64 { return r.dropped.Load() }

// Push publishes one message.
func (r *Ring) Push(m Message) {
	r.write(m)
	r.head.Store(r.cursor)
}

// PushBatch publishes msgs atomically with respect to the consumer. If
// msgs is longer than the ring, only the newest Cap() messages survive.
func (r *Ring) PushBatch(msgs []Message) {
	if len(msgs) == 0 {
		return
	}
	for _, m := range msgs {
		r.write(m)
	}
	r.head.Store(r.cursor)
}

func (r *Ring) write(m Message) {
	seq := r.cursor
	size := uint64(len(r.slots))
	if seq >= size {
		// The slot for seq held sequence seq-size. Make sure the consumer
		// can no longer claim it before overwriting.
		oldest := seq - size
		for {
			t := r.tail.Load()
			if t > oldest {
				break
			}
			if r.tail.CompareAndSwap(t, oldest+1) {
				r.dropped.Add(oldest + 1 - t)
				break
			}
		}
	}
	s := &r.slots[seq&r.mask]
	s.a.Store(m.A)
	s.b.Store(m.B)
	r.cursor = seq + 1
}

// Pop removes the oldest published message.
func (r *Ring) Pop() (Message, bool) {
	for {
		t := r.tail.Load()
		if t >= r.head.Load() {
			return Message{}, false
		}
		s := &r.slots[t&r.mask]
		m := Message{A: s.a.Load(), B: s.b.Load()}
		if r.tail.CompareAndSwap(t, t+1) {
			return m, true
		}
	}
}

// Drain pops every message published before the call and passes each to
// fn in FIFO order. It returns the number of messages delivered. Messages
// published while Drain runs are left for the next call.
func (r *Ring) Drain(fn func(Message)) int {
	end := r.head.Load()
	n := 0
	for {
		t := r.tail.Load()
		if t >= end {
			return n
		}
		s := &r.slots[t&r.mask]
		m := Message{A: s.a.Load(), B: s.b.Load()}
		if r.tail.CompareAndSwap(t, t+1) {
			fn(m)
			n++
		}
	}
}
