package signal

import "math"

const (
	// DefaultWhiteSeed seeds XorShift32 sources when no seed is given.
	DefaultWhiteSeed uint32 = 0x12345678
	// DefaultLCGSeed seeds LCG sources when no seed is given.
	DefaultLCGSeed uint32 = 0x87654321
)

// XorShift32 is a 32-bit xorshift generator (13/17/5 taps).
//
// It holds four bytes of state, never allocates and produces the same
// sequence on every platform.
type XorShift32 struct {
	state uint32
}

// NewXorShift32 returns a generator seeded with seed. A zero seed would lock
// the generator at zero and is replaced by DefaultWhiteSeed.
func NewXorShift32(seed uint32) XorShift32 {
	if seed == 0 {
		seed = DefaultWhiteSeed
	}
	return XorShift32{state: seed}
}

// Seed restarts the sequence.
func (x *XorShift32) Seed(seed uint32) {
	*x = NewXorShift32(seed)
}

// Next advances the generator and returns the raw 32-bit state.
func (x *XorShift32) Next() uint32 {
	if x.state == 0 {
		x.state = DefaultWhiteSeed
	}
	s := x.state
	s ^= s << 13
	s ^= s >> 17
	s ^= s << 5
	x.state = s
	return s
}

// Uniform returns a value in [0, 1].
func (x *XorShift32) Uniform() float64 {
	return float64(x.Next()) / float64(math.MaxUint32)
}

// Bipolar returns a value in [-1, 1).
//
// The top 23 bits are placed in the mantissa of a float32 with exponent for
// [1, 2), then shifted to [-1, 1) as (f - 1.5) * 2.
func (x *XorShift32) Bipolar() float64 {
	bits := (x.Next() >> 9) | 0x3f800000
	f := float64(math.Float32frombits(bits))
	return (f - 1.5) * 2
}

// LCG is a classic linear congruential generator (1103515245, 12345).
type LCG struct {
	state uint32
}

// NewLCG returns a generator seeded with seed.
func NewLCG(seed uint32) LCG {
	return LCG{state: seed}
}

// Seed restarts the sequence.
func (l *LCG) Seed(seed uint32) {
	l.state = seed
}

// Next returns a value in [-0.5, 0.5] built from the high 16 bits.
func (l *LCG) Next() float64 {
	l.state = l.state*1103515245 + 12345
	return float64(l.state>>16)/65535 - 0.5
}
