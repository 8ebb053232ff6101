package main

import (
	"encoding/binary"
	"math"

	"github.com/cwbudde/algo-juno/dsp/core"
)

// renderer is the part of the engine the audio callback drives.
type renderer interface {
	RenderBlock32(left, right []float32) int
}

// stream adapts planar engine output to the interleaved float32 little
// endian byte stream the audio device pulls. Read runs on the device's
// goroutine, which makes it the engine's render context.
type stream struct {
	r     renderer
	left  []float32
	right []float32
}

func newStream(r renderer, frames int) *stream {
	frames = max(frames, 256)
	return &stream{
		r:     r,
		left:  make([]float32, frames),
		right: make([]float32, frames),
	}
}

const bytesPerFrame = 8

func (s *stream) Read(p []byte) (int, error) {
	frames := len(p) / bytesPerFrame
	s.left = core.EnsureLen(s.left, frames)
	s.right = core.EnsureLen(s.right, frames)
	l, r := s.left, s.right
	s.r.RenderBlock32(l, r)

	for i := range frames {
		off := i * bytesPerFrame
		binary.LittleEndian.PutUint32(p[off:], math.Float32bits(l[i]))
		binary.LittleEndian.PutUint32(p[off+4:], math.Float32bits(r[i]))
	}
	return frames * bytesPerFrame, nil
}
