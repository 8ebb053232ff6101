package voice

import (
	"fmt"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-juno/dsp/core"
	"github.com/cwbudde/algo-juno/juno/param"
)

const (
	DefaultPolyphony = 6
	MaxPolyphony     = 32
)

// Pool is a fixed set of voices with first-free allocation and
// quietest-voice stealing.
type Pool struct {
	voices  []*Voice
	scratch []float64
}

// NewPool returns n idle voices sharing parameter set p.
func NewPool(n int, sampleRate float64, p param.VoiceParameters) (*Pool, error) {
	if n < 1 || n > MaxPolyphony {
		return nil, fmt.Errorf("voice: polyphony must be in [1, %d]: %d", MaxPolyphony, n)
	}
	pool := &Pool{voices: make([]*Voice, n)}
	for i := range pool.voices {
		v, err := New(i, sampleRate, p)
		if err != nil {
			return nil, err
		}
		pool.voices[i] = v
	}
	return pool, nil
}

// Len returns the number of voices.
func (p *Pool) Len() int { return len(p.voices) }

// Voice returns voice i.
func (p *Pool) Voice(i int) *Voice { return p.voices[i] }

// SetSampleRate retunes every voice.
func (p *Pool) SetSampleRate(sampleRate float64) error {
	for _, v := range p.voices {
		if err := v.SetSampleRate(sampleRate); err != nil {
			return err
		}
	}
	return nil
}

// SetParameters copies vp into every voice.
func (p *Pool) SetParameters(vp param.VoiceParameters) {
	vp = vp.Clamped()
	for _, v := range p.voices {
		v.params = vp
		v.configure()
	}
}

// SetParameter applies one voice parameter to every voice.
func (p *Pool) SetParameter(id param.ID, value float64) bool {
	if !id.IsVoice() {
		return false
	}
	for _, v := range p.voices {
		v.SetParameter(id, value)
	}
	return true
}

// Parameters returns the shared parameter set.
func (p *Pool) Parameters() param.VoiceParameters { return p.voices[0].params }

// Allocate returns the voice a new note would use: the lowest-indexed
// inactive voice, otherwise the voice with the lowest envelope level. Ties
// go to the lower index.
func (p *Pool) Allocate() int {
	for i, v := range p.voices {
		if !v.active {
			return i
		}
	}
	best := 0
	level := p.voices[0].env.Level()
	for i := 1; i < len(p.voices); i++ {
		if l := p.voices[i].env.Level(); l < level {
			best, level = i, l
		}
	}
	return best
}

// NoteOn starts note on the allocated voice and returns its index.
func (p *Pool) NoteOn(note int, velocity float64) int {
	i := p.Allocate()
	p.voices[i].NoteOn(note, velocity)
	return i
}

// NoteOff releases every gated voice holding note and returns how many
// were released.
func (p *Pool) NoteOff(note int) int {
	n := 0
	for _, v := range p.voices {
		if v.gate && v.note == note {
			v.NoteOff()
			n++
		}
	}
	return n
}

// AllNotesOff releases every gated voice.
func (p *Pool) AllNotesOff() {
	for _, v := range p.voices {
		if v.gate {
			v.NoteOff()
		}
	}
}

// SetPolyAftertouch sets pressure on voice i. Out-of-range indices are
// ignored and reported as false.
func (p *Pool) SetPolyAftertouch(i int, pressure float64) bool {
	if i < 0 || i >= len(p.voices) {
		return false
	}
	p.voices[i].SetAftertouch(pressure)
	return true
}

// ActiveCount returns the number of sounding voices.
func (p *Pool) ActiveCount() int {
	n := 0
	for _, v := range p.voices {
		if v.active {
			n++
		}
	}
	return n
}

// TotalResonance sums the resonance of the sounding voices.
func (p *Pool) TotalResonance() float64 {
	sum := 0.0
	for _, v := range p.voices {
		if v.active {
			sum += v.params.Resonance
		}
	}
	return sum
}

// Render adds every active voice into bus. The scratch buffer grows on
// the first call for a given block size and is reused afterwards.
func (p *Pool) Render(bus []float64, resonanceComp float64) {
	p.scratch = core.EnsureLen(p.scratch, len(bus))
	scratch := p.scratch
	for _, v := range p.voices {
		if v.ProcessBlock(scratch, resonanceComp) {
			vecmath.AddBlockInPlace(bus, scratch)
		}
	}
}

// Reserve presizes the render scratch buffer.
func (p *Pool) Reserve(frames int) {
	p.scratch = core.EnsureLen(p.scratch, frames)
}

// Snapshot copies the state of up to len(dst) voices into dst and returns
// the number written.
func (p *Pool) Snapshot(dst []State) int {
	n := min(len(dst), len(p.voices))
	for i := range n {
		dst[i] = p.voices[i].State()
	}
	return n
}

// Reset silences every voice.
func (p *Pool) Reset() {
	for _, v := range p.voices {
		v.Reset()
	}
}
