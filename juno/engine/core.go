package engine

import (
	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-juno/dsp/core"
	"github.com/cwbudde/algo-juno/dsp/filter/onepole"
	"github.com/cwbudde/algo-juno/internal/spsc"
	"github.com/cwbudde/algo-juno/juno/artifact"
	"github.com/cwbudde/algo-juno/juno/chorus"
	"github.com/cwbudde/algo-juno/juno/param"
	"github.com/cwbudde/algo-juno/juno/voice"
)

const (
	clockNoiseMix = 0.2
	masterGain    = 0.7
)

// hpfCutoffHz maps the HPF step to a corner frequency. Step 0 is off.
var hpfCutoffHz = [...]float64{0, 80, 160, 360}

// busState is the non-voice parameter set. The control goroutine keeps a
// copy so Initialize can rebuild a core with the current settings.
type busState struct {
	chorus      chorus.Mode
	cableMeters float64
	hpfStep     int
}

// renderCore is everything the render goroutine mutates. A core is built on
// the control goroutine and owned by the render goroutine once published.
type renderCore struct {
	sampleRate float64
	blockSize  int

	pool   *voice.Pool
	clock  *artifact.ClockNoise
	sag    *artifact.SupplySag
	cable  *artifact.Cable
	hpf    onepole.Highpass
	chorus *chorus.Chorus

	hpfStep  int
	hpfAlpha [len(hpfCutoffHz)]float64

	bus   []float64
	left  []float64
	right []float64

	// Method values bound once so draining allocates nothing.
	applyFn func(param.Update)
	eventFn func(spsc.Message)
}

func newRenderCore(cfg config, sampleRate float64, vp param.VoiceParameters, bus busState) (*renderCore, error) {
	pool, err := voice.NewPool(cfg.polyphony, sampleRate, vp)
	if err != nil {
		return nil, err
	}
	clock, err := artifact.NewClockNoise(sampleRate)
	if err != nil {
		return nil, err
	}
	clock.SetRate(cfg.clockRateHz)
	sag, err := artifact.NewSupplySag(sampleRate)
	if err != nil {
		return nil, err
	}
	cable, err := artifact.NewCable(sampleRate, bus.cableMeters)
	if err != nil {
		return nil, err
	}
	ch, err := chorus.New(sampleRate)
	if err != nil {
		return nil, err
	}
	ch.SetMode(bus.chorus)

	n := cfg.proc.BlockSize
	c := &renderCore{
		sampleRate: sampleRate,
		blockSize:  n,
		pool:       pool,
		clock:      clock,
		sag:        sag,
		cable:      cable,
		chorus:     ch,
		bus:        make([]float64, n),
		left:       make([]float64, n),
		right:      make([]float64, n),
	}
	for i, fc := range hpfCutoffHz {
		c.hpfAlpha[i] = onepole.Coefficient(sampleRate, fc)
	}
	pool.Reserve(n)
	c.setHPF(bus.hpfStep)
	c.applyFn = c.apply
	c.eventFn = c.handleEvent
	return c, nil
}

func (c *renderCore) setHPF(step int) {
	step = max(0, min(step, len(hpfCutoffHz)-1))
	c.hpfStep = step
	c.hpf.SetCoefficient(c.hpfAlpha[step])
}

func (c *renderCore) apply(u param.Update) {
	switch {
	case u.ID.IsVoice():
		c.pool.SetParameter(u.ID, u.Value)
	case u.ID == param.ChorusMode:
		c.chorus.SetMode(chorus.Mode(param.ChorusMode.Clamp(u.Value)))
	case u.ID == param.CableLength:
		c.cable.SetLength(param.CableLength.Clamp(u.Value))
	case u.ID == param.HPFStep:
		c.setHPF(int(param.HPFStep.Clamp(u.Value)))
	}
}

func (c *renderCore) handleEvent(m spsc.Message) {
	ev := decodeEvent(m)
	switch ev.kind {
	case evNoteOn:
		c.pool.NoteOn(int(ev.arg), ev.value)
	case evNoteOff:
		c.pool.NoteOff(int(ev.arg))
	case evAftertouch:
		c.pool.SetPolyAftertouch(int(ev.arg), ev.value)
	case evAllNotesOff:
		c.pool.AllNotesOff()
	}
}

// renderChunk renders len(left) <= blockSize frames.
func (c *renderCore) renderChunk(left, right []float64) {
	n := len(left)
	bus := c.bus[:n]
	clear(bus)

	c.sag.Advance(c.pool.ActiveCount(), c.pool.TotalResonance(), n)
	c.pool.Render(bus, c.sag.ResonanceCompensation())

	c.clock.ProcessBlock(bus, clockNoiseMix)
	vecmath.ScaleBlockInPlace(bus, c.sag.OutputCompensation())
	c.cable.ProcessInPlace(bus)
	c.hpf.ProcessInPlace(bus)

	c.chorus.ProcessBlock(bus, left, right[:n])

	for i := range n {
		left[i] = core.FlushDenormals(core.Sanitize(left[i] * masterGain))
		right[i] = core.FlushDenormals(core.Sanitize(right[i] * masterGain))
	}
}
