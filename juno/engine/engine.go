package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync/atomic"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-juno/dsp/core"
	"github.com/cwbudde/algo-juno/internal/spsc"
	"github.com/cwbudde/algo-juno/juno/chorus"
	"github.com/cwbudde/algo-juno/juno/param"
	"github.com/cwbudde/algo-juno/juno/patch"
	"github.com/cwbudde/algo-juno/juno/voice"
)

// ErrChecksum is returned by LoadPatch in strict mode when the patch
// checksum does not match.
var ErrChecksum = errors.New("engine: patch checksum mismatch")

// Stats is a point-in-time view of engine counters.
type Stats struct {
	SampleRate     float64
	Polyphony      int
	ActiveVoices   int
	FramesRendered uint64
	PendingUpdates int
	DroppedUpdates uint64
	DroppedEvents  uint64
	Peak           float64 // largest |sample| of the last block
}

// Engine is the synthesizer engine. See the package documentation for the
// threading contract.
type Engine struct {
	cfg config
	log *slog.Logger

	params *param.Channel
	events *spsc.Ring
	core   atomic.Pointer[renderCore]

	// Written by the render goroutine, read by Stats.
	activeVoices atomic.Int32
	frames       atomic.Uint64
	peakBits     atomic.Uint64

	// Control-goroutine state.
	sampleRate  float64
	voice       param.VoiceParameters
	bus         busState
	batch       []param.Update
	seenDropped uint64
	seenEvDrops uint64
}

// New returns an engine initialized at the configured sample rate.
func New(opts ...Option) (*Engine, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	cfg.proc = core.ApplyProcessorOptions(cfg.procOpts...)
	if err := cfg.proc.Validate(); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	params, err := param.NewChannel(cfg.channelCap)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	events, err := spsc.New(ceilPow2(cfg.eventCap))
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	e := &Engine{
		cfg:    cfg,
		log:    cfg.logger,
		params: params,
		events: events,
		voice:  cfg.voice,
		bus: busState{
			chorus:      cfg.chorusMode,
			cableMeters: cfg.cableMeters,
		},
		batch: make([]param.Update, 0, param.NumIDs),
	}
	if err := e.Initialize(cfg.proc.SampleRate); err != nil {
		return nil, err
	}
	return e, nil
}

func ceilPow2(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}

// Initialize builds a fresh render core at sampleRate with the current
// parameters and publishes it. Every voice starts silent. The render
// goroutine switches over at its next block.
func (e *Engine) Initialize(sampleRate float64) error {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("engine: sample rate must be > 0 and finite: %v", sampleRate)
	}
	c, err := newRenderCore(e.cfg, sampleRate, e.voice, e.bus)
	if err != nil {
		return fmt.Errorf("engine: initialize: %w", err)
	}
	e.sampleRate = sampleRate
	e.core.Store(c)
	e.log.Info("engine initialized",
		"sample_rate", sampleRate,
		"polyphony", e.cfg.polyphony,
		"block_size", e.cfg.proc.BlockSize,
		"chorus", e.bus.chorus.String())
	return nil
}

// SampleRate returns the rate passed to the last successful Initialize.
func (e *Engine) SampleRate() float64 { return e.sampleRate }

// Polyphony returns the number of voices.
func (e *Engine) Polyphony() int { return e.cfg.polyphony }

// VoiceParameters returns the control-side voice parameter set.
func (e *Engine) VoiceParameters() param.VoiceParameters { return e.voice }

// ChorusMode returns the control-side chorus mode.
func (e *Engine) ChorusMode() chorus.Mode { return e.bus.chorus }

// publish records the batch in the control-side state and sends it as one
// unit.
func (e *Engine) publish(batch []param.Update) {
	for _, u := range batch {
		switch {
		case u.ID.IsVoice():
			e.voice.Set(u.ID, u.Value)
		case u.ID == param.ChorusMode:
			e.bus.chorus = chorus.Mode(param.ChorusMode.Clamp(u.Value))
		case u.ID == param.CableLength:
			e.bus.cableMeters = param.CableLength.Clamp(u.Value)
		case u.ID == param.HPFStep:
			e.bus.hpfStep = int(param.HPFStep.Clamp(u.Value))
		}
	}
	e.params.PushBatch(batch)

	if d := e.params.Dropped(); d != e.seenDropped {
		e.log.Warn("parameter updates dropped", "total", d, "new", d-e.seenDropped)
		e.seenDropped = d
	}
}

// SetParameter sends one update. Values are clamped to the parameter's
// range and invalid IDs are ignored.
func (e *Engine) SetParameter(id param.ID, value float64) {
	if !id.Valid() {
		e.log.Debug("ignoring invalid parameter", "id", int(id))
		return
	}
	e.batch = append(e.batch[:0], param.Update{ID: id, Value: id.Clamp(value)})
	e.publish(e.batch)
}

// SetVoiceParameters replaces every voice parameter in one batch.
func (e *Engine) SetVoiceParameters(p param.VoiceParameters) {
	e.batch = p.Clamped().AppendUpdates(e.batch[:0])
	e.publish(e.batch)
}

// SetAnalogCharacter sets the imperfection amounts and the cable length in
// one batch.
func (e *Engine) SetAnalogCharacter(beating, drift, click, cableMeters, temperature, age float64) {
	e.batch = append(e.batch[:0],
		param.Update{ID: param.Beating, Value: param.Beating.Clamp(beating)},
		param.Update{ID: param.Drift, Value: param.Drift.Clamp(drift)},
		param.Update{ID: param.Click, Value: param.Click.Clamp(click)},
		param.Update{ID: param.CableLength, Value: param.CableLength.Clamp(cableMeters)},
		param.Update{ID: param.Temperature, Value: param.Temperature.Clamp(temperature)},
		param.Update{ID: param.Age, Value: param.Age.Clamp(age)},
	)
	e.publish(e.batch)
}

// SetChorusMode selects the chorus. Undefined modes are ignored.
func (e *Engine) SetChorusMode(mode chorus.Mode) {
	if !mode.Valid() {
		e.log.Debug("ignoring invalid chorus mode", "mode", int(mode))
		return
	}
	e.SetParameter(param.ChorusMode, float64(mode))
}

// LoadPatch decodes raw, which holds one or more 25-byte records, and
// applies the first. On error nothing changes.
func (e *Engine) LoadPatch(raw []byte) error {
	patches, err := patch.DecodeAll(raw)
	if err != nil {
		e.log.Warn("patch rejected", "bytes", len(raw), "err", err)
		return err
	}
	if len(patches) == 0 {
		err := fmt.Errorf("%w: got 0", patch.ErrLength)
		e.log.Warn("patch rejected", "bytes", 0, "err", err)
		return err
	}
	return e.LoadPatchRecord(patches[0])
}

// LoadPatchRecord applies an already decoded patch.
func (e *Engine) LoadPatchRecord(p patch.Patch) error {
	if !p.ChecksumValid {
		if e.cfg.strict {
			e.log.Warn("patch rejected", "slot", p.Slot, "err", ErrChecksum)
			return ErrChecksum
		}
		e.log.Warn("applying patch with bad checksum", "slot", p.Slot)
	}
	s := p.Settings(e.voice)
	e.batch = s.AppendUpdates(e.batch[:0])
	e.publish(e.batch)
	e.log.Debug("patch loaded", "slot", p.Slot, "channel", p.Channel, "chorus", s.Chorus.String())
	return nil
}

func (e *Engine) sendEvent(ev event) {
	e.events.Push(ev.encode())
	if d := e.events.Dropped(); d != e.seenEvDrops {
		e.log.Warn("note events dropped", "total", d, "new", d-e.seenEvDrops)
		e.seenEvDrops = d
	}
}

// NoteOn starts midiNote with velocity in [0, 1]. Notes outside 0..127 are
// ignored.
func (e *Engine) NoteOn(midiNote int, velocity float64) {
	if midiNote < 0 || midiNote > 127 {
		return
	}
	e.sendEvent(event{kind: evNoteOn, arg: int32(midiNote), value: core.Clamp01(velocity)})
}

// NoteOff releases every voice holding midiNote.
func (e *Engine) NoteOff(midiNote int) {
	if midiNote < 0 || midiNote > 127 {
		return
	}
	e.sendEvent(event{kind: evNoteOff, arg: int32(midiNote)})
}

// SetPolyAftertouch sets pressure in [0, 1] on one voice. Indices outside
// the pool are ignored.
func (e *Engine) SetPolyAftertouch(voiceIndex int, pressure float64) {
	if voiceIndex < 0 || voiceIndex >= e.cfg.polyphony {
		return
	}
	e.sendEvent(event{kind: evAftertouch, arg: int32(voiceIndex), value: core.Clamp01(pressure)})
}

// AllNotesOff releases every held voice.
func (e *Engine) AllNotesOff() {
	e.sendEvent(event{kind: evAllNotesOff})
}

// Stats returns the current counters. It is safe to call from any
// goroutine.
func (e *Engine) Stats() Stats {
	c := e.core.Load()
	return Stats{
		SampleRate:     c.sampleRate,
		Polyphony:      e.cfg.polyphony,
		ActiveVoices:   int(e.activeVoices.Load()),
		FramesRendered: e.frames.Load(),
		PendingUpdates: e.params.Pending(),
		DroppedUpdates: e.params.Dropped(),
		DroppedEvents:  e.events.Dropped(),
		Peak:           math.Float64frombits(e.peakBits.Load()),
	}
}

// begin loads the current core and applies everything queued before the
// block starts.
func (e *Engine) begin() *renderCore {
	c := e.core.Load()
	e.events.Drain(c.eventFn)
	e.params.Drain(c.applyFn)
	return c
}

func (e *Engine) finish(c *renderCore, frames int, peak float64) {
	e.activeVoices.Store(int32(c.pool.ActiveCount()))
	e.frames.Add(uint64(frames))
	e.peakBits.Store(math.Float64bits(peak))
}

// RenderBlock renders min(len(left), len(right)) frames of stereo output.
// It must only be called from the render goroutine.
func (e *Engine) RenderBlock(left, right []float64) int {
	n := min(len(left), len(right))
	c := e.begin()
	peak := 0.0
	for off := 0; off < n; off += c.blockSize {
		end := min(off+c.blockSize, n)
		l, r := left[off:end], right[off:end]
		c.renderChunk(l, r)
		peak = max(peak, vecmath.MaxAbs(l), vecmath.MaxAbs(r))
	}
	e.finish(c, n, peak)
	return n
}

// RenderBlock32 is RenderBlock for float32 host buffers.
func (e *Engine) RenderBlock32(left, right []float32) int {
	n := min(len(left), len(right))
	c := e.begin()
	peak := 0.0
	for off := 0; off < n; off += c.blockSize {
		end := min(off+c.blockSize, n)
		m := end - off
		l, r := c.left[:m], c.right[:m]
		c.renderChunk(l, r)
		peak = max(peak, vecmath.MaxAbs(l), vecmath.MaxAbs(r))
		core.ToFloat32(left[off:end], l)
		core.ToFloat32(right[off:end], r)
	}
	e.finish(c, n, peak)
	return n
}

// VoiceStates copies the state of every voice into dst and returns the
// number written. It must only be called from the render goroutine,
// typically right after RenderBlock.
func (e *Engine) VoiceStates(dst []voice.State) int {
	return e.core.Load().pool.Snapshot(dst)
}
