package main

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	vecmath "github.com/cwbudde/algo-vecmath"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-juno/dsp/core"
	"github.com/cwbudde/algo-juno/juno/chorus"
	"github.com/cwbudde/algo-juno/juno/engine"
	"github.com/cwbudde/algo-juno/juno/patch"
	"github.com/cwbudde/algo-juno/measure/pitch"
	timestats "github.com/cwbudde/algo-juno/stats/time"
)

const renderBlock = 512

type renderConfig struct {
	output     string
	patchPath  string
	notes      string
	velocity   float64
	hold       float64
	tail       float64
	sampleRate int
	bitDepth   int
	polyphony  int
	chorus     string
	cable      float64
	gainDB     float64
}

func render(cfg renderConfig, log *slog.Logger) error {
	steps, err := parseSteps(cfg.notes)
	if err != nil {
		return err
	}
	if cfg.hold <= 0 || cfg.tail < 0 {
		return fmt.Errorf("hold must be > 0 and tail >= 0: %v, %v", cfg.hold, cfg.tail)
	}
	if !core.IsFinite(cfg.gainDB) {
		return fmt.Errorf("gain must be finite: %v", cfg.gainDB)
	}
	if cfg.bitDepth != 16 && cfg.bitDepth != 24 {
		return fmt.Errorf("unsupported bit depth: %d", cfg.bitDepth)
	}

	opts := []engine.Option{
		engine.WithSampleRate(float64(cfg.sampleRate)),
		engine.WithPolyphony(cfg.polyphony),
		engine.WithCableLength(cfg.cable),
		engine.WithLogger(log),
	}
	e, err := engine.New(opts...)
	if err != nil {
		return err
	}

	raw := patch.Encode(initPatch())
	if cfg.patchPath != "" {
		if raw, err = os.ReadFile(cfg.patchPath); err != nil {
			return fmt.Errorf("failed to read patch: %w", err)
		}
	}
	if err := e.LoadPatch(raw); err != nil {
		return err
	}
	if cfg.chorus != "" {
		mode, err := parseChorus(cfg.chorus)
		if err != nil {
			return err
		}
		e.SetChorusMode(mode)
	}

	start := time.Now()
	l, r := play(e, steps, cfg)
	if cfg.gainDB != 0 {
		g := core.DBToLinear(cfg.gainDB)
		vecmath.ScaleBlockInPlace(l, g)
		vecmath.ScaleBlockInPlace(r, g)
	}
	log.Debug("render complete",
		"frames", len(l),
		"elapsed", time.Since(start).Round(time.Millisecond))

	st := timestats.Calculate(l)
	attrs := []any{
		"output", cfg.output,
		"seconds", float64(st.Length) / float64(cfg.sampleRate),
		"chorus", e.ChorusMode(),
		"rms_db", round1(st.RMS_dB),
		"peak", st.Peak,
		"crest_db", round1(st.CrestFactor_dB),
		"dc", st.DC,
	}
	if res, err := pitch.Estimate(l, pitch.Config{SampleRate: float64(cfg.sampleRate)}); err == nil {
		attrs = append(attrs, "pitch_hz", round1(res.FrequencyHz))
	}
	log.Info("rendered", attrs...)

	return writeWAV(cfg.output, l, r, cfg.sampleRate, cfg.bitDepth)
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

// play schedules every step and renders the whole sequence in blocks.
func play(e *engine.Engine, steps [][]int, cfg renderConfig) (l, r []float64) {
	sr := float64(cfg.sampleRate)
	holdFrames := int(math.Round(cfg.hold * sr))
	tailFrames := int(math.Round(cfg.tail * sr))
	total := holdFrames*len(steps) + tailFrames

	l = make([]float64, total)
	r = make([]float64, total)

	pos := 0
	renderUntil := func(end int) {
		for pos < end {
			n := min(renderBlock, end-pos)
			pos += e.RenderBlock(l[pos:pos+n], r[pos:pos+n])
		}
	}

	for _, step := range steps {
		for _, note := range step {
			e.NoteOn(note, cfg.velocity)
		}
		renderUntil(pos + holdFrames)
		for _, note := range step {
			e.NoteOff(note)
		}
	}
	renderUntil(total)
	return l, r
}

// initPatch is a plain saw and pulse patch with chorus I.
func initPatch() patch.Patch {
	var p patch.Patch
	p.Sliders[patch.LFORate] = 60
	p.Sliders[patch.DCOPWM] = 40
	p.Sliders[patch.VCFCutoff] = 80
	p.Sliders[patch.VCFResonance] = 20
	p.Sliders[patch.VCFEnvMod] = 40
	p.Sliders[patch.VCFKeyFollow] = 64
	p.Sliders[patch.VCALevel] = 100
	p.Sliders[patch.EnvAttack] = 5
	p.Sliders[patch.EnvDecay] = 60
	p.Sliders[patch.EnvSustain] = 90
	p.Sliders[patch.EnvRelease] = 50
	p.Switches = patch.Switches{
		Range8:      true,
		Pulse:       true,
		Saw:         true,
		ChorusOn:    true,
		PWMFromLFO:  true,
		EnvPositive: true,
		VCAEnv:      true,
		HPF:         1,
	}
	return p
}

var noteOffsets = map[string]int{
	"C": 0, "C#": 1, "DB": 1, "D": 2, "D#": 3, "EB": 3, "E": 4, "F": 5,
	"F#": 6, "GB": 6, "G": 7, "G#": 8, "AB": 8, "A": 9, "A#": 10, "BB": 10, "B": 11,
}

// parseNote accepts a MIDI number or a name such as "C4", "f#2" or "Bb-1".
func parseNote(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 127 {
			return 0, fmt.Errorf("note out of range: %d", n)
		}
		return n, nil
	}

	up := strings.ToUpper(s)
	split := 1
	if len(up) > 1 && (up[1] == '#' || up[1] == 'B') {
		split = 2
	}
	if len(up) <= split {
		return 0, fmt.Errorf("invalid note: %q", s)
	}
	offset, ok := noteOffsets[up[:split]]
	if !ok {
		return 0, fmt.Errorf("invalid note: %q", s)
	}
	octave, err := strconv.Atoi(up[split:])
	if err != nil {
		return 0, fmt.Errorf("invalid octave in note %q", s)
	}

	n := (octave+1)*12 + offset
	if n < 0 || n > 127 {
		return 0, fmt.Errorf("note out of range: %q", s)
	}
	return n, nil
}

func parseSteps(s string) ([][]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	if len(fields) == 0 {
		return nil, fmt.Errorf("no notes given")
	}

	steps := make([][]int, 0, len(fields))
	for _, f := range fields {
		var step []int
		for _, name := range strings.Split(f, "+") {
			n, err := parseNote(name)
			if err != nil {
				return nil, err
			}
			step = append(step, n)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func parseChorus(s string) (chorus.Mode, error) {
	switch strings.ToLower(s) {
	case "off", "0":
		return chorus.Off, nil
	case "i", "1":
		return chorus.I, nil
	case "ii", "2":
		return chorus.II, nil
	default:
		return chorus.Off, fmt.Errorf("unknown chorus mode: %q", s)
	}
}

// writeWAV interleaves and quantizes both channels into a PCM WAV file.
func writeWAV(path string, l, r []float64, sampleRate, bitDepth int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	enc := wav.NewEncoder(f, sampleRate, bitDepth, 2, 1)
	buf := &audio.IntBuffer{
		Data:           interleave(l, r, bitDepth),
		Format:         &audio.Format{NumChannels: 2, SampleRate: sampleRate},
		SourceBitDepth: bitDepth,
	}

	if err := enc.Write(buf); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to finalize WAV: %w", err)
	}
	return f.Close()
}

func interleave(l, r []float64, bitDepth int) []int {
	scale := float64(int(1)<<(bitDepth-1) - 1)
	out := make([]int, 2*len(l))
	for i := range l {
		out[2*i] = quantize(l[i], scale)
		out[2*i+1] = quantize(r[i], scale)
	}
	return out
}

func quantize(x, scale float64) int {
	return int(math.Round(math.Max(-1, math.Min(1, x)) * scale))
}
