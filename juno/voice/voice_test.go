package voice

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-juno/internal/testutil"
	"github.com/cwbudde/algo-juno/juno/circuit"
	"github.com/cwbudde/algo-juno/juno/param"
)

const sr = 44100.0

func newTestVoice(t *testing.T, p param.VoiceParameters) *Voice {
	t.Helper()
	v, err := New(0, sr, p)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return v
}

func fastParams() param.VoiceParameters {
	p := param.DefaultVoiceParameters()
	p.Attack = 0.002
	p.Decay = 0.05
	p.Release = 0.01
	return p
}

func render(v *Voice, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v.ProcessSample(1)
	}
	return out
}

func TestNewValidation(t *testing.T) {
	if _, err := New(-1, sr, param.DefaultVoiceParameters()); err == nil {
		t.Fatal("expected error for negative index")
	}
	if _, err := New(0, 0, param.DefaultVoiceParameters()); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
}

func TestIdleVoiceIsSilent(t *testing.T) {
	v := newTestVoice(t, param.DefaultVoiceParameters())
	if v.IsActive() || v.Note() != NoNote {
		t.Fatalf("new voice active=%v note=%d", v.IsActive(), v.Note())
	}
	buf := testutil.DC(0.5, 64)
	if v.ProcessBlock(buf, 1) {
		t.Fatal("ProcessBlock reported an idle voice as active")
	}
	for i, x := range buf {
		if x != 0.5 {
			t.Fatalf("idle ProcessBlock wrote buf[%d] = %v", i, x)
		}
	}
	if got := v.ProcessSample(1); got != 0 {
		t.Fatalf("idle ProcessSample() = %v, want 0", got)
	}
}

func TestNoteOnMiddleC(t *testing.T) {
	v := newTestVoice(t, param.DefaultVoiceParameters())
	v.NoteOn(60, 0.8)

	s := v.State()
	if !s.Active || !s.Gate || s.Note != 60 {
		t.Fatalf("state after NoteOn = %+v", s)
	}
	if math.Abs(s.FrequencyHz-261.6256) > 0.01 {
		t.Fatalf("FrequencyHz = %v, want ~261.63", s.FrequencyHz)
	}
	if s.EnvelopePhase != circuit.PhaseAttack {
		t.Fatalf("EnvelopePhase = %v, want attack", s.EnvelopePhase)
	}
	if s.Velocity != 0.8 {
		t.Fatalf("Velocity = %v, want 0.8", s.Velocity)
	}
}

func TestRangeShiftsPitch(t *testing.T) {
	for r, mult := range map[int]float64{0: 0.5, 1: 1, 2: 2} {
		p := param.DefaultVoiceParameters()
		p.Range = r
		v := newTestVoice(t, p)
		v.NoteOn(69, 1)
		if got := v.State().FrequencyHz; math.Abs(got-440*mult) > 1e-9 {
			t.Fatalf("range %d: FrequencyHz = %v, want %v", r, got, 440*mult)
		}
	}
}

func TestVoiceLifecycle(t *testing.T) {
	v := newTestVoice(t, fastParams())
	v.NoteOn(57, 1)

	held := render(v, int(0.2*sr))
	testutil.RequireFinite(t, held)
	if testutil.RMS(held) < 1e-3 {
		t.Fatalf("held note RMS = %v, want audible output", testutil.RMS(held))
	}

	v.NoteOff()
	if v.Gate() {
		t.Fatal("Gate() true after NoteOff")
	}
	tail := render(v, int(0.5*sr))
	testutil.RequireFinite(t, tail)
	if v.IsActive() {
		t.Fatalf("voice still active after release, env = %v", v.EnvelopeLevel())
	}
	if v.Note() != NoNote {
		t.Fatalf("Note() = %d after release, want NoNote", v.Note())
	}
	if got := v.ProcessSample(1); got != 0 {
		t.Fatalf("released voice output = %v, want 0", got)
	}
}

func TestRetriggerKeepsEnvelopeLevel(t *testing.T) {
	v := newTestVoice(t, fastParams())
	v.NoteOn(60, 1)
	render(v, int(0.1*sr))
	level := v.EnvelopeLevel()
	if level <= 0 {
		t.Fatal("envelope did not open")
	}

	v.NoteOn(64, 1)
	if v.EnvelopeLevel() != level {
		t.Fatalf("retrigger reset envelope: %v -> %v", level, v.EnvelopeLevel())
	}
	if v.Note() != 64 {
		t.Fatalf("Note() = %d, want 64", v.Note())
	}
}

func TestVelocityScalesOutput(t *testing.T) {
	loud := newTestVoice(t, fastParams())
	soft := newTestVoice(t, fastParams())
	loud.NoteOn(60, 1)
	soft.NoteOn(60, 0.25)
	a := render(loud, 4410)
	b := render(soft, 4410)
	for i := range a {
		if math.Abs(a[i]*0.25-b[i]) > 1e-12 {
			t.Fatalf("index %d: soft %v, want %v", i, b[i], a[i]*0.25)
		}
	}
}

func TestWaveSwitchesSilence(t *testing.T) {
	p := fastParams()
	p.SawOn = false
	p.PulseOn = false
	p.SubLevel = 0
	p.NoiseLevel = 0
	v := newTestVoice(t, p)
	v.NoteOn(60, 1)
	out := render(v, 4410)
	if rms := testutil.RMS(out); rms > 1e-4 {
		t.Fatalf("RMS with every source off = %v, want ~0", rms)
	}
}

func TestVCAGateIgnoresEnvelope(t *testing.T) {
	p := fastParams()
	p.VCAGate = true
	p.Attack = 2
	v := newTestVoice(t, p)
	v.NoteOn(60, 1)
	// Envelope is still near zero but the gated amplifier is fully open.
	out := render(v, 2205)
	if testutil.RMS(out) < 0.01 {
		t.Fatalf("gate-mode RMS = %v, want audible output", testutil.RMS(out))
	}
	v.NoteOff()
	v.ProcessSample(1)
	for i := range 64 {
		if got := v.ProcessSample(1); math.Abs(got) > 1e-3 {
			t.Fatalf("sample %d after gate off = %v, want ~0", i, got)
		}
	}
}

func TestSetParameterRejectsBusIDs(t *testing.T) {
	v := newTestVoice(t, param.DefaultVoiceParameters())
	if v.SetParameter(param.ChorusMode, 1) {
		t.Fatal("SetParameter accepted a bus parameter")
	}
	if !v.SetParameter(param.CutoffHz, 1e9) {
		t.Fatal("SetParameter rejected cutoff")
	}
	if got := v.Parameters().CutoffHz; got != param.MaxCutoffHz {
		t.Fatalf("CutoffHz = %v, want clamp to %v", got, param.MaxCutoffHz)
	}
}

func TestCutoffNormRoundTrip(t *testing.T) {
	for _, hz := range []float64{20, 100, 1000, 5000, 20000} {
		if got := cutoffFromNorm(cutoffNorm(hz)); math.Abs(got-hz) > 1e-6*hz {
			t.Fatalf("round trip %v -> %v", hz, got)
		}
	}
	if got := cutoffNorm(5); got != 0 {
		t.Fatalf("cutoffNorm(5) = %v, want 0", got)
	}
	if got := cutoffNorm(1e6); got != 1 {
		t.Fatalf("cutoffNorm(1e6) = %v, want 1", got)
	}
}

func TestKeyFollowTracksOctaves(t *testing.T) {
	p := param.DefaultVoiceParameters()
	p.KeyFollow = 1
	p.EnvToFilter = 0
	p.LFOToFilter = 0
	v := newTestVoice(t, p)

	v.note = 72
	up := v.modulatedCutoff(0, 0)
	v.note = 60
	base := v.modulatedCutoff(0, 0)
	if math.Abs(up/base-2) > 1e-9 {
		t.Fatalf("one octave of key follow moved cutoff by %v, want 2", up/base)
	}
}

func TestResetSilences(t *testing.T) {
	v := newTestVoice(t, fastParams())
	v.NoteOn(60, 1)
	render(v, 512)
	v.Reset()
	if v.IsActive() || v.EnvelopeLevel() != 0 || v.Note() != NoNote {
		t.Fatalf("after Reset: active=%v env=%v note=%d", v.IsActive(), v.EnvelopeLevel(), v.Note())
	}
}
