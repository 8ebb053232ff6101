package circuit

// LFO is a triangle modulation source that restarts on note-on and fades
// in over a configurable delay.
type LFO struct {
	sampleRate float64
	rateHz     float64
	phase      float64
	triggered  bool

	delaySeconds float64
	fade         float64
	fadeInc      float64
}

// NewLFO returns an LFO running at rateHz.
func NewLFO(sampleRate, rateHz float64) (*LFO, error) {
	l := &LFO{fade: 1}
	if err := l.SetSampleRate(sampleRate); err != nil {
		return nil, err
	}
	l.SetRate(rateHz)
	return l, nil
}

// SetSampleRate updates the sample rate.
func (l *LFO) SetSampleRate(sampleRate float64) error {
	if err := validateSampleRate("lfo", sampleRate); err != nil {
		return err
	}
	l.sampleRate = sampleRate
	l.SetDelay(l.delaySeconds)
	return nil
}

// SetRate sets the rate in Hz; negative and non-finite rates stop the LFO.
func (l *LFO) SetRate(rateHz float64) {
	if !isFinite(rateHz) || rateHz < 0 {
		rateHz = 0
	}
	l.rateHz = rateHz
}

// SetDelay sets the fade-in time applied after each Trigger.
func (l *LFO) SetDelay(seconds float64) {
	if !isFinite(seconds) || seconds < 0 {
		seconds = 0
	}
	l.delaySeconds = seconds
	if seconds == 0 {
		l.fadeInc = 1
		return
	}
	l.fadeInc = 1 / (seconds * l.sampleRate)
}

// Trigger restarts the waveform at phase 0 on the next sample and restarts
// the fade-in.
func (l *LFO) Trigger() {
	l.triggered = true
	l.fade = 0
	if l.delaySeconds == 0 {
		l.fade = 1
	}
}

// Reset clears phase and fade.
func (l *LFO) Reset() {
	l.phase = 0
	l.triggered = false
	l.fade = 1
}

// ProcessSample advances one sample and returns a value in [-1, 1].
func (l *LFO) ProcessSample() float64 {
	if l.triggered {
		l.phase = 0
		l.triggered = false
	}
	l.phase = wrap01(l.phase + l.rateHz/l.sampleRate)

	var v float64
	switch {
	case l.phase < 0.25:
		v = 4 * l.phase
	case l.phase < 0.75:
		v = 2 - 4*l.phase
	default:
		v = 4*l.phase - 4
	}

	if l.fade < 1 {
		l.fade += l.fadeInc
		if l.fade > 1 {
			l.fade = 1
		}
	}
	return v * l.fade
}
