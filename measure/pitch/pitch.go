package pitch

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-juno/dsp/window"
	timestats "github.com/cwbudde/algo-juno/stats/time"
)

const (
	defaultMinHz = 20.0
	defaultMaxHz = 5000.0
)

// ErrEmpty is returned when there is nothing to analyze.
var ErrEmpty = errors.New("pitch: empty signal")

// Config holds estimator parameters.
type Config struct {
	SampleRate float64
	// FFTSize is rounded up to a power of two. Zero sizes the FFT to the
	// signal length.
	FFTSize int
	MinHz   float64
	MaxHz   float64
	// Window selects the analysis window. The zero value selects Hann;
	// a rectangular window is not offered.
	Window window.Type
}

// Result holds one estimate.
type Result struct {
	FrequencyHz float64
	// Level is the amplitude of the strongest sinusoid, corrected for the
	// window gain.
	Level float64
	Bin   int
	RMS   float64
	Peak  float64
}

// Estimator runs FFT pitch estimates with reusable buffers. It is not safe
// for concurrent use.
type Estimator struct {
	cfg Config

	size  int
	plan  *algofft.Plan[complex128]
	in    []complex128
	out   []complex128
	re    []float64
	im    []float64
	power []float64
	coeff []float64
	gain  float64
}

// NewEstimator validates cfg and returns an estimator.
func NewEstimator(cfg Config) (*Estimator, error) {
	if cfg.SampleRate <= 0 || math.IsNaN(cfg.SampleRate) || math.IsInf(cfg.SampleRate, 0) {
		return nil, fmt.Errorf("pitch: sample rate must be > 0 and finite: %f", cfg.SampleRate)
	}
	if cfg.FFTSize < 0 {
		return nil, fmt.Errorf("pitch: FFT size must be >= 0: %d", cfg.FFTSize)
	}
	if cfg.MinHz <= 0 {
		cfg.MinHz = defaultMinHz
	}
	if cfg.MaxHz <= 0 {
		cfg.MaxHz = defaultMaxHz
	}
	if cfg.Window == window.TypeRectangular {
		cfg.Window = window.TypeHann
	}
	if !cfg.Window.Valid() {
		return nil, fmt.Errorf("pitch: unknown window: %v", cfg.Window)
	}
	if cfg.MaxHz < cfg.MinHz {
		return nil, fmt.Errorf("pitch: max frequency %f below min frequency %f", cfg.MaxHz, cfg.MinHz)
	}
	return &Estimator{cfg: cfg}, nil
}

// Estimate is a one-shot analysis of signal.
func Estimate(signal []float64, cfg Config) (Result, error) {
	e, err := NewEstimator(cfg)
	if err != nil {
		return Result{}, err
	}
	return e.Estimate(signal)
}

// Estimate analyzes signal. Signals longer than the configured FFT size are
// truncated to it; shorter ones are zero padded.
func (e *Estimator) Estimate(signal []float64) (Result, error) {
	if len(signal) == 0 {
		return Result{}, ErrEmpty
	}

	size := e.cfg.FFTSize
	if size == 0 {
		size = len(signal)
	}
	size = nextPowerOf2(size)
	if size < 4 {
		return Result{}, fmt.Errorf("pitch: FFT size too small: %d", size)
	}
	if err := e.ensure(size); err != nil {
		return Result{}, err
	}

	n := min(len(signal), size)
	frame := signal[:n]

	res := Result{
		RMS:  timestats.RMS(frame),
		Peak: vecmath.MaxAbs(frame),
	}

	if err := e.ensureWindow(n); err != nil {
		return Result{}, err
	}
	for i, x := range frame {
		e.in[i] = complex(x*e.coeff[i], 0)
	}
	for i := n; i < size; i++ {
		e.in[i] = 0
	}

	if err := e.plan.Forward(e.out, e.in); err != nil {
		return Result{}, fmt.Errorf("pitch: %w", err)
	}

	half := size/2 + 1
	for i := range half {
		e.re[i] = real(e.out[i])
		e.im[i] = imag(e.out[i])
	}
	vecmath.Power(e.power, e.re, e.im)

	binHz := e.cfg.SampleRate / float64(size)
	lo := clampInt(int(math.Ceil(e.cfg.MinHz/binHz)), 1, half-2)
	hi := clampInt(int(math.Floor(e.cfg.MaxHz/binHz)), lo, half-2)

	bin := peakBin(e.power, lo, hi)
	if e.power[bin] <= 0 {
		return res, nil
	}

	res.Bin = bin
	res.FrequencyHz = (float64(bin) + interpolate(e.power, bin)) * binHz
	res.Level = 2 * math.Sqrt(e.power[bin]) / (e.gain * float64(n))
	return res, nil
}

func (e *Estimator) ensure(size int) error {
	if e.size == size {
		return nil
	}
	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return fmt.Errorf("pitch: %w", err)
	}

	half := size/2 + 1
	e.plan = plan
	e.size = size
	e.in = make([]complex128, size)
	e.out = make([]complex128, size)
	e.re = make([]float64, half)
	e.im = make([]float64, half)
	e.power = make([]float64, half)
	return nil
}

func (e *Estimator) ensureWindow(n int) error {
	if len(e.coeff) == n {
		return nil
	}
	coeff := window.Generate(e.cfg.Window, n)
	gain, err := window.CoherentGain(coeff)
	if err != nil {
		return fmt.Errorf("pitch: %w", err)
	}
	e.coeff, e.gain = coeff, gain
	return nil
}

func peakBin(power []float64, lo, hi int) int {
	best := lo
	bestVal := -1.0
	for i := lo; i <= hi; i++ {
		if power[i] > bestVal {
			bestVal = power[i]
			best = i
		}
	}
	return best
}

// interpolate returns the fractional bin offset in [-0.5, 0.5] of the
// parabola through the log power of bin and its neighbours.
func interpolate(power []float64, bin int) float64 {
	a, b, c := power[bin-1], power[bin], power[bin+1]
	if a <= 0 || c <= 0 {
		return 0
	}
	la, lb, lc := math.Log(a), math.Log(b), math.Log(c)
	den := la - 2*lb + lc
	if den >= 0 {
		return 0
	}
	d := 0.5 * (la - lc) / den
	return math.Max(-0.5, math.Min(0.5, d))
}

func clampInt(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
