package engine

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/cwbudde/algo-juno/dsp/core"
	"github.com/cwbudde/algo-juno/juno/artifact"
	"github.com/cwbudde/algo-juno/juno/chorus"
	"github.com/cwbudde/algo-juno/juno/param"
	"github.com/cwbudde/algo-juno/juno/voice"
)

const (
	DefaultEventCapacity = 256
	maxRingCapacity      = 1 << 16
)

// Option mutates engine configuration.
type Option func(*config) error

type config struct {
	proc        core.ProcessorConfig
	procOpts    []core.ProcessorOption
	polyphony   int
	channelCap  int
	eventCap    int
	clockRateHz float64
	cableMeters float64
	chorusMode  chorus.Mode
	strict      bool
	logger      *slog.Logger
	voice       param.VoiceParameters
}

func defaultConfig() config {
	return config{
		polyphony:   voice.DefaultPolyphony,
		channelCap:  param.DefaultChannelCapacity,
		eventCap:    DefaultEventCapacity,
		clockRateHz: artifact.DefaultClockRateHz,
		cableMeters: artifact.DefaultCableMeters,
		chorusMode:  chorus.Off,
		logger:      slog.New(slog.DiscardHandler),
		voice:       param.DefaultVoiceParameters(),
	}
}

// WithSampleRate sets the initial sample rate in Hz.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *config) error {
		if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
			return fmt.Errorf("engine: sample rate must be > 0 and finite: %v", sampleRate)
		}

		cfg.procOpts = append(cfg.procOpts, core.WithSampleRate(sampleRate))

		return nil
	}
}

// WithBlockSize sets the internal render chunk in frames. Host blocks of
// any length are accepted; longer ones are rendered in chunks.
func WithBlockSize(frames int) Option {
	return func(cfg *config) error {
		if frames <= 0 || frames > 1<<16 {
			return fmt.Errorf("engine: block size must be in [1, 65536]: %d", frames)
		}

		cfg.procOpts = append(cfg.procOpts, core.WithBlockSize(frames))

		return nil
	}
}

// WithPolyphony sets the number of voices.
func WithPolyphony(voices int) Option {
	return func(cfg *config) error {
		if voices < 1 || voices > voice.MaxPolyphony {
			return fmt.Errorf("engine: polyphony must be in [1, %d]: %d", voice.MaxPolyphony, voices)
		}

		cfg.polyphony = voices

		return nil
	}
}

// WithChannelCapacity sets how many parameter updates may be pending.
func WithChannelCapacity(updates int) Option {
	return func(cfg *config) error {
		if updates < 1 || updates > maxRingCapacity {
			return fmt.Errorf("engine: channel capacity must be in [1, %d]: %d", maxRingCapacity, updates)
		}

		cfg.channelCap = updates

		return nil
	}
}

// WithEventCapacity sets how many note events may be pending.
func WithEventCapacity(events int) Option {
	return func(cfg *config) error {
		if events < 1 || events > maxRingCapacity {
			return fmt.Errorf("engine: event capacity must be in [1, %d]: %d", maxRingCapacity, events)
		}

		cfg.eventCap = events

		return nil
	}
}

// WithClockRate sets the BBD clock rate used for clock noise.
func WithClockRate(hz float64) Option {
	return func(cfg *config) error {
		if !(hz > 0) || math.IsInf(hz, 0) {
			return fmt.Errorf("engine: clock rate must be > 0 and finite: %v", hz)
		}

		cfg.clockRateHz = hz

		return nil
	}
}

// WithCableLength sets the initial output cable length in meters.
func WithCableLength(meters float64) Option {
	return func(cfg *config) error {
		if !(meters >= 0) || meters > param.MaxCableMeters {
			return fmt.Errorf("engine: cable length must be in [0, %v]: %v", param.MaxCableMeters, meters)
		}

		cfg.cableMeters = meters

		return nil
	}
}

// WithChorusMode sets the initial chorus mode.
func WithChorusMode(mode chorus.Mode) Option {
	return func(cfg *config) error {
		if !mode.Valid() {
			return fmt.Errorf("engine: invalid chorus mode: %d", int(mode))
		}

		cfg.chorusMode = mode

		return nil
	}
}

// WithStrictChecksum makes LoadPatch reject patches whose checksum does
// not match.
func WithStrictChecksum(strict bool) Option {
	return func(cfg *config) error {
		cfg.strict = strict
		return nil
	}
}

// WithLogger sets the control-path logger. The default discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) error {
		if logger == nil {
			return fmt.Errorf("engine: logger must not be nil")
		}

		cfg.logger = logger

		return nil
	}
}

// WithVoiceParameters sets the initial voice parameters. Values are
// clamped.
func WithVoiceParameters(p param.VoiceParameters) Option {
	return func(cfg *config) error {
		cfg.voice = p.Clamped()
		return nil
	}
}
