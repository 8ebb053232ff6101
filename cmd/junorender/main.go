// Command junorender renders a note sequence through the synthesizer engine
// and writes a stereo WAV file.
//
// Usage:
//
//	junorender [flags]
//
// The sequence is a list of steps separated by spaces or commas. A step is a
// MIDI note number or a note name, and "+" joins notes into a chord. Every
// step is held for -hold seconds; the last one is followed by -tail seconds
// of release.
//
// Examples:
//
//	junorender -o lead.wav -notes "A3 C4 E4 A4"
//	junorender -patch brass.syx -notes "C3+E3+G3" -hold 2
//	junorender -chorus II -gain -6 -notes 48,55,60 -v
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("junorender", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var cfg renderConfig
	fs.StringVar(&cfg.output, "o", "juno.wav", "output WAV path")
	fs.StringVar(&cfg.patchPath, "patch", "", "patch dump file (25-byte records); first record is used")
	fs.StringVar(&cfg.notes, "notes", "C4 E4 G4 C5", "note steps; \"+\" joins a chord")
	fs.Float64Var(&cfg.velocity, "velocity", 0.8, "note velocity 0..1")
	fs.Float64Var(&cfg.hold, "hold", 0.5, "seconds each step is held")
	fs.Float64Var(&cfg.tail, "tail", 1, "release tail after the last step in seconds")
	fs.IntVar(&cfg.sampleRate, "rate", 48000, "sample rate in Hz")
	fs.IntVar(&cfg.bitDepth, "bits", 16, "WAV bit depth (16 or 24)")
	fs.IntVar(&cfg.polyphony, "poly", 6, "voice count")
	fs.StringVar(&cfg.chorus, "chorus", "", "chorus override: off, I or II")
	fs.Float64Var(&cfg.cable, "cable", 3, "output cable length in meters")
	fs.Float64Var(&cfg.gainDB, "gain", 0, "output gain in dB")
	verbose := fs.Bool("v", false, "debug logging")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: junorender [flags]\n\n")
		fmt.Fprintf(stderr, "Renders a note sequence to a stereo WAV file.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	return render(cfg, newLogger(stderr, *verbose))
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
