// Command junoplay plays the synthesizer engine live from the computer
// keyboard.
//
// Usage:
//
//	junoplay [flags]
//
// The home row plays a chromatic octave and a half starting at "a"; the
// row above holds the black keys. Terminals report no key releases, so
// every key sounds for -gate seconds.
//
//	a w s e d f t g y h u j k o l p ; '   notes
//	z x                                   octave down / up
//	1 2 3                                 chorus off / I / II
//	space                                 all notes off
//	q, Ctrl-C                             quit
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ebitengine/oto/v3"
	"golang.org/x/term"

	"github.com/cwbudde/algo-juno/juno/engine"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("junoplay", flag.ContinueOnError)
	rate := fs.Int("rate", 48000, "sample rate in Hz")
	poly := fs.Int("poly", 6, "voice count")
	bufferMs := fs.Int("buffer", 20, "audio buffer in milliseconds")
	patchPath := fs.String("patch", "", "patch dump file (25-byte records); first record is used")
	octave := fs.Int("octave", 4, "starting octave of the \"a\" key")
	gate := fs.Duration("gate", 400*time.Millisecond, "note length per key press")
	velocity := fs.Float64("velocity", 0.8, "note velocity 0..1")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("stdin is not a terminal")
	}

	log := newLogger(crlfWriter{os.Stderr}, *verbose)
	e, err := engine.New(
		engine.WithSampleRate(float64(*rate)),
		engine.WithPolyphony(*poly),
		engine.WithLogger(log),
	)
	if err != nil {
		return err
	}
	if *patchPath != "" {
		raw, err := os.ReadFile(*patchPath)
		if err != nil {
			return fmt.Errorf("failed to read patch: %w", err)
		}
		if err := e.LoadPatch(raw); err != nil {
			return err
		}
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   *rate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   time.Duration(*bufferMs) * time.Millisecond,
	})
	if err != nil {
		return fmt.Errorf("failed to open audio device: %w", err)
	}
	<-ready

	player := ctx.NewPlayer(newStream(e, *rate*(*bufferMs)/1000))
	player.Play()
	defer func() { _ = player.Close() }()

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to set raw mode: %w", err)
	}
	defer func() { _ = term.Restore(fd, oldState) }()

	c := newController(e, log, *octave, *gate, *velocity)
	log.Info("ready", "keys", strings.TrimSpace(noteKeys), "octave", *octave)
	return c.loop(os.Stdin)
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// crlfWriter turns line feeds into CR LF so log lines stay aligned while
// the terminal is in raw mode.
type crlfWriter struct{ w io.Writer }

func (c crlfWriter) Write(p []byte) (int, error) {
	if _, err := io.WriteString(c.w, strings.ReplaceAll(string(p), "\n", "\r\n")); err != nil {
		return 0, err
	}
	return len(p), nil
}
