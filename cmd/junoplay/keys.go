package main

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/cwbudde/algo-juno/juno/chorus"
)

const noteKeys = "awsedftgyhujkolp;'"

const (
	minOctave = -1
	maxOctave = 8
	tick      = 10 * time.Millisecond
)

// synth is the control surface the keyboard drives.
type synth interface {
	NoteOn(midiNote int, velocity float64)
	NoteOff(midiNote int)
	AllNotesOff()
	SetChorusMode(mode chorus.Mode)
}

// controller turns key presses into engine calls. Every call happens on
// the goroutine running loop, which keeps the engine single producer.
type controller struct {
	s        synth
	log      *slog.Logger
	octave   int
	gate     time.Duration
	velocity float64
	held     map[int]time.Time
}

func newController(s synth, log *slog.Logger, octave int, gate time.Duration, velocity float64) *controller {
	return &controller{
		s:        s,
		log:      log,
		octave:   min(max(octave, minOctave), maxOctave),
		gate:     gate,
		velocity: velocity,
		held:     make(map[int]time.Time),
	}
}

// noteFor returns the MIDI note of key at the current octave.
func (c *controller) noteFor(key byte) (int, bool) {
	i := strings.IndexByte(noteKeys, key)
	if i < 0 {
		return 0, false
	}
	n := (c.octave+1)*12 + i
	return n, n >= 0 && n <= 127
}

// handleKey applies one key press and reports whether to quit.
func (c *controller) handleKey(key byte, now time.Time) bool {
	if n, ok := c.noteFor(key); ok {
		if _, on := c.held[n]; on {
			c.s.NoteOff(n)
		}
		c.s.NoteOn(n, c.velocity)
		c.held[n] = now.Add(c.gate)
		c.log.Debug("note on", "note", n)
		return false
	}

	switch key {
	case 'q', 0x03:
		c.releaseAll()
		return true
	case ' ':
		c.releaseAll()
	case 'z':
		c.setOctave(c.octave - 1)
	case 'x':
		c.setOctave(c.octave + 1)
	case '1', '2', '3':
		mode := chorus.Mode(key - '1')
		c.s.SetChorusMode(mode)
		c.log.Info("chorus", "mode", mode)
	}
	return false
}

func (c *controller) setOctave(o int) {
	o = min(max(o, minOctave), maxOctave)
	if o != c.octave {
		c.octave = o
		c.log.Info("octave", "octave", o)
	}
}

func (c *controller) releaseAll() {
	c.s.AllNotesOff()
	clear(c.held)
}

// expire releases every note whose gate has run out.
func (c *controller) expire(now time.Time) {
	for n, until := range c.held {
		if !now.Before(until) {
			c.s.NoteOff(n)
			delete(c.held, n)
		}
	}
}

// loop reads keys from r until quit or EOF.
func (c *controller) loop(r io.Reader) error {
	keys := make(chan byte, 64)
	var readErr error
	go func() {
		defer close(keys)
		buf := make([]byte, 16)
		for {
			n, err := r.Read(buf)
			for _, b := range buf[:n] {
				keys <- b
			}
			if err != nil {
				readErr = err
				return
			}
		}
	}()

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case k, ok := <-keys:
			if !ok {
				c.releaseAll()
				if errors.Is(readErr, io.EOF) {
					return nil
				}
				return readErr
			}
			if c.handleKey(k, time.Now()) {
				return nil
			}
		case now := <-ticker.C:
			c.expire(now)
		}
	}
}
