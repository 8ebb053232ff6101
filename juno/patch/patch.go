package patch

import "fmt"

const (
	RecordSize     = 25
	StartMarker    = 0xF0
	EndMarker      = 0xF7
	ManufacturerID = 0x41

	// dumpCommand fills the high nibble of byte 2 on encode.
	dumpCommand = 0x30

	sliderOffset   = 5
	switch1Offset  = 21
	switch2Offset  = 22
	checksumOffset = 23
)

// Slider indexes Patch.Sliders in record order.
type Slider int

const (
	LFORate Slider = iota
	LFODelay
	DCOLFO
	DCOPWM
	DCONoise
	VCFCutoff
	VCFResonance
	VCFEnvMod
	VCFLFO
	VCFKeyFollow
	VCALevel
	EnvAttack
	EnvDecay
	EnvSustain
	EnvRelease
	DCOSub

	NumSliders
)

var sliderNames = [NumSliders]string{
	"lfo_rate", "lfo_delay", "dco_lfo", "dco_pwm", "dco_noise",
	"vcf_cutoff", "vcf_resonance", "vcf_env_mod", "vcf_lfo", "vcf_key_follow",
	"vca_level", "env_attack", "env_decay", "env_sustain", "env_release", "dco_sub",
}

func (s Slider) String() string {
	if s >= 0 && s < NumSliders {
		return sliderNames[s]
	}
	return fmt.Sprintf("Slider(%d)", int(s))
}

// Switches is the decoded front-panel switch bank. Field values are
// logical; the inverted hardware bits are handled by decode and encode.
type Switches struct {
	Range16     bool
	Range8      bool
	Range4      bool
	Pulse       bool
	Saw         bool
	ChorusOn    bool // stored inverted: bit clear means on
	ChorusII    bool // stored inverted: bit clear means level II
	PWMFromLFO  bool // stored inverted: bit clear means LFO
	EnvPositive bool // stored inverted: bit clear means positive
	VCAEnv      bool // stored inverted: bit clear means envelope
	HPF         uint8
}

// Switch bank 1 bits.
const (
	bitRange16  = 1 << 0
	bitRange8   = 1 << 1
	bitRange4   = 1 << 2
	bitPulse    = 1 << 3
	bitSaw      = 1 << 4
	bitChorusOn = 1 << 5
	bitChorusII = 1 << 6
)

// Switch bank 2 bits.
const (
	bitPWMManual   = 1 << 0
	bitEnvNegative = 1 << 1
	bitVCAGate     = 1 << 2
	hpfShift       = 3
	hpfMask        = 0x03
)

func decodeSwitches(sw1, sw2 byte) Switches {
	return Switches{
		Range16:     sw1&bitRange16 != 0,
		Range8:      sw1&bitRange8 != 0,
		Range4:      sw1&bitRange4 != 0,
		Pulse:       sw1&bitPulse != 0,
		Saw:         sw1&bitSaw != 0,
		ChorusOn:    sw1&bitChorusOn == 0,
		ChorusII:    sw1&bitChorusII == 0,
		PWMFromLFO:  sw2&bitPWMManual == 0,
		EnvPositive: sw2&bitEnvNegative == 0,
		VCAEnv:      sw2&bitVCAGate == 0,
		HPF:         (sw2 >> hpfShift) & hpfMask,
	}
}

func (s Switches) encode() (sw1, sw2 byte) {
	set := func(b *byte, cond bool, bit byte) {
		if cond {
			*b |= bit
		}
	}
	set(&sw1, s.Range16, bitRange16)
	set(&sw1, s.Range8, bitRange8)
	set(&sw1, s.Range4, bitRange4)
	set(&sw1, s.Pulse, bitPulse)
	set(&sw1, s.Saw, bitSaw)
	set(&sw1, !s.ChorusOn, bitChorusOn)
	set(&sw1, !s.ChorusII, bitChorusII)
	set(&sw2, !s.PWMFromLFO, bitPWMManual)
	set(&sw2, !s.EnvPositive, bitEnvNegative)
	set(&sw2, !s.VCAEnv, bitVCAGate)
	sw2 |= (s.HPF & hpfMask) << hpfShift
	return sw1, sw2
}

// Patch is one decoded program.
type Patch struct {
	Sliders  [NumSliders]uint8
	Switches Switches

	Slot          uint8
	Channel       uint8
	ChecksumValid bool
}

// Slider returns the raw 0..127 value of s.
func (p Patch) Slider(s Slider) uint8 { return p.Sliders[s] }

// Checksum returns the checksum byte for the data bytes 5..22 of record.
// record must hold at least 23 bytes.
func Checksum(record []byte) byte {
	sum := 0
	for _, b := range record[sliderOffset:checksumOffset] {
		sum += int(b & 0x7F)
	}
	return byte((128 - sum&0x7F) & 0x7F)
}

// checksumOK also rejects data bytes with the high bit set, which are not
// legal in a dump and would otherwise escape the 7-bit sum.
func checksumOK(record []byte) bool {
	for _, b := range record[sliderOffset:checksumOffset] {
		if b&0x80 != 0 {
			return false
		}
	}
	return Checksum(record) == record[checksumOffset]&0x7F
}

// Decode parses one record. Marker and manufacturer errors fail the
// decode; a checksum mismatch only clears ChecksumValid.
func Decode(record []byte) (Patch, error) {
	if len(record) != RecordSize {
		return Patch{}, fmt.Errorf("%w: got %d", ErrLength, len(record))
	}
	if record[0] != StartMarker {
		return Patch{}, fmt.Errorf("%w: 0x%02X", ErrStartMarker, record[0])
	}
	if record[RecordSize-1] != EndMarker {
		return Patch{}, fmt.Errorf("%w: 0x%02X", ErrEndMarker, record[RecordSize-1])
	}
	if record[1] != ManufacturerID {
		return Patch{}, fmt.Errorf("%w: 0x%02X", ErrManufacturer, record[1])
	}

	p := Patch{
		Channel:       record[2] & 0x0F,
		Slot:          record[3] & 0x7F,
		ChecksumValid: checksumOK(record),
		Switches:      decodeSwitches(record[switch1Offset], record[switch2Offset]),
	}
	for i := range p.Sliders {
		p.Sliders[i] = record[sliderOffset+i] & 0x7F
	}
	return p, nil
}

// DecodeAll parses a buffer of concatenated records in order. The first
// failing record aborts the batch.
func DecodeAll(buf []byte) ([]Patch, error) {
	if len(buf)%RecordSize != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrBatchLength, len(buf))
	}
	out := make([]Patch, 0, len(buf)/RecordSize)
	for off := 0; off < len(buf); off += RecordSize {
		p, err := Decode(buf[off : off+RecordSize])
		if err != nil {
			return nil, fmt.Errorf("patch: record %d: %w", off/RecordSize, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// Append encodes p as a record with a correct checksum and appends it to
// dst. Slider values are truncated to 7 bits.
func Append(dst []byte, p Patch) []byte {
	var rec [RecordSize]byte
	rec[0] = StartMarker
	rec[1] = ManufacturerID
	rec[2] = dumpCommand | p.Channel&0x0F
	rec[3] = p.Slot & 0x7F
	for i, v := range p.Sliders {
		rec[sliderOffset+i] = v & 0x7F
	}
	rec[switch1Offset], rec[switch2Offset] = p.Switches.encode()
	rec[checksumOffset] = Checksum(rec[:])
	rec[RecordSize-1] = EndMarker
	return append(dst, rec[:]...)
}

// Encode returns p as a single record.
func Encode(p Patch) []byte {
	return Append(make([]byte, 0, RecordSize), p)
}
