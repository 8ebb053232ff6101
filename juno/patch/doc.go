// Package patch decodes and encodes the 25-byte hardware patch dump and
// maps a decoded Patch onto engine settings.
//
// Record layout:
//
//	byte  0      start marker 0xF0
//	byte  1      manufacturer ID 0x41
//	byte  2      low nibble: MIDI channel
//	byte  3      low 7 bits: patch slot
//	byte  4      unused
//	bytes 5..20  sixteen sliders, see Slider
//	byte  21     switch bank 1
//	byte  22     switch bank 2
//	byte  23     checksum over bytes 5..22
//	byte  24     end marker 0xF7
//
// Decoding is a pure function and safe for concurrent use.
package patch
