package patch_test

import (
	"fmt"

	"github.com/cwbudde/algo-juno/juno/param"
	"github.com/cwbudde/algo-juno/juno/patch"
)

func ExampleDecode() {
	var p patch.Patch
	p.Sliders[patch.VCFCutoff] = 127
	p.Switches.Saw = true
	p.Switches.ChorusOn = true

	rec := patch.Encode(p)
	got, err := patch.Decode(rec)
	if err != nil {
		panic(err)
	}
	s := got.Settings(param.DefaultVoiceParameters())
	fmt.Println(got.ChecksumValid, s.Chorus, s.Voice.SawOn)
	fmt.Printf("%.0f Hz\n", s.Voice.CutoffHz)
	// Output:
	// true I true
	// 15000 Hz
}
