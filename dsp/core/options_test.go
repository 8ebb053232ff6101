package core

import "testing"

func TestApplyProcessorOptions(t *testing.T) {
	def := DefaultProcessorConfig()
	tests := []struct {
		name string
		opts []ProcessorOption
		want ProcessorConfig
	}{
		{name: "defaults", want: def},
		{
			name: "set",
			opts: []ProcessorOption{WithSampleRate(96000), WithBlockSize(2048)},
			want: ProcessorConfig{SampleRate: 96000, BlockSize: 2048},
		},
		{
			name: "invalid ignored",
			opts: []ProcessorOption{WithSampleRate(0), WithBlockSize(-1), nil},
			want: def,
		},
		{
			name: "last wins",
			opts: []ProcessorOption{WithBlockSize(64), WithBlockSize(128)},
			want: ProcessorConfig{SampleRate: def.SampleRate, BlockSize: 128},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApplyProcessorOptions(tt.opts...); got != tt.want {
				t.Fatalf("ApplyProcessorOptions() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestProcessorConfigValidate(t *testing.T) {
	if err := DefaultProcessorConfig().Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if err := (ProcessorConfig{SampleRate: 0, BlockSize: 64}).Validate(); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
	if err := (ProcessorConfig{SampleRate: 44100}).Validate(); err == nil {
		t.Fatal("expected error for zero block size")
	}
}
