package cli

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/retroenv/gochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlags(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	os.Args = []string{"prog", "-ui", "headless", "pong.ch8"}

	opts, err := ParseFlags()
	assert.NoError(t, err)
	assert.Equal(t, "pong.ch8", opts.Input)
	assert.Equal(t, options.Headless, opts.Frontend)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Program
	}{
		{
			name: "default flags",
			args: []string{"pong.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Input: "pong.ch8"},
				Machine:    options.Machine{Hz: 60, Scale: 10},
			},
		},
		{
			name: "all flags",
			args: []string{"-ui", "Desktop", "-hz", "500", "-cycles", "1000", "-seed", "7",
				"-scale", "4", "-strict", "-debug", "-q", "pong.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Input: "pong.ch8"},
				Flags:      options.Flags{Frontend: options.Desktop, Debug: true, Quiet: true, Strict: true},
				Machine:    options.Machine{Hz: 500, Cycles: 1000, Seed: 7, Scale: 4},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse("prog", tt.args, &bytes.Buffer{})
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		usageError bool
		contains   string
	}{
		{"missing program", []string{"-q"}, true, "missing program file"},
		{"unknown flag", []string{"-nope", "pong.ch8"}, true, "nope"},
		{"flag after program", []string{"pong.ch8", "-q"}, true, "found after program file"},
		{"unsupported frontend", []string{"-ui", "vr", "pong.ch8"}, false, "unsupported frontend: vr"},
		{"zero rate", []string{"-hz", "0", "pong.ch8"}, false, "invalid cycle rate"},
		{"zero scale", []string{"-scale", "0", "pong.ch8"}, false, "invalid scale factor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("prog", tt.args, &bytes.Buffer{})
			assert.ErrorContains(t, err, tt.contains)

			var usageErr *UsageError
			assert.Equal(t, tt.usageError, errors.As(err, &usageErr))
		})
	}
}

func TestUsageErrorShowUsage(t *testing.T) {
	var buf bytes.Buffer
	_, err := Parse("prog", nil, &buf)

	var usageErr *UsageError
	assert.True(t, errors.As(err, &usageErr))

	usageErr.ShowUsage()
	assert.Contains(t, buf.String(), "usage: gochip8")
	assert.Contains(t, buf.String(), "-ui")
}
