package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	pickleerrors "github.com/wippyai/pickle/errors"
	"github.com/wippyai/pickle/render"
)

// [1, 2] at protocol 5
var listTape = []byte{0x80, 0x05, ']', 0x94, '(', 'K', 0x01, 'K', 0x02, 'e', '.'}

func TestRun_Formats(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{formatText, "[\n  1,\n  2,\n]\n"},
		{formatYAML, "- 1\n- 2\n"},
		{formatCBOR, "\x82\x01\x02"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.Format = tt.format
			var out bytes.Buffer
			if err := run(&out, listTape, cfg, nil, render.PlainStyle()); err != nil {
				t.Fatalf("run: %v", err)
			}
			if out.String() != tt.want {
				t.Errorf("output = %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestRun_Disassembly(t *testing.T) {
	cfg := defaultConfig()
	cfg.Format = formatDis
	var out bytes.Buffer
	if err := run(&out, listTape, cfg, nil, render.PlainStyle()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "APPENDS") || !strings.HasSuffix(out.String(), "= 4\n") {
		t.Errorf("output:\n%s", out.String())
	}
}

func TestRun_Buffers(t *testing.T) {
	cfg := defaultConfig()
	var out bytes.Buffer
	tape := []byte{0x80, 0x05, 0x97, 0x98, '.'}
	if err := run(&out, tape, cfg, [][]byte{[]byte("oob")}, render.PlainStyle()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.String() != "b'oob'\n" {
		t.Errorf("output = %q", out.String())
	}

	out.Reset()
	err := run(&out, tape, cfg, nil, render.PlainStyle())
	if !errors.Is(err, pickleerrors.ErrMissingBuffer) {
		t.Errorf("err = %v", err)
	}
}

func TestRun_DecodeError(t *testing.T) {
	cfg := defaultConfig()
	var out bytes.Buffer
	err := run(&out, []byte{0x80, 0x05, 'c'}, cfg, nil, render.PlainStyle())
	if !errors.Is(err, pickleerrors.ErrUnsupportedOpcode) {
		t.Errorf("err = %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("partial output written: %q", out.String())
	}
}
