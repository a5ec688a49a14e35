package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/deepteams/av1/encoder"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    encoder.Mode
		wantErr bool
	}{
		{"rt", encoder.ModeRealtime, false},
		{"realtime", encoder.ModeRealtime, false},
		{"good", encoder.ModeGood, false},
		{"GOOD", encoder.ModeGood, false},
		{"best", encoder.ModeBest, false},
		{"fastest", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := parseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("parseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseContent(t *testing.T) {
	tests := []struct {
		in      string
		want    encoder.ContentType
		wantErr bool
	}{
		{"default", encoder.ContentDefault, false},
		{"", encoder.ContentDefault, false},
		{"screen", encoder.ContentScreen, false},
		{"graphics", encoder.ContentGraphicsAnimation, false},
		{"animation", encoder.ContentGraphicsAnimation, false},
		{"cartoon", 0, true},
	}
	for _, tt := range tests {
		got, err := parseContent(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseContent(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("parseContent(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPow2(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{1 << 23, "2^23"},
		{1 << 26, "2^26"},
		{1, "2^0"},
		{0, "0"},
		{100, "100"},
	}
	for _, tt := range tests {
		if got := pow2(tt.in); got != tt.want {
			t.Errorf("pow2(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplitMaskName(t *testing.T) {
	tests := []struct {
		mask int
		want string
	}{
		{0, "none"},
		{encoder.DisableAllSplit, "all"},
		{encoder.DisableAllInterSplit, "all-inter"},
		{encoder.DisableCompoundSplit, "compound"},
		{encoder.LastAndIntraSplitOnly, "all-but-last-and-intra"},
		{1 << encoder.ThrLast, "0x1"},
	}
	for _, tt := range tests {
		if got := splitMaskName(tt.mask); got != tt.want {
			t.Errorf("splitMaskName(%#x) = %q, want %q", tt.mask, got, tt.want)
		}
	}
}

func TestRunJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	err := run([]string{"-mode", "good", "-speed", "2", "-json"}, &buf)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	var r report
	if err := json.Unmarshal(buf.Bytes(), &r); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if r.Mode != "good" || r.Speed != 2 {
		t.Errorf("report header = %s/%d, want good/2", r.Mode, r.Speed)
	}
	if r.Width != 1920 || r.Height != 1080 {
		t.Errorf("report dimensions = %dx%d, want default 1920x1080", r.Width, r.Height)
	}
	// Good speed 2 at 1080p masks every split case.
	if r.Features.Partition.DisableSplitMask != encoder.DisableAllSplit {
		t.Errorf("split mask = %#x, want all-split", r.Features.Partition.DisableSplitMask)
	}
	if !r.Trellis {
		t.Error("trellis off for two-pass good speed 2")
	}
}

func TestRunTextOutput(t *testing.T) {
	var buf bytes.Buffer
	err := run([]string{"-mode", "rt", "-speed", "7", "-no-color"}, &buf)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"realtime speed 7",
		"fast diamond",
		"split cases priced out",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	tests := [][]string{
		{"-mode", "ludicrous"},
		{"-content", "cartoon"},
		{"-speed", "-1"},
		{"-pass", "3"},
		{"-w", "0"},
		{"positional"},
	}
	for _, args := range tests {
		var buf bytes.Buffer
		if err := run(args, &buf); err == nil {
			t.Errorf("run(%v) accepted invalid input", args)
		}
	}
}
