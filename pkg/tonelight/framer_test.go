// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package tonelight

import (
	"strings"
	"testing"
)

func TestFramer_SplitsAcrossReads(t *testing.T) {
	f := NewFramer()

	lines := f.Feed([]byte("[API] a=1\n[API] b"))
	if len(lines) != 1 || lines[0] != "[API] a=1" {
		t.Fatalf("first Feed() = %q, want [\"[API] a=1\"]", lines)
	}
	if f.Pending() != "[API] b" {
		t.Errorf("Pending() = %q, want %q", f.Pending(), "[API] b")
	}

	lines = f.Feed([]byte("=2\n"))
	if len(lines) != 1 || lines[0] != "[API] b=2" {
		t.Fatalf("second Feed() = %q, want [\"[API] b=2\"]", lines)
	}
	if f.Pending() != "" {
		t.Errorf("Pending() = %q, want empty", f.Pending())
	}
}

func TestFramer_DecodesTwoPatchesAcrossReads(t *testing.T) {
	f := NewFramer()
	var patches []string
	for _, chunk := range []string{"[API] a=1\n[API] b", "=2\n"} {
		for _, line := range f.Feed([]byte(chunk)) {
			msg, err := DecodeLine(line)
			if err != nil {
				t.Fatalf("DecodeLine(%q) error: %v", line, err)
			}
			patches = append(patches, msg.Patch.String())
		}
	}
	if len(patches) != 2 || patches[0] != "a=1" || patches[1] != "b=2" {
		t.Errorf("patches = %q, want [a=1 b=2]", patches)
	}
}

func TestFramer_CleansLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"crlf", "one\r\ntwo\r\n", []string{"one", "two"}},
		{"ansi colour", "\x1b[32m[INFO] ready\x1b[0m\n", []string{"[INFO] ready"}},
		{"ansi bold colour", "\x1b[1;31m[ERROR] stall\x1b[0m\r\n", []string{"[ERROR] stall"}},
		{"whitespace", "   padded   \n", []string{"padded"}},
		{"empty lines dropped", "\n\r\n  \n\x1b[0m\nlast\n", []string{"last"}},
		{"partial kept", "done\npart", []string{"done"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewFramer().Feed([]byte(tt.input))
			if len(got) != len(tt.want) {
				t.Fatalf("Feed() = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFramer_ByteAtATime(t *testing.T) {
	f := NewFramer()
	input := "[API] motor.state=IDLE\r\n[INFO] hello\n"
	var got []string
	for i := 0; i < len(input); i++ {
		got = append(got, f.Feed([]byte{input[i]})...)
	}
	if len(got) != 2 || got[0] != "[API] motor.state=IDLE" || got[1] != "[INFO] hello" {
		t.Errorf("lines = %q", got)
	}
}

func TestFramer_SplitMultibyteRune(t *testing.T) {
	f := NewFramer()
	input := []byte("temp 21°C\n")
	split := strings.Index(string(input), "°") + 1

	if lines := f.Feed(input[:split]); len(lines) != 0 {
		t.Fatalf("unexpected lines %q", lines)
	}
	lines := f.Feed(input[split:])
	if len(lines) != 1 || lines[0] != "temp 21°C" {
		t.Errorf("lines = %q, want [\"temp 21°C\"]", lines)
	}
}

func TestFramer_BoundsCarryBuffer(t *testing.T) {
	f := NewFramer()
	lines := f.Feed([]byte(strings.Repeat("x", MaxLineLength+10)))
	if len(lines) != 1 || len(lines[0]) != MaxLineLength {
		t.Fatalf("expected one line of %d bytes, got %d lines", MaxLineLength, len(lines))
	}
	if len(f.Pending()) != 10 {
		t.Errorf("len(Pending()) = %d, want 10", len(f.Pending()))
	}

	f.Reset()
	if f.Pending() != "" {
		t.Errorf("Pending() after Reset = %q", f.Pending())
	}
}
