// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package tonelight

import (
	"bytes"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// MaxLineLength bounds the carry-over buffer. A device that never sends a
// newline gets its output emitted in chunks of this size.
const MaxLineLength = 4096

// Framer splits an incoming byte stream into cleaned lines.
// A trailing partial line is carried over to the next Feed call.
type Framer struct {
	carry []byte
}

// NewFramer creates a new line framer
func NewFramer() *Framer {
	return &Framer{
		carry: make([]byte, 0, 256),
	}
}

// Feed appends a chunk read from the transport and returns every line it
// completed, in arrival order. Lines are split on \n or \r\n, stripped of
// terminal escape sequences and surrounding whitespace; empty lines are
// dropped.
func (f *Framer) Feed(chunk []byte) []string {
	f.carry = append(f.carry, chunk...)

	var lines []string
	for {
		idx := bytes.IndexByte(f.carry, '\n')
		if idx < 0 {
			break
		}
		if line, ok := cleanLine(f.carry[:idx]); ok {
			lines = append(lines, line)
		}
		f.carry = f.carry[idx+1:]
	}

	for len(f.carry) > MaxLineLength {
		if line, ok := cleanLine(f.carry[:MaxLineLength]); ok {
			lines = append(lines, line)
		}
		f.carry = f.carry[MaxLineLength:]
	}

	// Compact so the backing array doesn't grow without bound
	if cap(f.carry) > 4*MaxLineLength {
		f.carry = append(make([]byte, 0, 256), f.carry...)
	}

	return lines
}

// Pending returns the partial line waiting for its terminator
func (f *Framer) Pending() string {
	return string(f.carry)
}

// Reset discards any partial line
func (f *Framer) Reset() {
	f.carry = f.carry[:0]
}

// CleanLine strips escape sequences and whitespace from one raw line
func CleanLine(raw string) string {
	return strings.TrimSpace(ansi.Strip(raw))
}

func cleanLine(raw []byte) (string, bool) {
	line := CleanLine(string(bytes.TrimSuffix(raw, []byte{'\r'})))
	return line, line != ""
}
