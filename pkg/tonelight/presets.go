// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package tonelight

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// PresetSlot is one stored LED brightness combination
type PresetSlot struct {
	R       int `json:"r" cbor:"r"`
	G       int `json:"g" cbor:"g"`
	B       int `json:"b" cbor:"b"`
	IR      int `json:"ir" cbor:"ir"`
	W       int `json:"w" cbor:"w"`
	Channel int `json:"channel" cbor:"channel"`
}

// Sum returns the total brightness over all five channels
func (p PresetSlot) Sum() int {
	return p.R + p.G + p.B + p.IR + p.W
}

// Brightness returns the value of a named channel
func (p PresetSlot) Brightness(ch LEDChannel) int {
	switch ch {
	case ChannelRed:
		return p.R
	case ChannelGreen:
		return p.G
	case ChannelBlue:
		return p.B
	case ChannelWhite:
		return p.W
	case ChannelInfrared:
		return p.IR
	}
	return 0
}

// Fields renders the slot in the `led preset push` micro-format:
// r.<r> g.<g> b.<b> ir.<ir> w.<w> ch.<channel>
func (p PresetSlot) Fields() string {
	return fmt.Sprintf("r.%d g.%d b.%d ir.%d w.%d ch.%d", p.R, p.G, p.B, p.IR, p.W, p.Channel)
}

// PresetTable maps device slot index to its stored slot
type PresetTable map[int]PresetSlot

// Clone returns an independent copy of the table
func (t PresetTable) Clone() PresetTable {
	out := make(PresetTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// ParsePresetTable decodes the value of a led.presets line:
//
//	<index>:<r>.<g>.<b>.<ir>.<w>.<channel>;<index>:...
//
// The dot doubles as field separator, so only integer fields are
// supported. Entries without an integer index or with fewer than six
// integer fields are skipped; the returned error joins one
// ErrMalformedTelemetry per skipped entry and is never fatal. An entry
// with more than six fields keeps its first six and is reported with
// ErrFractionalPreset, since that is what a decimal value looks like on
// the wire.
func ParsePresetTable(raw string) (PresetTable, error) {
	table := make(PresetTable)
	var errs []error

	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		idx, slot, err := parsePresetEntry(entry)
		if err != nil {
			errs = append(errs, err)
			if !errors.Is(err, ErrFractionalPreset) {
				continue
			}
		}
		table[idx] = slot
	}

	return table, errors.Join(errs...)
}

func parsePresetEntry(entry string) (int, PresetSlot, error) {
	idxPart, valuesPart, ok := strings.Cut(entry, ":")
	if !ok {
		return 0, PresetSlot{}, fmt.Errorf("%w: preset entry %q has no index separator", ErrMalformedTelemetry, entry)
	}

	idx, err := strconv.Atoi(strings.TrimSpace(idxPart))
	if err != nil {
		return 0, PresetSlot{}, fmt.Errorf("%w: preset index %q is not an integer", ErrMalformedTelemetry, idxPart)
	}

	parts := strings.Split(valuesPart, ".")
	if len(parts) < PresetFieldCount {
		return 0, PresetSlot{}, fmt.Errorf("%w: preset %d has %d fields, want %d", ErrMalformedTelemetry, idx, len(parts), PresetFieldCount)
	}

	var nums [PresetFieldCount]int
	for i := 0; i < PresetFieldCount; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return 0, PresetSlot{}, fmt.Errorf("%w: preset %d field %d %q is not an integer", ErrMalformedTelemetry, idx, i, parts[i])
		}
		nums[i] = n
	}

	slot := PresetSlot{
		R:       nums[0],
		G:       nums[1],
		B:       nums[2],
		IR:      nums[3],
		W:       nums[4],
		Channel: nums[5],
	}
	if len(parts) > PresetFieldCount {
		return idx, slot, fmt.Errorf("%w: preset %d has %d fields", ErrFractionalPreset, idx, len(parts))
	}
	return idx, slot, nil
}

// FormatPresetTable encodes a table back into the led.presets wire form,
// ordered by index
func FormatPresetTable(t PresetTable) string {
	var b strings.Builder
	for i, idx := range t.Indices() {
		if i > 0 {
			b.WriteByte(';')
		}
		s := t[idx]
		fmt.Fprintf(&b, "%d:%d.%d.%d.%d.%d.%d", idx, s.R, s.G, s.B, s.IR, s.W, s.Channel)
	}
	return b.String()
}

// Indices returns the populated slot indices in ascending order
func (t PresetTable) Indices() []int {
	out := make([]int, 0, len(t))
	for k := range t {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
