// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package tonelight

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedTelemetry is returned for an [API] line or preset entry
	// that cannot be turned into a patch. It is never fatal.
	ErrMalformedTelemetry = errors.New("malformed telemetry")

	// ErrFractionalPreset flags a preset entry carrying more fields than the
	// wire format can express, usually a decimal value
	ErrFractionalPreset = errors.New("fractional preset values are not supported")
)

// LineKind classifies a cleaned line
type LineKind uint8

const (
	LineLog LineKind = iota
	LineTelemetry
)

// Patch is one decoded key path and value to merge into the device state.
// When Presets is non-nil the patch replaces led.presets wholesale and
// Value is unused.
type Patch struct {
	Path    []string
	Value   Value
	Presets PresetTable
}

// Key returns the dotted key path
func (p Patch) Key() string {
	return strings.Join(p.Path, ".")
}

// IsPresetTable reports whether the patch replaces the preset table
func (p Patch) IsPresetTable() bool {
	return p.Presets != nil
}

// String renders the patch as key=value
func (p Patch) String() string {
	if p.IsPresetTable() {
		return p.Key() + "=" + FormatPresetTable(p.Presets)
	}
	return p.Key() + "=" + p.Value.String()
}

// Message is the result of decoding one cleaned line
type Message struct {
	Raw      string
	Kind     LineKind
	Severity Severity

	// Patch is set for well-formed telemetry lines
	Patch *Patch

	// Warnings holds non-fatal problems, such as skipped preset entries
	Warnings error
}

// DecodeLine classifies and parses one cleaned line.
// Lines without the [API] prefix are log lines and carry no patch. A
// telemetry line that cannot be parsed returns the message (so the raw
// line still reaches the log) together with an ErrMalformedTelemetry.
func DecodeLine(line string) (Message, error) {
	msg := Message{
		Raw:      line,
		Severity: ClassifySeverity(line),
	}

	if !strings.HasPrefix(line, APIPrefix) {
		msg.Kind = LineLog
		return msg, nil
	}
	msg.Kind = LineTelemetry

	body := strings.TrimSpace(strings.TrimPrefix(line, APIPrefix))
	key, raw, ok := strings.Cut(body, "=")
	if !ok {
		return msg, fmt.Errorf("%w: missing '=' in %q", ErrMalformedTelemetry, body)
	}
	key = strings.TrimSpace(key)
	raw = strings.TrimSpace(raw)

	path, err := splitKeyPath(key)
	if err != nil {
		return msg, err
	}

	if key == PresetsKey {
		table, warn := ParsePresetTable(raw)
		msg.Patch = &Patch{Path: path, Presets: table}
		msg.Warnings = warn
		return msg, nil
	}

	msg.Patch = &Patch{
		Path:  swapLEDChannels(path),
		Value: ParseValue(raw),
	}
	return msg, nil
}

func splitKeyPath(key string) ([]string, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: empty key", ErrMalformedTelemetry)
	}
	path := strings.Split(key, ".")
	for _, seg := range path {
		if seg == "" {
			return nil, fmt.Errorf("%w: empty segment in key %q", ErrMalformedTelemetry, key)
		}
	}
	return path, nil
}

// The firmware reports its white channel under "ir" and its infrared
// channel under "w". Only the first matching segment is swapped.
func swapLEDChannels(path []string) []string {
	if len(path) < 2 || path[0] != SectionLED {
		return path
	}
	for i := 1; i < len(path); i++ {
		switch path[i] {
		case string(ChannelWhite):
			path[i] = string(ChannelInfrared)
			return path
		case string(ChannelInfrared):
			path[i] = string(ChannelWhite)
			return path
		}
	}
	return path
}

// SwapLEDKey applies the firmware's w/ir label correction to a dotted key
func SwapLEDKey(key string) string {
	path := strings.Split(key, ".")
	return strings.Join(swapLEDChannels(path), ".")
}
