// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package tonelight

import (
	"errors"
	"testing"
)

// ============================================================
// Value Coercion Tests
// ============================================================

func TestParseValue(t *testing.T) {
	tests := []struct {
		raw      string
		wantKind Kind
		want     string
	}{
		{"true", KindBool, "true"},
		{"false", KindBool, "false"},
		{"TRUE", KindString, "TRUE"},
		{"500", KindNumber, "500"},
		{"-12.5", KindNumber, "-12.5"},
		{"0.125", KindNumber, "0.125"},
		{"1e3", KindNumber, "1000"},
		{"IDLE", KindString, "IDLE"},
		{"NaN", KindString, "NaN"},
		{"", KindString, ""},
		{"12abc", KindString, "12abc"},
		{"inf", KindString, "inf"},
		{"Infinity", KindString, "Infinity"},
		{"-Inf", KindString, "-Inf"},
		{"0x1p4", KindString, "0x1p4"},
		{"1_000", KindString, "1_000"},
		{"1e400", KindString, "1e400"},
		{"+7", KindNumber, "7"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			v := ParseValue(tt.raw)
			if v.Kind() != tt.wantKind {
				t.Errorf("Kind() = %v, want %v", v.Kind(), tt.wantKind)
			}
			if v.String() != tt.want {
				t.Errorf("String() = %q, want %q", v.String(), tt.want)
			}
		})
	}
}

func TestValueMarshalJSON(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Bool(true), "true"},
		{Number(42), "42"},
		{String("IDLE"), `"IDLE"`},
	}
	for _, tt := range tests {
		got, err := tt.v.MarshalJSON()
		if err != nil {
			t.Fatalf("MarshalJSON() error: %v", err)
		}
		if string(got) != tt.want {
			t.Errorf("MarshalJSON() = %s, want %s", got, tt.want)
		}
	}
}

// ============================================================
// Line Decoding Tests
// ============================================================

func TestDecodeLine_LogLine(t *testing.T) {
	msg, err := DecodeLine("[WARN] battery low")
	if err != nil {
		t.Fatalf("DecodeLine error: %v", err)
	}
	if msg.Kind != LineLog {
		t.Errorf("Kind = %v, want LineLog", msg.Kind)
	}
	if msg.Patch != nil {
		t.Errorf("Patch = %v, want nil", msg.Patch)
	}
	if msg.Severity != SeverityWarn {
		t.Errorf("Severity = %v, want WARN", msg.Severity)
	}
	if msg.Raw != "[WARN] battery low" {
		t.Errorf("Raw = %q", msg.Raw)
	}
}

func TestDecodeLine_Telemetry(t *testing.T) {
	tests := []struct {
		line    string
		wantKey string
		want    Value
	}{
		{"[API] motor.state=IDLE", "motor.state", String("IDLE")},
		{"[API] motor.travel_steps=1600", "motor.travel_steps", Number(1600)},
		{"[API] shutter.triplet=true", "shutter.triplet", Bool(true)},
		{"[API]   motor.travel_mm = 36.5 ", "motor.travel_mm", Number(36.5)},
		{"[API] device.name=a=b", "device.name", String("a=b")},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			msg, err := DecodeLine(tt.line)
			if err != nil {
				t.Fatalf("DecodeLine error: %v", err)
			}
			if msg.Kind != LineTelemetry {
				t.Fatalf("Kind = %v, want LineTelemetry", msg.Kind)
			}
			if msg.Patch == nil {
				t.Fatal("Patch is nil")
			}
			if msg.Patch.Key() != tt.wantKey {
				t.Errorf("Key() = %q, want %q", msg.Patch.Key(), tt.wantKey)
			}
			if !msg.Patch.Value.Equal(tt.want) {
				t.Errorf("Value = %v (%v), want %v (%v)", msg.Patch.Value, msg.Patch.Value.Kind(), tt.want, tt.want.Kind())
			}
		})
	}
}

func TestDecodeLine_Malformed(t *testing.T) {
	tests := []string{
		"[API] motor.state",
		"[API] =5",
		"[API] led..w=3",
	}

	for _, line := range tests {
		t.Run(line, func(t *testing.T) {
			msg, err := DecodeLine(line)
			if !errors.Is(err, ErrMalformedTelemetry) {
				t.Errorf("error = %v, want ErrMalformedTelemetry", err)
			}
			if msg.Patch != nil {
				t.Errorf("Patch = %v, want nil", msg.Patch)
			}
			if msg.Raw != line {
				t.Errorf("Raw = %q, want the original line", msg.Raw)
			}
		})
	}
}

func TestDecodeLine_SwapsWhiteAndInfrared(t *testing.T) {
	tests := []struct {
		line    string
		wantKey string
	}{
		{"[API] led.w=500", "led.ir"},
		{"[API] led.ir=200", "led.w"},
		{"[API] led.r=10", "led.r"},
		{"[API] led.white_level=3", "led.white_level"},
		{"[API] motor.w=1", "motor.w"},
		{"[API] led.page.w=4", "led.page.ir"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			msg, err := DecodeLine(tt.line)
			if err != nil {
				t.Fatalf("DecodeLine error: %v", err)
			}
			if msg.Patch.Key() != tt.wantKey {
				t.Errorf("Key() = %q, want %q", msg.Patch.Key(), tt.wantKey)
			}
		})
	}
}

func TestSwapLEDKey(t *testing.T) {
	if got := SwapLEDKey("led.w"); got != "led.ir" {
		t.Errorf("SwapLEDKey(led.w) = %q", got)
	}
	if got := SwapLEDKey("led.ir"); got != "led.w" {
		t.Errorf("SwapLEDKey(led.ir) = %q", got)
	}
	if got := SwapLEDKey("shutter.fps"); got != "shutter.fps" {
		t.Errorf("SwapLEDKey(shutter.fps) = %q", got)
	}
}

// ============================================================
// Preset Table Tests
// ============================================================

func TestDecodeLine_PresetTable(t *testing.T) {
	msg, err := DecodeLine("[API] led.presets=0:100.200.300.0.0.0;1:0.0.0.0.0.1")
	if err != nil {
		t.Fatalf("DecodeLine error: %v", err)
	}
	if msg.Warnings != nil {
		t.Errorf("Warnings = %v, want nil", msg.Warnings)
	}
	if msg.Patch == nil || !msg.Patch.IsPresetTable() {
		t.Fatalf("Patch = %v, want a preset table", msg.Patch)
	}

	want := PresetTable{
		0: {R: 100, G: 200, B: 300, IR: 0, W: 0, Channel: 0},
		1: {R: 0, G: 0, B: 0, IR: 0, W: 0, Channel: 1},
	}
	if len(msg.Patch.Presets) != len(want) {
		t.Fatalf("len(Presets) = %d, want %d", len(msg.Patch.Presets), len(want))
	}
	for idx, slot := range want {
		if got := msg.Patch.Presets[idx]; got != slot {
			t.Errorf("Presets[%d] = %+v, want %+v", idx, got, slot)
		}
	}
}

func TestParsePresetTable_SkipsMalformedEntries(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantIndices []int
		wantSkipped int
	}{
		{"four fields", "0:1.2.3.4;1:5.5.5.5.5.1", []int{1}, 1},
		{"bad index", "x:1.2.3.4.5.6;2:1.1.1.1.1.2", []int{2}, 1},
		{"missing colon", "123456;3:1.1.1.1.1.3", []int{3}, 1},
		{"non numeric field", "0:1.2.a.4.5.6", []int{}, 1},
		{"empty entries", ";;4:0.0.0.0.0.0;", []int{4}, 0},
		{"out of order", "7:1.1.1.1.1.7;2:2.2.2.2.2.2", []int{2, 7}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := ParsePresetTable(tt.raw)
			indices := table.Indices()
			if len(indices) != len(tt.wantIndices) {
				t.Fatalf("Indices() = %v, want %v", indices, tt.wantIndices)
			}
			for i := range indices {
				if indices[i] != tt.wantIndices[i] {
					t.Errorf("Indices() = %v, want %v", indices, tt.wantIndices)
				}
			}
			skipped := 0
			if err != nil {
				skipped = len(unwrapJoined(err))
				if !errors.Is(err, ErrMalformedTelemetry) {
					t.Errorf("error = %v, want ErrMalformedTelemetry", err)
				}
			}
			if skipped != tt.wantSkipped {
				t.Errorf("skipped = %d, want %d (%v)", skipped, tt.wantSkipped, err)
			}
		})
	}
}

func TestParsePresetTable_FlagsFractionalValues(t *testing.T) {
	table, err := ParsePresetTable("0:100.5.200.300.0.0.0")
	if !errors.Is(err, ErrFractionalPreset) {
		t.Fatalf("error = %v, want ErrFractionalPreset", err)
	}
	if errors.Is(err, ErrMalformedTelemetry) {
		t.Errorf("fractional entry should not count as malformed")
	}
	want := PresetSlot{R: 100, G: 5, B: 200, IR: 300, W: 0, Channel: 0}
	if table[0] != want {
		t.Errorf("table[0] = %+v, want %+v", table[0], want)
	}
}

func TestFormatPresetTable(t *testing.T) {
	table := PresetTable{
		3: {R: 1, G: 2, B: 3, IR: 4, W: 5, Channel: 6},
		0: {R: 100, G: 200, B: 300},
	}
	want := "0:100.200.300.0.0.0;3:1.2.3.4.5.6"
	if got := FormatPresetTable(table); got != want {
		t.Errorf("FormatPresetTable() = %q, want %q", got, want)
	}

	parsed, err := ParsePresetTable(want)
	if err != nil {
		t.Fatalf("ParsePresetTable error: %v", err)
	}
	for idx, slot := range table {
		if parsed[idx] != slot {
			t.Errorf("parsed[%d] = %+v, want %+v", idx, parsed[idx], slot)
		}
	}
}

func TestClassifySeverity(t *testing.T) {
	tests := []struct {
		line string
		want Severity
	}{
		{"[ERROR] stall detected", SeverityError},
		{"[WARN] endstop", SeverityWarn},
		{"[API] a=1", SeverityAPI},
		{"[INFO] boot", SeverityInfo},
		{"[DEBUG] tick", SeverityDebug},
		{"[VERBOSE] step", SeverityVerbose},
		{"plain output", SeverityNone},
	}
	for _, tt := range tests {
		if got := ClassifySeverity(tt.line); got != tt.want {
			t.Errorf("ClassifySeverity(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}
