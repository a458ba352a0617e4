// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package tonelight

import (
	"encoding/json"
	"reflect"
	"testing"
)

func mustPatch(t *testing.T, line string) Patch {
	t.Helper()
	msg, err := DecodeLine(line)
	if err != nil {
		t.Fatalf("DecodeLine(%q) error: %v", line, err)
	}
	if msg.Patch == nil {
		t.Fatalf("DecodeLine(%q) produced no patch", line)
	}
	return *msg.Patch
}

func applyLines(t *testing.T, s State, lines ...string) State {
	t.Helper()
	for _, line := range lines {
		s = s.Apply(mustPatch(t, line))
	}
	return s
}

func TestState_NestedAssignment(t *testing.T) {
	s := applyLines(t, State{},
		"[API] motor.state=IDLE",
		"[API] motor.travel_steps=1600",
		"[API] shutter.triplet=false",
		"[API] debug.level=info",
	)

	if got := s.MotorState(); got != MotorIdle {
		t.Errorf("MotorState() = %q, want IDLE", got)
	}
	if n, ok := s.Number("motor.travel_steps"); !ok || n != 1600 {
		t.Errorf("Number(motor.travel_steps) = %v, %v", n, ok)
	}
	if b, ok := s.Flag("shutter.triplet"); !ok || b {
		t.Errorf("Flag(shutter.triplet) = %v, %v", b, ok)
	}
	if got := s.DebugLevel(); got != DebugInfo {
		t.Errorf("DebugLevel() = %q, want info", got)
	}
	want := []string{"debug", "motor", "shutter"}
	if got := s.Sections(); !reflect.DeepEqual(got, want) {
		t.Errorf("Sections() = %v, want %v", got, want)
	}
}

func TestState_FieldSwap(t *testing.T) {
	s := applyLines(t, State{}, "[API] led.w=500", "[API] led.ir=200")

	if n, _ := s.Number("led.ir"); n != 500 {
		t.Errorf("led.ir = %v, want 500", n)
	}
	if n, _ := s.Number("led.w"); n != 200 {
		t.Errorf("led.w = %v, want 200", n)
	}
}

func TestState_IdempotentMerge(t *testing.T) {
	base := applyLines(t, State{}, "[API] motor.state=IDLE", "[API] led.r=5")
	p := mustPatch(t, "[API] motor.jog_steps=40")

	once := base.Apply(p)
	twice := once.Apply(p)

	if !reflect.DeepEqual(once.Flatten(), twice.Flatten()) {
		t.Errorf("applying twice changed the state:\n once  %v\n twice %v", once.Flatten(), twice.Flatten())
	}
}

func TestState_OrderSensitivity(t *testing.T) {
	forward := applyLines(t, State{}, "[API] motor.state=IDLE", "[API] motor.state=MOVING_FWD")
	if got := forward.MotorState(); got != MotorMovingFwd {
		t.Errorf("MotorState() = %q, want MOVING_FWD", got)
	}

	reversed := applyLines(t, State{}, "[API] motor.state=MOVING_FWD", "[API] motor.state=IDLE")
	if got := reversed.MotorState(); got != MotorIdle {
		t.Errorf("MotorState() = %q, want IDLE", got)
	}
}

func TestState_SnapshotsAreImmutable(t *testing.T) {
	before := applyLines(t, State{}, "[API] led.r=1")
	after := before.Apply(mustPatch(t, "[API] led.r=2"))

	if n, _ := before.Number("led.r"); n != 1 {
		t.Errorf("old snapshot led.r = %v, want 1", n)
	}
	if n, _ := after.Number("led.r"); n != 2 {
		t.Errorf("new snapshot led.r = %v, want 2", n)
	}
}

func TestState_OverwritesLeafWithBranch(t *testing.T) {
	s := applyLines(t, State{}, "[API] device=toneLight", "[API] device.mode=LED_CONTROL")
	if got := s.IOMode(); got != IOModeLED {
		t.Errorf("IOMode() = %q, want LED_CONTROL", got)
	}

	s = applyLines(t, s, "[API] device=plain")
	if v, ok := s.Text("device"); !ok || v != "plain" {
		t.Errorf("Text(device) = %q, %v", v, ok)
	}
}

func TestState_PresetTableReplacesWholesale(t *testing.T) {
	s := applyLines(t, State{},
		"[API] led.r=7",
		"[API] led.presets=0:1.1.1.1.1.0;1:2.2.2.2.2.1",
		"[API] led.presets=5:9.9.9.9.9.5",
	)

	presets := s.Presets()
	if len(presets) != 1 {
		t.Fatalf("len(Presets()) = %d, want 1 (%v)", len(presets), presets)
	}
	if presets[5].R != 9 || presets[5].Channel != 5 {
		t.Errorf("Presets()[5] = %+v", presets[5])
	}
	if n, _ := s.Number("led.r"); n != 7 {
		t.Errorf("led.r = %v, want 7 (unrelated key lost)", n)
	}

	// Callers get a copy
	presets[5] = PresetSlot{}
	if s.Presets()[5].R != 9 {
		t.Error("mutating Presets() result changed the snapshot")
	}
}

func TestState_PresetSlotPatchUpdatesTable(t *testing.T) {
	s := applyLines(t, State{},
		"[API] led.presets=0:1.1.1.1.1.0;1:2.2.2.2.2.1",
		"[API] led.presets.3=100.200.300.0.0.2",
	)

	presets := s.Presets()
	if len(presets) != 3 {
		t.Fatalf("len(Presets()) = %d, want 3 (%v)", len(presets), presets)
	}
	want := PresetSlot{R: 100, G: 200, B: 300, Channel: 2}
	if presets[3] != want {
		t.Errorf("Presets()[3] = %+v, want %+v", presets[3], want)
	}
	if presets[1].R != 2 {
		t.Errorf("Presets()[1] = %+v, existing slot lost", presets[1])
	}

	// A value that is not a slot falls back to the plain overwrite
	s = applyLines(t, s, "[API] led.presets.4=oops")
	if s.Presets() != nil {
		t.Error("unparseable slot patch should replace the table with a branch")
	}
	if v, ok := s.Text("led.presets.4"); !ok || v != "oops" {
		t.Errorf("Text(led.presets.4) = %q, %v", v, ok)
	}
}

func TestState_FlattenAndJSON(t *testing.T) {
	s := applyLines(t, State{},
		"[API] motor.state=IDLE",
		"[API] led.presets=0:1.2.3.4.5.0",
		"[API] shutter.fps=2",
	)

	want := []Entry{
		{Key: "led.presets", Value: "0:1.2.3.4.5.0"},
		{Key: "motor.state", Value: "IDLE"},
		{Key: "shutter.fps", Value: "2"},
	}
	if got := s.Flatten(); !reflect.DeepEqual(got, want) {
		t.Errorf("Flatten() = %v, want %v", got, want)
	}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("json.Marshal error: %v", err)
	}
	var decoded map[string]map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal error: %v (%s)", err, data)
	}
	if decoded["motor"]["state"] != "IDLE" {
		t.Errorf("motor.state = %v", decoded["motor"]["state"])
	}
	if decoded["shutter"]["fps"] != float64(2) {
		t.Errorf("shutter.fps = %v", decoded["shutter"]["fps"])
	}

	empty, _ := json.Marshal(State{})
	if string(empty) != "{}" {
		t.Errorf("empty state JSON = %s, want {}", empty)
	}
}

func TestStore_ApplyAndSnapshot(t *testing.T) {
	st := NewStore()
	if !st.Snapshot().IsEmpty() {
		t.Fatal("new store should be empty")
	}

	first := st.Snapshot()
	st.Apply(mustPatch(t, "[API] motor.state=IDLE"))

	if !first.IsEmpty() {
		t.Error("earlier snapshot changed after Apply")
	}
	if st.Snapshot().MotorState() != MotorIdle {
		t.Errorf("MotorState() = %q", st.Snapshot().MotorState())
	}
	if st.Version() != 1 {
		t.Errorf("Version() = %d, want 1", st.Version())
	}

	st.Reset()
	if !st.Snapshot().IsEmpty() {
		t.Error("Reset() left state behind")
	}
}
