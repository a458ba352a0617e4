// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package tonelight

import (
	"encoding/json"
	"sort"
	"strings"
	"sync"
)

// State is an immutable snapshot of everything the device has reported.
// Branches are map[string]any, leaves are Value, and led.presets holds a
// PresetTable. A State is never modified after it is built; Apply returns
// a new one that shares every untouched branch.
type State struct {
	root map[string]any
}

// Apply merges a patch into a copy of the state.
// Missing intermediate branches are created. A non-branch value sitting
// where a branch is needed is overwritten. Keys outside the patch path are
// left alone.
func (s State) Apply(p Patch) State {
	if len(p.Path) == 0 {
		return s
	}
	var leaf any = p.Value
	if p.IsPresetTable() {
		leaf = p.Presets.Clone()
	}
	return State{root: setPath(s.root, p.Path, leaf)}
}

func setPath(node map[string]any, path []string, leaf any) map[string]any {
	out := make(map[string]any, len(node)+1)
	for k, v := range node {
		out[k] = v
	}
	if table, ok := node[path[0]].(PresetTable); ok && len(path) == 2 {
		if next, ok := setPresetSlot(table, path[1], leaf); ok {
			out[path[0]] = next
			return out
		}
	}
	if len(path) == 1 {
		out[path[0]] = leaf
		return out
	}
	child, _ := node[path[0]].(map[string]any)
	out[path[0]] = setPath(child, path[1:], leaf)
	return out
}

// setPresetSlot updates one slot of an existing preset table from a
// led.presets.<index>=r.g.b.ir.w.ch patch
func setPresetSlot(table PresetTable, index string, leaf any) (PresetTable, bool) {
	v, ok := leaf.(Value)
	if !ok {
		return nil, false
	}
	idx, slot, err := parsePresetEntry(index + ":" + v.String())
	if err != nil {
		return nil, false
	}
	next := table.Clone()
	next[idx] = slot
	return next, true
}

// IsEmpty reports whether nothing has been reported yet
func (s State) IsEmpty() bool {
	return len(s.root) == 0
}

// Sections returns the top-level keys present, sorted
func (s State) Sections() []string {
	keys := make([]string, 0, len(s.root))
	for k := range s.root {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lookup returns the node at a dotted key path
func (s State) Lookup(key string) (any, bool) {
	var node any = s.root
	for _, seg := range strings.Split(key, ".") {
		branch, ok := node.(map[string]any)
		if !ok {
			return nil, false
		}
		node, ok = branch[seg]
		if !ok {
			return nil, false
		}
	}
	return node, true
}

// Value returns the leaf value at key
func (s State) Value(key string) (Value, bool) {
	node, ok := s.Lookup(key)
	if !ok {
		return Value{}, false
	}
	v, ok := node.(Value)
	return v, ok
}

// Number returns the numeric leaf at key
func (s State) Number(key string) (float64, bool) {
	v, ok := s.Value(key)
	if !ok {
		return 0, false
	}
	return v.AsNumber()
}

// Text returns the string leaf at key
func (s State) Text(key string) (string, bool) {
	v, ok := s.Value(key)
	if !ok {
		return "", false
	}
	return v.AsString()
}

// Flag returns the boolean leaf at key
func (s State) Flag(key string) (bool, bool) {
	v, ok := s.Value(key)
	if !ok {
		return false, false
	}
	return v.AsBool()
}

// Presets returns a copy of the device preset table (nil if never reported)
func (s State) Presets() PresetTable {
	node, ok := s.Lookup(PresetsKey)
	if !ok {
		return nil
	}
	t, ok := node.(PresetTable)
	if !ok {
		return nil
	}
	return t.Clone()
}

// MotorState returns motor.state, or "" if unknown
func (s State) MotorState() MotorState {
	v, _ := s.Text("motor.state")
	return MotorState(v)
}

// MotorMode returns motor.mode, or "" if unknown
func (s State) MotorMode() MotorMode {
	v, _ := s.Text("motor.mode")
	return MotorMode(v)
}

// ShutterState returns shutter.state, or "" if unknown
func (s State) ShutterState() ShutterState {
	v, _ := s.Text("shutter.state")
	return ShutterState(v)
}

// IOMode returns device.mode, or "" if unknown
func (s State) IOMode() IOMode {
	v, _ := s.Text("device.mode")
	return IOMode(v)
}

// DebugLevel returns debug.level, or "" if unknown
func (s State) DebugLevel() DebugLevel {
	v, _ := s.Text("debug.level")
	return DebugLevel(v)
}

// Entry is one flattened key/value pair for display
type Entry struct {
	Key   string
	Value string
}

// Flatten lists every leaf as a dotted key, sorted by key.
// The preset table stays a single entry in its wire encoding.
func (s State) Flatten() []Entry {
	var out []Entry
	flatten(s.root, "", &out)
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func flatten(node map[string]any, prefix string, out *[]Entry) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch n := v.(type) {
		case map[string]any:
			flatten(n, key, out)
		case PresetTable:
			*out = append(*out, Entry{Key: key, Value: FormatPresetTable(n)})
		case Value:
			*out = append(*out, Entry{Key: key, Value: n.String()})
		}
	}
}

// MarshalJSON encodes the state as a nested JSON object
func (s State) MarshalJSON() ([]byte, error) {
	if s.root == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s.root)
}

// Store holds the latest State. Apply is called from the single telemetry
// reader; Snapshot may be called from anywhere.
type Store struct {
	mu      sync.RWMutex
	state   State
	version uint64
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// Apply merges a patch and publishes the resulting snapshot
func (st *Store) Apply(p Patch) State {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.state = st.state.Apply(p)
	st.version++
	return st.state
}

// Snapshot returns the current state
func (st *Store) Snapshot() State {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.state
}

// Version counts the patches applied so far
func (st *Store) Version() uint64 {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.version
}

// Reset discards everything reported so far
func (st *Store) Reset() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.state = State{}
	st.version++
}
