// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Thermoquad/tonelight/pkg/bridge"
	"github.com/Thermoquad/tonelight/pkg/tonelight"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

// ============================================================================
// Preset slot parsing
// ============================================================================

func TestParseSlot(t *testing.T) {
	tests := []struct {
		in      string
		index   int
		want    tonelight.PresetSlot
		wantErr bool
	}{
		{in: "1023,0,0,0,0", index: 0, want: tonelight.PresetSlot{R: 1023, Channel: 0}},
		{in: "1, 2, 3, 4, 5", index: 2, want: tonelight.PresetSlot{R: 1, G: 2, B: 3, IR: 4, W: 5, Channel: 2}},
		{in: "0,0,0,0,0,7", index: 1, want: tonelight.PresetSlot{Channel: 7}},
		{in: "1,2,3,4", wantErr: true},
		{in: "1,2,3,4,5,6,7", wantErr: true},
		{in: "1,2,x,4,5", wantErr: true},
		{in: "1024,0,0,0,0", wantErr: true},
		{in: "-1,0,0,0,0", wantErr: true},
		{in: "1.5,0,0,0,0", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseSlot(tt.in, tt.index)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseSlot(%q) = %+v, want error", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseSlot(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseSlot(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestBlankPreset(t *testing.T) {
	p := blankPreset("Night")
	if p.Name != "Night" {
		t.Errorf("name = %q", p.Name)
	}
	for i, s := range p.Slots {
		if s.Channel != i || s.Sum() != 0 {
			t.Errorf("slot %d = %+v, want blank on channel %d", i, s, i)
		}
	}
}

// ============================================================================
// Raw line rendering
// ============================================================================

func TestFormatRawLine(t *testing.T) {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 6_000_000, time.UTC)

	sent := formatRawLine(ts, bridge.CommandMarker+"status")
	if !strings.Contains(sent, "SENT") || !strings.Contains(sent, "status") {
		t.Errorf("sent line = %q", sent)
	}

	patch := formatRawLine(ts, "[API] motor.state=IDLE")
	if !strings.Contains(patch, "03:04:05.006") || !strings.Contains(patch, "motor.state") {
		t.Errorf("telemetry line = %q", patch)
	}

	bad := formatRawLine(ts, "[API] no equals sign")
	if !strings.Contains(bad, "\n  ") {
		t.Errorf("malformed line should carry its error, got %q", bad)
	}
}

// ============================================================================
// Control panel keys
// ============================================================================

func offlineController(t *testing.T) *bridge.Controller {
	t.Helper()
	opener := func(ctx context.Context) (bridge.Port, string, error) {
		return nil, "", errors.New("no device")
	}
	ctrl := bridge.NewController(opener, bridge.Options{Logger: zerolog.Nop()})
	t.Cleanup(ctrl.Close)
	return ctrl
}

// recordingPort accepts writes and blocks reads until closed
type recordingPort struct {
	mu      sync.Mutex
	written strings.Builder
	closed  chan struct{}
	once    sync.Once
}

func (p *recordingPort) Read(b []byte) (int, error) {
	<-p.closed
	return 0, io.EOF
}

func (p *recordingPort) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.written.Write(b)
}

func (p *recordingPort) Close() error {
	p.once.Do(func() { close(p.closed) })
	return nil
}

func (p *recordingPort) sent() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.written.String()
}

func pressKey(m controlModel, key string) controlModel {
	var msg tea.KeyMsg
	switch key {
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next.(controlModel)
}

func TestControlShortcutWhileDisconnected(t *testing.T) {
	m := initialControlModel(offlineController(t))

	m = pressKey(m, "d")
	if !m.noticeErr || m.notice == "" {
		t.Fatalf("expected a rejection notice, got %q", m.notice)
	}
}

func TestControlInputSwallowsShortcuts(t *testing.T) {
	m := initialControlModel(offlineController(t))

	m = pressKey(m, ":")
	if !m.inputting {
		t.Fatal("':' should open the command line")
	}
	m = pressKey(m, "q")
	if m.quitting {
		t.Fatal("'q' inside the command line must not quit")
	}
	if got := m.input.Value(); got != "q" {
		t.Errorf("input = %q, want %q", got, "q")
	}

	m = pressKey(m, "esc")
	if m.inputting || m.input.Value() != "" {
		t.Error("esc should close and clear the command line")
	}
}

func TestControlChannelSelection(t *testing.T) {
	m := initialControlModel(offlineController(t))

	for range tonelight.LEDChannels {
		m = pressKey(m, "tab")
	}
	if m.channel != 0 {
		t.Errorf("channel after a full cycle = %d, want 0", m.channel)
	}
	m = pressKey(m, "tab")
	if m.channel != 1 {
		t.Errorf("channel = %d, want 1", m.channel)
	}
}

func TestControlDirectMotorModeKeys(t *testing.T) {
	port := &recordingPort{closed: make(chan struct{})}
	opener := func(ctx context.Context) (bridge.Port, string, error) {
		return port, "Test: loopback", nil
	}
	ctrl := bridge.NewController(opener, bridge.Options{Logger: zerolog.Nop(), CommandDelay: time.Millisecond})
	t.Cleanup(ctrl.Close)
	if err := ctrl.Connect(context.Background()); err != nil {
		t.Fatalf("Connect error: %v", err)
	}

	m := initialControlModel(ctrl)
	for _, key := range []string{"!", "@", "#"} {
		m = pressKey(m, key)
		if m.noticeErr {
			t.Fatalf("key %q rejected: %s", key, m.notice)
		}
	}

	want := []string{"motor mode manual\n", "motor mode semi\n", "motor mode auto\n"}
	deadline := time.Now().Add(2 * time.Second)
	for {
		sent := port.sent()
		missing := ""
		for _, w := range want {
			if !strings.Contains(sent, w) {
				missing = w
				break
			}
		}
		if missing == "" {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("%q never sent; wire = %q", missing, sent)
		}
		time.Sleep(5 * time.Millisecond)
	}
}
