// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package bridge

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

type sendRecorder struct {
	mu    sync.Mutex
	cmds  []string
	times []time.Time
}

func (r *sendRecorder) send(cmd string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cmds = append(r.cmds, cmd)
	r.times = append(r.times, time.Now())
}

func (r *sendRecorder) sent() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.cmds...)
}

// ============================================================
// Throttled Send Tests
// ============================================================

func TestThrottle_CollapsesBurst(t *testing.T) {
	const window = 50 * time.Millisecond
	rec := &sendRecorder{}
	th := NewThrottle(window, rec.send)

	th.Send("led set r 1")
	th.Send("led set r 2")
	th.Send("led set r 3")
	th.Send("led set r 4")

	if got := rec.sent(); len(got) != 1 || got[0] != "led set r 1" {
		t.Fatalf("sent = %v, want only the leading command", got)
	}

	waitFor(t, "trailing send", func() bool { return len(rec.sent()) == 2 })
	time.Sleep(2 * window)

	got := rec.sent()
	if fmt.Sprint(got) != "[led set r 1 led set r 4]" {
		t.Errorf("sent = %q, want first and last command", got)
	}

	rec.mu.Lock()
	gap := rec.times[1].Sub(rec.times[0])
	rec.mu.Unlock()
	if gap < window-5*time.Millisecond {
		t.Errorf("trailing send after %v, want about %v", gap, window)
	}
}

func TestThrottle_SpacedCallsAllSend(t *testing.T) {
	rec := &sendRecorder{}
	th := NewThrottle(10*time.Millisecond, rec.send)

	for i := 0; i < 3; i++ {
		th.Send(fmt.Sprintf("cmd%d", i))
		time.Sleep(20 * time.Millisecond)
	}

	if got := rec.sent(); fmt.Sprint(got) != "[cmd0 cmd1 cmd2]" {
		t.Errorf("sent = %v", got)
	}
}

func TestThrottle_StopDiscardsPending(t *testing.T) {
	rec := &sendRecorder{}
	th := NewThrottle(30*time.Millisecond, rec.send)

	th.Send("a")
	th.Send("b")
	th.Stop()
	time.Sleep(60 * time.Millisecond)

	if got := rec.sent(); fmt.Sprint(got) != "[a]" {
		t.Errorf("sent = %v, want [a]", got)
	}
}
