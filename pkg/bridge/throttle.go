// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package bridge

import (
	"sync"
	"time"
)

// DefaultThrottleWindow limits interactive sends such as slider drags
const DefaultThrottleWindow = 50 * time.Millisecond

// Throttle sends at most one command per window. A call made while the
// window is closed replaces any command already waiting and fires when the
// window reopens, so a burst collapses to its first and last command.
type Throttle struct {
	mu      sync.Mutex
	window  time.Duration
	last    time.Time
	pending string
	timer   *time.Timer
	send    func(cmd string)
}

// NewThrottle creates a throttle delivering through send
func NewThrottle(window time.Duration, send func(cmd string)) *Throttle {
	return &Throttle{
		window: window,
		send:   send,
	}
}

// Send transmits cmd now, or schedules it for the end of the window
func (t *Throttle) Send(cmd string) {
	t.mu.Lock()
	now := time.Now()
	elapsed := now.Sub(t.last)

	if t.timer == nil && elapsed >= t.window {
		t.last = now
		t.mu.Unlock()
		t.send(cmd)
		return
	}

	t.pending = cmd
	if t.timer == nil {
		t.timer = time.AfterFunc(t.window-elapsed, t.fire)
	}
	t.mu.Unlock()
}

func (t *Throttle) fire() {
	t.mu.Lock()
	if t.timer == nil {
		t.mu.Unlock()
		return
	}
	cmd := t.pending
	t.pending = ""
	t.timer = nil
	t.last = time.Now()
	t.mu.Unlock()

	t.send(cmd)
}

// Stop discards any scheduled command
func (t *Throttle) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.pending = ""
}
