// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package bridge

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// recordingTx is a Transmitter that records what it was asked to send
type recordingTx struct {
	mu       sync.Mutex
	lines    []string
	times    []time.Time
	writable atomic.Bool
	failOn   string

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	writeDelay  time.Duration
}

func newRecordingTx() *recordingTx {
	tx := &recordingTx{}
	tx.writable.Store(true)
	return tx
}

func (r *recordingTx) Writable() bool {
	return r.writable.Load()
}

func (r *recordingTx) WriteLine(cmd string) error {
	n := r.inFlight.Add(1)
	defer r.inFlight.Add(-1)
	for {
		seen := r.maxInFlight.Load()
		if n <= seen || r.maxInFlight.CompareAndSwap(seen, n) {
			break
		}
	}

	if cmd == r.failOn {
		return errors.New("write failed")
	}
	time.Sleep(r.writeDelay)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, cmd)
	r.times = append(r.times, time.Now())
	return nil
}

func (r *recordingTx) sent() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

func waitQueue(t *testing.T, q *Queue) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := q.Wait(ctx); err != nil {
		t.Fatalf("Wait() error: %v", err)
	}
}

// ============================================================
// Command Queue Tests
// ============================================================

func TestQueue_FIFO(t *testing.T) {
	tx := newRecordingTx()
	var echoed []string
	var mu sync.Mutex
	q := NewQueue(time.Millisecond, func(cmd string) {
		mu.Lock()
		echoed = append(echoed, cmd)
		mu.Unlock()
	}, zerolog.Nop())
	q.SetTransmitter(tx)

	q.Enqueue("A")
	q.Enqueue("B")
	q.Enqueue("C")
	waitQueue(t, q)

	got := tx.sent()
	want := []string{"A", "B", "C"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("sent = %v, want %v", got, want)
	}
	mu.Lock()
	defer mu.Unlock()
	if fmt.Sprint(echoed) != fmt.Sprint(want) {
		t.Errorf("onSent = %v, want %v", echoed, want)
	}
}

func TestQueue_InterCommandDelay(t *testing.T) {
	const delay = 15 * time.Millisecond
	tx := newRecordingTx()
	q := NewQueue(delay, nil, zerolog.Nop())
	q.SetTransmitter(tx)

	for _, cmd := range []string{"A", "B", "C"} {
		q.Enqueue(cmd)
	}
	waitQueue(t, q)

	tx.mu.Lock()
	defer tx.mu.Unlock()
	if len(tx.times) != 3 {
		t.Fatalf("sent %d commands, want 3", len(tx.times))
	}
	for i := 1; i < len(tx.times); i++ {
		if gap := tx.times[i].Sub(tx.times[i-1]); gap < delay {
			t.Errorf("gap between %s and %s = %v, want >= %v", tx.lines[i-1], tx.lines[i], gap, delay)
		}
	}
}

func TestQueue_SingleDrain(t *testing.T) {
	tx := newRecordingTx()
	tx.writeDelay = time.Millisecond
	q := NewQueue(0, nil, zerolog.Nop())
	q.SetTransmitter(tx)

	q.Enqueue("first")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			q.Enqueue(fmt.Sprintf("cmd%d", i))
		}(i)
	}
	wg.Wait()
	waitQueue(t, q)

	if got := len(tx.sent()); got != 11 {
		t.Errorf("sent %d commands, want 11", got)
	}
	if peak := tx.maxInFlight.Load(); peak != 1 {
		t.Errorf("max concurrent writes = %d, want 1", peak)
	}
	if tx.sent()[0] != "first" {
		t.Errorf("first command = %q, want %q", tx.sent()[0], "first")
	}
}

func TestQueue_HoldsWhileUnwritable(t *testing.T) {
	tx := newRecordingTx()
	tx.writable.Store(false)
	q := NewQueue(0, nil, zerolog.Nop())
	q.SetTransmitter(tx)

	q.Enqueue("A")
	if q.Draining() {
		t.Error("drain started on an unwritable transmitter")
	}
	if q.Len() != 1 {
		t.Errorf("Len() = %d, want 1", q.Len())
	}

	tx.writable.Store(true)
	q.Enqueue("B")
	waitQueue(t, q)

	if got := tx.sent(); fmt.Sprint(got) != "[A B]" {
		t.Errorf("sent = %v, want [A B]", got)
	}
}

func TestQueue_HoldsWithoutTransmitter(t *testing.T) {
	q := NewQueue(0, nil, zerolog.Nop())
	q.Enqueue("status")
	if q.Draining() || q.Len() != 1 {
		t.Fatalf("Draining() = %v, Len() = %d", q.Draining(), q.Len())
	}

	q.Clear()
	if q.Len() != 0 {
		t.Errorf("Len() after Clear = %d", q.Len())
	}
}

func TestQueue_WriteFailureStopsDrain(t *testing.T) {
	logger, logs := testLogger()
	tx := newRecordingTx()
	tx.failOn = "B"
	q := NewQueue(0, nil, logger)
	q.SetTransmitter(tx)

	tx.writable.Store(false)
	q.Enqueue("A")
	q.Enqueue("B")
	q.Enqueue("C")
	tx.writable.Store(true)
	q.Enqueue("D")
	waitQueue(t, q)

	if got := tx.sent(); fmt.Sprint(got) != "[A]" {
		t.Errorf("sent = %v, want [A]", got)
	}
	if q.Len() != 2 {
		t.Errorf("Len() = %d, want 2 held commands", q.Len())
	}
	if !strings.Contains(logs.String(), "queued command not sent") {
		t.Errorf("write failure was not logged: %s", logs.String())
	}
}
