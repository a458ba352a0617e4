// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package bridge

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

var errUnplugged = errors.New("device not configured")

// fakePort is an in-memory device console
type fakePort struct {
	mu      sync.Mutex
	written []string
	steps   []string

	incoming  chan []byte
	rest      []byte
	closed    chan struct{}
	gone      chan struct{}
	closeOnce sync.Once
	goneOnce  sync.Once

	cancelPanics bool
	cancelErr    error
	closeWErr    error
	readyAfter   int
	readyPolls   int
}

func newFakePort() *fakePort {
	return &fakePort{
		incoming: make(chan []byte, 64),
		closed:   make(chan struct{}),
		gone:     make(chan struct{}),
	}
}

func (f *fakePort) Read(p []byte) (int, error) {
	if len(f.rest) > 0 {
		n := copy(p, f.rest)
		f.rest = f.rest[n:]
		return n, nil
	}

	select {
	case data := <-f.incoming:
		n := copy(p, data)
		f.rest = data[n:]
		return n, nil
	case <-f.gone:
		return 0, errUnplugged
	case <-f.closed:
		return 0, io.EOF
	}
}

func (f *fakePort) Write(p []byte) (int, error) {
	select {
	case <-f.closed:
		return 0, errors.New("port closed")
	default:
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, line := range strings.Split(string(p), "\n") {
		if line != "" {
			f.written = append(f.written, line)
		}
	}
	return len(p), nil
}

func (f *fakePort) Close() error {
	f.record("close port")
	f.closeOnce.Do(func() { close(f.closed) })
	return nil
}

func (f *fakePort) Ready() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.readyPolls++
	return f.readyPolls > f.readyAfter
}

func (f *fakePort) CancelRead() error {
	f.record("cancel read")
	if f.cancelPanics {
		panic("reader already released")
	}
	return f.cancelErr
}

func (f *fakePort) CloseWrite() error {
	f.record("close writer")
	return f.closeWErr
}

func (f *fakePort) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.steps = append(f.steps, step)
}

// feed delivers console output to the reader
func (f *fakePort) feed(s string) {
	f.incoming <- []byte(s)
}

// unplug makes the pending read fail as if the device was removed
func (f *fakePort) unplug() {
	f.goneOnce.Do(func() { close(f.gone) })
}

func (f *fakePort) lines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.written...)
}

func (f *fakePort) teardownSteps() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.steps...)
}

func (f *fakePort) isClosed() bool {
	select {
	case <-f.closed:
		return true
	default:
		return false
	}
}

func fakeOpener(port *fakePort) Opener {
	return func(ctx context.Context) (Port, string, error) {
		return port, "Fake: test @ 115200 baud", nil
	}
}

// syncBuffer collects log output written from several goroutines
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func testLogger() (zerolog.Logger, *syncBuffer) {
	buf := &syncBuffer{}
	return zerolog.New(buf), buf
}

// waitFor polls cond until it holds or the deadline passes
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func contains(lines []string, want string) bool {
	for _, l := range lines {
		if l == want {
			return true
		}
	}
	return false
}
