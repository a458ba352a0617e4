// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package bridge

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Readiness polling for a freshly opened port
const (
	ReadyTimeout      = time.Second
	ReadyPollInterval = 100 * time.Millisecond
)

// Session owns one open port. Reads come from a single reader goroutine;
// writes from any goroutine are serialized so frames never interleave.
type Session struct {
	port Port
	info string
	log  zerolog.Logger

	writeMu   sync.Mutex
	closed    atomic.Bool
	closeOnce sync.Once
}

// OpenSession opens a port and waits until it is ready for duplex use.
// A port that never becomes ready is closed again and
// ErrTransportUnavailable is returned.
func OpenSession(ctx context.Context, opener Opener, logger zerolog.Logger) (*Session, error) {
	port, info, err := opener(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransportUnavailable, err)
	}
	if info == "" {
		info = UnknownPortInfo
	}

	if err := waitReady(ctx, port); err != nil {
		if cerr := port.Close(); cerr != nil {
			logger.Warn().Err(cerr).Str("port", info).Msg("failed to close unready port")
		}
		return nil, err
	}

	return &Session{port: port, info: info, log: logger}, nil
}

func waitReady(ctx context.Context, port Port) error {
	r, ok := port.(readier)
	if !ok || r.Ready() {
		return nil
	}

	timeout := time.NewTimer(ReadyTimeout)
	defer timeout.Stop()
	ticker := time.NewTicker(ReadyPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ErrTransportUnavailable, ctx.Err())
		case <-timeout.C:
			return fmt.Errorf("%w: port not ready after %s", ErrTransportUnavailable, ReadyTimeout)
		case <-ticker.C:
			if r.Ready() {
				return nil
			}
		}
	}
}

// Info describes the port for display
func (s *Session) Info() string {
	return s.info
}

// Read reads raw bytes from the port
func (s *Session) Read(p []byte) (int, error) {
	return s.port.Read(p)
}

// Writable reports whether the session still accepts writes
func (s *Session) Writable() bool {
	return !s.closed.Load()
}

// WriteLine sends one command frame terminated by a newline
func (s *Session) WriteLine(cmd string) error {
	if s.closed.Load() {
		return ErrNotConnected
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if _, err := s.port.Write([]byte(strings.TrimSpace(cmd) + "\n")); err != nil {
		return fmt.Errorf("write %q: %w", cmd, err)
	}
	return nil
}

// Close tears the session down: cancel the pending read, flush and close
// the write side, then close the port. Every step runs even if an earlier
// one fails or panics; failures are logged as ErrTeardownFailure. Close is
// safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.closed.Store(true)

		if rc, ok := s.port.(readCanceler); ok {
			s.teardownStep("cancel read", rc.CancelRead)
		}
		if wc, ok := s.port.(writeCloser); ok {
			s.teardownStep("close writer", wc.CloseWrite)
		}
		s.teardownStep("close port", s.port.Close)
	})
}

// Abandon marks the session dead after the device went away. The handle
// is released without the graceful teardown steps.
func (s *Session) Abandon() {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		s.teardownStep("release port", s.port.Close)
	})
}

func (s *Session) teardownStep(name string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Warn().
				Err(fmt.Errorf("%w: %v", ErrTeardownFailure, r)).
				Str("step", name).
				Str("port", s.info).
				Msg("teardown step panicked")
		}
	}()

	if err := fn(); err != nil {
		s.log.Warn().
			Err(fmt.Errorf("%w: %w", ErrTeardownFailure, err)).
			Str("step", name).
			Str("port", s.info).
			Msg("teardown step failed")
	}
}
