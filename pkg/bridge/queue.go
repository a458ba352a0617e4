// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package bridge

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultCommandDelay separates queued commands so the firmware's line
// parser never sees two frames merged
const DefaultCommandDelay = 5 * time.Millisecond

// Transmitter is the write side of a session
type Transmitter interface {
	Writable() bool
	WriteLine(cmd string) error
}

// Queue sends commands strictly one at a time in submission order.
// A single drain goroutine runs while there is work and a writable
// transmitter; commands enqueued without one are held until the next
// Enqueue after a transmitter is attached.
type Queue struct {
	mu       sync.Mutex
	pending  []string
	draining bool
	tx       Transmitter

	delay  time.Duration
	onSent func(cmd string)
	log    zerolog.Logger
}

// NewQueue creates a queue. onSent, if not nil, is called after each
// successful transmission from the drain goroutine.
func NewQueue(delay time.Duration, onSent func(cmd string), logger zerolog.Logger) *Queue {
	if delay < 0 {
		delay = 0
	}
	return &Queue{
		delay:  delay,
		onSent: onSent,
		log:    logger,
	}
}

// SetTransmitter attaches the session to drain into (nil detaches)
func (q *Queue) SetTransmitter(tx Transmitter) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tx = tx
}

// Enqueue appends a command and starts a drain if none is running
func (q *Queue) Enqueue(cmd string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.pending = append(q.pending, cmd)
	if q.draining || q.tx == nil || !q.tx.Writable() {
		return
	}
	q.draining = true
	go q.drain()
}

func (q *Queue) drain() {
	for {
		q.mu.Lock()
		tx := q.tx
		if len(q.pending) == 0 || tx == nil || !tx.Writable() {
			q.draining = false
			q.mu.Unlock()
			return
		}
		cmd := q.pending[0]
		q.pending[0] = ""
		q.pending = q.pending[1:]
		q.mu.Unlock()

		if err := tx.WriteLine(cmd); err != nil {
			q.log.Warn().Err(err).Str("command", cmd).Msg("queued command not sent")
			q.mu.Lock()
			q.draining = false
			q.mu.Unlock()
			return
		}
		if q.onSent != nil {
			q.onSent(cmd)
		}

		time.Sleep(q.delay)
	}
}

// Len returns the number of commands waiting
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Draining reports whether a drain goroutine is active
func (q *Queue) Draining() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.draining
}

// Clear drops every held command
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = nil
}

// Wait blocks until the running drain finishes or ctx is done
func (q *Queue) Wait(ctx context.Context) error {
	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()

	for {
		if !q.Draining() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
