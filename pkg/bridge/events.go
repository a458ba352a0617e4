// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package bridge

import (
	"sync"

	"github.com/Thermoquad/tonelight/pkg/tonelight"
)

// EventKind names what changed
type EventKind string

const (
	EventConnection EventKind = "connection"
	EventState      EventKind = "state"
	EventLog        EventKind = "log"
)

// Event is pushed to subscribers whenever the connection state, the device
// state or the console log changes
type Event struct {
	Kind       EventKind        `json:"type"`
	Connection ConnectionState  `json:"connection,omitempty"`
	PortInfo   string           `json:"port_info,omitempty"`
	Error      string           `json:"error,omitempty"`
	State      *tonelight.State `json:"state,omitempty"`
	Line       string           `json:"line,omitempty"`
}

// Hub fans events out to subscribers. A subscriber that falls behind
// misses events rather than stalling the telemetry reader.
type Hub struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{})}
}

// Subscribe registers a listener. The returned function unsubscribes and
// closes the channel.
func (h *Hub) Subscribe(buffer int) (<-chan Event, func()) {
	ch := make(chan Event, buffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			close(ch)
			h.mu.Unlock()
		})
	}
}

// Publish delivers ev to every subscriber with room for it
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Subscribers returns the number of registered listeners
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
