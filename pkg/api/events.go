// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package api

import (
	"net/http"
	"time"

	"github.com/Thermoquad/tonelight/pkg/bridge"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	eventBuffer    = 64
	eventWriteWait = 5 * time.Second
	eventPingEvery = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The panel may be served from another origin; CORS is open too
	CheckOrigin: func(*http.Request) bool { return true },
}

// connectionEvent describes the current connection
func (r *Router) connectionEvent() bridge.Event {
	ev := bridge.Event{
		Kind:       bridge.EventConnection,
		Connection: r.device.State(),
		PortInfo:   r.device.PortInfo(),
	}
	if err := r.device.LastError(); err != nil {
		ev.Error = err.Error()
	}
	return ev
}

// events handles GET /events. After the upgrade the client receives the
// current connection and state, then every event as it happens. A client
// that reads too slowly misses events.
// @Summary      Stream connection, state and log events
// @Tags         events
// @Success      101
// @Router       /events [get]
func (r *Router) events(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		r.log.Warn().Err(err).Msg("event stream upgrade failed")
		return
	}
	defer conn.Close()

	events, unsubscribe := r.device.Subscribe(eventBuffer)
	defer unsubscribe()

	snap := r.device.Snapshot()
	initial := []bridge.Event{
		r.connectionEvent(),
		{Kind: bridge.EventState, State: &snap},
	}
	for _, ev := range initial {
		if err := writeEvent(conn, ev); err != nil {
			return
		}
	}

	// Reads only detect the client going away
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(eventPingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-gone:
			return

		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := writeEvent(conn, ev); err != nil {
				r.log.Debug().Err(err).Msg("event stream closed")
				return
			}

		case <-ticker.C:
			deadline := time.Now().Add(eventWriteWait)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}

func writeEvent(conn *websocket.Conn, ev bridge.Event) error {
	if err := conn.SetWriteDeadline(time.Now().Add(eventWriteWait)); err != nil {
		return err
	}
	return conn.WriteJSON(ev)
}
