// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/Thermoquad/tonelight/pkg/bridge"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var controlCmd = &cobra.Command{
	Use:   "control",
	Short: "Interactive TUI for controlling a toneLight device",
	Long: `Control a toneLight device via an interactive terminal UI.

The panel shows the connection, LED channel values, motor and shutter status,
the device preset table, line statistics and the console log.

Keys:
  tab / shift+tab  select LED channel     + / -   adjust selected channel
  1-9              load device preset     d       toggle dark
  t                toggle triplet         s       shoot
  j / l            travel back / forward  k       stop motor
  left / right     jog back / forward     m       cycle motor mode
  ! / @ / #        manual / semi / auto motor mode
  :                type a raw command     y       copy log to clipboard
  c / x            connect / disconnect   q       quit

A removed device is not reconnected automatically; press c once it is back.
Logging is off while the panel runs unless --log-file is given.

Supports both serial and WebSocket connections.`,
	Annotations: map[string]string{"fullscreen": "true"},
	RunE:        runControl,
}

func init() {
	rootCmd.AddCommand(controlCmd)
}

// panelLink forwards controller events into the running program in batches
type panelLink struct {
	p    *tea.Program
	done chan struct{}
}

func runControl(cmd *cobra.Command, args []string) error {
	ctrl, err := newController()
	if err != nil {
		return err
	}
	defer ctrl.Close()

	events, unsubscribe := ctrl.Subscribe(512)
	defer unsubscribe()

	link := &panelLink{done: make(chan struct{})}

	m := initialControlModel(ctrl)
	p := tea.NewProgram(m, tea.WithAltScreen())
	link.p = p

	go link.forward(events)

	if _, err := p.Run(); err != nil {
		close(link.done)
		return fmt.Errorf("TUI error: %v", err)
	}
	close(link.done)
	return nil
}

// forward collects events and hands them to the program once per batch tick
func (l *panelLink) forward(events <-chan bridge.Event) {
	ticker := time.NewTicker(batchInterval)
	defer ticker.Stop()

	var pending []bridge.Event
	for {
		select {
		case <-l.done:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			pending = append(pending, ev)
		case <-ticker.C:
			if len(pending) == 0 {
				continue
			}
			l.p.Send(controlBatchMsg{events: pending})
			pending = nil
		}
	}
}

// connectCmd runs Connect off the update loop
func connectCmd(ctrl *bridge.Controller) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		return connectResultMsg{err: ctrl.Connect(ctx)}
	}
}
