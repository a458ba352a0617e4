// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/Thermoquad/tonelight/pkg/bridge"
	"github.com/Thermoquad/tonelight/pkg/tonelight"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var rawLogCmd = &cobra.Command{
	Use:   "raw_log",
	Short: "Display the device console with decoded telemetry",
	Long: `Continuously display every console line as it arrives.

Telemetry lines are shown as the decoded key=value patch, other lines are
coloured by their severity tag. Commands sent by tonelight are echoed with a
leading "> ".

Supports both serial and WebSocket connections.`,
	RunE: runRawLog,
}

func init() {
	rootCmd.AddCommand(rawLogCmd)
}

// Severity colours shared by the line printers and the control panel
var (
	severityStyles = map[tonelight.Severity]lipgloss.Style{
		tonelight.SeverityError:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		tonelight.SeverityWarn:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		tonelight.SeverityAPI:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		tonelight.SeverityInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		tonelight.SeverityDebug:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		tonelight.SeverityVerbose: lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Faint(true),
	}
	sentStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	malformedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Reverse(true)
)

// styleLine colours a console line by its severity tag
func styleLine(line string) string {
	if strings.HasPrefix(line, bridge.CommandMarker) {
		return sentStyle.Render(line)
	}
	if style, ok := severityStyles[tonelight.ClassifySeverity(line)]; ok {
		return style.Render(line)
	}
	return line
}

// formatRawLine renders one console line with a timestamp
func formatRawLine(ts time.Time, line string) string {
	if strings.HasPrefix(line, bridge.CommandMarker) {
		return sentStyle.Render(fmt.Sprintf("[%s] %-7s %s", ts.Format("15:04:05.000"), "SENT", line))
	}

	msg, err := tonelight.DecodeLine(line)
	out := tonelight.FormatMessage(ts, msg)
	if err != nil {
		return malformedStyle.Render(out) + "\n  " + err.Error()
	}
	if style, ok := severityStyles[msg.Severity]; ok {
		return style.Render(out)
	}
	return out
}

func runRawLog(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	ctrl, err := newController()
	if err != nil {
		return err
	}
	defer ctrl.Close()

	events, unsubscribe := ctrl.Subscribe(256)
	defer unsubscribe()

	if err := ctrl.Connect(ctx); err != nil {
		return err
	}

	fmt.Printf("tonelight - Raw Console Log\n")
	fmt.Printf("Connection: %s\n", ctrl.PortInfo())
	fmt.Printf("Press Ctrl+C to exit\n\n")

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch {
			case ev.Kind == bridge.EventLog:
				fmt.Println(formatRawLine(time.Now(), ev.Line))
			case isDown(ev):
				if err := ctrl.LastError(); err != nil {
					return err
				}
				fmt.Println("Connection closed")
				return nil
			}
		}
	}
}
