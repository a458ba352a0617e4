// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Thermoquad/tonelight/pkg/bridge"
	"github.com/Thermoquad/tonelight/pkg/tonelight"
	"github.com/spf13/cobra"
)

var (
	showAll       bool
	statsInterval int
)

var errorDetectionCmd = &cobra.Command{
	Use:   "error_detection",
	Short: "Detect malformed telemetry and device errors",
	Long: `Track malformed telemetry and device-reported problems with statistics.

This command decodes each console line and reports:
  - Malformed [API] telemetry (missing '=', bad key paths, bad preset tables)
  - Preset table entries that were skipped or carried fractional values
  - Lines the firmware tagged [ERROR] or [WARN]
  - Statistics and trends (line rate, error rate, valid telemetry percentage)

By default, only problems are displayed. Use --show-all to display every line.

Statistics summaries are printed at a configurable interval.`,
	RunE: runErrorDetection,
}

func init() {
	rootCmd.AddCommand(errorDetectionCmd)
	errorDetectionCmd.Flags().BoolVar(&showAll, "show-all", false, "Show all lines (not just problems)")
	errorDetectionCmd.Flags().IntVar(&statsInterval, "stats-interval", 10, "Statistics update interval (seconds)")
}

// printMalformed prints a telemetry line that failed to decode
func printMalformed(ts time.Time, line string, err error) {
	fmt.Printf("[%s] %s %s\n", ts.Format("15:04:05.000"), malformedStyle.Render("MALFORMED:"), line)
	fmt.Printf("  Issue: %v\n", err)
	fmt.Printf("  >>> LINE IGNORED <<<\n\n")
}

// printWarnings prints the non-fatal problems of a decoded line
func printWarnings(ts time.Time, msg tonelight.Message) {
	style := severityStyles[tonelight.SeverityWarn]
	fmt.Printf("[%s] %s %s\n", ts.Format("15:04:05.000"), style.Render("PARTIAL:"), msg.Raw)

	issues := []error{msg.Warnings}
	if joined, ok := msg.Warnings.(interface{ Unwrap() []error }); ok {
		issues = joined.Unwrap()
	}
	for i, err := range issues {
		fmt.Printf("  Issue %d: %v\n", i+1, err)
	}
	fmt.Println()
}

// printDeviceProblem prints an [ERROR] or [WARN] line from the firmware
func printDeviceProblem(ts time.Time, msg tonelight.Message) {
	label := "DEVICE " + msg.Severity.String() + ":"
	fmt.Printf("[%s] %s %s\n\n", ts.Format("15:04:05.000"), severityStyles[msg.Severity].Render(label), msg.Raw)
}

func runErrorDetection(cmd *cobra.Command, args []string) error {
	if statsInterval <= 0 {
		return fmt.Errorf("--stats-interval must be positive")
	}

	ctx, stop := signalContext()
	defer stop()

	ctrl, err := newController()
	if err != nil {
		return err
	}
	defer ctrl.Close()

	events, unsubscribe := ctrl.Subscribe(1024)
	defer unsubscribe()

	if err := ctrl.Connect(ctx); err != nil {
		return err
	}

	fmt.Printf("tonelight - Error Detection Mode\n")
	fmt.Printf("Connection: %s\n", ctrl.PortInfo())
	fmt.Printf("Statistics interval: %d seconds\n", statsInterval)
	if showAll {
		fmt.Printf("Mode: All lines\n")
	} else {
		fmt.Printf("Mode: Problems only\n")
	}
	fmt.Printf("Press Ctrl+C to exit\n\n")

	statsTicker := time.NewTicker(time.Duration(statsInterval) * time.Second)
	defer statsTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			printStats(ctrl)
			return nil

		case ev := <-events:
			if isDown(ev) {
				printStats(ctrl)
				if err := ctrl.LastError(); err != nil {
					return err
				}
				return nil
			}
			if ev.Kind != bridge.EventLog || strings.HasPrefix(ev.Line, bridge.CommandMarker) {
				continue
			}
			reportLine(time.Now(), ev.Line)

		case <-statsTicker.C:
			printStats(ctrl)
		}
	}
}

// reportLine prints a line if it carries a problem, or always with --show-all
func reportLine(ts time.Time, line string) {
	msg, err := tonelight.DecodeLine(line)
	switch {
	case errors.Is(err, tonelight.ErrMalformedTelemetry):
		printMalformed(ts, line, err)
	case msg.Warnings != nil:
		printWarnings(ts, msg)
	case msg.Severity == tonelight.SeverityError || msg.Severity == tonelight.SeverityWarn:
		printDeviceProblem(ts, msg)
	case showAll:
		fmt.Println(formatRawLine(ts, line))
	}
}

func printStats(ctrl *bridge.Controller) {
	stats := ctrl.Stats()
	fmt.Println()
	fmt.Print(stats.String())
	fmt.Println()
}
