// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Thermoquad/tonelight/pkg/bridge"
	"github.com/Thermoquad/tonelight/pkg/tonelight"
	"github.com/spf13/cobra"
)

var (
	pingTimeout int
	pingCount   int
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Test the console link by sending status and timing the reply",
	Long: `Send "status" to the device and wait for the first [API] telemetry line.

This is useful for verifying:
  - The serial port or WebSocket bridge is reachable
  - HTTP Basic authentication works (WebSocket)
  - The firmware is running and answering commands
  - Round-trip latency of the console link

Exit codes:
  0 - All pings successful
  1 - One or more pings failed/timed out
  2 - Connection error`,
	RunE: runPing,
}

func init() {
	rootCmd.AddCommand(pingCmd)
	pingCmd.Flags().IntVar(&pingTimeout, "timeout", 5, "Timeout in seconds for each ping")
	pingCmd.Flags().IntVar(&pingCount, "count", 3, "Number of pings to send")
}

func runPing(cmd *cobra.Command, args []string) error {
	if pingCount <= 0 || pingTimeout <= 0 {
		return fmt.Errorf("--count and --timeout must be positive")
	}

	ctx, stop := signalContext()
	defer stop()

	opener, err := newOpener()
	if err != nil {
		return err
	}
	sess, err := bridge.OpenSession(ctx, opener, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}
	defer sess.Close()

	fmt.Printf("tonelight - Ping Test\n")
	fmt.Printf("Connection: %s\n", sess.Info())
	fmt.Printf("Timeout: %d seconds per ping\n", pingTimeout)
	fmt.Printf("Count: %d pings\n\n", pingCount)

	// One reader for the whole run; lines are handed over without blocking
	lines := make(chan string, 256)
	readErr := make(chan error, 1)
	go func() {
		framer := tonelight.NewFramer()
		buf := make([]byte, 256)
		for {
			n, err := sess.Read(buf)
			if err != nil {
				readErr <- err
				return
			}
			for _, line := range framer.Feed(buf[:n]) {
				select {
				case lines <- line:
				default:
				}
			}
		}
	}()

	successCount := 0
	failCount := 0

	for i := 1; i <= pingCount; i++ {
		fmt.Printf("Ping %d/%d: ", i, pingCount)

		// Discard anything left over from the previous reply
	drain:
		for {
			select {
			case <-lines:
			default:
				break drain
			}
		}

		startTime := time.Now()
		if err := sess.WriteLine(tonelight.CmdStatus); err != nil {
			fmt.Printf("SEND FAILED: %v\n", err)
			failCount++
			continue
		}

		timeout := time.After(time.Duration(pingTimeout) * time.Second)
	wait:
		for {
			select {
			case line := <-lines:
				if !strings.HasPrefix(line, tonelight.APIPrefix) {
					continue
				}
				fmt.Printf("reply %q, rtt=%v\n", line, time.Since(startTime).Round(time.Millisecond))
				successCount++
				break wait

			case err := <-readErr:
				fmt.Printf("READ FAILED: %v\n", err)
				failCount += pingCount - i + 1
				i = pingCount
				break wait

			case <-timeout:
				fmt.Printf("TIMEOUT (no response in %ds)\n", pingTimeout)
				failCount++
				break wait

			case <-ctx.Done():
				return nil
			}
		}

		// Small delay between pings
		if i < pingCount {
			time.Sleep(100 * time.Millisecond)
		}
	}

	fmt.Printf("\n--- Ping statistics ---\n")
	fmt.Printf("%d pings sent, %d responses received, %.0f%% loss\n",
		pingCount, successCount, float64(failCount)/float64(pingCount)*100)

	if failCount > 0 {
		sess.Close()
		os.Exit(1)
	}
	return nil
}
