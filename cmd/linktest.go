// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/Thermoquad/tonelight/pkg/bridge"
	"github.com/Thermoquad/tonelight/pkg/tonelight"
	"github.com/spf13/cobra"
)

var linkTestCmd = &cobra.Command{
	Use:   "link-test",
	Short: "Test connection stability without sending commands",
	Long: `Open the console link and just listen, reporting every line received and any
transport error. Nothing is written to the device. Useful for debugging flaky
USB cables or WebSocket bridges.

Exit codes:
  0 - Test completed normally
  1 - Test failed
  2 - Connection error`,
	RunE: runLinkTest,
}

var linkTestDuration int

func init() {
	rootCmd.AddCommand(linkTestCmd)
	linkTestCmd.Flags().IntVar(&linkTestDuration, "duration", 30, "Test duration in seconds")
}

func runLinkTest(cmd *cobra.Command, args []string) error {
	if linkTestDuration <= 0 {
		return fmt.Errorf("--duration must be positive")
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

	fmt.Printf("Connection Stability Test\n")
	fmt.Printf("Connection: %s\n", sess.Info())
	fmt.Printf("Duration: %d seconds\n\n", linkTestDuration)

	readChan := make(chan []byte, 100)
	errChan := make(chan error, 1)

	go func() {
		buf := make([]byte, 256)
		for {
			n, err := sess.Read(buf)
			if err != nil {
				errChan <- err
				return
			}
			if n > 0 {
				data := make([]byte, n)
				copy(data, buf[:n])
				readChan <- data
			}
		}
	}()

	start := time.Now()
	endTime := start.Add(time.Duration(linkTestDuration) * time.Second)
	framer := tonelight.NewFramer()
	bytesReceived := 0
	linesReceived := 0
	heartbeat := time.NewTicker(time.Second)
	defer heartbeat.Stop()

	results := func(result string) {
		fmt.Printf("\n--- Test Results ---\n")
		fmt.Printf("Duration: %v\n", time.Since(start).Round(time.Millisecond))
		fmt.Printf("Lines received: %d\n", linesReceived)
		fmt.Printf("Bytes received: %d\n", bytesReceived)
		fmt.Printf("Result: %s\n", result)
	}

	fmt.Printf("Listening for data...\n\n")

	for time.Now().Before(endTime) {
		select {
		case data := <-readChan:
			bytesReceived += len(data)
			for _, line := range framer.Feed(data) {
				linesReceived++
				fmt.Println(formatRawLine(time.Now(), line))
			}

		case err := <-errChan:
			fmt.Printf("\n[%s] Connection error: %v\n", time.Now().Format("15:04:05.000"), err)
			results("FAILED (connection error)")
			sess.Close()
			os.Exit(1)

		case <-heartbeat.C:
			remaining := time.Until(endTime).Seconds()
			fmt.Printf("[%s] Still connected... (%.0fs remaining)\n",
				time.Now().Format("15:04:05.000"), remaining)

		case <-ctx.Done():
			results("INTERRUPTED")
			return nil
		}
	}

	if pending := framer.Pending(); pending != "" {
		fmt.Printf("\nUnterminated line left over: %q\n", pending)
	}
	results("PASSED (connection stable)")
	return nil
}
