// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	sendSettle    time.Duration
	sendShowState bool
)

var sendCmd = &cobra.Command{
	Use:   "send <command>...",
	Short: "Send console commands and optionally print the resulting state",
	Long: `Connect, queue each argument as one console command, and wait for the queue
to drain. Quote commands that contain spaces:

  tonelight send "led set r 512" "preset save 0" --state

Replies are collected for --settle after the last command is written.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().DurationVar(&sendSettle, "settle", 300*time.Millisecond, "Time to collect replies after the last command")
	sendCmd.Flags().BoolVar(&sendShowState, "state", false, "Print the device state when done")
}

func runSend(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	ctrl, err := connectController(ctx)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	for _, c := range args {
		if err := ctrl.SendQueued(c); err != nil {
			return err
		}
	}
	if err := ctrl.WaitIdle(ctx); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
	case <-time.After(sendSettle):
	}

	for _, line := range ctrl.Log() {
		fmt.Println(styleLine(line))
	}

	if sendShowState {
		fmt.Println()
		for _, e := range ctrl.Snapshot().Flatten() {
			fmt.Printf("%-28s %s\n", e.Key, e.Value)
		}
	}
	return nil
}
