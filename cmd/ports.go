// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"

	"github.com/Thermoquad/tonelight/pkg/bridge"
	"github.com/spf13/cobra"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List serial ports and the one --port auto would pick",
	RunE:  runPorts,
}

func init() {
	rootCmd.AddCommand(portsCmd)
}

func runPorts(cmd *cobra.Command, args []string) error {
	ports, err := bridge.ListPorts()
	if err != nil {
		return err
	}
	if len(ports) == 0 {
		fmt.Println("No serial ports found")
		return nil
	}

	best, _ := bridge.SelectPort(ports)

	fmt.Printf("  %-24s %-18s %-16s %s\n", "PORT", "USB", "SERIAL", "PRODUCT")
	for _, p := range ports {
		marker := " "
		if p.Name == best.Name {
			marker = "*"
		}
		usb := p.USBInfo()
		if usb == "" {
			usb = "-"
		}
		fmt.Printf("%s %-24s %-18s %-16s %s\n", marker, p.Name, usb, p.SerialNumber, p.Product)
	}
	fmt.Printf("\n* selected by --port auto\n")
	return nil
}
