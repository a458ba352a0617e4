// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad
//
// tonelight - toneLight console bridge
//
// A CLI tool for monitoring and controlling toneLight devices over their
// line-oriented serial console, locally or through a WebSocket bridge.

package main

import (
	"os"

	"github.com/Thermoquad/tonelight/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
