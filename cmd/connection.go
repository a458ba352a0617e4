// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Thermoquad/tonelight/pkg/bridge"
	"github.com/Thermoquad/tonelight/pkg/presetstore"
	"golang.org/x/term"
)

// GetPassword retrieves password from environment or prompts user
func GetPassword() (string, error) {
	// First check environment variable
	if pw := os.Getenv("TONELIGHT_PASSWORD"); pw != "" {
		return pw, nil
	}

	fmt.Fprint(os.Stderr, "Password: ")

	// Read password without echo
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		// Fallback to regular input if terminal functions fail
		reader := bufio.NewReader(os.Stdin)
		password, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(os.Stderr)
		return strings.TrimSpace(password), nil
	}

	fmt.Fprintln(os.Stderr)
	return string(passwordBytes), nil
}

// newOpener builds the transport opener selected by --url or --port.
// The password is asked for once, here, so reconnects do not prompt.
func newOpener() (bridge.Opener, error) {
	c := cfg.Connection

	if c.URL != "" {
		password := ""
		if c.Username != "" {
			var err error
			password, err = GetPassword()
			if err != nil {
				return nil, err
			}
		}
		return bridge.WebSocketOpener(bridge.WebSocketOptions{
			URL:           c.URL,
			Username:      c.Username,
			Password:      password,
			SkipSSLVerify: c.NoSSLVerify,
		}), nil
	}

	if c.Port != "" {
		return bridge.SerialOpener(c.Port, c.Baud), nil
	}

	return nil, fmt.Errorf("either --port or --url must be specified")
}

// newController creates a disconnected controller for the configured
// transport
func newController() (*bridge.Controller, error) {
	opener, err := newOpener()
	if err != nil {
		return nil, err
	}
	return bridge.NewController(opener, bridge.Options{
		Logger:         logger,
		CommandDelay:   cfg.CommandDelay(),
		ThrottleWindow: cfg.ThrottleWindow(),
		LogLines:       cfg.Bridge.LogLines,
	}), nil
}

// connectController creates a controller and connects it
func connectController(ctx context.Context) (*bridge.Controller, error) {
	ctrl, err := newController()
	if err != nil {
		return nil, err
	}
	if err := ctrl.Connect(ctx); err != nil {
		return nil, err
	}
	return ctrl, nil
}

// openLibrary opens the preset library database
func openLibrary() (*presetstore.Store, error) {
	return presetstore.Open(cfg.Presets.Database, logger)
}

// signalContext is cancelled on Ctrl+C or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// isDown reports whether a connection event means the session has ended
func isDown(ev bridge.Event) bool {
	return ev.Kind == bridge.EventConnection &&
		(ev.Connection == bridge.StateDisconnected || ev.Connection == bridge.StateError)
}
