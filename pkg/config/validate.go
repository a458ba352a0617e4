// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package config

import (
	"fmt"
	"net/url"

	"github.com/rs/zerolog"
)

// Validate checks configuration correctness.
// It performs declarative validation only and never mutates cfg.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	// ---- connection ----

	c := cfg.Connection
	if c.Port != "" && c.URL != "" {
		return fmt.Errorf("connection: port and url are mutually exclusive")
	}
	if c.Baud <= 0 {
		return fmt.Errorf("connection: baud must be positive, got %d", c.Baud)
	}
	if c.URL != "" {
		u, err := url.Parse(c.URL)
		if err != nil {
			return fmt.Errorf("connection: invalid url %q: %w", c.URL, err)
		}
		if u.Scheme != "ws" && u.Scheme != "wss" {
			return fmt.Errorf("connection: url scheme must be ws or wss, got %q", u.Scheme)
		}
	}

	// ---- bridge timing ----

	b := cfg.Bridge
	if b.CommandDelayMs < 0 {
		return fmt.Errorf("bridge: command_delay_ms must not be negative")
	}
	if b.ThrottleWindowMs < 0 {
		return fmt.Errorf("bridge: throttle_window_ms must not be negative")
	}
	if b.LogLines < 0 {
		return fmt.Errorf("bridge: log_lines must not be negative")
	}

	// ---- logging ----

	if cfg.Log.Level != "" {
		if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
			return fmt.Errorf("log: unknown level %q", cfg.Log.Level)
		}
	}

	return nil
}
