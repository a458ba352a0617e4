// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tonelight.yaml")
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
connection:
  port: /dev/ttyACM0
bridge:
  throttle_window_ms: 80
log:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Connection.Port != "/dev/ttyACM0" {
		t.Errorf("Port = %q", cfg.Connection.Port)
	}
	if cfg.Connection.Baud != 115200 {
		t.Errorf("Baud = %d, want default 115200", cfg.Connection.Baud)
	}
	if cfg.ThrottleWindow() != 80*time.Millisecond {
		t.Errorf("ThrottleWindow() = %v", cfg.ThrottleWindow())
	}
	if cfg.CommandDelay() != 5*time.Millisecond {
		t.Errorf("CommandDelay() = %v, want default 5ms", cfg.CommandDelay())
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("Validate error: %v", err)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load(missing) returned nil error")
	}

	path := writeConfig(t, "connection: [unclosed")
	if _, err := Load(path); err == nil {
		t.Error("Load(bad yaml) returned nil error")
	}
}

// ---- validation ----

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errSub string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"websocket", func(c *Config) { c.Connection.URL = "wss://heater.local/ws" }, ""},
		{"port and url", func(c *Config) {
			c.Connection.Port = "auto"
			c.Connection.URL = "ws://x"
		}, "mutually exclusive"},
		{"bad scheme", func(c *Config) { c.Connection.URL = "http://x" }, "scheme"},
		{"zero baud", func(c *Config) { c.Connection.Baud = 0 }, "baud"},
		{"negative delay", func(c *Config) { c.Bridge.CommandDelayMs = -1 }, "command_delay_ms"},
		{"negative window", func(c *Config) { c.Bridge.ThrottleWindowMs = -1 }, "throttle_window_ms"},
		{"negative log lines", func(c *Config) { c.Bridge.LogLines = -5 }, "log_lines"},
		{"unknown level", func(c *Config) { c.Log.Level = "loud" }, "unknown level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.errSub == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errSub) {
				t.Fatalf("error = %v, want containing %q", err, tt.errSub)
			}
		})
	}
}

func TestValidate_DoesNotMutate(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = " DEBUG "
	cfg.Connection.Port = " auto "
	_ = Validate(cfg)
	if cfg.Log.Level != " DEBUG " || cfg.Connection.Port != " auto " {
		t.Error("Validate mutated the configuration")
	}
}

// ---- normalization ----

func TestNormalize(t *testing.T) {
	cfg := Default()
	cfg.Connection.Port = " /dev/ttyUSB0\n"
	cfg.Log.Level = " WARN "
	cfg.Bridge.CommandDelayMs = 5000
	cfg.Bridge.LogLines = 0
	cfg.Serve.Addr = ""

	Normalize(cfg)

	if cfg.Connection.Port != "/dev/ttyUSB0" {
		t.Errorf("Port = %q", cfg.Connection.Port)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Level = %q", cfg.Log.Level)
	}
	if cfg.Bridge.CommandDelayMs != maxCommandDelayMs {
		t.Errorf("CommandDelayMs = %d, want clamp %d", cfg.Bridge.CommandDelayMs, maxCommandDelayMs)
	}
	if cfg.Bridge.LogLines != 400 {
		t.Errorf("LogLines = %d, want default 400", cfg.Bridge.LogLines)
	}
	if cfg.Serve.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.Serve.Addr)
	}

	Normalize(nil)
}
