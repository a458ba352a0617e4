// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package config loads the optional tonelight YAML configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/Thermoquad/tonelight/pkg/tonelight"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Connection ConnectionConfig `yaml:"connection"`
	Bridge     BridgeConfig     `yaml:"bridge"`
	Log        LogConfig        `yaml:"log"`
	Presets    PresetsConfig    `yaml:"presets"`
	Serve      ServeConfig      `yaml:"serve"`
}

// ---- CONNECTION ----

type ConnectionConfig struct {
	// Serial port path, or "auto"
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`

	// WebSocket transport (mutually exclusive with Port)
	URL         string `yaml:"url"`
	Username    string `yaml:"username"`
	NoSSLVerify bool   `yaml:"no_ssl_verify"`
}

// ---- BRIDGE ----

type BridgeConfig struct {
	CommandDelayMs   int `yaml:"command_delay_ms"`
	ThrottleWindowMs int `yaml:"throttle_window_ms"`
	LogLines         int `yaml:"log_lines"`
}

// ---- LOGGING ----

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ---- PRESET LIBRARY ----

type PresetsConfig struct {
	// Database path; empty selects the default location
	Database string `yaml:"database"`
}

// ---- HTTP BACKEND ----

type ServeConfig struct {
	Addr        string   `yaml:"addr"`
	Connect     bool     `yaml:"connect"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Connection: ConnectionConfig{
			Baud: tonelight.DefaultBaudRate,
		},
		Bridge: BridgeConfig{
			CommandDelayMs:   5,
			ThrottleWindowMs: 50,
			LogLines:         400,
		},
		Log: LogConfig{
			Level: "info",
		},
		Serve: ServeConfig{
			Addr: ":8080",
		},
	}
}

// Load reads path over the defaults. Keys absent from the file keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// CommandDelay is the pause between queued commands
func (c *Config) CommandDelay() time.Duration {
	return time.Duration(c.Bridge.CommandDelayMs) * time.Millisecond
}

// ThrottleWindow is the minimum spacing of immediate sends
func (c *Config) ThrottleWindow() time.Duration {
	return time.Duration(c.Bridge.ThrottleWindowMs) * time.Millisecond
}
