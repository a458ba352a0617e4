// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package config

import "strings"

const (
	maxCommandDelayMs   = 1000
	maxThrottleWindowMs = 1000
	maxLogLines         = 10000
)

// Normalize applies post-validation normalization.
// It must be called only after Validate.
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	cfg.Connection.Port = strings.TrimSpace(cfg.Connection.Port)
	cfg.Connection.URL = strings.TrimSpace(cfg.Connection.URL)
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	b := &cfg.Bridge
	b.CommandDelayMs = min(b.CommandDelayMs, maxCommandDelayMs)
	b.ThrottleWindowMs = min(b.ThrottleWindowMs, maxThrottleWindowMs)
	if b.LogLines == 0 {
		b.LogLines = Default().Bridge.LogLines
	}
	b.LogLines = min(b.LogLines, maxLogLines)

	if cfg.Serve.Addr == "" {
		cfg.Serve.Addr = Default().Serve.Addr
	}
}
